package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dcoelho/company-match/internal/analytics"
	apperrors "github.com/dcoelho/company-match/internal/errors"
	"github.com/dcoelho/company-match/internal/logger"
	"github.com/dcoelho/company-match/services"
)

const maxRequestSize = 1 << 20 // 1 MB is plenty for a name lookup

// API holds the dependencies for the HTTP handlers. The analytics service is
// read-only here: attempts are tallied through the engine's audit sink, the
// API only serves the summary.
type API struct {
	searcher  services.Searcher
	matcher   services.Matcher
	analytics *analytics.Service
}

// NewAPI creates a new API instance.
func NewAPI(searcher services.Searcher, matcher services.Matcher, analyticsService *analytics.Service) *API {
	return &API{
		searcher:  searcher,
		matcher:   matcher,
		analytics: analyticsService,
	}
}

// SetupRoutes configures the Gin router with all API endpoints.
func SetupRoutes(router *gin.Engine, api *API) {
	router.Use(RequestIDMiddleware())
	router.Use(RequestSizeLimitMiddleware(maxRequestSize))
	router.Use(CORSMiddleware())

	router.GET("/health", api.HealthHandler)
	router.GET("/analytics", api.AnalyticsHandler)
	router.POST("/match", api.MatchHandler)
}

// MatchRequest is the body of a POST /match call.
type MatchRequest struct {
	Query string `json:"query"`
}

// HealthHandler reports service liveness.
func (api *API) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AnalyticsHandler returns the aggregate match statistics for this process.
func (api *API) AnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.analytics.Summary())
}

// MatchHandler resolves a company-name query to a match decision. The query
// is sent to the search backend, the ranked candidates are scored, and the
// resulting decision is returned to the caller.
func (api *API) MatchHandler(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		SendEmptyQueryError(c)
		return
	}

	candidates, err := api.searcher.Search(c.Request.Context(), req.Query)
	if err != nil {
		logger.Error().Err(err).Str("query", req.Query).Msg("Backend search failed")
		SendSearchFailedError(c, err)
		return
	}

	result, err := api.matcher.Match(req.Query, candidates)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyQuery) {
			SendEmptyQueryError(c)
			return
		}
		SendInternalError(c, "match", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
