// Package engine orchestrates match attempts: it runs the similarity
// signals, the score combiner, and the decision policy over a query and the
// ranked candidates supplied by the search backend, and assembles the
// MatchResult.
package engine

import (
	"strings"
	"time"

	"github.com/dcoelho/company-match/config"
	"github.com/dcoelho/company-match/internal/audit"
	apperrors "github.com/dcoelho/company-match/internal/errors"
	"github.com/dcoelho/company-match/internal/logger"
	"github.com/dcoelho/company-match/internal/scoring"
	"github.com/dcoelho/company-match/model"
)

// Engine scores and decides match attempts. It holds no mutable state beyond
// its injected collaborators, so concurrent Match calls need no coordination.
// The engine never queries the search backend itself; it only consumes the
// backend's output.
type Engine struct {
	cfg  config.Config
	sink audit.Sink
	now  func() time.Time
}

// NewEngine validates the configuration and builds an Engine around the given
// audit sink. A nil sink is replaced with a no-op sink. A configuration that
// fails validation is rejected here and never reaches a match attempt.
func NewEngine(cfg config.Config, sink audit.Sink) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = audit.NopSink{}
	}
	return &Engine{cfg: cfg, sink: sink, now: time.Now}, nil
}

// Config returns the immutable configuration the engine was built with.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Match scores the query against the ranked candidate list and returns the
// decided MatchResult. Candidates must arrive ordered by backend score
// descending; the engine does not re-sort, so a tie between equal backend
// scores resolves to whichever candidate the backend put first.
//
// An empty or whitespace-only query returns an InputError: no result is
// produced and no audit event is emitted. Every other invocation emits
// exactly one audit record mirroring the returned result, regardless of
// status; a sink failure is logged and never surfaces to the caller.
func (e *Engine) Match(query string, candidates []model.Candidate) (model.MatchResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return model.MatchResult{}, apperrors.NewInputError("query must not be empty or whitespace-only")
	}

	signals := scoring.Signals(trimmed, candidates)

	var confidence float64
	var matchedName string
	if len(candidates) > 0 {
		confidence = scoring.Combine(signals, e.cfg.Weights)
		matchedName = candidates[0].CanonicalName
	}

	status, reason := scoring.Decide(confidence, signals, len(candidates) > 0, e.cfg)

	result := model.MatchResult{
		Query:       trimmed,
		MatchedName: matchedName,
		Confidence:  confidence,
		Status:      status,
		Reason:      reason,
		Signals:     signals,
		Timestamp:   e.now(),
	}

	if err := e.sink.Record(result); err != nil {
		logger.Warn().Err(err).Str("query", result.Query).Msg("audit record failed")
	}

	return result, nil
}
