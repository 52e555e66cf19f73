// Package backend implements the client for the company-name search backend.
// It issues the lookup query against an Elasticsearch-compatible _search
// endpoint and returns ranked candidates. Backend failures stay here: the
// match engine never sees HTTP state, only a candidate list.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/dcoelho/company-match/internal/errors"
	"github.com/dcoelho/company-match/model"
)

const defaultTimeout = 10 * time.Second

// nameFields are the index fields the lookup query fans out over: the raw
// name, its normalized form, and the autocomplete n-gram field.
var nameFields = []string{
	"company_name",
	"company_name.normalized",
	"company_name.autocomplete",
}

// Client queries the search backend for company-name candidates.
type Client struct {
	endpoint   string
	topN       int
	httpClient *http.Client
}

// NewClient creates a Client for the given _search endpoint requesting at
// most topN candidates per query.
func NewClient(endpoint string, topN int) *Client {
	return &Client{
		endpoint:   endpoint,
		topN:       topN,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// searchRequest is the _search body: a fuzzy multi_match over the name fields.
type searchRequest struct {
	Size  int `json:"size"`
	Query struct {
		MultiMatch multiMatch `json:"multi_match"`
	} `json:"query"`
}

type multiMatch struct {
	Query     string   `json:"query"`
	Fields    []string `json:"fields"`
	Fuzziness string   `json:"fuzziness"`
}

// searchResponse covers the slice of the backend response the client needs:
// hits.hits[]._score and hits.hits[]._source.company_name.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Score  float64 `json:"_score"`
			Source struct {
				CompanyName string `json:"company_name"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search implements services.Searcher. Candidates come back in the backend's
// ranking order, highest score first; an empty result is not an error.
func (c *Client) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	reqBody := searchRequest{Size: c.topN}
	reqBody.Query.MultiMatch = multiMatch{
		Query:     query,
		Fields:    nameFields,
		Fuzziness: "AUTO",
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, apperrors.NewSearchFailedError(c.endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewSearchFailedError(c.endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewSearchFailedError(c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewSearchFailedError(c.endpoint, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewSearchFailedError(c.endpoint, err)
	}

	candidates := make([]model.Candidate, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		candidates = append(candidates, model.Candidate{
			CanonicalName: hit.Source.CompanyName,
			BackendScore:  hit.Score,
		})
	}
	return candidates, nil
}
