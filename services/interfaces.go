// Package services defines the interfaces wiring the match engine to its
// collaborators.
package services

import (
	"context"

	"github.com/dcoelho/company-match/model"
)

// Searcher is the external search capability: given a raw query it returns
// candidates ordered by backend score descending. It may fail or return an
// empty list; both are the caller's concern, never the engine's.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.Candidate, error)
}

// Matcher scores a query against the candidates supplied by a Searcher and
// produces a decided MatchResult.
type Matcher interface {
	Match(query string, candidates []model.Candidate) (model.MatchResult, error)
}
