// Package model defines the shared data types for the company match engine.
package model

import "time"

// Status is the terminal decision for a single match attempt.
type Status string

const (
	StatusAccept Status = "ACCEPT"
	StatusReview Status = "REVIEW"
	StatusReject Status = "REJECT"
)

// Machine-readable reason codes attached to every decision.
const (
	ReasonNoCandidates       = "no_candidates"
	ReasonHighConfidence     = "high_confidence"
	ReasonModerateConfidence = "moderate_confidence"
	ReasonLowConfidence      = "low_confidence"
)

// Candidate is one ranked result from the company-name search backend.
// Candidates arrive ordered by BackendScore descending; position 0 is the
// top candidate and position 1 (if present) is the runner-up.
type Candidate struct {
	CanonicalName string  `json:"canonical_name"`
	BackendScore  float64 `json:"backend_score"`
}

// SignalSet holds the three normalized [0,1] similarity signals computed for
// a match attempt. It is derived per attempt and embedded in the MatchResult.
type SignalSet struct {
	StringSimilarity   float64 `json:"string_similarity"`
	PhoneticSimilarity float64 `json:"phonetic_similarity"`
	ScoreDominance     float64 `json:"score_dominance"`
}

// MatchResult is the immutable outcome of one match attempt. It is returned
// to the caller and mirrored verbatim into the audit sink; exactly one
// MatchResult exists per attempt.
type MatchResult struct {
	Query       string    `json:"query"`
	MatchedName string    `json:"matched_name,omitempty"`
	Confidence  float64   `json:"confidence"`
	Status      Status    `json:"status"`
	Reason      string    `json:"reason"`
	Signals     SignalSet `json:"signals"`
	Timestamp   time.Time `json:"timestamp"`
}

// Matched reports whether the attempt resolved to a candidate name.
func (r MatchResult) Matched() bool {
	return r.MatchedName != ""
}
