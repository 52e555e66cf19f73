// Package audit defines the audit sink capability of the match engine and the
// sinks shipped with it. The engine emits exactly one record per successful
// match attempt; durability, ordering, and retry policy belong to the sink,
// not to the engine.
package audit

import (
	"sync"

	"github.com/dcoelho/company-match/model"
)

// Sink receives one structured event per match attempt. Implementations must
// be safe for concurrent use; the engine does not serialize calls.
type Sink interface {
	Record(result model.MatchResult) error
}

// NopSink discards every record. Useful for callers that only need the
// returned MatchResult.
type NopSink struct{}

// Record implements Sink.
func (NopSink) Record(model.MatchResult) error { return nil }

// Tee fans every record out to all of its sinks. Each sink sees every
// record; the first error encountered is returned after all sinks have run.
type Tee []Sink

// Record implements Sink.
func (t Tee) Record(result model.MatchResult) error {
	var firstErr error
	for _, sink := range t {
		if err := sink.Record(result); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// MemorySink retains records in memory, primarily for tests and the demo
// command.
type MemorySink struct {
	mu      sync.Mutex
	records []model.MatchResult
}

// Record implements Sink.
func (s *MemorySink) Record(result model.MatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, result)
	return nil
}

// Records returns a copy of everything recorded so far.
func (s *MemorySink) Records() []model.MatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.MatchResult, len(s.records))
	copy(out, s.records)
	return out
}
