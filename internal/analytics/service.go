// Package analytics tracks match-decision statistics for the running process
// and reports them through the API.
package analytics

import (
	"sync"

	"github.com/dcoelho/company-match/model"
)

// Summary is a point-in-time aggregate of every match attempt tracked so far.
type Summary struct {
	TotalAttempts  int            `json:"total_attempts"`
	Accepted       int            `json:"accepted"`
	Reviewed       int            `json:"reviewed"`
	Rejected       int            `json:"rejected"`
	MeanConfidence float64        `json:"mean_confidence"`
	Reasons        map[string]int `json:"reasons"`
}

// Service implements decision tracking and reporting. It also satisfies the
// audit.Sink interface, so it can be teed alongside the durable sink.
type Service struct {
	mu            sync.RWMutex
	total         int
	byStatus      map[model.Status]int
	byReason      map[string]int
	confidenceSum float64
}

// NewService creates an empty analytics service.
func NewService() *Service {
	return &Service{
		byStatus: make(map[model.Status]int),
		byReason: make(map[string]int),
	}
}

// Record tracks one decided match attempt.
func (s *Service) Record(result model.MatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.byStatus[result.Status]++
	s.byReason[result.Reason]++
	s.confidenceSum += result.Confidence
	return nil
}

// Summary returns the aggregate view of everything recorded so far.
func (s *Service) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := Summary{
		TotalAttempts: s.total,
		Accepted:      s.byStatus[model.StatusAccept],
		Reviewed:      s.byStatus[model.StatusReview],
		Rejected:      s.byStatus[model.StatusReject],
		Reasons:       make(map[string]int, len(s.byReason)),
	}
	for reason, count := range s.byReason {
		summary.Reasons[reason] = count
	}
	if s.total > 0 {
		summary.MeanConfidence = s.confidenceSum / float64(s.total)
	}
	return summary
}
