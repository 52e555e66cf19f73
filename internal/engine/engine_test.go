package engine

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcoelho/company-match/config"
	"github.com/dcoelho/company-match/internal/audit"
	apperrors "github.com/dcoelho/company-match/internal/errors"
	"github.com/dcoelho/company-match/model"
)

func newTestEngine(t *testing.T, sink audit.Sink) *Engine {
	t.Helper()
	eng, err := NewEngine(config.Default(), sink)
	require.NoError(t, err)
	eng.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	}
	return eng
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Weights = config.Weights{String: 0.5, Phonetic: 0.2, Dominance: 0.2}

	_, err := NewEngine(cfg, audit.NopSink{})
	require.Error(t, err, "an engine must never be constructed from weights summing to 0.9")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))
}

func TestMatchAcceptsCloseTypo(t *testing.T) {
	sink := &audit.MemorySink{}
	eng := newTestEngine(t, sink)

	result, err := eng.Match("Acem Corp", []model.Candidate{
		{CanonicalName: "Acme Corp", BackendScore: 10.0},
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusAccept, result.Status)
	assert.Equal(t, model.ReasonHighConfidence, result.Reason)
	assert.Equal(t, "Acme Corp", result.MatchedName)
	// 0.5*(1-2/9) + 0.2*1 + 0.3*1
	assert.InDelta(t, 0.8888889, result.Confidence, 1e-6)
	assert.Equal(t, 1.0, result.Signals.PhoneticSimilarity)
	assert.Equal(t, 1.0, result.Signals.ScoreDominance)

	records := sink.Records()
	require.Len(t, records, 1, "exactly one audit event per attempt")
	assert.Equal(t, result, records[0], "the audit record mirrors the returned result")
}

func TestMatchSendsContestedCandidateToReview(t *testing.T) {
	eng := newTestEngine(t, nil)

	result, err := eng.Match("Acme Corpp", []model.Candidate{
		{CanonicalName: "Acme Corp", BackendScore: 8.0},
		{CanonicalName: "Acme Group", BackendScore: 7.9},
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusReview, result.Status)
	assert.Equal(t, model.ReasonModerateConfidence, result.Reason)
	// 0.5*0.9 + 0.2*1 + 0.3*0.0125
	assert.InDelta(t, 0.65375, result.Confidence, 1e-6)
	assert.InDelta(t, 0.0125, result.Signals.ScoreDominance, 1e-9)
}

func TestMatchRejectsUnrelatedQuery(t *testing.T) {
	eng := newTestEngine(t, nil)

	result, err := eng.Match("Xyzzy Nonexistent", []model.Candidate{
		{CanonicalName: "Acme Corp", BackendScore: 3.0},
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusReject, result.Status)
	assert.Equal(t, model.ReasonLowConfidence, result.Reason)
	assert.Less(t, result.Confidence, eng.Config().ReviewThreshold)
	assert.Equal(t, 0.0, result.Signals.PhoneticSimilarity)
	// The matched name is still reported: a candidate was supplied.
	assert.Equal(t, "Acme Corp", result.MatchedName)
}

func TestMatchRejectsWhenBackendReturnsNothing(t *testing.T) {
	sink := &audit.MemorySink{}
	eng := newTestEngine(t, sink)

	result, err := eng.Match("Acme Corp", nil)
	require.NoError(t, err)

	assert.Equal(t, model.StatusReject, result.Status)
	assert.Equal(t, model.ReasonNoCandidates, result.Reason)
	assert.Equal(t, 0.0, result.Confidence)
	assert.False(t, result.Matched())
	assert.Equal(t, model.SignalSet{}, result.Signals)

	require.Len(t, sink.Records(), 1, "rejections are audited too")
}

func TestMatchRejectsBlankQuery(t *testing.T) {
	sink := &audit.MemorySink{}
	eng := newTestEngine(t, sink)

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := eng.Match(query, []model.Candidate{
			{CanonicalName: "Acme Corp", BackendScore: 10.0},
		})
		require.Error(t, err, "blank query %q must fail fast", query)
		assert.True(t, errors.Is(err, apperrors.ErrEmptyQuery))
	}

	assert.Empty(t, sink.Records(), "a blank query must not produce audit events")
}

func TestMatchIsDeterministic(t *testing.T) {
	eng := newTestEngine(t, nil)
	candidates := []model.Candidate{
		{CanonicalName: "Global Technologies", BackendScore: 8.0},
		{CanonicalName: "Global Tek Inc", BackendScore: 7.9},
	}

	first, err := eng.Match("Global Tek Solutions", candidates)
	require.NoError(t, err)
	second, err := eng.Match("Global Tek Solutions", candidates)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs and config must yield identical results")
}

func TestMatchConfidenceStaysInRange(t *testing.T) {
	eng := newTestEngine(t, nil)

	queries := []string{"Acme", "Acme Corp", "Globex Industries", "a", "Zzzz Qqqq Xxxx"}
	candidateSets := [][]model.Candidate{
		nil,
		{{CanonicalName: "Acme Corp", BackendScore: 0}},
		{{CanonicalName: "Acme Corp", BackendScore: 12.5}, {CanonicalName: "Acme Ltd", BackendScore: 12.5}},
		{{CanonicalName: "", BackendScore: 3.0}},
	}

	for _, q := range queries {
		for _, cands := range candidateSets {
			result, err := eng.Match(q, cands)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.Confidence, 0.0)
			assert.LessOrEqual(t, result.Confidence, 1.0)
			assert.Contains(t, []model.Status{model.StatusAccept, model.StatusReview, model.StatusReject}, result.Status)
		}
	}
}

func TestMatchTieKeepsBackendOrder(t *testing.T) {
	eng := newTestEngine(t, nil)

	result, err := eng.Match("Acme Corp", []model.Candidate{
		{CanonicalName: "Acme Corp", BackendScore: 5.0},
		{CanonicalName: "Acme Corporation", BackendScore: 5.0},
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", result.MatchedName, "position 0 is authoritative on ties")
	assert.Equal(t, 0.0, result.Signals.ScoreDominance)
}

type failingSink struct{}

func (failingSink) Record(model.MatchResult) error {
	return fmt.Errorf("disk full")
}

func TestMatchSurvivesSinkFailure(t *testing.T) {
	eng := newTestEngine(t, failingSink{})

	result, err := eng.Match("Acem Corp", []model.Candidate{
		{CanonicalName: "Acme Corp", BackendScore: 10.0},
	})
	require.NoError(t, err, "a failed audit write degrades observability, not the match")
	assert.Equal(t, model.StatusAccept, result.Status)
}

func TestMatchConcurrentAttempts(t *testing.T) {
	sink := &audit.MemorySink{}
	eng := newTestEngine(t, sink)

	const attempts = 32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := eng.Match("Acem Corp", []model.Candidate{
				{CanonicalName: "Acme Corp", BackendScore: 10.0},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, sink.Records(), attempts)
}
