package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/metrics"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/taxonomy"
	"github.com/jonathan/resume-scorer/internal/types"
)

// fakeScorer scores by the number of skills and fails on a nil résumé
type fakeScorer struct {
	active, peak atomic.Int32
}

func (f *fakeScorer) Score(ctx context.Context, req scoring.Request) (*types.ScoreResult, error) {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	if req.Resume == nil {
		return nil, errors.New("résumé is required")
	}
	mode := scoring.ResolveMode(req)
	return &types.ScoreResult{Mode: mode, Overall: float64(10 * len(req.Resume.Skills))}, nil
}

func skillsResume(n int) *types.ResumeData {
	r := &types.ResumeData{}
	for i := 0; i < n; i++ {
		r.Skills = append(r.Skills, fmt.Sprintf("skill-%d", i))
	}
	return r
}

func TestRunner_Run(t *testing.T) {
	scorer := &fakeScorer{}
	runner := NewRunner(scorer, WithWorkers(2))

	items := []Item{
		{ID: "a", Request: scoring.Request{Resume: skillsResume(2)}},
		{ID: "b", Request: scoring.Request{Resume: skillsResume(5), Mode: types.ModeATSSimulation}},
		{ID: "c", Request: scoring.Request{}},
		{ID: "d", Request: scoring.Request{Resume: skillsResume(9)}},
	}
	report, err := runner.Run(context.Background(), items)
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 4)
	for i, item := range items {
		assert.Equal(t, item.ID, report.Outcomes[i].ID)
	}
	assert.Equal(t, 3, report.Scored)
	assert.Equal(t, 1, report.Failed)
	assert.Nil(t, report.Outcomes[2].Result)
	assert.Contains(t, report.Outcomes[2].Error, "required")

	assert.Equal(t, [5]int{1, 1, 0, 0, 1}, report.Distribution.Counts)
	assert.Equal(t, 55.0, report.MeanByMode[types.ModeQualityCoach])
	assert.Equal(t, 50.0, report.MeanByMode[types.ModeATSSimulation])
	assert.NotEmpty(t, report.RunID)
	assert.LessOrEqual(t, scorer.peak.Load(), int32(2))
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(&fakeScorer{})
	_, err := runner.Run(ctx, []Item{{ID: "a", Request: scoring.Request{Resume: skillsResume(1)}}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Empty(t *testing.T) {
	report, err := NewRunner(&fakeScorer{}).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Outcomes)
	assert.Zero(t, report.Distribution.Total)
}

func TestRunner_WithEngineAndMetrics(t *testing.T) {
	tax, err := taxonomy.Default()
	require.NoError(t, err)
	m := metrics.NewManager()
	engine := scoring.NewEngine(tax, scoring.WithObserver(m))
	runner := NewRunner(engine, WithRecorder(m), WithWorkers(3))

	var items []Item
	for i, mode := range []types.ScoringMode{types.ModeATSSimulation, types.ModeQualityCoach} {
		items = append(items,
			Item{ID: fmt.Sprintf("empty-%d", i), Request: scoring.Request{Resume: &types.ResumeData{}, Role: "software engineer", Mode: mode}},
			Item{ID: fmt.Sprintf("nil-%d", i), Request: scoring.Request{Mode: mode}},
		)
	}

	report, err := runner.Run(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Scored)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 2, report.Distribution.Counts[0])
	assert.Contains(t, report.Outcomes[1].Error, "invalid scoring request")
}
