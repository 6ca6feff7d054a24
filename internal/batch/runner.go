// Package batch scores many résumés in parallel and summarizes the score distribution
// for calibration.
package batch

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-scorer/internal/logger"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

// DefaultWorkers bounds concurrent scoring calls
const DefaultWorkers = 4

// Scorer scores a single request. *scoring.Engine implements it.
type Scorer interface {
	Score(ctx context.Context, req scoring.Request) (*types.ScoreResult, error)
}

// Recorder receives batch progress. *metrics.Manager implements it.
type Recorder interface {
	BatchItemStarted() func(err error)
	ObserveBatch(elapsed time.Duration)
}

// Item is one résumé to score
type Item struct {
	ID      string          `json:"id"`
	Request scoring.Request `json:"request"`
}

// Outcome is the result of one item. Exactly one of Result and Error is set.
type Outcome struct {
	ID     string             `json:"id"`
	Result *types.ScoreResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// Report summarizes a batch run. Outcomes are in input order.
type Report struct {
	RunID        string                        `json:"run_id"`
	StartedAt    time.Time                     `json:"started_at"`
	Elapsed      time.Duration                 `json:"elapsed"`
	Outcomes     []Outcome                     `json:"outcomes"`
	Scored       int                           `json:"scored"`
	Failed       int                           `json:"failed"`
	Distribution Distribution                  `json:"distribution"`
	MeanByMode   map[types.ScoringMode]float64 `json:"mean_by_mode"`
}

// Option configures a Runner
type Option func(*Runner)

// WithWorkers sets the number of concurrent scoring calls
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the runner logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger.Named(l, "batch")
	}
}

// WithRecorder registers a progress recorder
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// Runner scores items with bounded parallelism
type Runner struct {
	scorer   Scorer
	workers  int
	logger   *zap.Logger
	recorder Recorder
}

// NewRunner creates a runner over a scorer
func NewRunner(scorer Scorer, opts ...Option) *Runner {
	r := &Runner{
		scorer:  scorer,
		workers: DefaultWorkers,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run scores every item. A failing item is recorded in its Outcome and does not stop the
// batch; only cancellation of ctx fails the run.
func (r *Runner) Run(ctx context.Context, items []Item) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
		Outcomes:  make([]Outcome, len(items)),
	}
	log := r.logger.With(zap.String("run_id", report.RunID))
	log.Info("batch started", zap.Int("items", len(items)), zap.Int("workers", r.workers))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, item := range items {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			var done func(error)
			if r.recorder != nil {
				done = r.recorder.BatchItemStarted()
			}

			// Each goroutine owns its slot
			outcome := Outcome{ID: item.ID}
			result, err := r.scorer.Score(gCtx, item.Request)
			if err != nil {
				outcome.Error = err.Error()
				log.Warn("batch item failed", zap.String("id", item.ID), zap.Error(err))
			} else {
				outcome.Result = result
			}
			report.Outcomes[i] = outcome

			if done != nil {
				done(err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch %s cancelled: %w", report.RunID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch %s cancelled: %w", report.RunID, err)
	}

	report.Elapsed = time.Since(report.StartedAt)
	summarize(report)
	if r.recorder != nil {
		r.recorder.ObserveBatch(report.Elapsed)
	}

	log.Info("batch finished",
		zap.Int("scored", report.Scored),
		zap.Int("failed", report.Failed),
		zap.Float64("mean", report.Distribution.Mean),
		zap.Duration("elapsed", report.Elapsed))
	return report, nil
}

func summarize(report *Report) {
	var scores []float64
	sums := make(map[types.ScoringMode]float64)
	counts := make(map[types.ScoringMode]int)

	for _, o := range report.Outcomes {
		if o.Result == nil {
			report.Failed++
			continue
		}
		report.Scored++
		scores = append(scores, o.Result.Overall)
		sums[o.Result.Mode] += o.Result.Overall
		counts[o.Result.Mode]++
	}

	report.Distribution = NewDistribution(scores)
	report.MeanByMode = make(map[types.ScoringMode]float64, len(counts))
	for mode, n := range counts {
		report.MeanByMode[mode] = math.Round(sums[mode]/float64(n)*10) / 10
	}
}
