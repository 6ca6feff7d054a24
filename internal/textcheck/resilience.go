package textcheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BreakerSettings configures the circuit breaker around a remote checker
type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultBreakerSettings trips after half of at least five calls fail
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		MinRequests:      5,
		FailureThreshold: 0.5,
	}
}

// Breaker wraps a checker with a circuit breaker. While open, calls fail fast with ErrUnavailable.
type Breaker struct {
	next Checker
	cb   *gobreaker.CircuitBreaker[[]Finding]
}

// NewBreaker wraps next with a circuit breaker
func NewBreaker(next Checker, cfg BreakerSettings, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}

	settings := gobreaker.Settings{
		Name:        fmt.Sprintf("textcheck-%s", next.Name()),
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &Breaker{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[[]Finding](settings),
	}
}

// Name returns the wrapped checker name
func (b *Breaker) Name() string { return b.next.Name() }

// Check runs the wrapped checker through the breaker
func (b *Breaker) Check(ctx context.Context, text string) ([]Finding, error) {
	findings, err := b.cb.Execute(func() ([]Finding, error) {
		return b.next.Check(ctx, text)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s: %w: %v", b.next.Name(), ErrUnavailable, err)
	}
	return findings, err
}

// State reports the breaker state ("closed", "half-open" or "open")
func (b *Breaker) State() string {
	return b.cb.State().String()
}

// Limited wraps a checker with a token-bucket rate limiter
type Limited struct {
	next    Checker
	limiter *rate.Limiter
}

// NewLimited allows perSecond calls per second to next with the given burst
func NewLimited(next Checker, perSecond float64, burst int) *Limited {
	if burst < 1 {
		burst = 1
	}
	return &Limited{next: next, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Name returns the wrapped checker name
func (l *Limited) Name() string { return l.next.Name() }

// Check waits for a token, bounded by ctx, then calls the wrapped checker
func (l *Limited) Check(ctx context.Context, text string) ([]Finding, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, &BackendError{Checker: l.next.Name(), Message: "rate limit wait aborted", Cause: err}
	}
	return l.next.Check(ctx, text)
}
