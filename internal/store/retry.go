package store

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	sqlite3 "modernc.org/sqlite/lib"
)

// RetryConfig controls how writes are retried when the database is locked
// by another process.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns the retry settings used by the CLI.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 4,
		InitialWait: 50 * time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2.0,
	}
}

// RetryRunRepo is a decorator that retries AppendRun on busy or locked
// errors with exponential backoff and jitter. Reads are passed through.
type RetryRunRepo struct {
	inner  RunRepo
	config RetryConfig
}

// WithRetry wraps a RunRepo with retry logic.
func WithRetry(r RunRepo, cfg RetryConfig) RunRepo {
	return &RetryRunRepo{inner: r, config: cfg}
}

func (r *RetryRunRepo) AppendRun(ctx context.Context, data RunData) (string, error) {
	var lastErr error
	for attempt := range max(r.config.MaxAttempts, 1) {
		id, err := r.inner.AppendRun(ctx, data)
		if err == nil {
			return id, nil
		}
		lastErr = err

		if !isBusy(err) || attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}
	return "", lastErr
}

func (r *RetryRunRepo) ListRuns(ctx context.Context, opts QueryOpts) ([]RunRecord, error) {
	return r.inner.ListRuns(ctx, opts)
}

func (r *RetryRunRepo) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	return r.inner.GetRun(ctx, id)
}

// isBusy reports whether err is SQLITE_BUSY or SQLITE_LOCKED, including
// their extended codes.
func isBusy(err error) bool {
	var coded interface{ Code() int }
	if !errors.As(err, &coded) {
		return false
	}
	switch coded.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

// backoff computes the wait duration for the given attempt.
func (r *RetryRunRepo) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
