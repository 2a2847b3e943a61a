// Package retry implements a small retry policy with exponential backoff.
// It exists because the embedding and answering layers retry the same
// "model access not yet propagated" condition with the same schedule.
package retry

import (
	"context"
	"time"

	"github.com/arroyo-labs/repoqa-cli/internal/logger"
)

// DefaultMaxAttempts is the number of attempts before giving up.
const DefaultMaxAttempts = 3

// DefaultInitialDelay is the delay before the second attempt. The delay
// doubles after each failed attempt.
const DefaultInitialDelay = time.Second

// Policy describes when and how to retry an operation.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// InitialDelay is the delay after the first failure; it doubles
	// after each subsequent failure.
	InitialDelay time.Duration

	// ShouldRetry reports whether the error is worth another attempt.
	// A nil predicate retries every error.
	ShouldRetry func(error) bool
}

// Default returns the policy shared by the embedding and answering
// layers: 3 attempts, delays of 1s then 2s, retrying only errors the
// predicate accepts.
func Default(shouldRetry func(error) bool) Policy {
	return Policy{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: DefaultInitialDelay,
		ShouldRetry:  shouldRetry,
	}
}

// Do runs op until it succeeds, the policy is exhausted, an error fails
// the ShouldRetry predicate, or the context is cancelled. The last error
// is returned on failure.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.InitialDelay

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}
		if p.ShouldRetry != nil && !p.ShouldRetry(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		logger.Warn("attempt %d/%d failed: %v, retrying in %s", attempt, attempts, err, delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
