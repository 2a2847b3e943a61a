package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// APIError represents a GitHub API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// wrapError converts go-github errors to our error types.
func wrapError(err error, limiter *RateLimiter, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   limiter.ResetTime(),
			Remaining: limiter.Remaining(),
			Limit:     limiter.Limit(),
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &RateLimitError{
			ResetAt:   limiter.ResetTime(),
			Remaining: limiter.Remaining(),
			Limit:     limiter.Limit(),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}

// ToDomain classifies a connector error into the domain error taxonomy.
// Classification is by status code and typed rate-limit errors, never by
// message substrings:
//
//   - rate limit exhausted           -> domain.ErrRateLimitExceeded
//   - 403 without a configured token -> domain.ErrAuthRequired
//   - 403 with a token               -> domain.ErrAccessDenied
//   - 404                            -> domain.ErrRepoNotFound
//   - anything else                  -> domain.ErrUpstream
func ToDomain(err error, hasToken bool) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return fmt.Errorf("%w: resets at %s", domain.ErrRateLimitExceeded,
			rateLimitErr.ResetAt.Format(time.RFC3339))
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusForbidden:
			if !hasToken {
				return fmt.Errorf("%w: %s", domain.ErrAuthRequired, apiErr.Message)
			}
			return fmt.Errorf("%w: %s", domain.ErrAccessDenied, apiErr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", domain.ErrRepoNotFound, apiErr.Message)
		default:
			return fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, apiErr.StatusCode, apiErr.Message)
		}
	}

	return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
}
