package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidRepoURL indicates the repository URL could not be parsed
	// into an owner/name pair.
	ErrInvalidRepoURL = errors.New("invalid repository URL")

	// ErrRepoNotFound indicates the repository or a path within it does
	// not exist (or is private and invisible to the caller).
	ErrRepoNotFound = errors.New("repository not found")

	// ErrRateLimitExceeded indicates the hosting API rate limit was hit.
	// Providing a token raises the limit.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrAuthRequired indicates the hosting API rejected an
	// unauthenticated request. Supplying a token usually resolves it.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAccessDenied indicates the caller is authenticated but not
	// permitted to read the repository.
	ErrAccessDenied = errors.New("access denied")

	// ErrUpstream indicates any other hosting API failure.
	ErrUpstream = errors.New("upstream API error")

	// ErrModelAccessPending indicates the model provider rejected a call
	// because access to the requested model has not propagated yet.
	// Callers retry this condition before giving up.
	ErrModelAccessPending = errors.New("model access not yet propagated")

	// ErrEmbedding indicates a non-retryable embedding failure.
	ErrEmbedding = errors.New("embedding failed")

	// ErrEmbeddingAccessPending indicates embedding retries were
	// exhausted while model access was still propagating.
	ErrEmbeddingAccessPending = errors.New("embedding model access still activating")

	// ErrNoRepoLoaded indicates a question was asked before any
	// repository was ingested into the session.
	ErrNoRepoLoaded = errors.New("no repository loaded")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
