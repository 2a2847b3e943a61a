package driven

import (
	"context"

	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
)

// ChunkStore holds the chunks behind a vector index so search hits can
// be hydrated back into full chunks. Like the index it is rebuilt from
// scratch for each repository.
type ChunkStore interface {
	// SaveChunks stores chunks.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetChunk retrieves a chunk by ID. Returns domain.ErrNotFound if
	// the chunk does not exist.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// Len returns the number of stored chunks.
	Len() int
}
