package driven

import "context"

// VectorIndex provides nearest-neighbour search over chunk embeddings.
// An index is built once per repository and replaced wholesale when a
// different repository is processed.
type VectorIndex interface {
	// Add inserts a vector for the given chunk ID.
	Add(ctx context.Context, chunkID string, embedding []float32) error

	// Search finds the k nearest neighbours to the query vector,
	// most similar first.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of stored vectors.
	Len() int
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score.
	Similarity float64

	// Embedding is the stored vector, used for diversity-aware
	// re-ranking of the candidate pool.
	Embedding []float32
}
