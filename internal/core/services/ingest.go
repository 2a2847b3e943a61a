package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/arroyo-labs/repoqa-cli/internal/chunker"
	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
	"github.com/arroyo-labs/repoqa-cli/internal/core/ports/driven"
	"github.com/arroyo-labs/repoqa-cli/internal/logger"
	"github.com/arroyo-labs/repoqa-cli/internal/retry"
)

// embedBatchSize caps the number of inputs per embeddings request.
const embedBatchSize = 100

// IngestService turns a repository into an indexed set of chunks:
// fetch files, split them, embed the chunk texts and fill the index
// and chunk store handed in by the caller.
type IngestService struct {
	fetcher  driven.RepoFetcher
	embedder driven.EmbeddingService
	splitter *chunker.Splitter
	policy   retry.Policy
}

// NewIngestService creates an ingest service. A nil splitter means
// default chunking parameters.
func NewIngestService(
	fetcher driven.RepoFetcher,
	embedder driven.EmbeddingService,
	splitter *chunker.Splitter,
) *IngestService {
	if splitter == nil {
		splitter = chunker.New()
	}
	return &IngestService{
		fetcher:  fetcher,
		embedder: embedder,
		splitter: splitter,
		policy: retry.Default(func(err error) bool {
			return errors.Is(err, domain.ErrModelAccessPending)
		}),
	}
}

// Ingest fetches repo, chunks its source files and writes embeddings
// into index and chunks into store. Returns the number of chunks
// indexed. The index and store are only written to after every
// embedding has been produced, so a failed ingest leaves them empty.
func (s *IngestService) Ingest(
	ctx context.Context,
	repo domain.Repo,
	index driven.VectorIndex,
	store driven.ChunkStore,
) (int, error) {
	files, err := s.fetcher.FetchRepo(ctx, repo)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("%w: no recognised source files in %s", domain.ErrRepoNotFound, repo)
	}

	var chunks []domain.Chunk
	for _, file := range files {
		chunks = append(chunks, s.splitter.ChunkFile(file, repo)...)
	}

	logger.Section("Index Build")
	logger.Info("Embedding %d chunks from %d files with %s",
		len(chunks), len(files), s.embedder.ModelName())

	embeddings, err := s.embedAll(ctx, chunks)
	if err != nil {
		return 0, err
	}

	if err := store.SaveChunks(ctx, chunks); err != nil {
		return 0, fmt.Errorf("save chunks: %w", err)
	}
	for i, chunk := range chunks {
		if err := index.Add(ctx, chunk.ID, embeddings[i]); err != nil {
			return 0, fmt.Errorf("index chunk %s: %w", chunk.ID, err)
		}
	}

	logger.Info("Indexed %d chunks", len(chunks))
	return len(chunks), nil
}

// embedAll embeds every chunk text, batched. Each batch retries the
// access-pending signature with backoff; running out of attempts maps
// to ErrEmbeddingAccessPending, anything else to ErrEmbedding.
func (s *IngestService) embedAll(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(chunks))

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			texts = append(texts, chunk.Content)
		}

		var batch [][]float32
		err := s.policy.Do(ctx, func(ctx context.Context) error {
			var embedErr error
			batch, embedErr = s.embedder.EmbedBatch(ctx, texts)
			return embedErr
		})
		if err != nil {
			if errors.Is(err, domain.ErrModelAccessPending) {
				return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingAccessPending, err)
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrEmbedding, err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("%w: got %d embeddings for %d texts",
				domain.ErrEmbedding, len(batch), len(texts))
		}
		embeddings = append(embeddings, batch...)
	}

	return embeddings, nil
}
