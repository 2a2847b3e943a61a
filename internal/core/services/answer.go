package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
	"github.com/arroyo-labs/repoqa-cli/internal/core/ports/driven"
	"github.com/arroyo-labs/repoqa-cli/internal/logger"
	"github.com/arroyo-labs/repoqa-cli/internal/retry"
)

// systemPrompt instructs the model how to answer and how to structure
// the reply.
const systemPrompt = `You are an expert coding assistant. Answer questions about a code repository using only the provided context.

Structure every answer with these sections:
## Overview
## Detailed Explanation
## Key Points
## Recommendations

If the context does not contain enough information to answer, say so in the Overview instead of guessing.`

// userPromptTemplate carries the retrieved context and the question.
const userPromptTemplate = `Context from the repository:

%s

Question: %s`

// mmrLambda balances query relevance against diversity when the
// diverse profile re-ranks the candidate pool.
const mmrLambda = 0.5

// AnswerService answers a question against an index built by
// IngestService. Query-time failures are reported inside the
// QueryResult so a shell can render them; Answer never fails once the
// index exists.
type AnswerService struct {
	embedder driven.EmbeddingService
	llm      driven.LLMService
	profile  domain.RetrievalProfile
	policy   retry.Policy
}

// NewAnswerService creates an answer service using the given retrieval
// profile.
func NewAnswerService(
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	profile domain.RetrievalProfile,
) *AnswerService {
	return &AnswerService{
		embedder: embedder,
		llm:      llm,
		profile:  profile,
		policy: retry.Default(func(err error) bool {
			return errors.Is(err, domain.ErrModelAccessPending)
		}),
	}
}

// Answer retrieves the most relevant chunks for question and asks the
// model for a structured reply. The returned error is always nil; all
// failures surface as the answer text.
func (s *AnswerService) Answer(
	ctx context.Context,
	question string,
	index driven.VectorIndex,
	store driven.ChunkStore,
) (domain.QueryResult, error) {
	logger.Section("Question")
	logger.Debug("Question: %q, profile: %s", question, s.profile.Name)

	var queryEmbedding []float32
	err := s.policy.Do(ctx, func(ctx context.Context) error {
		var embedErr error
		queryEmbedding, embedErr = s.embedder.Embed(ctx, question)
		return embedErr
	})
	if err != nil {
		return failureResult("embedding the question failed", err), nil
	}

	hits, err := index.Search(ctx, queryEmbedding, s.profile.FetchK)
	if err != nil {
		return failureResult("searching the index failed", err), nil
	}
	if s.profile.Diverse {
		hits = selectDiverse(hits, s.profile.TopK)
	} else if len(hits) > s.profile.TopK {
		hits = hits[:s.profile.TopK]
	}

	evidence := make([]domain.Chunk, 0, len(hits))
	for _, hit := range hits {
		chunk, err := store.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			logger.Warn("missing chunk %s: %v", hit.ChunkID, err)
			continue
		}
		evidence = append(evidence, *chunk)
	}

	var answer string
	err = s.policy.Do(ctx, func(ctx context.Context) error {
		var chatErr error
		answer, chatErr = s.llm.Chat(ctx, []driven.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(userPromptTemplate, formatContext(evidence), question)},
		}, driven.ChatOptions{})
		return chatErr
	})
	if err != nil {
		if errors.Is(err, domain.ErrModelAccessPending) {
			return domain.QueryResult{
				Answer: fmt.Sprintf("The model %s is not available to this API key yet. "+
					"Access to newly enabled models can take a few minutes to propagate; "+
					"please try again shortly.", s.llm.ModelName()),
			}, nil
		}
		return failureResult("generating the answer failed", err), nil
	}

	return domain.QueryResult{Answer: answer, Evidence: evidence}, nil
}

// failureResult packages a query-time failure as an answer.
func failureResult(what string, err error) domain.QueryResult {
	return domain.QueryResult{
		Answer: fmt.Sprintf("Sorry, %s: %v", what, err),
	}
}

// formatContext renders the evidence chunks as one labelled context
// block per chunk.
func formatContext(evidence []domain.Chunk) string {
	if len(evidence) == 0 {
		return "(no matching code found)"
	}

	var b strings.Builder
	for i, chunk := range evidence {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "--- %s ---\n%s", chunk.FilePath, chunk.Content)
	}
	return b.String()
}

// selectDiverse applies maximal marginal relevance to the candidate
// pool: each round picks the hit that best trades query similarity
// against similarity to the hits already picked.
func selectDiverse(hits []driven.VectorHit, k int) []driven.VectorHit {
	if len(hits) <= k {
		return hits
	}

	selected := make([]driven.VectorHit, 0, k)
	remaining := append([]driven.VectorHit(nil), hits...)

	// Hits arrive most similar first, so the first pick is hits[0].
	selected = append(selected, remaining[0])
	remaining = remaining[1:]

	for len(selected) < k && len(remaining) > 0 {
		bestIdx := 0
		bestScore := math.Inf(-1)

		for i, candidate := range remaining {
			redundancy := math.Inf(-1)
			for _, chosen := range selected {
				if sim := cosine(candidate.Embedding, chosen.Embedding); sim > redundancy {
					redundancy = sim
				}
			}
			score := mmrLambda*candidate.Similarity - (1-mmrLambda)*redundancy
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return selected
}

// cosine computes cosine similarity between two vectors, 0 when sizes
// differ or either vector is zero.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
