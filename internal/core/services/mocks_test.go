package services

import (
	"context"
	"fmt"

	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
	"github.com/arroyo-labs/repoqa-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockFetcher implements driven.RepoFetcher for testing.
type mockFetcher struct {
	files    []domain.SourceFile
	file     *domain.SourceFile
	fetchErr error
}

func (m *mockFetcher) FetchRepo(_ context.Context, _ domain.Repo) ([]domain.SourceFile, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.files, nil
}

func (m *mockFetcher) FetchFile(_ context.Context, _ domain.Repo, _ string) (*domain.SourceFile, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.file, nil
}

// mockEmbedder implements driven.EmbeddingService for testing. Vectors
// come from the byText table; errs is a queue of per-call failures
// consumed before any embedding is produced.
type mockEmbedder struct {
	byText map[string][]float32
	errs   []error
	calls  int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return nil, err
		}
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, ok := m.byText[text]
		if !ok {
			return nil, fmt.Errorf("no mock embedding for %q", text)
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int { return 3 }

func (m *mockEmbedder) ModelName() string { return "mock-embedding" }

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	reply    string
	errs     []error
	calls    int
	lastMsgs []driven.ChatMessage
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.calls++
	m.lastMsgs = messages
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return "", err
		}
	}
	return m.reply, nil
}

func (m *mockLLM) ModelName() string { return "mock-chat" }
