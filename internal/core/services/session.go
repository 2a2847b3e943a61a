package services

import (
	"context"
	"sync"

	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
	"github.com/arroyo-labs/repoqa-cli/internal/core/ports/driven"
	"github.com/arroyo-labs/repoqa-cli/internal/core/ports/driving"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService holds the currently loaded repository together with
// its index and chunk store. Loading another repository replaces all
// three at once; a failed load leaves the previous session intact.
type SessionService struct {
	ingest   *IngestService
	answer   *AnswerService
	newIndex func() driven.VectorIndex
	newStore func() driven.ChunkStore

	mu     sync.Mutex
	repo   domain.Repo
	loaded bool
	index  driven.VectorIndex
	store  driven.ChunkStore
}

// NewSessionService creates a session. newIndex and newStore construct
// the fresh index and chunk store used for each load.
func NewSessionService(
	ingest *IngestService,
	answer *AnswerService,
	newIndex func() driven.VectorIndex,
	newStore func() driven.ChunkStore,
) *SessionService {
	return &SessionService{
		ingest:   ingest,
		answer:   answer,
		newIndex: newIndex,
		newStore: newStore,
	}
}

// Load ingests the repository behind repoURL and makes it the current
// question target. Returns the parsed repository and the number of
// chunks indexed.
func (s *SessionService) Load(ctx context.Context, repoURL string) (domain.Repo, int, error) {
	repo, err := domain.ParseRepoURL(repoURL)
	if err != nil {
		return domain.Repo{}, 0, err
	}

	index := s.newIndex()
	store := s.newStore()

	count, err := s.ingest.Ingest(ctx, repo, index, store)
	if err != nil {
		return domain.Repo{}, 0, err
	}

	s.mu.Lock()
	s.repo = repo
	s.loaded = true
	s.index = index
	s.store = store
	s.mu.Unlock()

	return repo, count, nil
}

// Ask answers a question against the loaded repository. Returns
// domain.ErrNoRepoLoaded when no repository has been loaded yet.
func (s *SessionService) Ask(ctx context.Context, question string) (domain.QueryResult, error) {
	s.mu.Lock()
	loaded, index, store := s.loaded, s.index, s.store
	s.mu.Unlock()

	if !loaded {
		return domain.QueryResult{}, domain.ErrNoRepoLoaded
	}
	return s.answer.Answer(ctx, question, index, store)
}

// CurrentRepo returns the loaded repository identifier, or the empty
// string when nothing is loaded.
func (s *SessionService) CurrentRepo() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ""
	}
	return s.repo.String()
}
