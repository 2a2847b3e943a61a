package driven

import (
	"context"

	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
)

// RepoFetcher lists and downloads source files from a hosted repository.
type RepoFetcher interface {
	// FetchRepo returns every recognised source file in the repository,
	// recursing into subdirectories. Individual file download failures
	// are logged and skipped; listing failures abort the fetch.
	FetchRepo(ctx context.Context, repo domain.Repo) ([]domain.SourceFile, error)

	// FetchFile downloads a single file by repository path.
	FetchFile(ctx context.Context, repo domain.Repo, path string) (*domain.SourceFile, error)
}
