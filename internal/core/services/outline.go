package services

import (
	"context"

	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
	"github.com/arroyo-labs/repoqa-cli/internal/core/ports/driven"
	"github.com/arroyo-labs/repoqa-cli/internal/core/ports/driving"
	"github.com/arroyo-labs/repoqa-cli/internal/snippet"
)

// Ensure OutlineService implements the interface.
var _ driving.OutlineService = (*OutlineService)(nil)

// OutlineService reports the structure of a single repository file
// without building an index.
type OutlineService struct {
	fetcher driven.RepoFetcher
}

// NewOutlineService creates an outline service.
func NewOutlineService(fetcher driven.RepoFetcher) *OutlineService {
	return &OutlineService{fetcher: fetcher}
}

// Outline fetches the file at path and inventories its functions and
// classes together with documentation coverage.
func (s *OutlineService) Outline(
	ctx context.Context, repoURL, path string,
) (*domain.SourceFile, *driving.OutlineReport, error) {
	repo, err := domain.ParseRepoURL(repoURL)
	if err != nil {
		return nil, nil, err
	}

	file, err := s.fetcher.FetchFile(ctx, repo, path)
	if err != nil {
		return nil, nil, err
	}

	analysis := snippet.Analyze(file.Content)
	report := &driving.OutlineReport{
		Functions: toOutlineItems(analysis.Functions),
		Classes:   toOutlineItems(analysis.Classes),
	}
	return file, report, nil
}

func toOutlineItems(items []snippet.Item) []driving.OutlineItem {
	out := make([]driving.OutlineItem, len(items))
	for i, item := range items {
		out[i] = driving.OutlineItem{
			Name:          item.Name,
			Line:          item.Line,
			HasDocComment: item.HasDocComment,
		}
	}
	return out
}
