package github

import (
	"context"
	"path"
	"strings"

	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
	"github.com/arroyo-labs/repoqa-cli/internal/core/ports/driven"
	"github.com/arroyo-labs/repoqa-cli/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.RepoFetcher = (*Fetcher)(nil)

// codeExtensions is the recognised source-code extension set.
var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".java": true, ".cpp": true, ".h": true,
	".cs": true, ".rb": true, ".go": true, ".ts": true, ".tsx": true,
	".jsx": true,
}

// IsCodeFile reports whether a file name has a recognised source-code
// extension.
func IsCodeFile(name string) bool {
	return codeExtensions[strings.ToLower(path.Ext(name))]
}

// Fetcher lists and downloads source files from GitHub repositories.
type Fetcher struct {
	client *Client
}

// NewFetcher creates a fetcher on top of an API client.
func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{client: client}
}

// FetchRepo walks the repository's directory tree and downloads every
// recognised source file. Traversal uses an explicit worklist so deep
// trees cannot exhaust the call stack. Listing failures abort the
// fetch; individual download failures are logged and skipped.
func (f *Fetcher) FetchRepo(ctx context.Context, repo domain.Repo) ([]domain.SourceFile, error) {
	logger.Section("Repository Fetch")
	logger.Info("Fetching %s", repo)

	var files []domain.SourceFile
	worklist := []string{""}

	for len(worklist) > 0 {
		dir := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		entries, err := f.client.ListDirectory(ctx, repo.Owner, repo.Name, dir)
		if err != nil {
			return nil, ToDomain(err, f.client.HasToken())
		}
		logger.Debug("Listed %q: %d entries", dir, len(entries))

		for _, entry := range entries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			switch entry.GetType() {
			case "dir":
				worklist = append(worklist, entry.GetPath())

			case "file":
				name := entry.GetName()
				if !IsCodeFile(name) {
					continue
				}

				content, err := f.client.DownloadFile(ctx, entry.GetDownloadURL())
				if err != nil {
					logger.Warn("skipping %s: %v", entry.GetPath(), err)
					continue
				}

				files = append(files, domain.SourceFile{
					Name:    name,
					Path:    entry.GetPath(),
					Ext:     strings.ToLower(path.Ext(name)),
					Content: content,
				})
			}
		}
	}

	logger.Info("Fetched %d source files", len(files))
	return files, nil
}

// FetchFile downloads a single file by repository path.
func (f *Fetcher) FetchFile(ctx context.Context, repo domain.Repo, filePath string) (*domain.SourceFile, error) {
	content, err := f.client.GetFileContent(ctx, repo.Owner, repo.Name, filePath)
	if err != nil {
		return nil, ToDomain(err, f.client.HasToken())
	}

	name := path.Base(filePath)
	return &domain.SourceFile{
		Name:    name,
		Path:    filePath,
		Ext:     strings.ToLower(path.Ext(name)),
		Content: content,
	}, nil
}
