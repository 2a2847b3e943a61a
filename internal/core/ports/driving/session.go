package driving

import (
	"context"

	"github.com/arroyo-labs/repoqa-cli/internal/core/domain"
)

// SessionService owns the per-session retrieval state: the currently
// loaded repository and its index. Loading a different repository
// replaces the state wholesale.
type SessionService interface {
	// Load ingests the repository behind the URL and makes it the
	// current question target. Returns the parsed repository and the
	// number of chunks indexed.
	Load(ctx context.Context, repoURL string) (domain.Repo, int, error)

	// Ask answers a question against the loaded repository. Query-time
	// failures are reported inside the QueryResult, never as an error;
	// the only error condition is asking before any repository is
	// loaded.
	Ask(ctx context.Context, question string) (domain.QueryResult, error)

	// CurrentRepo returns the loaded repository identifier, or the
	// empty string when nothing is loaded.
	CurrentRepo() string
}

// OutlineService analyses the structure of a single repository file.
type OutlineService interface {
	// Outline fetches the file at path and reports its functions and
	// classes together with documentation coverage.
	Outline(ctx context.Context, repoURL, path string) (*domain.SourceFile, *OutlineReport, error)
}

// OutlineReport summarises the structure of one source file.
type OutlineReport struct {
	// Functions lists discovered function names with line numbers.
	Functions []OutlineItem

	// Classes lists discovered class names with line numbers.
	Classes []OutlineItem
}

// OutlineItem is a single discovered definition.
type OutlineItem struct {
	Name          string
	Line          int
	HasDocComment bool
}
