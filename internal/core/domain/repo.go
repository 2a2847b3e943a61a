package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// repoURLPattern extracts owner and repository from a GitHub URL. The
// host must start the input or follow a scheme, subdomain, or user
// prefix so that lookalike hosts do not match.
var repoURLPattern = regexp.MustCompile(`(?:^|[/.:@\s])github\.com/([^/\s]+)/([^/\s]+)`)

// Repo identifies a GitHub repository.
type Repo struct {
	// Owner is the user or organisation.
	Owner string

	// Name is the repository name.
	Name string
}

// String returns the "owner/name" identifier.
func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepoURL extracts the repository from a GitHub URL. Accepted
// forms include https URLs, bare "github.com/owner/repo" paths and
// URLs with extra path segments or a ".git" suffix. Anything else
// returns ErrInvalidRepoURL.
func ParseRepoURL(rawURL string) (Repo, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Repo{}, fmt.Errorf("%w: empty URL", ErrInvalidRepoURL)
	}

	m := repoURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return Repo{}, fmt.Errorf("%w: %q", ErrInvalidRepoURL, rawURL)
	}

	return Repo{
		Owner: m[1],
		Name:  strings.TrimSuffix(m[2], ".git"),
	}, nil
}
