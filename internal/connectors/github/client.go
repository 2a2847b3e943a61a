// Package github fetches repository contents from the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client wraps the go-github client with rate limiting and raw file
// downloads. A token is optional: its absence lowers the shared rate
// limit but is not an error.
type Client struct {
	gh          *gh.Client
	http        *http.Client
	rateLimiter *RateLimiter
	hasToken    bool
}

// NewClient creates a GitHub API client. An empty token means
// anonymous access.
func NewClient(ctx context.Context, token string) *Client {
	var httpClient *http.Client
	quota := AnonymousRateLimit

	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
		quota = AuthenticatedRateLimit
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = DefaultTimeout

	return &Client{
		gh:          gh.NewClient(httpClient),
		http:        httpClient,
		rateLimiter: NewRateLimiter(quota),
		hasToken:    token != "",
	}
}

// HasToken reports whether the client was configured with a token.
func (c *Client) HasToken() bool {
	return c.hasToken
}

// SetBaseURL points the client at a different API endpoint.
// Used for GitHub Enterprise and tests. The URL must end with a slash.
func (c *Client) SetBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse base URL: %w", err)
	}
	c.gh.BaseURL = u
	return nil
}

// ListDirectory fetches the contents of one directory. The contents API
// answers with either a single file descriptor or a list of descriptors;
// both shapes come back as a slice.
func (c *Client) ListDirectory(ctx context.Context, owner, repo, path string) ([]*gh.RepositoryContent, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	fileContent, dirContent, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, wrapError(err, c.rateLimiter, "get contents")
	}

	if fileContent != nil {
		return []*gh.RepositoryContent{fileContent}, nil
	}
	return dirContent, nil
}

// GetFileContent fetches and decodes the content of a single file.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	fileContent, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return "", wrapError(err, c.rateLimiter, "get contents")
	}
	if fileContent == nil {
		return "", fmt.Errorf("path %q is a directory, not a file", path)
	}

	decoded, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode content: %w", err)
	}
	return decoded, nil
}

// DownloadFile fetches a file's raw content from its download URL.
// The response body is treated as UTF-8 text.
func (c *Client) DownloadFile(ctx context.Context, downloadURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    "download failed",
			URL:        downloadURL,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// RateLimiter returns the rate limiter for external inspection.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// updateRateLimitFromResponse updates the rate limiter from GitHub
// response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}
