package binary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultGitHubAPI is the GitHub REST API base URL.
	DefaultGitHubAPI = "https://api.github.com"
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "golangci-ls/1.0"

	// releasesPerPage bounds how many releases one query inspects. GitHub
	// returns releases newest first.
	releasesPerPage = 30
	// maxErrorBody bounds how much of a failed response body is quoted.
	maxErrorBody = 512
)

// GitHubOptions configures a GitHubClient.
type GitHubOptions struct {
	// BaseURL overrides DefaultGitHubAPI.
	BaseURL string
	// Token is sent as a bearer token when set.
	Token string
	// Timeout bounds each request. Zero means no client timeout.
	Timeout time.Duration
	// HTTPClient replaces the default client; Timeout is then ignored.
	HTTPClient *http.Client
}

// GitHubClient implements ReleaseSource with the GitHub releases API.
type GitHubClient struct {
	client    *http.Client
	baseURL   string
	token     string
	userAgent string
}

// NewGitHubClient creates a release client.
func NewGitHubClient(opts GitHubOptions) *GitHubClient {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultGitHubAPI
	}

	return &GitHubClient{
		client:    client,
		baseURL:   base,
		token:     opts.Token,
		userAgent: DefaultUserAgent,
	}
}

type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type githubRelease struct {
	TagName    string        `json:"tag_name"`
	Draft      bool          `json:"draft"`
	Prerelease bool          `json:"prerelease"`
	Assets     []githubAsset `json:"assets"`
}

func (r githubRelease) toRelease() *Release {
	rel := &Release{
		Version:    r.TagName,
		Draft:      r.Draft,
		Prerelease: r.Prerelease,
		Assets:     make([]Asset, 0, len(r.Assets)),
	}
	for _, a := range r.Assets {
		rel.Assets = append(rel.Assets, Asset{Name: a.Name, DownloadURL: a.BrowserDownloadURL})
	}
	return rel
}

// LatestRelease implements ReleaseSource. It lists the newest releases of
// repo ("owner/name") and returns the first one matching opts.
func (c *GitHubClient) LatestRelease(ctx context.Context, repo string, opts ReleaseOptions) (*Release, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("invalid repository %q: want owner/name", repo)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d",
		c.baseURL, url.PathEscape(owner), url.PathEscape(name), releasesPerPage)

	releases, err := c.listReleases(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRegistry, repo, err)
	}

	for _, r := range releases {
		rel := r.toRelease()
		if opts.matches(rel) {
			return rel, nil
		}
	}

	return nil, fmt.Errorf("%w: %s has no release (require_assets=%t, pre_release=%t)",
		ErrNoRelease, repo, opts.RequireAssets, opts.PreRelease)
}

func (c *GitHubClient) listReleases(ctx context.Context, endpoint string) ([]githubRelease, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var releases []githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("decode releases: %w", err)
	}

	return releases, nil
}
