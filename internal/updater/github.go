package updater

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// defaultAPIBase is the public GitHub API endpoint. Tests override BaseURL.
const defaultAPIBase = "https://api.github.com"

// ErrNoReleases is returned when the repository has no published releases.
var ErrNoReleases = errors.New("no releases found")

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// Release is the subset of the GitHub release payload the updater needs.
type Release struct {
	TagName string  `json:"tag_name"`
	Name    string  `json:"name"`
	Body    string  `json:"body"`
	Assets  []Asset `json:"assets"`
}

// Asset looks up a release asset by name.
func (r *Release) Asset(name string) (*Asset, bool) {
	for i := range r.Assets {
		if r.Assets[i].Name == name {
			return &r.Assets[i], true
		}
	}
	return nil, false
}

// GitHubClient fetches release metadata and assets.
type GitHubClient struct {
	BaseURL string
	Owner   string
	Repo    string

	httpClient *http.Client
}

// NewGitHubClient creates a client for the given repository.
func NewGitHubClient(owner, repo string) *GitHubClient {
	return &GitHubClient{
		BaseURL:    defaultAPIBase,
		Owner:      owner,
		Repo:       repo,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// LatestRelease fetches the most recent published release.
func (c *GitHubClient) LatestRelease(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.BaseURL, c.Owner, c.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNoReleases
	default:
		return nil, fmt.Errorf("fetching latest release: unexpected status %s", resp.Status)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decoding release: %w", err)
	}
	return &release, nil
}

// FetchAsset downloads a small asset fully into memory. Used for the
// release manifest.
func (c *GitHubClient) FetchAsset(ctx context.Context, asset *Asset) ([]byte, error) {
	resp, err := c.get(ctx, asset.DownloadURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", asset.Name, err)
	}
	return data, nil
}

// DownloadAsset streams an asset to the given path.
func (c *GitHubClient) DownloadAsset(ctx context.Context, asset *Asset, dest string) error {
	resp, err := c.get(ctx, asset.DownloadURL)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o755)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("downloading %s: %w", asset.Name, err)
	}
	return nil
}

func (c *GitHubClient) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building download request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}
	return resp, nil
}
