// Package github is a minimal GitHub REST client covering the two endpoints
// this tool needs: repository metadata lookup and repository search.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/sstitle/public-explanation/internal/explain"
)

const defaultBaseURL = "https://api.github.com"

// Client talks to the GitHub REST API. A token raises rate limits but is
// optional; this tool only reads public data.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Verbose bool
	Warn    io.Writer // rate-limit warnings and verbose notes; defaults to stderr
}

// New returns a client with sane defaults.
func New(token string, verbose bool) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Verbose: verbose,
		Warn:    os.Stderr,
	}
}

// repoJSON mirrors the subset of the repository resource we consume.
type repoJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	SizeKB      int64  `json:"size"`
	Language    string `json:"language"`
	UpdatedAt   string `json:"updated_at"`
	Private     bool   `json:"private"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

func (j repoJSON) toRepository() explain.Repository {
	return explain.Repository{
		Owner:       j.Owner.Login,
		Name:        j.Name,
		Description: j.Description,
		Stars:       j.Stars,
		SizeBytes:   j.SizeKB * 1024,
		Language:    j.Language,
		UpdatedAt:   j.UpdatedAt,
		Private:     j.Private,
	}
}

// Repo fetches metadata for owner/name. Private repositories are reported as
// not found: this tool supports public repositories only.
func (c *Client) Repo(ctx context.Context, owner, name string) (explain.Repository, error) {
	var out repoJSON
	path := fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(name))
	if err := c.get(ctx, path, nil, &out); err != nil {
		return explain.Repository{}, err
	}
	repo := out.toRepository()
	if repo.Private {
		return explain.Repository{}, fmt.Errorf("%s is private: %w", repo.FullName(), explain.ErrNotFound)
	}
	return repo, nil
}

// Search runs a repository search sorted by stars and returns up to limit
// results. Zero results is not an error here; the resolver decides that.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]explain.Repository, error) {
	c.warnIfRateLimitLow(ctx)

	var out struct {
		TotalCount int        `json:"total_count"`
		Items      []repoJSON `json:"items"`
	}
	params := url.Values{
		"q":        {query},
		"sort":     {"stars"},
		"order":    {"desc"},
		"per_page": {strconv.Itoa(limit)},
	}
	if err := c.get(ctx, "/search/repositories", params, &out); err != nil {
		return nil, err
	}

	if c.Verbose {
		fmt.Fprintf(c.Warn, "GitHub search: %d total matches for %q\n", out.TotalCount, query)
	}

	repos := make([]explain.Repository, 0, len(out.Items))
	for _, item := range out.Items {
		if item.Private {
			continue
		}
		repos = append(repos, item.toRepository())
	}
	return repos, nil
}

// warnIfRateLimitLow probes /rate_limit and warns when few search requests
// remain. Probe failures are ignored; the search itself will surface quota
// errors.
func (c *Client) warnIfRateLimitLow(ctx context.Context) {
	var out struct {
		Resources struct {
			Search struct {
				Remaining int   `json:"remaining"`
				Reset     int64 `json:"reset"`
			} `json:"search"`
		} `json:"resources"`
	}
	if err := c.get(ctx, "/rate_limit", nil, &out); err != nil {
		return
	}

	remaining := out.Resources.Search.Remaining
	if remaining < 5 {
		reset := time.Unix(out.Resources.Search.Reset, 0)
		fmt.Fprintf(c.Warn, "Warning: %d GitHub search requests remaining (resets %s). Set GITHUB_TOKEN for higher limits.\n",
			remaining, reset.Format("15:04:05"))
	} else if c.Verbose {
		fmt.Fprintf(c.Warn, "GitHub API: %d search requests remaining\n", remaining)
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.Token != "" {
		req.Header.Set("Authorization", "token "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("github request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return explain.ErrNotFound
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		if resp.Header.Get("X-Ratelimit-Remaining") == "0" || resp.StatusCode == http.StatusTooManyRequests {
			return explain.ErrRateLimited
		}
		return fmt.Errorf("github: HTTP %d for %s", resp.StatusCode, path)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("github: HTTP %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
