package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/naserraoofi/portfolio/internal/models"
)

// perPage is the largest page the API serves. Only the first page is read.
const perPage = 100

// Client is a thin wrapper around the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a client for baseURL (normally https://api.github.com).
// token may be empty; unauthenticated requests get a lower rate limit.
func NewClient(baseURL, token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// ListUserRepos returns the public repositories owned by user, most recently
// updated first.
func (c *Client) ListUserRepos(ctx context.Context, user string) ([]models.Repo, error) {
	u := fmt.Sprintf("%s/users/%s/repos?per_page=%d&sort=updated", c.baseURL, url.PathEscape(user), perPage)

	var nodes []repoNode
	if err := c.getJSON(ctx, u, &nodes); err != nil {
		return nil, fmt.Errorf("listing repos for %s: %w", user, err)
	}

	repos := make([]models.Repo, 0, len(nodes))
	for _, n := range nodes {
		repos = append(repos, nodeToRepo(n))
	}
	c.logger.Debug("fetched repos", zap.String("user", user), zap.Int("count", len(repos)))
	return repos, nil
}

// --- internal ---

type repoNode struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     *string  `json:"description"`
	HTMLURL         string   `json:"html_url"`
	Homepage        *string  `json:"homepage"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	Language        *string  `json:"language"`
	Topics          []string `json:"topics"`
}

func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "portfolio")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GitHub API returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

func nodeToRepo(n repoNode) models.Repo {
	r := models.Repo{
		ID:          n.ID,
		Name:        n.Name,
		FullName:    n.FullName,
		Description: n.Description,
		URL:         n.HTMLURL,
		Stars:       n.StargazersCount,
		Forks:       n.ForksCount,
		Language:    n.Language,
	}

	if n.Homepage != nil && *n.Homepage != "" {
		r.HomepageURL = n.Homepage
	}

	topics := n.Topics
	if topics == nil {
		topics = []string{}
	}
	r.Topics = topics

	return r
}
