package surrealdb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	sdk "github.com/surrealdb/surrealdb.go"

	"github.com/naserraoofi/portfolio/internal/config"
	"github.com/naserraoofi/portfolio/internal/models"
)

type Client struct {
	db *sdk.DB
}

func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.SurrealURL == "" {
		return nil, fmt.Errorf("SURREAL_URL is not set")
	}

	db, err := sdk.FromEndpointURLString(ctx, cfg.SurrealURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, sdk.Auth{
		Namespace: cfg.SurrealNS,
		Database:  cfg.SurrealDB,
		Username:  cfg.SurrealUser,
		Password:  cfg.SurrealPass,
	}); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("signing in: %w", err)
	}

	if err := db.Use(ctx, cfg.SurrealNS, cfg.SurrealDB); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("selecting ns/db: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Close(ctx)
}

const schema = `
DEFINE TABLE IF NOT EXISTS project SCHEMAFULL;

DEFINE FIELD IF NOT EXISTS github_id    ON TABLE project TYPE int;
DEFINE FIELD IF NOT EXISTS name         ON TABLE project TYPE string;
DEFINE FIELD IF NOT EXISTS full_name    ON TABLE project TYPE string;
DEFINE FIELD IF NOT EXISTS description  ON TABLE project TYPE option<string>;
DEFINE FIELD IF NOT EXISTS url          ON TABLE project TYPE string;
DEFINE FIELD IF NOT EXISTS homepage_url ON TABLE project TYPE option<string>;
DEFINE FIELD IF NOT EXISTS stars        ON TABLE project TYPE int;
DEFINE FIELD IF NOT EXISTS forks        ON TABLE project TYPE int;
DEFINE FIELD IF NOT EXISTS language     ON TABLE project TYPE option<string>;
DEFINE FIELD IF NOT EXISTS topics       ON TABLE project TYPE array<string>;
DEFINE FIELD IF NOT EXISTS categories   ON TABLE project TYPE array<string>;
DEFINE FIELD IF NOT EXISTS ai_summary   ON TABLE project TYPE option<string>;
DEFINE FIELD IF NOT EXISTS fetched_at   ON TABLE project TYPE datetime;
DEFINE FIELD IF NOT EXISTS enriched_at  ON TABLE project TYPE option<datetime>;

DEFINE INDEX IF NOT EXISTS idx_full_name ON TABLE project FIELDS full_name UNIQUE;
`

func (c *Client) InitSchema(ctx context.Context) error {
	_, err := sdk.Query[any](ctx, c.db, schema, nil)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

// UpsertRepo stores a snapshot of r keyed by its GitHub id. Categories are
// stored as computed by the caller so the breakdown query does not need the
// keyword tables.
func (c *Client) UpsertRepo(ctx context.Context, r models.Repo) error {
	_, err := sdk.Query[any](ctx, c.db,
		`UPSERT type::thing("project", $id) MERGE $data`,
		map[string]any{
			"id":   strconv.FormatInt(r.ID, 10),
			"data": repoData(r, time.Now().UTC()),
		})
	if err != nil {
		return fmt.Errorf("upserting %s: %w", r.FullName, err)
	}
	return nil
}

// repoData only includes non-nil optional fields to avoid the CBOR NULL vs
// SurrealDB NONE mismatch.
func repoData(r models.Repo, fetchedAt time.Time) map[string]any {
	data := map[string]any{
		"github_id":  r.ID,
		"name":       r.Name,
		"full_name":  r.FullName,
		"url":        r.URL,
		"stars":      r.Stars,
		"forks":      r.Forks,
		"fetched_at": fetchedAt,
	}
	if r.Description != nil {
		data["description"] = *r.Description
	}
	if r.HomepageURL != nil {
		data["homepage_url"] = *r.HomepageURL
	}
	if r.Language != nil {
		data["language"] = *r.Language
	}
	data["topics"] = nonNil(r.Topics)
	data["categories"] = nonNil(r.Categories)
	return data
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// GetUndescribedRepos returns projects with neither a GitHub description nor
// a generated summary.
func (c *Client) GetUndescribedRepos(ctx context.Context) ([]models.Repo, error) {
	return c.selectRepos(ctx,
		`SELECT `+repoFields+` FROM project
		WHERE (description IS NONE OR description = "") AND ai_summary IS NONE`)
}

func (c *Client) GetAllRepos(ctx context.Context) ([]models.Repo, error) {
	return c.selectRepos(ctx, `SELECT `+repoFields+` FROM project ORDER BY stars DESC`)
}

// repoFields maps stored columns back onto models.Repo. The record id is a
// SurrealDB thing, so the GitHub id is read from github_id instead.
const repoFields = `github_id AS id, name, full_name, description, url, homepage_url,
	stars, forks, language, topics, categories, ai_summary`

func (c *Client) selectRepos(ctx context.Context, query string) ([]models.Repo, error) {
	results, err := sdk.Query[[]models.Repo](ctx, c.db, query, nil)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	if len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

func (c *Client) UpdateSummary(ctx context.Context, fullName, summary string) error {
	_, err := sdk.Query[any](ctx, c.db,
		`UPDATE project SET
			ai_summary = $ai_summary,
			enriched_at = time::now()
		WHERE full_name = $full_name`,
		map[string]any{
			"full_name":  fullName,
			"ai_summary": summary,
		})
	if err != nil {
		return fmt.Errorf("updating summary for %s: %w", fullName, err)
	}
	return nil
}

type Stats struct {
	Total     int
	Described int
	Enriched  int
}

func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	results, err := sdk.Query[[]map[string]any](ctx, c.db,
		`SELECT
			count() AS total,
			math::sum(IF description IS NOT NONE AND description != "" THEN 1 ELSE 0 END) AS described,
			math::sum(IF ai_summary IS NOT NONE THEN 1 ELSE 0 END) AS enriched
		FROM project GROUP ALL`,
		nil)
	if err != nil {
		return nil, fmt.Errorf("getting stats: %w", err)
	}
	if len(*results) == 0 || len((*results)[0].Result) == 0 {
		return &Stats{}, nil
	}
	row := (*results)[0].Result[0]
	return &Stats{
		Total:     toInt(row["total"]),
		Described: toInt(row["described"]),
		Enriched:  toInt(row["enriched"]),
	}, nil
}

type CategoryCount struct {
	Category string
	Count    int
}

func (c *Client) GetCategoryBreakdown(ctx context.Context) ([]CategoryCount, error) {
	// Fetch stored categories and count in Go
	results, err := sdk.Query[[]models.Repo](ctx, c.db,
		`SELECT categories FROM project`, nil)
	if err != nil {
		return nil, fmt.Errorf("getting categories: %w", err)
	}
	if len(*results) == 0 {
		return nil, nil
	}
	return countCategories((*results)[0].Result), nil
}

func countCategories(repos []models.Repo) []CategoryCount {
	counts := map[string]int{}
	var order []string
	for _, r := range repos {
		for _, cat := range r.Categories {
			if _, seen := counts[cat]; !seen {
				order = append(order, cat)
			}
			counts[cat]++
		}
	}
	out := make([]CategoryCount, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryCount{Category: cat, Count: counts[cat]})
	}
	return out
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	default:
		return 0
	}
}
