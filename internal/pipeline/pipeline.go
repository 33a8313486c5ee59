package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/naserraoofi/portfolio/internal/config"
	"github.com/naserraoofi/portfolio/internal/github"
	"github.com/naserraoofi/portfolio/internal/llm"
	"github.com/naserraoofi/portfolio/internal/models"
	"github.com/naserraoofi/portfolio/internal/surrealdb"
	"github.com/naserraoofi/portfolio/internal/taxonomy"
)

// enrichConcurrency bounds in-flight LLM calls.
const enrichConcurrency = 5

type Options struct {
	Enrich bool
	Force  bool
}

type Fetcher interface {
	ListUserRepos(ctx context.Context, user string) ([]models.Repo, error)
}

type Store interface {
	InitSchema(ctx context.Context) error
	UpsertRepo(ctx context.Context, r models.Repo) error
	GetAllRepos(ctx context.Context) ([]models.Repo, error)
	GetUndescribedRepos(ctx context.Context) ([]models.Repo, error)
	UpdateSummary(ctx context.Context, fullName, summary string) error
}

type Describer interface {
	Describe(ctx context.Context, repo models.Repo) (*models.SummaryResult, error)
}

// Syncer snapshots the live repo list into the store.
type Syncer struct {
	Fetcher   Fetcher
	Store     Store
	Describer Describer
	User      string
	Out       io.Writer
	Logger    *zap.Logger
}

// Run wires the concrete clients from cfg and performs one sync.
func Run(ctx context.Context, cfg *config.Config, opts Options, out io.Writer, logger *zap.Logger) error {
	fmt.Fprintln(out, "Connecting to SurrealDB...")
	db, err := surrealdb.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(ctx) }()

	s := &Syncer{
		Fetcher: github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken, logger),
		Store:   db,
		User:    cfg.GitHubUser,
		Out:     out,
		Logger:  logger,
	}
	if opts.Enrich {
		s.Describer = llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	}
	return s.Sync(ctx, opts)
}

func (s *Syncer) Sync(ctx context.Context, opts Options) error {
	if err := s.Store.InitSchema(ctx); err != nil {
		return err
	}

	// Step 1: Fetch the live list
	fmt.Fprintf(s.Out, "Fetching repos for %s from GitHub...\n", s.User)
	repos, err := s.Fetcher.ListUserRepos(ctx, s.User)
	if err != nil {
		return fmt.Errorf("fetching repos: %w", err)
	}
	fmt.Fprintf(s.Out, "Fetched %d repos\n", len(repos))

	// Step 2: Classify and upsert
	for i, repo := range repos {
		repo.Categories = categoryNames(repo.Topics)
		if err := s.Store.UpsertRepo(ctx, repo); err != nil {
			return err
		}
		if (i+1)%50 == 0 || i+1 == len(repos) {
			fmt.Fprintf(s.Out, "  Upserted %d/%d\n", i+1, len(repos))
		}
	}

	if !opts.Enrich || s.Describer == nil {
		return nil
	}

	// Step 3: Describe repos that have nothing to show on their card
	var toEnrich []models.Repo
	if opts.Force {
		toEnrich, err = s.Store.GetAllRepos(ctx)
	} else {
		toEnrich, err = s.Store.GetUndescribedRepos(ctx)
	}
	if err != nil {
		return err
	}

	if len(toEnrich) == 0 {
		fmt.Fprintln(s.Out, "Every repo already has a description")
		return nil
	}

	fmt.Fprintf(s.Out, "Generating descriptions for %d repos...\n", len(toEnrich))
	n := s.enrich(ctx, toEnrich)
	fmt.Fprintf(s.Out, "Enrichment complete (%d repos)\n", n)
	return nil
}

// enrich returns how many repos got a stored summary. Per-repo failures are
// logged and skipped.
func (s *Syncer) enrich(ctx context.Context, repos []models.Repo) int64 {
	var done atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)

	for _, repo := range repos {
		g.Go(func() error {
			result, err := s.Describer.Describe(gCtx, repo)
			if err != nil {
				s.logger().Warn("describing repo", zap.String("repo", repo.FullName), zap.Error(err))
				return nil
			}

			if err := s.Store.UpdateSummary(gCtx, repo.FullName, result.Summary); err != nil {
				s.logger().Warn("storing summary", zap.String("repo", repo.FullName), zap.Error(err))
				return nil
			}

			n := done.Add(1)
			if n%10 == 0 || int(n) == len(repos) {
				fmt.Fprintf(s.Out, "  Described %d/%d\n", n, len(repos))
			}
			return nil
		})
	}

	_ = g.Wait()
	return done.Load()
}

func (s *Syncer) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func categoryNames(topics []string) []string {
	cats := taxonomy.CategoriesOfRepo(topics)
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return out
}
