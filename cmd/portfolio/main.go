package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naserraoofi/portfolio/internal/config"
	"github.com/naserraoofi/portfolio/internal/filter"
	"github.com/naserraoofi/portfolio/internal/github"
	"github.com/naserraoofi/portfolio/internal/logging"
	"github.com/naserraoofi/portfolio/internal/models"
	"github.com/naserraoofi/portfolio/internal/pipeline"
	"github.com/naserraoofi/portfolio/internal/render"
	"github.com/naserraoofi/portfolio/internal/surrealdb"
	"github.com/naserraoofi/portfolio/internal/taxonomy"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Browse a developer's GitHub projects by topic, category and stars",
	}

	root.AddCommand(
		projectsCmd(),
		featuredCmd(),
		taxonomyCmd(),
		classifyCmd(),
		suggestCmd(),
		syncCmd(),
		statsCmd(),
	)
	return root
}

// setup loads config and builds the logger every command shares.
func setup() (*config.Config, *zap.Logger, error) {
	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// fetchRepos always goes to GitHub; nothing is cached between runs.
func fetchRepos(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]models.Repo, error) {
	gh := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken, logger)
	return gh.ListUserRepos(ctx, cfg.GitHubUser)
}

func projectsCmd() *cobra.Command {
	var (
		search        string
		categories    []string
		subcategories []string
	)

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects matching a topic search and category selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseState(search, categories, subcategories)
			if err != nil {
				return err
			}

			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			repos, err := fetchRepos(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			visible := filter.Visible(repos, st)
			logger.Debug("filtered projects",
				zap.Int("total", len(repos)),
				zap.Int("visible", len(visible)),
				zap.Bool("active", st.Active()))

			return render.Cards(cmd.OutOrStdout(), "All Projects", visible, false)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Keep projects with a topic containing this text")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Category to include (AWS, DevOps, AI); repeatable")
	cmd.Flags().StringSliceVar(&subcategories, "subcategory", nil, "Subcategory to include (e.g. Docker, NLP); repeatable")
	return cmd
}

// parseState turns flag values into a filter.State. Unknown categories are
// rejected; subcategories are free text because they match by substring.
func parseState(search string, categories, subcategories []string) (filter.State, error) {
	st := filter.State{Search: strings.TrimSpace(search)}
	for _, name := range categories {
		c, err := taxonomy.ParseCategory(name)
		if err != nil {
			return filter.State{}, err
		}
		st.Categories = append(st.Categories, c)
	}
	for _, s := range subcategories {
		if s = strings.TrimSpace(s); s != "" {
			st.Subcategories = append(st.Subcategories, s)
		}
	}
	return st, nil
}

func featuredCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "Show the top featured projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			repos, err := fetchRepos(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			return render.Cards(cmd.OutOrStdout(), "Featured Projects", filter.Featured(repos), true)
		},
	}
}

func taxonomyCmd() *cobra.Command {
	var counts bool

	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Show categories, their keywords and subcategories",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var breakdown map[taxonomy.Category]int
			if counts {
				cfg, logger, err := setup()
				if err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()

				repos, err := fetchRepos(cmd.Context(), cfg, logger)
				if err != nil {
					return err
				}
				breakdown = map[taxonomy.Category]int{}
				for _, cc := range filter.Breakdown(repos) {
					breakdown[cc.Category] = cc.Count
				}
			}

			for _, c := range taxonomy.Categories() {
				if breakdown != nil {
					fmt.Fprintf(out, "%s (%s projects)\n", c, humanize.Comma(int64(breakdown[c])))
				} else {
					fmt.Fprintln(out, c)
				}
				fmt.Fprintf(out, "  keywords:      %s\n", strings.Join(taxonomy.Keywords(c), ", "))
				fmt.Fprintf(out, "  subcategories: %s\n", strings.Join(taxonomy.Subcategories(c), ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&counts, "counts", false, "Fetch projects and count them per category")
	return cmd
}

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [topic...]",
		Short: "Show which categories and tag style a topic gets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, topic := range args {
				cats := taxonomy.CategoriesOf(topic)
				names := make([]string, len(cats))
				for i, c := range cats {
					names[i] = string(c)
				}
				if len(names) == 0 {
					names = []string{"-"}
				}
				fmt.Fprintf(out, "%s  categories: %s  style: %s\n",
					render.Tag(topic), strings.Join(names, ", "), taxonomy.TagStyle(topic))
			}
			return nil
		},
	}
}

func suggestCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest [term]",
		Short: "Suggest search terms from the topics in use",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}

			var repos []models.Repo
			if strings.TrimSpace(term) != "" {
				cfg, logger, err := setup()
				if err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()

				repos, err = fetchRepos(cmd.Context(), cfg, logger)
				if err != nil {
					return err
				}
			}

			suggestions := filter.Suggest(repos, term, limit)
			if len(suggestions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No suggestions")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Search by:")
			for _, s := range suggestions {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", s)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of suggestions")
	return cmd
}

func syncCmd() *cobra.Command {
	var enrich, force bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Snapshot projects and their categories into SurrealDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return pipeline.Run(cmd.Context(), cfg, pipeline.Options{
				Enrich: enrich,
				Force:  force,
			}, cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().BoolVar(&enrich, "enrich", false, "Generate descriptions for projects without one")
	cmd.Flags().BoolVar(&force, "force", false, "Regenerate descriptions for every project")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show stored project counts and category breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			db, err := surrealdb.NewClient(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(ctx) }()

			stats, err := db.GetStats(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Projects:  %d\n", stats.Total)
			fmt.Fprintf(out, "Described: %d\n", stats.Described)
			fmt.Fprintf(out, "Enriched:  %d\n", stats.Enriched)

			cats, err := db.GetCategoryBreakdown(ctx)
			if err != nil {
				return err
			}

			if len(cats) > 0 {
				fmt.Fprintln(out, "\nCategory breakdown:")
				for _, c := range cats {
					fmt.Fprintf(out, "  %-10s %d\n", c.Category, c.Count)
				}
			}
			return nil
		},
	}
}
