package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/tallywatch/tallywatch/config"
	"github.com/tallywatch/tallywatch/internal/gitsource"
	"github.com/tallywatch/tallywatch/internal/revcache"
	"github.com/tallywatch/tallywatch/internal/snapshot"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "tallywatch",
		Usage:   "Election snapshot reports from a tracked results file's git history",
		Version: "1.0.0",
		Commands: []*cli.Command{
			ReportCmd(),
			StatesCmd(),
			CacheCmd(),
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		}, append(commonFlags(), reportFlags()...)...),
		// Running with no subcommand generates the full report set,
		// matching the original single-script behavior.
		Action: reportAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to the Git repository holding the results file",
		},
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Repository-relative path of the tracked results file",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "Directory for per-revision parse cache entries",
		},
		&cli.BoolFlag{
			Name:  "git-cli",
			Usage: "Read history through the git binary instead of go-git",
		},
	}
}

// loadConfig loads configuration from file or defaults and applies CLI
// overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if repo := c.String("repo"); repo != "" {
		cfg.Repo = repo
	}
	if file := c.String("file"); file != "" {
		cfg.TrackedFile = file
	}
	if cacheDir := c.String("cache-dir"); cacheDir != "" {
		cfg.CacheDir = cacheDir
	}
	if patterns := c.StringSlice("battleground"); len(patterns) > 0 {
		cfg.Filters.Battlegrounds = patterns
	}
	if outDir := c.String("out-dir"); outDir != "" {
		cfg.Output.Dir = outDir
	}
	if siteURL := c.String("site-url"); siteURL != "" {
		cfg.Site.URL = siteURL
	}

	return cfg, nil
}

// buildSeries runs the extraction pipeline for the configured file.
func buildSeries(ctx context.Context, c *cli.Context, cfg *config.Config) (snapshot.Series, error) {
	history, err := gitsource.NewFileHistory(gitsource.Options{
		RepoPath:  cfg.Repo,
		UseGitCLI: c.Bool("git-cli"),
	})
	if err != nil {
		return snapshot.Series{}, err
	}

	store := revcache.NewStore(cfg.CacheDir, revcache.SchemaVersion)

	agg := snapshot.NewAggregator(history, history, store, snapshot.Options{
		TrackedFile: cfg.TrackedFile,
		Warnf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		},
	})

	return agg.Aggregate(ctx)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
