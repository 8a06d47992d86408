package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Matchup/internal/config"
	"github.com/MikeSquared-Agency/Matchup/internal/scoring"
	"github.com/MikeSquared-Agency/Matchup/internal/store"
)

var errNoSource = errors.New("no dataset: pass --dataset or --db, or set dataset.path in the config")

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath  string
	datasetPath string
	databaseURL string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "matchupctl",
		Short: "Tournament power ratings and matchup scoring",
		Long: `Score a tournament field from a dataset file or the team_stats table,
then inspect rankings, single-team explanations, head-to-head matchups
and bracket topology.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&opts.datasetPath, "dataset", "", "path to JSON dataset")
	root.PersistentFlags().StringVar(&opts.databaseURL, "db", "", "Postgres URL for the team_stats table")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log scoring diagnostics to stderr")

	root.AddCommand(
		newRankCmd(opts),
		newTeamCmd(opts),
		newCompareCmd(opts),
		newRoundsCmd(opts),
		newFieldCmd(opts),
		newImportCmd(opts),
	)
	return root
}

func (o *options) config() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.datasetPath != "" {
		cfg.Dataset.Path = o.datasetPath
	}
	if o.databaseURL != "" {
		cfg.Database.URL = o.databaseURL
	}
	return cfg, nil
}

func (o *options) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openSource prefers an explicit --dataset file over the database.
func openSource(ctx context.Context, cfg *config.Config) (store.Source, error) {
	switch {
	case cfg.Dataset.Path != "":
		return store.NewFileSource(cfg.Dataset.Path), nil
	case cfg.Database.URL != "":
		return store.NewPostgresSource(ctx, cfg.Database.URL)
	default:
		return nil, errNoSource
	}
}

// loadField reads the configured source and scores it.
func (o *options) loadField(ctx context.Context) (*scoring.Engine, *scoring.Field, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	src, err := openSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	records, err := src.LoadTeams(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s dataset: %w", src.Name(), err)
	}

	engine := scoring.NewEngine(scoring.ConfigFrom(cfg.Scoring), o.logger())
	f, err := engine.Load(records)
	if err != nil {
		return nil, nil, fmt.Errorf("score dataset: %w", err)
	}
	return engine, f, nil
}
