package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Matchup/internal/bracket"
	"github.com/MikeSquared-Agency/Matchup/internal/report"
	"github.com/MikeSquared-Agency/Matchup/internal/scoring"
	"github.com/MikeSquared-Agency/Matchup/internal/store"
)

func newRankCmd(opts *options) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank the field by mi_base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, f, err := opts.loadField(cmd.Context())
			if err != nil {
				return err
			}
			ranked := f.Rankings()
			if top > 0 && top < len(ranked) {
				ranked = ranked[:top]
			}
			report.PrintRankings(cmd.OutOrStdout(), ranked)
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 0, "show only the first N teams")
	return cmd
}

func newTeamCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "team <name>",
		Short: "Explain one team's rating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, f, err := opts.loadField(cmd.Context())
			if err != nil {
				return err
			}
			t, err := f.Team(args[0])
			if err != nil {
				return err
			}
			report.PrintTeam(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func parseRoundFlag(s string) (*bracket.Round, error) {
	if s == "" {
		return nil, nil
	}
	r, err := bracket.ParseRound(s)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func newCompareCmd(opts *options) *cobra.Command {
	var (
		roundFlag string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "compare <team-a> <team-b>",
		Short: "Resolve a head-to-head matchup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			round, err := parseRoundFlag(roundFlag)
			if err != nil {
				return err
			}
			engine, _, err := opts.loadField(cmd.Context())
			if err != nil {
				return err
			}
			res, err := engine.Compare(args[0], args[1], round)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			report.PrintMatchup(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&roundFlag, "round", "", "round code (R64, R32, S16, E8, F4, NCG)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newRoundsCmd(opts *options) *cobra.Command {
	var roundFlag string
	cmd := &cobra.Command{
		Use:   "rounds <seed-or-team> <seed-or-team>",
		Short: "Show where two seeds can meet",
		Long: `Show the rounds in which two seeds can meet. Arguments are seed
numbers (1-16) or team names; names need a dataset.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			round, err := parseRoundFlag(roundFlag)
			if err != nil {
				return err
			}

			var f *scoring.Field
			seeds := make([]int, 2)
			for i, arg := range args {
				if n, err := strconv.Atoi(arg); err == nil {
					seeds[i] = n
					continue
				}
				if f == nil {
					if _, f, err = opts.loadField(cmd.Context()); err != nil {
						return err
					}
				}
				t, err := f.Team(arg)
				if err != nil {
					return err
				}
				seed, ok := t.SeedValue()
				if !ok {
					return fmt.Errorf("%w: %s has no seed", bracket.ErrInvalidSeed, t.Name)
				}
				seeds[i] = seed
			}

			topo, err := bracket.Resolve(seeds[0], seeds[1], round)
			if err != nil {
				return err
			}
			report.PrintTopology(cmd.OutOrStdout(), topo)
			return nil
		},
	}
	cmd.Flags().StringVar(&roundFlag, "round", "", "check whether the seeds can meet in this round")
	return cmd
}

func newFieldCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "field",
		Short: "Show the field snapshot per metric",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, f, err := opts.loadField(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nDataset %s  |  Teams: %d\n\n", f.ID, len(f.Teams))
			report.PrintFieldStats(cmd.OutOrStdout(), f.Stats)
			return nil
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dataset.json>",
		Short: "Replace the team_stats table with a dataset file",
		Long: `Validate a JSON dataset by scoring it, then replace every row of the
team_stats table with it in one transaction. Requires --db.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Database.URL == "" {
				return fmt.Errorf("import needs a database: pass --db")
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open dataset: %w", err)
			}
			defer file.Close()
			records, err := store.DecodeDataset(file)
			if err != nil {
				return err
			}
			if _, err := scoring.BuildField(records, scoring.ConfigFrom(cfg.Scoring)); err != nil {
				return fmt.Errorf("dataset rejected: %w", err)
			}

			pg, err := store.NewPostgresSource(cmd.Context(), cfg.Database.URL)
			if err != nil {
				return err
			}
			defer pg.Close()

			if err := pg.ReplaceTeams(cmd.Context(), records); err != nil {
				return fmt.Errorf("import: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d teams\n", len(records))
			return nil
		},
	}
}
