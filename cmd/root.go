package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-analysis/internal/config"
	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/gwmerge"
	"github.com/aatrey56/fpl-analysis/internal/season"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "fpl-analysis",
	Short: "Fantasy Premier League analytics pipeline",
	Long:  "Collects gameweek statistics, builds team and player strength models, assembles a budget squad and detects player communities.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveSeasonDir prefers an explicit flag value over discovery under the
// configured data root.
func resolveSeasonDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return gwmerge.FindSeasonFolder(cfg.Data.Root)
}

// loadTables reads the merged gameweek table and the season summary for a
// season folder. A missing summary is computed in memory from the merged
// table instead of failing the run.
func loadTables(seasonDir string) ([]dataset.PeriodRecord, []dataset.SeasonSummary, error) {
	periods, err := gwmerge.ReadMerged(seasonDir)
	if err != nil {
		return nil, nil, err
	}
	summaries, err := season.ReadSummary(seasonDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
		zap.L().Info("season summary not found, aggregating from merged gameweeks")
		opts := season.DefaultOptions()
		opts.TopPlayers = cfg.Model.TopPlayers
		summaries = season.Build(periods, opts)
	}
	return periods, summaries, nil
}
