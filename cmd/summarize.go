package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-analysis/internal/gwmerge"
	"github.com/aatrey56/fpl-analysis/internal/season"
)

var summarizeSeasonDir string

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Aggregate the merged table into a top-players season summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveSeasonDir(summarizeSeasonDir)
		if err != nil {
			return err
		}
		periods, err := gwmerge.ReadMerged(dir)
		if err != nil {
			return err
		}
		opts := season.DefaultOptions()
		opts.TopPlayers = cfg.Model.TopPlayers
		summaries := season.Build(periods, opts)
		if err := season.WriteSummary(dir, summaries); err != nil {
			return err
		}
		zap.L().Info("season summary written",
			zap.String("dir", dir),
			zap.Int("players", len(summaries)))
		return nil
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeSeasonDir, "season-dir", "", "season folder (default: discover under data root)")
	rootCmd.AddCommand(summarizeCmd)
}
