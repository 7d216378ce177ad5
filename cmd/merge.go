package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-analysis/internal/gwmerge"
)

var mergeSeasonDir string

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge the per-gameweek exports into one season table",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveSeasonDir(mergeSeasonDir)
		if err != nil {
			return err
		}
		records, err := gwmerge.MergeDir(dir)
		if err != nil {
			return err
		}
		if err := gwmerge.WriteMerged(dir, records); err != nil {
			return err
		}
		zap.L().Info("merged gameweek exports",
			zap.String("dir", dir),
			zap.Int("rows", len(records)))
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVar(&mergeSeasonDir, "season-dir", "", "season folder (default: discover under data root)")
	rootCmd.AddCommand(mergeCmd)
}
