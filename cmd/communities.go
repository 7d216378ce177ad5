package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-analysis/internal/analysis"
	"github.com/aatrey56/fpl-analysis/internal/community"
	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/gwmerge"
)

// Community assignment tables under the analysis directory.
const (
	performanceCommunitiesFile = "player_communities_performance.csv"
	priceFormCommunitiesFile   = "player_communities_price_form.csv"
)

var communitiesSeasonDir string

var communitiesCmd = &cobra.Command{
	Use:   "communities",
	Short: "Detect player communities in the latest gameweek's statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveSeasonDir(communitiesSeasonDir)
		if err != nil {
			return err
		}
		records, err := latestGameweek(dir)
		if err != nil {
			return err
		}

		opts := cfg.Community.CommunityOptions()
		outDir := filepath.Join(dir, analysis.AnalysisDirName)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}

		perf := community.DetectPerformance(records, opts)
		if err := writeAssignments(filepath.Join(outDir, performanceCommunitiesFile), records, perf); err != nil {
			return err
		}
		price := community.DetectPriceForm(records, opts)
		if err := writeAssignments(filepath.Join(outDir, priceFormCommunitiesFile), records, price); err != nil {
			return err
		}

		zap.L().Info("communities detected",
			zap.Int("players", len(records)),
			zap.Int("performance", len(perf)),
			zap.Int("price_form", len(price)))
		return nil
	},
}

// latestGameweek loads the most recent per-gameweek export, falling back to
// the merged table when no per-gameweek files exist.
func latestGameweek(dir string) ([]dataset.PeriodRecord, error) {
	files, err := gwmerge.FindGameweekFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return gwmerge.ReadMerged(dir)
	}
	last := files[len(files)-1]
	f, err := os.Open(last.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dataset.ReadPeriodRecords(f, filepath.Base(last.Path), last.GW)
}

func writeAssignments(path string, records []dataset.PeriodRecord, communities []community.Community) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return community.WriteAssignments(f, records, communities)
}

func init() {
	communitiesCmd.Flags().StringVar(&communitiesSeasonDir, "season-dir", "", "season folder (default: discover under data root)")
	rootCmd.AddCommand(communitiesCmd)
}
