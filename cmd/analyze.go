package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-analysis/internal/analysis"
)

var analyzeSeasonDir string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full pipeline: team model, player model, shortlists and squad",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveSeasonDir(analyzeSeasonDir)
		if err != nil {
			return err
		}
		periods, summaries, err := loadTables(dir)
		if err != nil {
			return err
		}

		params := analysis.DefaultParams()
		params.TeamOptions = cfg.Model.TeamOptions()
		params.PlayerOptions = cfg.Model.PlayerOptions()
		params.Rules = cfg.Squad.Rules()

		out := analysis.Run(periods, summaries, params)
		if err := out.Save(dir); err != nil {
			return err
		}

		zap.L().Info("analysis complete",
			zap.Strings("top_attack", out.TopAttack),
			zap.Strings("top_defense", out.TopDefense),
			zap.Int("players", len(out.Players)),
			zap.Int("assets", len(out.Assets)))
		if out.Squad.Feasible {
			zap.L().Info("squad selected",
				zap.Float64("total_cost", out.Squad.TotalCost),
				zap.Int("attempts", out.Squad.Attempts))
		} else {
			zap.L().Warn("squad selection infeasible", zap.String("reason", out.Squad.Reason))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSeasonDir, "season-dir", "", "season folder (default: discover under data root)")
	rootCmd.AddCommand(analyzeCmd)
}
