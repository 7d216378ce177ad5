package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-analysis/internal/playermodel"
	"github.com/aatrey56/fpl-analysis/internal/squad"
	"github.com/aatrey56/fpl-analysis/internal/teammodel"
)

var (
	squadSeasonDir string
	squadBudget    float64
)

var squadCmd = &cobra.Command{
	Use:   "squad",
	Short: "Pick a full squad under budget from the current models",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveSeasonDir(squadSeasonDir)
		if err != nil {
			return err
		}
		periods, summaries, err := loadTables(dir)
		if err != nil {
			return err
		}

		teams := teammodel.Build(periods, summaries, cfg.Model.TeamOptions())
		players := playermodel.Build(summaries, periods, teams, cfg.Model.PlayerOptions())

		rules := cfg.Squad.Rules()
		if cmd.Flags().Changed("budget") {
			rules.Budget = squadBudget
		}
		result := squad.Select(players, rules)
		if !result.Feasible {
			zap.L().Warn("no feasible squad", zap.String("reason", result.Reason))
			return fmt.Errorf("squad selection infeasible: %s", result.Reason)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "POS\tNAME\tTEAM\tCOST\tSCORE")
		for _, p := range result.Players {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.3f\n", p.Position, p.Name, p.Team, p.Cost, p.TunedScore)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Printf("total cost %.1f / %.1f (%d repair attempts)\n", result.TotalCost, rules.Budget, result.Attempts)
		return nil
	},
}

func init() {
	squadCmd.Flags().StringVar(&squadSeasonDir, "season-dir", "", "season folder (default: discover under data root)")
	squadCmd.Flags().Float64Var(&squadBudget, "budget", squad.DefaultBudget, "squad budget in millions")
	rootCmd.AddCommand(squadCmd)
}
