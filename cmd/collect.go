package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/aatrey56/fpl-analysis/internal/collect"
	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/gwmerge"
	"github.com/aatrey56/fpl-analysis/internal/resilience"
)

var collectForce bool

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fetch the current gameweek's statistics into the season folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := collect.NewClient()
		client.BaseURL = cfg.API.BaseURL
		client.UserAgent = cfg.API.UserAgent
		client.HTTP = &http.Client{Timeout: time.Duration(cfg.API.TimeoutSecs) * time.Second}
		client.Limiter = rate.NewLimiter(rate.Limit(cfg.API.RequestsPerSecond), 1)
		retry := resilience.DefaultRetryConfig()
		retry.MaxAttempts = cfg.API.MaxAttempts
		retry.OnRetry = func(attempt int, err error) {
			zap.L().Warn("retrying request", zap.Int("attempt", attempt), zap.Error(err))
		}
		client.Retry = retry

		collector := collect.NewCollector(client, zap.L())
		collector.Workers = cfg.API.Workers

		snapshot, err := collector.CollectCurrent(cmd.Context())
		if err != nil {
			return err
		}

		seasonDir := filepath.Join(cfg.Data.Root, gwmerge.SeasonFolderPrefix+snapshot.Season)
		if err := os.MkdirAll(seasonDir, 0o755); err != nil {
			return err
		}
		outPath := filepath.Join(seasonDir, fmt.Sprintf("FPL_Data_GW_%d.csv", snapshot.GW))
		if !collectForce {
			if _, err := os.Stat(outPath); err == nil {
				zap.L().Info("gameweek export already exists, skipping", zap.String("path", outPath))
				return nil
			}
		}

		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := dataset.WritePeriodRecords(f, snapshot.Records); err != nil {
			return err
		}
		zap.L().Info("gameweek export written",
			zap.String("path", outPath),
			zap.Int("gw", snapshot.GW),
			zap.Int("rows", len(snapshot.Records)))
		return nil
	},
}

func init() {
	collectCmd.Flags().BoolVar(&collectForce, "force", false, "overwrite an existing gameweek export")
	rootCmd.AddCommand(collectCmd)
}
