package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/squad"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Data.Root)
	assert.Equal(t, "https://fantasy.premierleague.com/api", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.Workers)
	assert.Equal(t, 5, cfg.Model.RecentWindow)
	assert.Equal(t, 50, cfg.Model.TopPlayers)
	assert.Equal(t, 0.45, cfg.Model.XGIWeight)
	assert.Equal(t, squad.DefaultBudget, cfg.Squad.Budget)
	assert.Equal(t, 5, cfg.Squad.Quotas[dataset.PosDefender])
	assert.Equal(t, 0.6, cfg.Community.SimilarityThreshold)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ConfigFileOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `
data:
  root: /srv/fpl
model:
  recent_window: 8
squad:
  budget: 95.5
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/fpl", cfg.Data.Root)
	assert.Equal(t, 8, cfg.Model.RecentWindow)
	assert.Equal(t, 95.5, cfg.Squad.Budget)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, 50, cfg.Model.TopPlayers)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FPL_LOG_LEVEL", "warn")
	t.Setenv("FPL_API_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 4, cfg.API.Workers)
}

func TestSquadConfig_RulesKeepsPositionOrder(t *testing.T) {
	sc := SquadConfig{
		Budget: 90,
		Quotas: map[string]int{
			dataset.PosForward:    3,
			dataset.PosGoalkeeper: 2,
			dataset.PosMidfielder: 5,
			dataset.PosDefender:   5,
		},
		MaxSwapAttempts: 50,
	}

	rules := sc.Rules()
	assert.Equal(t, 90.0, rules.Budget)
	assert.Equal(t, 50, rules.MaxSwapAttempts)
	require.Len(t, rules.Quotas, 4)
	assert.Equal(t, dataset.PosGoalkeeper, rules.Quotas[0].Position)
	assert.Equal(t, dataset.PosDefender, rules.Quotas[1].Position)
	assert.Equal(t, dataset.PosMidfielder, rules.Quotas[2].Position)
	assert.Equal(t, dataset.PosForward, rules.Quotas[3].Position)
	assert.Equal(t, 15, rules.Size())
}

func TestSquadConfig_RulesDropsZeroAndOrdersExtras(t *testing.T) {
	sc := SquadConfig{
		Quotas: map[string]int{
			dataset.PosGoalkeeper: 1,
			dataset.PosDefender:   0,
			"ZZZ":                 1,
			"AAA":                 1,
		},
	}

	rules := sc.Rules()
	require.Len(t, rules.Quotas, 3)
	assert.Equal(t, dataset.PosGoalkeeper, rules.Quotas[0].Position)
	assert.Equal(t, "AAA", rules.Quotas[1].Position)
	assert.Equal(t, "ZZZ", rules.Quotas[2].Position)
}

func TestModelConfig_OptionMapping(t *testing.T) {
	mc := ModelConfig{
		RecentWindow: 7, RecentOpponents: 4,
		AttackGoalsWeight: 0.7, AttackXGWeight: 0.3,
		XGIWeight: 0.5, TeamDefenseWeight: 0.4,
	}

	team := mc.TeamOptions()
	assert.Equal(t, 0.7, team.AttackGoalsWeight)
	assert.Equal(t, 4, team.RecentOpponents)

	player := mc.PlayerOptions()
	assert.Equal(t, 7, player.RecentWindow)
	assert.Equal(t, 0.5, player.XGIWeight)
	assert.Equal(t, 0.4, player.TeamDefenseWeight)
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "console"})
	assert.Error(t, err)
}
