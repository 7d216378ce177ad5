// Package config loads application configuration from file and environment
// and owns global logger setup. Every tuned constant in the models is
// overridable from here; the defaults are the documented design values.
package config

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aatrey56/fpl-analysis/internal/community"
	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/playermodel"
	"github.com/aatrey56/fpl-analysis/internal/squad"
	"github.com/aatrey56/fpl-analysis/internal/teammodel"
)

// Config holds the full application configuration.
type Config struct {
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	API       APIConfig       `yaml:"api" mapstructure:"api"`
	Model     ModelConfig     `yaml:"model" mapstructure:"model"`
	Squad     SquadConfig     `yaml:"squad" mapstructure:"squad"`
	Community CommunityConfig `yaml:"community" mapstructure:"community"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the season data folders.
type DataConfig struct {
	Root string `yaml:"root" mapstructure:"root"`
}

// APIConfig configures the collector.
type APIConfig struct {
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
	Workers           int     `yaml:"workers" mapstructure:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts       int     `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// ModelConfig carries the team and player model weights.
type ModelConfig struct {
	RecentWindow    int `yaml:"recent_window" mapstructure:"recent_window"`
	TopPlayers      int `yaml:"top_players" mapstructure:"top_players"`
	RecentOpponents int `yaml:"recent_opponents" mapstructure:"recent_opponents"`

	AttackGoalsWeight     float64 `yaml:"attack_goals_weight" mapstructure:"attack_goals_weight"`
	AttackXGWeight        float64 `yaml:"attack_xg_weight" mapstructure:"attack_xg_weight"`
	DefenseConcededWeight float64 `yaml:"defense_conceded_weight" mapstructure:"defense_conceded_weight"`
	DefenseXGCWeight      float64 `yaml:"defense_xgc_weight" mapstructure:"defense_xgc_weight"`
	FixtureBoost          float64 `yaml:"fixture_boost" mapstructure:"fixture_boost"`

	FormRecentWeight  float64 `yaml:"form_recent_weight" mapstructure:"form_recent_weight"`
	FormSeasonWeight  float64 `yaml:"form_season_weight" mapstructure:"form_season_weight"`
	XGIWeight         float64 `yaml:"xgi_weight" mapstructure:"xgi_weight"`
	TeamAttackWeight  float64 `yaml:"team_attack_weight" mapstructure:"team_attack_weight"`
	TeamDefenseWeight float64 `yaml:"team_defense_weight" mapstructure:"team_defense_weight"`
}

// SquadConfig configures squad selection.
type SquadConfig struct {
	Budget          float64        `yaml:"budget" mapstructure:"budget"`
	Quotas          map[string]int `yaml:"quotas" mapstructure:"quotas"`
	MaxSwapAttempts int            `yaml:"max_swap_attempts" mapstructure:"max_swap_attempts"`
}

// CommunityConfig configures community detection.
type CommunityConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
	CostThreshold       float64 `yaml:"cost_threshold" mapstructure:"cost_threshold"`
	FormThreshold       float64 `yaml:"form_threshold" mapstructure:"form_threshold"`
	Resolution          float64 `yaml:"resolution" mapstructure:"resolution"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FPL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data.root", ".")
	v.SetDefault("api.base_url", "https://fantasy.premierleague.com/api")
	v.SetDefault("api.user_agent", "fpl-analysis/1.0")
	v.SetDefault("api.workers", 10)
	v.SetDefault("api.requests_per_second", 5.0)
	v.SetDefault("api.timeout_secs", 20)
	v.SetDefault("api.max_attempts", 3)
	v.SetDefault("model.recent_window", 5)
	v.SetDefault("model.top_players", 50)
	v.SetDefault("model.recent_opponents", 3)
	v.SetDefault("model.attack_goals_weight", 0.6)
	v.SetDefault("model.attack_xg_weight", 0.4)
	v.SetDefault("model.defense_conceded_weight", 0.6)
	v.SetDefault("model.defense_xgc_weight", 0.4)
	v.SetDefault("model.fixture_boost", 0.05)
	v.SetDefault("model.form_recent_weight", 0.6)
	v.SetDefault("model.form_season_weight", 0.4)
	v.SetDefault("model.xgi_weight", 0.45)
	v.SetDefault("model.team_attack_weight", 0.35)
	v.SetDefault("model.team_defense_weight", 0.50)
	v.SetDefault("squad.budget", squad.DefaultBudget)
	v.SetDefault("squad.quotas", map[string]int{
		dataset.PosGoalkeeper: 2,
		dataset.PosDefender:   5,
		dataset.PosMidfielder: 5,
		dataset.PosForward:    3,
	})
	v.SetDefault("squad.max_swap_attempts", squad.DefaultMaxSwapAttempts)
	v.SetDefault("community.similarity_threshold", 0.6)
	v.SetDefault("community.cost_threshold", 1.0)
	v.SetDefault("community.form_threshold", 1.5)
	v.SetDefault("community.resolution", 1.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// TeamOptions maps the configured weights onto the team model.
func (c ModelConfig) TeamOptions() teammodel.Options {
	return teammodel.Options{
		AttackGoalsWeight:     c.AttackGoalsWeight,
		AttackXGWeight:        c.AttackXGWeight,
		DefenseConcededWeight: c.DefenseConcededWeight,
		DefenseXGCWeight:      c.DefenseXGCWeight,
		FixtureBoost:          c.FixtureBoost,
		RecentOpponents:       c.RecentOpponents,
	}
}

// PlayerOptions maps the configured weights onto the player model.
func (c ModelConfig) PlayerOptions() playermodel.Options {
	return playermodel.Options{
		RecentWindow:      c.RecentWindow,
		FormRecentWeight:  c.FormRecentWeight,
		FormSeasonWeight:  c.FormSeasonWeight,
		XGIWeight:         c.XGIWeight,
		TeamAttackWeight:  c.TeamAttackWeight,
		TeamDefenseWeight: c.TeamDefenseWeight,
	}
}

// Rules maps the configured squad constraints onto selection rules. The
// standard positions keep their fixed order; any extra configured position
// classes follow alphabetically so the result stays deterministic.
func (c SquadConfig) Rules() squad.Rules {
	rules := squad.Rules{
		Budget:          c.Budget,
		MaxSwapAttempts: c.MaxSwapAttempts,
	}
	used := map[string]bool{}
	for _, pos := range dataset.Positions {
		if count, ok := c.Quotas[pos]; ok && count > 0 {
			rules.Quotas = append(rules.Quotas, squad.Quota{Position: pos, Count: count})
			used[pos] = true
		}
	}
	var extra []string
	for pos, count := range c.Quotas {
		if !used[pos] && count > 0 {
			extra = append(extra, pos)
		}
	}
	sort.Strings(extra)
	for _, pos := range extra {
		rules.Quotas = append(rules.Quotas, squad.Quota{Position: pos, Count: c.Quotas[pos]})
	}
	return rules
}

// CommunityOptions maps the configured thresholds onto detection options.
func (c CommunityConfig) CommunityOptions() community.Options {
	return community.Options{
		SimilarityThreshold: c.SimilarityThreshold,
		CostThreshold:       c.CostThreshold,
		FormThreshold:       c.FormThreshold,
		Resolution:          c.Resolution,
	}
}
