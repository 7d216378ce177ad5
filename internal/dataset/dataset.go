// Package dataset defines the tabular records the analysis pipeline runs on
// and their CSV encodings. Columns are identified by header name, never by
// position, and missing numeric cells stay undefined instead of collapsing
// to zero.
package dataset

import "github.com/aatrey56/fpl-analysis/internal/stats"

// Position labels as they appear in the exports.
const (
	PosGoalkeeper = "GKP"
	PosDefender   = "DEF"
	PosMidfielder = "MID"
	PosForward    = "FWD"
)

// Positions is the fixed iteration order used wherever per-position work
// must be deterministic.
var Positions = []string{PosGoalkeeper, PosDefender, PosMidfielder, PosForward}

// IsAttacking reports whether a position class is scored with the attacking
// formula (midfielders and forwards).
func IsAttacking(position string) bool {
	return position == PosMidfielder || position == PosForward
}

// PeriodRecord is one player's observed statistics for one gameweek.
// Immutable once recorded; a player accumulates one per gameweek.
type PeriodRecord struct {
	Name     string
	Position string
	Team     string
	GW       int

	Cost     stats.Value
	Selected stats.Value
	Form     stats.Value
	Status   string

	Minutes       float64
	Goals         float64
	Assists       float64
	Saves         float64
	GoalsConceded float64
	CleanSheets   float64
	OwnGoals      float64
	PensMissed    float64
	PensSaved     float64
	YellowCards   float64
	RedCards      float64
	Starts        float64
	Points        float64

	SeasonGoals   float64
	SeasonAssists float64
	XA            stats.Value
	XG            stats.Value
	XGI           stats.Value
	XGC           stats.Value

	WasHome      bool
	TeamHScore   stats.Value
	TeamAScore   stats.Value
	Opponent     string
	NextOpponent string

	Influence    stats.Value
	Creativity   stats.Value
	Threat       stats.Value
	ICTIndex     stats.Value
	BPS          float64
	Bonus        float64
	TransfersIn  float64
	TransfersOut float64
}

// Played reports whether the record describes a match that actually took
// place (both scores recorded).
func (r PeriodRecord) Played() bool {
	return r.TeamHScore.Defined() && r.TeamAScore.Defined()
}

// SeasonSummary is one player's season-to-date totals, one row per player.
type SeasonSummary struct {
	Name     string
	Position string
	Team     string

	Cost     stats.Value
	Selected stats.Value
	Form     stats.Value

	TotalMinutes  float64
	HomeGoals     float64
	AwayGoals     float64
	SeasonGoals   float64
	HomeAssists   float64
	AwayAssists   float64
	SeasonAssists float64

	TotalSaves       float64
	TotalCleanSheets float64
	TotalPoints      float64
	TotalBPS         float64
	TotalBonus       float64

	SeasonXGI stats.Value
	SeasonXGC stats.Value

	TeamGoals        float64
	TeamHomeGoals    float64
	TeamAwayGoals    float64
	TeamConceded     float64
	TeamHomeConceded float64
	TeamAwayConceded float64

	MinutesPerXGI stats.Value
	MinutesPerXGC stats.Value
	BPSPer90      float64
	BonusPer90    float64
	SavesPer90    float64
}
