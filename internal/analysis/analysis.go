// Package analysis orchestrates one full run: team model, player model,
// shortlists and squad selection, plus the flat-file outputs under the
// season folder's analysis directory.
package analysis

import (
	"sort"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/playermodel"
	"github.com/aatrey56/fpl-analysis/internal/squad"
	"github.com/aatrey56/fpl-analysis/internal/teammodel"
)

// Params are the knobs for one run.
type Params struct {
	TeamOptions   teammodel.Options
	PlayerOptions playermodel.Options
	Rules         squad.Rules

	// TopTeams is how many attacking and defensive leaders feed the
	// best-teams shortlist.
	TopTeams int
	// AssetLimit caps the assets-from-best-teams table.
	AssetLimit int
	// ShortlistLimit caps the combined shortlist.
	ShortlistLimit int
}

// DefaultParams returns the standard run configuration.
func DefaultParams() Params {
	return Params{
		TeamOptions:    teammodel.DefaultOptions(),
		PlayerOptions:  playermodel.DefaultOptions(),
		Rules:          squad.DefaultRules(),
		TopTeams:       5,
		AssetLimit:     200,
		ShortlistLimit: 100,
	}
}

// Output is everything one run produces.
type Output struct {
	Teams      []teammodel.TeamIndex
	TopAttack  []string
	TopDefense []string
	BestTeams  []string
	Players    []playermodel.Row
	Assets     []playermodel.Row
	Squad      squad.Result
}

// Run executes the pipeline over already-loaded tables. It never touches
// the filesystem; Save does.
func Run(periods []dataset.PeriodRecord, season []dataset.SeasonSummary, p Params) Output {
	teams := teammodel.Build(periods, season, p.TeamOptions)

	out := Output{
		Teams:      teams,
		TopAttack:  topTeamsBy(teams, p.TopTeams, func(t teammodel.TeamIndex) float64 { return t.AttackIndexAdjusted }),
		TopDefense: topTeamsBy(teams, p.TopTeams, func(t teammodel.TeamIndex) float64 { return t.DefenseIndex }),
	}
	out.BestTeams = unionOrdered(out.TopAttack, out.TopDefense)

	out.Players = playermodel.Build(season, periods, teams, p.PlayerOptions)
	out.Assets = assetsForTeams(out.Players, out.BestTeams, p.AssetLimit)
	out.Squad = squad.Select(out.Players, p.Rules)
	return out
}

// topTeamsBy ranks teams by a metric and returns the leading names.
func topTeamsBy(teams []teammodel.TeamIndex, n int, metric func(teammodel.TeamIndex) float64) []string {
	ranked := make([]teammodel.TeamIndex, len(teams))
	copy(ranked, teams)
	// Stable over the name-sorted input, so equal metrics rank
	// alphabetically.
	sort.SliceStable(ranked, func(i, j int) bool { return metric(ranked[i]) > metric(ranked[j]) })

	if n > len(ranked) {
		n = len(ranked)
	}
	names := make([]string, 0, n)
	for _, t := range ranked[:n] {
		names = append(names, t.Team)
	}
	return names
}

// assetsForTeams filters the ranked pool down to the given teams,
// preserving score order.
func assetsForTeams(players []playermodel.Row, teams []string, limit int) []playermodel.Row {
	member := make(map[string]bool, len(teams))
	for _, t := range teams {
		member[t] = true
	}
	var assets []playermodel.Row
	for _, p := range players {
		if member[p.Team] {
			assets = append(assets, p)
		}
		if limit > 0 && len(assets) == limit {
			break
		}
	}
	return assets
}

func unionOrdered(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
