// Package teammodel builds one strength profile per team from gameweek
// records and season summaries: per-match rates, attack/defense indices and
// a fixture-adjusted attack index.
package teammodel

import (
	"sort"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/stats"
)

// Options are the model weights. They are deliberate design constants;
// override only from configuration.
type Options struct {
	// AttackGoalsWeight and AttackXGWeight blend observed goals per match
	// with mean expected goals into the attack index.
	AttackGoalsWeight float64
	AttackXGWeight    float64

	// DefenseConcededWeight and DefenseXGCWeight blend inverted concession
	// rates into the defense index.
	DefenseConcededWeight float64
	DefenseXGCWeight      float64

	// FixtureBoost scales the attack index per difficulty point away from
	// the neutral score 3.0. 0.05 means a full easy run (5) boosts +10%.
	FixtureBoost float64

	// RecentOpponents is how many trailing gameweeks stand in for the
	// upcoming schedule when no forward fixtures are known.
	RecentOpponents int
}

// DefaultOptions returns the tuned weights.
func DefaultOptions() Options {
	return Options{
		AttackGoalsWeight:     0.6,
		AttackXGWeight:        0.4,
		DefenseConcededWeight: 0.6,
		DefenseXGCWeight:      0.4,
		FixtureBoost:          0.05,
		RecentOpponents:       3,
	}
}

// Neutral fixture difficulty: applying it leaves the attack index unchanged.
const NeutralDifficulty = 3.0

// Difficulty scale bounds: 1 is the hardest run, 5 the easiest.
const (
	DifficultyMin = 1.0
	DifficultyMax = 5.0
)

// TeamIndex is one team's strength profile. Recomputed wholesale each run.
type TeamIndex struct {
	Team    string
	Matches int

	Goals    float64
	Assists  float64
	Conceded float64
	Points   float64

	GoalsPerMatch    float64
	AssistsPerMatch  float64
	ConcededPerMatch float64
	PointsPerMatch   float64

	MeanXG  float64
	MeanXGC float64

	SeasonGoals   float64
	SeasonAssists float64
	SeasonPoints  float64
	SeasonXGI     float64
	SeasonXGC     float64

	AttackIndex  float64
	DefenseIndex float64

	// UpcomingConceded is the mean goals-conceded-per-match of the resolved
	// upcoming opponents; undefined when no opponents could be resolved.
	UpcomingConceded  stats.Value
	FixtureDifficulty stats.Value

	AttackIndexAdjusted float64
}

type teamAccum struct {
	goals    float64
	assists  float64
	conceded float64
	points   float64
	xg       []float64
	xgc      []float64
	periods  map[int]struct{}
}

// Build returns exactly one TeamIndex per team present in either input,
// sorted by team name. Teams with zero observed periods get zero rates, not
// a division error.
func Build(periods []dataset.PeriodRecord, season []dataset.SeasonSummary, opts Options) []TeamIndex {
	accum := map[string]*teamAccum{}
	get := func(team string) *teamAccum {
		a, ok := accum[team]
		if !ok {
			a = &teamAccum{periods: map[int]struct{}{}}
			accum[team] = a
		}
		return a
	}

	for _, r := range periods {
		a := get(r.Team)
		a.goals += r.Goals
		a.assists += r.Assists
		a.conceded += r.GoalsConceded
		a.points += r.Points
		if xg, ok := r.XG.Float(); ok {
			a.xg = append(a.xg, xg)
		}
		if xgc, ok := r.XGC.Float(); ok {
			a.xgc = append(a.xgc, xgc)
		}
		a.periods[r.GW] = struct{}{}
	}

	// Outer union: a team appearing only in the season table still gets a
	// row, with nothing observed.
	seasonTotals := map[string]*TeamIndex{}
	for _, s := range season {
		t, ok := seasonTotals[s.Team]
		if !ok {
			t = &TeamIndex{}
			seasonTotals[s.Team] = t
		}
		t.SeasonGoals += s.SeasonGoals
		t.SeasonAssists += s.SeasonAssists
		t.SeasonPoints += s.TotalPoints
		t.SeasonXGI += s.SeasonXGI.Or(0)
		t.SeasonXGC += s.SeasonXGC.Or(0)
	}

	teams := make([]string, 0, len(accum)+len(seasonTotals))
	seen := map[string]struct{}{}
	for team := range accum {
		teams = append(teams, team)
		seen[team] = struct{}{}
	}
	for team := range seasonTotals {
		if _, ok := seen[team]; !ok {
			teams = append(teams, team)
		}
	}
	sort.Strings(teams)

	indices := make([]TeamIndex, 0, len(teams))
	for _, team := range teams {
		ti := TeamIndex{Team: team}
		if st, ok := seasonTotals[team]; ok {
			ti.SeasonGoals = st.SeasonGoals
			ti.SeasonAssists = st.SeasonAssists
			ti.SeasonPoints = st.SeasonPoints
			ti.SeasonXGI = st.SeasonXGI
			ti.SeasonXGC = st.SeasonXGC
		}
		if a, ok := accum[team]; ok {
			ti.Matches = len(a.periods)
			ti.Goals = a.goals
			ti.Assists = a.assists
			ti.Conceded = a.conceded
			ti.Points = a.points
			ti.GoalsPerMatch = stats.Div(a.goals, float64(ti.Matches)).Or(0)
			ti.AssistsPerMatch = stats.Div(a.assists, float64(ti.Matches)).Or(0)
			ti.ConcededPerMatch = stats.Div(a.conceded, float64(ti.Matches)).Or(0)
			ti.PointsPerMatch = stats.Div(a.points, float64(ti.Matches)).Or(0)
			ti.MeanXG = stats.Mean(a.xg).Or(0)
			ti.MeanXGC = stats.Mean(a.xgc).Or(0)
		}

		ti.AttackIndex = opts.AttackGoalsWeight*ti.GoalsPerMatch + opts.AttackXGWeight*ti.MeanXG
		ti.DefenseIndex = opts.DefenseConcededWeight/(1+ti.ConcededPerMatch) + opts.DefenseXGCWeight/(1+ti.MeanXGC)
		indices = append(indices, ti)
	}

	applyFixtureAdjustment(indices, periods, opts)
	return indices
}

// applyFixtureAdjustment resolves each team's upcoming opponents, scores the
// schedule on [1,5] and scales the attack index accordingly. Teams with no
// resolvable opponents keep an undefined score and fall back to the neutral
// difficulty, leaving their attack index unchanged.
func applyFixtureAdjustment(indices []TeamIndex, periods []dataset.PeriodRecord, opts Options) {
	concededByTeam := make(map[string]float64, len(indices))
	for _, ti := range indices {
		concededByTeam[ti.Team] = ti.ConcededPerMatch
	}

	upcoming := upcomingOpponents(periods, opts)

	for i := range indices {
		opponents := upcoming[indices[i].Team]
		var rates []float64
		for _, opp := range opponents {
			if gc, ok := concededByTeam[opp]; ok {
				rates = append(rates, gc)
			}
		}
		indices[i].UpcomingConceded = stats.Mean(rates)
	}

	var defined []float64
	for _, ti := range indices {
		if v, ok := ti.UpcomingConceded.Float(); ok {
			defined = append(defined, v)
		}
	}

	min, max, any := stats.MinMax(defined)
	for i := range indices {
		if v, ok := indices[i].UpcomingConceded.Float(); any && ok {
			indices[i].FixtureDifficulty = stats.Of(stats.ScaleRange(v, min, max, DifficultyMin, DifficultyMax))
		}
		score := indices[i].FixtureDifficulty.Or(NeutralDifficulty)
		indices[i].AttackIndexAdjusted = indices[i].AttackIndex * (1 + (score-NeutralDifficulty)*opts.FixtureBoost)
	}
}

// upcomingOpponents maps each team to its forthcoming opponents. Resolution
// order: explicit future-period rows past the latest played gameweek, then
// the next-opponent column, then the most recent gameweeks' opponents as a
// stand-in. The fallback knowingly conflates past schedule with future
// difficulty; that behavior is inherited from the original heuristic.
func upcomingOpponents(periods []dataset.PeriodRecord, opts Options) map[string][]string {
	maxGW := 0
	lastPlayed := 0
	for _, r := range periods {
		if r.GW > maxGW {
			maxGW = r.GW
		}
		if r.Played() && r.GW > lastPlayed {
			lastPlayed = r.GW
		}
	}
	if maxGW == 0 {
		return nil
	}

	// Future rows carry a schedule but no result yet.
	upcoming := map[string][]string{}
	for _, r := range periods {
		if r.GW > lastPlayed && r.Opponent != "" {
			upcoming[r.Team] = appendUnique(upcoming[r.Team], r.Opponent)
		}
	}
	if len(upcoming) > 0 {
		return upcoming
	}

	for _, r := range periods {
		if r.NextOpponent == "" {
			continue
		}
		if _, ok := upcoming[r.Team]; !ok {
			upcoming[r.Team] = []string{r.NextOpponent}
		}
	}
	if len(upcoming) > 0 {
		return upcoming
	}

	// Fallback: the trailing window of played opponents.
	cutoff := maxGW - (opts.RecentOpponents - 1)
	recent := map[string][]dataset.PeriodRecord{}
	for _, r := range periods {
		if r.GW >= cutoff && r.Opponent != "" {
			recent[r.Team] = append(recent[r.Team], r)
		}
	}
	for team, rows := range recent {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].GW > rows[j].GW })
		var opps []string
		for _, r := range rows {
			opps = appendUnique(opps, r.Opponent)
			if len(opps) == opts.RecentOpponents {
				break
			}
		}
		upcoming[team] = opps
	}
	return upcoming
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
