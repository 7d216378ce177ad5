// Package playermodel joins season summaries with recent-form aggregates and
// team strength into one tuned ranking score per player.
package playermodel

import (
	"sort"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/stats"
	"github.com/aatrey56/fpl-analysis/internal/teammodel"
)

// Options are the ranking weights.
type Options struct {
	// RecentWindow is how many trailing gameweeks feed the form aggregates.
	RecentWindow int

	// FormRecentWeight and FormSeasonWeight blend recent mean points with
	// the season form indicator before dividing by cost.
	FormRecentWeight float64
	FormSeasonWeight float64

	// XGIWeight and TeamAttackWeight extend attacker scores; TeamDefenseWeight
	// extends everyone else's.
	XGIWeight         float64
	TeamAttackWeight  float64
	TeamDefenseWeight float64
}

// DefaultOptions returns the tuned weights.
func DefaultOptions() Options {
	return Options{
		RecentWindow:      5,
		FormRecentWeight:  0.6,
		FormSeasonWeight:  0.4,
		XGIWeight:         0.45,
		TeamAttackWeight:  0.35,
		TeamDefenseWeight: 0.50,
	}
}

// Row is one ranked player: the season summary plus recent form, derived
// metrics and the final tuned score.
type Row struct {
	dataset.SeasonSummary

	// Recent-form aggregates over the trailing window. Undefined when the
	// player has no rows in the window — no recent data is not the same as
	// a string of blanks.
	RecentPoints  stats.Value
	RecentXGI     stats.Value
	RecentXGC     stats.Value
	RecentMinutes stats.Value
	RecentStarts  stats.Value

	PointsPerMillion stats.Value
	XGIPer90         stats.Value
	BaseFormValue    stats.Value

	XGINorm         float64
	TeamAttackNorm  float64
	TeamDefenseNorm float64

	TunedScore float64
}

type recentForm struct {
	points  []float64
	xgi     []float64
	xgc     []float64
	minutes []float64
	starts  float64
}

// Build returns exactly one Row per season summary entry, sorted by tuned
// score descending. The sort is stable: ties keep input order, which the
// squad selector relies on.
func Build(season []dataset.SeasonSummary, periods []dataset.PeriodRecord, teams []teammodel.TeamIndex, opts Options) []Row {
	recent := recentByPlayer(periods, opts.RecentWindow)

	attackNorm, defenseNorm := teamNorms(teams)

	rows := make([]Row, 0, len(season))
	for _, s := range season {
		row := Row{SeasonSummary: s}
		if rf, ok := recent[dataset.FoldName(s.Name)]; ok {
			row.RecentPoints = stats.Mean(rf.points)
			row.RecentXGI = stats.Mean(rf.xgi)
			row.RecentXGC = stats.Mean(rf.xgc)
			row.RecentMinutes = stats.Mean(rf.minutes)
			row.RecentStarts = stats.Of(rf.starts)
		}

		row.PointsPerMillion = stats.Of(s.TotalPoints).DivBy(s.Cost)
		row.XGIPer90 = s.SeasonXGI.DivBy(stats.Of(s.TotalMinutes / 90.0))
		row.BaseFormValue = baseFormValue(row, opts)

		rows = append(rows, row)
	}

	// Normalize xGI/90 across the pool; undefined participates as zero so a
	// missing rate never outranks a real one.
	perNinety := make([]float64, len(rows))
	for i, row := range rows {
		perNinety[i] = row.XGIPer90.Or(0)
	}
	min, max, _ := stats.MinMax(perNinety)
	for i := range rows {
		rows[i].XGINorm = stats.Scale01(perNinety[i], min, max)
		rows[i].TeamAttackNorm = attackNorm[rows[i].Team]
		rows[i].TeamDefenseNorm = defenseNorm[rows[i].Team]
		rows[i].TunedScore = tunedScore(rows[i], opts)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TunedScore > rows[j].TunedScore
	})
	return rows
}

// recentByPlayer aggregates the trailing window, keyed by folded name.
// Players absent from the window are absent from the map.
func recentByPlayer(periods []dataset.PeriodRecord, window int) map[string]*recentForm {
	maxGW := 0
	for _, r := range periods {
		if r.GW > maxGW {
			maxGW = r.GW
		}
	}
	cutoff := maxGW - (window - 1)

	recent := map[string]*recentForm{}
	for _, r := range periods {
		if r.GW < cutoff {
			continue
		}
		key := dataset.FoldName(r.Name)
		rf, ok := recent[key]
		if !ok {
			rf = &recentForm{}
			recent[key] = rf
		}
		rf.points = append(rf.points, r.Points)
		if v, ok := r.XGI.Float(); ok {
			rf.xgi = append(rf.xgi, v)
		}
		if v, ok := r.XGC.Float(); ok {
			rf.xgc = append(rf.xgc, v)
		}
		rf.minutes = append(rf.minutes, r.Minutes)
		rf.starts += r.Starts
	}
	return recent
}

// baseFormValue blends whichever of recent points and season form are
// defined, then divides by cost. Undefined cost means undefined value.
func baseFormValue(row Row, opts Options) stats.Value {
	base := 0.0
	if v, ok := row.RecentPoints.Float(); ok {
		base += opts.FormRecentWeight * v
	}
	if v, ok := row.Form.Float(); ok {
		base += opts.FormSeasonWeight * v
	}
	return stats.Of(base).DivBy(row.Cost)
}

// tunedScore is the composite ranking metric. An undefined base form value
// counts as zero in this sum only; the row itself is never suppressed.
func tunedScore(row Row, opts Options) float64 {
	base := row.BaseFormValue.Or(0)
	if dataset.IsAttacking(row.Position) {
		return base + opts.XGIWeight*row.XGINorm + opts.TeamAttackWeight*row.TeamAttackNorm
	}
	return base + opts.TeamDefenseWeight*row.TeamDefenseNorm
}

// teamNorms min-max scales the fixture-adjusted attack and defense indices
// across all teams onto [0,1]. Unknown teams map to zero.
func teamNorms(teams []teammodel.TeamIndex) (attack, defense map[string]float64) {
	attackVals := make([]float64, len(teams))
	defenseVals := make([]float64, len(teams))
	for i, t := range teams {
		attackVals[i] = t.AttackIndexAdjusted
		defenseVals[i] = t.DefenseIndex
	}
	aMin, aMax, _ := stats.MinMax(attackVals)
	dMin, dMax, _ := stats.MinMax(defenseVals)

	attack = make(map[string]float64, len(teams))
	defense = make(map[string]float64, len(teams))
	for i, t := range teams {
		attack[t.Team] = stats.Scale01(attackVals[i], aMin, aMax)
		defense[t.Team] = stats.Scale01(defenseVals[i], dMin, dMax)
	}
	return attack, defense
}
