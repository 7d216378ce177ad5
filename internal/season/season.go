// Package season condenses merged gameweek records into one season summary
// row per player: totals, home/away splits, team-level goal tallies with
// match deduplication, and per-90 rates.
package season

import (
	"fmt"
	"sort"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/stats"
)

// DefaultTopPlayers is how many players the summary keeps, ranked by total
// points.
const DefaultTopPlayers = 50

// Options configure the aggregation.
type Options struct {
	// TopPlayers caps the output at the N highest-scoring players.
	// Zero or negative keeps everyone.
	TopPlayers int
}

// DefaultOptions returns the standard aggregation settings.
func DefaultOptions() Options {
	return Options{TopPlayers: DefaultTopPlayers}
}

type playerAccum struct {
	first dataset.PeriodRecord
	rows  []dataset.PeriodRecord
}

type teamTotals struct {
	goals        float64
	homeGoals    float64
	awayGoals    float64
	conceded     float64
	homeConceded float64
	awayConceded float64
}

// Build aggregates merged gameweek records into season summaries, sorted by
// total points descending and capped per Options.
func Build(periods []dataset.PeriodRecord, opts Options) []dataset.SeasonSummary {
	players := map[string]*playerAccum{}
	var order []string
	for _, r := range periods {
		key := dataset.FoldName(r.Name)
		p, ok := players[key]
		if !ok {
			p = &playerAccum{first: r}
			players[key] = p
			order = append(order, key)
		}
		p.rows = append(p.rows, r)
	}

	teams := teamStats(periods)

	summaries := make([]dataset.SeasonSummary, 0, len(order))
	for _, key := range order {
		p := players[key]
		s := summarize(p)
		if t, ok := teams[s.Team]; ok {
			s.TeamGoals = t.goals
			s.TeamHomeGoals = t.homeGoals
			s.TeamAwayGoals = t.awayGoals
			s.TeamConceded = t.conceded
			s.TeamHomeConceded = t.homeConceded
			s.TeamAwayConceded = t.awayConceded
		}
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalPoints > summaries[j].TotalPoints
	})
	if opts.TopPlayers > 0 && len(summaries) > opts.TopPlayers {
		summaries = summaries[:opts.TopPlayers]
	}
	return summaries
}

func summarize(p *playerAccum) dataset.SeasonSummary {
	s := dataset.SeasonSummary{
		Name:     p.first.Name,
		Position: p.first.Position,
		Team:     p.first.Team,
	}

	for _, r := range p.rows {
		// Identity-ish fields: first defined observation wins.
		if !s.Cost.Defined() {
			s.Cost = r.Cost
		}
		if !s.Selected.Defined() {
			s.Selected = r.Selected
		}
		if !s.Form.Defined() {
			s.Form = r.Form
		}
		if !s.SeasonXGI.Defined() {
			s.SeasonXGI = r.XGI
		}
		if !s.SeasonXGC.Defined() {
			s.SeasonXGC = r.XGC
		}

		s.TotalMinutes += r.Minutes
		if r.WasHome {
			s.HomeGoals += r.Goals
			s.HomeAssists += r.Assists
		} else {
			s.AwayGoals += r.Goals
			s.AwayAssists += r.Assists
		}
		// Season counters in the export are cumulative; the max is the
		// season-to-date value.
		if r.SeasonGoals > s.SeasonGoals {
			s.SeasonGoals = r.SeasonGoals
		}
		if r.SeasonAssists > s.SeasonAssists {
			s.SeasonAssists = r.SeasonAssists
		}
		s.TotalSaves += r.Saves
		s.TotalCleanSheets += r.CleanSheets
		s.TotalPoints += r.Points
		s.TotalBPS += r.BPS
		s.TotalBonus += r.Bonus
	}

	if xgi, ok := s.SeasonXGI.Float(); ok && xgi > 0 {
		s.MinutesPerXGI = stats.Of(s.TotalMinutes / xgi)
	}
	if xgc, ok := s.SeasonXGC.Float(); ok && xgc > 0 {
		s.MinutesPerXGC = stats.Of(s.TotalMinutes / xgc)
	}
	s.BPSPer90 = per90(s.TotalBPS, s.TotalMinutes)
	s.BonusPer90 = per90(s.TotalBonus, s.TotalMinutes)
	s.SavesPer90 = per90(s.TotalSaves, s.TotalMinutes)
	return s
}

func per90(total, minutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	return total * 90 / minutes
}

// teamStats tallies goals for and against per team from match results.
// Several squad members report the same match, so matches are deduplicated
// on a canonical home/away/scoreline key before summing.
func teamStats(periods []dataset.PeriodRecord) map[string]teamTotals {
	type matchKey struct {
		team string
		id   string
	}
	seen := map[matchKey]struct{}{}
	totals := map[string]teamTotals{}

	for _, r := range periods {
		if !r.Played() {
			continue
		}
		hs, _ := r.TeamHScore.Float()
		as, _ := r.TeamAScore.Float()

		home, away := r.Team, r.Opponent
		if !r.WasHome {
			home, away = r.Opponent, r.Team
		}
		key := matchKey{team: r.Team, id: fmt.Sprintf("%s|%s|%g|%g", home, away, hs, as)}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		scored, conceded := hs, as
		if !r.WasHome {
			scored, conceded = as, hs
		}

		t := totals[r.Team]
		t.goals += scored
		t.conceded += conceded
		if r.WasHome {
			t.homeGoals += scored
			t.homeConceded += conceded
		} else {
			t.awayGoals += scored
			t.awayConceded += conceded
		}
		totals[r.Team] = t
	}
	return totals
}
