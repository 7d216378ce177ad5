package season

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/stats"
)

func gwRow(name, team string, gw int, points float64, wasHome bool) dataset.PeriodRecord {
	return dataset.PeriodRecord{
		Name: name, Position: dataset.PosMidfielder, Team: team,
		Opponent: "Opponent", GW: gw, Points: points, Minutes: 90,
		WasHome:    wasHome,
		TeamHScore: stats.Of(2),
		TeamAScore: stats.Of(1),
	}
}

func TestBuild_AggregatesAcrossGameweeks(t *testing.T) {
	a := gwRow("Salah", "Liverpool", 1, 12, true)
	a.Goals = 2
	a.Cost = stats.Of(13.0)
	a.SeasonGoals = 2
	b := gwRow("Salah", "Liverpool", 2, 6, false)
	b.Goals = 1
	b.SeasonGoals = 3

	summaries := Build([]dataset.PeriodRecord{a, b}, DefaultOptions())
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "Salah", s.Name)
	assert.Equal(t, 18.0, s.TotalPoints)
	assert.Equal(t, 180.0, s.TotalMinutes)
	assert.Equal(t, 2.0, s.HomeGoals)
	assert.Equal(t, 1.0, s.AwayGoals)
	// The export's season counter is cumulative; the max is the season value.
	assert.Equal(t, 3.0, s.SeasonGoals)
	// Identity fields keep the first defined observation.
	assert.Equal(t, 13.0, s.Cost.Or(0))
}

func TestBuild_TeamGoalsDeduplicatedAcrossSquadMembers(t *testing.T) {
	// Three squad members report the same 2-1 home win; it must count once.
	rows := []dataset.PeriodRecord{
		gwRow("Salah", "Liverpool", 1, 12, true),
		gwRow("Gakpo", "Liverpool", 1, 6, true),
		gwRow("Alisson", "Liverpool", 1, 7, true),
	}

	summaries := Build(rows, DefaultOptions())
	require.NotEmpty(t, summaries)
	s := summaries[0]
	assert.Equal(t, 2.0, s.TeamGoals)
	assert.Equal(t, 2.0, s.TeamHomeGoals)
	assert.Equal(t, 0.0, s.TeamAwayGoals)
	assert.Equal(t, 1.0, s.TeamConceded)
}

func TestBuild_AwayPerspectiveSharesMatchKey(t *testing.T) {
	// A home 2-1 and the opponent's away view of the same scoreline are
	// different matches for different teams, but each side counts its own
	// match exactly once.
	home := gwRow("Salah", "Liverpool", 1, 12, true)
	home.Opponent = "Everton"
	away := gwRow("Pickford", "Everton", 1, 2, false)
	away.Opponent = "Liverpool"

	summaries := Build([]dataset.PeriodRecord{home, away}, DefaultOptions())
	require.Len(t, summaries, 2)

	byName := map[string]dataset.SeasonSummary{}
	for _, s := range summaries {
		byName[s.Name] = s
	}
	assert.Equal(t, 2.0, byName["Salah"].TeamGoals)
	assert.Equal(t, 1.0, byName["Salah"].TeamConceded)
	assert.Equal(t, 1.0, byName["Pickford"].TeamGoals)
	assert.Equal(t, 2.0, byName["Pickford"].TeamConceded)
}

func TestBuild_MinutesPerXGIOnlyWhenPositive(t *testing.T) {
	withXGI := gwRow("Salah", "Liverpool", 1, 12, true)
	withXGI.XGI = stats.Of(0.9)
	withoutXGI := gwRow("Alisson", "Liverpool", 1, 7, true)
	withoutXGI.XGI = stats.Of(0)

	summaries := Build([]dataset.PeriodRecord{withXGI, withoutXGI}, DefaultOptions())
	byName := map[string]dataset.SeasonSummary{}
	for _, s := range summaries {
		byName[s.Name] = s
	}

	m, ok := byName["Salah"].MinutesPerXGI.Float()
	require.True(t, ok)
	assert.InDelta(t, 100.0, m, 1e-9)
	assert.False(t, byName["Alisson"].MinutesPerXGI.Defined())
}

func TestBuild_TopPlayersCapRanksByPoints(t *testing.T) {
	rows := []dataset.PeriodRecord{
		gwRow("Low", "Liverpool", 1, 2, true),
		gwRow("High", "Liverpool", 1, 12, true),
		gwRow("Mid", "Liverpool", 1, 7, true),
	}

	opts := Options{TopPlayers: 2}
	summaries := Build(rows, opts)
	require.Len(t, summaries, 2)
	assert.Equal(t, "High", summaries[0].Name)
	assert.Equal(t, "Mid", summaries[1].Name)
}

func TestBuild_AccentVariantsCollapseToOnePlayer(t *testing.T) {
	a := gwRow("Sávio", "Man City", 1, 5, true)
	b := gwRow("Savio", "Man City", 2, 8, false)

	summaries := Build([]dataset.PeriodRecord{a, b}, DefaultOptions())
	require.Len(t, summaries, 1)
	assert.Equal(t, "Sávio", summaries[0].Name)
	assert.Equal(t, 13.0, summaries[0].TotalPoints)
}

func TestBuild_UnplayedRowsDoNotFeedTeamTotals(t *testing.T) {
	played := gwRow("Salah", "Liverpool", 1, 12, true)
	future := dataset.PeriodRecord{
		Name: "Salah", Team: "Liverpool", Opponent: "Everton", GW: 2,
	}

	summaries := Build([]dataset.PeriodRecord{played, future}, DefaultOptions())
	require.Len(t, summaries, 1)
	assert.Equal(t, 2.0, summaries[0].TeamGoals)
}

func TestPer90(t *testing.T) {
	assert.Equal(t, 0.0, per90(10, 0))
	assert.InDelta(t, 5.0, per90(10, 180), 1e-9)
}
