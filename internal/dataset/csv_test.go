package dataset

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-analysis/internal/stats"
)

func TestReadPeriodRecords_MissingColumnsNamed(t *testing.T) {
	in := "Web name,Position,Team\nSalah,MID,Liverpool\n"
	_, err := ReadPeriodRecords(strings.NewReader(in), "gw_7.csv", 7)
	require.Error(t, err)

	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "gw_7.csv", missing.Table)
	assert.Contains(t, missing.Columns, ColMinutes)
	assert.Contains(t, missing.Columns, ColTeamHScore)
	assert.Contains(t, err.Error(), "gw_7.csv")
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestReadPeriodRecords_GWColumnRequiredWithoutDefault(t *testing.T) {
	header := strings.Join(requiredPeriodColumns, ",")
	in := header + "\n"

	_, err := ReadPeriodRecords(strings.NewReader(in), "merged.csv", 0)
	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{ColGW}, missing.Columns)

	// With a default gameweek the column is optional.
	_, err = ReadPeriodRecords(strings.NewReader(in), "gw_3.csv", 3)
	require.NoError(t, err)
}

func TestReadPeriodRecords_DefaultGWFillsMissingCells(t *testing.T) {
	header := strings.Join(requiredPeriodColumns, ",")
	in := header + "\n" +
		"Haaland,FWD,Man City,34,1,0,7,0.9,1.1,Arsenal,2,1\n"

	records, err := ReadPeriodRecords(strings.NewReader(in), "gw_9.csv", 9)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "Haaland", r.Name)
	assert.Equal(t, 9, r.GW)
	assert.Equal(t, 34.0, r.Minutes)
	assert.Equal(t, 0.9, r.XGI.Or(0))
	assert.True(t, r.Played())
	// Absent optional columns read as undefined, not zero.
	assert.False(t, r.Cost.Defined())
	assert.False(t, r.Form.Defined())
}

func TestWritePeriodRecords_RoundTrip(t *testing.T) {
	records := []PeriodRecord{
		{
			Name: "Son", Position: PosMidfielder, Team: "Spurs", GW: 12,
			Cost: stats.Of(9.8), Form: stats.Of(5.2),
			Minutes: 90, Goals: 2, Points: 13,
			XGI: stats.Of(1.4), XGC: stats.Undefined(),
			WasHome:    true,
			TeamHScore: stats.Of(3),
			TeamAScore: stats.Of(1),
			Opponent: "Everton", NextOpponent: "Fulham",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePeriodRecords(&buf, records))

	got, err := ReadPeriodRecords(&buf, "roundtrip.csv", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, records[0].Name, r.Name)
	assert.Equal(t, 12, r.GW)
	assert.Equal(t, 9.8, r.Cost.Or(0))
	assert.True(t, r.WasHome)
	assert.False(t, r.XGC.Defined())
	assert.Equal(t, "Fulham", r.NextOpponent)
}

func TestReadSeasonSummaries_MissingColumnsNamed(t *testing.T) {
	in := "Web name,Position,Team,Cost\nSalah,MID,Liverpool,13.0\n"
	_, err := ReadSeasonSummaries(strings.NewReader(in), "top_50_players.csv")

	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "top_50_players.csv", missing.Table)
	assert.Contains(t, missing.Columns, SumColTotalPoints)
}

func TestWriteSeasonSummaries_RoundTrip(t *testing.T) {
	summaries := []SeasonSummary{
		{
			Name: "Saka", Position: PosMidfielder, Team: "Arsenal",
			Cost: stats.Of(10.1), Form: stats.Of(6.0),
			TotalMinutes: 810, TotalPoints: 58,
			SeasonXGI: stats.Of(5.4), SeasonXGC: stats.Undefined(),
			TeamGoals: 19, BPSPer90: 28.4,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSeasonSummaries(&buf, summaries))

	got, err := ReadSeasonSummaries(&buf, "roundtrip.csv")
	require.NoError(t, err)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, "Saka", s.Name)
	assert.Equal(t, 58.0, s.TotalPoints)
	assert.Equal(t, 5.4, s.SeasonXGI.Or(0))
	assert.False(t, s.SeasonXGC.Defined())
	assert.Equal(t, 28.4, s.BPSPer90)
}
