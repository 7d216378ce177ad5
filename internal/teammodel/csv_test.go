package teammodel

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-analysis/internal/stats"
)

func TestWriteCSV(t *testing.T) {
	indices := []TeamIndex{
		{
			Team: "Liverpool", Matches: 2, Goals: 5, GoalsPerMatch: 2.5,
			AttackIndex: 2.1, DefenseIndex: 0.8,
			FixtureDifficulty:   stats.Of(4),
			AttackIndexAdjusted: 2.205,
		},
		{Team: "Everton", FixtureDifficulty: stats.Undefined()},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, indices))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Team", rows[0][0])
	assert.Equal(t, "Fixture_Difficulty_Score", rows[0][20])
	assert.Equal(t, "Liverpool", rows[1][0])
	assert.Equal(t, "4", rows[1][20])
	// Undefined difficulty is an empty cell, never a zero.
	assert.Equal(t, "", rows[2][20])
}
