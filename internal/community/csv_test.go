package community

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/stats"
)

func TestWriteAssignments(t *testing.T) {
	records := []dataset.PeriodRecord{
		{Name: "Salah", Position: dataset.PosMidfielder, Team: "Liverpool", Cost: stats.Of(13), Points: 9},
		{Name: "Pickford", Position: dataset.PosGoalkeeper, Team: "Everton", Points: 2},
	}
	communities := []Community{
		{ID: 0, Players: []string{"Salah"}},
		{ID: 1, Players: []string{"Pickford"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAssignments(&buf, records, communities))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Equal(t, "Community", header[len(header)-1])
	assert.Equal(t, "Salah", rows[1][0])
	assert.Equal(t, "0", rows[1][len(header)-1])
	assert.Equal(t, "1", rows[2][len(header)-1])
	// Undefined cost renders as an empty cell.
	assert.Equal(t, "", rows[2][3])
}
