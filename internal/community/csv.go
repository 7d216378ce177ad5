package community

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
)

// WriteAssignments writes one row per player with their community id, the
// flat table the downstream notebooks expect.
func WriteAssignments(w io.Writer, records []dataset.PeriodRecord, communities []Community) error {
	assignment := map[string]int{}
	for _, c := range communities {
		for _, name := range c.Players {
			assignment[name] = c.ID
		}
	}

	cw := csv.NewWriter(w)
	header := []string{
		dataset.ColName, dataset.ColPosition, dataset.ColTeam,
		dataset.ColCost, dataset.ColForm, dataset.ColPoints, "Community",
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "community: write header")
	}
	for _, r := range records {
		rec := []string{
			r.Name, r.Position, r.Team, r.Cost.String(), r.Form.String(),
			strconv.FormatFloat(r.Points, 'f', -1, 64),
			strconv.Itoa(assignment[r.Name]),
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrap(err, "community: write record")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "community: flush")
}
