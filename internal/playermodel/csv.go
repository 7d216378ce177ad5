package playermodel

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
)

var header = []string{
	"Web name", "Position", "Team", "Cost", "Selected", "Form",
	"Total_Minutes", "Season_Goals", "Season_Assists", "Total_CS",
	"Total_Points", "Season_xGI", "Season_xGC",
	"Recent_Points", "Recent_xGI", "Recent_xGC", "Recent_Minutes",
	"Recent_Starts", "Points_per_Million", "xGI_per90", "Base_Form_Value",
	"xGI_norm", "Team_Attack_Norm", "Team_Defence_Norm", "Tuned_Score",
}

// WriteCSV writes the ranked player model table.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "playermodel: write header")
	}
	for _, r := range rows {
		rec := []string{
			r.Name, r.Position, r.Team, r.Cost.String(),
			r.Selected.String(), r.Form.String(),
			ffmt(r.TotalMinutes), ffmt(r.SeasonGoals), ffmt(r.SeasonAssists),
			ffmt(r.TotalCleanSheets), ffmt(r.TotalPoints),
			r.SeasonXGI.String(), r.SeasonXGC.String(),
			r.RecentPoints.String(), r.RecentXGI.String(),
			r.RecentXGC.String(), r.RecentMinutes.String(),
			r.RecentStarts.String(), r.PointsPerMillion.String(),
			r.XGIPer90.String(), r.BaseFormValue.String(),
			ffmt(r.XGINorm), ffmt(r.TeamAttackNorm), ffmt(r.TeamDefenseNorm),
			ffmt(r.TunedScore),
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrap(err, "playermodel: write record")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "playermodel: flush")
}

func ffmt(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
