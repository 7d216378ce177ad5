package teammodel

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
)

var header = []string{
	"Team", "Matches", "Goals", "Assist", "GC", "GW Points",
	"Goals_per_Match", "Assists_per_Match", "GC_per_Match", "Points_per_Match",
	"xG", "xGC", "Season_Goals", "Season_Assists", "Total_Points",
	"Season_xGI", "Season_xGC", "Attack_Index", "Defense_Index",
	"Opp_GC_per_Match_Upcoming", "Fixture_Difficulty_Score",
	"Attack_Index_Fixture_Adjusted",
}

// WriteCSV writes the team model table.
func WriteCSV(w io.Writer, indices []TeamIndex) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "teammodel: write header")
	}
	for _, ti := range indices {
		rec := []string{
			ti.Team, strconv.Itoa(ti.Matches),
			ffmt(ti.Goals), ffmt(ti.Assists), ffmt(ti.Conceded), ffmt(ti.Points),
			ffmt(ti.GoalsPerMatch), ffmt(ti.AssistsPerMatch),
			ffmt(ti.ConcededPerMatch), ffmt(ti.PointsPerMatch),
			ffmt(ti.MeanXG), ffmt(ti.MeanXGC),
			ffmt(ti.SeasonGoals), ffmt(ti.SeasonAssists), ffmt(ti.SeasonPoints),
			ffmt(ti.SeasonXGI), ffmt(ti.SeasonXGC),
			ffmt(ti.AttackIndex), ffmt(ti.DefenseIndex),
			ti.UpcomingConceded.String(), ti.FixtureDifficulty.String(),
			ffmt(ti.AttackIndexAdjusted),
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrap(err, "teammodel: write record")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "teammodel: flush")
}

func ffmt(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
