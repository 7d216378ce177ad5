package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/aatrey56/fpl-analysis/internal/stats"
)

// Column names of the gameweek export. The format is column-identified:
// readers locate fields by header, extra columns are ignored, and column
// order carries no meaning.
const (
	ColName         = "Web name"
	ColPosition     = "Position"
	ColTeam         = "Team"
	ColGW           = "GW"
	ColCost         = "Cost"
	ColSelected     = "Selected"
	ColForm         = "Form"
	ColStatus       = "Status"
	ColMinutes      = "Minutes"
	ColGoals        = "Goals"
	ColAssists      = "Assist"
	ColSaves        = "Saves"
	ColConceded     = "GC"
	ColCleanSheets  = "CS"
	ColOwnGoals     = "OGs"
	ColPensMissed   = "Pens Missed"
	ColPensSaved    = "Pens Saved"
	ColYellowCards  = "Yellow cards"
	ColRedCards     = "Red cards"
	ColStarts       = "Starts"
	ColPoints       = "GW Points"
	ColSeasonGoals  = "Season Goals"
	ColSeasonAssist = "Season Assists"
	ColXA           = "xA"
	ColXG           = "xG"
	ColXGI          = "xGI"
	ColXGC          = "xGC"
	ColWasHome      = "Was home"
	ColTeamHScore   = "Team H Score"
	ColTeamAScore   = "Team A Score"
	ColOpponent     = "Opponent Team"
	ColNextOpponent = "Next Opponent"
	ColInfluence    = "Influence"
	ColCreativity   = "Creativity"
	ColThreat       = "Threat"
	ColICTIndex     = "ICT Index"
	ColBPS          = "Bps"
	ColBonus        = "Bonus"
	ColTransfersIn  = "Transfers In"
	ColTransfersOut = "Transfers Out"
)

// Column names of the season summary table.
const (
	SumColCost          = "Cost"
	SumColSelected      = "Selected"
	SumColForm          = "Form"
	SumColTotalMinutes  = "Total_Minutes"
	SumColHomeGoals     = "Home_Goals"
	SumColAwayGoals     = "Away_Goals"
	SumColSeasonGoals   = "Season_Goals"
	SumColHomeAssists   = "Home_Assists"
	SumColAwayAssists   = "Away_Assists"
	SumColSeasonAssists = "Season_Assists"
	SumColTotalSaves    = "Total_Saves"
	SumColTotalCS       = "Total_CS"
	SumColTotalPoints   = "Total_Points"
	SumColTotalBPS      = "Total_BPS"
	SumColTotalBonus    = "Total_Bonus"
	SumColSeasonXGI     = "Season_xGI"
	SumColSeasonXGC     = "Season_xGC"
	SumColTeamGoals     = "Total_team_Goals"
	SumColTeamHGoals    = "Total_team_HGoals"
	SumColTeamAGoals    = "Total_team_AGoals"
	SumColTeamGC        = "Total_team_GC"
	SumColTeamHGC       = "Total_team_HGC"
	SumColTeamAGC       = "Total_team_AGC"
	SumColMinPerXGI     = "Min/xGI"
	SumColMinPerXGC     = "Min/xGC"
	SumColBPSPer90      = "BPS/90"
	SumColBonusPer90    = "Bonus/90"
	SumColSavesPer90    = "Saves/90"
)

// requiredPeriodColumns must be present before the pipeline touches a
// gameweek table. GW is validated separately because merge can derive it
// from the file name.
var requiredPeriodColumns = []string{
	ColName, ColPosition, ColTeam, ColMinutes, ColGoals, ColAssists,
	ColPoints, ColXGI, ColXGC, ColOpponent, ColTeamHScore, ColTeamAScore,
}

var requiredSummaryColumns = []string{
	ColName, ColPosition, ColTeam, SumColCost, SumColForm,
	SumColTotalMinutes, SumColTotalPoints, SumColSeasonXGI, SumColSeasonXGC,
}

type row struct {
	idx map[string]int
	rec []string
}

func (r row) str(col string) string {
	i, ok := r.idx[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return r.rec[i]
}

func (r row) value(col string) stats.Value {
	return stats.Parse(r.str(col))
}

// float reads a plain counter column: absent or unparsable cells read as 0.
func (r row) float(col string) float64 {
	f, err := strconv.ParseFloat(r.str(col), 64)
	if err != nil {
		return 0
	}
	return f
}

func (r row) integer(col string) int {
	n, err := strconv.Atoi(r.str(col))
	if err != nil {
		return int(r.float(col))
	}
	return n
}

func (r row) boolean(col string) bool {
	switch r.str(col) {
	case "True", "true", "TRUE", "1":
		return true
	}
	return false
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[col] = i
	}
	return idx
}

// ReadPeriodRecords parses a gameweek table. table names the source for
// error reporting. defaultGW fills the period index when the table has no
// GW column (single-gameweek exports); pass 0 to require the column.
func ReadPeriodRecords(rd io.Reader, table string, defaultGW int) ([]PeriodRecord, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s header", table)
	}
	idx := headerIndex(header)
	if err := requireColumns(table, idx, requiredPeriodColumns); err != nil {
		return nil, err
	}
	if _, ok := idx[ColGW]; !ok && defaultGW <= 0 {
		return nil, &MissingColumnsError{Table: table, Columns: []string{ColGW}}
	}

	var records []PeriodRecord
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: read %s", table)
		}
		r := row{idx: idx, rec: rec}
		gw := r.integer(ColGW)
		if gw == 0 {
			gw = defaultGW
		}
		records = append(records, PeriodRecord{
			Name:          r.str(ColName),
			Position:      r.str(ColPosition),
			Team:          r.str(ColTeam),
			GW:            gw,
			Cost:          r.value(ColCost),
			Selected:      r.value(ColSelected),
			Form:          r.value(ColForm),
			Status:        r.str(ColStatus),
			Minutes:       r.float(ColMinutes),
			Goals:         r.float(ColGoals),
			Assists:       r.float(ColAssists),
			Saves:         r.float(ColSaves),
			GoalsConceded: r.float(ColConceded),
			CleanSheets:   r.float(ColCleanSheets),
			OwnGoals:      r.float(ColOwnGoals),
			PensMissed:    r.float(ColPensMissed),
			PensSaved:     r.float(ColPensSaved),
			YellowCards:   r.float(ColYellowCards),
			RedCards:      r.float(ColRedCards),
			Starts:        r.float(ColStarts),
			Points:        r.float(ColPoints),
			SeasonGoals:   r.float(ColSeasonGoals),
			SeasonAssists: r.float(ColSeasonAssist),
			XA:            r.value(ColXA),
			XG:            r.value(ColXG),
			XGI:           r.value(ColXGI),
			XGC:           r.value(ColXGC),
			WasHome:       r.boolean(ColWasHome),
			TeamHScore:    r.value(ColTeamHScore),
			TeamAScore:    r.value(ColTeamAScore),
			Opponent:      r.str(ColOpponent),
			NextOpponent:  r.str(ColNextOpponent),
			Influence:     r.value(ColInfluence),
			Creativity:    r.value(ColCreativity),
			Threat:        r.value(ColThreat),
			ICTIndex:      r.value(ColICTIndex),
			BPS:           r.float(ColBPS),
			Bonus:         r.float(ColBonus),
			TransfersIn:   r.float(ColTransfersIn),
			TransfersOut:  r.float(ColTransfersOut),
		})
	}
	return records, nil
}

var periodHeader = []string{
	ColName, ColPosition, ColTeam, ColGW, ColCost, ColSelected, ColForm,
	ColStatus, ColMinutes, ColGoals, ColAssists, ColSaves, ColConceded,
	ColCleanSheets, ColOwnGoals, ColPensMissed, ColPensSaved,
	ColYellowCards, ColRedCards, ColStarts, ColPoints, ColSeasonGoals,
	ColSeasonAssist, ColXA, ColXG, ColXGI, ColXGC, ColWasHome,
	ColTeamHScore, ColTeamAScore, ColOpponent, ColNextOpponent,
	ColInfluence, ColCreativity, ColThreat, ColICTIndex, ColBPS, ColBonus,
	ColTransfersIn, ColTransfersOut,
}

// WritePeriodRecords writes a gameweek table with the canonical header.
func WritePeriodRecords(w io.Writer, records []PeriodRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(periodHeader); err != nil {
		return eris.Wrap(err, "dataset: write header")
	}
	for _, r := range records {
		rec := []string{
			r.Name, r.Position, r.Team, strconv.Itoa(r.GW),
			r.Cost.String(), r.Selected.String(), r.Form.String(), r.Status,
			ffmt(r.Minutes), ffmt(r.Goals), ffmt(r.Assists), ffmt(r.Saves),
			ffmt(r.GoalsConceded), ffmt(r.CleanSheets), ffmt(r.OwnGoals),
			ffmt(r.PensMissed), ffmt(r.PensSaved), ffmt(r.YellowCards),
			ffmt(r.RedCards), ffmt(r.Starts), ffmt(r.Points),
			ffmt(r.SeasonGoals), ffmt(r.SeasonAssists),
			r.XA.String(), r.XG.String(), r.XGI.String(), r.XGC.String(),
			bfmt(r.WasHome), r.TeamHScore.String(), r.TeamAScore.String(),
			r.Opponent, r.NextOpponent,
			r.Influence.String(), r.Creativity.String(), r.Threat.String(),
			r.ICTIndex.String(), ffmt(r.BPS), ffmt(r.Bonus),
			ffmt(r.TransfersIn), ffmt(r.TransfersOut),
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrap(err, "dataset: write record")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "dataset: flush")
}

// ReadSeasonSummaries parses a season summary table.
func ReadSeasonSummaries(rd io.Reader, table string) ([]SeasonSummary, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s header", table)
	}
	idx := headerIndex(header)
	if err := requireColumns(table, idx, requiredSummaryColumns); err != nil {
		return nil, err
	}

	var summaries []SeasonSummary
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: read %s", table)
		}
		r := row{idx: idx, rec: rec}
		summaries = append(summaries, SeasonSummary{
			Name:             r.str(ColName),
			Position:         r.str(ColPosition),
			Team:             r.str(ColTeam),
			Cost:             r.value(SumColCost),
			Selected:         r.value(SumColSelected),
			Form:             r.value(SumColForm),
			TotalMinutes:     r.float(SumColTotalMinutes),
			HomeGoals:        r.float(SumColHomeGoals),
			AwayGoals:        r.float(SumColAwayGoals),
			SeasonGoals:      r.float(SumColSeasonGoals),
			HomeAssists:      r.float(SumColHomeAssists),
			AwayAssists:      r.float(SumColAwayAssists),
			SeasonAssists:    r.float(SumColSeasonAssists),
			TotalSaves:       r.float(SumColTotalSaves),
			TotalCleanSheets: r.float(SumColTotalCS),
			TotalPoints:      r.float(SumColTotalPoints),
			TotalBPS:         r.float(SumColTotalBPS),
			TotalBonus:       r.float(SumColTotalBonus),
			SeasonXGI:        r.value(SumColSeasonXGI),
			SeasonXGC:        r.value(SumColSeasonXGC),
			TeamGoals:        r.float(SumColTeamGoals),
			TeamHomeGoals:    r.float(SumColTeamHGoals),
			TeamAwayGoals:    r.float(SumColTeamAGoals),
			TeamConceded:     r.float(SumColTeamGC),
			TeamHomeConceded: r.float(SumColTeamHGC),
			TeamAwayConceded: r.float(SumColTeamAGC),
			MinutesPerXGI:    r.value(SumColMinPerXGI),
			MinutesPerXGC:    r.value(SumColMinPerXGC),
			BPSPer90:         r.float(SumColBPSPer90),
			BonusPer90:       r.float(SumColBonusPer90),
			SavesPer90:       r.float(SumColSavesPer90),
		})
	}
	return summaries, nil
}

var summaryHeader = []string{
	ColName, ColPosition, ColTeam, SumColCost, SumColSelected, SumColForm,
	SumColHomeGoals, SumColAwayGoals, SumColSeasonGoals, SumColHomeAssists,
	SumColAwayAssists, SumColSeasonAssists, SumColTotalSaves, SumColTotalCS,
	SumColTotalPoints, SumColTotalBPS, SumColTotalBonus, SumColTotalMinutes,
	SumColSeasonXGI, SumColSeasonXGC, SumColTeamGoals, SumColTeamHGoals,
	SumColTeamAGoals, SumColTeamGC, SumColTeamHGC, SumColTeamAGC,
	SumColMinPerXGI, SumColMinPerXGC, SumColBPSPer90, SumColBonusPer90,
	SumColSavesPer90,
}

// WriteSeasonSummaries writes a season summary table.
func WriteSeasonSummaries(w io.Writer, summaries []SeasonSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return eris.Wrap(err, "dataset: write header")
	}
	for _, s := range summaries {
		rec := []string{
			s.Name, s.Position, s.Team, s.Cost.String(),
			s.Selected.String(), s.Form.String(),
			ffmt(s.HomeGoals), ffmt(s.AwayGoals), ffmt(s.SeasonGoals),
			ffmt(s.HomeAssists), ffmt(s.AwayAssists), ffmt(s.SeasonAssists),
			ffmt(s.TotalSaves), ffmt(s.TotalCleanSheets),
			ffmt(s.TotalPoints), ffmt(s.TotalBPS), ffmt(s.TotalBonus),
			ffmt(s.TotalMinutes), s.SeasonXGI.String(), s.SeasonXGC.String(),
			ffmt(s.TeamGoals), ffmt(s.TeamHomeGoals), ffmt(s.TeamAwayGoals),
			ffmt(s.TeamConceded), ffmt(s.TeamHomeConceded),
			ffmt(s.TeamAwayConceded), s.MinutesPerXGI.String(),
			s.MinutesPerXGC.String(), ffmt(s.BPSPer90), ffmt(s.BonusPer90),
			ffmt(s.SavesPer90),
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrap(err, "dataset: write record")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "dataset: flush")
}

func ffmt(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func bfmt(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
