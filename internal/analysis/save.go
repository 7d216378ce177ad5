package analysis

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/playermodel"
	"github.com/aatrey56/fpl-analysis/internal/teammodel"
)

// Output file names under the analysis directory.
const (
	TeamModelFile   = "team_model.csv"
	PlayerModelFile = "player_model.csv"
	AssetsFile      = "assets_from_best_teams.csv"
	ShortlistFile   = "best_shortlist.csv"
	SquadFile       = "squad_sample.csv"
	AnalysisDirName = "analysis"
)

var positionalShortlists = map[string]string{
	dataset.PosGoalkeeper: "best_team_goalkeepers.csv",
	dataset.PosDefender:   "best_team_defenders.csv",
	dataset.PosMidfielder: "best_team_midfielders.csv",
	dataset.PosForward:    "best_team_forwards.csv",
}

// Save writes every table the run produced under seasonDir/analysis.
// The squad table is only written when the selection was feasible.
func (o Output) Save(seasonDir string) error {
	dir := filepath.Join(seasonDir, AnalysisDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "analysis: mkdir %s", dir)
	}

	if err := writeFile(filepath.Join(dir, TeamModelFile), func(f *os.File) error {
		return teammodel.WriteCSV(f, o.Teams)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, PlayerModelFile), func(f *os.File) error {
		return playermodel.WriteCSV(f, o.Players)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, AssetsFile), func(f *os.File) error {
		return playermodel.WriteCSV(f, o.Assets)
	}); err != nil {
		return err
	}

	for _, pos := range dataset.Positions {
		var subset []playermodel.Row
		for _, p := range o.Assets {
			if p.Position == pos {
				subset = append(subset, p)
			}
		}
		if len(subset) == 0 {
			continue
		}
		if err := writeFile(filepath.Join(dir, positionalShortlists[pos]), func(f *os.File) error {
			return playermodel.WriteCSV(f, subset)
		}); err != nil {
			return err
		}
	}

	shortlist := o.Assets
	if len(shortlist) > 100 {
		shortlist = shortlist[:100]
	}
	if err := writeFile(filepath.Join(dir, ShortlistFile), func(f *os.File) error {
		return playermodel.WriteCSV(f, shortlist)
	}); err != nil {
		return err
	}

	if o.Squad.Feasible {
		if err := writeFile(filepath.Join(dir, SquadFile), func(f *os.File) error {
			return playermodel.WriteCSV(f, o.Squad.Players)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "analysis: create %s", path)
	}
	defer f.Close()
	return write(f)
}
