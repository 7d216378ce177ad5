package season

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
)

// SummaryFileName is the season summary table inside a season folder.
const SummaryFileName = "top_50_players.csv"

// WriteSummary writes the season summary table into dir.
func WriteSummary(dir string, summaries []dataset.SeasonSummary) error {
	path := filepath.Join(dir, SummaryFileName)
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "season: create %s", path)
	}
	defer f.Close()
	return dataset.WriteSeasonSummaries(f, summaries)
}

// ReadSummary loads the season summary table from dir.
func ReadSummary(dir string) ([]dataset.SeasonSummary, error) {
	path := filepath.Join(dir, SummaryFileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "season: open %s", path)
	}
	defer f.Close()
	return dataset.ReadSeasonSummaries(f, SummaryFileName)
}
