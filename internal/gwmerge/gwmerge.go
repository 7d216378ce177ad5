// Package gwmerge discovers per-gameweek CSV exports inside a season folder
// and merges them into one table. Discovery lives here, at the packaging
// edge: the model builders only ever accept already-loaded tables.
package gwmerge

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
)

// MergedFileName is the canonical name of the merged table inside a season
// folder.
const MergedFileName = "merged_gws.csv"

// SeasonFolderPrefix marks season data folders, e.g. FPL_Data_2025-26.
const SeasonFolderPrefix = "FPL_Data_"

var gwFilePattern = regexp.MustCompile(`^FPL_Data_GW_(\d+)\.csv$`)

// File is one discovered gameweek export.
type File struct {
	Path string
	GW   int
}

// FindSeasonFolder locates the current season's data folder under root.
// Folders for an unknown season are skipped.
func FindSeasonFolder(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", eris.Wrapf(err, "gwmerge: read %s", root)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, SeasonFolderPrefix) && !strings.Contains(name, "Unknown") {
			return filepath.Join(root, name), nil
		}
	}
	return "", eris.Errorf("gwmerge: no season folder under %s", root)
}

// FindGameweekFiles lists the gameweek exports in dir, ordered by gameweek.
func FindGameweekFiles(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "gwmerge: read %s", dir)
	}
	var files []File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := gwFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		gw, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		files = append(files, File{Path: filepath.Join(dir, e.Name()), GW: gw})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].GW < files[j].GW })
	return files, nil
}

// Merge reads every export and concatenates the records in gameweek order.
// Files without a GW column inherit the gameweek from their file name.
func Merge(files []File) ([]dataset.PeriodRecord, error) {
	var merged []dataset.PeriodRecord
	for _, f := range files {
		fh, err := os.Open(f.Path)
		if err != nil {
			return nil, eris.Wrapf(err, "gwmerge: open %s", f.Path)
		}
		records, err := dataset.ReadPeriodRecords(fh, filepath.Base(f.Path), f.GW)
		fh.Close()
		if err != nil {
			return nil, err
		}
		merged = append(merged, records...)
	}
	return merged, nil
}

// MergeDir discovers and merges a season folder's exports in one call.
func MergeDir(dir string) ([]dataset.PeriodRecord, error) {
	files, err := FindGameweekFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, eris.Errorf("gwmerge: no gameweek files in %s", dir)
	}
	return Merge(files)
}

// WriteMerged writes the merged table into dir under MergedFileName.
func WriteMerged(dir string, records []dataset.PeriodRecord) error {
	path := filepath.Join(dir, MergedFileName)
	fh, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "gwmerge: create %s", path)
	}
	defer fh.Close()
	return dataset.WritePeriodRecords(fh, records)
}

// ReadMerged loads the merged table from dir.
func ReadMerged(dir string) ([]dataset.PeriodRecord, error) {
	path := filepath.Join(dir, MergedFileName)
	fh, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "gwmerge: open %s", path)
	}
	defer fh.Close()
	return dataset.ReadPeriodRecords(fh, MergedFileName, 0)
}
