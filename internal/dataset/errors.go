package dataset

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports required columns absent from an input table.
// It fails the affected stage before any computation runs.
type MissingColumnsError struct {
	Table   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("table %s: missing required columns: %s", e.Table, strings.Join(e.Columns, ", "))
}

// requireColumns checks that every column in required is present in the
// header index, returning a MissingColumnsError naming the absentees.
func requireColumns(table string, idx map[string]int, required []string) error {
	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Table: table, Columns: missing}
	}
	return nil
}
