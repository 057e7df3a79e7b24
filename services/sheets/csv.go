package sheets

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Olympedpnt/concerts-etl-sa/lib/chrono"
	"github.com/Olympedpnt/concerts-etl-sa/services/consolidate"
)

// ExportCSV writes the consolidated table to a dated file in outDir and
// returns its path. This is the local fallback artifact: it gets written
// even when the sheet publish later fails.
func ExportCSV(rows []consolidate.Row, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, fmt.Sprintf("consolidated_%s.csv", chrono.Now().Format("2006-01-02")))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	headers := BuildHeaders(rows)
	if err := w.Write(headers); err != nil {
		return "", err
	}
	for _, r := range rows {
		if err := w.Write(RowValues(r, headers)); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}
