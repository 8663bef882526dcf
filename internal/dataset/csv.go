package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// LoadCSV reads an emission table from a CSV file with a header row.
//
// The header must contain every mapped column; a missing file or missing
// column aborts the load. Data rows that fail to parse are skipped with a
// Warn log and counted in Table.Skipped, and loading continues.
func LoadCSV(path string, cols Columns) (*Table, error) {
	cols = cols.fill()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are handled per-row below

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if missing := missingColumns(header, cols); len(missing) > 0 {
		return nil, fmt.Errorf("dataset %s is missing required columns %v", path, missing)
	}

	table := &Table{Columns: header}

	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("skipping unreadable row", "line", line, "reason", err)
			table.Skipped++
			continue
		}

		values := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				values[name] = record[i]
			}
		}

		row, err := parseRow(values, cols)
		if err != nil {
			slog.Warn("skipping malformed row", "line", line, "reason", err)
			table.Skipped++
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	slog.Info("dataset loaded", "path", path, "rows", len(table.Rows), "skipped", table.Skipped)
	return table, nil
}
