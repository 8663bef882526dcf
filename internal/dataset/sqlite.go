package dataset

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
)

// validIdentifier matches valid SQL identifiers (table/column names).
// Only allows alphanumeric and underscore, must start with letter or underscore.
// This prevents SQL injection via identifier interpolation.
var validIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DefaultSQLiteTable is the table queried when the config names none.
const DefaultSQLiteTable = "emissions"

// LoadSQLite reads an emission table from a SQLite database.
//
// The database is opened for reading only; every column of the named table
// is retained, and rows get the same per-row validation and skip handling
// as the CSV loader.
func LoadSQLite(path, tableName string, cols Columns) (*Table, error) {
	cols = cols.fill()
	if tableName == "" {
		tableName = DefaultSQLiteTable
	}
	if !validIdentifier.MatchString(tableName) {
		return nil, fmt.Errorf("invalid table name %q", tableName)
	}

	// sql.Open alone creates an empty file for a bad path; surface the
	// missing-source condition before touching the driver.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// Loader never writes; lock the connection down and tolerate a
	// concurrent writer holding the file.
	pragmas := []string{
		"PRAGMA query_only = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s", tableName)) //nolint:gosec // identifier validated above
	if err != nil {
		return nil, fmt.Errorf("query table %s: %w", tableName, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	if missing := missingColumns(header, cols); len(missing) > 0 {
		return nil, fmt.Errorf("table %s is missing required columns %v", tableName, missing)
	}

	table := &Table{Columns: header}

	scan := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range scan {
		dest[i] = &scan[i]
	}

	for line := 1; rows.Next(); line++ {
		if err := rows.Scan(dest...); err != nil {
			slog.Warn("skipping unreadable row", "row", line, "reason", err)
			table.Skipped++
			continue
		}

		values := make(map[string]string, len(header))
		for i, name := range header {
			if scan[i].Valid {
				values[name] = scan[i].String
			}
		}

		row, err := parseRow(values, cols)
		if err != nil {
			slog.Warn("skipping malformed row", "row", line, "reason", err)
			table.Skipped++
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table %s: %w", tableName, err)
	}

	slog.Info("dataset loaded", "path", path, "table", tableName, "rows", len(table.Rows), "skipped", table.Skipped)
	return table, nil
}
