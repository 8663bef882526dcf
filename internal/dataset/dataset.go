// Package dataset loads per-country emission tables from CSV or SQLite
// sources.
//
// A loaded Table retains every raw cell value alongside the parsed
// (country, year, emission) triple, so categorical queries over columns the
// analysis core does not model (sector aggregation) run against the retained
// rows instead of re-reading the source.
//
// Rows that fail to parse are skipped with a logged reason and counted;
// a missing source file or a missing mapped header column aborts the load.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Columns maps the three required fields onto source column names.
type Columns struct {
	Country  string `yaml:"country"`
	Year     string `yaml:"year"`
	Emission string `yaml:"emission"`
}

// DefaultColumns returns the column mapping of the reference dataset.
func DefaultColumns() Columns {
	return Columns{
		Country:  "Country",
		Year:     "Year",
		Emission: "Total CO2 Emission excluding LUCF (Mt)",
	}
}

// fill replaces empty mappings with the defaults.
func (c Columns) fill() Columns {
	def := DefaultColumns()
	if c.Country == "" {
		c.Country = def.Country
	}
	if c.Year == "" {
		c.Year = def.Year
	}
	if c.Emission == "" {
		c.Emission = def.Emission
	}
	return c
}

// Row is one source record: the parsed required triple plus every raw cell,
// keyed by column name.
type Row struct {
	Country  string
	Year     int
	Emission float64
	Values   map[string]string
}

// Table is a fully loaded source file.
type Table struct {
	// Columns lists the source column names in source order.
	Columns []string

	// Rows holds the well-formed records in source row order.
	Rows []Row

	// Skipped counts rows dropped because they failed to parse.
	Skipped int
}

// HasColumn reports whether the source carried a column with the given name.
// Matching is exact and case-sensitive.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// parseRow validates one record's required fields.
// The values map is retained in the returned Row, not copied.
func parseRow(values map[string]string, cols Columns) (Row, error) {
	country := strings.TrimSpace(values[cols.Country])
	if country == "" {
		return Row{}, fmt.Errorf("empty %q field", cols.Country)
	}

	year, err := strconv.Atoi(strings.TrimSpace(values[cols.Year]))
	if err != nil {
		return Row{}, fmt.Errorf("invalid %q field: %w", cols.Year, err)
	}

	emission, err := strconv.ParseFloat(strings.TrimSpace(values[cols.Emission]), 64)
	if err != nil {
		return Row{}, fmt.Errorf("invalid %q field: %w", cols.Emission, err)
	}

	return Row{
		Country:  country,
		Year:     year,
		Emission: emission,
		Values:   values,
	}, nil
}

// missingColumns returns the mapped column names absent from header.
func missingColumns(header []string, cols Columns) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, name := range []string{cols.Country, cols.Year, cols.Emission} {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
