package engine

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/emistat-io/emistat/internal/dataset"
	"github.com/emistat-io/emistat/internal/series"
)

// insertion is one mutation-log entry describing an already-applied insert.
// Consumed at most once, by Undo.
type insertion struct {
	country  string
	year     int
	emission float64
}

// Analyzer serves the seven analysis operations over a loaded dataset.
//
// Construct with New; the zero value is not usable. All methods are safe for
// concurrent use: mutating operations and registry-wide scans serialize on a
// single mutex.
type Analyzer struct {
	mu sync.Mutex

	// countries maps a country name (exact, case-sensitive) to its series.
	// Entries are created lazily on first observation and never removed,
	// even when a series becomes empty after undo.
	countries map[string]*series.Series

	// order records countries in order of first observation. Registry scans
	// iterate it so tie handling stays stable across calls.
	order []string

	// yearlyTotals maps a year to the emission sum across all countries.
	yearlyTotals map[int]float64

	// undo is the mutation log. Bulk-loaded rows are not logged; only
	// explicit Insert calls are undoable.
	undo []insertion

	// table retains the raw source rows for sector aggregation.
	// May be nil when the analyzer was built without a source table.
	table *dataset.Table
}

// New builds an Analyzer from a loaded table, applying every row in source
// row order. A nil table yields an empty analyzer.
func New(table *dataset.Table) *Analyzer {
	a := &Analyzer{
		countries:    make(map[string]*series.Series),
		yearlyTotals: make(map[int]float64),
		table:        table,
	}
	if table != nil {
		for _, row := range table.Rows {
			a.applyInsert(row.Country, row.Year, row.Emission)
		}
	}
	return a
}

// applyInsert performs the registry+aggregate transaction for one
// observation. Caller holds the mutex (or is the constructor).
func (a *Analyzer) applyInsert(country string, year int, emission float64) {
	s, ok := a.countries[country]
	if !ok {
		s = &series.Series{}
		a.countries[country] = s
		a.order = append(a.order, country)
	}
	s.Insert(year, emission)
	a.yearlyTotals[year] += emission
}

// Insert adds one observation and logs it for undo.
func (a *Analyzer) Insert(country string, year int, emission float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.applyInsert(country, year, emission)
	a.undo = append(a.undo, insertion{country: country, year: year, emission: emission})

	slog.Info("record inserted", "country", country, "year", year, "emission", emission)
}

// UndoResult reports the outcome of an Undo call.
// Undone is false when the mutation log was empty, which is a normal
// observable outcome rather than an error.
type UndoResult struct {
	Undone   bool    `json:"undone"`
	Country  string  `json:"country,omitempty"`
	Year     int     `json:"year,omitempty"`
	Emission float64 `json:"emission,omitempty"`
}

// Undo rolls back the most recent logged insertion.
//
// The popped log entry is consumed even when the rollback fails: a failure
// means the log was already out of sync with the underlying data, and the
// yearly aggregate is left untouched on that path. Such failures return an
// AnalysisError with ErrCodeStateOutOfSync.
func (a *Analyzer) Undo() (UndoResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.undo) == 0 {
		slog.Debug("undo requested with empty mutation log")
		return UndoResult{}, nil
	}

	entry := a.undo[len(a.undo)-1]
	a.undo = a.undo[:len(a.undo)-1]

	s, ok := a.countries[entry.country]
	if !ok {
		// A series that received an insert must exist.
		slog.Error("undo failed: country missing from registry",
			"country", entry.country, "year", entry.year)
		return UndoResult{}, NewOutOfSyncError(
			"country missing from registry during undo",
			entry.country, entry.year, entry.emission)
	}

	if !s.RemoveExact(entry.year, entry.emission) {
		slog.Error("undo failed: observation missing from series",
			"country", entry.country, "year", entry.year, "emission", entry.emission)
		return UndoResult{}, NewOutOfSyncError(
			"observation missing from series during undo",
			entry.country, entry.year, entry.emission)
	}

	a.yearlyTotals[entry.year] -= entry.emission

	slog.Info("insertion undone", "country", entry.country, "year", entry.year, "emission", entry.emission)
	return UndoResult{
		Undone:   true,
		Country:  entry.country,
		Year:     entry.year,
		Emission: entry.emission,
	}, nil
}

// SearchCountry returns every observation for the named country in
// chronological order, or an empty result when the country is unknown.
// Matching is exact and case-sensitive.
func (a *Analyzer) SearchCountry(name string) []series.Observation {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.countries[name]
	if !ok {
		return nil
	}
	return s.Records()
}

// Trend returns the emission trend for a country. The trend is the
// chronological record itself, so this is SearchCountry by another name;
// both exist because they are distinct operations on the surface.
func (a *Analyzer) Trend(name string) []series.Observation {
	return a.SearchCountry(name)
}

// YearlyTotal returns the total emission across all countries for a year.
// The second return is false when no country has reported for that year.
func (a *Analyzer) YearlyTotal(year int) (float64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	total, ok := a.yearlyTotals[year]
	return total, ok
}

// TopN returns the n countries with the highest emission in the given year,
// ranked descending. Ties keep the order countries were first observed.
// A year with no data yields an empty result; n < 1 is an invalid argument.
func (a *Analyzer) TopN(year, n int) ([]Ranked, error) {
	if n <= 0 {
		return nil, NewInvalidArgumentError("top-n count must be a positive integer")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	sel := newSelectTop(n)
	seq := 0
	for _, country := range a.order {
		emission, ok := a.countries[country].EmissionFor(year)
		if !ok {
			continue
		}
		sel.offer(candidate{country: country, emission: emission, seq: seq})
		seq++
	}
	return sel.ranked(), nil
}

// SectorAggregate sums emissions per distinct value of the named categorical
// column over the retained source rows. Rows with an empty category are
// skipped.
//
// When no column name is given, or the source data does not carry the
// column, the aggregation is unavailable: an AnalysisError with
// ErrCodeColumnUnavailable is returned. That is a capability gap, not a
// fault.
func (a *Analyzer) SectorAggregate(column string) (map[string]float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if column == "" || a.table == nil || !a.table.HasColumn(column) {
		return nil, NewColumnUnavailableError(column)
	}

	sums := make(map[string]float64)
	for _, row := range a.table.Rows {
		sector := strings.TrimSpace(row.Values[column])
		if sector == "" {
			continue
		}
		sums[sector] += row.Emission
	}
	return sums, nil
}

// Summary condenses one country's series for reporting.
type Summary struct {
	Country string             `json:"country"`
	Count   int                `json:"count"`
	Mean    float64            `json:"mean"`
	Peak    series.Observation `json:"peak"`
}

// Summarize returns observation count, mean emission, and peak observation
// for a country. Returns false for an unknown country or an empty series.
func (a *Analyzer) Summarize(name string) (Summary, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.countries[name]
	if !ok {
		return Summary{}, false
	}
	peak, ok := s.Max()
	if !ok {
		return Summary{}, false
	}
	return Summary{
		Country: name,
		Count:   s.Len(),
		Mean:    s.Mean(),
		Peak:    peak,
	}, true
}

// Countries returns the known country names in first-observation order.
func (a *Analyzer) Countries() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}
