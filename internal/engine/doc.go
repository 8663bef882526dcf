// Package engine implements the emission analysis core.
//
// The Analyzer owns three structures that must stay mutually consistent:
//
//   - the country registry, mapping each country name to its chronological
//     series of (year, emission) observations
//   - the yearly aggregate, mapping each year to the running total emission
//     across all countries
//   - the mutation log, a LIFO record of explicit insertions that supports
//     rolling back the most recent one
//
// Every insert updates the registry and the aggregate as a single logical
// transaction; undo reverses the same two-structure transaction. The
// aggregate is maintained incrementally and never recomputed from scratch.
//
// Queries (country search, yearly total, top-N selection, trend, sector
// aggregation) read from these structures without mutating them. All
// operations serialize on one mutex, since top-N scans read a consistent
// snapshot across the whole registry.
package engine
