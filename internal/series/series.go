// Package series implements the per-country chronological emission record.
//
// A Series holds (year, emission) observations in non-decreasing year order.
// It is owned by exactly one country entry in the engine's registry and is
// mutated only through ordered insertion and exact-match removal, so the
// ordering invariant holds at all times.
package series

// Observation is a single year's emission reading.
type Observation struct {
	Year     int     `json:"year"`
	Emission float64 `json:"emission"`
}

// Series is an ordered sequence of observations, keyed by year.
//
// The zero value is an empty series ready for use. Entries with equal years
// are kept in arrival order. A Series is not safe for concurrent use; the
// owning registry serializes access.
type Series struct {
	entries []Observation
}

// Insert places an observation so that entries remain sorted by year.
// The new entry goes immediately before the first existing entry whose year
// is strictly greater, so equal-year entries keep arrival order.
//
// Insert accepts any values, including duplicate years and negative
// emissions. Validation is the caller's responsibility.
func (s *Series) Insert(year int, emission float64) {
	obs := Observation{Year: year, Emission: emission}

	pos := len(s.entries)
	for i, e := range s.entries {
		if e.Year > year {
			pos = i
			break
		}
	}

	s.entries = append(s.entries, Observation{})
	copy(s.entries[pos+1:], s.entries[pos:])
	s.entries[pos] = obs
}

// RemoveExact removes the first entry, in list order, whose year and emission
// both match exactly. Returns false if no entry matches.
//
// When duplicates share both year and emission, the first one in list order
// is removed, which is not necessarily the most recently inserted.
func (s *Series) RemoveExact(year int, emission float64) bool {
	for i, e := range s.entries {
		if e.Year == year && e.Emission == emission {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Records returns a copy of all observations in chronological order.
func (s *Series) Records() []Observation {
	out := make([]Observation, len(s.entries))
	copy(out, s.entries)
	return out
}

// EmissionFor returns the emission recorded for the given year.
// When the year appears more than once, the first entry wins.
func (s *Series) EmissionFor(year int) (float64, bool) {
	for _, e := range s.entries {
		if e.Year == year {
			return e.Emission, true
		}
		if e.Year > year {
			break
		}
	}
	return 0, false
}

// Max returns the observation with the strictly greatest emission.
// Ties resolve to the earliest such observation in chronological order.
// Returns false for an empty series.
func (s *Series) Max() (Observation, bool) {
	if len(s.entries) == 0 {
		return Observation{}, false
	}
	max := s.entries[0]
	for _, e := range s.entries[1:] {
		if e.Emission > max.Emission {
			max = e
		}
	}
	return max, true
}

// Mean returns the arithmetic mean emission across all entries,
// or 0 for an empty series.
func (s *Series) Mean() float64 {
	if len(s.entries) == 0 {
		return 0
	}
	var total float64
	for _, e := range s.entries {
		total += e.Emission
	}
	return total / float64(len(s.entries))
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.entries)
}
