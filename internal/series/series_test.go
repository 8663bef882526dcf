package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeries_Insert_KeepsChronologicalOrder(t *testing.T) {
	var s Series

	// Deliberately out of order
	s.Insert(2010, 12.5)
	s.Insert(2000, 8.0)
	s.Insert(2020, 15.0)
	s.Insert(2005, 9.5)

	records := s.Records()
	require.Len(t, records, 4)

	years := make([]int, len(records))
	for i, r := range records {
		years[i] = r.Year
	}
	assert.Equal(t, []int{2000, 2005, 2010, 2020}, years)
}

func TestSeries_Insert_HeadAndTail(t *testing.T) {
	var s Series

	s.Insert(2010, 1.0)
	s.Insert(1990, 2.0) // new head
	s.Insert(2030, 3.0) // new tail

	records := s.Records()
	require.Len(t, records, 3)
	assert.Equal(t, 1990, records[0].Year)
	assert.Equal(t, 2030, records[2].Year)
}

func TestSeries_Insert_DuplicateYearKeepsArrivalOrder(t *testing.T) {
	var s Series

	s.Insert(2010, 1.0)
	s.Insert(2010, 2.0)
	s.Insert(2010, 3.0)

	records := s.Records()
	require.Len(t, records, 3)

	// Equal-year entries stay in the order they arrived.
	assert.Equal(t, 1.0, records[0].Emission)
	assert.Equal(t, 2.0, records[1].Emission)
	assert.Equal(t, 3.0, records[2].Emission)
}

func TestSeries_RemoveExact(t *testing.T) {
	var s Series

	s.Insert(2000, 5.0)
	s.Insert(2010, 7.5)

	ok := s.RemoveExact(2010, 7.5)
	require.True(t, ok, "existing entry should be removed")
	assert.Equal(t, 1, s.Len())

	ok = s.RemoveExact(2010, 7.5)
	assert.False(t, ok, "second removal of same entry should miss")
}

func TestSeries_RemoveExact_RequiresBothFieldsToMatch(t *testing.T) {
	var s Series

	s.Insert(2000, 5.0)

	assert.False(t, s.RemoveExact(2000, 5.1), "emission mismatch should not remove")
	assert.False(t, s.RemoveExact(2001, 5.0), "year mismatch should not remove")
	assert.Equal(t, 1, s.Len())
}

func TestSeries_RemoveExact_FirstMatchInListOrder(t *testing.T) {
	var s Series

	// Two identical entries: removal takes the first in list order.
	s.Insert(2010, 4.0)
	s.Insert(2010, 4.0)

	ok := s.RemoveExact(2010, 4.0)
	require.True(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestSeries_RemoveExact_Empty(t *testing.T) {
	var s Series
	assert.False(t, s.RemoveExact(2000, 1.0))
}

func TestSeries_EmissionFor(t *testing.T) {
	var s Series

	s.Insert(2000, 5.0)
	s.Insert(2010, 7.5)

	got, ok := s.EmissionFor(2010)
	require.True(t, ok)
	assert.Equal(t, 7.5, got)

	_, ok = s.EmissionFor(2005)
	assert.False(t, ok, "absent year should miss")
}

func TestSeries_Max(t *testing.T) {
	var s Series

	_, ok := s.Max()
	require.False(t, ok, "empty series has no maximum")

	s.Insert(2000, 5.0)
	s.Insert(2010, 9.0)
	s.Insert(2020, 9.0) // tie: earlier year wins
	s.Insert(2030, 2.0)

	max, ok := s.Max()
	require.True(t, ok)
	assert.Equal(t, 2010, max.Year)
	assert.Equal(t, 9.0, max.Emission)
}

func TestSeries_Mean(t *testing.T) {
	var s Series

	assert.Equal(t, 0.0, s.Mean(), "empty series mean is 0")

	s.Insert(2000, 4.0)
	s.Insert(2010, 8.0)
	assert.Equal(t, 6.0, s.Mean())
}

func TestSeries_Records_IsACopy(t *testing.T) {
	var s Series
	s.Insert(2000, 1.0)

	records := s.Records()
	records[0].Emission = 99.0

	fresh := s.Records()
	assert.Equal(t, 1.0, fresh[0].Emission, "mutating the returned slice must not affect the series")
}
