package engine

import (
	"container/heap"
	"sort"
)

// Ranked is one entry in a top-N result, highest emitters first.
type Ranked struct {
	Country  string  `json:"country"`
	Emission float64 `json:"emission"`
}

// candidate is a (emission, country) pair tagged with the order in which the
// country was visited during the registry scan. The tag keeps tie handling
// deterministic: Go map iteration order is randomized, so the registry scan
// itself runs over an explicit visitation list.
type candidate struct {
	country  string
	emission float64
	seq      int
}

// minHeap is a bounded min-priority collection of candidates.
// The root is the smallest emission currently retained; among equal
// emissions the latest-visited candidate sits closer to the root and is
// evicted first.
type minHeap []candidate

func (h minHeap) Len() int { return len(h) }

func (h minHeap) Less(i, j int) bool {
	if h[i].emission != h[j].emission {
		return h[i].emission < h[j].emission
	}
	return h[i].seq > h[j].seq
}

func (h minHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *minHeap) Push(x any) {
	*h = append(*h, x.(candidate))
}

func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// selectTop keeps the n candidates with the highest emissions out of the
// stream fed through offer, then returns them ranked descending.
//
// While under capacity every candidate is retained. At capacity, the current
// minimum is replaced only when a new candidate's emission strictly exceeds
// it, so an equal emission never displaces a retained entry.
type selectTop struct {
	n    int
	heap minHeap
}

func newSelectTop(n int) *selectTop {
	// n is caller-supplied and may vastly exceed the candidate count, so
	// the heap grows as candidates arrive instead of preallocating to n.
	return &selectTop{n: n}
}

func (s *selectTop) offer(c candidate) {
	if len(s.heap) < s.n {
		heap.Push(&s.heap, c)
		return
	}
	if c.emission > s.heap[0].emission {
		s.heap[0] = c
		heap.Fix(&s.heap, 0)
	}
}

// ranked drains the collection sorted by emission descending; ties keep
// registry visitation order.
func (s *selectTop) ranked() []Ranked {
	entries := make([]candidate, len(s.heap))
	copy(entries, s.heap)

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].emission != entries[j].emission {
			return entries[i].emission > entries[j].emission
		}
		return entries[i].seq < entries[j].seq
	})

	out := make([]Ranked, len(entries))
	for i, e := range entries {
		out[i] = Ranked{Country: e.country, Emission: e.emission}
	}
	return out
}
