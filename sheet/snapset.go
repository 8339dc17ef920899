package sheet

import "sort"

// SnapSet is the ordered set of sizes a sheet pins to, kept sorted
// ascending by resolved height. A SnapSet is never empty: an empty size
// list at construction falls back to Half.
type SnapSet struct {
	entries []snapEntry
}

type snapEntry struct {
	size   Size
	height float64
}

// NewSnapSet resolves sizes against m and returns them as a sorted set.
func NewSnapSet(m Metrics, sizes ...Size) *SnapSet {
	s := &SnapSet{}
	s.Replace(m, sizes...)
	return s
}

// Replace swaps in a new size list and re-resolves against m. An empty
// list is a configuration error: the current set is kept and Replace
// reports false, except at construction where the set falls back to
// Half.
func (s *SnapSet) Replace(m Metrics, sizes ...Size) bool {
	if len(sizes) == 0 {
		if len(s.entries) > 0 {
			return false
		}
		sizes = []Size{Half}
	}
	entries := make([]snapEntry, len(sizes))
	for i, sz := range sizes {
		entries[i] = snapEntry{size: sz}
	}
	s.entries = entries
	s.Reresolve(m)
	return true
}

// Reresolve recomputes entry heights against new host geometry and
// restores ascending order. The sort is stable, so entries resolving to
// the same height keep their input order.
func (s *SnapSet) Reresolve(m Metrics) {
	for i := range s.entries {
		s.entries[i].height = s.entries[i].size.Resolve(m)
	}
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].height < s.entries[j].height
	})
}

func (s *SnapSet) Len() int { return len(s.entries) }

// At returns the i-th size and its resolved height, smallest first.
func (s *SnapSet) At(i int) (Size, float64) {
	e := s.entries[i]
	return e.size, e.height
}

// Min is the smallest resolved snap height.
func (s *SnapSet) Min() float64 { return s.entries[0].height }

// Max is the largest resolved snap height.
func (s *SnapSet) Max() float64 { return s.entries[len(s.entries)-1].height }

// Smallest is the size with the smallest resolved height.
func (s *SnapSet) Smallest() Size { return s.entries[0].size }

// Sizes returns the sizes in ascending resolved order.
func (s *SnapSet) Sizes() []Size {
	out := make([]Size, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.size
	}
	return out
}

// Index returns the position of sz in the set, or -1.
func (s *SnapSet) Index(sz Size) int {
	for i, e := range s.entries {
		if e.size == sz {
			return i
		}
	}
	return -1
}
