package aggregate

// OrderedSet is an insertion-ordered, duplicate-free string collection.
// Project-type accumulation uses it so that truncation for display is
// deterministic rather than dependent on map iteration order.
type OrderedSet struct {
	seen  map[string]struct{}
	items []string
}

// NewOrderedSet returns an empty set.
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{seen: make(map[string]struct{})}
}

// Add inserts a value unless it is already present.
func (s *OrderedSet) Add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

// Items returns the values in insertion order. The returned slice is a copy.
func (s *OrderedSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of distinct values.
func (s *OrderedSet) Len() int {
	return len(s.items)
}
