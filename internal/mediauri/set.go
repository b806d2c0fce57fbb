package mediauri

// OrderedSet is a string set that remembers insertion order.
type OrderedSet struct {
	index  map[string]struct{}
	values []string
}

// NewOrderedSet returns a set seeded with values.
func NewOrderedSet(values ...string) *OrderedSet {
	s := &OrderedSet{index: make(map[string]struct{}, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether it was new.
func (s *OrderedSet) Add(v string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.values = append(s.values, v)
	return true
}

func (s *OrderedSet) Has(v string) bool {
	_, ok := s.index[v]
	return ok
}

func (s *OrderedSet) Len() int { return len(s.values) }

// Values returns a copy of the members in insertion order.
func (s *OrderedSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Merge adds every member of other.
func (s *OrderedSet) Merge(other *OrderedSet) {
	if other == nil {
		return
	}
	for _, v := range other.values {
		s.Add(v)
	}
}
