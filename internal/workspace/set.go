package workspace

// NameSet is an insertion-ordered set of workspace names. Computation treats
// it as an unordered set; rendering follows first-insertion order so output is
// deterministic for a given input.
type NameSet struct {
	order   []string
	members map[string]struct{}
}

// NewNameSet returns an empty NameSet.
func NewNameSet(names ...string) *NameSet {
	s := &NameSet{members: make(map[string]struct{})}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name into the set. It reports whether the name was newly added.
func (s *NameSet) Add(name string) bool {
	if _, ok := s.members[name]; ok {
		return false
	}
	s.members[name] = struct{}{}
	s.order = append(s.order, name)
	return true
}

// AddAll inserts every member of other, preserving other's order for names
// not already present.
func (s *NameSet) AddAll(other *NameSet) {
	for _, n := range other.order {
		s.Add(n)
	}
}

// Has reports whether name is a member.
func (s *NameSet) Has(name string) bool {
	_, ok := s.members[name]
	return ok
}

// Names returns the members in first-insertion order. The returned slice is a
// copy.
func (s *NameSet) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of members.
func (s *NameSet) Len() int {
	return len(s.order)
}
