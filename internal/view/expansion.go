package view

import "slices"

// ExpansionSet is an immutable set of expanded record ids. Every change
// returns a new set; the zero value is empty.
type ExpansionSet struct {
	ids map[string]struct{}
}

// NewExpansionSet builds a set from ids. Empty ids are ignored.
func NewExpansionSet(ids ...string) ExpansionSet {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			m[id] = struct{}{}
		}
	}
	return ExpansionSet{ids: m}
}

func (s ExpansionSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s ExpansionSet) Len() int { return len(s.ids) }

// With returns a copy of s containing id.
func (s ExpansionSet) With(id string) ExpansionSet {
	if id == "" || s.Has(id) {
		return s
	}
	next := s.clone(len(s.ids) + 1)
	next.ids[id] = struct{}{}
	return next
}

// Without returns a copy of s lacking id.
func (s ExpansionSet) Without(id string) ExpansionSet {
	if !s.Has(id) {
		return s
	}
	next := s.clone(len(s.ids))
	delete(next.ids, id)
	return next
}

// Toggle flips membership of id.
func (s ExpansionSet) Toggle(id string) ExpansionSet {
	if s.Has(id) {
		return s.Without(id)
	}
	return s.With(id)
}

// IDs returns the members in sorted order.
func (s ExpansionSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s ExpansionSet) clone(capacity int) ExpansionSet {
	m := make(map[string]struct{}, capacity)
	for id := range s.ids {
		m[id] = struct{}{}
	}
	return ExpansionSet{ids: m}
}
