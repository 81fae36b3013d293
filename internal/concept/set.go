package concept

import "github.com/samber/lo"

// Set is a named, ordered group of beam names.
type Set struct {
	Name  string
	Items []string
}

// Add appends items
func (s *Set) Add(items ...string) {
	s.Items = append(s.Items, items...)
}

// Contains reports whether member is in the set.
func (s *Set) Contains(member string) bool {
	return lo.Contains(s.Items, member)
}

// Replace substitutes every occurrence of old by the given names, in place.
func (s *Set) Replace(old string, with ...string) {
	var out []string
	for _, it := range s.Items {
		if it == old {
			out = append(out, with...)
			continue
		}
		out = append(out, it)
	}
	s.Items = out
}

func (s *Set) Len() int { return len(s.Items) }

// SetList holds the sets of a model.
type SetList struct {
	items []*Set
}

// Add creates an empty set.
func (l *SetList) Add(name string) *Set {
	s := &Set{Name: name}
	l.items = append(l.items, s)
	return s
}

// FindByName returns the first set with that name, or nil.
func (l *SetList) FindByName(name string) *Set {
	s, _ := lo.Find(l.items, func(s *Set) bool { return s.Name == name })
	return s
}

// SetsWith returns the sets containing member.
func (l *SetList) SetsWith(member string) []*Set {
	return lo.Filter(l.items, func(s *Set, _ int) bool { return s.Contains(member) })
}

// Remove deletes the named sets.
func (l *SetList) Remove(names ...string) {
	l.items = lo.Reject(l.items, func(s *Set, _ int) bool { return lo.Contains(names, s.Name) })
}

func (l *SetList) All() []*Set { return l.items }

func (l *SetList) Len() int { return len(l.items) }
