package concept

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/alexiusacademia/strucconv/internal/geometry"
)

// End identifies one end of a beam.
type End int

const (
	EndA End = iota
	EndB
)

func (e End) String() string {
	if e == EndB {
		return "B"
	}
	return "A"
}

// ParseEnd reads "A" or "B".
func ParseEnd(s string) (End, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return EndA, nil
	case "B":
		return EndB, nil
	}
	return EndA, fmt.Errorf("invalid beam end %q", s)
}

// ConnectMember is one end of one beam.
type ConnectMember struct {
	Beam *Beam
	End  End
}

// Coord is the global position of the member.
func (m ConnectMember) Coord() geometry.Vector3 {
	return m.Beam.End(m.End)
}

func (m ConnectMember) String() string {
	return m.Beam.Name + "@" + m.End.String()
}

func (m ConnectMember) is(beam *Beam, end End) bool {
	return m.Beam == beam && m.End == end
}

// ConnectionGroup is a set of beam ends considered physically joined.
type ConnectionGroup struct {
	Members []ConnectMember
}

// Search returns the index of the member, or -1.
func (g *ConnectionGroup) Search(beam *Beam, end End) int {
	_, i, ok := lo.FindIndexOf(g.Members, func(m ConnectMember) bool { return m.is(beam, end) })
	if !ok {
		return -1
	}
	return i
}

// Add appends m unless it is already a member.
func (g *ConnectionGroup) Add(m ConnectMember) {
	if g.Search(m.Beam, m.End) < 0 {
		g.Members = append(g.Members, m)
	}
}

func (g *ConnectionGroup) String() string {
	return strings.Join(lo.Map(g.Members, func(m ConnectMember, _ int) string { return m.String() }), ", ")
}

// ConnectionList holds disjoint connection groups: a member belongs to at
// most one group.
type ConnectionList struct {
	groups []*ConnectionGroup
}

// Search returns the index of the group containing the member, or -1.
func (l *ConnectionList) Search(beam *Beam, end End) int {
	for i, g := range l.groups {
		if g.Search(beam, end) >= 0 {
			return i
		}
	}
	return -1
}

// AddMembers merges a batch of members into the list. Nil members are
// ignored. Every existing group holding one of the members is merged into the
// first of them together with the whole batch; without such a group the
// batch becomes a new group.
func (l *ConnectionList) AddMembers(members ...*ConnectMember) {
	batch := lo.FilterMap(members, func(m *ConnectMember, _ int) (ConnectMember, bool) {
		if m == nil || m.Beam == nil {
			return ConnectMember{}, false
		}
		return *m, true
	})
	if len(batch) == 0 {
		return
	}

	var hits []int
	for _, m := range batch {
		if i := l.Search(m.Beam, m.End); i >= 0 {
			hits = append(hits, i)
		}
	}
	hits = lo.Uniq(hits)
	sort.Ints(hits)

	if len(hits) == 0 {
		g := &ConnectionGroup{}
		for _, m := range batch {
			g.Add(m)
		}
		l.groups = append(l.groups, g)
		return
	}

	target := l.groups[hits[0]]
	for _, i := range hits[1:] {
		for _, m := range l.groups[i].Members {
			target.Add(m)
		}
	}
	for _, m := range batch {
		target.Add(m)
	}
	for k := len(hits) - 1; k >= 1; k-- {
		l.removeGroup(hits[k])
	}
}

// AddPair joins two members.
func (l *ConnectionList) AddPair(a, b ConnectMember) {
	l.AddMembers(&a, &b)
}

// Repoint moves the membership of (from, end) to beam to, keeping the end.
// It reports whether the member was found.
func (l *ConnectionList) Repoint(from *Beam, end End, to *Beam) bool {
	i := l.Search(from, end)
	if i < 0 {
		return false
	}
	g := l.groups[i]
	g.Members[g.Search(from, end)].Beam = to
	return true
}

// RemoveBeam drops every member referring to b. Groups left with fewer than
// two members are dropped as well.
func (l *ConnectionList) RemoveBeam(b *Beam) {
	kept := l.groups[:0]
	for _, g := range l.groups {
		g.Members = lo.Reject(g.Members, func(m ConnectMember, _ int) bool { return m.Beam == b })
		if len(g.Members) >= 2 {
			kept = append(kept, g)
		}
	}
	for i := len(kept); i < len(l.groups); i++ {
		l.groups[i] = nil
	}
	l.groups = kept
}

func (l *ConnectionList) removeGroup(i int) {
	l.groups = append(l.groups[:i], l.groups[i+1:]...)
}

// Groups returns the groups in order. The slice must not be modified.
func (l *ConnectionList) Groups() []*ConnectionGroup { return l.groups }

// Group returns the i-th group
func (l *ConnectionList) Group(i int) *ConnectionGroup { return l.groups[i] }

func (l *ConnectionList) Len() int { return len(l.groups) }
