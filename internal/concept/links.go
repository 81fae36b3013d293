package concept

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/sirupsen/logrus"

	"github.com/alexiusacademia/strucconv/internal/geometry"
)

// pointEps gives indexed points a non-degenerate box.
const pointEps = 1e-9

// candidate is a beam end indexed for the support search. Lower order wins.
type candidate struct {
	order  int
	member ConnectMember
	pos    geometry.Vector3
}

func (c *candidate) Bounds() rtreego.Rect {
	return rtreego.Point(c.pos.Slice()).ToRect(pointEps)
}

func newEndTree(cands []*candidate) *rtreego.Rtree {
	tree := rtreego.NewTree(3, 25, 50)
	for _, c := range cands {
		tree.Insert(c)
	}
	return tree
}

// nearest returns the lowest-order candidate within tol (Chebyshev distance) of p.
func nearest(tree *rtreego.Rtree, p geometry.Vector3, tol float64) *candidate {
	box := rtreego.Point(p.Slice()).ToRect(math.Max(tol, pointEps))
	hits := tree.SearchIntersect(box)
	var best *candidate
	for _, h := range hits {
		c := h.(*candidate)
		if geometry.ChebyshevDistance(p, c.pos) >= tol {
			continue
		}
		if best == nil || c.order < best.order {
			best = c
		}
	}
	return best
}

// LinkSupports links every support to the nearest joint within the
// proximity tolerance: first the connection groups, judged by their first
// member, then any beam end. Unlinked supports are reported. It returns the
// number of linked supports.
func (m *Model) LinkSupports() int {
	tol := m.Options.ProximityTol

	var joints []*candidate
	for i, g := range m.Connections.Groups() {
		if len(g.Members) == 0 {
			continue
		}
		first := g.Members[0]
		joints = append(joints, &candidate{order: i, member: first, pos: first.Coord()})
	}
	var ends []*candidate
	for i, b := range m.Beams.All() {
		for _, e := range []End{EndA, EndB} {
			ends = append(ends, &candidate{order: 2*i + int(e), member: ConnectMember{b, e}, pos: b.End(e)})
		}
	}
	jointTree, endTree := newEndTree(joints), newEndTree(ends)

	linked := 0
	for _, s := range m.Supports.All() {
		c := nearest(jointTree, s.Position, tol)
		if c == nil {
			c = nearest(endTree, s.Position, tol)
		}
		if c == nil {
			s.Link = nil
			m.Log.Warn("support not linked: no beam end within tolerance", logrus.Fields{
				"support":   s.Name,
				"position":  s.Position.String(),
				"tolerance": tol,
			})
			continue
		}
		s.Link = &SupportLink{BeamID: c.member.Beam.ID, End: c.member.End}
		linked++
	}
	return linked
}

// SupportMember resolves the link of a support, or returns false when the
// support is unlinked or its beam is gone.
func (m *Model) SupportMember(s *Support) (ConnectMember, bool) {
	if s.Link == nil {
		return ConnectMember{}, false
	}
	b := m.Beams.ByID(s.Link.BeamID)
	if b == nil {
		return ConnectMember{}, false
	}
	return ConnectMember{Beam: b, End: s.Link.End}, true
}

// SupportsAt returns the names of supports linked to the given beam end, sorted.
func (m *Model) SupportsAt(b *Beam, e End) []string {
	var names []string
	for _, s := range m.Supports.All() {
		if s.Link != nil && s.Link.BeamID == b.ID && s.Link.End == e {
			names = append(names, s.Name)
		}
	}
	sort.Strings(names)
	return names
}
