// Package intersect builds the connectivity of a concept model from geometry:
// beams whose lines pass within the proximity tolerance are cut at the point
// of closest approach and their new ends are joined.
package intersect

import (
	"github.com/sirupsen/logrus"

	"github.com/alexiusacademia/strucconv/internal/concept"
	"github.com/alexiusacademia/strucconv/internal/geometry"
)

// minCut is the shortest piece ever cut from a segment, whatever MinLength is.
const minCut = 1e-9

// Stats summarizes a detection pass.
type Stats struct {
	Joints int // beam pairs found within tolerance
	Splits int // beams divided in two
}

// Detect scans every pair of beams, divides both beams of each pair that
// comes within the proximity tolerance and merges the resulting ends into
// the connection list. Beams created by a division are scanned as well.
// Parallel lines that only overlap, and lines whose closest point lies past
// their ends, are skipped without notice.
func Detect(m *concept.Model) Stats {
	var st Stats
	tol := m.Options.ProximityTol
	for i := 0; i < m.Beams.Len()-1; i++ {
		for j := i + 1; j < m.Beams.Len(); j++ {
			b1, b2 := m.Beams.At(i), m.Beams.At(j)
			a, ok := geometry.ClosestApproach(b1.Chord(), b2.Chord(), m.Options.AngleTol, tol)
			if !ok || a.Distance > tol {
				continue
			}
			before := m.Beams.Len()
			c1a, c1b := DivideBeam(m, b1, a.Eta1)
			c2a, c2b := DivideBeam(m, b2, a.Eta2)
			m.Connections.AddMembers(c1a, c1b, c2a, c2b)

			st.Joints++
			st.Splits += m.Beams.Len() - before
			m.Log.Debug("beams joined", logrus.Fields{
				"beam1": b1.Name, "beam2": b2.Name,
				"distance": a.Distance, "ksi1": a.Eta1, "ksi2": a.Eta2,
			})
		}
	}
	return st
}

// SliceBeam makes a segment boundary at natural coordinate ksi and returns
// the number of segments before it.
//
// The segment holding ksi is cut only when both pieces are at least
// minLength long. Otherwise the cut snaps to the boundary that leaves a
// long enough piece, or to the nearer one when neither does.
func SliceBeam(b *concept.Beam, ksi, minLength float64) int {
	n := b.NumSegments()
	total := b.Length()
	if n == 0 || total == 0 {
		return 0
	}

	i := 0
	for i < n-1 && ksi > b.LengthToSeg(i)/total {
		i++
	}
	li := ksi*total - b.LengthToSeg(i-1)
	lj := b.LengthToSeg(i) - ksi*total

	long := func(l float64) bool { return l >= minLength && l > minCut }
	switch {
	case long(li) && long(lj):
		b.SplitSegment(i, li)
		return i + 1
	case long(lj):
		return i
	case long(li):
		return i + 1
	case li < lj:
		return i
	default:
		return i + 1
	}
}

// DivideBeam cuts beam at ksi and returns the members to join there.
//
// When the cut falls inside the beam, the tail becomes a new beam appended
// to the model: the beam is renamed with a _PartA suffix and keeps end A,
// the tail is named _PartB and takes over end B, including its connection,
// its supports and its set memberships. The returned members are the
// beam's new end B and the tail's end A. A cut at the start returns only the
// beam's end A (first value nil); a cut at the end returns only its end B.
func DivideBeam(m *concept.Model, beam *concept.Beam, ksi float64) (*concept.ConnectMember, *concept.ConnectMember) {
	n := SliceBeam(beam, ksi, m.Options.MinLength)
	switch {
	case n == 0:
		return nil, &concept.ConnectMember{Beam: beam, End: concept.EndA}
	case n >= beam.NumSegments():
		return &concept.ConnectMember{Beam: beam, End: concept.EndB}, nil
	}

	tail, err := beam.SplitAt(n)
	if err != nil {
		// unreachable: 0 < n < NumSegments
		panic(err)
	}
	name := beam.Name
	beam.Name = name + "_PartA"
	tail.Name = name + "_PartB"
	for _, b := range []*concept.Beam{beam, tail} {
		b.Properties.Delete(concept.SpanNamespace, concept.SpanProperty)
	}

	m.Connections.Repoint(beam, concept.EndB, tail)
	for _, s := range m.Supports.All() {
		if s.Link != nil && s.Link.BeamID == beam.ID && s.Link.End == concept.EndB {
			s.Link.BeamID = tail.ID
		}
	}
	for _, s := range m.Sets.SetsWith(name) {
		s.Replace(name, beam.Name, tail.Name)
	}
	m.Beams.Append(tail)

	return &concept.ConnectMember{Beam: beam, End: concept.EndB},
		&concept.ConnectMember{Beam: tail, End: concept.EndA}
}
