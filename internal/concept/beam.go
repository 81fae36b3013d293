package concept

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/strucconv/internal/geometry"
)

// ErrSegmentsExist is returned when the start of a beam is moved after
// segments were added to it.
var ErrSegmentsExist = errors.New("initial position cannot change after segments are added")

// Segment is a straight piece of a beam. IniPos and Direction are in the
// beam's local frame and are maintained by the beam.
type Segment struct {
	Length    float64
	Props     SegmentProps
	IniPos    geometry.Vector3
	Direction geometry.Vector3 // unit vector, zero for a zero-length segment
	Flooding  string
}

// EndPos is the local position of the segment end.
func (s Segment) EndPos() geometry.Vector3 {
	return s.IniPos.Add(s.Direction.Scale(s.Length))
}

// Beam is a polyline of contiguous segments in a local frame, placed in the
// global frame by Transform.
type Beam struct {
	ID          uuid.UUID
	Name        string
	Description string
	Transform   geometry.Transform
	Properties  PropertySet

	iniPos   geometry.Vector3
	lastPos  geometry.Vector3
	segments []Segment
	log      *Log
}

// NewBeam creates an empty beam starting at iniPos (local frame).
func NewBeam(name string, iniPos geometry.Vector3) *Beam {
	return &Beam{
		ID:        uuid.New(),
		Name:      name,
		Transform: geometry.Identity(),
		iniPos:    iniPos,
		lastPos:   iniPos,
	}
}

// IniPos is the local position of end A.
func (b *Beam) IniPos() geometry.Vector3 { return b.iniPos }

// LastPos is the local position of end B.
func (b *Beam) LastPos() geometry.Vector3 { return b.lastPos }

// SetIniPos moves the start of an empty beam.
func (b *Beam) SetIniPos(p geometry.Vector3) error {
	if len(b.segments) > 0 {
		return fmt.Errorf("beam %s: %w", b.Name, ErrSegmentsExist)
	}
	b.iniPos, b.lastPos = p, p
	return nil
}

// AddSegmentByEnd appends a straight segment from the current last position
// to end (local frame). A zero-length segment is kept, with a zero direction,
// and reported as a warning. It returns the index of the new segment.
func (b *Beam) AddSegmentByEnd(end geometry.Vector3, props SegmentProps) int {
	dir, length := geometry.Direction(b.lastPos, end)
	if length == 0 && b.log != nil {
		b.log.Warn("zero-length segment", logrus.Fields{
			"beam":    b.Name,
			"segment": len(b.segments) + 1,
			"at":      end.String(),
		})
	}
	b.segments = append(b.segments, Segment{
		Length:    length,
		Props:     props,
		IniPos:    b.lastPos,
		Direction: dir,
	})
	b.lastPos = end
	return len(b.segments) - 1
}

// SetFlooding tags segment i with a flooding condition.
func (b *Beam) SetFlooding(i int, flooding string) {
	b.segments[i].Flooding = flooding
}

// NumSegments returns the number of segments
func (b *Beam) NumSegments() int { return len(b.segments) }

// Segments returns the segments in order. The slice must not be modified.
func (b *Beam) Segments() []Segment { return b.segments }

// Segment returns the i-th segment
func (b *Beam) Segment(i int) Segment { return b.segments[i] }

func (b *Beam) lengths() []float64 {
	ls := make([]float64, len(b.segments))
	for i, s := range b.segments {
		ls[i] = s.Length
	}
	return ls
}

// Length is the sum of the segment lengths.
func (b *Beam) Length() float64 {
	return floats.Sum(b.lengths())
}

// LengthToSeg returns the cumulative length up to and including segment i.
// It is 0 for i < 0 and the total length for i past the last segment.
func (b *Beam) LengthToSeg(i int) float64 {
	if i < 0 || len(b.segments) == 0 {
		return 0
	}
	ls := b.lengths()
	if i >= len(ls) {
		i = len(ls) - 1
	}
	return floats.Sum(ls[:i+1])
}

// EndA is the global position of the beam start.
func (b *Beam) EndA() geometry.Vector3 { return b.Transform.Apply(b.iniPos) }

// EndB is the global position of the beam end.
func (b *Beam) EndB() geometry.Vector3 { return b.Transform.Apply(b.lastPos) }

// End returns the global position of either end.
func (b *Beam) End(e End) geometry.Vector3 {
	if e == EndB {
		return b.EndB()
	}
	return b.EndA()
}

// Chord is the global straight line from end A to end B.
func (b *Beam) Chord() geometry.Line {
	return geometry.Line{A: b.EndA(), B: b.EndB()}
}

// MeanCoords is the global midpoint between the ends.
func (b *Beam) MeanCoords() geometry.Vector3 {
	return geometry.Mean(b.EndA(), b.EndB())
}

// Copy duplicates the beam with its own segment list and a new ID. Segment
// properties are shared by value.
func (b *Beam) Copy() *Beam {
	c := *b
	c.ID = uuid.New()
	c.segments = append([]Segment(nil), b.segments...)
	c.Transform = b.Transform.Copy()
	c.Properties = b.Properties.Copy()
	return &c
}

// SplitSegment cuts segment i at distance li from its start. The new first
// part is inserted before the shortened remainder, so the remainder becomes
// segment i+1.
func (b *Beam) SplitSegment(i int, li float64) {
	s := b.segments[i]
	head := s
	head.Length = li
	tail := s
	tail.Length = s.Length - li
	tail.IniPos = s.IniPos.Add(s.Direction.Scale(li))

	b.segments = append(b.segments, Segment{})
	copy(b.segments[i+2:], b.segments[i+1:])
	b.segments[i] = head
	b.segments[i+1] = tail
}

// SplitAt divides the beam before segment n, 0 < n < NumSegments. The beam
// keeps segments [0, n) and the returned copy holds the rest. The end B of
// the beam and the end A of the copy are the same local point.
func (b *Beam) SplitAt(n int) (*Beam, error) {
	if n <= 0 || n >= len(b.segments) {
		return nil, fmt.Errorf("beam %s: cannot split before segment %d of %d", b.Name, n, len(b.segments))
	}
	tail := b.Copy()
	cut := b.segments[n].IniPos

	tail.iniPos = cut
	tail.segments = append([]Segment(nil), b.segments[n:]...)

	b.lastPos = cut
	b.segments = b.segments[:n:n]
	return tail, nil
}

// BeamList is the ordered list of beams of a model.
type BeamList struct {
	items []*Beam
	log   *Log
}

// AddBeam creates an empty beam and appends it.
func (l *BeamList) AddBeam(name string, iniPos geometry.Vector3) *Beam {
	b := NewBeam(name, iniPos)
	l.Append(b)
	return b
}

// Append adds an existing beam to the end of the list.
func (l *BeamList) Append(b *Beam) {
	b.log = l.log
	l.items = append(l.items, b)
}

// Remove deletes the beam from the list. It reports whether it was present.
func (l *BeamList) Remove(b *Beam) bool {
	i := l.IndexOf(b)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// IndexOf returns the position of b, or -1.
func (l *BeamList) IndexOf(b *Beam) int {
	for i, item := range l.items {
		if item == b {
			return i
		}
	}
	return -1
}

// FindByName returns the first beam with the given name, or nil.
func (l *BeamList) FindByName(name string) *Beam {
	for _, b := range l.items {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// ByID returns the beam with the given ID, or nil.
func (l *BeamList) ByID(id uuid.UUID) *Beam {
	for _, b := range l.items {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// At returns the i-th beam
func (l *BeamList) At(i int) *Beam { return l.items[i] }

func (l *BeamList) Len() int { return len(l.items) }

// All returns the beams in order. The slice must not be modified.
func (l *BeamList) All() []*Beam { return l.items }

// Names lists the beam names in order.
func (l *BeamList) Names() []string {
	names := make([]string, len(l.items))
	for i, b := range l.items {
		names[i] = b.Name
	}
	return names
}
