package concept

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/strucconv/internal/geometry"
	"github.com/alexiusacademia/strucconv/internal/material"
	"github.com/alexiusacademia/strucconv/internal/section"
)

const tol = 1e-9

var props = SegmentProps{Section: "P1", Material: "S355", HydroCoefs: "MOR"}

func v(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }

func newTestModel(t *testing.T) (*Model, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	m := New(NewLog(&buf))
	m.Sections.Add(&section.Section{Name: "P1", Shape: section.Pipe{OD: 0.5, Thickness: 0.02}})
	m.Materials.Add(&material.Material{Name: "S355", Density: 7850, YoungModulus: 2.1e11, Poisson: 0.3})
	m.Hydro.Add(&material.MorisonCoefficients{Name: "MOR"})
	return m, &buf
}

func straightBeam(m *Model, name string, points ...geometry.Vector3) *Beam {
	b := m.Beams.AddBeam(name, points[0])
	for _, p := range points[1:] {
		b.AddSegmentByEnd(p, props)
	}
	return b
}

func TestSegmentContiguity(t *testing.T) {
	m, _ := newTestModel(t)
	b := straightBeam(m, "B1", v(0, 0, 0), v(3, 0, 0), v(3, 4, 0), v(3, 4, 12))

	require.Equal(t, 3, b.NumSegments())
	segs := b.Segments()
	for i := 0; i < len(segs)-1; i++ {
		end, next := segs[i].EndPos(), segs[i+1].IniPos
		assert.InDelta(t, 0, end.Distance(next), tol, "gap after segment %d", i)
	}
	assert.InDelta(t, 0, segs[2].EndPos().Distance(b.LastPos()), tol)

	assert.InDelta(t, 19, b.Length(), tol)
	assert.InDelta(t, 0, b.LengthToSeg(-1), tol)
	assert.InDelta(t, 3, b.LengthToSeg(0), tol)
	assert.InDelta(t, 7, b.LengthToSeg(1), tol)
	assert.InDelta(t, 19, b.LengthToSeg(2), tol)
	assert.InDelta(t, 19, b.LengthToSeg(10), tol)
	assert.Equal(t, v(0, 1, 0), segs[1].Direction)
}

func TestSetIniPos(t *testing.T) {
	b := NewBeam("B", v(0, 0, 0))
	require.NoError(t, b.SetIniPos(v(1, 1, 1)))
	assert.Equal(t, v(1, 1, 1), b.LastPos())

	b.AddSegmentByEnd(v(2, 1, 1), props)
	err := b.SetIniPos(v(0, 0, 0))
	assert.ErrorIs(t, err, ErrSegmentsExist)
	assert.Equal(t, v(1, 1, 1), b.IniPos())
}

func TestZeroLengthSegmentIsReported(t *testing.T) {
	m, buf := newTestModel(t)
	b := m.Beams.AddBeam("DOT", v(1, 2, 3))
	b.AddSegmentByEnd(v(1, 2, 3), props)

	seg := b.Segment(0)
	assert.Equal(t, 0.0, seg.Length)
	assert.True(t, seg.Direction.IsZero())
	assert.False(t, math.IsNaN(seg.Direction.X))
	assert.Equal(t, 1, m.Log.Warnings())
	assert.Contains(t, buf.String(), "zero-length segment")
	assert.Contains(t, buf.String(), "beam=DOT")
}

func TestBeamGlobalEnds(t *testing.T) {
	b := NewBeam("B", v(0, 0, 0))
	b.AddSegmentByEnd(v(10, 0, 0), props)
	b.Transform = geometry.NewTransformFromAxes(v(0, 1, 0), v(0, 0, 1), v(5, 5, -10))

	assert.InDelta(t, 0, b.EndA().Distance(v(5, 5, -10)), tol)
	assert.InDelta(t, 0, b.EndB().Distance(v(5, 15, -10)), tol)
	assert.InDelta(t, 0, b.MeanCoords().Distance(v(5, 10, -10)), tol)
	assert.Equal(t, v(5, 5, -10), b.Transform.Origin())
}

func TestBeamCopy(t *testing.T) {
	b := NewBeam("B", v(0, 0, 0))
	b.AddSegmentByEnd(v(1, 0, 0), props)
	b.Properties.Set("Pset", "Tag", "x")

	c := b.Copy()
	assert.NotEqual(t, b.ID, c.ID)
	c.AddSegmentByEnd(v(2, 0, 0), props)
	c.Properties.Set("Pset", "Tag", "y")

	assert.Equal(t, 1, b.NumSegments())
	assert.Equal(t, 2, c.NumSegments())
	tag, _ := b.Properties.Text("Pset", "Tag")
	assert.Equal(t, "x", tag)
}

func TestSplitAt(t *testing.T) {
	b := NewBeam("B", v(0, 0, 0))
	b.AddSegmentByEnd(v(2, 0, 0), props)
	b.AddSegmentByEnd(v(5, 0, 0), props)
	b.AddSegmentByEnd(v(9, 0, 0), props)
	before := b.Length()

	tail, err := b.SplitAt(2)
	require.NoError(t, err)
	assert.Equal(t, 2, b.NumSegments())
	assert.Equal(t, 1, tail.NumSegments())
	assert.Equal(t, b.EndB(), tail.EndA())
	assert.InDelta(t, before, b.Length()+tail.Length(), tol)
	assert.Equal(t, v(9, 0, 0), tail.EndB())

	_, err = b.SplitAt(0)
	assert.Error(t, err)
	_, err = b.SplitAt(2)
	assert.Error(t, err)
}

func TestSplitSegment(t *testing.T) {
	b := NewBeam("B", v(0, 0, 0))
	b.AddSegmentByEnd(v(10, 0, 0), SegmentProps{Section: "S1"})
	b.SplitSegment(0, 4)

	require.Equal(t, 2, b.NumSegments())
	assert.InDelta(t, 4, b.Segment(0).Length, tol)
	assert.InDelta(t, 6, b.Segment(1).Length, tol)
	assert.Equal(t, v(4, 0, 0), b.Segment(1).IniPos)
	assert.Equal(t, "S1", b.Segment(1).Props.Section)
	assert.InDelta(t, 10, b.Length(), tol)
}

func memberCount(l *ConnectionList, b *Beam, e End) int {
	n := 0
	for _, g := range l.Groups() {
		for _, m := range g.Members {
			if m.Beam == b && m.End == e {
				n++
			}
		}
	}
	return n
}

func TestAddMembersUnion(t *testing.T) {
	b1, b2, b3, b4 := NewBeam("1", v(0, 0, 0)), NewBeam("2", v(0, 0, 0)), NewBeam("3", v(0, 0, 0)), NewBeam("4", v(0, 0, 0))
	var l ConnectionList

	l.AddMembers(&ConnectMember{b1, EndA}, &ConnectMember{b2, EndA})
	l.AddMembers(&ConnectMember{b3, EndB}, &ConnectMember{b4, EndB})
	require.Equal(t, 2, l.Len())

	// A batch touching both groups merges them.
	l.AddMembers(&ConnectMember{b2, EndA}, nil, &ConnectMember{b4, EndB}, &ConnectMember{b1, EndB})
	require.Equal(t, 1, l.Len())
	assert.Len(t, l.Group(0).Members, 5)

	for _, b := range []*Beam{b1, b2, b3, b4} {
		for _, e := range []End{EndA, EndB} {
			assert.LessOrEqual(t, memberCount(&l, b, e), 1)
		}
	}
	assert.Equal(t, 0, l.Search(b3, EndB))
	assert.Equal(t, -1, l.Search(b3, EndA))
}

func TestAddMembersIgnoresNil(t *testing.T) {
	var l ConnectionList
	l.AddMembers(nil, nil)
	assert.Equal(t, 0, l.Len())

	b := NewBeam("1", v(0, 0, 0))
	l.AddMembers(nil, &ConnectMember{b, EndA}, &ConnectMember{b, EndA})
	require.Equal(t, 1, l.Len())
	assert.Len(t, l.Group(0).Members, 1)
}

func TestAddPairAndRepoint(t *testing.T) {
	b1, b2, b3 := NewBeam("1", v(0, 0, 0)), NewBeam("2", v(0, 0, 0)), NewBeam("3", v(0, 0, 0))
	var l ConnectionList
	l.AddPair(ConnectMember{b1, EndB}, ConnectMember{b2, EndA})
	l.AddPair(ConnectMember{b1, EndB}, ConnectMember{b2, EndA})
	require.Equal(t, 1, l.Len())
	assert.Len(t, l.Group(0).Members, 2)

	assert.True(t, l.Repoint(b1, EndB, b3))
	assert.Equal(t, -1, l.Search(b1, EndB))
	assert.Equal(t, 0, l.Search(b3, EndB))
	assert.False(t, l.Repoint(b1, EndB, b3))
	assert.Equal(t, "3@B, 2@A", l.Group(0).String())
}

func TestRemoveBeam(t *testing.T) {
	m, _ := newTestModel(t)
	b1 := straightBeam(m, "B1", v(0, 0, 0), v(1, 0, 0))
	b2 := straightBeam(m, "B2", v(1, 0, 0), v(2, 0, 0))
	b3 := straightBeam(m, "B3", v(1, 0, 0), v(1, 1, 0))
	m.Connections.AddMembers(&ConnectMember{b1, EndB}, &ConnectMember{b2, EndA}, &ConnectMember{b3, EndA})
	m.Connections.AddPair(ConnectMember{b1, EndA}, ConnectMember{b2, EndB})

	s := m.Supports.Add("S1")
	s.Link = &SupportLink{BeamID: b1.ID, End: EndA}

	m.RemoveBeam(b1)
	assert.Nil(t, m.Beams.FindByName("B1"))
	assert.Equal(t, 1, m.Connections.Len())
	assert.Len(t, m.Connections.Group(0).Members, 2)
	assert.Nil(t, s.Link)
	_, ok := m.SupportMember(s)
	assert.False(t, ok)
}

func TestLinkSupports(t *testing.T) {
	m, buf := newTestModel(t)
	m.Options.ProximityTol = 0.05
	b1 := straightBeam(m, "LEG", v(0, 0, -100), v(0, 0, 0))
	b2 := straightBeam(m, "BRACE", v(0, 0, -100), v(10, 0, -50))
	b3 := straightBeam(m, "PILE", v(20, 0, -100), v(20, 0, 0))
	m.Connections.AddPair(ConnectMember{b2, EndA}, ConnectMember{b1, EndA})

	joint := m.Supports.Add("J")
	joint.Position = v(0.01, 0, -100)
	free := m.Supports.Add("F")
	free.Position = v(20, 0.02, -100.03)
	lost := m.Supports.Add("L")
	lost.Position = v(50, 50, 50)

	assert.Equal(t, 2, m.LinkSupports())

	got, ok := m.SupportMember(joint)
	require.True(t, ok)
	assert.Same(t, b2, got.Beam)
	assert.Equal(t, EndA, got.End)

	got, ok = m.SupportMember(free)
	require.True(t, ok)
	assert.Same(t, b3, got.Beam)
	assert.Equal(t, EndA, got.End)

	assert.Nil(t, lost.Link)
	assert.Equal(t, 1, m.Log.Warnings())
	assert.Contains(t, buf.String(), "support=L")
	assert.Equal(t, []string{"F"}, m.SupportsAt(b3, EndA))
}

func TestAppendSegmentUnresolvedReference(t *testing.T) {
	m, buf := newTestModel(t)
	b := m.Beams.AddBeam("B", v(0, 0, 0))

	assert.True(t, m.AppendSegment(b, v(1, 0, 0), props))
	assert.False(t, m.AppendSegment(b, v(2, 0, 0), SegmentProps{Section: "NOPE", Material: "S355"}))
	assert.False(t, m.AppendSegment(b, v(2, 0, 0), SegmentProps{Section: "P1", Material: "NOPE"}))
	assert.False(t, m.AppendSegment(b, v(2, 0, 0), SegmentProps{Section: "P1", Material: "S355", HydroCoefs: "NOPE"}))
	assert.True(t, m.AppendSegment(b, v(2, 0, 0), SegmentProps{Section: "P1", Material: "S355"}))

	assert.Equal(t, 2, b.NumSegments())
	assert.Equal(t, 3, m.Log.Warnings())
	assert.Contains(t, buf.String(), `section "NOPE" not found`)
}

func TestApplyExclusions(t *testing.T) {
	m, buf := newTestModel(t)
	m.Sections.Add(&section.Section{Name: "TINY", Shape: section.Bar{Height: 0.1, Width: 0.1}})
	zmax := 50.0
	m.Options.MinLength = 1
	m.Options.Limits.Z.Max = &zmax
	m.Options.ExcludeSections = []string{"TINY"}
	m.Options.ExcludeSets = []string{"Topside"}

	keep := straightBeam(m, "KEEP", v(0, 0, 0), v(10, 0, 0))
	m.Beams.AddBeam("EMPTY", v(0, 0, 0))
	straightBeam(m, "SHORT", v(0, 0, 0), v(0.5, 0, 0))
	straightBeam(m, "HIGH", v(0, 0, 100), v(10, 0, 100))
	tiny := m.Beams.AddBeam("TINYSEC", v(0, 0, 0))
	tiny.AddSegmentByEnd(v(5, 0, 0), props)
	tiny.AddSegmentByEnd(v(10, 0, 0), SegmentProps{Section: "TINY", Material: "S355"})
	straightBeam(m, "DECK", v(0, 5, 0), v(10, 5, 0))
	m.Sets.Add("Topside").Add("DECK")
	m.Sets.Add("Jacket").Add("KEEP", "SHORT")

	assert.Equal(t, 5, m.ApplyExclusions())
	assert.Equal(t, []string{"KEEP"}, m.Beams.Names())
	assert.Same(t, keep, m.Beams.At(0))
	assert.Equal(t, 1, m.Log.Warnings())
	assert.Equal(t, 4, m.Log.Exclusions())
	assert.Nil(t, m.Sets.FindByName("Topside"))
	assert.Equal(t, []string{"KEEP"}, m.Sets.FindByName("Jacket").Items, "removed beams leave their sets")

	out := buf.String()
	assert.Contains(t, out, "beam=SHORT")
	assert.Contains(t, out, "limit=1")
	assert.Contains(t, out, "section=TINY")
	assert.Contains(t, out, "set=Topside")
}

func TestClosedLoopBeamIsReported(t *testing.T) {
	m, buf := newTestModel(t)
	loop := straightBeam(m, "LOOP", v(0, 0, 0), v(1, 0, 0), v(0, 0, 0))
	straightBeam(m, "LINE", v(0, 1, 0), v(1, 1, 0))

	assert.Equal(t, 0, m.ApplyExclusions())
	assert.Equal(t, 2, m.Beams.Len(), "reported, not removed")
	assert.Equal(t, 2.0, loop.Length())
	assert.Equal(t, 1, m.Log.Warnings())
	assert.Contains(t, buf.String(), "beam ends coincide")
	assert.Contains(t, buf.String(), "beam=LOOP")
}

func TestApplyExclusionsDropsEquipment(t *testing.T) {
	m, buf := newTestModel(t)
	m.Options.ExcludeLoadCases = []string{"LC_TOW"}
	m.Equipment.Add("PUMP").LoadCase = "LC_OP"
	m.Equipment.Add("CRANE").LoadCase = "LC_TOW"

	assert.Equal(t, 0, m.ApplyExclusions())
	require.Equal(t, 1, m.Equipment.Len())
	assert.Equal(t, "PUMP", m.Equipment.All()[0].Name)
	assert.Nil(t, m.Equipment.FindByName("CRANE"))
	assert.Equal(t, 1, m.Log.Exclusions())
	assert.Contains(t, buf.String(), "loadCase=LC_TOW")
}

func TestEquipmentPlacement(t *testing.T) {
	var l EquipmentList
	e := l.Add("SKID")
	assert.True(t, e.Placement.IsIdentity())
	e.CoG = v(1, 2, 3)
	assert.Equal(t, v(1, 2, 3), e.GlobalCoG())

	e.Placement = geometry.NewTransformFromAxes(v(0, 1, 0), v(0, 0, 1), v(10, 0, 0))
	assert.Equal(t, v(10, 0, 0), e.Origin())
	assert.InDelta(t, 0, e.GlobalCoG().Distance(v(8, 1, 3)), tol)

	assert.False(t, l.Remove(&Equipment{}))
	assert.True(t, l.Remove(e))
	assert.Equal(t, 0, l.Len())
}

func TestCheckDeclaredSpan(t *testing.T) {
	m, _ := newTestModel(t)
	b := straightBeam(m, "B", v(0, 0, 0), v(10, 0, 0))
	assert.True(t, m.CheckDeclaredSpan(b))

	b.Properties.Set(SpanNamespace, SpanProperty, "10.005")
	assert.True(t, m.CheckDeclaredSpan(b))

	b.Properties.Set(SpanNamespace, SpanProperty, 10.5)
	assert.False(t, m.CheckDeclaredSpan(b))

	b.Properties.Set(SpanNamespace, SpanProperty, "ten")
	assert.False(t, m.CheckDeclaredSpan(b))
	assert.Equal(t, 2, m.Log.Warnings())
}

func TestLineTypeList(t *testing.T) {
	m, _ := newTestModel(t)
	straightBeam(m, "B1", v(0, 0, 0), v(1, 0, 0), v(2, 0, 0))
	b2 := m.Beams.AddBeam("B2", v(0, 0, 0))
	b2.AddSegmentByEnd(v(0, 1, 0), SegmentProps{Section: "P1", Material: "S355", HydroCoefs: "AIR"})

	m.LineTypes.GenerateAll(&m.Beams)
	require.Equal(t, 2, m.LineTypes.Len())
	assert.Equal(t, 0, m.LineTypes.Index(props))
	assert.Equal(t, "Sec=P1_Mat=S355_HydroCoefs=MOR", m.LineTypes.All()[0].EncodeName())
	assert.Equal(t, props, m.LineTypes.Add(SegmentProps{Section: "P1", Material: "S355", HydroCoefs: "MOR"}))
	assert.Equal(t, 2, m.LineTypes.Len())
}

func TestGenerateLineTypesChecksHydro(t *testing.T) {
	m, buf := newTestModel(t)
	skew := material.Directions{X: 0.7, Y: 0.9, Z: 0.1}
	m.Hydro.Add(&material.MorisonCoefficients{Name: "SKEW", Cd: &skew})
	m.Hydro.Add(&material.MorisonCoefficients{Name: "BYD", Points: []material.CoefficientPoint{
		{Diameter: 0, Cd: 1.0, Cm: 2.0, CdNF: 0.8, CmNF: 1.8},
		{Diameter: 1, Cd: 0.6, Cm: 1.6, CdNF: 0.4, CmNF: 1.4},
	}})
	skewProps := SegmentProps{Section: "P1", Material: "S355", HydroCoefs: "SKEW"}
	bydProps := SegmentProps{Section: "P1", Material: "S355", HydroCoefs: "BYD"}
	dry := SegmentProps{Section: "P1", Material: "S355"}

	straightBeam(m, "B1", v(0, 0, 0), v(1, 0, 0))
	m.Beams.AddBeam("B2", v(0, 0, 0)).AddSegmentByEnd(v(0, 1, 0), skewProps)
	m.Beams.AddBeam("B3", v(0, 0, 0)).AddSegmentByEnd(v(0, 2, 0), bydProps)
	m.Beams.AddBeam("B4", v(0, 0, 0)).AddSegmentByEnd(v(0, 3, 0), dry)

	m.GenerateLineTypes()
	assert.Equal(t, 4, m.LineTypes.Len())
	assert.Equal(t, 1, m.Log.Warnings())
	assert.Contains(t, buf.String(), "hydro=SKEW")
	m.GenerateLineTypes()
	assert.Equal(t, 1, m.Log.Warnings(), "each line type is checked once")

	pt, ok, err := m.HydroAt(bydProps)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, pt.Diameter, tol)
	assert.InDelta(t, 0.8, pt.Cd, tol)
	assert.InDelta(t, 1.8, pt.Cm, tol)
	assert.InDelta(t, 0.6, pt.CdNF, tol)

	pt, ok, err = m.HydroAt(skewProps)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.7, pt.Cd)
	assert.True(t, math.IsNaN(pt.Cm))

	_, ok, err = m.HydroAt(dry)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = m.HydroAt(SegmentProps{Section: "P1", Material: "S355", HydroCoefs: "NOPE"})
	assert.Error(t, err)
}

func TestPropertySet(t *testing.T) {
	var p PropertySet
	_, ok := p.Get("A", "x")
	assert.False(t, ok)

	p.Set("Pset_B", "Span", "12.5")
	p.Set("Pset_A", "Name", "leg")
	p.Set("Pset_B", "Mass", 3)

	f, ok, err := p.Float("Pset_B", "Span")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12.5, f)

	_, ok, err = p.Float("Pset_B", "Missing")
	assert.False(t, ok)
	assert.NoError(t, err)

	_, ok, err = p.Float("Pset_A", "Name")
	assert.True(t, ok)
	assert.Error(t, err)

	assert.Equal(t, []PropertyKey{{"Pset_A", "Name"}, {"Pset_B", "Mass"}, {"Pset_B", "Span"}}, p.Keys())

	p.Delete("Pset_A", "Name")
	assert.Equal(t, 2, p.Len())
}

func TestEnvironmentHydroSelection(t *testing.T) {
	env := DefaultEnvironment()
	assert.Equal(t, "MOR", env.HydroCoefsFor(-10, 20, "MOR", "AIR"))
	assert.Equal(t, "AIR", env.HydroCoefsFor(10, 30, "MOR", "AIR"))
	assert.False(t, env.AboveWaveZone(15, 15))
}

func TestLimits(t *testing.T) {
	lo, hi := -1.0, 1.0
	l := Limits{X: Limit{Min: &lo, Max: &hi}}
	assert.True(t, l.Contains(v(0, 1000, -1000)))
	assert.True(t, l.Contains(v(1, 0, 0)))
	assert.False(t, l.Contains(v(1.01, 0, 0)))
	assert.False(t, l.Contains(v(-2, 0, 0)))
}

func TestLogStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	log, err := OpenLog(path)
	require.NoError(t, err)
	assert.Equal(t, "There are no error/warning messages reported.", log.Status())

	log.Warn("first", nil)
	log.Exclusion("second", nil)
	log.Info("not counted", nil)
	assert.Equal(t, 2, log.Count())
	assert.Equal(t, "There are 2 error/warning messages. See file "+path+" for more details.", log.Status())
	require.NoError(t, log.Close())
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=first")
	assert.Contains(t, string(data), "kind=exclusion")
}

func TestParseEndAndFix(t *testing.T) {
	e, err := ParseEnd("b")
	require.NoError(t, err)
	assert.Equal(t, EndB, e)
	_, err = ParseEnd("C")
	assert.Error(t, err)

	f, err := ParseFixType("RZ")
	require.NoError(t, err)
	assert.Equal(t, FixRz, f)
	assert.Equal(t, "dy", FixY.String())
	_, err = ParseFixType("twist")
	assert.Error(t, err)
}
