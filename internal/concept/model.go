package concept

import (
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/alexiusacademia/strucconv/internal/geometry"
	"github.com/alexiusacademia/strucconv/internal/material"
	"github.com/alexiusacademia/strucconv/internal/section"
)

// Origin describes where a model came from.
type Origin struct {
	Program   string
	Version   string
	User      string
	Date      string
	ModelName string
}

// Model is the concept model of one conversion run: catalogs, beams and
// their connectivity, supports, sets and settings.
type Model struct {
	Options     Options
	Environment Environment
	Origin      Origin

	Sections  section.List
	Materials material.List
	Hydro     material.HydroList

	Beams       BeamList
	Connections ConnectionList
	Supports    SupportList
	Sets        SetList
	Equipment   EquipmentList
	LineTypes   LineTypeList

	Log *Log
}

// New creates an empty model with default options. A nil log discards
// diagnostics.
func New(log *Log) *Model {
	if log == nil {
		log = NewLog(nil)
	}
	return &Model{
		Options:     DefaultOptions(),
		Environment: DefaultEnvironment(),
		Beams:       BeamList{log: log},
		Log:         log,
	}
}

// Close closes the diagnostics log.
func (m *Model) Close() error {
	return m.Log.Close()
}

// Status summarizes the diagnostics of the run.
func (m *Model) Status() string {
	return m.Log.Status()
}

// AppendSegment adds a segment to beam after checking that its catalog
// references resolve. An unresolvable reference is logged and the segment
// is skipped.
func (m *Model) AppendSegment(b *Beam, end geometry.Vector3, props SegmentProps) bool {
	fields := logrus.Fields{"beam": b.Name, "segment": b.NumSegments() + 1}
	if _, err := m.Sections.Find(props.Section); err != nil {
		m.Log.Warn("segment skipped: unresolvable section", lo.Assign(fields, logrus.Fields{"error": err}))
		return false
	}
	if _, err := m.Materials.Find(props.Material); err != nil {
		m.Log.Warn("segment skipped: unresolvable material", lo.Assign(fields, logrus.Fields{"error": err}))
		return false
	}
	if props.HydroCoefs != "" {
		if _, err := m.Hydro.Find(props.HydroCoefs); err != nil {
			m.Log.Warn("segment skipped: unresolvable hydrodynamic coefficients", lo.Assign(fields, logrus.Fields{"error": err}))
			return false
		}
	}
	b.AddSegmentByEnd(end, props)
	return true
}

// RemoveBeam drops a beam with its connection memberships and set entries.
// Supports linked to it lose their link and must be linked again.
func (m *Model) RemoveBeam(b *Beam) {
	if !m.Beams.Remove(b) {
		return
	}
	m.Connections.RemoveBeam(b)
	for _, s := range m.Sets.SetsWith(b.Name) {
		s.Replace(b.Name)
	}
	for _, s := range m.Supports.All() {
		if s.Link != nil && s.Link.BeamID == b.ID {
			s.Link = nil
		}
	}
}

// SectionProps returns the section and material of a segment.
func (m *Model) SectionProps(p SegmentProps) (*section.Section, *material.Material, error) {
	sec, err := m.Sections.Find(p.Section)
	if err != nil {
		return nil, nil, err
	}
	mat, err := m.Materials.Find(p.Material)
	if err != nil {
		return nil, nil, err
	}
	return sec, mat, nil
}

// GenerateLineTypes interns the segment properties of every beam. Line
// types whose constant hydrodynamic coefficients cannot describe a pipe of
// a single diameter are reported once each.
func (m *Model) GenerateLineTypes() {
	before := m.LineTypes.Len()
	m.LineTypes.GenerateAll(&m.Beams)
	for _, p := range m.LineTypes.All()[before:] {
		if p.HydroCoefs == "" {
			continue
		}
		c, err := m.Hydro.Find(p.HydroCoefs)
		if err != nil {
			continue
		}
		if !c.IsHomogeneousPipe() {
			m.Log.Warn("hydrodynamic coefficients differ between transverse directions or break Cm = Ca + 1", logrus.Fields{
				"lineType": p.EncodeName(), "hydro": c.Name,
			})
		}
	}
}

// HydroAt returns the transverse Morison coefficients of a line type at the
// outer diameter of its section. ok is false when the line type has none.
func (m *Model) HydroAt(p SegmentProps) (material.CoefficientPoint, bool, error) {
	if p.HydroCoefs == "" {
		return material.CoefficientPoint{}, false, nil
	}
	c, err := m.Hydro.Find(p.HydroCoefs)
	if err != nil {
		return material.CoefficientPoint{}, false, err
	}
	sec, err := m.Sections.Find(p.Section)
	if err != nil {
		return material.CoefficientPoint{}, false, err
	}
	pt, err := c.At(sec.OuterDiameter())
	if err != nil {
		return material.CoefficientPoint{}, false, err
	}
	return pt, true, nil
}
