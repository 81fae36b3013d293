package concept

import (
	"math"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// SpanNamespace and SpanProperty locate the span declared by the authoring tool.
const (
	SpanNamespace = "Pset_BeamCommon"
	SpanProperty  = "Span"
	spanRelTol    = 0.001
)

// ApplyExclusions removes the beams the options leave out and returns how
// many were removed. Beams without segments are removed with a warning; the
// others are logged as exclusions with the value and limit involved. Excluded
// sets are dropped after their members are removed, and equipment placed in
// an excluded load case is dropped as well.
//
// A kept beam whose ends coincide has no direction and is reported with a
// warning.
func (m *Model) ApplyExclusions() int {
	opts := m.Options
	removed := 0
	for _, b := range append([]*Beam(nil), m.Beams.All()...) {
		reason, fields := m.exclusionReason(b, opts)
		if reason == "" {
			if b.Chord().Length() == 0 {
				m.Log.Warn("beam ends coincide, the beam has no direction", logrus.Fields{
					"beam": b.Name, "end": b.EndA().String(), "length": b.Length(),
				})
			}
			continue
		}
		if b.NumSegments() == 0 {
			m.Log.Warn(reason, fields)
		} else {
			m.Log.Exclusion(reason, fields)
		}
		m.RemoveBeam(b)
		removed++
	}
	if len(opts.ExcludeSets) > 0 {
		m.Sets.Remove(opts.ExcludeSets...)
	}
	for _, e := range append([]*Equipment(nil), m.Equipment.All()...) {
		if lo.Contains(opts.ExcludeLoadCases, e.LoadCase) {
			m.Log.Exclusion("equipment placed in an excluded load case", logrus.Fields{
				"equipment": e.Name, "loadCase": e.LoadCase,
			})
			m.Equipment.Remove(e)
		}
	}
	return removed
}

func (m *Model) exclusionReason(b *Beam, opts Options) (string, logrus.Fields) {
	if b.NumSegments() == 0 {
		return "beam has no segments and is ignored", logrus.Fields{"beam": b.Name}
	}
	if l := b.Length(); l < opts.MinLength {
		return "beam shorter than the minimum length", logrus.Fields{
			"beam": b.Name, "length": l, "limit": opts.MinLength,
		}
	}
	if mean := b.MeanCoords(); !opts.Limits.Contains(mean) {
		return "beam outside the coordinate limits", logrus.Fields{
			"beam": b.Name, "mean": mean.String(),
		}
	}
	for _, s := range b.Segments() {
		if lo.Contains(opts.ExcludeSections, s.Props.Section) {
			return "beam uses an excluded section", logrus.Fields{
				"beam": b.Name, "section": s.Props.Section,
			}
		}
	}
	for _, set := range m.Sets.SetsWith(b.Name) {
		if lo.Contains(opts.ExcludeSets, set.Name) {
			return "beam belongs to an excluded set", logrus.Fields{
				"beam": b.Name, "set": set.Name,
			}
		}
	}
	return "", nil
}

// CheckDeclaredSpan compares a declared span property with the beam length.
// A relative difference above 0.1% is reported. It returns false only when
// the span is present and disagrees or cannot be read.
func (m *Model) CheckDeclaredSpan(b *Beam) bool {
	span, ok, err := b.Properties.Float(SpanNamespace, SpanProperty)
	if !ok {
		return true
	}
	if err != nil {
		m.Log.Warn("declared span is not a number", logrus.Fields{"beam": b.Name, "error": err})
		return false
	}
	l := b.Length()
	if l == 0 || math.Abs(span-l)/l > spanRelTol {
		m.Log.Warn("declared span differs from the beam length", logrus.Fields{
			"beam": b.Name, "span": span, "length": l,
		})
		return false
	}
	return true
}
