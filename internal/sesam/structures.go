package sesam

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alexiusacademia/strucconv/internal/concept"
	"github.com/alexiusacademia/strucconv/internal/geometry"
)

func (rd *reader) readStructures(list *element) error {
	if list == nil {
		return nil
	}
	for i := range list.Children {
		wrapper := &list.Children[i]
		for j := range wrapper.Children {
			s := &wrapper.Children[j]
			var err error
			switch s.tag() {
			case "straight_beam":
				err = rd.readBeam(s)
			case "support_point":
				err = rd.readSupport(s)
			default:
				rd.warn("structure type not supported, skipped", logrus.Fields{
					"structure": s.get("name"), "type": s.tag(),
				})
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (rd *reader) position(p *element) (geometry.Vector3, error) {
	if p == nil {
		return geometry.Vector3{}, fmt.Errorf("missing position")
	}
	v, err := p.floats("x", "y", "z")
	if err != nil {
		return geometry.Vector3{}, err
	}
	return geometry.NewVector3(v[0], v[1], v[2]).Scale(rd.length), nil
}

// guide returns the end points of a straight segment.
func (rd *reader) guide(seg *element) (geometry.Vector3, geometry.Vector3, error) {
	g := seg.path("geometry", "wire", "guide")
	if g == nil || len(g.Children) < 2 {
		return geometry.Vector3{}, geometry.Vector3{}, fmt.Errorf("segment has no guide with two positions")
	}
	a, err := rd.position(&g.Children[0])
	if err != nil {
		return a, a, err
	}
	b, err := rd.position(&g.Children[1])
	return a, b, err
}

func (rd *reader) readBeam(x *element) error {
	name := x.get("name")
	wrap := func(err error) error { return fmt.Errorf("beam %q: %w", name, err) }

	var straight []*element
	segs := x.find("segments")
	if segs != nil {
		for i := range segs.Children {
			s := &segs.Children[i]
			if s.tag() != "straight_segment" {
				rd.warn("segment is not straight, skipped", logrus.Fields{"beam": name, "type": s.tag()})
				continue
			}
			straight = append(straight, s)
		}
	}

	var start geometry.Vector3
	if len(straight) > 0 {
		a, _, err := rd.guide(straight[0])
		if err != nil {
			return wrap(err)
		}
		start = a
	}
	b := rd.m.Beams.AddBeam(name, start)

	env := rd.m.Environment
	for _, s := range straight {
		a, end, err := rd.guide(s)
		if err != nil {
			return wrap(err)
		}
		if a != b.LastPos() {
			rd.warn("discontinuity between segments disregarded", logrus.Fields{
				"beam": name, "gap": a.Distance(b.LastPos()),
			})
		}
		// air drag above the wave zone, judged by the segment's mean elevation
		props := concept.SegmentProps{
			Section:    s.get("section_ref"),
			Material:   s.get("material_ref"),
			HydroCoefs: env.HydroCoefsFor(a.Z, end.Z, s.get("morison_coefficient_ref"), s.get("air_drag_coefficient_ref")),
		}
		rd.m.AppendSegment(b, end, props)
	}
	return nil
}

func (rd *reader) readSupport(x *element) error {
	name := x.get("name")
	pos, err := rd.position(x.path("geometry", "position"))
	if err != nil {
		return fmt.Errorf("support point %q: %w", name, err)
	}
	s := rd.m.Supports.Add(name)
	s.Position = pos

	bcs := x.find("boundary_conditions")
	if bcs == nil {
		return nil
	}
	for i := range bcs.Children {
		bc := &bcs.Children[i]
		if bc.tag() != "boundary_condition" {
			rd.warn("boundary condition not supported", logrus.Fields{"support": name, "type": bc.tag()})
			continue
		}
		if c := bc.get("constraint"); c != "fixed" {
			rd.warn("constraint not supported, taken as fixed", logrus.Fields{"support": name, "constraint": c})
		}
		fix, err := concept.ParseFixType(bc.get("dof"))
		if err != nil {
			return fmt.Errorf("support point %q: %w", name, err)
		}
		s.Fixings = append(s.Fixings, fix)
	}
	return nil
}

func (rd *reader) readSets(list *element) {
	if list == nil {
		return
	}
	for i := range list.Children {
		x := &list.Children[i]
		name := x.get("name")
		for j := range x.Children {
			group := &x.Children[j]
			if group.tag() != "concepts" {
				rd.warn("set group not supported", logrus.Fields{"set": name, "group": group.tag()})
				continue
			}
			if len(group.Children) == 0 {
				continue
			}
			set := rd.m.Sets.FindByName(name)
			if set == nil {
				set = rd.m.Sets.Add(name)
			}
			for k := range group.Children {
				set.Add(group.Children[k].get("concept_ref"))
			}
		}
	}
}
