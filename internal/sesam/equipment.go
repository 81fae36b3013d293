package sesam

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alexiusacademia/strucconv/internal/geometry"
)

// prism is an equipment definition. Equipment loads place copies of it.
type prism struct {
	mass       float64
	dimensions geometry.Vector3
	cog        geometry.Vector3
	footprint  [4]float64
}

// lengths reads the named attributes of e scaled to meters.
func (rd *reader) lengths(e *element, what string, names ...string) ([]float64, error) {
	if e == nil {
		return nil, fmt.Errorf("missing <%s>", what)
	}
	v, err := e.floats(names...)
	if err != nil {
		return nil, err
	}
	for i := range v {
		v[i] *= rd.length
	}
	return v, nil
}

func (rd *reader) vector(e *element, what string) (geometry.Vector3, error) {
	v, err := rd.lengths(e, what, "x", "y", "z")
	if err != nil {
		return geometry.Vector3{}, err
	}
	return geometry.NewVector3(v[0], v[1], v[2]), nil
}

// readEquipment reads the prism shapes of the equipment domain, then adds
// one equipment per placed_shape load.
func (rd *reader) readEquipment(model *element) error {
	domain := model.find("equipment_domain")
	if domain == nil {
		return nil
	}
	prisms := map[string]prism{}
	for i := range domain.Children {
		list := &domain.Children[i]
		if list.tag() != "equipment_concepts" {
			rd.warn("equipment list not supported", logrus.Fields{"type": list.tag()})
			continue
		}
		items := list.find("equipments")
		if items == nil {
			rd.warn("equipment list has no equipments", logrus.Fields{"type": list.tag()})
			continue
		}
		for j := range items.Children {
			x := &items.Children[j]
			name := x.get("name")
			if x.tag() != "prism_shape" {
				rd.warn("equipment type not supported, skipped", logrus.Fields{"equipment": name, "type": x.tag()})
				continue
			}
			p, ok, err := rd.readPrism(x)
			if err != nil {
				return fmt.Errorf("equipment %q: %w", name, err)
			}
			if ok {
				prisms[name] = p
			}
		}
	}

	loads := model.path("analysis_domain", "analyses", "global", "loads", "equipment_loads")
	if loads == nil {
		return nil
	}
	for i := range loads.Children {
		x := &loads.Children[i]
		if x.tag() != "placed_shape" {
			rd.warn("equipment load type not supported", logrus.Fields{"type": x.tag()})
			continue
		}
		if err := rd.placeEquipment(x, prisms); err != nil {
			return err
		}
	}
	return nil
}

func (rd *reader) readPrism(x *element) (prism, bool, error) {
	poly := x.find("footprint").first()
	if poly == nil || poly.tag() != "polygon" {
		kind := ""
		if poly != nil {
			kind = poly.tag()
		}
		rd.warn("footprint type not supported, equipment skipped", logrus.Fields{"equipment": x.get("name"), "type": kind})
		return prism{}, false, nil
	}

	var p prism
	var err error
	if p.mass, err = x.float("mass"); err != nil {
		return p, false, err
	}
	p.mass *= rd.mass
	if p.dimensions, err = rd.vector(x.find("dimensions"), "dimensions"); err != nil {
		return p, false, err
	}
	if p.cog, err = rd.vector(x.find("cog"), "cog"); err != nil {
		return p, false, err
	}
	fp, err := rd.lengths(poly, "polygon", "x1", "y1", "x2", "y2")
	if err != nil {
		return p, false, err
	}
	copy(p.footprint[:], fp)
	return p, true, nil
}

func (rd *reader) placeEquipment(x *element, prisms map[string]prism) error {
	name, loadCase := x.get("equipment_ref"), x.get("loadcase_ref")
	p, ok := prisms[name]
	if !ok {
		return fmt.Errorf("load case %q places equipment %q, which is not defined", loadCase, name)
	}
	origin, err := rd.vector(x.find("origo"), "origo")
	if err != nil {
		return fmt.Errorf("equipment %q: %w", name, err)
	}

	axes := map[string]geometry.Vector3{
		"x": geometry.NewVector3(1, 0, 0),
		"z": geometry.NewVector3(0, 0, 1),
	}
	if sys := x.find("local_system"); sys != nil {
		for i := range sys.Children {
			vec := &sys.Children[i]
			dir := vec.get("dir")
			if dir != "x" && dir != "y" && dir != "z" {
				rd.warn("local axis not supported, equipment skipped", logrus.Fields{"equipment": name, "dir": dir})
				return nil
			}
			v, err := vec.floats("x", "y", "z")
			if err != nil {
				return fmt.Errorf("equipment %q: %w", name, err)
			}
			axes[dir] = geometry.NewVector3(v[0], v[1], v[2])
		}
	}

	e := rd.m.Equipment.Add(name)
	e.Mass = p.mass
	e.Dimensions, e.CoG, e.Footprint = p.dimensions, p.cog, p.footprint
	e.LoadCase = loadCase
	e.Placement = geometry.NewTransformFromAxes(axes["x"], axes["z"], origin)
	return nil
}
