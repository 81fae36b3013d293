package sesam

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alexiusacademia/strucconv/internal/material"
	"github.com/alexiusacademia/strucconv/internal/section"
)

func (rd *reader) readMaterials(list *element) error {
	if list == nil {
		return nil
	}
	for i := range list.Children {
		x := &list.Children[i]
		name := x.get("name")
		p := x.first()
		if p == nil || p.tag() != "isotropic_linear_material" {
			return fmt.Errorf("material %q: only isotropic linear materials are supported", name)
		}
		v, err := p.floats("density", "youngs_modulus", "poissons_ratio")
		if err != nil {
			return fmt.Errorf("material %q: %w", name, err)
		}
		opt := make([]float64, 3)
		for k, attr := range []string{"yield_stress", "thermal_expansion", "damping"} {
			if opt[k], err = p.floatOr(attr, 0); err != nil {
				return fmt.Errorf("material %q: %w", name, err)
			}
		}
		mat := &material.Material{
			Name:             name,
			Density:          v[0] * rd.density,
			YoungModulus:     v[1] * rd.pressure,
			Poisson:          v[2],
			YieldStress:      opt[0] * rd.pressure,
			ThermalExpansion: opt[1],
			Damping:          opt[2],
		}
		if err := mat.Validate(); err != nil {
			return err
		}
		rd.m.Materials.Add(mat)
	}
	return nil
}

func (rd *reader) readSections(list *element) error {
	if list == nil {
		return nil
	}
	for i := range list.Children {
		x := &list.Children[i]
		if x.tag() != "section" {
			continue
		}
		sec, err := rd.section(x)
		if err != nil {
			return err
		}
		if sec == nil {
			continue
		}
		if err := sec.Validate(); err != nil {
			return err
		}
		rd.m.Sections.Add(sec)
	}
	return nil
}

// section returns nil for a section type the reader does not handle.
func (rd *reader) section(x *element) (*section.Section, error) {
	name := x.get("name")
	p := x.first()
	if p == nil {
		return nil, fmt.Errorf("section %q has no definition", name)
	}
	L := rd.length
	wrap := func(err error) error { return fmt.Errorf("section %q: %w", name, err) }

	sec := &section.Section{Name: name}
	switch p.tag() {
	case "pipe_section":
		v, err := p.floats("od", "th")
		if err != nil {
			return nil, wrap(err)
		}
		sec.Shape = section.Pipe{OD: v[0] * L, Thickness: v[1] * L}
	case "i_section", "pgd_section":
		v, err := p.floats("h", "b", "tw", "tf")
		if err != nil {
			return nil, wrap(err)
		}
		fr, err := p.floatOr("fillet_radius", 0)
		if err != nil {
			return nil, wrap(err)
		}
		ws, err := p.floatOr("ws", 0)
		if err != nil {
			return nil, wrap(err)
		}
		sec.Shape = section.ISection{
			Height: v[0] * L, Width: v[1] * L, WebThickness: v[2] * L, FlangeThickness: v[3] * L,
			FilletRadius: fr * L, WebSpacing: ws * L,
		}
	case "bar_section":
		rd.checkShearFactors(name, p)
		v, err := p.floats("h", "b")
		if err != nil {
			return nil, wrap(err)
		}
		sec.Shape = section.Bar{Height: v[0] * L, Width: v[1] * L}
	case "box_section":
		rd.checkShearFactors(name, p)
		v, err := p.floats("h", "b", "tw", "tftop", "tfbot")
		if err != nil {
			return nil, wrap(err)
		}
		sec.Shape = section.Box{
			Height: v[0] * L, Width: v[1] * L, WebThickness: v[2] * L,
			TopFlangeThickness: v[3] * L, BotFlangeThickness: v[4] * L,
		}
	case "pgb_section":
		rd.checkShearFactors(name, p)
		v, err := p.floats("h", "b", "tw", "otw")
		if err != nil {
			return nil, wrap(err)
		}
		sec.Shape = section.DoubleBox{Height: v[0] * L, Width: v[1] * L, WebThickness: v[2] * L, OuterWallThickness: v[3] * L}
	default:
		rd.warn("section type not recognized, section skipped", logrus.Fields{"section": name, "type": p.tag()})
		return nil, nil
	}

	switch method := p.get("general_properties_method"); method {
	case "", "computed":
	case "library", "manual":
		g := p
		if method == "library" {
			g = p.find("libraryGeneralSection")
			if g == nil {
				return nil, wrap(fmt.Errorf("library section has no <libraryGeneralSection>"))
			}
		}
		v, err := g.floats("area", "ix", "iy", "iz")
		if err != nil {
			return nil, wrap(err)
		}
		L2 := L * L
		sec.SetGeneral(v[0]*L2, v[2]*L2*L2, v[3]*L2*L2, v[1]*L2*L2)
	default:
		rd.warn("general properties method not supported, computed properties used", logrus.Fields{
			"section": name, "method": method,
		})
	}
	return sec, nil
}

func (rd *reader) checkShearFactors(name string, p *element) {
	for _, attr := range []string{"sfy", "sfz"} {
		if f, err := p.floatOr(attr, 1); err != nil || f != 1 {
			rd.warn("shear factor other than 1 is not supported", logrus.Fields{
				"section": name, attr: p.get(attr),
			})
		}
	}
}

func (rd *reader) readHydro(list *element) error {
	if list == nil {
		return nil
	}
	for i := range list.Children {
		group := &list.Children[i]
		switch group.tag() {
		case "morison_coefficients", "air_drag_coefficients":
		default:
			rd.warn("hydrodynamic property type not supported, skipped", logrus.Fields{"type": group.tag()})
			continue
		}
		for j := range group.Children {
			c, err := rd.coefficients(&group.Children[j])
			if err != nil {
				return err
			}
			if c != nil {
				rd.m.Hydro.Add(c)
			}
		}
	}
	return nil
}

// coefficients maps the exported x (beam axis) to the local z direction.
func (rd *reader) coefficients(x *element) (*material.MorisonCoefficients, error) {
	name := x.get("name")
	p := x.first()
	if p == nil {
		return nil, fmt.Errorf("hydrodynamic coefficients %q have no definition", name)
	}
	wrap := func(err error) error { return fmt.Errorf("hydrodynamic coefficients %q: %w", name, err) }
	c := &material.MorisonCoefficients{Name: name}

	switch p.tag() {
	case "constant_air_drag_coefficient", "constant_morison_coefficients":
		cd, err := p.floats("c_dx", "c_dy", "c_dz")
		if err != nil {
			return nil, wrap(err)
		}
		c.Cd = &material.Directions{X: cd[1], Y: cd[2], Z: cd[0]}
		if p.tag() == "constant_morison_coefficients" {
			cm, err := p.floats("c_mx", "c_my", "c_mz")
			if err != nil {
				return nil, wrap(err)
			}
			c.Cm = &material.Directions{X: cm[1], Y: cm[2], Z: cm[0]}
			ca := material.AddedMassFromInertia(*c.Cm)
			c.Ca = &ca
		}
	case "morison_coefficients_by_diameter":
		curve := p.first()
		if curve == nil || curve.tag() != "morison_coefficients_curve" {
			rd.warn("coefficients by diameter are not given as a curve, skipped", logrus.Fields{"hydro": name})
			return nil, nil
		}
		for k := range curve.Children {
			v, err := curve.Children[k].floats("diameter", "c_d", "c_m", "c_d_nf", "c_m_nf")
			if err != nil {
				return nil, wrap(err)
			}
			c.Points = append(c.Points, material.CoefficientPoint{
				Diameter: v[0] * rd.length, Cd: v[1], Cm: v[2], CdNF: v[3], CmNF: v[4],
			})
		}
	default:
		rd.warn("hydrodynamic coefficient type not supported, skipped", logrus.Fields{"hydro": name, "type": p.tag()})
		return nil, nil
	}
	return c, nil
}
