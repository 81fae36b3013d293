package modelio

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alexiusacademia/strucconv/internal/concept"
	"github.com/alexiusacademia/strucconv/internal/geometry"
	"github.com/alexiusacademia/strucconv/internal/material"
	"github.com/alexiusacademia/strucconv/internal/section"
)

// SchemaError reports a document that cannot describe a model.
type SchemaError struct {
	Path string
	Msg  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func schemaErr(path, format string, args ...any) error {
	return &SchemaError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

func vec(path string, xs []float64) (geometry.Vector3, error) {
	if len(xs) != 3 {
		return geometry.Vector3{}, schemaErr(path, "needs 3 coordinates, got %d", len(xs))
	}
	return geometry.NewVector3(xs[0], xs[1], xs[2]), nil
}

func directions(path string, xs []float64) (*material.Directions, error) {
	if xs == nil {
		return nil, nil
	}
	if len(xs) != 3 {
		return nil, schemaErr(path, "needs 3 directions, got %d", len(xs))
	}
	return &material.Directions{X: xs[0], Y: xs[1], Z: xs[2]}, nil
}

// Build populates a new model from the document. Malformed entries abort
// the build; references that do not resolve are logged and skipped.
func (d *Document) Build(log *concept.Log) (*concept.Model, error) {
	m := concept.New(log)
	m.Origin = concept.Origin{ModelName: d.Name}
	if o := d.Origin; o != nil {
		m.Origin.Program, m.Origin.Version, m.Origin.User, m.Origin.Date = o.Program, o.Version, o.User, o.Date
	}
	if e := d.Environment; e != nil {
		m.Environment = concept.Environment{WaterDepth: e.WaterDepth, WaterSurfaceZ: e.WaterSurfaceZ, MaxWaveHeight: e.MaxWaveHeight}
	}

	for i, md := range d.Materials {
		mat := &material.Material{
			Name:             md.Name,
			Density:          md.Density,
			YoungModulus:     md.YoungModulus,
			Poisson:          md.Poisson,
			YieldStress:      md.YieldStress,
			ThermalExpansion: md.ThermalExpansion,
			Damping:          md.Damping,
		}
		if err := mat.Validate(); err != nil {
			return nil, schemaErr(fmt.Sprintf("materials[%d]", i), "%v", err)
		}
		m.Materials.Add(mat)
	}

	for i, sd := range d.Sections {
		sec, err := sd.Section()
		if err != nil {
			return nil, schemaErr(fmt.Sprintf("sections[%d]", i), "%v", err)
		}
		m.Sections.Add(sec)
	}

	for i, hd := range d.Hydro {
		if err := addHydro(m, fmt.Sprintf("hydro[%d]", i), hd); err != nil {
			return nil, err
		}
	}

	for i, bd := range d.Beams {
		if err := addBeam(m, fmt.Sprintf("beams[%d]", i), bd); err != nil {
			return nil, err
		}
	}

	for _, sd := range d.Sets {
		m.Sets.Add(sd.Name).Add(sd.Items...)
	}

	for i, group := range d.Connections {
		var members []*concept.ConnectMember
		for j, ref := range group {
			mem, err := resolveMember(m, ref)
			if err != nil {
				m.Log.Warn("connection member skipped", logrus.Fields{
					"connection": i + 1, "member": j + 1, "error": err,
				})
				continue
			}
			members = append(members, mem)
		}
		m.Connections.AddMembers(members...)
	}

	for i, sd := range d.Supports {
		if err := addSupport(m, fmt.Sprintf("supports[%d]", i), sd); err != nil {
			return nil, err
		}
	}

	for i, ed := range d.Equipment {
		if err := addEquipment(m, fmt.Sprintf("equipment[%d]", i), ed); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Section builds and validates the section the document describes.
func (sd SectionDoc) Section() (*section.Section, error) {
	s := &section.Section{Name: sd.Name}
	switch section.Kind(strings.ToLower(sd.Type)) {
	case section.KindPipe:
		s.Shape = section.Pipe{OD: sd.OD, Thickness: sd.Th}
	case section.KindI:
		s.Shape = section.ISection{Height: sd.H, Width: sd.B, WebThickness: sd.Tw, FlangeThickness: sd.Tf, FilletRadius: sd.FilletRadius}
	case section.KindDoubleI:
		if sd.Ws <= 0 {
			return nil, fmt.Errorf("double I section %q needs a positive ws", sd.Name)
		}
		s.Shape = section.ISection{Height: sd.H, Width: sd.B, WebThickness: sd.Tw, FlangeThickness: sd.Tf, FilletRadius: sd.FilletRadius, WebSpacing: sd.Ws}
	case section.KindBox:
		s.Shape = section.Box{Height: sd.H, Width: sd.B, WebThickness: sd.Tw, TopFlangeThickness: sd.TfTop, BotFlangeThickness: sd.TfBot}
	case section.KindBar:
		s.Shape = section.Bar{Height: sd.H, Width: sd.B}
	case section.KindDoubleBox:
		s.Shape = section.DoubleBox{Height: sd.H, Width: sd.B, WebThickness: sd.Tw, OuterWallThickness: sd.Otw}
	case "":
	default:
		return nil, fmt.Errorf("section %q has unknown type %q", sd.Name, sd.Type)
	}
	if sd.General != nil {
		g := *sd.General
		s.General = &g
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func addHydro(m *concept.Model, path string, hd HydroDoc) error {
	c := &material.MorisonCoefficients{Name: hd.Name}
	var err error
	if c.Cd, err = directions(path+".cd", hd.Cd); err != nil {
		return err
	}
	if c.Ca, err = directions(path+".ca", hd.Ca); err != nil {
		return err
	}
	if c.Cm, err = directions(path+".cm", hd.Cm); err != nil {
		return err
	}
	if c.Cm != nil && c.Ca == nil {
		ca := material.AddedMassFromInertia(*c.Cm)
		c.Ca = &ca
	}
	for _, p := range hd.Points {
		c.Points = append(c.Points, material.CoefficientPoint{
			Diameter: p.Diameter, Cd: p.Cd, Cm: p.Cm, CdNF: p.CdNF, CmNF: p.CmNF,
		})
	}
	m.Hydro.Add(c)
	return nil
}

func addBeam(m *concept.Model, path string, bd BeamDoc) error {
	start, err := vec(path+".start", bd.Start)
	if err != nil {
		return err
	}
	b := m.Beams.AddBeam(bd.Name, start)
	b.Description = bd.Description
	if bd.Transform != nil {
		t, err := geometry.NewTransformFromRows(bd.Transform)
		if err != nil {
			return schemaErr(path+".transform", "%v", err)
		}
		b.Transform = t
	}
	for ns, props := range bd.Properties {
		for name, v := range props {
			b.Properties.Set(ns, name, v)
		}
	}
	for j, sd := range bd.Segments {
		end, err := vec(fmt.Sprintf("%s.segments[%d].end", path, j), sd.End)
		if err != nil {
			return err
		}
		props := concept.SegmentProps{Section: sd.Section, Material: sd.Material, HydroCoefs: sd.Hydro}
		if m.AppendSegment(b, end, props) && sd.Flooding != "" {
			b.SetFlooding(b.NumSegments()-1, sd.Flooding)
		}
	}
	m.CheckDeclaredSpan(b)
	return nil
}

func addSupport(m *concept.Model, path string, sd SupportDoc) error {
	pos, err := vec(path+".position", sd.Position)
	if err != nil {
		return err
	}
	s := m.Supports.Add(sd.Name)
	s.Position = pos
	for _, f := range sd.Fixings {
		fix, err := concept.ParseFixType(f)
		if err != nil {
			return schemaErr(path+".fixings", "%v", err)
		}
		s.Fixings = append(s.Fixings, fix)
	}
	if sd.Link != "" {
		mem, err := resolveMember(m, sd.Link)
		if err != nil {
			m.Log.Warn("support link dropped", logrus.Fields{"support": sd.Name, "error": err})
			return nil
		}
		s.Link = &concept.SupportLink{BeamID: mem.Beam.ID, End: mem.End}
	}
	return nil
}

func addEquipment(m *concept.Model, path string, ed EquipmentDoc) error {
	origin, err := vec(path+".origin", ed.Origin)
	if err != nil {
		return err
	}
	xAxis, zAxis := geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 0, 1)
	if ed.XAxis != nil {
		if xAxis, err = vec(path+".x_axis", ed.XAxis); err != nil {
			return err
		}
	}
	if ed.ZAxis != nil {
		if zAxis, err = vec(path+".z_axis", ed.ZAxis); err != nil {
			return err
		}
	}
	if zAxis.Length() == 0 || xAxis.Cross(zAxis).Length() == 0 {
		return schemaErr(path, "x_axis and z_axis must be non-zero and not parallel")
	}
	cog, err := vec(path+".cog", ed.CoG)
	if err != nil {
		return err
	}
	dims, err := vec(path+".dimensions", ed.Dimensions)
	if err != nil {
		return err
	}
	if ed.Footprint != nil && len(ed.Footprint) != 4 {
		return schemaErr(path+".footprint", "needs x1, y1, x2, y2, got %d values", len(ed.Footprint))
	}
	if ed.Mass < 0 {
		return schemaErr(path+".mass", "must not be negative, got %g", ed.Mass)
	}

	e := m.Equipment.Add(ed.Name)
	e.Mass, e.CoG, e.Dimensions, e.LoadCase = ed.Mass, cog, dims, ed.LoadCase
	copy(e.Footprint[:], ed.Footprint)
	e.Placement = geometry.NewTransformFromAxes(xAxis, zAxis, origin)
	return nil
}

// resolveMember reads "name@A" or "name@B".
func resolveMember(m *concept.Model, ref string) (*concept.ConnectMember, error) {
	i := strings.LastIndex(ref, "@")
	if i < 0 {
		return nil, fmt.Errorf("member %q is not of the form name@end", ref)
	}
	end, err := concept.ParseEnd(ref[i+1:])
	if err != nil {
		return nil, err
	}
	b := m.Beams.FindByName(ref[:i])
	if b == nil {
		return nil, fmt.Errorf("member %q refers to an unknown beam", ref)
	}
	return &concept.ConnectMember{Beam: b, End: end}, nil
}
