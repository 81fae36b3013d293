package modelio

import (
	"github.com/samber/lo"

	"github.com/alexiusacademia/strucconv/internal/concept"
	"github.com/alexiusacademia/strucconv/internal/material"
	"github.com/alexiusacademia/strucconv/internal/section"
)

// FromModel converts a model back into its document form.
func FromModel(m *concept.Model) *Document {
	d := &Document{Name: m.Origin.ModelName}
	if o := m.Origin; o.Program != "" || o.Version != "" || o.User != "" || o.Date != "" {
		d.Origin = &OriginDoc{Program: o.Program, Version: o.Version, User: o.User, Date: o.Date}
	}
	e := m.Environment
	d.Environment = &EnvironmentDoc{WaterDepth: e.WaterDepth, WaterSurfaceZ: e.WaterSurfaceZ, MaxWaveHeight: e.MaxWaveHeight}

	d.Materials = lo.Map(m.Materials.All(), func(mat *material.Material, _ int) MaterialDoc {
		return MaterialDoc{
			Name:             mat.Name,
			Density:          mat.Density,
			YoungModulus:     mat.YoungModulus,
			Poisson:          mat.Poisson,
			YieldStress:      mat.YieldStress,
			ThermalExpansion: mat.ThermalExpansion,
			Damping:          mat.Damping,
		}
	})
	d.Sections = lo.Map(m.Sections.All(), func(s *section.Section, _ int) SectionDoc { return sectionDoc(s) })
	d.Hydro = lo.Map(m.Hydro.All(), func(c *material.MorisonCoefficients, _ int) HydroDoc { return hydroDoc(c) })

	for _, b := range m.Beams.All() {
		bd := BeamDoc{Name: b.Name, Description: b.Description, Start: b.IniPos().Slice()}
		if !b.Transform.IsIdentity() {
			bd.Transform = b.Transform.Rows()
		}
		for _, s := range b.Segments() {
			bd.Segments = append(bd.Segments, SegmentDoc{
				End:      s.EndPos().Slice(),
				Section:  s.Props.Section,
				Material: s.Props.Material,
				Hydro:    s.Props.HydroCoefs,
				Flooding: s.Flooding,
			})
		}
		for _, k := range b.Properties.Keys() {
			if bd.Properties == nil {
				bd.Properties = map[string]map[string]any{}
			}
			if bd.Properties[k.Namespace] == nil {
				bd.Properties[k.Namespace] = map[string]any{}
			}
			v, _ := b.Properties.Get(k.Namespace, k.Name)
			bd.Properties[k.Namespace][k.Name] = v
		}
		d.Beams = append(d.Beams, bd)
	}

	for _, s := range m.Supports.All() {
		sd := SupportDoc{
			Name:     s.Name,
			Position: s.Position.Slice(),
			Fixings:  lo.Map(s.Fixings, func(f concept.FixType, _ int) string { return f.String() }),
		}
		if mem, ok := m.SupportMember(s); ok {
			sd.Link = mem.String()
		}
		d.Supports = append(d.Supports, sd)
	}

	d.Sets = lo.Map(m.Sets.All(), func(s *concept.Set, _ int) SetDoc {
		return SetDoc{Name: s.Name, Items: append([]string(nil), s.Items...)}
	})

	d.Equipment = lo.Map(m.Equipment.All(), func(e *concept.Equipment, _ int) EquipmentDoc {
		ed := EquipmentDoc{
			Name:       e.Name,
			Mass:       e.Mass,
			Origin:     e.Origin().Slice(),
			CoG:        e.CoG.Slice(),
			Dimensions: e.Dimensions.Slice(),
			Footprint:  append([]float64(nil), e.Footprint[:]...),
			LoadCase:   e.LoadCase,
		}
		if !e.Placement.IsIdentity() {
			ed.XAxis, ed.ZAxis = e.Placement.Axis(0).Slice(), e.Placement.Axis(2).Slice()
		}
		return ed
	})

	d.Connections = lo.Map(m.Connections.Groups(), func(g *concept.ConnectionGroup, _ int) []string {
		return lo.Map(g.Members, func(mem concept.ConnectMember, _ int) string { return mem.String() })
	})
	return d
}

func sectionDoc(s *section.Section) SectionDoc {
	sd := SectionDoc{Name: s.Name, Type: string(s.Kind())}
	switch sh := s.Shape.(type) {
	case section.Pipe:
		sd.OD, sd.Th = sh.OD, sh.Thickness
	case section.ISection:
		sd.H, sd.B, sd.Tw, sd.Tf, sd.FilletRadius, sd.Ws = sh.Height, sh.Width, sh.WebThickness, sh.FlangeThickness, sh.FilletRadius, sh.WebSpacing
	case section.Box:
		sd.H, sd.B, sd.Tw, sd.TfTop, sd.TfBot = sh.Height, sh.Width, sh.WebThickness, sh.TopFlangeThickness, sh.BotFlangeThickness
	case section.Bar:
		sd.H, sd.B = sh.Height, sh.Width
	case section.DoubleBox:
		sd.H, sd.B, sd.Tw, sd.Otw = sh.Height, sh.Width, sh.WebThickness, sh.OuterWallThickness
	}
	if s.General != nil {
		g := *s.General
		sd.General = &g
	}
	return sd
}

func hydroDoc(c *material.MorisonCoefficients) HydroDoc {
	dirs := func(d *material.Directions) []float64 {
		if d == nil {
			return nil
		}
		return []float64{d.X, d.Y, d.Z}
	}
	return HydroDoc{
		Name: c.Name,
		Cd:   dirs(c.Cd),
		Ca:   dirs(c.Ca),
		Cm:   dirs(c.Cm),
		Points: lo.Map(c.Points, func(p material.CoefficientPoint, _ int) HydroPointDoc {
			return HydroPointDoc{Diameter: p.Diameter, Cd: p.Cd, Cm: p.Cm, CdNF: p.CdNF, CmNF: p.CmNF}
		}),
	}
}
