// Package modelio reads and writes concept models as JSON or YAML documents.
package modelio

import (
	"github.com/alexiusacademia/strucconv/internal/section"
)

// Document is the file representation of a concept model. Coordinates are
// in meters, other quantities in SI units.
type Document struct {
	Name        string          `json:"name,omitempty" yaml:"name,omitempty"`
	Origin      *OriginDoc      `json:"origin,omitempty" yaml:"origin,omitempty"`
	Environment *EnvironmentDoc `json:"environment,omitempty" yaml:"environment,omitempty"`
	Materials   []MaterialDoc   `json:"materials" yaml:"materials"`
	Sections    []SectionDoc    `json:"sections" yaml:"sections"`
	Hydro       []HydroDoc      `json:"hydro,omitempty" yaml:"hydro,omitempty"`
	Beams       []BeamDoc       `json:"beams" yaml:"beams"`
	Supports    []SupportDoc    `json:"supports,omitempty" yaml:"supports,omitempty"`
	Sets        []SetDoc        `json:"sets,omitempty" yaml:"sets,omitempty"`
	Equipment   []EquipmentDoc  `json:"equipment,omitempty" yaml:"equipment,omitempty"`

	// Connections lists joined beam ends as "name@A" / "name@B".
	Connections [][]string `json:"connections,omitempty" yaml:"connections,omitempty"`
}

// OriginDoc records the program that produced the source model
type OriginDoc struct {
	Program string `json:"program,omitempty" yaml:"program,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	User    string `json:"user,omitempty" yaml:"user,omitempty"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
}

// EnvironmentDoc holds the sea state
type EnvironmentDoc struct {
	WaterDepth    float64 `json:"water_depth" yaml:"water_depth"`
	WaterSurfaceZ float64 `json:"water_surface_z" yaml:"water_surface_z"`
	MaxWaveHeight float64 `json:"max_wave_height" yaml:"max_wave_height"`
}

// MaterialDoc is a linear elastic material
type MaterialDoc struct {
	Name             string  `json:"name" yaml:"name"`
	Density          float64 `json:"density" yaml:"density"`
	YoungModulus     float64 `json:"young_modulus" yaml:"young_modulus"`
	Poisson          float64 `json:"poisson" yaml:"poisson"`
	YieldStress      float64 `json:"yield_stress,omitempty" yaml:"yield_stress,omitempty"`
	ThermalExpansion float64 `json:"thermal_expansion,omitempty" yaml:"thermal_expansion,omitempty"`
	Damping          float64 `json:"damping,omitempty" yaml:"damping,omitempty"`
}

// SectionDoc is a cross-section. Type selects which dimensions apply:
//
//	pipe:       od, th
//	i:          h, b, tw, tf (fillet_radius)
//	double_i:   h, b, tw, tf, ws (fillet_radius)
//	box:        h, b, tw, tftop, tfbot
//	bar:        h, b
//	double_box: h, b, tw, otw
//
// General, when given, overrides the computed properties; with no type it
// defines the section alone.
type SectionDoc struct {
	Name         string              `json:"name" yaml:"name"`
	Type         string              `json:"type,omitempty" yaml:"type,omitempty"`
	OD           float64             `json:"od,omitempty" yaml:"od,omitempty"`
	Th           float64             `json:"th,omitempty" yaml:"th,omitempty"`
	H            float64             `json:"h,omitempty" yaml:"h,omitempty"`
	B            float64             `json:"b,omitempty" yaml:"b,omitempty"`
	Tw           float64             `json:"tw,omitempty" yaml:"tw,omitempty"`
	Tf           float64             `json:"tf,omitempty" yaml:"tf,omitempty"`
	TfTop        float64             `json:"tftop,omitempty" yaml:"tftop,omitempty"`
	TfBot        float64             `json:"tfbot,omitempty" yaml:"tfbot,omitempty"`
	Otw          float64             `json:"otw,omitempty" yaml:"otw,omitempty"`
	Ws           float64             `json:"ws,omitempty" yaml:"ws,omitempty"`
	FilletRadius float64             `json:"fillet_radius,omitempty" yaml:"fillet_radius,omitempty"`
	General      *section.Properties `json:"general,omitempty" yaml:"general,omitempty"`
}

// HydroDoc is a set of Morison or air drag coefficients. Directions are
// [x, y, z] in the beam frame, z along the beam.
type HydroDoc struct {
	Name   string          `json:"name" yaml:"name"`
	Cd     []float64       `json:"cd,omitempty" yaml:"cd,omitempty"`
	Ca     []float64       `json:"ca,omitempty" yaml:"ca,omitempty"`
	Cm     []float64       `json:"cm,omitempty" yaml:"cm,omitempty"`
	Points []HydroPointDoc `json:"points,omitempty" yaml:"points,omitempty"`
}

// HydroPointDoc gives coefficients at one diameter
type HydroPointDoc struct {
	Diameter float64 `json:"diameter" yaml:"diameter"`
	Cd       float64 `json:"cd" yaml:"cd"`
	Cm       float64 `json:"cm" yaml:"cm"`
	CdNF     float64 `json:"cd_nf" yaml:"cd_nf"`
	CmNF     float64 `json:"cm_nf" yaml:"cm_nf"`
}

// BeamDoc is a beam: a start point and segments given by their end points,
// in the local frame placed by Transform (16 values, row-major).
type BeamDoc struct {
	Name        string                    `json:"name" yaml:"name"`
	Description string                    `json:"description,omitempty" yaml:"description,omitempty"`
	Transform   []float64                 `json:"transform,omitempty" yaml:"transform,omitempty"`
	Start       []float64                 `json:"start" yaml:"start"`
	Segments    []SegmentDoc              `json:"segments" yaml:"segments"`
	Properties  map[string]map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// SegmentDoc is one straight segment of a beam
type SegmentDoc struct {
	End      []float64 `json:"end" yaml:"end"`
	Section  string    `json:"section" yaml:"section"`
	Material string    `json:"material" yaml:"material"`
	Hydro    string    `json:"hydro,omitempty" yaml:"hydro,omitempty"`
	Flooding string    `json:"flooding,omitempty" yaml:"flooding,omitempty"`
}

// SupportDoc is a point support. Fixings are dx, dy, dz, rx, ry, rz. Link is
// "name@A" or "name@B".
type SupportDoc struct {
	Name     string    `json:"name" yaml:"name"`
	Position []float64 `json:"position" yaml:"position"`
	Fixings  []string  `json:"fixings,omitempty" yaml:"fixings,omitempty"`
	Link     string    `json:"link,omitempty" yaml:"link,omitempty"`
}

// SetDoc is a named group of beams
type SetDoc struct {
	Name  string   `json:"name" yaml:"name"`
	Items []string `json:"items" yaml:"items"`
}

// EquipmentDoc is a box of equipment placed by a load case. CoG, dimensions
// and footprint (x1, y1, x2, y2) are in the local frame given by origin and
// the x and z axes, which default to the global ones.
type EquipmentDoc struct {
	Name       string    `json:"name" yaml:"name"`
	Mass       float64   `json:"mass" yaml:"mass"`
	Origin     []float64 `json:"origin" yaml:"origin"`
	XAxis      []float64 `json:"x_axis,omitempty" yaml:"x_axis,omitempty"`
	ZAxis      []float64 `json:"z_axis,omitempty" yaml:"z_axis,omitempty"`
	CoG        []float64 `json:"cog" yaml:"cog"`
	Dimensions []float64 `json:"dimensions" yaml:"dimensions"`
	Footprint  []float64 `json:"footprint,omitempty" yaml:"footprint,omitempty"`
	LoadCase   string    `json:"load_case,omitempty" yaml:"load_case,omitempty"`
}
