package material

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// Directions holds a coefficient per beam-local axis. Z is the beam axis.
// Missing values are NaN.
type Directions struct {
	X, Y, Z float64
}

// Undefined returns directions with no values set.
func Undefined() Directions {
	return Directions{math.NaN(), math.NaN(), math.NaN()}
}

// AddedMassFromInertia derives Ca = max(0, Cm-1) per direction.
func AddedMassFromInertia(cm Directions) Directions {
	f := func(v float64) float64 {
		if math.IsNaN(v) {
			return v
		}
		return math.Max(0, v-1)
	}
	return Directions{f(cm.X), f(cm.Y), f(cm.Z)}
}

// CoefficientPoint gives Morison coefficients at one member diameter.
// The _nf values apply to members without marine growth.
type CoefficientPoint struct {
	Diameter float64
	Cd       float64
	Cm       float64
	CdNF     float64
	CmNF     float64
}

// MorisonCoefficients is a named set of hydrodynamic coefficients, either
// constant (Cd, Ca, Cm) or tabulated by diameter (Points). Air drag sets only
// carry Cd.
type MorisonCoefficients struct {
	Name   string
	Cd     *Directions
	Ca     *Directions
	Cm     *Directions
	Points []CoefficientPoint
}

// ByDiameter reports whether the coefficients are tabulated by diameter.
func (c *MorisonCoefficients) ByDiameter() bool {
	return len(c.Points) > 0
}

// AtDiameter interpolates the tabulated coefficients linearly. Diameters
// outside the table take the nearest end value.
func (c *MorisonCoefficients) AtDiameter(d float64) (CoefficientPoint, error) {
	n := len(c.Points)
	switch n {
	case 0:
		return CoefficientPoint{}, fmt.Errorf("hydrodynamic coefficients %q are not tabulated by diameter", c.Name)
	case 1:
		p := c.Points[0]
		p.Diameter = d
		return p, nil
	}

	pts := append([]CoefficientPoint(nil), c.Points...)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Diameter < pts[j].Diameter })
	xs := make([]float64, n)
	cols := make([][]float64, 4)
	for k := range cols {
		cols[k] = make([]float64, n)
	}
	for i, p := range pts {
		xs[i] = p.Diameter
		cols[0][i], cols[1][i], cols[2][i], cols[3][i] = p.Cd, p.Cm, p.CdNF, p.CmNF
	}

	out := [4]float64{}
	for k, ys := range cols {
		var pl interp.PiecewiseLinear
		if err := pl.Fit(xs, ys); err != nil {
			return CoefficientPoint{}, fmt.Errorf("hydrodynamic coefficients %q: %w", c.Name, err)
		}
		out[k] = pl.Predict(d)
	}
	return CoefficientPoint{Diameter: d, Cd: out[0], Cm: out[1], CdNF: out[2], CmNF: out[3]}, nil
}

// At returns the transverse coefficients for a member of diameter d. Sets
// tabulated by diameter are interpolated; constant sets give their X values
// for both growth states, NaN where a coefficient is missing.
func (c *MorisonCoefficients) At(d float64) (CoefficientPoint, error) {
	if c.ByDiameter() {
		return c.AtDiameter(d)
	}
	cd, cm := Undefined(), Undefined()
	if c.Cd != nil {
		cd = *c.Cd
	}
	if c.Cm != nil {
		cm = *c.Cm
	}
	return CoefficientPoint{Diameter: d, Cd: cd.X, Cm: cm.X, CdNF: cd.X, CmNF: cm.X}, nil
}

// IsHomogeneousPipe reports whether the constant coefficients are the same
// in both transverse directions and Cm = Ca + 1, as a single-diameter line
// model requires.
func (c *MorisonCoefficients) IsHomogeneousPipe() bool {
	if c.Cd != nil && c.Cd.X != c.Cd.Y {
		return false
	}
	if c.Ca == nil {
		return true
	}
	if c.Ca.X != c.Ca.Y {
		return false
	}
	if c.Cm != nil {
		if c.Cm.X != c.Ca.X+1 || c.Cm.Y != c.Ca.Y+1 || c.Cm.Z != c.Ca.Z+1 {
			return false
		}
	}
	return true
}

// HydroList is the catalog of hydrodynamic coefficient sets.
type HydroList struct {
	items []*MorisonCoefficients
}

// Add appends a coefficient set
func (l *HydroList) Add(c *MorisonCoefficients) {
	l.items = append(l.items, c)
}

// Find returns the first coefficient set with the given name.
func (l *HydroList) Find(name string) (*MorisonCoefficients, error) {
	for _, c := range l.items {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, &NotFoundError{Kind: "hydrodynamic coefficients", Name: name}
}

func (l *HydroList) All() []*MorisonCoefficients { return l.items }

func (l *HydroList) Len() int { return len(l.items) }
