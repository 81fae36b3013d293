package section

import "github.com/alexiusacademia/strucconv/internal/material"

// LineTypeProps are the per-unit-length properties a line solver needs.
type LineTypeProps struct {
	MassPerLength float64 // kg/m
	EIx           float64 // N.m²
	EIy           float64 // N.m²
	EA            float64 // N
	Poisson       float64
	GJ            float64 // N.m²
}

// LineTypeProps combines the section properties with a material.
func (s *Section) LineTypeProps(m *material.Material) LineTypeProps {
	return CalcLineTypeProps(s.Properties(), m)
}

// CalcLineTypeProps combines geometric properties with a material.
func CalcLineTypeProps(p Properties, m *material.Material) LineTypeProps {
	e := m.YoungModulus
	return LineTypeProps{
		MassPerLength: p.A * m.Density,
		EIx:           e * p.Ixx,
		EIy:           e * p.Iyy,
		EA:            e * p.A,
		Poisson:       m.Poisson,
		GJ:            m.ShearModulus() * p.J,
	}
}
