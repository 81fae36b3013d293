package material

import (
	"errors"
	"fmt"
)

// Typical structural steel, used when a source omits a value.
const (
	SteelDensity      = 7850.0 // kg/m³
	SteelYoungModulus = 2.1e11 // Pa
	SteelPoisson      = 0.3
)

// Material is a linear elastic isotropic material in SI units.
type Material struct {
	Name             string
	Density          float64 // kg/m³
	YoungModulus     float64 // Pa
	Poisson          float64
	YieldStress      float64 // Pa, optional
	ThermalExpansion float64 // 1/K, optional
	Damping          float64 // ratio of critical damping, optional
}

// ShearModulus returns G = E / (2(1+ν))
func (m *Material) ShearModulus() float64 {
	return m.YoungModulus / (2 * (1 + m.Poisson))
}

// Validate checks if the material definition is valid
func (m *Material) Validate() error {
	switch {
	case m.Name == "":
		return &ValidationError{"material must have a name"}
	case m.Density < 0:
		return &ValidationError{fmt.Sprintf("material %q: density must not be negative", m.Name)}
	case m.YoungModulus <= 0:
		return &ValidationError{fmt.Sprintf("material %q: Young's modulus must be positive", m.Name)}
	case m.Poisson <= -1 || m.Poisson >= 0.5:
		return &ValidationError{fmt.Sprintf("material %q: Poisson ratio %g out of (-1, 0.5)", m.Name, m.Poisson)}
	}
	return nil
}

// ValidationError represents a material validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// ErrNotFound is matched by every catalog lookup failure.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a name missing from a catalog.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// List is the material catalog
type List struct {
	items []*Material
}

// Add appends a material
func (l *List) Add(m *Material) {
	l.items = append(l.items, m)
}

// Find returns the first material with the given name.
func (l *List) Find(name string) (*Material, error) {
	for _, m := range l.items {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, &NotFoundError{Kind: "material", Name: name}
}

// All returns the materials in catalog order.
func (l *List) All() []*Material { return l.items }

func (l *List) Len() int { return len(l.items) }
