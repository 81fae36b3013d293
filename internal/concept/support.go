package concept

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alexiusacademia/strucconv/internal/geometry"
)

// FixType is a constrained degree of freedom.
type FixType int

const (
	FixX FixType = iota
	FixY
	FixZ
	FixRx
	FixRy
	FixRz
)

var fixNames = [...]string{"dx", "dy", "dz", "rx", "ry", "rz"}

func (f FixType) String() string {
	if f < 0 || int(f) >= len(fixNames) {
		return fmt.Sprintf("FixType(%d)", int(f))
	}
	return fixNames[f]
}

// ParseFixType reads dx, dy, dz, rx, ry or rz.
func ParseFixType(s string) (FixType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range fixNames {
		if n == s {
			return FixType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown degree of freedom %q", s)
}

// SupportLink points a support at a beam end by beam ID. It does not own the beam.
type SupportLink struct {
	BeamID uuid.UUID
	End    End
}

// Support is a point constraint.
type Support struct {
	Name     string
	Position geometry.Vector3
	Fixings  []FixType
	Link     *SupportLink
}

// IsFixed reports whether the support constrains dof f.
func (s *Support) IsFixed(f FixType) bool {
	for _, x := range s.Fixings {
		if x == f {
			return true
		}
	}
	return false
}

// SupportList is the list of supports of a model.
type SupportList struct {
	items []*Support
}

// Add creates a support with no position and no fixings.
func (l *SupportList) Add(name string) *Support {
	s := &Support{Name: name}
	l.items = append(l.items, s)
	return s
}

// FindByName returns the first support with that name, or nil.
func (l *SupportList) FindByName(name string) *Support {
	for _, s := range l.items {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (l *SupportList) All() []*Support { return l.items }

func (l *SupportList) Len() int { return len(l.items) }
