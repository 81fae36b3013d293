package section

import "fmt"

// Kind names a cross-section shape family.
type Kind string

const (
	KindPipe      Kind = "pipe"
	KindI         Kind = "i"
	KindDoubleI   Kind = "double_i"
	KindBox       Kind = "box"
	KindBar       Kind = "bar"
	KindDoubleBox Kind = "double_box"
)

// Section is a named cross-section. Its properties come from Shape unless
// General overrides them (library or manually entered values).
type Section struct {
	Name    string
	Shape   Shape
	General *Properties
}

// Shape is implemented by every parametric cross-section.
type Shape interface {
	Kind() Kind
	Properties() Properties
	OuterDiameter() float64
	InnerDiameter() float64
	Validate() error
}

// Properties holds the geometric section properties (m², m⁴).
type Properties struct {
	A   float64 `json:"area" yaml:"area"`
	Ixx float64 `json:"ixx" yaml:"ixx"`
	Iyy float64 `json:"iyy" yaml:"iyy"`
	J   float64 `json:"j" yaml:"j"` // torsional constant
}

// Pipe is a circular hollow section
type Pipe struct {
	OD        float64 // outer diameter
	Thickness float64 // wall thickness
}

// ISection is an I (or H) section. A positive WebSpacing turns it into a
// double-I section with two webs.
type ISection struct {
	Height          float64
	Width           float64
	WebThickness    float64
	FlangeThickness float64
	FilletRadius    float64 // stored, not used in the properties
	WebSpacing      float64
}

// Box is a rectangular hollow section
type Box struct {
	Height             float64
	Width              float64
	WebThickness       float64
	TopFlangeThickness float64
	BotFlangeThickness float64
}

// Bar is a solid rectangle
type Bar struct {
	Height float64
	Width  float64
}

// DoubleBox is a box of uniform outer wall thickness split by a middle web.
type DoubleBox struct {
	Height             float64
	Width              float64
	WebThickness       float64 // middle web
	OuterWallThickness float64
}

// Kind returns the shape of the section, or "" when it has none.
func (s *Section) Kind() Kind {
	if s.Shape == nil {
		return ""
	}
	return s.Shape.Kind()
}

// Properties returns the general properties when set, else the ones derived from the shape.
func (s *Section) Properties() Properties {
	if s.General != nil {
		return *s.General
	}
	if s.Shape == nil {
		return Properties{}
	}
	return s.Shape.Properties()
}

// SetGeneral overrides the derived properties.
func (s *Section) SetGeneral(a, ixx, iyy, j float64) {
	s.General = &Properties{A: a, Ixx: ixx, Iyy: iyy, J: j}
}

// OuterDiameter is the equivalent diameter used for hydrodynamic coefficient lookup.
func (s *Section) OuterDiameter() float64 {
	if s.Shape == nil {
		return 0
	}
	return s.Shape.OuterDiameter()
}

// InnerDiameter of the equivalent hollow circle
func (s *Section) InnerDiameter() float64 {
	if s.Shape == nil {
		return 0
	}
	return s.Shape.InnerDiameter()
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if s.Name == "" {
		return &ValidationError{"section must have a name"}
	}
	if s.Shape == nil && s.General == nil {
		return &ValidationError{fmt.Sprintf("section %q has neither a shape nor general properties", s.Name)}
	}
	if s.General != nil && s.General.A <= 0 {
		return &ValidationError{fmt.Sprintf("section %q: general area must be positive", s.Name)}
	}
	if s.Shape != nil {
		if err := s.Shape.Validate(); err != nil {
			return &ValidationError{fmt.Sprintf("section %q: %v", s.Name, err)}
		}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func positive(pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if v, _ := pairs[i+1].(float64); v <= 0 {
			return &ValidationError{fmt.Sprintf("%s must be positive", pairs[i])}
		}
	}
	return nil
}

func (p Pipe) Validate() error {
	if err := positive("od", p.OD, "th", p.Thickness); err != nil {
		return err
	}
	if 2*p.Thickness > p.OD {
		return &ValidationError{"wall thickness exceeds the radius"}
	}
	return nil
}

func (s ISection) Validate() error {
	if err := positive("h", s.Height, "b", s.Width, "tw", s.WebThickness, "tf", s.FlangeThickness); err != nil {
		return err
	}
	if 2*s.FlangeThickness >= s.Height {
		return &ValidationError{"flanges leave no web height"}
	}
	if s.WebSpacing < 0 {
		return &ValidationError{"ws must not be negative"}
	}
	return nil
}

func (b Box) Validate() error {
	if err := positive("h", b.Height, "b", b.Width, "tw", b.WebThickness,
		"tftop", b.TopFlangeThickness, "tfbot", b.BotFlangeThickness); err != nil {
		return err
	}
	if 2*b.WebThickness >= b.Width || b.TopFlangeThickness+b.BotFlangeThickness >= b.Height {
		return &ValidationError{"plates leave no hollow core"}
	}
	return nil
}

func (b Bar) Validate() error {
	return positive("h", b.Height, "b", b.Width)
}

func (d DoubleBox) Validate() error {
	if err := positive("h", d.Height, "b", d.Width, "tw", d.WebThickness, "otw", d.OuterWallThickness); err != nil {
		return err
	}
	if 2*d.OuterWallThickness >= d.Width || 2*d.OuterWallThickness >= d.Height {
		return &ValidationError{"outer walls leave no hollow core"}
	}
	return nil
}
