package sesam

import "fmt"

// Units are the model units declared by the export.
type Units struct {
	Length   string
	Time     string
	TempDiff string
	Force    string
	Angle    string
	Mass     string
}

// UnitError reports a unit the reader cannot convert.
type UnitError struct {
	Quantity string
	Unit     string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s unit %q is not supported", e.Quantity, e.Unit)
}

func readUnits(model *element) (Units, error) {
	mu := model.path("units", "model_units")
	if mu == nil {
		return Units{}, fmt.Errorf("model has no <units><model_units>")
	}
	return Units{
		Length:   mu.get("length"),
		Time:     mu.get("time"),
		TempDiff: mu.get("temp_diff"),
		Force:    mu.get("force"),
		Angle:    mu.get("angle"),
		Mass:     mu.get("mass"),
	}, nil
}

// LengthFactor converts lengths to meters.
func (u Units) LengthFactor() (float64, error) {
	switch u.Length {
	case "m":
		return 1, nil
	case "km":
		return 1000, nil
	}
	return 0, &UnitError{"length", u.Length}
}

// ForceFactor converts forces to newtons.
func (u Units) ForceFactor() (float64, error) {
	switch u.Force {
	case "N":
		return 1, nil
	case "kN":
		return 1000, nil
	}
	return 0, &UnitError{"force", u.Force}
}

// TimeFactor converts times to seconds.
func (u Units) TimeFactor() (float64, error) {
	if len(u.Time) > 0 && u.Time[0] == 's' {
		return 1, nil
	}
	return 0, &UnitError{"time", u.Time}
}

// MassFactor converts masses to kilograms. Without a mass unit the mass is
// derived from force, time and length.
func (u Units) MassFactor() (float64, error) {
	switch u.Mass {
	case "kg":
		return 1, nil
	case "":
		if u.Force == "" {
			return 0, &UnitError{"mass", u.Mass}
		}
		f, err := u.ForceFactor()
		if err != nil {
			return 0, err
		}
		t, err := u.TimeFactor()
		if err != nil {
			return 0, err
		}
		l, err := u.LengthFactor()
		if err != nil {
			return 0, err
		}
		return f * t * t / l, nil
	}
	return 0, &UnitError{"mass", u.Mass}
}

// DensityFactor converts densities to kg/m³.
func (u Units) DensityFactor() (float64, error) {
	m, err := u.MassFactor()
	if err != nil {
		return 0, err
	}
	l, err := u.LengthFactor()
	if err != nil {
		return 0, err
	}
	return m / (l * l * l), nil
}

// PressureFactor converts stresses and moduli to pascals.
func (u Units) PressureFactor() (float64, error) {
	f, err := u.ForceFactor()
	if err != nil {
		return 0, err
	}
	l, err := u.LengthFactor()
	if err != nil {
		return 0, err
	}
	return f / (l * l), nil
}
