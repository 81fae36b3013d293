package concept

import "github.com/alexiusacademia/strucconv/internal/geometry"

// Limit is an optional closed interval. A nil bound is open.
type Limit struct {
	Min *float64
	Max *float64
}

// Contains reports whether v lies within the limit.
func (l Limit) Contains(v float64) bool {
	if l.Min != nil && v < *l.Min {
		return false
	}
	if l.Max != nil && v > *l.Max {
		return false
	}
	return true
}

// Limits bounds the model in global coordinates.
type Limits struct {
	X, Y, Z Limit
}

// Contains reports whether p lies within all three limits.
func (l Limits) Contains(p geometry.Vector3) bool {
	return l.X.Contains(p.X) && l.Y.Contains(p.Y) && l.Z.Contains(p.Z)
}

// Options are the selection and tolerance settings of a conversion run.
type Options struct {
	MinLength        float64 // m; shorter beams are excluded and no shorter segment is cut
	ProximityTol     float64 // m; distance below which beam lines are considered joined
	AngleTol         float64 // degrees; below it beam lines are parallel
	ExcludeSections  []string
	ExcludeSets      []string
	ExcludeLoadCases []string // equipment placed in these load cases is dropped
	Limits           Limits
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MinLength:    0,
		ProximityTol: 0.1,
		AngleTol:     1,
	}
}

// Environment holds the sea state parameters used to pick hydrodynamic coefficients.
type Environment struct {
	WaterDepth    float64
	WaterSurfaceZ float64
	MaxWaveHeight float64
}

// DefaultEnvironment returns the environment used when nothing is configured.
func DefaultEnvironment() Environment {
	return Environment{WaterDepth: 100, WaterSurfaceZ: 0, MaxWaveHeight: 15}
}

// AboveWaveZone reports whether a segment from zA to zB is never reached by
// waves, judged by its mean elevation.
func (e Environment) AboveWaveZone(zA, zB float64) bool {
	// mean elevation of the ends, not their sum
	return (zA+zB)/2 > e.WaterSurfaceZ+e.MaxWaveHeight
}

// HydroCoefsFor selects the air drag set above the wave zone, the Morison set otherwise.
func (e Environment) HydroCoefsFor(zA, zB float64, morison, airDrag string) string {
	if e.AboveWaveZone(zA, zB) {
		return airDrag
	}
	return morison
}
