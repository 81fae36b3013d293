package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Transform is a 4x4 homogeneous local-to-global placement.
type Transform struct {
	m *mat.Dense
}

// Identity returns the transform that leaves points unchanged.
func Identity() Transform {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		m.Set(i, i, 1)
	}
	return Transform{m: m}
}

// Translation returns a pure translation by origin.
func Translation(origin Vector3) Transform {
	t := Identity()
	t.m.Set(0, 3, origin.X)
	t.m.Set(1, 3, origin.Y)
	t.m.Set(2, 3, origin.Z)
	return t
}

// NewTransformFromAxes builds a placement from a local X axis, a local Z axis
// and an origin. The Y axis completes the right-handed frame; X is
// re-orthogonalized against Z.
func NewTransformFromAxes(xAxis, zAxis, origin Vector3) Transform {
	z := zAxis.Normalize()
	x := xAxis.Sub(z.Scale(xAxis.Dot(z))).Normalize()
	y := z.Cross(x)
	t := Translation(origin)
	for i, axis := range []Vector3{x, y, z} {
		t.m.Set(0, i, axis.X)
		t.m.Set(1, i, axis.Y)
		t.m.Set(2, i, axis.Z)
	}
	return t
}

// NewTransformFromRows builds a transform from 16 row-major values.
func NewTransformFromRows(rows []float64) (Transform, error) {
	if len(rows) != 16 {
		return Transform{}, &DimensionError{Got: len(rows), Want: 16}
	}
	return Transform{m: mat.NewDense(4, 4, append([]float64(nil), rows...))}, nil
}

// DimensionError reports a matrix literal of the wrong size.
type DimensionError struct {
	Got, Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("geometry: transform needs %d values, got %d", e.Want, e.Got)
}

func (t Transform) dense() *mat.Dense {
	if t.m == nil {
		return Identity().m
	}
	return t.m
}

// Apply maps a local point into the global frame.
func (t Transform) Apply(p Vector3) Vector3 {
	var out mat.VecDense
	out.MulVec(t.dense(), mat.NewVecDense(4, []float64{p.X, p.Y, p.Z, 1}))
	return Vector3{out.AtVec(0), out.AtVec(1), out.AtVec(2)}
}

// Origin returns the global position of the local origin.
func (t Transform) Origin() Vector3 {
	m := t.dense()
	return Vector3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}
}

// Axis returns local axis i (0 for X, 1 for Y, 2 for Z) in global
// coordinates.
func (t Transform) Axis(i int) Vector3 {
	m := t.dense()
	return Vector3{m.At(0, i), m.At(1, i), m.At(2, i)}
}

// Rows returns the matrix in row-major order.
func (t Transform) Rows() []float64 {
	m := t.dense()
	rows := make([]float64, 0, 16)
	for i := 0; i < 4; i++ {
		rows = append(rows, mat.Row(nil, i, m)...)
	}
	return rows
}

// Copy returns an independent transform with the same values.
func (t Transform) Copy() Transform {
	return Transform{m: mat.DenseCopyOf(t.dense())}
}

// IsIdentity reports whether t leaves points unchanged.
func (t Transform) IsIdentity() bool {
	return mat.Equal(t.dense(), Identity().m)
}
