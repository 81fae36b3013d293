package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-10

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name   string
		v1, v2 Vector3
		want   float64
	}{
		{"perpendicular", NewVector3(1, 0, 0), NewVector3(0, 3, 0), math.Pi / 2},
		{"parallel", NewVector3(2, 0, 0), NewVector3(5, 0, 0), 0},
		{"opposite", NewVector3(1, 0, 0), NewVector3(-1, 0, 0), 0},
		{"45 degrees", NewVector3(1, 0, 0), NewVector3(1, 1, 0), math.Pi / 4},
		{"135 degrees is acute", NewVector3(1, 0, 0), NewVector3(-1, 1, 0), math.Pi / 4},
		{"zero vector", NewVector3(0, 0, 0), NewVector3(1, 0, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleBetween(tt.v1, tt.v2)
			assert.InDelta(t, tt.want, got, tol)
			assert.False(t, math.IsNaN(got))
		})
	}
}

func TestAngleBetweenClampsRounding(t *testing.T) {
	v := NewVector3(0.1, 0.2, 0.3)
	w := v.Cross(NewVector3(1e-9, 1, 0))
	got := AngleBetween(v, w)
	assert.False(t, math.IsNaN(got))
	assert.LessOrEqual(t, got, math.Pi/2)
}

func TestProjectPointOnLine(t *testing.T) {
	a, b := NewVector3(0, 0, 0), NewVector3(10, 0, 0)

	eta, dist, ok := ProjectPointOnLine(a, b, NewVector3(5, 3, 0))
	require.True(t, ok)
	assert.InDelta(t, 0.5, eta, tol)
	assert.InDelta(t, 3.0, dist, tol)

	eta, dist, ok = ProjectPointOnLine(a, b, NewVector3(-10, 0, 4))
	require.True(t, ok)
	assert.InDelta(t, -1.0, eta, tol)
	assert.InDelta(t, 4.0, dist, tol)

	_, _, ok = ProjectPointOnLine(a, a, NewVector3(1, 1, 1))
	assert.False(t, ok)
}

func TestClosestApproachCrossing(t *testing.T) {
	l1 := Line{NewVector3(0, 0, 0), NewVector3(10, 0, 0)}
	l2 := Line{NewVector3(5, -5, 0), NewVector3(5, 5, 0)}

	got, ok := ClosestApproach(l1, l2, 1, 0.01)
	require.True(t, ok)
	assert.InDelta(t, 0, got.Distance, tol)
	assert.InDelta(t, 0.5, got.Eta1, tol)
	assert.InDelta(t, 0.5, got.Eta2, tol)
}

func TestClosestApproachSkew(t *testing.T) {
	l1 := Line{NewVector3(0, 0, 0), NewVector3(10, 0, 0)}
	l2 := Line{NewVector3(2, -5, 1), NewVector3(2, 5, 1)}

	got, ok := ClosestApproach(l1, l2, 1, 0.01)
	require.True(t, ok)
	assert.InDelta(t, 1.0, got.Distance, tol)
	assert.InDelta(t, 0.2, got.Eta1, tol)
	assert.InDelta(t, 0.5, got.Eta2, tol)
}

func TestClosestApproachOutsideSegments(t *testing.T) {
	l1 := Line{NewVector3(0, 0, 0), NewVector3(10, 0, 0)}

	far := Line{NewVector3(15, -5, 0), NewVector3(15, 5, 0)}
	_, ok := ClosestApproach(l1, far, 1, 0.1)
	assert.False(t, ok)

	// Just past the end, but inside the tolerance band of 0.1/10.
	near := Line{NewVector3(10.05, -5, 0), NewVector3(10.05, 5, 0)}
	got, ok := ClosestApproach(l1, near, 1, 0.1)
	require.True(t, ok)
	assert.InDelta(t, 1.005, got.Eta1, tol)
}

func TestClosestApproachParallel(t *testing.T) {
	l1 := Line{NewVector3(0, 0, 0), NewVector3(10, 0, 0)}

	t.Run("shared endpoint", func(t *testing.T) {
		l2 := Line{NewVector3(10, 0, 0), NewVector3(20, 0, 0)}
		got, ok := ClosestApproach(l1, l2, 1, 0.01)
		require.True(t, ok)
		assert.Equal(t, 0.0, got.Distance)
		assert.Equal(t, 1.0, got.Eta1)
		assert.Equal(t, 0.0, got.Eta2)
	})

	t.Run("reversed shared endpoint", func(t *testing.T) {
		l2 := Line{NewVector3(-5, 0, 0), NewVector3(0, 0, 0.005)}
		got, ok := ClosestApproach(l1, l2, 1, 0.01)
		require.True(t, ok)
		assert.Equal(t, 0.0, got.Eta1)
		assert.Equal(t, 1.0, got.Eta2)
	})

	t.Run("offset", func(t *testing.T) {
		l2 := Line{NewVector3(0, 1, 0), NewVector3(10, 1, 0)}
		_, ok := ClosestApproach(l1, l2, 1, 0.01)
		assert.False(t, ok)
	})

	t.Run("overlapping collinear", func(t *testing.T) {
		l2 := Line{NewVector3(5, 0, 0), NewVector3(15, 0, 0)}
		_, ok := ClosestApproach(l1, l2, 1, 0.01)
		assert.False(t, ok)
	})
}

func TestClosestApproachZeroLength(t *testing.T) {
	l1 := Line{NewVector3(0, 0, 0), NewVector3(10, 0, 0)}
	dot := Line{NewVector3(5, 0, 0), NewVector3(5, 0, 0)}
	_, ok := ClosestApproach(l1, dot, 1, 0.01)
	assert.False(t, ok)
	_, ok = ClosestApproach(dot, l1, 1, 0.01)
	assert.False(t, ok)
}

func TestDirection(t *testing.T) {
	d, l := Direction(NewVector3(1, 1, 1), NewVector3(1, 1, 4))
	assert.Equal(t, NewVector3(0, 0, 1), d)
	assert.InDelta(t, 3, l, tol)

	d, l = Direction(NewVector3(2, 2, 2), NewVector3(2, 2, 2))
	assert.True(t, d.IsZero())
	assert.Equal(t, 0.0, l)
}

func TestChebyshevDistance(t *testing.T) {
	assert.Equal(t, 3.0, ChebyshevDistance(NewVector3(0, 0, 0), NewVector3(1, -3, 2)))
}

func TestTransform(t *testing.T) {
	origin := NewVector3(100, 50, -20)

	tr := Translation(origin)
	assert.Equal(t, NewVector3(101, 50, -20), tr.Apply(NewVector3(1, 0, 0)))
	assert.Equal(t, origin, tr.Origin())

	rot := NewTransformFromAxes(NewVector3(0, 1, 0), NewVector3(0, 0, 1), origin)
	p := rot.Apply(NewVector3(2, 0, 1))
	assert.InDelta(t, 100, p.X, tol)
	assert.InDelta(t, 52, p.Y, tol)
	assert.InDelta(t, -19, p.Z, tol)
	assert.InDelta(t, 0, rot.Axis(0).Distance(NewVector3(0, 1, 0)), tol)
	assert.InDelta(t, 0, rot.Axis(1).Distance(NewVector3(-1, 0, 0)), tol)
	assert.InDelta(t, 0, rot.Axis(2).Distance(NewVector3(0, 0, 1)), tol)

	var zero Transform
	assert.True(t, zero.IsIdentity())
	assert.Equal(t, NewVector3(1, 2, 3), zero.Apply(NewVector3(1, 2, 3)))

	rows := rot.Rows()
	back, err := NewTransformFromRows(rows)
	require.NoError(t, err)
	assert.Equal(t, rows, back.Rows())

	_, err = NewTransformFromRows(rows[:3])
	assert.Error(t, err)
}
