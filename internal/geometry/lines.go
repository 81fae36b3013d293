package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Line is the straight segment from A to B. Parameters along it run from 0 at A to 1 at B.
type Line struct {
	A, B Vector3
}

// Vector returns B - A
func (l Line) Vector() Vector3 {
	return l.B.Sub(l.A)
}

// Length returns |B - A|
func (l Line) Length() float64 {
	return l.Vector().Length()
}

// At returns the point at parameter t
func (l Line) At(t float64) Vector3 {
	return Between(l.A, l.B, t)
}

// Approach describes the closest approach of two lines.
type Approach struct {
	Distance float64
	Eta1     float64 // parameter on the first line
	Eta2     float64 // parameter on the second line
}

// AngleBetween returns the acute angle between two vectors in radians, in [0, π/2].
// Opposite vectors give 0. A zero-length vector also gives 0.
func AngleBetween(v1, v2 Vector3) float64 {
	l := v1.Length() * v2.Length()
	if l == 0 {
		return 0
	}
	s := v1.Cross(v2).Length() / l
	if s > 1 {
		s = 1
	}
	return math.Asin(s)
}

// ProjectPointOnLine projects p onto the infinite line through a and b.
// eta is 0 at a and 1 at b; dist is the perpendicular distance from p to the line.
// ok is false when a and b coincide.
func ProjectPointOnLine(a, b, p Vector3) (eta, dist float64, ok bool) {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return 0, 0, false
	}
	ap := p.Sub(a)
	eta = ap.Dot(ab) / l2
	dist = ap.Cross(ab).Length() / math.Sqrt(l2)
	return eta, dist, true
}

// ClosestApproach finds where two lines pass closest to each other.
//
// Lines within angleTol degrees of each other are treated as parallel: only
// their endpoints are compared, and a pair closer than distTol is reported with
// distance 0 and the matching {0,1} parameters. Overlapping collinear lines that
// do not share an endpoint are not reported.
//
// Otherwise the normal equations of the two parametric lines are solved. The
// result is rejected if the system is singular or if a parameter falls outside
// [0,1] widened by distTol/|line| on each side.
func ClosestApproach(l1, l2 Line, angleTol, distTol float64) (Approach, bool) {
	b1, b2 := l1.Vector(), l2.Vector()
	len1, len2 := b1.Length(), b2.Length()
	if len1 == 0 || len2 == 0 {
		return Approach{}, false
	}

	angle := AngleBetween(b1, b2) * 180 / math.Pi
	if angle <= angleTol {
		return touchingEnds(l1, l2, distTol)
	}

	a := mat.NewDense(2, 2, []float64{
		b1.Dot(b1), -b1.Dot(b2),
		b2.Dot(b1), -b2.Dot(b2),
	})
	if mat.Det(a) == 0 {
		return Approach{}, false
	}
	d := l2.A.Sub(l1.A)
	rhs := mat.NewVecDense(2, []float64{d.Dot(b1), d.Dot(b2)})
	var ksi mat.VecDense
	if err := ksi.SolveVec(a, rhs); err != nil {
		return Approach{}, false
	}
	eta1, eta2 := ksi.AtVec(0), ksi.AtVec(1)
	if !withinBand(eta1, distTol/len1) || !withinBand(eta2, distTol/len2) {
		return Approach{}, false
	}

	n := b1.Cross(b2)
	dist := math.Abs(n.Dot(d)) / n.Length()
	return Approach{Distance: dist, Eta1: eta1, Eta2: eta2}, true
}

func withinBand(t, tol float64) bool {
	return t >= -tol && t <= 1+tol
}

// touchingEnds checks the four endpoint pairs of two parallel lines. The last
// pair in A-A, A-B, B-A, B-B order wins when several are within tolerance.
func touchingEnds(l1, l2 Line, distTol float64) (Approach, bool) {
	ends1 := [2]Vector3{l1.A, l1.B}
	ends2 := [2]Vector3{l2.A, l2.B}
	var (
		found bool
		res   Approach
	)
	for i, p := range ends1 {
		for j, q := range ends2 {
			if p.Distance(q) < distTol {
				res = Approach{Distance: 0, Eta1: float64(i), Eta2: float64(j)}
				found = true
			}
		}
	}
	return res, found
}
