package svg

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D is an affine transform in the SVG convention:
//
//	[ A C E ]
//	[ B D F ]
//
// Points transform as x' = A*x + C*y + E, y' = B*x + D*y + F.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns m x n, so that applying the result is equivalent to
// applying n first and m second.
func (m Matrix2D) Mult(n Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate appends a translation to the transform.
func (m Matrix2D) Translate(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale appends a scale to the transform.
func (m Matrix2D) Scale(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate appends a rotation (radians) to the transform.
func (m Matrix2D) Rotate(a float64) Matrix2D {
	sin, cos := math.Sin(a), math.Cos(a)
	return m.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX appends a horizontal skew (radians) to the transform.
func (m Matrix2D) SkewX(a float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, math.Tan(a), 1, 0, 0})
}

// SkewY appends a vertical skew (radians) to the transform.
func (m Matrix2D) SkewY(a float64) Matrix2D {
	return m.Mult(Matrix2D{1, math.Tan(a), 0, 1, 0, 0})
}

// Apply transforms the point (x, y).
func (m Matrix2D) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// IsIdentity reports whether m is (close to) the identity transform.
func (m Matrix2D) IsIdentity() bool {
	const eps = 1e-9
	return math.Abs(m.A-1) < eps && math.Abs(m.B) < eps &&
		math.Abs(m.C) < eps && math.Abs(m.D-1) < eps &&
		math.Abs(m.E) < eps && math.Abs(m.F) < eps
}

// trPoint transforms a fixed-point coordinate.
func (m Matrix2D) trPoint(p fixed.Point26_6) fixed.Point26_6 {
	x, y := m.Apply(float64(p.X)/64, float64(p.Y)/64)
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}
