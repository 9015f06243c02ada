package svg

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Operation is one basic SVG path command.
type Operation interface {
	transform(m Matrix2D) Operation
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (op MoveTo) transform(m Matrix2D) Operation {
	return MoveTo(m.trPoint(fixed.Point26_6(op)))
}

func (op LineTo) transform(m Matrix2D) Operation {
	return LineTo(m.trPoint(fixed.Point26_6(op)))
}

func (op QuadTo) transform(m Matrix2D) Operation {
	return QuadTo{m.trPoint(op[0]), m.trPoint(op[1])}
}

func (op CubicTo) transform(m Matrix2D) Operation {
	return CubicTo{m.trPoint(op[0]), m.trPoint(op[1]), m.trPoint(op[2])}
}

func (op Close) transform(Matrix2D) Operation { return op }

// Path describes a sequence of basic SVG operations.
// Higher-level shapes may be reduced to a path.
type Path []Operation

// ToSVGPath returns the path-data string representation of the path.
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", float64(op.X)/64, float64(op.Y)/64)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", float64(op.X)/64, float64(op.Y)/64)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", float64(op[0].X)/64, float64(op[0].Y)/64,
				float64(op[1].X)/64, float64(op[1].Y)/64)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", float64(op[0].X)/64, float64(op[0].Y)/64,
				float64(op[1].X)/64, float64(op[1].Y)/64, float64(op[2].X)/64, float64(op[2].Y)/64)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Transform returns a copy of the path with m applied to every coordinate.
func (p Path) Transform(m Matrix2D) Path {
	if m.IsIdentity() {
		return p
	}
	out := make(Path, len(p))
	for i, op := range p {
		out[i] = op.transform(m)
	}
	return out
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path.
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Bounds returns the bounding box of the path's control points.
// Curve extrema may lie slightly inside, which is accurate enough
// for layer anchoring.
func (p Path) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(pt fixed.Point26_6) {
		x, y := float64(pt.X)/64, float64(pt.Y)/64
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			grow(fixed.Point26_6(op))
		case LineTo:
			grow(fixed.Point26_6(op))
		case QuadTo:
			grow(op[0])
			grow(op[1])
		case CubicTo:
			grow(op[0])
			grow(op[1])
			grow(op[2])
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX, maxY
}

func toFixedP(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}
