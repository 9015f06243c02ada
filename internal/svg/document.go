package svg

import (
	"encoding/xml"
	"image/color"
)

// Kind classifies a parsed node.
type Kind uint8

const (
	KindGroup Kind = iota // <g> container
	KindPath              // <path>, <line>, <polyline>, <polygon>
	KindShape             // <rect>, <circle>, <ellipse>
	KindOther             // recognized but not animatable (text, image, ...)
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindPath:
		return "path"
	case KindShape:
		return "shape"
	default:
		return "other"
	}
}

// RectGeom holds the geometry of a <rect>.
type RectGeom struct {
	X, Y, W, H, RX, RY float64
}

// EllipseGeom holds the geometry of a <circle> or <ellipse>.
type EllipseGeom struct {
	CX, CY, RX, RY float64
}

// Style is the resolved paint state of a node, with ancestor styles
// already cascaded in.
type Style struct {
	Fill          color.NRGBA
	HasFill       bool
	FillRef       string // unresolved paint server reference, e.g. url(#grad)
	Stroke        color.NRGBA
	HasStroke     bool
	StrokeWidth   float64
	Opacity       float64 // composed element/group opacity
	FillOpacity   float64
	StrokeOpacity float64
}

// DefaultStyle fills black with full opacity and no stroke,
// matching the SVG initial paint values.
var DefaultStyle = Style{
	Fill:          color.NRGBA{A: 0xff},
	HasFill:       true,
	StrokeWidth:   1,
	Opacity:       1,
	FillOpacity:   1,
	StrokeOpacity: 1,
}

// Node is one shape or group of the parsed document. Geometry is
// immutable after parse; Transform is the composed root-to-leaf matrix.
type Node struct {
	Kind      Kind
	Tag       string
	ID        string
	Style     Style
	Transform Matrix2D

	// geometry: exactly one of Rect, Ellipse or Path is meaningful
	// for leaf shapes; groups carry none.
	Rect    *RectGeom
	Ellipse *EllipseGeom
	Path    Path

	// Attrs keeps the element's original attributes when the backend
	// preserves them, enabling verbatim pass-through on SVG output.
	Attrs []xml.Attr

	// Text holds the element's character data (text elements), kept
	// for pass-through on SVG output.
	Text string

	Children []*Node
}

// HasGeometry reports whether the node itself carries drawable geometry.
func (n *Node) HasGeometry() bool {
	return n.Rect != nil || n.Ellipse != nil || len(n.Path) > 0
}

// Visible reports whether the node can produce visible output.
func (n *Node) Visible() bool {
	return n.Style.Opacity > 0
}

// WalkChildren visits every descendant of n, parents before children.
func (n *Node) WalkChildren(fn func(c *Node)) {
	for _, c := range n.Children {
		fn(c)
		c.WalkChildren(fn)
	}
}

// GeometryPath reduces the node's geometry to a path in local coordinates.
func (n *Node) GeometryPath() Path {
	switch {
	case n.Rect != nil:
		return RectPath(*n.Rect)
	case n.Ellipse != nil:
		return EllipsePath(*n.Ellipse)
	default:
		return n.Path
	}
}

// Document is a parsed SVG image: canvas size plus the ordered
// top-level nodes. Immutable after parse.
type Document struct {
	Width, Height float64
	Nodes         []*Node

	// Backend names the parser variant that produced the document.
	Backend string
}

// Walk visits every node in document (z) order, parents before children.
func (d *Document) Walk(fn func(n *Node)) {
	var visit func(n *Node)
	visit = func(n *Node) {
		fn(n)
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, n := range d.Nodes {
		visit(n)
	}
}
