package parser

import (
	"io"

	"github.com/benoitkugler/oksvg/svgicon"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/svgmotion/internal/svg"
)

// VectorBackend parses SVG through the oksvg vector-graphics library.
// oksvg resolves defs/use references and cascades styles itself, so
// the resulting document is a flat sequence of styled path nodes.
// Element transforms stay baked into oksvg's draw state and are not
// recoverable, which is why documents relying on them go through the
// tree backend instead (strict mode rejects what oksvg cannot handle).
type VectorBackend struct{}

func (b *VectorBackend) Name() string { return "vector" }

func (b *VectorBackend) Parse(r io.Reader) (*svg.Document, error) {
	icon, err := svgicon.ReadIconStream(r, svgicon.StrictErrorMode)
	if err != nil {
		return nil, err
	}
	doc := &svg.Document{
		Width:  icon.ViewBox.W,
		Height: icon.ViewBox.H,
	}
	for _, sp := range icon.SVGPaths {
		node := &svg.Node{
			Kind:      svg.KindPath,
			Tag:       "path",
			Style:     styleFromIcon(sp.Style),
			Transform: svg.Identity,
			Path:      pathFromIcon(sp.Path),
		}
		if len(node.Path) == 0 {
			continue
		}
		doc.Nodes = append(doc.Nodes, node)
	}
	return doc, nil
}

func pathFromIcon(p svgicon.Path) svg.Path {
	out := make(svg.Path, 0, len(p))
	for _, op := range p {
		switch op := op.(type) {
		case svgicon.OpMoveTo:
			out.Start(fixed.Point26_6(op))
		case svgicon.OpLineTo:
			out.Line(fixed.Point26_6(op))
		case svgicon.OpQuadTo:
			out.QuadBezier(op[0], op[1])
		case svgicon.OpCubicTo:
			out.CubeBezier(op[0], op[1], op[2])
		case svgicon.OpClose:
			out.Stop(true)
		}
	}
	return out
}

func styleFromIcon(ps svgicon.PathStyle) svg.Style {
	style := svg.Style{
		Opacity:       1, // oksvg folds group opacity into the paint opacities
		FillOpacity:   ps.FillOpacity,
		StrokeOpacity: ps.LineOpacity,
		StrokeWidth:   ps.LineWidth,
	}
	switch fc := ps.FillerColor.(type) {
	case svgicon.PlainColor:
		style.Fill = fc.NRGBA
		style.HasFill = true
	case svgicon.Gradient:
		style.FillRef = "url(#gradient)"
	}
	switch lc := ps.LinerColor.(type) {
	case svgicon.PlainColor:
		style.Stroke = lc.NRGBA
		style.HasStroke = true
	case svgicon.Gradient:
		// stroke gradients are dropped; fill carries the shape
	}
	return style
}
