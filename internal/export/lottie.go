package export

import (
	"encoding/json"
	"fmt"
	"image/color"

	"golang.org/x/image/math/fixed"

	"github.com/ivlev/svgmotion/internal/config"
	"github.com/ivlev/svgmotion/internal/effects"
	"github.com/ivlev/svgmotion/internal/svg"
)

// LottieExporter renders elements as a Lottie (bodymovin) animation.
// Each element becomes a shape layer whose layer transform carries the
// animation; geometry stays static inside the layer.
type LottieExporter struct {
	// Strict aborts on the first feature Lottie output cannot express
	// instead of skipping it.
	Strict bool
}

func (e *LottieExporter) Name() string { return "lottie" }
func (e *LottieExporter) Ext() string  { return ".json" }

func (e *LottieExporter) Export(doc *svg.Document, elements []effects.Element, cfg config.Animation, name string) (*Artifact, error) {
	an := &lottieAnimation{
		Version:   lottieVersion,
		Framerate: cfg.Framerate,
		InPoint:   0,
		OutPoint:  float64(cfg.NFrames - 1),
		Width:     cfg.Width,
		Height:    cfg.Height,
		Name:      name,
		Assets:    []struct{}{},
		Layers:    []*lottieLayer{},
	}
	if cfg.NFrames < 2 {
		an.OutPoint = 1
	}

	skipped := 0
	if bg, err := e.backgroundLayer(cfg, an.OutPoint); err != nil {
		return nil, err
	} else if bg != nil {
		an.Layers = append(an.Layers, bg)
	}
	for _, el := range elements {
		layer, n, err := e.buildLayer(el, an.OutPoint, len(an.Layers)+1)
		if err != nil {
			return nil, err
		}
		skipped += n
		if layer != nil {
			an.Layers = append(an.Layers, layer)
		}
	}

	data, err := json.Marshal(an)
	if err != nil {
		return nil, fmt.Errorf("encoding lottie: %w", err)
	}
	return &Artifact{Data: data, Ext: e.Ext(), Skipped: skipped}, nil
}

// backgroundLayer builds the static backdrop rectangle, or nil when no
// background color is configured.
func (e *LottieExporter) backgroundLayer(cfg config.Animation, op float64) (*lottieLayer, error) {
	if cfg.BackgroundColor == "" {
		return nil, nil
	}
	c, ok, err := svg.ParseColor(cfg.BackgroundColor)
	if err != nil {
		return nil, &config.ConfigError{Field: "background_color", Reason: err.Error()}
	}
	if !ok {
		return nil, nil
	}
	w, h := float64(cfg.Width), float64(cfg.Height)
	rect := &lottieShape{
		Type:      "rc",
		Position:  staticProp([]float64{w / 2, h / 2}),
		Size:      staticProp([]float64{w, h}),
		Roundness: staticProp(0.0),
	}
	fill := &lottieShape{
		Type:    "fl",
		Color:   staticProp(colorVec(c)),
		Opacity: staticProp(100.0),
	}
	group := &lottieShape{
		Type:  "gr",
		Name:  "Background",
		Items: []*lottieShape{rect, fill, identityShapeTransform()},
	}
	return &lottieLayer{
		Type:      shapeLayerType,
		Index:     0,
		Name:      "Background",
		OutPoint:  op,
		Transform: staticLayerTransform(w/2, h/2),
		Shapes:    []*lottieShape{group},
	}, nil
}

func (e *LottieExporter) buildLayer(el effects.Element, op float64, index int) (*lottieLayer, int, error) {
	shapes, skipped, err := e.buildShapes(el.Unit.Node)
	if err != nil {
		return nil, skipped, err
	}
	if len(shapes) == 0 {
		// nothing representable in this unit
		return nil, skipped, nil
	}

	cx, cy := nodeCenter(el.Unit.Node)
	ks := staticLayerTransform(cx, cy)
	for _, tr := range el.Tracks {
		switch tr.Property {
		case "opacity":
			ks.Opacity = keyframedProp(scalarKeyframes(tr, 100))
		case "scale":
			ks.Scale = keyframedProp(scaleKeyframes(tr))
		}
	}

	return &lottieLayer{
		Type:      shapeLayerType,
		Index:     index,
		Name:      el.Unit.Name,
		OutPoint:  op,
		Transform: ks,
		Shapes:    shapes,
	}, skipped, nil
}

// buildShapes converts a node tree into Lottie shape items. Leaf
// transforms are already composed root-to-leaf, so baking them into
// the geometry flattens nested groups without losing placement.
func (e *LottieExporter) buildShapes(node *svg.Node) ([]*lottieShape, int, error) {
	if node.Kind == svg.KindGroup {
		var items []*lottieShape
		skipped := 0
		for _, child := range node.Children {
			cs, n, err := e.buildShapes(child)
			if err != nil {
				return nil, skipped + n, err
			}
			skipped += n
			items = append(items, cs...)
		}
		return items, skipped, nil
	}
	if !node.Visible() || !node.HasGeometry() {
		return nil, 0, nil
	}

	geom := e.geometryShapes(node)
	if len(geom) == 0 {
		return nil, 0, nil
	}

	skipped := 0
	items := geom
	if node.Style.HasStroke && node.Style.StrokeWidth > 0 {
		items = append(items, &lottieShape{
			Type:    "st",
			Color:   staticProp(colorVec(node.Style.Stroke)),
			Opacity: staticProp(node.Style.StrokeOpacity * 100),
			Width:   staticProp(node.Style.StrokeWidth),
		})
	}
	switch {
	case node.Style.FillRef != "":
		if e.Strict {
			return nil, 0, &UnsupportedFeatureError{Feature: "gradient fill", Node: nodeLabel(node)}
		}
		skipped++
	case node.Style.HasFill:
		items = append(items, &lottieShape{
			Type:    "fl",
			Color:   staticProp(colorVec(node.Style.Fill)),
			Opacity: staticProp(node.Style.FillOpacity * 100),
		})
	}
	items = append(items, identityShapeTransform())

	group := &lottieShape{Type: "gr", Name: nodeLabel(node), Items: items}
	return []*lottieShape{group}, skipped, nil
}

// geometryShapes emits the node's geometry. Axis-aligned rects and
// ellipses map to the native rc/el primitives; anything under a
// transform is baked into a free path instead.
func (e *LottieExporter) geometryShapes(node *svg.Node) []*lottieShape {
	if node.Transform.IsIdentity() {
		switch {
		case node.Rect != nil:
			r := node.Rect
			return []*lottieShape{{
				Type:      "rc",
				Position:  staticProp([]float64{r.X + r.W/2, r.Y + r.H/2}),
				Size:      staticProp([]float64{r.W, r.H}),
				Roundness: staticProp(r.RX),
			}}
		case node.Ellipse != nil:
			el := node.Ellipse
			return []*lottieShape{{
				Type:     "el",
				Position: staticProp([]float64{el.CX, el.CY}),
				Size:     staticProp([]float64{el.RX * 2, el.RY * 2}),
			}}
		}
	}
	path := node.GeometryPath().Transform(node.Transform)
	return pathShapes(path)
}

// pathShapes splits a path at its MoveTo boundaries: Lottie's sh item
// holds exactly one contour.
func pathShapes(p svg.Path) []*lottieShape {
	var shapes []*lottieShape
	var bez *lottieBezier
	flush := func() {
		if bez != nil && len(bez.Vertices) > 0 {
			shapes = append(shapes, &lottieShape{
				Type:     "sh",
				Vertices: staticProp(bez),
			})
		}
		bez = nil
	}
	addVertex := func(pt fixed.Point26_6) {
		bez.Vertices = append(bez.Vertices, []float64{fx(pt.X), fx(pt.Y)})
		bez.InTangents = append(bez.InTangents, []float64{0, 0})
		bez.OutTangents = append(bez.OutTangents, []float64{0, 0})
	}
	last := func() fixed.Point26_6 {
		v := bez.Vertices[len(bez.Vertices)-1]
		return fixed.Point26_6{X: fixed.Int26_6(v[0] * 64), Y: fixed.Int26_6(v[1] * 64)}
	}
	for _, op := range p {
		switch op := op.(type) {
		case svg.MoveTo:
			flush()
			bez = &lottieBezier{}
			addVertex(fixed.Point26_6(op))
		case svg.LineTo:
			if bez == nil {
				continue
			}
			addVertex(fixed.Point26_6(op))
		case svg.QuadTo:
			if bez == nil {
				continue
			}
			// элевация квадратичной кривой до кубической
			p0 := last()
			i := len(bez.Vertices) - 1
			bez.OutTangents[i] = []float64{
				2.0 / 3.0 * (fx(op[0].X) - fx(p0.X)),
				2.0 / 3.0 * (fx(op[0].Y) - fx(p0.Y)),
			}
			addVertex(op[1])
			j := len(bez.Vertices) - 1
			bez.InTangents[j] = []float64{
				2.0 / 3.0 * (fx(op[0].X) - fx(op[1].X)),
				2.0 / 3.0 * (fx(op[0].Y) - fx(op[1].Y)),
			}
		case svg.CubicTo:
			if bez == nil {
				continue
			}
			p0 := last()
			i := len(bez.Vertices) - 1
			bez.OutTangents[i] = []float64{fx(op[0].X) - fx(p0.X), fx(op[0].Y) - fx(p0.Y)}
			addVertex(op[2])
			j := len(bez.Vertices) - 1
			bez.InTangents[j] = []float64{fx(op[1].X) - fx(op[2].X), fx(op[1].Y) - fx(op[2].Y)}
		case svg.Close:
			if bez != nil {
				bez.Closed = true
			}
		}
	}
	flush()
	return shapes
}

// scalarKeyframes converts a track into one-dimensional Lottie
// keyframes, scaling values by factor (opacity is 0-100 on the wire).
func scalarKeyframes(tr effects.Track, factor float64) []lottieKeyframe {
	kfs := make([]lottieKeyframe, 0, len(tr.Keyframes))
	for i, kf := range tr.Keyframes {
		lk := lottieKeyframe{Frame: kf.Frame, Start: []float64{kf.Value * factor}}
		if i < len(tr.Keyframes)-1 {
			lk.Out, lk.In = handles(kf.Eased, 1)
		}
		kfs = append(kfs, lk)
	}
	return kfs
}

// scaleKeyframes converts a 0..1 track into the three-dimensional
// percentage triples Lottie expects for scale.
func scaleKeyframes(tr effects.Track) []lottieKeyframe {
	kfs := make([]lottieKeyframe, 0, len(tr.Keyframes))
	for i, kf := range tr.Keyframes {
		s := kf.Value * 100
		lk := lottieKeyframe{Frame: kf.Frame, Start: []float64{s, s, 100}}
		if i < len(tr.Keyframes)-1 {
			lk.Out, lk.In = handles(kf.Eased, 3)
		}
		kfs = append(kfs, lk)
	}
	return kfs
}

func handles(eased bool, dims int) (out, in *lottieHandle) {
	ox, oy, ix, iy := 0.167, 0.167, 0.833, 0.833
	if eased {
		ox, oy, ix, iy = 0.42, 0, 0.58, 1
	}
	return &lottieHandle{X: repeat(ox, dims), Y: repeat(oy, dims)},
		&lottieHandle{X: repeat(ix, dims), Y: repeat(iy, dims)}
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func staticLayerTransform(cx, cy float64) lottieTransform {
	return lottieTransform{
		Opacity:  staticProp(100.0),
		Rotation: staticProp(0.0),
		Position: staticProp([]float64{cx, cy}),
		Anchor:   staticProp([]float64{cx, cy}),
		Scale:    staticProp([]float64{100, 100, 100}),
	}
}

func identityShapeTransform() *lottieShape {
	// inside a tr item the "s" slot is scale and "r" is rotation
	return &lottieShape{
		Type:      "tr",
		Position:  staticProp([]float64{0, 0}),
		Anchor:    staticProp([]float64{0, 0}),
		Size:      staticProp([]float64{100, 100, 100}),
		Roundness: staticProp(0.0),
		Opacity:   staticProp(100.0),
	}
}

// nodeCenter is the midpoint of the unit's transformed bounding box:
// the scale effect grows elements around their own center.
func nodeCenter(node *svg.Node) (float64, float64) {
	minX, minY, maxX, maxY, any := boundsOf(node)
	if !any {
		return 0, 0
	}
	return (minX + maxX) / 2, (minY + maxY) / 2
}

func boundsOf(node *svg.Node) (minX, minY, maxX, maxY float64, found bool) {
	if node.HasGeometry() {
		p := node.GeometryPath().Transform(node.Transform)
		if len(p) > 0 {
			minX, minY, maxX, maxY = p.Bounds()
			found = true
		}
	}
	for _, c := range node.Children {
		cminX, cminY, cmaxX, cmaxY, ok := boundsOf(c)
		if !ok {
			continue
		}
		if !found {
			minX, minY, maxX, maxY, found = cminX, cminY, cmaxX, cmaxY, true
			continue
		}
		if cminX < minX {
			minX = cminX
		}
		if cminY < minY {
			minY = cminY
		}
		if cmaxX > maxX {
			maxX = cmaxX
		}
		if cmaxY > maxY {
			maxY = cmaxY
		}
	}
	return
}

func colorVec(c color.NRGBA) []float64 {
	return []float64{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func nodeLabel(node *svg.Node) string {
	if node.ID != "" {
		return node.ID
	}
	return node.Tag
}

func fx(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
