package export

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/ivlev/svgmotion/internal/config"
	"github.com/ivlev/svgmotion/internal/effects"
	"github.com/ivlev/svgmotion/internal/svg"
	"github.com/ivlev/svgmotion/internal/system"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// easeInOutSpline is cubic-bezier(0.42, 0, 0.58, 1) in keySplines form.
const easeInOutSpline = "0.42 0 0.58 1"

// SMILExporter renders elements as a standalone SVG document animated
// with SMIL animate elements. The output opens in any browser without
// a player library.
type SMILExporter struct {
	Strict bool
}

func (e *SMILExporter) Name() string { return "smil" }
func (e *SMILExporter) Ext() string  { return ".anim.svg" }

func (e *SMILExporter) Export(doc *svg.Document, elements []effects.Element, cfg config.Animation, name string) (*Artifact, error) {
	animated := make(map[*svg.Node]*effects.Element, len(elements))
	for i := range elements {
		animated[elements[i].Unit.Node] = &elements[i]
	}

	buf := system.GetBuffer()
	defer system.PutBuffer(buf)
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(buf)
	enc.Indent("", "  ")

	w := &smilWriter{
		enc:      enc,
		cfg:      cfg,
		duration: cfg.Duration(),
		strict:   e.Strict,
	}

	root := xml.StartElement{
		Name: xml.Name{Local: "svg"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns"}, Value: svgNamespace},
			{Name: xml.Name{Local: "width"}, Value: strconv.Itoa(cfg.Width)},
			{Name: xml.Name{Local: "height"}, Value: strconv.Itoa(cfg.Height)},
			{Name: xml.Name{Local: "viewBox"}, Value: fmt.Sprintf("0 0 %s %s", num(doc.Width), num(doc.Height))},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}
	if err := w.writeBackground(doc); err != nil {
		return nil, err
	}
	for _, node := range doc.Nodes {
		if err := w.writeNode(node, animated); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	// the buffer goes back to the pool, the artifact keeps its own copy
	data := append([]byte(nil), buf.Bytes()...)
	return &Artifact{Data: data, Ext: e.Ext(), Skipped: w.skipped}, nil
}

type smilWriter struct {
	enc      *xml.Encoder
	cfg      config.Animation
	duration float64
	strict   bool
	skipped  int
}

func (w *smilWriter) writeBackground(doc *svg.Document) error {
	if w.cfg.BackgroundColor == "" {
		return nil
	}
	c, ok, err := svg.ParseColor(w.cfg.BackgroundColor)
	if err != nil {
		return &config.ConfigError{Field: "background_color", Reason: err.Error()}
	}
	if !ok {
		return nil
	}
	rect := xml.StartElement{
		Name: xml.Name{Local: "rect"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "x"}, Value: "0"},
			{Name: xml.Name{Local: "y"}, Value: "0"},
			{Name: xml.Name{Local: "width"}, Value: "100%"},
			{Name: xml.Name{Local: "height"}, Value: "100%"},
			{Name: xml.Name{Local: "fill"}, Value: svg.HexColor(c)},
		},
	}
	if err := w.enc.EncodeToken(rect); err != nil {
		return err
	}
	return w.enc.EncodeToken(rect.End())
}

// writeNode emits one node, its animation (when scheduled) and its
// children. Original attributes pass through verbatim when the parser
// preserved them; otherwise they are synthesized from the model.
func (w *smilWriter) writeNode(node *svg.Node, animated map[*svg.Node]*effects.Element) error {
	attrs, err := w.nodeAttrs(node)
	if err != nil {
		return err
	}
	start := xml.StartElement{Name: xml.Name{Local: node.Tag}, Attr: attrs}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}
	if node.Text != "" {
		if err := w.enc.EncodeToken(xml.CharData(node.Text)); err != nil {
			return err
		}
	}
	if el := animated[node]; el != nil {
		if err := w.writeTracks(node, el); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := w.writeNode(child, animated); err != nil {
			return err
		}
	}
	return w.enc.EncodeToken(start.End())
}

func (w *smilWriter) nodeAttrs(node *svg.Node) ([]xml.Attr, error) {
	if node.Style.FillRef != "" {
		if w.strict {
			return nil, &UnsupportedFeatureError{Feature: "gradient fill", Node: nodeLabel(node)}
		}
		w.skipped++
	}
	if len(node.Attrs) > 0 {
		attrs := make([]xml.Attr, 0, len(node.Attrs))
		for _, a := range node.Attrs {
			// defs were dropped, so paint server references dangle
			if node.Style.FillRef != "" {
				if a.Name.Local == "fill" {
					continue
				}
				if a.Name.Local == "style" {
					a.Value = stripFillDecl(a.Value)
					if a.Value == "" {
						continue
					}
				}
			}
			attrs = append(attrs, a)
		}
		return attrs, nil
	}
	return synthesizeAttrs(node), nil
}

// stripFillDecl removes fill declarations from a style attribute value.
func stripFillDecl(style string) string {
	var kept []string
	for _, decl := range strings.Split(style, ";") {
		if strings.TrimSpace(decl) == "" {
			continue
		}
		kv := strings.SplitN(decl, ":", 2)
		if len(kv) == 2 && strings.TrimSpace(strings.ToLower(kv[0])) == "fill" {
			continue
		}
		kept = append(kept, decl)
	}
	return strings.Join(kept, ";")
}

// synthesizeAttrs rebuilds element attributes from the parsed model,
// used when the backend did not keep the originals.
func synthesizeAttrs(node *svg.Node) []xml.Attr {
	var attrs []xml.Attr
	add := func(name, value string) {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	}
	if node.ID != "" {
		add("id", node.ID)
	}
	switch {
	case node.Rect != nil:
		add("x", num(node.Rect.X))
		add("y", num(node.Rect.Y))
		add("width", num(node.Rect.W))
		add("height", num(node.Rect.H))
		if node.Rect.RX > 0 {
			add("rx", num(node.Rect.RX))
		}
	case node.Ellipse != nil:
		add("cx", num(node.Ellipse.CX))
		add("cy", num(node.Ellipse.CY))
		add("rx", num(node.Ellipse.RX))
		add("ry", num(node.Ellipse.RY))
	case len(node.Path) > 0:
		add("d", node.Path.ToSVGPath())
	}
	if !node.Transform.IsIdentity() {
		m := node.Transform
		add("transform", fmt.Sprintf("matrix(%s %s %s %s %s %s)",
			num(m.A), num(m.B), num(m.C), num(m.D), num(m.E), num(m.F)))
	}
	if node.Kind != svg.KindGroup {
		if node.Style.HasFill && node.Style.FillRef == "" {
			add("fill", svg.HexColor(node.Style.Fill))
		} else if !node.Style.HasFill && node.Style.FillRef == "" {
			add("fill", "none")
		}
		if node.Style.HasStroke {
			add("stroke", svg.HexColor(node.Style.Stroke))
			add("stroke-width", num(node.Style.StrokeWidth))
		}
	}
	return attrs
}

func (w *smilWriter) writeTracks(node *svg.Node, el *effects.Element) error {
	for _, tr := range el.Tracks {
		switch tr.Property {
		case "opacity":
			if err := w.writeAnimate("opacity", tr); err != nil {
				return err
			}
		case "scale":
			if err := w.writeScale(node, tr); err != nil {
				return err
			}
		default:
			if w.strict {
				return &UnsupportedFeatureError{Feature: "property " + tr.Property, Node: nodeLabel(node)}
			}
			w.skipped++
		}
	}
	return nil
}

// writeAnimate emits a values/keyTimes animate element for a scalar
// property. A delayed start becomes a hold segment so that a single
// element covers the whole timeline.
func (w *smilWriter) writeAnimate(attrName string, tr effects.Track) error {
	values, keyTimes, splines, eased := w.timing(tr, func(v float64) string { return num(v) })
	attrs := []xml.Attr{
		{Name: xml.Name{Local: "attributeName"}, Value: attrName},
		{Name: xml.Name{Local: "dur"}, Value: num(w.duration) + "s"},
		{Name: xml.Name{Local: "begin"}, Value: "0s"},
		{Name: xml.Name{Local: "fill"}, Value: "freeze"},
		{Name: xml.Name{Local: "values"}, Value: values},
		{Name: xml.Name{Local: "keyTimes"}, Value: keyTimes},
	}
	if eased {
		attrs = append(attrs,
			xml.Attr{Name: xml.Name{Local: "calcMode"}, Value: "spline"},
			xml.Attr{Name: xml.Name{Local: "keySplines"}, Value: splines},
		)
	}
	return w.emit("animate", attrs)
}

// writeScale emits the scale effect as two additive animateTransforms:
// the translate keeps the element anchored on its own center while the
// scale runs. tx = cx*(1-s) is linear in s, so both tracks stay in
// lockstep under linear interpolation.
func (w *smilWriter) writeScale(node *svg.Node, tr effects.Track) error {
	cx, cy := nodeCenter(node)
	translate, keyTimes, splines, eased := w.timing(tr, func(v float64) string {
		return num(cx*(1-v)) + " " + num(cy*(1-v))
	})
	scale, _, _, _ := w.timing(tr, func(v float64) string { return num(v) })

	base := func(transformType, values string) []xml.Attr {
		attrs := []xml.Attr{
			{Name: xml.Name{Local: "attributeName"}, Value: "transform"},
			{Name: xml.Name{Local: "type"}, Value: transformType},
			{Name: xml.Name{Local: "additive"}, Value: "sum"},
			{Name: xml.Name{Local: "dur"}, Value: num(w.duration) + "s"},
			{Name: xml.Name{Local: "begin"}, Value: "0s"},
			{Name: xml.Name{Local: "fill"}, Value: "freeze"},
			{Name: xml.Name{Local: "values"}, Value: values},
			{Name: xml.Name{Local: "keyTimes"}, Value: keyTimes},
		}
		if eased {
			attrs = append(attrs,
				xml.Attr{Name: xml.Name{Local: "calcMode"}, Value: "spline"},
				xml.Attr{Name: xml.Name{Local: "keySplines"}, Value: splines},
			)
		}
		return attrs
	}
	if err := w.emit("animateTransform", base("translate", translate)); err != nil {
		return err
	}
	return w.emit("animateTransform", base("scale", scale))
}

// timing maps a frame-based track to SMIL values/keyTimes, clamping
// the first and last keyTimes to 0 and 1 as the spec requires.
func (w *smilWriter) timing(tr effects.Track, format func(v float64) string) (values, keyTimes, splines string, eased bool) {
	last := float64(w.cfg.NFrames - 1)
	if last <= 0 {
		last = 1
	}
	kfs := tr.Keyframes
	if len(kfs) == 0 {
		return "", "", "", false
	}
	var vals, times, spl []string
	if kfs[0].Frame > 0 {
		// hold at the initial value until the element's start frame
		vals = append(vals, format(kfs[0].Value))
		times = append(times, "0")
		spl = append(spl, "0 0 1 1")
	}
	for i, kf := range kfs {
		vals = append(vals, format(kf.Value))
		t := kf.Frame / last
		if i == 0 && len(times) == 0 {
			t = 0
		}
		if i == len(kfs)-1 {
			t = 1
		}
		times = append(times, num(t))
		if i < len(kfs)-1 {
			if kf.Eased {
				eased = true
				spl = append(spl, easeInOutSpline)
			} else {
				spl = append(spl, "0 0 1 1")
			}
		}
	}
	if len(vals) == 1 {
		// static track: repeat the value so values/keyTimes stay legal
		vals = append(vals, vals[0])
		times = []string{"0", "1"}
		spl = []string{"0 0 1 1"}
	}
	return strings.Join(vals, ";"), strings.Join(times, ";"), strings.Join(spl, ";"), eased
}

func (w *smilWriter) emit(tag string, attrs []xml.Attr) error {
	start := xml.StartElement{Name: xml.Name{Local: tag}, Attr: attrs}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}
	return w.enc.EncodeToken(start.End())
}

// num formats a float compactly for attribute values.
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
