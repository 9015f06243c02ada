package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/ivlev/svgmotion/internal/svg"
)

// TreeBackend parses SVG with a generic streaming XML walk. Unlike the
// vector backend it preserves group nesting and original attributes,
// which enables verbatim pass-through on SVG output.
type TreeBackend struct{}

func (b *TreeBackend) Name() string { return "tree" }

// frame is the per-element state pushed while walking the tree.
type frame struct {
	style     svg.Style
	transform svg.Matrix2D
	group     *svg.Node // non-nil when the element opened a group
	node      *svg.Node // the leaf node the element opened, if any
	tag       string
}

type treeCursor struct {
	doc       *svg.Document
	stack     []frame
	defsDepth int
	seenRoot  bool
}

func (b *TreeBackend) Parse(r io.Reader) (*svg.Document, error) {
	cursor := &treeCursor{
		doc:   &svg.Document{},
		stack: []frame{{style: svg.DefaultStyle, transform: svg.Identity}},
	}
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("malformed XML: %w", err)
		}
		switch se := t.(type) {
		case xml.StartElement:
			if err := cursor.startElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			cursor.endElement(se)
		case xml.CharData:
			cursor.charData(se)
		}
	}
	if !cursor.seenRoot {
		return nil, errors.New("missing svg root element")
	}
	return cursor.doc, nil
}

func (c *treeCursor) top() frame { return c.stack[len(c.stack)-1] }

func (c *treeCursor) parent() *svg.Node {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if c.stack[i].group != nil {
			return c.stack[i].group
		}
	}
	return nil
}

func (c *treeCursor) append(n *svg.Node) {
	if p := c.parent(); p != nil {
		p.Children = append(p.Children, n)
	} else {
		c.doc.Nodes = append(c.doc.Nodes, n)
	}
}

func (c *treeCursor) startElement(se xml.StartElement) error {
	tag := se.Name.Local
	next := frame{tag: tag}

	// cascade style and compose the transform from the parent frame
	style, tf, err := c.pushStyle(se.Attr)
	if err != nil {
		return err
	}
	next.style, next.transform = style, tf

	if tag == "defs" || c.defsDepth > 0 {
		// referenced content only; nothing is rendered directly
		c.defsDepth++
		c.stack = append(c.stack, next)
		return nil
	}

	switch tag {
	case "svg":
		c.seenRoot = true
		if err := c.readRootAttrs(se.Attr); err != nil {
			return err
		}
	case "g":
		node := &svg.Node{
			Kind:      svg.KindGroup,
			Tag:       tag,
			ID:        attrValue(se.Attr, "id"),
			Style:     style,
			Transform: tf,
			Attrs:     copyAttrs(se.Attr),
		}
		c.append(node)
		next.group = node
	case "title", "desc", "metadata", "style", "script":
		// non-rendering content, skipped entirely
	default:
		node, err := c.shapeNode(tag, se.Attr, style, tf)
		if err != nil {
			return err
		}
		if node != nil {
			c.append(node)
			next.node = node
		}
	}
	c.stack = append(c.stack, next)
	return nil
}

// charData attaches character data to the open text-bearing node so
// it survives into SVG output.
func (c *treeCursor) charData(cd xml.CharData) {
	if c.defsDepth > 0 {
		return
	}
	if n := c.top().node; n != nil && n.Kind == svg.KindOther {
		n.Text += string(cd)
	}
}

func (c *treeCursor) endElement(se xml.EndElement) {
	if len(c.stack) > 1 {
		c.stack = c.stack[:len(c.stack)-1]
	}
	if c.defsDepth > 0 {
		c.defsDepth--
	}
}

// shapeNode builds a leaf node for a shape element, or a KindOther
// node for recognized-but-unanimatable content.
func (c *treeCursor) shapeNode(tag string, attrs []xml.Attr, style svg.Style, tf svg.Matrix2D) (*svg.Node, error) {
	node := &svg.Node{
		Tag:       tag,
		ID:        attrValue(attrs, "id"),
		Style:     style,
		Transform: tf,
		Attrs:     copyAttrs(attrs),
	}
	var err error
	switch tag {
	case "path":
		node.Kind = svg.KindPath
		d := attrValue(attrs, "d")
		if d == "" {
			return nil, nil // nothing to draw, not an error
		}
		node.Path, err = svg.ParsePathData(d)
		if err != nil {
			return nil, err
		}
	case "rect":
		node.Kind = svg.KindShape
		r := svg.RectGeom{}
		if r.X, r.Y, err = floatAttrs(attrs, "x", "y"); err != nil {
			return nil, err
		}
		if r.W, r.H, err = floatAttrs(attrs, "width", "height"); err != nil {
			return nil, err
		}
		if r.RX, r.RY, err = floatAttrs(attrs, "rx", "ry"); err != nil {
			return nil, err
		}
		if r.W == 0 || r.H == 0 {
			return nil, nil
		}
		node.Rect = &r
	case "circle":
		node.Kind = svg.KindShape
		e := svg.EllipseGeom{}
		if e.CX, e.CY, err = floatAttrs(attrs, "cx", "cy"); err != nil {
			return nil, err
		}
		if e.RX, _, err = floatAttrs(attrs, "r", ""); err != nil {
			return nil, err
		}
		e.RY = e.RX
		if e.RX == 0 {
			return nil, nil
		}
		node.Ellipse = &e
	case "ellipse":
		node.Kind = svg.KindShape
		e := svg.EllipseGeom{}
		if e.CX, e.CY, err = floatAttrs(attrs, "cx", "cy"); err != nil {
			return nil, err
		}
		if e.RX, e.RY, err = floatAttrs(attrs, "rx", "ry"); err != nil {
			return nil, err
		}
		if e.RX == 0 || e.RY == 0 {
			return nil, nil
		}
		node.Ellipse = &e
	case "line":
		node.Kind = svg.KindPath
		x1, y1, err := floatAttrs(attrs, "x1", "y1")
		if err != nil {
			return nil, err
		}
		x2, y2, err := floatAttrs(attrs, "x2", "y2")
		if err != nil {
			return nil, err
		}
		var p svg.Path
		p.Start(fixedP(x1, y1))
		p.Line(fixedP(x2, y2))
		node.Path = p
	case "polyline", "polygon":
		node.Kind = svg.KindPath
		points, err := parsePoints(attrValue(attrs, "points"))
		if err != nil {
			return nil, err
		}
		if len(points) < 4 {
			return nil, nil
		}
		var p svg.Path
		p.Start(fixedP(points[0], points[1]))
		for i := 2; i+1 < len(points); i += 2 {
			p.Line(fixedP(points[i], points[i+1]))
		}
		p.Stop(tag == "polygon")
		node.Path = p
	default:
		node.Kind = svg.KindOther
	}
	return node, nil
}

func (c *treeCursor) readRootAttrs(attrs []xml.Attr) error {
	var width, height float64
	var viewBox []float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "width":
			width, err = parseDim(attr.Value)
		case "height":
			height, err = parseDim(attr.Value)
		case "viewBox":
			viewBox, err = parsePoints(attr.Value)
			if err == nil && len(viewBox) != 4 {
				err = fmt.Errorf("viewBox needs 4 values, got %d", len(viewBox))
			}
		}
		if err != nil {
			return err
		}
	}
	c.doc.Width, c.doc.Height = width, height
	if c.doc.Width == 0 && len(viewBox) == 4 {
		c.doc.Width = viewBox[2]
	}
	if c.doc.Height == 0 && len(viewBox) == 4 {
		c.doc.Height = viewBox[3]
	}
	return nil
}

// pushStyle cascades the current style with the element's presentation
// attributes (including the style attribute) and composes the transform.
func (c *treeCursor) pushStyle(attrs []xml.Attr) (svg.Style, svg.Matrix2D, error) {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	style := c.top().style
	tf := c.top().transform
	for _, pair := range pairs {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.TrimSpace(strings.ToLower(kv[0]))
		v := strings.TrimSpace(kv[1])
		var err error
		switch k {
		case "fill":
			if strings.HasPrefix(v, "url(") {
				style.HasFill = false
				style.FillRef = v
				continue
			}
			style.Fill, style.HasFill, err = svg.ParseColor(v)
		case "stroke":
			if strings.HasPrefix(v, "url(") {
				continue
			}
			style.Stroke, style.HasStroke, err = svg.ParseColor(v)
		case "stroke-width":
			style.StrokeWidth, err = parseDim(v)
		case "opacity":
			var op float64
			op, err = strconv.ParseFloat(v, 64)
			if err == nil {
				style.Opacity *= op
			}
		case "fill-opacity":
			style.FillOpacity, err = strconv.ParseFloat(v, 64)
		case "stroke-opacity":
			style.StrokeOpacity, err = strconv.ParseFloat(v, 64)
		case "display":
			if v == "none" {
				style.Opacity = 0
			}
		case "transform":
			tf, err = parseTransform(tf, v)
		}
		if err != nil {
			return style, tf, err
		}
	}
	return style, tf, nil
}
