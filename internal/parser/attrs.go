package parser

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"

	"github.com/ivlev/svgmotion/internal/svg"
)

func attrValue(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func copyAttrs(attrs []xml.Attr) []xml.Attr {
	out := make([]xml.Attr, len(attrs))
	copy(out, attrs)
	return out
}

// floatAttrs reads up to two numeric attributes, treating absence as zero.
func floatAttrs(attrs []xml.Attr, name1, name2 string) (v1, v2 float64, err error) {
	if s := attrValue(attrs, name1); s != "" {
		if v1, err = parseDim(s); err != nil {
			return 0, 0, err
		}
	}
	if name2 != "" {
		if s := attrValue(attrs, name2); s != "" {
			if v2, err = parseDim(s); err != nil {
				return 0, 0, err
			}
		}
	}
	return v1, v2, nil
}

// parseDim reads a length value, ignoring a trailing unit suffix
// (px, pt, mm, ...). Percentages are not resolvable here and error.
func parseDim(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		return 0, fmt.Errorf("percentage length %q not supported", s)
	}
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		end--
	}
	if end == 0 {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	return f, nil
}

// parsePoints splits a comma/space separated number list.
func parsePoints(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	points := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q in point list", f)
		}
		points = append(points, v)
	}
	return points, nil
}

// parseTransform composes the transform attribute value onto base.
// Each segment has the form name(arg, ...).
func parseTransform(base svg.Matrix2D, v string) (svg.Matrix2D, error) {
	m := base
	for _, seg := range strings.Split(v, ")") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		parts := strings.SplitN(seg, "(", 2)
		if len(parts) != 2 {
			return m, fmt.Errorf("malformed transform %q", v)
		}
		name := strings.ToLower(strings.TrimSpace(parts[0]))
		args, err := parsePoints(parts[1])
		if err != nil {
			return m, err
		}
		m, err = applyTransform(m, name, args)
		if err != nil {
			return m, err
		}
	}
	return m, nil
}

func applyTransform(m svg.Matrix2D, name string, args []float64) (svg.Matrix2D, error) {
	const degToRad = math.Pi / 180
	switch name {
	case "translate":
		switch len(args) {
		case 1:
			return m.Translate(args[0], 0), nil
		case 2:
			return m.Translate(args[0], args[1]), nil
		}
	case "scale":
		switch len(args) {
		case 1:
			return m.Scale(args[0], args[0]), nil
		case 2:
			return m.Scale(args[0], args[1]), nil
		}
	case "rotate":
		switch len(args) {
		case 1:
			return m.Rotate(args[0] * degToRad), nil
		case 3:
			return m.Translate(args[1], args[2]).
				Rotate(args[0] * degToRad).
				Translate(-args[1], -args[2]), nil
		}
	case "skewx":
		if len(args) == 1 {
			return m.SkewX(args[0] * degToRad), nil
		}
	case "skewy":
		if len(args) == 1 {
			return m.SkewY(args[0] * degToRad), nil
		}
	case "matrix":
		if len(args) == 6 {
			return m.Mult(svg.Matrix2D{
				A: args[0], B: args[1], C: args[2],
				D: args[3], E: args[4], F: args[5],
			}), nil
		}
	default:
		return m, fmt.Errorf("unknown transform %q", name)
	}
	return m, fmt.Errorf("wrong argument count for transform %q", name)
}

func fixedP(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}
