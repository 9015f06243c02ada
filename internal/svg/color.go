package svg

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor resolves an SVG color value: #rgb, #rrggbb, #rrggbbaa,
// rgb()/rgba() functional notation, or a named color. "none" and the
// empty string yield ok == false (nothing painted).
func ParseColor(s string) (c color.NRGBA, ok bool, err error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "transparent":
		return color.NRGBA{}, false, nil
	case "currentcolor":
		// no cascade context here; current color resolves to black
		return color.NRGBA{A: 0xff}, true, nil
	}

	if strings.HasPrefix(s, "#") {
		c, err = parseHexColor(s[1:])
		return c, err == nil, err
	}
	// CSS color functions are case-insensitive
	if lower := strings.ToLower(s); strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba(") {
		c, err = parseRGBColor(s)
		return c, err == nil, err
	}
	if named, found := colornames.Map[strings.ToLower(s)]; found {
		return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, true, nil
	}
	return color.NRGBA{}, false, fmt.Errorf("unknown color %q", s)
}

func parseHexColor(hex string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	var err error
	byteAt := func(i int) uint8 {
		v, e := strconv.ParseUint(hex[i:i+2], 16, 8)
		if e != nil {
			err = fmt.Errorf("invalid hex color #%s", hex)
		}
		return uint8(v)
	}
	switch len(hex) {
	case 3:
		expanded := string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		return parseHexColor(expanded)
	case 6:
		c.R, c.G, c.B = byteAt(0), byteAt(2), byteAt(4)
	case 8:
		c.R, c.G, c.B, c.A = byteAt(0), byteAt(2), byteAt(4), byteAt(6)
	default:
		return c, fmt.Errorf("invalid hex color #%s", hex)
	}
	return c, err
}

func parseRGBColor(s string) (color.NRGBA, error) {
	open := strings.Index(s, "(")
	end := strings.Index(s, ")")
	if open < 0 || end < open {
		return color.NRGBA{}, fmt.Errorf("malformed color %q", s)
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("malformed color %q", s)
	}
	c := color.NRGBA{A: 0xff}
	channel := func(p string) (uint8, error) {
		p = strings.TrimSpace(p)
		if strings.HasSuffix(p, "%") {
			f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
			if err != nil {
				return 0, err
			}
			return uint8(clamp255(f * 255 / 100)), nil
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, err
		}
		return uint8(clamp255(float64(v))), nil
	}
	var err error
	if c.R, err = channel(parts[0]); err != nil {
		return c, fmt.Errorf("malformed color %q", s)
	}
	if c.G, err = channel(parts[1]); err != nil {
		return c, fmt.Errorf("malformed color %q", s)
	}
	if c.B, err = channel(parts[2]); err != nil {
		return c, fmt.Errorf("malformed color %q", s)
	}
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return c, fmt.Errorf("malformed color %q", s)
		}
		c.A = uint8(clamp255(a * 255))
	}
	return c, nil
}

func clamp255(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return f
}

// HexColor formats c in #rrggbb notation, dropping the alpha channel.
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
