package svg

import (
	"fmt"
	"math"
	"strconv"
	"unicode"
)

// Compiles the path-data mini language of the `d` attribute into a Path.
// Supported commands: M L H V C S Q T A Z and their relative forms.

type pathParser struct {
	path           Path
	placeX, placeY float64 // current point
	startX, startY float64 // subpath start, for Z
	cntlX, cntlY   float64 // last cubic control point, for S
	pntlX, pntlY   float64 // last quadratic control point, for T
	lastCmd        rune
	points         []float64
}

// ParsePathData compiles an SVG path-data string.
func ParsePathData(d string) (Path, error) {
	p := &pathParser{}
	i := 0
	for i < len(d) {
		r := rune(d[i])
		switch {
		case r == ',' || unicode.IsSpace(r):
			i++
		case unicode.IsLetter(r):
			i++
			if err := p.readNumbers(d, &i); err != nil {
				return nil, err
			}
			if err := p.compile(r); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unexpected character %q in path data", r)
		}
	}
	return p.path, nil
}

// readNumbers scans the numeric arguments following a command letter.
func (p *pathParser) readNumbers(d string, i *int) error {
	p.points = p.points[:0]
	for *i < len(d) {
		r := rune(d[*i])
		if unicode.IsLetter(r) {
			return nil
		}
		if r == ',' || unicode.IsSpace(r) {
			*i++
			continue
		}
		start := *i
		j := *i
		if d[j] == '+' || d[j] == '-' {
			j++
		}
		seenDot := false
		for j < len(d) {
			c := d[j]
			if c >= '0' && c <= '9' {
				j++
			} else if c == '.' && !seenDot {
				seenDot = true
				j++
			} else if (c == 'e' || c == 'E') && j+1 < len(d) {
				// exponent with optional sign
				j++
				if d[j] == '+' || d[j] == '-' {
					j++
				}
			} else {
				break
			}
		}
		if j == start {
			return fmt.Errorf("unexpected character %q in path data", r)
		}
		f, err := strconv.ParseFloat(d[start:j], 64)
		if err != nil {
			return fmt.Errorf("invalid number %q in path data", d[start:j])
		}
		p.points = append(p.points, f)
		*i = j
	}
	return nil
}

// valsToAbs converts a run of relative coordinate pairs to absolute.
// Each pair chains off the previous one, not the pre-command point.
func (p *pathParser) valsToAbs() {
	x, y := p.placeX, p.placeY
	for i := 0; i < len(p.points); i += 2 {
		x += p.points[i]
		y += p.points[i+1]
		p.points[i], p.points[i+1] = x, y
	}
}

func (p *pathParser) errParams(cmd rune, group int) error {
	if len(p.points) == 0 || len(p.points)%group != 0 {
		return fmt.Errorf("wrong number of arguments (%d) for path command %q", len(p.points), cmd)
	}
	return nil
}

func (p *pathParser) compile(cmd rune) error {
	rel := unicode.IsLower(cmd)
	up := unicode.ToUpper(cmd)
	defer func() { p.lastCmd = up }()

	if up != 'M' && len(p.path) == 0 {
		return fmt.Errorf("path data must begin with a moveto command")
	}

	switch up {
	case 'Z':
		if len(p.points) != 0 {
			return fmt.Errorf("path command Z takes no arguments")
		}
		p.path.Stop(true)
		p.placeX, p.placeY = p.startX, p.startY
		return nil
	case 'M':
		if err := p.errParams(cmd, 2); err != nil {
			return err
		}
		if rel {
			p.valsToAbs()
		}
		p.path.Start(toFixedP(p.points[0], p.points[1]))
		p.startX, p.startY = p.points[0], p.points[1]
		// extra pairs are implicit line-to commands
		for i := 2; i < len(p.points); i += 2 {
			p.path.Line(toFixedP(p.points[i], p.points[i+1]))
		}
		p.placeX = p.points[len(p.points)-2]
		p.placeY = p.points[len(p.points)-1]
		return nil
	case 'L':
		if err := p.errParams(cmd, 2); err != nil {
			return err
		}
		if rel {
			p.valsToAbs()
		}
		for i := 0; i < len(p.points); i += 2 {
			p.path.Line(toFixedP(p.points[i], p.points[i+1]))
		}
		p.placeX = p.points[len(p.points)-2]
		p.placeY = p.points[len(p.points)-1]
		return nil
	case 'H':
		if err := p.errParams(cmd, 1); err != nil {
			return err
		}
		for _, v := range p.points {
			if rel {
				v += p.placeX
			}
			p.path.Line(toFixedP(v, p.placeY))
			p.placeX = v
		}
		return nil
	case 'V':
		if err := p.errParams(cmd, 1); err != nil {
			return err
		}
		for _, v := range p.points {
			if rel {
				v += p.placeY
			}
			p.path.Line(toFixedP(p.placeX, v))
			p.placeY = v
		}
		return nil
	case 'C':
		if err := p.errParams(cmd, 6); err != nil {
			return err
		}
		for i := 0; i+5 < len(p.points); i += 6 {
			pts := p.points[i : i+6]
			if rel {
				for j := 0; j < 6; j += 2 {
					pts[j] += p.placeX
					pts[j+1] += p.placeY
				}
			}
			p.path.CubeBezier(toFixedP(pts[0], pts[1]), toFixedP(pts[2], pts[3]), toFixedP(pts[4], pts[5]))
			p.cntlX, p.cntlY = pts[2], pts[3]
			p.placeX, p.placeY = pts[4], pts[5]
		}
		return nil
	case 'S':
		if err := p.errParams(cmd, 4); err != nil {
			return err
		}
		for i := 0; i+3 < len(p.points); i += 4 {
			pts := p.points[i : i+4]
			if rel {
				for j := 0; j < 4; j += 2 {
					pts[j] += p.placeX
					pts[j+1] += p.placeY
				}
			}
			c1x, c1y := p.placeX, p.placeY
			if p.lastCmd == 'C' || p.lastCmd == 'S' {
				c1x, c1y = 2*p.placeX-p.cntlX, 2*p.placeY-p.cntlY
			}
			p.path.CubeBezier(toFixedP(c1x, c1y), toFixedP(pts[0], pts[1]), toFixedP(pts[2], pts[3]))
			p.cntlX, p.cntlY = pts[0], pts[1]
			p.placeX, p.placeY = pts[2], pts[3]
			p.lastCmd = 'S'
		}
		return nil
	case 'Q':
		if err := p.errParams(cmd, 4); err != nil {
			return err
		}
		for i := 0; i+3 < len(p.points); i += 4 {
			pts := p.points[i : i+4]
			if rel {
				for j := 0; j < 4; j += 2 {
					pts[j] += p.placeX
					pts[j+1] += p.placeY
				}
			}
			p.path.QuadBezier(toFixedP(pts[0], pts[1]), toFixedP(pts[2], pts[3]))
			p.pntlX, p.pntlY = pts[0], pts[1]
			p.placeX, p.placeY = pts[2], pts[3]
		}
		return nil
	case 'T':
		if err := p.errParams(cmd, 2); err != nil {
			return err
		}
		for i := 0; i+1 < len(p.points); i += 2 {
			pts := p.points[i : i+2]
			if rel {
				pts[0] += p.placeX
				pts[1] += p.placeY
			}
			cx, cy := p.placeX, p.placeY
			if p.lastCmd == 'Q' || p.lastCmd == 'T' {
				cx, cy = 2*p.placeX-p.pntlX, 2*p.placeY-p.pntlY
			}
			p.path.QuadBezier(toFixedP(cx, cy), toFixedP(pts[0], pts[1]))
			p.pntlX, p.pntlY = cx, cy
			p.placeX, p.placeY = pts[0], pts[1]
			p.lastCmd = 'T'
		}
		return nil
	case 'A':
		if err := p.errParams(cmd, 7); err != nil {
			return err
		}
		for i := 0; i+6 < len(p.points); i += 7 {
			pts := p.points[i : i+7]
			ex, ey := pts[5], pts[6]
			if rel {
				ex += p.placeX
				ey += p.placeY
			}
			p.arcTo(pts[0], pts[1], pts[2], pts[3] != 0, pts[4] != 0, ex, ey)
			p.placeX, p.placeY = ex, ey
		}
		return nil
	default:
		return fmt.Errorf("unsupported path command %q", cmd)
	}
}

// arcTo appends an elliptical arc as one or more cubic segments,
// following the endpoint-to-center conversion of the SVG spec.
func (p *pathParser) arcTo(rx, ry, xRot float64, largeArc, sweep bool, x2, y2 float64) {
	x1, y1 := p.placeX, p.placeY
	if rx == 0 || ry == 0 {
		p.path.Line(toFixedP(x2, y2))
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	phi := xRot * math.Pi / 180
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	// rotate to align the ellipse axes
	dx, dy := (x1-x2)/2, (y1-y2)/2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// scale up radii that cannot span the endpoints
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := 0.0
	if den != 0 {
		co = math.Sqrt(math.Max(0, num/den))
	}
	if largeArc == sweep {
		co = -co
	}
	cxp := co * rx * y1p / ry
	cyp := -co * ry * x1p / rx
	cx := cosPhi*cxp - sinPhi*cyp + (x1+x2)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y1+y2)/2

	theta1 := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	theta2 := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx)
	delta := theta2 - theta1
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	// split into segments no larger than a quarter turn
	segments := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	if segments == 0 {
		segments = 1
	}
	step := delta / float64(segments)
	alpha := 4.0 / 3.0 * math.Tan(step/4)

	pointAt := func(theta float64) (px, py, tx, ty float64) {
		ct, st := math.Cos(theta), math.Sin(theta)
		px = cx + rx*ct*cosPhi - ry*st*sinPhi
		py = cy + rx*ct*sinPhi + ry*st*cosPhi
		// derivative, for the control handles
		tx = -rx*st*cosPhi - ry*ct*sinPhi
		ty = -rx*st*sinPhi + ry*ct*cosPhi
		return
	}

	theta := theta1
	px0, py0, tx0, ty0 := pointAt(theta)
	for s := 0; s < segments; s++ {
		theta += step
		px1, py1, tx1, ty1 := pointAt(theta)
		p.path.CubeBezier(
			toFixedP(px0+alpha*tx0, py0+alpha*ty0),
			toFixedP(px1-alpha*tx1, py1-alpha*ty1),
			toFixedP(px1, py1))
		px0, py0, tx0, ty0 = px1, py1, tx1, ty1
	}
}
