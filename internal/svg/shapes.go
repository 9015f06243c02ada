package svg

// Reduces the basic SVG shapes to paths, used when a shape carries a
// transform that the target format cannot express natively.

// kappa is the control-point distance approximating a quarter circle
// with a cubic bezier.
const kappa = 0.5522847498307936

// RectPath returns the rectangle outline as a closed path.
// Rounded corners are approximated with quarter-ellipse cubics.
func RectPath(r RectGeom) Path {
	var p Path
	rx, ry := r.RX, r.RY
	if rx == 0 && ry == 0 {
		p.Start(toFixedP(r.X, r.Y))
		p.Line(toFixedP(r.X+r.W, r.Y))
		p.Line(toFixedP(r.X+r.W, r.Y+r.H))
		p.Line(toFixedP(r.X, r.Y+r.H))
		p.Stop(true)
		return p
	}
	if rx == 0 {
		rx = ry
	}
	if ry == 0 {
		ry = rx
	}
	if rx > r.W/2 {
		rx = r.W / 2
	}
	if ry > r.H/2 {
		ry = r.H / 2
	}
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	p.Start(toFixedP(x0+rx, y0))
	p.Line(toFixedP(x1-rx, y0))
	p.CubeBezier(toFixedP(x1-rx+rx*kappa, y0), toFixedP(x1, y0+ry-ry*kappa), toFixedP(x1, y0+ry))
	p.Line(toFixedP(x1, y1-ry))
	p.CubeBezier(toFixedP(x1, y1-ry+ry*kappa), toFixedP(x1-rx+rx*kappa, y1), toFixedP(x1-rx, y1))
	p.Line(toFixedP(x0+rx, y1))
	p.CubeBezier(toFixedP(x0+rx-rx*kappa, y1), toFixedP(x0, y1-ry+ry*kappa), toFixedP(x0, y1-ry))
	p.Line(toFixedP(x0, y0+ry))
	p.CubeBezier(toFixedP(x0, y0+ry-ry*kappa), toFixedP(x0+rx-rx*kappa, y0), toFixedP(x0+rx, y0))
	p.Stop(true)
	return p
}

// EllipsePath returns the ellipse outline as four cubic segments.
func EllipsePath(e EllipseGeom) Path {
	var p Path
	cx, cy, rx, ry := e.CX, e.CY, e.RX, e.RY
	p.Start(toFixedP(cx+rx, cy))
	p.CubeBezier(toFixedP(cx+rx, cy+ry*kappa), toFixedP(cx+rx*kappa, cy+ry), toFixedP(cx, cy+ry))
	p.CubeBezier(toFixedP(cx-rx*kappa, cy+ry), toFixedP(cx-rx, cy+ry*kappa), toFixedP(cx-rx, cy))
	p.CubeBezier(toFixedP(cx-rx, cy-ry*kappa), toFixedP(cx-rx*kappa, cy-ry), toFixedP(cx, cy-ry))
	p.CubeBezier(toFixedP(cx+rx*kappa, cy-ry), toFixedP(cx+rx, cy-ry*kappa), toFixedP(cx+rx, cy))
	p.Stop(true)
	return p
}
