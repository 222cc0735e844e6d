package svggeom

// Shape outline builders, expressed as paths so flattening and
// transformation follow the same pipeline as path elements.

// RoundRect builds the outline of a rectangle with corner radii rx, ry.
// Pass a negative radius for "unspecified": a single specified radius is
// mirrored to the other axis, then each is clamped independently to half
// the matching side.
func RoundRect(x, y, w, h, rx, ry float64) Path {
	if rx < 0 && ry < 0 {
		rx, ry = 0, 0
	} else if rx < 0 {
		rx = ry
	} else if ry < 0 {
		ry = rx
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	if rx <= 0 || ry <= 0 {
		return Path{
			MoveTo{x, y},
			LineTo{x + w, y},
			LineTo{x + w, y + h},
			LineTo{x, y + h},
			Close{},
		}
	}
	arc := func(to Point) ArcTo {
		return ArcTo{Rx: rx, Ry: ry, Sweep: true, End: to}
	}
	return Path{
		MoveTo{x + rx, y},
		LineTo{x + w - rx, y},
		arc(Point{x + w, y + ry}),
		LineTo{x + w, y + h - ry},
		arc(Point{x + w - rx, y + h}),
		LineTo{x + rx, y + h},
		arc(Point{x, y + h - ry}),
		LineTo{x, y + ry},
		arc(Point{x + rx, y}),
		Close{},
	}
}

// Ellipse builds the outline of an axis aligned ellipse as two half arcs.
func Ellipse(cx, cy, rx, ry float64) Path {
	return Path{
		MoveTo{cx + rx, cy},
		ArcTo{Rx: rx, Ry: ry, Sweep: true, End: Point{cx - rx, cy}},
		ArcTo{Rx: rx, Ry: ry, Sweep: true, End: Point{cx + rx, cy}},
		Close{},
	}
}

// Polyline wraps a point list in an open path.
func Polyline(pts []Point) Path {
	if len(pts) == 0 {
		return nil
	}
	p := Path{MoveTo(pts[0])}
	for _, pt := range pts[1:] {
		p = append(p, LineTo(pt))
	}
	return p
}

// Polygon wraps a point list in a closed path.
func Polygon(pts []Point) Path {
	p := Polyline(pts)
	if p == nil {
		return nil
	}
	return append(p, Close{})
}

// Line builds a single segment path.
func Line(x1, y1, x2, y2 float64) Path {
	return Path{MoveTo{x1, y1}, LineTo{x2, y2}}
}
