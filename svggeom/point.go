package svggeom

import "math"

// Point is a 2D position, in whatever space the context implies.
type Point struct {
	X, Y float64
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Add returns p + o.
func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

// Scale returns p scaled by k.
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Dist returns the euclidean distance to o.
func (p Point) Dist(o Point) float64 { return math.Hypot(p.X-o.X, p.Y-o.Y) }

// SubPath is one run of connected line segments, produced by flattening.
// Closed subpaths have an implicit closing segment from the last point
// back to the first.
type SubPath struct {
	Pts    []Point
	Closed bool
}

// Outline is the flattened, device space form of a path: a list of
// subpaths, each a polyline.
type Outline []SubPath

// IsEmpty reports whether the outline contains no drawable segment.
func (o Outline) IsEmpty() bool {
	for _, sp := range o {
		if len(sp.Pts) >= 2 {
			return false
		}
	}
	return true
}

// Bounds returns the bounding box of all subpath points.
// ok is false for an outline with no points at all.
func (o Outline) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, sp := range o {
		for _, p := range sp.Pts {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
			ok = true
		}
	}
	return minX, minY, maxX, maxY, ok
}

// Transform returns a copy of the outline with every point mapped
// through m.
func (o Outline) Transform(m Matrix2D) Outline {
	out := make(Outline, len(o))
	for i, sp := range o {
		pts := make([]Point, len(sp.Pts))
		for j, p := range sp.Pts {
			pts[j] = m.ApplyPt(p)
		}
		out[i] = SubPath{Pts: pts, Closed: sp.Closed}
	}
	return out
}
