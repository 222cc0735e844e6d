package svgraster

import "github.com/benoitkugler/svgrender/svggeom"

// Clip restricts painting to a region, tested per pixel center.
// A nil Clip means unclipped.
type Clip interface {
	Contains(x, y float64) bool
}

// ClipRect is an axis aligned rectangular clip, in device space.
type ClipRect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (c ClipRect) Contains(x, y float64) bool {
	return x >= c.MinX && x < c.MaxX && y >= c.MinY && y < c.MaxY
}

// ClipPolygon clips against a flattened outline, using the nonzero rule
// unless EvenOdd is set.
type ClipPolygon struct {
	Outline svggeom.Outline
	EvenOdd bool
}

func (c ClipPolygon) Contains(x, y float64) bool {
	return insideOutline(c.Outline, x, y, c.EvenOdd)
}

// ClipUnion passes points inside any of its members, built when a clip
// path holds several shapes, each carrying its own fill rule.
type ClipUnion struct {
	Members []Clip
}

func (c ClipUnion) Contains(x, y float64) bool {
	for _, m := range c.Members {
		if m.Contains(x, y) {
			return true
		}
	}
	return false
}

// ClipIntersect is the conjunction of two clips, built when clipped
// groups nest.
type ClipIntersect struct {
	A, B Clip
}

func (c ClipIntersect) Contains(x, y float64) bool {
	return c.A.Contains(x, y) && c.B.Contains(x, y)
}

// IntersectClips combines two optional clips, treating nil as "everything".
func IntersectClips(a, b Clip) Clip {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return ClipIntersect{a, b}
}
