package svgrender

import (
	"github.com/benoitkugler/svgrender/svgdom"
	"github.com/benoitkugler/svgrender/svggeom"
	"github.com/benoitkugler/svgrender/svgunit"
)

// shapeKind classifies the tags the walk knows how to handle.
type shapeKind uint8

const (
	shapeUnknown shapeKind = iota
	shapeGroup
	shapeRect
	shapeCircle
	shapeEllipse
	shapeLine
	shapePolyline
	shapePolygon
	shapePath
	shapeUse
)

var tagKinds = map[string]shapeKind{
	"svg":      shapeGroup,
	"g":        shapeGroup,
	"rect":     shapeRect,
	"circle":   shapeCircle,
	"ellipse":  shapeEllipse,
	"line":     shapeLine,
	"polyline": shapePolyline,
	"polygon":  shapePolygon,
	"path":     shapePath,
	"use":      shapeUse,
}

// length reads a geometric attribute of the node as document units,
// with def as fallback for absent or unparseable values.
func (r *Renderer) length(node *svgdom.Node, attr string, def float64) float64 {
	v, ok := node.Attrs[attr]
	if !ok || !svgunit.IsNumber(v) {
		return def
	}
	return svgunit.Length(v, r.view.UserContext())
}

// shapePathOf builds the document space outline of a drawable node.
// A nil path means there is nothing to draw (missing or degenerate
// geometry, malformed path data): the element is skipped.
func (r *Renderer) shapePathOf(node *svgdom.Node, kind shapeKind) svggeom.Path {
	switch kind {
	case shapeRect:
		w := r.length(node, "width", 0)
		h := r.length(node, "height", 0)
		if w <= 0 || h <= 0 {
			return nil
		}
		x := r.length(node, "x", 0)
		y := r.length(node, "y", 0)
		return svggeom.RoundRect(x, y, w, h,
			r.length(node, "rx", -1), r.length(node, "ry", -1))
	case shapeCircle:
		rad := r.length(node, "r", 0)
		if rad <= 0 {
			return nil
		}
		return svggeom.Ellipse(r.length(node, "cx", 0), r.length(node, "cy", 0), rad, rad)
	case shapeEllipse:
		rx := r.length(node, "rx", -1)
		ry := r.length(node, "ry", -1)
		// a single radius mirrors to the other axis
		if rx < 0 {
			rx = ry
		}
		if ry < 0 {
			ry = rx
		}
		if rx <= 0 || ry <= 0 {
			return nil
		}
		return svggeom.Ellipse(r.length(node, "cx", 0), r.length(node, "cy", 0), rx, ry)
	case shapeLine:
		return svggeom.Line(
			r.length(node, "x1", 0), r.length(node, "y1", 0),
			r.length(node, "x2", 0), r.length(node, "y2", 0))
	case shapePolyline:
		return svggeom.Polyline(svggeom.ParsePoints(node.Attrs["points"]))
	case shapePolygon:
		return svggeom.Polygon(svggeom.ParsePoints(node.Attrs["points"]))
	case shapePath:
		p, err := svggeom.CompilePath(node.Attrs["d"])
		if err != nil {
			return nil
		}
		return p
	}
	return nil
}

// ellipseGeometry reports whether the node is a circle or ellipse whose
// device image is still axis aligned, in which case the analytic fill
// applies, and returns its device center and radii.
func (r *Renderer) ellipseGeometry(node *svgdom.Node, kind shapeKind, m svggeom.Matrix2D) (cx, cy, rx, ry float64, ok bool) {
	if kind != shapeCircle && kind != shapeEllipse {
		return 0, 0, 0, 0, false
	}
	if !m.IsAxisAligned() {
		return 0, 0, 0, 0, false
	}
	if kind == shapeCircle {
		rx = r.length(node, "r", 0)
		ry = rx
	} else {
		rx = r.length(node, "rx", -1)
		ry = r.length(node, "ry", -1)
		if rx < 0 {
			rx = ry
		}
		if ry < 0 {
			ry = rx
		}
	}
	if rx <= 0 || ry <= 0 {
		return 0, 0, 0, 0, false
	}
	cx, cy = m.Apply(r.length(node, "cx", 0), r.length(node, "cy", 0))
	sx, sy := m.ScaleFactors()
	rx *= sx
	ry *= sy
	if rx <= 0 || ry <= 0 {
		return 0, 0, 0, 0, false
	}
	return cx, cy, rx, ry, true
}
