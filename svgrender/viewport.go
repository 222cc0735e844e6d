// Walks a parsed document and rasterizes it: viewport mapping, the
// transform and paint context stack, shape dispatch and clip paths.
package svgrender

import (
	"strings"

	"github.com/benoitkugler/svgrender/svgdom"
	"github.com/benoitkugler/svgrender/svggeom"
	"github.com/benoitkugler/svgrender/svgunit"
)

// fallbackSize is used when the root gives neither a size nor a viewBox.
const fallbackSize = 100

// Viewport is the document to device mapping established by the root
// element: output size, plus the scale and offset derived from viewBox
// and preserveAspectRatio.
type Viewport struct {
	Width, Height float64 // device size, in pixels

	hasViewBox       bool
	viewBox          [4]float64
	scaleX, scaleY   float64
	offsetX, offsetY float64
}

// NewViewport computes the mapping from the root node: explicit width
// and height win, then the viewBox size, then a 100x100 fallback.
func NewViewport(tree *svgdom.Tree) Viewport {
	var v Viewport
	v.scaleX, v.scaleY = 1, 1
	if tree.Root() == -1 {
		v.Width, v.Height = fallbackSize, fallbackSize
		return v
	}
	root := tree.At(tree.Root())

	if vb, ok := root.Attrs["viewBox"]; ok {
		if box, ok := svgdom.ParseViewBox(vb); ok && box[2] > 0 && box[3] > 0 {
			v.hasViewBox = true
			v.viewBox = box
		}
	}

	v.Width = rootLength(root.Attrs["width"], v, true)
	v.Height = rootLength(root.Attrs["height"], v, false)

	v.compute(tree.AttrDefault(tree.Root(), "preserveAspectRatio"))
	return v
}

// rootLength resolves a root dimension, falling back to the viewBox
// then to the fixed default.
func rootLength(value string, v Viewport, horizontal bool) float64 {
	if value != "" {
		if l := svgunit.Length(value, svgunit.LengthContext{}); l > 0 {
			return l
		}
	}
	if v.hasViewBox {
		if horizontal {
			return v.viewBox[2]
		}
		return v.viewBox[3]
	}
	return fallbackSize
}

// Override resizes the output and recomputes the scale and offset,
// keeping the viewBox mapping consistent with the new size.
func (v *Viewport) Override(width, height float64, aspectRatio string) {
	if width <= 0 && height <= 0 {
		return
	}
	if !v.hasViewBox && v.Width > 0 && v.Height > 0 {
		// without a viewBox the content itself must be scaled
		v.hasViewBox = true
		v.viewBox = [4]float64{0, 0, v.Width, v.Height}
	}
	if width > 0 {
		v.Width = width
	}
	if height > 0 {
		v.Height = height
	}
	v.compute(aspectRatio)
}

// compute derives scale and offset from the viewBox and the
// preserveAspectRatio value ("none", or alignment plus meet/slice).
func (v *Viewport) compute(aspectRatio string) {
	if !v.hasViewBox {
		v.scaleX, v.scaleY = 1, 1
		v.offsetX, v.offsetY = 0, 0
		return
	}
	fields := strings.Fields(aspectRatio)
	align := "xmidymid"
	if len(fields) > 0 && fields[0] != "" {
		align = strings.ToLower(fields[0])
	}
	sx := v.Width / v.viewBox[2]
	sy := v.Height / v.viewBox[3]
	if align == "none" {
		v.scaleX, v.scaleY = sx, sy
		v.offsetX = -v.viewBox[0] * sx
		v.offsetY = -v.viewBox[1] * sy
		return
	}
	s := sx
	if len(fields) > 1 && strings.ToLower(fields[1]) == "slice" {
		if sy > s {
			s = sy
		}
	} else if sy < s { // meet is the default
		s = sy
	}
	v.scaleX, v.scaleY = s, s

	extraX := v.Width - v.viewBox[2]*s
	extraY := v.Height - v.viewBox[3]*s
	v.offsetX = -v.viewBox[0]*s + extraX*alignFactor(align, "xmin", "xmax")
	v.offsetY = -v.viewBox[1]*s + extraY*alignFactor(align, "ymin", "ymax")
}

func alignFactor(align, min, max string) float64 {
	if strings.Contains(align, min) {
		return 0
	}
	if strings.Contains(align, max) {
		return 1
	}
	return 0.5 // mid alignment
}

// TransformPoint maps a document point to device pixels, before any
// node local transforms.
func (v Viewport) TransformPoint(x, y float64) (float64, float64) {
	return x*v.scaleX + v.offsetX, y*v.scaleY + v.offsetY
}

// TransformLength scales a scalar length along one axis: lengths keep
// the scale of the axis they belong to.
func (v Viewport) TransformLength(l float64, horizontal bool) float64 {
	if horizontal {
		return l * v.scaleX
	}
	return l * v.scaleY
}

// Matrix returns the mapping as an affine transform.
func (v Viewport) Matrix() svggeom.Matrix2D {
	return svggeom.Matrix2D{A: v.scaleX, D: v.scaleY, E: v.offsetX, F: v.offsetY}
}

// UserContext is the length resolution context of document units, used
// for percentages inside the drawing.
func (v Viewport) UserContext() svgunit.LengthContext {
	if v.hasViewBox {
		return svgunit.LengthContext{ViewportW: v.viewBox[2], ViewportH: v.viewBox[3]}
	}
	return svgunit.LengthContext{ViewportW: v.Width, ViewportH: v.Height}
}
