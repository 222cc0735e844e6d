package svgraster

import (
	"math"

	"github.com/benoitkugler/svgrender/svggeom"
	"github.com/benoitkugler/svgrender/svgunit"
)

// subSamples is the supersampling grid side used for antialiased fills.
const subSamples = 4

// insideOutline tests the point against the outline with a horizontal
// ray crossing count. Open subpaths are treated as closed, which is the
// filling convention.
func insideOutline(out svggeom.Outline, x, y float64, evenOdd bool) bool {
	winding := 0
	for _, sp := range out {
		n := len(sp.Pts)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			a := sp.Pts[i]
			b := sp.Pts[(i+1)%n]
			if a.Y == b.Y {
				continue
			}
			up := a.Y <= y && y < b.Y
			down := b.Y <= y && y < a.Y
			if !up && !down {
				continue
			}
			// x coordinate where the edge crosses the scanline
			cross := a.X + (y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if cross <= x {
				continue
			}
			if up {
				winding++
			} else {
				winding--
			}
		}
	}
	if evenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// FillPolygon paints the interior of a flattened outline. With antiAlias
// the coverage comes from a 4x4 subsample grid per pixel; otherwise the
// pixel center decides alone. The clip, when non nil, gates whole pixels
// by their center.
func FillPolygon(b *Buffer, out svggeom.Outline, c svgunit.RGBA, evenOdd bool, clip Clip, antiAlias bool) {
	if c.A == 0 || out.IsEmpty() {
		return
	}
	minX, minY, maxX, maxY, ok := out.Bounds()
	if !ok {
		return
	}
	x0, y0, x1, y1 := pixelBounds(b, minX, minY, maxX, maxY)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cx, cy := float64(x)+0.5, float64(y)+0.5
			if clip != nil && !clip.Contains(cx, cy) {
				continue
			}
			var coverage float64
			if antiAlias {
				hits := 0
				for sy := 0; sy < subSamples; sy++ {
					for sx := 0; sx < subSamples; sx++ {
						px := float64(x) + (float64(sx)+0.5)/subSamples
						py := float64(y) + (float64(sy)+0.5)/subSamples
						if insideOutline(out, px, py, evenOdd) {
							hits++
						}
					}
				}
				coverage = float64(hits) / (subSamples * subSamples)
			} else if insideOutline(out, cx, cy, evenOdd) {
				coverage = 1
			}
			b.BlendCoverage(x, y, c, coverage)
		}
	}
}

// EllipseSDF is the approximate signed distance from the point to the
// ellipse boundary: negative inside, positive outside, scaled so a unit
// step in device space is about one unit of distance near the boundary.
func EllipseSDF(x, y, cx, cy, rx, ry float64) float64 {
	if rx <= 0 || ry <= 0 {
		return math.Inf(1)
	}
	dx, dy := (x-cx)/rx, (y-cy)/ry
	return (math.Sqrt(dx*dx+dy*dy) - 1) * math.Min(rx, ry)
}

// FillEllipse paints an axis aligned ellipse analytically from its
// signed distance, avoiding flattening artifacts on circles. With
// antiAlias the coverage ramps linearly across the boundary pixel.
func FillEllipse(b *Buffer, cx, cy, rx, ry float64, c svgunit.RGBA, clip Clip, antiAlias bool) {
	if c.A == 0 || rx <= 0 || ry <= 0 {
		return
	}
	x0, y0, x1, y1 := pixelBounds(b, cx-rx-1, cy-ry-1, cx+rx+1, cy+ry+1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			if clip != nil && !clip.Contains(px, py) {
				continue
			}
			sd := EllipseSDF(px, py, cx, cy, rx, ry)
			var coverage float64
			if antiAlias {
				coverage = math.Max(0, math.Min(1, 0.5-sd))
			} else if sd < 0 {
				coverage = 1
			}
			b.BlendCoverage(x, y, c, coverage)
		}
	}
}

// pixelBounds clamps a device space box to the buffer's pixel grid.
func pixelBounds(b *Buffer, minX, minY, maxX, maxY float64) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(minX))
	y0 = int(math.Floor(minY))
	x1 = int(math.Ceil(maxX))
	y1 = int(math.Ceil(maxY))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > b.w-1 {
		x1 = b.w - 1
	}
	if y1 > b.h-1 {
		y1 = b.h - 1
	}
	return x0, y0, x1, y1
}
