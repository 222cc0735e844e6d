package svgraster

import (
	"math"

	"github.com/benoitkugler/svgrender/svggeom"
	"github.com/benoitkugler/svgrender/svgunit"
)

// CapMode selects the line cap drawn at the ends of open subpaths.
type CapMode uint8

const (
	CapButt CapMode = iota
	CapRound
	CapSquare
)

// JoinMode selects the corner geometry between consecutive segments.
type JoinMode uint8

const (
	JoinMiter JoinMode = iota
	JoinRound
	JoinBevel
)

const defaultMiterLimit = 4

// StrokeOptions describes a stroke in device units. Dashes follow the
// SVG convention: an odd length list is repeated to even length, and a
// non positive total disables dashing.
type StrokeOptions struct {
	Width      float64
	Cap        CapMode
	Join       JoinMode
	MiterLimit float64 // ratio of miter length to half width; 0 means 4
	Dashes     []float64
	DashOffset float64
}

// A strokePiece is one convex region of the stroked shape, exposed as a
// signed distance: negative inside, and close to euclidean near the
// boundary, which is all the coverage ramp needs.
type strokePiece interface {
	dist(p svggeom.Point) float64
}

// segPiece is the body of one stroked segment. The extend flags push the
// butt face out by the half width (square caps).
type segPiece struct {
	a, b           svggeom.Point
	hw             float64
	roundA, roundB bool
	extA, extB     bool
}

func (s segPiece) dist(p svggeom.Point) float64 {
	ab := s.b.Sub(s.a)
	l := math.Hypot(ab.X, ab.Y)
	if l == 0 {
		if s.roundA || s.roundB {
			return p.Dist(s.a) - s.hw
		}
		return math.Inf(1)
	}
	ux, uy := ab.X/l, ab.Y/l
	ap := p.Sub(s.a)
	t := ap.X*ux + ap.Y*uy
	perp := math.Abs(ap.X*uy - ap.Y*ux)

	if t < 0 && s.roundA {
		return p.Dist(s.a) - s.hw
	}
	if t > l && s.roundB {
		return p.Dist(s.b) - s.hw
	}
	sd := perp - s.hw
	lo, hi := 0.0, l
	if s.extA {
		lo = -s.hw
	}
	if s.extB {
		hi = l + s.hw
	}
	return math.Max(sd, math.Max(lo-t, t-hi))
}

// discPiece is a filled disc, used for round joins.
type discPiece struct {
	c svggeom.Point
	r float64
}

func (d discPiece) dist(p svggeom.Point) float64 { return p.Dist(d.c) - d.r }

// polyPiece is a small convex polygon (bevel triangle, miter quad),
// measured as the max of its edge half plane distances.
type polyPiece struct {
	pts []svggeom.Point // counterclockwise
}

func newPolyPiece(pts []svggeom.Point) polyPiece {
	// orient counterclockwise so the half plane max is negative inside
	var area2 float64
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		area2 += a.X*b.Y - b.X*a.Y
	}
	if area2 < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return polyPiece{pts}
}

func (pp polyPiece) dist(p svggeom.Point) float64 {
	sd := math.Inf(-1)
	for i := range pp.pts {
		a, b := pp.pts[i], pp.pts[(i+1)%len(pp.pts)]
		e := b.Sub(a)
		l := math.Hypot(e.X, e.Y)
		if l == 0 {
			continue
		}
		// negative on the interior (left) side of a ccw edge
		d := ((p.X-a.X)*e.Y - (p.Y-a.Y)*e.X) / l
		sd = math.Max(sd, d)
	}
	return sd
}

// StrokeOutline paints the stroke of a flattened outline. Coverage ramps
// linearly from 1 at hw-0.5 to 0 at hw+0.5 from the spine when
// antialiased, and cuts hard at the half width otherwise.
func StrokeOutline(b *Buffer, out svggeom.Outline, opts StrokeOptions, c svgunit.RGBA, clip Clip, antiAlias bool) {
	if opts.Width <= 0 || c.A == 0 || out.IsEmpty() {
		return
	}
	hw := opts.Width / 2
	limit := opts.MiterLimit
	if limit <= 0 {
		limit = defaultMiterLimit
	}

	dashes, dashed := normalizeDashes(opts.Dashes)

	var pieces []strokePiece
	for _, sp := range out {
		if len(sp.Pts) < 2 {
			continue
		}
		pts := sp.Pts
		if sp.Closed && pts[0] != pts[len(pts)-1] {
			pts = append(append([]svggeom.Point{}, pts...), pts[0])
		}
		if dashed {
			// caps are suppressed on dash segments
			for _, run := range dashRuns(pts, dashes, opts.DashOffset) {
				pieces = append(pieces, runPieces(run, false, hw, CapButt, opts.Join, limit)...)
			}
		} else {
			pieces = append(pieces, runPieces(pts, sp.Closed, hw, opts.Cap, opts.Join, limit)...)
		}
	}
	if len(pieces) == 0 {
		return
	}

	minX, minY, maxX, maxY, _ := out.Bounds()
	pad := hw*math.Max(1, limit) + 1
	x0, y0, x1, y1 := pixelBounds(b, minX-pad, minY-pad, maxX+pad, maxY+pad)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			if clip != nil && !clip.Contains(px, py) {
				continue
			}
			p := svggeom.Point{X: px, Y: py}
			sd := math.Inf(1)
			for _, piece := range pieces {
				if d := piece.dist(p); d < sd {
					sd = d
				}
			}
			var coverage float64
			if antiAlias {
				coverage = math.Max(0, math.Min(1, 0.5-sd))
			} else if sd <= 0 {
				coverage = 1
			}
			b.BlendCoverage(x, y, c, coverage)
		}
	}
}

// runPieces builds the stroke pieces of one polyline run. A closed run
// (last point equal to the first) gets a join at the wrap vertex instead
// of caps.
func runPieces(pts []svggeom.Point, closed bool, hw float64, capMode CapMode, join JoinMode, limit float64) []strokePiece {
	var pieces []strokePiece
	n := len(pts)
	if n < 2 {
		return nil
	}
	for i := 0; i+1 < n; i++ {
		seg := segPiece{a: pts[i], b: pts[i+1], hw: hw}
		if !closed {
			if i == 0 {
				seg.roundA = capMode == CapRound
				seg.extA = capMode == CapSquare
			}
			if i+2 == n {
				seg.roundB = capMode == CapRound
				seg.extB = capMode == CapSquare
			}
		}
		pieces = append(pieces, seg)
	}
	// joins between consecutive segments
	for i := 1; i+1 < n; i++ {
		pieces = append(pieces, joinPieces(pts[i-1], pts[i], pts[i+1], hw, join, limit)...)
	}
	if closed {
		// wrap join at the start point, between the closing and first segments
		pieces = append(pieces, joinPieces(pts[n-2], pts[0], pts[1], hw, join, limit)...)
	}
	return pieces
}

// joinPieces builds the corner geometry at vertex v between the incoming
// segment a->v and the outgoing v->b.
func joinPieces(a, v, b svggeom.Point, hw float64, join JoinMode, limit float64) []strokePiece {
	u1 := normalize(v.Sub(a))
	u2 := normalize(b.Sub(v))
	cross := u1.X*u2.Y - u1.Y*u2.X
	if math.Abs(cross) < 1e-9 {
		return nil // straight or reversing, nothing to fill
	}
	if join == JoinRound {
		return []strokePiece{discPiece{v, hw}}
	}
	// outer normals, on the side away from the turn
	var n1, n2 svggeom.Point
	if cross > 0 {
		n1 = svggeom.Point{X: u1.Y, Y: -u1.X}
		n2 = svggeom.Point{X: u2.Y, Y: -u2.X}
	} else {
		n1 = svggeom.Point{X: -u1.Y, Y: u1.X}
		n2 = svggeom.Point{X: -u2.Y, Y: u2.X}
	}
	c1 := v.Add(n1.Scale(hw))
	c2 := v.Add(n2.Scale(hw))
	if join == JoinMiter {
		m := normalize(n1.Add(n2))
		if cos := m.X*n1.X + m.Y*n1.Y; cos > 0 && 1/cos <= limit {
			tip := v.Add(m.Scale(hw / cos))
			return []strokePiece{newPolyPiece([]svggeom.Point{v, c1, tip, c2})}
		}
		// over the limit: fall back to bevel
	}
	return []strokePiece{newPolyPiece([]svggeom.Point{v, c1, c2})}
}

func normalize(p svggeom.Point) svggeom.Point {
	l := math.Hypot(p.X, p.Y)
	if l == 0 {
		return p
	}
	return svggeom.Point{X: p.X / l, Y: p.Y / l}
}

// normalizeDashes applies the SVG rules: an odd list is doubled, and a
// list with any negative value or a non positive total disables dashing.
func normalizeDashes(dashes []float64) ([]float64, bool) {
	if len(dashes) == 0 {
		return nil, false
	}
	total := 0.0
	for _, d := range dashes {
		if d < 0 {
			return nil, false
		}
		total += d
	}
	if total <= 0 {
		return nil, false
	}
	if len(dashes)%2 == 1 {
		dashes = append(append([]float64{}, dashes...), dashes...)
	}
	return dashes, true
}

// dashRuns splits a polyline into the "on" runs of the dash pattern,
// walking by arc length with the phase given by the dash offset.
func dashRuns(pts []svggeom.Point, dashes []float64, offset float64) [][]svggeom.Point {
	total := 0.0
	for _, d := range dashes {
		total += d
	}
	phase := math.Mod(offset, total)
	if phase < 0 {
		phase += total
	}
	idx := 0
	for phase >= dashes[idx] {
		phase -= dashes[idx]
		idx = (idx + 1) % len(dashes)
	}
	remaining := dashes[idx] - phase
	on := idx%2 == 0

	var runs [][]svggeom.Point
	var run []svggeom.Point
	if on {
		run = []svggeom.Point{pts[0]}
	}
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		l := a.Dist(b)
		if l == 0 {
			continue
		}
		pos := 0.0
		for l-pos > remaining {
			pos += remaining
			t := pos / l
			boundary := svggeom.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
			if on {
				run = append(run, boundary)
				if len(run) >= 2 {
					runs = append(runs, run)
				}
				run = nil
			} else {
				run = []svggeom.Point{boundary}
			}
			on = !on
			idx = (idx + 1) % len(dashes)
			remaining = dashes[idx]
		}
		remaining -= l - pos
		if on {
			run = append(run, b)
		}
	}
	if on && len(run) >= 2 {
		runs = append(runs, run)
	}
	return runs
}
