package svgraster

import (
	"math"
	"testing"

	"github.com/benoitkugler/svgrender/svggeom"
	"github.com/benoitkugler/svgrender/svgunit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = svgunit.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = svgunit.RGBA{R: 255, A: 255}
)

func rect(x, y, w, h float64) svggeom.Outline {
	return svggeom.Outline{{
		Pts:    []svggeom.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}},
		Closed: true,
	}}
}

func TestBufferBasics(t *testing.T) {
	b := NewBuffer(4, 3, white)
	w, h := b.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)
	assert.Equal(t, white, b.At(0, 0))
	assert.Equal(t, svgunit.RGBA{}, b.At(-1, 0))
	assert.Equal(t, svgunit.RGBA{}, b.At(4, 0))

	b.BlendCoverage(1, 1, red, 0.5)
	got := b.At(1, 1)
	assert.Equal(t, uint8(255), got.R)
	assert.InDelta(t, 127, float64(got.G), 1)
	assert.Equal(t, uint8(255), got.A)

	// out of bounds writes are ignored
	b.BlendPixel(10, 10, red)
	b.SetPixel(-1, -1, red)

	img := b.Image()
	assert.Equal(t, 4, img.Bounds().Dx())
	c := img.NRGBAAt(0, 0)
	assert.Equal(t, uint8(255), c.R)
}

func TestFillPolygonSquare(t *testing.T) {
	b := NewBuffer(20, 20, white)
	FillPolygon(b, rect(5, 5, 8, 8), red, false, nil, false)
	assert.Equal(t, red, b.At(8, 8))
	assert.Equal(t, red, b.At(5, 5))
	assert.Equal(t, white, b.At(3, 8))
	assert.Equal(t, white, b.At(14, 8))
}

func TestFillPolygonAntialias(t *testing.T) {
	// a half pixel offset edge: boundary pixels get partial coverage
	b := NewBuffer(20, 20, white)
	out := rect(5.5, 5, 8, 8)
	FillPolygon(b, out, red, false, nil, true)
	inner := b.At(9, 8)
	assert.Equal(t, red, inner)
	edge := b.At(5, 8)
	assert.Greater(t, edge.G, uint8(0))    // not fully red
	assert.Less(t, edge.G, uint8(255))     // but not untouched
	assert.Equal(t, uint8(255), edge.A)
}

func starOutline(cx, cy, r float64) svggeom.Outline {
	// five pointed star drawn with edges that cross, center winding 2
	pts := make([]svggeom.Point, 5)
	for k := 0; k < 5; k++ {
		ang := -math.Pi/2 + 4*math.Pi*float64(k)/5
		pts[k] = svggeom.Point{X: cx + r*math.Cos(ang), Y: cy + r*math.Sin(ang)}
	}
	return svggeom.Outline{{Pts: pts, Closed: true}}
}

func TestFillRules(t *testing.T) {
	star := starOutline(15, 15, 12)

	b := NewBuffer(30, 30, white)
	FillPolygon(b, star, red, false, nil, false)
	assert.Equal(t, red, b.At(15, 15), "nonzero fills the star core")

	b = NewBuffer(30, 30, white)
	FillPolygon(b, star, red, true, nil, false)
	assert.Equal(t, white, b.At(15, 15), "evenodd leaves the core hollow")
}

func TestEllipseSDF(t *testing.T) {
	// the sign must agree with the implicit equation
	for _, tc := range []struct{ x, y float64 }{
		{50, 50}, {50, 20.2}, {30.5, 50}, {10, 10}, {50, 19}, {75, 50},
	} {
		sd := EllipseSDF(tc.x, tc.y, 50, 50, 20, 30)
		dx, dy := (tc.x-50)/20, (tc.y-50)/30
		implicit := dx*dx + dy*dy - 1
		if implicit < 0 {
			assert.Less(t, sd, 0.0)
		} else if implicit > 0 {
			assert.Greater(t, sd, 0.0)
		}
	}
	assert.True(t, math.IsInf(EllipseSDF(0, 0, 0, 0, 0, 5), 1))
}

func TestFillEllipse(t *testing.T) {
	b := NewBuffer(40, 40, white)
	FillEllipse(b, 20, 20, 10, 6, red, nil, false)
	assert.Equal(t, red, b.At(20, 20))
	assert.Equal(t, red, b.At(28, 20))
	assert.Equal(t, white, b.At(20, 28)) // outside the short axis
	assert.Equal(t, white, b.At(33, 20))

	// antialiased boundary pixel is a blend
	b = NewBuffer(40, 40, white)
	FillEllipse(b, 20, 20, 10, 6, red, nil, true)
	edge := b.At(29, 20)
	assert.Greater(t, edge.G, uint8(0))
	assert.Less(t, edge.G, uint8(255))
}

func TestClipping(t *testing.T) {
	b := NewBuffer(20, 20, white)
	clip := ClipRect{MinX: 5, MinY: 5, MaxX: 10, MaxY: 10}
	FillPolygon(b, rect(0, 0, 20, 20), red, false, clip, false)
	assert.Equal(t, red, b.At(6, 6))
	assert.Equal(t, white, b.At(12, 12))
	assert.Equal(t, white, b.At(2, 6))

	inter := IntersectClips(clip, ClipRect{MinX: 0, MinY: 0, MaxX: 7, MaxY: 20})
	b = NewBuffer(20, 20, white)
	FillPolygon(b, rect(0, 0, 20, 20), red, false, inter, false)
	assert.Equal(t, red, b.At(6, 6))
	assert.Equal(t, white, b.At(8, 6)) // cut by the second clip

	assert.Equal(t, clip, IntersectClips(clip, nil))
	assert.Equal(t, clip, IntersectClips(nil, clip))
	assert.Nil(t, IntersectClips(nil, nil))

	poly := ClipPolygon{Outline: starOutline(15, 15, 12)}
	assert.True(t, poly.Contains(15, 15))
	assert.False(t, poly.Contains(1, 1))

	// a union passes points inside any member
	union := ClipUnion{Members: []Clip{
		ClipRect{MinX: 0, MinY: 0, MaxX: 4, MaxY: 4},
		ClipRect{MinX: 10, MinY: 10, MaxX: 14, MaxY: 14},
	}}
	assert.True(t, union.Contains(2, 2))
	assert.True(t, union.Contains(12, 12))
	assert.False(t, union.Contains(7, 7))
}

func line(x1, y1, x2, y2 float64) svggeom.Outline {
	return svggeom.Outline{{Pts: []svggeom.Point{{X: x1, Y: y1}, {X: x2, Y: y2}}}}
}

func TestStrokeLine(t *testing.T) {
	b := NewBuffer(24, 16, white)
	StrokeOutline(b, line(4, 8, 16, 8), StrokeOptions{Width: 4}, red, nil, false)
	assert.Equal(t, red, b.At(10, 8))
	assert.Equal(t, red, b.At(10, 9))
	assert.Equal(t, white, b.At(10, 11), "beyond the half width")
	assert.Equal(t, white, b.At(2, 8), "butt cap does not extend")

	// zero width strokes draw nothing
	b = NewBuffer(24, 16, white)
	StrokeOutline(b, line(4, 8, 16, 8), StrokeOptions{}, red, nil, false)
	assert.Equal(t, white, b.At(10, 8))
}

func TestStrokeCaps(t *testing.T) {
	probe := func(cap CapMode) svgunit.RGBA {
		b := NewBuffer(24, 16, white)
		StrokeOutline(b, line(4, 8, 16, 8), StrokeOptions{Width: 4, Cap: cap}, red, nil, false)
		return b.At(2, 8) // center (2.5, 8.5), 1.5 units before the start
	}
	assert.Equal(t, white, probe(CapButt))
	assert.Equal(t, red, probe(CapSquare))
	assert.Equal(t, red, probe(CapRound))
}

func TestStrokeJoins(t *testing.T) {
	corner := svggeom.Outline{{Pts: []svggeom.Point{{X: 10, Y: 30}, {X: 10, Y: 10}, {X: 30, Y: 10}}}}
	probe := func(join JoinMode, limit float64) svgunit.RGBA {
		b := NewBuffer(40, 40, white)
		StrokeOutline(b, corner, StrokeOptions{Width: 6, Join: join, MiterLimit: limit}, red, nil, false)
		return b.At(7, 7) // the outer corner tip, only a miter reaches it
	}
	assert.Equal(t, red, probe(JoinMiter, 0))
	assert.Equal(t, white, probe(JoinBevel, 0))
	assert.Equal(t, white, probe(JoinRound, 0))
	// a tight miter limit falls back to bevel
	assert.Equal(t, white, probe(JoinMiter, 1))
}

func TestStrokeDashes(t *testing.T) {
	b := NewBuffer(16, 16, white)
	opts := StrokeOptions{Width: 2, Dashes: []float64{4, 2}}
	StrokeOutline(b, line(0, 8, 12, 8), opts, red, nil, false)
	// pattern on [0,4), off [4,6), on [6,10), off from 10
	assert.Equal(t, red, b.At(2, 8))
	assert.Equal(t, white, b.At(5, 8))
	assert.Equal(t, red, b.At(8, 8))
	assert.Equal(t, white, b.At(11, 8))

	// the offset shifts the pattern
	b = NewBuffer(16, 16, white)
	opts.DashOffset = 4
	StrokeOutline(b, line(0, 8, 12, 8), opts, red, nil, false)
	assert.Equal(t, white, b.At(1, 8)) // starts in the gap
	assert.Equal(t, red, b.At(3, 8))
}

func TestNormalizeDashes(t *testing.T) {
	d, ok := normalizeDashes([]float64{5})
	require.True(t, ok)
	assert.Equal(t, []float64{5, 5}, d)

	_, ok = normalizeDashes([]float64{4, -1})
	assert.False(t, ok)
	_, ok = normalizeDashes([]float64{0, 0})
	assert.False(t, ok)
	_, ok = normalizeDashes(nil)
	assert.False(t, ok)
}

func TestStrokeClosedOutline(t *testing.T) {
	b := NewBuffer(30, 30, white)
	StrokeOutline(b, rect(5, 5, 15, 15), StrokeOptions{Width: 2}, red, nil, false)
	// all four sides are stroked, including the implicit closing one
	assert.Equal(t, red, b.At(12, 5))
	assert.Equal(t, red, b.At(12, 20))
	assert.Equal(t, red, b.At(5, 12))
	assert.Equal(t, red, b.At(20, 12))
	assert.Equal(t, white, b.At(12, 12), "the interior is not filled")
}
