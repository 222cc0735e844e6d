package svggeom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixCompose(t *testing.T) {
	m := Identity.Translate(2, 3).Scale(2, 2)
	// scaling is appended, so it applies first
	x, y := m.Apply(1, 1)
	assert.Equal(t, 4.0, x)
	assert.Equal(t, 5.0, y)

	r := Identity.Rotate(math.Pi / 2)
	x, y = r.Apply(1, 0)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)

	ra := Identity.RotateAbout(math.Pi, 5, 5)
	x, y = ra.Apply(0, 0)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)
}

func TestMatrixInverse(t *testing.T) {
	m := Identity.Translate(4, -2).Rotate(0.7).Scale(3, 0.5)
	assert.True(t, m.Mult(m.Inverse()).IsIdentity())

	// singular matrices invert to the identity
	assert.Equal(t, Identity, Identity.Scale(0, 0).Inverse())
}

func TestMatrixQueries(t *testing.T) {
	assert.True(t, Identity.Translate(5, 5).Scale(2, 3).IsAxisAligned())
	assert.False(t, Identity.Rotate(0.3).IsAxisAligned())

	sx, sy := Identity.Rotate(math.Pi/4).Scale(2, 3).ScaleFactors()
	assert.InDelta(t, 2, sx, 1e-9)
	assert.InDelta(t, 3, sy, 1e-9)
	assert.InDelta(t, 2.5, Identity.Scale(2, 3).MeanScale(), 1e-9)
}

func TestParseNumberList(t *testing.T) {
	// a sign splits adjacent numbers
	assert.Equal(t, []float64{1.5, -2.3}, ParseNumberList("1.5-2.3"))
	assert.Equal(t, []float64{10, 20, 30}, ParseNumberList(" 10, 20 ,30 "))
	assert.Equal(t, []float64{1e2, -0.5}, ParseNumberList("1e2-.5"))
	assert.Empty(t, ParseNumberList("abc"))
}

func TestParsePoints(t *testing.T) {
	pts := ParsePoints("0,0 10,0 10,10 5")
	// the trailing unpaired number is dropped
	assert.Equal(t, []Point{{0, 0}, {10, 0}, {10, 10}}, pts)
}

func TestCompilePath(t *testing.T) {
	p, err := CompilePath("M10 10 L20 10 l0 10 H10 V10 Z")
	require.NoError(t, err)
	assert.Equal(t, Path{
		MoveTo{10, 10},
		LineTo{20, 10},
		LineTo{20, 20},
		LineTo{10, 20},
		LineTo{10, 10},
		Close{},
	}, p)
}

func TestCompilePathImplicitLineTo(t *testing.T) {
	p, err := CompilePath("M0 0 10 10 20 0")
	require.NoError(t, err)
	assert.Equal(t, Path{MoveTo{0, 0}, LineTo{10, 10}, LineTo{20, 0}}, p)
}

func TestCompilePathSmooth(t *testing.T) {
	p, err := CompilePath("M0 0 C0 10 10 10 10 0 S20 -10 20 0")
	require.NoError(t, err)
	require.Len(t, p, 3)
	// the first control point mirrors the previous one
	assert.Equal(t, CubicTo{Point{10, -10}, Point{20, -10}, Point{20, 0}}, p[2])

	p, err = CompilePath("M0 0 Q5 10 10 0 T20 0")
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.Equal(t, QuadTo{Point{15, -10}, Point{20, 0}}, p[2])

	// without a preceding curve the shorthand control collapses to the
	// current point
	p, err = CompilePath("M3 4 T10 10")
	require.NoError(t, err)
	assert.Equal(t, QuadTo{Point{3, 4}, Point{10, 10}}, p[1])
}

func TestCompilePathArc(t *testing.T) {
	p, err := CompilePath("M0 0 A5 5 0 0 1 10 0")
	require.NoError(t, err)
	require.Len(t, p, 2)
	arc := p[1].(ArcTo)
	assert.Equal(t, 5.0, arc.Rx)
	assert.False(t, arc.LargeArc)
	assert.True(t, arc.Sweep)
	assert.Equal(t, Point{10, 0}, arc.End)
}

func TestCompilePathErrors(t *testing.T) {
	_, err := CompilePath("L10 10")
	assert.Error(t, err)
	_, err = CompilePath("M10")
	assert.Error(t, err)
	_, err = CompilePath("M0 0 X5 5")
	assert.Error(t, err)
	p, err := CompilePath("")
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestFlattenLines(t *testing.T) {
	p, err := CompilePath("M0 0 L10 0 L10 10 Z M20 0 L30 0")
	require.NoError(t, err)
	out := p.Flatten(Identity, 0)
	require.Len(t, out, 2)
	assert.True(t, out[0].Closed)
	assert.Equal(t, []Point{{0, 0}, {10, 0}, {10, 10}}, out[0].Pts)
	assert.False(t, out[1].Closed)
	assert.Equal(t, []Point{{20, 0}, {30, 0}}, out[1].Pts)
}

func TestFlattenCurveEndpoints(t *testing.T) {
	p, err := CompilePath("M0 0 C0 20 30 20 30 0")
	require.NoError(t, err)
	out := p.Flatten(Identity, 0.5)
	require.Len(t, out, 1)
	pts := out[0].Pts
	require.Greater(t, len(pts), 3)
	assert.Equal(t, Point{0, 0}, pts[0])
	assert.Equal(t, Point{30, 0}, pts[len(pts)-1])
	// the curve bulges towards the control points
	var maxY float64
	for _, pt := range pts {
		maxY = math.Max(maxY, pt.Y)
	}
	assert.InDelta(t, 15, maxY, 1)
}

func TestFlattenTransformsFirst(t *testing.T) {
	// at a 10x zoom a coarse tolerance still yields a dense polyline,
	// since flattening happens in device space
	p, _ := CompilePath("M0 0 Q5 10 10 0")
	coarse := p.Flatten(Identity, 0.5)
	zoomed := p.Flatten(Identity.Scale(10, 10), 0.5)
	assert.Greater(t, len(zoomed[0].Pts), len(coarse[0].Pts))
}

func TestFlattenEllipse(t *testing.T) {
	out := Ellipse(0, 0, 10, 5).Flatten(Identity, 0.5)
	minX, minY, maxX, maxY, ok := out.Bounds()
	require.True(t, ok)
	assert.InDelta(t, -10, minX, 1e-9)
	assert.InDelta(t, 10, maxX, 1e-9)
	assert.InDelta(t, -5, minY, 1e-9)
	assert.InDelta(t, 5, maxY, 1e-9)
	assert.True(t, out[0].Closed)
	// at least 4 segments per half arc
	assert.GreaterOrEqual(t, len(out[0].Pts), 8)
}

func TestRoundRect(t *testing.T) {
	// no radii: plain rectangle
	out := RoundRect(0, 0, 10, 8, -1, -1).Flatten(Identity, 0)
	require.Len(t, out, 1)
	assert.Equal(t, []Point{{0, 0}, {10, 0}, {10, 8}, {0, 8}}, out[0].Pts)

	// a single radius mirrors to the other axis, then both clamp to the
	// half sides
	out = RoundRect(0, 0, 10, 8, 20, -1).Flatten(Identity, 0.5)
	minX, minY, maxX, maxY, ok := out.Bounds()
	require.True(t, ok)
	assert.InDelta(t, 0, minX, 1e-9)
	assert.InDelta(t, 10, maxX, 1e-9)
	assert.InDelta(t, 0, minY, 1e-9)
	assert.InDelta(t, 8, maxY, 1e-9)
	// the corners are cut: no point lands on (0, 0)
	for _, pt := range out[0].Pts {
		assert.NotEqual(t, Point{0, 0}, pt)
	}
}

func TestOutlineTransformBounds(t *testing.T) {
	out := Polygon([]Point{{0, 0}, {4, 0}, {4, 2}}).Flatten(Identity, 0)
	moved := out.Transform(Identity.Translate(10, 10))
	minX, minY, maxX, maxY, ok := moved.Bounds()
	require.True(t, ok)
	assert.Equal(t, [4]float64{10, 10, 14, 12}, [4]float64{minX, minY, maxX, maxY})

	var empty Outline
	_, _, _, _, ok = empty.Bounds()
	assert.False(t, ok)
	assert.True(t, empty.IsEmpty())
}
