package svgunit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumberUnit(t *testing.T) {
	for _, tt := range []struct {
		in   string
		num  float64
		unit string
	}{
		{"12", 12, ""},
		{" 12.5px ", 12.5, "px"},
		{"-3.2mm", -3.2, "mm"},
		{"+.5em", 0.5, "em"},
		{"1e2", 100, ""},
		{"2.5e-1cm", 0.25, "cm"},
		{"50%", 50, "%"},
		{"abc", 0, ""},
		{"", 0, ""},
		{"12 34", 0, ""},
	} {
		num, unit := ParseNumberUnit(tt.in)
		assert.Equal(t, tt.num, num, tt.in)
		assert.Equal(t, tt.unit, unit, tt.in)
	}
}

func TestLength(t *testing.T) {
	assert.Equal(t, 10.0, Length("10", LengthContext{}))
	assert.Equal(t, 10.0, Length("10px", LengthContext{}))
	assert.InDelta(t, 96.0, Length("1in", LengthContext{}), 1e-9)
	assert.InDelta(t, 96.0, Length("72pt", LengthContext{}), 1e-9)
	assert.InDelta(t, 96.0, Length("6pc", LengthContext{}), 1e-9)
	assert.InDelta(t, 96.0/2.54, Length("1cm", LengthContext{}), 1e-9)
	assert.InDelta(t, 96.0/25.4, Length("1mm", LengthContext{}), 1e-9)
	assert.Equal(t, 32.0, Length("2em", LengthContext{}))
	assert.Equal(t, 20.0, Length("2em", LengthContext{FontSize: 10}))
	assert.Equal(t, 16.0, Length("2ex", LengthContext{}))
	// percent resolves against the viewport average
	assert.Equal(t, 75.0, Length("50%", LengthContext{ViewportW: 100, ViewportH: 200}))
	// without a viewport it passes through
	assert.Equal(t, 50.0, Length("50%", LengthContext{}))
	assert.Equal(t, 0.0, Length("bogus", LengthContext{}))
}

func TestAngle(t *testing.T) {
	assert.Equal(t, 90.0, Angle("90"))
	assert.Equal(t, 90.0, Angle("90deg"))
	assert.InDelta(t, 180.0, Angle("3.14159265358979rad"), 1e-9)
	assert.InDelta(t, 90.0, Angle("100grad"), 1e-9)
	assert.Equal(t, 180.0, Angle("0.5turn"))
	assert.InDelta(t, 90.0, Angle("25%"), 1e-9)
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("red")
	assert.True(t, ok)
	assert.Equal(t, RGB{255, 0, 0}, c)

	c, ok = ParseColor("#abc")
	assert.True(t, ok)
	assert.Equal(t, RGB{0xaa, 0xbb, 0xcc}, c)

	c, ok = ParseColor("#102030")
	assert.True(t, ok)
	assert.Equal(t, RGB{0x10, 0x20, 0x30}, c)

	// 8 digit form ignores the alpha digits
	c, ok = ParseColor("#10203080")
	assert.True(t, ok)
	assert.Equal(t, RGB{0x10, 0x20, 0x30}, c)

	c, ok = ParseColor("rgb(300, -4, 12.7)")
	assert.True(t, ok)
	assert.Equal(t, RGB{255, 0, 12}, c)

	c, ok = ParseColor("rgba(1,2,3,0.5)")
	assert.True(t, ok)
	assert.Equal(t, RGB{1, 2, 3}, c)

	_, ok = ParseColor("none")
	assert.False(t, ok)
	_, ok = ParseColor("")
	assert.False(t, ok)

	// unknown keywords fall back to black, but still paint
	c, ok = ParseColor("blurple")
	assert.True(t, ok)
	assert.Equal(t, RGB{0, 0, 0}, c)
}

func TestBlend(t *testing.T) {
	// 50% red over opaque white
	out := Blend(RGBA{255, 0, 0, 128}, RGBA{255, 255, 255, 255})
	assert.Equal(t, uint8(255), out.R)
	assert.InDelta(t, 128, int(out.G), 2)
	assert.InDelta(t, 128, int(out.B), 2)
	assert.Equal(t, uint8(255), out.A)

	// fully transparent foreground leaves the background
	bg := RGBA{10, 20, 30, 255}
	assert.Equal(t, bg, Blend(RGBA{}, bg))

	// both transparent composites to transparent black
	assert.Equal(t, RGBA{}, Blend(RGBA{255, 0, 0, 0}, RGBA{0, 255, 0, 0}))

	// non opaque background renormalizes by the output alpha
	out = Blend(RGBA{255, 0, 0, 128}, RGBA{0, 0, 255, 128})
	assert.True(t, out.A > 128)
	assert.True(t, out.R > out.B)
}

func TestBlendRounding(t *testing.T) {
	// channels land right at integer boundaries: rounding must not
	// lose a unit to float truncation
	white := RGBA{255, 255, 255, 255}
	out := Blend(RGB{255, 0, 0}.WithOpacity(0.5), white)
	assert.Equal(t, RGBA{255, 128, 128, 255}, out)

	out = Blend(RGBA{255, 0, 0, 128}, white)
	assert.Equal(t, uint8(127), out.G)
	assert.Equal(t, uint8(255), out.A)
}
