// Software rasterization of flattened outlines: polygon and ellipse
// fills, stroking with caps, joins and dashing, and per pixel clipping,
// all composited into an RGBA pixel buffer.
package svgraster

import (
	"image"
	"image/color"

	"github.com/benoitkugler/svgrender/svgunit"
)

// Buffer is a fixed size RGBA image with straight (non premultiplied)
// alpha, row major, four bytes per pixel.
type Buffer struct {
	pix  []uint8
	w, h int
}

// NewBuffer allocates a buffer filled with the background color.
func NewBuffer(w, h int, background svgunit.RGBA) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &Buffer{pix: make([]uint8, 4*w*h), w: w, h: h}
	b.Clear(background)
	return b
}

// Size returns the pixel dimensions.
func (b *Buffer) Size() (w, h int) { return b.w, b.h }

// Clear resets every pixel to the given color.
func (b *Buffer) Clear(c svgunit.RGBA) {
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i] = c.R
		b.pix[i+1] = c.G
		b.pix[i+2] = c.B
		b.pix[i+3] = c.A
	}
}

// At returns the pixel at (x, y), or the zero color outside the buffer.
func (b *Buffer) At(x, y int) svgunit.RGBA {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return svgunit.RGBA{}
	}
	i := 4 * (y*b.w + x)
	return svgunit.RGBA{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2], A: b.pix[i+3]}
}

// SetPixel overwrites the pixel, ignoring out of bounds coordinates.
func (b *Buffer) SetPixel(x, y int, c svgunit.RGBA) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	i := 4 * (y*b.w + x)
	b.pix[i] = c.R
	b.pix[i+1] = c.G
	b.pix[i+2] = c.B
	b.pix[i+3] = c.A
}

// BlendPixel composites the color over the existing pixel.
func (b *Buffer) BlendPixel(x, y int, c svgunit.RGBA) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h || c.A == 0 {
		return
	}
	b.SetPixel(x, y, svgunit.Blend(c, b.At(x, y)))
}

// BlendCoverage composites the color scaled by a coverage in [0, 1],
// the single entry point used by the fill and stroke passes.
func (b *Buffer) BlendCoverage(x, y int, c svgunit.RGBA, coverage float64) {
	if coverage <= 0 {
		return
	}
	if coverage > 1 {
		coverage = 1
	}
	c.A = uint8(float64(c.A)*coverage + 0.5)
	b.BlendPixel(x, y, c)
}

// Image copies the buffer into a standard library image. NRGBA shares
// the buffer's straight alpha convention.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.w, b.h))
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			c := b.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return img
}
