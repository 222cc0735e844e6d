package svgunit

// Blend composites the foreground over the background ("over" operator,
// straight alpha). An opaque background uses the simpler straight blend;
// otherwise channels are renormalized by the output alpha.
func Blend(fg, bg RGBA) RGBA {
	fgA := float64(fg.A) / 255
	bgA := float64(bg.A) / 255

	outA := fgA + bgA*(1-fgA)
	if outA == 0 {
		return RGBA{}
	}

	var r, g, b float64
	if bgA >= 1 {
		r = float64(fg.R)*fgA + float64(bg.R)*(1-fgA)
		g = float64(fg.G)*fgA + float64(bg.G)*(1-fgA)
		b = float64(fg.B)*fgA + float64(bg.B)*(1-fgA)
	} else {
		r = (float64(fg.R)*fgA + float64(bg.R)*bgA*(1-fgA)) / outA
		g = (float64(fg.G)*fgA + float64(bg.G)*bgA*(1-fgA)) / outA
		b = (float64(fg.B)*fgA + float64(bg.B)*bgA*(1-fgA)) / outA
	}
	// round, not truncate: channels sit right at .999 boundaries
	return RGBA{uint8(r + 0.5), uint8(g + 0.5), uint8(b + 0.5), uint8(outA*255 + 0.5)}
}
