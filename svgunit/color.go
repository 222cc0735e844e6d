package svgunit

import (
	"strconv"
	"strings"
)

// RGB is a plain opaque color; opacity is tracked separately and only
// combined into an RGBA at compositing time.
type RGB struct {
	R, G, B uint8
}

// RGBA is a straight (non premultiplied) color with alpha, as stored in
// the output buffer.
type RGBA struct {
	R, G, B, A uint8
}

// WithOpacity attaches an opacity in [0,1] to a plain color.
func (c RGB) WithOpacity(opacity float64) RGBA {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	return RGBA{c.R, c.G, c.B, uint8(opacity * 255)}
}

// ParseColor resolves a color value. The second return is false for the
// "none" sentinel (and for empty values), meaning "do not paint": this is
// distinct from a fully transparent color. Unrecognized non-empty values
// fall back to black. "currentColor" must be substituted by the caller
// before calling ParseColor.
func ParseColor(value string) (RGB, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == "none" {
		return RGB{}, false
	}
	if c, ok := namedColors[value]; ok {
		return c, true
	}
	if strings.HasPrefix(value, "#") {
		return parseHexColor(value), true
	}
	if strings.HasPrefix(value, "rgb") {
		return parseRGBColor(value), true
	}
	return RGB{}, true // unknown keyword: black
}

// parseHexColor supports the 3 digit (each digit duplicated), 6 digit and
// 8 digit forms; the trailing alpha digits of the 8 digit form are ignored.
func parseHexColor(value string) RGB {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(hex) {
	case 3:
		r := hexDigit(hex[0])
		g := hexDigit(hex[1])
		b := hexDigit(hex[2])
		return RGB{r * 17, g * 17, b * 17}
	case 6, 8:
		r := hexDigit(hex[0])<<4 | hexDigit(hex[1])
		g := hexDigit(hex[2])<<4 | hexDigit(hex[3])
		b := hexDigit(hex[4])<<4 | hexDigit(hex[5])
		return RGB{r, g, b}
	}
	return RGB{}
}

func hexDigit(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// parseRGBColor reads rgb()/rgba() comma separated channels, clamped to
// [0,255]. A fourth channel, if present, is ignored (opacity is carried by
// the separate *-opacity attributes).
func parseRGBColor(value string) RGB {
	open := strings.IndexByte(value, '(')
	close_ := strings.IndexByte(value, ')')
	if open == -1 || close_ == -1 || close_ < open {
		return RGB{}
	}
	channels := strings.Split(value[open+1:close_], ",")
	if len(channels) < 3 {
		return RGB{}
	}
	var out [3]uint8
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(strings.TrimSpace(channels[i]), 64)
		if err != nil {
			return RGB{}
		}
		v := int(f)
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		out[i] = uint8(v)
	}
	return RGB{out[0], out[1], out[2]}
}
