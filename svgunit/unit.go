// Resolves the textual units of the SVG subset: lengths, angles
// and colors, plus the alpha compositing math used by the rasterizer.
package svgunit

import (
	"math"
	"strconv"
	"strings"
)

// Fixed ratios to CSS pixels, at 96 px per inch.
const (
	pxPerInch = 96.0
	pxPerCm   = pxPerInch / 2.54
	pxPerMm   = pxPerCm / 10
	pxPerPt   = pxPerInch / 72.0
	pxPerPc   = pxPerPt * 12

	defaultFontSize = 16.0
)

// LengthContext carries the ambient values relative units resolve against.
// The zero value disables percentage resolution (values pass through) and
// uses the 16px font size fallback.
type LengthContext struct {
	ViewportW, ViewportH float64
	FontSize             float64
}

// ParseNumberUnit splits a value into its numeric part and unit suffix.
// The number accepts an optional sign, decimal point and exponent; the
// suffix may only contain letters or '%'. Unparseable values yield (0, "").
func ParseNumberUnit(value string) (float64, string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, ""
	}
	cut := numberPrefix(value)
	if cut == 0 {
		return 0, ""
	}
	num, err := strconv.ParseFloat(value[:cut], 64)
	if err != nil {
		return 0, ""
	}
	unit := strings.TrimSpace(value[cut:])
	for i := 0; i < len(unit); i++ {
		c := unit[i]
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !isLetter && c != '%' {
			return 0, ""
		}
	}
	return num, unit
}

// IsNumber reports whether the value parses as a number with an optional
// unit suffix, distinguishing a genuine 0 from the parser's failure value.
func IsNumber(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	cut := numberPrefix(value)
	if cut == 0 {
		return false
	}
	if _, err := strconv.ParseFloat(value[:cut], 64); err != nil {
		return false
	}
	unit := strings.TrimSpace(value[cut:])
	for i := 0; i < len(unit); i++ {
		c := unit[i]
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !isLetter && c != '%' {
			return false
		}
	}
	return true
}

// numberPrefix returns the length of the float literal starting the string.
func numberPrefix(s string) int {
	i, digits := 0, 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	return i
}

// Length converts a textual length to pixels. Percentages resolve against
// the mean of the viewport dimensions. Unparseable values normalize to 0.
func Length(value string, ctx LengthContext) float64 {
	num, unit := ParseNumberUnit(value)
	switch strings.ToLower(unit) {
	case "", "px":
		return num
	case "pt":
		return num * pxPerPt
	case "pc":
		return num * pxPerPc
	case "in":
		return num * pxPerInch
	case "cm":
		return num * pxPerCm
	case "mm":
		return num * pxPerMm
	case "em":
		return num * fontSizeOf(ctx)
	case "ex":
		return num * fontSizeOf(ctx) * 0.5
	case "%":
		if ctx.ViewportW > 0 || ctx.ViewportH > 0 {
			return num / 100 * (ctx.ViewportW + ctx.ViewportH) / 2
		}
		return num
	}
	return num
}

func fontSizeOf(ctx LengthContext) float64 {
	if ctx.FontSize > 0 {
		return ctx.FontSize
	}
	return defaultFontSize
}

// Angle converts a textual angle to degrees.
func Angle(value string) float64 {
	num, unit := ParseNumberUnit(value)
	switch strings.ToLower(unit) {
	case "", "deg":
		return num
	case "rad":
		return num * 180 / math.Pi
	case "grad":
		return num * 0.9
	case "turn":
		return num * 360
	case "%":
		return num / 100 * 360
	}
	return num
}
