package svgrender

import (
	"errors"
	"math"
	"strings"

	"github.com/benoitkugler/svgrender/svggeom"
	"github.com/benoitkugler/svgrender/svgraster"
	"github.com/benoitkugler/svgrender/svgunit"
)

// drawContext is the per nesting level state of the walk. It is passed
// by value: descending into a subtree works on a copy, so mutations
// never leak to siblings or ancestors.
type drawContext struct {
	fill       svgunit.RGB
	fillNone   bool
	stroke     svgunit.RGB
	strokeNone bool

	opacity       float64
	fillOpacity   float64
	strokeOpacity float64

	strokeWidth float64 // document units
	cap         svgraster.CapMode
	join        svgraster.JoinMode
	miterLimit  float64
	dashes      []float64 // document units
	dashOffset  float64

	evenOdd bool

	transform svggeom.Matrix2D // device space, applied after the viewport
	clip      svgraster.Clip   // shared, read only once built
}

func rootContext() drawContext {
	return drawContext{
		fillNone:      false,
		strokeNone:    true,
		opacity:       1,
		fillOpacity:   1,
		strokeOpacity: 1,
		strokeWidth:   1,
		miterLimit:    4,
		transform:     svggeom.Identity,
	}
}

// paintColor resolves a fill or stroke attribute on the node, following
// inheritance and defaults. currentColor defers to the color attribute.
// ok is false for the "none" sentinel: do not paint at all.
func (r *Renderer) paintColor(n int, attr string) (svgunit.RGB, bool) {
	v := r.tree.AttrDefault(n, attr)
	if strings.EqualFold(strings.TrimSpace(v), "currentcolor") {
		v = r.tree.AttrDefault(n, "color")
	}
	return svgunit.ParseColor(v)
}

// opacityAttr resolves an opacity like attribute, clamped to [0, 1].
func (r *Renderer) opacityAttr(n int, attr string) float64 {
	v := r.tree.AttrDefault(n, attr)
	if !svgunit.IsNumber(v) {
		return 1
	}
	num, _ := svgunit.ParseNumberUnit(v)
	return math.Max(0, math.Min(1, num))
}

// applyPaintAttributes refreshes the context's paint state from the
// node, through attribute inheritance and the defaults table.
func (r *Renderer) applyPaintAttributes(n int, ctx *drawContext) {
	ctx.fill, ctx.fillNone = colorOrNone(r.paintColor(n, "fill"))
	ctx.stroke, ctx.strokeNone = colorOrNone(r.paintColor(n, "stroke"))
	ctx.opacity = r.opacityAttr(n, "opacity")
	ctx.fillOpacity = r.opacityAttr(n, "fill-opacity")
	ctx.strokeOpacity = r.opacityAttr(n, "stroke-opacity")

	ctx.strokeWidth = svgunit.Length(r.tree.AttrDefault(n, "stroke-width"), r.view.UserContext())

	switch r.tree.AttrDefault(n, "stroke-linecap") {
	case "round":
		ctx.cap = svgraster.CapRound
	case "square":
		ctx.cap = svgraster.CapSquare
	default:
		ctx.cap = svgraster.CapButt
	}
	switch r.tree.AttrDefault(n, "stroke-linejoin") {
	case "round":
		ctx.join = svgraster.JoinRound
	case "bevel":
		ctx.join = svgraster.JoinBevel
	default:
		ctx.join = svgraster.JoinMiter
	}
	if ml := r.tree.AttrDefault(n, "stroke-miterlimit"); svgunit.IsNumber(ml) {
		if num, _ := svgunit.ParseNumberUnit(ml); num >= 1 {
			ctx.miterLimit = num
		}
	}

	dash := r.tree.AttrDefault(n, "stroke-dasharray")
	if dash == "" || dash == "none" {
		ctx.dashes = nil
	} else {
		ctx.dashes = svggeom.ParseNumberList(dash)
	}
	ctx.dashOffset = svgunit.Length(r.tree.AttrDefault(n, "stroke-dashoffset"), r.view.UserContext())

	ctx.evenOdd = r.tree.AttrDefault(n, "fill-rule") == "evenodd"
}

func colorOrNone(c svgunit.RGB, painted bool) (svgunit.RGB, bool) {
	return c, !painted
}

var errBadTransform = errors.New("malformed transform attribute")

// applyTransform parses a transform attribute by splitting the function
// list on ')' then '(', right multiplying each function into m. Angles
// are degrees. The accumulated matrix acts on viewport mapped
// coordinates: translation components (translate, matrix e/f) are device
// distances, and only a rotate center is premapped through the viewBox
// scale and offset, so translate(tx,ty) and matrix(1,0,0,1,tx,ty) stay
// equivalent.
func (r *Renderer) applyTransform(m svggeom.Matrix2D, value string) (svggeom.Matrix2D, error) {
	for _, part := range strings.Split(value, ")") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		nameArgs := strings.Split(part, "(")
		if len(nameArgs) != 2 {
			return m, errBadTransform
		}
		name := strings.ToLower(strings.TrimSpace(nameArgs[0]))
		args := svggeom.ParseNumberList(nameArgs[1])
		var err error
		m, err = r.applyTransformFunc(m, name, args)
		if err != nil {
			return m, err
		}
	}
	return m, nil
}

func (r *Renderer) applyTransformFunc(m svggeom.Matrix2D, name string, args []float64) (svggeom.Matrix2D, error) {
	switch name {
	case "translate":
		switch len(args) {
		case 1:
			return m.Translate(args[0], 0), nil
		case 2:
			return m.Translate(args[0], args[1]), nil
		}
	case "scale":
		switch len(args) {
		case 1:
			return m.Scale(args[0], args[0]), nil
		case 2:
			return m.Scale(args[0], args[1]), nil
		}
	case "rotate":
		switch len(args) {
		case 1:
			return m.Rotate(args[0] * math.Pi / 180), nil
		case 3:
			cx, cy := r.view.TransformPoint(args[1], args[2])
			return m.RotateAbout(args[0]*math.Pi/180, cx, cy), nil
		}
	case "skewx":
		if len(args) == 1 {
			return m.SkewX(args[0] * math.Pi / 180), nil
		}
	case "skewy":
		if len(args) == 1 {
			return m.SkewY(args[0] * math.Pi / 180), nil
		}
	case "matrix":
		if len(args) == 6 {
			return m.Mult(svggeom.Matrix2D{
				A: args[0], B: args[1], C: args[2],
				D: args[3], E: args[4], F: args[5]}), nil
		}
	}
	return m, errBadTransform
}
