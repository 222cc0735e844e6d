package svgdom

import (
	"fmt"
	"math"
	"strings"

	"github.com/benoitkugler/svgrender/svgunit"
)

// Report is the result of structural validation. Errors block rendering;
// warnings are advisory and rendering proceeds with fallback behavior.
type Report struct {
	Errors   []string
	Warnings []string
}

// IsValid reports whether rendering may proceed.
func (r Report) IsValid() bool { return len(r.Errors) == 0 }

func (r *Report) errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks the document's structural sanity: hard errors (missing
// or non svg root, non positive viewport or viewBox dimensions) and
// advisory warnings (missing recommended attributes, negative dimensions,
// non numeric values on numeric attributes).
func (t *Tree) Validate() Report {
	var rep Report
	if t.root == -1 {
		rep.errorf("no root <svg> element found")
		return rep
	}
	root := t.At(t.root)
	if root.Tag != "svg" {
		rep.errorf("root element is not <svg>, found: <%s>", root.Tag)
	}

	if v, ok := root.Attrs["width"]; ok {
		if w := svgunit.Length(v, svgunit.LengthContext{}); w <= 0 {
			rep.errorf("invalid viewport width: %g", w)
		}
	}
	if v, ok := root.Attrs["height"]; ok {
		if h := svgunit.Length(v, svgunit.LengthContext{}); h <= 0 {
			rep.errorf("invalid viewport height: %g", h)
		}
	}
	if v, ok := root.Attrs["viewBox"]; ok {
		if vb, ok := ParseViewBox(v); ok {
			if vb[2] <= 0 {
				rep.errorf("invalid viewBox width: %g", vb[2])
			}
			if vb[3] <= 0 {
				rep.errorf("invalid viewBox height: %g", vb[3])
			}
		}
	}

	t.validateNode(t.root, &rep)
	return rep
}

// ParseViewBox reads the four viewBox floats. Returns ok=false when fewer
// than four numeric fields are present.
func ParseViewBox(value string) ([4]float64, bool) {
	fields := strings.FieldsFunc(value, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' || r == '\n' })
	var vb [4]float64
	if len(fields) < 4 {
		return vb, false
	}
	for i := 0; i < 4; i++ {
		num, unit := svgunit.ParseNumberUnit(fields[i])
		if unit != "" {
			return vb, false
		}
		vb[i] = num
	}
	return vb, true
}

var numericAttrs = []string{
	"x", "y", "width", "height", "cx", "cy", "r", "rx", "ry",
	"x1", "y1", "x2", "y2", "stroke-width", "opacity",
}

func (t *Tree) validateNode(n int, rep *Report) {
	node := t.At(n)
	switch node.Tag {
	case "rect":
		t.validateRect(node, rep)
	case "circle":
		t.validateCircle(node, rep)
	case "ellipse":
		if _, ok := node.Attrs["rx"]; !ok {
			if _, ok := node.Attrs["ry"]; !ok {
				rep.warnf("<ellipse> should have rx or ry")
			}
		}
	case "line":
		var missing []string
		for _, req := range []string{"x1", "y1", "x2", "y2"} {
			if _, ok := node.Attrs[req]; !ok {
				missing = append(missing, req)
			}
		}
		if len(missing) > 0 {
			rep.warnf("<line> missing attributes: %s", strings.Join(missing, ", "))
		}
	case "polyline", "polygon":
		if pts, ok := node.Attrs["points"]; !ok {
			rep.warnf("<%s> should have points attribute", node.Tag)
		} else if len(strings.TrimSpace(pts)) < 3 {
			rep.warnf("<%s> has invalid points attribute", node.Tag)
		}
	case "path":
		if d, ok := node.Attrs["d"]; !ok {
			rep.warnf("<path> should have 'd' (path data) attribute")
		} else if strings.TrimSpace(d) == "" {
			rep.warnf("<path> has empty 'd' attribute")
		}
	}

	for _, attr := range numericAttrs {
		value, ok := node.Attrs[attr]
		if !ok {
			continue
		}
		if !svgunit.IsNumber(value) {
			rep.warnf("<%s> has non-numeric %s value: %s", node.Tag, attr, value)
			continue
		}
		if num, _ := svgunit.ParseNumberUnit(value); math.IsNaN(num) || math.IsInf(num, 0) {
			rep.warnf("<%s> has invalid %s value: %s", node.Tag, attr, value)
		}
	}

	for _, c := range node.Children {
		t.validateNode(c, rep)
	}
}

func (t *Tree) validateRect(node *Node, rep *Report) {
	_, hasW := node.Attrs["width"]
	_, hasH := node.Attrs["height"]
	if !hasW && !hasH {
		rep.warnf("<rect> should have width or height")
	}
	if hasW {
		if w := svgunit.Length(node.Attrs["width"], svgunit.LengthContext{}); w < 0 {
			rep.warnf("<rect> has negative width: %g", w)
		}
	}
	if hasH {
		if h := svgunit.Length(node.Attrs["height"], svgunit.LengthContext{}); h < 0 {
			rep.warnf("<rect> has negative height: %g", h)
		}
	}
}

func (t *Tree) validateCircle(node *Node, rep *Report) {
	v, ok := node.Attrs["r"]
	if !ok {
		rep.warnf("<circle> should have radius (r)")
		return
	}
	if r := svgunit.Length(v, svgunit.LengthContext{}); r < 0 {
		rep.warnf("<circle> has negative radius: %g", r)
	}
}
