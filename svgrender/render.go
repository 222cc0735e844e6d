package svgrender

import (
	"fmt"
	"image"
	"strings"

	"github.com/benoitkugler/svgrender/svgdom"
	"github.com/benoitkugler/svgrender/svggeom"
	"github.com/benoitkugler/svgrender/svgraster"
	"github.com/benoitkugler/svgrender/svgunit"
)

// Options tunes the output of a Renderer.
type Options struct {
	// Width and Height override the document size when positive; the
	// viewBox mapping is recomputed to fit.
	Width, Height int
	// Background is the initial buffer color. The zero value paints on
	// opaque white; set Transparent for a fully clear buffer instead.
	Background svgunit.RGBA
	// Transparent starts from a zero alpha buffer, overriding Background.
	Transparent bool
	// AntiAlias enables coverage based edge smoothing.
	AntiAlias bool
}

// Renderer rasterizes one document. It owns its buffer and walk state:
// distinct renderers may run concurrently, one renderer may not.
type Renderer struct {
	tree   *svgdom.Tree
	view   Viewport
	report svgdom.Report
	opts   Options
}

// New validates the document and prepares the viewport mapping.
// Structural errors (no root, non positive dimensions) are returned as
// an error; advisory warnings are kept on the Report.
func New(tree *svgdom.Tree, opts Options) (*Renderer, error) {
	r := &Renderer{tree: tree, opts: opts, report: tree.Validate()}
	if !r.report.IsValid() {
		return nil, fmt.Errorf("invalid document: %s", strings.Join(r.report.Errors, "; "))
	}
	r.view = NewViewport(tree)
	if opts.Width > 0 || opts.Height > 0 {
		r.view.Override(float64(opts.Width), float64(opts.Height),
			tree.AttrDefault(tree.Root(), "preserveAspectRatio"))
	}
	if opts.Transparent {
		r.opts.Background = svgunit.RGBA{}
	} else if opts.Background == (svgunit.RGBA{}) {
		r.opts.Background = svgunit.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return r, nil
}

// Report returns the validation outcome computed by New, including the
// advisory warnings rendering works around.
func (r *Renderer) Report() svgdom.Report { return r.report }

// Viewport exposes the document to device mapping.
func (r *Renderer) Viewport() Viewport { return r.view }

// Render rasterizes the whole document into a fresh buffer. Rendering
// is idempotent: each call starts from the background color.
func (r *Renderer) Render() *svgraster.Buffer {
	buf := svgraster.NewBuffer(int(r.view.Width+0.5), int(r.view.Height+0.5), r.opts.Background)
	r.walk(buf, r.tree.Root(), rootContext(), make(map[int]bool))
	return buf
}

// Image renders and converts to a standard library image.
func (r *Renderer) Image() *image.NRGBA {
	return r.Render().Image()
}

// walk renders the node and its subtree. The context is a copy: any
// state change below stays below. active holds the use targets currently
// being expanded, to cut reference cycles.
func (r *Renderer) walk(buf *svgraster.Buffer, n int, ctx drawContext, active map[int]bool) {
	node := r.tree.At(n)

	// definition containers are only referenced, never painted
	if node.Tag == "defs" || node.Tag == "clipPath" {
		return
	}
	if r.tree.AttrDefault(n, "display") == "none" {
		return // removed from rendering entirely, children included
	}

	if v, ok := node.Attrs["transform"]; ok {
		m, err := r.applyTransform(ctx.transform, v)
		if err != nil {
			return // malformed transform: skip the element
		}
		ctx.transform = m
	}

	r.applyPaintAttributes(n, &ctx)

	// the clip is built where the attribute appears and shared down the
	// subtree through the context, so inheritance is not re-resolved
	if v, ok := r.tree.AttrLocal(n, "clip-path"); ok {
		if clip, ok := r.resolveClipPath(v, ctx.transform); ok {
			ctx.clip = svgraster.IntersectClips(ctx.clip, clip)
		}
		// an unknown clip target clips nothing
	}

	// hidden elements keep their children: visibility is overridable
	visible := r.tree.AttrDefault(n, "visibility") != "hidden"

	kind := tagKinds[node.Tag]
	switch kind {
	case shapeUse:
		if visible {
			r.renderUse(buf, n, ctx, active)
		}
	case shapeGroup, shapeUnknown:
		for _, c := range node.Children {
			r.walk(buf, c, ctx, active)
		}
	default:
		if visible {
			r.renderShape(buf, node, kind, ctx)
		}
	}
}

// renderShape rasterizes one drawable element: fill first, stroke on
// top. Failures (degenerate or malformed geometry) skip the element.
func (r *Renderer) renderShape(buf *svgraster.Buffer, node *svgdom.Node, kind shapeKind, ctx drawContext) {
	path := r.shapePathOf(node, kind)
	if path == nil {
		return
	}
	combined := ctx.transform.Mult(r.view.Matrix())
	var outline svggeom.Outline

	// lines and open polylines have no interior
	fillable := kind != shapeLine
	if fillable && !ctx.fillNone {
		c := ctx.fill.WithOpacity(ctx.opacity * ctx.fillOpacity)
		if cx, cy, rx, ry, ok := r.ellipseGeometry(node, kind, combined); ok {
			svgraster.FillEllipse(buf, cx, cy, rx, ry, c, ctx.clip, r.opts.AntiAlias)
		} else {
			outline = path.Flatten(combined, svggeom.FlattenTolerance)
			svgraster.FillPolygon(buf, outline, c, ctx.evenOdd, ctx.clip, r.opts.AntiAlias)
		}
	}

	if !ctx.strokeNone && ctx.strokeWidth > 0 {
		if outline == nil {
			outline = path.Flatten(combined, svggeom.FlattenTolerance)
		}
		// stroke width and dashes are document lengths: scale them by
		// the mean of the axis factors
		scale := combined.MeanScale()
		opts := svgraster.StrokeOptions{
			Width:      ctx.strokeWidth * scale,
			Cap:        ctx.cap,
			Join:       ctx.join,
			MiterLimit: ctx.miterLimit,
			DashOffset: ctx.dashOffset * scale,
		}
		for _, d := range ctx.dashes {
			opts.Dashes = append(opts.Dashes, d*scale)
		}
		c := ctx.stroke.WithOpacity(ctx.opacity * ctx.strokeOpacity)
		svgraster.StrokeOutline(buf, outline, opts, c, ctx.clip, r.opts.AntiAlias)
	}
}

// renderUse expands a use element: resolve the referenced node, shift by
// the x/y attributes and recurse. Unresolvable references are no-ops,
// and a target already being expanded is skipped to break cycles.
func (r *Renderer) renderUse(buf *svgraster.Buffer, n int, ctx drawContext, active map[int]bool) {
	node := r.tree.At(n)
	href, ok := node.Attrs["href"]
	if !ok {
		href, ok = node.Attrs["xlink:href"]
	}
	if !ok || !strings.HasPrefix(href, "#") {
		return
	}
	target, found := r.tree.FindByID(strings.TrimPrefix(href, "#"))
	if !found || active[target] {
		return
	}

	// the shift composes like a translate transform: device distances
	x := r.length(node, "x", 0)
	y := r.length(node, "y", 0)
	if x != 0 || y != 0 {
		ctx.transform = ctx.transform.Translate(x, y)
	}

	active[target] = true
	r.walk(buf, target, ctx, active)
	delete(active, target)
}

// resolveClipPath builds the device space clip region of a
// clip-path="url(#id)" value: each shape of the referenced clipPath
// element is flattened with the current transform into its own region,
// carrying its own clip-rule; several shapes form a union. An axis
// aligned sharp cornered rectangle stays an exact rectangle test.
func (r *Renderer) resolveClipPath(value string, transform svggeom.Matrix2D) (svgraster.Clip, bool) {
	id, ok := parseURLRef(value)
	if !ok {
		return nil, false
	}
	target, found := r.tree.FindByID(id)
	if !found {
		return nil, false
	}
	clipNode := r.tree.At(target)
	if clipNode.Tag != "clipPath" {
		return nil, false
	}
	combined := transform.Mult(r.view.Matrix())

	var clips []svgraster.Clip
	for _, c := range clipNode.Children {
		child := r.tree.At(c)
		path := r.shapePathOf(child, tagKinds[child.Tag])
		if path == nil {
			continue
		}
		outline := path.Flatten(combined, svggeom.FlattenTolerance)
		if outline.IsEmpty() {
			continue
		}
		// rounded corners disqualify the cheap bounds test
		if child.Tag == "rect" && combined.IsAxisAligned() &&
			r.length(child, "rx", -1) <= 0 && r.length(child, "ry", -1) <= 0 {
			if minX, minY, maxX, maxY, ok := outline.Bounds(); ok {
				clips = append(clips, svgraster.ClipRect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY})
				continue
			}
		}
		clips = append(clips, svgraster.ClipPolygon{
			Outline: outline,
			EvenOdd: r.tree.AttrDefault(c, "clip-rule") == "evenodd",
		})
	}
	switch len(clips) {
	case 0:
		return nil, false
	case 1:
		return clips[0], true
	}
	return svgraster.ClipUnion{Members: clips}, true
}

// parseURLRef extracts the id of a url(#id) reference.
func parseURLRef(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "url(") || !strings.HasSuffix(value, ")") {
		return "", false
	}
	ref := strings.TrimSpace(value[len("url(") : len(value)-1])
	ref = strings.Trim(ref, `'"`)
	if !strings.HasPrefix(ref, "#") {
		return "", false
	}
	return strings.TrimPrefix(ref, "#"), true
}
