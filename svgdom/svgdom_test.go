package svgdom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFragments(t *testing.T) {
	frags := SplitFragments(`<?xml version="1.0"?>
<!-- a comment <rect/> inside -->
<svg width="10"> <rect x="1"/> </svg>`)
	require.Len(t, frags, 4)
	assert.Equal(t, `<?xml version="1.0"?>`, frags[0])
	assert.Equal(t, `<svg width="10">`, frags[1])
	assert.Equal(t, `<rect x="1"/>`, frags[2])
	assert.Equal(t, `</svg>`, frags[3])
}

func TestFragmentPredicates(t *testing.T) {
	assert.True(t, IsSelfClosing(`<rect x="1"/>`))
	assert.True(t, IsSelfClosing("<rect/>  "))
	assert.False(t, IsSelfClosing(`<g>`))
	assert.True(t, IsClosing("</g>"))
	assert.False(t, IsClosing("<g>"))

	assert.Equal(t, "svg", TagOf(`<svg width="10">`))
	assert.Equal(t, "g", TagOf("</g>"))
	assert.Equal(t, "rect", TagOf("<rect/>"))
	assert.Equal(t, "xml", TagOf(`<?xml version="1.0"?>`))
}

func TestParseAttributes(t *testing.T) {
	attrs := ParseAttributes(`<rect x="1" y='2' fill="red"/>`)
	assert.Equal(t, map[string]string{"x": "1", "y": "2", "fill": "red"}, attrs)

	// backslash escapes the next character literally
	attrs = ParseAttributes(`<text label="say \"hi\"">`)
	assert.Equal(t, `say "hi"`, attrs["label"])

	// an unterminated trailing value is kept
	attrs = ParseAttributes(`<rect x="1" y="2`)
	assert.Equal(t, "1", attrs["x"])
	assert.Equal(t, "2", attrs["y"])

	// closing fragments carry no attributes
	assert.Empty(t, ParseAttributes(`</rect>`))
	// nor does a bare tag
	assert.Empty(t, ParseAttributes(`<g>`))
}

func buildTree(t *testing.T, doc string) *Tree {
	t.Helper()
	return Build(SplitFragments(doc))
}

func TestBuildTree(t *testing.T) {
	tree := buildTree(t, `<?xml version="1.0"?>
<svg width="100" height="100">
  <g id="layer">
    <rect x="1" width="10" height="10"/>
    <circle cx="5" cy="5" r="2"/>
  </g>
  <line x1="0" y1="0" x2="9" y2="9"/>
</svg>`)

	require.NotEqual(t, -1, tree.Root())
	root := tree.At(tree.Root())
	assert.Equal(t, "svg", root.Tag)
	require.Len(t, root.Children, 2)

	g := tree.At(root.Children[0])
	assert.Equal(t, "g", g.Tag)
	require.Len(t, g.Children, 2)
	assert.Equal(t, "rect", tree.At(g.Children[0]).Tag)
	assert.Equal(t, "circle", tree.At(g.Children[1]).Tag)
	assert.Equal(t, "line", tree.At(root.Children[1]).Tag)

	// prolog fragments are captured as metadata
	assert.Contains(t, tree.Metadata, "xml")
}

func TestBuildMismatchedClose(t *testing.T) {
	// the </span> close does not match <g>: the cursor must not move,
	// so the following rect stays inside the group
	tree := buildTree(t, `<svg><g></span><rect width="1" height="1"/></g></svg>`)
	root := tree.At(tree.Root())
	require.Len(t, root.Children, 1)
	g := tree.At(root.Children[0])
	require.Len(t, g.Children, 1)
	assert.Equal(t, "rect", tree.At(g.Children[0]).Tag)
}

func TestBuildNoRoot(t *testing.T) {
	tree := buildTree(t, `<rect width="1" height="1"/>`)
	assert.Equal(t, -1, tree.Root())
	rep := tree.Validate()
	assert.False(t, rep.IsValid())
}

func TestAttributeInheritance(t *testing.T) {
	tree := buildTree(t, `<svg fill="green" x="7"><g stroke="blue"><rect fill="red"/><circle/></g></svg>`)
	root := tree.At(tree.Root())
	g := tree.At(root.Children[0])
	rect, circle := g.Children[0], g.Children[1]

	// own value wins
	v, ok := tree.Attr(rect, "fill")
	assert.True(t, ok)
	assert.Equal(t, "red", v)

	// inherited through g and svg
	v, _ = tree.Attr(circle, "fill")
	assert.Equal(t, "green", v)
	v, _ = tree.Attr(circle, "stroke")
	assert.Equal(t, "blue", v)

	// geometric attributes do not inherit
	_, ok = tree.Attr(rect, "x")
	assert.False(t, ok)

	// defaults as last resort
	assert.Equal(t, "1", tree.AttrDefault(circle, "opacity"))
	assert.Equal(t, "nonzero", tree.AttrDefault(circle, "fill-rule"))
}

func TestFindByID(t *testing.T) {
	tree := buildTree(t, `<svg><g id="a"><rect id="b"/></g></svg>`)
	n, ok := tree.FindByID("b")
	require.True(t, ok)
	assert.Equal(t, "rect", tree.At(n).Tag)
	_, ok = tree.FindByID("missing")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tree := buildTree(t, `<svg width="100" height="100"><rect width="10" height="10"/></svg>`)
	rep := tree.Validate()
	assert.True(t, rep.IsValid())
	assert.Empty(t, rep.Warnings)

	tree = buildTree(t, `<svg width="-5"><circle/><rect width="abc"/></svg>`)
	rep = tree.Validate()
	assert.False(t, rep.IsValid())
	// missing radius and non numeric width are advisory
	assert.NotEmpty(t, rep.Warnings)

	tree = buildTree(t, `<svg viewBox="0 0 0 100"/>`)
	rep = tree.Validate()
	assert.False(t, rep.IsValid())
}

func TestParseViewBox(t *testing.T) {
	vb, ok := ParseViewBox("0 0 100 50")
	require.True(t, ok)
	assert.Equal(t, [4]float64{0, 0, 100, 50}, vb)

	vb, ok = ParseViewBox("-10,5 20,30")
	require.True(t, ok)
	assert.Equal(t, [4]float64{-10, 5, 20, 30}, vb)

	_, ok = ParseViewBox("0 0 100")
	assert.False(t, ok)
}

func TestReadFile(t *testing.T) {
	tree, err := ReadFile("testdata/diagram.svg")
	require.NoError(t, err)
	require.NotEqual(t, -1, tree.Root())
	assert.True(t, tree.Validate().IsValid())

	var sb strings.Builder
	tree.PrintTree(&sb)
	assert.Contains(t, sb.String(), "- svg")
	assert.Contains(t, sb.String(), "ellipse")
}
