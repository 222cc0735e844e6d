package svgdom

import (
	"fmt"
	"io"
	"strings"
)

// Node is one element of the document tree. Children own their subtree
// through the arena; Parent is a non owning back reference used only for
// attribute inheritance lookups.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Parent   int // index into the arena, -1 for the root
	Children []int
}

// Tree is an arena of nodes. Index 0 is the root element when present;
// fragments seen before the root are kept in Metadata, keyed by tag.
type Tree struct {
	nodes    []Node
	root     int // -1 when the document has no root element
	Metadata map[string]string

	ids map[string]int // lazy id index
}

// Build assembles the tree from a fragment list. The first "svg" fragment
// becomes the root; preceding fragments (prolog, doctype) land in Metadata.
// A closing fragment moves the cursor to the parent only when its tag
// matches the open element; mismatches leave the cursor in place.
func Build(fragments []string) *Tree {
	t := &Tree{root: -1, Metadata: make(map[string]string)}
	i := 0
	for ; i < len(fragments); i++ {
		tag := TagOf(fragments[i])
		if tag == "svg" {
			t.root = t.add(fragments[i], -1)
			i++
			break
		}
		t.Metadata[tag] = fragments[i]
	}
	if t.root == -1 {
		return t
	}

	cursor := t.root
	for ; i < len(fragments); i++ {
		if cursor == -1 {
			// the root was closed; trailing fragments are ignored
			return t
		}
		f := fragments[i]
		if IsClosing(f) {
			if t.nodes[cursor].Tag == TagOf(f) {
				cursor = t.nodes[cursor].Parent
			}
			continue
		}
		if IsSelfClosing(f) {
			t.add(f, cursor)
		} else {
			cursor = t.add(f, cursor)
		}
	}
	return t
}

func (t *Tree) add(fragment string, parent int) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, Node{
		Tag:    TagOf(fragment),
		Attrs:  ParseAttributes(fragment),
		Parent: parent,
	})
	if parent != -1 {
		t.nodes[parent].Children = append(t.nodes[parent].Children, idx)
	}
	return idx
}

// Root returns the index of the root element, or -1 when absent.
func (t *Tree) Root() int { return t.root }

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// At returns the node at the given arena index.
func (t *Tree) At(i int) *Node { return &t.nodes[i] }

// inheritedAttrs is the fixed set of paint related attributes resolved
// through ancestors.
var inheritedAttrs = map[string]bool{
	"fill": true, "stroke": true, "stroke-width": true,
	"stroke-linecap": true, "stroke-linejoin": true,
	"stroke-miterlimit": true, "stroke-dasharray": true,
	"stroke-dashoffset": true,
	"opacity":           true, "fill-opacity": true, "stroke-opacity": true,
	"font-family": true, "font-size": true, "font-weight": true,
	"font-style": true, "text-anchor": true,
	"color": true, "visibility": true, "display": true,
	"clip-path": true, "mask": true, "filter": true,
}

// DefaultAttrs supplies last resort values when an attribute is absent
// even after inheritance.
var DefaultAttrs = map[string]string{
	"fill":                "black",
	"stroke":              "none",
	"stroke-width":        "1",
	"stroke-linecap":      "butt",
	"stroke-linejoin":     "miter",
	"stroke-miterlimit":   "4",
	"stroke-dasharray":    "none",
	"stroke-dashoffset":   "0",
	"opacity":             "1",
	"fill-opacity":        "1",
	"stroke-opacity":      "1",
	"fill-rule":           "nonzero",
	"clip-rule":           "nonzero",
	"visibility":          "visible",
	"display":             "inline",
	"color":               "black",
	"font-family":         "serif",
	"font-size":           "12",
	"font-weight":         "normal",
	"font-style":          "normal",
	"text-anchor":         "start",
	"preserveAspectRatio": "xMidYMid meet",
}

// AttrLocal looks up an attribute on the node itself, without inheritance.
func (t *Tree) AttrLocal(n int, name string) (string, bool) {
	v, ok := t.nodes[n].Attrs[name]
	return v, ok
}

// Attr resolves an attribute with inheritance: the node's own value wins,
// then (for inheritable names only) the nearest ancestor defining it.
func (t *Tree) Attr(n int, name string) (string, bool) {
	if v, ok := t.nodes[n].Attrs[name]; ok {
		return v, true
	}
	if !inheritedAttrs[name] {
		return "", false
	}
	for p := t.nodes[n].Parent; p != -1; p = t.nodes[p].Parent {
		if v, ok := t.nodes[p].Attrs[name]; ok {
			return v, true
		}
	}
	return "", false
}

// AttrDefault resolves an attribute with inheritance, falling back to the
// defaults table, then to "".
func (t *Tree) AttrDefault(n int, name string) string {
	if v, ok := t.Attr(n, name); ok {
		return v
	}
	return DefaultAttrs[name]
}

// FindByID returns the arena index of the node carrying the given id.
func (t *Tree) FindByID(id string) (int, bool) {
	if t.ids == nil {
		t.ids = make(map[string]int)
		for i := range t.nodes {
			if v, ok := t.nodes[i].Attrs["id"]; ok {
				if _, seen := t.ids[v]; !seen {
					t.ids[v] = i
				}
			}
		}
	}
	n, ok := t.ids[id]
	return n, ok
}

// PrintTree writes an indented outline of the tree, showing up to three
// attributes per node.
func (t *Tree) PrintTree(w io.Writer) {
	if t.root == -1 {
		fmt.Fprintln(w, "(no root element)")
		return
	}
	t.printNode(w, t.root, 0)
}

func (t *Tree) printNode(w io.Writer, n, level int) {
	node := &t.nodes[n]
	var attrs []string
	for k, v := range node.Attrs {
		attrs = append(attrs, k+"="+v)
		if len(attrs) == 3 {
			break
		}
	}
	suffix := ""
	if len(node.Attrs) > 3 {
		suffix = "..."
	}
	fmt.Fprintf(w, "%s- %s (%s%s)\n", strings.Repeat("    ", level), node.Tag, strings.Join(attrs, ", "), suffix)
	for _, c := range node.Children {
		t.printNode(w, c, level+1)
	}
}
