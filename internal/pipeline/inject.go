package pipeline

import (
	"strings"

	"github.com/alnah/go-assetpath"
)

// SlotAttr marks the element whose children are replaced by page content.
const SlotAttr = "data-slot"

// FillSlot replaces the children of every element carrying data-slot=name
// with content. It reports whether any slot was found.
func FillSlot(tree assetpath.Node, name string, content ...assetpath.Node) (assetpath.Node, bool) {
	return mapElements(tree, func(el *assetpath.Element) (*assetpath.Element, bool) {
		if v, ok := el.Get(SlotAttr); !ok || v != name {
			return el, false
		}
		return &assetpath.Element{Tag: el.Tag, Attrs: el.Attrs, Children: content}, true
	})
}

// SetTitle replaces the text of every <title> element.
func SetTitle(tree assetpath.Node, title string) (assetpath.Node, bool) {
	return mapElements(tree, func(el *assetpath.Element) (*assetpath.Element, bool) {
		if !strings.EqualFold(el.Tag, "title") {
			return el, false
		}
		return &assetpath.Element{Tag: el.Tag, Attrs: el.Attrs, Children: []assetpath.Node{assetpath.Txt(title)}}, true
	})
}

// StylesheetLinks builds one <link rel="stylesheet"> per specifier.
func StylesheetLinks(specifiers ...string) []assetpath.Node {
	links := make([]assetpath.Node, 0, len(specifiers))
	for _, s := range specifiers {
		links = append(links, assetpath.El("link", assetpath.Attrs("rel", "stylesheet", "href", s)))
	}
	return links
}

// InjectHead inserts nodes into the document head.
// Tries the end of <head> first, then the start of <body>, then prepends to
// the tree.
func InjectHead(tree assetpath.Node, nodes ...assetpath.Node) assetpath.Node {
	if len(nodes) == 0 {
		return tree
	}

	out, ok := injectOnce(tree, "head", func(children []assetpath.Node) []assetpath.Node {
		return append(append([]assetpath.Node{}, children...), nodes...)
	})
	if ok {
		return out
	}

	out, ok = injectOnce(tree, "body", func(children []assetpath.Node) []assetpath.Node {
		return append(append([]assetpath.Node{}, nodes...), children...)
	})
	if ok {
		return out
	}

	return assetpath.Frag(append(append([]assetpath.Node{}, nodes...), tree)...)
}

// injectOnce rewrites the children of the first element named tag.
func injectOnce(tree assetpath.Node, tag string, fn func([]assetpath.Node) []assetpath.Node) (assetpath.Node, bool) {
	done := false
	return mapElements(tree, func(el *assetpath.Element) (*assetpath.Element, bool) {
		if done || !strings.EqualFold(el.Tag, tag) {
			return el, false
		}
		done = true
		return &assetpath.Element{Tag: el.Tag, Attrs: el.Attrs, Children: fn(el.Children)}, true
	})
}

// mapElements applies fn to every Element in document order, rebuilding only
// the ancestors of changed elements. Replaced elements are not descended into.
func mapElements(n assetpath.Node, fn func(*assetpath.Element) (*assetpath.Element, bool)) (assetpath.Node, bool) {
	switch t := n.(type) {
	case *assetpath.Element:
		if out, changed := fn(t); changed {
			return out, true
		}
		children, changed := mapChildren(t.Children, fn)
		if !changed {
			return t, false
		}
		return &assetpath.Element{Tag: t.Tag, Attrs: t.Attrs, Children: children}, true
	case *assetpath.Fragment:
		children, changed := mapChildren(t.Children, fn)
		if !changed {
			return t, false
		}
		return &assetpath.Fragment{Children: children}, true
	default:
		return n, false
	}
}

func mapChildren(children []assetpath.Node, fn func(*assetpath.Element) (*assetpath.Element, bool)) ([]assetpath.Node, bool) {
	var out []assetpath.Node
	for i, c := range children {
		nc, changed := mapElements(c, fn)
		if !changed {
			if out != nil {
				out[i] = c
			}
			continue
		}
		if out == nil {
			out = make([]assetpath.Node, len(children))
			copy(out, children[:i])
		}
		out[i] = nc
	}
	return out, out != nil
}
