package assetpath

import (
	"fmt"

	"github.com/alnah/go-assetpath/internal/pathutil"
)

// Component produces a markup tree. Relative asset specifiers in the tree are
// resolved against the component's origin (see OriginOf).
type Component interface {
	Render() Node
}

// ComponentFunc adapts a plain function to Component. Its origin is the
// package defining the function.
type ComponentFunc func() Node

// Render calls f.
func (f ComponentFunc) Render() Node { return f() }

// Rewrite replaces asset references in tree with handles.
//
// Every element whose tag and attribute match the asset rules and whose value
// is a local reference is turned into a PathElement holding a Handle. External
// URLs, anchors, site-absolute paths and empty values are left alone. Each
// resolved asset must exist.
//
// Unchanged subtrees are shared with the input; the input is never modified.
// The first failure aborts the rewrite and no partial tree is returned.
func (r *Resolver) Rewrite(tree Node, component any) (Node, error) {
	return walk(tree, func(n Node) (Node, error) {
		switch el := n.(type) {
		case *Element:
			attrs, changed, err := r.rewriteAttrs(el.Tag, el.Attrs, component)
			if err != nil || !changed {
				return el, err
			}
			return &PathElement{Tag: el.Tag, Attrs: attrs, Children: el.Children}, nil
		case *PathElement:
			attrs, changed, err := r.rewriteAttrs(el.Tag, el.Attrs, component)
			if err != nil || !changed {
				return el, err
			}
			return &PathElement{Tag: el.Tag, Attrs: attrs, Children: el.Children}, nil
		default:
			return n, nil
		}
	})
}

// RenderComponent renders c and rewrites its tree against c's origin.
func (r *Resolver) RenderComponent(c Component) (Node, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil component", ErrMissingOrigin)
	}
	return r.Rewrite(c.Render(), c)
}

// rewriteAttrs resolves the matching string attributes of one element.
// The input slice is never modified.
func (r *Resolver) rewriteAttrs(tag string, attrs []Attr, component any) ([]Attr, bool, error) {
	var out []Attr
	for i, a := range attrs {
		s, ok := a.Value.(StringValue)
		if !ok || !r.rules.Matches(tag, a.Name) || !pathutil.IsLocalReference(string(s)) {
			continue
		}

		h, err := r.Resolve(component, string(s))
		if err != nil {
			return nil, false, fmt.Errorf("<%s %s=%q>: %w", tag, a.Name, string(s), err)
		}
		if err := checkExists(h); err != nil {
			return nil, false, fmt.Errorf("<%s %s=%q>: %w", tag, a.Name, string(s), err)
		}

		if out == nil {
			out = make([]Attr, len(attrs))
			copy(out, attrs)
		}
		out[i] = Attr{Name: a.Name, Value: HandleValue{Handle: h}}
	}
	return out, out != nil, nil
}

func checkExists(h Handle) error {
	if sh, ok := h.(statHandle); ok {
		if err := sh.Stat(); err != nil {
			return ensureKind(err, ErrAssetNotFound)
		}
		return nil
	}
	if !h.Exists() {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, h.Location())
	}
	return nil
}
