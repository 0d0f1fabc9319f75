package assetpath

// transformFunc rewrites a single node without descending into it.
// Returning the node unchanged means "no change".
type transformFunc func(Node) (Node, error)

// walk applies fn to n and then to every descendant of the result, in
// document order. Subtrees in which nothing changed are returned as the
// identical pointer. The first error aborts the walk.
func walk(n Node, fn transformFunc) (Node, error) {
	if n == nil {
		return nil, nil
	}
	out, err := fn(n)
	if err != nil {
		return nil, err
	}

	switch t := out.(type) {
	case *Element:
		children, changed, err := walkChildren(t.Children, fn)
		if err != nil {
			return nil, err
		}
		if !changed {
			return t, nil
		}
		return &Element{Tag: t.Tag, Attrs: t.Attrs, Children: children}, nil
	case *PathElement:
		children, changed, err := walkChildren(t.Children, fn)
		if err != nil {
			return nil, err
		}
		if !changed {
			return t, nil
		}
		return &PathElement{Tag: t.Tag, Attrs: t.Attrs, Children: children}, nil
	case *Fragment:
		children, changed, err := walkChildren(t.Children, fn)
		if err != nil {
			return nil, err
		}
		if !changed {
			return t, nil
		}
		return &Fragment{Children: children}, nil
	default:
		return out, nil
	}
}

// walkChildren walks each child. The returned slice is nil unless at least
// one child changed.
func walkChildren(children []Node, fn transformFunc) ([]Node, bool, error) {
	var out []Node
	for i, c := range children {
		nc, err := walk(c, fn)
		if err != nil {
			return nil, false, err
		}
		if nc == c && out == nil {
			continue
		}
		if out == nil {
			out = make([]Node, len(children))
			copy(out, children[:i])
		}
		out[i] = nc
	}
	return out, out != nil, nil
}
