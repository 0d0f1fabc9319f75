package assetpath

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WriteHTML serializes a rendered tree as HTML. Attribute values and text
// are escaped. Returns ErrUnrenderedHandle if the tree still holds handles.
func WriteHTML(w io.Writer, n Node) error {
	nodes, err := toHTML(n)
	if err != nil {
		return err
	}
	for _, hn := range nodes {
		if err := html.Render(w, hn); err != nil {
			return fmt.Errorf("writing html: %w", err)
		}
	}
	return nil
}

// WriteDocument writes an HTML5 doctype followed by the serialized tree.
func WriteDocument(w io.Writer, n Node) error {
	if HasPathNodes(n) {
		return fmt.Errorf("%w: call Render first", ErrUnrenderedHandle)
	}
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return fmt.Errorf("writing html: %w", err)
	}
	return WriteHTML(w, n)
}

// RenderHTML serializes a rendered tree to a string.
func RenderHTML(n Node) (string, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// toHTML converts a node into html.Node values. Fragments flatten into
// their children.
func toHTML(n Node) ([]*html.Node, error) {
	switch t := n.(type) {
	case nil:
		return nil, nil
	case *Text:
		return []*html.Node{{Type: html.TextNode, Data: t.Data}}, nil
	case *Fragment:
		return childrenToHTML(t.Children)
	case *PathElement:
		return nil, fmt.Errorf("%w: <%s>", ErrUnrenderedHandle, t.Tag)
	case *Element:
		el := &html.Node{
			Type:     html.ElementNode,
			Data:     t.Tag,
			DataAtom: atom.Lookup([]byte(t.Tag)),
			Attr:     make([]html.Attribute, 0, len(t.Attrs)),
		}
		for _, a := range t.Attrs {
			s, ok := a.Value.(StringValue)
			if !ok {
				return nil, fmt.Errorf("%w: <%s %s>", ErrUnrenderedHandle, t.Tag, a.Name)
			}
			el.Attr = append(el.Attr, html.Attribute{Key: a.Name, Val: string(s)})
		}
		children, err := childrenToHTML(t.Children)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			el.AppendChild(c)
		}
		return []*html.Node{el}, nil
	default:
		return nil, fmt.Errorf("unsupported node type %T", n)
	}
}

func childrenToHTML(children []Node) ([]*html.Node, error) {
	var out []*html.Node
	for _, c := range children {
		nodes, err := toHTML(c)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}
