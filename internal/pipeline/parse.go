package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-assetpath"
)

// ErrTemplateParse indicates an HTML template could not be parsed.
var ErrTemplateParse = errors.New("failed to parse HTML template")

// ParseHTML parses HTML content into an assetpath tree, handling both full
// documents and fragments. A document yields its <html> element; a fragment
// yields a Fragment of its top-level nodes. Comments and doctypes are dropped.
func ParseHTML(content string) (assetpath.Node, error) {
	if isDocument(content) {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
		}
		children := convertChildren(doc)
		if len(children) == 1 {
			return children[0], nil
		}
		return assetpath.Frag(children...), nil
	}

	// Parse with body context to avoid the implicit <html><body> wrapper.
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	children := make([]assetpath.Node, 0, len(nodes))
	for _, n := range nodes {
		if c := convertNode(n); c != nil {
			children = append(children, c)
		}
	}
	return assetpath.Frag(children...), nil
}

// isDocument reports whether content starts with <!DOCTYPE or <html.
func isDocument(content string) bool {
	lower := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html")
}

func convertNode(n *html.Node) assetpath.Node {
	switch n.Type {
	case html.TextNode:
		return assetpath.Txt(n.Data)
	case html.ElementNode:
		el := &assetpath.Element{Tag: n.Data, Children: convertChildren(n)}
		for _, a := range n.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			el.Attrs = append(el.Attrs, assetpath.Attr{Name: name, Value: assetpath.StringValue(a.Val)})
		}
		return el
	default:
		return nil
	}
}

func convertChildren(n *html.Node) []assetpath.Node {
	var out []assetpath.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if cn := convertNode(c); cn != nil {
			out = append(out, cn)
		}
	}
	return out
}
