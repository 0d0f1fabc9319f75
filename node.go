package assetpath

// Node is a node of an immutable markup tree.
//
// The set of node kinds is closed: *Element, *Text, *Fragment and
// *PathElement. Trees are never mutated in place; transformations return
// new nodes and reuse every subtree they did not change.
type Node interface {
	node()
}

// Element is a markup element with ordered attributes and children.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

// Text is a literal text leaf.
type Text struct {
	Data string
}

// Fragment groups children without a wrapping element.
type Fragment struct {
	Children []Node
}

// PathElement is an element whose attributes hold at least one resolved
// asset Handle. It only exists between Rewrite and Render and must not
// reach a consumer expecting a plain tree.
type PathElement struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

func (*Element) node()     {}
func (*Text) node()        {}
func (*Fragment) node()    {}
func (*PathElement) node() {}

// Attr is a single named attribute.
type Attr struct {
	Name  string
	Value Value
}

// Value is an attribute value: either a StringValue or a HandleValue.
type Value interface {
	value()
}

// StringValue is a plain string attribute value.
type StringValue string

// HandleValue is an attribute value resolved to an asset handle.
type HandleValue struct {
	Handle Handle
}

func (StringValue) value() {}
func (HandleValue) value() {}

// El builds an Element with string attributes given as name/value pairs.
// A trailing unpaired name is ignored.
func El(tag string, attrs []string, children ...Node) *Element {
	el := &Element{Tag: tag, Children: children}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.Attrs = append(el.Attrs, Attr{Name: attrs[i], Value: StringValue(attrs[i+1])})
	}
	return el
}

// Txt builds a Text node.
func Txt(data string) *Text {
	return &Text{Data: data}
}

// Frag builds a Fragment.
func Frag(children ...Node) *Fragment {
	return &Fragment{Children: children}
}

// Attrs is a convenience for the attrs argument of El.
func Attrs(pairs ...string) []string {
	return pairs
}

// Get returns the string value of the named attribute.
// Handle values are reported as absent.
func (e *Element) Get(name string) (string, bool) {
	return lookupString(e.Attrs, name)
}

// Get returns the string value of the named attribute.
// Handle values are reported as absent; use Handle for those.
func (e *PathElement) Get(name string) (string, bool) {
	return lookupString(e.Attrs, name)
}

// Handle returns the handle held by the named attribute.
func (e *PathElement) Handle(name string) (Handle, bool) {
	for _, a := range e.Attrs {
		if a.Name != name {
			continue
		}
		if hv, ok := a.Value.(HandleValue); ok {
			return hv.Handle, true
		}
		return nil, false
	}
	return nil, false
}

func lookupString(attrs []Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name != name {
			continue
		}
		if s, ok := a.Value.(StringValue); ok {
			return string(s), true
		}
		return "", false
	}
	return "", false
}

// HasPathNodes reports whether any PathElement remains in the tree.
func HasPathNodes(n Node) bool {
	switch n := n.(type) {
	case *PathElement:
		return true
	case *Element:
		return anyPathNode(n.Children)
	case *Fragment:
		return anyPathNode(n.Children)
	default:
		return false
	}
}

func anyPathNode(children []Node) bool {
	for _, c := range children {
		if HasPathNodes(c) {
			return true
		}
	}
	return false
}
