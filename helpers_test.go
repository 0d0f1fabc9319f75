package assetpath

import (
	"testing"
	"testing/fstest"
)

// siteFS is the layout shared by most tests:
//
//	mysite/
//	├── components/card/card/static/card.css
//	├── components/heading/heading.js
//	├── components/heading/static/styles.css
//	├── shared/base.css
//	└── static/{styles.css,site.js}
func siteFS() fstest.MapFS {
	return fstest.MapFS{
		"components/card/card/static/card.css": {Data: []byte(".card { padding: 0; }")},
		"components/heading/heading.js":        {Data: []byte("console.log('heading')")},
		"components/heading/static/styles.css": {Data: []byte("h1 { color: red; }")},
		"shared/base.css":                      {Data: []byte("body { margin: 0; }")},
		"static/styles.css":                    {Data: []byte("p { color: blue; }")},
		"static/site.js":                       {Data: []byte("console.log('site')")},
	}
}

const (
	siteImportPath = "example.com/mysite"
	headingOrigin  = "example.com/mysite/components/heading"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	reg := NewRegistry(WithoutBuiltin())
	if err := reg.MountFS("mysite", siteImportPath, siteFS()); err != nil {
		t.Fatalf("MountFS() error = %v", err)
	}
	return reg
}

func newTestResolver(t *testing.T, opts ...ResolverOption) *Resolver {
	t.Helper()
	return NewResolver(newTestRegistry(t), opts...)
}

// component is a test component with an explicit origin.
type component struct {
	origin string
	tree   Node
}

func (c component) AssetOrigin() string { return c.origin }
func (c component) Render() Node        { return c.tree }

// countingOrigin records how often its origin was consulted.
type countingOrigin struct {
	calls *int
}

func (c countingOrigin) AssetOrigin() string {
	*c.calls++
	return headingOrigin
}

// fakeHandle is a Handle that exists and reads its own location.
type fakeHandle string

func (h fakeHandle) Location() string           { return string(h) }
func (h fakeHandle) String() string             { return string(h) }
func (h fakeHandle) Exists() bool               { return true }
func (h fakeHandle) ReadBytes() ([]byte, error) { return []byte(h), nil }

// pathEl builds a PathElement with a single handle attribute.
func pathEl(tag, attr, location string, children ...Node) *PathElement {
	return &PathElement{
		Tag:      tag,
		Attrs:    []Attr{{Name: attr, Value: HandleValue{Handle: fakeHandle(location)}}},
		Children: children,
	}
}

// headingTree is the markup of the heading component.
func headingTree() Node {
	return Frag(
		El("link", Attrs("rel", "stylesheet", "href", "static/styles.css")),
		El("h1", nil, Txt("Hello")),
		El("script", Attrs("src", "heading.js")),
	)
}
