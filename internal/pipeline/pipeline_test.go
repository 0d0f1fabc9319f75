package pipeline

// Notes:
// - Goldmark conversion errors are not tested: goldmark.Convert only fails
//   when the writer fails, and ToHTML always writes to a bytes.Buffer.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-assetpath"
)

const baseTemplate = `<!DOCTYPE html>
<html>
<head>
<title>Default</title>
<link rel="stylesheet" href="../static/site.css">
</head>
<body>
<main data-slot="content"><p>placeholder</p></main>
<script src="mysite:static/site.js"></script>
</body>
</html>`

func siteFS() fstest.MapFS {
	return fstest.MapFS{
		"templates/base.html":       {Data: []byte(baseTemplate)},
		"templates/bare.html":       {Data: []byte(`<p>no slot</p>`)},
		"templates/broken.html":     {Data: []byte(`<link rel="stylesheet" href="missing.css">`)},
		"static/site.css":           {Data: []byte("body { margin: 0; }")},
		"static/site.js":            {Data: []byte("console.log('site')")},
		"content/index.md":          {Data: []byte("# Welcome\n\nSome ==important== text.\n")},
		"content/code.md":           {Data: []byte("```go\nfunc main() {}\n```\n")},
		"components/card/card.css":  {Data: []byte(".card {}")},
		"components/card/card.html": {Data: []byte(`<link rel="stylesheet" href="card.css"><div class="card"></div>`)},
	}
}

func newTestBuilder(t *testing.T, opts ...BuilderOption) *Builder {
	t.Helper()

	reg := assetpath.NewRegistry()
	if err := reg.MountFS("mysite", "example.com/mysite", siteFS()); err != nil {
		t.Fatalf("MountFS() error = %v", err)
	}
	return NewBuilder(assetpath.NewResolver(reg), opts...)
}

// ---------------------------------------------------------------------------
// TestGoldmarkConverter - Markdown content to HTML fragments
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "heading with id", content: "# Hello World", want: []string{`<h1 id="hello-world">Hello World</h1>`}},
		{name: "highlight", content: "a ==b== c", want: []string{"<mark>b</mark>"}},
		{name: "crlf line endings", content: "line one\r\n\r\nline two", want: []string{"<p>line one</p>", "<p>line two</p>"}},
		{name: "table", content: "| a | b |\n|---|---|\n| 1 | 2 |", want: []string{"<table>", "<td>1</td>"}},
		{name: "code highlighting uses classes", content: "```go\nfunc main() {}\n```", want: []string{`class="chroma"`}},
	}

	conv := NewGoldmarkConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.content)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ToHTML() = %q, want containing %q", got, w)
				}
			}
			if strings.Contains(got, "<html") {
				t.Errorf("ToHTML() = %q, want a fragment", got)
			}
		})
	}
}

func TestGoldmarkConverter_RawHTMLOmitted(t *testing.T) {
	t.Parallel()

	got, err := NewGoldmarkConverter().ToHTML(context.Background(), `<link rel="stylesheet" href="evil.css">`)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if strings.Contains(got, "<link") {
		t.Errorf("ToHTML() = %q passed raw HTML through", got)
	}
}

func TestGoldmarkConverter_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewGoldmarkConverter().ToHTML(ctx, "# x"); !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestParseHTML - HTML documents and fragments to trees
// ---------------------------------------------------------------------------

func TestParseHTML_Fragment(t *testing.T) {
	t.Parallel()

	got, err := ParseHTML(`<link rel="stylesheet" href="a.css"><!-- note --><p class="x">hi <b>there</b></p>`)
	if err != nil {
		t.Fatalf("ParseHTML() error = %v", err)
	}

	want := assetpath.Frag(
		assetpath.El("link", assetpath.Attrs("rel", "stylesheet", "href", "a.css")),
		assetpath.El("p", assetpath.Attrs("class", "x"), assetpath.Txt("hi "), assetpath.El("b", nil, assetpath.Txt("there"))),
	)
	if diff := cmp.Diff(assetpath.Node(want), got); diff != "" {
		t.Errorf("ParseHTML() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHTML_Document(t *testing.T) {
	t.Parallel()

	got, err := ParseHTML("<!DOCTYPE html><html><head><title>T</title></head><body><p>x</p></body></html>")
	if err != nil {
		t.Fatalf("ParseHTML() error = %v", err)
	}

	want := assetpath.El("html", nil,
		assetpath.El("head", nil, assetpath.El("title", nil, assetpath.Txt("T"))),
		assetpath.El("body", nil, assetpath.El("p", nil, assetpath.Txt("x"))),
	)
	if diff := cmp.Diff(assetpath.Node(want), got); diff != "" {
		t.Errorf("ParseHTML() mismatch (-want +got):\n%s", diff)
	}

	out, err := assetpath.RenderHTML(got)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if out != "<html><head><title>T</title></head><body><p>x</p></body></html>" {
		t.Errorf("round trip = %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestInject - Slots, titles and head injection
// ---------------------------------------------------------------------------

func TestFillSlot(t *testing.T) {
	t.Parallel()

	aside := assetpath.El("aside", nil, assetpath.Txt("side"))
	tree := assetpath.El("body", nil,
		aside,
		assetpath.El("main", assetpath.Attrs(SlotAttr, "content"), assetpath.Txt("old")),
	)

	got, ok := FillSlot(tree, "content", assetpath.Txt("new"))
	if !ok {
		t.Fatal("FillSlot() found no slot")
	}
	want := assetpath.El("body", nil,
		assetpath.El("aside", nil, assetpath.Txt("side")),
		assetpath.El("main", assetpath.Attrs(SlotAttr, "content"), assetpath.Txt("new")),
	)
	if diff := cmp.Diff(assetpath.Node(want), got); diff != "" {
		t.Errorf("FillSlot() mismatch (-want +got):\n%s", diff)
	}
	if got.(*assetpath.Element).Children[0] != assetpath.Node(aside) {
		t.Error("untouched sibling was copied")
	}

	if _, ok := FillSlot(tree, "sidebar"); ok {
		t.Error("FillSlot() reported a slot that does not exist")
	}
}

func TestSetTitle(t *testing.T) {
	t.Parallel()

	tree := assetpath.El("head", nil, assetpath.El("title", nil, assetpath.Txt("Old")))
	got, ok := SetTitle(tree, "New")
	if !ok {
		t.Fatal("SetTitle() found no title")
	}
	out, _ := assetpath.RenderHTML(got)
	if out != "<head><title>New</title></head>" {
		t.Errorf("SetTitle() = %q", out)
	}
}

func TestInjectHead(t *testing.T) {
	t.Parallel()

	link := StylesheetLinks("assetpath:static/reset.css")

	tests := []struct {
		name string
		tree assetpath.Node
		want string
	}{
		{
			name: "appends to head",
			tree: assetpath.El("html", nil, assetpath.El("head", nil, assetpath.El("title", nil, assetpath.Txt("T")))),
			want: `<html><head><title>T</title><link rel="stylesheet" href="assetpath:static/reset.css"/></head></html>`,
		},
		{
			name: "prepends to body without head",
			tree: assetpath.El("body", nil, assetpath.El("p", nil)),
			want: `<body><link rel="stylesheet" href="assetpath:static/reset.css"/><p></p></body>`,
		},
		{
			name: "prepends to fragment",
			tree: assetpath.El("p", nil),
			want: `<link rel="stylesheet" href="assetpath:static/reset.css"/><p></p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := assetpath.RenderHTML(InjectHead(tt.tree, link...))
			if err != nil {
				t.Fatalf("RenderHTML() error = %v", err)
			}
			if out != tt.want {
				t.Errorf("InjectHead() = %q, want %q", out, tt.want)
			}
		})
	}

	tree := assetpath.El("p", nil)
	if got := InjectHead(tree); got != assetpath.Node(tree) {
		t.Error("InjectHead() without nodes changed the tree")
	}
}

// ---------------------------------------------------------------------------
// TestBuilder - Page assembly, rewriting and rendering
// ---------------------------------------------------------------------------

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, WithStylesheets("assetpath:static/reset.css"))
	strategy := assetpath.NewRelativePathStrategy()

	out, err := b.Build(context.Background(), Page{
		Output:   "mysite/blog/index.html",
		Template: "mysite:templates/base.html",
		Content:  "../content/index.md",
		Title:    "Blog",
	}, strategy)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	page := string(out)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Blog</title>",
		`href="../static/site.css"`,
		`src="../static/site.js"`,
		`href="../../assetpath/static/reset.css"`,
		`<h1 id="welcome">Welcome</h1>`,
		"<mark>important</mark>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("Build() output missing %q:\n%s", want, page)
		}
	}
	if strings.Contains(page, "placeholder") {
		t.Error("content slot was not replaced")
	}

	var got []string
	for _, ref := range strategy.CollectedAssets().All() {
		got = append(got, ref.Destination)
	}
	want := []string{"assetpath/static/reset.css", "mysite/static/site.css", "mysite/static/site.js"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("collected assets mismatch (-want +got):\n%s", diff)
	}
}

type upperConverter struct{}

func (upperConverter) ToHTML(_ context.Context, content string) (string, error) {
	return "<p>" + strings.ToUpper(strings.TrimSpace(content)) + "</p>", nil
}

func TestBuilder_CustomMarkdown(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, WithMarkdown(upperConverter{}))
	out, err := b.Build(context.Background(), Page{
		Output:   "mysite/index.html",
		Template: "mysite:templates/base.html",
		Content:  "../content/index.md",
	}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(string(out), "<p># WELCOME") {
		t.Errorf("custom converter not used:
%s", out)
	}
}

func TestBuilder_ExplicitOrigin(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)
	strategy := assetpath.NewRelativePathStrategy(assetpath.WithSitePrefix("docs"))

	out, err := b.Build(context.Background(), Page{
		Output:   "index.html",
		Template: "card.html",
		Origin:   "example.com/mysite/components/card",
	}, strategy)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(string(out), `href="docs/mysite/components/card/card.css"`) {
		t.Errorf("Build() = %s", out)
	}
}

func TestBuilder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    Page
		wantErr error
	}{
		{name: "no template", page: Page{Output: "a.html"}, wantErr: ErrInvalidPage},
		{name: "absolute output", page: Page{Output: "/a.html", Template: "mysite:templates/base.html"}, wantErr: ErrInvalidPage},
		{name: "empty output", page: Page{Template: "mysite:templates/base.html"}, wantErr: ErrInvalidPage},
		{name: "missing template", page: Page{Output: "a.html", Template: "mysite:templates/none.html"}, wantErr: assetpath.ErrAssetNotFound},
		{name: "unknown package", page: Page{Output: "a.html", Template: "nosuch:base.html"}, wantErr: assetpath.ErrUnresolvablePackage},
		{name: "relative template without origin", page: Page{Output: "a.html", Template: "base.html"}, wantErr: assetpath.ErrMissingOrigin},
		{name: "no content slot", page: Page{Output: "a.html", Template: "mysite:templates/bare.html", Content: "../content/index.md"}, wantErr: ErrNoContentSlot},
		{name: "missing asset in template", page: Page{Output: "a.html", Template: "mysite:templates/broken.html"}, wantErr: assetpath.ErrAssetNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := newTestBuilder(t).Build(context.Background(), tt.page, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuilder_EscapingOutputRejected(t *testing.T) {
	t.Parallel()

	_, err := newTestBuilder(t).Build(context.Background(), Page{
		Output:   "../escape.html",
		Template: "mysite:templates/base.html",
	}, nil)
	if !errors.Is(err, ErrInvalidPage) {
		t.Errorf("Build() error = %v, want ErrInvalidPage", err)
	}
}

func TestBuilder_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestBuilder(t).Resolve(ctx, Page{Output: "a.html", Template: "mysite:templates/base.html"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Resolve() error = %v, want context.Canceled", err)
	}
}

func TestBuilder_ConcurrentBuildsShareStrategy(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)
	strategy := assetpath.NewRelativePathStrategy()
	outputs := []string{"mysite/a.html", "mysite/b/index.html", "mysite/c/d/index.html", "other/e.html"}

	var wg sync.WaitGroup
	errs := make([]error, len(outputs))
	for i, output := range outputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = b.Build(context.Background(), Page{Output: output, Template: "mysite:templates/base.html"}, strategy)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Build(%s) error = %v", outputs[i], err)
		}
	}
	if got := strategy.CollectedAssets().Len(); got != 2 {
		t.Errorf("collected %d assets, want 2", got)
	}
}
