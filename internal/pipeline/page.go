package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alnah/go-assetpath"
	"github.com/alnah/go-assetpath/internal/pathutil"
)

// Sentinel errors for page assembly.
var (
	ErrInvalidPage   = errors.New("invalid page")
	ErrNoContentSlot = errors.New("template has no content slot")
	ErrTemplateRead  = errors.New("failed to read page source")
)

// ContentSlot is the data-slot value receiving rendered Markdown content.
const ContentSlot = "content"

// Page describes one output page.
type Page struct {
	// Output is the target location relative to the output root,
	// e.g. "mysite/about/index.html".
	Output string

	// Template is the specifier of an HTML template.
	Template string

	// Content is the optional specifier of a Markdown file filled into the
	// template's content slot.
	Content string

	// Origin is the directory relative specifiers in the template and its
	// injected stylesheets resolve against. Defaults to the template's directory.
	Origin string

	// Title replaces the template's <title> text when set.
	Title string
}

// AssetOrigin lets the page act as the component locating its template.
func (p Page) AssetOrigin() string { return p.Origin }

// Validate checks that the page names a usable output and template.
func (p Page) Validate() error {
	if p.Template == "" {
		return fmt.Errorf("%w: %q has no template", ErrInvalidPage, p.Output)
	}
	if _, err := pathutil.Clean(p.Output); err != nil {
		return fmt.Errorf("%w: output %q: %v", ErrInvalidPage, p.Output, err)
	}
	return nil
}

// origin is the component the assembled page tree is rewritten against.
type origin string

func (o origin) AssetOrigin() string { return string(o) }

// Builder assembles pages. It is safe for concurrent use once constructed.
type Builder struct {
	resolver    *assetpath.Resolver
	markdown    MarkdownConverter
	stylesheets []string
	logger      *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithMarkdown sets the Markdown converter. Default: NewGoldmarkConverter.
func WithMarkdown(c MarkdownConverter) BuilderOption {
	return func(b *Builder) {
		b.markdown = c
	}
}

// WithStylesheets injects a stylesheet link per specifier into every page
// head, e.g. "assetpath:static/reset.css".
func WithStylesheets(specifiers ...string) BuilderOption {
	return func(b *Builder) {
		b.stylesheets = append([]string(nil), specifiers...)
	}
}

// WithLogger sets the logger for page assembly.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates a Builder resolving assets with res.
func NewBuilder(res *assetpath.Resolver, opts ...BuilderOption) *Builder {
	b := &Builder{
		resolver: res,
		markdown: NewGoldmarkConverter(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Resolve assembles a page and rewrites its asset references. The result
// still holds handles; see Build.
func (b *Builder) Resolve(ctx context.Context, p Page) (assetpath.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	tmpl, err := b.resolver.Resolve(p, p.Template)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", p.Template, err)
	}
	data, err := tmpl.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: template %s: %w", ErrTemplateRead, tmpl.Location(), err)
	}
	tree, err := ParseHTML(string(data))
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", tmpl.Location(), err)
	}

	component := origin(p.Origin)
	if p.Origin == "" {
		component = origin(pathutil.Dir(tmpl.Location()))
	}

	if p.Content != "" {
		tree, err = b.fillContent(ctx, tree, component, p.Content)
		if err != nil {
			return nil, err
		}
	}
	if p.Title != "" {
		tree, _ = SetTitle(tree, p.Title)
	}
	tree = InjectHead(tree, StylesheetLinks(b.stylesheets...)...)

	resolved, err := b.resolver.Rewrite(tree, component)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", p.Output, err)
	}
	b.logger.Debug("resolved page", "output", p.Output, "template", tmpl.Location(), "origin", string(component))
	return resolved, nil
}

func (b *Builder) fillContent(ctx context.Context, tree assetpath.Node, component origin, spec string) (assetpath.Node, error) {
	h, err := b.resolver.Resolve(component, spec)
	if err != nil {
		return nil, fmt.Errorf("content %q: %w", spec, err)
	}
	md, err := h.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: content %s: %w", ErrTemplateRead, h.Location(), err)
	}
	fragment, err := b.markdown.ToHTML(ctx, string(md))
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", h.Location(), err)
	}
	content, err := ParseHTML(fragment)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", h.Location(), err)
	}

	var children []assetpath.Node
	if frag, ok := content.(*assetpath.Fragment); ok {
		children = frag.Children
	} else {
		children = []assetpath.Node{content}
	}

	filled, ok := FillSlot(tree, ContentSlot, children...)
	if !ok {
		return nil, fmt.Errorf("%w: no element has %s=%q", ErrNoContentSlot, SlotAttr, ContentSlot)
	}
	return filled, nil
}

// Build assembles, rewrites and renders a page for its output location and
// returns the serialized HTML document.
func (b *Builder) Build(ctx context.Context, p Page, strategy assetpath.Strategy) ([]byte, error) {
	resolved, err := b.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rendered, err := assetpath.Render(resolved, p.Output, strategy)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", p.Output, err)
	}

	var buf bytes.Buffer
	if err := assetpath.WriteDocument(&buf, rendered); err != nil {
		return nil, fmt.Errorf("page %s: %w", p.Output, err)
	}
	return buf.Bytes(), nil
}
