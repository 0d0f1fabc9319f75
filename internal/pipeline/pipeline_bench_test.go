//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alnah/go-assetpath"
)

// BenchmarkGoldmarkToHTML benchmarks markdown to HTML conversion.
func BenchmarkGoldmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter()
	ctx := context.Background()

	for _, sections := range []int{1, 10, 50} {
		content := generateMarkdown(sections)
		b.Run(fmt.Sprintf("sections_%d", sections), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := converter.ToHTML(ctx, content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkBuilderBuild benchmarks a full page build with a shared strategy.
func BenchmarkBuilderBuild(b *testing.B) {
	reg := assetpath.NewRegistry()
	if err := reg.MountFS("mysite", "example.com/mysite", siteFS()); err != nil {
		b.Fatal(err)
	}
	builder := NewBuilder(assetpath.NewResolver(reg), WithStylesheets("assetpath:static/reset.css"))
	strategy := assetpath.NewRelativePathStrategy()
	page := Page{
		Output:   "mysite/blog/index.html",
		Template: "mysite:templates/base.html",
		Content:  "../content/index.md",
	}
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := builder.Build(ctx, page, strategy); err != nil {
			b.Fatal(err)
		}
	}
}

func generateMarkdown(sections int) string {
	var sb strings.Builder
	for i := range sections {
		fmt.Fprintf(&sb, "## Section %d\n\nSome ==highlighted== text.\n\n```go\nfunc f%d() {}\n```\n\n", i, i)
	}
	return sb.String()
}
