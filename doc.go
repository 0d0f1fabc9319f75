// Package assetpath resolves asset references in component markup trees and
// renders them as paths relative to the page being written.
//
// # Quick Start
//
// Mount the packages holding components and their assets, rewrite a
// component's tree, then render it for a target page:
//
//	reg := assetpath.NewRegistry()
//	if err := reg.MountDir("mysite", "example.com/mysite", "./mysite"); err != nil {
//	    log.Fatal(err)
//	}
//	res := assetpath.NewResolver(reg)
//
//	tree, err := res.RenderComponent(heading.Heading{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	strategy := assetpath.NewRelativePathStrategy()
//	page, err := assetpath.Render(tree, "mysite/pages/about.html", strategy)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	assetpath.WriteDocument(os.Stdout, page)
//
// After all pages are rendered, strategy.CollectedAssets() lists every asset
// the site references, each with the location it must be published at.
//
// # Specifiers
//
// Asset attributes (link[href] and script[src] by default) hold specifiers
// in one of two forms:
//
//	mysite:static/styles.css   package form, resolved under the package root
//	static/styles.css          relative form, resolved against the component
//	../shared/base.css         relative form climbing out of the component
//
// A specifier is in package form when a colon appears before the first
// slash. External URLs, in-page anchors, site-absolute paths and empty
// values are never rewritten.
//
// # Origins
//
// The directory a component's relative specifiers are resolved against is
// derived from its origin: the Go import path of the package defining its
// type (or function), mapped onto a mounted package through the import path
// given at mount time. Components may override this by implementing Originer.
//
// # Two Phases
//
// Rewrite produces PathElement nodes holding Handle values. Render turns
// them back into plain elements with string paths. Keeping the phases apart
// lets one resolved tree be rendered for several target pages.
//
// # Concurrency
//
// Resolver, Registry and RelativePathStrategy are safe for concurrent use.
// Trees are immutable; a single strategy may be shared by goroutines
// rendering different pages.
package assetpath
