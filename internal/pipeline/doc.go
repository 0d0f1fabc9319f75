// Package pipeline assembles site pages from HTML templates and Markdown
// content and runs them through asset resolution and rendering.
//
// The stages are:
//   - Template parsing (x/net/html) into an assetpath tree
//   - Markdown to HTML conversion via Goldmark, filled into a content slot
//   - Title and site stylesheet injection
//   - Asset rewriting against the page origin
//   - Rendering for the page output location and HTML serialization
//
// Copying collected assets is left to the caller; the pipeline only reports
// which assets a page references.
package pipeline
