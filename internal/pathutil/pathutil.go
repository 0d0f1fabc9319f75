// Package pathutil provides slash-separated path helpers for logical asset
// locations. All functions use the forward-slash convention regardless of
// the host platform.
package pathutil

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Sentinel errors for path operations.
var (
	ErrAbsolutePath = errors.New("path must be relative")
	ErrEscapesRoot  = errors.New("path escapes root")
	ErrEmptyPath    = errors.New("path cannot be empty")
)

// externalPattern matches values that point outside the local asset tree.
var externalPattern = regexp.MustCompile(`(?i)^(https?://|//|mailto:|tel:|data:|javascript:|#)`)

// IsExternal reports whether value is an external URL, a special scheme,
// or an in-page anchor.
func IsExternal(value string) bool {
	return externalPattern.MatchString(value)
}

// IsLocalReference reports whether value should be resolved as a local asset.
// Empty, external and site-absolute ("/...") values are not local.
func IsLocalReference(value string) bool {
	if value == "" || IsExternal(value) {
		return false
	}
	return !strings.HasPrefix(value, "/")
}

// Clean normalizes a relative slash path, collapsing "." and ".." segments.
// Returns ErrAbsolutePath for rooted paths and ErrEscapesRoot when the
// cleaned path climbs above its starting point.
func Clean(p string) (string, error) {
	if p == "" {
		return "", ErrEmptyPath
	}
	if strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q", ErrAbsolutePath, p)
	}
	cleaned := path.Clean(p)
	if EscapesRoot(cleaned) {
		return "", fmt.Errorf("%w: %q", ErrEscapesRoot, p)
	}
	return cleaned, nil
}

// EscapesRoot reports whether a cleaned relative path starts with "..".
func EscapesRoot(cleaned string) bool {
	return cleaned == ".." || strings.HasPrefix(cleaned, "../")
}

// Join joins dir and rel and cleans the result. Unlike Clean, the joined
// path may climb out of dir; it must not climb out of the root.
func Join(dir, rel string) (string, error) {
	if strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("%w: %q", ErrAbsolutePath, rel)
	}
	joined := path.Join(dir, rel)
	if joined == "." || joined == "" {
		return "", fmt.Errorf("%w: %q resolves to the root", ErrEmptyPath, rel)
	}
	if EscapesRoot(joined) {
		return "", fmt.Errorf("%w: %q from %q", ErrEscapesRoot, rel, dir)
	}
	return joined, nil
}

// Segments splits a cleaned relative path into its segments.
// The root path "." has no segments.
func Segments(cleaned string) []string {
	if cleaned == "" || cleaned == "." {
		return nil
	}
	return strings.Split(cleaned, "/")
}

// HasPrefix reports whether p equals prefix or lies below it, comparing
// whole segments ("a/bc" is not under "a/b").
func HasPrefix(p, prefix string) bool {
	if prefix == "" || prefix == "." {
		return true
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// Rel returns the shortest relative path from directory fromDir to target.
// Both arguments must be cleaned, root-relative paths. A target inside
// fromDir yields no leading traversal segments.
func Rel(fromDir, target string) string {
	from := Segments(fromDir)
	to := Segments(target)

	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}

	parts := make([]string, 0, len(from)-common+len(to)-common)
	for range from[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[common:]...)

	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

// Dir returns the directory of a cleaned relative path, "." for top-level files.
func Dir(p string) string {
	return path.Dir(p)
}
