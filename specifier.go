package assetpath

import (
	"fmt"
	"strings"
)

// SpecifierKind distinguishes the two specifier forms.
type SpecifierKind int

const (
	// RelativeSpecifier is resolved against the directory of the referencing
	// component, e.g. "static/styles.css" or "../shared/base.css".
	RelativeSpecifier SpecifierKind = iota

	// PackageSpecifier names a mounted package, e.g. "mysite:static/styles.css".
	PackageSpecifier
)

func (k SpecifierKind) String() string {
	if k == PackageSpecifier {
		return "package"
	}
	return "relative"
}

// Specifier is a parsed asset specifier.
type Specifier struct {
	Kind    SpecifierKind
	Package string // empty for RelativeSpecifier
	Path    string
}

// ParseSpecifier classifies s.
//
// s is in package form when it contains a colon before its first slash; the
// text before the first colon is the package and the rest is the path.
// Everything else, including paths that merely contain a colon after a
// slash, is in relative form.
func ParseSpecifier(s string) (Specifier, error) {
	if strings.TrimSpace(s) == "" {
		return Specifier{}, fmt.Errorf("%w: empty specifier", ErrInvalidSpecifier)
	}

	colon := strings.IndexByte(s, ':')
	slash := strings.IndexByte(s, '/')
	if colon < 0 || (slash >= 0 && slash < colon) {
		return Specifier{Kind: RelativeSpecifier, Path: s}, nil
	}

	pkg, sub := s[:colon], s[colon+1:]
	if pkg == "" {
		return Specifier{}, fmt.Errorf("%w: %q has an empty package name", ErrInvalidSpecifier, s)
	}
	if sub == "" {
		return Specifier{}, fmt.Errorf("%w: %q has an empty path", ErrInvalidSpecifier, s)
	}
	return Specifier{Kind: PackageSpecifier, Package: pkg, Path: sub}, nil
}

// String reassembles the specifier.
func (s Specifier) String() string {
	if s.Kind == PackageSpecifier {
		return s.Package + ":" + s.Path
	}
	return s.Path
}
