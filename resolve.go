package assetpath

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/alnah/go-assetpath/internal/pathutil"
)

// Resolver turns asset specifiers into handles and rewrites component trees.
// A Resolver is immutable after construction and safe for concurrent use.
type Resolver struct {
	resources Resources
	rules     AssetRules
	logger    *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for debug tracing of resolutions.
// A nil logger disables logging.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if l == nil {
			l = discardLogger()
		}
		r.logger = l
	}
}

// WithAssetRules replaces the element/attribute pairs considered asset
// references. The default is DefaultAssetRules.
func WithAssetRules(rules AssetRules) ResolverOption {
	return func(r *Resolver) {
		r.rules = rules.clone()
	}
}

// WithAssetAttr adds attributes of tag to the asset rules.
func WithAssetAttr(tag string, attrs ...string) ResolverOption {
	return func(r *Resolver) {
		r.rules = r.rules.With(tag, attrs...)
	}
}

// NewResolver creates a Resolver over res. A nil res uses a fresh Registry
// holding only the built-in package.
func NewResolver(res Resources, opts ...ResolverOption) *Resolver {
	if res == nil {
		res = NewRegistry()
	}
	r := &Resolver{
		resources: res,
		rules:     DefaultAssetRules(),
		logger:    discardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resources returns the resource layer backing r.
func (r *Resolver) Resources() Resources {
	return r.resources
}

// Resolve turns specifier into a handle.
//
// Package-form specifiers ("pkg:sub/path") are resolved under the package
// root and never consult component. Relative-form specifiers are resolved
// against the directory of component's origin, and may climb out of it with
// ".." as long as they stay below the logical root.
//
// Locations of all mounts share one logical root, so a relative specifier
// that climbs past its own package root lands in a sibling mount:
// "../../../theme/x.css" from "mysite/components/heading" resolves to
// "theme/x.css" when a package named "theme" is mounted, and to a missing
// asset otherwise.
//
// Resolve does not check that the asset exists.
func (r *Resolver) Resolve(component any, specifier string) (Handle, error) {
	spec, err := ParseSpecifier(specifier)
	if err != nil {
		return nil, err
	}

	var location string
	switch spec.Kind {
	case PackageSpecifier:
		location, err = r.resolvePackage(spec)
	default:
		location, err = r.resolveRelative(component, spec)
	}
	if err != nil {
		return nil, err
	}

	h := r.resources.Open(location)
	r.logger.Debug("resolved asset", "specifier", specifier, "kind", spec.Kind.String(), "location", h.Location())
	return h, nil
}

func (r *Resolver) resolvePackage(spec Specifier) (string, error) {
	root, err := r.resources.PackageRoot(spec.Package)
	if err != nil {
		return "", ensureKind(err, ErrUnresolvablePackage)
	}
	sub, err := pathutil.Clean(spec.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidSpecifier, spec.String(), err)
	}
	return root + "/" + sub, nil
}

func (r *Resolver) resolveRelative(component any, spec Specifier) (string, error) {
	origin, err := OriginOf(component)
	if err != nil {
		return "", err
	}
	dir, err := r.resources.OriginDir(origin)
	if err != nil {
		return "", ensureKind(err, ErrMissingOrigin)
	}
	location, err := pathutil.Join(dir, spec.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %q from %s: %v", ErrInvalidSpecifier, spec.Path, dir, err)
	}
	return location, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
