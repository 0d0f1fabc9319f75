package assetpath

import (
	"errors"
	"io/fs"

	"github.com/alnah/go-assetpath/internal/resource"
)

// Resources locates package roots and component directories and opens
// handles. Locations are slash-separated logical paths whose first segment
// names a package root.
type Resources interface {
	// PackageRoot returns the logical directory of a package,
	// or an error matching ErrUnresolvablePackage.
	PackageRoot(name string) (string, error)

	// OriginDir returns the logical directory of a component origin,
	// or an error matching ErrMissingOrigin.
	OriginDir(origin string) (string, error)

	// Open returns a handle for a logical location. It does not check
	// existence.
	Open(location string) Handle
}

// Registry is the default Resources implementation. Packages are mounted
// from fs.FS values or directories on disk. It is safe for concurrent use.
type Registry struct {
	reg *resource.Registry
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	builtin bool
}

// WithoutBuiltin skips mounting the built-in "assetpath" package.
func WithoutBuiltin() RegistryOption {
	return func(c *registryConfig) {
		c.builtin = false
	}
}

// NewRegistry creates a Registry. The built-in "assetpath" package, which
// ships "assetpath:static/reset.css", is mounted unless WithoutBuiltin is given.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{builtin: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{reg: resource.NewRegistry()}
	if cfg.builtin {
		// Cannot fail on an empty registry.
		_ = r.reg.MountBuiltin()
	}
	return r
}

// MountFS mounts fsys as package name. importPath is optional: when set,
// components defined below that Go import path resolve relative specifiers
// inside this package.
func (r *Registry) MountFS(name, importPath string, fsys fs.FS) error {
	return convertResourceError(r.reg.MountFS(name, importPath, fsys))
}

// MountDir mounts a directory on disk as package name.
func (r *Registry) MountDir(name, importPath, dir string) error {
	return convertResourceError(r.reg.MountDir(name, importPath, dir))
}

// Packages returns the mounted package names in sorted order.
func (r *Registry) Packages() []string {
	return r.reg.Names()
}

// PackageRoot implements Resources.
func (r *Registry) PackageRoot(name string) (string, error) {
	dir, err := r.reg.PackageRoot(name)
	if err != nil {
		return "", wrapError(ErrUnresolvablePackage, err)
	}
	return dir, nil
}

// OriginDir implements Resources.
func (r *Registry) OriginDir(origin string) (string, error) {
	dir, err := r.reg.OriginDir(origin)
	if err != nil {
		return "", wrapError(ErrMissingOrigin, err)
	}
	return dir, nil
}

// Open implements Resources.
func (r *Registry) Open(location string) Handle {
	return registryHandle{h: r.reg.Open(location)}
}

// registryHandle adapts resource.Handle to the public Handle interface.
type registryHandle struct {
	h resource.Handle
}

func (h registryHandle) Location() string { return h.h.Location() }
func (h registryHandle) String() string   { return h.h.String() }
func (h registryHandle) Exists() bool     { return h.h.Exists() }

func (h registryHandle) Stat() error {
	return convertResourceError(h.h.Stat())
}

func (h registryHandle) ReadBytes() ([]byte, error) {
	data, err := h.h.ReadBytes()
	if err != nil {
		return nil, convertResourceError(err)
	}
	return data, nil
}

// convertResourceError maps internal resource errors to public sentinels.
func convertResourceError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, resource.ErrInvalidRootName),
		errors.Is(err, resource.ErrDuplicateRoot),
		errors.Is(err, resource.ErrInvalidBasePath):
		return wrapError(ErrInvalidMount, err)
	case errors.Is(err, resource.ErrRootNotFound):
		return wrapError(ErrUnresolvablePackage, err)
	case errors.Is(err, resource.ErrAssetNotFound):
		return wrapError(ErrAssetNotFound, err)
	case errors.Is(err, resource.ErrAssetRead),
		errors.Is(err, resource.ErrPathTraversal):
		return wrapError(ErrAssetRead, err)
	default:
		return err
	}
}

// Compile-time interface checks.
var (
	_ Resources = (*Registry)(nil)
	_ Handle    = registryHandle{}
)
