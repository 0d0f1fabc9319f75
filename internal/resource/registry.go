package resource

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/alnah/go-assetpath/internal/pathutil"
)

// Registry maps logical root names and Go import paths onto mounted file
// systems. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	roots map[string]*Root
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{roots: make(map[string]*Root)}
}

// MountFS mounts fsys under name. importPath is optional; when set, component
// origins below that import path resolve into this root.
func (r *Registry) MountFS(name, importPath string, fsys fs.FS) error {
	if fsys == nil {
		return fmt.Errorf("%w: nil file system for %q", ErrInvalidBasePath, name)
	}
	return r.mount(&Root{name: name, importPath: importPath, fsys: fsys})
}

// MountDir mounts a directory on disk under name.
// Returns ErrInvalidBasePath if dir is not a readable directory.
func (r *Registry) MountDir(name, importPath, dir string) error {
	if err := ValidateRootName(name); err != nil {
		return err
	}
	root, err := newDirRoot(name, importPath, dir)
	if err != nil {
		return err
	}
	return r.mount(root)
}

func (r *Registry) mount(root *Root) error {
	if err := ValidateRootName(root.name); err != nil {
		return err
	}
	if root.importPath != "" {
		cleaned, err := pathutil.Clean(root.importPath)
		if err != nil {
			return fmt.Errorf("%w: import path %q: %v", ErrInvalidRootName, root.importPath, err)
		}
		root.importPath = cleaned
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roots[root.name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateRoot, root.name)
	}
	if root.importPath != "" {
		for _, other := range r.roots {
			if other.importPath == root.importPath {
				return fmt.Errorf("%w: import path %q is mounted as %q", ErrDuplicateRoot, root.importPath, other.name)
			}
		}
	}
	r.roots[root.name] = root
	return nil
}

// Names returns the mounted root names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.roots))
	for name := range r.roots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PackageRoot returns the logical directory of the root named pkg.
// Only root names are consulted; origins and import paths are not.
func (r *Registry) PackageRoot(pkg string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if root, ok := r.roots[pkg]; ok {
		return root.name, nil
	}
	return "", fmt.Errorf("%w: package %q", ErrRootNotFound, pkg)
}

// OriginDir maps a component origin onto a logical directory.
// The origin may be a Go import path below a root's import path
// (longest match wins) or a logical path starting with a root name.
func (r *Registry) OriginDir(origin string) (string, error) {
	cleaned, err := pathutil.Clean(origin)
	if err != nil {
		return "", fmt.Errorf("%w: origin %q: %v", ErrRootNotFound, origin, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *Root
	for _, root := range r.roots {
		if root.importPath == "" || !pathutil.HasPrefix(cleaned, root.importPath) {
			continue
		}
		if best == nil || len(root.importPath) > len(best.importPath) {
			best = root
		}
	}
	if best != nil {
		rest := strings.TrimPrefix(strings.TrimPrefix(cleaned, best.importPath), "/")
		if rest == "" {
			return best.name, nil
		}
		return best.name + "/" + rest, nil
	}

	first, _, _ := strings.Cut(cleaned, "/")
	if _, ok := r.roots[first]; ok {
		return cleaned, nil
	}
	return "", fmt.Errorf("%w: origin %q", ErrRootNotFound, origin)
}

// Open returns a handle for a logical location. The handle is returned even
// when no root covers the location; Exists and Stat report the problem.
func (r *Registry) Open(location string) Handle {
	first, rest, _ := strings.Cut(location, "/")

	r.mu.RLock()
	root := r.roots[first]
	r.mu.RUnlock()

	if root == nil || rest == "" {
		return Handle{location: location}
	}
	return Handle{location: location, root: root, rel: rest}
}

func errNoRoot(location string) error {
	return fmt.Errorf("%w: no mounted root for %q", ErrAssetNotFound, location)
}
