package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Root is a named file system mounted in a Registry.
type Root struct {
	name       string
	importPath string
	fsys       fs.FS
	dir        string // absolute real path for directory roots, empty otherwise
}

// newDirRoot creates a Root for a directory on disk.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func newDirRoot(name, importPath, dir string) (*Root, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Containment checks compare real paths, so resolve symlinks up front.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &Root{
		name:       name,
		importPath: importPath,
		fsys:       os.DirFS(absPath),
		dir:        absPath,
	}, nil
}

// stat reports whether rel names a regular file inside the root.
func (r *Root) stat(rel string) error {
	if err := r.verifyPathContainment(rel); err != nil {
		return err
	}
	info, err := fs.Stat(r.fsys, rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return fmt.Errorf("%w: %s/%s", ErrAssetNotFound, r.name, rel)
		}
		return fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s/%s is not a regular file", ErrAssetNotFound, r.name, rel)
	}
	return nil
}

// readFile reads rel from the root.
func (r *Root) readFile(rel string) ([]byte, error) {
	if err := r.stat(rel); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(r.fsys, rel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return data, nil
}

// verifyPathContainment ensures rel does not leave a directory root,
// including through symlinks pointing outside it. In-memory and embedded
// roots rely on fs.ValidPath.
func (r *Root) verifyPathContainment(rel string) error {
	if !fs.ValidPath(rel) {
		return fmt.Errorf("%w: %q", ErrPathTraversal, rel)
	}
	if r.dir == "" {
		return nil
	}

	absFilePath := filepath.Join(r.dir, filepath.FromSlash(rel))

	// A missing file fails later on stat; the prefix check still applies.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	if !strings.HasPrefix(absFilePath, r.dir+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, rel, r.dir)
	}
	return nil
}
