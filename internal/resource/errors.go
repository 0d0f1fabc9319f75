package resource

import "errors"

// Sentinel errors for resource operations.
var (
	// ErrRootNotFound indicates no mounted root matches a package name or origin.
	ErrRootNotFound = errors.New("root not found")

	// ErrInvalidRootName indicates a root name is empty or contains
	// separators, colons or traversal segments.
	ErrInvalidRootName = errors.New("invalid root name")

	// ErrDuplicateRoot indicates a root name or import path is already mounted.
	ErrDuplicateRoot = errors.New("root already mounted")

	// ErrInvalidBasePath indicates the directory of a root is not a readable directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetNotFound indicates a location does not name a regular file.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrAssetRead indicates an I/O error occurred while reading an asset.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside a root.
	ErrPathTraversal = errors.New("path traversal detected")
)
