package assetpath

import "errors"

// Sentinel errors for library operations.
var (
	// Resolution errors, raised by Resolve and Rewrite.
	ErrUnresolvablePackage = errors.New("package cannot be located")
	ErrMissingOrigin       = errors.New("component has no discoverable origin")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrInvalidSpecifier    = errors.New("invalid asset specifier")

	// Rendering errors.
	ErrIncompatiblePaths = errors.New("cannot compute path between source and target")
	ErrUnrenderedHandle  = errors.New("tree contains unrendered asset handles")

	// Resource layer errors.
	ErrInvalidMount = errors.New("invalid mount")
	ErrAssetRead    = errors.New("failed to read asset")
)

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}

// ensureKind guarantees err matches sentinel, wrapping it when a
// third-party Resources implementation returned an unrelated error.
func ensureKind(err, sentinel error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return wrapError(sentinel, err)
}
