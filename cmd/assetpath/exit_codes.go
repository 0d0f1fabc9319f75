package main

import (
	"errors"
	"os"

	"github.com/alnah/go-assetpath"
	"github.com/alnah/go-assetpath/internal/config"
	"github.com/alnah/go-assetpath/internal/dateutil"
	"github.com/alnah/go-assetpath/internal/fileutil"
	"github.com/alnah/go-assetpath/internal/pipeline"
)

// Exit codes for the assetpath CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All pages built or checked
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitAsset   = 4 // An asset reference could not be resolved or rendered
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Asset resolution errors (exit 4)
	if errors.Is(err, assetpath.ErrUnresolvablePackage) ||
		errors.Is(err, assetpath.ErrMissingOrigin) ||
		errors.Is(err, assetpath.ErrAssetNotFound) ||
		errors.Is(err, assetpath.ErrInvalidSpecifier) ||
		errors.Is(err, assetpath.ErrIncompatiblePaths) ||
		errors.Is(err, assetpath.ErrUnrenderedHandle) ||
		errors.Is(err, pipeline.ErrNoContentSlot) ||
		errors.Is(err, pipeline.ErrTemplateParse) {
		return ExitAsset
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, assetpath.ErrAssetRead) ||
		errors.Is(err, pipeline.ErrTemplateRead) ||
		errors.Is(err, fileutil.ErrNotADirectory) ||
		errors.Is(err, fileutil.ErrPathIsDir) ||
		errors.Is(err, ErrWritePage) ||
		errors.Is(err, ErrWriteManifest) ||
		errors.Is(err, ErrConfigExists) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrFieldRequired) ||
		errors.Is(err, config.ErrDuplicateEntry) ||
		errors.Is(err, assetpath.ErrInvalidMount) ||
		errors.Is(err, pipeline.ErrInvalidPage) ||
		errors.Is(err, fileutil.ErrOutsideRoot) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, ErrNoPages) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnexpectedArgs) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
