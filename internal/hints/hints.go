// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/alnah/go-assetpath/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config, "assetpath init", or the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := `use --config /path/to/file.yaml or run "assetpath init"`

	for _, p := range searchedPaths {
		if strings.Contains(filepathToSlash(p), "/go-assetpath/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForUnresolvablePackage lists the mounted packages.
func ForUnresolvablePackage(mounted []string) string {
	if len(mounted) == 0 {
		return format("no packages are mounted; add a mounts entry to the config")
	}
	return format("mounted packages: " + strings.Join(mounted, ", ") + "; add a mounts entry for others")
}

// ForMissingOrigin explains how relative specifiers find their directory.
func ForMissingOrigin() string {
	return format("relative specifiers need an origin: set pages[].origin, use a package specifier (name:path), or mount the component's import path")
}

// ForAssetNotFound returns hints for missing assets.
func ForAssetNotFound() string {
	return format("relative specifiers resolve against the component directory; use name:path to start from a package root")
}

// ForIncompatiblePaths returns hints for path calculation errors.
func ForIncompatiblePaths() string {
	return format("page outputs must be relative paths inside the output directory")
}

// ForNoContentSlot returns hints for templates without a content slot.
func ForNoContentSlot() string {
	return format(`add data-slot="content" to the template element that receives page content`)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForServeListen returns hints for listen errors of the development server.
// Inside containers a loopback address is unreachable from the host.
func ForServeListen(addr string) string {
	var hints []string

	if strings.Contains(addr, "address already in use") {
		hints = append(hints, "another process uses the port; pass --addr with a free port")
	}
	if IsInContainer() && (strings.Contains(addr, "127.0.0.1") || strings.Contains(addr, "localhost")) {
		hints = append(hints, "inside a container, listen on 0.0.0.0 to reach the server from the host")
	}

	return formatHints(hints)
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
