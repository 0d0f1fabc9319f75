// Package resource backs asset handles with mounted file systems.
//
// # Mount Architecture
//
// A Registry holds named roots. Each root is a single-segment logical name
// mapped onto an fs.FS:
//
//	Registry
//	    │
//	    ├── "assetpath"  - built-in package, go:embed filesystem
//	    ├── "mysite"     - directory on disk (MountDir)
//	    └── "theme"      - any fs.FS (MountFS), e.g. an embed.FS
//
// A logical location is "<root>/<path inside the root>", for example
// "mysite/components/heading/static/styles.css". Locations are the stable
// identity of a Handle.
//
// Roots may also declare the Go import path they correspond to, so that a
// component's package path ("github.com/acme/mysite/components/heading")
// maps onto the logical directory "mysite/components/heading".
//
// # Security
//
// Root names are validated. Directory roots resolve symlinks and verify
// every opened path stays within the mounted directory.
package resource
