package resource

import "embed"

//go:embed static/*
var builtinFS embed.FS

// Built-in package identity.
const (
	BuiltinName       = "assetpath"
	BuiltinImportPath = "github.com/alnah/go-assetpath"
)

// MountBuiltin mounts the embedded "assetpath" package, which ships shared
// stylesheets such as "assetpath:static/reset.css".
func (r *Registry) MountBuiltin() error {
	return r.MountFS(BuiltinName, BuiltinImportPath, builtinFS)
}
