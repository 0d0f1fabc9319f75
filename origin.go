package assetpath

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Originer is implemented by components that declare their origin
// explicitly. The origin is a Go import path or a logical directory,
// e.g. "example.com/mysite/components/heading" or "mysite/components/heading".
type Originer interface {
	AssetOrigin() string
}

// OriginOf returns the origin of a component.
//
// Components implementing Originer report their own origin. Otherwise a
// function component is attributed to the package defining the function, and
// any other value to the package defining its (pointer-dereferenced) named
// type. Unnamed types and nil have no origin.
//
// Origins are used as given apart from surrounding slashes: a Go import path
// is always a directory, so ".../card/card" names the nested package.
func OriginOf(component any) (string, error) {
	if component == nil {
		return "", fmt.Errorf("%w: nil component", ErrMissingOrigin)
	}
	if o, ok := component.(Originer); ok {
		origin := o.AssetOrigin()
		if origin == "" {
			return "", fmt.Errorf("%w: %T reports an empty origin", ErrMissingOrigin, component)
		}
		return cleanOrigin(origin), nil
	}

	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Func {
		pkg := funcPackage(v)
		if pkg == "" {
			return "", fmt.Errorf("%w: function %T", ErrMissingOrigin, component)
		}
		return cleanOrigin(pkg), nil
	}

	t := v.Type()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return "", fmt.Errorf("%w: %T is not a named type", ErrMissingOrigin, component)
	}
	return cleanOrigin(t.PkgPath()), nil
}

// funcPackage returns the import path of the package defining fn.
func funcPackage(fn reflect.Value) string {
	if fn.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return ""
	}
	return packageOfSymbol(f.Name())
}

// packageOfSymbol extracts the import path from a runtime symbol such as
// "example.com/site/heading.(*Card).Render-fm" or "example.com/site.F[...]".
func packageOfSymbol(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	start := strings.LastIndexByte(name, '/') + 1
	dot := strings.IndexByte(name[start:], '.')
	if dot < 0 {
		return ""
	}
	return name[:start+dot]
}

func cleanOrigin(origin string) string {
	return strings.Trim(origin, "/")
}
