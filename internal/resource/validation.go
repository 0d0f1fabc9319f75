package resource

import (
	"fmt"
	"strings"
)

// ValidateRootName checks that a root name is usable as the first segment of
// a logical location and as the package part of a "<package>:<path>" specifier.
func ValidateRootName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidRootName)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidRootName, name)
	}
	if strings.ContainsAny(name, "/\\:\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidRootName, name)
	}
	return nil
}
