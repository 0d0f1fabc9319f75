package resource

// Handle identifies a located asset by its logical location.
// Handles are values: copying one is safe and they are never mutated.
type Handle struct {
	location string
	root     *Root  // nil when no mounted root covers the location
	rel      string // path inside root
}

// Location returns the logical location, e.g. "mysite/static/styles.css".
func (h Handle) Location() string { return h.location }

// String returns the location.
func (h Handle) String() string { return h.location }

// Exists reports whether the handle names a regular file in a mounted root.
func (h Handle) Exists() bool {
	return h.Stat() == nil
}

// Stat returns nil when the handle names a readable regular file, or the
// reason it does not.
func (h Handle) Stat() error {
	if h.root == nil {
		return errNoRoot(h.location)
	}
	return h.root.stat(h.rel)
}

// ReadBytes returns the asset content.
func (h Handle) ReadBytes() ([]byte, error) {
	if h.root == nil {
		return nil, errNoRoot(h.location)
	}
	return h.root.readFile(h.rel)
}
