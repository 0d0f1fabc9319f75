package assetpath

// Handle is a read-only capability identifying a located asset.
//
// Location is the stable identity of a handle: two handles with the same
// location denote the same asset, and Location is what callers should use
// as a map key. Handles are never mutated and may be shared across
// goroutines.
type Handle interface {
	// Location returns the slash-separated logical location,
	// e.g. "mysite/components/heading/static/styles.css".
	Location() string

	// Exists reports whether the asset is present in the backing resource layer.
	Exists() bool

	// ReadBytes returns the asset content.
	ReadBytes() ([]byte, error)

	// String returns the location.
	String() string
}

// statHandle is implemented by handles that can explain why they do not exist.
type statHandle interface {
	Stat() error
}
