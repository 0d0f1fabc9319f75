package assetpath

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/alnah/go-assetpath/internal/pathutil"
)

// Strategy computes the string path that replaces a handle when a tree is
// rendered for a given target location.
type Strategy interface {
	CalculatePath(source Handle, target string) (string, error)
}

// Collector is implemented by strategies that record the assets referenced
// by rendered trees.
type Collector interface {
	Collect(ref AssetReference)
}

// AssetCollector is implemented by strategies exposing their collected set.
type AssetCollector interface {
	CollectedAssets() *AssetSet
}

// AssetReference records that the asset behind Source must be made available
// at Destination, a location relative to the output root.
type AssetReference struct {
	Source      Handle
	Destination string
}

// Key returns the identity used for de-duplication.
func (r AssetReference) Key() string {
	return r.Destination
}

// AssetSet is a de-duplicated set of asset references keyed by destination.
// It is safe for concurrent use. When two references share a destination the
// first one added is kept.
type AssetSet struct {
	mu   sync.Mutex
	refs map[string]AssetReference
}

// NewAssetSet creates an empty AssetSet.
func NewAssetSet() *AssetSet {
	return &AssetSet{refs: make(map[string]AssetReference)}
}

// Add inserts ref and reports whether it was new.
func (s *AssetSet) Add(ref AssetReference) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ref.Key()
	if _, ok := s.refs[key]; ok {
		return false
	}
	s.refs[key] = ref
	return true
}

// Contains reports whether a reference with the given destination is present.
func (s *AssetSet) Contains(destination string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.refs[destination]
	return ok
}

// Get returns the reference stored for destination.
func (s *AssetSet) Get(destination string) (AssetReference, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, ok := s.refs[destination]
	return ref, ok
}

// Len returns the number of references.
func (s *AssetSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.refs)
}

// All returns a snapshot of the references ordered by destination.
func (s *AssetSet) All() []AssetReference {
	s.mu.Lock()
	out := make([]AssetReference, 0, len(s.refs))
	for _, ref := range s.refs {
		out = append(out, ref)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Destination < out[j].Destination
	})
	return out
}

// Each calls fn for every reference in destination order until fn returns false.
// It iterates over a snapshot, so fn may add to the set.
func (s *AssetSet) Each(fn func(AssetReference) bool) {
	for _, ref := range s.All() {
		if !fn(ref) {
			return
		}
	}
}

// RelativePathStrategy renders handles as paths relative to the target page,
// or under a site prefix when one is set, and collects every asset it sees.
//
// One strategy is meant to be shared by all pages of a build so that the
// collected set covers the whole site.
type RelativePathStrategy struct {
	sitePrefix string
	assets     *AssetSet
}

// StrategyOption configures a RelativePathStrategy.
type StrategyOption func(*RelativePathStrategy)

// WithSitePrefix addresses every asset from prefix, the path the site is
// deployed under, instead of relative to the page. Trailing slashes are
// dropped; an empty prefix keeps page-relative paths.
func WithSitePrefix(prefix string) StrategyOption {
	return func(s *RelativePathStrategy) {
		if prefix == "" {
			s.sitePrefix = ""
			return
		}
		s.sitePrefix = path.Clean(prefix)
	}
}

// NewRelativePathStrategy creates a strategy with an empty collected set.
func NewRelativePathStrategy(opts ...StrategyOption) *RelativePathStrategy {
	s := &RelativePathStrategy{assets: NewAssetSet()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SitePrefix returns the configured prefix, or "".
func (s *RelativePathStrategy) SitePrefix() string {
	return s.sitePrefix
}

// CalculatePath returns the path from the directory of target to the source
// location. An empty target stands for a page at the output root.
//
// With a site prefix the target is only validated: the result is
// prefix + "/" + source location, so the asset is addressed from the site
// root under the subdirectory the site is deployed to.
//
// Returns ErrIncompatiblePaths when the source is empty, or when either
// location is absolute or climbs above the output root.
func (s *RelativePathStrategy) CalculatePath(source Handle, target string) (string, error) {
	if source == nil {
		return "", fmt.Errorf("%w: nil source handle", ErrIncompatiblePaths)
	}
	src, err := pathutil.Clean(source.Location())
	if err != nil {
		return "", fmt.Errorf("%w: source %q: %v", ErrIncompatiblePaths, source.Location(), err)
	}
	dir := "."
	if target != "" {
		dst, err := pathutil.Clean(target)
		if err != nil {
			return "", fmt.Errorf("%w: target %q: %v", ErrIncompatiblePaths, target, err)
		}
		dir = pathutil.Dir(dst)
	}

	switch {
	case s.sitePrefix == "":
		return pathutil.Rel(dir, src), nil
	case strings.HasSuffix(s.sitePrefix, "/"):
		return s.sitePrefix + src, nil
	default:
		return s.sitePrefix + "/" + src, nil
	}
}

// Collect implements Collector.
func (s *RelativePathStrategy) Collect(ref AssetReference) {
	s.assets.Add(ref)
}

// CollectedAssets implements AssetCollector.
func (s *RelativePathStrategy) CollectedAssets() *AssetSet {
	return s.assets
}

// Compile-time interface checks.
var (
	_ Strategy       = (*RelativePathStrategy)(nil)
	_ Collector      = (*RelativePathStrategy)(nil)
	_ AssetCollector = (*RelativePathStrategy)(nil)
)
