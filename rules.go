package assetpath

import "strings"

// AssetRules lists, per element tag, the attributes whose values are asset
// specifiers. Tags and attribute names are matched case-insensitively.
type AssetRules map[string][]string

// DefaultAssetRules returns the default rules: link[href] and script[src].
func DefaultAssetRules() AssetRules {
	return AssetRules{
		"link":   {"href"},
		"script": {"src"},
	}
}

// With returns a copy of the rules with attrs added to tag.
func (r AssetRules) With(tag string, attrs ...string) AssetRules {
	out := r.clone()
	tag = strings.ToLower(tag)
	for _, a := range attrs {
		a = strings.ToLower(a)
		if !out.Matches(tag, a) {
			out[tag] = append(out[tag], a)
		}
	}
	return out
}

// Matches reports whether attr of tag holds an asset specifier.
func (r AssetRules) Matches(tag, attr string) bool {
	for _, a := range r[strings.ToLower(tag)] {
		if strings.EqualFold(a, attr) {
			return true
		}
	}
	return false
}

func (r AssetRules) clone() AssetRules {
	out := make(AssetRules, len(r))
	for tag, attrs := range r {
		lowered := make([]string, len(attrs))
		for i, a := range attrs {
			lowered[i] = strings.ToLower(a)
		}
		out[strings.ToLower(tag)] = lowered
	}
	return out
}
