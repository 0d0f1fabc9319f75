package assetpath

import "fmt"

// Render replaces every handle in tree with the path computed by strategy for
// the target location and turns each PathElement back into an Element.
//
// Before computing a path, the reference is recorded with the strategy when
// it implements Collector or AssetCollector. A nil strategy renders with a
// fresh RelativePathStrategy.
//
// Trees without handles are returned unchanged. On error no tree is returned;
// references recorded before the failure stay recorded.
func Render(tree Node, target string, strategy Strategy) (Node, error) {
	if strategy == nil {
		strategy = NewRelativePathStrategy()
	}
	collect := collectFunc(strategy)

	return walk(tree, func(n Node) (Node, error) {
		pe, ok := n.(*PathElement)
		if !ok {
			return n, nil
		}

		attrs := make([]Attr, len(pe.Attrs))
		for i, a := range pe.Attrs {
			hv, ok := a.Value.(HandleValue)
			if !ok {
				attrs[i] = a
				continue
			}
			if hv.Handle == nil {
				return nil, fmt.Errorf("<%s %s>: %w: nil handle", pe.Tag, a.Name, ErrIncompatiblePaths)
			}

			collect(AssetReference{Source: hv.Handle, Destination: hv.Handle.Location()})
			p, err := strategy.CalculatePath(hv.Handle, target)
			if err != nil {
				return nil, fmt.Errorf("<%s %s> for %s: %w", pe.Tag, a.Name, target, err)
			}
			attrs[i] = Attr{Name: a.Name, Value: StringValue(p)}
		}
		return &Element{Tag: pe.Tag, Attrs: attrs, Children: pe.Children}, nil
	})
}

func collectFunc(strategy Strategy) func(AssetReference) {
	switch s := strategy.(type) {
	case Collector:
		return s.Collect
	case AssetCollector:
		return func(ref AssetReference) {
			if set := s.CollectedAssets(); set != nil {
				set.Add(ref)
			}
		}
	default:
		return func(AssetReference) {}
	}
}
