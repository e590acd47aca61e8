package transition

// noDiff is the shared empty result returned whenever a comparison finds no
// difference. Callers can compare against it by identity (or just check the
// length) to skip redundant downstream recomputation.
var noDiff = []PositionedItem{}

// Diff returns the items present in reference whose key is absent from
// comparison, each paired with its index within reference.
//
// Called twice per update cycle: Diff(old, new) yields removed items and
// Diff(new, old) yields added items. O(n+m) via a key-membership lookup
// built from comparison. Pure; empty collections are valid inputs.
func Diff(reference, comparison []Item) []PositionedItem {
	present := make(map[string]struct{}, len(comparison))
	for _, it := range comparison {
		present[it.Key] = struct{}{}
	}

	var out []PositionedItem
	for i, it := range reference {
		if _, ok := present[it.Key]; !ok {
			out = append(out, PositionedItem{Item: it, Index: i})
		}
	}
	if out == nil {
		return noDiff
	}
	return out
}
