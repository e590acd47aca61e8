package transition

// Phase tag suffixes. Full tags are "<prefix>-<suffix>"; settled items carry
// an empty tag.
const (
	suffixEnter       = "enter"
	suffixEnterActive = "enter-active"
	suffixLeave       = "leave"
	suffixLeaveActive = "leave-active"
)

// Reconcile merges the live collection with the leaving registry into the
// final ordered output, one phase-tagged slot per item. Pure given its
// inputs.
//
// Output length = len(current) + len(leaving). The fill is two-pass, which
// is the invariant-preserving step:
//
//  1. Leaving entries claim their absolute merged indices first - their
//     positions were computed relative to the final merged layout, so they
//     must not shift.
//  2. Current items flow into the unclaimed slots in their own relative
//     order.
//
// This interleaving is exactly what a viewer expects: new items appear where
// inserted, removed items visually remain in their old slot while animating
// out.
//
// Leaving keys are tagged "<prefix>-leave" while in inactive, then
// "<prefix>-leave-active". Current keys in entering are tagged
// "<prefix>-enter" while in inactive, then "<prefix>-enter-active"; all
// other current keys carry an empty tag.
func Reconcile(current []Item, leaving Registry, entering, inactive map[string]bool, prefix string) []RenderedItem {
	out := make([]RenderedItem, len(current)+len(leaving))
	claimed := make([]bool, len(out))

	for _, e := range leaving {
		tag := prefix + "-" + suffixLeaveActive
		if inactive[e.Item.Key] {
			tag = prefix + "-" + suffixLeave
		}
		out[e.Index] = RenderedItem{Key: e.Item.Key, Payload: e.Item.Payload, Phase: tag}
		claimed[e.Index] = true
	}

	slot := 0
	for _, it := range current {
		for slot < len(out) && claimed[slot] {
			slot++
		}
		if slot >= len(out) {
			break
		}
		tag := ""
		if entering[it.Key] {
			if inactive[it.Key] {
				tag = prefix + "-" + suffixEnter
			} else {
				tag = prefix + "-" + suffixEnterActive
			}
		}
		out[slot] = RenderedItem{Key: it.Key, Payload: it.Payload, Phase: tag}
		claimed[slot] = true
	}

	return out
}
