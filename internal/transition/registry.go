package transition

import "sort"

// Registry is the ordered set of removed-but-still-rendering items.
//
// Entries are ordered ascending by merged index, where "merged" means the
// coordinate space of the final output that interleaves present and leaving
// items. INVARIANTS:
//   - a key in the registry is never simultaneously present in the live
//     collection
//   - merged indices are unique, and dense once interleaved with the
//     indices implicitly occupied by the live items
//
// All operations are pure: they return a new registry and never mutate the
// receiver. The zero value is an empty registry.
type Registry []PositionedItem

// MergeRemoved folds a batch of newly removed items into the registry.
//
// Each removed item carries its raw index - its index in the live collection
// just before removal. The merged index is computed by walking the existing
// registry: every existing entry whose merged index is <= raw+offset-so-far
// occupies a slot ahead of where the new arrival would naively land, so the
// offset grows past it. The batch must be ordered by raw index ascending,
// which is what Diff produces.
func (r Registry) MergeRemoved(removed []PositionedItem) Registry {
	if len(removed) == 0 {
		return r
	}

	merged := make(Registry, 0, len(r)+len(removed))
	merged = append(merged, r...)

	for _, rm := range removed {
		offset := 0
		for _, existing := range r {
			if existing.Index <= rm.Index+offset {
				offset++
			}
		}
		merged = append(merged, PositionedItem{Item: rm.Item, Index: rm.Index + offset})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Index < merged[j].Index
	})
	return merged
}

// Destroy removes the entry matching key and compacts the remaining merged
// indices: every entry past the removed one shifts down by one. This keeps
// indices dense so the reconciler can fill a single contiguous output with
// no gaps.
//
// Destroying an untracked key returns the registry unchanged.
func (r Registry) Destroy(key string) Registry {
	pos := r.find(key)
	if pos < 0 {
		return r
	}

	removedIndex := r[pos].Index
	out := make(Registry, 0, len(r)-1)
	for i, e := range r {
		if i == pos {
			continue
		}
		if e.Index > removedIndex {
			e.Index--
		}
		out = append(out, e)
	}
	return out
}

// Reinstate removes a leaving key from the registry entirely, without
// compacting: the key has reappeared in the live collection, so its position
// is governed by the live collection again and its old merged slot is simply
// reclaimed by the fill pass. The caller is responsible for cancelling the
// key's pending remove timer.
//
// Reinstating an untracked key returns the registry unchanged.
func (r Registry) Reinstate(key string) Registry {
	pos := r.find(key)
	if pos < 0 {
		return r
	}

	out := make(Registry, 0, len(r)-1)
	out = append(out, r[:pos]...)
	out = append(out, r[pos+1:]...)
	return out
}

// Contains reports whether key is currently leaving.
func (r Registry) Contains(key string) bool {
	return r.find(key) >= 0
}

func (r Registry) find(key string) int {
	for i, e := range r {
		if e.Item.Key == key {
			return i
		}
	}
	return -1
}
