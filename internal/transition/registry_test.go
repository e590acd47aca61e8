package transition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(key string, index int) PositionedItem {
	return PositionedItem{Item: Item{Key: key, Payload: key}, Index: index}
}

func registryKeys(r Registry) []string {
	out := make([]string, len(r))
	for i, e := range r {
		out[i] = e.Item.Key
	}
	return out
}

func registryIndices(r Registry) []int {
	out := make([]int, len(r))
	for i, e := range r {
		out[i] = e.Index
	}
	return out
}

func TestRegistry_MergeRemoved_IntoEmpty(t *testing.T) {
	var r Registry

	r = r.MergeRemoved([]PositionedItem{entry("b", 1)})
	require.Len(t, r, 1)
	assert.Equal(t, "b", r[0].Item.Key)
	assert.Equal(t, 1, r[0].Index, "with no existing entries the raw index is the merged index")
}

func TestRegistry_MergeRemoved_EmptyBatchReturnsReceiver(t *testing.T) {
	r := Registry{entry("x", 0)}
	assert.Equal(t, r, r.MergeRemoved(nil))
}

func TestRegistry_MergeRemoved_OffsetsPastExistingEntries(t *testing.T) {
	// x already leaving at merged index 2; a later removal with raw index 2
	// lands after it.
	r := Registry{entry("x", 2)}

	r = r.MergeRemoved([]PositionedItem{entry("y", 2)})
	assert.Equal(t, []string{"x", "y"}, registryKeys(r))
	assert.Equal(t, []int{2, 3}, registryIndices(r))
}

func TestRegistry_MergeRemoved_ConsecutiveExistingEntries(t *testing.T) {
	// Entries at 2,3,4 all sit at or before the sliding landing slot, so a
	// removal with raw index 2 is pushed past all three.
	r := Registry{entry("p", 2), entry("q", 3), entry("s", 4)}

	r = r.MergeRemoved([]PositionedItem{entry("t", 2)})
	assert.Equal(t, []int{2, 3, 4, 5}, registryIndices(r))
	assert.Equal(t, "t", r[3].Item.Key)
}

func TestRegistry_MergeRemoved_ExistingEntryAfterRawIndex(t *testing.T) {
	r := Registry{entry("z", 5)}

	r = r.MergeRemoved([]PositionedItem{entry("a", 1)})
	assert.Equal(t, []string{"a", "z"}, registryKeys(r))
	assert.Equal(t, []int{1, 5}, registryIndices(r))
}

func TestRegistry_MergeRemoved_BatchOfAdjacentRemovals(t *testing.T) {
	// Two adjacent items removed in one update keep distinct, ordered merged
	// indices straight from their raw positions.
	var r Registry

	r = r.MergeRemoved([]PositionedItem{entry("x", 1), entry("y", 2)})
	assert.Equal(t, []string{"x", "y"}, registryKeys(r))
	assert.Equal(t, []int{1, 2}, registryIndices(r))
}

func TestRegistry_Destroy_CompactsIndices(t *testing.T) {
	r := Registry{entry("a", 1), entry("b", 3), entry("c", 4)}

	r = r.Destroy("b")
	assert.Equal(t, []string{"a", "c"}, registryKeys(r))
	assert.Equal(t, []int{1, 3}, registryIndices(r), "entries past the destroyed slot shift down")
}

func TestRegistry_Destroy_UntrackedKeyIsNoop(t *testing.T) {
	r := Registry{entry("a", 0)}
	assert.Equal(t, r, r.Destroy("nope"))
}

func TestRegistry_Destroy_DoesNotMutateReceiver(t *testing.T) {
	r := Registry{entry("a", 0), entry("b", 2)}

	_ = r.Destroy("a")
	assert.Equal(t, []int{0, 2}, registryIndices(r))
}

func TestRegistry_Reinstate_RemovesWithoutCompacting(t *testing.T) {
	r := Registry{entry("a", 1), entry("b", 2), entry("c", 4)}

	r = r.Reinstate("b")
	assert.Equal(t, []string{"a", "c"}, registryKeys(r))
	assert.Equal(t, []int{1, 4}, registryIndices(r),
		"reinstated slot is reclaimed by the live collection, remaining indices stay put")
}

func TestRegistry_Reinstate_UntrackedKeyIsNoop(t *testing.T) {
	r := Registry{entry("a", 0)}
	assert.Equal(t, r, r.Reinstate("nope"))
}

func TestRegistry_Contains(t *testing.T) {
	r := Registry{entry("a", 0)}
	assert.True(t, r.Contains("a"))
	assert.False(t, r.Contains("b"))
	assert.False(t, Registry(nil).Contains("a"))
}

func TestRegistry_SequentialRemovalsStayOrdered(t *testing.T) {
	// [v w x y z] -> remove x -> live [v w y z], registry {x@2}.
	var r Registry
	r = r.MergeRemoved([]PositionedItem{entry("x", 2)})

	// Then remove y, raw index 2 in the shrunken live collection. It must
	// land after x, preserving original relative order.
	r = r.MergeRemoved([]PositionedItem{entry("y", 2)})

	assert.Equal(t, []string{"x", "y"}, registryKeys(r))
	assert.Equal(t, []int{2, 3}, registryIndices(r))
}
