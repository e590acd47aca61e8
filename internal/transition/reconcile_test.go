package transition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(out []RenderedItem) []string {
	ks := make([]string, len(out))
	for i, r := range out {
		ks[i] = r.Key
	}
	return ks
}

func phasesOf(out []RenderedItem) []string {
	ps := make([]string, len(out))
	for i, r := range out {
		ps[i] = r.Phase
	}
	return ps
}

func TestReconcile_CurrentOnly(t *testing.T) {
	out := Reconcile(items("a", "b", "c"), nil, nil, nil, "m")

	assert.Equal(t, []string{"a", "b", "c"}, keysOf(out))
	assert.Equal(t, []string{"", "", ""}, phasesOf(out))
}

func TestReconcile_LeavingClaimsAbsoluteSlot(t *testing.T) {
	leaving := Registry{entry("b", 1)}

	out := Reconcile(items("a", "c"), leaving, nil, nil, "m")
	require.Len(t, out, 3)
	assert.Equal(t, []string{"a", "b", "c"}, keysOf(out))
	assert.Equal(t, "m-leave-active", out[1].Phase)
}

func TestReconcile_InactiveLeavingGetsLeaveTag(t *testing.T) {
	leaving := Registry{entry("b", 1)}
	inactive := map[string]bool{"b": true}

	out := Reconcile(items("a", "c"), leaving, nil, inactive, "fade")
	assert.Equal(t, "fade-leave", out[1].Phase)
}

func TestReconcile_EnteringTags(t *testing.T) {
	entering := map[string]bool{"d": true}

	out := Reconcile(items("a", "d"), nil, entering, map[string]bool{"d": true}, "m")
	assert.Equal(t, "m-enter", out[1].Phase)

	out = Reconcile(items("a", "d"), nil, entering, nil, "m")
	assert.Equal(t, "m-enter-active", out[1].Phase)
	assert.Equal(t, "", out[0].Phase)
}

func TestReconcile_InterleavesLeavingAndEntering(t *testing.T) {
	// Live [a d c] with b still leaving at merged slot 1: leaving claims its
	// slot first, current items flow into the gaps in their own order.
	leaving := Registry{entry("b", 1)}
	entering := map[string]bool{"d": true}

	out := Reconcile(items("a", "d", "c"), leaving, entering, nil, "m")
	require.Len(t, out, 4)
	assert.Equal(t, []string{"a", "b", "d", "c"}, keysOf(out))
	assert.Equal(t, []string{"", "m-leave-active", "m-enter-active", ""}, phasesOf(out))
}

func TestReconcile_MultipleLeavingEntries(t *testing.T) {
	leaving := Registry{entry("x", 2), entry("y", 3)}

	out := Reconcile(items("v", "w", "z"), leaving, nil, nil, "m")
	require.Len(t, out, 5)
	assert.Equal(t, []string{"v", "w", "x", "y", "z"}, keysOf(out))
}

func TestReconcile_EmptyInputs(t *testing.T) {
	assert.Empty(t, Reconcile(nil, nil, nil, nil, "m"))
}

func TestReconcile_LeavingOnly(t *testing.T) {
	leaving := Registry{entry("a", 0)}

	out := Reconcile(nil, leaving, nil, map[string]bool{"a": true}, "m")
	require.Len(t, out, 1)
	assert.Equal(t, "m-leave", out[0].Phase)
}

func TestReconcile_OutputIsGapless(t *testing.T) {
	leaving := Registry{entry("q", 0), entry("r", 3)}

	out := Reconcile(items("a", "b", "c"), leaving, nil, nil, "m")
	require.Len(t, out, 5)
	seen := make(map[string]bool)
	for i, item := range out {
		require.NotEmpty(t, item.Key, "slot %d must be filled", i)
		require.False(t, seen[item.Key], "key %s appears twice", item.Key)
		seen[item.Key] = true
	}
}

func TestReconcile_PayloadPassesThrough(t *testing.T) {
	current := []Item{{Key: "a", Payload: 7}}

	out := Reconcile(current, nil, nil, nil, "m")
	require.Len(t, out, 1)
	assert.Equal(t, 7, out[0].Payload)
}
