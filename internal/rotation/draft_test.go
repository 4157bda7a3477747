package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actionList(ids ...string) []Action {
	actions := make([]Action, 0, len(ids))
	for _, id := range ids {
		actions = append(actions, Action{ID: id, SpellName: "spell-" + id, Target: TargetTarget, Weight: 1, Conditions: NewComposite()})
	}
	return actions
}

func ids(actions []Action) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.ID)
	}
	return out
}

func TestAddOrUpdateActionAppends(t *testing.T) {
	in := actionList("a", "b")
	out := AddOrUpdateAction(in, Action{ID: "c"})
	assert.Equal(t, []string{"a", "b", "c"}, ids(out))
	assert.Len(t, in, 2, "input must not change")
}

func TestAddOrUpdateActionReplacesInPlace(t *testing.T) {
	in := actionList("a", "b", "c")
	updated := Action{ID: "b", SpellName: "Pyroblast"}
	out := AddOrUpdateAction(in, updated)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"a", "b", "c"}, ids(out), "position preserved")
	assert.Equal(t, "Pyroblast", out[1].SpellName)
	assert.Equal(t, "spell-b", in[1].SpellName, "input must not change")
}

func TestRemoveAction(t *testing.T) {
	in := actionList("a", "b", "c")
	out := RemoveAction(in, "b")
	assert.Equal(t, []string{"a", "c"}, ids(out))

	same := RemoveAction(in, "nope")
	assert.Equal(t, []string{"a", "b", "c"}, ids(same), "unknown id is a no-op")
	assert.Len(t, in, 3)
}

func TestReorderMovesAndRestampsWeights(t *testing.T) {
	in := actionList("a", "b", "c", "d")
	out := Reorder(in, 0, 2)

	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(out))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(in), "input must not change")

	// First position gets the highest weight, descending by exactly 50.
	require.Len(t, out, 4)
	assert.Equal(t, float64(200), out[0].Weight)
	for i := 0; i < len(out)-1; i++ {
		assert.Equal(t, out[i+1].Weight+WeightStep, out[i].Weight)
	}
}

func TestReorderNoOpMoveIsIdempotent(t *testing.T) {
	in := actionList("a", "b", "c")
	once := Reorder(in, 1, 1)
	twice := Reorder(once, 1, 1)

	assert.Equal(t, ids(once), ids(twice))
	assert.Equal(t, once, twice)
}

func TestReorderClampsOutOfRangeIndices(t *testing.T) {
	in := actionList("a", "b", "c")

	out := Reorder(in, 0, 99)
	assert.Equal(t, []string{"b", "c", "a"}, ids(out))

	out = Reorder(in, -1, 1)
	assert.Equal(t, []string{"b", "a", "c"}, ids(out))
}

func TestReorderEmptyList(t *testing.T) {
	out := Reorder(nil, 0, 0)
	assert.Empty(t, out)
}
