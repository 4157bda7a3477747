package rotation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The exact document shape the builder persists and the model is prompted
// to produce.
const savedDocument = `{"actions":[{"id":"m5rdpelp4ig0kswi1i9","target":"Target","weight":1,"priority":0,"spellName":"Fireball","conditions":{"type":"Composite","groups":[{"operator":"AND","conditions":[{"type":"HP","value":22,"operator":">"}]}]},"interruptible":false},{"id":"m5snthh7acmslx8n5ri","target":"Self","weight":1,"priority":0,"spellName":"Ice Barrier","conditions":{"type":"Composite","groups":[{"operator":"NOT","conditions":[{"type":"Aura","stacks":{"count":0,"operator":">"},"target":"Self","auraName":"Ice Barrier","auraType":"Buff","duration":{"operator":">","remaining":0},"checkType":"presence","isPresent":true}]}]},"interruptible":true}]}`

func TestDecodeDocument(t *testing.T) {
	doc, err := DecodeDocument(json.RawMessage(savedDocument))
	require.NoError(t, err)
	require.Len(t, doc.Actions, 2)

	first := doc.Actions[0]
	assert.Equal(t, "Fireball", first.SpellName)
	assert.Equal(t, TargetTarget, first.Target)
	require.Len(t, first.Conditions.Groups, 1)
	hp, ok := first.Conditions.Groups[0].Conditions[0].(HPCondition)
	require.True(t, ok)
	assert.Equal(t, OpGT, hp.Operator)
	assert.Equal(t, float64(22), hp.Value)

	second := doc.Actions[1]
	require.Len(t, second.Conditions.Groups, 1)
	assert.Equal(t, LogicalNOT, second.Conditions.Groups[0].Operator)
	aura, ok := second.Conditions.Groups[0].Conditions[0].(AuraCondition)
	require.True(t, ok)
	assert.Equal(t, "Ice Barrier", aura.AuraName)
	assert.Equal(t, CheckPresence, aura.CheckType)
	assert.True(t, aura.IsPresent)
}

func TestDocumentRoundTrip(t *testing.T) {
	doc, err := DecodeDocument(json.RawMessage(savedDocument))
	require.NoError(t, err)

	encoded, err := json.Marshal(doc)
	require.NoError(t, err)

	again, err := DecodeDocument(encoded)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestDecodeDocumentRecoversMalformedData(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `garbage`},
		{"actions not an array", `{"actions": 7}`},
		{"unknown condition kind", `{"actions":[{"id":"x","conditions":{"type":"Composite","groups":[{"operator":"AND","conditions":[{"type":"Threat","value":1}]}]}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeDocument(json.RawMessage(tt.raw))
			require.Error(t, err)
			var serr *SerializationError
			assert.ErrorAs(t, err, &serr)
			assert.Empty(t, doc.Actions, "malformed data degrades to an empty list")
		})
	}
}

func TestDecodeDocumentEmptyInput(t *testing.T) {
	doc, err := DecodeDocument(nil)
	require.NoError(t, err)
	assert.NotNil(t, doc.Actions)
	assert.Empty(t, doc.Actions)
}

func TestLoadIntoEditor(t *testing.T) {
	editor, err := LoadIntoEditor("Frost Combo", json.RawMessage(savedDocument))
	require.NoError(t, err)
	assert.Equal(t, "Frost Combo", editor.Name)
	assert.Len(t, editor.Actions, 2)

	broken, err := LoadIntoEditor("Broken", json.RawMessage(`{"actions":"nope"}`))
	require.Error(t, err)
	assert.Equal(t, "Broken", broken.Name)
	assert.Empty(t, broken.Actions, "corrupted draft loads empty instead of failing")
}

func TestNewActionDefaults(t *testing.T) {
	a := NewAction()
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, TargetTarget, a.Target)
	assert.Equal(t, float64(1), a.Weight)
	assert.Equal(t, 0, a.Priority)
	assert.False(t, a.Interruptible)
	assert.Equal(t, CompositeType, a.Conditions.Type)
	assert.Empty(t, a.Conditions.Groups)

	b := NewAction()
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDefaultConditionShapes(t *testing.T) {
	hp, ok := DefaultCondition(TypeHP).(HPCondition)
	require.True(t, ok)
	assert.Equal(t, OpGT, hp.Operator)
	assert.Zero(t, hp.Value)

	aura, ok := DefaultCondition(TypeAura).(AuraCondition)
	require.True(t, ok)
	assert.Equal(t, TargetSelf, aura.Target)
	assert.Equal(t, AuraBuff, aura.AuraType)
	assert.Equal(t, CheckPresence, aura.CheckType)
	assert.True(t, aura.IsPresent)
	assert.Equal(t, OpGT, aura.Duration.Operator)
	assert.Equal(t, OpGT, aura.Stacks.Operator)

	cd, ok := DefaultCondition(TypeCooldown).(CooldownCondition)
	require.True(t, ok)
	assert.True(t, cd.IsReady)
	assert.Equal(t, OpEQ, cd.Operator)

	assert.Nil(t, DefaultCondition("Threat"))
}

func TestMarshalConditionCarriesTypeTag(t *testing.T) {
	raw, err := MarshalCondition(HPCondition{Operator: OpGT, Value: 50})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "HP", decoded["type"])
	assert.Equal(t, ">", decoded["operator"])
	assert.Equal(t, float64(50), decoded["value"])
}
