package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConditionHPBoundaries(t *testing.T) {
	assert.True(t, ValidateCondition(HPCondition{Operator: OpGT, Value: 100}))
	assert.True(t, ValidateCondition(HPCondition{Operator: OpGT, Value: 0}))
	assert.False(t, ValidateCondition(HPCondition{Operator: OpGT, Value: 101}))
	assert.False(t, ValidateCondition(HPCondition{Operator: OpGT, Value: -1}))
}

func TestValidateCondition(t *testing.T) {
	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"aura with name", AuraCondition{AuraName: "Clearcasting"}, true},
		{"aura empty name", AuraCondition{AuraName: ""}, false},
		{"resource non-negative", ResourceCondition{Resource: ResourceMana, Value: 0}, true},
		{"resource negative", ResourceCondition{Resource: ResourceMana, Value: -5}, false},
		{"cooldown ready ignores value", CooldownCondition{SpellName: "Combustion", IsReady: true, Value: -10}, true},
		{"cooldown negative value", CooldownCondition{SpellName: "Combustion", Value: -1}, false},
		{"cooldown empty spell", CooldownCondition{SpellName: "", IsReady: true}, false},
		{"charges valid", ChargesCondition{SpellName: "Fire Blast", Value: 2}, true},
		{"charges empty spell", ChargesCondition{SpellName: "", Value: 2}, false},
		{"charges negative", ChargesCondition{SpellName: "Fire Blast", Value: -1}, false},
		{"stacks valid", StacksCondition{AuraName: "Hot Streak", Value: 1}, true},
		{"stacks empty aura", StacksCondition{AuraName: "", Value: 1}, false},
		{"stacks negative", StacksCondition{AuraName: "Hot Streak", Value: -1}, false},
		{"unknown kind fails closed", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCondition(tt.cond))
		})
	}
}

func TestDefaultConditionsValidatePerBranch(t *testing.T) {
	// Defaults must satisfy every numeric rule of their active branch;
	// only the empty name fields are left for the user to fill in.
	assert.True(t, ValidateCondition(DefaultCondition(TypeHP)))
	assert.True(t, ValidateCondition(DefaultCondition(TypeResource)))
	assert.False(t, ValidateCondition(DefaultCondition(TypeAura)), "blank aura name")
	assert.False(t, ValidateCondition(DefaultCondition(TypeCooldown)), "blank spell name")
}

func TestValidateCompositeReportsPosition(t *testing.T) {
	cc := CompositeCondition{
		Type: CompositeType,
		Groups: []ConditionGroup{
			{Operator: LogicalAND, Conditions: []Condition{HPCondition{Operator: OpGT, Value: 50}}},
			{Operator: LogicalOR, Conditions: []Condition{
				HPCondition{Operator: OpGT, Value: 20},
				HPCondition{Operator: OpGT, Value: 150},
			}},
		},
	}
	err := ValidateComposite(cc)
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, 1, verr.GroupIndex)
	assert.Equal(t, 1, verr.ConditionIndex)
	assert.Equal(t, "value", verr.Field)
}

func TestValidateDocumentReportsActionIndex(t *testing.T) {
	doc := Document{Actions: []Action{
		{ID: "a", Conditions: NewComposite()},
		{ID: "b", Conditions: CompositeCondition{
			Type: CompositeType,
			Groups: []ConditionGroup{
				{Operator: LogicalAND, Conditions: []Condition{AuraCondition{AuraName: ""}}},
			},
		}},
	}}
	err := ValidateDocument(doc)
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, 1, verr.ActionIndex)
	assert.Equal(t, "auraName", verr.Field)
}
