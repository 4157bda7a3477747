package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mageState() CharacterState {
	return CharacterState{
		Units: map[Target]UnitState{
			TargetSelf: {
				HealthPct: 80,
				Auras: map[string]AuraState{
					"Clearcasting": {Type: AuraBuff, Stacks: 3, Remaining: 12},
				},
			},
			TargetTarget: {
				HealthPct: 35,
				Auras: map[string]AuraState{
					"Ignite": {Type: AuraDebuff, Stacks: 1, Remaining: 2},
				},
			},
		},
		Resources: map[ResourceKind]float64{ResourceMana: 60},
		Cooldowns: map[string]float64{"Combustion": 30},
		Charges:   map[string]int{"Fire Blast": 2},
	}
}

func TestEvaluateLeafConditions(t *testing.T) {
	state := mageState()
	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"hp above", HPCondition{Operator: OpGT, Value: 50}, true},
		{"hp below", HPCondition{Operator: OpLT, Value: 50}, false},
		{"aura present", AuraCondition{Target: TargetSelf, AuraName: "Clearcasting", AuraType: AuraBuff, CheckType: CheckPresence, IsPresent: true}, true},
		{"aura absent expected", AuraCondition{Target: TargetSelf, AuraName: "Combustion", AuraType: AuraBuff, CheckType: CheckPresence, IsPresent: false}, true},
		{"aura wrong type not present", AuraCondition{Target: TargetSelf, AuraName: "Clearcasting", AuraType: AuraDebuff, CheckType: CheckPresence, IsPresent: true}, false},
		{"aura duration", AuraCondition{Target: TargetTarget, AuraName: "Ignite", AuraType: AuraDebuff, CheckType: CheckDuration, Duration: DurationCheck{Remaining: 3, Operator: OpLT}}, true},
		{"aura stacks", AuraCondition{Target: TargetSelf, AuraName: "Clearcasting", AuraType: AuraBuff, CheckType: CheckStacks, Stacks: StacksCheck{Count: 3, Operator: OpGTE}}, true},
		{"resource", ResourceCondition{Resource: ResourceMana, Operator: OpGTE, Value: 50}, true},
		{"resource missing pool", ResourceCondition{Resource: ResourceRage, Operator: OpGT, Value: 0}, false},
		{"cooldown not ready", CooldownCondition{SpellName: "Combustion", IsReady: true}, false},
		{"cooldown remaining", CooldownCondition{SpellName: "Combustion", Operator: OpLTE, Value: 30}, true},
		{"unknown spell ready", CooldownCondition{SpellName: "Pyroblast", IsReady: true}, true},
		{"charges", ChargesCondition{SpellName: "Fire Blast", Operator: OpEQ, Value: 2}, true},
		{"stacks on self", StacksCondition{AuraName: "Clearcasting", Operator: OpGT, Value: 2}, true},
		{"stacks aura missing", StacksCondition{AuraName: "Hot Streak", Operator: OpGTE, Value: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.cond, state))
		})
	}
}

func TestEvaluateGroupOperators(t *testing.T) {
	state := mageState()
	hi := HPCondition{Operator: OpGT, Value: 50} // true
	lo := HPCondition{Operator: OpLT, Value: 50} // false

	tests := []struct {
		name  string
		group ConditionGroup
		want  bool
	}{
		{"and all true", ConditionGroup{Operator: LogicalAND, Conditions: []Condition{hi, hi}}, true},
		{"and one false", ConditionGroup{Operator: LogicalAND, Conditions: []Condition{hi, lo}}, false},
		{"or one true", ConditionGroup{Operator: LogicalOR, Conditions: []Condition{lo, hi}}, true},
		{"or all false", ConditionGroup{Operator: LogicalOR, Conditions: []Condition{lo, lo}}, false},
		{"not none true", ConditionGroup{Operator: LogicalNOT, Conditions: []Condition{lo, lo}}, true},
		{"not one true", ConditionGroup{Operator: LogicalNOT, Conditions: []Condition{lo, hi}}, false},
		{"empty and", ConditionGroup{Operator: LogicalAND}, true},
		{"empty or", ConditionGroup{Operator: LogicalOR}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := CompositeCondition{Type: CompositeType, Groups: []ConditionGroup{tt.group}}
			assert.Equal(t, tt.want, Evaluate(cc, state))
		})
	}
}

func TestEvaluateEmptyCompositeIsTrue(t *testing.T) {
	assert.True(t, Evaluate(NewComposite(), CharacterState{}))
}

func TestEvaluateGroupsJoinConjunctively(t *testing.T) {
	state := mageState()
	cc := CompositeCondition{
		Type: CompositeType,
		Groups: []ConditionGroup{
			{Operator: LogicalAND, Conditions: []Condition{HPCondition{Operator: OpGT, Value: 50}}},
			{Operator: LogicalAND, Conditions: []Condition{HPCondition{Operator: OpLT, Value: 50}}},
		},
	}
	assert.False(t, Evaluate(cc, state), "one failing group fails the composite")
}

func TestNextActionPicksFirstPassing(t *testing.T) {
	state := mageState()
	gated := NewAction()
	gated.SpellName = "Combustion"
	gated.Conditions = CompositeCondition{
		Type: CompositeType,
		Groups: []ConditionGroup{
			{Operator: LogicalAND, Conditions: []Condition{CooldownCondition{SpellName: "Combustion", IsReady: true}}},
		},
	}
	open := NewAction()
	open.SpellName = "Fireball"

	doc := Document{Actions: []Action{gated, open}}
	next := NextAction(doc, state)
	require.NotNil(t, next)
	assert.Equal(t, "Fireball", next.SpellName)

	none := NextAction(Document{}, state)
	assert.Nil(t, none)
}
