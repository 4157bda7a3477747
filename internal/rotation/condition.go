package rotation

import (
	"encoding/json"
	"fmt"
)

// ConditionType discriminates the leaf condition kinds on the wire.
type ConditionType string

const (
	TypeHP       ConditionType = "HP"
	TypeAura     ConditionType = "Aura"
	TypeResource ConditionType = "Resource"
	TypeCooldown ConditionType = "Cooldown"
	TypeCharges  ConditionType = "Charges"
	TypeStacks   ConditionType = "Stacks"
)

// Operator is a numeric comparison operator.
type Operator string

const (
	OpGT  Operator = ">"
	OpLT  Operator = "<"
	OpEQ  Operator = "="
	OpGTE Operator = ">="
	OpLTE Operator = "<="
)

// Compare applies the operator to actual vs expected. Unknown operators
// compare false.
func (o Operator) Compare(actual, expected float64) bool {
	switch o {
	case OpGT:
		return actual > expected
	case OpLT:
		return actual < expected
	case OpEQ:
		return actual == expected
	case OpGTE:
		return actual >= expected
	case OpLTE:
		return actual <= expected
	}
	return false
}

// Target identifies the unit a condition or cast is aimed at.
type Target string

const (
	TargetSelf   Target = "Self"
	TargetTarget Target = "Target"
	TargetFocus  Target = "Focus"
	TargetTank   Target = "Tank"
	TargetParty1 Target = "Party1"
	TargetParty2 Target = "Party2"
	TargetParty3 Target = "Party3"
	TargetParty4 Target = "Party4"
)

// ResourceKind is a class resource pool.
type ResourceKind string

const (
	ResourceMana       ResourceKind = "Mana"
	ResourceRage       ResourceKind = "Rage"
	ResourceEnergy     ResourceKind = "Energy"
	ResourceFocus      ResourceKind = "Focus"
	ResourceRunicPower ResourceKind = "RunicPower"
	ResourceHolyPower  ResourceKind = "HolyPower"
)

// AuraType distinguishes buffs from debuffs.
type AuraType string

const (
	AuraBuff   AuraType = "Buff"
	AuraDebuff AuraType = "Debuff"
)

// CheckType selects which aura payload is meaningful. Exactly one of the
// aura condition's IsPresent/Duration/Stacks fields applies per check type;
// the others carry harmless defaults and are ignored.
type CheckType string

const (
	CheckPresence CheckType = "presence"
	CheckDuration CheckType = "duration"
	CheckStacks   CheckType = "stacks"
)

// Condition is a leaf predicate evaluated against a character state
// snapshot. The concrete types form a closed set discriminated by Kind.
type Condition interface {
	Kind() ConditionType
}

// HPCondition compares the player's health percentage (0-100).
type HPCondition struct {
	Operator Operator `json:"operator"`
	Value    float64  `json:"value"`
}

func (HPCondition) Kind() ConditionType { return TypeHP }

// DurationCheck compares an aura's remaining duration in seconds.
type DurationCheck struct {
	Remaining float64  `json:"remaining"`
	Operator  Operator `json:"operator"`
}

// StacksCheck compares an aura's stack count.
type StacksCheck struct {
	Count    int      `json:"count"`
	Operator Operator `json:"operator"`
}

// AuraCondition inspects a buff or debuff on a unit.
type AuraCondition struct {
	Target    Target        `json:"target"`
	AuraName  string        `json:"auraName"`
	AuraType  AuraType      `json:"auraType"`
	CheckType CheckType     `json:"checkType"`
	IsPresent bool          `json:"isPresent"`
	Duration  DurationCheck `json:"duration"`
	Stacks    StacksCheck   `json:"stacks"`
}

func (AuraCondition) Kind() ConditionType { return TypeAura }

// ResourceCondition compares a resource pool amount.
type ResourceCondition struct {
	Resource ResourceKind `json:"resource"`
	Operator Operator     `json:"operator"`
	Value    float64      `json:"value"`
}

func (ResourceCondition) Kind() ConditionType { return TypeResource }

// CooldownCondition checks a spell's cooldown. When IsReady is set the
// operator and value are not evaluated.
type CooldownCondition struct {
	SpellName string   `json:"spellName"`
	Operator  Operator `json:"operator"`
	Value     float64  `json:"value"`
	IsReady   bool     `json:"isReady"`
}

func (CooldownCondition) Kind() ConditionType { return TypeCooldown }

// ChargesCondition compares a spell's available charges.
type ChargesCondition struct {
	SpellName string   `json:"spellName"`
	Operator  Operator `json:"operator"`
	Value     int      `json:"value"`
}

func (ChargesCondition) Kind() ConditionType { return TypeCharges }

// StacksCondition compares the stack count of an aura on the player.
type StacksCondition struct {
	AuraName string   `json:"auraName"`
	Operator Operator `json:"operator"`
	Value    int      `json:"value"`
}

func (StacksCondition) Kind() ConditionType { return TypeStacks }

// LogicalOperator labels a condition group.
type LogicalOperator string

const (
	LogicalAND LogicalOperator = "AND"
	LogicalOR  LogicalOperator = "OR"
	LogicalNOT LogicalOperator = "NOT"
)

// ConditionGroup is a flat list of leaf conditions combined by a logical
// operator. Groups do not nest.
type ConditionGroup struct {
	Operator   LogicalOperator `json:"operator"`
	Conditions []Condition     `json:"conditions"`
}

// CompositeCondition is the full guard on an action: a flat list of groups
// joined conjunctively. Zero groups means no gating at all.
type CompositeCondition struct {
	Type   string           `json:"type"`
	Groups []ConditionGroup `json:"groups"`
}

// CompositeType is the fixed discriminant carried by CompositeCondition.
const CompositeType = "Composite"

// NewComposite returns an empty composite with no groups.
func NewComposite() CompositeCondition {
	return CompositeCondition{Type: CompositeType, Groups: []ConditionGroup{}}
}

type conditionEnvelope struct {
	Type ConditionType `json:"type"`
}

// UnmarshalCondition decodes one leaf condition from its tagged JSON form.
func UnmarshalCondition(raw json.RawMessage) (Condition, error) {
	var env conditionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	switch env.Type {
	case TypeHP:
		var c HPCondition
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case TypeAura:
		var c AuraCondition
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case TypeResource:
		var c ResourceCondition
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case TypeCooldown:
		var c CooldownCondition
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case TypeCharges:
		var c ChargesCondition
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case TypeStacks:
		var c StacksCondition
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown condition type %q", env.Type)
}

// MarshalCondition encodes a leaf condition with its type discriminant.
func MarshalCondition(c Condition) ([]byte, error) {
	body, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	tag, err := json.Marshal(struct {
		Type ConditionType `json:"type"`
	}{c.Kind()})
	if err != nil {
		return nil, err
	}
	if string(body) == "{}" {
		return tag, nil
	}
	// Splice the type tag into the object body.
	merged := append(tag[:len(tag)-1], ',')
	merged = append(merged, body[1:]...)
	return merged, nil
}

// UnmarshalJSON decodes a group, dispatching each member condition on its
// type discriminant.
func (g *ConditionGroup) UnmarshalJSON(data []byte) error {
	var wire struct {
		Operator   LogicalOperator   `json:"operator"`
		Conditions []json.RawMessage `json:"conditions"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	g.Operator = wire.Operator
	g.Conditions = make([]Condition, 0, len(wire.Conditions))
	for i, raw := range wire.Conditions {
		cond, err := UnmarshalCondition(raw)
		if err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
		g.Conditions = append(g.Conditions, cond)
	}
	return nil
}

// MarshalJSON encodes the group with tagged member conditions.
func (g ConditionGroup) MarshalJSON() ([]byte, error) {
	conds := make([]json.RawMessage, 0, len(g.Conditions))
	for _, c := range g.Conditions {
		raw, err := MarshalCondition(c)
		if err != nil {
			return nil, err
		}
		conds = append(conds, raw)
	}
	return json.Marshal(struct {
		Operator   LogicalOperator   `json:"operator"`
		Conditions []json.RawMessage `json:"conditions"`
	}{g.Operator, conds})
}
