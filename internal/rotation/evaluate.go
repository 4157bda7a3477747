package rotation

// AuraState is one buff or debuff present on a unit.
type AuraState struct {
	Type      AuraType
	Stacks    int
	Remaining float64 // seconds
}

// UnitState is the observable state of one unit slot.
type UnitState struct {
	HealthPct float64
	Auras     map[string]AuraState
}

// CharacterState is a snapshot of the game state a rotation is evaluated
// against: the player's own unit plus whatever other slots are known,
// resource pools, and per-spell cooldowns and charges.
type CharacterState struct {
	Units     map[Target]UnitState
	Resources map[ResourceKind]float64
	Cooldowns map[string]float64 // seconds remaining, <= 0 means ready
	Charges   map[string]int
}

// EvaluateCondition checks a single leaf condition against the state.
// Unknown kinds evaluate false.
func EvaluateCondition(c Condition, state CharacterState) bool {
	switch cond := c.(type) {
	case HPCondition:
		return cond.Operator.Compare(state.Units[TargetSelf].HealthPct, cond.Value)
	case AuraCondition:
		aura, present := state.Units[cond.Target].Auras[cond.AuraName]
		present = present && aura.Type == cond.AuraType
		switch cond.CheckType {
		case CheckPresence:
			return present == cond.IsPresent
		case CheckDuration:
			return present && cond.Duration.Operator.Compare(aura.Remaining, cond.Duration.Remaining)
		case CheckStacks:
			return present && cond.Stacks.Operator.Compare(float64(aura.Stacks), float64(cond.Stacks.Count))
		}
		return false
	case ResourceCondition:
		return cond.Operator.Compare(state.Resources[cond.Resource], cond.Value)
	case CooldownCondition:
		remaining := state.Cooldowns[cond.SpellName]
		if cond.IsReady {
			return remaining <= 0
		}
		return cond.Operator.Compare(remaining, cond.Value)
	case ChargesCondition:
		return cond.Operator.Compare(float64(state.Charges[cond.SpellName]), float64(cond.Value))
	case StacksCondition:
		aura, present := state.Units[TargetSelf].Auras[cond.AuraName]
		return present && cond.Operator.Compare(float64(aura.Stacks), float64(cond.Value))
	}
	return false
}

// evaluateGroup applies the group operator across its conditions:
// AND passes when all hold, OR when any holds, NOT when none hold.
func evaluateGroup(g ConditionGroup, state CharacterState) bool {
	switch g.Operator {
	case LogicalAND:
		for _, c := range g.Conditions {
			if !EvaluateCondition(c, state) {
				return false
			}
		}
		return true
	case LogicalOR:
		for _, c := range g.Conditions {
			if EvaluateCondition(c, state) {
				return true
			}
		}
		return false
	case LogicalNOT:
		for _, c := range g.Conditions {
			if EvaluateCondition(c, state) {
				return false
			}
		}
		return true
	}
	return false
}

// Evaluate checks a composite guard: every group must pass. An empty
// composite is vacuously true, mirroring the "None" rendering.
func Evaluate(cc CompositeCondition, state CharacterState) bool {
	for _, g := range cc.Groups {
		if !evaluateGroup(g, state) {
			return false
		}
	}
	return true
}

// NextAction returns the first action in list order whose guard passes,
// or nil when nothing is castable. List order is the priority order; the
// weights restamped by Reorder already agree with it.
func NextAction(doc Document, state CharacterState) *Action {
	for i := range doc.Actions {
		if Evaluate(doc.Actions[i].Conditions, state) {
			return &doc.Actions[i]
		}
	}
	return nil
}
