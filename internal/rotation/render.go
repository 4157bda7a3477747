package rotation

import (
	"fmt"
	"strconv"
	"strings"
)

// Describe renders one deterministic line of text for a leaf condition.
func Describe(c Condition) string {
	switch cond := c.(type) {
	case HPCondition:
		return fmt.Sprintf("HP %s %s%%", cond.Operator, num(cond.Value))
	case AuraCondition:
		switch cond.CheckType {
		case CheckPresence:
			presence := "present"
			if !cond.IsPresent {
				presence = "not present"
			}
			return fmt.Sprintf("%s %s %s on %s", cond.AuraType, cond.AuraName, presence, cond.Target)
		case CheckDuration:
			return fmt.Sprintf("%s %s on %s with %s %ss remaining",
				cond.AuraType, cond.AuraName, cond.Target, cond.Duration.Operator, num(cond.Duration.Remaining))
		case CheckStacks:
			return fmt.Sprintf("%s %s on %s with %s %d stacks",
				cond.AuraType, cond.AuraName, cond.Target, cond.Stacks.Operator, cond.Stacks.Count)
		}
		return "Invalid aura check type"
	case ResourceCondition:
		return fmt.Sprintf("%s %s %s", cond.Resource, cond.Operator, num(cond.Value))
	case CooldownCondition:
		if cond.IsReady {
			return fmt.Sprintf("%s is ready", cond.SpellName)
		}
		return fmt.Sprintf("%s cooldown %s %ss", cond.SpellName, cond.Operator, num(cond.Value))
	case ChargesCondition:
		return fmt.Sprintf("%s charges %s %d", cond.SpellName, cond.Operator, cond.Value)
	case StacksCondition:
		return fmt.Sprintf("%s stacks %s %d", cond.AuraName, cond.Operator, cond.Value)
	}
	return "Invalid condition"
}

// RenderText renders a composite condition as one human-readable line,
// usable as a canonical serialization. Each group renders as
// OPERATOR(desc AND desc ...) and groups are joined by a single space.
// The interior joiner is always the literal AND regardless of the group's
// operator, which only labels the parenthesis; the UI has relied on that
// exact output since the original builder shipped.
func RenderText(cc CompositeCondition) string {
	if len(cc.Groups) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(cc.Groups))
	for _, group := range cc.Groups {
		descs := make([]string, 0, len(group.Conditions))
		for _, cond := range group.Conditions {
			descs = append(descs, Describe(cond))
		}
		parts = append(parts, fmt.Sprintf("%s(%s)", group.Operator, strings.Join(descs, " AND ")))
	}
	return strings.Join(parts, " ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
