package rotation

import "fmt"

// ValidationError pinpoints the first invalid condition in a document:
// which action, group and condition index, and the field at fault.
type ValidationError struct {
	ActionIndex    int
	GroupIndex     int
	ConditionIndex int
	Field          string
	Reason         string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("action %d group %d condition %d: %s %s",
		e.ActionIndex, e.GroupIndex, e.ConditionIndex, e.Field, e.Reason)
}

// ValidateCondition reports whether a leaf condition is well formed. It
// fails closed: any violation, or an unrecognized kind, yields false.
func ValidateCondition(c Condition) bool {
	return checkCondition(c) == nil
}

func checkCondition(c Condition) *ValidationError {
	switch cond := c.(type) {
	case HPCondition:
		if cond.Value < 0 || cond.Value > 100 {
			return &ValidationError{Field: "value", Reason: "must be between 0 and 100"}
		}
	case AuraCondition:
		if len(cond.AuraName) == 0 {
			return &ValidationError{Field: "auraName", Reason: "must not be empty"}
		}
	case ResourceCondition:
		if cond.Value < 0 {
			return &ValidationError{Field: "value", Reason: "must not be negative"}
		}
	case CooldownCondition:
		if len(cond.SpellName) == 0 {
			return &ValidationError{Field: "spellName", Reason: "must not be empty"}
		}
		if !cond.IsReady && cond.Value < 0 {
			return &ValidationError{Field: "value", Reason: "must not be negative"}
		}
	case ChargesCondition:
		if len(cond.SpellName) == 0 {
			return &ValidationError{Field: "spellName", Reason: "must not be empty"}
		}
		if cond.Value < 0 {
			return &ValidationError{Field: "value", Reason: "must not be negative"}
		}
	case StacksCondition:
		if len(cond.AuraName) == 0 {
			return &ValidationError{Field: "auraName", Reason: "must not be empty"}
		}
		if cond.Value < 0 {
			return &ValidationError{Field: "value", Reason: "must not be negative"}
		}
	default:
		return &ValidationError{Field: "type", Reason: "unrecognized condition kind"}
	}
	return nil
}

// ValidateComposite checks every condition in a composite, returning a
// positioned ValidationError for the first violation.
func ValidateComposite(cc CompositeCondition) error {
	for gi, group := range cc.Groups {
		for ci, cond := range group.Conditions {
			if err := checkCondition(cond); err != nil {
				err.GroupIndex = gi
				err.ConditionIndex = ci
				return err
			}
		}
	}
	return nil
}

// ValidateDocument checks every action's guard in order.
func ValidateDocument(doc Document) error {
	for ai, action := range doc.Actions {
		if err := ValidateComposite(action.Conditions); err != nil {
			if verr, ok := err.(*ValidationError); ok {
				verr.ActionIndex = ai
			}
			return err
		}
	}
	return nil
}
