package rotation

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Action is one prioritized entry in a rotation: cast SpellName at Target
// when the composite condition holds. Weight orders actions within the
// list, higher meaning more preferred; after a manual reorder it is purely
// derived from list position.
type Action struct {
	ID            string             `json:"id"`
	SpellName     string             `json:"spellName"`
	Target        Target             `json:"target"`
	Weight        float64            `json:"weight"`
	Priority      int                `json:"priority"`
	Conditions    CompositeCondition `json:"conditions"`
	Interruptible bool               `json:"interruptible"`
}

// Document is the persisted payload of a rotation: its ordered action list.
type Document struct {
	Actions []Action `json:"actions"`
}

// SerializationError reports a rotation data blob that is present but does
// not have the expected shape.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("malformed rotation data: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// DecodeDocument parses a stored rotation payload. A missing or malformed
// payload yields an empty document plus a SerializationError so a corrupted
// draft never blocks loading; callers should log the error and continue.
func DecodeDocument(raw json.RawMessage) (Document, error) {
	empty := Document{Actions: []Action{}}
	if len(raw) == 0 {
		return empty, nil
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return empty, &SerializationError{Err: err}
	}
	if doc.Actions == nil {
		doc.Actions = []Action{}
	}
	return doc, nil
}

// EditorState is the projection of a saved rotation the builder UI edits.
type EditorState struct {
	Name    string   `json:"name"`
	Actions []Action `json:"actions"`
}

// LoadIntoEditor projects a saved rotation into the editor shape. A
// corrupted data blob degrades to an empty action list; the returned
// error is for logging only and never blocks the load.
func LoadIntoEditor(name string, data json.RawMessage) (EditorState, error) {
	doc, err := DecodeDocument(data)
	return EditorState{Name: name, Actions: doc.Actions}, err
}

// NewActionID generates a fresh opaque action id.
func NewActionID() string {
	return uuid.NewString()
}

// NewAction returns a blank action with a fresh id and an empty guard.
func NewAction() Action {
	return Action{
		ID:            NewActionID(),
		SpellName:     "",
		Target:        TargetTarget,
		Weight:        1,
		Priority:      0,
		Conditions:    NewComposite(),
		Interruptible: false,
	}
}

// DefaultCondition returns a fully populated, immediately valid default for
// the given condition kind. Unused branches carry harmless defaults so any
// check type or readiness toggle can be flipped without re-filling fields.
func DefaultCondition(t ConditionType) Condition {
	switch t {
	case TypeHP:
		return HPCondition{Operator: OpGT, Value: 0}
	case TypeAura:
		return AuraCondition{
			Target:    TargetSelf,
			AuraName:  "",
			AuraType:  AuraBuff,
			CheckType: CheckPresence,
			IsPresent: true,
			Duration:  DurationCheck{Remaining: 0, Operator: OpGT},
			Stacks:    StacksCheck{Count: 0, Operator: OpGT},
		}
	case TypeResource:
		return ResourceCondition{Resource: ResourceMana, Operator: OpGT, Value: 0}
	case TypeCooldown:
		return CooldownCondition{SpellName: "", Operator: OpEQ, Value: 0, IsReady: true}
	case TypeCharges:
		return ChargesCondition{SpellName: "", Operator: OpGT, Value: 0}
	case TypeStacks:
		return StacksCondition{AuraName: "", Operator: OpGT, Value: 0}
	}
	return nil
}
