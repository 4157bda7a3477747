package rotation

// WeightStep is the spacing between adjacent action weights after a
// reorder. The first action gets len*WeightStep, descending by WeightStep
// per position, so order and weight never disagree.
const WeightStep = 50

// AddOrUpdateAction returns a new action list with the given action
// replaced in place when its id already exists, or appended otherwise.
// The input slice is never mutated.
func AddOrUpdateAction(actions []Action, action Action) []Action {
	out := make([]Action, len(actions))
	copy(out, actions)
	for i, a := range out {
		if a.ID == action.ID {
			out[i] = action
			return out
		}
	}
	return append(out, action)
}

// RemoveAction returns a new action list without the action matching id.
// Removing an unknown id is a no-op.
func RemoveAction(actions []Action, id string) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}

// Reorder moves the action at from to position to and restamps every
// weight from the resulting order: weight = (len - index) * WeightStep.
// Out-of-range indices are clamped; a no-op move still restamps, which is
// idempotent. The input slice is never mutated.
func Reorder(actions []Action, from, to int) []Action {
	out := make([]Action, len(actions))
	copy(out, actions)
	if len(out) == 0 {
		return out
	}
	from = clamp(from, 0, len(out)-1)
	to = clamp(to, 0, len(out)-1)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]Action{moved}, out[to:]...)...)
	for i := range out {
		out[i].Weight = float64((len(out) - i) * WeightStep)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
