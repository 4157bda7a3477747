package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"rotationhub/internal/rotation"
)

// MalformedGenerationError reports a model response that did not contain a
// valid rotation JSON object. The raw text is never partially recovered or
// patched; the caller surfaces this as a generation failure.
type MalformedGenerationError struct {
	Reason string
	Err    error
}

func (e *MalformedGenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed generation: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed generation: %s", e.Reason)
}

func (e *MalformedGenerationError) Unwrap() error { return e.Err }

// CleanResponse strips markdown code fences from a model response, trims
// it to the outermost {...} span, and verifies the remainder parses as
// JSON. The returned string is the re-serialized (normalized) object.
func CleanResponse(text string) (string, error) {
	clean := text
	clean = strings.ReplaceAll(clean, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start < 0 || end < start {
		return "", &MalformedGenerationError{Reason: "no JSON object in response"}
	}
	clean = clean[start : end+1]

	var parsed any
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return "", &MalformedGenerationError{Reason: "invalid JSON", Err: err}
	}
	normalized, err := json.Marshal(parsed)
	if err != nil {
		return "", &MalformedGenerationError{Reason: "invalid JSON", Err: err}
	}
	return string(normalized), nil
}

// ParseDocument cleans a model response and decodes it into a rotation
// document. A response that cleans fine but lacks the {actions: [...]}
// shape is still malformed.
func ParseDocument(text string) (rotation.Document, error) {
	clean, err := CleanResponse(text)
	if err != nil {
		return rotation.Document{}, err
	}
	var doc rotation.Document
	if err := json.Unmarshal([]byte(clean), &doc); err != nil {
		return rotation.Document{}, &MalformedGenerationError{Reason: "response is not a rotation document", Err: err}
	}
	if doc.Actions == nil {
		return rotation.Document{}, &MalformedGenerationError{Reason: "response has no actions array"}
	}
	return doc, nil
}
