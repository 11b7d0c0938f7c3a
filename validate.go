package toolbridge

import (
	"encoding/json"
	"fmt"
)

// Validate checks structural constraints on a Declaration. Schema semantics
// are checked by the registry when it compiles Parameters.
func (d Declaration) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("declaration name must not be empty: %w", ErrValidation)
	}
	if len(d.Parameters) == 0 {
		return nil
	}
	var schema map[string]any
	if err := json.Unmarshal(d.Parameters, &schema); err != nil {
		return fmt.Errorf("parameters of %s must be a JSON object: %w", d.Name, ErrValidation)
	}
	if t, ok := schema["type"]; ok && t != "object" {
		return fmt.Errorf("parameters of %s must have type object, got %v: %w", d.Name, t, ErrValidation)
	}
	return nil
}

// ValidateResults checks that results holds exactly one result per call id.
// Order is not significant.
func ValidateResults(calls ToolCallBatch, results ToolResultBatch) error {
	if len(calls) != len(results) {
		return fmt.Errorf("expected %d results, got %d: %w", len(calls), len(results), ErrValidation)
	}
	pending := make(map[string]int, len(calls))
	for _, c := range calls {
		pending[c.ID]++
	}
	for _, r := range results {
		if pending[r.ID] == 0 {
			return fmt.Errorf("unexpected result id %q: %w", r.ID, ErrValidation)
		}
		pending[r.ID]--
	}
	return nil
}
