package toolbridge_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/toolbridge"
	"github.com/stretchr/testify/assert"
)

func TestDeclaration_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		decl    toolbridge.Declaration
		wantErr bool
	}{
		{"valid", toolbridge.Declaration{Name: "a", Parameters: json.RawMessage(`{"type":"object"}`)}, false},
		{"no parameters", toolbridge.Declaration{Name: "a"}, false},
		{"empty name", toolbridge.Declaration{}, true},
		{"not an object", toolbridge.Declaration{Name: "a", Parameters: json.RawMessage(`[1]`)}, true},
		{"wrong type", toolbridge.Declaration{Name: "a", Parameters: json.RawMessage(`{"type":"string"}`)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.decl.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, toolbridge.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateResults(t *testing.T) {
	t.Parallel()
	calls := toolbridge.ToolCallBatch{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	t.Run("reordered results are valid", func(t *testing.T) {
		t.Parallel()
		results := toolbridge.ToolResultBatch{{ID: "3"}, {ID: "1"}, {ID: "2"}}
		assert.NoError(t, toolbridge.ValidateResults(calls, results))
	})

	t.Run("missing result", func(t *testing.T) {
		t.Parallel()
		results := toolbridge.ToolResultBatch{{ID: "1"}, {ID: "2"}}
		assert.ErrorIs(t, toolbridge.ValidateResults(calls, results), toolbridge.ErrValidation)
	})

	t.Run("duplicated id", func(t *testing.T) {
		t.Parallel()
		results := toolbridge.ToolResultBatch{{ID: "1"}, {ID: "1"}, {ID: "2"}}
		assert.ErrorIs(t, toolbridge.ValidateResults(calls, results), toolbridge.ErrValidation)
	})

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, toolbridge.ValidateResults(nil, nil))
	})
}
