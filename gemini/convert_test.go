package gemini_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/toolbridge"
	"github.com/fwojciec/toolbridge/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestConvertParts(t *testing.T) {
	t.Parallel()

	got, err := gemini.ConvertParts(nil, "just a prompt")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "just a prompt", got[0].Text)
}

func TestConvertDeclarations(t *testing.T) {
	t.Parallel()

	decls := []toolbridge.Declaration{
		{
			Name:        "controlLight",
			Description: "Set the light",
			Parameters:  json.RawMessage(`{"type":"object","properties":{"brightness":{"type":"string"}},"required":["brightness"]}`),
		},
		{Name: "ping", Description: "No arguments"},
	}
	got := gemini.ConvertDeclarations(decls)
	require.Len(t, got, 1)
	fds := got[0].FunctionDeclarations
	require.Len(t, fds, 2)

	assert.Equal(t, "controlLight", fds[0].Name)
	assert.Equal(t, "Set the light", fds[0].Description)
	schema, ok := fds[0].ParametersJsonSchema.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []any{"brightness"}, schema["required"])

	assert.Equal(t, "ping", fds[1].Name)
	assert.Nil(t, fds[1].ParametersJsonSchema)
}

func TestConvertDeclarations_Empty(t *testing.T) {
	t.Parallel()
	assert.Nil(t, gemini.ConvertDeclarations(nil))
}

func TestConvertFunctionCalls(t *testing.T) {
	t.Parallel()

	got := gemini.ConvertFunctionCalls([]*genai.FunctionCall{
		{ID: "1", Name: "controlLight", Args: map[string]any{"brightness": "50"}},
		nil,
		{ID: "2", Name: "render_altair"},
	})
	assert.Equal(t, toolbridge.ToolCallBatch{
		{ID: "1", Name: "controlLight", Arguments: map[string]any{"brightness": "50"}},
		{ID: "2", Name: "render_altair"},
	}, got)
}

func TestConvertResults(t *testing.T) {
	t.Parallel()

	got := gemini.ConvertResults(toolbridge.ToolResultBatch{
		{ID: "1", Name: "controlLight", Success: true, Payload: "Light settings updated successfully"},
		{ID: "2", Name: "summarize_documents", Success: true, Payload: map[string]any{"summary": "ok"}},
		{ID: "3", Name: "nope", Success: false, Payload: "unknown tool: nope"},
	})
	require.Len(t, got, 3)

	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "controlLight", got[0].Name)
	assert.Equal(t, map[string]any{"output": map[string]any{
		"success": true,
		"message": "Light settings updated successfully",
	}}, got[0].Response)

	assert.Equal(t, map[string]any{"output": map[string]any{
		"success": true,
		"result":  map[string]any{"summary": "ok"},
	}}, got[1].Response)

	assert.Equal(t, map[string]any{"output": map[string]any{
		"success": false,
		"error":   "unknown tool: nope",
	}}, got[2].Response)
}
