package toolbridge_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/toolbridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclaration_Required(t *testing.T) {
	t.Parallel()

	t.Run("reads required list", func(t *testing.T) {
		t.Parallel()
		d := toolbridge.Declaration{
			Name:       "controlLight",
			Parameters: json.RawMessage(`{"type":"object","required":["brightness","colorTemperature"]}`),
		}
		assert.Equal(t, []string{"brightness", "colorTemperature"}, d.Required())
	})

	t.Run("nil for malformed schema", func(t *testing.T) {
		t.Parallel()
		d := toolbridge.Declaration{Name: "x", Parameters: json.RawMessage(`not json`)}
		assert.Nil(t, d.Required())
	})
}

func TestToolCall_Decode(t *testing.T) {
	t.Parallel()

	type lightArgs struct {
		Brightness       string `json:"brightness"`
		ColorTemperature string `json:"colorTemperature"`
	}

	t.Run("decodes matching arguments", func(t *testing.T) {
		t.Parallel()
		call := toolbridge.ToolCall{
			ID:        "1",
			Name:      "controlLight",
			Arguments: map[string]any{"brightness": "50", "colorTemperature": "warm"},
		}
		var args lightArgs
		require.NoError(t, call.Decode(&args))
		assert.Equal(t, lightArgs{Brightness: "50", ColorTemperature: "warm"}, args)
	})

	t.Run("type mismatch is an ArgumentDecodeError", func(t *testing.T) {
		t.Parallel()
		call := toolbridge.ToolCall{
			ID:        "1",
			Name:      "controlLight",
			Arguments: map[string]any{"brightness": 50},
		}
		var args lightArgs
		err := call.Decode(&args)
		var decodeErr *toolbridge.ArgumentDecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "controlLight", decodeErr.Tool)
	})
}

func TestToolCallBatch_IDs(t *testing.T) {
	t.Parallel()
	batch := toolbridge.ToolCallBatch{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	assert.Equal(t, []string{"a", "b", "c"}, batch.IDs())
}

func TestResultConstructors(t *testing.T) {
	t.Parallel()
	call := toolbridge.ToolCall{ID: "7", Name: "render_altair"}

	ok := toolbridge.Succeeded(call, "done")
	assert.Equal(t, toolbridge.ToolResult{ID: "7", Name: "render_altair", Success: true, Payload: "done"}, ok)

	failed := toolbridge.Failed(call, errors.New("boom"))
	assert.Equal(t, toolbridge.ToolResult{ID: "7", Name: "render_altair", Success: false, Payload: "boom"}, failed)
}

func TestTyped(t *testing.T) {
	t.Parallel()

	type echoArgs struct {
		Text string `json:"text"`
	}
	h := toolbridge.Typed(func(_ context.Context, args echoArgs) (any, error) {
		return "echo: " + args.Text, nil
	})

	t.Run("passes decoded arguments", func(t *testing.T) {
		t.Parallel()
		got, err := h.Handle(context.Background(), toolbridge.ToolCall{
			Name:      "echo",
			Arguments: map[string]any{"text": "hi"},
		})
		require.NoError(t, err)
		assert.Equal(t, "echo: hi", got)
	})

	t.Run("rejects undecodable arguments", func(t *testing.T) {
		t.Parallel()
		_, err := h.Handle(context.Background(), toolbridge.ToolCall{
			Name:      "echo",
			Arguments: map[string]any{"text": []any{1, 2}},
		})
		var decodeErr *toolbridge.ArgumentDecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})
}
