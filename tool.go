package toolbridge

import (
	"context"
	"encoding/json"
	"fmt"
)

// Declaration is the schema sent to the model describing a tool's capabilities.
// Parameters holds a JSON Schema object.
type Declaration struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// Required returns the names listed in the schema's "required" array.
// A missing or malformed schema yields nil.
func (d Declaration) Required() []string {
	var s struct {
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(d.Parameters, &s); err != nil {
		return nil
	}
	return s.Required
}

// ToolCall is a single function invocation issued by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// Decode converts the call's arguments into v, which must be a pointer.
// A type mismatch is reported as an *ArgumentDecodeError.
func (c ToolCall) Decode(v any) error {
	data, err := json.Marshal(c.Arguments)
	if err != nil {
		return &ArgumentDecodeError{Tool: c.Name, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ArgumentDecodeError{Tool: c.Name, Err: err}
	}
	return nil
}

// ToolCallBatch is the ordered set of calls issued by a single turn.
type ToolCallBatch []ToolCall

// IDs returns the correlation ids of the batch in order.
func (b ToolCallBatch) IDs() []string {
	ids := make([]string, len(b))
	for i, c := range b {
		ids[i] = c.ID
	}
	return ids
}

// ToolResult is the correlated outcome of a ToolCall. When Success is false,
// Payload carries the failure message.
type ToolResult struct {
	ID      string
	Name    string
	Success bool
	Payload any
}

// Succeeded builds a successful result for call.
func Succeeded(call ToolCall, payload any) ToolResult {
	return ToolResult{ID: call.ID, Name: call.Name, Success: true, Payload: payload}
}

// Failed builds a failed result for call carrying err's message.
func Failed(call ToolCall, err error) ToolResult {
	return ToolResult{ID: call.ID, Name: call.Name, Payload: err.Error()}
}

// ToolResultBatch holds one ToolResult per call of a ToolCallBatch.
type ToolResultBatch []ToolResult

// Handler executes a resolved tool call. A returned error becomes a failed
// ToolResult; it never aborts the batch.
type Handler interface {
	Handle(ctx context.Context, call ToolCall) (any, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, call ToolCall) (any, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, call ToolCall) (any, error) {
	return f(ctx, call)
}

// Typed adapts a function taking decoded arguments into a Handler. Arguments
// that do not decode into T fail the call with an *ArgumentDecodeError.
func Typed[T any](fn func(ctx context.Context, args T) (any, error)) Handler {
	return HandlerFunc(func(ctx context.Context, call ToolCall) (any, error) {
		var args T
		if err := call.Decode(&args); err != nil {
			return nil, err
		}
		return fn(ctx, args)
	})
}

// Session is the transport delivering tool-call batches and accepting
// correlated responses. OnToolCall returns a function that removes the
// subscription.
type Session interface {
	OnToolCall(h func(ctx context.Context, batch ToolCallBatch)) (unsubscribe func())
	SendToolResponse(ctx context.Context, batch ToolResultBatch) error
}

// String implements fmt.Stringer for log output.
func (c ToolCall) String() string {
	return fmt.Sprintf("%s(%s)", c.Name, c.ID)
}
