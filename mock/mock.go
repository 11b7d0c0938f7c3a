// Package mock provides test doubles for toolbridge interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/toolbridge"
)

// Interface compliance checks.
var (
	_ toolbridge.Session   = (*Session)(nil)
	_ toolbridge.Handler   = (*Handler)(nil)
	_ toolbridge.Fetcher   = (*Fetcher)(nil)
	_ toolbridge.Generator = (*Generator)(nil)
)

// Session is a test double for toolbridge.Session.
// Set the function fields for the methods you need.
type Session struct {
	OnToolCallFn       func(h func(ctx context.Context, batch toolbridge.ToolCallBatch)) func()
	SendToolResponseFn func(ctx context.Context, batch toolbridge.ToolResultBatch) error
}

// OnToolCall delegates to OnToolCallFn.
func (s *Session) OnToolCall(h func(ctx context.Context, batch toolbridge.ToolCallBatch)) func() {
	return s.OnToolCallFn(h)
}

// SendToolResponse delegates to SendToolResponseFn.
func (s *Session) SendToolResponse(ctx context.Context, batch toolbridge.ToolResultBatch) error {
	return s.SendToolResponseFn(ctx, batch)
}

// Handler is a test double for toolbridge.Handler.
type Handler struct {
	HandleFn func(ctx context.Context, call toolbridge.ToolCall) (any, error)
}

// Handle delegates to HandleFn.
func (h *Handler) Handle(ctx context.Context, call toolbridge.ToolCall) (any, error) {
	return h.HandleFn(ctx, call)
}

// Fetcher is a test double for toolbridge.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, source toolbridge.DocumentSource) (toolbridge.NormalizedContent, error)
}

// Fetch delegates to FetchFn.
func (f *Fetcher) Fetch(ctx context.Context, source toolbridge.DocumentSource) (toolbridge.NormalizedContent, error) {
	return f.FetchFn(ctx, source)
}

// Generator is a test double for toolbridge.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, parts []toolbridge.NormalizedContent, prompt string) (string, error)
}

// Generate delegates to GenerateFn.
func (g *Generator) Generate(ctx context.Context, parts []toolbridge.NormalizedContent, prompt string) (string, error) {
	return g.GenerateFn(ctx, parts, prompt)
}
