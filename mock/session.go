package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/toolbridge"
)

// Interface compliance check.
var _ toolbridge.Session = (*LiveSession)(nil)

// LiveSession is an in-memory toolbridge.Session. Emit delivers a batch to
// every current subscriber; sent responses are recorded and, when set,
// forwarded to OnSend.
type LiveSession struct {
	OnSend func(batch toolbridge.ToolResultBatch)

	mu       sync.Mutex
	next     int
	handlers map[int]func(context.Context, toolbridge.ToolCallBatch)
	sent     []toolbridge.ToolResultBatch
}

// OnToolCall registers h until the returned function is called.
func (s *LiveSession) OnToolCall(h func(ctx context.Context, batch toolbridge.ToolCallBatch)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handlers == nil {
		s.handlers = make(map[int]func(context.Context, toolbridge.ToolCallBatch))
	}
	id := s.next
	s.next++
	s.handlers[id] = h
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.handlers, id)
	}
}

// SendToolResponse records batch.
func (s *LiveSession) SendToolResponse(_ context.Context, batch toolbridge.ToolResultBatch) error {
	s.mu.Lock()
	s.sent = append(s.sent, batch)
	onSend := s.OnSend
	s.mu.Unlock()
	if onSend != nil {
		onSend(batch)
	}
	return nil
}

// Emit delivers batch to every subscriber synchronously.
func (s *LiveSession) Emit(ctx context.Context, batch toolbridge.ToolCallBatch) {
	s.mu.Lock()
	hs := make([]func(context.Context, toolbridge.ToolCallBatch), 0, len(s.handlers))
	for _, h := range s.handlers {
		hs = append(hs, h)
	}
	s.mu.Unlock()
	for _, h := range hs {
		h(ctx, batch)
	}
}

// Subscribers returns the number of active subscriptions.
func (s *LiveSession) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

// Sent returns every response batch sent so far.
func (s *LiveSession) Sent() []toolbridge.ToolResultBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]toolbridge.ToolResultBatch(nil), s.sent...)
}
