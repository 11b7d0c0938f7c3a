package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/chainguard-dev/clog"
	"github.com/fwojciec/toolbridge"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ toolbridge.Session = (*LiveSession)(nil)

// Conn is the subset of [genai.Session] used by LiveSession.
type Conn interface {
	Receive() (*genai.LiveServerMessage, error)
	SendClientContent(input genai.LiveClientContentInput) error
	SendToolResponse(input genai.LiveToolResponseInput) error
	Close() error
}

var _ Conn = (*genai.Session)(nil)

// LiveSession implements [toolbridge.Session] over a Live API connection.
// Run must be called to receive messages; every tool-call message is
// delivered to the current subscribers on its own goroutine so a slow batch
// does not stall the connection.
type LiveSession struct {
	conn Conn

	mu       sync.Mutex
	next     int
	handlers map[int]func(context.Context, toolbridge.ToolCallBatch)

	sendMu sync.Mutex
	closer sync.Once
}

// NewLiveSession wraps conn.
func NewLiveSession(conn Conn) *LiveSession {
	return &LiveSession{
		conn:     conn,
		handlers: make(map[int]func(context.Context, toolbridge.ToolCallBatch)),
	}
}

// OnToolCall subscribes h to tool-call batches until the returned function
// is called.
func (s *LiveSession) OnToolCall(h func(ctx context.Context, batch toolbridge.ToolCallBatch)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.handlers[id] = h
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.handlers, id)
	}
}

// SendToolResponse sends one function response per result.
func (s *LiveSession) SendToolResponse(_ context.Context, batch toolbridge.ToolResultBatch) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := s.conn.SendToolResponse(genai.LiveToolResponseInput{FunctionResponses: ConvertResults(batch)}); err != nil {
		return fmt.Errorf("gemini: send tool response: %w", err)
	}
	return nil
}

// SendText sends text as a complete user turn.
func (s *LiveSession) SendText(_ context.Context, text string) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	err := s.conn.SendClientContent(genai.LiveClientContentInput{
		Turns:        []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		TurnComplete: genai.Ptr(true),
	})
	if err != nil {
		return fmt.Errorf("gemini: send text: %w", err)
	}
	return nil
}

// Run receives messages until the connection fails or ctx is done. It
// closes the connection when ctx ends and returns nil in that case. Run
// waits for in-flight subscriber calls before returning.
func (s *LiveSession) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = s.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	log := clog.FromContext(ctx)
	for {
		msg, err := s.conn.Receive()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("gemini: receive: %w", err)
		}
		if c := msg.ToolCallCancellation; c != nil {
			log.With("ids", c.IDs).Warn("Ignoring tool call cancellation")
		}
		if msg.ToolCall == nil {
			continue
		}
		batch := ConvertFunctionCalls(msg.ToolCall.FunctionCalls)
		log.With("calls", len(batch)).Info("Received tool call")
		for _, h := range s.subscribers() {
			wg.Add(1)
			go func() {
				defer wg.Done()
				h(ctx, batch)
			}()
		}
	}
}

// Close closes the underlying connection. It is safe to call more than once.
func (s *LiveSession) Close() error {
	var err error
	s.closer.Do(func() { err = s.conn.Close() })
	return err
}

func (s *LiveSession) subscribers() []func(context.Context, toolbridge.ToolCallBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hs := make([]func(context.Context, toolbridge.ToolCallBatch), 0, len(s.handlers))
	for _, h := range s.handlers {
		hs = append(hs, h)
	}
	return hs
}
