// Package bridge connects a live model session to registered tool handlers.
//
// A Bridge subscribes to the session's tool-call events, runs every call of a
// batch concurrently against the registry and sends back one response batch
// with a result per call. A failing call never prevents the others from
// producing results.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/fwojciec/toolbridge"
	"github.com/fwojciec/toolbridge/metrics"
	"github.com/fwojciec/toolbridge/registry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// TracerName is the instrumentation scope of the default tracer.
const TracerName = "github.com/fwojciec/toolbridge/bridge"

// Resolver finds the registration for a tool name.
type Resolver interface {
	Resolve(name string) (registry.Tool, error)
}

var _ Resolver = (*registry.Registry)(nil)

// Bridge dispatches tool-call batches from a session to handlers.
type Bridge struct {
	session toolbridge.Session
	tools   Resolver
	delay   time.Duration
	metrics *metrics.Recorder
	tracer  trace.Tracer

	mu          sync.Mutex
	unsubscribe func()
	inflight    sync.WaitGroup
}

// Option configures a [Bridge].
type Option func(*Bridge)

// WithResponseDelay waits d after a batch is handled before its response is
// sent.
func WithResponseDelay(d time.Duration) Option {
	return func(b *Bridge) { b.delay = d }
}

// WithMetrics records every call's outcome on m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(b *Bridge) { b.metrics = m }
}

// WithTracer sets the tracer used for per-call spans.
func WithTracer(t trace.Tracer) Option {
	return func(b *Bridge) { b.tracer = t }
}

// New creates a Bridge. It does nothing until Start is called.
func New(session toolbridge.Session, tools Resolver, opts ...Option) *Bridge {
	b := &Bridge{
		session: session,
		tools:   tools,
		tracer:  otel.Tracer(TracerName),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Start subscribes to the session's tool-call events. It returns
// toolbridge.ErrAlreadyStarted if the bridge is already subscribed.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.unsubscribe != nil {
		return toolbridge.ErrAlreadyStarted
	}
	b.unsubscribe = b.session.OnToolCall(b.onToolCall)
	clog.FromContext(ctx).With("delay", b.delay).Info("Bridge started")
	return nil
}

// Stop removes the subscription. Batches already being handled run to
// completion and still send their responses; use Wait to block on them.
// Stop is safe to call more than once.
func (b *Bridge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}

// Wait blocks until every batch received so far has been answered.
func (b *Bridge) Wait() {
	b.inflight.Wait()
}

func (b *Bridge) onToolCall(ctx context.Context, batch toolbridge.ToolCallBatch) {
	b.inflight.Add(1)
	defer b.inflight.Done()

	ctx = context.WithoutCancel(ctx)
	results := b.HandleBatch(ctx, batch)
	if len(results) == 0 {
		return
	}
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	if err := b.session.SendToolResponse(ctx, results); err != nil {
		clog.FromContext(ctx).With("error", err).With("results", len(results)).Error("Failed to send tool response")
	}
}

// HandleBatch runs every call of batch concurrently and returns one result
// per call in input order. It never fails; unknown tools, invalid arguments,
// handler errors and panics become failed results.
func (b *Bridge) HandleBatch(ctx context.Context, batch toolbridge.ToolCallBatch) toolbridge.ToolResultBatch {
	if len(batch) == 0 {
		return nil
	}

	batchID := uuid.NewString()
	ctx = clog.WithLogger(ctx, clog.FromContext(ctx).With("batch_id", batchID))
	log := clog.FromContext(ctx)
	log.With("calls", len(batch)).Info("Handling tool call batch")

	seen := make(map[string]bool, len(batch))
	for _, c := range batch {
		if seen[c.ID] {
			log.With("call_id", c.ID).Warn("Duplicate tool call id in batch")
		}
		seen[c.ID] = true
	}

	results := make(toolbridge.ToolResultBatch, len(batch))
	var g errgroup.Group
	for i, call := range batch {
		g.Go(func() error {
			results[i] = b.handle(ctx, batchID, call)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (b *Bridge) handle(ctx context.Context, batchID string, call toolbridge.ToolCall) toolbridge.ToolResult {
	ctx, span := b.tracer.Start(ctx, "toolbridge.tool_call",
		trace.WithAttributes(
			attribute.String("toolbridge.tool", call.Name),
			attribute.String("toolbridge.tool_call_id", call.ID),
			attribute.String("toolbridge.batch_id", batchID),
		),
	)
	defer span.End()

	log := clog.FromContext(ctx).With("tool", call.Name).With("call_id", call.ID)
	start := time.Now()

	payload, err := b.invoke(ctx, call)
	b.metrics.RecordToolCall(ctx, call.Name, err == nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "tool call failed")
		log.With("error", err).Warn("Tool call failed")
		return toolbridge.Failed(call, err)
	}

	log.With("duration", time.Since(start)).Info("Tool call succeeded")
	return toolbridge.Succeeded(call, payload)
}

func (b *Bridge) invoke(ctx context.Context, call toolbridge.ToolCall) (payload any, err error) {
	tool, err := b.tools.Resolve(call.Name)
	if err != nil {
		return nil, &toolbridge.UnknownToolError{Name: call.Name}
	}
	if err := tool.ValidateArguments(call.Arguments); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = &toolbridge.HandlerExecutionError{Tool: call.Name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	payload, err = tool.Handler.Handle(ctx, call)
	if err != nil {
		var decodeErr *toolbridge.ArgumentDecodeError
		if errors.As(err, &decodeErr) {
			return nil, err
		}
		return nil, &toolbridge.HandlerExecutionError{Tool: call.Name, Err: err}
	}
	return payload, nil
}
