// Package metrics records OpenTelemetry counters for tool calls and document
// ingestion.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// MeterName is the instrumentation scope used by New.
const MeterName = "github.com/fwojciec/toolbridge"

// Outcome values recorded on every counter.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder holds the counters. A nil *Recorder is valid and records nothing.
type Recorder struct {
	toolCalls   metric.Int64Counter
	fetches     metric.Int64Counter
	generations metric.Int64Counter
}

// New creates a Recorder on the global meter provider.
func New() *Recorder {
	return NewWithMeter(otel.Meter(MeterName, metric.WithInstrumentationVersion("1.0.0")))
}

// NewWithMeter creates a Recorder on meter. A counter that fails to
// initialize is replaced by a no-op counter.
func NewWithMeter(meter metric.Meter) *Recorder {
	return &Recorder{
		toolCalls: counter(meter, "toolbridge.tool.calls",
			"The number of tool calls handled by the bridge", "{calls}"),
		fetches: counter(meter, "toolbridge.ingest.fetches",
			"The number of document fetches attempted", "{fetches}"),
		generations: counter(meter, "toolbridge.ingest.generations",
			"The number of generation requests issued for ingestion", "{requests}"),
	}
}

func counter(meter metric.Meter, name, desc, unit string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil {
		slog.Warn("Failed to create counter, metric will be disabled", "error", err, "counter", name)
		return noop.Int64Counter{}
	}
	return c
}

// RecordToolCall counts one handled tool call.
func (r *Recorder) RecordToolCall(ctx context.Context, tool string, success bool) {
	if r == nil {
		return
	}
	r.toolCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("outcome", outcome(success)),
	))
}

// RecordFetch counts one document fetch.
func (r *Recorder) RecordFetch(ctx context.Context, kind string, success bool) {
	if r == nil {
		return
	}
	r.fetches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome(success)),
	))
}

// RecordGeneration counts one generation request.
func (r *Recorder) RecordGeneration(ctx context.Context, success bool) {
	if r == nil {
		return
	}
	r.generations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome(success))))
}

func outcome(success bool) string {
	if success {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
