package metrics_test

import (
	"context"
	"testing"

	"github.com/fwojciec/toolbridge/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Sum[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Sum[int64]{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				out[m.Name] = sum
			}
		}
	}
	return out
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	rec := metrics.NewWithMeter(provider.Meter("test"))

	ctx := context.Background()
	rec.RecordToolCall(ctx, "controlLight", true)
	rec.RecordToolCall(ctx, "controlLight", true)
	rec.RecordToolCall(ctx, "unknown", false)
	rec.RecordFetch(ctx, "pdf", false)
	rec.RecordGeneration(ctx, true)

	got := collect(t, reader)

	calls := got["toolbridge.tool.calls"]
	require.Len(t, calls.DataPoints, 2)
	for _, dp := range calls.DataPoints {
		tool, _ := dp.Attributes.Value(attribute.Key("tool"))
		switch tool.AsString() {
		case "controlLight":
			assert.Equal(t, int64(2), dp.Value)
			outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
			assert.Equal(t, metrics.OutcomeSuccess, outcome.AsString())
		case "unknown":
			assert.Equal(t, int64(1), dp.Value)
		default:
			t.Fatalf("unexpected tool attribute %q", tool.AsString())
		}
	}

	require.Len(t, got["toolbridge.ingest.fetches"].DataPoints, 1)
	assert.Equal(t, int64(1), got["toolbridge.ingest.fetches"].DataPoints[0].Value)
	require.Len(t, got["toolbridge.ingest.generations"].DataPoints, 1)
}

func TestRecorder_Nil(t *testing.T) {
	t.Parallel()
	var rec *metrics.Recorder
	assert.NotPanics(t, func() {
		rec.RecordToolCall(context.Background(), "x", true)
		rec.RecordFetch(context.Background(), "html", true)
		rec.RecordGeneration(context.Background(), false)
	})
}
