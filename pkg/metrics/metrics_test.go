package metrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"gateway/pkg/metrics"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}

	return out
}

func TestRecorder(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	r, err := metrics.NewRecorder(mp)
	require.NoError(t, err)

	ctx := context.Background()
	r.Turn(ctx, "reply")
	r.Turn(ctx, "reply")
	r.ToolInvoked(ctx, "get_balance", "function")
	r.ToolInvoked(ctx, "get_statement", "")
	r.LLMCall(ctx, 150*time.Millisecond, nil)
	r.LLMCall(ctx, time.Second, errors.New("boom"))

	data := collect(t, reader)

	turns, ok := data["gateway_turns"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, turns.DataPoints, 1)
	require.EqualValues(t, 2, turns.DataPoints[0].Value)

	tools, ok := data["gateway_tool_invocations"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, tools.DataPoints, 2)

	latency, ok := data["gateway_llm_duration"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, latency.DataPoints, 2)
	require.Equal(t, metrics.DefaultBuckets, latency.DataPoints[0].Bounds)
}

func TestRecorder_Nil(t *testing.T) {
	var r *metrics.Recorder

	require.NotPanics(t, func() {
		r.Turn(context.Background(), "reply")
		r.ToolInvoked(context.Background(), "x", "send")
		r.LLMCall(context.Background(), time.Second, nil)
	})
}

func TestNewMeterProvider(t *testing.T) {
	reg := prometheus.NewRegistry()
	mp, err := metrics.NewMeterProvider(reg)
	require.NoError(t, err)
	defer func() { _ = mp.Shutdown(context.Background()) }()

	r, err := metrics.NewRecorder(mp)
	require.NoError(t, err)
	r.Turn(context.Background(), "fallback")
	r.ToolInvoked(context.Background(), "get_balance", "function")
	r.LLMCall(context.Background(), time.Second, nil)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "gateway_turns_total")
	require.Contains(t, names, "gateway_tool_invocations_total")
	for _, name := range names {
		require.NotContains(t, name, ".")
	}
}
