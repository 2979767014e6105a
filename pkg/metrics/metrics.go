// Package metrics builds the OpenTelemetry meter provider exported to
// Prometheus and the gateway instruments recorded through it.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60} //nolint: gochecknoglobals

const meterName = "gateway"

// NewMeterProvider returns a meter provider whose instruments are exposed on
// the Prometheus registerer.
func NewMeterProvider(registerer prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(registerer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// Recorder records gateway level metrics. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	turns      metric.Int64Counter
	tools      metric.Int64Counter
	llmLatency metric.Float64Histogram
}

// NewRecorder creates the gateway instruments on mp. Instrument names use
// underscores so the exporter keeps classic Prometheus names.
func NewRecorder(mp metric.MeterProvider) (*Recorder, error) {
	meter := mp.Meter(meterName)

	turns, err := meter.Int64Counter("gateway_turns",
		metric.WithDescription("Handled chatbot turns by outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create turns counter: %w", err)
	}
	tools, err := meter.Int64Counter("gateway_tool_invocations",
		metric.WithDescription("Tool invocations by tool and resulting event."))
	if err != nil {
		return nil, fmt.Errorf("could not create tools counter: %w", err)
	}
	llmLatency, err := meter.Float64Histogram("gateway_llm_duration",
		metric.WithUnit("s"),
		metric.WithDescription("Chat completion latency."),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create llm latency histogram: %w", err)
	}

	return &Recorder{
		turns:      turns,
		tools:      tools,
		llmLatency: llmLatency,
	}, nil
}

// Turn counts a handled turn. outcome is "reply", "function" or "fallback".
func (r *Recorder) Turn(ctx context.Context, outcome string) {
	if r == nil {
		return
	}
	r.turns.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// ToolInvoked counts a tool execution. event is empty when the tool failed.
func (r *Recorder) ToolInvoked(ctx context.Context, tool, event string) {
	if r == nil {
		return
	}
	if event == "" {
		event = "error"
	}
	r.tools.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("event", event)))
}

// LLMCall records the latency of a chat completion.
func (r *Recorder) LLMCall(ctx context.Context, took time.Duration, err error) {
	if r == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.llmLatency.Record(ctx, took.Seconds(), metric.WithAttributes(attribute.String("status", status)))
}
