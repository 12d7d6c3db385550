package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/ruvnet/arcadia-goap/domain/telemetry"
)

// OTelMeter implements telemetry.Meter on the global OTel meter provider.
type OTelMeter struct {
	meter metric.Meter
}

// NewOTelMeter creates a meter under the given instrumentation scope name.
func NewOTelMeter(name string) *OTelMeter {
	return &OTelMeter{
		meter: otel.Meter(name),
	}
}

var _ telemetry.Meter = (*OTelMeter)(nil)

// instrumentOptions folds the domain metric options into OTel instrument
// options. InstrumentOption satisfies every typed option interface, so the
// result feeds any instrument constructor after an element-wise copy.
func instrumentOptions(opts []telemetry.MetricOption) []metric.InstrumentOption {
	cfg := &telemetry.MetricConfig{}
	for _, opt := range opts {
		opt.ApplyMetric(cfg)
	}

	out := make([]metric.InstrumentOption, 0, 2)
	if cfg.Description != "" {
		out = append(out, metric.WithDescription(cfg.Description))
	}
	if cfg.Unit != "" {
		out = append(out, metric.WithUnit(cfg.Unit))
	}
	return out
}

// Counter implements telemetry.Meter. Instrument creation failures degrade
// to a no-op instrument rather than failing the engine.
func (m *OTelMeter) Counter(name string, opts ...telemetry.MetricOption) telemetry.Counter {
	base := instrumentOptions(opts)
	otelOpts := make([]metric.Int64CounterOption, len(base))
	for i, o := range base {
		otelOpts[i] = o
	}

	counter, err := m.meter.Int64Counter(name, otelOpts...)
	if err != nil {
		return &noopCounter{}
	}
	return &otelCounter{counter: counter}
}

// Histogram implements telemetry.Meter.
func (m *OTelMeter) Histogram(name string, opts ...telemetry.MetricOption) telemetry.Histogram {
	base := instrumentOptions(opts)
	otelOpts := make([]metric.Float64HistogramOption, len(base))
	for i, o := range base {
		otelOpts[i] = o
	}

	histogram, err := m.meter.Float64Histogram(name, otelOpts...)
	if err != nil {
		return &noopHistogram{}
	}
	return &otelHistogram{histogram: histogram}
}

// Gauge implements telemetry.Meter.
func (m *OTelMeter) Gauge(name string, opts ...telemetry.MetricOption) telemetry.Gauge {
	base := instrumentOptions(opts)
	otelOpts := make([]metric.Float64GaugeOption, len(base))
	for i, o := range base {
		otelOpts[i] = o
	}

	gauge, err := m.meter.Float64Gauge(name, otelOpts...)
	if err != nil {
		return &noopGauge{}
	}
	return &otelGauge{gauge: gauge}
}

type otelCounter struct {
	counter metric.Int64Counter
}

func (c *otelCounter) Add(ctx context.Context, value int64, attrs ...telemetry.Attribute) {
	c.counter.Add(ctx, value, metric.WithAttributes(convertAttributes(attrs)...))
}

var _ telemetry.Counter = (*otelCounter)(nil)

type otelHistogram struct {
	histogram metric.Float64Histogram
}

func (h *otelHistogram) Record(ctx context.Context, value float64, attrs ...telemetry.Attribute) {
	h.histogram.Record(ctx, value, metric.WithAttributes(convertAttributes(attrs)...))
}

var _ telemetry.Histogram = (*otelHistogram)(nil)

type otelGauge struct {
	gauge metric.Float64Gauge
}

func (g *otelGauge) Record(ctx context.Context, value float64, attrs ...telemetry.Attribute) {
	g.gauge.Record(ctx, value, metric.WithAttributes(convertAttributes(attrs)...))
}

var _ telemetry.Gauge = (*otelGauge)(nil)
