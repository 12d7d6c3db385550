// Package telemetry defines the tracing and metrics interfaces the engine
// emits through. The planner and executor depend only on these; the OTel
// binding lives in infrastructure/observability, and both default to no-ops
// so an unconfigured engine pays nothing.
package telemetry

import (
	"context"
)

// Tracer starts spans around planning operations, one span per search or
// executed step.
type Tracer interface {
	StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
}

// Span is an in-flight unit of work. End must be called exactly once.
type Span interface {
	End()

	// SetAttributes attaches key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// RecordError records err as a span event.
	RecordError(err error)

	// SetStatus sets the final status; description is only meaningful for
	// StatusCodeError.
	SetStatus(code StatusCode, description string)

	// AddEvent marks a point-in-time occurrence within the span.
	AddEvent(name string, attrs ...Attribute)
}

// StatusCode is the outcome recorded on a finished span.
type StatusCode int

const (
	StatusCodeUnset StatusCode = iota
	StatusCodeOK
	StatusCodeError
)

// SpanOption configures a span at start time.
type SpanOption interface {
	ApplySpan(*SpanConfig)
}

// SpanConfig collects the options applied to a new span.
type SpanConfig struct {
	Attributes []Attribute
}

// SpanOptionFunc adapts a function to SpanOption.
type SpanOptionFunc func(*SpanConfig)

func (f SpanOptionFunc) ApplySpan(c *SpanConfig) { f(c) }

// WithAttributes attaches attributes when the span starts rather than after.
func WithAttributes(attrs ...Attribute) SpanOption {
	return SpanOptionFunc(func(c *SpanConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	})
}

// Attribute is one key-value pair on a span, event, or metric point.
type Attribute struct {
	Key   string
	Value any
}

// Typed attribute constructors.

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Meter creates the engine's instruments. Instruments are cheap to create
// and safe to cache; callers typically build them once at construction.
type Meter interface {
	// Counter creates a monotonic counter, used for totals such as plans
	// computed or cache hits.
	Counter(name string, opts ...MetricOption) Counter

	// Histogram creates a distribution, used for search latency and
	// expanded-node counts.
	Histogram(name string, opts ...MetricOption) Histogram

	// Gauge creates a last-value instrument, used for budget remainders.
	Gauge(name string, opts ...MetricOption) Gauge
}

// Counter accumulates int64 increments.
type Counter interface {
	Add(ctx context.Context, value int64, attrs ...Attribute)
}

// Histogram records float64 observations.
type Histogram interface {
	Record(ctx context.Context, value float64, attrs ...Attribute)
}

// Gauge records the most recent float64 value.
type Gauge interface {
	Record(ctx context.Context, value float64, attrs ...Attribute)
}

// MetricOption configures an instrument at creation.
type MetricOption interface {
	ApplyMetric(*MetricConfig)
}

// MetricConfig collects the options applied to a new instrument.
type MetricConfig struct {
	Description string
	Unit        string
}

// MetricOptionFunc adapts a function to MetricOption.
type MetricOptionFunc func(*MetricConfig)

func (f MetricOptionFunc) ApplyMetric(c *MetricConfig) { f(c) }

// WithDescription sets the instrument's description.
func WithDescription(desc string) MetricOption {
	return MetricOptionFunc(func(c *MetricConfig) {
		c.Description = desc
	})
}

// WithUnit sets the instrument's unit, in UCUM notation.
func WithUnit(unit string) MetricOption {
	return MetricOptionFunc(func(c *MetricConfig) {
		c.Unit = unit
	})
}
