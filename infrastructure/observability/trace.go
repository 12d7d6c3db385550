package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ruvnet/arcadia-goap/domain/telemetry"
)

// OTelTracer implements telemetry.Tracer on the global OTel tracer provider.
type OTelTracer struct {
	tracer trace.Tracer
}

// NewOTelTracer creates a tracer under the given instrumentation scope name.
func NewOTelTracer(name string) *OTelTracer {
	return &OTelTracer{
		tracer: otel.Tracer(name),
	}
}

var (
	_ telemetry.Tracer = (*OTelTracer)(nil)
	_ telemetry.Span   = (*otelSpan)(nil)
)

// StartSpan implements telemetry.Tracer.
func (t *OTelTracer) StartSpan(ctx context.Context, name string, opts ...telemetry.SpanOption) (context.Context, telemetry.Span) {
	cfg := &telemetry.SpanConfig{}
	for _, opt := range opts {
		opt.ApplySpan(cfg)
	}

	otelOpts := make([]trace.SpanStartOption, 0, 1)
	if len(cfg.Attributes) > 0 {
		otelOpts = append(otelOpts, trace.WithAttributes(convertAttributes(cfg.Attributes)...))
	}

	ctx, span := t.tracer.Start(ctx, name, otelOpts...)
	return ctx, &otelSpan{span: span}
}

// otelSpan adapts a live OTel span to telemetry.Span. Every method is a
// straight delegation apart from the attribute and status conversions.
type otelSpan struct {
	span trace.Span
}

func (s *otelSpan) End() {
	s.span.End()
}

func (s *otelSpan) SetAttributes(attrs ...telemetry.Attribute) {
	s.span.SetAttributes(convertAttributes(attrs)...)
}

func (s *otelSpan) RecordError(err error) {
	s.span.RecordError(err)
}

func (s *otelSpan) SetStatus(code telemetry.StatusCode, description string) {
	s.span.SetStatus(convertStatusCode(code), description)
}

func (s *otelSpan) AddEvent(name string, attrs ...telemetry.Attribute) {
	s.span.AddEvent(name, trace.WithAttributes(convertAttributes(attrs)...))
}

// convertAttributes maps domain attributes onto typed OTel attributes.
// Values outside the supported kinds are dropped rather than stringified, so
// a stray struct in an attribute never leaks its Go syntax into telemetry.
func convertAttributes(attrs []telemetry.Attribute) []attribute.KeyValue {
	result := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		switch v := attr.Value.(type) {
		case string:
			result = append(result, attribute.String(attr.Key, v))
		case int:
			result = append(result, attribute.Int(attr.Key, v))
		case int64:
			result = append(result, attribute.Int64(attr.Key, v))
		case float64:
			result = append(result, attribute.Float64(attr.Key, v))
		case bool:
			result = append(result, attribute.Bool(attr.Key, v))
		}
	}
	return result
}

func convertStatusCode(code telemetry.StatusCode) codes.Code {
	switch code {
	case telemetry.StatusCodeOK:
		return codes.Ok
	case telemetry.StatusCodeError:
		return codes.Error
	default:
		return codes.Unset
	}
}

// SpanFromContext returns the span recorded in ctx, or a no-op span when the
// context carries none. Handlers use this to annotate the executor's step
// span without plumbing the span itself.
func SpanFromContext(ctx context.Context) telemetry.Span {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return &noopSpan{}
	}
	return &otelSpan{span: span}
}
