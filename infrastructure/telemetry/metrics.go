// Package telemetry provides observability infrastructure including
// OpenTelemetry metrics support for the planning runtime.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsProvider provides access to metrics instruments for the
// plan-act-replan execution loop.
type MetricsProvider struct {
	meter metric.Meter

	// Counters
	planSearches      metric.Int64Counter
	stepExecutions    metric.Int64Counter
	replans           metric.Int64Counter
	phaseTransitions  metric.Int64Counter
	budgetConsumption metric.Int64Counter
	cacheHits         metric.Int64Counter
	cacheMisses       metric.Int64Counter
	errors            metric.Int64Counter

	// Histograms
	planDuration metric.Float64Histogram
	stepDuration metric.Float64Histogram
	runDuration  metric.Float64Histogram

	// Gauges (using UpDownCounter for OpenTelemetry)
	activeRuns metric.Int64UpDownCounter

	initOnce sync.Once
	initErr  error
}

// MetricsConfig configures the metrics provider.
type MetricsConfig struct {
	// MeterName is the name of the meter (default: "github.com/ruvnet/arcadia-goap").
	MeterName string
	// MeterVersion is the version of the meter.
	MeterVersion string
	// Attributes are default attributes to attach to all metrics.
	Attributes []attribute.KeyValue
}

// DefaultMetricsConfig returns a default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		MeterName:    "github.com/ruvnet/arcadia-goap",
		MeterVersion: "1.0.0",
	}
}

// NewMetricsProvider creates a new metrics provider.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	if config.MeterName == "" {
		config = DefaultMetricsConfig()
	}

	provider := otel.GetMeterProvider()
	meter := provider.Meter(
		config.MeterName,
		metric.WithInstrumentationVersion(config.MeterVersion),
	)

	mp := &MetricsProvider{
		meter: meter,
	}

	mp.initOnce.Do(func() {
		mp.initErr = mp.initInstruments()
	})

	return mp
}

// initInstruments initializes all metric instruments.
func (mp *MetricsProvider) initInstruments() error {
	var err error

	// Counters
	mp.planSearches, err = mp.meter.Int64Counter(
		"goap.plan.searches",
		metric.WithDescription("Number of planning searches"),
		metric.WithUnit("{search}"),
	)
	if err != nil {
		return err
	}

	mp.stepExecutions, err = mp.meter.Int64Counter(
		"goap.step.executions",
		metric.WithDescription("Number of plan step executions"),
		metric.WithUnit("{step}"),
	)
	if err != nil {
		return err
	}

	mp.replans, err = mp.meter.Int64Counter(
		"goap.replans",
		metric.WithDescription("Number of replanning rounds"),
		metric.WithUnit("{replan}"),
	)
	if err != nil {
		return err
	}

	mp.phaseTransitions, err = mp.meter.Int64Counter(
		"goap.phase.transitions",
		metric.WithDescription("Number of run phase transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return err
	}

	mp.budgetConsumption, err = mp.meter.Int64Counter(
		"goap.budget.consumption",
		metric.WithDescription("Budget units consumed"),
		metric.WithUnit("{unit}"),
	)
	if err != nil {
		return err
	}

	mp.cacheHits, err = mp.meter.Int64Counter(
		"goap.cache.hits",
		metric.WithDescription("Number of plan cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return err
	}

	mp.cacheMisses, err = mp.meter.Int64Counter(
		"goap.cache.misses",
		metric.WithDescription("Number of plan cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return err
	}

	mp.errors, err = mp.meter.Int64Counter(
		"goap.errors",
		metric.WithDescription("Number of errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	// Histograms
	mp.planDuration, err = mp.meter.Float64Histogram(
		"goap.plan.duration",
		metric.WithDescription("Duration of planning searches"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	mp.stepDuration, err = mp.meter.Float64Histogram(
		"goap.step.duration",
		metric.WithDescription("Duration of plan step executions"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	mp.runDuration, err = mp.meter.Float64Histogram(
		"goap.run.duration",
		metric.WithDescription("Duration of agent runs"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	// Gauges (UpDownCounters)
	mp.activeRuns, err = mp.meter.Int64UpDownCounter(
		"goap.runs.active",
		metric.WithDescription("Number of active agent runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Error returns any initialization error.
func (mp *MetricsProvider) Error() error {
	return mp.initErr
}

// RecordPlanSearch records one planning search with its outcome.
func (mp *MetricsProvider) RecordPlanSearch(ctx context.Context, goalID string, outcome string, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("goal.id", goalID),
		attribute.String("outcome", outcome),
	}

	mp.planSearches.Add(ctx, 1, metric.WithAttributes(attrs...))
	mp.planDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordStepExecution records the execution of one plan step.
func (mp *MetricsProvider) RecordStepExecution(ctx context.Context, actionID string, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("action.id", actionID),
		attribute.Bool("success", success),
	}

	mp.stepExecutions.Add(ctx, 1, metric.WithAttributes(attrs...))
	mp.stepDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if !success {
		mp.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("error.type", "step_execution"),
			attribute.String("action.id", actionID),
		))
	}
}

// RecordReplan records a replanning round.
func (mp *MetricsProvider) RecordReplan(ctx context.Context, goalID string, reason string) {
	attrs := []attribute.KeyValue{
		attribute.String("goal.id", goalID),
		attribute.String("reason", reason),
	}

	mp.replans.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordPhaseTransition records a run phase transition.
func (mp *MetricsProvider) RecordPhaseTransition(ctx context.Context, fromPhase, toPhase string, runID string) {
	attrs := []attribute.KeyValue{
		attribute.String("phase.from", fromPhase),
		attribute.String("phase.to", toPhase),
		attribute.String("run.id", runID),
	}

	mp.phaseTransitions.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordBudgetConsumption records budget consumption.
func (mp *MetricsProvider) RecordBudgetConsumption(ctx context.Context, budgetName string, amount int64, remaining int64) {
	attrs := []attribute.KeyValue{
		attribute.String("budget.name", budgetName),
		attribute.Int64("budget.remaining", remaining),
	}

	mp.budgetConsumption.Add(ctx, amount, metric.WithAttributes(attrs...))
}

// RecordCacheHit records a plan cache hit.
func (mp *MetricsProvider) RecordCacheHit(ctx context.Context, goalID string) {
	attrs := []attribute.KeyValue{
		attribute.String("goal.id", goalID),
	}

	mp.cacheHits.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCacheMiss records a plan cache miss.
func (mp *MetricsProvider) RecordCacheMiss(ctx context.Context, goalID string) {
	attrs := []attribute.KeyValue{
		attribute.String("goal.id", goalID),
	}

	mp.cacheMisses.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordError records an error.
func (mp *MetricsProvider) RecordError(ctx context.Context, errorType string, details map[string]string) {
	attrs := []attribute.KeyValue{
		attribute.String("error.type", errorType),
	}
	for k, v := range details {
		attrs = append(attrs, attribute.String(k, v))
	}

	mp.errors.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRunDuration records the duration of an agent run.
func (mp *MetricsProvider) RecordRunDuration(ctx context.Context, duration time.Duration, finalPhase string, success bool) {
	attrs := []attribute.KeyValue{
		attribute.String("phase.final", finalPhase),
		attribute.Bool("success", success),
	}

	mp.runDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// IncrementActiveRuns increments the active runs counter.
func (mp *MetricsProvider) IncrementActiveRuns(ctx context.Context) {
	mp.activeRuns.Add(ctx, 1)
}

// DecrementActiveRuns decrements the active runs counter.
func (mp *MetricsProvider) DecrementActiveRuns(ctx context.Context) {
	mp.activeRuns.Add(ctx, -1)
}

// NoopMetricsProvider is a no-op metrics provider for testing or when metrics are disabled.
type NoopMetricsProvider struct{}

// RecordPlanSearch is a no-op.
func (n *NoopMetricsProvider) RecordPlanSearch(ctx context.Context, goalID string, outcome string, duration time.Duration) {
}

// RecordStepExecution is a no-op.
func (n *NoopMetricsProvider) RecordStepExecution(ctx context.Context, actionID string, success bool, duration time.Duration) {
}

// RecordReplan is a no-op.
func (n *NoopMetricsProvider) RecordReplan(ctx context.Context, goalID string, reason string) {}

// RecordPhaseTransition is a no-op.
func (n *NoopMetricsProvider) RecordPhaseTransition(ctx context.Context, fromPhase, toPhase string, runID string) {
}

// RecordBudgetConsumption is a no-op.
func (n *NoopMetricsProvider) RecordBudgetConsumption(ctx context.Context, budgetName string, amount int64, remaining int64) {
}

// RecordCacheHit is a no-op.
func (n *NoopMetricsProvider) RecordCacheHit(ctx context.Context, goalID string) {}

// RecordCacheMiss is a no-op.
func (n *NoopMetricsProvider) RecordCacheMiss(ctx context.Context, goalID string) {}

// RecordError is a no-op.
func (n *NoopMetricsProvider) RecordError(ctx context.Context, errorType string, details map[string]string) {
}

// RecordRunDuration is a no-op.
func (n *NoopMetricsProvider) RecordRunDuration(ctx context.Context, duration time.Duration, finalPhase string, success bool) {
}

// IncrementActiveRuns is a no-op.
func (n *NoopMetricsProvider) IncrementActiveRuns(ctx context.Context) {}

// DecrementActiveRuns is a no-op.
func (n *NoopMetricsProvider) DecrementActiveRuns(ctx context.Context) {}

// Metrics defines the interface for metrics recording.
type Metrics interface {
	RecordPlanSearch(ctx context.Context, goalID string, outcome string, duration time.Duration)
	RecordStepExecution(ctx context.Context, actionID string, success bool, duration time.Duration)
	RecordReplan(ctx context.Context, goalID string, reason string)
	RecordPhaseTransition(ctx context.Context, fromPhase, toPhase string, runID string)
	RecordBudgetConsumption(ctx context.Context, budgetName string, amount int64, remaining int64)
	RecordCacheHit(ctx context.Context, goalID string)
	RecordCacheMiss(ctx context.Context, goalID string)
	RecordError(ctx context.Context, errorType string, details map[string]string)
	RecordRunDuration(ctx context.Context, duration time.Duration, finalPhase string, success bool)
	IncrementActiveRuns(ctx context.Context)
	DecrementActiveRuns(ctx context.Context)
}

// Ensure implementations satisfy the interface.
var (
	_ Metrics = (*MetricsProvider)(nil)
	_ Metrics = (*NoopMetricsProvider)(nil)
)
