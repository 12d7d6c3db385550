package telemetry

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupTestMetrics sets up a test meter provider and returns it along with a reader.
func setupTestMetrics(t *testing.T) (*metric.ManualReader, *MetricsProvider) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	otel.SetMeterProvider(provider)

	mp := NewMetricsProvider(DefaultMetricsConfig())
	if mp.Error() != nil {
		t.Fatalf("failed to create metrics provider: %v", mp.Error())
	}

	return reader, mp
}

func collectNames(t *testing.T, reader *metric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestNewMetricsProvider(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	if mp == nil {
		t.Fatal("NewMetricsProvider returned nil")
	}
	if mp.Error() != nil {
		t.Errorf("unexpected error: %v", mp.Error())
	}
}

func TestMetricsProvider_RecordPlanSearch(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.RecordPlanSearch(ctx, "kill_enemy", "plan_found", 10*time.Millisecond)
	mp.RecordPlanSearch(ctx, "stay_fed", "no_plan", 2*time.Millisecond)

	metrics := collectNames(t, reader)
	m, ok := metrics["goap.plan.searches"]
	if !ok {
		t.Fatal("goap.plan.searches metric not found")
	}

	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Errorf("expected 2 searches, got %d", total)
	}

	if _, ok := metrics["goap.plan.duration"]; !ok {
		t.Error("goap.plan.duration metric not found")
	}
}

func TestMetricsProvider_RecordStepExecution(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.RecordStepExecution(ctx, "pickup_weapon", true, 5*time.Millisecond)
	mp.RecordStepExecution(ctx, "attack", false, 3*time.Millisecond)

	metrics := collectNames(t, reader)
	if _, ok := metrics["goap.step.executions"]; !ok {
		t.Error("goap.step.executions metric not found")
	}
	if _, ok := metrics["goap.step.duration"]; !ok {
		t.Error("goap.step.duration metric not found")
	}
	// The failed step also records an error.
	if _, ok := metrics["goap.errors"]; !ok {
		t.Error("goap.errors metric not found after failed step")
	}
}

func TestMetricsProvider_RecordReplan(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.RecordReplan(ctx, "kill_enemy", "precondition_violated")

	metrics := collectNames(t, reader)
	if _, ok := metrics["goap.replans"]; !ok {
		t.Error("goap.replans metric not found")
	}
}

func TestMetricsProvider_RecordPhaseTransition(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.RecordPhaseTransition(ctx, "idle", "planning", "run-123")
	mp.RecordPhaseTransition(ctx, "planning", "executing", "run-123")

	metrics := collectNames(t, reader)
	if _, ok := metrics["goap.phase.transitions"]; !ok {
		t.Error("goap.phase.transitions metric not found")
	}
}

func TestMetricsProvider_RecordBudgetConsumption(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.RecordBudgetConsumption(ctx, "plans", 1, 99)
	mp.RecordBudgetConsumption(ctx, "steps", 1, 49)

	metrics := collectNames(t, reader)
	if _, ok := metrics["goap.budget.consumption"]; !ok {
		t.Error("goap.budget.consumption metric not found")
	}
}

func TestMetricsProvider_RecordCacheHitMiss(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.RecordCacheHit(ctx, "kill_enemy")
	mp.RecordCacheMiss(ctx, "stay_fed")

	metrics := collectNames(t, reader)
	if _, ok := metrics["goap.cache.hits"]; !ok {
		t.Error("goap.cache.hits metric not found")
	}
	if _, ok := metrics["goap.cache.misses"]; !ok {
		t.Error("goap.cache.misses metric not found")
	}
}

func TestMetricsProvider_RecordActiveRuns(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.IncrementActiveRuns(ctx)
	mp.IncrementActiveRuns(ctx)
	mp.DecrementActiveRuns(ctx)

	metrics := collectNames(t, reader)
	if _, ok := metrics["goap.runs.active"]; !ok {
		t.Error("goap.runs.active metric not found")
	}
}

func TestMetricsProvider_RecordRunDuration(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.RecordRunDuration(ctx, time.Second, "done", true)

	metrics := collectNames(t, reader)
	if _, ok := metrics["goap.run.duration"]; !ok {
		t.Error("goap.run.duration metric not found")
	}
}

func TestNoopMetricsProvider(t *testing.T) {
	// Verify that NoopMetricsProvider doesn't panic
	noop := &NoopMetricsProvider{}
	ctx := context.Background()

	noop.RecordPlanSearch(ctx, "goal", "plan_found", time.Second)
	noop.RecordStepExecution(ctx, "action", true, time.Second)
	noop.RecordReplan(ctx, "goal", "reason")
	noop.RecordPhaseTransition(ctx, "idle", "planning", "run")
	noop.RecordBudgetConsumption(ctx, "plans", 1, 99)
	noop.RecordCacheHit(ctx, "goal")
	noop.RecordCacheMiss(ctx, "goal")
	noop.RecordError(ctx, "type", nil)
	noop.RecordRunDuration(ctx, time.Second, "done", true)
	noop.IncrementActiveRuns(ctx)
	noop.DecrementActiveRuns(ctx)
}

func TestDefaultMetricsConfig(t *testing.T) {
	config := DefaultMetricsConfig()

	if config.MeterName == "" {
		t.Error("MeterName should not be empty")
	}
	if config.MeterVersion == "" {
		t.Error("MeterVersion should not be empty")
	}
}
