package telemetry

// Span names used by the planner and executor.
const (
	SpanPlan       = "goap.plan"
	SpanPlanBest   = "goap.plan_best"
	SpanSelectGoal = "goap.select_goal"
	SpanExecute    = "goap.execute"
	SpanStep       = "goap.execute.step"
)

// Metric instrument names.
const (
	MetricPlansTotal     = "goap.plans.total"
	MetricPlanDuration   = "goap.plan.duration"
	MetricPlanIterations = "goap.plan.iterations"
	MetricPlanCost       = "goap.plan.cost"
	MetricPlanLength     = "goap.plan.length"
	MetricOpenPeak       = "goap.plan.open_peak"
	MetricStepsTotal     = "goap.execute.steps.total"
	MetricReplansTotal   = "goap.execute.replans.total"
	MetricCacheHits      = "goap.cache.hits"
	MetricCacheMisses    = "goap.cache.misses"
)

// Attribute keys used across spans and metrics.
const (
	AttrGoalID   = "goap.goal_id"
	AttrAgentID  = "goap.agent_id"
	AttrOutcome  = "goap.outcome"
	AttrActionID = "goap.action_id"
)
