package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/cache"
	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/domain/plan"
	"github.com/ruvnet/arcadia-goap/domain/world"
	"github.com/ruvnet/arcadia-goap/infrastructure/logging"
)

// DefaultPlanTTL bounds how long a cached plan may serve after the search
// that produced it. Keys already change whenever the world state or the
// action library changes; the TTL additionally bounds staleness against
// anything the key cannot see.
const DefaultPlanTTL = time.Minute

// CachedPlanner decorates a Planner with a plan cache. Cache keys cover
// the world-state fingerprint, the goal ID, and the action library
// version, so any state mutation or library change misses cleanly. The
// wrapper satisfies PlanService and drops into the Executor unchanged.
//
// Cache consultation happens strictly outside the search: a hit skips the
// search entirely, a miss runs it untouched.
type CachedPlanner struct {
	planner *Planner
	cache   cache.Cache
	ttl     time.Duration
}

// cachedPlan is the stored envelope: the plan plus the diagnostics of the
// search that produced it.
type cachedPlan struct {
	Plan        *plan.Plan       `json:"plan"`
	Diagnostics plan.Diagnostics `json:"diagnostics"`
}

// CachedPlannerOption configures a CachedPlanner.
type CachedPlannerOption func(*CachedPlanner)

// WithPlanTTL sets the cache TTL for stored plans. Zero disables
// expiration.
func WithPlanTTL(ttl time.Duration) CachedPlannerOption {
	return func(cp *CachedPlanner) {
		cp.ttl = ttl
	}
}

// NewCachedPlanner wraps the planner with the given cache backend.
func NewCachedPlanner(p *Planner, c cache.Cache, opts ...CachedPlannerOption) *CachedPlanner {
	cp := &CachedPlanner{
		planner: p,
		cache:   c,
		ttl:     DefaultPlanTTL,
	}
	for _, opt := range opts {
		opt(cp)
	}
	return cp
}

// Plan returns a cached plan when one matches the live state, goal, and
// action library; otherwise it searches and caches a found plan. Cached
// results carry Diagnostics.Cached = true with the original search
// counters. Nil-plan outcomes are never cached: a world where no plan
// exists should re-search once something changes, and the key changes
// with it.
func (cp *CachedPlanner) Plan(ctx context.Context, goalID string) (*plan.Plan, plan.Diagnostics, error) {
	key := cp.cacheKey(goalID)

	if data, ok, err := cp.cache.Get(ctx, key); err == nil && ok {
		var entry cachedPlan
		if jerr := json.Unmarshal(data, &entry); jerr == nil && entry.Plan != nil {
			diag := entry.Diagnostics
			diag.Cached = true

			logging.Debug().
				Add(logging.Component("plancache")).
				Add(logging.GoalID(goalID)).
				Add(logging.Cached(true)).
				Msg("plan served from cache")
			return entry.Plan, diag, nil
		}
		// Undecodable entries are dropped and recomputed
		_ = cp.cache.Delete(ctx, key)
	}

	p, diag, err := cp.planner.Plan(ctx, goalID)
	if err != nil || p == nil {
		return p, diag, err
	}

	if data, merr := json.Marshal(cachedPlan{Plan: p, Diagnostics: diag}); merr == nil {
		if serr := cp.cache.Set(ctx, key, data, cache.SetOptions{TTL: cp.ttl}); serr != nil {
			logging.Warn().
				Add(logging.Component("plancache")).
				Add(logging.GoalID(goalID)).
				Add(logging.ErrorField(serr)).
				Msg("plan cache store failed")
		}
	}
	return p, diag, err
}

// PlanBest composes the planner's goal selection with the cached Plan.
func (cp *CachedPlanner) PlanBest(ctx context.Context) (*plan.Plan, plan.Diagnostics, error) {
	g, ok := cp.planner.SelectGoal()
	if !ok {
		return nil, plan.Diagnostics{Outcome: plan.OutcomeNoPendingGoal}, nil
	}
	return cp.Plan(ctx, g.ID)
}

// SelectGoal delegates to the wrapped planner.
func (cp *CachedPlanner) SelectGoal() (goal.Goal, bool) {
	return cp.planner.SelectGoal()
}

// Actions delegates to the wrapped planner.
func (cp *CachedPlanner) Actions() action.Registry {
	return cp.planner.Actions()
}

// Goals delegates to the wrapped planner.
func (cp *CachedPlanner) Goals() goal.Registry {
	return cp.planner.Goals()
}

// WorldState delegates to the wrapped planner.
func (cp *CachedPlanner) WorldState() world.State {
	return cp.planner.WorldState()
}

// SetWorldState delegates to the wrapped planner. The new state changes
// every cache key, so no explicit invalidation is needed.
func (cp *CachedPlanner) SetWorldState(s world.State) {
	cp.planner.SetWorldState(s)
}

// UpdateState delegates to the wrapped planner.
func (cp *CachedPlanner) UpdateState(key string, v world.Value) {
	cp.planner.UpdateState(key, v)
}

// ApplyFacts delegates to the wrapped planner.
func (cp *CachedPlanner) ApplyFacts(facts world.Facts) {
	cp.planner.ApplyFacts(facts)
}

// Unwrap returns the wrapped planner.
func (cp *CachedPlanner) Unwrap() *Planner {
	return cp.planner
}

// Invalidate drops every cached plan.
func (cp *CachedPlanner) Invalidate(ctx context.Context) error {
	return cp.cache.Clear(ctx)
}

// cacheKey fingerprints everything a search result depends on: the live
// state contents, the goal, and the action library version.
func (cp *CachedPlanner) cacheKey(goalID string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d", cp.planner.WorldState().Key(), goalID, cp.planner.Actions().Version())
	return "plan:" + hex.EncodeToString(h.Sum(nil))
}

var _ PlanService = (*CachedPlanner)(nil)
