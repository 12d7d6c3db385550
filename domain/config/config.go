// Package config provides domain models for engine configuration.
package config

import "time"

// EngineConfig represents the complete planning engine configuration.
type EngineConfig struct {
	// Name is a human-readable name for this configuration.
	Name string `json:"name" yaml:"name"`
	// Version is the configuration schema version.
	Version string `json:"version" yaml:"version"`
	// Description describes the agent's purpose.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Planner contains search settings.
	Planner PlannerSettings `json:"planner,omitempty" yaml:"planner,omitempty"`
	// Executor contains plan execution settings.
	Executor ExecutorSettings `json:"executor,omitempty" yaml:"executor,omitempty"`
	// Logging contains logging settings.
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	// Storage contains archive, cache, and event store settings.
	Storage StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`
	// Policy contains budget settings.
	Policy PolicyConfig `json:"policy,omitempty" yaml:"policy,omitempty"`
	// Domain contains the planning domain: actions, goals, and the
	// initial world state.
	Domain DomainConfig `json:"domain,omitempty" yaml:"domain,omitempty"`
}

// PlannerSettings contains search behavior settings.
type PlannerSettings struct {
	// MaxIterations caps the number of node expansions per search.
	// Zero means the engine default.
	MaxIterations int `json:"max_iterations,omitempty" yaml:"max_iterations,omitempty"`
	// Heuristic selects the search heuristic: "unsatisfied" (default)
	// counts unmet goal conditions, "zero" degrades to uniform cost.
	Heuristic string `json:"heuristic,omitempty" yaml:"heuristic,omitempty"`
}

// ExecutorSettings contains plan execution settings.
type ExecutorSettings struct {
	// MaxReplans caps how many times a run may replan before failing.
	MaxReplans int `json:"max_replans,omitempty" yaml:"max_replans,omitempty"`
	// StepTimeout bounds a single action handler invocation.
	StepTimeout Duration `json:"step_timeout,omitempty" yaml:"step_timeout,omitempty"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error, off).
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is the output format (json, console).
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// StorageConfig contains persistence settings.
type StorageConfig struct {
	// Archive configures the plan archive.
	Archive ArchiveConfig `json:"archive,omitempty" yaml:"archive,omitempty"`
	// Cache configures the plan cache.
	Cache CacheConfig `json:"cache,omitempty" yaml:"cache,omitempty"`
	// Events configures the event journal.
	Events EventsConfig `json:"events,omitempty" yaml:"events,omitempty"`
}

// ArchiveConfig configures the plan archive backend.
type ArchiveConfig struct {
	// Backend selects the archive store (none, memory, sqlite, postgres).
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
	// Path is the database file path for the sqlite backend.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// DSN is the connection string for the postgres backend.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

// CacheConfig configures the plan cache backend.
type CacheConfig struct {
	// Backend selects the cache (none, memory, redis, badger).
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
	// TTL is how long cached plans stay valid.
	TTL Duration `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	// MaxEntries caps the memory cache size.
	MaxEntries int `json:"max_entries,omitempty" yaml:"max_entries,omitempty"`
	// Addr is the redis server address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
	// Password is the redis password.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	// DB is the redis database number.
	DB int `json:"db,omitempty" yaml:"db,omitempty"`
	// Path is the database directory for the badger backend. Badger keeps
	// cached plans across restarts.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// EventsConfig configures the event journal backend.
type EventsConfig struct {
	// Backend selects the event store (none, memory, badger).
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
	// Path is the journal directory for the badger backend.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// PolicyConfig contains budget settings.
type PolicyConfig struct {
	// Budgets maps resource names (plans, replans, steps) to limits.
	Budgets map[string]int64 `json:"budgets,omitempty" yaml:"budgets,omitempty"`
}

// DomainConfig declares the planning domain.
type DomainConfig struct {
	// InitialState is the starting world state. Values must be bool,
	// integer, float, or string.
	InitialState map[string]any `json:"initial_state,omitempty" yaml:"initial_state,omitempty"`
	// Actions lists the available actions.
	Actions []ActionDef `json:"actions,omitempty" yaml:"actions,omitempty"`
	// Goals lists the goals the agent may pursue.
	Goals []GoalDef `json:"goals,omitempty" yaml:"goals,omitempty"`
}

// ActionDef declares one action.
type ActionDef struct {
	// ID is the unique action identifier.
	ID string `json:"id" yaml:"id"`
	// Cost is the non-negative cost of performing the action.
	Cost float64 `json:"cost" yaml:"cost"`
	// Preconditions are the facts that must hold before the action runs.
	Preconditions map[string]any `json:"preconditions,omitempty" yaml:"preconditions,omitempty"`
	// Effects are the facts the action establishes.
	Effects map[string]any `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// GoalDef declares one goal.
type GoalDef struct {
	// ID is the unique goal identifier.
	ID string `json:"id" yaml:"id"`
	// Priority orders competing goals, from 0 to 1.
	Priority float64 `json:"priority" yaml:"priority"`
	// Conditions are the facts that must hold for the goal to be satisfied.
	Conditions map[string]any `json:"conditions" yaml:"conditions"`
}

// Duration is a time.Duration that supports JSON/YAML string representation.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
