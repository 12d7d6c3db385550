// Package api provides the public API for the arcadia-goap planning engine.
// This file provides configuration-related exports.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/ruvnet/arcadia-goap/application"
	domainconfig "github.com/ruvnet/arcadia-goap/domain/config"
	infraconfig "github.com/ruvnet/arcadia-goap/infrastructure/config"
)

// Re-export domain configuration types.
type (
	// EngineConfig represents the complete engine configuration.
	EngineConfig = domainconfig.EngineConfig
	// PlannerSettings contains planning search settings.
	PlannerSettings = domainconfig.PlannerSettings
	// ExecutorSettings contains plan execution settings.
	ExecutorSettings = domainconfig.ExecutorSettings
	// LoggingConfig contains logging settings.
	LoggingConfig = domainconfig.LoggingConfig
	// StorageConfig contains storage backend settings.
	StorageConfig = domainconfig.StorageConfig
	// ArchiveConfig configures the plan archive backend.
	ArchiveConfig = domainconfig.ArchiveConfig
	// CacheConfig configures the plan cache backend.
	CacheConfig = domainconfig.CacheConfig
	// EventsConfig configures the event store backend.
	EventsConfig = domainconfig.EventsConfig
	// PolicyConfig contains run budget settings.
	PolicyConfig = domainconfig.PolicyConfig
	// DomainConfig declares the planning domain: actions, goals, and the
	// initial world state.
	DomainConfig = domainconfig.DomainConfig
	// ActionDef defines one action declaratively.
	ActionDef = domainconfig.ActionDef
	// GoalDef defines one goal declaratively.
	GoalDef = domainconfig.GoalDef
	// ConfigDuration is a time.Duration that supports JSON/YAML string
	// representation.
	ConfigDuration = domainconfig.Duration

	// ValidationError represents a configuration validation error.
	ValidationError = domainconfig.ValidationError
	// ValidationErrors is a collection of validation errors.
	ValidationErrors = domainconfig.ValidationErrors
)

// Re-export infrastructure configuration types.
type (
	// ConfigLoader loads engine configuration from files.
	ConfigLoader = infraconfig.Loader
	// ConfigBuilder builds engine components from configuration.
	ConfigBuilder = infraconfig.Builder
	// ConfigBuildResult contains the built components from configuration.
	ConfigBuildResult = infraconfig.BuildResult
	// ConfigLoaderOption configures the loader.
	ConfigLoaderOption = infraconfig.LoaderOption
	// ConfigWatcher reloads configuration when the file changes.
	ConfigWatcher = infraconfig.Watcher
	// ConfigWatcherOption configures the watcher.
	ConfigWatcherOption = infraconfig.WatcherOption
	// ConfigFormat identifies a configuration encoding.
	ConfigFormat = infraconfig.Format
	// JSONSchema represents a JSON Schema document.
	JSONSchema = infraconfig.JSONSchema
)

// Configuration format constants.
const (
	// ConfigFormatYAML is the YAML format.
	ConfigFormatYAML = infraconfig.FormatYAML
	// ConfigFormatJSON is the JSON format.
	ConfigFormatJSON = infraconfig.FormatJSON
)

// Configuration errors.
var (
	// ErrConfigNotFound indicates the configuration file was not found.
	ErrConfigNotFound = domainconfig.ErrConfigNotFound
	// ErrInvalidFormat indicates the configuration format is invalid.
	ErrInvalidFormat = domainconfig.ErrInvalidFormat
	// ErrUnsupportedFormat indicates the file format is not supported.
	ErrUnsupportedFormat = domainconfig.ErrUnsupportedFormat
	// ErrValidationFailed indicates configuration validation failed.
	ErrValidationFailed = domainconfig.ErrValidationFailed
	// ErrMissingEnvVar indicates a required environment variable is not set.
	ErrMissingEnvVar = domainconfig.ErrMissingEnvVar
	// ErrBuildFailed indicates engine building from config failed.
	ErrBuildFailed = domainconfig.ErrBuildFailed
)

// NewConfigLoader creates a new configuration loader with default settings.
func NewConfigLoader() *ConfigLoader {
	return infraconfig.NewLoader()
}

// NewConfigLoaderWithOptions creates a loader with the specified options.
func NewConfigLoaderWithOptions(opts ...ConfigLoaderOption) *ConfigLoader {
	return infraconfig.NewLoaderWithOptions(opts...)
}

// ConfigWithEnvExpansion enables or disables environment variable expansion.
func ConfigWithEnvExpansion(enabled bool) ConfigLoaderOption {
	return infraconfig.WithEnvExpansion(enabled)
}

// ConfigWithStrictEnv enables strict environment variable checking.
func ConfigWithStrictEnv(enabled bool) ConfigLoaderOption {
	return infraconfig.WithStrictEnv(enabled)
}

// ConfigWithValidation enables or disables configuration validation.
func ConfigWithValidation(enabled bool) ConfigLoaderOption {
	return infraconfig.WithValidation(enabled)
}

// NewConfigBuilder creates a new configuration builder.
func NewConfigBuilder(config *EngineConfig) *ConfigBuilder {
	return infraconfig.NewBuilder(config)
}

// NewConfigValidator creates a new configuration validator.
func NewConfigValidator() *domainconfig.Validator {
	return domainconfig.NewValidator()
}

// NewConfigWatcher creates a watcher that invokes onChange with the
// freshly loaded configuration whenever the file changes. Call Start to
// begin watching.
func NewConfigWatcher(path string, onChange func(*EngineConfig), opts ...ConfigWatcherOption) (*ConfigWatcher, error) {
	return infraconfig.NewWatcher(path, onChange, opts...)
}

// ConfigWithDebounce sets how long the watcher coalesces change events
// before reloading.
func ConfigWithDebounce(d time.Duration) ConfigWatcherOption {
	return infraconfig.WithDebounce(d)
}

// ConfigWithLoader sets the loader the watcher reloads with.
func ConfigWithLoader(l *ConfigLoader) ConfigWatcherOption {
	return infraconfig.WithLoader(l)
}

// ConfigWithOnError sets the callback receiving reload failures.
func ConfigWithOnError(fn func(error)) ConfigWatcherOption {
	return infraconfig.WithOnError(fn)
}

// DefaultEngineConfig returns a minimal default configuration.
func DefaultEngineConfig() *EngineConfig {
	return infraconfig.DefaultConfig()
}

// GenerateConfigSchema generates a JSON Schema for the EngineConfig.
func GenerateConfigSchema() *JSONSchema {
	return infraconfig.GenerateSchema()
}

// ConfigSchemaJSON returns the configuration JSON Schema as a JSON string.
func ConfigSchemaJSON() (string, error) {
	return infraconfig.SchemaJSON()
}

// ExpandEnv expands environment variables in a string.
// Supported patterns: ${VAR}, ${VAR:-default}, ${VAR:?error}
func ExpandEnv(input string) string {
	return infraconfig.ExpandEnv(input)
}

// ExpandEnvStrict expands environment variables and returns an error for
// missing vars.
func ExpandEnvStrict(input string) (string, error) {
	return infraconfig.ExpandEnvStrict(input)
}

// NewFromConfig builds an Engine from a configuration: domain actions,
// goals, and initial state; planning and execution settings; and storage
// backends. Later options override the configuration. The engine owns the
// backends the configuration built; Close releases them.
func NewFromConfig(ctx context.Context, config *EngineConfig, opts ...Option) (*Engine, error) {
	result, err := infraconfig.NewBuilder(config).Build(ctx)
	if err != nil {
		return nil, err
	}

	heuristic, err := resolveHeuristic(result.Heuristic)
	if err != nil {
		_ = result.Close()
		return nil, err
	}

	engineOpts := []Option{
		WithActions(result.Actions...),
		WithGoals(result.Goals...),
		WithInitialState(result.InitialState),
		WithHeuristic(heuristic),
		WithAgentID(config.Name),
		WithBudgets(result.Budgets),
		WithMaxIterations(result.MaxIterations),
		WithMaxReplans(result.MaxReplans),
		WithStepTimeout(result.StepTimeout),
	}
	if result.Archive != nil {
		engineOpts = append(engineOpts, WithPlanArchive(result.Archive))
	}
	if result.Cache != nil {
		engineOpts = append(engineOpts, WithPlanCache(result.Cache), WithPlanCacheTTL(result.CacheTTL))
	}
	if result.Events != nil {
		engineOpts = append(engineOpts, WithEventStore(result.Events))
	}
	engineOpts = append(engineOpts, opts...)

	engine, err := New(engineOpts...)
	if err != nil {
		_ = result.Close()
		return nil, err
	}
	engine.closers = append(engine.closers, result.Close)
	return engine, nil
}

// NewFromConfigFile loads a configuration file and builds an Engine from
// it. See NewFromConfig.
func NewFromConfigFile(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	config, err := NewConfigLoader().LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(ctx, config, opts...)
}

// resolveHeuristic maps a configured heuristic name to its function.
func resolveHeuristic(name string) (Heuristic, error) {
	switch name {
	case "", "unsatisfied":
		return application.HeuristicUnsatisfied, nil
	case "zero":
		return application.HeuristicZero, nil
	default:
		return nil, fmt.Errorf("%w: unknown heuristic %q", ErrBuildFailed, name)
	}
}
