package config

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the JSON path to the invalid field.
	Path string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates engine configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the configuration and returns any errors.
func (v *Validator) Validate(config *EngineConfig) ValidationErrors {
	v.errors = nil

	v.validateRequired(config)
	v.validatePlanner(config)
	v.validateExecutor(config)
	v.validateLogging(config)
	v.validateStorage(config)
	v.validatePolicy(config)
	v.validateDomain(config)

	return v.errors
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func (v *Validator) validateRequired(config *EngineConfig) {
	if config.Name == "" {
		v.addError("name", "name is required")
	}
	if config.Version == "" {
		v.addError("version", "version is required")
	}
}

func (v *Validator) validatePlanner(config *EngineConfig) {
	if config.Planner.MaxIterations < 0 {
		v.addError("planner.max_iterations", "max_iterations must be non-negative")
	}

	if config.Planner.Heuristic != "" {
		validHeuristics := map[string]bool{
			"unsatisfied": true, "zero": true,
		}
		if !validHeuristics[config.Planner.Heuristic] {
			v.addError("planner.heuristic", fmt.Sprintf("unknown heuristic: %s", config.Planner.Heuristic))
		}
	}
}

func (v *Validator) validateExecutor(config *EngineConfig) {
	if config.Executor.MaxReplans < 0 {
		v.addError("executor.max_replans", "max_replans must be non-negative")
	}
	if config.Executor.StepTimeout < 0 {
		v.addError("executor.step_timeout", "step_timeout must be non-negative")
	}
}

func (v *Validator) validateLogging(config *EngineConfig) {
	if config.Logging.Level != "" {
		validLevels := map[string]bool{
			"debug": true, "info": true, "warn": true, "error": true, "off": true,
		}
		if !validLevels[config.Logging.Level] {
			v.addError("logging.level", fmt.Sprintf("invalid level: %s", config.Logging.Level))
		}
	}

	if config.Logging.Format != "" {
		validFormats := map[string]bool{
			"json": true, "console": true,
		}
		if !validFormats[config.Logging.Format] {
			v.addError("logging.format", fmt.Sprintf("invalid format: %s", config.Logging.Format))
		}
	}
}

func (v *Validator) validateStorage(config *EngineConfig) {
	switch config.Storage.Archive.Backend {
	case "", "none", "memory":
	case "sqlite":
		if config.Storage.Archive.Path == "" {
			v.addError("storage.archive.path", "path is required for sqlite backend")
		}
	case "postgres":
		if config.Storage.Archive.DSN == "" {
			v.addError("storage.archive.dsn", "dsn is required for postgres backend")
		}
	default:
		v.addError("storage.archive.backend", fmt.Sprintf("unknown backend: %s", config.Storage.Archive.Backend))
	}

	switch config.Storage.Cache.Backend {
	case "", "none", "memory":
	case "redis":
		if config.Storage.Cache.Addr == "" {
			v.addError("storage.cache.addr", "addr is required for redis backend")
		}
	case "badger":
		if config.Storage.Cache.Path == "" {
			v.addError("storage.cache.path", "path is required for badger backend")
		}
	default:
		v.addError("storage.cache.backend", fmt.Sprintf("unknown backend: %s", config.Storage.Cache.Backend))
	}

	if config.Storage.Cache.MaxEntries < 0 {
		v.addError("storage.cache.max_entries", "max_entries must be non-negative")
	}

	switch config.Storage.Events.Backend {
	case "", "none", "memory":
	case "badger":
		if config.Storage.Events.Path == "" {
			v.addError("storage.events.path", "path is required for badger backend")
		}
	default:
		v.addError("storage.events.backend", fmt.Sprintf("unknown backend: %s", config.Storage.Events.Backend))
	}
}

func (v *Validator) validatePolicy(config *EngineConfig) {
	validResources := map[string]bool{
		"plans": true, "replans": true, "steps": true,
	}
	for name, limit := range config.Policy.Budgets {
		path := fmt.Sprintf("policy.budgets.%s", name)
		if !validResources[name] {
			v.addError(path, fmt.Sprintf("unknown budget resource: %s", name))
		}
		if limit < 0 {
			v.addError(path, "budget limit must be non-negative")
		}
	}
}

func (v *Validator) validateDomain(config *EngineConfig) {
	for key, value := range config.Domain.InitialState {
		if !validFactValue(value) {
			v.addError(fmt.Sprintf("domain.initial_state.%s", key),
				fmt.Sprintf("unsupported value type %T", value))
		}
	}

	seenActions := make(map[string]bool)
	for i, def := range config.Domain.Actions {
		path := fmt.Sprintf("domain.actions[%d]", i)
		if def.ID == "" {
			v.addError(path+".id", "action id is required")
		} else if seenActions[def.ID] {
			v.addError(path+".id", fmt.Sprintf("duplicate action id: %s", def.ID))
		}
		seenActions[def.ID] = true

		if math.IsNaN(def.Cost) || def.Cost < 0 {
			v.addError(path+".cost", "cost must be non-negative")
		}

		v.validateFacts(path+".preconditions", def.Preconditions)
		v.validateFacts(path+".effects", def.Effects)
	}

	seenGoals := make(map[string]bool)
	for i, def := range config.Domain.Goals {
		path := fmt.Sprintf("domain.goals[%d]", i)
		if def.ID == "" {
			v.addError(path+".id", "goal id is required")
		} else if seenGoals[def.ID] {
			v.addError(path+".id", fmt.Sprintf("duplicate goal id: %s", def.ID))
		}
		seenGoals[def.ID] = true

		if math.IsNaN(def.Priority) || def.Priority < 0 || def.Priority > 1 {
			v.addError(path+".priority", "priority must be between 0 and 1")
		}

		if len(def.Conditions) == 0 {
			v.addError(path+".conditions", "at least one condition is required")
		}
		v.validateFacts(path+".conditions", def.Conditions)
	}
}

func (v *Validator) validateFacts(path string, facts map[string]any) {
	for key, value := range facts {
		if key == "" {
			v.addError(path, "fact key must not be empty")
			continue
		}
		if !validFactValue(value) {
			v.addError(fmt.Sprintf("%s.%s", path, key),
				fmt.Sprintf("unsupported value type %T", value))
		}
	}
}

// validFactValue reports whether a configured value maps onto one of the
// four world state value kinds. YAML and JSON decoders produce bool, int,
// int64, uint64, float64, and string for scalars.
func validFactValue(value any) bool {
	switch value.(type) {
	case bool, int, int32, int64, uint, uint32, uint64, float32, float64, string:
		return true
	default:
		return false
	}
}
