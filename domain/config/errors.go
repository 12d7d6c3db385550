package config

import "errors"

var (
	// ErrConfigNotFound is returned when the named configuration file
	// does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrUnsupportedFormat is returned for file extensions other than
	// YAML or JSON.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")

	// ErrInvalidFormat is returned when a file parses but does not
	// describe a valid engine configuration.
	ErrInvalidFormat = errors.New("invalid configuration format")

	// ErrValidationFailed is returned when a parsed configuration
	// violates a semantic rule, such as an action with negative cost.
	ErrValidationFailed = errors.New("configuration validation failed")

	// ErrMissingEnvVar is returned in strict mode when a ${VAR}
	// reference has no value in the environment.
	ErrMissingEnvVar = errors.New("required environment variable not set")

	// ErrBuildFailed wraps errors turning a validated configuration into
	// live registries, state, and storage backends.
	ErrBuildFailed = errors.New("failed to build engine from configuration")
)
