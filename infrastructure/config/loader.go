// Package config loads, validates, and builds engine configuration from
// YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ruvnet/arcadia-goap/domain/config"
)

// Format represents a configuration file format.
type Format string

const (
	// FormatYAML is the YAML configuration format.
	FormatYAML Format = "yaml"
	// FormatJSON is the JSON configuration format.
	FormatJSON Format = "json"
)

// Loader loads engine configuration from files or readers.
type Loader struct {
	// ExpandEnv enables environment variable expansion.
	ExpandEnv bool
	// StrictEnv causes an error when a referenced env var is not set.
	StrictEnv bool
	// Validate enables validation after loading.
	Validate bool
}

// NewLoader creates a loader with default settings.
func NewLoader() *Loader {
	return &Loader{
		ExpandEnv: true,
		StrictEnv: false,
		Validate:  true,
	}
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithEnvExpansion enables or disables environment variable expansion.
func WithEnvExpansion(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.ExpandEnv = enabled
	}
}

// WithStrictEnv enables strict environment variable checking.
func WithStrictEnv(strict bool) LoaderOption {
	return func(l *Loader) {
		l.StrictEnv = strict
	}
}

// WithValidation enables or disables validation.
func WithValidation(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.Validate = enabled
	}
}

// NewLoaderWithOptions creates a loader with the given options.
func NewLoaderWithOptions(opts ...LoaderOption) *Loader {
	loader := NewLoader()
	for _, opt := range opts {
		opt(loader)
	}
	return loader
}

// LoadFile loads configuration from a file path. The format is detected
// from the file extension.
func (l *Loader) LoadFile(path string) (*config.EngineConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", config.ErrInvalidFormat, path)
	}

	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedFormat, filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return l.Load(file, format)
}

// Load loads configuration from a reader in the given format.
func (l *Loader) Load(r io.Reader, format Format) (*config.EngineConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Expand environment variables
	if l.ExpandEnv {
		expanded, err := expandEnvVars(string(data), l.StrictEnv)
		if err != nil {
			return nil, err
		}
		data = []byte(expanded)
	}

	// Parse based on format
	cfg := &config.EngineConfig{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidFormat, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedFormat, format)
	}

	// Validate
	if l.Validate {
		validator := config.NewValidator()
		if errs := validator.Validate(cfg); errs.HasErrors() {
			return nil, fmt.Errorf("%w: %s", config.ErrValidationFailed, errs.Error())
		}
	}

	return cfg, nil
}

// LoadString loads configuration from a string in the given format.
func (l *Loader) LoadString(content string, format Format) (*config.EngineConfig, error) {
	return l.Load(strings.NewReader(content), format)
}

// LoadBytes loads configuration from bytes in the given format.
func (l *Loader) LoadBytes(data []byte, format Format) (*config.EngineConfig, error) {
	return l.Load(strings.NewReader(string(data)), format)
}
