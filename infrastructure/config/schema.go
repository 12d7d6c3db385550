package config

import (
	"encoding/json"
)

// JSONSchema represents a JSON Schema document.
type JSONSchema struct {
	Schema               string                 `json:"$schema,omitempty"`
	ID                   string                 `json:"$id,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 string                 `json:"type,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	AdditionalProperties *JSONSchema            `json:"additionalProperties,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Default              any                    `json:"default,omitempty"`
	Minimum              *float64               `json:"minimum,omitempty"`
	Maximum              *float64               `json:"maximum,omitempty"`
	MinLength            *int                   `json:"minLength,omitempty"`
	MaxLength            *int                   `json:"maxLength,omitempty"`
	Pattern              string                 `json:"pattern,omitempty"`
	Format               string                 `json:"format,omitempty"`
	Ref                  string                 `json:"$ref,omitempty"`
	Definitions          map[string]*JSONSchema `json:"$defs,omitempty"`
	OneOf                []*JSONSchema          `json:"oneOf,omitempty"`
	AnyOf                []*JSONSchema          `json:"anyOf,omitempty"`
	AllOf                []*JSONSchema          `json:"allOf,omitempty"`
}

// GenerateSchema generates a JSON Schema for the EngineConfig.
func GenerateSchema() *JSONSchema {
	return &JSONSchema{
		Schema:      "https://json-schema.org/draft/2020-12/schema",
		ID:          "https://github.com/ruvnet/arcadia-goap/engine-config.schema.json",
		Title:       "Engine Configuration",
		Description: "Configuration schema for the arcadia-goap planning engine",
		Type:        "object",
		Required:    []string{"name", "version"},
		Properties: map[string]*JSONSchema{
			"name": {
				Type:        "string",
				Description: "A human-readable name for this configuration",
			},
			"version": {
				Type:        "string",
				Description: "The configuration schema version",
				Default:     "1.0",
			},
			"description": {
				Type:        "string",
				Description: "Describes the agent's purpose",
			},
			"planner":  generatePlannerSchema(),
			"executor": generateExecutorSchema(),
			"logging":  generateLoggingSchema(),
			"storage":  generateStorageSchema(),
			"policy":   generatePolicySchema(),
			"domain":   generateDomainSchema(),
		},
	}
}

func generatePlannerSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Search behavior settings",
		Properties: map[string]*JSONSchema{
			"max_iterations": {
				Type:        "integer",
				Description: "Maximum node expansions per search (0 = engine default)",
				Minimum:     floatPtr(0),
			},
			"heuristic": {
				Type:        "string",
				Description: "Search heuristic",
				Enum:        []string{"unsatisfied", "zero"},
				Default:     "unsatisfied",
			},
		},
	}
}

func generateExecutorSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Plan execution settings",
		Properties: map[string]*JSONSchema{
			"max_replans": {
				Type:        "integer",
				Description: "Maximum replanning rounds per run (0 = engine default)",
				Minimum:     floatPtr(0),
			},
			"step_timeout": {
				Type:        "string",
				Description: "Timeout for one action handler invocation (e.g. 30s)",
				Format:      "duration",
			},
		},
	}
}

func generateLoggingSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Logging settings",
		Properties: map[string]*JSONSchema{
			"level": {
				Type:        "string",
				Description: "Minimum log level",
				Enum:        []string{"debug", "info", "warn", "error", "off"},
				Default:     "info",
			},
			"format": {
				Type:        "string",
				Description: "Log output format",
				Enum:        []string{"json", "console"},
				Default:     "json",
			},
		},
	}
}

func generateStorageSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Persistence settings",
		Properties: map[string]*JSONSchema{
			"archive": {
				Type:        "object",
				Description: "Plan archive backend",
				Properties: map[string]*JSONSchema{
					"backend": {
						Type:        "string",
						Description: "Archive store",
						Enum:        []string{"none", "memory", "sqlite", "postgres"},
						Default:     "none",
					},
					"path": {
						Type:        "string",
						Description: "Database file path (sqlite backend)",
					},
					"dsn": {
						Type:        "string",
						Description: "Connection string (postgres backend)",
					},
				},
			},
			"cache": {
				Type:        "object",
				Description: "Plan cache backend",
				Properties: map[string]*JSONSchema{
					"backend": {
						Type:        "string",
						Description: "Plan cache",
						Enum:        []string{"none", "memory", "redis", "badger"},
						Default:     "none",
					},
					"ttl": {
						Type:        "string",
						Description: "How long cached plans stay valid (e.g. 5m)",
						Format:      "duration",
					},
					"max_entries": {
						Type:        "integer",
						Description: "Maximum entries in the memory cache",
						Minimum:     floatPtr(0),
					},
					"addr": {
						Type:        "string",
						Description: "Server address (redis backend)",
					},
					"password": {
						Type:        "string",
						Description: "Server password (redis backend)",
					},
					"db": {
						Type:        "integer",
						Description: "Database number (redis backend)",
						Minimum:     floatPtr(0),
					},
					"path": {
						Type:        "string",
						Description: "Database directory (badger backend)",
					},
				},
			},
			"events": {
				Type:        "object",
				Description: "Event journal backend",
				Properties: map[string]*JSONSchema{
					"backend": {
						Type:        "string",
						Description: "Event store",
						Enum:        []string{"none", "memory", "badger"},
						Default:     "none",
					},
					"path": {
						Type:        "string",
						Description: "Journal directory (badger backend)",
					},
				},
			},
		},
	}
}

func generatePolicySchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Budget settings",
		Properties: map[string]*JSONSchema{
			"budgets": {
				Type:        "object",
				Description: "Maps resource names to limits",
				Properties: map[string]*JSONSchema{
					"plans": {
						Type:        "integer",
						Description: "Maximum planner invocations",
						Minimum:     floatPtr(0),
					},
					"replans": {
						Type:        "integer",
						Description: "Maximum replanning rounds",
						Minimum:     floatPtr(0),
					},
					"steps": {
						Type:        "integer",
						Description: "Maximum executed action steps",
						Minimum:     floatPtr(0),
					},
				},
			},
		},
	}
}

func generateDomainSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "The planning domain: actions, goals, initial state",
		Properties: map[string]*JSONSchema{
			"initial_state": {
				Type:        "object",
				Description: "Starting world state facts",
				AdditionalProperties: &JSONSchema{
					Description: "Fact value (bool, integer, number, or string)",
				},
			},
			"actions": {
				Type:        "array",
				Description: "Available actions",
				Items:       generateActionSchema(),
			},
			"goals": {
				Type:        "array",
				Description: "Goals the agent may pursue",
				Items:       generateGoalSchema(),
			},
		},
	}
}

func generateActionSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Action definition",
		Required:    []string{"id", "cost"},
		Properties: map[string]*JSONSchema{
			"id": {
				Type:        "string",
				Description: "Unique action identifier",
			},
			"cost": {
				Type:        "number",
				Description: "Non-negative planning cost",
				Minimum:     floatPtr(0),
			},
			"preconditions": {
				Type:        "object",
				Description: "Facts that must hold before the action applies",
				AdditionalProperties: &JSONSchema{
					Description: "Fact value (bool, integer, number, or string)",
				},
			},
			"effects": {
				Type:        "object",
				Description: "Facts the action establishes",
				AdditionalProperties: &JSONSchema{
					Description: "Fact value (bool, integer, number, or string)",
				},
			},
		},
	}
}

func generateGoalSchema() *JSONSchema {
	return &JSONSchema{
		Type:        "object",
		Description: "Goal definition",
		Required:    []string{"id", "conditions"},
		Properties: map[string]*JSONSchema{
			"id": {
				Type:        "string",
				Description: "Unique goal identifier",
			},
			"priority": {
				Type:        "number",
				Description: "Selection priority, 0 to 1",
				Minimum:     floatPtr(0),
				Maximum:     floatPtr(1),
			},
			"conditions": {
				Type:        "object",
				Description: "Facts a satisfying state must hold",
				AdditionalProperties: &JSONSchema{
					Description: "Fact value (bool, integer, number, or string)",
				},
			},
		},
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

// SchemaJSON returns the schema as indented JSON.
func SchemaJSON() (string, error) {
	schema := GenerateSchema()
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
