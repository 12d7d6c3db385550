package config

import (
	"encoding/json"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDurationJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Duration
		want string
	}{
		{"seconds", Duration(30 * time.Second), `"30s"`},
		{"minutes", Duration(5 * time.Minute), `"5m0s"`},
		{"zero", Duration(0), `"0s"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}

			var back Duration
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if back != tt.in {
				t.Errorf("round trip = %v, want %v", back, tt.in)
			}
		})
	}
}

func TestDurationJSONNull(t *testing.T) {
	t.Parallel()

	var d Duration
	if err := json.Unmarshal([]byte("null"), &d); err != nil {
		t.Fatalf("Unmarshal(null) error = %v", err)
	}
	if d != 0 {
		t.Errorf("d = %v, want 0", d)
	}
}

func TestDurationYAML(t *testing.T) {
	t.Parallel()

	in := struct {
		TTL Duration `yaml:"ttl"`
	}{TTL: Duration(90 * time.Second)}

	data, err := yaml.Marshal(in)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	var out struct {
		TTL Duration `yaml:"ttl"`
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if out.TTL != in.TTL {
		t.Errorf("TTL = %v, want %v", out.TTL, in.TTL)
	}
}

func TestEngineConfigYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	src := `
name: combat-agent
version: "1"
planner:
  max_iterations: 2000
  heuristic: unsatisfied
storage:
  archive:
    backend: sqlite
    path: plans.db
  cache:
    backend: memory
    ttl: 1m
domain:
  initial_state:
    has_weapon: false
    enemy_visible: true
  actions:
    - id: pickup_weapon
      cost: 1
      effects:
        has_weapon: true
  goals:
    - id: kill_enemy
      priority: 0.9
      conditions:
        enemy_dead: true
`

	var cfg EngineConfig
	if err := yaml.Unmarshal([]byte(src), &cfg); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}

	if cfg.Name != "combat-agent" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Planner.MaxIterations != 2000 {
		t.Errorf("MaxIterations = %d, want 2000", cfg.Planner.MaxIterations)
	}
	if cfg.Storage.Cache.TTL.Duration() != time.Minute {
		t.Errorf("Cache TTL = %v, want 1m", cfg.Storage.Cache.TTL.Duration())
	}
	if len(cfg.Domain.Actions) != 1 || cfg.Domain.Actions[0].ID != "pickup_weapon" {
		t.Errorf("Actions = %+v", cfg.Domain.Actions)
	}
	if len(cfg.Domain.Goals) != 1 || cfg.Domain.Goals[0].Priority != 0.9 {
		t.Errorf("Goals = %+v", cfg.Domain.Goals)
	}
	if v, ok := cfg.Domain.InitialState["enemy_visible"]; !ok || v != true {
		t.Errorf("InitialState enemy_visible = %v", v)
	}
}
