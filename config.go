package tricolor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds the collector's ambient tunables. The core state machine
// itself is configuration-free beyond a trace toggle. Config exists for
// the tooling built around the core, so that toggle and a couple of
// demonstration-only knobs can be set without a rebuild.
type Config struct {
	// Trace enables step-by-step diagnostic output.
	Trace bool `yaml:"trace"`

	// Color enables ANSI coloring of traced/rendered output. Ignored when
	// the output stream is not a terminal (see trace.go).
	Color bool `yaml:"color"`

	// ArenaBytes sizes the reference ArenaAllocator the inspector CLI
	// constructs by default. Library callers supplying their own
	// PageAllocator can ignore this field.
	ArenaBytes uintptr `yaml:"arena_bytes"`

	// StepBudget is loaded and defaulted like the other fields, but no
	// inspector command consults it, and neither does Collect, which
	// always runs to completion.
	StepBudget int `yaml:"step_budget"`
}

// DefaultConfig returns the tunables the inspector CLI starts with absent a
// config file.
func DefaultConfig() Config {
	return Config{
		Trace:      false,
		Color:      true,
		ArenaBytes: 1 << 20,
		StepBudget: 10000,
	}
}

// LoadConfig reads a YAML config file, applying its fields on top of
// DefaultConfig. A missing file is not an error: the defaults stand.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("tricolor: reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("tricolor: parsing config %s: %w", path, err)
	}
	return cfg, nil
}
