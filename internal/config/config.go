// Package config loads engine settings from YAML with environment overrides.
// Resolution order: defaults, then file values, then PROMPTFORGE_* variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"promptforge/internal/perf"
)

// Config holds every tunable the CLI exposes to the engine.
type Config struct {
	MaxCandidates         int    `yaml:"max_candidates"`
	DiversityEnabled      bool   `yaml:"diversity_enabled"`
	FaithfulnessThreshold int    `yaml:"faithfulness_threshold"`
	WarningThresholdMs    int    `yaml:"warning_threshold_ms"`
	MaxDurationMs         int    `yaml:"max_duration_ms"`
	TemplatePack          string `yaml:"template_pack"`
	AuditDB               string `yaml:"audit_db"`
	DebugMode             bool   `yaml:"debug_mode"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxCandidates:         3,
		DiversityEnabled:      true,
		FaithfulnessThreshold: 70,
		WarningThresholdMs:    80,
		MaxDurationMs:         100,
		AuditDB:               ".promptforge/audit.db",
	}
}

// Load reads the config file at path and applies environment overrides. A
// missing file is not an error; defaults plus environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// keep defaults
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.MaxCandidates < 1 {
		cfg.MaxCandidates = 1
	}
	if cfg.MaxCandidates > 3 {
		cfg.MaxCandidates = 3
	}
	return cfg, nil
}

// Budget converts the millisecond settings into a perf budget.
func (c Config) Budget() perf.Budget {
	return perf.Budget{
		Warning: time.Duration(c.WarningThresholdMs) * time.Millisecond,
		Max:     time.Duration(c.MaxDurationMs) * time.Millisecond,
	}
}

func applyEnv(cfg *Config) {
	envInt("PROMPTFORGE_MAX_CANDIDATES", &cfg.MaxCandidates)
	envBool("PROMPTFORGE_DIVERSITY", &cfg.DiversityEnabled)
	envInt("PROMPTFORGE_FAITHFULNESS_THRESHOLD", &cfg.FaithfulnessThreshold)
	envInt("PROMPTFORGE_WARNING_MS", &cfg.WarningThresholdMs)
	envInt("PROMPTFORGE_MAX_MS", &cfg.MaxDurationMs)
	envString("PROMPTFORGE_TEMPLATE_PACK", &cfg.TemplatePack)
	envString("PROMPTFORGE_AUDIT_DB", &cfg.AuditDB)
	envBool("PROMPTFORGE_DEBUG", &cfg.DebugMode)
}

func envInt(key string, dst *int) {
	if raw, ok := os.LookupEnv(key); ok {
		if v, err := strconv.Atoi(raw); err == nil {
			*dst = v
		}
	}
}

func envBool(key string, dst *bool) {
	if raw, ok := os.LookupEnv(key); ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			*dst = v
		}
	}
}

func envString(key string, dst *string) {
	if raw, ok := os.LookupEnv(key); ok && raw != "" {
		*dst = raw
	}
}
