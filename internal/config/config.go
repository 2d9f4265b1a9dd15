// Package config reads METALHEAD_* environment overrides.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
)

// Prefix is prepended to every variable name, e.g. METALHEAD_KERF_WIDTH.
const Prefix = "METALHEAD"

// Config holds environment overrides. Zero values mean unset.
type Config struct {
	ConfigPath  string  `envconfig:"CONFIG"`
	LogLevel    string  `envconfig:"LOG_LEVEL"`
	OutputDir   string  `envconfig:"OUTPUT_DIR"`
	Tolerance   float64 `envconfig:"TOLERANCE"`
	Precision   int     `envconfig:"PRECISION"`
	KerfWidth   float64 `envconfig:"KERF_WIDTH"`
	KerfMode    string  `envconfig:"KERF_MODE"`
	LeadType    string  `envconfig:"LEAD_TYPE"`
	LeadLength  float64 `envconfig:"LEAD_LENGTH"`
	Generations int     `envconfig:"GENERATIONS"`
	Seed        int64   `envconfig:"SEED"`
}

// Load reads the METALHEAD_* variables from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Apply overrides the persisted defaults in app with every set variable.
func (c *Config) Apply(app *model.AppConfig) error {
	if c.LogLevel != "" {
		app.LogLevel = c.LogLevel
	}
	if c.OutputDir != "" {
		app.OutputDir = c.OutputDir
	}
	if c.Tolerance != 0 {
		app.DefaultTolerance = c.Tolerance
	}
	if c.Precision != 0 {
		app.DefaultPrecision = c.Precision
	}
	if c.KerfWidth != 0 {
		app.DefaultKerfWidth = c.KerfWidth
	}
	if c.KerfMode != "" {
		m, err := model.ParseKerfMode(c.KerfMode)
		if err != nil {
			return fmt.Errorf("%s_KERF_MODE: %w", Prefix, err)
		}
		app.DefaultKerfMode = m
	}
	if c.LeadType != "" {
		t, err := model.ParseLeadType(c.LeadType)
		if err != nil {
			return fmt.Errorf("%s_LEAD_TYPE: %w", Prefix, err)
		}
		app.DefaultLeadType = t
	}
	if c.LeadLength != 0 {
		app.DefaultLeadLength = c.LeadLength
	}
	return nil
}

// ApplyTour overrides the tour solver settings that have no persisted default.
func (c *Config) ApplyTour(t *model.TourSettings) {
	if c.Generations != 0 {
		t.Generations = c.Generations
	}
	if c.Seed != 0 {
		t.Seed = c.Seed
	}
}
