// Package config loads tenantscore settings from YAML with TENANTSCORE_*
// environment-variable overrides.
package config

import (
	"os"
	"strconv"

	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/tenantscore/metrics"
	"github.com/YuminosukeSato/tenantscore/pkg/errors"
	"github.com/YuminosukeSato/tenantscore/scoring"
	"github.com/YuminosukeSato/tenantscore/sensitivity"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TENANTSCORE_"

// Config is the top-level configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Scoring ScoringConfig `yaml:"scoring"`
	Verify  VerifyConfig  `yaml:"verify"`
	Sweep   SweepConfig   `yaml:"sweep"`
}

// LoggingConfig controls log level and output format (json or console).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ScoringConfig holds the credit scale and batch scoring settings.
type ScoringConfig struct {
	ClampMin          float64 `yaml:"clampMin"`
	ClampMax          float64 `yaml:"clampMax"`
	LowRiskFrom       float64 `yaml:"lowRiskFrom"`
	HighRiskBelow     float64 `yaml:"highRiskBelow"`
	ParallelThreshold int     `yaml:"parallelThreshold"`
}

// Scale returns the credit scale described by the scoring section.
func (s ScoringConfig) Scale() scoring.ScaleConfig {
	return scoring.ScaleConfig{
		Min:           s.ClampMin,
		Max:           s.ClampMax,
		LowRiskFrom:   s.LowRiskFrom,
		HighRiskBelow: s.HighRiskBelow,
	}
}

// VerifyConfig sets the parity tolerance between document and trainer.
type VerifyConfig struct {
	Tolerance float64 `yaml:"tolerance"`
}

// SweepConfig sets sensitivity sweep resolution and chart size in inches.
type SweepConfig struct {
	Steps  int     `yaml:"steps"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Scoring: ScoringConfig{
			ClampMin:          scoring.DefaultScale.Min,
			ClampMax:          scoring.DefaultScale.Max,
			LowRiskFrom:       scoring.DefaultScale.LowRiskFrom,
			HighRiskBelow:     scoring.DefaultScale.HighRiskBelow,
			ParallelThreshold: scoring.DefaultParallelThreshold,
		},
		Verify: VerifyConfig{
			Tolerance: metrics.DefaultTolerance,
		},
		Sweep: SweepConfig{
			Steps:  sensitivity.DefaultSteps,
			Width:  float64(sensitivity.DefaultWidth / vg.Inch),
			Height: float64(sensitivity.DefaultHeight / vg.Inch),
		},
	}
}

// Load reads a YAML file (if path is non-empty) over the defaults, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config file %s", path)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"CLAMP_MIN", &cfg.Scoring.ClampMin},
		{"CLAMP_MAX", &cfg.Scoring.ClampMax},
		{"LOW_RISK_FROM", &cfg.Scoring.LowRiskFrom},
		{"HIGH_RISK_BELOW", &cfg.Scoring.HighRiskBelow},
		{"VERIFY_TOLERANCE", &cfg.Verify.Tolerance},
	}
	for _, f := range floats {
		if v := os.Getenv(EnvPrefix + f.name); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return errors.Wrapf(err, "%s%s", EnvPrefix, f.name)
			}
			*f.dst = parsed
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"PARALLEL_THRESHOLD", &cfg.Scoring.ParallelThreshold},
		{"SWEEP_STEPS", &cfg.Sweep.Steps},
	}
	for _, f := range ints {
		if v := os.Getenv(EnvPrefix + f.name); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return errors.Wrapf(err, "%s%s", EnvPrefix, f.name)
			}
			*f.dst = parsed
		}
	}
	return nil
}

// Validate checks the configuration for values the commands cannot use.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "json", "console":
	default:
		return errors.NewValidationError("logging.format", "must be json or console", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.NewValidationError("logging.level", "must be debug, info, warn or error", c.Logging.Level)
	}

	if err := c.Scoring.Scale().Validate(); err != nil {
		return errors.Wrap(err, "scoring")
	}
	if c.Scoring.ParallelThreshold < 0 {
		return errors.NewValidationError("scoring.parallelThreshold", "must be non-negative", c.Scoring.ParallelThreshold)
	}

	if !errors.IsFinite(c.Verify.Tolerance) || c.Verify.Tolerance < 0 {
		return errors.NewValidationError("verify.tolerance", "must be finite and non-negative", c.Verify.Tolerance)
	}

	if c.Sweep.Steps < 2 {
		return errors.NewValidationError("sweep.steps", "must be at least 2", c.Sweep.Steps)
	}
	if !errors.IsFinite(c.Sweep.Width) || !errors.IsFinite(c.Sweep.Height) || c.Sweep.Width <= 0 || c.Sweep.Height <= 0 {
		return errors.NewValidationError("sweep.size", "width and height must be positive", [2]float64{c.Sweep.Width, c.Sweep.Height})
	}
	return nil
}
