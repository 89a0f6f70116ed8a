package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/forest-sim/sim/ensemble"
)

// loadConfigFile decodes a YAML config onto cfg. Unknown keys are errors so
// typos never silently fall back to defaults. An empty file leaves cfg untouched.
func loadConfigFile(path string, cfg *ensemble.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

// parseEnv applies FOREST_* environment variables onto cfg.
// Unset variables leave fields unchanged.
func parseEnv(cfg *ensemble.Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// resolveConfig layers, in increasing precedence: base, --config file,
// environment, explicitly set flags. The result is validated.
func resolveConfig(c *cobra.Command, base ensemble.Config) (ensemble.Config, error) {
	cfg := base
	if configPath != "" {
		if err := loadConfigFile(configPath, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := parseEnv(&cfg); err != nil {
		return cfg, err
	}

	flags := c.Flags()
	if flags.Changed("size") {
		cfg.Forest.Size = size
	}
	if flags.Changed("p") {
		cfg.Forest.P = growthP
	}
	if flags.Changed("f") {
		cfg.Forest.F = ignitionF
	}
	if flags.Changed("steps") {
		cfg.Forest.Steps = numSteps
	}
	if flags.Changed("seed") {
		cfg.Forest.Seed = seed
	}
	if flags.Changed("workers") {
		cfg.Forest.Workers = workers
	}
	if flags.Changed("num-forests") {
		cfg.NumForests = numForests
	}
	if flags.Changed("record-steps") {
		cfg.RecordSteps = recordSteps
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = concurrency
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
