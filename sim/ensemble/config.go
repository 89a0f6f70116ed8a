package ensemble

import (
	"fmt"

	"github.com/inference-sim/forest-sim/sim"
)

// Config groups the parameters of an ensemble statistics run.
// Forest.Steps is the per-forest step budget (num_steps).
type Config struct {
	Forest      sim.ForestConfig `yaml:",inline"`
	NumForests  int              `yaml:"num_forests" env:"FOREST_NUM_FORESTS"`   // independent forests (must be > 0)
	RecordSteps int              `yaml:"record_steps" env:"FOREST_RECORD_STEPS"` // analyze every N-th step (must be > 0)
	Concurrency int              `yaml:"concurrency" env:"FOREST_CONCURRENCY"`   // forests in flight; 0 = GOMAXPROCS
}

// DefaultConfig returns the standard ensemble configuration.
func DefaultConfig() Config {
	forest := sim.DefaultForestConfig()
	forest.Steps = 400
	return Config{
		Forest:      forest,
		NumForests:  30,
		RecordSteps: 10,
	}
}

// Validate checks the forest parameters and ensemble sizes.
func (c Config) Validate() error {
	if err := c.Forest.Validate(); err != nil {
		return err
	}
	if c.NumForests < 1 {
		return fmt.Errorf("%w: num_forests must be positive, got %d", sim.ErrInvalidParameter, c.NumForests)
	}
	if c.RecordSteps < 1 {
		return fmt.Errorf("%w: record_steps must be positive, got %d", sim.ErrInvalidParameter, c.RecordSteps)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must be non-negative, got %d", sim.ErrInvalidParameter, c.Concurrency)
	}
	return nil
}
