package sim

import (
	"fmt"
	"math"
)

// Params are the per-step model probabilities.
type Params struct {
	P float64 // growth probability per Empty cell per step, in [0,1]
	F float64 // spontaneous ignition probability per Tree cell per step, in [0,1]
}

// Validate checks that both probabilities lie in [0,1].
func (p Params) Validate() error {
	if !isProbability(p.P) {
		return fmt.Errorf("%w: growth probability p must be in [0,1], got %v", ErrInvalidParameter, p.P)
	}
	if !isProbability(p.F) {
		return fmt.Errorf("%w: ignition probability f must be in [0,1], got %v", ErrInvalidParameter, p.F)
	}
	return nil
}

// Ratio returns p/f, the quantity that sets the characteristic fire size.
// Returns +Inf when f is zero.
func (p Params) Ratio() float64 {
	if p.F == 0 {
		return math.Inf(1)
	}
	return p.P / p.F
}

func isProbability(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// ForestConfig groups the parameters of a single forest run.
// Loadable from YAML and overridable from the environment.
type ForestConfig struct {
	Size    int     `yaml:"size" env:"FOREST_SIZE"`       // grid side length (must be > 0)
	P       float64 `yaml:"p" env:"FOREST_P"`             // growth probability
	F       float64 `yaml:"f" env:"FOREST_F"`             // ignition probability, f << p near criticality
	Steps   int     `yaml:"steps" env:"FOREST_STEPS"`     // step budget (>= 0)
	Seed    int64   `yaml:"seed" env:"FOREST_SEED"`       // master seed for PartitionedRNG
	Workers int     `yaml:"workers" env:"FOREST_WORKERS"` // row bands for propagation; <= 1 is sequential
}

// DefaultForestConfig returns the standard configuration.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Size:    300,
		P:       0.01,
		F:       0.0001,
		Steps:   200,
		Seed:    42,
		Workers: 1,
	}
}

// Params extracts the model probabilities.
func (c ForestConfig) Params() Params {
	return Params{P: c.P, F: c.F}
}

// Validate checks sizes, budgets and probabilities.
func (c ForestConfig) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidParameter, c.Size)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", ErrInvalidParameter, c.Steps)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidParameter, c.Workers)
	}
	return c.Params().Validate()
}
