// Package ensemble runs many independent forests and aggregates their cluster
// statistics.
package ensemble

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/forest-sim/sim"
	"github.com/inference-sim/forest-sim/sim/clusters"
)

// MemberResult is the outcome of one forest in the ensemble.
type MemberResult struct {
	ID        int          `yaml:"id"`
	Snapshots int          `yaml:"snapshots"`
	Metrics   *sim.Metrics `yaml:"metrics"`

	stats [][]clusters.SizeStat
}

// Result is the aggregated outcome of an ensemble run.
type Result struct {
	Config    Config                   `yaml:"config"`
	Snapshots int                      `yaml:"snapshots"`
	Sizes     []clusters.AggregateStat `yaml:"sizes"`
	Members   []MemberResult           `yaml:"members"`
}

// Run advances cfg.NumForests all-Empty forests for cfg.Forest.Steps steps each and
// analyzes every snapshot whose 0-based step index is a multiple of cfg.RecordSteps.
//
// Each forest draws from its own stream (SubsystemEnsembleMember) so results depend
// only on the seed, not on Concurrency or scheduling. The first failing forest
// cancels the rest and its error is returned.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	concurrency := cfg.Concurrency
	if concurrency == 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	// PartitionedRNG is not thread-safe: derive every member stream here.
	prng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Forest.Seed))
	streams := make([]*rand.Rand, cfg.NumForests)
	for i := range streams {
		streams[i] = prng.ForSubsystem(sim.SubsystemEnsembleMember(i))
	}

	logrus.Infof("Starting ensemble: forests=%d size=%d p=%v f=%v steps=%d record_steps=%d concurrency=%d",
		cfg.NumForests, cfg.Forest.Size, cfg.Forest.P, cfg.Forest.F, cfg.Forest.Steps, cfg.RecordSteps, concurrency)

	members := make([]MemberResult, cfg.NumForests)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range members {
		g.Go(func() error {
			m, err := runMember(gctx, cfg, i, streams[i])
			if err != nil {
				return fmt.Errorf("forest %d: %w", i, err)
			}
			members[i] = m
			logrus.Infof("forest %d done: fire_size=%d snapshots=%d", i, m.Metrics.FireSize, m.Snapshots)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Fold in forest order so float sums are reproducible.
	acc := clusters.NewAccumulator()
	for _, m := range members {
		for _, s := range m.stats {
			acc.Add(s)
		}
	}
	return &Result{
		Config:    cfg,
		Snapshots: acc.Snapshots(),
		Sizes:     acc.Results(),
		Members:   members,
	}, nil
}

func runMember(ctx context.Context, cfg Config, id int, rng sim.RandomSource) (MemberResult, error) {
	grid, err := sim.NewGrid(cfg.Forest.Size)
	if err != nil {
		return MemberResult{}, err
	}
	f, err := sim.NewForest(grid, cfg.Forest.Params(), rng)
	if err != nil {
		return MemberResult{}, err
	}
	f.Stepper = sim.Stepper{Workers: cfg.Forest.Workers}

	var stats [][]clusters.SizeStat
	err = f.Run(ctx, cfg.Forest.Steps, func(step int, g *sim.Grid) error {
		if step%cfg.RecordSteps == 0 {
			stats = append(stats, clusters.Analyze(g))
		}
		return nil
	})
	if err != nil {
		return MemberResult{}, err
	}
	return MemberResult{ID: id, Snapshots: len(stats), Metrics: f.Metrics, stats: stats}, nil
}

// WriteYAML writes the result as a YAML document.
func (r *Result) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding ensemble result: %w", err)
	}
	return enc.Close()
}
