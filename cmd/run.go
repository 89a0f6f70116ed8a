package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/forest-sim/sim"
	"github.com/inference-sim/forest-sim/sim/ensemble"
	"github.com/inference-sim/forest-sim/sim/trace"
)

var traceLevel string // Step trace verbosity

// runCmd advances a single forest using parameters from config, env and flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single forest for a fixed number of steps",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		base := ensemble.DefaultConfig()
		base.Forest = sim.DefaultForestConfig()
		cfg, err := resolveConfig(cmd, base)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting forest: size=%d p=%v f=%v (p/f=%.0f) steps=%d seed=%d",
			cfg.Forest.Size, cfg.Forest.P, cfg.Forest.F, cfg.Forest.Params().Ratio(), cfg.Forest.Steps, cfg.Forest.Seed)

		startTime := time.Now()
		forest, err := sim.NewForestFromConfig(cfg.Forest, trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		if err != nil {
			logrus.Fatalf("Failed to build forest: %v", err)
		}
		if err := forest.Run(context.Background(), cfg.Forest.Steps, nil); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		forest.Metrics.Print(os.Stdout)
		if forest.Trace != nil {
			printTraceSummary(os.Stdout, trace.Summarize(forest.Trace))
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Traced Steps          : %d\n", s.TotalSteps)
	fmt.Fprintf(w, "Steps With Fire       : %d\n", s.StepsWithFire)
	fmt.Fprintf(w, "Mean Fire Size        : %.2f\n", s.MeanFireSize)
	if s.MaxFireStep >= 0 {
		fmt.Fprintf(w, "Max Fire Size         : %d (step %d)\n", s.MaxFireSize, s.MaxFireStep)
	}
	fmt.Fprintf(w, "Mean Tree Density     : %.4f\n", s.MeanTreeDensity)
}

func init() {
	addForestFlags(runCmd, 200)
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, steps)")

	rootCmd.AddCommand(runCmd)
}
