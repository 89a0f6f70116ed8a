package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/forest-sim/sim/ensemble"
)

var (
	numForests  int    // Ensemble size
	recordSteps int    // Analyze every N-th step
	concurrency int    // Forests simulated at once
	outputPath  string // YAML report destination
)

// ensembleCmd runs many independent forests and reports aggregated cluster statistics
var ensembleCmd = &cobra.Command{
	Use:   "ensemble",
	Short: "Run independent forests and aggregate cluster size statistics",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveConfig(cmd, ensemble.DefaultConfig())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		startTime := time.Now()
		result, err := ensemble.Run(ctx, cfg)
		if err != nil {
			logrus.Fatalf("Ensemble failed: %v", err)
		}

		var w io.Writer = os.Stdout
		if outputPath != "" && outputPath != "-" {
			file, err := os.Create(outputPath)
			if err != nil {
				logrus.Fatalf("Failed to create output file %s: %v", outputPath, err)
			}
			defer file.Close()
			w = file
		}
		if err := result.WriteYAML(w); err != nil {
			logrus.Fatalf("Failed to write report: %v", err)
		}
		logrus.Infof("Ensemble complete: %d snapshots, %d cluster sizes in %s.",
			result.Snapshots, len(result.Sizes), time.Since(startTime))
	},
}

func init() {
	addForestFlags(ensembleCmd, 400)
	ensembleCmd.Flags().IntVar(&numForests, "num-forests", 30, "Number of independent forests")
	ensembleCmd.Flags().IntVar(&recordSteps, "record-steps", 10, "Compute cluster statistics every N steps")
	ensembleCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Forests simulated concurrently (0 = GOMAXPROCS)")
	ensembleCmd.Flags().StringVarP(&outputPath, "output", "o", "-", "YAML report file (- for stdout)")

	rootCmd.AddCommand(ensembleCmd)
}
