package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags shared by run and ensemble
	size       int     // Grid side length
	growthP    float64 // Growth probability per empty cell per step
	ignitionF  float64 // Spontaneous ignition probability per tree per step
	numSteps   int     // Step budget per forest
	seed       int64   // Master seed
	workers    int     // Row bands for propagation within a step
	logLevel   string  // Log verbosity level
	configPath string  // Optional YAML config file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "forest-sim",
	Short: "Forest-fire cellular automaton simulator",
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging applies --log; invalid levels are fatal.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// addForestFlags registers the flags every simulation command understands.
// Defaults only document the built-in values; a flag overrides config file and
// environment only when given explicitly.
func addForestFlags(c *cobra.Command, defaultSteps int) {
	c.Flags().IntVar(&size, "size", 300, "Grid side length")
	c.Flags().Float64Var(&growthP, "p", 0.01, "Tree growth probability per empty cell per step")
	c.Flags().Float64Var(&ignitionF, "f", 0.0001, "Spontaneous ignition probability per tree per step")
	c.Flags().IntVar(&numSteps, "steps", defaultSteps, "Number of steps per forest")
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for the random streams")
	c.Flags().IntVar(&workers, "workers", 1, "Row bands processed concurrently within a step")
	c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().StringVar(&configPath, "config", "", "YAML config file (flags and FOREST_* env vars override it)")
}
