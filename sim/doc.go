// Package sim provides the forest-fire cellular automaton engine.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - cell.go / grid.go: the three cell states and the square grid that holds them
//   - stepper.go: the per-step transition rule (growth, ignition, propagation, burnout)
//   - forest.go: the driver that owns a grid and advances it for a step budget
//
// # Architecture
//
// The sim package holds the model and its driver; analysis lives in sub-packages:
//   - sim/clusters/: connected-component labeling of the tree mask and cluster statistics
//   - sim/ensemble/: many independent forests run concurrently, statistics aggregated
//   - sim/trace/: per-step counter recording and summaries
//
// # Determinism
//
// Every random draw comes from an explicit RandomSource. PartitionedRNG derives
// isolated, reproducible streams per forest from a single SimulationKey, so a run is
// bit-for-bit reproducible for a given seed regardless of ensemble concurrency.
package sim
