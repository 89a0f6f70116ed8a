package sim

import "fmt"

// CellState is the closed set of values a grid cell may hold.
type CellState uint8

const (
	// Empty cells are unoccupied and may grow a tree.
	Empty CellState = 0
	// Tree cells may ignite spontaneously or from a burning neighbor.
	Tree CellState = 1
	// Fire cells burn for exactly one step and then become Empty.
	Fire CellState = 2
)

// Valid reports whether s is one of Empty, Tree or Fire.
func (s CellState) Valid() bool {
	return s <= Fire
}

func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Tree:
		return "tree"
	case Fire:
		return "fire"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(s))
	}
}
