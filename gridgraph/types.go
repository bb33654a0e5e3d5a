// Package gridgraph defines the GridGraph type and sentinel errors.
package gridgraph

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/duralign/matrix"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrNilCost indicates that no cost matrix was supplied.
	ErrNilCost = errors.New("gridgraph: cost matrix is nil")

	// ErrNodeIndex indicates a node id outside the grid.
	ErrNodeIndex = errors.New("gridgraph: node index out of range")
)

// Direction names one of the two monotone moves.
type Direction int

const (
	// Right keeps the frame and advances the target position: (i, j)→(i, j+1).
	Right Direction = iota
	// Down advances the frame and keeps the target position: (i, j)→(i+1, j).
	Down
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// GridGraph is an immutable monotone grid over a cost matrix.
// Rows is the number of frames, Cols the number of target positions.
// Cost is shared with the caller and must not be mutated while in use.
// offsets holds the (di, dj) step for each Direction, right first, so
// adjacency order matches the row-major construction order of the arcs.
type GridGraph struct {
	Rows, Cols int
	Cost       *matrix.Dense
	offsets    [2][2]int
}
