package gridgraph

import (
	"fmt"
	"math"

	"github.com/katalvlaran/duralign/core"
	"github.com/katalvlaran/duralign/matrix"
)

// NewGridGraph wraps a frames × targetLen cost matrix as a monotone grid graph.
// The matrix is not copied; dimensions are guaranteed positive by matrix.Dense.
// Complexity: O(1).
func NewGridGraph(cost *matrix.Dense) (*GridGraph, error) {
	if cost == nil {
		return nil, ErrNilCost
	}

	return &GridGraph{
		Rows:    cost.Rows(),
		Cols:    cost.Cols(),
		Cost:    cost,
		offsets: [2][2]int{Right: {0, 1}, Down: {1, 0}},
	}, nil
}

// InBounds reports whether (i, j) lies within the grid.
// Complexity: O(1).
func (gg *GridGraph) InBounds(i, j int) bool {
	return i >= 0 && i < gg.Rows && j >= 0 && j < gg.Cols
}

// Index maps (i, j) to the row-major node id i*Cols + j.
// Complexity: O(1).
func (gg *GridGraph) Index(i, j int) int {
	return i*gg.Cols + j
}

// Coordinate converts a row-major node id back to (i, j).
// Complexity: O(1).
func (gg *GridGraph) Coordinate(id int) (i, j int) {
	return id / gg.Cols, id % gg.Cols
}

// NodeCount returns Rows*Cols.
func (gg *GridGraph) NodeCount() int {
	return gg.Rows * gg.Cols
}

// EdgeCount returns the number of arcs: Rows*(Cols-1) rightward plus
// (Rows-1)*Cols downward.
func (gg *GridGraph) EdgeCount() int {
	return gg.Rows*(gg.Cols-1) + (gg.Rows-1)*gg.Cols
}

// Source is the node id of cell (0, 0).
func (gg *GridGraph) Source() int { return 0 }

// Terminal is the node id of cell (Rows-1, Cols-1).
func (gg *GridGraph) Terminal() int { return gg.NodeCount() - 1 }

// CellCost returns the cost stored for node id.
// Complexity: O(1).
func (gg *GridGraph) CellCost(id int) (float64, error) {
	if id < 0 || id >= gg.NodeCount() {
		return 0, fmt.Errorf("gridgraph: node %d of %d: %w", id, gg.NodeCount(), ErrNodeIndex)
	}
	i, j := gg.Coordinate(id)

	return gg.Cost.At(i, j)
}

// Arcs returns the outgoing arcs of node u, rightward first.
// Each weight is the cost of the destination cell; NaN and -Inf costs are
// reported as +Inf so that every non-finite cell is impassable.
// Complexity: O(1).
func (gg *GridGraph) Arcs(u int) ([]core.Arc, error) {
	if u < 0 || u >= gg.NodeCount() {
		return nil, fmt.Errorf("gridgraph: node %d of %d: %w", u, gg.NodeCount(), ErrNodeIndex)
	}
	i, j := gg.Coordinate(u)
	arcs := make([]core.Arc, 0, len(gg.offsets))
	for _, d := range gg.offsets {
		ni, nj := i+d[0], j+d[1]
		if !gg.InBounds(ni, nj) {
			continue
		}
		w, err := gg.Cost.At(ni, nj)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(w) || math.IsInf(w, -1) {
			w = math.Inf(1)
		}
		arcs = append(arcs, core.Arc{To: gg.Index(ni, nj), Weight: w})
	}

	return arcs, nil
}

// Step classifies the move from node u to node v.
// ok is false when v is not a direct monotone successor of u.
func (gg *GridGraph) Step(u, v int) (d Direction, ok bool) {
	ui, uj := gg.Coordinate(u)
	vi, vj := gg.Coordinate(v)
	switch {
	case vi == ui && vj == uj+1:
		return Right, true
	case vi == ui+1 && vj == uj:
		return Down, true
	default:
		return 0, false
	}
}

// ToCoreGraph materialises the grid as a sparse *core.Digraph with one vertex
// per cell and one arc per monotone move.
// Complexity: O(Rows×Cols) time and memory.
func (gg *GridGraph) ToCoreGraph() (*core.Digraph, error) {
	g, err := core.NewDigraph(gg.NodeCount(), core.WithArcCapacity(len(gg.offsets)))
	if err != nil {
		return nil, err
	}
	var u int
	for u = 0; u < gg.NodeCount(); u++ {
		arcs, err := gg.Arcs(u)
		if err != nil {
			return nil, err
		}
		for _, a := range arcs {
			if err = g.AddArc(u, a.To, a.Weight); err != nil {
				return nil, fmt.Errorf("gridgraph: node %d: %w", u, err)
			}
		}
	}

	return g, nil
}
