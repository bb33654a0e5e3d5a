package align

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/duralign/dijkstra"
	"github.com/katalvlaran/duralign/gridgraph"
	"github.com/katalvlaran/duralign/matrix"
	"github.com/katalvlaran/duralign/monotone"
)

// Solver selects the shortest-path implementation.
type Solver int

const (
	// SolverDP fills the grid dynamic program directly (default).
	SolverDP Solver = iota

	// SolverDijkstra materialises the grid graph and runs Dijkstra from node 0.
	SolverDijkstra
)

// String returns the configuration name of s.
func (s Solver) String() string {
	switch s {
	case SolverDP:
		return "dp"
	case SolverDijkstra:
		return "dijkstra"
	default:
		return fmt.Sprintf("Solver(%d)", int(s))
	}
}

// ParseSolver maps "dp" or "dijkstra" (case-insensitive) to a Solver.
func ParseSolver(name string) (Solver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dp":
		return SolverDP, nil
	case "dijkstra":
		return SolverDijkstra, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSolver, name)
	}
}

// ShortestPath runs the selected solver over cost and returns the total cost
// of the best path to the terminal cell (+Inf if unreachable) and a row-major
// predecessor slice (-1 for the source and unreachable cells).
//
// Negative costs are only accepted by SolverDP; SolverDijkstra reports them
// as *InvalidInputError.
func ShortestPath(cost *matrix.Dense, s Solver) (float64, []int, error) {
	if cost == nil {
		return 0, nil, invalidf("cost matrix is nil")
	}

	switch s {
	case SolverDP:
		return monotone.Solve(cost, monotone.WithReturnPath())

	case SolverDijkstra:
		gg, err := gridgraph.NewGridGraph(cost)
		if err != nil {
			return 0, nil, err
		}
		g, err := gg.ToCoreGraph()
		if err != nil {
			return 0, nil, err
		}
		dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source(gg.Source()), dijkstra.WithReturnPath())
		if errors.Is(err, dijkstra.ErrNegativeWeight) {
			return 0, nil, &InvalidInputError{Reason: "negative cost with dijkstra solver", Err: err}
		}
		if err != nil {
			return 0, nil, err
		}

		return dist[gg.Terminal()], prev, nil

	default:
		return math.Inf(1), nil, fmt.Errorf("%w: %v", ErrUnknownSolver, s)
	}
}
