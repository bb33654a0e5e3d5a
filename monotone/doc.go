// Package monotone finds the cheapest monotone path through a cost grid with
// a row-major dynamic program.
//
// 🚀 What is a monotone path?
//
//	A path from cell (0,0) to cell (R-1,C-1) that moves one cell right
//	(i, j)→(i, j+1) or one cell down (i, j)→(i+1, j) per step. Entering a
//	cell costs its value; the start cell is free. On a frames × symbols
//	cost grid such a path is exactly a monotonic frame→symbol alignment.
//
// ✨ Key features:
//   - exact O(R·C) solver, equivalent to Dijkstra on gridgraph.ToCoreGraph
//     but without the heap or the materialised adjacency
//   - works with negative costs (the grid is acyclic)
//   - non-finite cells (NaN, ±Inf) are impassable
//   - deterministic tie policy: PreferVertical (default) or PreferHorizontal
//   - two-row mode for cost-only queries in O(C) memory
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/duralign/monotone"
//
//	dist, prev, err := monotone.Solve(cost, monotone.WithReturnPath())
//	// prev[id] is the predecessor node id (row-major), NoPredecessor if none.
//
// Recurrence:
//
//	D[0][0] = 0
//	D[i][j] = C[i][j] + min(D[i-1][j], D[i][j-1])   (missing neighbours are +∞)
//
// Performance:
//
//   - Time:   O(R·C)
//   - Memory: O(R·C) with ReturnPath (prev slice), O(C) in TwoRows mode
//
// Errors:
//   - ErrNilCost: cost grid is nil.
//   - ErrPathNeedsMatrix: ReturnPath requested together with TwoRows.
package monotone
