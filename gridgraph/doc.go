// Package gridgraph treats a frames × symbols cost matrix as a monotone
// grid graph, the search space of a monotonic alignment.
//
// What:
//
//   - Cell (i, j) pairs acoustic frame i with target position j.
//   - Node id is row-major: id = i*Cols + j; Coordinate inverts it.
//   - Arcs only move right (i, j)→(i, j+1) or down (i, j)→(i+1, j).
//   - The weight of an arc is the cost of the cell it lands on.
//   - ToCoreGraph materialises the sparse adjacency as a *core.Digraph
//     for the generic Dijkstra solver.
//
// Why:
//
//   - Both coordinates are non-decreasing along every path, so any path
//     from (0,0) to (Rows-1, Cols-1) is a monotone frame→symbol alignment.
//   - The graph is a DAG: every arc strictly increases i+j.
//
// Complexity:
//
//   - NewGridGraph:  O(1) (the cost matrix is shared, not copied).
//   - Arcs:          O(1), at most two arcs per node.
//   - ToCoreGraph:   O(R·C) time, O(R·C) memory (≤ 2·R·C arcs).
//
// Errors:
//
//   - ErrNilCost:   the cost matrix is nil.
//   - ErrNodeIndex: a node id outside [0, NodeCount()).
package gridgraph
