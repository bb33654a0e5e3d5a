// Package core provides the integer-indexed, weighted, directed graph that
// the shortest-path solvers operate on.
//
// The Digraph G = (V, A) has a fixed vertex set V = {0, …, n-1} chosen at
// construction time and a growable arc set A. Each vertex keeps its outgoing
// arcs in insertion order, so iteration is deterministic and algorithms that
// break ties by scan order (Dijkstra with strict "<" relaxation) produce the
// same result on every run.
//
// Why integer ids?
//
//   - Grid graphs over frames × symbols name every cell by its row-major
//     index; strings would only add hashing and formatting cost.
//   - Slices indexed by vertex id replace maps in the solvers (dist, prev),
//     which keeps memory at O(V + A) with no per-entry overhead.
//
// Configuration Options (GraphOption):
//
//	– WithLoops()
//	    Permits self-loops; otherwise AddArc(v, v, …) → ErrLoopNotAllowed.
//
//	– WithArcCapacity(perVertex int)
//	    Pre-sizes every adjacency slice; purely a performance hint.
//
// Concurrency:
//
//	There is no locking. A graph is built by one goroutine (AddArc) and
//	is read-only afterwards, when any number of goroutines may query it.
//	Slices returned by Arcs are shared views and must not be modified.
//
// Errors:
//
//	ErrVertexOutOfRange - vertex id outside [0, Order()).
//	ErrLoopNotAllowed   - self-loop when loops are disabled.
//	ErrNaNWeight        - arc weight is NaN.
//	ErrInvalidOrder     - NewDigraph called with n <= 0.
package core
