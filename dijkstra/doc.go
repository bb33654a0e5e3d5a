// Package dijkstra provides Dijkstra's single-source shortest-path algorithm
// on *core.Digraph graphs with non-negative float64 arc weights.
//
// Overview:
//
//   - Dijkstra computes the minimum-cost path from a single source vertex to all
//     reachable vertices in O((V + A) log V) time.
//   - It relies on a min-heap (priority queue) to always expand the next-closest vertex.
//   - Supports optional predecessor output, distance caps, and “impassable” arc thresholds.
//
// In this module it is the generic solver for monotone alignment grids built by
// gridgraph.ToCoreGraph; the monotone package solves the same grids with a
// specialised dynamic program and is used to cross-check it.
//
// Key features:
//
//   - Functional options allow fine-tuning behavior without changing the API signature.
//   - WithReturnPath: return a predecessor slice so each path can be rebuilt.
//   - WithMaxDistance: stop exploring beyond a distance.
//   - WithInfEdgeThreshold: treat arcs with weight ≥ threshold as impassable.
//     The default threshold is +Inf, so +Inf-weight arcs are never traversed.
//
// Determinism:
//
//   - Relaxation uses strict “<”, so the first predecessor that reaches the
//     minimum is kept.
//   - Heap ties on distance are broken by smaller vertex id, so the pop order,
//     and therefore prev, is identical on every run.
//
// Performance and complexity:
//
//   - Time:  O((V + A) log V)
//   - Space: O(V + A): dist, prev and visited slices plus lazy heap entries.
//
// Error handling (sentinel errors):
//
//   - ErrNoSource:       Source was not set.
//   - ErrNilGraph:       a nil *core.Digraph was passed.
//   - ErrVertexNotFound: the source vertex does not exist.
//   - ErrNegativeWeight: an arc has a negative weight (O(A) pre-scan).
//   - ErrBadMaxDistance, ErrBadInfThreshold: raised via panic by the option constructors.
//
// API reference:
//
//	func Dijkstra(g *core.Digraph, opts ...Option) (dist []float64, prev []int, err error)
//
//	  - dist[v]: minimal distance from Source to v, +Inf if unreachable.
//	  - prev[v]: immediate predecessor of v on one shortest path, -1 for the
//	             source and for unreachable vertices. Nil without WithReturnPath.
//
// Thread safety:
//
//   - Dijkstra only reads g; it is safe to run several searches on one graph
//     concurrently as long as nobody mutates it.
package dijkstra
