// Notes on implementation choices:
//
//   - We perform an upfront scan of all arcs (O(A)) to detect negative weights and fail fast.
//   - We treat any arc with weight ≥ InfEdgeThreshold as an impassable “wall”.
//   - We stop exploring once the minimum distance in the heap exceeds MaxDistance.
//   - We use a “lazy” decrease-key strategy: pushing duplicates into the heap and ignoring stale entries.

package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/duralign/core"
)

// Dijkstra computes shortest distances from the source vertex (Options.Source)
// to all other vertices of g.
//
// Returns:
//
//   - dist: dist[v] is the minimum distance to v (+Inf if unreachable).
//   - prev: predecessor slice if WithReturnPath was given (nil otherwise).
//     prev[v] == u means the shortest path to v goes through u;
//     prev[v] == NoPredecessor for the source and unreachable vertices.
//   - err:  error if inputs are invalid or if a negative weight is detected.
//
// Preconditions and validation (in order):
//  1. Source must be set (ErrNoSource).
//  2. g must be non-nil (ErrNilGraph).
//  3. g must contain Source (ErrVertexNotFound).
//  4. No arc in g can have negative weight (ErrNegativeWeight).
//
// Complexity:
//
//   - Time:  O((V + A) log V)
//   - Space: O(V + A)
func Dijkstra(g *core.Digraph, opts ...Option) ([]float64, []int, error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate Source is provided
	if cfg.Source == noSource {
		return nil, nil, ErrNoSource
	}

	// 3) Validate graph is non-nil
	if g == nil {
		return nil, nil, ErrNilGraph
	}

	// 4) Validate Source exists in the graph
	if !g.HasVertex(cfg.Source) {
		return nil, nil, fmt.Errorf("%w: %d", ErrVertexNotFound, cfg.Source)
	}

	// 5) Pre-scan all arcs to detect negative weights.
	if w, from, to := g.MinWeight(); w < 0 {
		return nil, nil, fmt.Errorf("%w: edge %d→%d weight=%g", ErrNegativeWeight, from, to, w)
	}

	// 6) Prepare data structures. V = number of vertices.
	V := g.Order()
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make([]float64, V),
		prev:    make([]int, V),
		visited: make([]bool, V),
		pq:      make(nodePQ, 0, V),
	}

	// 7) Initialize state and run the main loop.
	r.init()
	if err := r.process(); err != nil {
		return nil, nil, err
	}

	if !cfg.ReturnPath {
		return r.dist, nil, nil
	}

	return r.dist, r.prev, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *core.Digraph // The input graph; read-only within Dijkstra.
	options Options       // Configuration options (Source, thresholds, etc.).
	dist    []float64     // dist[v] = current best distance from Source.
	prev    []int         // prev[v] = predecessor on the shortest path.
	visited []bool        // visited[v] = distance of v is final.
	pq      nodePQ        // Min-heap of *nodeItem for lazy priority queue.
}

// init sets dist=+Inf and prev=NoPredecessor everywhere, then pushes Source at 0.
func (r *runner) init() {
	inf := math.Inf(1)
	for v := range r.dist {
		r.dist[v] = inf
		r.prev[v] = NoPredecessor
	}
	r.dist[r.options.Source] = 0

	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.options.Source, dist: 0})
}

// process is the core loop: extract the closest vertex, finalize it, relax its arcs.
//
// Loop termination conditions:
//
//   - The heap becomes empty (all reachable vertices processed).
//   - The minimum distance in the heap exceeds MaxDistance.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u, d := item.id, item.dist

		// Skip stale heap entries.
		if r.visited[u] {
			continue
		}

		// Nothing closer remains; everything left is beyond the cap.
		if d > r.options.MaxDistance {
			break
		}

		r.visited[u] = true

		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax examines each arc leaving u and improves neighbor distances.
// Assumes r.dist[u] is final before calling relax(u).
func (r *runner) relax(u int) error {
	arcs, err := r.g.Arcs(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get arcs of %d: %w", u, err)
	}

	var newDist float64
	for _, a := range arcs {
		// Impassable arcs (including +Inf weights under the default threshold).
		if a.Weight >= r.options.InfEdgeThreshold {
			continue
		}

		// Safety check: the pre-scan already rejected negative weights.
		if a.Weight < 0 {
			return fmt.Errorf("%w: edge %d→%d weight=%g", ErrNegativeWeight, u, a.To, a.Weight)
		}

		newDist = r.dist[u] + a.Weight
		if newDist > r.options.MaxDistance {
			continue
		}

		// Strict "<": equal-cost alternatives keep the first predecessor found.
		if newDist >= r.dist[a.To] {
			continue
		}

		r.dist[a.To] = newDist
		r.prev[a.To] = u

		// Lazy decrease-key: the outdated entry is skipped when popped.
		heap.Push(&r.pq, &nodeItem{id: a.To, dist: newDist})
	}

	return nil
}

// nodeItem represents a vertex and its tentative distance from the source.
type nodeItem struct {
	id   int     // vertex id
	dist float64 // distance from source
}

// nodePQ is a min-heap of *nodeItem ordered by dist, then by id.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by distance; equal distances pop the smaller vertex id first.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].id < pq[j].id
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the last element of the underlying slice.
func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
