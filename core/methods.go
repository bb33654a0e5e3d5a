package core

// Order returns the number of vertices.
// Complexity: O(1).
func (g *Digraph) Order() int {
	return len(g.adj)
}

// Size returns the number of arcs.
// Complexity: O(1).
func (g *Digraph) Size() int {
	return g.size
}

// Looped reports whether self-loops are permitted by policy.
func (g *Digraph) Looped() bool {
	return g.allowLoops
}

// HasVertex reports whether id names a vertex of g.
// Complexity: O(1).
func (g *Digraph) HasVertex(id int) bool {
	return id >= 0 && id < len(g.adj)
}

// Arcs returns the outgoing arcs of u in insertion order.
// The returned slice is shared with the graph and must not be modified.
// Complexity: O(1).
func (g *Digraph) Arcs(u int) ([]Arc, error) {
	if u < 0 || u >= len(g.adj) {
		return nil, ErrVertexOutOfRange
	}

	return g.adj[u], nil
}

// OutDegree returns the number of arcs leaving u.
// Complexity: O(1).
func (g *Digraph) OutDegree(u int) (int, error) {
	arcs, err := g.Arcs(u)
	if err != nil {
		return 0, err
	}

	return len(arcs), nil
}

// Weight returns the weight of the first arc u→v and whether it exists.
// Complexity: O(deg(u)).
func (g *Digraph) Weight(u, v int) (float64, bool) {
	arcs, err := g.Arcs(u)
	if err != nil {
		return 0, false
	}
	for _, a := range arcs {
		if a.To == v {
			return a.Weight, true
		}
	}

	return 0, false
}

// MinWeight returns the smallest arc weight in g, or +Inf for a graph with
// no arcs. Solvers use it to reject negative weights before running.
// Complexity: O(V + A).
func (g *Digraph) MinWeight() (w float64, from, to int) {
	w, from, to = posInf, -1, -1
	for u, arcs := range g.adj {
		for _, a := range arcs {
			if a.Weight < w {
				w, from, to = a.Weight, u, a.To
			}
		}
	}

	return w, from, to
}
