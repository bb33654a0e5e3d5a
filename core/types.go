package core

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for core graph operations.
var (
	// ErrInvalidOrder indicates that a graph was requested with no vertices.
	ErrInvalidOrder = errors.New("core: graph order must be > 0")

	// ErrVertexOutOfRange indicates an operation referenced a non-existent vertex id.
	ErrVertexOutOfRange = errors.New("core: vertex id out of range")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrNaNWeight indicates an arc weight that is not a number.
	ErrNaNWeight = errors.New("core: arc weight is NaN")
)

// posInf is the weight of an impassable arc and the identity for minimum scans.
var posInf = math.Inf(1)

// Arc is one outgoing connection of a vertex.
//
// To is the destination vertex id; Weight is the cost of traversing the arc.
// Weights may be +Inf (impassable) but never NaN.
type Arc struct {
	To     int
	Weight float64
}

// GraphOption configures behavior of a Digraph before creation.
type GraphOption func(g *Digraph)

// WithLoops permits self-loops (arcs from a vertex to itself).
func WithLoops() GraphOption {
	return func(g *Digraph) { g.allowLoops = true }
}

// WithArcCapacity pre-sizes each vertex's adjacency slice to perVertex arcs.
// Values <= 0 are ignored.
func WithArcCapacity(perVertex int) GraphOption {
	return func(g *Digraph) {
		if perVertex > 0 {
			g.arcCap = perVertex
		}
	}
}

// Digraph is a weighted directed graph over vertices 0..n-1.
//
// The vertex set is immutable after NewDigraph. A Digraph is filled by one
// goroutine and may then be read concurrently.
type Digraph struct {
	// Configuration flags
	allowLoops bool
	arcCap     int

	// Storage
	adj  [][]Arc // adj[u] = outgoing arcs of u in insertion order
	size int     // total number of arcs
}

// NewDigraph creates a Digraph with n vertices and no arcs.
// Complexity: O(n) (O(n·perVertex) with WithArcCapacity).
func NewDigraph(n int, opts ...GraphOption) (*Digraph, error) {
	if n <= 0 {
		return nil, fmt.Errorf("NewDigraph(%d): %w", n, ErrInvalidOrder)
	}
	g := &Digraph{}
	for _, opt := range opts {
		opt(g)
	}
	g.adj = make([][]Arc, n)
	if g.arcCap > 0 {
		for u := range g.adj {
			g.adj[u] = make([]Arc, 0, g.arcCap)
		}
	}

	return g, nil
}

// AddArc appends the arc from→to with the given weight.
// Parallel arcs are kept; callers building simple graphs must not repeat pairs.
// Not safe for concurrent use with any other method.
// Complexity: O(1) amortized.
func (g *Digraph) AddArc(from, to int, weight float64) error {
	n := len(g.adj)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("core: arc %d→%d in graph of order %d: %w", from, to, n, ErrVertexOutOfRange)
	}
	if from == to && !g.allowLoops {
		return fmt.Errorf("core: arc %d→%d: %w", from, to, ErrLoopNotAllowed)
	}
	if math.IsNaN(weight) {
		return fmt.Errorf("core: arc %d→%d: %w", from, to, ErrNaNWeight)
	}
	g.adj[from] = append(g.adj[from], Arc{To: to, Weight: weight})
	g.size++

	return nil
}
