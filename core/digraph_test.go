package core_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/duralign/core"
)

func TestNewDigraph_InvalidOrder(t *testing.T) {
	_, err := core.NewDigraph(0)
	assert.ErrorIs(t, err, core.ErrInvalidOrder)
}

func TestAddArc_Validation(t *testing.T) {
	g, err := core.NewDigraph(3)
	require.NoError(t, err)

	assert.ErrorIs(t, g.AddArc(0, 3, 1), core.ErrVertexOutOfRange)
	assert.ErrorIs(t, g.AddArc(-1, 0, 1), core.ErrVertexOutOfRange)
	assert.ErrorIs(t, g.AddArc(1, 1, 1), core.ErrLoopNotAllowed)
	assert.ErrorIs(t, g.AddArc(0, 1, math.NaN()), core.ErrNaNWeight)
	assert.Equal(t, 0, g.Size(), "rejected arcs must not be stored")

	// +Inf is a legal (impassable) weight.
	require.NoError(t, g.AddArc(0, 1, math.Inf(1)))
	assert.Equal(t, 1, g.Size())
}

func TestWithLoops(t *testing.T) {
	g, err := core.NewDigraph(1, core.WithLoops())
	require.NoError(t, err)
	assert.True(t, g.Looped())
	require.NoError(t, g.AddArc(0, 0, 2))
	w, ok := g.Weight(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 2.0, w)
}

func TestArcs_InsertionOrder(t *testing.T) {
	g, err := core.NewDigraph(4, core.WithArcCapacity(2))
	require.NoError(t, err)
	require.NoError(t, g.AddArc(0, 2, 5))
	require.NoError(t, g.AddArc(0, 1, 3))
	require.NoError(t, g.AddArc(1, 3, 1))

	arcs, err := g.Arcs(0)
	require.NoError(t, err)
	assert.Equal(t, []core.Arc{{To: 2, Weight: 5}, {To: 1, Weight: 3}}, arcs)

	deg, err := g.OutDegree(3)
	require.NoError(t, err)
	assert.Zero(t, deg)

	_, err = g.Arcs(4)
	assert.ErrorIs(t, err, core.ErrVertexOutOfRange)
	assert.True(t, g.HasVertex(3))
	assert.False(t, g.HasVertex(4))
	assert.Equal(t, 4, g.Order())
}

func TestMinWeight(t *testing.T) {
	g, _ := core.NewDigraph(3)
	w, from, to := g.MinWeight()
	assert.True(t, math.IsInf(w, 1))
	assert.Equal(t, -1, from)
	assert.Equal(t, -1, to)

	_ = g.AddArc(0, 1, 4)
	_ = g.AddArc(1, 2, -0.5)
	w, from, to = g.MinWeight()
	assert.Equal(t, -0.5, w)
	assert.Equal(t, 1, from)
	assert.Equal(t, 2, to)
}

// TestArcs_ConcurrentReaders queries a finished graph from many goroutines.
func TestArcs_ConcurrentReaders(t *testing.T) {
	const n = 64
	g, err := core.NewDigraph(n)
	require.NoError(t, err)
	for u := 0; u < n-1; u++ {
		require.NoError(t, g.AddArc(u, u+1, float64(u)))
	}

	var wg sync.WaitGroup
	degrees := make([]int, n-1)
	for u := 0; u < n-1; u++ {
		wg.Add(1)
		go func(u int) {
			defer wg.Done()
			degrees[u], _ = g.OutDegree(u)
		}(u)
	}
	wg.Wait()

	for u, d := range degrees {
		assert.Equal(t, 1, d, "vertex %d", u)
	}
	assert.Equal(t, n-1, g.Size())
}
