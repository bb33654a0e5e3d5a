// File: gridgraph/gridgraph_test.go
package gridgraph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/duralign/core"
	"github.com/katalvlaran/duralign/matrix"
)

func mustGrid(t *testing.T, cost [][]float64) *GridGraph {
	t.Helper()
	m, err := matrix.NewDenseFrom(cost)
	require.NoError(t, err)
	gg, err := NewGridGraph(m)
	require.NoError(t, err)

	return gg
}

// TestNewGridGraph_Nil ensures a nil matrix is rejected.
func TestNewGridGraph_Nil(t *testing.T) {
	_, err := NewGridGraph(nil)
	assert.ErrorIs(t, err, ErrNilCost)
}

// TestIndexCoordinate_Bijection checks id = i*Cols + j round-trips for every cell.
func TestIndexCoordinate_Bijection(t *testing.T) {
	gg := mustGrid(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	seen := make(map[int]bool)
	for i := 0; i < gg.Rows; i++ {
		for j := 0; j < gg.Cols; j++ {
			id := gg.Index(i, j)
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
			ri, rj := gg.Coordinate(id)
			assert.Equal(t, i, ri)
			assert.Equal(t, j, rj)
		}
	}
	assert.Len(t, seen, gg.NodeCount())
	assert.Equal(t, 0, gg.Source())
	assert.Equal(t, 5, gg.Terminal())
}

// TestArcs_DestinationCost checks that arcs carry the cost of the cell they enter.
//
// Grid:
//
//	0.1 5.0
//	5.0 0.1
func TestArcs_DestinationCost(t *testing.T) {
	gg := mustGrid(t, [][]float64{{0.1, 5.0}, {5.0, 0.1}})

	arcs, err := gg.Arcs(0)
	require.NoError(t, err)
	assert.Equal(t, []core.Arc{{To: 1, Weight: 5.0}, {To: 2, Weight: 5.0}}, arcs)

	arcs, err = gg.Arcs(1) // (0,1): only down
	require.NoError(t, err)
	assert.Equal(t, []core.Arc{{To: 3, Weight: 0.1}}, arcs)

	arcs, err = gg.Arcs(gg.Terminal())
	require.NoError(t, err)
	assert.Empty(t, arcs, "terminal has no successors")

	_, err = gg.Arcs(4)
	assert.ErrorIs(t, err, ErrNodeIndex)
}

// TestArcs_NonFiniteIsImpassable checks that NaN and -Inf costs surface as +Inf weights.
func TestArcs_NonFiniteIsImpassable(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(-1), math.Inf(1)} {
		gg := mustGrid(t, [][]float64{{0, bad}})
		arcs, err := gg.Arcs(0)
		require.NoError(t, err)
		require.Len(t, arcs, 1)
		assert.True(t, math.IsInf(arcs[0].Weight, 1), "cost %v", bad)
	}
}

// TestStep classifies monotone moves.
func TestStep(t *testing.T) {
	gg := mustGrid(t, [][]float64{{1, 1}, {1, 1}})
	d, ok := gg.Step(0, 1)
	assert.True(t, ok)
	assert.Equal(t, Right, d)
	d, ok = gg.Step(0, 2)
	assert.True(t, ok)
	assert.Equal(t, Down, d)
	_, ok = gg.Step(0, 3)
	assert.False(t, ok, "diagonal is not a grid move")
	_, ok = gg.Step(1, 2)
	assert.False(t, ok, "row wrap is not a grid move")
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "down", Down.String())
	assert.Equal(t, "Direction(7)", Direction(7).String())
	assert.Equal(t, "Direction(-1)", Direction(-1).String())
}

// TestToCoreGraph_EdgeCount checks the materialised adjacency size: R(C-1) + (R-1)C.
func TestToCoreGraph_EdgeCount(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
	}{
		{"single", 1, 1},
		{"row", 1, 4},
		{"column", 5, 1},
		{"rect", 7, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := matrix.NewDense(tc.rows, tc.cols)
			require.NoError(t, err)
			gg, err := NewGridGraph(m)
			require.NoError(t, err)

			g, err := gg.ToCoreGraph()
			require.NoError(t, err)
			assert.Equal(t, gg.NodeCount(), g.Order())
			assert.Equal(t, gg.EdgeCount(), g.Size())
			assert.LessOrEqual(t, g.Size(), 2*tc.rows*tc.cols)
		})
	}
}

// TestCellCost reads back stored costs by node id.
func TestCellCost(t *testing.T) {
	gg := mustGrid(t, [][]float64{{1, 2}, {3, 4}})
	c, err := gg.CellCost(2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, c)
	_, err = gg.CellCost(-1)
	assert.ErrorIs(t, err, ErrNodeIndex)
}
