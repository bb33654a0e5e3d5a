package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/duralign/dijkstra"
	"github.com/katalvlaran/duralign/gridgraph"
	"github.com/katalvlaran/duralign/matrix"
)

// ExampleDijkstra_grid runs Dijkstra over a 2×2 monotone grid and walks prev
// back from the terminal.
func ExampleDijkstra_grid() {
	// 1) Cost of entering each cell; the cheap route is (0,0)→(1,0)→(1,1).
	cost, _ := matrix.NewDenseFrom([][]float64{
		{0, 5},
		{1, 1},
	})
	gg, _ := gridgraph.NewGridGraph(cost)
	g, _ := gg.ToCoreGraph()

	// 2) Shortest paths from cell (0,0).
	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source(gg.Source()), dijkstra.WithReturnPath())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 3) Walk back from the terminal.
	for v := gg.Terminal(); v != dijkstra.NoPredecessor; v = prev[v] {
		i, j := gg.Coordinate(v)
		fmt.Printf("(%d,%d) ", i, j)
	}
	fmt.Printf("cost=%g\n", dist[gg.Terminal()])
	// Output: (1,1) (1,0) (0,0) cost=2
}
