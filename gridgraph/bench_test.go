package gridgraph_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/duralign/gridgraph"
	"github.com/katalvlaran/duralign/matrix"
)

// BenchmarkToCoreGraph measures adjacency materialisation on a
// 1000-frame × 100-symbol grid, a typical utterance size.
// Complexity: O(R×C)
func BenchmarkToCoreGraph(b *testing.B) {
	const rows, cols = 1000, 100
	rng := rand.New(rand.NewSource(42))
	m, err := matrix.NewDense(rows, cols)
	if err != nil {
		b.Fatalf("setup NewDense failed: %v", err)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			_ = m.Set(i, j, rng.Float64()*10)
		}
	}
	gg, err := gridgraph.NewGridGraph(m)
	if err != nil {
		b.Fatalf("setup NewGridGraph failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = gg.ToCoreGraph()
	}
}
