package monotone_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/duralign/matrix"
	"github.com/katalvlaran/duralign/monotone"
)

// benchmarkSolve runs Solve on a random rows×cols grid with opts.
func benchmarkSolve(b *testing.B, rows, cols int, opts ...monotone.Option) {
	rng := rand.New(rand.NewSource(1))
	cost, _ := matrix.NewDense(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			_ = cost.Set(i, j, rng.Float64())
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := monotone.Solve(cost, opts...); err != nil {
			b.Fatalf("Solve failed: %v", err)
		}
	}
}

func BenchmarkSolve_500x60_Path(b *testing.B) {
	benchmarkSolve(b, 500, 60, monotone.WithReturnPath())
}

func BenchmarkSolve_500x60_TwoRows(b *testing.B) {
	benchmarkSolve(b, 500, 60, monotone.WithMemoryMode(monotone.TwoRows))
}

func BenchmarkSolve_2000x200_Path(b *testing.B) {
	benchmarkSolve(b, 2000, 200, monotone.WithReturnPath())
}
