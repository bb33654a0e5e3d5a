package monotone

import (
	"math"

	"github.com/katalvlaran/duralign/matrix"
)

// Solve computes the cost of the cheapest monotone path from cell (0,0) to
// cell (R-1,C-1) of cost.
//
// Returns (dist, prev, err):
//   - dist: total cost of the best path, +Inf if the terminal is unreachable.
//   - prev: with WithReturnPath, prev[i*C+j] is the row-major id of the
//     predecessor of (i, j) on its best path, NoPredecessor for (0,0) and for
//     unreachable cells. Nil otherwise.
//
// Algorithm Outline:
//  1. D[0][0] = 0; the start cell contributes no cost.
//  2. For each cell in row-major order: if C[i][j] is not finite, D = +∞.
//     Otherwise up = D[i-1][j], left = D[i][j-1] (+∞ when outside the grid),
//     pick the smaller one (ties per TiePolicy) and add C[i][j].
//  3. dist = D[R-1][C-1].
//
// Complexity: O(R·C) time; O(R·C) memory with ReturnPath, O(C) in TwoRows mode.
func Solve(cost *matrix.Dense, opts ...Option) (float64, []int, error) {
	if cost == nil {
		return 0, nil, ErrNilCost
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ReturnPath && cfg.MemoryMode != FullMatrix {
		return 0, nil, ErrPathNeedsMatrix
	}

	rows, cols := cost.Rows(), cost.Cols()
	inf := math.Inf(1)

	// Two rows of distances are enough in both modes; predecessors carry the path.
	prevRow := make([]float64, cols)
	currRow := make([]float64, cols)
	var prev []int
	if cfg.ReturnPath {
		prev = make([]int, rows*cols)
	}

	var (
		c, up, left, best float64
		from              int
		err               error
	)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			id := i*cols + j
			if i == 0 && j == 0 {
				currRow[0] = 0
				if prev != nil {
					prev[0] = NoPredecessor
				}
				continue
			}

			if c, err = cost.At(i, j); err != nil {
				return 0, nil, err
			}

			up, left = inf, inf
			if i > 0 {
				up = prevRow[j]
			}
			if j > 0 {
				left = currRow[j-1]
			}

			best, from = pick(up, left, id, cols, cfg.TiePolicy)
			if math.IsNaN(c) || math.IsInf(c, 0) || math.IsInf(best, 1) {
				best, from = inf, NoPredecessor
			} else {
				best += c
			}

			currRow[j] = best
			if prev != nil {
				prev[id] = from
			}
		}
		prevRow, currRow = currRow, prevRow
	}

	// After the final swap the last computed row is prevRow.
	return prevRow[cols-1], prev, nil
}

// pick returns the cheaper of the vertical and horizontal predecessors of the
// cell with row-major id, together with that predecessor's id.
func pick(up, left float64, id, cols int, policy TiePolicy) (float64, int) {
	if up < left || (up == left && policy == PreferVertical) {
		return up, id - cols
	}

	return left, id - 1
}
