package align

import (
	"math"

	"github.com/katalvlaran/duralign/matrix"
)

// CostMatrix gathers the frames × targetLen cost matrix C[i][j] = -S[i][T[j]]
// from scores S (frames × vocab log-probabilities) and target symbol ids T.
//
// Validation:
//  1. scores must be non-nil and target non-empty.
//  2. every T[j] must lie in [0, vocab).
//  3. every gathered score must be finite; checked during the gather, so
//     a failure discards the partly filled result.
//
// Complexity: O(frames·targetLen).
func CostMatrix(scores *matrix.Dense, target []int) (*matrix.Dense, error) {
	if scores == nil {
		return nil, invalidf("scores are empty")
	}
	if len(target) == 0 {
		return nil, invalidf("target sequence is empty")
	}
	frames, vocab := scores.Rows(), scores.Cols()
	for j, sym := range target {
		if sym < 0 || sym >= vocab {
			return nil, invalidf("target[%d]=%d outside vocabulary [0,%d)", j, sym, vocab)
		}
	}

	data := make([]float64, frames*len(target))
	for i := 0; i < frames; i++ {
		row, err := scores.Row(i)
		if err != nil {
			return nil, &InvalidInputError{Reason: "reading scores", Err: err}
		}
		base := i * len(target)
		for j, sym := range target {
			s := row[sym]
			if math.IsNaN(s) || math.IsInf(s, 0) {
				return nil, invalidf("score[%d][%d] (position %d) is not finite: %v", i, sym, j, s)
			}
			data[base+j] = -s
		}
	}

	return matrix.Wrap(frames, len(target), data)
}
