package align

import (
	"fmt"
	"math"

	"github.com/katalvlaran/duralign/matrix"
)

// Decoding is the frame/position bookkeeping extracted from one path.
type Decoding struct {
	// MelText[i] is the last (rightmost) position the path visits at frame i.
	MelText []int
	// TextMel[j] is the frame with the highest score among path cells at position j.
	TextMel []int
	// BestScore[j] is that score, -C[TextMel[j]][j].
	BestScore []float64
}

// Decode walks path once over cost (frames × targetLen).
//
// For every node (i, j):
//   - score = -C[i][j]; if it is strictly higher than BestScore[j], or
//     position j has not been seen yet, TextMel[j] = i and BestScore[j] = score.
//     Exact ties keep the first frame seen.
//   - MelText[i] = j, overwritten, so the last visit at frame i wins.
//
// Decode returns ErrInvariant if a node lies outside the grid or if some
// frame or position is never visited; neither happens for a path produced by
// ReconstructPath over the same grid.
//
// Complexity: O(len(path) + frames + targetLen).
func Decode(path []int, cost *matrix.Dense) (*Decoding, error) {
	if cost == nil {
		return nil, invalidf("cost matrix is nil")
	}
	frames, targetLen := cost.Rows(), cost.Cols()

	d := &Decoding{
		MelText:   filled(frames, -1),
		TextMel:   filled(targetLen, -1),
		BestScore: make([]float64, targetLen),
	}
	for j := range d.BestScore {
		d.BestScore[j] = math.Inf(-1)
	}

	var (
		i, j  int
		c     float64
		err   error
		score float64
	)
	for _, id := range path {
		if id < 0 || id >= frames*targetLen {
			return nil, fmt.Errorf("%w: node %d outside %dx%d grid", ErrInvariant, id, frames, targetLen)
		}
		i, j = id/targetLen, id%targetLen
		if c, err = cost.At(i, j); err != nil {
			return nil, err
		}
		score = -c
		if d.TextMel[j] < 0 || score > d.BestScore[j] {
			d.TextMel[j] = i
			d.BestScore[j] = score
		}
		d.MelText[i] = j
	}

	for i = range d.MelText {
		if d.MelText[i] < 0 {
			return nil, fmt.Errorf("%w: frame %d not on path", ErrInvariant, i)
		}
	}
	for j = range d.TextMel {
		if d.TextMel[j] < 0 {
			return nil, fmt.Errorf("%w: position %d not on path", ErrInvariant, j)
		}
	}

	return d, nil
}

func filled(n, v int) []int {
	s := make([]int, n)
	for k := range s {
		s[k] = v
	}

	return s
}
