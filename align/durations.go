package align

import "fmt"

// Span is the frame range [Start, End) attributed to one target position.
// Start == End for a position left at zero duration.
type Span struct {
	Position int `json:"position"`
	Symbol   int `json:"symbol"`
	Start    int `json:"start"`
	End      int `json:"end"`
}

// Durations counts, for every position j in [0, targetLen), the frames i
// with melText[i] == j. It returns ErrInvariant for an entry outside
// [0, targetLen).
// Complexity: O(frames + targetLen).
func Durations(melText []int, targetLen int) ([]int, error) {
	d := make([]int, targetLen)
	for i, j := range melText {
		if j < 0 || j >= targetLen {
			return nil, fmt.Errorf("%w: frame %d assigned to position %d of %d", ErrInvariant, i, j, targetLen)
		}
		d[j]++
	}

	return d, nil
}

// RepairDurations sweeps d once from left to right and, for each zero
// entry, moves one frame from a neighbour:
//
//   - L = d[p-1] (0 at p == 0), R = d[p+1] (0 at the last position);
//   - L > R and L > 1: take one from the left;
//   - otherwise R > L and R > 1: take one from the right.
//
// Neighbour values are read from the array being repaired, so an earlier
// transfer can enable or prevent a later one. d is modified in place; the
// sum is preserved and no entry becomes negative. Zeros whose neighbours are
// both ≤ 1 are left alone. Returns the number of transfers.
// Complexity: O(len(d)).
func RepairDurations(d []int) int {
	var repairs, left, right int
	for p := range d {
		if d[p] != 0 {
			continue
		}
		left, right = 0, 0
		if p > 0 {
			left = d[p-1]
		}
		if p < len(d)-1 {
			right = d[p+1]
		}

		switch {
		case left > right && left > 1:
			d[p]++
			d[p-1]--
			repairs++
		case right > left && right > 1:
			d[p]++
			d[p+1]--
			repairs++
		}
	}

	return repairs
}

// MidpointDurations splits frames at the midpoints between the best frames
// of consecutive positions:
//
//	alt[j] = floor((textMel[j] + textMel[j+1]) / 2) - running   for j < n-1
//	alt[n-1] = frames - running
//
// where running is the sum of alt[0..j). sum(alt) == frames always; an entry
// can be zero or, for a non-monotone textMel, negative.
// Complexity: O(len(textMel)).
func MidpointDurations(textMel []int, frames int) []int {
	n := len(textMel)
	if n == 0 {
		return nil
	}
	alt := make([]int, n)
	running := 0
	for j := 0; j < n-1; j++ {
		alt[j] = (textMel[j]+textMel[j+1])/2 - running
		running += alt[j]
	}
	alt[n-1] = frames - running

	return alt
}

// CountZero returns how many entries of d are zero.
func CountZero(d []int) int {
	n := 0
	for _, v := range d {
		if v == 0 {
			n++
		}
	}

	return n
}

// Spans lays durations end to end from frame 0. target supplies the symbol
// id of each position and must have the same length as durations.
func Spans(durations, target []int) ([]Span, error) {
	if len(durations) != len(target) {
		return nil, invalidf("%d durations for %d target symbols", len(durations), len(target))
	}
	spans := make([]Span, len(durations))
	start := 0
	for p, n := range durations {
		if n < 0 {
			return nil, invalidf("negative duration %d at position %d", n, p)
		}
		spans[p] = Span{Position: p, Symbol: target[p], Start: start, End: start + n}
		start += n
	}

	return spans, nil
}
