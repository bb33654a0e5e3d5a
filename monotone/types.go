package monotone

import "errors"

var (
	// ErrNilCost indicates a nil cost grid.
	ErrNilCost = errors.New("monotone: cost matrix is nil")

	// ErrPathNeedsMatrix indicates that predecessor recovery was requested in TwoRows mode.
	ErrPathNeedsMatrix = errors.New("monotone: ReturnPath requires MemoryMode=FullMatrix")
)

// NoPredecessor marks the start cell and unreachable cells in prev.
const NoPredecessor = -1

// MemoryMode controls how much of the DP table Solve keeps.
//
//   - FullMatrix: keep one predecessor per cell; supports ReturnPath. Memory O(R·C).
//   - TwoRows: keep only the previous and current rows. Memory O(C), cost only.
type MemoryMode int

const (
	// FullMatrix stores every predecessor.
	FullMatrix MemoryMode = iota

	// TwoRows keeps two rows of distances and no predecessors.
	TwoRows
)

// TiePolicy decides which predecessor wins when both neighbours reach a cell
// with exactly the same cost.
type TiePolicy int

const (
	// PreferVertical picks (i-1, j) on ties.
	PreferVertical TiePolicy = iota

	// PreferHorizontal picks (i, j-1) on ties.
	PreferHorizontal
)

// Options configures Solve.
//
// Fields:
//   - MemoryMode: FullMatrix or TwoRows.
//   - ReturnPath: return the predecessor slice (requires FullMatrix).
//   - TiePolicy: PreferVertical or PreferHorizontal.
type Options struct {
	MemoryMode MemoryMode
	ReturnPath bool
	TiePolicy  TiePolicy
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns FullMatrix, no path, PreferVertical.
func DefaultOptions() Options {
	return Options{
		MemoryMode: FullMatrix,
		ReturnPath: false,
		TiePolicy:  PreferVertical,
	}
}

// WithReturnPath requests the predecessor slice.
func WithReturnPath() Option {
	return func(o *Options) { o.ReturnPath = true }
}

// WithMemoryMode selects the DP storage mode.
func WithMemoryMode(m MemoryMode) Option {
	return func(o *Options) { o.MemoryMode = m }
}

// WithTiePolicy selects the tie-breaking rule.
func WithTiePolicy(p TiePolicy) Option {
	return func(o *Options) { o.TiePolicy = p }
}
