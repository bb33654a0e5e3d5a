package align

import (
	"fmt"
	"math"

	"github.com/katalvlaran/duralign/matrix"
)

// Item is one input pair: per-frame log-probabilities over the vocabulary
// (frames × vocab) and the target symbol ids.
type Item struct {
	ID     string
	Scores *matrix.Dense
	Target []int
}

// Result holds every artefact of one alignment.
type Result struct {
	ID        string    `json:"id"`
	Frames    int       `json:"frames"`
	TargetLen int       `json:"target_len"`
	Cost      float64   `json:"cost"`
	Path      []int     `json:"path"`
	MelText   []int     `json:"mel_text"`
	TextMel   []int     `json:"text_mel"`
	BestScore []float64 `json:"best_score"`

	// Durations are the repaired per-position frame counts.
	Durations []int `json:"durations"`
	// DurationsAlt is the midpoint split.
	DurationsAlt []int `json:"durations_alt"`

	Repairs       int `json:"repairs"`
	ZeroDurations int `json:"zero_durations"`
}

// Options configures an Aligner.
type Options struct {
	Solver Solver
}

// Option mutates Options.
type Option func(*Options)

// WithSolver selects the shortest-path implementation.
func WithSolver(s Solver) Option {
	return func(o *Options) { o.Solver = s }
}

// Aligner runs the full pipeline. It holds no per-item state and is safe
// for concurrent use.
type Aligner struct {
	opts Options
}

// New returns an Aligner; the default solver is SolverDP.
func New(opts ...Option) *Aligner {
	cfg := Options{Solver: SolverDP}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Aligner{opts: cfg}
}

// Solver reports the configured solver.
func (a *Aligner) Solver() Solver { return a.opts.Solver }

// Align computes the path, decoding and both duration arrays for item.
// Errors are wrapped with the item id and shapes; errors.Is and errors.As
// still see *InvalidInputError and *UnreachableTerminalError.
//
// Steps:
//  1. CostMatrix (validates the input).
//  2. ShortestPath from cell (0,0).
//  3. ReconstructPath to cell (frames-1, targetLen-1).
//  4. Decode.
//  5. Durations + RepairDurations, MidpointDurations.
func (a *Aligner) Align(item Item) (*Result, error) {
	// 1) Cost matrix
	sh := shape{id: item.ID, targetLen: len(item.Target)}
	if item.Scores != nil {
		sh.frames, sh.vocab = item.Scores.Rows(), item.Scores.Cols()
	}
	cost, err := CostMatrix(item.Scores, item.Target)
	if err != nil {
		return nil, a.wrap(sh, err)
	}

	return a.alignCost(sh, cost)
}

// AlignCost runs steps 2-5 of Align on an already built cost matrix. It is
// the entry point for callers that produce costs directly; non-finite cells
// are treated as impassable.
func (a *Aligner) AlignCost(id string, cost *matrix.Dense) (*Result, error) {
	sh := shape{id: id}
	if cost == nil {
		return nil, a.wrap(sh, invalidf("cost matrix is nil"))
	}
	sh.frames, sh.targetLen = cost.Rows(), cost.Cols()

	return a.alignCost(sh, cost)
}

// shape is the diagnostic context attached to every Align error.
type shape struct {
	id                       string
	frames, vocab, targetLen int
}

func (a *Aligner) alignCost(sh shape, cost *matrix.Dense) (*Result, error) {
	frames, targetLen := cost.Rows(), cost.Cols()

	// 2) Shortest path
	total, prev, err := ShortestPath(cost, a.opts.Solver)
	if err != nil {
		return nil, a.wrap(sh, err)
	}

	// 3) Path
	terminal := frames*targetLen - 1
	if math.IsInf(total, 1) || math.IsNaN(total) {
		return nil, a.wrap(sh, &UnreachableTerminalError{Source: 0, Terminal: terminal})
	}
	path, err := ReconstructPath(prev, 0, terminal)
	if err != nil {
		return nil, a.wrap(sh, err)
	}

	// 4) Decode
	dec, err := Decode(path, cost)
	if err != nil {
		return nil, a.wrap(sh, err)
	}

	// 5) Durations
	durations, err := Durations(dec.MelText, targetLen)
	if err != nil {
		return nil, a.wrap(sh, err)
	}
	repairs := RepairDurations(durations)

	return &Result{
		ID:            sh.id,
		Frames:        frames,
		TargetLen:     targetLen,
		Cost:          total,
		Path:          path,
		MelText:       dec.MelText,
		TextMel:       dec.TextMel,
		BestScore:     dec.BestScore,
		Durations:     durations,
		DurationsAlt:  MidpointDurations(dec.TextMel, frames),
		Repairs:       repairs,
		ZeroDurations: CountZero(durations),
	}, nil
}

// wrap prefixes err with the item id and input shapes.
func (a *Aligner) wrap(sh shape, err error) error {
	return fmt.Errorf("align %q (frames=%d vocab=%d target=%d solver=%s): %w",
		sh.id, sh.frames, sh.vocab, sh.targetLen, a.opts.Solver, err)
}
