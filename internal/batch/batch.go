// Package batch aligns every item of a dataset on a bounded worker pool.
//
// One item's failure never stops the run: bad inputs, unreachable
// terminals and over-long items are logged, counted and skipped. Only an
// output write failure or context cancellation aborts the batch.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/duralign/align"
	"github.com/katalvlaran/duralign/internal/dataset"
	"github.com/katalvlaran/duralign/internal/observe"
	"github.com/katalvlaran/duralign/internal/store"
)

const tracerName = "github.com/katalvlaran/duralign/internal/batch"

// ErrNoWorkers indicates a Runner configured with fewer than one worker.
var ErrNoWorkers = errors.New("batch: workers must be >= 1")

// Runner wires the dataset, the aligner and the optional cache and metrics.
// Cache, Metrics and Logger may be nil.
type Runner struct {
	Source  *dataset.Source
	Writer  *dataset.Writer
	Aligner *align.Aligner
	Cache   *store.Store
	Metrics *observe.Metrics
	Logger  *slog.Logger
	Workers int
}

// Failure records why one item was not aligned.
type Failure struct {
	ID  string `json:"id"`
	Err string `json:"error"`
}

// Summary reports the outcome of a run.
type Summary struct {
	RunID    string        `json:"run_id"`
	Total    int           `json:"total"`
	Aligned  int           `json:"aligned"`
	Cached   int           `json:"cached"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
	Failures []Failure     `json:"failures,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
}

// tally is the shared mutable state of one run.
type tally struct {
	aligned, cached, skipped atomic.Int64

	mu       sync.Mutex
	failures []Failure
}

func (t *tally) fail(id string, err error) {
	t.mu.Lock()
	t.failures = append(t.failures, Failure{ID: id, Err: err.Error()})
	t.mu.Unlock()
}

// Run aligns ids and writes their durations. The returned Summary is
// always non-nil; the error is non-nil only when the run was aborted.
//
// Steps:
//  1. Prepare output directories.
//  2. Fan ids out to at most Workers goroutines.
//  3. Per item: skip finished, load, consult cache, align, write.
//  4. Collect counts, sorted failures and elapsed time.
func (r *Runner) Run(ctx context.Context, ids []string) (*Summary, error) {
	start := time.Now()
	sum := &Summary{RunID: uuid.NewString(), Total: len(ids)}
	if r.Workers < 1 {
		return sum, ErrNoWorkers
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("run_id", sum.RunID)

	// 1) Outputs
	if err := r.Writer.Prepare(); err != nil {
		return sum, err
	}

	logger.Info("batch starting",
		"items", len(ids),
		"workers", r.Workers,
		"solver", r.Aligner.Solver(),
		"cache", r.Cache != nil,
	)

	// 2) Pool
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "batch.run", trace.WithAttributes(
		attribute.String("run_id", sum.RunID),
		attribute.Int("items", len(ids)),
	))
	defer span.End()

	var t tally
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)
	for _, id := range ids {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return r.item(gctx, tracer, logger, &t, id)
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	// 4) Summary
	sum.Aligned = int(t.aligned.Load())
	sum.Cached = int(t.cached.Load())
	sum.Skipped = int(t.skipped.Load())
	sort.Slice(t.failures, func(i, j int) bool { return t.failures[i].ID < t.failures[j].ID })
	sum.Failures = t.failures
	sum.Failed = len(t.failures)
	sum.Elapsed = time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("batch aborted", "err", err, "aligned", sum.Aligned, "failed", sum.Failed)
		return sum, err
	}

	logger.Info("batch finished",
		"aligned", sum.Aligned,
		"cached", sum.Cached,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
		"elapsed", sum.Elapsed,
	)

	return sum, nil
}

// item processes one id. A non-nil return aborts the run.
func (r *Runner) item(ctx context.Context, tracer trace.Tracer, logger *slog.Logger, t *tally, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, span := tracer.Start(ctx, "batch.item", trace.WithAttributes(attribute.String("id", id)))
	defer span.End()

	if r.Metrics != nil {
		r.Metrics.ActiveWorkers.Add(ctx, 1)
		defer r.Metrics.ActiveWorkers.Add(ctx, -1)
	}
	log := logger.With("id", id)

	// 3) Item pipeline
	if !r.Writer.Overwrite && r.Writer.Done(id) {
		log.Debug("already aligned, skipping")
		t.skipped.Add(1)
		r.outcome(ctx, observe.OutcomeSkipped)
		return nil
	}

	item, err := r.Source.Load(id)
	if errors.Is(err, dataset.ErrTooLong) {
		log.Info("skipping long item", "err", err)
		t.skipped.Add(1)
		r.outcome(ctx, observe.OutcomeSkipped)
		return nil
	}
	if err != nil {
		return r.failed(ctx, span, log, t, id, err)
	}

	res, cached, err := r.align(ctx, log, item)
	if err != nil {
		return r.failed(ctx, span, log, t, id, err)
	}

	if err = r.Writer.Write(res); err != nil {
		if errors.Is(err, dataset.ErrExists) {
			return r.failed(ctx, span, log, t, id, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("batch: write %s: %w", id, err)
	}

	if cached {
		t.cached.Add(1)
		r.outcome(ctx, observe.OutcomeCached)
	} else {
		t.aligned.Add(1)
		r.outcome(ctx, observe.OutcomeAligned)
	}
	if res.ZeroDurations > 0 {
		log.Warn("zero durations remain after repair", "count", res.ZeroDurations)
	}
	log.Debug("aligned", "frames", res.Frames, "target", res.TargetLen, "cost", res.Cost, "cached", cached)

	return nil
}

// align returns the cached result of item or computes and caches it.
func (r *Runner) align(ctx context.Context, log *slog.Logger, item align.Item) (*align.Result, bool, error) {
	var key store.Key
	if r.Cache != nil {
		key = store.KeyFor(item, r.Aligner.Solver())
		res, ok, err := r.Cache.Get(key)
		if err != nil {
			log.Warn("cache read failed", "err", err)
		} else if ok {
			return res, true, nil
		}
	}

	began := time.Now()
	res, err := r.Aligner.Align(item)
	if err != nil {
		return nil, false, err
	}
	if r.Metrics != nil {
		r.Metrics.RecordAlignment(ctx, r.Aligner.Solver().String(), time.Since(began), res)
	}

	if r.Cache != nil {
		if err = r.Cache.Put(key, res); err != nil {
			log.Warn("cache write failed", "err", err)
		}
	}

	return res, false, nil
}

func (r *Runner) failed(ctx context.Context, span trace.Span, log *slog.Logger, t *tally, id string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	log.Error("item failed", "err", err)
	t.fail(id, err)
	r.outcome(ctx, observe.OutcomeFailed)

	return nil
}

func (r *Runner) outcome(ctx context.Context, outcome string) {
	if r.Metrics != nil {
		r.Metrics.RecordOutcome(ctx, outcome)
	}
}
