// Package observe provides the observability primitives of duralign:
// OpenTelemetry metrics with a Prometheus bridge, batch tracing, and
// structured logging.
//
// Tests should build [Metrics] with [NewMetrics] over a private
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/katalvlaran/duralign/align"
)

// meterName is the instrumentation scope name used for all duralign metrics.
const meterName = "github.com/katalvlaran/duralign"

// Outcome labels for ItemsProcessed.
const (
	OutcomeAligned = "aligned"
	OutcomeCached  = "cached"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Metrics holds the instruments recorded by a batch run. All fields are safe
// for concurrent use.
type Metrics struct {
	// ItemsProcessed counts items by attribute.String("outcome", ...).
	ItemsProcessed metric.Int64Counter

	// AlignDuration tracks the wall time of one alignment. Use with
	// attribute.String("solver", ...).
	AlignDuration metric.Float64Histogram

	// Frames tracks the frame count of aligned items.
	Frames metric.Int64Histogram

	// Repairs counts durations changed by the zero-duration repair pass.
	Repairs metric.Int64Counter

	// ZeroDurations counts positions still at zero after repair.
	ZeroDurations metric.Int64Counter

	// ActiveWorkers tracks workers currently aligning an item.
	ActiveWorkers metric.Int64UpDownCounter
}

var latencyBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
}

var frameBuckets = []float64{50, 100, 200, 400, 800, 1200, 1600, 2400, 3200}

// NewMetrics creates every instrument on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ItemsProcessed, err = m.Int64Counter("duralign.items",
		metric.WithDescription("Items handled by a batch run, by outcome."),
	); err != nil {
		return nil, err
	}
	if met.AlignDuration, err = m.Float64Histogram("duralign.align.duration",
		metric.WithDescription("Latency of one alignment."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Frames, err = m.Int64Histogram("duralign.align.frames",
		metric.WithDescription("Frame count of aligned items."),
		metric.WithExplicitBucketBoundaries(frameBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Repairs, err = m.Int64Counter("duralign.durations.repairs",
		metric.WithDescription("Durations changed by the zero-duration repair."),
	); err != nil {
		return nil, err
	}
	if met.ZeroDurations, err = m.Int64Counter("duralign.durations.zero",
		metric.WithDescription("Positions left at zero duration after repair."),
	); err != nil {
		return nil, err
	}
	if met.ActiveWorkers, err = m.Int64UpDownCounter("duralign.batch.active_workers",
		metric.WithDescription("Workers currently aligning an item."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// RecordOutcome increments ItemsProcessed for outcome.
func (m *Metrics) RecordOutcome(ctx context.Context, outcome string) {
	m.ItemsProcessed.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordAlignment records the latency and duration statistics of res.
func (m *Metrics) RecordAlignment(ctx context.Context, solver string, elapsed time.Duration, res *align.Result) {
	m.AlignDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("solver", solver)))
	m.Frames.Record(ctx, int64(res.Frames))
	if res.Repairs > 0 {
		m.Repairs.Add(ctx, int64(res.Repairs))
	}
	if res.ZeroDurations > 0 {
		m.ZeroDurations.Add(ctx, int64(res.ZeroDurations))
	}
}
