package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/katalvlaran/duralign/align"
	"github.com/katalvlaran/duralign/internal/config"
	"github.com/katalvlaran/duralign/internal/dataset"
	"github.com/katalvlaran/duralign/internal/npy"
	"github.com/katalvlaran/duralign/internal/observe"
	"github.com/katalvlaran/duralign/internal/store"
	"github.com/katalvlaran/duralign/matrix"
)

type fixture struct {
	dir    string
	source *dataset.Source
	writer *dataset.Writer
}

// newFixture lays out four items:
//
//	good     6 frames, target [0 1 2]
//	oov      target refers to symbol 7 of a 3-symbol vocabulary
//	long     50 frames with MaxFrames 10
//	missing  manifest entry without a score file
func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	scores := filepath.Join(dir, "scores")
	require.NoError(t, os.MkdirAll(scores, 0o755))

	write := func(id string, frames int) {
		m, err := matrix.NewDense(frames, 3)
		require.NoError(t, err)
		for i := 0; i < frames; i++ {
			for k := 0; k < 3; k++ {
				v := -5.0
				if k == i*3/frames {
					v = -0.1
				}
				require.NoError(t, m.Set(i, k, v))
			}
		}
		f, err := os.Create(filepath.Join(scores, id+".npy"))
		require.NoError(t, err)
		require.NoError(t, npy.WriteMatrix(f, m))
		require.NoError(t, f.Close())
	}
	write("good", 6)
	write("oov", 4)
	write("long", 50)

	return &fixture{
		dir: dir,
		source: &dataset.Source{
			Manifest: dataset.Manifest{
				"good":    {0, 1, 2},
				"oov":     {0, 7},
				"long":    {0, 1},
				"missing": {1},
			},
			ScoresDir: scores,
			MaxFrames: 10,
		},
		writer: &dataset.Writer{
			DurationsDir:    filepath.Join(dir, "alg"),
			AltDurationsDir: filepath.Join(dir, "alg2"),
		},
	}
}

func (f *fixture) runner(opts ...func(*Runner)) *Runner {
	r := &Runner{
		Source:  f.source,
		Writer:  f.writer,
		Aligner: align.New(),
		Workers: 2,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (f *fixture) ids(t *testing.T) []string {
	t.Helper()
	ids, err := f.source.IDs(nil)
	require.NoError(t, err)
	return ids
}

func readInts(t *testing.T, path string) []int {
	t.Helper()
	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()
	v, err := npy.ReadInts(fh)
	require.NoError(t, err)
	return v
}

func TestRun_IsolatesFailures(t *testing.T) {
	f := newFixture(t)
	var logs bytes.Buffer
	r := f.runner(func(r *Runner) { r.Logger = observe.NewLogger(config.LogDebug, &logs) })

	sum, err := r.Run(context.Background(), f.ids(t))
	require.NoError(t, err)

	assert.NotEmpty(t, sum.RunID)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 1, sum.Aligned)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 2, sum.Failed)
	require.Len(t, sum.Failures, 2)
	assert.Equal(t, "missing", sum.Failures[0].ID)
	assert.Equal(t, "oov", sum.Failures[1].ID)
	assert.Contains(t, sum.Failures[1].Err, "invalid input")

	d, a := f.writer.Paths("good")
	durations := readInts(t, d)
	alt := readInts(t, a)
	require.Len(t, durations, 3)
	require.Len(t, alt, 3)
	assert.Equal(t, 6, durations[0]+durations[1]+durations[2])
	assert.Equal(t, 6, alt[0]+alt[1]+alt[2])
	assert.NotContains(t, durations, 0)
	assert.False(t, f.writer.Done("oov"))

	assert.Contains(t, logs.String(), "run_id="+sum.RunID)
	assert.Contains(t, logs.String(), "item failed")
}

func TestRun_SkipsFinishedUnlessOverwrite(t *testing.T) {
	f := newFixture(t)
	ids := []string{"good"}

	_, err := f.runner().Run(context.Background(), ids)
	require.NoError(t, err)

	sum, err := f.runner().Run(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Aligned)
	assert.Equal(t, 1, sum.Skipped)

	f.writer.Overwrite = true
	sum, err = f.runner().Run(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Aligned)
}

func TestRun_UsesCache(t *testing.T) {
	f := newFixture(t)
	f.writer.Overwrite = true
	cache, err := store.Open(store.Config{InMemory: true})
	require.NoError(t, err)
	defer cache.Close()

	withCache := func(r *Runner) { r.Cache = cache }
	ids := []string{"good"}

	sum, err := f.runner(withCache).Run(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Aligned)
	assert.Equal(t, 0, sum.Cached)

	sum, err = f.runner(withCache).Run(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Aligned)
	assert.Equal(t, 1, sum.Cached)

	// Another solver misses the cache.
	sum, err = f.runner(withCache, func(r *Runner) {
		r.Aligner = align.New(align.WithSolver(align.SolverDijkstra))
	}).Run(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Aligned)
}

func TestRun_RecordsMetrics(t *testing.T) {
	f := newFixture(t)
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())
	m, err := observe.NewMetrics(mp)
	require.NoError(t, err)

	_, err = f.runner(func(r *Runner) { r.Metrics = m }).Run(context.Background(), f.ids(t))
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name != "duralign.items" {
				continue
			}
			for _, dp := range md.Data.(metricdata.Sum[int64]).DataPoints {
				total += dp.Value
			}
		}
	}
	assert.Equal(t, int64(4), total)
}

func TestRun_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := f.runner().Run(ctx, f.ids(t))
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, sum)
	assert.Equal(t, 0, sum.Aligned)
}

func TestRun_Errors(t *testing.T) {
	f := newFixture(t)
	_, err := f.runner(func(r *Runner) { r.Workers = 0 }).Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoWorkers)

	blocker := filepath.Join(f.dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	f.writer.DurationsDir = filepath.Join(blocker, "alg")
	_, err = f.runner().Run(context.Background(), f.ids(t))
	assert.Error(t, err)
}
