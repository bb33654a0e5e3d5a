package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/duralign/align"
	"github.com/katalvlaran/duralign/internal/npy"
	"github.com/katalvlaran/duralign/matrix"
)

// fixture writes a manifest and one score file per entry of frames.
func fixture(t *testing.T, frames map[string]int) *Source {
	t.Helper()
	dir := t.TempDir()
	scores := filepath.Join(dir, "scores")
	require.NoError(t, os.MkdirAll(scores, 0o755))

	m := Manifest{}
	for id, n := range frames {
		m[id] = []int{0, 1}
		sc, err := matrix.NewDense(n, 3)
		require.NoError(t, err)
		f, err := os.Create(filepath.Join(scores, id+".npy"))
		require.NoError(t, err)
		require.NoError(t, npy.WriteMatrix(f, sc))
		require.NoError(t, f.Close())
	}

	return &Source{Manifest: m, ScoresDir: scores}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"b": [1, 2], "a": [3]}`), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, Manifest{"a": {3}, "b": {1, 2}}, m)

	require.NoError(t, os.WriteFile(path, []byte(`{"../x": [1]}`), 0o644))
	_, err = LoadManifest(path)
	assert.ErrorIs(t, err, ErrBadID)

	require.NoError(t, os.WriteFile(path, []byte(`[1, 2]`), 0o644))
	_, err = LoadManifest(path)
	assert.Error(t, err)

	_, err = LoadManifest(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestSource_IDs(t *testing.T) {
	s := &Source{Manifest: Manifest{"c": nil, "a": nil, "b": nil}}
	ids, err := s.IDs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	ids, err = s.IDs([]string{"c", "a", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids)

	_, err = s.IDs([]string{"zz"})
	assert.ErrorIs(t, err, ErrUnknownID)
}

func TestSource_LoadAndMaxFrames(t *testing.T) {
	s := fixture(t, map[string]int{"short": 4, "long": 12})
	s.MaxFrames = 10

	item, err := s.Load("short")
	require.NoError(t, err)
	assert.Equal(t, "short", item.ID)
	assert.Equal(t, 4, item.Scores.Rows())
	assert.Equal(t, []int{0, 1}, item.Target)

	_, err = s.Load("long")
	assert.ErrorIs(t, err, ErrTooLong)

	n, err := s.Frames("long")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = s.Load("nope")
	assert.ErrorIs(t, err, ErrUnknownID)
}

func TestWriter_WriteAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{
		DurationsDir:    filepath.Join(dir, "alg"),
		AltDurationsDir: filepath.Join(dir, "alg2"),
	}
	require.NoError(t, w.Prepare())

	res := &align.Result{ID: "x", Durations: []int{1, 2}, DurationsAlt: []int{2, 1}}
	require.NoError(t, w.Write(res))
	assert.True(t, w.Done("x"))

	d, a := w.Paths("x")
	for path, want := range map[string][]int{d: {1, 2}, a: {2, 1}} {
		f, err := os.Open(path)
		require.NoError(t, err)
		got, err := npy.ReadInts(f)
		_ = f.Close()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.ErrorIs(t, w.Write(res), ErrExists)
	w.Overwrite = true
	assert.NoError(t, w.Write(res))

	assert.ErrorIs(t, w.Write(&align.Result{ID: "a/b"}), ErrBadID)
}
