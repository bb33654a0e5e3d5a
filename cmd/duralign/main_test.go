package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/duralign/align"
	"github.com/katalvlaran/duralign/internal/batch"
	"github.com/katalvlaran/duralign/internal/npy"
	"github.com/katalvlaran/duralign/matrix"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeScores stores a frames × 3 matrix that favours symbol i*3/frames.
func writeScores(t *testing.T, path string, frames int) {
	t.Helper()
	m, err := matrix.NewDense(frames, 3)
	require.NoError(t, err)
	for i := 0; i < frames; i++ {
		for k := 0; k < 3; k++ {
			v := -4.0
			if k == i*3/frames {
				v = -0.2
			}
			require.NoError(t, m.Set(i, k, v))
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, npy.WriteMatrix(f, m))
	require.NoError(t, f.Close())
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "duralign dev\n", out)
}

func TestParseTarget(t *testing.T) {
	got, err := parseTarget(" 3, 1,4 ,")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 4}, got)

	_, err = parseTarget("1,x")
	assert.ErrorContains(t, err, `"x"`)
	_, err = parseTarget(" , ")
	assert.Error(t, err)
}

func TestAlignCommand(t *testing.T) {
	dir := t.TempDir()
	scores := filepath.Join(dir, "utt01.npy")
	writeScores(t, scores, 9)
	durations := filepath.Join(dir, "d.npy")

	out, err := execute(t, "align", "--scores", scores, "--target", "0,1,2", "--durations", durations)
	require.NoError(t, err)

	var res align.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "utt01", res.ID)
	assert.Equal(t, 9, res.Frames)
	assert.Len(t, res.Durations, 3)

	f, err := os.Open(durations)
	require.NoError(t, err)
	defer f.Close()
	saved, err := npy.ReadInts(f)
	require.NoError(t, err)
	assert.Equal(t, res.Durations, saved)

	_, err = execute(t, "align", "--scores", scores, "--target", "0,9")
	assert.ErrorIs(t, err, align.ErrInvalidInput)

	_, err = execute(t, "align", "--scores", scores)
	assert.Error(t, err, "--target is required")
}

// writeConfig lays out a two-item dataset and returns the config path.
func writeConfig(t *testing.T, extra string) (cfgPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	scores := filepath.Join(dir, "scores")
	require.NoError(t, os.MkdirAll(scores, 0o755))
	writeScores(t, filepath.Join(scores, "a.npy"), 6)
	writeScores(t, filepath.Join(scores, "b.npy"), 12)

	manifest := filepath.Join(dir, "text.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{"a": [0, 1, 2], "b": [0, 2, 7]}`), 0o644))

	cfg := fmt.Sprintf(`
dataset:
  manifest: %s
  scores_dir: %s
output:
  durations_dir: %s
  alt_durations_dir: %s
%s`, manifest, scores, filepath.Join(dir, "alg"), filepath.Join(dir, "alg2"), extra)
	cfgPath = filepath.Join(dir, "duralign.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	return cfgPath, dir
}

func TestRunCommand(t *testing.T) {
	cfgPath, dir := writeConfig(t, "cache:\n  in_memory: true\n")

	out, err := execute(t, "run", "-c", cfgPath, "--workers", "2", "--log-level", "error")
	require.NoError(t, err)

	var sum batch.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Aligned)
	assert.Equal(t, 1, sum.Failed)
	assert.FileExists(t, filepath.Join(dir, "alg", "a.npy"))
	assert.FileExists(t, filepath.Join(dir, "alg2", "a.npy"))

	_, err = execute(t, "run", "-c", cfgPath, "--strict", "--overwrite", "--log-level", "error")
	assert.ErrorIs(t, err, errItemsFailed)

	out, err = execute(t, "run", "-c", cfgPath, "--ids", "a", "--log-level", "error")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 1, sum.Total)
	assert.Equal(t, 1, sum.Skipped)

	_, err = execute(t, "run", "-c", cfgPath, "--solver", "astar")
	assert.ErrorContains(t, err, "aligner.solver")
}

func TestValidateConfig(t *testing.T) {
	cfgPath, _ := writeConfig(t, "aligner:\n  solver: dijkstra\n")
	out, err := execute(t, "validate-config", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "solver: dijkstra")
	assert.Contains(t, out, "workers: 4")

	_, err = execute(t, "validate-config", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
