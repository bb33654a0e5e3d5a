package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/duralign/align"
	"github.com/katalvlaran/duralign/internal/npy"
)

// Writer saves Result.Durations and Result.DurationsAlt as .npy files.
// Distinct ids never share a file, so one Writer serves many goroutines.
type Writer struct {
	DurationsDir    string
	AltDurationsDir string
	Overwrite       bool
}

// Prepare creates both output directories.
func (w *Writer) Prepare() error {
	for _, dir := range []string{w.DurationsDir, w.AltDurationsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dataset: create %s: %w", dir, err)
		}
	}

	return nil
}

// Paths returns the durations and alternative durations file of id.
func (w *Writer) Paths(id string) (durations, alt string) {
	return filepath.Join(w.DurationsDir, id+".npy"), filepath.Join(w.AltDurationsDir, id+".npy")
}

// Done reports whether both output files of id already exist.
func (w *Writer) Done(id string) bool {
	d, a := w.Paths(id)

	return exists(d) && exists(a)
}

// Write stores both arrays of res. Without Overwrite an existing file is
// left untouched and ErrExists is returned.
func (w *Writer) Write(res *align.Result) error {
	if err := checkID(res.ID); err != nil {
		return err
	}
	d, a := w.Paths(res.ID)
	if !w.Overwrite {
		for _, p := range []string{d, a} {
			if exists(p) {
				return fmt.Errorf("%w: %s", ErrExists, p)
			}
		}
	}
	if err := writeAtomic(d, res.Durations); err != nil {
		return err
	}

	return writeAtomic(a, res.DurationsAlt)
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(path string, values []int) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.npy")
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = npy.WriteInts(tmp, values); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("dataset: write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("dataset: close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
