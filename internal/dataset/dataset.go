// Package dataset maps item ids to score files and target sequences, and
// persists the two duration arrays of every aligned item.
//
// On-disk layout:
//
//	manifest.json               {"<id>": [symbol ids...], ...}
//	<scores_dir>/<id>.npy       float32/float64 [frames, vocab] log-probabilities
//	<durations_dir>/<id>.npy    int64 [targetLen] repaired durations
//	<alt_durations_dir>/<id>.npy int64 [targetLen] midpoint durations
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/katalvlaran/duralign/align"
	"github.com/katalvlaran/duralign/internal/npy"
)

var (
	// ErrUnknownID indicates an id that is not in the manifest.
	ErrUnknownID = errors.New("dataset: id not in manifest")

	// ErrBadID indicates an id that cannot be used as a file name.
	ErrBadID = errors.New("dataset: id is not a valid file name")

	// ErrTooLong marks items whose frame count exceeds MaxFrames.
	ErrTooLong = errors.New("dataset: item exceeds max frames")

	// ErrExists indicates an output file that would be overwritten.
	ErrExists = errors.New("dataset: output already exists")
)

// Manifest maps item id to its target symbol ids.
type Manifest map[string][]int

// LoadManifest reads a JSON manifest from path.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read manifest: %w", err)
	}
	var m Manifest
	if err = json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("dataset: parse manifest %s: %w", path, err)
	}
	for id := range m {
		if err = checkID(id); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: %q", ErrBadID, id)
	}

	return nil
}

// Source loads items listed in a manifest from a directory of score files.
type Source struct {
	Manifest  Manifest
	ScoresDir string
	// MaxFrames skips items with more frames; 0 disables the filter.
	MaxFrames int
}

// IDs returns the ids to process in sorted order. When only is non-empty it
// restricts the result to those ids, each of which must be in the manifest.
func (s *Source) IDs(only []string) ([]string, error) {
	var ids []string
	if len(only) == 0 {
		ids = make([]string, 0, len(s.Manifest))
		for id := range s.Manifest {
			ids = append(ids, id)
		}
	} else {
		seen := make(map[string]bool, len(only))
		for _, id := range only {
			if _, ok := s.Manifest[id]; !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownID, id)
			}
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)

	return ids, nil
}

// ScorePath is the score file of id.
func (s *Source) ScorePath(id string) string {
	return filepath.Join(s.ScoresDir, id+".npy")
}

// Frames reads only the header of id's score file and returns its frame count.
func (s *Source) Frames(id string) (int, error) {
	f, err := os.Open(s.ScorePath(id))
	if err != nil {
		return 0, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	h, err := npy.ReadHeader(f)
	if err != nil {
		return 0, fmt.Errorf("dataset: %s: %w", id, err)
	}
	if len(h.Shape) != 2 {
		return 0, fmt.Errorf("dataset: %s: %w: %v", id, npy.ErrShape, h.Shape)
	}

	return h.Shape[0], nil
}

// Load returns the scores and target of id. Items longer than MaxFrames
// fail with ErrTooLong before the score data is read.
func (s *Source) Load(id string) (align.Item, error) {
	if err := checkID(id); err != nil {
		return align.Item{}, err
	}
	target, ok := s.Manifest[id]
	if !ok {
		return align.Item{}, fmt.Errorf("%w: %q", ErrUnknownID, id)
	}

	if s.MaxFrames > 0 {
		frames, err := s.Frames(id)
		if err != nil {
			return align.Item{}, err
		}
		if frames > s.MaxFrames {
			return align.Item{}, fmt.Errorf("%w: %s has %d frames, max %d", ErrTooLong, id, frames, s.MaxFrames)
		}
	}

	f, err := os.Open(s.ScorePath(id))
	if err != nil {
		return align.Item{}, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	scores, err := npy.ReadMatrix(f)
	if err != nil {
		return align.Item{}, fmt.Errorf("dataset: %s: %w", id, err)
	}

	return align.Item{ID: id, Scores: scores, Target: target}, nil
}
