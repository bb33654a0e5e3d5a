// SPDX-License-Identifier: MIT

package align

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below match them through errors.Is.
var (
	// ErrInvalidInput classifies malformed scores or targets.
	ErrInvalidInput = errors.New("align: invalid input")

	// ErrUnreachableTerminal classifies a terminal cell with no finite path from the source.
	ErrUnreachableTerminal = errors.New("align: terminal unreachable")

	// ErrInvariant reports an internal consistency failure in a decoded path.
	ErrInvariant = errors.New("align: invariant violated")

	// ErrUnknownSolver indicates an unrecognised solver name.
	ErrUnknownSolver = errors.New("align: unknown solver")
)

// InvalidInputError describes why an input pair was rejected.
type InvalidInputError struct {
	Reason string // human-readable cause
	Err    error  // underlying error, may be nil
}

// Error implements error.
func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("align: invalid input: %s: %v", e.Reason, e.Err)
	}

	return "align: invalid input: " + e.Reason
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// Unwrap returns the underlying cause.
func (e *InvalidInputError) Unwrap() error { return e.Err }

// invalidf builds an *InvalidInputError from a format string.
func invalidf(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// UnreachableTerminalError reports that the terminal node cannot be reached
// from the source, e.g. because a non-finite cost blocks every route.
type UnreachableTerminalError struct {
	Source   int // source node id
	Terminal int // terminal node id
}

// Error implements error.
func (e *UnreachableTerminalError) Error() string {
	return fmt.Sprintf("align: terminal node %d unreachable from node %d", e.Terminal, e.Source)
}

// Is reports whether target is ErrUnreachableTerminal.
func (e *UnreachableTerminalError) Is(target error) bool { return target == ErrUnreachableTerminal }
