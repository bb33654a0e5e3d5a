// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"fmt"
)

// Sentinel errors for Dense construction and indexing.
// Every message is prefixed with "matrix: " to keep logs greppable.
var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
	ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrNonRectangular indicates that input rows have differing lengths.
	ErrNonRectangular = errors.New("matrix: all rows must have the same length")

	// ErrTooLarge indicates that rows*cols does not fit in an int.
	ErrTooLarge = errors.New("matrix: dimensions overflow")

	// ErrDataLength indicates that a flat backing slice does not hold rows*cols values.
	ErrDataLength = errors.New("matrix: data length does not match dimensions")
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}
