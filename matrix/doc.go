// Package matrix provides the dense row-major float64 matrix used to carry
// per-frame score and cost tables through the alignment pipeline.
//
// What:
//
//   - Dense stores r×c values in one flat slice (row-major), so row i
//     occupies data[i*c : (i+1)*c] and is cache-friendly to scan.
//   - NewDense allocates a zero matrix; NewDenseFrom deep-copies a
//     rectangular [][]float64; Wrap adopts an existing flat slice.
//   - At/Set are bounds-checked and return sentinel errors, never panic.
//   - Row returns a read-only view of one row without copying.
//
// Complexity:
//
//   - At, Set, Row:        O(1)
//   - NewDense, Clone:     O(r·c) time and memory
//   - NewDenseFrom:        O(r·c) time and memory
//   - AllFinite:           O(r·c)
//
// Errors:
//
//   - ErrInvalidDimensions: rows or cols is not positive.
//   - ErrIndexOutOfBounds:  row or column index outside [0,r)×[0,c).
//   - ErrNonRectangular:    input rows of differing lengths.
//   - ErrDataLength:        flat slice length differs from rows*cols.
package matrix
