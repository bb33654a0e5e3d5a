package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
// A Dense is not safe for concurrent mutation; the alignment pipeline only
// writes to a matrix while building it and treats it as read-only afterwards.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

// checkDims returns rows*cols, or an error when either is non-positive or
// the product overflows int.
func checkDims(method string, rows, cols int) (int, error) {
	if rows <= 0 || cols <= 0 {
		return 0, fmt.Errorf("%s(%d,%d): %w", method, rows, cols, ErrInvalidDimensions)
	}
	if rows > math.MaxInt/cols {
		return 0, fmt.Errorf("%s(%d,%d): %w", method, rows, cols, ErrTooLarge)
	}

	return rows * cols, nil
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0 and rows*cols fits in an int.
// Stage 2 (Prepare): allocate flat backing slice.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	n, err := checkDims("NewDense", rows, cols)
	if err != nil {
		return nil, err
	}

	return &Dense{r: rows, c: cols, data: make([]float64, n)}, nil
}

// NewDenseFrom deep-copies a rectangular 2-D slice into a new Dense.
// Stage 1 (Validate): non-empty and rectangular.
// Stage 2 (Execute): copy each row into its slot of the flat slice.
// Complexity: O(r*c) time and memory.
func NewDenseFrom(values [][]float64) (*Dense, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	rows, cols := len(values), len(values[0])
	m := &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}
	for i, row := range values {
		if len(row) != cols {
			return nil, fmt.Errorf("NewDenseFrom: row %d has %d values, want %d: %w", i, len(row), cols, ErrNonRectangular)
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}

	return m, nil
}

// Wrap adopts data as the row-major backing store of a rows×cols matrix
// without copying. The caller must not modify data afterwards.
// Complexity: O(1).
func Wrap(rows, cols int, data []float64) (*Dense, error) {
	n, err := checkDims("Wrap", rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("Wrap(%d,%d): got %d values: %w", rows, cols, len(data), ErrDataLength)
	}

	return &Dense{r: rows, c: cols, data: data}, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrIndexOutOfBounds.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Row returns row i as a slice sharing the matrix storage.
// Callers must treat the slice as read-only. Returns ErrIndexOutOfBounds
// when i is outside [0, Rows()).
// Complexity: O(1).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf("Row", i, 0, ErrIndexOutOfBounds)
	}

	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c], nil
}

// AllFinite reports whether every element is neither NaN nor ±Inf.
// On failure it also returns the first offending (row, col).
// Complexity: O(r*c).
func (m *Dense) AllFinite() (ok bool, row, col int) {
	for idx, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false, idx / m.c, idx % m.c
		}
	}

	return true, -1, -1
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() *Dense {
	copyData := make([]float64, len(m.data))
	copy(copyData, m.data)

	return &Dense{r: m.r, c: m.c, data: copyData}
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.c; j++ {
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
			if j < m.c-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
