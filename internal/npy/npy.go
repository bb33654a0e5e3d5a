package npy

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/duralign/matrix"
)

// MaxElements bounds the element count of any array read.
var MaxElements = 1 << 28

var (
	// ErrHeader indicates a missing magic string or a malformed header.
	ErrHeader = errors.New("npy: invalid header")

	// ErrDType indicates an element type the caller cannot use.
	ErrDType = errors.New("npy: unsupported dtype")

	// ErrShape indicates an array of the wrong rank or with negative dimensions.
	ErrShape = errors.New("npy: unexpected shape")

	// ErrTooLarge indicates a shape whose element count overflows or
	// exceeds MaxElements.
	ErrTooLarge = errors.New("npy: array too large")

	// ErrShortRead indicates that the data section could not be read in full.
	ErrShortRead = errors.New("npy: short data section")

	// ErrEmptyMatrix indicates a matrix with zero rows or columns.
	ErrEmptyMatrix = errors.New("npy: empty matrix")
)

// Header is the decoded array description of a .npy file.
type Header struct {
	Descr        string
	FortranOrder bool
	Shape        []int
}

// kind is the element type without its byte-order mark, e.g. "f4".
func (h Header) kind() string {
	if len(h.Descr) < 2 {
		return h.Descr
	}
	switch h.Descr[0] {
	case '<', '>', '|', '=':
		return h.Descr[1:]
	}
	return h.Descr
}

// elements returns the product of the shape, or ErrTooLarge when that
// product overflows int or exceeds limit.
func (h Header) elements(limit int) (int, error) {
	n := 1
	for _, d := range h.Shape {
		if d < 0 {
			return 0, fmt.Errorf("%w: %v", ErrShape, h.Shape)
		}
		if d != 0 && n > math.MaxInt/d {
			return 0, fmt.Errorf("%w: shape %v", ErrTooLarge, h.Shape)
		}
		n *= d
	}
	if n > limit {
		return 0, fmt.Errorf("%w: shape %v holds %d elements, limit %d", ErrTooLarge, h.Shape, n, limit)
	}

	return n, nil
}

// reader wraps an npyio reader with the byte size of its source.
type reader struct {
	rd     *npyio.Reader
	header Header
	size   int64 // -1 when unknown
}

// open parses the header of r.
func open(r io.Reader) (*reader, error) {
	rd, err := npyio.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHeader, err)
	}
	d := rd.Header.Descr

	return &reader{
		rd:     rd,
		header: Header{Descr: d.Type, FortranOrder: d.Fortran, Shape: d.Shape},
		size:   sourceSize(r),
	}, nil
}

// sourceSize reports the total size of in-memory readers and regular
// files, or -1.
func sourceSize(r io.Reader) int64 {
	switch v := r.(type) {
	case interface{ Size() int64 }:
		return v.Size()
	case interface{ Stat() (fs.FileInfo, error) }:
		if fi, err := v.Stat(); err == nil && fi.Mode().IsRegular() {
			return fi.Size()
		}
	}

	return -1
}

// count validates the shape for elements of width bytes each, before any
// data is allocated. The whole source size bounds the data section.
func (r *reader) count(width int) (int, error) {
	n, err := r.header.elements(MaxElements)
	if err != nil {
		return 0, err
	}
	if r.size >= 0 && int64(n) > r.size/int64(width) {
		return 0, fmt.Errorf("%w: shape %v needs %d bytes, source holds %d", ErrShortRead, r.header.Shape, int64(n)*int64(width), r.size)
	}

	return n, nil
}

// ReadHeader parses the header of r and leaves r positioned at the data.
func ReadHeader(r io.Reader) (Header, error) {
	rd, err := open(r)
	if err != nil {
		return Header{}, err
	}

	return rd.header, nil
}

// ReadMatrix reads a 2-D float32 or float64 array as a Dense matrix.
// Fortran-ordered data is transposed into row-major order.
func ReadMatrix(r io.Reader) (*matrix.Dense, error) {
	rd, err := open(r)
	if err != nil {
		return nil, err
	}
	h := rd.header
	if len(h.Shape) != 2 {
		return nil, fmt.Errorf("%w: want 2 dimensions, got %v", ErrShape, h.Shape)
	}
	rows, cols := h.Shape[0], h.Shape[1]
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: shape %v", ErrEmptyMatrix, h.Shape)
	}

	var data []float64
	switch h.kind() {
	case "f4":
		if _, err = rd.count(4); err != nil {
			return nil, err
		}
		var raw []float32
		if err = rd.rd.Read(&raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrShortRead, err)
		}
		data = make([]float64, len(raw))
		for k, v := range raw {
			data[k] = float64(v)
		}
	case "f8":
		if _, err = rd.count(8); err != nil {
			return nil, err
		}
		if err = rd.rd.Read(&data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrShortRead, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q, want float32 or float64", ErrDType, h.Descr)
	}

	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d of %d values", ErrShortRead, len(data), rows*cols)
	}
	if h.FortranOrder {
		data = transpose(data, rows, cols)
	}

	return matrix.Wrap(rows, cols, data)
}

// transpose turns column-major data of a rows×cols matrix into row-major.
func transpose(data []float64, rows, cols int) []float64 {
	out := make([]float64, len(data))
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			out[i*cols+j] = data[j*rows+i]
		}
	}

	return out
}

// ReadInts reads a 1-D int32 or int64 array.
func ReadInts(r io.Reader) ([]int, error) {
	rd, err := open(r)
	if err != nil {
		return nil, err
	}
	h := rd.header
	if len(h.Shape) != 1 {
		return nil, fmt.Errorf("%w: want 1 dimension, got %v", ErrShape, h.Shape)
	}

	var out []int
	switch h.kind() {
	case "i4":
		if _, err = rd.count(4); err != nil {
			return nil, err
		}
		var raw []int32
		if err = rd.rd.Read(&raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrShortRead, err)
		}
		out = make([]int, len(raw))
		for k, v := range raw {
			out[k] = int(v)
		}
	case "i8":
		if _, err = rd.count(8); err != nil {
			return nil, err
		}
		var raw []int64
		if err = rd.rd.Read(&raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrShortRead, err)
		}
		out = make([]int, len(raw))
		for k, v := range raw {
			out[k] = int(v)
		}
	default:
		return nil, fmt.Errorf("%w: %q, want int32 or int64", ErrDType, h.Descr)
	}

	return out, nil
}

// WriteInts writes values as a 1-D little-endian int64 array.
func WriteInts(w io.Writer, values []int) error {
	raw := make([]int64, len(values))
	for k, v := range values {
		raw[k] = int64(v)
	}

	return npyio.Write(w, raw)
}

// WriteMatrix writes m as a 2-D little-endian float64 array in C order.
func WriteMatrix(w io.Writer, m *matrix.Dense) error {
	rows, cols := m.Rows(), m.Cols()
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		row, err := m.Row(i)
		if err != nil {
			return err
		}
		data = append(data, row...)
	}

	return npyio.Write(w, mat.NewDense(rows, cols, data))
}
