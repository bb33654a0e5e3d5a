// Package npy reads and writes the subset of the NumPy .npy format used by
// the alignment pipeline: 2-D float32/float64 score matrices in, 1-D int64
// duration arrays out.
//
// Parsing and encoding are done by github.com/sbinet/npyio. This package
// adds the shape checks the pipeline relies on: a header is rejected before
// any allocation when its element count overflows, exceeds MaxElements, or
// needs more bytes than the source holds. Fortran-ordered matrices are
// transposed on read; output is little-endian C order.
package npy
