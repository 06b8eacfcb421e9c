// SPDX-License-Identifier: MIT

// Package matrix - constructors from explicit data and shape-only factories.
//
// Purpose:
//   - Build *Dense from nested rows, flat buffers, vectors or a shape.
//   - Validate rectangularity once at the boundary so kernels never see ragged data.
//
// AI-Hints:
//   - Real data goes through NewFromRows/NewFromFlat; the values are lifted to complex128.
//   - Pass WithValidateNaNInf() to reject NaN/Inf at construction time.

package matrix

import (
	"fmt"
)

const (
	opNewFromRows        = "NewFromRows"
	opNewFromComplexRows = "NewFromComplexRows"
	opNewFromFlat        = "NewFromFlat"
	opNewFromFlatComplex = "NewFromFlatComplex"
	opNewZeros           = "NewZeros"
	opNewOnes            = "NewOnes"
	opNewIdentity        = "NewIdentity"
)

// matrixErrorf wraps err with the operation tag: "<Op>: <err>".
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// NewFromRows builds a matrix from nested real rows.
// Implementation:
//   - Stage 1: rows[0] fixes the column count; every other row must match.
//   - Stage 2: lift each value to complex128 in row-major order.
//
// Errors:
//   - ErrBadShape for ragged rows; ErrNaNInf under WithValidateNaNInf.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewFromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	out := newDense(r, c)
	out.validateNaNInf = o.validateNaNInf
	for i, row := range rows {
		if len(row) != c {
			return nil, matrixErrorf(opNewFromRows, fmt.Errorf("row %d has %d values, want %d: %w", i, len(row), c, ErrBadShape))
		}
		for j, v := range row {
			out.data[i*c+j] = complex(v, 0)
		}
	}
	if o.validateNaNInf {
		if err := ValidateFinite(out); err != nil {
			return nil, matrixErrorf(opNewFromRows, err)
		}
	}

	return out, nil
}

// NewFromComplexRows builds a matrix from nested complex rows.
// Errors: ErrBadShape for ragged rows; ErrNaNInf under WithValidateNaNInf.
func NewFromComplexRows(rows [][]complex128, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	out := newDense(r, c)
	out.validateNaNInf = o.validateNaNInf
	for i, row := range rows {
		if len(row) != c {
			return nil, matrixErrorf(opNewFromComplexRows, fmt.Errorf("row %d has %d values, want %d: %w", i, len(row), c, ErrBadShape))
		}
		copy(out.data[i*c:(i+1)*c], row)
	}
	if o.validateNaNInf {
		if err := ValidateFinite(out); err != nil {
			return nil, matrixErrorf(opNewFromComplexRows, err)
		}
	}

	return out, nil
}

// NewFromFlat builds an r×c matrix from a row-major real buffer.
// Errors: ErrInvalidDimensions, ErrBadShape when len(data) != r*c.
func NewFromFlat(r, c int, data []float64) (*Dense, error) {
	if r < 0 || c < 0 {
		return nil, matrixErrorf(opNewFromFlat, ErrInvalidDimensions)
	}
	if len(data) != r*c {
		return nil, matrixErrorf(opNewFromFlat, ErrBadShape)
	}
	out := newDense(r, c)
	for k, v := range data {
		out.data[k] = complex(v, 0)
	}

	return out, nil
}

// NewFromFlatComplex builds an r×c matrix from a row-major complex buffer (copied).
func NewFromFlatComplex(r, c int, data []complex128) (*Dense, error) {
	if r < 0 || c < 0 {
		return nil, matrixErrorf(opNewFromFlatComplex, ErrInvalidDimensions)
	}
	if len(data) != r*c {
		return nil, matrixErrorf(opNewFromFlatComplex, ErrBadShape)
	}
	out := newDense(r, c)
	copy(out.data, data)

	return out, nil
}

// NewZeros returns an r×c zero matrix.
func NewZeros(r, c int) (*Dense, error) {
	m, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opNewZeros, err)
	}

	return m, nil
}

// NewOnes returns an r×c matrix filled with 1.
func NewOnes(r, c int) (*Dense, error) {
	m, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opNewOnes, err)
	}
	for k := range m.data {
		m.data[k] = 1
	}

	return m, nil
}

// NewIdentity returns the n×n identity.
func NewIdentity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opNewIdentity, err)
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// identity is NewIdentity for callers that already validated n >= 0.
func identity(n int) *Dense {
	m := newDense(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m
}

// NewDiagonal returns a square matrix with d on the main diagonal.
func NewDiagonal(d []complex128) *Dense {
	n := len(d)
	m := newDense(n, n)
	for i, v := range d {
		m.data[i*n+i] = v
	}

	return m
}

// NewDiagonalReal is NewDiagonal for real values.
func NewDiagonalReal(d []float64) *Dense {
	n := len(d)
	m := newDense(n, n)
	for i, v := range d {
		m.data[i*n+i] = complex(v, 0)
	}

	return m
}

// NewColumn returns an n×1 column vector holding a copy of x.
func NewColumn(x []complex128) *Dense {
	m := newDense(len(x), 1)
	copy(m.data, x)

	return m
}

// NewRow returns a 1×n row vector holding a copy of x.
func NewRow(x []complex128) *Dense {
	m := newDense(1, len(x))
	copy(m.data, x)

	return m
}
