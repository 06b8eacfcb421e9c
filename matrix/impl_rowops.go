// SPDX-License-Identifier: MIT

// Package matrix - mutating core.
//
// Purpose:
//   - In-place row/column operations used by the factorizations (pivoting,
//     elimination, echelon forms). These are the ONLY public methods that
//     mutate a matrix besides Set/Apply; the arithmetic facade always copies.
//   - Shape transforms that return fresh matrices (Transpose, Conj, ...).
//
// AI-Hints:
//   - Clone first when the caller's operand must survive: kernels here do not copy.

package matrix

import (
	"fmt"
	"math/cmplx"
)

const (
	ctxSwapRows     = "SwapRows"
	ctxSwapCols     = "SwapCols"
	ctxScaleRow     = "ScaleRow"
	ctxAddRow       = "AddRow"
	ctxSetSubMatrix = "SetSubMatrix"
	opTranspose     = "Transpose"
)

// SwapRows exchanges rows i and k in place. Swapping a row with itself is a no-op.
// Errors: ErrOutOfRange. Complexity: O(c).
func (m *Dense) SwapRows(i, k int) error {
	if i < 0 || i >= m.r || k < 0 || k >= m.r {
		return denseErrorf(ctxSwapRows, i, k, ErrOutOfRange)
	}
	if i == k {
		return nil
	}
	m.swapRows(i, k)

	return nil
}

// swapRows is the unchecked kernel used by factorizations.
func (m *Dense) swapRows(i, k int) {
	ri := m.data[i*m.c : (i+1)*m.c]
	rk := m.data[k*m.c : (k+1)*m.c]
	for j := range ri {
		ri[j], rk[j] = rk[j], ri[j]
	}
}

// SwapCols exchanges columns j and k in place.
// Errors: ErrOutOfRange. Complexity: O(r).
func (m *Dense) SwapCols(j, k int) error {
	if j < 0 || j >= m.c || k < 0 || k >= m.c {
		return denseErrorf(ctxSwapCols, j, k, ErrOutOfRange)
	}
	if j != k {
		m.swapCols(j, k)
	}

	return nil
}

func (m *Dense) swapCols(j, k int) {
	for i := 0; i < m.r; i++ {
		b := i * m.c
		m.data[b+j], m.data[b+k] = m.data[b+k], m.data[b+j]
	}
}

// ScaleRow multiplies row i by alpha in place.
func (m *Dense) ScaleRow(i int, alpha complex128) error {
	if i < 0 || i >= m.r {
		return denseErrorf(ctxScaleRow, i, 0, ErrOutOfRange)
	}
	m.scaleRow(i, alpha)

	return nil
}

// scaleRow is the unchecked kernel behind ScaleRow.
func (m *Dense) scaleRow(i int, alpha complex128) {
	row := m.data[i*m.c : (i+1)*m.c]
	for j := range row {
		row[j] *= alpha
	}
}

// AddRow performs row[dst] += k * row[src] in place (the elementary
// elimination step).
func (m *Dense) AddRow(dst, src int, k complex128) error {
	if dst < 0 || dst >= m.r || src < 0 || src >= m.r {
		return denseErrorf(ctxAddRow, dst, src, ErrOutOfRange)
	}
	m.addRow(dst, src, k, 0)

	return nil
}

// addRow applies row[dst][from:] += k * row[src][from:].
func (m *Dense) addRow(dst, src int, k complex128, from int) {
	d := m.data[dst*m.c : (dst+1)*m.c]
	s := m.data[src*m.c : (src+1)*m.c]
	for j := from; j < m.c; j++ {
		d[j] += k * s[j]
	}
}

// SetSubMatrix overwrites the block starting at (r0, c0) with block.
// Implementation:
//   - Stage 1: open a View of block's shape at (r0, c0) (bounds checked).
//   - Stage 2: write every element through the view.
//
// Errors:
//   - ErrNilMatrix; ErrBadShape when the block does not fit.
func (m *Dense) SetSubMatrix(r0, c0 int, block Matrix) error {
	if err := ValidateNotNil(block); err != nil {
		return fmt.Errorf("Dense.%s: %w", ctxSetSubMatrix, err)
	}
	src := asDense(block)
	view, err := m.View(r0, c0, src.r, src.c)
	if err != nil {
		return fmt.Errorf("Dense.%s: %w", ctxSetSubMatrix, err)
	}
	var i, j int
	for i = 0; i < src.r; i++ {
		for j = 0; j < src.c; j++ {
			if err = view.Set(i, j, src.data[i*src.c+j]); err != nil {
				return fmt.Errorf("Dense.%s: %w", ctxSetSubMatrix, err)
			}
		}
	}

	return nil
}

// Transpose returns a new matrix t with t[j,i] = m[i,j].
//
// Errors:
//   - ErrNilMatrix; ErrEmptyMatrix for a matrix without elements.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotEmpty(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	return transpose(asDense(m), false), nil
}

// ConjTranspose returns the conjugate (Hermitian) transpose mᴴ.
// Empty input yields an empty result of swapped shape.
func ConjTranspose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ConjTranspose", err)
	}

	return transpose(asDense(m), true), nil
}

// transpose builds mᵀ or mᴴ.
func transpose(m *Dense, conj bool) *Dense {
	out := newDense(m.c, m.r)
	var i, j int
	var v complex128
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			v = m.data[i*m.c+j]
			if conj {
				v = cmplx.Conj(v)
			}
			out.data[j*m.r+i] = v
		}
	}

	return out
}

// Conj returns the element-wise complex conjugate.
func Conj(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("Conj", err)
	}
	out := cloneDense(m)
	for k, v := range out.data {
		out.data[k] = cmplx.Conj(v)
	}

	return out, nil
}

// RealPart returns a matrix holding real(m[i,j]).
func RealPart(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("RealPart", err)
	}
	out := cloneDense(m)
	for k, v := range out.data {
		out.data[k] = complex(real(v), 0)
	}

	return out, nil
}

// ImagPart returns a matrix holding imag(m[i,j]) as real values.
func ImagPart(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ImagPart", err)
	}
	out := cloneDense(m)
	for k, v := range out.data {
		out.data[k] = complex(imag(v), 0)
	}

	return out, nil
}
