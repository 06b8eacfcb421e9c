// SPDX-License-Identifier: MIT

// Package matrix - reductions: norms, rank, echelon forms, sums.
//
// Purpose:
//   - Norm(A, kind) over the six NormKind variants; the spectral and trace
//     norms come from the SVD, the rest from one pass over the elements.
//   - Rank/Nullity via singular values (rank + nullity == cols).
//   - RowEchelon/ReducedRowEchelon built on the mutating row core
//     (swapRows, ScaleRow, addRow).
//   - Trace, Sum along axes, offset diagonal and anti-diagonal sums.
//
// Notes:
//   - Magnitudes are fed to gonum/floats as real slices: |a_ij| for the
//     induced norms, interleaved (re, im) pairs for the Frobenius norm.

package matrix

import (
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

const (
	opNorm     = "Norm"
	opRank     = "Rank"
	opNullity  = "Nullity"
	opEchelon  = "RowEchelon"
	opRREF     = "ReducedRowEchelon"
	opTrace    = "Trace"
	opSum      = "Sum"
	opDiagSum  = "DiagonalSum"
	opAntiDiag = "AntiDiagonalSum"
)

// Norm returns ‖A‖ for the requested kind.
// Implementation:
//   - NormFrobenius: floats.Norm(L2) over interleaved real/imaginary parts.
//   - NormManhattan / NormChebyshev: floats.Max over column / row sums of |a_ij|.
//   - NormMax: max |a_ij|.
//   - NormSpectral / NormTrace: σmax / Σσ from the SVD.
//
// Errors:
//   - ErrNilMatrix, ErrUnknownMethod (unknown kind), SVD errors.
//   - An empty matrix has norm 0.
//
// Complexity:
//   - O(r·c) for element norms; SVD cost for spectral/trace.
func Norm(m Matrix, kind NormKind, opts ...Option) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opNorm, err)
	}
	a := asDense(m)
	if a.IsEmpty() {
		return 0, nil
	}

	switch kind {
	case NormFrobenius:
		parts := make([]float64, 0, 2*len(a.data))
		for _, v := range a.data {
			parts = append(parts, real(v), imag(v))
		}

		return floats.Norm(parts, 2), nil
	case NormManhattan:
		sums := make([]float64, a.c)
		for i := 0; i < a.r; i++ {
			for j := 0; j < a.c; j++ {
				sums[j] += cmplx.Abs(a.data[i*a.c+j])
			}
		}

		return floats.Max(sums), nil
	case NormChebyshev:
		sums := make([]float64, a.r)
		row := make([]float64, a.c)
		for i := 0; i < a.r; i++ {
			for j := 0; j < a.c; j++ {
				row[j] = cmplx.Abs(a.data[i*a.c+j])
			}
			sums[i] = floats.Sum(row)
		}

		return floats.Max(sums), nil
	case NormMax:
		return maxAbs(a), nil
	case NormSpectral, NormTrace:
		s, err := SVD(a, opts...)
		if err != nil {
			return 0, matrixErrorf(opNorm, err)
		}
		if kind == NormSpectral {
			return s.s[0], nil
		}

		return floats.Sum(s.s), nil
	default:
		return 0, matrixErrorf(opNorm, ErrUnknownMethod)
	}
}

// Rank returns the number of singular values above tol·σmax.
// A non-positive tol uses DefaultTolerance. An empty matrix has rank 0.
// Errors: ErrNilMatrix, SVD errors.
func Rank(m Matrix, tol float64, opts ...Option) (int, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opRank, err)
	}
	if m.Rows() == 0 || m.Cols() == 0 {
		return 0, nil
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}
	s, err := SVD(m, opts...)
	if err != nil {
		return 0, matrixErrorf(opRank, err)
	}

	return s.Rank(tol), nil
}

// Nullity returns cols − Rank(A, tol), the dimension of the null space.
func Nullity(m Matrix, tol float64, opts ...Option) (int, error) {
	rank, err := Rank(m, tol, opts...)
	if err != nil {
		return 0, matrixErrorf(opNullity, err)
	}

	return m.Cols() - rank, nil
}

// RowEchelon returns a row echelon form of A (Gaussian elimination with
// partial pivoting). Entries with |x| <= tol·max|A| count as zero and are
// written as exact zeros.
//
// Errors: ErrNilMatrix.
// Complexity: O(r·c·min(r,c)).
func RowEchelon(m Matrix, tol float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opEchelon, err)
	}
	a := cloneDense(m)
	echelon(a, tol, false)

	return a, nil
}

// ReducedRowEchelon returns the reduced row echelon form: every pivot is 1
// and is the only non-zero entry of its column.
//
// Errors: ErrNilMatrix.
func ReducedRowEchelon(m Matrix, tol float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRREF, err)
	}
	a := cloneDense(m)
	echelon(a, tol, true)

	return a, nil
}

// echelon reduces a in place and returns the pivot count.
func echelon(a *Dense, tol float64, reduced bool) int {
	floor := tol * maxAbs(a)
	row := 0
	var (
		i, p     int
		best, av float64
	)
	for col := 0; col < a.c && row < a.r; col++ {
		p, best = -1, floor
		for i = row; i < a.r; i++ {
			if av = cmplx.Abs(a.data[i*a.c+col]); av > best {
				p, best = i, av
			}
		}
		if p < 0 {
			for i = row; i < a.r; i++ {
				a.data[i*a.c+col] = 0
			}

			continue
		}
		a.swapRows(row, p)
		if reduced {
			a.scaleRow(row, 1/a.data[row*a.c+col])
			a.data[row*a.c+col] = 1
		}
		pivot := a.data[row*a.c+col]
		for i = 0; i < a.r; i++ {
			if i == row || (!reduced && i < row) {
				continue
			}
			f := a.data[i*a.c+col]
			if f == 0 {
				continue
			}
			a.addRow(i, row, -f/pivot, col)
			a.data[i*a.c+col] = 0
		}
		row++
	}
	for k, v := range a.data {
		if cmplx.Abs(v) <= floor {
			a.data[k] = 0
		}
	}

	return row
}

// Trace returns Σ A[i,i].
// Errors: ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare.
func Trace(m Matrix) (complex128, error) {
	if err := ValidateSquareNonEmpty(m); err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	var tr complex128
	for _, d := range asDense(m).Diagonal() {
		tr += d
	}

	return tr, nil
}

// Sum reduces A along axis: AxisAll → 1×1, AxisRows → r×1, AxisCols → 1×c.
// Errors: ErrNilMatrix, ErrUnknownMethod (unknown axis).
func Sum(m Matrix, axis Axis) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opSum, err)
	}
	a := asDense(m)
	var out *Dense
	switch axis {
	case AxisAll:
		out = newDense(1, 1)
		for _, v := range a.data {
			out.data[0] += v
		}
	case AxisRows:
		out = newDense(a.r, 1)
		for i := 0; i < a.r; i++ {
			for j := 0; j < a.c; j++ {
				out.data[i] += a.data[i*a.c+j]
			}
		}
	case AxisCols:
		out = newDense(1, a.c)
		for i := 0; i < a.r; i++ {
			for j := 0; j < a.c; j++ {
				out.data[j] += a.data[i*a.c+j]
			}
		}
	default:
		return nil, matrixErrorf(opSum, ErrUnknownMethod)
	}

	return out, nil
}

// DiagonalSum returns Σ A[i, i+k]: k = 0 is the main diagonal, k > 0 above
// it, k < 0 below. A diagonal entirely outside the matrix sums to 0.
// Errors: ErrNilMatrix.
func DiagonalSum(m Matrix, k int) (complex128, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opDiagSum, err)
	}
	a := asDense(m)
	var sum complex128
	for i := max(0, -k); i < a.r && i+k < a.c; i++ {
		sum += a.data[i*a.c+i+k]
	}

	return sum, nil
}

// AntiDiagonalSum returns Σ A[i, c−1−i] for i < min(r, c).
// Errors: ErrNilMatrix.
func AntiDiagonalSum(m Matrix) (complex128, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opAntiDiag, err)
	}
	a := asDense(m)
	var sum complex128
	for i := 0; i < min(a.r, a.c); i++ {
		sum += a.data[i*a.c+a.c-1-i]
	}

	return sum, nil
}

