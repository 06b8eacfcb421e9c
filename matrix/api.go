// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - One-call entry points (Solve, Determinant, ConditionNumber) that pick
//     and drive the right factorization.
//   - Cofactor machinery (Minor, Cofactor, Adjugate, DeterminantLaplace) for
//     small matrices and verification.
//   - Thin convenience compositions (ZerosLike, IdentityLike, Hermitianize,
//     RowSums, ColSums, ReplaceInfNaN).
//
// Determinism & Policy:
//   - Facades never change the numeric policy of underlying kernels; options
//     are forwarded unchanged.
//   - Validation is performed here only when the facade itself branches on shape.
//
// AI-Hints:
//   - Solve(A, B, SolveAuto) is the right default; pick a method explicitly
//     when the structure of A is known (Cholesky for SPD, QR for tall).

package matrix

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

const (
	opSolve        = "Solve"
	opDeterminant  = "Determinant"
	opLaplace      = "DeterminantLaplace"
	opMinor        = "Minor"
	opCofactor     = "Cofactor"
	opAdjugate     = "Adjugate"
	opCondition    = "ConditionNumber"
	opIdentityLike = "IdentityLike"
	opHermitianize = "Hermitianize"
	opReplace      = "ReplaceInfNaN"
)

// ---------- Solve ----------

// Solve returns X with A·X = B using the requested method.
// Implementation:
//   - SolveAuto: square Hermitian input tries Cholesky, other square input
//     uses LU and falls back to the SVD when LU meets a zero pivot; tall
//     input uses QR least squares, wide input LQ minimum norm; a
//     rank-deficient triangular factor also falls back to the SVD.
//   - SolveLU/SolveQR/SolveCholesky/SolveSchur/SolveSVD: the named
//     factorization's Solve.
//
// Inputs:
//   - a: m×n coefficient matrix; b: m×k right-hand sides.
//   - opts: forwarded to the factorization (tolerance, pivoting, iterations).
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrDimensionMismatch (B.Rows != A.Rows).
//   - ErrNonSquare for LU/Cholesky/Schur on rectangular A.
//   - Factorization errors (ErrSingular, ErrNotPositiveDefinite, ErrNotConverged).
//
// Complexity:
//   - O(n³) for the square paths; O(m·n²) for QR.
func Solve(a, b Matrix, method SolveMethod, opts ...Option) (*Dense, error) {
	if err := ValidateNotEmpty(a); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if b.Rows() != a.Rows() {
		return nil, matrixErrorf(opSolve, ErrDimensionMismatch)
	}

	var (
		x   *Dense
		err error
	)
	switch method {
	case SolveAuto:
		x, err = solveAuto(a, b, opts...)
	case SolveLU:
		var f *LUResult
		if f, err = LU(a, opts...); err == nil {
			x, err = f.Solve(b)
		}
	case SolveQR:
		var f *QRResult
		if f, err = QR(a, opts...); err == nil {
			x, err = f.Solve(b)
		}
	case SolveCholesky:
		var f *CholeskyResult
		if f, err = Cholesky(a, opts...); err == nil {
			x, err = f.Solve(b)
		}
	case SolveSchur:
		var f *SchurResult
		if f, err = Schur(a, opts...); err == nil {
			x, err = f.Solve(b)
		}
	case SolveSVD:
		var f *SVDResult
		if f, err = SVD(a, opts...); err == nil {
			x, err = f.Solve(b)
		}
	default:
		err = fmt.Errorf("method %d: %w", method, ErrUnknownMethod)
	}
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	return x, nil
}

// solveAuto dispatches on shape and structure.
func solveAuto(a, b Matrix, opts ...Option) (*Dense, error) {
	rows, cols := a.Rows(), a.Cols()
	switch {
	case rows > cols:
		f, err := QR(a, opts...)
		if err != nil {
			return nil, err
		}
		x, err := f.Solve(b)
		if !errors.Is(err, ErrSingular) {
			return x, err
		}
		logger().Debug("solve: R rank-deficient, using SVD")

		return solveSVD(a, b, opts...)
	case rows < cols:
		f, err := LQ(a, opts...)
		if err != nil {
			return nil, err
		}
		x, err := f.Solve(b)
		if !errors.Is(err, ErrSingular) {
			return x, err
		}
		logger().Debug("solve: L rank-deficient, using SVD")

		return solveSVD(a, b, opts...)
	}

	o := gatherOptions(opts...)
	da := asDense(a)
	if ValidateHermitian(da, o.tol*math.Max(1, maxAbs(da))) == nil {
		if f, err := Cholesky(da, opts...); err == nil {
			return f.Solve(b)
		}
	}
	f, err := LU(da, opts...)
	if err == nil && !f.IsSingular(o.tol) {
		return f.Solve(b)
	}
	if err != nil && !errors.Is(err, ErrSingular) {
		return nil, err
	}
	logger().Debug("solve: LU singular, using SVD")

	return solveSVD(da, b, opts...)
}

// solveSVD is the minimum-norm least-squares fallback for rank-deficient systems.
func solveSVD(a, b Matrix, opts ...Option) (*Dense, error) {
	s, err := SVD(a, opts...)
	if err != nil {
		return nil, err
	}

	return s.Solve(b)
}

// ---------- Determinants & cofactors ----------

// Determinant returns det(A) from LU: sign·∏ U[i,i] (partial pivoting unless
// opts select another policy). A zero pivot under PivotNone says nothing about
// singularity, so the factorization is repeated with partial pivoting.
// Errors: ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare.
// Complexity: O(n³).
func Determinant(m Matrix, opts ...Option) (complex128, error) {
	f, err := LU(m, opts...)
	if errors.Is(err, ErrSingular) {
		f, err = LU(m, append(opts[:len(opts):len(opts)], WithPivoting(PivotPartial))...)
	}
	if err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}

	return f.Determinant(), nil
}

// DeterminantLaplace returns det(A) by cofactor expansion along the first row.
// Complexity: O(n!); intended for n <= 8 and for cross-checking Determinant.
// Errors: ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare.
func DeterminantLaplace(m Matrix) (complex128, error) {
	if err := ValidateSquareNonEmpty(m); err != nil {
		return 0, matrixErrorf(opLaplace, err)
	}

	return laplace(asDense(m)), nil
}

func laplace(a *Dense) complex128 {
	n := a.r
	switch n {
	case 1:
		return a.data[0]
	case 2:
		return a.data[0]*a.data[3] - a.data[1]*a.data[2]
	}
	var det complex128
	sign := complex(1, 0)
	rows := make([]int, n-1)
	for i := range rows {
		rows[i] = i + 1
	}
	cols := make([]int, n-1)
	for j := 0; j < n; j++ {
		if a.data[j] != 0 {
			cols = cols[:0]
			for k := 0; k < n; k++ {
				if k != j {
					cols = append(cols, k)
				}
			}
			sub, _ := a.Induced(rows, cols)
			det += sign * a.data[j] * laplace(sub)
		}
		sign = -sign
	}

	return det
}

// minorMatrix removes row i and column j.
func minorMatrix(a *Dense, i, j int) *Dense {
	rows := make([]int, 0, a.r-1)
	for k := 0; k < a.r; k++ {
		if k != i {
			rows = append(rows, k)
		}
	}
	cols := make([]int, 0, a.c-1)
	for k := 0; k < a.c; k++ {
		if k != j {
			cols = append(cols, k)
		}
	}
	sub, _ := a.Induced(rows, cols)

	return sub
}

// Minor returns M_ij, the determinant of A without row i and column j.
// Errors: ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare (or n < 2), ErrOutOfRange.
func Minor(m Matrix, i, j int) (complex128, error) {
	if err := ValidateSquareNonEmpty(m); err != nil {
		return 0, matrixErrorf(opMinor, err)
	}
	n := m.Rows()
	if n < 2 {
		return 0, matrixErrorf(opMinor, ErrBadShape)
	}
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, matrixErrorf(opMinor, ErrOutOfRange)
	}
	sub := minorMatrix(asDense(m), i, j)
	if n-1 > 3 {
		f, err := LU(sub)
		if err != nil {
			return 0, matrixErrorf(opMinor, err)
		}

		return f.Determinant(), nil
	}

	return laplace(sub), nil
}

// Cofactor returns C_ij = (−1)^{i+j}·M_ij.
func Cofactor(m Matrix, i, j int) (complex128, error) {
	minor, err := Minor(m, i, j)
	if err != nil {
		return 0, matrixErrorf(opCofactor, err)
	}
	if (i+j)%2 == 1 {
		return -minor, nil
	}

	return minor, nil
}

// Adjugate returns adj(A) = Cᵀ, so that A·adj(A) = det(A)·I.
// A 1×1 input yields [1].
// Complexity: O(n²) minors.
func Adjugate(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonEmpty(m); err != nil {
		return nil, matrixErrorf(opAdjugate, err)
	}
	n := m.Rows()
	if n == 1 {
		return identity(1), nil
	}
	adj := newDense(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c, err := Cofactor(m, i, j)
			if err != nil {
				return nil, matrixErrorf(opAdjugate, err)
			}
			adj.data[j*n+i] = c
		}
	}

	return adj, nil
}

// ---------- Conditioning ----------

// ConditionNumber returns κ(A) under the requested norm.
// Implementation:
//   - NormSpectral: σmax/σmin from the SVD.
//   - NormTrace: (Σσ)·(Σ 1/σ).
//   - Others: ‖A‖·‖A⁻¹‖ with A⁻¹ from LU.
//
// Returns:
//   - +Inf for singular input (zero σ or zero LU pivot).
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare, SVD errors.
func ConditionNumber(m Matrix, kind NormKind, opts ...Option) (float64, error) {
	if err := ValidateSquareNonEmpty(m); err != nil {
		return 0, matrixErrorf(opCondition, err)
	}
	switch kind {
	case NormSpectral, NormTrace:
		s, err := SVD(m, opts...)
		if err != nil {
			return 0, matrixErrorf(opCondition, err)
		}
		values := s.s
		if values[len(values)-1] == 0 {
			return math.Inf(1), nil
		}
		if kind == NormSpectral {
			return s.Cond(), nil
		}
		var sum, inv float64
		for _, v := range values {
			sum += v
			inv += 1 / v
		}

		return sum * inv, nil
	}

	o := gatherOptions(opts...)
	f, err := LU(m, opts...)
	if err != nil {
		return 0, matrixErrorf(opCondition, err)
	}
	if f.IsSingular(o.tol) {
		return math.Inf(1), nil
	}
	inv, err := f.Inverse()
	if err != nil {
		return math.Inf(1), nil
	}
	na, err := Norm(m, kind)
	if err != nil {
		return 0, matrixErrorf(opCondition, err)
	}
	ni, err := Norm(inv, kind)
	if err != nil {
		return 0, matrixErrorf(opCondition, err)
	}

	return na * ni, nil
}

// ---------- Convenience facades ----------

// ZerosLike returns a new zero matrix with the same shape as m.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ZerosLike", err)
	}

	return NewDense(m.Rows(), m.Cols())
}

// IdentityLike returns I with dimension Rows(m); requires square shape.
func IdentityLike(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opIdentityLike, err)
	}

	return identity(m.Rows()), nil
}

// Hermitianize returns (A + Aᴴ)/2, the Hermitian part of A. For real input
// this is the symmetric part (A + Aᵀ)/2.
//
// AI-Hints: repairs asymmetry drift before Cholesky/EigenSym.
func Hermitianize(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonEmpty(m); err != nil {
		return nil, matrixErrorf(opHermitianize, err)
	}
	a := asDense(m)
	n := a.r
	out := newDense(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.data[i*n+j] = (a.data[i*n+j] + cmplx.Conj(a.data[j*n+i])) / 2
		}
	}

	return out, nil
}

// RowSums returns r[i] = Σ_j m[i,j] (Sum along AxisRows, flattened).
func RowSums(m Matrix) ([]complex128, error) {
	s, err := Sum(m, AxisRows)
	if err != nil {
		return nil, err
	}

	return s.data, nil
}

// ColSums returns c[j] = Σ_i m[i,j] (Sum along AxisCols, flattened).
func ColSums(m Matrix) ([]complex128, error) {
	s, err := Sum(m, AxisCols)
	if err != nil {
		return nil, err
	}

	return s.data, nil
}

// ReplaceInfNaN returns a copy of m where every element with a NaN or ±Inf
// component is replaced by val.
//
// Errors: ErrNilMatrix; ErrNaNInf when val itself is not finite.
func ReplaceInfNaN(m Matrix, val complex128) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opReplace, err)
	}
	if isNonFinite(real(val)) || isNonFinite(imag(val)) {
		return nil, matrixErrorf(opReplace, ErrNaNInf)
	}
	out := cloneDense(m)
	for k, v := range out.data {
		if isNonFinite(real(v)) || isNonFinite(imag(v)) {
			out.data[k] = val
		}
	}

	return out, nil
}
