// SPDX-License-Identifier: MIT

// Package matrix - Cholesky factorization A = L·Lᴴ.
//
// Purpose:
//   - Factor Hermitian positive-definite matrices at half the cost of LU.
//   - Keep a reference to the source so positive-definiteness can be
//     re-validated lazily after the caller mutates it.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
)

const opCholesky = "Cholesky"

// CholeskyResult is an immutable factorization A = L·Lᴴ.
type CholeskyResult struct {
	l      *Dense
	source Matrix // caller's matrix, not copied
	tol    float64
}

// Cholesky factorizes a Hermitian positive-definite matrix.
// Implementation:
//   - Stage 1: validate square/non-empty; check Hermitian within tol (ErrAsymmetry).
//   - Stage 2: for column j: d = A[j,j] − Σ_k |L[j,k]|²; d must be > tol·max|A[i,i]|;
//     L[j,j] = √d; L[i,j] = (A[i,j] − Σ_k L[i,k]·conj(L[j,k])) / L[j,j] for i > j.
//
// Behavior highlights:
//   - Only the lower triangle of A is read after the Hermitian check.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare, ErrNaNInf, ErrAsymmetry,
//     ErrNotPositiveDefinite (non-positive pivot).
//
// Complexity:
//   - Time O(n³/3), Space O(n²).
//
// AI-Hints:
//   - IsPositiveDefinite(m) is this factorization with the error turned into false.
func Cholesky(m Matrix, opts ...Option) (*CholeskyResult, error) {
	if err := ValidateSquareNonEmpty(m); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		if err := ValidateFinite(m); err != nil {
			return nil, matrixErrorf(opCholesky, err)
		}
	}
	l, err := choleskyFactor(asDense(m), o.tol)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	return &CholeskyResult{l: l, source: m, tol: o.tol}, nil
}

// choleskyFactor is the validated kernel shared by Cholesky and IsPositiveDefinite.
func choleskyFactor(a *Dense, tol float64) (*Dense, error) {
	if err := ValidateHermitian(a, tol*math.Max(1, maxAbs(a))); err != nil {
		return nil, err
	}
	n := a.r
	var diagScale float64
	for i := 0; i < n; i++ {
		diagScale = math.Max(diagScale, math.Abs(real(a.data[i*n+i])))
	}
	floor := tol * diagScale

	l := newDense(n, n)
	var (
		i, j, k int
		d       float64
		sum     complex128
		ljj     complex128
	)
	for j = 0; j < n; j++ {
		d = real(a.data[j*n+j])
		for k = 0; k < j; k++ {
			v := l.data[j*n+k]
			d -= real(v)*real(v) + imag(v)*imag(v)
		}
		if d <= floor || math.IsNaN(d) {
			return nil, fmt.Errorf("pivot %d = %g: %w", j, d, ErrNotPositiveDefinite)
		}
		ljj = complex(math.Sqrt(d), 0)
		l.data[j*n+j] = ljj
		for i = j + 1; i < n; i++ {
			sum = a.data[i*n+j]
			for k = 0; k < j; k++ {
				sum -= l.data[i*n+k] * cmplx.Conj(l.data[j*n+k])
			}
			l.data[i*n+j] = sum / ljj
		}
	}

	return l, nil
}

// L returns a copy of the lower-triangular factor.
func (c *CholeskyResult) L() *Dense { return c.l.Copy() }

// IsPositiveDefinite re-validates the stored source matrix now. It reports
// false when the source was mutated into a non-Hermitian or indefinite matrix
// after factorization.
func (c *CholeskyResult) IsPositiveDefinite() bool {
	_, err := choleskyFactor(asDense(c.source), c.tol)

	return err == nil
}

// Determinant returns ∏ L[i,i]², real and positive.
func (c *CholeskyResult) Determinant() complex128 {
	det := 1.0
	for _, d := range c.l.Diagonal() {
		det *= real(d) * real(d)
	}

	return complex(det, 0)
}

// Solve returns X with A·X = B via L·Y = B then Lᴴ·X = Y.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func (c *CholeskyResult) Solve(b Matrix) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf("Cholesky.Solve", err)
	}
	if b.Rows() != c.l.r {
		return nil, matrixErrorf("Cholesky.Solve", ErrDimensionMismatch)
	}
	y, err := forwardSubst(c.l, asDense(b), false)
	if err != nil {
		return nil, matrixErrorf("Cholesky.Solve", err)
	}
	x, err := backSubst(transpose(c.l, true), y)
	if err != nil {
		return nil, matrixErrorf("Cholesky.Solve", err)
	}

	return x, nil
}

// Inverse returns A⁻¹ = Solve(I).
func (c *CholeskyResult) Inverse() (*Dense, error) { return c.Solve(identity(c.l.r)) }

// Reconstruct returns L·Lᴴ.
func (c *CholeskyResult) Reconstruct() *Dense { return mulNaive(c.l, transpose(c.l, true)) }

// CheckMatrix reports whether L·Lᴴ matches a within tol.
func (c *CholeskyResult) CheckMatrix(a Matrix, tol float64) bool {
	return AllClose(c.Reconstruct(), a, tol)
}
