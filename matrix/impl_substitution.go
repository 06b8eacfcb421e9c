// SPDX-License-Identifier: MIT

// Package matrix - triangular substitution primitives.
//
// Purpose:
//   - Solve L·X = B (forward) and U·X = B (backward) column by column.
//   - Every factorization's Solve is composed from these two kernels.

package matrix

import (
	"fmt"
	"math/cmplx"
)

const (
	opForward = "ForwardSubstitution"
	opBack    = "BackSubstitution"
)

// ForwardSubstitution solves L·X = B for lower-triangular L.
// Implementation:
//   - Stage 1: validate L square, B.Rows == n.
//   - Stage 2: for each row i, x_i = (b_i − Σ_{k<i} L[i,k]·x_k) / L[i,i].
//
// Inputs:
//   - l: n×n lower-triangular matrix; entries above the diagonal are ignored.
//   - b: n×k right-hand sides.
//   - unitDiagonal: treat L[i,i] as 1 (Doolittle L) without reading it.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrSingular (zero diagonal).
//
// Complexity:
//   - Time O(n²·k), Space O(n·k).
func ForwardSubstitution(l, b Matrix, unitDiagonal bool) (*Dense, error) {
	if err := checkTriangularSystem(l, b); err != nil {
		return nil, matrixErrorf(opForward, err)
	}
	x, err := forwardSubst(asDense(l), asDense(b), unitDiagonal)
	if err != nil {
		return nil, matrixErrorf(opForward, err)
	}

	return x, nil
}

// BackSubstitution solves U·X = B for upper-triangular U.
// Entries below the diagonal are ignored.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrSingular (zero diagonal).
func BackSubstitution(u, b Matrix) (*Dense, error) {
	if err := checkTriangularSystem(u, b); err != nil {
		return nil, matrixErrorf(opBack, err)
	}
	x, err := backSubst(asDense(u), asDense(b))
	if err != nil {
		return nil, matrixErrorf(opBack, err)
	}

	return x, nil
}

func checkTriangularSystem(t, b Matrix) error {
	if err := ValidateNotNil(t); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if err := ValidateSquare(t); err != nil {
		return err
	}
	if b.Rows() != t.Rows() {
		return validatorErrorf("checkTriangularSystem", ErrDimensionMismatch)
	}

	return nil
}

// forwardSubst is the unchecked forward kernel over all columns of b.
func forwardSubst(l, b *Dense, unit bool) (*Dense, error) {
	n, k := l.r, b.c
	x := b.Copy()
	var i, j, c int
	var sum, d complex128
	for c = 0; c < k; c++ {
		for i = 0; i < n; i++ {
			sum = x.data[i*k+c]
			for j = 0; j < i; j++ {
				sum -= l.data[i*n+j] * x.data[j*k+c]
			}
			if !unit {
				d = l.data[i*n+i]
				if d == 0 {
					return nil, fmt.Errorf("diagonal %d: %w", i, ErrSingular)
				}
				sum /= d
			}
			x.data[i*k+c] = sum
		}
	}

	return x, nil
}

// checkDiagonal returns ErrSingular when some |t[i,i]| <= tol·max|t|.
// Round-off leaves rank-deficient triangular factors with tiny, not exact
// zero, pivots; the exact-zero test in the kernels does not catch those.
func checkDiagonal(t *Dense, tol float64) error {
	floor := tol * maxAbs(t)
	for i := 0; i < min(t.r, t.c); i++ {
		if cmplx.Abs(t.data[i*t.c+i]) <= floor {
			return fmt.Errorf("diagonal %d: %w", i, ErrSingular)
		}
	}

	return nil
}

// backSubst is the unchecked backward kernel over all columns of b.
func backSubst(u, b *Dense) (*Dense, error) {
	n, k := u.r, b.c
	x := b.Copy()
	var i, j, c int
	var sum, d complex128
	for c = 0; c < k; c++ {
		for i = n - 1; i >= 0; i-- {
			sum = x.data[i*k+c]
			for j = i + 1; j < n; j++ {
				sum -= u.data[i*n+j] * x.data[j*k+c]
			}
			d = u.data[i*n+i]
			if d == 0 {
				return nil, fmt.Errorf("diagonal %d: %w", i, ErrSingular)
			}
			x.data[i*k+c] = sum / d
		}
	}

	return x, nil
}
