// SPDX-License-Identifier: MIT

// Package matrix - structural and numerical predicates.
//
// Purpose:
//   - Boolean questions about a matrix, answered within a tolerance:
//     symmetry, triangularity, unitarity, idempotence, definiteness, singularity.
//   - AllClose, the element-wise comparison used by every CheckMatrix.
//
// Behavior highlights:
//   - Predicates never return errors: a nil matrix is false for every
//     structural predicate, and a non-square matrix is false for every
//     predicate that needs a square one.
//   - tol <= 0 falls back to DefaultTolerance through scalar.Equal/IsZero.

package matrix

import (
	"math"
	"math/cmplx"

	"github.com/katalvlaran/lvmat/scalar"
)

// isNil reports a nil interface or a typed-nil *Dense.
func isNil(m Matrix) bool { return ValidateNotNil(m) != nil }

// squareDense returns the *Dense view of m when it is non-nil and square.
func squareDense(m Matrix) (*Dense, bool) {
	if isNil(m) || m.Rows() != m.Cols() {
		return nil, false
	}

	return asDense(m), true
}

// AllClose reports whether a and b have the same shape and every pair of
// elements satisfies scalar.Equal(x, y, tol) (absolute-or-relative,
// component-wise). Nil operands are never close.
func AllClose(a, b Matrix, tol float64) bool {
	if isNil(a) || isNil(b) || a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	da, db := asDense(a), asDense(b)
	for k, v := range da.data {
		if !scalar.Equal(v, db.data[k], tol) {
			return false
		}
	}

	return true
}

// IsSymmetric reports A[i,j] ≈ A[j,i] (plain transpose, no conjugation).
func IsSymmetric(m Matrix, tol float64) bool {
	a, ok := squareDense(m)
	if !ok {
		return false
	}
	n := a.r
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !scalar.Equal(a.data[i*n+j], a.data[j*n+i], tol) {
				return false
			}
		}
	}

	return true
}

// IsHermitian reports A[i,j] ≈ conj(A[j,i]); the diagonal must be real within tol.
func IsHermitian(m Matrix, tol float64) bool {
	a, ok := squareDense(m)
	if !ok {
		return false
	}
	n := a.r
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if !scalar.Equal(a.data[i*n+j], cmplx.Conj(a.data[j*n+i]), tol) {
				return false
			}
		}
	}

	return true
}

// zeroOutside reports whether every element with keep(i, j) == false is zero within tol.
func zeroOutside(m Matrix, tol float64, keep func(i, j int) bool) bool {
	if isNil(m) {
		return false
	}
	a := asDense(m)
	for i := 0; i < a.r; i++ {
		for j := 0; j < a.c; j++ {
			if !keep(i, j) && !scalar.IsZero(a.data[i*a.c+j], tol) {
				return false
			}
		}
	}

	return true
}

// IsUpperTriangular reports A[i,j] ≈ 0 for i > j (rectangular input allowed).
func IsUpperTriangular(m Matrix, tol float64) bool {
	return zeroOutside(m, tol, func(i, j int) bool { return i <= j })
}

// IsLowerTriangular reports A[i,j] ≈ 0 for i < j (rectangular input allowed).
func IsLowerTriangular(m Matrix, tol float64) bool {
	return zeroOutside(m, tol, func(i, j int) bool { return i >= j })
}

// IsDiagonal reports A[i,j] ≈ 0 for i != j.
func IsDiagonal(m Matrix, tol float64) bool {
	return zeroOutside(m, tol, func(i, j int) bool { return i == j })
}

// IsUpperHessenberg reports A[i,j] ≈ 0 for i > j+1 on a square matrix.
func IsUpperHessenberg(m Matrix, tol float64) bool {
	if _, ok := squareDense(m); !ok {
		return false
	}

	return zeroOutside(m, tol, func(i, j int) bool { return i <= j+1 })
}

// IsIdentity reports A ≈ I.
func IsIdentity(m Matrix, tol float64) bool {
	a, ok := squareDense(m)
	if !ok {
		return false
	}

	return AllClose(a, identity(a.r), tol)
}

// IsUnitary reports Aᴴ·A ≈ I.
func IsUnitary(m Matrix, tol float64) bool {
	a, ok := squareDense(m)
	if !ok {
		return false
	}

	return AllClose(mulNaive(transpose(a, true), a), identity(a.r), tol)
}

// IsOrthogonal reports a real matrix with Aᵀ·A ≈ I.
func IsOrthogonal(m Matrix, tol float64) bool {
	if isNil(m) || !asDense(m).IsReal(tol) {
		return false
	}

	return IsUnitary(m, tol)
}

// IsIdempotent reports A·A ≈ A.
func IsIdempotent(m Matrix, tol float64) bool {
	a, ok := squareDense(m)
	if !ok {
		return false
	}

	return AllClose(mulNaive(a, a), a, tol)
}

// IsPositiveDefinite reports a Hermitian matrix whose Cholesky factorization
// succeeds with pivot floor tol.
func IsPositiveDefinite(m Matrix, tol float64) bool {
	a, ok := squareDense(m)
	if !ok || a.IsEmpty() {
		return false
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}
	_, err := choleskyFactor(a, tol)

	return err == nil
}

// IsSingular reports whether the smallest singular value is at most
// tol·σmax (so 0×0 and all-zero matrices are singular).
func IsSingular(m Matrix, tol float64) bool {
	a, ok := squareDense(m)
	if !ok {
		return false
	}
	if a.IsEmpty() {
		return true
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}
	s, err := SVD(a)
	if err != nil {
		return true
	}
	smin := s.s[len(s.s)-1]

	return smin <= tol*math.Max(s.s[0], math.SmallestNonzeroFloat64)
}
