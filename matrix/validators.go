// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels/facades minimal by delegating shape/nil/symmetry checks here.
//  - Wrap sentinels with the validator tag so call sites can add the operation tag.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Hermitian check runs O(n²) on the upper triangle only.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Empty → Shape).

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed-nil *Dense is also rejected.
//
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateNotEmpty ensures m is non-nil and holds at least one element.
func ValidateNotEmpty(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() == 0 || m.Cols() == 0 {
		return validatorErrorf("ValidateNotEmpty", ErrEmptyMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Assumes m is not nil.
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateBinarySameShape – Composite: NotNil(a) → NotNil(b) → SameShape.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}

	return nil
}

// ValidateSquareNonEmpty – Composite: NotNil → NotEmpty → Square.
// Every factorization starts with it.
//
// Errors: ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare.
func ValidateSquareNonEmpty(m Matrix) error {
	if err := ValidateNotEmpty(m); err != nil {
		return validatorErrorf("ValidateSquareNonEmpty", err)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSquareNonEmpty", err)
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols == b.Rows, inputs non-nil.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateHermitian checks A is Hermitian within tolerance tol:
// |A[i,j] - conj(A[j,i])| ≤ tol for all i ≤ j.
// For real input this is ordinary symmetry.
//
// Inputs: square Matrix m, tolerance tol ≥ 0.
// Returns ErrNilMatrix/ErrNonSquare on structural issues, ErrNaNInf on a bad
// tol, ErrAsymmetry on violation.
// Complexity: O(n²). Space: O(1).
func ValidateHermitian(m Matrix, tol float64) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateHermitian", err)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateHermitian", ErrNonSquare)
	}
	if isNonFinite(tol) {
		return validatorErrorf("ValidateHermitian", ErrNaNInf)
	}
	tol = math.Abs(tol)

	n := m.Rows()
	var (
		i, j     int
		aij, aji complex128
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ { // diagonal included: it must be real
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			if cmplx.Abs(aij-cmplx.Conj(aji)) > tol {
				return validatorErrorf("ValidateHermitian", ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateFinite returns ErrNaNInf when any element is NaN or ±Inf.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	d := asDense(m)
	for _, v := range d.data {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return validatorErrorf("ValidateFinite", ErrNaNInf)
		}
	}

	return nil
}

// isNonFinite reports NaN or ±Inf for a real parameter.
func isNonFinite(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
