// SPDX-License-Identifier: MIT

// Package scalar - element type helpers for the matrix engine.
//
// Purpose:
//   - Treat complex128 as the single element type: a real number is a complex
//     value with a zero imaginary part, so every kernel runs one arithmetic path.
//   - Provide the tolerance-aware comparisons, safe division and root helpers
//     that kernels need, plus parse/format for the text surfaces.
//
// AI-Hints:
//   - Call Simplify before printing or comparing results that started real;
//     round-off leaves imaginary parts around 1e-17 after complex kernels.
//   - Equal uses an absolute-or-relative rule so it works for both tiny and huge values.
package scalar

import (
	"errors"
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	fscalar "gonum.org/v1/gonum/floats/scalar"
)

// DefaultTolerance is the comparison tolerance used when callers pass tol <= 0.
const DefaultTolerance = 1e-10

var (
	// ErrDivisionByZero is returned when a divisor is exactly zero.
	ErrDivisionByZero = errors.New("scalar: division by zero")

	// ErrParse is returned when a textual scalar cannot be decoded.
	ErrParse = errors.New("scalar: cannot parse value")
)

// normTol maps non-positive or NaN tolerances onto DefaultTolerance.
func normTol(tol float64) float64 {
	if tol <= 0 || math.IsNaN(tol) {
		return DefaultTolerance
	}

	return tol
}

// FromReal lifts a real number into the element type.
func FromReal(x float64) complex128 { return complex(x, 0) }

// IsReal reports whether |imag(z)| <= tol.
func IsReal(z complex128, tol float64) bool {
	return math.Abs(imag(z)) <= normTol(tol)
}

// IsZero reports whether |z| <= tol.
func IsZero(z complex128, tol float64) bool {
	return cmplx.Abs(z) <= normTol(tol)
}

// Simplify collapses negligible components to exact zeros.
// Implementation:
//   - Stage 1: drop the imaginary part when |imag| <= tol.
//   - Stage 2: drop the real part when |real| <= tol.
//
// Behavior highlights:
//   - Negative zero is normalized to +0 so printed output stays stable.
//
// Complexity:
//   - Time O(1), Space O(1).
func Simplify(z complex128, tol float64) complex128 {
	tol = normTol(tol)
	re, im := real(z), imag(z)
	if math.Abs(im) <= tol {
		im = 0
	}
	if math.Abs(re) <= tol {
		re = 0
	}

	return complex(re+0, im+0) // +0 folds -0 into +0
}

// Equal compares a and b component-wise within an absolute-or-relative tolerance.
// Both the real and the imaginary parts must satisfy
// gonum's EqualWithinAbsOrRel(x, y, tol, tol).
//
// AI-Hints:
//   - Use for test oracles and convergence checks; exact == is almost never right after a factorization.
func Equal(a, b complex128, tol float64) bool {
	tol = normTol(tol)
	if cmplx.IsNaN(a) || cmplx.IsNaN(b) {
		return false
	}

	return fscalar.EqualWithinAbsOrRel(real(a), real(b), tol, tol) &&
		fscalar.EqualWithinAbsOrRel(imag(a), imag(b), tol, tol)
}

// Abs returns the modulus |z|.
func Abs(z complex128) float64 { return cmplx.Abs(z) }

// Conj returns the complex conjugate.
func Conj(z complex128) complex128 { return cmplx.Conj(z) }

// Sqrt returns the principal square root. A real non-negative input is kept
// on the real axis exactly (math.Sqrt), which avoids 1e-17 imaginary dust in
// Cholesky and norm computations.
func Sqrt(z complex128) complex128 {
	if imag(z) == 0 && real(z) >= 0 {
		return complex(math.Sqrt(real(z)), 0)
	}

	return cmplx.Sqrt(z)
}

// Div returns a/b or ErrDivisionByZero when b is exactly zero.
func Div(a, b complex128) (complex128, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}

	return a / b, nil
}

// Sign returns z/|z| (the unit phase of z), or 1 for z == 0.
// Householder reflectors use it to pick the cancellation-free direction.
func Sign(z complex128) complex128 {
	r := cmplx.Abs(z)
	if r == 0 {
		return 1
	}

	return z / complex(r, 0)
}

// Parse decodes a textual scalar: "3", "-1.5e3", "2i", "1+2i", "(1-2i)".
func Parse(s string) (complex128, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrParse
	}
	// Fast path for plain reals keeps error messages precise for typos like "1..2".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return complex(f, 0), nil
	}
	z, err := strconv.ParseComplex(s, 128)
	if err != nil {
		return 0, errors.Join(ErrParse, err)
	}

	return z, nil
}

// Format renders z with prec significant digits (-1 = shortest exact).
// An imaginary part within DefaultTolerance of |z| (relative) is dropped;
// every other component prints as stored, so 1e-12 stays 1e-12.
func Format(z complex128, prec int) string {
	if math.Abs(imag(z)) <= DefaultTolerance*cmplx.Abs(z) {
		z = complex(real(z), 0)
	}
	z = complex(real(z)+0, imag(z)+0) // +0 folds -0 into +0
	if imag(z) == 0 {
		return strconv.FormatFloat(real(z), 'g', prec, 64)
	}
	if real(z) == 0 {
		return strconv.FormatFloat(imag(z), 'g', prec, 64) + "i"
	}

	var b strings.Builder
	b.WriteString(strconv.FormatFloat(real(z), 'g', prec, 64))
	if imag(z) >= 0 {
		b.WriteByte('+')
	}
	b.WriteString(strconv.FormatFloat(imag(z), 'g', prec, 64))
	b.WriteByte('i')

	return b.String()
}
