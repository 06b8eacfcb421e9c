// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense kernels.
// This file contains ONLY the public Matrix interface and small enumerations
// (norm kinds, axes, pivoting, solve methods); errors and options live in
// dedicated files (errors.go, options.go).
package matrix

// Matrix represents a two-dimensional mutable array of complex128 values.
// Real matrices are complex matrices with zero imaginary parts.
//
// Kernels accept Matrix and return *Dense. A *Dense operand unlocks flat-slice
// fast paths; any other implementation is materialized once through At.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (complex128, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v complex128) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// NormKind selects a matrix norm.
type NormKind int

const (
	// NormFrobenius is sqrt(Σ|aij|²). Default for condition numbers.
	NormFrobenius NormKind = iota
	// NormManhattan is the induced 1-norm: max column sum of |aij|.
	NormManhattan
	// NormChebyshev is the induced ∞-norm: max row sum of |aij|.
	NormChebyshev
	// NormSpectral is the induced 2-norm: the largest singular value.
	NormSpectral
	// NormTrace is the nuclear norm: the sum of singular values.
	NormTrace
	// NormMax is max |aij| (not sub-multiplicative).
	NormMax
)

// String returns the norm name.
func (k NormKind) String() string {
	switch k {
	case NormFrobenius:
		return "frobenius"
	case NormManhattan:
		return "manhattan"
	case NormChebyshev:
		return "chebyshev"
	case NormSpectral:
		return "spectral"
	case NormTrace:
		return "trace"
	case NormMax:
		return "max"
	default:
		return "unknown"
	}
}

// Axis selects the direction of a reduction.
type Axis int

const (
	// AxisAll reduces every element to a single value (1×1 result).
	AxisAll Axis = iota
	// AxisRows reduces each row (r×1 result).
	AxisRows
	// AxisCols reduces each column (1×c result).
	AxisCols
)

// Pivoting selects the LU pivoting policy.
type Pivoting int

const (
	// PivotPartial swaps rows so the largest |a| in the column becomes the pivot.
	PivotPartial Pivoting = iota
	// PivotNone keeps the natural order; a zero pivot is ErrSingular.
	PivotNone
	// PivotComplete swaps rows and columns to the largest |a| in the trailing block.
	PivotComplete
)

// SolveMethod selects the factorization used by Solve.
type SolveMethod int

const (
	// SolveAuto picks LU for square systems and QR/LQ least squares otherwise.
	SolveAuto SolveMethod = iota
	// SolveLU uses the pivoted LU factorization (square only).
	SolveLU
	// SolveQR uses Householder QR (least squares when rows > cols).
	SolveQR
	// SolveCholesky uses A = L·Lᴴ (Hermitian positive definite only).
	SolveCholesky
	// SolveSchur uses A = Q·T·Qᴴ and back-substitution on T.
	SolveSchur
	// SolveSVD uses the pseudo-inverse of the singular values.
	SolveSVD
)

// String returns the method name.
func (s SolveMethod) String() string {
	switch s {
	case SolveAuto:
		return "auto"
	case SolveLU:
		return "lu"
	case SolveQR:
		return "qr"
	case SolveCholesky:
		return "cholesky"
	case SolveSchur:
		return "schur"
	case SolveSVD:
		return "svd"
	default:
		return "unknown"
	}
}
