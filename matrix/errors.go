// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels (optionally wrapped with an
// operation tag via matrixErrorf) and tests MUST check them via errors.Is.
// No kernel panics on user-triggered error conditions.

package matrix

import (
	"errors"

	"github.com/katalvlaran/lvmat/scalar"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap once with the operation tag
// ("LU: matrix: singular matrix"); callers still match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> empty/shape -> square -> numeric policy -> structural (symmetry,
// definiteness) -> numerical (singular, convergence).

var (
	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrInvalidDimensions indicates that requested matrix dimensions are negative.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrBadShape is returned when nested rows are ragged, a reshape does not
	// preserve the element count, or a slice/window is malformed.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrEmptyMatrix is returned by operations that need at least one element
	// (Transpose, factorizations).
	ErrEmptyMatrix = errors.New("matrix: empty matrix")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that a matrix expected to be symmetric (Hermitian)
	// violated symmetry within the configured tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within tolerance")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrSingular is returned when a zero (or numerically zero) pivot is met
	// during LU, triangular substitution or inversion.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNotPositiveDefinite is returned by Cholesky when a non-positive pivot appears.
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not positive definite")

	// ErrNotConverged marks an iterative kernel (Schur/Eigen/SVD) that hit
	// maxIterations. It is only returned under WithStrictConvergence; by default
	// the best available approximation is returned with Converged=false.
	ErrNotConverged = errors.New("matrix: iteration did not converge")

	// ErrNegativeEigenvalue is returned by Pow when a fractional power meets a
	// real negative eigenvalue.
	ErrNegativeEigenvalue = errors.New("matrix: negative eigenvalue for fractional power")

	// ErrParse is returned when a matrix expression cannot be decoded.
	ErrParse = errors.New("matrix: cannot parse expression")

	// ErrInvalidRange is returned when a value range or probability is malformed.
	ErrInvalidRange = errors.New("matrix: invalid range")

	// ErrUnknownMethod is returned for an out-of-range SolveMethod or enum argument.
	ErrUnknownMethod = errors.New("matrix: unknown method")

	// ErrInverseFailed is returned when every strategy of the inverse chain failed.
	ErrInverseFailed = errors.New("matrix: all inverse strategies failed")
)

// ErrDivisionByZero is shared with the scalar package so a single errors.Is
// check works for both scalar and matrix division.
var ErrDivisionByZero = scalar.ErrDivisionByZero
