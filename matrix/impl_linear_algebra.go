// SPDX-License-Identifier: MIT
// Package matrix provides the arithmetic layer on any Matrix implementation:
// element-wise addition/subtraction (with row/column vector broadcast),
// scalar operators, Hadamard products, matrix multiplication with
// naive/Strassen/mat-vec dispatch, and integer/fractional powers.
//
// Purpose:
//   - Non-mutating facade: every operator returns a fresh *Dense and leaves
//     operands untouched. In-place work lives in the mutating core (impl_rowops.go).
//   - Define operation tags used for error wrapping.
//
// Notes:
//   - All kernels use central validators and wrap via matrixErrorf once.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Operation name constants for unified error wrapping.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opMul         = "Mul"
	opScale       = "Scale"
	opDivScalar   = "DivScalar"
	opAddScalar   = "AddScalar"
	opHadamard    = "Hadamard"
	opHadamardDiv = "HadamardDiv"
	opMatVec      = "MatVec"
	opPow         = "Pow"
	opMap         = "Map"
	opKronecker   = "Kronecker"
	opOuter       = "Outer"
)

// broadcast kinds for addSub.
const (
	bcastNone = iota // identical shapes
	bcastRow         // b is 1×c, repeated for every row of a
	bcastCol         // b is r×1, repeated for every column of a
)

// broadcastKind resolves how b aligns with a for element-wise operators.
func broadcastKind(a, b Matrix) (int, error) {
	if err := ValidateNotNil(a); err != nil {
		return 0, err
	}
	if err := ValidateNotNil(b); err != nil {
		return 0, err
	}
	switch {
	case a.Rows() == b.Rows() && a.Cols() == b.Cols():
		return bcastNone, nil
	case b.Rows() == 1 && b.Cols() == a.Cols():
		return bcastRow, nil
	case b.Cols() == 1 && b.Rows() == a.Rows():
		return bcastCol, nil
	default:
		return 0, validatorErrorf("broadcast", ErrDimensionMismatch)
	}
}

// addSub computes out = a + sign*b for sign ∈ {+1, -1}.
// Implementation:
//   - Stage 1: resolve the broadcast mode (identical shape, row vector, column vector).
//   - Stage 2: single flat walk over a; b's offset follows the broadcast mode.
//
// Behavior highlights:
//   - Inputs remain immutable; one allocation for the result.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func addSub(a, b Matrix, sign complex128, opTag string) (*Dense, error) {
	mode, err := broadcastKind(a, b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, db := asDense(a), asDense(b)
	res := newDense(da.r, da.c)

	var i, j, base int
	for i = 0; i < da.r; i++ {
		base = i * da.c
		for j = 0; j < da.c; j++ {
			switch mode {
			case bcastRow:
				res.data[base+j] = da.data[base+j] + sign*db.data[j]
			case bcastCol:
				res.data[base+j] = da.data[base+j] + sign*db.data[i]
			default:
				res.data[base+j] = da.data[base+j] + sign*db.data[base+j]
			}
		}
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B.
// Implementation:
//   - Stage 1: validate operands; B may be A-shaped, a 1×c row vector or an r×1 column vector.
//   - Stage 2: flat walk with the broadcast offset.
//
// Inputs:
//   - a: left operand (any Matrix).
//   - b: right operand: same shape as a, or a broadcastable vector.
//
// Returns:
//   - *Dense: new matrix with C[i,j] = A[i,j] + B[i,j] (broadcast applied).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (incompatible shapes).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - Subtracting ColumnMeans via Sub(a, means) centers every column in one call.
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, 1, opAdd) }

// Sub computes the element-wise difference C = A − B with the same broadcast rules as Add.
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Scale returns alpha·m.
func Scale(m Matrix, alpha complex128) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res := cloneDense(m)
	for k := range res.data {
		res.data[k] *= alpha
	}

	return res, nil
}

// DivScalar returns m / alpha.
// Errors: ErrDivisionByZero when alpha == 0.
func DivScalar(m Matrix, alpha complex128) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opDivScalar, err)
	}
	if alpha == 0 {
		return nil, matrixErrorf(opDivScalar, ErrDivisionByZero)
	}
	res := cloneDense(m)
	for k := range res.data {
		res.data[k] /= alpha
	}

	return res, nil
}

// AddScalar returns m + alpha element-wise.
func AddScalar(m Matrix, alpha complex128) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opAddScalar, err)
	}
	res := cloneDense(m)
	for k := range res.data {
		res.data[k] += alpha
	}

	return res, nil
}

// Negate returns −m.
func Negate(m Matrix) (*Dense, error) { return Scale(m, -1) }

// Hadamard computes the element-wise product C[i,j] = A[i,j]·B[i,j].
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Hadamard(a, b Matrix) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	da, db := asDense(a), asDense(b)
	res := newDense(da.r, da.c)
	for k := range res.data {
		res.data[k] = da.data[k] * db.data[k]
	}

	return res, nil
}

// HadamardDiv computes the element-wise quotient C[i,j] = A[i,j]/B[i,j].
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrDivisionByZero (any zero in B).
func HadamardDiv(a, b Matrix) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamardDiv, err)
	}
	da, db := asDense(a), asDense(b)
	res := newDense(da.r, da.c)
	for k := range res.data {
		if db.data[k] == 0 {
			return nil, matrixErrorf(opHadamardDiv, fmt.Errorf("element %d: %w", k, ErrDivisionByZero))
		}
		res.data[k] = da.data[k] / db.data[k]
	}

	return res, nil
}

// Map returns a new matrix with f applied to every element.
func Map(m Matrix, f func(v complex128) complex128) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMap, err)
	}
	res := cloneDense(m)
	for k, v := range res.data {
		res.data[k] = f(v)
	}

	return res, nil
}

// Mul computes the matrix product C = A × B with the default dispatch.
// Implementation:
//   - Stage 1: ValidateMulCompatible (a.Cols == b.Rows).
//   - Stage 2: dispatch:
//     b.Cols()==1          → mat-vec kernel, O(r·n);
//     min(r,n,c) < 64      → naive i-k-j triple loop;
//     otherwise            → Strassen on a power-of-two padded arena.
//
// Returns:
//   - *Dense: r×c product.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Determinism:
//   - Every path uses fixed loop orders; Strassen and naive agree within
//     round-off (not bit-for-bit).
//
// Complexity:
//   - Naive O(r·n·c); Strassen O(p^log2(7)) with p the padded size.
//
// AI-Hints:
//   - MulWith(a, b, WithStrassenThreshold(1)) forces Strassen on small inputs.
func Mul(a, b Matrix) (*Dense, error) { return MulWith(a, b) }

// MulWith is Mul with explicit dispatch options
// (WithStrassenThreshold, WithStrassenLeaf).
func MulWith(a, b Matrix, opts ...Option) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	o := gatherOptions(opts...)
	da, db := asDense(a), asDense(b)

	switch {
	case db.c == 1:
		return NewColumn(matVec(da, db.data)), nil
	case min(da.r, da.c, db.c) < o.strassenThreshold:
		return mulNaive(da, db), nil
	default:
		return mulStrassen(da, db, o.strassenLeaf), nil
	}
}

// MulNaive always runs the triple-loop kernel.
func MulNaive(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	return mulNaive(asDense(a), asDense(b)), nil
}

// MulStrassen always runs Strassen, whatever the operand sizes.
func MulStrassen(a, b Matrix, opts ...Option) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	o := gatherOptions(opts...)

	return mulStrassen(asDense(a), asDense(b), o.strassenLeaf), nil
}

// mulNaive is the i-k-j row-major kernel: the innermost loop walks both B and
// C rows contiguously.
func mulNaive(a, b *Dense) *Dense {
	res := newDense(a.r, b.c)
	var (
		i, j, k                int
		av                     complex128
		rowA, rowB, rowR       int
		aRows, aCols, bColumns = a.r, a.c, b.c
	)
	for i = 0; i < aRows; i++ {
		rowA = i * aCols
		rowR = i * bColumns
		for k = 0; k < aCols; k++ {
			av = a.data[rowA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowB = k * bColumns
			for j = 0; j < bColumns; j++ {
				res.data[rowR+j] += av * b.data[rowB+j]
			}
		}
	}

	return res
}

// MatVec computes y = m·x.
// Errors: ErrNilMatrix, ErrDimensionMismatch when len(x) != m.Cols().
// Complexity: O(r·c).
func MatVec(m Matrix, x []complex128) ([]complex128, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if len(x) != m.Cols() {
		return nil, matrixErrorf(opMatVec, ErrDimensionMismatch)
	}

	return matVec(asDense(m), x), nil
}

// matVec is the unchecked O(r·c) kernel.
func matVec(m *Dense, x []complex128) []complex128 {
	y := make([]complex128, m.r)
	var i, j, base int
	var sum complex128
	for i = 0; i < m.r; i++ {
		base = i * m.c
		sum = 0
		for j = 0; j < m.c; j++ {
			sum += m.data[base+j] * x[j]
		}
		y[i] = sum
	}

	return y
}

// Kronecker returns the Kronecker product A ⊗ B of shape (ra·rb)×(ca·cb).
func Kronecker(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opKronecker, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opKronecker, err)
	}
	da, db := asDense(a), asDense(b)
	rows, cols := da.r*db.r, da.c*db.c
	res := newDense(rows, cols)
	var i, j, p, q int
	var av complex128
	for i = 0; i < da.r; i++ {
		for j = 0; j < da.c; j++ {
			av = da.data[i*da.c+j]
			for p = 0; p < db.r; p++ {
				for q = 0; q < db.c; q++ {
					res.data[(i*db.r+p)*cols+j*db.c+q] = av * db.data[p*db.c+q]
				}
			}
		}
	}

	return res, nil
}

// Outer returns the outer product x·yᵀ (no conjugation) as a len(x)×len(y) matrix.
func Outer(x, y []complex128) *Dense {
	res := newDense(len(x), len(y))
	for i, xv := range x {
		for j, yv := range y {
			res.data[i*len(y)+j] = xv * yv
		}
	}

	return res
}

// maxIntegerPower bounds integer exponents so the uint64 conversion is exact.
const maxIntegerPower = 1 << 63

// Pow raises a square matrix to the power p.
// Implementation:
//   - Stage 1: validate square, non-empty.
//   - Stage 2: integer p ≥ 0 → binary exponentiation (p = 0 → identity).
//   - Stage 3: integer p < 0 → Inverse (fallback chain) raised to |p|.
//   - Stage 4: fractional p → eigen path V·Dᵖ·V⁻¹ with the principal power of each eigenvalue.
//
// Behavior highlights:
//   - Squaring uses Mul, so large operands take the Strassen path.
//   - A real input with a fractional power returns a real result; imaginary
//     round-off from the eigen path is discarded.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare.
//   - ErrNegativeEigenvalue when a real negative eigenvalue meets a fractional p.
//   - ErrInvalidRange for an integer |p| >= 2⁶³.
//   - Inverse errors for negative powers of a matrix the chain cannot invert.
//
// Complexity:
//   - Integer: O(log|p|) multiplications. Fractional: O(n³) for the eigen path.
func Pow(m Matrix, p float64, opts ...Option) (*Dense, error) {
	if err := ValidateSquareNonEmpty(m); err != nil {
		return nil, matrixErrorf(opPow, err)
	}
	if isNonFinite(p) {
		return nil, matrixErrorf(opPow, ErrNaNInf)
	}
	if p == math.Trunc(p) {
		if math.Abs(p) >= maxIntegerPower {
			return nil, matrixErrorf(opPow, fmt.Errorf("exponent %g: %w", p, ErrInvalidRange))
		}
		base := asDense(m)
		if p < 0 {
			inv, err := Inverse(m, opts...)
			if err != nil {
				return nil, matrixErrorf(opPow, err)
			}
			base, p = inv, -p
		}
		res, err := powInt(base, uint64(p), opts...)
		if err != nil {
			return nil, matrixErrorf(opPow, err)
		}

		return res, nil
	}

	res, err := powFractional(asDense(m), p, opts...)
	if err != nil {
		return nil, matrixErrorf(opPow, err)
	}

	return res, nil
}

// powInt computes m^p by repeated squaring.
func powInt(m *Dense, p uint64, opts ...Option) (*Dense, error) {
	result := identity(m.r)
	base := m.Copy()
	var err error
	for p > 0 {
		if p&1 == 1 {
			if result, err = MulWith(result, base, opts...); err != nil {
				return nil, err
			}
		}
		p >>= 1
		if p > 0 {
			if base, err = MulWith(base, base, opts...); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// powFractional computes V·Dᵖ·V⁻¹ through the eigen decomposition.
func powFractional(m *Dense, p float64, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	eig, err := Eigen(m, opts...)
	if err != nil {
		return nil, err
	}
	d := make([]complex128, len(eig.values))
	for i, lambda := range eig.values {
		if math.Abs(imag(lambda)) <= o.tol && real(lambda) < -o.tol {
			return nil, fmt.Errorf("eigenvalue %d = %g: %w", i, real(lambda), ErrNegativeEigenvalue)
		}
		d[i] = cmplx.Pow(lambda, complex(p, 0))
	}
	v := eig.vectors
	vInv, err := Inverse(v, opts...)
	if err != nil {
		return nil, err
	}
	vd, err := MulWith(v, NewDiagonal(d), opts...)
	if err != nil {
		return nil, err
	}
	res, err := MulWith(vd, vInv, opts...)
	if err != nil {
		return nil, err
	}
	if m.IsReal(0) {
		for k, x := range res.data {
			res.data[k] = complex(real(x), 0)
		}
	}

	return res, nil
}
