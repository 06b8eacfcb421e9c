// SPDX-License-Identifier: MIT

// Package matrix - QR and LQ factorizations.
//
// Purpose:
//   - Householder QR for any m×n input: A = Q·R, Q unitary m×m, R upper trapezoidal.
//   - Modified Gram–Schmidt thin QR for full-column-rank input.
//   - LQ through QR of Aᴴ, used for minimum-norm solves of wide systems.
//
// AI-Hints:
//   - Householder QR is the robust default; MGS is cheaper when only the thin
//     Q is needed and the columns are well separated.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/lvmat/scalar"
)

const (
	opQR   = "QR"
	opMGS  = "QRGramSchmidt"
	opLQ   = "LQ"
	opQRSv = "QR.Solve"
	opLQSv = "LQ.Solve"
)

// reflector is H = I − tau·v·vᴴ restricted to indices [start, start+len(v)).
type reflector struct {
	v     []complex128
	tau   float64
	start int
}

// makeReflector builds H with H·x = alpha·e1 where alpha = −sign(x0)·‖x‖.
// Choosing the sign opposite to x0 avoids cancellation in v0 = x0 − alpha.
// ok is false when x is already zero (H = I).
func makeReflector(x []complex128, start int) (h reflector, alpha complex128, ok bool) {
	var norm2 float64
	for _, xi := range x {
		norm2 += real(xi)*real(xi) + imag(xi)*imag(xi)
	}
	if norm2 == 0 {
		return reflector{}, 0, false
	}
	alpha = -scalar.Sign(x[0]) * complex(math.Sqrt(norm2), 0)
	v := make([]complex128, len(x))
	copy(v, x)
	v[0] -= alpha
	var vv float64
	for _, vi := range v {
		vv += real(vi)*real(vi) + imag(vi)*imag(vi)
	}
	if vv == 0 {
		return reflector{}, 0, false
	}

	return reflector{v: v, tau: 2 / vv, start: start}, alpha, true
}

// applyLeft performs A ← H·A on columns [c0, a.c).
func (h reflector) applyLeft(a *Dense, c0 int) {
	var s complex128
	for j := c0; j < a.c; j++ {
		s = 0
		for i, vi := range h.v {
			s += cmplx.Conj(vi) * a.data[(h.start+i)*a.c+j]
		}
		if s == 0 {
			continue
		}
		s *= complex(h.tau, 0)
		for i, vi := range h.v {
			a.data[(h.start+i)*a.c+j] -= vi * s
		}
	}
}

// applyRight performs A ← A·H on rows [r0, r1).
func (h reflector) applyRight(a *Dense, r0, r1 int) {
	var s complex128
	for i := r0; i < r1; i++ {
		row := a.data[i*a.c : (i+1)*a.c]
		s = 0
		for k, vk := range h.v {
			s += row[h.start+k] * vk
		}
		if s == 0 {
			continue
		}
		s *= complex(h.tau, 0)
		for k, vk := range h.v {
			row[h.start+k] -= s * cmplx.Conj(vk)
		}
	}
}

// QRResult is an immutable QR factorization A = Q·R.
type QRResult struct {
	q, r *Dense
	thin bool    // Q is m×n (Gram–Schmidt) instead of m×m
	tol  float64 // relative pivot floor used by Solve
}

// QR computes a Householder factorization of any non-empty m×n matrix.
// Implementation:
//   - Stage 1: copy A into R; Q starts as the m×m identity.
//   - Stage 2: for k < min(m−1, n): reflect column k below the diagonal to
//     alpha·e1, apply H to R from the left and accumulate Q ← Q·H.
//   - Stage 3: clear the sub-diagonal round-off of R.
//
// Returns:
//   - *QRResult: Q unitary (QᴴQ = I), R upper trapezoidal with A = Q·R.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrNaNInf (WithValidateNaNInf).
//
// Complexity:
//   - Time O(m·n·min(m,n) + m²·min(m,n)), Space O(m² + m·n).
func QR(m Matrix, opts ...Option) (*QRResult, error) {
	if err := ValidateNotEmpty(m); err != nil {
		return nil, matrixErrorf(opQR, err)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		if err := ValidateFinite(m); err != nil {
			return nil, matrixErrorf(opQR, err)
		}
	}
	q, r := householderQR(cloneDense(m))

	return &QRResult{q: q, r: r, tol: o.tol}, nil
}

// householderQR factorizes r in place and returns (Q, R).
func householderQR(r *Dense) (*Dense, *Dense) {
	rows, cols := r.r, r.c
	q := identity(rows)
	col := make([]complex128, rows)
	for k := 0; k < min(rows-1, cols); k++ {
		x := col[:rows-k]
		for i := k; i < rows; i++ {
			x[i-k] = r.data[i*cols+k]
		}
		h, alpha, ok := makeReflector(x, k)
		if !ok {
			continue
		}
		h.applyLeft(r, k)
		h.applyRight(q, 0, rows)
		r.data[k*cols+k] = alpha
		for i := k + 1; i < rows; i++ {
			r.data[i*cols+k] = 0
		}
	}

	return q, r
}

// Q returns a copy of the unitary factor.
func (f *QRResult) Q() *Dense { return f.q.Copy() }

// R returns a copy of the upper-triangular factor.
func (f *QRResult) R() *Dense { return f.r.Copy() }

// Reconstruct returns Q·R.
func (f *QRResult) Reconstruct() *Dense { return mulNaive(f.q, f.r) }

// CheckMatrix reports whether Q·R matches a within tol.
func (f *QRResult) CheckMatrix(a Matrix, tol float64) bool {
	return AllClose(f.Reconstruct(), a, tol)
}

// Solve returns the least-squares X minimizing ‖A·X − B‖ for rows >= cols.
// Implementation:
//   - Stage 1: C = Qᴴ·B (only the first n rows are needed).
//   - Stage 2: back-substitute R₁·X = C₁ with R₁ the leading n×n block.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (B.Rows != m or m < n), ErrSingular
//     (rank-deficient R₁: some |R[i,i]| <= tol·max|R|).
func (f *QRResult) Solve(b Matrix) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opQRSv, err)
	}
	m, n := f.q.r, f.r.c
	if b.Rows() != m || m < n {
		return nil, matrixErrorf(opQRSv, ErrDimensionMismatch)
	}
	db := asDense(b)
	k := db.c
	c := newDense(n, k)
	var i, j, l int
	var sum complex128
	for i = 0; i < n; i++ { // (Qᴴ·B)[i,j] = Σ_l conj(Q[l,i])·B[l,j]
		for j = 0; j < k; j++ {
			sum = 0
			for l = 0; l < m; l++ {
				sum += cmplx.Conj(f.q.data[l*f.q.c+i]) * db.data[l*k+j]
			}
			c.data[i*k+j] = sum
		}
	}
	r1, _ := f.r.Slice(0, n, 0, n)
	if err := checkDiagonal(r1, f.tol); err != nil {
		return nil, matrixErrorf(opQRSv, err)
	}
	x, err := backSubst(r1, c)
	if err != nil {
		return nil, matrixErrorf(opQRSv, err)
	}

	return x, nil
}

// QRGramSchmidt computes the thin factorization A = Q·R with modified
// Gram–Schmidt: Q is m×n with orthonormal columns, R is n×n upper triangular.
// Implementation:
//   - Stage 1: for column k, R[k,k] = ‖a_k‖, q_k = a_k / R[k,k].
//   - Stage 2: immediately orthogonalize every later column against q_k
//     (the "modified" ordering that keeps round-off from accumulating).
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrDimensionMismatch (m < n),
//     ErrSingular when a column is dependent (‖a_k‖ <= tol·‖A‖_max).
//
// Complexity:
//   - Time O(m·n²), Space O(m·n).
func QRGramSchmidt(m Matrix, opts ...Option) (*QRResult, error) {
	if err := ValidateNotEmpty(m); err != nil {
		return nil, matrixErrorf(opMGS, err)
	}
	rows, cols := m.Rows(), m.Cols()
	if rows < cols {
		return nil, matrixErrorf(opMGS, ErrDimensionMismatch)
	}
	o := gatherOptions(opts...)
	q := cloneDense(m)
	r := newDense(cols, cols)
	floor := o.tol * maxAbs(q)

	var i, j, k int
	var norm float64
	var dot complex128
	for k = 0; k < cols; k++ {
		norm = 0
		for i = 0; i < rows; i++ {
			v := q.data[i*cols+k]
			norm += real(v)*real(v) + imag(v)*imag(v)
		}
		norm = math.Sqrt(norm)
		if norm <= floor {
			return nil, matrixErrorf(opMGS, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		r.data[k*cols+k] = complex(norm, 0)
		for i = 0; i < rows; i++ {
			q.data[i*cols+k] /= complex(norm, 0)
		}
		for j = k + 1; j < cols; j++ {
			dot = 0
			for i = 0; i < rows; i++ {
				dot += cmplx.Conj(q.data[i*cols+k]) * q.data[i*cols+j]
			}
			r.data[k*cols+j] = dot
			for i = 0; i < rows; i++ {
				q.data[i*cols+j] -= dot * q.data[i*cols+k]
			}
		}
	}

	return &QRResult{q: q, r: r, thin: true, tol: o.tol}, nil
}

// LQResult is an immutable LQ factorization A = L·Q.
type LQResult struct {
	l, q *Dense
	tol  float64
}

// LQ computes A = L·Q with L lower trapezoidal (m×n) and Q unitary (n×n),
// by factorizing Aᴴ = Q'·R' and taking L = R'ᴴ, Q = Q'ᴴ.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix.
func LQ(m Matrix, opts ...Option) (*LQResult, error) {
	if err := ValidateNotEmpty(m); err != nil {
		return nil, matrixErrorf(opLQ, err)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		if err := ValidateFinite(m); err != nil {
			return nil, matrixErrorf(opLQ, err)
		}
	}
	q, r := householderQR(transpose(asDense(m), true))

	return &LQResult{l: transpose(r, true), q: transpose(q, true), tol: o.tol}, nil
}

// L returns a copy of the lower-trapezoidal factor.
func (f *LQResult) L() *Dense { return f.l.Copy() }

// Q returns a copy of the unitary factor.
func (f *LQResult) Q() *Dense { return f.q.Copy() }

// Reconstruct returns L·Q.
func (f *LQResult) Reconstruct() *Dense { return mulNaive(f.l, f.q) }

// CheckMatrix reports whether L·Q matches a within tol.
func (f *LQResult) CheckMatrix(a Matrix, tol float64) bool {
	return AllClose(f.Reconstruct(), a, tol)
}

// Solve returns the minimum-norm X with A·X = B for rows <= cols.
// Implementation:
//   - Stage 1: forward-substitute L₁·Y₁ = B with L₁ the leading m×m block.
//   - Stage 2: X = Qᴴ·[Y₁; 0].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (B.Rows != m or m > n), ErrSingular
//     (some |L[i,i]| <= tol·max|L|).
func (f *LQResult) Solve(b Matrix) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opLQSv, err)
	}
	m, n := f.l.r, f.q.r
	if b.Rows() != m || m > n {
		return nil, matrixErrorf(opLQSv, ErrDimensionMismatch)
	}
	l1, _ := f.l.Slice(0, m, 0, m)
	if err := checkDiagonal(l1, f.tol); err != nil {
		return nil, matrixErrorf(opLQSv, err)
	}
	y1, err := forwardSubst(l1, asDense(b), false)
	if err != nil {
		return nil, matrixErrorf(opLQSv, err)
	}
	y := newDense(n, y1.c)
	copy(y.data, y1.data)

	return mulNaive(transpose(f.q, true), y), nil
}
