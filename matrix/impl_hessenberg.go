// SPDX-License-Identifier: MIT

// Package matrix - Householder reduction to upper Hessenberg form.
//
// Purpose:
//   - A = Q·H·Qᴴ with H zero below the first sub-diagonal and Q unitary.
//   - Pre-conditioning step of the Schur iteration: one QR step on H costs
//     O(n²) instead of O(n³). Hermitian input reduces to tridiagonal form.

package matrix

import "math/cmplx"

const opHessenberg = "Hessenberg"

// HessenbergResult is an immutable reduction A = Q·H·Qᴴ.
type HessenbergResult struct {
	h, q *Dense
}

// Hessenberg reduces a square matrix to upper Hessenberg form.
// Implementation:
//   - Stage 1: for k = 0..n−3, build a reflector for H[k+1:n, k].
//   - Stage 2: apply it from the left (rows k+1..) and right (columns k+1..)
//     and accumulate Q ← Q·H_k.
//   - Stage 3: zero everything below the sub-diagonal exactly, and any
//     sub-diagonal entry with |h| <= tol·(|h_kk| + |h_k+1,k+1|).
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare, ErrNaNInf (WithValidateNaNInf).
//
// Complexity:
//   - Time O(10n³/3), Space O(n²).
func Hessenberg(m Matrix, opts ...Option) (*HessenbergResult, error) {
	if err := ValidateSquareNonEmpty(m); err != nil {
		return nil, matrixErrorf(opHessenberg, err)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		if err := ValidateFinite(m); err != nil {
			return nil, matrixErrorf(opHessenberg, err)
		}
	}
	h, q := hessenbergReduce(cloneDense(m), o.tol)

	return &HessenbergResult{h: h, q: q}, nil
}

// hessenbergReduce transforms h in place and returns (H, Q).
func hessenbergReduce(h *Dense, tol float64) (*Dense, *Dense) {
	n := h.r
	q := identity(n)
	col := make([]complex128, n)
	for k := 0; k+2 < n; k++ {
		x := col[:n-k-1]
		for i := k + 1; i < n; i++ {
			x[i-k-1] = h.data[i*n+k]
		}
		ref, _, ok := makeReflector(x, k+1)
		if !ok {
			continue
		}
		ref.applyLeft(h, k)
		ref.applyRight(h, 0, n)
		ref.applyRight(q, 0, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j+1 < i; j++ {
			h.data[i*n+j] = 0
		}
		if i > 0 {
			s := cmplx.Abs(h.data[(i-1)*n+i-1]) + cmplx.Abs(h.data[i*n+i])
			if cmplx.Abs(h.data[i*n+i-1]) <= tol*s {
				h.data[i*n+i-1] = 0
			}
		}
	}

	return h, q
}

// H returns a copy of the Hessenberg factor.
func (r *HessenbergResult) H() *Dense { return r.h.Copy() }

// Q returns a copy of the accumulated unitary transform.
func (r *HessenbergResult) Q() *Dense { return r.q.Copy() }

// Reconstruct returns Q·H·Qᴴ.
func (r *HessenbergResult) Reconstruct() *Dense {
	return mulNaive(mulNaive(r.q, r.h), transpose(r.q, true))
}

// CheckMatrix reports whether Q·H·Qᴴ matches a within tol.
func (r *HessenbergResult) CheckMatrix(a Matrix, tol float64) bool {
	return AllClose(r.Reconstruct(), a, tol)
}
