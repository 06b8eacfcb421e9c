// SPDX-License-Identifier: MIT

// Package matrix - LU factorization (Doolittle) with selectable pivoting.
//
// Purpose:
//   - Produce unit lower-triangular L and upper-triangular U with P·A·Q = L·U.
//   - P is present for partial/complete pivoting, Q only for complete pivoting.
//   - Serve determinants, first-choice square solves and the LU step of the
//     inverse chain.
//
// AI-Hints:
//   - PivotPartial (default) is the right choice for general dense input.
//   - PivotNone reproduces plain Doolittle and fails fast on a zero pivot.

package matrix

import (
	"fmt"
	"math/cmplx"
)

const opLU = "LU"

// LUResult is an immutable LU factorization. Accessors return copies.
type LUResult struct {
	l, u     *Dense
	p, q     *Dense // nil when the corresponding permutation is not applied
	rowPerm  []int  // row k of P·A is row rowPerm[k] of A
	colPerm  []int  // column k of A·Q is column colPerm[k] of A
	sign     int    // parity of all swaps: +1 or -1
	singular bool   // a numerically zero pivot was met
	scale    float64
	tol      float64
}

// LU computes the Doolittle factorization of a square matrix.
// Implementation:
//   - Stage 1: validate square/non-empty; copy A into a working buffer.
//   - Stage 2: for each column k choose the pivot (none/partial/complete),
//     swap with SwapRows/SwapCols bookkeeping, store multipliers below the
//     diagonal and eliminate with the row kernel.
//   - Stage 3: split the buffer into L (unit diagonal) and U; build P/Q.
//
// Behavior highlights:
//   - A pivot is "zero" when |pivot| <= tol·max|A|.
//   - PivotNone: a zero pivot is ErrSingular at factorization time.
//   - Pivoting: a zero pivot marks the result singular; Determinant() is 0
//     and Solve/Inverse return ErrSingular.
//
// Inputs:
//   - m: n×n matrix (any Matrix; *Dense avoids one copy through At).
//   - opts: WithPivoting, WithTolerance, WithValidateNaNInf.
//
// Returns:
//   - *LUResult with L, U and the permutations.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare, ErrNaNInf, ErrSingular (PivotNone).
//
// Determinism:
//   - Ties between equal-magnitude pivots resolve to the lowest index.
//
// Complexity:
//   - Time O(n³) (complete pivoting adds O(n³) comparisons), Space O(n²).
func LU(m Matrix, opts ...Option) (*LUResult, error) {
	if err := ValidateSquareNonEmpty(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		if err := ValidateFinite(m); err != nil {
			return nil, matrixErrorf(opLU, err)
		}
	}

	a := cloneDense(m)
	n := a.r
	res := &LUResult{
		rowPerm: make([]int, n),
		colPerm: make([]int, n),
		sign:    1,
		scale:   maxAbs(a),
		tol:     o.tol,
	}
	for i := range res.rowPerm {
		res.rowPerm[i], res.colPerm[i] = i, i
	}
	zeroPivot := o.tol * res.scale

	var (
		i, j, k, pr, pc int
		best, mag       float64
		pivot, f        complex128
	)
	for k = 0; k < n; k++ {
		pr, pc = k, k
		switch o.pivoting {
		case PivotPartial:
			best = -1
			for i = k; i < n; i++ {
				if mag = cmplx.Abs(a.data[i*n+k]); mag > best {
					best, pr = mag, i
				}
			}
		case PivotComplete:
			best = -1
			for i = k; i < n; i++ {
				for j = k; j < n; j++ {
					if mag = cmplx.Abs(a.data[i*n+j]); mag > best {
						best, pr, pc = mag, i, j
					}
				}
			}
		}
		if pr != k {
			a.swapRows(k, pr)
			res.rowPerm[k], res.rowPerm[pr] = res.rowPerm[pr], res.rowPerm[k]
			res.sign = -res.sign
		}
		if pc != k {
			a.swapCols(k, pc)
			res.colPerm[k], res.colPerm[pc] = res.colPerm[pc], res.colPerm[k]
			res.sign = -res.sign
		}

		pivot = a.data[k*n+k]
		if cmplx.Abs(pivot) <= zeroPivot {
			if o.pivoting == PivotNone {
				return nil, matrixErrorf(opLU, fmt.Errorf("pivot %d: %w", k, ErrSingular))
			}
			res.singular = true
			for i = k + 1; i < n; i++ {
				a.data[i*n+k] = 0 // column already numerically zero below the pivot
			}

			continue
		}
		for i = k + 1; i < n; i++ {
			f = a.data[i*n+k] / pivot
			if f != 0 {
				a.addRow(i, k, -f, k+1)
			}
			a.data[i*n+k] = f // multiplier is stored where the zero was produced
		}
	}

	res.l, res.u = newDense(n, n), newDense(n, n)
	for i = 0; i < n; i++ {
		res.l.data[i*n+i] = 1
		for j = 0; j < n; j++ {
			if j < i {
				res.l.data[i*n+j] = a.data[i*n+j]
			} else {
				res.u.data[i*n+j] = a.data[i*n+j]
			}
		}
	}
	if o.pivoting != PivotNone {
		res.p = permutationRows(res.rowPerm)
	}
	if o.pivoting == PivotComplete {
		res.q = permutationCols(res.colPerm)
	}

	return res, nil
}

// permutationRows builds P with P[k][perm[k]] = 1, so (P·A) row k = A row perm[k].
func permutationRows(perm []int) *Dense {
	n := len(perm)
	p := newDense(n, n)
	for k, src := range perm {
		p.data[k*n+src] = 1
	}

	return p
}

// permutationCols builds Q with Q[perm[k]][k] = 1, so (A·Q) column k = A column perm[k].
func permutationCols(perm []int) *Dense {
	n := len(perm)
	q := newDense(n, n)
	for k, src := range perm {
		q.data[src*n+k] = 1
	}

	return q
}

// L returns a copy of the unit lower-triangular factor.
func (r *LUResult) L() *Dense { return r.l.Copy() }

// U returns a copy of the upper-triangular factor.
func (r *LUResult) U() *Dense { return r.u.Copy() }

// P returns a copy of the row permutation, or nil without pivoting.
func (r *LUResult) P() *Dense {
	if r.p == nil {
		return nil
	}

	return r.p.Copy()
}

// Q returns a copy of the column permutation, or nil unless complete pivoting was used.
func (r *LUResult) Q() *Dense {
	if r.q == nil {
		return nil
	}

	return r.q.Copy()
}

// PivotSign returns the parity (+1/−1) of all row and column swaps.
func (r *LUResult) PivotSign() int { return r.sign }

// Determinant returns sign·∏ U[i,i]; 0 for a singular factorization.
func (r *LUResult) Determinant() complex128 {
	if r.singular {
		return 0
	}
	det := complex(float64(r.sign), 0)
	for _, d := range r.u.Diagonal() {
		det *= d
	}

	return det
}

// IsSingular reports whether any |U[i,i]| <= tol·max|A|.
// A non-positive tol uses the factorization tolerance.
func (r *LUResult) IsSingular(tol float64) bool {
	if r.singular {
		return true
	}
	if tol <= 0 {
		tol = r.tol
	}
	for _, d := range r.u.Diagonal() {
		if cmplx.Abs(d) <= tol*r.scale {
			return true
		}
	}

	return false
}

// Solve returns X with A·X = B.
// Implementation:
//   - Stage 1: Y = L⁻¹·(P·B) by forward substitution (unit diagonal).
//   - Stage 2: Z = U⁻¹·Y by back substitution.
//   - Stage 3: undo the column permutation: X[colPerm[k]] = Z[k].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (B.Rows != n), ErrSingular.
func (r *LUResult) Solve(b Matrix) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf("LU.Solve", err)
	}
	n := r.l.r
	if b.Rows() != n {
		return nil, matrixErrorf("LU.Solve", ErrDimensionMismatch)
	}
	if r.singular {
		return nil, matrixErrorf("LU.Solve", ErrSingular)
	}
	db := asDense(b)
	pb := newDense(n, db.c)
	for k, src := range r.rowPerm {
		copy(pb.data[k*db.c:(k+1)*db.c], db.data[src*db.c:(src+1)*db.c])
	}
	y, err := forwardSubst(r.l, pb, true)
	if err != nil {
		return nil, matrixErrorf("LU.Solve", err)
	}
	z, err := backSubst(r.u, y)
	if err != nil {
		return nil, matrixErrorf("LU.Solve", err)
	}
	x := newDense(n, db.c)
	for k, dst := range r.colPerm {
		copy(x.data[dst*db.c:(dst+1)*db.c], z.data[k*db.c:(k+1)*db.c])
	}

	return x, nil
}

// Inverse returns A⁻¹ = Solve(I).
func (r *LUResult) Inverse() (*Dense, error) {
	return r.Solve(identity(r.l.r))
}

// Reconstruct returns Pᵀ·L·U·Qᵀ, which equals the factorized matrix up to round-off.
func (r *LUResult) Reconstruct() *Dense {
	lu := mulNaive(r.l, r.u)
	n := lu.r
	out := newDense(n, n)
	for k, src := range r.rowPerm {
		for j, cs := range r.colPerm {
			out.data[src*n+cs] = lu.data[k*n+j]
		}
	}

	return out
}

// CheckMatrix reports whether Reconstruct() matches a within tol.
func (r *LUResult) CheckMatrix(a Matrix, tol float64) bool {
	return AllClose(r.Reconstruct(), a, tol)
}

// maxAbs returns max |a_ij| (0 for an empty matrix).
func maxAbs(d *Dense) float64 {
	var best float64
	for _, v := range d.data {
		if x := cmplx.Abs(v); x > best {
			best = x
		}
	}

	return best
}
