// SPDX-License-Identifier: MIT

// Package matrix - Schur decomposition by shifted QR iteration.
//
// Purpose:
//   - A = Q·T·Qᴴ with Q unitary and T upper triangular (quasi-triangular when
//     the iteration budget runs out before every block deflates).
//   - Engine of Eigen, SolveSchur and the fractional Pow path.
//
// Algorithm:
//   - Reduce to Hessenberg form (impl_hessenberg.go).
//   - On the active window [lo, hi]: subtract a Wilkinson shift μ, run one
//     Givens QR sweep (left rotations zero the sub-diagonal, right rotations
//     restore Hessenberg form), add μ back. Rotations also update the
//     rows/columns outside the window so T stays a similarity of A.
//   - Deflate when |H[hi,hi−1]| <= tol·(|H[hi,hi]| + |H[hi−1,hi−1]|).
//   - Every exceptionalShiftPeriod stalled steps, use an ad-hoc shift to break cycles.
//
// AI-Hints:
//   - Complex shifts let real input with complex-conjugate eigenvalues reach a
//     triangular T; Eigen still handles an unresolved 2×2 block via its
//     trace/determinant.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
)

const (
	opSchur   = "Schur"
	opSchurSv = "Schur.Solve"

	// exceptionalShiftPeriod: stalled steps between two ad-hoc shifts.
	exceptionalShiftPeriod = 10
	// exceptionalShiftScale scales |H[hi,hi−1]| into the ad-hoc shift.
	exceptionalShiftScale = 0.75
)

// SchurResult is an immutable Schur decomposition A = Q·T·Qᴴ.
type SchurResult struct {
	q, t       *Dense
	converged  bool
	iterations int
	tol        float64
}

// Schur computes the complex Schur form of a square matrix.
// Implementation:
//   - Stage 1: validate; Hessenberg-reduce a copy (H, Q).
//   - Stage 2: shifted QR iteration with deflation, accumulating Q.
//   - Stage 3: report non-convergence (zap Warn; ErrNotConverged when strict).
//
// Returns:
//   - *SchurResult with Converged() telling whether every sub-diagonal entry deflated.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare, ErrNaNInf,
//     ErrNotConverged (WithStrictConvergence only).
//
// Determinism:
//   - Fixed sweep order and shift schedule: identical input gives identical output.
//
// Complexity:
//   - Time O(n³) typical (≈ 2 iterations per eigenvalue), bounded by
//     maxIterations steps per eigenvalue. Space O(n²).
func Schur(m Matrix, opts ...Option) (*SchurResult, error) {
	if err := ValidateSquareNonEmpty(m); err != nil {
		return nil, matrixErrorf(opSchur, err)
	}
	o := gatherOptions(opts...)
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opSchur, err)
	}

	res := schurDecompose(cloneDense(m), o)
	if !res.converged {
		if err := reportNonConvergence(opSchur, o, res.iterations, subdiagonalResidual(res.t)); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// schurDecompose runs Hessenberg reduction plus the QR iteration on a (consumed).
func schurDecompose(a *Dense, o Options) *SchurResult {
	h, z := hessenbergReduce(a, o.tol)
	iterations, converged := schurIterate(h, z, o)

	return &SchurResult{q: z, t: h, converged: converged, iterations: iterations, tol: o.tol}
}

// schurIterate drives H (Hessenberg) to triangular form in place,
// accumulating the rotations into z. It returns the total QR steps and
// whether every eigenvalue deflated.
func schurIterate(h, z *Dense, o Options) (int, bool) {
	n := h.r
	normH := math.Max(maxAbs(h), math.SmallestNonzeroFloat64)
	total, stall := 0, 0
	hi := n - 1
	for hi > 0 {
		lo := deflationPoint(h, hi, o.tol, normH)
		if lo == hi {
			hi-- // 1×1 block converged
			stall = 0

			continue
		}
		if stall >= o.maxIter {
			return total, false
		}

		var mu complex128
		if stall > 0 && stall%exceptionalShiftPeriod == 0 {
			sub := cmplx.Abs(h.data[hi*n+hi-1])
			mu = h.data[hi*n+hi] + complex(exceptionalShiftScale*sub, exceptionalShiftScale*sub)
		} else {
			mu = wilkinsonShift(h, hi)
		}
		qrSweep(h, z, lo, hi, mu)
		total++
		stall++
	}

	return total, true
}

// deflationPoint returns the start of the active window ending at hi:
// the largest lo <= hi with H[lo,lo−1] negligible (set to exact zero).
func deflationPoint(h *Dense, hi int, tol, normH float64) int {
	n := h.r
	for l := hi; l > 0; l-- {
		s := cmplx.Abs(h.data[(l-1)*n+l-1]) + cmplx.Abs(h.data[l*n+l])
		if s == 0 {
			s = normH
		}
		if cmplx.Abs(h.data[l*n+l-1]) <= tol*s {
			h.data[l*n+l-1] = 0

			return l
		}
	}

	return 0
}

// wilkinsonShift returns the eigenvalue of the trailing 2×2 block of the
// window closer to H[hi,hi].
func wilkinsonShift(h *Dense, hi int) complex128 {
	n := h.r
	a := h.data[(hi-1)*n+hi-1]
	b := h.data[(hi-1)*n+hi]
	c := h.data[hi*n+hi-1]
	d := h.data[hi*n+hi]
	l1, l2 := eig2x2(a, b, c, d)
	if cmplx.Abs(l1-d) <= cmplx.Abs(l2-d) {
		return l1
	}

	return l2
}

// eig2x2 solves λ² − tr·λ + det = 0 for [[a, b], [c, d]]:
// λ = (tr ± √(tr² − 4·det)) / 2.
func eig2x2(a, b, c, d complex128) (complex128, complex128) {
	tr := a + d
	det := a*d - b*c
	disc := cmplx.Sqrt(tr*tr - 4*det)

	return (tr + disc) / 2, (tr - disc) / 2
}

// givens returns (c, s) with c real such that
// [c, s; −conj(s), c]·[a; b] = [r; 0].
func givens(a, b complex128) (float64, complex128) {
	if b == 0 {
		return 1, 0
	}
	absA := cmplx.Abs(a)
	if absA == 0 {
		return 0, 1
	}
	r := math.Hypot(absA, cmplx.Abs(b))

	return absA / r, (a / complex(absA, 0)) * cmplx.Conj(b) / complex(r, 0)
}

// qrSweep performs one explicitly shifted QR step on H[lo:hi+1, lo:hi+1]:
// H − μI = G·R, H ← R·Gᴴ + μI, Z ← Z·Gᴴ.
func qrSweep(h, z *Dense, lo, hi int, mu complex128) {
	n := h.r
	var (
		i, j, k int
		x, y    complex128
	)
	for i = lo; i <= hi; i++ {
		h.data[i*n+i] -= mu
	}

	cs := make([]float64, hi-lo)
	ss := make([]complex128, hi-lo)
	for k = lo; k < hi; k++ {
		c, s := givens(h.data[k*n+k], h.data[(k+1)*n+k])
		cs[k-lo], ss[k-lo] = c, s
		cc := complex(c, 0)
		for j = k; j < n; j++ {
			x, y = h.data[k*n+j], h.data[(k+1)*n+j]
			h.data[k*n+j] = cc*x + s*y
			h.data[(k+1)*n+j] = -cmplx.Conj(s)*x + cc*y
		}
	}

	for k = lo; k < hi; k++ {
		cc, s := complex(cs[k-lo], 0), ss[k-lo]
		sc := cmplx.Conj(s)
		for i = 0; i <= min(k+1, hi); i++ {
			x, y = h.data[i*n+k], h.data[i*n+k+1]
			h.data[i*n+k] = x*cc + y*sc
			h.data[i*n+k+1] = -x*s + y*cc
		}
		for i = 0; i < n; i++ {
			x, y = z.data[i*n+k], z.data[i*n+k+1]
			z.data[i*n+k] = x*cc + y*sc
			z.data[i*n+k+1] = -x*s + y*cc
		}
	}

	for i = lo; i <= hi; i++ {
		h.data[i*n+i] += mu
	}
}

// subdiagonalResidual returns max |T[i,i−1]|: 0 for a fully triangular T.
func subdiagonalResidual(t *Dense) float64 {
	var worst float64
	for i := 1; i < t.r; i++ {
		worst = math.Max(worst, cmplx.Abs(t.data[i*t.c+i-1]))
	}

	return worst
}

// Q returns a copy of the unitary Schur vectors.
func (r *SchurResult) Q() *Dense { return r.q.Copy() }

// T returns a copy of the (quasi-)upper-triangular Schur form.
func (r *SchurResult) T() *Dense { return r.t.Copy() }

// Converged reports whether every eigenvalue deflated within the budget.
func (r *SchurResult) Converged() bool { return r.converged }

// Iterations returns the number of QR steps performed.
func (r *SchurResult) Iterations() int { return r.iterations }

// Reconstruct returns Q·T·Qᴴ.
func (r *SchurResult) Reconstruct() *Dense {
	return mulNaive(mulNaive(r.q, r.t), transpose(r.q, true))
}

// CheckMatrix reports whether Q·T·Qᴴ matches a within tol.
func (r *SchurResult) CheckMatrix(a Matrix, tol float64) bool {
	return AllClose(r.Reconstruct(), a, tol)
}

// Solve returns X with A·X = B through A = Q·T·Qᴴ:
// X = Q·T⁻¹·(Qᴴ·B) with T⁻¹ applied by back substitution.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (|T[i,i]| <= tol·max|T|),
//     ErrNotConverged when T is not triangular.
func (r *SchurResult) Solve(b Matrix) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSchurSv, err)
	}
	if b.Rows() != r.t.r {
		return nil, matrixErrorf(opSchurSv, ErrDimensionMismatch)
	}
	if !r.converged {
		return nil, matrixErrorf(opSchurSv, ErrNotConverged)
	}
	if err := checkDiagonal(r.t, r.tol); err != nil {
		return nil, matrixErrorf(opSchurSv, fmt.Errorf("T: %w", err))
	}
	c := mulNaive(transpose(r.q, true), asDense(b))
	y, err := backSubst(r.t, c)
	if err != nil {
		return nil, matrixErrorf(opSchurSv, fmt.Errorf("T: %w", err))
	}

	return mulNaive(r.q, y), nil
}
