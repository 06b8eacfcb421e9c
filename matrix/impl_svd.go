// SPDX-License-Identifier: MIT

// Package matrix - singular value decomposition by one-sided Jacobi.
//
// Purpose:
//   - A = U·S·Vᴴ for any m×n input, singular values non-negative and descending.
//   - Engine of Rank, NormSpectral/NormTrace, ConditionNumber, PseudoInverse
//     and the SVD step of the inverse chain.
//
// Algorithm (Hestenes):
//   - Work on W = A (m >= n; wide input goes through Aᴴ) and V = I.
//   - For every column pair (p, q): γ = w_pᴴ·w_q = |γ|·e^{iφ}. Rotating
//     w̃_q = e^{−iφ}·w_q turns the pair real, then a plane rotation with
//     ζ = (β − α)/(2|γ|), t = sign(ζ)/(|ζ| + √(1+ζ²)), c = 1/√(1+t²), s = c·t
//     makes the columns orthogonal. The same rotation is applied to V,
//     preserving A·V = W.
//   - Sweep until no pair exceeds the orthogonality threshold.
//   - σ_j = ‖w_j‖, u_j = w_j/σ_j; zero columns get an orthonormal completion.
//
// AI-Hints:
//   - One-sided Jacobi computes small singular values to high relative
//     accuracy, which matters for Rank and PseudoInverse cut-offs.

package matrix

import (
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/floats"
)

const (
	opSVD     = "SVD"
	opSVDSv   = "SVD.Solve"
	opPinv    = "PseudoInverse"
	ulp       = 0x1p-52
	orthoCeil = 1e-15
)

// SVDResult is an immutable thin decomposition A = U·S·Vᴴ with k = min(m, n):
// U is m×k, S is k×k diagonal, V is n×k.
type SVDResult struct {
	u, v      *Dense
	s         []float64
	converged bool
	sweeps    int
}

// SVD computes the singular value decomposition of any non-empty matrix.
// Implementation:
//   - Stage 1: validate; transpose-conjugate wide input (m < n).
//   - Stage 2: one-sided Jacobi sweeps over column pairs (bounded by maxIterations).
//   - Stage 3: normalize columns into U, complete U for zero singular values,
//     sort triples by σ descending.
//   - Stage 4: swap U/V back for wide input.
//
// Returns:
//   - *SVDResult with Values(), U(), S(), V(), Rank(tol), Cond(), PseudoInverse(tol).
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrNaNInf, ErrNotConverged (WithStrictConvergence).
//
// Determinism:
//   - Fixed cyclic pair order; ties in σ keep column order (stable sort).
//
// Complexity:
//   - Time O(sweeps·m·n²), typically 6–10 sweeps. Space O(m·n + n²).
func SVD(m Matrix, opts ...Option) (*SVDResult, error) {
	if err := ValidateNotEmpty(m); err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	o := gatherOptions(opts...)

	wide := m.Rows() < m.Cols()
	var w *Dense
	if wide {
		w = transpose(asDense(m), true)
	} else {
		w = cloneDense(m)
	}

	res := jacobiSVD(w, o)
	if wide {
		res.u, res.v = res.v, res.u
	}
	if !res.converged {
		if err := reportNonConvergence(opSVD, o, res.sweeps, 0); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// jacobiSVD orthogonalizes the columns of w (m >= n) in place.
func jacobiSVD(w *Dense, o Options) *SVDResult {
	rows, cols := w.r, w.c
	v := identity(cols)
	threshold := math.Max(math.Min(o.tol, orthoCeil), ulp)

	var (
		sweep, p, q, i        int
		alpha, beta, absGamma float64
		gamma, phase          complex128
		zeta, t, c, s         float64
		rotated, converged    bool
	)
	for sweep = 0; sweep < o.maxIter; sweep++ {
		rotated = false
		for p = 0; p < cols-1; p++ {
			for q = p + 1; q < cols; q++ {
				alpha, beta, gamma = columnGram(w, p, q)
				absGamma = cmplx.Abs(gamma)
				if alpha == 0 || beta == 0 || absGamma <= threshold*math.Sqrt(alpha*beta) {
					continue
				}
				rotated = true
				phase = cmplx.Conj(gamma) / complex(absGamma, 0) // e^{−iφ}
				zeta = (beta - alpha) / (2 * absGamma)
				t = 1 / (math.Abs(zeta) + math.Sqrt(1+zeta*zeta))
				if zeta < 0 {
					t = -t
				}
				c = 1 / math.Sqrt(1+t*t)
				s = c * t
				rotateColumns(w, p, q, c, s, phase)
				rotateColumns(v, p, q, c, s, phase)
			}
		}
		if !rotated {
			converged = true

			break
		}
	}

	sigma := make([]float64, cols)
	col := make([]float64, 2*rows)
	for j := 0; j < cols; j++ {
		for i = 0; i < rows; i++ {
			x := w.data[i*cols+j]
			col[2*i], col[2*i+1] = real(x), imag(x)
		}
		sigma[j] = floats.Norm(col, 2)
	}
	floor := ulp * float64(max(rows, cols)) * math.Max(floats.Max(sigma), math.SmallestNonzeroFloat64)
	zero := make([]bool, cols)
	for j := 0; j < cols; j++ {
		if sigma[j] <= floor {
			sigma[j], zero[j] = 0, true

			continue
		}
		for i = 0; i < rows; i++ {
			w.data[i*cols+j] /= complex(sigma[j], 0)
		}
	}
	completeOrthonormal(w, zero)

	order := make([]int, cols)
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(x, y int) bool { return sigma[order[x]] > sigma[order[y]] })
	u := newDense(rows, cols)
	vs := newDense(cols, cols)
	values := make([]float64, cols)
	for k, j := range order {
		values[k] = sigma[j]
		for i = 0; i < rows; i++ {
			u.data[i*cols+k] = w.data[i*cols+j]
		}
		for i = 0; i < cols; i++ {
			vs.data[i*cols+k] = v.data[i*cols+j]
		}
	}

	return &SVDResult{u: u, v: vs, s: values, converged: converged, sweeps: sweep}
}

// columnGram returns ‖w_p‖², ‖w_q‖² and w_pᴴ·w_q.
func columnGram(w *Dense, p, q int) (float64, float64, complex128) {
	var (
		alpha, beta float64
		gamma       complex128
		xp, xq      complex128
	)
	for i := 0; i < w.r; i++ {
		xp, xq = w.data[i*w.c+p], w.data[i*w.c+q]
		alpha += real(xp)*real(xp) + imag(xp)*imag(xp)
		beta += real(xq)*real(xq) + imag(xq)*imag(xq)
		gamma += cmplx.Conj(xp) * xq
	}

	return alpha, beta, gamma
}

// rotateColumns applies new_p = c·x_p − s·x̃_q, new_q = s·x_p + c·x̃_q with x̃_q = phase·x_q.
func rotateColumns(a *Dense, p, q int, c, s float64, phase complex128) {
	cc, sc := complex(c, 0), complex(s, 0)
	var xp, xq complex128
	for i := 0; i < a.r; i++ {
		xp, xq = a.data[i*a.c+p], phase*a.data[i*a.c+q]
		a.data[i*a.c+p] = cc*xp - sc*xq
		a.data[i*a.c+q] = sc*xp + cc*xq
	}
}

// completeOrthonormal replaces the flagged columns of u with unit vectors
// orthogonal to every other column, drawn from the standard basis by
// Gram–Schmidt (two passes).
func completeOrthonormal(u *Dense, zero []bool) {
	rows, cols := u.r, u.c
	cand := make([]complex128, rows)
	next := 0
	for j := 0; j < cols; j++ {
		if !zero[j] {
			continue
		}
		for ; next < rows; next++ {
			clear(cand)
			cand[next] = 1
			for pass := 0; pass < 2; pass++ {
				for k := 0; k < cols; k++ {
					if k == j || (zero[k] && k > j) {
						continue
					}
					var dot complex128
					for i := 0; i < rows; i++ {
						dot += cmplx.Conj(u.data[i*cols+k]) * cand[i]
					}
					for i := 0; i < rows; i++ {
						cand[i] -= dot * u.data[i*cols+k]
					}
				}
			}
			var norm float64
			for _, x := range cand {
				norm += real(x)*real(x) + imag(x)*imag(x)
			}
			norm = math.Sqrt(norm)
			if norm > 0.5 {
				for i := 0; i < rows; i++ {
					u.data[i*cols+j] = cand[i] / complex(norm, 0)
				}
				next++

				break
			}
		}
	}
}

// U returns a copy of the left singular vectors (m×k).
func (r *SVDResult) U() *Dense { return r.u.Copy() }

// V returns a copy of the right singular vectors (n×k).
func (r *SVDResult) V() *Dense { return r.v.Copy() }

// S returns diag(σ) as a k×k matrix.
func (r *SVDResult) S() *Dense { return NewDiagonalReal(r.s) }

// Values returns a copy of the singular values, descending.
func (r *SVDResult) Values() []float64 {
	out := make([]float64, len(r.s))
	copy(out, r.s)

	return out
}

// Converged reports whether the Jacobi sweeps reached orthogonality.
func (r *SVDResult) Converged() bool { return r.converged }

// Sweeps returns the number of full sweeps performed.
func (r *SVDResult) Sweeps() int { return r.sweeps }

// Rank counts σ_i > tol·σ_max.
func (r *SVDResult) Rank(tol float64) int {
	if len(r.s) == 0 || r.s[0] == 0 {
		return 0
	}
	cut := tol * r.s[0]
	rank := 0
	for _, s := range r.s {
		if s > cut {
			rank++
		}
	}

	return rank
}

// Cond returns σ_max/σ_min, +Inf when σ_min is zero.
func (r *SVDResult) Cond() float64 {
	smin := r.s[len(r.s)-1]
	if smin == 0 {
		return math.Inf(1)
	}

	return r.s[0] / smin
}

// PseudoInverse returns A⁺ = V·S⁺·Uᴴ, inverting only σ_i > tol·σ_max.
func (r *SVDResult) PseudoInverse(tol float64) *Dense {
	m, n, k := r.u.r, r.v.r, len(r.s)
	out := newDense(n, m)
	if k == 0 || r.s[0] == 0 {
		return out
	}
	cut := tol * r.s[0]
	var (
		i, j, l int
		inv     complex128
	)
	for l = 0; l < k; l++ {
		if r.s[l] <= cut {
			break // descending
		}
		inv = complex(1/r.s[l], 0)
		for i = 0; i < n; i++ {
			vi := r.v.data[i*k+l] * inv
			if vi == 0 {
				continue
			}
			for j = 0; j < m; j++ {
				out.data[i*m+j] += vi * cmplx.Conj(r.u.data[j*k+l])
			}
		}
	}

	return out
}

// Solve returns the minimum-norm least-squares X = A⁺·B (cut-off DefaultTolerance).
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func (r *SVDResult) Solve(b Matrix) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSVDSv, err)
	}
	if b.Rows() != r.u.r {
		return nil, matrixErrorf(opSVDSv, ErrDimensionMismatch)
	}

	return mulNaive(r.PseudoInverse(DefaultTolerance), asDense(b)), nil
}

// Reconstruct returns U·S·Vᴴ.
func (r *SVDResult) Reconstruct() *Dense {
	return mulNaive(mulNaive(r.u, r.S()), transpose(r.v, true))
}

// CheckMatrix reports whether U·S·Vᴴ matches a within tol.
func (r *SVDResult) CheckMatrix(a Matrix, tol float64) bool {
	return AllClose(r.Reconstruct(), a, tol)
}

// PseudoInverse returns the Moore–Penrose pseudo-inverse of any non-empty
// matrix via SVD, discarding σ_i <= tol·σ_max.
//
// Errors:
//   - SVD errors; panics never.
func PseudoInverse(m Matrix, tol float64, opts ...Option) (*Dense, error) {
	res, err := SVD(m, opts...)
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}

	return res.PseudoInverse(tol), nil
}
