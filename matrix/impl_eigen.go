// SPDX-License-Identifier: MIT

// Package matrix - eigenvalues and eigenvectors.
//
// Purpose:
//   - Eigen: general square input through the Schur form.
//     Hermitian input: Hessenberg reduction yields a tridiagonal matrix, the
//     QR iteration diagonalizes it, and the accumulated Q holds orthonormal
//     eigenvectors. Values are real and sorted ascending.
//     Other input: eigenvalues from T's 1×1 blocks (and the quadratic formula
//     for any unresolved 2×2 block); eigenvectors by back substitution on T,
//     mapped through Q and normalized to unit length.
//   - EigenSym: cyclic Jacobi rotations for real symmetric input, an
//     independent path used to cross-check Eigen.
//
// AI-Hints:
//   - Check Converged() before trusting the result in production paths, or
//     pass WithStrictConvergence to get ErrNotConverged instead.

package matrix

import (
	"math"
	"math/cmplx"
	"sort"
)

const (
	opEigen    = "Eigen"
	opEigenSym = "EigenSym"
)

// EigenResult is an immutable eigen decomposition.
type EigenResult struct {
	values     []complex128
	vectors    *Dense // column k is the eigenvector of values[k]
	hermitian  bool
	converged  bool
	iterations int
}

// Eigen computes eigenvalues and eigenvectors of a square matrix.
// Implementation:
//   - Stage 1: validate square/non-empty/finite; detect Hermitian input within tol.
//   - Stage 2: Schur decomposition (Hessenberg + shifted QR).
//   - Stage 3: extract values from T (quadratic formula on unresolved 2×2 blocks).
//   - Stage 4: vectors: Hermitian → columns of Q; general → back substitution
//     on (T − λI)·y = 0 with y_k = 1, then v = Q·y normalized.
//
// Returns:
//   - *EigenResult: Values(), Vectors(), VectorMatrix(), Converged(), Iterations().
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare, ErrNaNInf,
//     ErrNotConverged (WithStrictConvergence only).
//
// Determinism:
//   - Hermitian values are sorted ascending; general values follow T's diagonal.
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// AI-Hints:
//   - Defective matrices (Jordan blocks) have no full eigenvector basis; the
//     back substitution then returns nearly parallel vectors.
func Eigen(m Matrix, opts ...Option) (*EigenResult, error) {
	if err := ValidateSquareNonEmpty(m); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	o := gatherOptions(opts...)
	a := cloneDense(m)
	hermitian := ValidateHermitian(a, o.tol*math.Max(1, maxAbs(a))) == nil

	sr := schurDecompose(a, o)
	if !sr.converged {
		if err := reportNonConvergence(opEigen, o, sr.iterations, subdiagonalResidual(sr.t)); err != nil {
			return nil, err
		}
	}

	res := &EigenResult{hermitian: hermitian, converged: sr.converged, iterations: sr.iterations}
	if hermitian {
		res.values, res.vectors = hermitianPairs(sr.t, sr.q)
	} else {
		res.values = schurValues(sr.t, o.tol)
		res.vectors = schurVectors(sr.t, sr.q, res.values)
	}

	return res, nil
}

// hermitianPairs reads real eigenvalues off diag(T) and sorts the columns of Q with them.
func hermitianPairs(t, q *Dense) ([]complex128, *Dense) {
	n := t.r
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return real(t.data[order[x]*n+order[x]]) < real(t.data[order[y]*n+order[y]])
	})
	values := make([]complex128, n)
	vectors := newDense(n, n)
	for k, src := range order {
		values[k] = complex(real(t.data[src*n+src]), 0)
		for i := 0; i < n; i++ {
			vectors.data[i*n+k] = q.data[i*n+src]
		}
	}

	return values, vectors
}

// schurValues extracts eigenvalues from a (quasi-)triangular T.
// A non-negligible T[k+1,k] marks an unresolved 2×2 block solved by eig2x2.
func schurValues(t *Dense, tol float64) []complex128 {
	n := t.r
	values := make([]complex128, n)
	for k := 0; k < n; k++ {
		if k+1 < n {
			sub := cmplx.Abs(t.data[(k+1)*n+k])
			s := cmplx.Abs(t.data[k*n+k]) + cmplx.Abs(t.data[(k+1)*n+k+1])
			if sub > tol*s && sub != 0 {
				values[k], values[k+1] = eig2x2(t.data[k*n+k], t.data[k*n+k+1], t.data[(k+1)*n+k], t.data[(k+1)*n+k+1])
				k++

				continue
			}
		}
		values[k] = t.data[k*n+k]
	}

	return values
}

// schurVectors solves (T − λ_k I)·y = 0 by back substitution (y_k = 1,
// y_j = 0 for j > k) and maps v_k = Q·y, normalized to ‖v_k‖₂ = 1.
// Tiny denominators (repeated eigenvalues) are replaced by ulp·‖T‖.
func schurVectors(t, q *Dense, values []complex128) *Dense {
	n := t.r
	small := math.Max(maxAbs(t), 1) * 1e-14
	vectors := newDense(n, n)
	y := make([]complex128, n)
	var (
		i, j, k int
		sum, d  complex128
	)
	for k = 0; k < n; k++ {
		lambda := values[k]
		clear(y)
		y[k] = 1
		for i = k - 1; i >= 0; i-- {
			sum = 0
			for j = i + 1; j <= k; j++ {
				sum += t.data[i*n+j] * y[j]
			}
			d = t.data[i*n+i] - lambda
			if cmplx.Abs(d) < small {
				d = complex(small, 0)
			}
			y[i] = -sum / d
		}
		var norm float64
		for i = 0; i < n; i++ {
			sum = 0
			for j = 0; j <= k; j++ {
				sum += q.data[i*n+j] * y[j]
			}
			vectors.data[i*n+k] = sum
			norm += real(sum)*real(sum) + imag(sum)*imag(sum)
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		for i = 0; i < n; i++ {
			vectors.data[i*n+k] /= complex(norm, 0)
		}
	}

	return vectors
}

// Values returns a copy of the eigenvalues.
func (r *EigenResult) Values() []complex128 {
	out := make([]complex128, len(r.values))
	copy(out, r.values)

	return out
}

// RealValues returns the real parts of the eigenvalues and whether every
// imaginary part is within tol.
func (r *EigenResult) RealValues(tol float64) ([]float64, bool) {
	out := make([]float64, len(r.values))
	allReal := true
	for i, v := range r.values {
		out[i] = real(v)
		if math.Abs(imag(v)) > tol {
			allReal = false
		}
	}

	return out, allReal
}

// Vectors returns the eigenvectors as n×1 column matrices.
func (r *EigenResult) Vectors() []*Dense {
	out := make([]*Dense, r.vectors.c)
	for k := range out {
		col, _ := r.vectors.Col(k)
		out[k] = NewColumn(col)
	}

	return out
}

// VectorMatrix returns the eigenvectors as columns of one n×n matrix V.
func (r *EigenResult) VectorMatrix() *Dense { return r.vectors.Copy() }

// ValueMatrix returns D = diag(values).
func (r *EigenResult) ValueMatrix() *Dense { return NewDiagonal(r.values) }

// Converged reports whether the underlying Schur iteration converged.
func (r *EigenResult) Converged() bool { return r.converged }

// Iterations returns the number of QR steps performed.
func (r *EigenResult) Iterations() int { return r.iterations }

// Hermitian reports whether the Hermitian path (orthonormal V) was used.
func (r *EigenResult) Hermitian() bool { return r.hermitian }

// Reconstruct returns V·D·V⁻¹ (V·D·Vᴴ on the Hermitian path).
// Errors: inverse-chain errors when V cannot be inverted.
func (r *EigenResult) Reconstruct() (*Dense, error) {
	vd := mulNaive(r.vectors, NewDiagonal(r.values))
	if r.hermitian {
		return mulNaive(vd, transpose(r.vectors, true)), nil
	}
	vInv, err := Inverse(r.vectors)
	if err != nil {
		return nil, matrixErrorf("Eigen.Reconstruct", err)
	}

	return mulNaive(vd, vInv), nil
}

// CheckMatrix reports whether every pair satisfies ‖A·v − λ·v‖_max <= tol·max(1, ‖A‖_max).
func (r *EigenResult) CheckMatrix(a Matrix, tol float64) bool {
	if a == nil || a.Rows() != r.vectors.r || a.Cols() != r.vectors.r {
		return false
	}
	da := asDense(a)
	n := da.r
	bound := tol * math.Max(1, maxAbs(da))
	v := make([]complex128, n)
	for k, lambda := range r.values {
		for i := 0; i < n; i++ {
			v[i] = r.vectors.data[i*n+k]
		}
		av := matVec(da, v)
		for i := 0; i < n; i++ {
			if cmplx.Abs(av[i]-lambda*v[i]) > bound {
				return false
			}
		}
	}

	return true
}

// EigenSym computes eigenvalues and eigenvectors of a real symmetric matrix
// with cyclic-by-pivot Jacobi rotations.
// Implementation:
//   - Stage 1: validate square, real and symmetric within tol.
//   - Stage 2: repeatedly pick the largest off-diagonal |A[p,q]|, rotate it to
//     zero (θ = (a_qq − a_pp)/(2·a_pq), t = sign(θ)/(|θ| + √(θ²+1)),
//     c = 1/√(1+t²), s = t·c) and accumulate the rotation into V.
//   - Stage 3: stop when max off-diagonal < tol; sort pairs ascending.
//
// Returns:
//   - []float64: eigenvalues ascending.
//   - *Dense: V with eigenvectors as columns (real).
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare, ErrAsymmetry (including a
//     non-negligible imaginary part), ErrNotConverged (WithStrictConvergence).
//
// Complexity:
//   - Time O(n²) per rotation (pivot search), typically O(n²) rotations.
func EigenSym(m Matrix, opts ...Option) ([]float64, *Dense, error) {
	if err := ValidateSquareNonEmpty(m); err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	o := gatherOptions(opts...)
	src := asDense(m)
	if !src.IsReal(o.tol) {
		return nil, nil, matrixErrorf(opEigenSym, ErrAsymmetry)
	}
	if err := ValidateHermitian(src, o.tol*math.Max(1, maxAbs(src))); err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}

	n := src.r
	a := make([]float64, n*n)
	for k, v := range src.data {
		a[k] = real(v)
	}
	v := make([]float64, n*n)
	for i := 0; i < n; i++ {
		v[i*n+i] = 1
	}

	var (
		iter, i, j, p, q   int
		maxOff, off        float64
		app, aqq, apq      float64
		aip, aiq, vip, viq float64
		theta, t, c, s     float64
		converged          bool
	)
	limit := o.maxIter * max(n*n, 1)
	for iter = 0; iter < limit; iter++ {
		maxOff = 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				if off = math.Abs(a[i*n+j]); off > maxOff {
					maxOff, p, q = off, i, j
				}
			}
		}
		if maxOff < o.tol {
			converged = true

			break
		}

		app, aqq, apq = a[p*n+p], a[q*n+q], a[p*n+q]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == p || i == q {
				continue
			}
			aip, aiq = a[i*n+p], a[i*n+q]
			a[i*n+p], a[p*n+i] = c*aip-s*aiq, c*aip-s*aiq
			a[i*n+q], a[q*n+i] = s*aip+c*aiq, s*aip+c*aiq
		}
		a[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
		a[p*n+q], a[q*n+p] = 0, 0

		for i = 0; i < n; i++ {
			vip, viq = v[i*n+p], v[i*n+q]
			v[i*n+p] = c*vip - s*viq
			v[i*n+q] = s*vip + c*viq
		}
	}
	if !converged {
		if err := reportNonConvergence(opEigenSym, o, iter, maxOff); err != nil {
			return nil, nil, err
		}
	}

	order := make([]int, n)
	for i = range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool { return a[order[x]*n+order[x]] < a[order[y]*n+order[y]] })
	values := make([]float64, n)
	vectors := newDense(n, n)
	for k, col := range order {
		values[k] = a[col*n+col]
		for i = 0; i < n; i++ {
			vectors.data[i*n+k] = complex(v[i*n+col], 0)
		}
	}

	return values, vectors, nil
}
