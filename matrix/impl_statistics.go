// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column/row statistics over complex data: means, variances, centering,
//     row normalization, covariance and correlation.
//   - Scalar statistics run on the real and imaginary parts separately
//     through gonum/stat; a complex mean is mean(re) + i·mean(im) and a
//     complex variance is var(re) + var(im) = E|x − μ|².
//
// Exposed API:
//   - Mean(X, axis), Variance(X, axis)  -> reduced matrix (same shapes as Sum)
//   - ColumnMeans(X)                    -> []complex128
//   - CenterColumns(X) / CenterRows(X)  -> (Xc, means)
//   - NormalizeRowsL1(X) / L2(X)        -> (Y, norms); zero rows stay zero
//   - Covariance(X)                     -> (Xcᴴ·Xc/(r−1), means)
//   - Correlation(X)                    -> C_ij / √(C_ii·C_jj); zero-variance columns give 0
//   - MinMaxReal(X)                     -> min/max of the real parts
//
// Determinism & Performance:
//   - Fixed i→j traversal; gonum/stat kernels are deterministic.
//   - Zero-size matrices are no-ops for centering/normalization.
//
// AI-Hints:
//   - Sanitize inputs first (ReplaceInfNaN) if NaN/Inf propagation is undesired.

package matrix

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	opMean            = "Mean"
	opVariance        = "Variance"
	opCenterColumns   = "CenterColumns"
	opCenterRows      = "CenterRows"
	opNormalizeRowsL1 = "NormalizeRowsL1"
	opNormalizeRowsL2 = "NormalizeRowsL2"
	opCovariance      = "Covariance"
	opCorrelation     = "Correlation"
	opMinMax          = "MinMaxReal"
)

// splitParts copies the real and imaginary parts of xs into re and im.
func splitParts(xs []complex128, re, im []float64) {
	for k, v := range xs {
		re[k], im[k] = real(v), imag(v)
	}
}

// complexMean returns mean(re) + i·mean(im) via stat.Mean.
func complexMean(xs []complex128, re, im []float64) complex128 {
	splitParts(xs, re, im)

	return complex(stat.Mean(re, nil), stat.Mean(im, nil))
}

// complexVariance returns the unbiased var(re) + var(im) via stat.Variance.
func complexVariance(xs []complex128, re, im []float64) float64 {
	splitParts(xs, re, im)

	return stat.Variance(re, nil) + stat.Variance(im, nil)
}

// reduceAxis gathers each group selected by axis into a contiguous buffer and
// writes f(group) into the reduced output (same shapes as Sum).
func reduceAxis(a *Dense, axis Axis, f func(xs []complex128, re, im []float64) complex128) (*Dense, error) {
	var groups [][]complex128
	var out *Dense
	switch axis {
	case AxisAll:
		out = newDense(1, 1)
		groups = [][]complex128{a.data}
	case AxisRows:
		out = newDense(a.r, 1)
		groups = make([][]complex128, a.r)
		for i := range groups {
			groups[i] = a.data[i*a.c : (i+1)*a.c]
		}
	case AxisCols:
		out = newDense(1, a.c)
		groups = make([][]complex128, a.c)
		for j := range groups {
			col := make([]complex128, a.r)
			for i := 0; i < a.r; i++ {
				col[i] = a.data[i*a.c+j]
			}
			groups[j] = col
		}
	default:
		return nil, ErrUnknownMethod
	}
	for k, xs := range groups {
		re, im := make([]float64, len(xs)), make([]float64, len(xs))
		out.data[k] = f(xs, re, im)
	}

	return out, nil
}

// Mean averages X along axis (AxisAll → 1×1, AxisRows → r×1, AxisCols → 1×c).
// Errors: ErrNilMatrix, ErrEmptyMatrix, ErrUnknownMethod.
func Mean(m Matrix, axis Axis) (*Dense, error) {
	if err := ValidateNotEmpty(m); err != nil {
		return nil, matrixErrorf(opMean, err)
	}
	out, err := reduceAxis(asDense(m), axis, complexMean)
	if err != nil {
		return nil, matrixErrorf(opMean, err)
	}

	return out, nil
}

// Variance returns the unbiased sample variance E|x − μ|² along axis as a
// real-valued matrix (imaginary parts are zero).
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrUnknownMethod.
//   - ErrBadShape when a group has fewer than two samples.
func Variance(m Matrix, axis Axis) (*Dense, error) {
	if err := ValidateNotEmpty(m); err != nil {
		return nil, matrixErrorf(opVariance, err)
	}
	a := asDense(m)
	var n int
	switch axis {
	case AxisAll:
		n = a.r * a.c
	case AxisRows:
		n = a.c
	case AxisCols:
		n = a.r
	}
	if n < 2 && axis >= AxisAll && axis <= AxisCols {
		return nil, matrixErrorf(opVariance, ErrBadShape)
	}
	out, err := reduceAxis(a, axis, func(xs []complex128, re, im []float64) complex128 {
		return complex(complexVariance(xs, re, im), 0)
	})
	if err != nil {
		return nil, matrixErrorf(opVariance, err)
	}

	return out, nil
}

// ColumnMeans returns μ_j = Σ_i X[i,j] / r. A matrix without rows yields zeros.
// Errors: ErrNilMatrix.
func ColumnMeans(m Matrix) ([]complex128, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ColumnMeans", err)
	}
	a := asDense(m)
	means := make([]complex128, a.c)
	if a.r == 0 {
		return means, nil
	}
	mean, _ := reduceAxis(a, AxisCols, complexMean)

	return append(means[:0], mean.data...), nil
}

// CenterColumns returns Xc = X − 1·μᵀ and the column means μ.
//
// Behavior highlights:
//   - Zero-size input: returns a copy of X and zero means (len = c).
//   - Uses the row-vector broadcast of Sub.
//
// Errors: ErrNilMatrix.
// Complexity: O(r·c).
func CenterColumns(m Matrix) (*Dense, []complex128, error) {
	means, err := ColumnMeans(m)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	if m.Rows() == 0 || m.Cols() == 0 {
		return cloneDense(m), means, nil
	}
	xc, err := Sub(m, NewRow(means))
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	return xc, means, nil
}

// CenterRows returns Xc[i,*] = X[i,*] − mean(X[i,*]) and the row means.
// Errors: ErrNilMatrix.
func CenterRows(m Matrix) (*Dense, []complex128, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}
	a := asDense(m)
	means := make([]complex128, a.r)
	if a.r == 0 || a.c == 0 {
		return a.Copy(), means, nil
	}
	mean, _ := reduceAxis(a, AxisRows, complexMean)
	copy(means, mean.data)
	xc, err := Sub(a, mean)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}

	return xc, means, nil
}

// normalizeRows scales each row by 1/norm(row); zero rows are left unchanged.
func normalizeRows(m Matrix, op string, norm func(row []float64) float64) (*Dense, []float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(op, err)
	}
	out := cloneDense(m)
	norms := make([]float64, out.r)
	abs := make([]float64, out.c)
	for i := 0; i < out.r; i++ {
		row := out.data[i*out.c : (i+1)*out.c]
		for j, v := range row {
			abs[j] = cmplx.Abs(v)
		}
		norms[i] = norm(abs)
		if norms[i] == 0 {
			continue
		}
		inv := complex(1/norms[i], 0)
		for j := range row {
			row[j] *= inv
		}
	}

	return out, norms, nil
}

// NormalizeRowsL1 scales each row to Σ|x| = 1 and returns the original L1 norms.
func NormalizeRowsL1(m Matrix) (*Dense, []float64, error) {
	return normalizeRows(m, opNormalizeRowsL1, func(row []float64) float64 { return floats.Norm(row, 1) })
}

// NormalizeRowsL2 scales each row to √(Σ|x|²) = 1 and returns the original L2 norms.
//
// AI-Hints: common for cosine similarity features.
func NormalizeRowsL2(m Matrix) (*Dense, []float64, error) {
	return normalizeRows(m, opNormalizeRowsL2, func(row []float64) float64 { return floats.Norm(row, 2) })
}

// Covariance computes the sample covariance of the columns: Cov = Xcᴴ·Xc/(r−1).
// Implementation:
//   - Stage 1: CenterColumns.
//   - Stage 2: Xcᴴ·Xc through Mul, then DivScalar by r−1.
//
// Returns:
//   - *Dense: c×c Hermitian covariance; []complex128: column means.
//
// Errors:
//   - ErrNilMatrix; ErrDimensionMismatch when r < 2.
//
// Complexity:
//   - Time O(r·c²), Space O(r·c + c²).
func Covariance(m Matrix) (*Dense, []complex128, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	if m.Rows() < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}
	xc, means, err := CenterColumns(m)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	gram, err := Mul(transpose(xc, true), xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	cov, err := DivScalar(gram, complex(float64(m.Rows()-1), 0))
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	return cov, means, nil
}

// Correlation returns the Pearson correlation of the columns,
// Corr_ij = Cov_ij / √(Cov_ii·Cov_jj), and the column standard deviations.
// Columns with zero variance produce zero rows/columns (diagonal included).
//
// Errors: see Covariance.
func Correlation(m Matrix) (*Dense, []float64, error) {
	cov, _, err := Covariance(m)
	if err != nil {
		return nil, nil, matrixErrorf(opCorrelation, err)
	}
	n := cov.r
	stds := make([]float64, n)
	for j := 0; j < n; j++ {
		stds[j] = math.Sqrt(math.Max(real(cov.data[j*n+j]), 0))
	}
	corr := newDense(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if stds[i] == 0 || stds[j] == 0 {
				continue
			}
			corr.data[i*n+j] = cov.data[i*n+j] / complex(stds[i]*stds[j], 0)
		}
	}

	return corr, stds, nil
}

// MinMaxReal returns the smallest and largest real part of X.
// Errors: ErrNilMatrix, ErrEmptyMatrix.
func MinMaxReal(m Matrix) (float64, float64, error) {
	if err := ValidateNotEmpty(m); err != nil {
		return 0, 0, matrixErrorf(opMinMax, err)
	}
	a := asDense(m)
	re := make([]float64, len(a.data))
	for k, v := range a.data {
		re[k] = real(v)
	}

	return floats.Min(re), floats.Max(re), nil
}
