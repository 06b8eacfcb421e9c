// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmat/matrix"
)

// statsFixture has column means [3, 5], row means [1.5, 3.5, 7] and
// column covariance [[4, 7], [7, 13]].
const statsFixture = "1 2; 3 4; 5 9"

// ------------------------------
// Mean / Variance
// ------------------------------

func TestMean_Axes(t *testing.T) {
	t.Parallel()
	x := MustParse(t, statsFixture)

	all, err := matrix.Mean(x, matrix.AxisAll)
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "4"), all, tolTight)

	rows, err := matrix.Mean(hide{x}, matrix.AxisRows)
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "1.5; 3.5; 7"), rows, tolTight)

	cols, err := matrix.Mean(x, matrix.AxisCols)
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "3 5"), cols, tolTight)

	_, err = matrix.Mean(x, matrix.Axis(99))
	require.ErrorIs(t, err, matrix.ErrUnknownMethod)
	_, err = matrix.Mean(nil, matrix.AxisAll)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Mean(MustDense(t, 0, 2), matrix.AxisAll)
	require.ErrorIs(t, err, matrix.ErrEmptyMatrix)
}

func TestVariance_Axes(t *testing.T) {
	t.Parallel()
	x := MustParse(t, statsFixture)

	all, err := matrix.Variance(x, matrix.AxisAll)
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "8"), all, tolTight)

	cols, err := matrix.Variance(x, matrix.AxisCols)
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "4 13"), cols, tolTight)

	// E|x − μ|² adds the imaginary spread
	z := FromComplexRows(t, [][]complex128{{1i, -1i}})
	zv, err := matrix.Variance(z, matrix.AxisRows)
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "2"), zv, tolTight)

	_, err = matrix.Variance(MustParse(t, "1 2"), matrix.AxisCols)
	require.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.Variance(x, matrix.Axis(-1))
	require.ErrorIs(t, err, matrix.ErrUnknownMethod)
}

// ------------------------------
// CenterColumns / CenterRows
// ------------------------------

func TestCenterColumns_SmallAndFallback(t *testing.T) {
	t.Parallel()
	x := MustParse(t, "1 2 3; 10 20 30")

	yf, meansF, err := matrix.CenterColumns(x)
	require.NoError(t, err)
	ys, meansS, err := matrix.CenterColumns(hide{x})
	require.NoError(t, err)

	assert.Equal(t, []complex128{5.5, 11, 16.5}, meansF)
	assert.Equal(t, meansF, meansS)
	RequireClose(t, MustParse(t, "-4.5 -9 -13.5; 4.5 9 13.5"), yf, tolTight)
	RequireClose(t, yf, ys, 0)

	// input untouched
	RequireClose(t, MustParse(t, "1 2 3; 10 20 30"), x, 0)
}

func TestCenterRows(t *testing.T) {
	t.Parallel()
	y, means, err := matrix.CenterRows(MustParse(t, statsFixture))
	require.NoError(t, err)
	assert.Equal(t, []complex128{1.5, 3.5, 7}, means)
	RequireClose(t, MustParse(t, "-0.5 0.5; -0.5 0.5; -2 2"), y, tolTight)
}

func TestCenter_EmptyInputs(t *testing.T) {
	t.Parallel()
	y, means, err := matrix.CenterColumns(MustDense(t, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 0, y.Rows())
	assert.Equal(t, []complex128{0, 0, 0}, means)

	y, rowMeans, err := matrix.CenterRows(MustDense(t, 2, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, y.Rows())
	assert.Len(t, rowMeans, 2)

	_, _, err = matrix.CenterColumns(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// ------------------------------
// NormalizeRowsL1 / NormalizeRowsL2
// ------------------------------

func TestNormalizeRows(t *testing.T) {
	t.Parallel()
	x := MustParse(t, "3 -4; 0 0")

	l1, n1, err := matrix.NormalizeRowsL1(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 0}, n1)
	RequireClose(t, FromRows(t, [][]float64{{3.0 / 7, -4.0 / 7}, {0, 0}}), l1, tolTight)

	l2, n2, err := matrix.NormalizeRowsL2(x)
	require.NoError(t, err)
	assert.InDelta(t, 5, n2[0], tolTight)
	assert.Equal(t, 0.0, n2[1])
	RequireClose(t, MustParse(t, "0.6 -0.8; 0 0"), l2, tolTight)

	// complex magnitudes: |3+4i| = 5
	z, nz, err := matrix.NormalizeRowsL2(FromComplexRows(t, [][]complex128{{3 + 4i}}))
	require.NoError(t, err)
	assert.InDelta(t, 5, nz[0], tolTight)
	RequireComplexClose(t, 0.6+0.8i, MustAt(t, z, 0, 0), tolTight)
}

// ------------------------------
// Covariance / Correlation
// ------------------------------

func TestCovariance(t *testing.T) {
	t.Parallel()
	cov, means, err := matrix.Covariance(MustParse(t, statsFixture))
	require.NoError(t, err)
	assert.Equal(t, []complex128{3, 5}, means)
	RequireClose(t, MustParse(t, "4 7; 7 13"), cov, tolTight)

	// Xcᴴ·Xc keeps complex covariance Hermitian and real on the diagonal
	zc, _, err := matrix.Covariance(FromComplexRows(t, [][]complex128{{1i, 1}, {-1i, 1 + 1i}}))
	require.NoError(t, err)
	assert.True(t, matrix.IsHermitian(zc, tolTight))
	RequireComplexClose(t, 2, MustAt(t, zc, 0, 0), tolTight)

	_, _, err = matrix.Covariance(MustParse(t, "1 2"))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, _, err = matrix.Covariance(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestCorrelation(t *testing.T) {
	t.Parallel()
	corr, stds, err := matrix.Correlation(MustParse(t, statsFixture))
	require.NoError(t, err)
	require.Len(t, stds, 2)
	assert.InDelta(t, 2, stds[0], tolTight)
	assert.InDelta(t, math.Sqrt(13), stds[1], tolTight)

	r := 7 / (2 * math.Sqrt(13))
	RequireClose(t, FromRows(t, [][]float64{{1, r}, {r, 1}}), corr, tolTight)

	// a constant column has zero variance and zero correlation
	flat, flatStds, err := matrix.Correlation(MustParse(t, "1 5; 2 5; 3 5"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, flatStds[1])
	RequireClose(t, MustParse(t, "1 0; 0 0"), flat, tolTight)
}

// ------------------------------
// MinMaxReal
// ------------------------------

func TestMinMaxReal(t *testing.T) {
	t.Parallel()
	lo, hi, err := matrix.MinMaxReal(FromComplexRows(t, [][]complex128{{1 + 5i, -2}, {3, -9i}}))
	require.NoError(t, err)
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 3.0, hi)

	_, _, err = matrix.MinMaxReal(MustDense(t, 0, 0))
	require.ErrorIs(t, err, matrix.ErrEmptyMatrix)
}
