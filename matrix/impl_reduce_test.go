// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for norms, rank, echelon forms and sums.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmat/matrix"
)

// TestNorm_AllKinds uses A = [[3, 0], [4, 5]] with σ = (3√5, √5).
func TestNorm_AllKinds(t *testing.T) {
	a := MustParse(t, "3 0; 4 5")
	cases := []struct {
		kind matrix.NormKind
		want float64
	}{
		{matrix.NormFrobenius, math.Sqrt(50)},
		{matrix.NormManhattan, 7},
		{matrix.NormChebyshev, 9},
		{matrix.NormMax, 5},
		{matrix.NormSpectral, 3 * math.Sqrt(5)},
		{matrix.NormTrace, 4 * math.Sqrt(5)},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			got, err := matrix.Norm(a, tc.kind)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, tolTight)

			viaHide, err := matrix.Norm(hide{a}, tc.kind)
			require.NoError(t, err)
			assert.InDelta(t, got, viaHide, 0)
		})
	}
}

func TestNorm_ComplexAndEdges(t *testing.T) {
	z := FromComplexRows(t, [][]complex128{{3 + 4i, 0}, {0, 1i}})
	f, err := matrix.Norm(z, matrix.NormFrobenius)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(26), f, tolTight)
	mx, err := matrix.Norm(z, matrix.NormMax)
	require.NoError(t, err)
	assert.InDelta(t, 5, mx, tolTight)

	e, err := matrix.Norm(MustDense(t, 0, 3), matrix.NormSpectral)
	require.NoError(t, err)
	assert.Equal(t, 0.0, e)

	_, err = matrix.Norm(z, matrix.NormKind(42))
	require.ErrorIs(t, err, matrix.ErrUnknownMethod)
	_, err = matrix.Norm(nil, matrix.NormFrobenius)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	assert.Equal(t, "unknown", matrix.NormKind(42).String())
}

func TestRankNullity(t *testing.T) {
	cases := []struct {
		name string
		m    *matrix.Dense
		rank int
	}{
		{"full", MustParse(t, "1 2; 3 4"), 2},
		{"dependent rows", MustParse(t, "1 2 3; 2 4 6; 1 0 1"), 2},
		{"rank one", MustParse(t, "1 2; 2 4; 3 6"), 1},
		{"zero", MustDense(t, 2, 4), 0},
		{"wide", MustParse(t, "1 0 0 1; 0 1 0 1"), 2},
		{"empty", MustDense(t, 0, 3), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rank, err := matrix.Rank(tc.m, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.rank, rank)

			nullity, err := matrix.Nullity(tc.m, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.m.Cols(), rank+nullity)
		})
	}

	_, err := matrix.Rank(nil, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestRowEchelon(t *testing.T) {
	a := MustParse(t, "0 2; 1 1")
	ref, err := matrix.RowEchelon(a, tolTight)
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "1 1; 0 2"), ref, tolTight)

	r, err := matrix.RowEchelon(RandDense(t, 4, 6, 3, true), tolTight)
	require.NoError(t, err)
	assert.True(t, matrix.IsUpperTriangular(r, tolTight))

	// input untouched
	RequireClose(t, MustParse(t, "0 2; 1 1"), a, 0)

	_, err = matrix.RowEchelon(nil, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestReducedRowEchelon(t *testing.T) {
	rref, err := matrix.ReducedRowEchelon(MustParse(t, "1 2 3; 2 4 6; 1 0 1"), tolTight)
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "1 0 1; 0 1 1; 0 0 0"), rref, tolTight)

	// an invertible matrix reduces to I
	id, err := matrix.ReducedRowEchelon(RandKind(t, 4, matrix.RandomPositiveDefinite, 5, true), tolTight)
	require.NoError(t, err)
	assert.True(t, matrix.IsIdentity(id, tolLoose))
}

func TestTraceAndSums(t *testing.T) {
	a := MustParse(t, "1 2; 3 4")
	tr, err := matrix.Trace(a)
	require.NoError(t, err)
	assert.Equal(t, complex128(5), tr)
	_, err = matrix.Trace(MustParse(t, "1 2"))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	all, err := matrix.Sum(a, matrix.AxisAll)
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "10"), all, 0)
	rows, err := matrix.Sum(a, matrix.AxisRows)
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "3; 7"), rows, 0)
	cols, err := matrix.Sum(hide{a}, matrix.AxisCols)
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "4 6"), cols, 0)
	_, err = matrix.Sum(a, matrix.Axis(7))
	require.ErrorIs(t, err, matrix.ErrUnknownMethod)

	rs, err := matrix.RowSums(a)
	require.NoError(t, err)
	assert.Equal(t, []complex128{3, 7}, rs)
	cs, err := matrix.ColSums(a)
	require.NoError(t, err)
	assert.Equal(t, []complex128{4, 6}, cs)
}

func TestDiagonalSums(t *testing.T) {
	a := MustParse(t, "1 2 3; 4 5 6; 7 8 9")
	cases := []struct {
		k    int
		want complex128
	}{
		{0, 15}, {1, 8}, {2, 3}, {-1, 12}, {-2, 7}, {5, 0}, {-5, 0},
	}
	for _, tc := range cases {
		got, err := matrix.DiagonalSum(a, tc.k)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "k=%d", tc.k)
	}

	anti, err := matrix.AntiDiagonalSum(a)
	require.NoError(t, err)
	assert.Equal(t, complex128(15), anti)

	wide, err := matrix.AntiDiagonalSum(MustParse(t, "1 2 3; 4 5 6"))
	require.NoError(t, err)
	assert.Equal(t, complex128(8), wide)

	_, err = matrix.DiagonalSum(nil, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
