// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for determinants, cofactors,
// conditioning and the convenience facades.
package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmat/matrix"
)

// cofactorFixture has det = 22.
const cofactorFixture = "1 2 3; 0 4 5; 1 0 6"

func TestDeterminant_LUMatchesLaplace(t *testing.T) {
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			a := RandDense(t, n, n, uint64(n), true)
			lu, err := matrix.Determinant(a)
			require.NoError(t, err)
			lap, err := matrix.DeterminantLaplace(a)
			require.NoError(t, err)
			RequireComplexClose(t, lap, lu, tolTight)
		})
	}

	det, err := matrix.DeterminantLaplace(MustParse(t, cofactorFixture))
	require.NoError(t, err)
	assert.Equal(t, complex128(22), det)
}

// TestDeterminant_PivotNoneZeroPivot: a leading zero is not singularity.
func TestDeterminant_PivotNoneZeroPivot(t *testing.T) {
	det, err := matrix.Determinant(MustParse(t, "0 1; 1 0"), matrix.WithPivoting(matrix.PivotNone))
	require.NoError(t, err)
	RequireComplexClose(t, -1, det, tolTight)

	det, err = matrix.Determinant(MustParse(t, "1 2; 2 4"), matrix.WithPivoting(matrix.PivotNone))
	require.NoError(t, err)
	RequireComplexClose(t, 0, det, tolTight)

	_, err = matrix.Determinant(MustParse(t, "1 2"))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	_, err = matrix.DeterminantLaplace(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMinorCofactorAdjugate(t *testing.T) {
	a := MustParse(t, cofactorFixture)

	minor, err := matrix.Minor(a, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, complex128(-5), minor)
	c, err := matrix.Cofactor(a, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, complex128(5), c)
	c, err = matrix.Cofactor(a, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, complex128(4), c)

	adj, err := matrix.Adjugate(a)
	require.NoError(t, err)
	prod, err := matrix.Mul(a, adj)
	require.NoError(t, err)
	want, err := matrix.Scale(IdentityDense(t, 3), 22)
	require.NoError(t, err)
	RequireClose(t, want, prod, tolTight)

	one, err := matrix.Adjugate(MustParse(t, "7"))
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "1"), one, 0)

	_, err = matrix.Minor(MustParse(t, "7"), 0, 0)
	require.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.Minor(a, 3, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = matrix.Cofactor(a, 0, -1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestAdjugate_LargeUsesLU crosses the size where minors switch to LU.
func TestAdjugate_LargeUsesLU(t *testing.T) {
	a := RandDense(t, 6, 6, 21, true)
	adj, err := matrix.Adjugate(a)
	require.NoError(t, err)
	det, err := matrix.Determinant(a)
	require.NoError(t, err)

	prod, err := matrix.Mul(adj, a)
	require.NoError(t, err)
	want, err := matrix.Scale(IdentityDense(t, 6), det)
	require.NoError(t, err)
	RequireClose(t, want, prod, tolLoose)
}

func TestConditionNumber(t *testing.T) {
	id := IdentityDense(t, 3)
	for _, kind := range []matrix.NormKind{matrix.NormSpectral, matrix.NormChebyshev, matrix.NormManhattan, matrix.NormMax} {
		k, err := matrix.ConditionNumber(id, kind)
		require.NoError(t, err)
		assert.InDelta(t, 1, k, tolTight, kind.String())
	}

	k, err := matrix.ConditionNumber(MustParse(t, "3 0; 4 5"), matrix.NormSpectral)
	require.NoError(t, err)
	assert.InDelta(t, 3, k, tolTight)

	// (Σσ)·(Σ1/σ) = 4√5 · 4/(3√5)
	k, err = matrix.ConditionNumber(MustParse(t, "3 0; 4 5"), matrix.NormTrace)
	require.NoError(t, err)
	assert.InDelta(t, 16.0/3, k, tolTight)

	k, err = matrix.ConditionNumber(MustParse(t, "1 2; 2 4"), matrix.NormFrobenius)
	require.NoError(t, err)
	assert.True(t, math.IsInf(k, 1))
	k, err = matrix.ConditionNumber(MustDense(t, 2, 2), matrix.NormSpectral)
	require.NoError(t, err)
	assert.True(t, math.IsInf(k, 1))

	_, err = matrix.ConditionNumber(MustParse(t, "1 2"), matrix.NormSpectral)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestFacades(t *testing.T) {
	a := MustParse(t, "1 2 3; 4 5 6")

	z, err := matrix.ZerosLike(a)
	require.NoError(t, err)
	RequireClose(t, MustDense(t, 2, 3), z, 0)
	_, err = matrix.ZerosLike(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	id, err := matrix.IdentityLike(MustDense(t, 3, 3))
	require.NoError(t, err)
	assert.True(t, matrix.IsIdentity(id, 0))
	_, err = matrix.IdentityLike(a)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	h, err := matrix.Hermitianize(MustParse(t, "1 2; 0 1"))
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "1 1; 1 1"), h, 0)

	hc, err := matrix.Hermitianize(FromComplexRows(t, [][]complex128{{0, 2i}, {0, 1i}}))
	require.NoError(t, err)
	assert.True(t, matrix.IsHermitian(hc, 0))
	RequireClose(t, FromComplexRows(t, [][]complex128{{0, 1i}, {-1i, 0}}), hc, 0)
}

func TestReplaceInfNaN(t *testing.T) {
	a := MustParse(t, "1 2; 3 4")
	require.NoError(t, a.Set(0, 1, complex(math.NaN(), 0)))
	require.NoError(t, a.Set(1, 0, complex(0, math.Inf(-1))))

	clean, err := matrix.ReplaceInfNaN(a, 0)
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "1 0; 0 4"), clean, 0)
	require.NoError(t, matrix.ValidateFinite(clean))

	_, err = matrix.ReplaceInfNaN(a, complex(math.NaN(), 0))
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	_, err = matrix.ReplaceInfNaN(nil, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
