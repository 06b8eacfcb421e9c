// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for Eigen, EigenSym and SVD.
package matrix_test

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmat/matrix"
)

// sortedValues orders eigenvalues by real part, then imaginary part.
func sortedValues(vs []complex128) []complex128 {
	out := append([]complex128(nil), vs...)
	sort.Slice(out, func(i, j int) bool {
		if math.Abs(real(out[i])-real(out[j])) > 1e-9 {
			return real(out[i]) < real(out[j])
		}

		return imag(out[i]) < imag(out[j])
	})

	return out
}

// ---------- Eigen ----------

func TestEigen_HermitianClosedForm(t *testing.T) {
	a := MustParse(t, "2 -1 0; -1 2 -1; 0 -1 2")
	eig, err := matrix.Eigen(a)
	require.NoError(t, err)
	require.True(t, eig.Hermitian())
	require.True(t, eig.Converged())

	vals, allReal := eig.RealValues(tolTight)
	require.True(t, allReal)
	want := []float64{2 - math.Sqrt2, 2, 2 + math.Sqrt2}
	for k := range want {
		assert.InDelta(t, want[k], vals[k], tolTight, "λ_%d", k)
	}

	v := eig.VectorMatrix()
	assert.True(t, matrix.IsUnitary(v, tolLoose))
	assert.True(t, eig.CheckMatrix(a, tolLoose))

	back, err := eig.Reconstruct()
	require.NoError(t, err)
	RequireClose(t, a, back, tolLoose)

	// Vectors() and VectorMatrix() agree column by column
	for k, vec := range eig.Vectors() {
		require.Equal(t, 3, vec.Rows())
		require.Equal(t, 1, vec.Cols())
		col := column(t, v, k)
		for i := range col {
			RequireComplexClose(t, col[i], MustAt(t, vec, i, 0), 0)
		}
	}
}

func TestEigen_RotationHasImaginaryPair(t *testing.T) {
	a := MustParse(t, "0 -1; 1 0")
	eig, err := matrix.Eigen(a)
	require.NoError(t, err)
	assert.False(t, eig.Hermitian())

	vals := sortedValues(eig.Values())
	RequireComplexClose(t, -1i, vals[0], tolLoose)
	RequireComplexClose(t, 1i, vals[1], tolLoose)

	_, allReal := eig.RealValues(tolTight)
	assert.False(t, allReal)
	assert.True(t, eig.CheckMatrix(a, tolLoose))
}

func TestEigen_TriangularValuesAreDiagonal(t *testing.T) {
	a := MustParse(t, "1 5 -3; 0 4 2; 0 0 -2")
	eig, err := matrix.Eigen(a)
	require.NoError(t, err)

	vals := sortedValues(eig.Values())
	for k, want := range []complex128{-2, 1, 4} {
		RequireComplexClose(t, want, vals[k], tolLoose)
	}
	assert.True(t, eig.CheckMatrix(a, tolLoose))

	back, err := eig.Reconstruct()
	require.NoError(t, err)
	RequireClose(t, a, back, tolLoose)
}

// TestEigen_RandomGeneral checks A·v = λ·v, Σλ = tr(A) and Πλ = det(A).
func TestEigen_RandomGeneral(t *testing.T) {
	for seed := uint64(1); seed <= 4; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			a := RandDense(t, 6, 6, seed, seed%2 == 1)
			eig, err := matrix.Eigen(a)
			require.NoError(t, err)
			require.True(t, eig.Converged())
			assert.True(t, eig.CheckMatrix(a, tolLoose))

			var sum complex128
			prod := complex(1, 0)
			for _, v := range eig.Values() {
				sum += v
				prod *= v
			}
			tr, err := matrix.Trace(a)
			require.NoError(t, err)
			det, err := matrix.Determinant(a)
			require.NoError(t, err)
			RequireComplexClose(t, tr, sum, tolLoose)
			RequireComplexClose(t, det, prod, tolLoose)

			d := eig.ValueMatrix()
			assert.True(t, matrix.IsDiagonal(d, 0))
		})
	}
}

func TestEigen_ComplexHermitian(t *testing.T) {
	a := RandKind(t, 5, matrix.RandomHermitian, 7, true)
	eig, err := matrix.Eigen(a)
	require.NoError(t, err)
	require.True(t, eig.Hermitian())

	vals, allReal := eig.RealValues(tolTight)
	require.True(t, allReal)
	assert.True(t, sort.Float64sAreSorted(vals))
	assert.True(t, eig.CheckMatrix(a, tolLoose))
}

func TestEigen_Errors(t *testing.T) {
	_, err := matrix.Eigen(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Eigen(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	_, err = matrix.Eigen(MustDense(t, 0, 0))
	require.ErrorIs(t, err, matrix.ErrEmptyMatrix)

	bad := MustParse(t, "1 2; 3 4")
	require.NoError(t, bad.Set(0, 1, complex(math.NaN(), 0)))
	_, err = matrix.Eigen(bad)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// ---------- EigenSym ----------

func TestEigenSym_MatchesEigen(t *testing.T) {
	for seed := uint64(3); seed <= 5; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			a := RandKind(t, 5, matrix.RandomSymmetric, seed, false)

			vals, vecs, err := matrix.EigenSym(a)
			require.NoError(t, err)
			assert.True(t, sort.Float64sAreSorted(vals))
			assert.True(t, matrix.IsOrthogonal(vecs, tolLoose))

			// A·V = V·Λ
			av, err := matrix.Mul(a, vecs)
			require.NoError(t, err)
			vl, err := matrix.Mul(vecs, matrix.NewDiagonalReal(vals))
			require.NoError(t, err)
			RequireClose(t, av, vl, tolLoose)

			eig, err := matrix.Eigen(a)
			require.NoError(t, err)
			ref, _ := eig.RealValues(tolTight)
			for k := range vals {
				assert.InDelta(t, ref[k], vals[k], tolLoose)
			}
		})
	}
}

func TestEigenSym_Errors(t *testing.T) {
	_, _, err := matrix.EigenSym(MustParse(t, "1 2; 3 4"))
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	herm := FromComplexRows(t, [][]complex128{{2, 1i}, {-1i, 2}})
	_, _, err = matrix.EigenSym(herm)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	_, _, err = matrix.EigenSym(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

// ---------- SVD ----------

func TestSVD_ClosedForm(t *testing.T) {
	a := MustParse(t, "3 0; 4 5")
	s, err := matrix.SVD(a)
	require.NoError(t, err)
	require.True(t, s.Converged())

	vals := s.Values()
	require.Len(t, vals, 2)
	assert.InDelta(t, 3*math.Sqrt(5), vals[0], tolTight)
	assert.InDelta(t, math.Sqrt(5), vals[1], tolTight)
	assert.InDelta(t, 3, s.Cond(), tolTight)
	assert.Equal(t, 2, s.Rank(tolTight))
	assert.True(t, s.CheckMatrix(a, tolTight))
}

// TestSVD_Properties covers tall and wide complex input.
func TestSVD_Properties(t *testing.T) {
	shapes := []struct{ r, c int }{{5, 3}, {3, 5}, {4, 4}, {1, 4}, {4, 1}}
	for i, sh := range shapes {
		t.Run(fmt.Sprintf("%dx%d", sh.r, sh.c), func(t *testing.T) {
			a := RandDense(t, sh.r, sh.c, uint64(40+i), true)
			s, err := matrix.SVD(a)
			require.NoError(t, err)

			k := min(sh.r, sh.c)
			u, v := s.U(), s.V()
			require.Equal(t, sh.r, u.Rows())
			require.Equal(t, k, u.Cols())
			require.Equal(t, sh.c, v.Rows())
			require.Equal(t, k, v.Cols())

			vals := s.Values()
			for j := 1; j < len(vals); j++ {
				assert.GreaterOrEqual(t, vals[j-1], vals[j])
			}
			for _, sv := range vals {
				assert.GreaterOrEqual(t, sv, 0.0)
			}

			uh, err := matrix.ConjTranspose(u)
			require.NoError(t, err)
			uhu, err := matrix.Mul(uh, u)
			require.NoError(t, err)
			assert.True(t, matrix.IsIdentity(uhu, tolLoose))

			vh, err := matrix.ConjTranspose(v)
			require.NoError(t, err)
			vhv, err := matrix.Mul(vh, v)
			require.NoError(t, err)
			assert.True(t, matrix.IsIdentity(vhv, tolLoose))

			assert.True(t, s.CheckMatrix(a, tolLoose))
		})
	}
}

func TestSVD_RankDeficient(t *testing.T) {
	a := MustParse(t, "1 2; 2 4; 3 6")
	s, err := matrix.SVD(a)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Rank(tolTight))
	assert.True(t, s.CheckMatrix(a, tolTight))

	sq, err := matrix.SVD(MustParse(t, "1 2; 2 4"))
	require.NoError(t, err)
	assert.Greater(t, sq.Cond(), 1e12)

	zero, err := matrix.SVD(MustDense(t, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, 0, zero.Rank(tolTight))
	assert.True(t, math.IsInf(zero.Cond(), 1))
	RequireClose(t, MustDense(t, 2, 2), zero.PseudoInverse(tolTight), 0)
}

// TestPseudoInverse_PenroseConditions checks A·A⁺·A = A and A⁺·A·A⁺ = A⁺.
func TestPseudoInverse_PenroseConditions(t *testing.T) {
	cases := map[string]*matrix.Dense{
		"rank-deficient": MustParse(t, "1 2; 2 4; 3 6"),
		"wide complex":   RandDense(t, 2, 4, 9, true),
		"square":         MustParse(t, "1 2; 3 4"),
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := matrix.PseudoInverse(a, tolTight)
			require.NoError(t, err)
			require.Equal(t, a.Cols(), p.Rows())
			require.Equal(t, a.Rows(), p.Cols())

			ap, err := matrix.Mul(a, p)
			require.NoError(t, err)
			apa, err := matrix.Mul(ap, a)
			require.NoError(t, err)
			RequireClose(t, a, apa, tolLoose)

			pa, err := matrix.Mul(p, a)
			require.NoError(t, err)
			pap, err := matrix.Mul(pa, p)
			require.NoError(t, err)
			RequireClose(t, p, pap, tolLoose)
		})
	}

	_, err := matrix.PseudoInverse(nil, tolTight)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestSVD_Solve(t *testing.T) {
	a := MustParse(t, "1 1; 1 2; 1 3")
	s, err := matrix.SVD(a)
	require.NoError(t, err)
	x, err := s.Solve(MustParse(t, "3; 5; 7"))
	require.NoError(t, err)
	RequireClose(t, MustParse(t, "1; 2"), x, tolLoose)

	_, err = s.Solve(MustParse(t, "1; 2"))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
