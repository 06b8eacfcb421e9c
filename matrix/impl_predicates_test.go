// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the structural predicates.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/lvmat/matrix"
)

func TestPredicates_Table(t *testing.T) {
	s := complex(1/math.Sqrt2, 0)
	unitary := FromComplexRows(t, [][]complex128{{s, 1i * s}, {1i * s, s}})
	complexSym := FromComplexRows(t, [][]complex128{{1, 1i}, {1i, 1}})
	herm := FromComplexRows(t, [][]complex128{{2, 1 - 1i}, {1 + 1i, 3}})

	type pred func(matrix.Matrix, float64) bool
	cases := []struct {
		name string
		p    pred
		m    matrix.Matrix
		want bool
	}{
		{"symmetric real", matrix.IsSymmetric, MustParse(t, "1 2; 2 1"), true},
		{"symmetric complex", matrix.IsSymmetric, complexSym, true},
		{"symmetric rejects hermitian", matrix.IsSymmetric, herm, false},
		{"hermitian", matrix.IsHermitian, herm, true},
		{"hermitian rejects complex symmetric", matrix.IsHermitian, complexSym, false},
		{"upper", matrix.IsUpperTriangular, MustParse(t, "1 2 3; 0 4 5"), true},
		{"upper rejects", matrix.IsUpperTriangular, MustParse(t, "1 2; 3 4"), false},
		{"lower", matrix.IsLowerTriangular, MustParse(t, "1 0; 3 4"), true},
		{"lower rejects", matrix.IsLowerTriangular, MustParse(t, "1 2; 3 4"), false},
		{"diagonal", matrix.IsDiagonal, MustParse(t, "1 0; 0 4"), true},
		{"diagonal rejects", matrix.IsDiagonal, MustParse(t, "1 1e-3; 0 4"), false},
		{"diagonal within tol", matrix.IsDiagonal, MustParse(t, "1 1e-13; 0 4"), true},
		{"hessenberg", matrix.IsUpperHessenberg, MustParse(t, "1 2 3; 4 5 6; 0 7 8"), true},
		{"hessenberg rejects", matrix.IsUpperHessenberg, MustParse(t, "1 2 3; 4 5 6; 1 7 8"), false},
		{"hessenberg non-square", matrix.IsUpperHessenberg, MustParse(t, "1 2 3; 4 5 6"), false},
		{"identity", matrix.IsIdentity, IdentityDense(t, 3), true},
		{"identity rejects", matrix.IsIdentity, MustParse(t, "1 0; 0 2"), false},
		{"unitary", matrix.IsUnitary, unitary, true},
		{"unitary rejects", matrix.IsUnitary, MustParse(t, "1 1; 0 1"), false},
		{"orthogonal rotation", matrix.IsOrthogonal, MustParse(t, "0 -1; 1 0"), true},
		{"orthogonal rejects complex unitary", matrix.IsOrthogonal, unitary, false},
		{"idempotent", matrix.IsIdempotent, MustParse(t, "1 1; 0 0"), true},
		{"idempotent rejects", matrix.IsIdempotent, MustParse(t, "2 0; 0 0"), false},
		{"positive definite", matrix.IsPositiveDefinite, MustParse(t, spd3), true},
		{"positive definite complex", matrix.IsPositiveDefinite, herm, true},
		{"indefinite", matrix.IsPositiveDefinite, MustParse(t, "1 2; 2 1"), false},
		{"pd rejects non-hermitian", matrix.IsPositiveDefinite, MustParse(t, "2 1; 0 2"), false},
		{"singular", matrix.IsSingular, MustParse(t, "1 2; 2 4"), true},
		{"singular zero", matrix.IsSingular, MustDense(t, 2, 2), true},
		{"singular empty", matrix.IsSingular, MustDense(t, 0, 0), true},
		{"regular", matrix.IsSingular, IdentityDense(t, 3), false},
		{"singular non-square", matrix.IsSingular, MustParse(t, "1 2"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p(tc.m, tolTight))
			assert.Equal(t, tc.want, tc.p(hide{tc.m}, tolTight), "fallback")
		})
	}
}

func TestPredicates_NilIsFalse(t *testing.T) {
	var typedNil *matrix.Dense
	preds := map[string]func(matrix.Matrix, float64) bool{
		"symmetric":  matrix.IsSymmetric,
		"hermitian":  matrix.IsHermitian,
		"upper":      matrix.IsUpperTriangular,
		"lower":      matrix.IsLowerTriangular,
		"diagonal":   matrix.IsDiagonal,
		"hessenberg": matrix.IsUpperHessenberg,
		"identity":   matrix.IsIdentity,
		"unitary":    matrix.IsUnitary,
		"orthogonal": matrix.IsOrthogonal,
		"idempotent": matrix.IsIdempotent,
		"pd":         matrix.IsPositiveDefinite,
		"singular":   matrix.IsSingular,
	}
	for name, p := range preds {
		assert.False(t, p(nil, 0), name)
		assert.False(t, p(typedNil, 0), name+" typed nil")
	}
}

func TestAllClose(t *testing.T) {
	a := MustParse(t, "1 2; 3 4")
	b := MustParse(t, "1 2; 3 4.000000001")
	assert.True(t, matrix.AllClose(a, b, 1e-8))
	assert.False(t, matrix.AllClose(a, b, 1e-12))
	assert.False(t, matrix.AllClose(a, MustParse(t, "1 2 3; 4 5 6"), 1))
	assert.False(t, matrix.AllClose(a, nil, 1))

	// relative branch: large magnitudes
	big := MustParse(t, "1e12")
	assert.True(t, matrix.AllClose(big, MustParse(t, "1.0000000000001e12"), 1e-10))
}
