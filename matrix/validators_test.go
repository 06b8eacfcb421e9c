// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmat/matrix"
)

// TestValidateBinarySameShape covers nil inputs, matching and mismatched dimensions.
func TestValidateBinarySameShape(t *testing.T) {
	t.Parallel()

	zeros := func(r, c int) matrix.Matrix { return MustDense(t, r, c) }
	var typedNil *matrix.Dense

	tests := []struct {
		name    string
		a, b    matrix.Matrix
		wantErr error
	}{
		{"both nil", nil, nil, matrix.ErrNilMatrix},
		{"first nil", nil, zeros(2, 2), matrix.ErrNilMatrix},
		{"second nil", zeros(2, 2), nil, matrix.ErrNilMatrix},
		{"typed nil", typedNil, zeros(2, 2), matrix.ErrNilMatrix},
		{"equal 2x3", zeros(2, 3), zeros(2, 3), nil},
		{"equal empty", zeros(0, 3), zeros(0, 3), nil},
		{"row mismatch", zeros(2, 3), zeros(3, 3), matrix.ErrDimensionMismatch},
		{"col mismatch", zeros(2, 3), zeros(2, 4), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateBinarySameShape(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)

				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateSquareNonEmpty(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateSquareNonEmpty(MustDense(t, 3, 3)))
	require.ErrorIs(t, matrix.ValidateSquareNonEmpty(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateSquareNonEmpty(MustDense(t, 0, 0)), matrix.ErrEmptyMatrix)
	require.ErrorIs(t, matrix.ValidateSquareNonEmpty(MustDense(t, 2, 3)), matrix.ErrNonSquare)
}

func TestValidateMulCompatible(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateMulCompatible(MustDense(t, 2, 3), MustDense(t, 3, 5)))
	require.ErrorIs(t, matrix.ValidateMulCompatible(MustDense(t, 2, 3), MustDense(t, 2, 3)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateMulCompatible(nil, MustDense(t, 2, 3)), matrix.ErrNilMatrix)
}

// TestValidateHermitian covers the real-symmetric, complex-Hermitian and failing cases.
func TestValidateHermitian(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		m       matrix.Matrix
		tol     float64
		wantErr error
	}{
		{"real symmetric", MustParse(t, "1 2; 2 1"), 0, nil},
		{"complex hermitian", FromComplexRows(t, [][]complex128{{1, 2 + 1i}, {2 - 1i, 3}}), 0, nil},
		{"complex symmetric is not hermitian", FromComplexRows(t, [][]complex128{{1, 1i}, {1i, 1}}), 1e-12, matrix.ErrAsymmetry},
		{"imaginary diagonal", FromComplexRows(t, [][]complex128{{1i}}), 1e-12, matrix.ErrAsymmetry},
		{"within tolerance", MustParse(t, "1 2; 2.0000001 1"), 1e-6, nil},
		{"outside tolerance", MustParse(t, "1 2; 2.1 1"), 1e-6, matrix.ErrAsymmetry},
		{"non-square", MustDense(t, 2, 3), 0, matrix.ErrNonSquare},
		{"nil", nil, 0, matrix.ErrNilMatrix},
		{"NaN tolerance", MustParse(t, "1"), math.NaN(), matrix.ErrNaNInf},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateHermitian(tc.m, tc.tol)
			if tc.wantErr == nil {
				require.NoError(t, err)

				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateFinite(t *testing.T) {
	t.Parallel()

	m := MustParse(t, "1 2; 3 4")
	require.NoError(t, matrix.ValidateFinite(m))

	require.NoError(t, m.Set(1, 0, complex(math.Inf(-1), 0)))
	require.ErrorIs(t, matrix.ValidateFinite(m), matrix.ErrNaNInf)

	require.NoError(t, m.Set(1, 0, complex(0, math.NaN())))
	require.ErrorIs(t, matrix.ValidateFinite(m), matrix.ErrNaNInf)
}
