// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures and comparison utilities for kernels.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"fmt"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmat/matrix"
)

// tolTight is the comparison tolerance for well-conditioned fixtures.
const tolTight = 1e-9

// tolLoose is used after iterative kernels on random input.
const tolLoose = 1e-7

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Implementation:
//   - Stage 1: Embed matrix.Matrix to forward all methods.
//   - Stage 2: Use hide{X} in tests to force non-*Dense (fallback) paths.
//
// Behavior highlights:
//   - Prevents "*Dense" fast-path via type switch in code under test.
//
// Notes:
//   - Useful to assert fast-path == fallback via AllClose.
//
// AI-Hints:
//   - Prefer wrapping ONLY the operand you want to de-opt; keep the other one *Dense to isolate path differences.
type hide struct{ matrix.Matrix }

// MustDense ALLOCATES an r×c *Dense or fails the test (fatal on error).
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// FromRows BUILDS a *Dense from nested real rows or fails the test.
// Implementation:
//   - Stage 1: matrix.NewFromRows(rows).
//   - Stage 2: require.NoError to abort early.
//
// Determinism:
//   - Deterministic fill order.
//
// AI-Hints:
//   - Pair with RequireClose for integer-like fixtures.
func FromRows(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// FromComplexRows is FromRows for complex data.
func FromComplexRows(t testing.TB, rows [][]complex128) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromComplexRows(rows)
	require.NoError(t, err)

	return m
}

// MustParse decodes "a b; c d" style expressions.
func MustParse(t testing.TB, expr string) *matrix.Dense {
	t.Helper()
	m, err := matrix.Parse(expr, ";", " ")
	require.NoError(t, err, "Parse(%q)", expr)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) complex128 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// RandDense RETURNS a seeded general r×c matrix with values in [-1, 1).
// Implementation:
//   - Stage 1: matrix.NewRandom with RandomGeneral.
//
// Inputs:
//   - complexValues: draw imaginary parts too.
//
// Determinism:
//   - Deterministic for a fixed seed.
func RandDense(t testing.TB, r, c int, seed uint64, complexValues bool) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewRandom(matrix.RandomConfig{Rows: r, Cols: c, Seed: seed, Complex: complexValues})
	require.NoError(t, err)

	return m
}

// RandKind is RandDense for a square archetype.
func RandKind(t testing.TB, n int, kind matrix.RandomKind, seed uint64, complexValues bool) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewRandom(matrix.RandomConfig{Rows: n, Kind: kind, Seed: seed, Complex: complexValues})
	require.NoError(t, err)

	return m
}

// RequireClose FAILS the test unless want and got agree element-wise within tol.
// On failure both matrices are printed for diagnosis.
func RequireClose(t testing.TB, want, got matrix.Matrix, tol float64, msg ...interface{}) {
	t.Helper()
	require.NotNil(t, got)
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	if !matrix.AllClose(want, got, tol) {
		require.Failf(t, "matrices differ", "want:\n%s\ngot:\n%s\n%s", dump(want), dump(got), fmt.Sprint(msg...))
	}
}

// RequireComplexClose compares two scalars within an absolute tolerance.
func RequireComplexClose(t testing.TB, want, got complex128, tol float64, msg ...interface{}) {
	t.Helper()
	require.LessOrEqual(t, cmplx.Abs(want-got), tol, "want %v, got %v %s", want, got, fmt.Sprint(msg...))
}

// dump renders any Matrix through *Dense.String.
func dump(m matrix.Matrix) string {
	if d, ok := m.(*matrix.Dense); ok {
		return d.String()
	}
	d, err := matrix.NewDense(m.Rows(), m.Cols())
	if err != nil {
		return err.Error()
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, _ := m.At(i, j)
			_ = d.Set(i, j, v)
		}
	}

	return d.String()
}

// column extracts column j of m as a vector.
func column(t testing.TB, m *matrix.Dense, j int) []complex128 {
	t.Helper()
	c, err := m.Col(j)
	require.NoError(t, err)

	return c
}
