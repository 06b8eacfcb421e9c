// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmat/matrix"
)

// TestDefaultOptions_Documented verifies that an empty option list resolves to the documented defaults.
func TestDefaultOptions_Documented(t *testing.T) {
	o := matrix.GatherOptionsSnapshot()

	assert.Equal(t, matrix.DefaultTolerance, o.Tol)
	assert.Equal(t, matrix.DefaultMaxIterations, o.MaxIter)
	assert.Equal(t, matrix.DefaultConditionThreshold, o.CondThreshold)
	assert.Equal(t, matrix.DefaultStrassenThreshold, o.StrassenThreshold)
	assert.Equal(t, matrix.DefaultStrassenLeaf, o.StrassenLeaf)
	assert.Equal(t, matrix.DefaultPivoting, o.Pivoting)
	assert.Equal(t, matrix.DefaultStrictConvergence, o.Strict)
	assert.Equal(t, matrix.DefaultValidateNaNInf, o.ValidateNaNInf)
	assert.Equal(t, matrix.DefaultInverseChain(), o.Chain)

	pub := matrix.NewMatrixOptions()
	assert.Equal(t, matrix.DefaultTolerance, pub.Tolerance())
	assert.Equal(t, matrix.DefaultMaxIterations, pub.MaxIterations())
}

// TestNewMatrixOptions_LastWriterWins ensures setters apply in order.
func TestNewMatrixOptions_LastWriterWins(t *testing.T) {
	o := matrix.GatherOptionsSnapshot(
		matrix.WithTolerance(1e-6),
		matrix.WithPivoting(matrix.PivotComplete),
		matrix.WithTolerance(1e-8),
		nil, // ignored
		matrix.WithPivoting(matrix.PivotNone),
	)
	assert.Equal(t, 1e-8, o.Tol)
	assert.Equal(t, matrix.PivotNone, o.Pivoting)

	o = matrix.GatherOptionsSnapshot(
		matrix.WithMaxIterations(7),
		matrix.WithConditionThreshold(1e6),
		matrix.WithStrictConvergence(),
		matrix.WithValidateNaNInf(),
		matrix.WithInverseChain(matrix.InverseSVD, matrix.InverseLU),
	)
	assert.Equal(t, 7, o.MaxIter)
	assert.Equal(t, 1e6, o.CondThreshold)
	assert.True(t, o.Strict)
	assert.True(t, o.ValidateNaNInf)
	assert.Equal(t, []matrix.InverseStrategy{matrix.InverseSVD, matrix.InverseLU}, o.Chain)
}

// TestStrassenLeaf_ClampedToThreshold checks the single derived invariant.
func TestStrassenLeaf_ClampedToThreshold(t *testing.T) {
	o := matrix.GatherOptionsSnapshot(matrix.WithStrassenThreshold(8), matrix.WithStrassenLeaf(32))
	assert.Equal(t, 8, o.StrassenThreshold)
	assert.Equal(t, 8, o.StrassenLeaf)

	o = matrix.GatherOptionsSnapshot(matrix.WithStrassenThreshold(128), matrix.WithStrassenLeaf(16))
	assert.Equal(t, 16, o.StrassenLeaf)
}

// TestWithInverseChain_CopiesInput guards against aliasing the caller's slice.
func TestWithInverseChain_CopiesInput(t *testing.T) {
	chain := []matrix.InverseStrategy{matrix.InverseLU, matrix.InverseSVD}
	opt := matrix.WithInverseChain(chain...)
	chain[0] = matrix.InverseMoorePenrose

	o := matrix.GatherOptionsSnapshot(opt)
	assert.Equal(t, []matrix.InverseStrategy{matrix.InverseLU, matrix.InverseSVD}, o.Chain)
}

// TestOptionPanics covers every nonsensical constructor argument.
func TestOptionPanics(t *testing.T) {
	cases := []struct {
		name string
		msg  string
		fn   func()
	}{
		{"tol negative", matrix.PanicToleranceInvalid, func() { matrix.WithTolerance(-1) }},
		{"tol NaN", matrix.PanicToleranceInvalid, func() { matrix.WithTolerance(math.NaN()) }},
		{"tol Inf", matrix.PanicToleranceInvalid, func() { matrix.WithTolerance(math.Inf(1)) }},
		{"maxIter zero", matrix.PanicMaxIterationsInvalid, func() { matrix.WithMaxIterations(0) }},
		{"cond one", matrix.PanicConditionInvalid, func() { matrix.WithConditionThreshold(1) }},
		{"strassen zero", matrix.PanicStrassenInvalid, func() { matrix.WithStrassenThreshold(0) }},
		{"leaf zero", matrix.PanicStrassenLeafInvalid, func() { matrix.WithStrassenLeaf(0) }},
		{"pivoting unknown", matrix.PanicPivotingInvalid, func() { matrix.WithPivoting(matrix.Pivoting(42)) }},
		{"chain empty", matrix.PanicChainEmpty, func() { matrix.WithInverseChain() }},
		{"chain unknown", matrix.PanicChainUnknown, func() { matrix.WithInverseChain(matrix.InverseStrategy(9)) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.PanicsWithValue(t, tc.msg, tc.fn)
		})
	}
}

// TestWithTolerance_ZeroAllowed documents exact comparisons.
func TestWithTolerance_ZeroAllowed(t *testing.T) {
	require.NotPanics(t, func() { matrix.WithTolerance(0) })
	assert.Equal(t, 0.0, matrix.GatherOptionsSnapshot(matrix.WithTolerance(0)).Tol)

	// pivot floor: a 1e-14 pivot is singular by default, regular at tol 0
	a := MustParse(t, "1 1; 1 1.00000000000001")
	lu, err := matrix.LU(a)
	require.NoError(t, err)
	assert.True(t, lu.IsSingular(0))
	lu, err = matrix.LU(a, matrix.WithTolerance(0))
	require.NoError(t, err)
	assert.False(t, lu.IsSingular(0))

	// element comparison: tol 0 still means DefaultTolerance
	b := MustParse(t, "1 1; 1 1.000000000001")
	assert.True(t, matrix.AllClose(MustParse(t, "1 1; 1 1"), b, 0))
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "lu", matrix.InverseLU.String())
	assert.Equal(t, "svd", matrix.InverseSVD.String())
	assert.Equal(t, "moore-penrose", matrix.InverseMoorePenrose.String())
	assert.Equal(t, "unknown", matrix.InverseStrategy(-1).String())
}
