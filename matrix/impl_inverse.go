// SPDX-License-Identifier: MIT

// Package matrix - matrix inversion as an explicit ordered strategy chain.
//
// Purpose:
//   - Inverse evaluates a visible, configurable list of strategies and keeps
//     the first success:
//     1) condition check (SVD): cond > threshold skips the LU entry;
//     2) InverseLU: LU solve of A·X = I;
//     3) InverseSVD: V·S⁺·Uᴴ (reciprocal of every non-negligible σ, zero elsewhere);
//     4) InverseMoorePenrose: (Aᴴ·A)⁻¹·Aᴴ.
//   - Failures of earlier strategies are absorbed (Debug log) and reported by
//     InverseWithReport; only the exhaustion of the whole chain is an error.
//
// AI-Hints:
//   - WithInverseChain(InverseLU) gives a strict inverse that fails with
//     ErrInverseFailed (wrapping ErrSingular) on singular input.

package matrix

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

const (
	opInverse      = "Inverse"
	opMoorePenrose = "MoorePenrose"
)

// InverseStrategy names one step of the inverse chain.
type InverseStrategy int

const (
	// InverseLU solves A·X = I with the LU factorization.
	InverseLU InverseStrategy = iota
	// InverseSVD inverts the singular-value diagonal (pseudo-inverse).
	InverseSVD
	// InverseMoorePenrose evaluates (Aᴴ·A)⁻¹·Aᴴ.
	InverseMoorePenrose
)

// String returns the strategy name.
func (s InverseStrategy) String() string {
	switch s {
	case InverseLU:
		return "lu"
	case InverseSVD:
		return "svd"
	case InverseMoorePenrose:
		return "moore-penrose"
	default:
		return "unknown"
	}
}

// DefaultInverseChain returns a fresh copy of the default order: LU, SVD, Moore–Penrose.
func DefaultInverseChain() []InverseStrategy {
	return []InverseStrategy{InverseLU, InverseSVD, InverseMoorePenrose}
}

// InverseFailure records one absorbed strategy failure.
type InverseFailure struct {
	Strategy InverseStrategy
	Err      error
}

// InverseReport describes how Inverse produced its result.
type InverseReport struct {
	Strategy  InverseStrategy  // the strategy whose result was returned
	Condition float64          // spectral condition number (+Inf when singular)
	SkippedLU bool             // LU was skipped because Condition exceeded the threshold
	Failures  []InverseFailure // absorbed failures, in chain order
}

// Inverse returns A⁻¹ (or the closest pseudo-inverse the chain can produce).
// Implementation:
//   - Stage 1: validate square/non-empty/finite.
//   - Stage 2: InverseWithReport; discard the report.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrNonSquare, ErrNaNInf.
//   - ErrInverseFailed when every strategy failed (the last failure is wrapped too).
func Inverse(m Matrix, opts ...Option) (*Dense, error) {
	inv, _, err := InverseWithReport(m, opts...)

	return inv, err
}

// InverseWithReport is Inverse plus a description of the path taken.
// Implementation:
//   - Stage 1: compute the SVD once; Condition = σmax/σmin.
//   - Stage 2: walk the chain; LU is skipped when Condition > condThreshold.
//   - Stage 3: first success wins; every failure is logged at Debug.
//
// Returns:
//   - *Dense: the inverse; InverseReport: strategy, condition and absorbed failures.
//
// Errors:
//   - See Inverse.
//
// Determinism:
//   - The chain order is fixed by WithInverseChain (default DefaultInverseChain()).
//
// Complexity:
//   - O(n³) per attempted strategy plus one SVD.
func InverseWithReport(m Matrix, opts ...Option) (*Dense, InverseReport, error) {
	var report InverseReport
	if err := ValidateSquareNonEmpty(m); err != nil {
		return nil, report, matrixErrorf(opInverse, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, report, matrixErrorf(opInverse, err)
	}
	o := gatherOptions(opts...)
	a := asDense(m)

	svd, svdErr := SVD(a, opts...)
	if svdErr == nil {
		report.Condition = svd.Cond()
	} else {
		report.Condition = math.Inf(1)
	}

	var (
		inv *Dense
		err error
	)
	for _, strategy := range o.chain {
		switch strategy {
		case InverseLU:
			if report.Condition > o.condThreshold {
				report.SkippedLU = true
				logger().Debug("inverse: LU skipped",
					zap.Float64("condition", report.Condition),
					zap.Float64("threshold", o.condThreshold))

				continue
			}
			inv, err = inverseLU(a, o, opts...)
		case InverseSVD:
			inv, err = inverseSVD(svd, svdErr, o)
		case InverseMoorePenrose:
			inv, err = moorePenrose(a, opts...)
		}
		if err == nil {
			report.Strategy = strategy

			return inv, report, nil
		}
		report.Failures = append(report.Failures, InverseFailure{Strategy: strategy, Err: err})
		logger().Debug("inverse: strategy failed, falling back",
			zap.Stringer("strategy", strategy), zap.Error(err))
	}

	if n := len(report.Failures); n > 0 {
		last := report.Failures[n-1].Err

		return nil, report, matrixErrorf(opInverse, fmt.Errorf("%w: %w", ErrInverseFailed, last))
	}

	return nil, report, matrixErrorf(opInverse, ErrInverseFailed)
}

// inverseLU inverts through LU; a numerically zero pivot is ErrSingular.
func inverseLU(a *Dense, o Options, opts ...Option) (*Dense, error) {
	lu, err := LU(a, opts...)
	if err != nil {
		return nil, err
	}
	if lu.IsSingular(o.tol) {
		return nil, ErrSingular
	}

	return lu.Inverse()
}

// inverseSVD inverts the singular-value diagonal. A matrix with no σ above
// tol·σmax has nothing to invert and fails with ErrSingular.
func inverseSVD(svd *SVDResult, svdErr error, o Options) (*Dense, error) {
	if svdErr != nil {
		return nil, svdErr
	}
	if svd.Rank(o.tol) == 0 {
		return nil, ErrSingular
	}

	return svd.PseudoInverse(o.tol), nil
}

// MoorePenrose returns the normal-equation pseudo-inverse (Aᴴ·A)⁻¹·Aᴴ.
// Implementation:
//   - Stage 1: G = Aᴴ·A (n×n, Hermitian).
//   - Stage 2: solve G·X = Aᴴ by LU.
//
// Behavior highlights:
//   - Valid for full-column-rank input of any shape (m >= n); squares the
//     condition number, so it is the last resort of the chain.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrSingular (rank-deficient columns).
func MoorePenrose(m Matrix, opts ...Option) (*Dense, error) {
	if err := ValidateNotEmpty(m); err != nil {
		return nil, matrixErrorf(opMoorePenrose, err)
	}
	inv, err := moorePenrose(asDense(m), opts...)
	if err != nil {
		return nil, matrixErrorf(opMoorePenrose, err)
	}

	return inv, nil
}

func moorePenrose(a *Dense, opts ...Option) (*Dense, error) {
	ah := transpose(a, true)
	lu, err := LU(mulNaive(ah, a), opts...)
	if err != nil {
		return nil, err
	}
	if lu.IsSingular(0) {
		return nil, fmt.Errorf("normal matrix: %w", ErrSingular)
	}

	return lu.Solve(ah)
}
