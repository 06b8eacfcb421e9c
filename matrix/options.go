// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Options fields are unexported; public APIs consume ...Option.
//
// Notes:
//   - tolerance drives every "is this zero?" decision: pivots, deflation,
//     rank, predicates, AllClose and Simplify.
//   - maxIterations bounds Schur/Eigen/SVD sweeps. Hitting it is reported via
//     Converged=false, or ErrNotConverged under WithStrictConvergence.
//   - strassenThreshold is the crossover below which Mul runs the naive kernel.
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance is the absolute tolerance for zero tests and equality.
	DefaultTolerance = 1e-10

	// DefaultMaxIterations bounds iterative kernels (per deflated eigenvalue for Schur).
	DefaultMaxIterations = 1000

	// DefaultConditionThreshold: above this spectral condition number the
	// inverse chain skips LU and goes to the SVD pseudo-inverse.
	DefaultConditionThreshold = 1e12

	// DefaultStrassenThreshold: Mul dispatches to Strassen when min(r,n,c) >= threshold.
	DefaultStrassenThreshold = 64

	// DefaultStrassenLeaf: block size at which Strassen recursion stops and
	// multiplies naively. 1 recurses down to scalars.
	DefaultStrassenLeaf = 1

	// DefaultPivoting is the LU pivoting policy.
	DefaultPivoting = PivotPartial

	// DefaultStrictConvergence keeps non-convergence a soft condition.
	DefaultStrictConvergence = false

	// DefaultValidateNaNInf toggles strict finite-value validation on inputs.
	DefaultValidateNaNInf = false
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicToleranceInvalid     = "matrix: WithTolerance: tol must be finite, non-negative"
	panicMaxIterationsInvalid = "matrix: WithMaxIterations: n must be > 0"
	panicConditionInvalid     = "matrix: WithConditionThreshold: threshold must be > 1"
	panicStrassenInvalid      = "matrix: WithStrassenThreshold: n must be >= 1"
	panicStrassenLeafInvalid  = "matrix: WithStrassenLeaf: n must be >= 1"
	panicPivotingInvalid      = "matrix: WithPivoting: unknown pivoting policy"
	panicChainEmpty           = "matrix: WithInverseChain: at least one strategy required"
	panicChainUnknown         = "matrix: WithInverseChain: unknown strategy"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option` and resolve
// them via gatherOptions.
type Options struct {
	tol               float64           // >= 0; DefaultTolerance
	maxIter           int               // > 0; DefaultMaxIterations
	condThreshold     float64           // > 1; DefaultConditionThreshold
	strassenThreshold int               // >= 1; DefaultStrassenThreshold
	strassenLeaf      int               // >= 1; DefaultStrassenLeaf
	pivoting          Pivoting          // DefaultPivoting
	strict            bool              // DefaultStrictConvergence
	validateNaNInf    bool              // DefaultValidateNaNInf
	chain             []InverseStrategy // nil resolves to DefaultInverseChain()
}

// Tolerance returns the effective tolerance.
func (o Options) Tolerance() float64 { return o.tol }

// MaxIterations returns the effective iteration bound.
func (o Options) MaxIterations() int { return o.maxIter }

// ---------- Constructors (WithX) ----------

// WithTolerance sets the numeric tolerance used for zero tests.
// Implementation:
//   - Stage 1: validate tol is finite and ≥ 0.
//   - Stage 2: return a setter that writes tol into Options.
//
// Behavior highlights:
//   - tol = 0 is accepted: pivot and rank floors become exact-zero tests, while
//     element comparisons (AllClose, scalar.Equal) fall back to DefaultTolerance.
//
// Errors:
//   - Panics with a stable message when tol is invalid.
//
// AI-Hints:
//   - 1e-10 suits well-scaled double data; loosen to 1e-8 for ill-conditioned input.
func WithTolerance(tol float64) Option {
	if isNonFinite(tol) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxIterations bounds iterative kernels.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterationsInvalid)
	}

	return func(o *Options) { o.maxIter = n }
}

// WithConditionThreshold sets the condition number above which Inverse
// bypasses LU and uses the SVD pseudo-inverse.
func WithConditionThreshold(threshold float64) Option {
	if isNonFinite(threshold) || threshold <= 1 {
		panic(panicConditionInvalid)
	}

	return func(o *Options) { o.condThreshold = threshold }
}

// WithStrassenThreshold moves the naive/Strassen crossover.
//
// Notes:
//   - WithStrassenThreshold(1) forces Strassen for every matrix product, which
//     tests use to exercise the recursion on small inputs.
func WithStrassenThreshold(n int) Option {
	if n < 1 {
		panic(panicStrassenInvalid)
	}

	return func(o *Options) { o.strassenThreshold = n }
}

// WithStrassenLeaf sets the block size at which Strassen recursion stops.
func WithStrassenLeaf(n int) Option {
	if n < 1 {
		panic(panicStrassenLeafInvalid)
	}

	return func(o *Options) { o.strassenLeaf = n }
}

// WithPivoting selects the LU pivoting policy.
func WithPivoting(p Pivoting) Option {
	switch p {
	case PivotNone, PivotPartial, PivotComplete:
	default:
		panic(panicPivotingInvalid)
	}

	return func(o *Options) { o.pivoting = p }
}

// WithStrictConvergence turns hitting maxIterations into ErrNotConverged.
func WithStrictConvergence() Option {
	return func(o *Options) { o.strict = true }
}

// WithValidateNaNInf rejects NaN/Inf inputs with ErrNaNInf before any work.
//
// Behavior highlights:
//   - Applies to constructors (NewFromRows & co.) and factorization inputs.
//   - Off by default: IEEE propagation is the expected behavior of arithmetic.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithInverseChain replaces the ordered strategy list evaluated by Inverse.
//
// Behavior highlights:
//   - The slice is copied; duplicates are allowed and simply retried.
//   - The condition check is not a strategy: it runs whenever InverseLU is
//     listed and can only skip that entry.
//
// Errors:
//   - Panics on an empty list or an unknown strategy.
func WithInverseChain(strategies ...InverseStrategy) Option {
	if len(strategies) == 0 {
		panic(panicChainEmpty)
	}
	for _, s := range strategies {
		if s < InverseLU || s > InverseMoorePenrose {
			panic(panicChainUnknown)
		}
	}
	chain := append([]InverseStrategy(nil), strategies...)

	return func(o *Options) { o.chain = chain }
}

// NewMatrixOptions resolves the effective configuration for opts.
// Pure function; useful for callers that want to inspect defaults.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		tol:               DefaultTolerance,
		maxIter:           DefaultMaxIterations,
		condThreshold:     DefaultConditionThreshold,
		strassenThreshold: DefaultStrassenThreshold,
		strassenLeaf:      DefaultStrassenLeaf,
		pivoting:          DefaultPivoting,
		strict:            DefaultStrictConvergence,
		validateNaNInf:    DefaultValidateNaNInf,
	}
}

// gatherOptions applies user-provided Option setters on top of defaults and
// finalizes derived invariants. This is the canonical internal entry in
// api/impl layers.
// Implementation:
//   - Stage 1: start from defaultOptions().
//   - Stage 2: apply setters in order (last-writer-wins).
//   - Stage 3: finalizeOptions.
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		if set != nil {
			set(&o) // apply in order; last-writer-wins semantics
		}
	}
	finalizeOptions(&o)

	return o
}

// finalizeOptions enforces derived invariants in exactly one place.
// A leaf larger than the crossover would make the recursion pointless, so
// the leaf is clamped to the threshold.
func finalizeOptions(o *Options) {
	if o.strassenLeaf > o.strassenThreshold {
		o.strassenLeaf = o.strassenThreshold
	}
	if o.chain == nil {
		o.chain = DefaultInverseChain()
	}
}
