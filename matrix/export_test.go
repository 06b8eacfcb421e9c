// SPDX-License-Identifier: MIT

package matrix

// OptionsSnapshot is a read-only copy of resolved Options for external tests.
type OptionsSnapshot struct {
	Tol               float64
	MaxIter           int
	CondThreshold     float64
	StrassenThreshold int
	StrassenLeaf      int
	Pivoting          Pivoting
	Strict            bool
	ValidateNaNInf    bool
	Chain             []InverseStrategy
}

// GatherOptionsSnapshot resolves opts exactly like the kernels do.
func GatherOptionsSnapshot(opts ...Option) OptionsSnapshot {
	o := gatherOptions(opts...)

	return OptionsSnapshot{
		Tol:               o.tol,
		MaxIter:           o.maxIter,
		CondThreshold:     o.condThreshold,
		StrassenThreshold: o.strassenThreshold,
		StrassenLeaf:      o.strassenLeaf,
		Pivoting:          o.pivoting,
		Strict:            o.strict,
		ValidateNaNInf:    o.validateNaNInf,
		Chain:             append([]InverseStrategy(nil), o.chain...),
	}
}

// Panic messages of the WithX constructors.
const (
	PanicToleranceInvalid     = panicToleranceInvalid
	PanicMaxIterationsInvalid = panicMaxIterationsInvalid
	PanicConditionInvalid     = panicConditionInvalid
	PanicStrassenInvalid      = panicStrassenInvalid
	PanicStrassenLeafInvalid  = panicStrassenLeafInvalid
	PanicPivotingInvalid      = panicPivotingInvalid
	PanicChainEmpty           = panicChainEmpty
	PanicChainUnknown         = panicChainUnknown
)
