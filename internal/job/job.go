// SPDX-License-Identifier: MIT

// Package job decodes densecalc job documents and executes them against the
// matrix engine.
//
// A job is a YAML document with named input matrices and an ordered list of
// steps:
//
//	name: least-squares
//	precision: 4
//	matrices:
//	  A: "4 3; 6 3"
//	  b: "10; 12"
//	random:
//	  R: {rows: 3, kind: positive-definite, seed: 7}
//	steps:
//	  - {op: solve, args: [A, b], as: x, method: lu}
//	  - {op: det, args: [A]}
//	  - {op: lu, args: [R], as: F}   # stores F.L, F.U and F.P
//
// Matrix literals use the "a b; c d" syntax of matrix.Parse. A step's result
// is stored under its "as" name; decompositions store every factor as
// "<as>.<factor>", so later steps can refer to them.
package job

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/katalvlaran/lvmat/matrix"
)

// Sentinel errors returned by Decode, Load and Runner.Run.
var (
	// ErrInvalidDocument marks a document that fails validation.
	ErrInvalidDocument = errors.New("job: invalid document")
	// ErrUnknownOp is returned for an op name with no handler.
	ErrUnknownOp = errors.New("job: unknown op")
	// ErrUnknownMatrix is returned when a step references an undefined name.
	ErrUnknownMatrix = errors.New("job: unknown matrix")
	// ErrArity is returned when a step has the wrong number of arguments.
	ErrArity = errors.New("job: wrong number of arguments")
	// ErrUnknownMethod is returned for an unrecognized method, norm or kind name.
	ErrUnknownMethod = errors.New("job: unknown method")
)

// Document is one decoded job file.
type Document struct {
	Name      string                `yaml:"name"`
	Precision *int                  `yaml:"precision"`
	Tolerance *float64              `yaml:"tolerance"`
	Matrices  map[string]string     `yaml:"matrices"`
	Random    map[string]RandomSpec `yaml:"random"`
	Steps     []Step                `yaml:"steps"`
}

// RandomSpec declares a seeded random input (see matrix.NewRandom).
type RandomSpec struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Kind    string  `yaml:"kind"`
	Seed    uint64  `yaml:"seed"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Density float64 `yaml:"density"`
	Complex bool    `yaml:"complex"`
}

// Step is one operation of a job.
type Step struct {
	Op     string   `yaml:"op"`
	Args   []string `yaml:"args"`
	As     string   `yaml:"as"`
	Method string   `yaml:"method"`
	Power  float64  `yaml:"power"`
}

// Decode parses and validates a job document. Unknown keys are rejected so
// typos in step fields surface instead of silently selecting defaults.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Load reads and decodes the job file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("job: read %s: %w", path, err)
	}

	return Decode(data)
}

// Validate checks document-level settings and step shapes. Matrix names are
// resolved at run time, since steps may refer to results of earlier steps.
func (d *Document) Validate() error {
	if d.Precision != nil && *d.Precision < -1 {
		return fmt.Errorf("%w: precision %d", ErrInvalidDocument, *d.Precision)
	}
	if d.Tolerance != nil {
		tol := *d.Tolerance
		if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
			return fmt.Errorf("%w: tolerance %g", ErrInvalidDocument, tol)
		}
	}
	if len(d.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidDocument)
	}
	for name := range d.Random {
		if _, dup := d.Matrices[name]; dup {
			return fmt.Errorf("%w: %q defined twice", ErrInvalidDocument, name)
		}
	}
	for i, st := range d.Steps {
		h, ok := handlers[st.Op]
		if !ok {
			return fmt.Errorf("step %d: %w %q", i+1, ErrUnknownOp, st.Op)
		}
		if len(st.Args) != h.arity {
			return fmt.Errorf("step %d (%s): %w: want %d, got %d", i+1, st.Op, ErrArity, h.arity, len(st.Args))
		}
	}

	return nil
}

// options returns the document overrides layered over base.
func (d *Document) options(base []matrix.Option) []matrix.Option {
	opts := append([]matrix.Option(nil), base...)
	if d.Tolerance != nil {
		opts = append(opts, matrix.WithTolerance(*d.Tolerance))
	}

	return opts
}

// ParseSolveMethod maps a method name ("auto", "lu", ...) to its SolveMethod.
// The empty string selects SolveAuto.
func ParseSolveMethod(s string) (matrix.SolveMethod, error) {
	if s == "" {
		return matrix.SolveAuto, nil
	}
	for m := matrix.SolveAuto; m <= matrix.SolveSVD; m++ {
		if m.String() == s {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w: solve method %q", ErrUnknownMethod, s)
}

// ParseNormKind maps a norm name to its NormKind. The empty string selects
// the Frobenius norm.
func ParseNormKind(s string) (matrix.NormKind, error) {
	if s == "" {
		return matrix.NormFrobenius, nil
	}
	for k := matrix.NormFrobenius; k <= matrix.NormMax; k++ {
		if k.String() == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: norm %q", ErrUnknownMethod, s)
}

// ParseRandomKind maps an archetype name to its RandomKind. The empty
// string selects RandomGeneral.
func ParseRandomKind(s string) (matrix.RandomKind, error) {
	if s == "" {
		return matrix.RandomGeneral, nil
	}
	for k := matrix.RandomGeneral; k <= matrix.RandomPositiveDefinite; k++ {
		if k.String() == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: random kind %q", ErrUnknownMethod, s)
}
