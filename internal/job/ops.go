// SPDX-License-Identifier: MIT

package job

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/lvmat/matrix"
	"github.com/katalvlaran/lvmat/scalar"
)

// call carries the resolved inputs of one step.
type call struct {
	args []*matrix.Dense
	step Step
	opts []matrix.Option
	tol  float64
	prec int
}

// output is what a handler produces. Matrix is stored under Step.As; parts
// are stored as "<as>.<name>".
type output struct {
	matrix *matrix.Dense
	value  string
	values []string
	parts  map[string]*matrix.Dense
}

type handler struct {
	arity int
	run   func(c *call) (output, error)
}

// handlers is the op table. Every entry is exercised by runner_test.go.
var handlers = map[string]handler{
	"print":         {1, func(c *call) (output, error) { return output{matrix: c.args[0]}, nil }},
	"add":           {2, binary(matrix.Add)},
	"sub":           {2, binary(matrix.Sub)},
	"mul":           {2, mulOp},
	"hadamard":      {2, binary(matrix.Hadamard)},
	"kron":          {2, binary(matrix.Kronecker)},
	"solve":         {2, solveOp},
	"transpose":     {1, unary(matrix.Transpose)},
	"conjtranspose": {1, unary(matrix.ConjTranspose)},
	"negate":        {1, unary(matrix.Negate)},
	"adjugate":      {1, unary(matrix.Adjugate)},
	"hermitianize":  {1, unary(matrix.Hermitianize)},
	"inverse":       {1, inverseOp},
	"pinv":          {1, pinvOp},
	"pow":           {1, powOp},
	"rref":          {1, echelonOp(matrix.ReducedRowEchelon)},
	"echelon":       {1, echelonOp(matrix.RowEchelon)},
	"cov":           {1, covOp},
	"det":           {1, detOp},
	"trace":         {1, traceOp},
	"norm":          {1, normOp},
	"cond":          {1, condOp},
	"rank":          {1, rankOp},
	"lu":            {1, luOp},
	"qr":            {1, qrOp},
	"cholesky":      {1, choleskyOp},
	"schur":         {1, schurOp},
	"eigen":         {1, eigenOp},
	"svd":           {1, svdOp},
}

func unary(f func(matrix.Matrix) (*matrix.Dense, error)) func(c *call) (output, error) {
	return func(c *call) (output, error) {
		m, err := f(c.args[0])

		return output{matrix: m}, err
	}
}

func binary(f func(a, b matrix.Matrix) (*matrix.Dense, error)) func(c *call) (output, error) {
	return func(c *call) (output, error) {
		m, err := f(c.args[0], c.args[1])

		return output{matrix: m}, err
	}
}

func echelonOp(f func(matrix.Matrix, float64) (*matrix.Dense, error)) func(c *call) (output, error) {
	return func(c *call) (output, error) {
		m, err := f(c.args[0], c.tol)

		return output{matrix: m}, err
	}
}

func mulOp(c *call) (output, error) {
	m, err := matrix.MulWith(c.args[0], c.args[1], c.opts...)

	return output{matrix: m}, err
}

func solveOp(c *call) (output, error) {
	method, err := ParseSolveMethod(c.step.Method)
	if err != nil {
		return output{}, err
	}
	x, err := matrix.Solve(c.args[0], c.args[1], method, c.opts...)

	return output{matrix: x}, err
}

// inverseOp reports the strategy of the inverse chain that succeeded.
func inverseOp(c *call) (output, error) {
	inv, rep, err := matrix.InverseWithReport(c.args[0], c.opts...)
	if err != nil {
		return output{}, err
	}

	return output{matrix: inv, value: rep.Strategy.String()}, nil
}

func pinvOp(c *call) (output, error) {
	m, err := matrix.PseudoInverse(c.args[0], c.tol, c.opts...)

	return output{matrix: m}, err
}

func powOp(c *call) (output, error) {
	m, err := matrix.Pow(c.args[0], c.step.Power, c.opts...)

	return output{matrix: m}, err
}

func covOp(c *call) (output, error) {
	m, _, err := matrix.Covariance(c.args[0])

	return output{matrix: m}, err
}

func detOp(c *call) (output, error) {
	d, err := matrix.Determinant(c.args[0], c.opts...)
	if err != nil {
		return output{}, err
	}

	return output{value: scalar.Format(d, c.prec)}, nil
}

func traceOp(c *call) (output, error) {
	tr, err := matrix.Trace(c.args[0])
	if err != nil {
		return output{}, err
	}

	return output{value: scalar.Format(tr, c.prec)}, nil
}

func normOp(c *call) (output, error) {
	kind, err := ParseNormKind(c.step.Method)
	if err != nil {
		return output{}, err
	}
	v, err := matrix.Norm(c.args[0], kind, c.opts...)
	if err != nil {
		return output{}, err
	}

	return output{value: formatFloat(v, c.prec)}, nil
}

func condOp(c *call) (output, error) {
	kind, err := ParseNormKind(c.step.Method)
	if err != nil {
		return output{}, err
	}
	v, err := matrix.ConditionNumber(c.args[0], kind, c.opts...)
	if err != nil {
		return output{}, err
	}

	return output{value: formatFloat(v, c.prec)}, nil
}

func rankOp(c *call) (output, error) {
	r, err := matrix.Rank(c.args[0], c.tol, c.opts...)
	if err != nil {
		return output{}, err
	}

	return output{value: strconv.Itoa(r)}, nil
}

// luOp stores L and U, plus P and Q when the pivoting produced them.
func luOp(c *call) (output, error) {
	f, err := matrix.LU(c.args[0], c.opts...)
	if err != nil {
		return output{}, err
	}
	parts := map[string]*matrix.Dense{"L": f.L(), "U": f.U()}
	if p := f.P(); p != nil {
		parts["P"] = p
	}
	if q := f.Q(); q != nil {
		parts["Q"] = q
	}

	return output{parts: parts, value: scalar.Format(f.Determinant(), c.prec)}, nil
}

func qrOp(c *call) (output, error) {
	f, err := matrix.QR(c.args[0], c.opts...)
	if err != nil {
		return output{}, err
	}

	return output{parts: map[string]*matrix.Dense{"Q": f.Q(), "R": f.R()}}, nil
}

func choleskyOp(c *call) (output, error) {
	f, err := matrix.Cholesky(c.args[0], c.opts...)
	if err != nil {
		return output{}, err
	}

	return output{parts: map[string]*matrix.Dense{"L": f.L()}}, nil
}

func schurOp(c *call) (output, error) {
	f, err := matrix.Schur(c.args[0], c.opts...)
	if err != nil {
		return output{}, err
	}

	return output{parts: map[string]*matrix.Dense{"Q": f.Q(), "T": f.T()}}, nil
}

// eigenOp lists the eigenvalues and stores V (vectors as columns) and D.
func eigenOp(c *call) (output, error) {
	f, err := matrix.Eigen(c.args[0], c.opts...)
	if err != nil {
		return output{}, err
	}
	vals := f.Values()
	out := output{
		values: make([]string, len(vals)),
		parts:  map[string]*matrix.Dense{"V": f.VectorMatrix(), "D": f.ValueMatrix()},
	}
	for i, v := range vals {
		out.values[i] = scalar.Format(v, c.prec)
	}

	return out, nil
}

// svdOp lists the singular values and stores U, S and V.
func svdOp(c *call) (output, error) {
	f, err := matrix.SVD(c.args[0], c.opts...)
	if err != nil {
		return output{}, err
	}
	vals := f.Values()
	out := output{
		values: make([]string, len(vals)),
		parts:  map[string]*matrix.Dense{"U": f.U(), "S": f.S(), "V": f.V()},
	}
	for i, v := range vals {
		out.values[i] = formatFloat(v, c.prec)
	}

	return out, nil
}

// formatFloat prints v like scalar.Format; +Inf prints as "+Inf".
func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'g', prec, 64)
}

// describe names a handler input for error messages.
func describe(name string, m *matrix.Dense) string {
	return fmt.Sprintf("%s (%dx%d)", name, m.Rows(), m.Cols())
}
