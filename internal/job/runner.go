// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvmat/matrix"
)

// Result is the rendered outcome of one step.
type Result struct {
	Step   int                 `yaml:"step"`
	Op     string              `yaml:"op"`
	Name   string              `yaml:"name,omitempty"`
	Matrix []string            `yaml:"matrix,omitempty"`
	Value  string              `yaml:"value,omitempty"`
	Values []string            `yaml:"values,omitempty"`
	Parts  map[string][]string `yaml:"parts,omitempty"`
}

// Runner executes documents with a fixed numeric policy.
// A Runner holds no per-run state and may be shared between goroutines.
type Runner struct {
	log  *zap.Logger
	prec int
	opts []matrix.Option
}

// NewRunner returns a Runner that renders with prec significant digits
// (-1 = shortest exact) and passes opts to every matrix call.
// A nil logger disables logging.
func NewRunner(log *zap.Logger, prec int, opts ...matrix.Option) *Runner {
	if log == nil {
		log = zap.NewNop()
	}

	return &Runner{log: log, prec: prec, opts: append([]matrix.Option(nil), opts...)}
}

// Run executes doc step by step and returns one Result per step.
// Implementation:
//   - Stage 1: build the named inputs (literals, then seeded random matrices).
//   - Stage 2: for each step, check ctx, resolve arguments, dispatch to the op handler.
//   - Stage 3: store the step output under "as" (and "<as>.<part>" for factors).
//
// Errors:
//   - ErrUnknownMatrix, ErrUnknownOp, ErrArity, ErrUnknownMethod, matrix errors
//     wrapped with the failing step; ctx.Err() when cancelled between steps.
//   - The results of the steps that completed are returned alongside the error.
func (r *Runner) Run(ctx context.Context, doc *Document) ([]Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	opts := doc.options(r.opts)
	policy := matrix.NewMatrixOptions(opts...)
	prec := r.prec
	if doc.Precision != nil {
		prec = *doc.Precision
	}

	vars, err := inputs(doc)
	if err != nil {
		return nil, err
	}
	log := r.log.With(zap.String("job", doc.Name))
	log.Debug("job inputs ready", zap.Int("matrices", len(vars)), zap.Int("steps", len(doc.Steps)))

	results := make([]Result, 0, len(doc.Steps))
	for i, st := range doc.Steps {
		if err = ctx.Err(); err != nil {
			return results, err
		}
		c := &call{step: st, opts: opts, tol: policy.Tolerance(), prec: prec, args: make([]*matrix.Dense, len(st.Args))}
		for k, name := range st.Args {
			m, ok := vars[name]
			if !ok {
				return results, fmt.Errorf("step %d (%s): %w %q", i+1, st.Op, ErrUnknownMatrix, name)
			}
			c.args[k] = m
		}
		log.Debug("step", zap.Int("step", i+1), zap.String("op", st.Op), zap.Strings("args", describeArgs(st.Args, c.args)))

		out, err := handlers[st.Op].run(c)
		if err != nil {
			log.Warn("step failed", zap.Int("step", i+1), zap.String("op", st.Op), zap.Error(err))

			return results, fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
		results = append(results, render(i+1, st, out, prec))
		store(vars, st.As, out)
	}
	log.Info("job finished", zap.Int("steps", len(results)))

	return results, nil
}

// inputs decodes literal matrices and draws random ones.
func inputs(doc *Document) (map[string]*matrix.Dense, error) {
	vars := make(map[string]*matrix.Dense, len(doc.Matrices)+len(doc.Random))
	for name, expr := range doc.Matrices {
		m, err := matrix.Parse(expr, ";", " ")
		if err != nil {
			return nil, fmt.Errorf("matrix %q: %w", name, err)
		}
		vars[name] = m
	}
	for name, spec := range doc.Random {
		kind, err := ParseRandomKind(spec.Kind)
		if err != nil {
			return nil, fmt.Errorf("random %q: %w", name, err)
		}
		m, err := matrix.NewRandom(matrix.RandomConfig{
			Rows:    spec.Rows,
			Cols:    spec.Cols,
			Kind:    kind,
			Seed:    spec.Seed,
			Min:     spec.Min,
			Max:     spec.Max,
			Density: spec.Density,
			Complex: spec.Complex,
		})
		if err != nil {
			return nil, fmt.Errorf("random %q: %w", name, err)
		}
		vars[name] = m
	}

	return vars, nil
}

// store binds a step output. Outputs without an "as" name are only reported.
func store(vars map[string]*matrix.Dense, as string, out output) {
	if as == "" {
		return
	}
	if out.matrix != nil {
		vars[as] = out.matrix
	}
	for part, m := range out.parts {
		vars[as+"."+part] = m
	}
}

func render(step int, st Step, out output, prec int) Result {
	res := Result{Step: step, Op: st.Op, Name: st.As, Value: out.value, Values: out.values}
	if out.matrix != nil {
		res.Matrix = rows(out.matrix, prec)
	}
	if len(out.parts) > 0 {
		res.Parts = make(map[string][]string, len(out.parts))
		for part, m := range out.parts {
			res.Parts[part] = rows(m, prec)
		}
	}

	return res
}

// rows splits the bracketed rendering of m into one string per row.
func rows(m *matrix.Dense, prec int) []string {
	return strings.Split(strings.TrimSuffix(m.Format(prec), "\n"), "\n")
}

func describeArgs(names []string, args []*matrix.Dense) []string {
	out := make([]string, len(args))
	for i := range args {
		out[i] = describe(names[i], args[i])
	}

	return out
}

// sortedParts returns the part names of r in lexical order.
func sortedParts(r Result) []string {
	names := make([]string, 0, len(r.Parts))
	for name := range r.Parts {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
