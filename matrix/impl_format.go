// SPDX-License-Identifier: MIT

// Package matrix - text surfaces: bracketed printing and delimited parsing.
//
// Purpose:
//   - String/Format render a bracketed grid, one row per line.
//   - Parse decodes "1 2; 3 4"-style expressions with caller-chosen separators.
//
// AI-Hints:
//   - Format(prec) with prec = -1 prints the shortest exact representation.
//   - Parse(expr, ";", " ") round-trips Format output only when separators match.

package matrix

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvmat/scalar"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "

	opParse = "Parse"
)

// String renders the matrix with the shortest exact precision.
//
// Returns:
//   - string: "[a, b]\n[c, d]\n"; an empty matrix prints "[]\n".
//
// Complexity:
//   - Time O(r*c).
func (m *Dense) String() string { return m.Format(-1) }

// Format renders rows as bracketed comma-separated lines with prec
// significant digits. An imaginary part within scalar.DefaultTolerance of
// the element's modulus is not printed.
func (m *Dense) Format(prec int) string {
	var b strings.Builder
	if m.r == 0 {
		b.WriteString(_fmtRowOpen)
		b.WriteString(_fmtRowClose)

		return b.String()
	}
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(scalar.Format(m.data[base+j], prec))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Parse builds a matrix from a delimited expression.
// Implementation:
//   - Stage 1: split by rowSep; blank segments are skipped.
//   - Stage 2: split each row by colSep (runs of whitespace collapse when colSep is blank).
//   - Stage 3: decode every token with scalar.Parse and validate rectangularity.
//
// Inputs:
//   - expr: e.g. "1 2; 3 4" or "1,2i|3,4".
//   - rowSep, colSep: non-empty separators.
//
// Errors:
//   - ErrParse for an empty separator or undecodable token; ErrBadShape for ragged rows.
//
// Complexity:
//   - Time O(len(expr)).
func Parse(expr, rowSep, colSep string) (*Dense, error) {
	if rowSep == "" || colSep == "" {
		return nil, matrixErrorf(opParse, ErrParse)
	}
	var rows [][]complex128
	for _, line := range strings.Split(expr, rowSep) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var fields []string
		if strings.TrimSpace(colSep) == "" {
			fields = strings.Fields(line)
		} else {
			fields = strings.Split(line, colSep)
		}
		row := make([]complex128, 0, len(fields))
		for _, f := range fields {
			v, err := scalar.Parse(f)
			if err != nil {
				return nil, matrixErrorf(opParse, fmt.Errorf("token %q: %w: %w", f, ErrParse, err))
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	m, err := NewFromComplexRows(rows)
	if err != nil {
		return nil, matrixErrorf(opParse, err)
	}

	return m, nil
}
