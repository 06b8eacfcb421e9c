// SPDX-License-Identifier: MIT

package job

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Write renders results in the named format ("text" or "yaml").
func Write(w io.Writer, format string, results []Result) error {
	switch format {
	case "", FormatText:
		return WriteText(w, results)
	case FormatYAML:
		return WriteYAML(w, results)
	default:
		return fmt.Errorf("%w: output format %q", ErrUnknownMethod, format)
	}
}

// WriteYAML emits results as a YAML sequence.
func WriteYAML(w io.Writer, results []Result) error {
	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("job: encode results: %w", err)
	}
	_, err = w.Write(data)

	return err
}

// WriteText emits a human-readable listing:
//
//	[1] solve -> x
//	  [1.05556]
//	[2] det
//	  = -6
//
// Factors follow in lexical order, each under its own heading.
func WriteText(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		fmt.Fprintf(bw, "[%d] %s", r.Step, r.Op)
		if r.Name != "" {
			fmt.Fprintf(bw, " -> %s", r.Name)
		}
		bw.WriteByte('\n')
		if r.Value != "" {
			fmt.Fprintf(bw, "  = %s\n", r.Value)
		}
		if len(r.Values) > 0 {
			fmt.Fprintf(bw, "  values: %s\n", strings.Join(r.Values, ", "))
		}
		writeRows(bw, "  ", r.Matrix)
		for _, part := range sortedParts(r) {
			fmt.Fprintf(bw, "  %s:\n", part)
			writeRows(bw, "    ", r.Parts[part])
		}
	}

	return bw.Flush()
}

func writeRows(bw *bufio.Writer, indent string, rows []string) {
	for _, row := range rows {
		bw.WriteString(indent)
		bw.WriteString(row)
		bw.WriteByte('\n')
	}
}
