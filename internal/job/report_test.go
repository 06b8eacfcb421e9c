// SPDX-License-Identifier: MIT

package job_test

import (
	"bytes"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmat/internal/job"
)

var sampleResults = []job.Result{
	{Step: 1, Op: "solve", Name: "x", Matrix: []string{"[1]", "[2]"}},
	{Step: 2, Op: "det", Value: "-6"},
	{Step: 3, Op: "svd", Values: []string{"6.7082", "2.23607"}},
	{Step: 4, Op: "qr", Name: "F", Parts: map[string][]string{"R": {"[1, 2]", "[0, 3]"}, "Q": {"[1, 0]", "[0, 1]"}}},
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, job.WriteText(&buf, sampleResults))

	want := "[1] solve -> x\n" +
		"  [1]\n" +
		"  [2]\n" +
		"[2] det\n" +
		"  = -6\n" +
		"[3] svd\n" +
		"  values: 6.7082, 2.23607\n" +
		"[4] qr -> F\n" +
		"  Q:\n" +
		"    [1, 0]\n" +
		"    [0, 1]\n" +
		"  R:\n" +
		"    [1, 2]\n" +
		"    [0, 3]\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteYAML_Decodes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, job.Write(&buf, job.FormatYAML, sampleResults))

	var got []job.Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleResults, got)
	assert.NotContains(t, buf.String(), "parts: {}", "empty fields are omitted")
}

func TestWrite_Format(t *testing.T) {
	var text, dflt bytes.Buffer
	require.NoError(t, job.Write(&text, job.FormatText, sampleResults))
	require.NoError(t, job.Write(&dflt, "", sampleResults))
	assert.Equal(t, text.String(), dflt.String())

	require.ErrorIs(t, job.Write(&dflt, "xml", sampleResults), job.ErrUnknownMethod)
}
