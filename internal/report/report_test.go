package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindstrom-oss/puplint/internal/lint"
	"github.com/lindstrom-oss/puplint/internal/report"
	"github.com/lindstrom-oss/puplint/internal/srcrange"
)

func loc(line, col int) srcrange.Location {
	return srcrange.Location{Line: line, Column: col}
}

func TestFromDiagnosticsSortsByPosition(t *testing.T) {
	diags := []lint.Diagnostic{
		{Rule: "ZLast", Message: "z", Range: srcrange.Range{Start: loc(3, 1), End: loc(3, 2)}},
		{Rule: "BSecond", Message: "b-at-1-5", Range: srcrange.Range{Start: loc(1, 5), End: loc(1, 6)}},
		{Rule: "AFirst", Message: "a-at-1-5", Range: srcrange.Range{Start: loc(1, 5), End: loc(1, 6)}},
		{Rule: "Early", Message: "e", Range: srcrange.Range{Start: loc(1, 1), End: loc(1, 2)}},
	}
	findings := report.FromDiagnostics("manifests/init.pp", diags)
	require.Len(t, findings, 4)
	want := []string{"Early", "AFirst", "BSecond", "ZLast"}
	for i, rule := range want {
		assert.Equalf(t, rule, findings[i].Rule, "findings[%d].Rule", i)
	}
	assert.Equal(t, "manifests/init.pp", findings[0].Path)
}

func TestWriteTextFormat(t *testing.T) {
	findings := report.FromDiagnostics("init.pp", []lint.Diagnostic{
		{Rule: "MagicNumber", Message: "magic number 42", Range: srcrange.Range{Start: loc(5, 10), End: loc(5, 12)}},
	})
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, findings))
	assert.Equal(t, "init.pp:5:10: magic number 42 [MagicNumber]\n", buf.String())
}

func TestWriteJSONRoundTrips(t *testing.T) {
	findings := report.FromDiagnostics("init.pp", []lint.Diagnostic{
		{Rule: "NoDefaultCase", Message: "missing default", Range: srcrange.Range{Start: loc(1, 1), End: loc(1, 2)}, URL: "https://example.com/no-default-case"},
	})
	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, findings))
	var decoded []report.Finding
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "NoDefaultCase", decoded[0].Rule)
	assert.Equal(t, "https://example.com/no-default-case", decoded[0].URL)
}
