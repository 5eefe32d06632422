// Package report formats lint.Diagnostic slices for a human or a machine:
// a compact "path:line:col: message [Rule]" text form mirroring rustc/
// clippy-style tooling output, and a JSON form for editor integrations and
// CI pipelines. This is an out-of-core external collaborator (§6's
// "reporting formats are not this module's concern") — the thin seam
// puplint's core lint engine is exercised against.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/lindstrom-oss/puplint/internal/lint"
)

// Finding is one diagnostic annotated with the file it was found in, the
// unit JSON encodes and text-formats.
type Finding struct {
	Path       string `json:"path"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	EndLine    int    `json:"end_line"`
	EndColumn  int    `json:"end_column"`
	Rule       string `json:"rule"`
	Message    string `json:"message"`
	URL        string `json:"url,omitempty"`
}

// FromDiagnostics converts diags (as produced against the manifest parsed
// from path) into Findings, sorted by position so output is stable across
// runs regardless of which rule happened to report a given line first.
func FromDiagnostics(path string, diags []lint.Diagnostic) []Finding {
	findings := make([]Finding, 0, len(diags))
	for _, d := range diags {
		findings = append(findings, Finding{
			Path:      path,
			Line:      d.Range.Start.Line,
			Column:    d.Range.Start.Column,
			EndLine:   d.Range.End.Line,
			EndColumn: d.Range.End.Column,
			Rule:      d.Rule,
			Message:   d.Message,
			URL:       d.URL,
		})
	}
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		if findings[i].Column != findings[j].Column {
			return findings[i].Column < findings[j].Column
		}
		return findings[i].Rule < findings[j].Rule
	})
	return findings
}

// WriteText writes one "path:line:col: message [Rule]" line per finding.
func WriteText(w io.Writer, findings []Finding) error {
	for _, f := range findings {
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s [%s]\n", f.Path, f.Line, f.Column, f.Message, f.Rule); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes findings as a single indented JSON array.
func WriteJSON(w io.Writer, findings []Finding) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}
