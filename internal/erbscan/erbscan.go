// Package erbscan scans ERB templates (`<%= %>`, `<% %>`, `<%# %>`) far
// enough to collect every `@variable` reference a template makes, so
// ErbReferencesToUnknownVariable (§4.8) can check each one against the
// manifest class's argument list.
//
// Grounded on
// original_source/puppet_pp_lint/src/ctx/erb_template/parser.rs: a
// literal-text run, an output tag, a comment tag, and a code tag are the
// four fragment kinds; variable references are scanned for inside output
// and code tags only, never inside literal text or comments.
package erbscan

import (
	"strings"

	"github.com/lindstrom-oss/puplint/internal/lexer"
)

// FragmentKind tags one ERB fragment.
type FragmentKind int

const (
	FragmentLiteralText FragmentKind = iota
	FragmentOutput                  // <%= … %>
	FragmentCode                    // <% … %>
	FragmentCommentTag               // <%# … %>
)

// Fragment is one scanned piece of the template.
type Fragment struct {
	Kind    FragmentKind
	Content string
}

// ScanResult is the outcome of scanning one template: its fragments in
// source order, and the deduplicated set of `@variable` names referenced
// from any Output or Code fragment.
type ScanResult struct {
	Fragments []Fragment
	Variables []string
}

// Scan splits src into ERB fragments and collects every `@name` reference
// found inside Output/Code tags.
func Scan(src string) *ScanResult {
	c := lexer.New(src)
	result := &ScanResult{}
	seen := make(map[string]bool)

	for !c.EOF() {
		if c.HasPrefix("<%#") {
			content := scanUntil(c, "<%#", "%>")
			result.Fragments = append(result.Fragments, Fragment{Kind: FragmentCommentTag, Content: content})
			continue
		}
		if c.HasPrefix("<%=") {
			content := scanUntil(c, "<%=", "%>")
			result.Fragments = append(result.Fragments, Fragment{Kind: FragmentOutput, Content: content})
			collectVariables(content, seen, &result.Variables)
			continue
		}
		if c.HasPrefix("<%") {
			content := scanUntil(c, "<%", "%>")
			result.Fragments = append(result.Fragments, Fragment{Kind: FragmentCode, Content: content})
			collectVariables(content, seen, &result.Variables)
			continue
		}
		start := c.Offset
		for !c.EOF() && !c.HasPrefix("<%") {
			c.Advance(1)
		}
		if c.Offset > start {
			result.Fragments = append(result.Fragments, Fragment{
				Kind: FragmentLiteralText, Content: c.Src[start:c.Offset],
			})
		}
	}
	return result
}

func scanUntil(c *lexer.Cursor, open, close string) string {
	c.Advance(len(open))
	start := c.Offset
	for !c.EOF() && !c.HasPrefix(close) {
		b, _ := c.PeekByte()
		if b == '\'' {
			skipQuoted(c, '\'')
			continue
		}
		if b == '"' {
			skipQuoted(c, '"')
			continue
		}
		c.Advance(1)
	}
	content := c.Src[start:c.Offset]
	if c.HasPrefix(close) {
		c.Advance(len(close))
	}
	return content
}

func skipQuoted(c *lexer.Cursor, quote byte) {
	c.Advance(1)
	for {
		b, ok := c.PeekByte()
		if !ok || b == quote {
			c.Advance(1)
			return
		}
		if b == '\\' {
			c.Advance(2)
			continue
		}
		c.Advance(1)
	}
}

// collectVariables scans code for `@name` instance-variable references,
// the form ERB templates use to read a Puppet class's scope.
func collectVariables(code string, seen map[string]bool, out *[]string) {
	i := 0
	for i < len(code) {
		if code[i] == '@' {
			j := i + 1
			for j < len(code) && isIdentByte(code[j]) {
				j++
			}
			if j > i+1 {
				name := code[i+1 : j]
				if !seen[name] {
					seen[name] = true
					*out = append(*out, name)
				}
			}
			i = j
			continue
		}
		i++
	}
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// HasContent reports whether s contains any non-whitespace text, used by
// callers deciding whether a literal fragment is worth keeping.
func HasContent(s string) bool {
	return len(strings.TrimSpace(s)) > 0
}
