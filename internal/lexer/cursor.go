// Package lexer implements the lexical primitives shared by every grammar
// parser: a position-tracking cursor over the source text, comment capture,
// whitespace skipping, identifiers, numeric literals, and punctuation.
//
// Comments are never discarded. SkipSpace captures every "#…"-prefixed run
// it passes over so structural parsers can attach it to whichever node they
// open next (see ast.Comment).
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/lindstrom-oss/puplint/internal/ast"
	"github.com/lindstrom-oss/puplint/internal/srcrange"
)

// Cursor is a mutable read head over UTF-8 source text. It is cheap to copy
// (a Mark/Reset pair is just struct assignment), which is how parsers
// backtrack on failed alternatives.
type Cursor struct {
	Src    string
	Offset int
	Line   int
	Column int
}

// New creates a Cursor positioned at the start of src.
func New(src string) *Cursor {
	return &Cursor{Src: src, Offset: 0, Line: 1, Column: 1}
}

// Location returns the cursor's current position as a srcrange.Location.
func (c *Cursor) Location() srcrange.Location {
	return srcrange.Location{Offset: c.Offset, Line: c.Line, Column: c.Column}
}

// Mark snapshots the cursor state for later Reset.
func (c *Cursor) Mark() Cursor {
	return *c
}

// Reset restores the cursor to a previously Marked state.
func (c *Cursor) Reset(m Cursor) {
	*c = m
}

// EOF reports whether the cursor has consumed all input.
func (c *Cursor) EOF() bool {
	return c.Offset >= len(c.Src)
}

// Rest returns the unconsumed remainder of the source.
func (c *Cursor) Rest() string {
	return c.Src[c.Offset:]
}

// PeekByte returns the byte at the cursor without consuming it.
func (c *Cursor) PeekByte() (byte, bool) {
	if c.EOF() {
		return 0, false
	}
	return c.Src[c.Offset], true
}

// HasPrefix reports whether the unconsumed input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return strings.HasPrefix(c.Rest(), s)
}

// Advance consumes n bytes, updating line/column bookkeeping. n must not
// straddle a line in a way that skips counting embedded newlines.
func (c *Cursor) Advance(n int) {
	for i := 0; i < n; i++ {
		if c.Offset >= len(c.Src) {
			return
		}
		if c.Src[c.Offset] == '\n' {
			c.Line++
			c.Column = 1
		} else {
			c.Column++
		}
		c.Offset++
	}
}

// AdvanceRune consumes one UTF-8 rune, returning it.
func (c *Cursor) AdvanceRune() (rune, bool) {
	if c.EOF() {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(c.Rest())
	c.Advance(size)
	return r, true
}

// ConsumeLiteral advances past s if the input starts with it, returning
// whether it matched.
func (c *Cursor) ConsumeLiteral(s string) bool {
	if !c.HasPrefix(s) {
		return false
	}
	c.Advance(len(s))
	return true
}

// --- whitespace & comments -------------------------------------------------

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// SkipSpace consumes whitespace and `#`-prefixed line comments, returning
// every comment encountered in source order so the caller's structural
// parser can attach them to the next node it opens.
func SkipSpace(c *Cursor) []ast.Comment {
	var comments []ast.Comment
	for {
		for {
			b, ok := c.PeekByte()
			if !ok || !isSpace(b) {
				break
			}
			c.Advance(1)
		}
		b, ok := c.PeekByte()
		if !ok || b != '#' {
			break
		}
		start := c.Location()
		for {
			b, ok := c.PeekByte()
			if !ok || b == '\n' {
				break
			}
			c.Advance(1)
		}
		text := c.Src[start.Offset:c.Offset]
		comments = append(comments, ast.Comment{
			Text:  strings.TrimPrefix(text, "#"),
			Range: srcrange.Range{Start: start, End: c.Location()},
		})
	}
	return comments
}

// Separator1 requires at least one whitespace-or-comment unit; it fails
// (without consuming) when the cursor is not looking at space or '#'.
func Separator1(c *Cursor) ([]ast.Comment, bool) {
	b, ok := c.PeekByte()
	if !ok || (!isSpace(b) && b != '#') {
		return nil, false
	}
	return SkipSpace(c), true
}

// SpacedWord matches a reserved word surrounded by optional whitespace,
// refusing a match if the keyword is actually the prefix of a longer
// identifier (e.g. "classic" must not match keyword "class").
func SpacedWord(c *Cursor, kw string) bool {
	m := c.Mark()
	SkipSpace(c)
	if !c.HasPrefix(kw) {
		c.Reset(m)
		return false
	}
	after := c.Offset + len(kw)
	if after < len(c.Src) && isIdentCont(c.Src[after]) {
		c.Reset(m)
		return false
	}
	c.Advance(len(kw))
	return true
}

// --- identifiers ------------------------------------------------------------

// Ident scans a bare [A-Za-z_][A-Za-z0-9_]* token without consuming
// surrounding whitespace.
func Ident(c *Cursor) (string, bool) {
	b, ok := c.PeekByte()
	if !ok || !isIdentStart(b) {
		return "", false
	}
	start := c.Offset
	c.Advance(1)
	for {
		b, ok := c.PeekByte()
		if !ok || !isIdentCont(b) {
			break
		}
		c.Advance(1)
	}
	return c.Src[start:c.Offset], true
}

// IsLowerStart reports whether name begins with a lowercase letter or '_',
// the rule distinguishing lowercase_identifier from camel_case_identifier.
func IsLowerStart(name string) bool {
	if name == "" {
		return false
	}
	r := name[0]
	return r == '_' || (r >= 'a' && r <= 'z')
}

// IsUpperStart reports whether name begins with an uppercase letter.
func IsUpperStart(name string) bool {
	if name == "" {
		return false
	}
	return name[0] >= 'A' && name[0] <= 'Z'
}

// NamespacedIdent scans `::`-joined segments, reporting whether the
// identifier was introduced by a leading `::` (is_toplevel).
func NamespacedIdent(c *Cursor) (segments []string, isToplevel bool, ok bool) {
	m := c.Mark()
	if c.ConsumeLiteral("::") {
		isToplevel = true
	}
	first, ok := Ident(c)
	if !ok {
		c.Reset(m)
		return nil, false, false
	}
	segments = append(segments, first)
	for {
		mm := c.Mark()
		if !c.ConsumeLiteral("::") {
			break
		}
		seg, ok := Ident(c)
		if !ok {
			c.Reset(mm)
			break
		}
		segments = append(segments, seg)
	}
	return segments, isToplevel, true
}

// --- numerics ---------------------------------------------------------------

// Integer scans an optional-sign-free decimal integer literal. The sign
// belongs to the enclosing operator, never the literal (§4.2).
func Integer(c *Cursor) (string, bool) {
	b, ok := c.PeekByte()
	if !ok || !isDigit(b) {
		return "", false
	}
	start := c.Offset
	for {
		b, ok := c.PeekByte()
		if !ok || !isDigit(b) {
			break
		}
		c.Advance(1)
	}
	return c.Src[start:c.Offset], true
}

// Float scans `<int>.<digits>`, returning ok=false (without consuming) when
// there is no fractional part, so callers can fall back to Integer.
func Float(c *Cursor) (string, bool) {
	m := c.Mark()
	intPart, ok := Integer(c)
	if !ok {
		return "", false
	}
	if !c.HasPrefix(".") {
		c.Reset(m)
		return "", false
	}
	dot := c.Offset
	c.Advance(1)
	fracStart := c.Offset
	for {
		b, ok := c.PeekByte()
		if !ok || !isDigit(b) {
			break
		}
		c.Advance(1)
	}
	if c.Offset == fracStart {
		c.Reset(m)
		return "", false
	}
	return intPart + c.Src[dot:c.Offset], true
}
