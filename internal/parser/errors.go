// Package parser implements the expression, statement, and top-level
// grammars, plus the recoverable/hard-error carrier that lets alternatives
// backtrack freely until a production commits.
//
// Grounded on original_source/puppet_parser/src/parser.rs: a parse attempt
// either fails Recoverably (the caller may try the next alternative) or
// hits a Failure (a commit point was passed; propagate immediately without
// further backtracking). Protect is the commit-point combinator converting
// the former into the latter.
package parser

import (
	"errors"
	"fmt"

	"github.com/lindstrom-oss/puplint/internal/srcrange"
)

// Recoverable is returned by a production that did not match at all; the
// caller is free to reset its cursor and try a different alternative.
type Recoverable struct {
	Range   srcrange.Range
	Message string
}

func (e *Recoverable) Error() string {
	return fmt.Sprintf("%s: %s", e.Range, e.Message)
}

// Failure is returned once a production has committed — consumed enough
// input that no sibling alternative could possibly apply — and then failed
// anyway. It always propagates to the top of the parse, never triggering a
// backtrack.
type Failure struct {
	Range   srcrange.Range
	Message string
	URL     string // optional link to documentation, carried through from §4.9
}

func (e *Failure) Error() string {
	return fmt.Sprintf("%s: %s", e.Range, e.Message)
}

// Protect converts a Recoverable error into a Failure at a commit point: a
// production that has consumed its distinguishing prefix (a keyword, an
// opening bracket) calls Protect on every error from that point on, so a
// malformed body is reported precisely instead of silently falling through
// to an unrelated alternative and producing a confusing error elsewhere.
func Protect(err error) error {
	if err == nil {
		return nil
	}
	var rec *Recoverable
	if errors.As(err, &rec) {
		return &Failure{Range: rec.Range, Message: rec.Message}
	}
	return err
}

func recoverableAt(r srcrange.Range, format string, args ...any) error {
	return &Recoverable{Range: r, Message: fmt.Sprintf(format, args...)}
}

func failureAt(r srcrange.Range, format string, args ...any) error {
	return &Failure{Range: r, Message: fmt.Sprintf(format, args...)}
}
