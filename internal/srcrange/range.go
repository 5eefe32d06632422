// Package srcrange implements the location-tracking value types shared by
// every AST node: a byte-offset/line/column Location and the half-open
// Range built from it.
package srcrange

import "fmt"

// Location is a single point in a source file. Offset is 0-based; Line and
// Column are 1-based.
type Location struct {
	Offset int
	Line   int
	Column int
}

// Less reports whether l sorts before other by offset.
func (l Location) Less(other Location) bool {
	return l.Offset < other.Offset
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Range is a half-open source span: [Start, End).
type Range struct {
	Start Location
	End   Location
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Union returns the smallest Range enclosing both a and b.
func Union(a, b Range) Range {
	start := a.Start
	if b.Start.Less(start) {
		start = b.Start
	}
	end := a.End
	if end.Less(b.End) {
		end = b.End
	}
	return Range{Start: start, End: end}
}

// UnionAll folds Union over a non-empty slice of ranges.
func UnionAll(ranges ...Range) Range {
	if len(ranges) == 0 {
		return Range{}
	}
	result := ranges[0]
	for _, r := range ranges[1:] {
		result = Union(result, r)
	}
	return result
}
