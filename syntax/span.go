package syntax

import "fmt"

// Span is a half-open byte range [Start, End) into a single source file.
// ParseSourceFile always parses a complete source from scratch, so a plain
// byte range is all any consumer (formatter, linter, IDE service) needs to
// resolve a node back to source text.
type Span struct {
	Start int
	end   int
}

// NewSpan builds a span, clamping End up to Start if it is given out of order.
func NewSpan(start, end int) Span {
	if end < start {
		end = start
	}
	return Span{Start: start, end: end}
}

// End returns the byte offset just past the span.
func (s Span) End() int {
	return s.end
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End() - s.Start
}

// IsEmpty returns true for a zero-width span (used by MissingToken).
func (s Span) IsEmpty() bool {
	return s.Start == s.End()
}

// Contains reports whether offset falls within [Start, End).
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End()
}

// Covers reports whether s fully contains other.
func (s Span) Covers(other Span) bool {
	return s.Start <= other.Start && other.End() <= s.End()
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End()
	if other.End() > end {
		end = other.End()
	}
	return Span{Start: start, end: end}
}

// String implements fmt.Stringer for debugging.
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End())
}
