package token

import "fmt"

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number (in bytes)
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a half-open range [Start.Offset, End.Offset) in source code.
type Span struct {
	Start Position
	End   Position

	// FromExpansion marks spans synthesized by macro expansion that the user
	// did not write directly. Such spans have no recoverable source text.
	FromExpansion bool
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && s.End.Offset >= s.Start.Offset
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	if s.End.Offset < s.Start.Offset {
		return 0
	}
	return s.End.Offset - s.Start.Offset
}

// Overlaps reports whether two spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start.Offset < other.End.Offset && other.Start.Offset < s.End.Offset
}

// Cover returns the smallest span enclosing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start.Offset < s.Start.Offset {
		s.Start = other.Start
	}
	if other.End.Offset > s.End.Offset {
		s.End = other.End
	}
	s.FromExpansion = s.FromExpansion || other.FromExpansion
	return s
}

// String returns "line:column-line:column".
func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
