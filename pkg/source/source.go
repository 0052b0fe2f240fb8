package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fortio.org/safecast"

	"github.com/leapstack-labs/earlylint/pkg/token"
)

// Map recovers source text for spans.
type Map interface {
	// Snippet returns the exact text underlying span, or false when the text
	// is unavailable (synthesized by macro expansion or out of range).
	Snippet(span token.Span) (string, bool)
	// InExternalMacro reports whether span originates from code the user did
	// not write directly.
	InExternalMacro(span token.Span) bool
}

// File captures the content and line index of a single source file.
type File struct {
	Name    string
	Text    string
	LineIdx []uint32 // byte offsets of every '\n'
	HadBOM  bool
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// NewFile builds a File from raw content. A leading UTF-8 byte order mark is
// removed; offsets are relative to the remaining text.
func NewFile(name string, content []byte) *File {
	f := &File{Name: filepath.ToSlash(name)}
	if bytes.HasPrefix(content, bom) {
		content = content[len(bom):]
		f.HadBOM = true
	}
	f.Text = string(content)
	f.LineIdx = buildLineIndex(content)
	return f
}

// Load reads path from disk into a File.
func Load(path string) (*File, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", path, err)
	}
	return NewFile(path, content), nil
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			// Offsets beyond uint32 are dropped; Position reports them invalid.
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				break
			}
			out = append(out, off)
		}
	}
	return out
}

// Len returns the text length in bytes.
func (f *File) Len() int { return len(f.Text) }

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int { return len(f.LineIdx) + 1 }

// Position converts a byte offset into a line/column position. Offsets
// outside the text yield an invalid (zero) Position.
func (f *File) Position(offset int) token.Position {
	if offset < 0 || offset > len(f.Text) {
		return token.Position{}
	}
	off, err := safecast.Conv[uint32](offset)
	if err != nil {
		return token.Position{}
	}

	// Number of newlines strictly before off is the 0-based line.
	line := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	var lineStart uint32
	if line > 0 {
		lineStart = f.LineIdx[line-1] + 1
	}
	col := int(off-lineStart) + 1
	return token.Position{Line: line + 1, Column: col, Offset: offset}
}

// Span builds a span from two byte offsets.
func (f *File) Span(start, end int) token.Span {
	return token.Span{Start: f.Position(start), End: f.Position(end)}
}

// Snippet implements Map.
func (f *File) Snippet(span token.Span) (string, bool) {
	if span.FromExpansion {
		return "", false
	}
	start, end := span.Start.Offset, span.End.Offset
	if start < 0 || end < start || end > len(f.Text) {
		return "", false
	}
	return f.Text[start:end], true
}

// InExternalMacro implements Map.
func (f *File) InExternalMacro(span token.Span) bool {
	return span.FromExpansion
}

// Line returns the text of line n (1-based) without its newline, or "" when
// the line does not exist.
func (f *File) Line(n int) string {
	if n < 1 || n > f.LineCount() {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Text)
	if n-1 < len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start > end {
		return ""
	}
	line := f.Text[start:end]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line
}

var _ Map = (*File)(nil)
