package syntax

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Scanner is a byte-oriented cursor over source text with peek/jump
// capabilities. It is the low-level primitive the reference Lexer is built
// on; the core parser never touches it directly (it only sees the Lexer
// interface), but any concrete Lexer implementation needs exactly this.
//
// Column uses grapheme-cluster boundaries (via github.com/rivo/uniseg)
// rather than bytes, since source files for this language may contain
// multi-byte UTF-8 identifiers and interpolated text.
type Scanner struct {
	text   string
	cursor int
}

// NewScanner creates a scanner positioned at the start of text.
func NewScanner(text string) *Scanner {
	return &Scanner{text: text, cursor: 0}
}

// Clone returns an independent copy of the scanner at the same position.
func (s *Scanner) Clone() *Scanner {
	return &Scanner{text: s.text, cursor: s.cursor}
}

// String returns the full text being scanned.
func (s *Scanner) String() string {
	return s.text
}

// Cursor returns the current byte offset.
func (s *Scanner) Cursor() int {
	return s.cursor
}

// Jump moves the cursor to pos, clamped to [0, len(text)].
func (s *Scanner) Jump(pos int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.text) {
		pos = len(s.text)
	}
	s.cursor = pos
}

// Done reports whether the scanner has reached the end of the text.
func (s *Scanner) Done() bool {
	return s.cursor >= len(s.text)
}

// Peek returns the rune at the cursor without consuming it, or 0 at EOF.
func (s *Scanner) Peek() rune {
	if s.cursor >= len(s.text) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.text[s.cursor:])
	return r
}

// Scout looks at the rune offset runes away from the cursor (negative looks
// backward) without moving it. Returns 0 out of bounds.
func (s *Scanner) Scout(offset int) rune {
	if offset == 0 {
		return s.Peek()
	}
	if offset > 0 {
		pos := s.cursor
		for i := 0; i < offset; i++ {
			if pos >= len(s.text) {
				return 0
			}
			_, size := utf8.DecodeRuneInString(s.text[pos:])
			pos += size
		}
		if pos >= len(s.text) {
			return 0
		}
		r, _ := utf8.DecodeRuneInString(s.text[pos:])
		return r
	}
	pos := s.cursor
	for i := 0; i < -offset; i++ {
		if pos <= 0 {
			return 0
		}
		_, size := utf8.DecodeLastRuneInString(s.text[:pos])
		pos -= size
	}
	if pos <= 0 {
		return 0
	}
	r, _ := utf8.DecodeLastRuneInString(s.text[:pos])
	return r
}

// Eat consumes and returns the rune at the cursor, advancing past it.
// Returns 0 at EOF without advancing.
func (s *Scanner) Eat() rune {
	if s.cursor >= len(s.text) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(s.text[s.cursor:])
	s.cursor += size
	return r
}

// EatIf consumes the rune at the cursor if it equals r. Reports whether it did.
func (s *Scanner) EatIf(r rune) bool {
	if s.Peek() == r {
		s.Eat()
		return true
	}
	return false
}

// Before returns the text already consumed (up to the cursor).
func (s *Scanner) Before() string {
	return s.text[:s.cursor]
}

// After returns the remaining, unconsumed text.
func (s *Scanner) After() string {
	return s.text[s.cursor:]
}

// From returns the text between start and the current cursor.
func (s *Scanner) From(start int) string {
	if start < 0 {
		start = 0
	}
	if start > s.cursor {
		return ""
	}
	return s.text[start:s.cursor]
}

// Column returns the grapheme-cluster column of the byte offset index,
// counted from the most recent newline. Using grapheme clusters (rather
// than bytes or runes) keeps the column stable for multi-codepoint
// characters that can appear in string literals and inline HTML.
func (s *Scanner) Column(index int) int {
	if index > len(s.text) {
		index = len(s.text)
	}
	lineStart := 0
	for i := index - 1; i >= 0; i-- {
		if s.text[i] == '\n' {
			lineStart = i + 1
			break
		}
	}
	line := s.text[lineStart:index]
	count := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		count++
	}
	return count
}
