package syntax

// Cursor is an opaque lexer stream position. The parser never inspects one
// beyond holding it: it only ever stores a value returned by Position and
// hands it back to Seek. Offset is the byte position in the source; State
// carries whatever additional mode a concrete Lexer needs to restore itself
// exactly — a lexer with modal scanning (script vs. raw text, interpolated
// string nesting) cannot round-trip on a bare offset, because a probe past
// a mode boundary would otherwise leave the mode switched after the seek
// back.
type Cursor struct {
	Offset int
	State  any
}

// Lexer is the token producer the parser consumes, and deliberately the
// only thing the parser depends on outside the standard library. A concrete
// implementation lives in the sibling lexer package.
type Lexer interface {
	// ScanNext returns the next token, consuming it from the stream. Once
	// the stream is exhausted it must return the same EndOfFile sentinel
	// token forever.
	ScanNext() Token

	// Position returns the stream's current cursor, for later Seek.
	Position() Cursor

	// Seek restores the stream to a cursor previously returned by
	// Position, including any modal state the cursor carries. Used by
	// lookahead and backtracking call sites on every iteration of some
	// productions, so it must be cheap.
	Seek(c Cursor)

	// EndPosition returns the cursor at end-of-input, letting callers
	// detect an out-of-bounds probe without scanning past it.
	EndPosition() Cursor

	// RescanTemplate re-interprets t under interpolated-string lexical
	// mode: used after a `$name` or `{...}` embedded expression inside a
	// template string, so the lexer resumes scanning literal template
	// fragments instead of ordinary script tokens.
	RescanTemplate(t Token) Token
}
