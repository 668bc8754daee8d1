package syntax

// TokenFlag distinguishes a real, lexer-produced token from the two
// synthesized subkinds the parser creates during recovery.
type TokenFlag uint8

const (
	// TokenReal is an ordinary token the Lexer produced.
	TokenReal TokenFlag = iota
	// TokenMissing marks a zero-width token synthesized because an
	// expected token was absent. Kind holds the kind that was expected.
	TokenMissing
	// TokenSkipped marks a token the parser could neither match nor defer
	// to an enclosing context; it wraps the original token's extent and
	// kind unchanged.
	TokenSkipped
)

// Token is a leaf of the tree: a lexical atom with its kind and byte
// extent. FullStart is where the token's leading trivia (if any) begins;
// Start is where its significant text begins; Length is the significant
// text's byte length. Trivia is never materialized as its own leaf — it is
// simply the gap between FullStart and Start, attached to this token.
type Token struct {
	Kind      TokenKind
	FullStart int
	Start     int
	Length    int
	Flag      TokenFlag
}

// NewToken builds a real token.
func NewToken(kind TokenKind, fullStart, start, length int) Token {
	return Token{Kind: kind, FullStart: fullStart, Start: start, Length: length, Flag: TokenReal}
}

// MissingToken synthesizes a zero-width token of the expected kind at the
// given offset. It never shifts downstream offsets.
func MissingToken(kind TokenKind, atOffset int) Token {
	return Token{Kind: kind, FullStart: atOffset, Start: atOffset, Length: 0, Flag: TokenMissing}
}

// SkippedToken wraps tok (unchanged extent and kind) marking it as garbage
// the parser placed in the tree without being able to use it grammatically.
func SkippedToken(tok Token) Token {
	tok.Flag = TokenSkipped
	return tok
}

// End returns the byte offset just past the token's significant text.
func (t Token) End() int {
	return t.Start + t.Length
}

// FullEnd returns the byte offset just past the token including trivia;
// this equals End because trivia is always leading, never trailing — the
// next token's FullStart picks up where this one's End left off.
func (t Token) FullEnd() int {
	return t.End()
}

// FullLength returns the token's length including leading trivia.
func (t Token) FullLength() int {
	return t.End() - t.FullStart
}

// IsMissing reports whether t is a synthesized MissingToken.
func (t Token) IsMissing() bool {
	return t.Flag == TokenMissing
}

// IsSkipped reports whether t is a SkippedToken wrapper.
func (t Token) IsSkipped() bool {
	return t.Flag == TokenSkipped
}

// Text returns the token's significant text, given the full source string.
// Returns "" for a MissingToken (zero length, by construction).
func (t Token) Text(source string) string {
	return source[t.Start:t.End()]
}

// FullText returns the token's text including leading trivia.
func (t Token) FullText(source string) string {
	return source[t.FullStart:t.End()]
}
