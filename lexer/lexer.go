package lexer

import (
	"strings"

	"github.com/tolerantparse/php/config"
	"github.com/tolerantparse/php/syntax"
)

// mode is the lexer's top-level state: whether the cursor sits in raw
// HTML text or inside a `<?php... ?>` script section.
type mode uint8

const (
	modeHTML mode = iota
	modeScript
)

// stringCtx is one entry of the template-nesting stack: the still-open
// interpolated string or heredoc/nowdoc run a TemplateStart began, kept
// live until its matching TemplateEnd is scanned. Nested strings inside a
// `{$...}`/`${...}` embedded expression push their own frame and pop it
// before the outer one resumes.
type stringCtx struct {
	quote     byte // '"' for a double-quoted run, 0 for heredoc/nowdoc
	isHeredoc bool
	labelSet  bool // HeredocLabel already scanned for this frame
	label     string
	nowdoc    bool // single-quoted heredoc label: no interpolation triggers
}

// Lexer is the reference syntax.Lexer implementation, built directly on
// syntax.Scanner: a single ScanNext entry point dispatching on the current
// mode, plus the HTML/script mode switch and the template-nesting stack
// that an embeddable, interpolating syntax needs.
type Lexer struct {
	sc     *syntax.Scanner
	source string

	mode mode

	templateStack     []stringCtx
	inTemplateLiteral bool

	dialect *config.Dialect
}

// New creates a Lexer positioned at the start of source, in HTML mode (a
// file begins as plain text until the first script-open tag), using the
// default dialect (no short open tag, no extra keywords).
func New(source string) *Lexer {
	return NewWithDialect(source, config.Default())
}

// NewWithDialect is New with an explicit Dialect (config.Load's result),
// controlling the short-open-tag toggle and any project-specific reserved
// words layered onto the built-in keyword table.
func NewWithDialect(source string, d *config.Dialect) *Lexer {
	if d == nil {
		d = config.Default()
	}
	return &Lexer{sc: syntax.NewScanner(source), source: source, mode: modeHTML, dialect: d}
}

// lexState is the modal half of a Cursor: everything besides the byte
// offset that ScanNext's result depends on. A lookahead probe can cross a
// mode boundary — scanning a `"` pushes a template frame, scanning `?>`
// drops back to HTML mode — so Seek must put all of it back, not just the
// scanner position.
type lexState struct {
	mode       mode
	inTemplate bool
	stack      []stringCtx
}

func (l *Lexer) Position() syntax.Cursor {
	st := lexState{mode: l.mode, inTemplate: l.inTemplateLiteral}
	st.stack = append([]stringCtx(nil), l.templateStack...)
	return syntax.Cursor{Offset: l.sc.Cursor(), State: st}
}

func (l *Lexer) Seek(c syntax.Cursor) {
	l.sc.Jump(c.Offset)
	if st, ok := c.State.(lexState); ok {
		l.mode = st.mode
		l.inTemplateLiteral = st.inTemplate
		l.templateStack = append([]stringCtx(nil), st.stack...)
	}
}

func (l *Lexer) EndPosition() syntax.Cursor { return syntax.Cursor{Offset: len(l.source)} }

// RescanTemplate re-derives t under template-literal rules, continuing the
// innermost open string from t's leading edge. Called after the parser
// finishes a `$name`/`${...}`/`{$...}` embedded expression:
// ordinary ScanNext tokenized everything up to and including the token
// t that followed the embedded expression's close, using plain script
// rules; that token is discarded here and replaced with whatever the
// literal template text starting at the same offset actually is.
func (l *Lexer) RescanTemplate(t syntax.Token) syntax.Token {
	l.sc.Jump(t.FullStart)
	l.inTemplateLiteral = true
	return l.ScanNext()
}

// ScanNext is the sole token-production entry point.
func (l *Lexer) ScanNext() syntax.Token {
	if l.inTemplateLiteral && len(l.templateStack) > 0 {
		return l.scanTemplateLiteral()
	}
	if l.mode == modeHTML {
		return l.scanHTML()
	}
	return l.scanScript()
}

// --- HTML mode ---

func (l *Lexer) scanHTML() syntax.Token {
	fullStart := l.sc.Cursor()
	if l.sc.Done() {
		return syntax.NewToken(syntax.EndOfFile, fullStart, fullStart, 0)
	}
	if tag, ok := l.matchOpenTag(); ok {
		l.mode = modeScript
		return tag
	}
	// Scan raw text up to (not including) the next recognized open tag or
	// EOF. A bare "<?" that the active dialect doesn't treat as a short
	// open tag is just HTML text, not a boundary.
	for !l.sc.Done() {
		if l.openTagHere() {
			break
		}
		l.sc.Eat()
	}
	return syntax.NewToken(syntax.InlineHTML, fullStart, fullStart, l.sc.Cursor()-fullStart)
}

// matchOpenTag consumes and returns a script-open tag if one starts at the
// cursor, advancing past it.
func (l *Lexer) matchOpenTag() (syntax.Token, bool) {
	start := l.sc.Cursor()
	rest := l.source[start:]
	switch {
	case hasFold(rest, "<?php"):
		end := start + len("<?php")
		l.sc.Jump(end)
		return syntax.NewToken(syntax.ScriptOpenTag, start, start, end-start), true
	case strings.HasPrefix(rest, "<?="):
		end := start + len("<?=")
		l.sc.Jump(end)
		return syntax.NewToken(syntax.ScriptOpenTagEcho, start, start, end-start), true
	case l.dialect.ShortOpenTag && strings.HasPrefix(rest, "<?"):
		end := start + len("<?")
		l.sc.Jump(end)
		return syntax.NewToken(syntax.ScriptOpenTag, start, start, end-start), true
	}
	return syntax.Token{}, false
}

// openTagHere reports whether a recognized script-open tag starts at the
// cursor, without consuming it — the dialect-aware complement to
// matchOpenTag used just to decide where InlineHTML text ends.
func (l *Lexer) openTagHere() bool {
	rest := l.source[l.sc.Cursor():]
	if hasFold(rest, "<?php") || strings.HasPrefix(rest, "<?=") {
		return true
	}
	return l.dialect.ShortOpenTag && strings.HasPrefix(rest, "<?")
}

func hasFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return keywordFold.String(s[:len(prefix)]) == keywordFold.String(prefix)
}

// --- Script mode ---

func (l *Lexer) scanScript() syntax.Token {
	fullStart := l.skipTrivia()
	if l.sc.Done() {
		return syntax.NewToken(syntax.EndOfFile, fullStart, l.sc.Cursor(), 0)
	}

	if strings.HasPrefix(l.source[l.sc.Cursor():], "?>") {
		start := l.sc.Cursor()
		l.sc.Jump(start + 2)
		l.mode = modeHTML
		return syntax.NewToken(syntax.ScriptCloseTag, fullStart, start, 2)
	}

	start := l.sc.Cursor()
	r := l.sc.Peek()

	switch {
	case r == '$':
		return l.scanDollar(fullStart)
	case isDigit(r):
		return l.scanNumber(fullStart)
	case isIdentStart(r):
		return l.scanName(fullStart)
	case r == '\'':
		return l.scanSingleQuoted(fullStart)
	case r == '"':
		return l.openDoubleQuoted(fullStart)
	case strings.HasPrefix(l.source[start:], "<<<"):
		if tok, ok := l.openHeredoc(fullStart); ok {
			return tok
		}
		fallthrough
	default:
		return l.scanOperator(fullStart)
	}
}

// skipTrivia consumes whitespace and comments, returning the offset where
// it started (the next token's FullStart).
func (l *Lexer) skipTrivia() int {
	fullStart := l.sc.Cursor()
	for {
		switch {
		case isSpace(l.sc.Peek()):
			l.sc.Eat()
		case strings.HasPrefix(l.source[l.sc.Cursor():], "//"):
			l.skipLineComment()
		case l.sc.Peek() == '#' && l.sc.Scout(1) != '[':
			l.skipLineComment()
		case strings.HasPrefix(l.source[l.sc.Cursor():], "/*"):
			l.skipBlockComment()
		default:
			return fullStart
		}
	}
}

func (l *Lexer) skipLineComment() {
	for !l.sc.Done() {
		rest := l.source[l.sc.Cursor():]
		if strings.HasPrefix(rest, "?>") || l.sc.Peek() == '\n' {
			return
		}
		l.sc.Eat()
	}
}

func (l *Lexer) skipBlockComment() {
	l.sc.Eat()
	l.sc.Eat() // "/*"
	for !l.sc.Done() {
		if strings.HasPrefix(l.source[l.sc.Cursor():], "*/") {
			l.sc.Eat()
			l.sc.Eat()
			return
		}
		l.sc.Eat()
	}
}

func (l *Lexer) scanDollar(fullStart int) syntax.Token {
	start := l.sc.Cursor()
	l.sc.Eat() // '$'
	if isIdentStart(l.sc.Peek()) {
		for isIdentPart(l.sc.Peek()) {
			l.sc.Eat()
		}
		return syntax.NewToken(syntax.VariableName, fullStart, start, l.sc.Cursor()-start)
	}
	return syntax.NewToken(syntax.DollarSign, fullStart, start, l.sc.Cursor()-start)
}

func (l *Lexer) scanName(fullStart int) syntax.Token {
	start := l.sc.Cursor()
	for isIdentPart(l.sc.Peek()) {
		l.sc.Eat()
	}
	text := l.source[start:l.sc.Cursor()]
	if kind, ok := lookupKeyword(text, l.dialect); ok {
		return syntax.NewToken(kind, fullStart, start, l.sc.Cursor()-start)
	}
	return syntax.NewToken(syntax.Name, fullStart, start, l.sc.Cursor()-start)
}

func (l *Lexer) scanNumber(fullStart int) syntax.Token {
	start := l.sc.Cursor()
	kind := syntax.IntegerLiteral

	if l.sc.Peek() == '0' && (l.sc.Scout(1) == 'x' || l.sc.Scout(1) == 'X') {
		l.sc.Eat()
		l.sc.Eat()
		for isHexDigit(l.sc.Peek()) || l.sc.Peek() == '_' {
			l.sc.Eat()
		}
		return syntax.NewToken(kind, fullStart, start, l.sc.Cursor()-start)
	}
	if l.sc.Peek() == '0' && (l.sc.Scout(1) == 'b' || l.sc.Scout(1) == 'B') {
		l.sc.Eat()
		l.sc.Eat()
		for l.sc.Peek() == '0' || l.sc.Peek() == '1' || l.sc.Peek() == '_' {
			l.sc.Eat()
		}
		return syntax.NewToken(kind, fullStart, start, l.sc.Cursor()-start)
	}

	for isDigit(l.sc.Peek()) || l.sc.Peek() == '_' {
		l.sc.Eat()
	}
	if l.sc.Peek() == '.' && isDigit(l.sc.Scout(1)) {
		kind = syntax.FloatLiteral
		l.sc.Eat()
		for isDigit(l.sc.Peek()) || l.sc.Peek() == '_' {
			l.sc.Eat()
		}
	}
	if l.sc.Peek() == 'e' || l.sc.Peek() == 'E' {
		save := l.sc.Cursor()
		l.sc.Eat()
		if l.sc.Peek() == '+' || l.sc.Peek() == '-' {
			l.sc.Eat()
		}
		if isDigit(l.sc.Peek()) {
			kind = syntax.FloatLiteral
			for isDigit(l.sc.Peek()) {
				l.sc.Eat()
			}
		} else {
			l.sc.Jump(save)
		}
	}
	return syntax.NewToken(kind, fullStart, start, l.sc.Cursor()-start)
}

func (l *Lexer) scanSingleQuoted(fullStart int) syntax.Token {
	start := l.sc.Cursor()
	l.sc.Eat() // opening '
	for !l.sc.Done() {
		r := l.sc.Eat()
		if r == '\\' && (l.sc.Peek() == '\'' || l.sc.Peek() == '\\') {
			l.sc.Eat()
			continue
		}
		if r == '\'' {
			break
		}
	}
	return syntax.NewToken(syntax.StringLiteral, fullStart, start, l.sc.Cursor()-start)
}

func (l *Lexer) openDoubleQuoted(fullStart int) syntax.Token {
	start := l.sc.Cursor()
	l.sc.Eat() // opening "
	l.templateStack = append(l.templateStack, stringCtx{quote: '"'})
	l.inTemplateLiteral = true
	return syntax.NewToken(syntax.TemplateStart, fullStart, start, 1)
}

// openHeredoc consumes the `<<<` intro and emits its TemplateStart token.
// The label itself is scanned as a separate HeredocLabel token by the next
// ScanNext (see scanHeredocLabel), keeping every byte accounted for exactly
// once. Without a plausible label after the intro this is not a heredoc at
// all and the caller falls back to operator scanning of `<<`.
func (l *Lexer) openHeredoc(fullStart int) (syntax.Token, bool) {
	start := l.sc.Cursor()
	save := l.sc.Cursor()
	l.sc.Eat()
	l.sc.Eat()
	l.sc.Eat() // "<<<"
	probe := l.sc.Cursor()
	for probe < len(l.source) && (l.source[probe] == ' ' || l.source[probe] == '\t') {
		probe++
	}
	nowdoc := false
	labelStart := probe
	if probe < len(l.source) && l.source[probe] == '\'' {
		nowdoc = true
		probe++
		labelStart = probe
	} else if probe < len(l.source) && l.source[probe] == '"' {
		probe++
		labelStart = probe
	}
	if labelStart >= len(l.source) || !isIdentStart(rune(l.source[labelStart])) {
		l.sc.Jump(save)
		return syntax.Token{}, false
	}
	l.templateStack = append(l.templateStack, stringCtx{isHeredoc: true, nowdoc: nowdoc})
	l.inTemplateLiteral = true
	return syntax.NewToken(syntax.TemplateStart, fullStart, start, l.sc.Cursor()-start), true
}

func (l *Lexer) scanOperator(fullStart int) syntax.Token {
	start := l.sc.Cursor()
	rest := l.source[start:]

	three := map[string]syntax.TokenKind{
		"**=": syntax.StarStarEquals,
		"<=>": syntax.Spaceship,
		"===": syntax.EqualsEqualsEquals,
		"!==": syntax.BangEqualsEquals,
		"??=": syntax.CoalesceEquals,
		"...": syntax.Ellipsis,
		"<<=": syntax.ShiftLeftEquals,
		">>=": syntax.ShiftRightEquals,
	}
	for lit, kind := range three {
		if strings.HasPrefix(rest, lit) {
			l.sc.Jump(start + 3)
			return syntax.NewToken(kind, fullStart, start, 3)
		}
	}

	two := map[string]syntax.TokenKind{
		"**": syntax.StarStar,
		"++": syntax.PlusPlus,
		"--": syntax.MinusMinus,
		"->": syntax.Arrow,
		"=>": syntax.FatArrow,
		"::": syntax.ColonColon,
		"==": syntax.EqualsEquals,
		"!=": syntax.BangEquals,
		"<>": syntax.AngleBrackets,
		"<=": syntax.LessEquals,
		">=": syntax.GreaterEquals,
		"<<": syntax.ShiftLeft,
		">>": syntax.ShiftRight,
		"&&": syntax.AmpAmp,
		"||": syntax.PipePipe,
		"??": syntax.Coalesce,
		"+=": syntax.PlusEquals,
		"-=": syntax.MinusEquals,
		"*=": syntax.StarEquals,
		"/=": syntax.SlashEquals,
		"%=": syntax.PercentEquals,
		".=": syntax.DotEquals,
		"&=": syntax.AmpEquals,
		"|=": syntax.PipeEquals,
		"^=": syntax.CaretEquals,
	}
	for lit, kind := range two {
		if strings.HasPrefix(rest, lit) {
			l.sc.Jump(start + 2)
			return syntax.NewToken(kind, fullStart, start, 2)
		}
	}

	one := map[byte]syntax.TokenKind{
		'(': syntax.OpenParen, ')': syntax.CloseParen,
		'{': syntax.OpenBrace, '}': syntax.CloseBrace,
		'[': syntax.OpenBracket, ']': syntax.CloseBracket,
		';': syntax.Semicolon, ',': syntax.Comma,
		'@': syntax.At,
		'+': syntax.Plus, '-': syntax.Minus, '*': syntax.Asterisk,
		'/': syntax.Slash, '%': syntax.Percent, '.': syntax.Dot,
		'&': syntax.Ampersand, '|': syntax.Pipe, '^': syntax.Caret,
		'~': syntax.Tilde, '!': syntax.Bang, '?': syntax.Question,
		':': syntax.Colon, '\\': syntax.Backslash,
		'=': syntax.Equals, '<': syntax.LessThan, '>': syntax.GreaterThan,
	}
	if kind, ok := one[rest[0]]; ok {
		l.sc.Eat()
		return syntax.NewToken(kind, fullStart, start, 1)
	}

	// Nothing matched: consume one rune as an unrecognized atom so the
	// stream always makes forward progress. The parser's list-skip
	// machinery turns this into a SkippedToken wherever it surfaces.
	l.sc.Eat()
	return syntax.NewToken(syntax.Name, fullStart, start, l.sc.Cursor()-start)
}

// --- Template-literal mode ---

func (l *Lexer) scanTemplateLiteral() syntax.Token {
	ctx := l.templateStack[len(l.templateStack)-1]
	fullStart := l.sc.Cursor()

	if l.sc.Done() {
		return syntax.NewToken(syntax.EndOfFile, fullStart, l.sc.Cursor(), 0)
	}

	// HeredocLabel is produced once, immediately after TemplateStart opened
	// a heredoc/nowdoc run, before any body text.
	if ctx.isHeredoc && !ctx.labelSet {
		return l.scanHeredocLabel()
	}

	if ctx.quote != 0 && l.sc.Peek() == rune(ctx.quote) {
		start := l.sc.Cursor()
		l.sc.Eat()
		l.templateStack = l.templateStack[:len(l.templateStack)-1]
		l.inTemplateLiteral = false
		return syntax.NewToken(syntax.TemplateEnd, fullStart, start, 1)
	}
	if ctx.label != "" && l.atHeredocEnd(ctx.label) {
		for l.sc.Peek() == ' ' || l.sc.Peek() == '\t' {
			l.sc.Eat()
		}
		start := l.sc.Cursor()
		for isIdentPart(l.sc.Peek()) {
			l.sc.Eat()
		}
		l.templateStack = l.templateStack[:len(l.templateStack)-1]
		l.inTemplateLiteral = false
		return syntax.NewToken(syntax.TemplateEnd, fullStart, start, l.sc.Cursor()-start)
	}

	if !ctx.nowdoc {
		if l.sc.Peek() == '$' && isIdentStart(l.sc.Scout(1)) {
			l.inTemplateLiteral = false
			return l.scanDollar(fullStart)
		}
		if l.sc.Peek() == '$' && l.sc.Scout(1) == '{' {
			start := l.sc.Cursor()
			l.sc.Eat()
			l.sc.Eat()
			l.inTemplateLiteral = false
			return syntax.NewToken(syntax.DollarOpenBrace, fullStart, start, 2)
		}
		if l.sc.Peek() == '{' && l.sc.Scout(1) == '$' {
			// Only the `{` is consumed: the `$` stays to begin the embedded
			// expression, so `$name` scans as an ordinary VariableName.
			start := l.sc.Cursor()
			l.sc.Eat()
			l.inTemplateLiteral = false
			return syntax.NewToken(syntax.OpenBraceDollar, fullStart, start, 1)
		}
	}

	start := l.sc.Cursor()
	for !l.sc.Done() {
		if ctx.quote != 0 && l.sc.Peek() == rune(ctx.quote) {
			break
		}
		if ctx.label != "" && l.atHeredocEnd(ctx.label) {
			break
		}
		if !ctx.nowdoc && l.sc.Peek() == '$' && (isIdentStart(l.sc.Scout(1)) || l.sc.Scout(1) == '{') {
			break
		}
		if !ctx.nowdoc && l.sc.Peek() == '{' && l.sc.Scout(1) == '$' {
			break
		}
		r := l.sc.Eat()
		if r == '\\' && !l.sc.Done() {
			l.sc.Eat()
		}
	}
	return syntax.NewToken(syntax.TemplateMiddle, fullStart, start, l.sc.Cursor()-start)
}

// atHeredocEnd reports whether the cursor sits at the start of a line whose
// (possibly indented) content is exactly label followed by a non-identifier
// byte — PHP's flexible heredoc closing-marker rule.
func (l *Lexer) atHeredocEnd(label string) bool {
	cur := l.sc.Cursor()
	if cur != 0 && l.source[cur-1] != '\n' {
		return false
	}
	i := cur
	for i < len(l.source) && (l.source[i] == ' ' || l.source[i] == '\t') {
		i++
	}
	if !strings.HasPrefix(l.source[i:], label) {
		return false
	}
	after := i + len(label)
	if after < len(l.source) && isIdentPart(rune(l.source[after])) {
		return false
	}
	// The scanner is not moved: the caller skips the indentation itself, as
	// leading trivia of the closing label token.
	return true
}

// scanHeredocLabel consumes the label identifier that follows a `<<<`
// intro, recording it on the open stringCtx frame. The optional nowdoc
// quote and any indentation before the label are absorbed as this token's
// leading trivia. The optional closing quote is left in place — it falls
// inside the first body token's extent, which keeps every byte covered
// exactly once (trivia is always leading, never trailing; see token.go).
func (l *Lexer) scanHeredocLabel() syntax.Token {
	fullStart := l.sc.Cursor()
	for l.sc.Peek() == ' ' || l.sc.Peek() == '\t' {
		l.sc.Eat()
	}
	nowdoc := false
	if l.sc.Peek() == '\'' {
		nowdoc = true
		l.sc.Eat()
	} else if l.sc.Peek() == '"' {
		l.sc.Eat()
	}
	start := l.sc.Cursor()
	for isIdentPart(l.sc.Peek()) {
		l.sc.Eat()
	}
	label := l.source[start:l.sc.Cursor()]
	top := len(l.templateStack) - 1
	l.templateStack[top].label = label
	l.templateStack[top].labelSet = true
	l.templateStack[top].nowdoc = nowdoc
	return syntax.NewToken(syntax.HeredocLabel, fullStart, start, len(label))
}

// --- character classes ---

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r >= 0x80
}
func isIdentPart(r rune) bool { return isIdentStart(r) || isDigit(r) }
