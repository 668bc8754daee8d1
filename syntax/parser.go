package syntax

import "github.com/google/uuid"

// Parser drives the recursive-descent grammar over a one-token window onto
// a Lexer. It owns the Arena for the whole of one ParseSourceFile call; the
// token stream is never shared.
//
// Every production method on Parser follows the same contract: it returns a
// freshly built, unattached node, and the caller appends it under whatever
// slot it belongs to. The two exceptions are deliberate and local: the
// list-parse driver (listcontext.go) appends elements itself so skipped
// garbage tokens interleave with elements in source order, and the
// statement dispatcher appends a stray `final`/`abstract` modifier as a
// skipped leaf before retrying.
type Parser struct {
	lexer   Lexer
	arena   *Arena
	source  string
	current Token
	mask    ContextMask
}

// NewParser creates a parser positioned at the first token of the stream.
func NewParser(lex Lexer, source string) *Parser {
	p := &Parser{lexer: lex, arena: NewArena(), source: source}
	p.current = lex.ScanNext()
	return p
}

// Arena exposes the parser's node arena, for callers building SourceFileNode.
func (p *Parser) Arena() *Arena { return p.arena }

// --- Token consumption primitives ---

// peek returns the current token without consuming it.
func (p *Parser) peek() Token { return p.current }

// advance returns the current token and pulls the next one from the lexer,
// replacing the window.
func (p *Parser) advance() Token {
	tok := p.current
	p.current = p.lexer.ScanNext()
	return tok
}

// eat matches the current token's kind against kinds; on a hit it advances
// and returns the matched token. On a miss it synthesizes a zero-width
// MissingToken of kind kinds[0] at the current window's FullStart, without
// advancing.
func (p *Parser) eat(kinds ...TokenKind) Token {
	if kindIn(p.current.Kind, kinds) {
		return p.advance()
	}
	return MissingToken(kinds[0], p.current.FullStart)
}

// eatOptional is eat without synthesis: on a miss it returns the zero Token
// and false, and never advances.
func (p *Parser) eatOptional(kinds ...TokenKind) (Token, bool) {
	if kindIn(p.current.Kind, kinds) {
		return p.advance(), true
	}
	return Token{}, false
}

// check is a pure predicate test against the current token's kind.
func (p *Parser) check(k TokenKind) bool {
	return p.current.Kind == k
}

func kindIn(k TokenKind, kinds []TokenKind) bool {
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// kindSet is a lookahead pattern element: a set of acceptable kinds for one
// position in the probe.
type kindSet struct {
	kinds []TokenKind
}

// K builds a single-kind lookahead pattern element.
func K(k TokenKind) kindSet { return kindSet{kinds: []TokenKind{k}} }

// AnyOf builds a multi-kind lookahead pattern element.
func AnyOf(ks ...TokenKind) kindSet { return kindSet{kinds: ks} }

func (s kindSet) matches(k TokenKind) bool { return kindIn(k, s.kinds) }

// lookahead succeeds iff, starting at the current token, the next
// len(patterns) tokens each satisfy the corresponding pattern. It saves the
// lexer position before probing beyond the current token and restores it
// unconditionally, so callers can treat it as a pure predicate; the current
// window itself is never touched, since probing never calls advance.
func (p *Parser) lookahead(patterns ...kindSet) bool {
	if len(patterns) == 0 {
		return true
	}
	if !patterns[0].matches(p.current.Kind) {
		return false
	}
	if len(patterns) == 1 {
		return true
	}
	saved := p.lexer.Position()
	ok := true
	for i := 1; i < len(patterns); i++ {
		tok := p.lexer.ScanNext()
		if !patterns[i].matches(tok.Kind) {
			ok = false
			break
		}
	}
	p.lexer.Seek(saved)
	return ok
}

// --- List-context mask scoping ---

// enterContext sets bit c in the active mask, returning a restore function
// that puts the mask back to what it was on entry.
func (p *Parser) enterContext(c ListContext) (restore func()) {
	saved := p.mask
	p.mask = p.mask.With(c)
	return func() { p.mask = saved }
}

// --- SourceFileNode construction ---

// SourceFileNode is the root of the tree returned by ParseSourceFile: the
// source text (held for offset resolution), the top-level statement list,
// and the end-of-file token.
type SourceFileNode struct {
	arena      *Arena
	Root       Handle
	Source     string
	Statements []Handle
	EOF        Token

	// ParseID correlates one parse with downstream tooling (formatter,
	// linter, IDE service) that may cache or diff results keyed to a
	// particular parse run. Not part of the tree itself.
	ParseID uuid.UUID
}

// Arena returns the node arena backing this parse's tree.
func (s *SourceFileNode) Arena() *Arena { return s.arena }

// Text returns the full source text reconstructed from the tree, for
// callers who want to double-check coverage without going back to the
// original string.
func (s *SourceFileNode) Text() string {
	return s.arena.Text(s.Root, s.Source)
}

// ParseSourceFile is the sole entry point: source must be the complete file
// contents; lex produces tokens over it.
func ParseSourceFile(source string, lex Lexer) *SourceFileNode {
	p := NewParser(lex, source)
	root := p.arena.New(SourceFile)

	var stmts []Handle
	// A file is HTML until the first script-open tag, so unless the input
	// is empty the tree opens with an inline-HTML island — even when the
	// island's only content is the "<?php" tag itself.
	if !p.check(EndOfFile) {
		html := p.parseInlineHTML()
		p.arena.AppendNodeWithRole(root, RoleStatements, html)
		stmts = append(stmts, html)
	}

	stmts = append(stmts, p.parseList(ContextSourceElements, root)...)
	eof := p.eat(EndOfFile)
	p.arena.AppendToken(root, RoleNone, eof)

	return &SourceFileNode{
		arena:      p.arena,
		Root:       root,
		Source:     source,
		Statements: stmts,
		EOF:        eof,
		ParseID:    uuid.New(),
	}
}
