package syntax

import (
	"strings"
	"testing"
)

// fakeLexer is a minimal syntax.Lexer over a pre-tokenized fixed stream,
// used to test parser productions in isolation from the reference lexer
// package (which imports this one and would make that an import cycle).
// Exercises exactly the Lexer contract: ScanNext, Position, Seek,
// EndPosition, RescanTemplate (a no-op for these fixtures).
type fakeLexer struct {
	toks []Token
	pos  int
}

func (f *fakeLexer) ScanNext() Token {
	if f.pos >= len(f.toks) {
		return f.toks[len(f.toks)-1]
	}
	t := f.toks[f.pos]
	f.pos++
	return t
}
func (f *fakeLexer) Position() Cursor { return Cursor{Offset: f.pos} }
func (f *fakeLexer) Seek(c Cursor) { f.pos = c.Offset }
func (f *fakeLexer) EndPosition() Cursor { return Cursor{Offset: len(f.toks) - 1} }
func (f *fakeLexer) RescanTemplate(t Token) Token { return t }

// tokenStream is a terse fixture builder: kind plus literal text, byte
// offsets derived from concatenation order.
func tokenStream(parts ...struct {
	Kind TokenKind
	Text string
}) (toks []Token, source string) {
	var b strings.Builder
	for _, p := range parts {
		start := b.Len()
		b.WriteString(p.Text)
		toks = append(toks, NewToken(p.Kind, start, start, len(p.Text)))
	}
	toks = append(toks, NewToken(EndOfFile, b.Len(), b.Len(), 0))
	return toks, b.String()
}

func kv(k TokenKind, text string) struct {
	Kind TokenKind
	Text string
} {
	return struct {
		Kind TokenKind
		Text string
	}{k, text}
}

// TestParseSourceFileRoundTrip checks that concatenating every leaf's full
// text reconstructs the original source exactly, including a leading
// inline-HTML island, across several fixture shapes.
func TestParseSourceFileRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		toks []struct {
			Kind TokenKind
			Text string
		}
	}{
		{
			name: "html then open tag then echo statement",
			toks: []struct {
				Kind TokenKind
				Text string
			}{
				kv(InlineHTML, "<b>hi</b>"),
				kv(ScriptOpenTag, "<?php"),
				kv(Echo, " echo"),
				kv(IntegerLiteral, " 1"),
				kv(Semicolon, ";"),
				kv(ScriptCloseTag, " ?>"),
			},
		},
		{
			name: "no leading html, just open tag",
			toks: []struct {
				Kind TokenKind
				Text string
			}{
				kv(ScriptOpenTag, "<?php"),
				kv(Semicolon, ";"),
			},
		},
		{
			name: "garbage token between statements is kept as skipped",
			toks: []struct {
				Kind TokenKind
				Text string
			}{
				kv(ScriptOpenTag, "<?php"),
				kv(VariableName, " $x"),
				kv(Equals, " ="),
				kv(IntegerLiteral, " 1"),
				kv(Semicolon, ";"),
				kv(Ampersand, " &"),
				kv(VariableName, " $y"),
				kv(Equals, " ="),
				kv(IntegerLiteral, " 2"),
				kv(Semicolon, ";"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, source := tokenStream(tt.toks...)
			sf := ParseSourceFile(source, &fakeLexer{toks: toks})
			if got := sf.Text(); got != source {
				t.Errorf("round-trip mismatch:\n got: %q\nwant: %q", got, source)
			}
		})
	}
}

// TestParseSourceFileEmptyStillHasInlineHtml checks that a file with no
// leading HTML at all still opens with an InlineHtml node whose only
// content is the open tag.
func TestParseSourceFileEmptyStillHasInlineHtml(t *testing.T) {
	toks, source := tokenStream(kv(ScriptOpenTag, "<?php"), kv(Semicolon, ";"))
	sf := ParseSourceFile(source, &fakeLexer{toks: toks})
	if len(sf.Statements) == 0 {
		t.Fatal("expected at least one statement (the leading InlineHtml island)")
	}
	if sf.Arena().Kind(sf.Statements[0]) != InlineHtml {
		t.Errorf("first statement kind = %v, want InlineHtml", sf.Arena().Kind(sf.Statements[0]))
	}
}

// TestParseSourceFileMissingCloseTagNoPanic checks that an unterminated
// script section synthesizes a MissingToken rather than panicking, and the
// EOF token is still consumed exactly once.
func TestParseSourceFileMissingCloseTagNoPanic(t *testing.T) {
	toks, source := tokenStream(kv(ScriptOpenTag, "<?php"), kv(Echo, "echo"), kv(IntegerLiteral, "1"))
	sf := ParseSourceFile(source, &fakeLexer{toks: toks})
	if sf.EOF.Kind != EndOfFile {
		t.Errorf("EOF token kind = %v, want EndOfFile", sf.EOF.Kind)
	}
}

// TestParentConsistency walks the whole arena of a parse with nested
// structure and asserts every node's children point back to it.
func TestParentConsistency(t *testing.T) {
	toks, source := tokenStream(
		kv(ScriptOpenTag, "<?php"),
		kv(If, " if"), kv(OpenParen, " ("), kv(VariableName, "$a"), kv(CloseParen, ")"),
		kv(OpenBrace, " {"),
		kv(VariableName, " $b"), kv(Equals, " ="), kv(IntegerLiteral, " 1"), kv(Semicolon, ";"),
		kv(CloseBrace, " }"),
	)
	sf := ParseSourceFile(source, &fakeLexer{toks: toks})
	a := sf.Arena()
	for h := range a.nodes {
		for _, c := range a.Children(Handle(h)) {
			if c.IsToken {
				continue
			}
			if got := a.Parent(c.Node); got != Handle(h) {
				t.Errorf("node %d: child %d has parent %d", h, c.Node, got)
			}
		}
	}
}

// TestMissingCloseBraceRecovery checks the enclosing-context recovery: a
// method body missing its close brace must not swallow the next member —
// the block stops at `public`, the brace is synthesized, and the second
// method still parses under the class.
func TestMissingCloseBraceRecovery(t *testing.T) {
	toks, source := tokenStream(
		kv(ScriptOpenTag, "<?php"),
		kv(Class, " class"), kv(Name, " A"), kv(OpenBrace, " {"),
		kv(Function, " function"), kv(Name, " foo"), kv(OpenParen, "("), kv(CloseParen, ")"),
		kv(OpenBrace, " {"), kv(Return, " return"), kv(Semicolon, ";"),
		kv(Public, " public"), kv(Function, " function"), kv(Name, " bar"),
		kv(OpenParen, "("), kv(CloseParen, ")"), kv(OpenBrace, " {"), kv(CloseBrace, "}"),
		kv(CloseBrace, " }"),
	)
	sf := ParseSourceFile(source, &fakeLexer{toks: toks})
	a := sf.Arena()

	methods := 0
	for h := range a.nodes {
		if a.Kind(Handle(h)) == MethodDeclaration {
			methods++
		}
	}
	if methods != 2 {
		t.Errorf("method count = %d, want 2 (recovery must not swallow bar)", methods)
	}
	if got := sf.Text(); got != source {
		t.Errorf("round-trip mismatch after recovery:\n got: %q\nwant: %q", got, source)
	}
}

// TestIfColonForm covers the alternate `if (...): ... elseif: ... else: ...
// endif;` syntax: one ElseIfClause, one ElseClause, and the trailing endif
// keyword plus semicolon, all under a single IfStatement.
func TestIfColonForm(t *testing.T) {
	toks, source := tokenStream(
		kv(ScriptOpenTag, "<?php"),
		kv(If, " if"), kv(OpenParen, " ("), kv(VariableName, "$a"), kv(CloseParen, ")"), kv(Colon, ":"),
		kv(Echo, " echo"), kv(IntegerLiteral, " 1"), kv(Semicolon, ";"),
		kv(ElseIf, " elseif"), kv(OpenParen, " ("), kv(VariableName, "$b"), kv(CloseParen, ")"), kv(Colon, ":"),
		kv(Echo, " echo"), kv(IntegerLiteral, " 2"), kv(Semicolon, ";"),
		kv(Else, " else"), kv(Colon, ":"),
		kv(Echo, " echo"), kv(IntegerLiteral, " 3"), kv(Semicolon, ";"),
		kv(EndIf, " endif"), kv(Semicolon, ";"),
	)
	sf := ParseSourceFile(source, &fakeLexer{toks: toks})
	a := sf.Arena()

	ifStmt := NoHandle
	for h := range a.nodes {
		if a.Kind(Handle(h)) == IfStatement {
			ifStmt = Handle(h)
			break
		}
	}
	if ifStmt == NoHandle {
		t.Fatal("no IfStatement parsed")
	}
	if got := len(a.ChildrenByRole(ifStmt, RoleElseIfClauses)); got != 1 {
		t.Errorf("elseif clause count = %d, want 1", got)
	}
	if _, ok := a.ChildByRole(ifStmt, RoleElseClause); !ok {
		t.Error("missing else clause")
	}
	if end, ok := a.ChildByRole(ifStmt, RoleEndKeyword); !ok || end.Token.Kind != EndIf {
		t.Errorf("end keyword = %+v, want endif", end)
	}
	if got := sf.Text(); got != source {
		t.Errorf("round-trip mismatch:\n got: %q\nwant: %q", got, source)
	}
}
