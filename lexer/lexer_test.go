package lexer

import (
	"testing"

	"github.com/tolerantparse/php/config"
	"github.com/tolerantparse/php/syntax"
)

// scanAll drains a Lexer to EndOfFile (inclusive), used by table tests that
// want every token kind/text pair produced for a fixture.
func scanAll(l *Lexer) []syntax.Token {
	var out []syntax.Token
	for {
		tok := l.ScanNext()
		out = append(out, tok)
		if tok.Kind == syntax.EndOfFile {
			return out
		}
	}
}

// scanAllInterpolating drains a Lexer the way the parser does: after an
// interpolation child inside an open template run — a simple `$name`, or
// the `}` closing a `${...}`/`{$...}` embedded expression — the next token
// is re-derived with RescanTemplate so literal template scanning resumes.
func scanAllInterpolating(l *Lexer) []syntax.Token {
	var out []syntax.Token
	var pending *syntax.Token
	templateDepth := 0
	exprDepth := 0
	for {
		var tok syntax.Token
		if pending != nil {
			tok, pending = *pending, nil
		} else {
			tok = l.ScanNext()
		}
		out = append(out, tok)
		rescan := false
		switch tok.Kind {
		case syntax.EndOfFile:
			return out
		case syntax.TemplateStart:
			templateDepth++
		case syntax.TemplateEnd:
			templateDepth--
		case syntax.DollarOpenBrace, syntax.OpenBraceDollar:
			if templateDepth > 0 {
				exprDepth++
			}
		case syntax.OpenBrace:
			if exprDepth > 0 {
				exprDepth++
			}
		case syntax.CloseBrace:
			if exprDepth > 0 {
				exprDepth--
				rescan = exprDepth == 0 && templateDepth > 0
			}
		case syntax.VariableName:
			rescan = templateDepth > 0 && exprDepth == 0
		}
		if rescan {
			next := l.RescanTemplate(l.ScanNext())
			pending = &next
		}
	}
}

func kinds(toks []syntax.Token) []syntax.TokenKind {
	out := make([]syntax.TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func eqKinds(got, want []syntax.TokenKind) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// TestScanNextInlineHtmlThenScript checks that a file starting with plain
// text only switches to script-token scanning at the open tag.
func TestScanNextInlineHtmlThenScript(t *testing.T) {
	l := New("<b>hi</b><?php echo 1; ?>bye")
	got := kinds(scanAll(l))
	want := []syntax.TokenKind{
		syntax.InlineHTML, syntax.ScriptOpenTag, syntax.Echo, syntax.IntegerLiteral,
		syntax.Semicolon, syntax.ScriptCloseTag, syntax.InlineHTML, syntax.EndOfFile,
	}
	if !eqKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

// TestScanNextKeywordCaseInsensitive covers case-insensitive keyword
// matching (cases.Fold in keywords.go).
func TestScanNextKeywordCaseInsensitive(t *testing.T) {
	for _, spelling := range []string{"echo", "ECHO", "Echo", "EcHo"} {
		l := New("<?php " + spelling + " 1;")
		toks := scanAll(l)
		if toks[1].Kind != syntax.Echo {
			t.Errorf("spelling %q: kind = %v, want Echo", spelling, toks[1].Kind)
		}
	}
}

// TestScanNextVariableAndOperators covers the `$name` variable form and a
// sampling of the multi-char operator table (longest-match-first).
func TestScanNextVariableAndOperators(t *testing.T) {
	l := New("<?php $x **= $y <=> $z;")
	got := kinds(scanAll(l))
	want := []syntax.TokenKind{
		syntax.ScriptOpenTag, syntax.VariableName, syntax.StarStarEquals,
		syntax.VariableName, syntax.Spaceship, syntax.VariableName, syntax.Semicolon,
		syntax.EndOfFile,
	}
	if !eqKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

// TestScanNextDoubleQuotedInterpolation checks that a double-quoted string
// with a simple `$var` interpolation produces TemplateStart, TemplateMiddle,
// VariableName, TemplateMiddle, TemplateEnd under the parser's rescan
// discipline.
func TestScanNextDoubleQuotedInterpolation(t *testing.T) {
	l := New(`<?php "hi $name!";`)
	toks := scanAllInterpolating(l)
	got := kinds(toks)
	want := []syntax.TokenKind{
		syntax.ScriptOpenTag, syntax.TemplateStart, syntax.TemplateMiddle,
		syntax.VariableName, syntax.TemplateMiddle, syntax.TemplateEnd, syntax.Semicolon,
		syntax.EndOfFile,
	}
	if !eqKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

// TestScanNextBraceInterpolation covers the `{$expr}` complex embedded
// form, including RescanTemplate resuming literal scanning right after the
// matching `}`.
func TestScanNextBraceInterpolation(t *testing.T) {
	l := New(`<?php "val: {$obj->prop} end";`)
	toks := scanAllInterpolating(l)
	got := kinds(toks)
	want := []syntax.TokenKind{
		syntax.ScriptOpenTag, syntax.TemplateStart, syntax.TemplateMiddle,
		syntax.OpenBraceDollar, syntax.VariableName, syntax.Arrow, syntax.Name,
		syntax.CloseBrace, syntax.TemplateMiddle, syntax.TemplateEnd, syntax.Semicolon,
		syntax.EndOfFile,
	}
	if !eqKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

// TestScanNextHeredoc covers the heredoc form: TemplateStart, HeredocLabel,
// body, TemplateEnd.
func TestScanNextHeredoc(t *testing.T) {
	src := "<?php $s = <<<EOT\nhello $name\nEOT;\n"
	l := New(src)
	got := kinds(scanAllInterpolating(l))
	want := []syntax.TokenKind{
		syntax.ScriptOpenTag, syntax.VariableName, syntax.Equals,
		syntax.TemplateStart, syntax.HeredocLabel, syntax.TemplateMiddle,
		syntax.VariableName, syntax.TemplateMiddle, syntax.TemplateEnd, syntax.Semicolon,
		syntax.EndOfFile,
	}
	if !eqKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

// TestScanNextRoundTrip checks lossless coverage at the lexer level:
// concatenating every token's FullText reconstructs the source exactly,
// even without the parser's rescan pass.
func TestScanNextRoundTrip(t *testing.T) {
	srcs := []string{
		"plain html no script",
		`<b>head</b><?php $x = 1 + 2 * (3 - 4); ?>tail`,
		`<?= "hi {$a[0]} there" ?>`,
		"<?php $s = <<<'EOT'\nraw $not_interpolated\nEOT;\n",
	}
	for _, src := range srcs {
		l := New(src)
		var got string
		for {
			tok := l.ScanNext()
			got += tok.FullText(src)
			if tok.Kind == syntax.EndOfFile {
				break
			}
		}
		if got != src {
			t.Errorf("round-trip mismatch:\n got: %q\nwant: %q", got, src)
		}
	}
}

// TestSeekRestoresTemplateState checks that Position/Seek round-trips the
// lexer's modal state, not just its byte offset: probing into a `"` pushes
// a template frame that the seek back must pop again.
func TestSeekRestoresTemplateState(t *testing.T) {
	l := New(`<?php static "x";`)
	open := l.ScanNext()
	if open.Kind != syntax.ScriptOpenTag {
		t.Fatalf("first token = %v, want ScriptOpenTag", open.Kind)
	}
	static := l.ScanNext()
	if static.Kind != syntax.Static {
		t.Fatalf("second token = %v, want Static", static.Kind)
	}

	saved := l.Position()
	probe := l.ScanNext()
	if probe.Kind != syntax.TemplateStart {
		t.Fatalf("probe token = %v, want TemplateStart", probe.Kind)
	}
	l.Seek(saved)

	// After the restore the same TemplateStart must come out again — a
	// stale template frame would have yielded a TemplateMiddle instead.
	again := l.ScanNext()
	if again != probe {
		t.Fatalf("token after Seek = %+v, want %+v", again, probe)
	}
}

// TestShortOpenTagDialect covers config.Dialect.ShortOpenTag gating bare
// `<?` recognition: off by default (the bare marker stays inline HTML
// text), on when the dialect enables it.
func TestShortOpenTagDialect(t *testing.T) {
	src := "<? echo 1; ?>"

	def := New(src)
	got := kinds(scanAll(def))
	if got[0] != syntax.InlineHTML || got[1] != syntax.EndOfFile {
		t.Fatalf("default dialect: kinds = %v, want bare `<?` treated as inline HTML text", got)
	}

	d := config.Default()
	d.ShortOpenTag = true
	lenient := NewWithDialect(src, d)
	got = kinds(scanAll(lenient))
	if got[0] != syntax.ScriptOpenTag {
		t.Fatalf("ShortOpenTag dialect: kinds = %v, want leading ScriptOpenTag", got)
	}
}

// TestExtraKeywordsDialect covers config.Dialect.ExtraKeywords: a
// project-specific alias spelling resolves to its canonical keyword's
// TokenKind, while the canonical spelling keeps working unaided.
func TestExtraKeywordsDialect(t *testing.T) {
	d := config.Default()
	d.ExtraKeywords = map[string]string{"elif": "elseif"}

	l := NewWithDialect("<?php elif ($x) {}", d)
	got := kinds(scanAll(l))
	want := []syntax.TokenKind{
		syntax.ScriptOpenTag, syntax.ElseIf, syntax.OpenParen, syntax.VariableName,
		syntax.CloseParen, syntax.OpenBrace, syntax.CloseBrace, syntax.EndOfFile,
	}
	if !eqKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}

	plain := New("<?php elseif ($x) {}")
	got = kinds(scanAll(plain))
	if got[1] != syntax.ElseIf {
		t.Fatalf("canonical spelling: kinds = %v, want ElseIf at index 1", got)
	}
}

// TestNowdocNoInterpolation covers the nowdoc form (single-quoted label):
// `$var` inside the body is literal text, not an embedded expression.
func TestNowdocNoInterpolation(t *testing.T) {
	src := "<?php $s = <<<'EOT'\nraw $not_interpolated\nEOT;\n"
	l := New(src)
	got := kinds(scanAll(l))
	want := []syntax.TokenKind{
		syntax.ScriptOpenTag, syntax.VariableName, syntax.Equals,
		syntax.TemplateStart, syntax.HeredocLabel, syntax.TemplateMiddle,
		syntax.TemplateEnd, syntax.Semicolon, syntax.EndOfFile,
	}
	if !eqKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}
