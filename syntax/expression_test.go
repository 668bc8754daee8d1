package syntax

import "testing"

// parseExprFixture runs parseExpression(parent, true) over a fixed token
// stream and returns the resulting handle's arena for inspection.
func parseExprFixture(t *testing.T, parts ...struct {
	Kind TokenKind
	Text string
}) (*Arena, Handle, string) {
	t.Helper()
	toks, source := tokenStream(parts...)
	p := NewParser(&fakeLexer{toks: toks}, source)
	root := p.arena.New(SourceFile)
	h := p.parseExpression(root, true)
	p.arena.AppendNodeWithRole(root, RoleExpression, h)
	return p.arena, h, source
}

// TestPrecedenceClimb: `1 + 2 * 3` must bind as `1 + (2 * 3)`, i.e. the
// root is Plus with a Times on the right.
func TestPrecedenceClimb(t *testing.T) {
	a, h, _ := parseExprFixture(t,
		kv(IntegerLiteral, "1"), kv(Plus, "+"), kv(IntegerLiteral, "2"),
		kv(Asterisk, "*"), kv(IntegerLiteral, "3"),
	)
	if a.Kind(h) != BinaryExpression {
		t.Fatalf("root kind = %v, want BinaryExpression", a.Kind(h))
	}
	op, ok := a.ChildByRole(h, RoleOperator)
	if !ok || op.Token.Kind != Plus {
		t.Fatalf("root operator = %+v, want Plus", op)
	}
	right, ok := a.ChildByRole(h, RoleRight)
	if !ok || right.IsToken || a.Kind(right.Node) != BinaryExpression {
		t.Fatalf("right operand = %+v, want nested BinaryExpression (the `*`)", right)
	}
}

// TestRightAssociativeAssignment: `$a = $b = 1` must bind as
// `$a = ($b = 1)` (assignment is right-associative).
func TestRightAssociativeAssignment(t *testing.T) {
	a, h, _ := parseExprFixture(t,
		kv(VariableName, "$a"), kv(Equals, "="),
		kv(VariableName, "$b"), kv(Equals, "="), kv(IntegerLiteral, "1"),
	)
	if a.Kind(h) != AssignmentExpression {
		t.Fatalf("root kind = %v, want AssignmentExpression", a.Kind(h))
	}
	right, ok := a.ChildByRole(h, RoleRight)
	if !ok || right.IsToken || a.Kind(right.Node) != AssignmentExpression {
		t.Fatalf("right operand = %+v, want nested AssignmentExpression", right)
	}
}

// TestStarStarOutranksUnaryMinus: `-2 ** 2` parses as `-(2 ** 2)`, not
// `(-2) ** 2`, even though unary minus appears to bind its operand first in
// a naive left-to-right read.
func TestStarStarOutranksUnaryMinus(t *testing.T) {
	a, h, source := parseExprFixture(t,
		kv(Minus, "-"), kv(IntegerLiteral, "2"), kv(StarStar, "**"), kv(IntegerLiteral, "2"),
	)
	if a.Kind(h) != UnaryOpExpression {
		t.Fatalf("root kind = %v, want UnaryOpExpression", a.Kind(h))
	}
	operand, ok := a.ChildByRole(h, RoleOperand)
	if !ok || operand.IsToken || a.Kind(operand.Node) != BinaryExpression {
		t.Fatalf("unary operand = %+v, want nested BinaryExpression (the `**`)", operand)
	}
	op, _ := a.ChildByRole(operand.Node, RoleOperator)
	if op.Token.Kind != StarStar {
		t.Fatalf("nested operator = %v, want StarStar", op.Token.Kind)
	}
	// The rewrap must place the unary operator *before* its operand in the
	// node's child order — not just reachable by role — since text
	// reconstruction walks children in order.
	if got := a.Text(h, source); got != source {
		t.Errorf("round-trip mismatch after unary rewrap: got %q want %q", got, source)
	}
}

// TestMissingExpressionOnEmptySlot: when nothing valid can start an
// expression, parseExpression returns a MissingExpression wrapping a
// zero-width MissingToken rather than panicking or consuming the offending
// token silently.
func TestMissingExpressionOnEmptySlot(t *testing.T) {
	a, h, _ := parseExprFixture(t, kv(Semicolon, ";"))
	if a.Kind(h) != MissingExpression {
		t.Fatalf("kind = %v, want MissingExpression", a.Kind(h))
	}
}

// TestNoneAssociativityGuard: chained relational operators at the same
// precedence (`$a < $b < $c`) must not silently chain past the first
// comparison — the second `<` is left for the caller/list driver to deal
// with, not folded into a third operand.
func TestNoneAssociativityGuard(t *testing.T) {
	toks, source := tokenStream(
		kv(VariableName, "$a"), kv(LessThan, "<"), kv(VariableName, "$b"),
		kv(LessThan, "<"), kv(VariableName, "$c"),
	)
	p := NewParser(&fakeLexer{toks: toks}, source)
	root := p.arena.New(SourceFile)
	h := p.parseExpression(root, false)
	if p.arena.Kind(h) != BinaryExpression {
		t.Fatalf("kind = %v, want BinaryExpression", p.arena.Kind(h))
	}
	if !p.check(LessThan) {
		t.Fatal("expected a None-associativity guard to leave the second `<` unconsumed, but it advanced past it")
	}
}

// TestCallThenCallSyntheticParens covers the `f()()` shape: the second
// argument list must wrap the first Call in a synthetic zero-width
// ParenthesizedExpression rather than chaining directly into Call(Call(f)).
func TestCallThenCallSyntheticParens(t *testing.T) {
	a, h, source := parseExprFixture(t,
		kv(Name, "f"), kv(OpenParen, "("), kv(CloseParen, ")"),
		kv(OpenParen, "("), kv(CloseParen, ")"),
	)
	if a.Kind(h) != CallExpression {
		t.Fatalf("root kind = %v, want CallExpression", a.Kind(h))
	}
	callee, ok := a.ChildByRole(h, RoleLeft)
	if !ok || callee.IsToken {
		t.Fatalf("callee = %+v, want nested node", callee)
	}
	if a.Kind(callee.Node) != ParenthesizedExpression {
		t.Fatalf("callee kind = %v, want synthetic ParenthesizedExpression", a.Kind(callee.Node))
	}
	if got := a.Text(h, source); got != source {
		t.Errorf("synthetic parens must be zero-width: round-trip mismatch, got %q want %q", got, source)
	}
}

// TestTemplateExpressionShape: an interpolated double-quoted string parses
// as a TemplateExpression whose children interleave literal fragments with
// an embedded Variable, in source order.
func TestTemplateExpressionShape(t *testing.T) {
	a, h, source := parseExprFixture(t,
		kv(TemplateStart, `"`), kv(TemplateMiddle, "hello "),
		kv(VariableName, "$name"), kv(TemplateMiddle, " world"),
		kv(TemplateEnd, `"`),
	)
	if a.Kind(h) != TemplateExpression {
		t.Fatalf("kind = %v, want TemplateExpression", a.Kind(h))
	}
	var embedded []Handle
	for _, c := range a.Children(h) {
		if !c.IsToken {
			embedded = append(embedded, c.Node)
		}
	}
	if len(embedded) != 1 || a.Kind(embedded[0]) != Variable {
		t.Fatalf("embedded children = %v, want exactly one Variable", embedded)
	}
	if got := a.Text(h, source); got != source {
		t.Errorf("round-trip mismatch: got %q want %q", got, source)
	}
}
