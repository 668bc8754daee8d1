package syntax

import "testing"

// TestLeavesCoversEveryByteExactlyOnce checks lossless coverage from the
// token side: Leaves returns every token in pre-order, and concatenating
// their FullText reconstructs the source exactly (the same invariant
// Arena.Text relies on, verified here via the public Leaves API downstream
// tooling is expected to use).
func TestLeavesCoversEveryByteExactlyOnce(t *testing.T) {
	toks, source := tokenStream(
		kv(ScriptOpenTag, "<?php"), kv(Echo, " echo"),
		kv(IntegerLiteral, " 1"), kv(Semicolon, ";"),
	)
	sf := ParseSourceFile(source, &fakeLexer{toks: toks})

	var got string
	for _, tok := range sf.Arena().Leaves(sf.Root) {
		got += tok.FullText(source)
	}
	if got != source {
		t.Errorf("Leaves round-trip mismatch:\n got: %q\nwant: %q", got, source)
	}
}

// TestAncestorsAndRoot covers the stored-parent-pointer walk: Ancestors
// returns every enclosing node up to the root, and Root resolves to the
// same SourceFile handle ParseSourceFile returned regardless of which leaf
// node the walk started from.
func TestAncestorsAndRoot(t *testing.T) {
	toks, source := tokenStream(
		kv(ScriptOpenTag, "<?php"), kv(VariableName, " $x"),
		kv(Equals, " ="), kv(IntegerLiteral, " 1"), kv(Semicolon, ";"),
	)
	sf := ParseSourceFile(source, &fakeLexer{toks: toks})

	leaves := sf.Arena().Leaves(sf.Root)
	intLit := NoHandle
	for h := range sf.Arena().nodes {
		if sf.Arena().Kind(Handle(h)) == Literal {
			intLit = Handle(h)
			break
		}
	}
	if intLit == NoHandle {
		t.Skip("no Literal node produced by this fixture shape")
	}

	ancestors := sf.Arena().Ancestors(intLit)
	if len(ancestors) == 0 {
		t.Fatal("expected at least one ancestor (the SourceFile root)")
	}
	if got := ancestors[len(ancestors)-1]; got != sf.Root {
		t.Errorf("outermost ancestor = %v, want SourceFile root %v", got, sf.Root)
	}
	if got := sf.Arena().Root(intLit); got != sf.Root {
		t.Errorf("Root(intLit) = %v, want %v", got, sf.Root)
	}
	if len(leaves) == 0 {
		t.Fatal("expected at least one leaf token")
	}
}

// TestFindByOffset covers the IDE-style "what node is at this byte" query:
// an offset inside the integer literal resolves to that literal node, not
// some coarser ancestor.
func TestFindByOffset(t *testing.T) {
	toks, source := tokenStream(
		kv(ScriptOpenTag, "<?php"), kv(Echo, " echo"),
		kv(IntegerLiteral, " 42"), kv(Semicolon, ";"),
	)
	sf := ParseSourceFile(source, &fakeLexer{toks: toks})

	offset := len(source) - len(";") - 1 // inside "42"
	found := sf.Arena().FindByOffset(sf.Root, offset)
	span := sf.Arena().Span(found)
	if offset < span.Start || offset >= span.End() {
		t.Fatalf("FindByOffset(%d) = %v with span %v, want a node covering the offset", offset, found, span)
	}
	if k := sf.Arena().Kind(found); k != Literal {
		t.Errorf("FindByOffset(%d) kind = %v, want Literal", offset, k)
	}
}
