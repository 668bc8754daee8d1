package treedump

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tolerantparse/php/lexer"
	"github.com/tolerantparse/php/syntax"
)

// TestDumpMarshalUnmarshalRoundTrip covers the golden-fixture idiom: a
// parsed tree, dumped to the serializable Node shape, survives a YAML
// marshal/unmarshal round trip with identical structure. go-cmp.Diff is
// used for the structural comparison rather than reflect.DeepEqual so a
// mismatch reports exactly which slot diverged.
func TestDumpMarshalUnmarshalRoundTrip(t *testing.T) {
	source := `<?php class A { public function f($x) { return $x + 1; } }`
	sf := syntax.ParseSourceFile(source, lexer.New(source))

	want := Dump(sf.Arena(), sf.Root, sf.Source)
	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dump did not survive a YAML round trip (-want +got):\n%s", diff)
	}
}

// TestDumpCatchesStructuralRegression covers the other half of the golden
// idiom: go-cmp.Diff must actually notice when two trees differ, not just
// pass vacuously, by comparing the dumps of two different sources.
func TestDumpCatchesStructuralRegression(t *testing.T) {
	srcA := `<?php $x = 1;`
	srcB := `<?php $x = 1 + 2;`

	sfA := syntax.ParseSourceFile(srcA, lexer.New(srcA))
	sfB := syntax.ParseSourceFile(srcB, lexer.New(srcB))

	dumpA := Dump(sfA.Arena(), sfA.Root, sfA.Source)
	dumpB := Dump(sfB.Arena(), sfB.Root, sfB.Source)

	if cmp.Diff(dumpA, dumpB) == "" {
		t.Fatal("expected a structural diff between two different sources, got none")
	}
}
