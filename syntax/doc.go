// Package syntax implements a tolerant, error-recovering parser for a
// dynamically-typed, C-family scripting language whose source files embed
// script sections inside HTML. Parsing never aborts on malformed input:
// every byte of the source, including whitespace, comments, and bytes the
// grammar can't place, ends up as a leaf of the returned tree.
//
// The entry point is ParseSourceFile. The tree it returns satisfies three
// invariants no matter how broken the input is: every leaf's text
// concatenates back to the original source, every non-root node has a
// parent, and every unmatched grammar expectation shows up as a zero-width
// MissingToken rather than a nil slot.
package syntax
