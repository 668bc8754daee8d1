package syntax

// ContextMask is a bitset of ListContext values, used by the list-parse
// driver to track which grammar lists are active ancestors of the one
// currently being parsed. The same idea as rust-analyzer's TokenSet, cut
// down to one word: this grammar has on the order of a dozen list contexts,
// so a single uint64 is ample.
type ContextMask uint64

// NewContextMask returns the empty mask.
func NewContextMask() ContextMask {
	return ContextMask(0)
}

// With returns a mask with c set.
func (m ContextMask) With(c ListContext) ContextMask {
	return m | (1 << uint(c))
}

// Without returns a mask with c cleared.
func (m ContextMask) Without(c ListContext) ContextMask {
	return m &^ (1 << uint(c))
}

// Has reports whether c is set in the mask.
func (m ContextMask) Has(c ListContext) bool {
	return m&(1<<uint(c)) != 0
}

// IsEmpty reports whether no context bit is set.
func (m ContextMask) IsEmpty() bool {
	return m == 0
}
