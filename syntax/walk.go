package syntax

// Tree traversal helpers. The arena stores every node's parent directly,
// so upward walks just follow the stored chain and downward walks are plain
// recursive pre-order visits.

// Leaves returns every Token leaf under h, in pre-order left-to-right
// (source-text) order. Concatenating their FullText covers h's entire span
// exactly once, each byte appearing once — exposed for callers that want
// the individual tokens rather than Arena.Text's already-concatenated
// string.
func (a *Arena) Leaves(h Handle) []Token {
	var out []Token
	a.collectLeaves(h, &out)
	return out
}

func (a *Arena) collectLeaves(h Handle, out *[]Token) {
	for _, rc := range a.rec(h).children {
		if rc.child.IsToken {
			*out = append(*out, rc.child.Token)
		} else {
			a.collectLeaves(rc.child.Node, out)
		}
	}
}

// Ancestors returns h's parent, grandparent, and so on up to (and
// including) the root, nearest first.
func (a *Arena) Ancestors(h Handle) []Handle {
	var out []Handle
	for cur := a.Parent(h); cur != NoHandle; cur = a.Parent(cur) {
		out = append(out, cur)
	}
	return out
}

// Root walks h's ancestor chain to the top and returns it.
func (a *Arena) Root(h Handle) Handle {
	cur := h
	for {
		parent := a.Parent(cur)
		if parent == NoHandle {
			return cur
		}
		cur = parent
	}
}

// FindByOffset returns the innermost node whose span contains byte offset
// off, descending from root. Used by IDE-style tooling (hover, go-to-def)
// that needs "what's at this cursor position" rather than a full walk.
func (a *Arena) FindByOffset(root Handle, off int) Handle {
	cur := root
	for {
		next := NoHandle
		for _, rc := range a.rec(cur).children {
			if rc.child.IsToken {
				continue
			}
			span := a.Span(rc.child.Node)
			if off >= span.Start && off < span.End() {
				next = rc.child.Node
				break
			}
		}
		if next == NoHandle {
			return cur
		}
		cur = next
	}
}
