package syntax

// ListContext tags a homogeneous grammar list being parsed by the
// list-parse driver: top-level source elements, block statements,
// class/interface/trait member lists, switch cases, case bodies, and the
// colon-form bodies of if/while/for/foreach/declare.
//
// Each context is defined by three things: which token ends the list
// (isTerminator), which token can begin one of its elements
// (isValidStarter), and how to parse one element (parseElement). The two
// predicates must never both hold for the same token kind.
type ListContext uint8

const (
	ContextSourceElements ListContext = iota
	ContextBlockStatements
	ContextClassMembers
	ContextInterfaceMembers
	ContextTraitMembers
	ContextSwitchCases
	ContextCaseStatements
	ContextIfColonBody
	ContextWhileColonBody
	ContextForColonBody
	ContextForeachColonBody
	ContextDeclareColonBody
	contextCount
)

// isTerminator reports whether k ends the list for context c. End-of-file
// terminates every context.
func (p *Parser) isTerminator(c ListContext, k TokenKind) bool {
	if k == EndOfFile {
		return true
	}
	switch c {
	case ContextSourceElements:
		return false // EndOfFile, handled above, is its only terminator
	case ContextBlockStatements, ContextClassMembers, ContextInterfaceMembers, ContextTraitMembers:
		return k == CloseBrace
	case ContextSwitchCases:
		return k == CloseBrace || k == EndSwitch
	case ContextCaseStatements:
		return k == Case || k == Default || k == CloseBrace || k == EndSwitch
	case ContextIfColonBody:
		return k == ElseIf || k == Else || k == EndIf
	case ContextWhileColonBody:
		return k == EndWhile
	case ContextForColonBody:
		return k == EndFor
	case ContextForeachColonBody:
		return k == EndForeach
	case ContextDeclareColonBody:
		return k == EndDeclare
	}
	panic("syntax: isTerminator: unknown ListContext")
}

// isValidStarter reports whether k can begin an element of context c.
func (p *Parser) isValidStarter(c ListContext, k TokenKind) bool {
	switch c {
	case ContextSourceElements, ContextBlockStatements, ContextCaseStatements,
		ContextIfColonBody, ContextWhileColonBody, ContextForColonBody,
		ContextForeachColonBody, ContextDeclareColonBody:
		return isStatementStarter(k)
	case ContextClassMembers, ContextTraitMembers:
		return k.IsModifier() || k == Const || k == Function || k == VariableName || k == Use
	case ContextInterfaceMembers:
		return k.IsModifier() || k == Const || k == Function
	case ContextSwitchCases:
		return k == Case || k == Default
	}
	panic("syntax: isValidStarter: unknown ListContext")
}

// parseElement parses one element of context c and returns it unattached;
// parseList owns appending it under parent. parent is still threaded
// through so the statement dispatcher can hang skipped stray modifiers off
// the right node.
func (p *Parser) parseElement(c ListContext, parent Handle) Handle {
	switch c {
	case ContextSourceElements, ContextBlockStatements, ContextCaseStatements,
		ContextIfColonBody, ContextWhileColonBody, ContextForColonBody,
		ContextForeachColonBody, ContextDeclareColonBody:
		return p.parseStatement(parent)
	case ContextClassMembers, ContextTraitMembers:
		return p.parseClassMember()
	case ContextInterfaceMembers:
		return p.parseInterfaceMember()
	case ContextSwitchCases:
		return p.parseSwitchCase()
	}
	// Asking for the element parser of an unknown list context is a
	// programmer error, not a user error; every malformed-input path is
	// handled without panicking.
	panic("syntax: parseElement: unknown ListContext")
}

// elementRole is the slot role parseList attaches elements of context c
// under.
func elementRole(c ListContext) Role {
	switch c {
	case ContextClassMembers, ContextInterfaceMembers, ContextTraitMembers:
		return RoleElement
	case ContextSwitchCases:
		return RoleCases
	}
	return RoleStatements
}

// parseList runs the list-parse driver for context c, appending every
// element (and every skipped garbage token) under parent in source order.
// It returns the element handles, in order, for callers that keep their own
// index of the list.
//
// The per-token decision is three-way: a terminator stops the list; a valid
// starter parses one element; anything else either defers to an enclosing
// context that wants the token (stop here, let the outer list deal with
// it), or, if no active context does, is wrapped as a SkippedToken and the
// loop retries on the next token. The deferral step is what keeps a missing
// close-brace from swallowing the rest of the enclosing declaration.
func (p *Parser) parseList(c ListContext, parent Handle) []Handle {
	restore := p.enterContext(c)
	defer restore()

	role := elementRole(c)
	var children []Handle
	for {
		tok := p.peek()
		if p.isTerminator(c, tok.Kind) {
			break
		}
		if p.isValidStarter(c, tok.Kind) {
			el := p.parseElement(c, parent)
			p.arena.AppendNodeWithRole(parent, role, el)
			children = append(children, el)
			continue
		}
		if p.anyEnclosingContextAccepts(c, tok.Kind) {
			break
		}
		skipped := SkippedToken(p.advance())
		p.arena.AppendToken(parent, RoleElement, skipped)
	}
	return children
}

// anyEnclosingContextAccepts walks every context bit set in the mask
// excluding c itself and asks whether k is either a starter or a terminator
// there.
func (p *Parser) anyEnclosingContextAccepts(c ListContext, k TokenKind) bool {
	for ctx := ListContext(0); ctx < contextCount; ctx++ {
		if ctx == c {
			continue
		}
		if !p.mask.Has(ctx) {
			continue
		}
		if p.isTerminator(ctx, k) || p.isValidStarter(ctx, k) {
			return true
		}
	}
	return false
}
