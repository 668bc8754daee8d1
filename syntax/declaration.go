package syntax

// eatNameLike accepts either a plain Name or any keyword token as a name
// slot, without coercing its TokenKind: qualified-name parts and member
// names may be spelled with reserved words, and the token's own kind is
// preserved so later passes can still see what was written. (The one place
// a keyword is coerced to Name is the postfix member-name production in
// expression.go.)
func (p *Parser) eatNameLike() Token {
	tok := p.peek()
	if tok.Kind == Name || tok.Kind.IsKeyword() {
		return p.advance()
	}
	return p.eat(Name)
}

// parseQualifiedName parses a possibly-qualified name: an optional leading
// `\` (global) or `namespace\` (relative) prefix, then `\`-joined name
// parts.
func (p *Parser) parseQualifiedName() Handle {
	h := p.arena.New(QualifiedName)
	if bs, ok := p.eatOptional(Backslash); ok {
		p.arena.AppendToken(h, RoleDelimiter, bs)
	} else if ns, ok := p.eatOptional(Namespace); ok {
		p.arena.AppendToken(h, RoleKeyword, ns)
		p.arena.AppendToken(h, RoleDelimiter, p.eat(Backslash))
	}
	p.arena.AppendToken(h, RoleName, p.eatNameLike())
	for p.check(Backslash) {
		p.arena.AppendToken(h, RoleDelimiter, p.advance())
		p.arena.AppendToken(h, RoleName, p.eatNameLike())
	}
	return h
}

// parseTypeRef parses a parameter/return type: a scalar-type keyword or a
// qualified name.
func (p *Parser) parseTypeRef() Handle {
	if p.peek().Kind.IsScalarTypeKeyword() {
		h := p.arena.New(QualifiedName)
		p.arena.AppendToken(h, RoleName, p.advance())
		return h
	}
	return p.parseQualifiedName()
}

// --- Parameters ---

func (p *Parser) parseParameterList() Handle {
	h := p.arena.New(ParameterList)
	for !p.check(CloseParen) && !p.check(EndOfFile) {
		p.arena.AppendNodeWithRole(h, RoleElement, p.parseParameter())
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(h, RoleDelimiter, comma)
			continue
		}
		break
	}
	return h
}

// parseParameter parses one parameter: optional type, optional `&`,
// optional `...`, variable name, optional default value.
func (p *Parser) parseParameter() Handle {
	h := p.arena.New(Parameter)
	if p.peek().Kind.IsScalarTypeKeyword() || p.check(Name) || p.check(Backslash) || p.check(Namespace) {
		p.arena.AppendNodeWithRole(h, RoleType, p.parseTypeRef())
	}
	if amp, ok := p.eatOptional(Ampersand); ok {
		p.arena.AppendToken(h, RoleByRef, amp)
	}
	if dots, ok := p.eatOptional(Ellipsis); ok {
		p.arena.AppendToken(h, RoleVariadic, dots)
	}
	p.arena.AppendToken(h, RoleName, p.eat(VariableName))
	if eq, ok := p.eatOptional(Equals); ok {
		p.arena.AppendToken(h, RoleOperator, eq)
		p.arena.AppendNodeWithRole(h, RoleDefault, p.parseExpression(h, true))
	}
	return h
}

// --- Function/method header shared by declarations ---

// parseFunctionHeader parses `&? name ( params )`, used by named function
// and method declarations (anonymous-function creation parses its own
// variant in expression.go, since a name there is an error, not a slot).
// Method names may be spelled with keywords (`function list()` is a legal
// method), so the name slot goes through eatNameLike.
func (p *Parser) parseFunctionHeader(h Handle) {
	if amp, ok := p.eatOptional(Ampersand); ok {
		p.arena.AppendToken(h, RoleByRef, amp)
	}
	p.arena.AppendToken(h, RoleName, p.eatNameLike())
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleParameters, p.parseParameterList())
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
}

// parseReturnTypeClause parses an optional `: type` return-type clause.
func (p *Parser) parseReturnTypeClause(h Handle) {
	if colon, ok := p.eatOptional(Colon); ok {
		p.arena.AppendToken(h, RoleColon, colon)
		p.arena.AppendNodeWithRole(h, RoleType, p.parseTypeRef())
	}
}

// isFunctionDeclarationAhead reports whether the token after `function`
// (skipping an optional `&`) is a name or keyword — the statement-level
// disambiguation between a function declaration and an anonymous-function
// expression.
func (p *Parser) isFunctionDeclarationAhead() bool {
	saved := p.lexer.Position()
	next := p.lexer.ScanNext()
	if next.Kind == Ampersand {
		next = p.lexer.ScanNext()
	}
	p.lexer.Seek(saved)
	return next.Kind == Name || next.Kind.IsKeyword()
}

func (p *Parser) parseFunctionDeclaration() Handle {
	h := p.arena.New(FunctionDeclaration)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Function))
	p.parseFunctionHeader(h)
	p.parseReturnTypeClause(h)
	p.arena.AppendNodeWithRole(h, RoleBody, p.parseCompoundStatement())
	return h
}

// --- Class / interface / trait members ---

// parseModifiers consumes the modifier-keyword prefix: any sequence of
// public/protected/private/static/abstract/final/var.
func (p *Parser) parseModifiers() []Token {
	var mods []Token
	for p.peek().Kind.IsModifier() {
		mods = append(mods, p.advance())
	}
	return mods
}

func (p *Parser) parseClassMember() Handle {
	mods := p.parseModifiers()
	switch {
	case p.check(Const):
		return p.parseClassConstDeclaration(mods)
	case p.check(Function):
		return p.parseMethodDeclaration(mods)
	case p.check(VariableName):
		return p.parsePropertyDeclaration(mods)
	case p.check(Use):
		return p.parseTraitUseClause()
	default:
		// Modifiers with nothing parseable after them: hold them in a
		// MissingMemberDeclaration and let the member list's driver
		// recover or skip whatever comes next.
		h := p.arena.New(MissingMemberDeclaration)
		for _, m := range mods {
			p.arena.AppendToken(h, RoleModifiers, m)
		}
		return h
	}
}

func (p *Parser) parseInterfaceMember() Handle {
	mods := p.parseModifiers()
	switch {
	case p.check(Const):
		return p.parseClassConstDeclaration(mods)
	case p.check(Function):
		return p.parseMethodDeclaration(mods)
	default:
		h := p.arena.New(MissingMemberDeclaration)
		for _, m := range mods {
			p.arena.AppendToken(h, RoleModifiers, m)
		}
		return h
	}
}

func (p *Parser) parseMethodDeclaration(mods []Token) Handle {
	h := p.arena.New(MethodDeclaration)
	for _, m := range mods {
		p.arena.AppendToken(h, RoleModifiers, m)
	}
	p.arena.AppendToken(h, RoleKeyword, p.eat(Function))
	p.parseFunctionHeader(h)
	p.parseReturnTypeClause(h)
	if p.check(OpenBrace) {
		p.arena.AppendNodeWithRole(h, RoleBody, p.parseCompoundStatement())
	} else {
		// Abstract and interface methods end in a bare `;`.
		p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
	}
	return h
}

func (p *Parser) parsePropertyDeclaration(mods []Token) Handle {
	h := p.arena.New(PropertyDeclaration)
	for _, m := range mods {
		p.arena.AppendToken(h, RoleModifiers, m)
	}
	for {
		el := p.arena.New(PropertyElement)
		p.arena.AppendToken(el, RoleName, p.eat(VariableName))
		if eq, ok := p.eatOptional(Equals); ok {
			p.arena.AppendToken(el, RoleOperator, eq)
			p.arena.AppendNodeWithRole(el, RoleExpression, p.parseExpression(el, true))
		}
		p.arena.AppendNodeWithRole(h, RoleElement, el)
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(h, RoleDelimiter, comma)
			continue
		}
		break
	}
	p.eatStatementTerminator(h)
	return h
}

func (p *Parser) parseClassConstDeclaration(mods []Token) Handle {
	h := p.arena.New(ClassConstDeclaration)
	for _, m := range mods {
		p.arena.AppendToken(h, RoleModifiers, m)
	}
	p.arena.AppendToken(h, RoleKeyword, p.eat(Const))
	for {
		el := p.arena.New(ConstElement)
		p.arena.AppendToken(el, RoleName, p.eatNameLike())
		p.arena.AppendToken(el, RoleOperator, p.eat(Equals))
		p.arena.AppendNodeWithRole(el, RoleExpression, p.parseExpression(el, true))
		p.arena.AppendNodeWithRole(h, RoleElement, el)
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(h, RoleDelimiter, comma)
			continue
		}
		break
	}
	p.eatStatementTerminator(h)
	return h
}

func (p *Parser) parseTraitUseClause() Handle {
	h := p.arena.New(TraitUseClause)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Use))
	for {
		p.arena.AppendNodeWithRole(h, RoleUses, p.parseQualifiedName())
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(h, RoleDelimiter, comma)
			continue
		}
		break
	}
	if p.check(OpenBrace) {
		p.arena.AppendToken(h, RoleOpenBrace, p.advance())
		for !p.check(CloseBrace) && !p.check(EndOfFile) {
			before := p.current
			p.arena.AppendNodeWithRole(h, RoleElement, p.parseTraitAdaptation())
			if p.current == before {
				// The adaptation parser matched nothing at all; skip one
				// token so the loop can't stall on garbage.
				p.arena.AppendToken(h, RoleElement, SkippedToken(p.advance()))
			}
		}
		p.arena.AppendToken(h, RoleCloseBrace, p.eat(CloseBrace))
	} else {
		p.eatStatementTerminator(h)
	}
	return h
}

// parseTraitAdaptation parses one `insteadof`/`as` clause inside a braced
// trait-use body.
func (p *Parser) parseTraitAdaptation() Handle {
	name := p.parseQualifiedName()
	var member Token
	hasMember := false
	if p.check(ColonColon) {
		p.advance()
		member = p.eat(Name)
		hasMember = true
	}
	if p.check(InsteadOf) {
		h := p.arena.New(TraitSelectInsteadOfClause)
		p.arena.AppendNodeWithRole(h, RoleBase, name)
		if hasMember {
			p.arena.AppendToken(h, RoleName, member)
		}
		p.arena.AppendToken(h, RoleKeyword, p.advance())
		for {
			p.arena.AppendNodeWithRole(h, RoleElement, p.parseQualifiedName())
			if comma, ok := p.eatOptional(Comma); ok {
				p.arena.AppendToken(h, RoleDelimiter, comma)
				continue
			}
			break
		}
		p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
		return h
	}
	h := p.arena.New(TraitAsClause)
	p.arena.AppendNodeWithRole(h, RoleBase, name)
	if hasMember {
		p.arena.AppendToken(h, RoleName, member)
	}
	p.arena.AppendToken(h, RoleKeyword, p.eat(As))
	for p.peek().Kind.IsModifier() {
		p.arena.AppendToken(h, RoleModifiers, p.advance())
	}
	if p.check(Name) {
		p.arena.AppendToken(h, RoleAlias, p.advance())
	}
	p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
	return h
}

// --- Class / interface / trait declarations ---

func (p *Parser) parseClassDeclaration(leadingModifier Token) Handle {
	h := p.arena.New(ClassDeclaration)
	if leadingModifier.Kind != EndOfFile {
		p.arena.AppendToken(h, RoleModifiers, leadingModifier)
	}
	p.arena.AppendToken(h, RoleKeyword, p.eat(Class))
	p.arena.AppendToken(h, RoleName, p.eat(Name))

	if p.check(Extends) {
		clause := p.arena.New(ClassBaseClause)
		p.arena.AppendToken(clause, RoleKeyword, p.advance())
		p.arena.AppendNodeWithRole(clause, RoleName, p.parseQualifiedName())
		p.arena.AppendNodeWithRole(h, RoleBase, clause)
	}
	if p.check(Implements) {
		clause := p.arena.New(ClassInterfaceClause)
		p.arena.AppendToken(clause, RoleKeyword, p.advance())
		for {
			p.arena.AppendNodeWithRole(clause, RoleInterfaces, p.parseQualifiedName())
			if comma, ok := p.eatOptional(Comma); ok {
				p.arena.AppendToken(clause, RoleDelimiter, comma)
				continue
			}
			break
		}
		p.arena.AppendNodeWithRole(h, RoleInterfaces, clause)
	}

	p.arena.AppendToken(h, RoleOpenBrace, p.eat(OpenBrace))
	members := p.arena.New(ClassMembers)
	p.arena.AppendNodeWithRole(h, RoleMembers, members)
	p.parseList(ContextClassMembers, members)
	p.arena.AppendToken(h, RoleCloseBrace, p.eat(CloseBrace))
	return h
}

func (p *Parser) parseInterfaceDeclaration() Handle {
	h := p.arena.New(InterfaceDeclaration)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Interface))
	p.arena.AppendToken(h, RoleName, p.eat(Name))

	if p.check(Extends) {
		clause := p.arena.New(InterfaceBaseClause)
		p.arena.AppendToken(clause, RoleKeyword, p.advance())
		for {
			p.arena.AppendNodeWithRole(clause, RoleInterfaces, p.parseQualifiedName())
			if comma, ok := p.eatOptional(Comma); ok {
				p.arena.AppendToken(clause, RoleDelimiter, comma)
				continue
			}
			break
		}
		p.arena.AppendNodeWithRole(h, RoleBase, clause)
	}

	p.arena.AppendToken(h, RoleOpenBrace, p.eat(OpenBrace))
	members := p.arena.New(ClassMembers)
	p.arena.AppendNodeWithRole(h, RoleMembers, members)
	p.parseList(ContextInterfaceMembers, members)
	p.arena.AppendToken(h, RoleCloseBrace, p.eat(CloseBrace))
	return h
}

func (p *Parser) parseTraitDeclaration() Handle {
	h := p.arena.New(TraitDeclaration)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Trait))
	p.arena.AppendToken(h, RoleName, p.eat(Name))

	p.arena.AppendToken(h, RoleOpenBrace, p.eat(OpenBrace))
	members := p.arena.New(ClassMembers)
	p.arena.AppendNodeWithRole(h, RoleMembers, members)
	p.parseList(ContextTraitMembers, members)
	p.arena.AppendToken(h, RoleCloseBrace, p.eat(CloseBrace))
	return h
}

// --- Namespace definition / use ---

func (p *Parser) parseNamespaceDefinition() Handle {
	h := p.arena.New(NamespaceDefinition)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Namespace))
	if p.check(Name) {
		p.arena.AppendNodeWithRole(h, RoleName, p.parseQualifiedName())
	}
	if p.check(OpenBrace) {
		p.arena.AppendNodeWithRole(h, RoleBody, p.parseCompoundStatement())
	} else {
		p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
	}
	return h
}

func (p *Parser) parseNamespaceUseDeclaration() Handle {
	h := p.arena.New(NamespaceUseDeclaration)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Use))
	if p.check(Function) || p.check(Const) {
		p.arena.AppendToken(h, RoleModifiers, p.advance())
	}
	name := p.parseQualifiedName()
	if p.check(OpenBrace) {
		p.arena.AppendNodeWithRole(h, RoleName, name)
		p.arena.AppendToken(h, RoleOpenBrace, p.advance())
		for !p.check(CloseBrace) && !p.check(EndOfFile) {
			p.arena.AppendNodeWithRole(h, RoleElement, p.parseNamespaceUseGroupClause())
			if comma, ok := p.eatOptional(Comma); ok {
				p.arena.AppendToken(h, RoleDelimiter, comma)
				continue
			}
			break
		}
		p.arena.AppendToken(h, RoleCloseBrace, p.eat(CloseBrace))
	} else {
		clause := p.arena.New(NamespaceUseClause)
		p.arena.AppendNodeWithRole(clause, RoleName, name)
		if p.check(As) {
			p.arena.AppendToken(clause, RoleKeyword, p.advance())
			p.arena.AppendToken(clause, RoleAlias, p.eat(Name))
		}
		p.arena.AppendNodeWithRole(h, RoleElement, clause)
	}
	p.eatStatementTerminator(h)
	return h
}

func (p *Parser) parseNamespaceUseGroupClause() Handle {
	h := p.arena.New(NamespaceUseGroupClause)
	if p.check(Function) || p.check(Const) {
		p.arena.AppendToken(h, RoleModifiers, p.advance())
	}
	p.arena.AppendNodeWithRole(h, RoleName, p.parseQualifiedName())
	if p.check(As) {
		p.arena.AppendToken(h, RoleKeyword, p.advance())
		p.arena.AppendToken(h, RoleAlias, p.eat(Name))
	}
	return h
}
