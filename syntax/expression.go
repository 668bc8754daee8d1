package syntax

// Pratt-style expression parsing: a unary-prefix/primary front end, a
// precedence climb over operator.go's table, and a postfix chain for
// call/subscript/member/scope-resolution tails. Everything returns an
// unattached Handle; attachment is the caller's job.

// parseExpression is the single expression entry point. parent is accepted
// for parity with every other producer's signature and goes unused in the
// body. When force is set, a completely unparseable position is resolved by
// wrapping the offending token as skipped and advancing past it, so callers
// that loop (list drivers, expression-statement parsing) always make
// forward progress.
func (p *Parser) parseExpression(parent Handle, force bool) Handle {
	if p.check(EndOfFile) {
		return p.missingExpression()
	}

	var h Handle
	switch p.peek().Kind {
	case Include, IncludeOnce, Require, RequireOnce:
		h = p.arena.New(ScriptInclusionExpression)
		p.arena.AppendToken(h, RoleKeyword, p.advance())
		p.arena.AppendNodeWithRole(h, RoleExpression, p.parseExpression(h, false))
	default:
		h = p.parseBinaryExpr(0)
	}

	if force && p.arena.Kind(h) == MissingExpression {
		p.arena.AppendToken(h, RoleElement, SkippedToken(p.advance()))
	}
	return h
}

// missingExpression builds the bare, unforced "nothing here" result: a
// MissingExpression node wrapping a single zero-width MissingToken of
// pseudo-kind Expression.
func (p *Parser) missingExpression() Handle {
	h := p.arena.New(MissingExpression)
	p.arena.AppendToken(h, RoleExpression, MissingToken(PseudoExpression, p.current.FullStart))
	return h
}

// parseBinaryExpr is the precedence climb proper: parse one unary-or-higher
// operand, then repeatedly fold in operators from operatorTable whose
// precedence clears minPrec, recursing with minPrec set to the consumed
// operator's own precedence. Right-associative operators clear the bar at
// equal precedence; everything else must exceed it.
func (p *Parser) parseBinaryExpr(minPrec int) Handle {
	left := p.parseUnaryOrHigher()

	havePrev := false
	var prevPrec int
	var prevAssoc Assoc

	for {
		info, ok := lookupOperator(p.peek().Kind)
		if !ok {
			return left
		}
		if info.assoc == AssocRight {
			if info.prec < minPrec {
				return left
			}
		} else if info.prec <= minPrec {
			return left
		}
		// None-associativity guard: two None-assoc operators at
		// the same precedence level may not chain (`$a < $b < $c` stops
		// after the first comparison rather than re-associating).
		if havePrev && prevAssoc == AssocNone && info.assoc == AssocNone && info.prec == prevPrec {
			return left
		}

		opKind := p.peek().Kind
		switch {
		case opKind == Question:
			left = p.parseTernary(left)
		case isAssignmentTier(opKind):
			left = p.parseAssignmentLike(left)
		default:
			left = p.parseBinaryOperator(left, opKind, info.prec)
		}

		prevPrec, prevAssoc, havePrev = info.prec, info.assoc, true
	}
}

// parseBinaryOperator consumes one binary operator and its right operand,
// producing a BinaryExpression — except when the operator is `**`, which
// outranks a unary prefix already folded onto its left operand by
// parseUnaryOrHigher: `-$a ** $b` must parse as `-($a ** $b)`. When the
// left-hand side handed to us is a UnaryOpExpression and the operator is
// `**`, this unwraps that node, builds the BinaryExpression from its inner
// operand, and rewraps the unary operator around the result.
func (p *Parser) parseBinaryOperator(left Handle, opKind TokenKind, prec int) Handle {
	var unaryOp Token
	rewrapUnary := false
	if opKind == StarStar && p.arena.Kind(left) == UnaryOpExpression {
		opChild, _ := p.arena.ChildByRole(left, RoleOperator)
		operandChild, _ := p.arena.ChildByRole(left, RoleOperand)
		unaryOp = opChild.Token
		p.arena.Detach(operandChild.Node)
		left = operandChild.Node
		rewrapUnary = true
	}

	h := p.arena.New(BinaryExpression)
	p.arena.Reparent(left, h, RoleLeft)
	p.arena.AppendToken(h, RoleOperator, p.advance())
	p.arena.AppendNodeWithRole(h, RoleRight, p.parseBinaryExpr(prec))

	if rewrapUnary {
		// The operator token must precede the operand in the rebuilt
		// UnaryOpExpression's child order (round-trip text depends on it),
		// so this appends to the back rather than using Reparent, which
		// always prepends — correct for every other postfix-chain caller
		// but wrong here, where h is the *second* child, not the first.
		wrapper := p.arena.New(UnaryOpExpression)
		p.arena.AppendToken(wrapper, RoleOperator, unaryOp)
		p.arena.AppendNodeWithRole(wrapper, RoleOperand, h)
		return wrapper
	}
	return h
}

// parseTernary handles `?`: a full ternary with both branches, or the
// short-ternary form (`$a ?: $b`) where the then-branch is absent.
func (p *Parser) parseTernary(left Handle) Handle {
	h := p.arena.New(TernaryExpression)
	p.arena.Reparent(left, h, RoleLeft)
	p.arena.AppendToken(h, RoleOperator, p.eat(Question))
	if !p.check(Colon) {
		p.arena.AppendNodeWithRole(h, RoleMiddle, p.parseExpression(h, false))
	}
	p.arena.AppendToken(h, RoleColon, p.eat(Colon))
	p.arena.AppendNodeWithRole(h, RoleRight, p.parseBinaryExpr(9))
	return h
}

// parseAssignmentLike handles `=` (with its optional by-reference `&`),
// every compound-assignment operator, and `??=`/`??` — all precedence-9,
// right-associative.
func (p *Parser) parseAssignmentLike(left Handle) Handle {
	h := p.arena.New(AssignmentExpression)
	p.arena.Reparent(left, h, RoleLeft)
	opKind := p.peek().Kind
	p.arena.AppendToken(h, RoleOperator, p.advance())
	if opKind == Equals {
		if amp, ok := p.eatOptional(Ampersand); ok {
			p.arena.AppendToken(h, RoleByRef, amp)
		}
	}
	p.arena.AppendNodeWithRole(h, RoleRight, p.parseBinaryExpr(9))
	return h
}

// --- Unary-or-higher ---

func (p *Parser) parseUnaryOrHigher() Handle {
	switch p.peek().Kind {
	case Plus, Minus, Bang, Tilde:
		return p.parseUnaryOp()
	case At:
		return p.parseErrorControl()
	case PlusPlus, MinusMinus:
		return p.parsePrefixUpdate()
	case New:
		return p.parseObjectCreation()
	case Clone:
		return p.parseCloneExpression()
	}
	if p.isCastAhead() {
		return p.parseCast()
	}
	left := p.parsePrimary()
	return p.parsePostfixRest(left)
}

func (p *Parser) parseUnaryOp() Handle {
	h := p.arena.New(UnaryOpExpression)
	p.arena.AppendToken(h, RoleOperator, p.advance())
	p.arena.AppendNodeWithRole(h, RoleOperand, p.parseUnaryOrHigher())
	return h
}

func (p *Parser) parseErrorControl() Handle {
	h := p.arena.New(ErrorControlExpression)
	p.arena.AppendToken(h, RoleOperator, p.eat(At))
	p.arena.AppendNodeWithRole(h, RoleOperand, p.parseUnaryOrHigher())
	return h
}

func (p *Parser) parsePrefixUpdate() Handle {
	h := p.arena.New(PrefixUpdateExpression)
	p.arena.AppendToken(h, RoleOperator, p.advance())
	p.arena.AppendNodeWithRole(h, RoleOperand, p.parseUnaryOrHigher())
	return h
}

func (p *Parser) parseCloneExpression() Handle {
	h := p.arena.New(CloneExpression)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Clone))
	p.arena.AppendNodeWithRole(h, RoleOperand, p.parseUnaryOrHigher())
	return h
}

// isCastAhead probes for `( scalar-type-keyword )` without consuming
// anything.
func (p *Parser) isCastAhead() bool {
	if !p.check(OpenParen) {
		return false
	}
	saved := p.lexer.Position()
	typeTok := p.lexer.ScanNext()
	closeTok := p.lexer.ScanNext()
	p.lexer.Seek(saved)
	return typeTok.Kind.IsScalarTypeKeyword() && closeTok.Kind == CloseParen
}

func (p *Parser) parseCast() Handle {
	h := p.arena.New(CastExpression)
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendToken(h, RoleType, p.advance())
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	p.arena.AppendNodeWithRole(h, RoleOperand, p.parseUnaryOrHigher())
	return h
}

// parseObjectCreation handles `new`: an anonymous class, or a (possibly
// dynamic) class-name expression followed by an optional argument list.
func (p *Parser) parseObjectCreation() Handle {
	h := p.arena.New(ObjectCreationExpression)
	p.arena.AppendToken(h, RoleKeyword, p.eat(New))

	if p.check(Class) {
		p.arena.AppendToken(h, RoleKeyword, p.advance())
		if p.check(OpenParen) {
			p.arena.AppendNodeWithRole(h, RoleArguments, p.parseArgumentList())
		}
		if p.check(Extends) {
			p.arena.AppendToken(h, RoleKeyword, p.advance())
			p.arena.AppendNodeWithRole(h, RoleBase, p.parseQualifiedName())
		}
		if p.check(Implements) {
			p.arena.AppendToken(h, RoleKeyword, p.advance())
			for {
				p.arena.AppendNodeWithRole(h, RoleInterfaces, p.parseQualifiedName())
				if comma, ok := p.eatOptional(Comma); ok {
					p.arena.AppendToken(h, RoleDelimiter, comma)
					continue
				}
				break
			}
		}
		p.arena.AppendToken(h, RoleOpenBrace, p.eat(OpenBrace))
		members := p.arena.New(ClassMembers)
		p.arena.AppendNodeWithRole(h, RoleMembers, members)
		p.parseList(ContextClassMembers, members)
		p.arena.AppendToken(h, RoleCloseBrace, p.eat(CloseBrace))
		return h
	}

	classExpr := p.parsePrimary()
	classExpr = p.parsePostfixChain(classExpr, false /* allowCall */, true /* allowUpdate */)
	p.arena.AppendNodeWithRole(h, RoleExpression, classExpr)
	if p.check(OpenParen) {
		p.arena.AppendNodeWithRole(h, RoleArguments, p.parseArgumentList())
	}
	return h
}

// --- Primary ---

func (p *Parser) parsePrimary() Handle {
	tok := p.peek()
	switch tok.Kind {
	case VariableName:
		h := p.arena.New(Variable)
		p.arena.AppendToken(h, RoleName, p.advance())
		return h
	case DollarSign:
		return p.parseBareDollarVariable()
	case Name, Backslash, Namespace:
		return p.parseQualifiedName()
	case IntegerLiteral, FloatLiteral, StringLiteral:
		h := p.arena.New(Literal)
		p.arena.AppendToken(h, RoleExpression, p.advance())
		return h
	case TemplateStart:
		return p.parseInterpolatedString()
	case ArrayType, OpenBracket:
		return p.parseArrayCreation()
	case Echo:
		return p.parseEchoExpression()
	case ListKw:
		return p.parseListIntrinsic()
	case Unset:
		return p.parseUnsetExpression()
	case Empty:
		return p.parseEmptyExpression()
	case Eval:
		return p.parseEvalExpression()
	case Exit, Die:
		return p.parseExitExpression()
	case Isset:
		return p.parseIssetExpression()
	case Print:
		return p.parsePrintExpression()
	case OpenParen:
		return p.parseParenthesizedExpression()
	case Function:
		return p.parseAnonymousFunctionCreation()
	case Static:
		if p.lookahead(K(Static), K(Function)) {
			return p.parseAnonymousFunctionCreation()
		}
		return p.parseReservedWordQualifiedName()
	}

	if tok.Kind.IsReservedWordLiteral() {
		if p.lookahead(K(tok.Kind), AnyOf(Backslash, ColonColon, OpenParen)) {
			return p.parseReservedWordQualifiedName()
		}
		h := p.arena.New(Literal)
		p.arena.AppendToken(h, RoleExpression, p.advance())
		return h
	}
	if tok.Kind.IsKeyword() {
		// Any other reserved word that reaches this point is parsed as a
		// qualified name.
		return p.parseReservedWordQualifiedName()
	}
	return p.missingExpression()
}

func (p *Parser) parseReservedWordQualifiedName() Handle {
	h := p.arena.New(QualifiedName)
	p.arena.AppendToken(h, RoleName, p.advance())
	for p.check(Backslash) {
		p.arena.AppendToken(h, RoleDelimiter, p.advance())
		p.arena.AppendToken(h, RoleName, p.eatNameLike())
	}
	return h
}

// parseBareDollarVariable handles a bare `$` token: `${expr}` (dynamic
// variable name), `$$name` (variable variable), or a lone `$` with nothing
// sensible following, which ends up carrying a MissingToken(Name).
func (p *Parser) parseBareDollarVariable() Handle {
	h := p.arena.New(Variable)
	p.arena.AppendToken(h, RoleOperator, p.advance())
	switch {
	case p.check(OpenBrace):
		p.arena.AppendToken(h, RoleOpenBrace, p.advance())
		p.arena.AppendNodeWithRole(h, RoleName, p.parseExpression(h, true))
		p.arena.AppendToken(h, RoleCloseBrace, p.eat(CloseBrace))
	case p.check(DollarSign):
		p.arena.AppendNodeWithRole(h, RoleName, p.parseBareDollarVariable())
	case p.check(VariableName):
		p.arena.AppendToken(h, RoleName, p.advance())
	default:
		p.arena.AppendToken(h, RoleName, p.eat(Name))
	}
	return h
}

// --- Intrinsic/keyword-led primaries ---

func (p *Parser) parseEchoExpression() Handle {
	h := p.arena.New(EchoExpression)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Echo))
	for {
		p.arena.AppendNodeWithRole(h, RoleElement, p.parseExpression(h, true))
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(h, RoleDelimiter, comma)
			continue
		}
		break
	}
	return h
}

func (p *Parser) parsePrintExpression() Handle {
	h := p.arena.New(PrintExpression)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Print))
	p.arena.AppendNodeWithRole(h, RoleExpression, p.parseExpression(h, true))
	return h
}

func (p *Parser) parseListIntrinsic() Handle {
	h := p.arena.New(ListIntrinsicExpression)
	p.arena.AppendToken(h, RoleKeyword, p.eat(ListKw))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	for !p.check(CloseParen) && !p.check(EndOfFile) {
		if !p.check(Comma) {
			p.arena.AppendNodeWithRole(h, RoleElement, p.parseExpression(h, true))
		}
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(h, RoleDelimiter, comma)
			continue
		}
		break
	}
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	return h
}

func (p *Parser) parseUnsetExpression() Handle {
	h := p.arena.New(UnsetStatement)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Unset))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	for !p.check(CloseParen) && !p.check(EndOfFile) {
		p.arena.AppendNodeWithRole(h, RoleElement, p.parseExpression(h, true))
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(h, RoleDelimiter, comma)
			continue
		}
		break
	}
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	return h
}

func (p *Parser) parseEmptyExpression() Handle {
	h := p.arena.New(EmptyIntrinsicExpression)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Empty))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleExpression, p.parseExpression(h, true))
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	return h
}

func (p *Parser) parseIssetExpression() Handle {
	h := p.arena.New(IssetIntrinsicExpression)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Isset))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	for !p.check(CloseParen) && !p.check(EndOfFile) {
		p.arena.AppendNodeWithRole(h, RoleElement, p.parseExpression(h, true))
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(h, RoleDelimiter, comma)
			continue
		}
		break
	}
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	return h
}

func (p *Parser) parseEvalExpression() Handle {
	h := p.arena.New(EvalIntrinsicExpression)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Eval))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleExpression, p.parseExpression(h, true))
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	return h
}

func (p *Parser) parseExitExpression() Handle {
	h := p.arena.New(ExitIntrinsicExpression)
	p.arena.AppendToken(h, RoleKeyword, p.advance())
	if open, ok := p.eatOptional(OpenParen); ok {
		p.arena.AppendToken(h, RoleOpenParen, open)
		if !p.check(CloseParen) && !p.check(EndOfFile) {
			p.arena.AppendNodeWithRole(h, RoleExpression, p.parseExpression(h, true))
		}
		p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	}
	return h
}

func (p *Parser) parseParenthesizedExpression() Handle {
	h := p.arena.New(ParenthesizedExpression)
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleExpression, p.parseExpression(h, true))
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	return h
}

// --- Array creation ---

func (p *Parser) parseArrayCreation() Handle {
	h := p.arena.New(ArrayCreationExpression)
	if p.check(ArrayType) {
		p.arena.AppendToken(h, RoleKeyword, p.advance())
		p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
		p.parseArrayElements(h, CloseParen)
		p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
		return h
	}
	p.arena.AppendToken(h, RoleOpenBracket, p.eat(OpenBracket))
	p.parseArrayElements(h, CloseBracket)
	p.arena.AppendToken(h, RoleCloseBracket, p.eat(CloseBracket))
	return h
}

func (p *Parser) parseArrayElements(parent Handle, stop TokenKind) {
	for !p.check(stop) && !p.check(EndOfFile) {
		p.arena.AppendNodeWithRole(parent, RoleElement, p.parseArrayElement())
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(parent, RoleDelimiter, comma)
			continue
		}
		break
	}
}

func (p *Parser) parseArrayElement() Handle {
	h := p.arena.New(ArrayElement)
	if amp, ok := p.eatOptional(Ampersand); ok {
		p.arena.AppendToken(h, RoleByRef, amp)
		p.arena.AppendNodeWithRole(h, RoleExpression, p.parseExpression(h, true))
		return h
	}
	first := p.parseExpression(h, true)
	if fatArrow, ok := p.eatOptional(FatArrow); ok {
		p.arena.AppendNodeWithRole(h, RoleLeft, first)
		p.arena.AppendToken(h, RoleOperator, fatArrow)
		if amp, ok := p.eatOptional(Ampersand); ok {
			p.arena.AppendToken(h, RoleByRef, amp)
		}
		p.arena.AppendNodeWithRole(h, RoleRight, p.parseExpression(h, true))
		return h
	}
	p.arena.AppendNodeWithRole(h, RoleExpression, first)
	return h
}

// --- Anonymous function creation ---

func (p *Parser) parseAnonymousFunctionCreation() Handle {
	h := p.arena.New(AnonymousFunctionCreationExpression)
	if p.check(Static) {
		p.arena.AppendToken(h, RoleModifiers, p.advance())
	}
	p.arena.AppendToken(h, RoleKeyword, p.eat(Function))
	if amp, ok := p.eatOptional(Ampersand); ok {
		p.arena.AppendToken(h, RoleByRef, amp)
	}
	if p.check(Name) {
		// A name is never legitimate on an anonymous function; record it
		// as skipped rather than pretending it's a declaration name.
		p.arena.AppendToken(h, RoleElement, SkippedToken(p.advance()))
	}
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleParameters, p.parseParameterList())
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))

	if p.check(Use) {
		p.arena.AppendNodeWithRole(h, RoleUses, p.parseAnonymousFunctionUseClause())
	}
	p.parseReturnTypeClause(h)
	p.arena.AppendNodeWithRole(h, RoleBody, p.parseCompoundStatement())
	return h
}

func (p *Parser) parseAnonymousFunctionUseClause() Handle {
	h := p.arena.New(AnonymousFunctionUseClause)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Use))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	for !p.check(CloseParen) && !p.check(EndOfFile) {
		amp, hasAmp := p.eatOptional(Ampersand)
		v := p.arena.New(Variable)
		if hasAmp {
			p.arena.AppendToken(v, RoleByRef, amp)
		}
		p.arena.AppendToken(v, RoleName, p.eat(VariableName))
		p.arena.AppendNodeWithRole(h, RoleElement, v)
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(h, RoleDelimiter, comma)
			continue
		}
		break
	}
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	return h
}

// --- Postfix rest ---

// parsePostfixRest applies the full postfix chain to left (subscript,
// member access, scoped property access, call, postfix update). Only some
// expression kinds take a postfix tail at all: a numeric literal or a
// template string followed by `(` is not a call, and an array creation may
// only be followed by a subscript.
func (p *Parser) parsePostfixRest(left Handle) Handle {
	if !p.isPostfixableExpression(left) {
		return left
	}
	allowCall := p.arena.Kind(left) != ArrayCreationExpression
	return p.parsePostfixChain(left, allowCall, true)
}

func (p *Parser) isPostfixableExpression(h Handle) bool {
	switch p.arena.Kind(h) {
	case Variable, ParenthesizedExpression, QualifiedName, CallExpression,
		MemberAccessExpression, SubscriptExpression,
		ScopedPropertyAccessExpression, ArrayCreationExpression:
		return true
	case Literal:
		// String literals are subscriptable/callable; numeric ones aren't.
		c, ok := p.arena.ChildByRole(h, RoleExpression)
		return ok && c.IsToken && c.Token.Kind == StringLiteral
	}
	return false
}

// parsePostfixChain is parsePostfixRest generalized with explicit
// allowCall/allowUpdate flags, so parseObjectCreation's dynamic
// class-name sub-expression (which must stop *before* a trailing `(` —
// that belongs to the new-expression's own argument list, not a postfix
// call on the class name) can reuse the same subscript/member/scope logic.
func (p *Parser) parsePostfixChain(left Handle, allowCall, allowUpdate bool) Handle {
	justCalled := false
	for {
		if p.arena.Kind(left) == ArrayCreationExpression {
			if p.check(OpenBracket) {
				left = p.parseSubscript(left, CloseBracket)
				justCalled = false
				continue
			}
			return left
		}
		switch p.peek().Kind {
		case OpenBracket:
			left = p.parseSubscript(left, CloseBracket)
			justCalled = false
		case OpenBrace:
			left = p.parseSubscript(left, CloseBrace)
			justCalled = false
		case Arrow:
			left = p.parseMemberAccess(left)
			justCalled = false
		case ColonColon:
			left = p.parseScopedPropertyAccess(left)
			justCalled = false
		case OpenParen:
			if !allowCall {
				return left
			}
			if justCalled {
				// A call immediately followed by another `(` does not
				// chain as Call(Call(f)); the first call is wrapped in a
				// zero-width ParenthesizedExpression first, so `f()()`
				// lands as Call(ParenExpr(Call(f))).
				left = p.wrapInSyntheticParens(left)
			}
			left = p.parseCall(left)
			justCalled = true
		case PlusPlus, MinusMinus:
			if !allowUpdate {
				return left
			}
			return p.parsePostfixUpdate(left)
		default:
			return left
		}
	}
}

func (p *Parser) wrapInSyntheticParens(inner Handle) Handle {
	h := p.arena.New(ParenthesizedExpression)
	p.arena.Reparent(inner, h, RoleExpression)
	p.arena.AppendToken(h, RoleOpenParen, MissingToken(OpenParen, p.current.FullStart))
	p.arena.AppendToken(h, RoleCloseParen, MissingToken(CloseParen, p.current.FullStart))
	return h
}

func (p *Parser) parseCall(left Handle) Handle {
	h := p.arena.New(CallExpression)
	p.arena.Reparent(left, h, RoleLeft)
	p.arena.AppendNodeWithRole(h, RoleArguments, p.parseArgumentList())
	return h
}

func (p *Parser) parseArgumentList() Handle {
	h := p.arena.New(ArgumentList)
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	for !p.check(CloseParen) && !p.check(EndOfFile) {
		p.arena.AppendNodeWithRole(h, RoleElement, p.parseExpression(h, true))
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(h, RoleDelimiter, comma)
			continue
		}
		break
	}
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	return h
}

func (p *Parser) parseSubscript(left Handle, closeKind TokenKind) Handle {
	h := p.arena.New(SubscriptExpression)
	p.arena.Reparent(left, h, RoleLeft)
	p.arena.AppendToken(h, RoleOpenBracket, p.advance())
	if !p.check(closeKind) && !p.check(EndOfFile) {
		p.arena.AppendNodeWithRole(h, RoleExpression, p.parseExpression(h, true))
	}
	p.arena.AppendToken(h, RoleCloseBracket, p.eat(closeKind))
	return h
}

func (p *Parser) parseMemberAccess(left Handle) Handle {
	h := p.arena.New(MemberAccessExpression)
	p.arena.Reparent(left, h, RoleLeft)
	p.arena.AppendToken(h, RoleOperator, p.eat(Arrow))
	p.parseMemberName(h)
	return h
}

func (p *Parser) parseScopedPropertyAccess(left Handle) Handle {
	h := p.arena.New(ScopedPropertyAccessExpression)
	p.arena.Reparent(left, h, RoleLeft)
	p.arena.AppendToken(h, RoleOperator, p.eat(ColonColon))
	switch {
	case p.check(VariableName):
		p.arena.AppendToken(h, RoleName, p.advance())
	case p.check(Class):
		p.arena.AppendToken(h, RoleName, p.advance())
	case p.check(OpenBrace):
		p.arena.AppendToken(h, RoleOpenBrace, p.advance())
		p.arena.AppendNodeWithRole(h, RoleName, p.parseExpression(h, true))
		p.arena.AppendToken(h, RoleCloseBrace, p.eat(CloseBrace))
	default:
		p.parseMemberName(h)
	}
	return h
}

// parseMemberName parses the member-name slot shared by `->` and `::`:
// Name/VariableName, a `$`-prefixed simple variable, a `{ expr }` braced
// dynamic name, or any keyword/reserved word coerced to Name.
func (p *Parser) parseMemberName(parent Handle) {
	switch {
	case p.check(VariableName):
		p.arena.AppendToken(parent, RoleName, p.advance())
	case p.check(DollarSign):
		p.arena.AppendNodeWithRole(parent, RoleName, p.parseBareDollarVariable())
	case p.check(OpenBrace):
		p.arena.AppendToken(parent, RoleOpenBrace, p.advance())
		p.arena.AppendNodeWithRole(parent, RoleName, p.parseExpression(parent, true))
		p.arena.AppendToken(parent, RoleCloseBrace, p.eat(CloseBrace))
	case p.peek().Kind == Name, p.peek().Kind.IsKeyword():
		tok := p.advance()
		tok.Kind = Name
		p.arena.AppendToken(parent, RoleName, tok)
	default:
		p.arena.AppendToken(parent, RoleName, p.eat(Name))
	}
}

func (p *Parser) parsePostfixUpdate(left Handle) Handle {
	h := p.arena.New(PostfixUpdateExpression)
	p.arena.Reparent(left, h, RoleOperand)
	p.arena.AppendToken(h, RoleOperator, p.advance())
	return h
}
