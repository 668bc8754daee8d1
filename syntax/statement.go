package syntax

// isStatementStarter reports whether k can begin a statement: the union of
// the explicit dispatch branches in parseStatement plus every token that
// can begin an expression (the dispatcher's default branch). Tokens
// excluded here (pure binary/assignment operators, clause keywords that
// only make sense following a specific parent construct such as `else` or
// `catch`) fall through to the list driver's enclosing-context recovery or
// skip-and-retry path instead, so a stray `&` at block scope becomes a bare
// SkippedToken rather than being folded into a forced expression statement.
func isStatementStarter(k TokenKind) bool {
	switch k {
	case OpenBrace, Semicolon, ScriptCloseTag,
		If, Switch, While, Do, For, Foreach,
		Goto, Continue, Break, Return, Throw,
		Try, Declare, Function, Final, Abstract,
		Class, Interface, Trait, Namespace, Use, Global, Const, Static:
		return true
	}
	return canStartExpression(k)
}

// canStartExpression reports whether k can begin an expression under
// parseUnaryOrHigher/parsePrimary. This is the whitelist form of the
// unary-prefix set plus the primary set.
func canStartExpression(k TokenKind) bool {
	switch k {
	case VariableName, DollarSign, Name, Backslash, Namespace,
		IntegerLiteral, FloatLiteral, StringLiteral, TemplateStart,
		OpenParen, OpenBracket,
		New, Clone, Static, Function,
		True, False, Null,
		Echo, Print, ListKw, Unset, Empty, Eval, Exit, Die, Isset,
		Include, IncludeOnce, Require, RequireOnce,
		Plus, Minus, Bang, Tilde, At, PlusPlus, MinusMinus,
		IntType, IntegerType, BoolType, BooleanType, FloatType, DoubleType,
		RealType, StringType, ArrayType, ObjectType:
		return true
	}
	return false
}

// parseStatement dispatches on the leading token to one of the statement
// productions and returns the resulting node, unattached. parent is only
// needed for the `final`/`abstract` stray-modifier case, which appends a
// skipped leaf directly before retrying.
func (p *Parser) parseStatement(parent Handle) Handle {
	tok := p.peek()

	switch tok.Kind {
	case OpenBrace:
		return p.parseCompoundStatement()
	case Semicolon:
		return p.parseEmptyStatement()
	case ScriptCloseTag:
		return p.parseInlineHTML()
	case If:
		return p.parseIfStatement()
	case Switch:
		return p.parseSwitchStatement()
	case While:
		return p.parseWhileStatement()
	case Do:
		return p.parseDoStatement()
	case For:
		return p.parseForStatement()
	case Foreach:
		return p.parseForeachStatement()
	case Goto:
		return p.parseGotoStatement()
	case Continue:
		return p.parseContinueBreakStatement(ContinueStatement)
	case Break:
		return p.parseContinueBreakStatement(BreakStatement)
	case Return:
		return p.parseReturnStatement()
	case Throw:
		return p.parseThrowStatement()
	case Try:
		return p.parseTryStatement()
	case Declare:
		return p.parseDeclareStatement()
	case Global:
		return p.parseGlobalStatement()
	case Const:
		return p.parseConstDeclaration()
	case Namespace:
		// `namespace\Foo` is a qualified-name expression, not a namespace
		// definition; only `namespace` not followed by `\` starts one.
		if p.lookahead(K(Namespace), K(Backslash)) {
			return p.parseExpressionStatement()
		}
		return p.parseNamespaceDefinition()
	case Use:
		return p.parseNamespaceUseDeclaration()
	case Class:
		return p.parseClassDeclaration(Token{})
	case Interface:
		return p.parseInterfaceDeclaration()
	case Trait:
		return p.parseTraitDeclaration()
	case Function:
		// A name-or-keyword, optionally preceded by `&`, must follow for
		// this to be a function declaration; otherwise `function` begins
		// an anonymous-function-creation expression.
		if p.isFunctionDeclarationAhead() {
			return p.parseFunctionDeclaration()
		}
		return p.parseExpressionStatement()
	case Final, Abstract:
		// At statement level, only `final`/`abstract` directly followed by
		// `class` is a class declaration; otherwise the modifier token is
		// recorded as skipped and the dispatch retries on the next token.
		// The modifier is thrown away rather than attached to whatever
		// follows — unusual, but it keeps a stray `final` from corrupting
		// an unrelated statement.
		mod := p.advance()
		if p.check(Class) {
			return p.parseClassDeclaration(mod)
		}
		p.arena.AppendToken(parent, RoleElement, SkippedToken(mod))
		return p.parseStatement(parent)
	case Static:
		// `static` followed by `function`, `(`, or `::` falls through to
		// an expression; otherwise it's a function-static variable
		// declaration.
		if p.lookahead(K(Static), AnyOf(Function, OpenParen, ColonColon)) {
			return p.parseExpressionStatement()
		}
		return p.parseFunctionStaticDeclaration()
	default:
		if p.isLabelAhead() {
			return p.parseLabeledStatement()
		}
		return p.parseExpressionStatement()
	}
}

func (p *Parser) isLabelAhead() bool {
	return p.lookahead(K(Name), K(Colon))
}

func (p *Parser) parseCompoundStatement() Handle {
	h := p.arena.New(CompoundStatement)
	p.arena.AppendToken(h, RoleOpenBrace, p.eat(OpenBrace))
	p.parseList(ContextBlockStatements, h)
	p.arena.AppendToken(h, RoleCloseBrace, p.eat(CloseBrace))
	return h
}

func (p *Parser) parseEmptyStatement() Handle {
	h := p.arena.New(EmptyStatement)
	p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
	return h
}

func (p *Parser) parseLabeledStatement() Handle {
	h := p.arena.New(LabeledStatement)
	p.arena.AppendToken(h, RoleName, p.eat(Name))
	p.arena.AppendToken(h, RoleColon, p.eat(Colon))
	return h
}

// parseInlineHTML parses an inline-HTML island: an optional leading
// script-close tag, optional HTML text, and an optional trailing
// script-open tag. All three slots may be absent.
func (p *Parser) parseInlineHTML() Handle {
	h := p.arena.New(InlineHtml)
	if tag, ok := p.eatOptional(ScriptCloseTag); ok {
		p.arena.AppendToken(h, RoleLeadingTag, tag)
	}
	if text, ok := p.eatOptional(InlineHTML); ok {
		p.arena.AppendToken(h, RoleText, text)
	}
	if tag, ok := p.eatOptional(ScriptOpenTag, ScriptOpenTagEcho); ok {
		p.arena.AppendToken(h, RoleTrailingTag, tag)
	}
	return h
}

// --- Selection statements ---

func (p *Parser) parseIfStatement() Handle {
	h := p.arena.New(IfStatement)
	p.arena.AppendToken(h, RoleKeyword, p.eat(If))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleCondition, p.parseExpression(h, true))
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))

	if colon, ok := p.eatOptional(Colon); ok {
		p.arena.AppendToken(h, RoleColon, colon)
		p.parseList(ContextIfColonBody, h)
		for p.check(ElseIf) {
			p.arena.AppendNodeWithRole(h, RoleElseIfClauses, p.parseElseIfClause())
		}
		if p.check(Else) {
			p.arena.AppendNodeWithRole(h, RoleElseClause, p.parseElseClause())
		}
		p.arena.AppendToken(h, RoleEndKeyword, p.eat(EndIf))
		p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
	} else {
		p.arena.AppendNodeWithRole(h, RoleBody, p.parseStatement(h))
		for p.check(ElseIf) {
			p.arena.AppendNodeWithRole(h, RoleElseIfClauses, p.parseElseIfClauseSingle())
		}
		if p.check(Else) {
			p.arena.AppendNodeWithRole(h, RoleElseClause, p.parseElseClauseSingle())
		}
	}
	return h
}

func (p *Parser) parseElseIfClause() Handle {
	h := p.arena.New(ElseIfClause)
	p.arena.AppendToken(h, RoleKeyword, p.eat(ElseIf))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleCondition, p.parseExpression(h, true))
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	p.arena.AppendToken(h, RoleColon, p.eat(Colon))
	p.parseList(ContextIfColonBody, h)
	return h
}

func (p *Parser) parseElseClause() Handle {
	h := p.arena.New(ElseClause)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Else))
	p.arena.AppendToken(h, RoleColon, p.eat(Colon))
	p.parseList(ContextIfColonBody, h)
	return h
}

func (p *Parser) parseElseIfClauseSingle() Handle {
	h := p.arena.New(ElseIfClause)
	p.arena.AppendToken(h, RoleKeyword, p.eat(ElseIf))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleCondition, p.parseExpression(h, true))
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	p.arena.AppendNodeWithRole(h, RoleBody, p.parseStatement(h))
	return h
}

func (p *Parser) parseElseClauseSingle() Handle {
	h := p.arena.New(ElseClause)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Else))
	p.arena.AppendNodeWithRole(h, RoleBody, p.parseStatement(h))
	return h
}

func (p *Parser) parseSwitchStatement() Handle {
	h := p.arena.New(SwitchStatement)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Switch))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleCondition, p.parseExpression(h, true))
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))

	usesBrace := p.check(OpenBrace)
	if usesBrace {
		p.arena.AppendToken(h, RoleOpenBrace, p.eat(OpenBrace))
	} else {
		p.arena.AppendToken(h, RoleColon, p.eat(Colon))
	}
	p.parseList(ContextSwitchCases, h)
	if usesBrace {
		p.arena.AppendToken(h, RoleCloseBrace, p.eat(CloseBrace))
	} else {
		p.arena.AppendToken(h, RoleEndKeyword, p.eat(EndSwitch))
		p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
	}
	return h
}

func (p *Parser) parseSwitchCase() Handle {
	if p.check(Default) {
		h := p.arena.New(DefaultClause)
		p.arena.AppendToken(h, RoleKeyword, p.eat(Default))
		if c, ok := p.eatOptional(Colon); ok {
			p.arena.AppendToken(h, RoleColon, c)
		} else {
			// `default;` is tolerated in place of `default:`.
			p.arena.AppendToken(h, RoleColon, p.eat(Semicolon))
		}
		p.parseList(ContextCaseStatements, h)
		return h
	}
	h := p.arena.New(CaseClause)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Case))
	p.arena.AppendNodeWithRole(h, RoleExpression, p.parseExpression(h, true))
	if c, ok := p.eatOptional(Colon); ok {
		p.arena.AppendToken(h, RoleColon, c)
	} else {
		p.arena.AppendToken(h, RoleColon, p.eat(Semicolon))
	}
	p.parseList(ContextCaseStatements, h)
	return h
}

// --- Iteration statements ---

func (p *Parser) parseWhileStatement() Handle {
	h := p.arena.New(WhileStatement)
	p.arena.AppendToken(h, RoleKeyword, p.eat(While))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleCondition, p.parseExpression(h, true))
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	p.parseColonOrSingleBody(h, ContextWhileColonBody, EndWhile)
	return h
}

func (p *Parser) parseDoStatement() Handle {
	h := p.arena.New(DoStatement)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Do))
	p.arena.AppendNodeWithRole(h, RoleBody, p.parseStatement(h))
	p.arena.AppendToken(h, RoleEndKeyword, p.eat(While))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleCondition, p.parseExpression(h, true))
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
	return h
}

func (p *Parser) parseForStatement() Handle {
	h := p.arena.New(ForStatement)
	p.arena.AppendToken(h, RoleKeyword, p.eat(For))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleInit, p.parseDelimitedExpressionList(Semicolon))
	p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
	p.arena.AppendNodeWithRole(h, RoleCondition, p.parseDelimitedExpressionList(Semicolon))
	p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
	p.arena.AppendNodeWithRole(h, RoleStep, p.parseDelimitedExpressionList(CloseParen))
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	p.parseColonOrSingleBody(h, ContextForColonBody, EndFor)
	return h
}

func (p *Parser) parseForeachStatement() Handle {
	h := p.arena.New(ForeachStatement)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Foreach))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleExpression, p.parseExpression(h, true))
	p.arena.AppendToken(h, RoleKeyword, p.eat(As))
	if amp, ok := p.eatOptional(Ampersand); ok {
		p.arena.AppendToken(h, RoleByRef, amp)
	}
	key := p.parseExpression(h, true)
	if fatArrow, ok := p.eatOptional(FatArrow); ok {
		p.arena.AppendNodeWithRole(h, RoleLeft, key)
		p.arena.AppendToken(h, RoleOperator, fatArrow)
		if amp, ok := p.eatOptional(Ampersand); ok {
			p.arena.AppendToken(h, RoleByRef, amp)
		}
		p.arena.AppendNodeWithRole(h, RoleRight, p.parseExpression(h, true))
	} else {
		p.arena.AppendNodeWithRole(h, RoleRight, key)
	}
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	p.parseColonOrSingleBody(h, ContextForeachColonBody, EndForeach)
	return h
}

// parseColonOrSingleBody implements the two body forms shared by
// while/for/foreach/declare: a single statement, or a colon-delimited body
// terminated by the given endKeyword plus a semicolon.
func (p *Parser) parseColonOrSingleBody(h Handle, colonBody ListContext, endKeyword TokenKind) {
	if colon, ok := p.eatOptional(Colon); ok {
		p.arena.AppendToken(h, RoleColon, colon)
		p.parseList(colonBody, h)
		p.arena.AppendToken(h, RoleEndKeyword, p.eat(endKeyword))
		p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
		return
	}
	p.arena.AppendNodeWithRole(h, RoleBody, p.parseStatement(h))
}

// parseDelimitedExpressionList parses a comma-delimited list of expressions
// up to (not including) stop, used by the for-statement clauses (any of the
// three may be empty).
func (p *Parser) parseDelimitedExpressionList(stop TokenKind) Handle {
	h := p.arena.New(DelimitedList)
	for !p.check(stop) && !p.check(EndOfFile) && !p.check(Semicolon) {
		p.arena.AppendNodeWithRole(h, RoleElement, p.parseExpression(h, true))
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(h, RoleDelimiter, comma)
			continue
		}
		break
	}
	return h
}

// --- Jump statements ---

func (p *Parser) parseGotoStatement() Handle {
	h := p.arena.New(GotoStatement)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Goto))
	p.arena.AppendToken(h, RoleName, p.eat(Name))
	p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
	return h
}

func (p *Parser) parseContinueBreakStatement(kind NodeKind) Handle {
	h := p.arena.New(kind)
	keyword := Continue
	if kind == BreakStatement {
		keyword = Break
	}
	p.arena.AppendToken(h, RoleKeyword, p.eat(keyword))
	if p.check(IntegerLiteral) {
		p.arena.AppendToken(h, RoleExpression, p.advance())
	}
	p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
	return h
}

func (p *Parser) parseReturnStatement() Handle {
	h := p.arena.New(ReturnStatement)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Return))
	if !p.check(Semicolon) && !p.check(ScriptCloseTag) && !p.check(EndOfFile) {
		p.arena.AppendNodeWithRole(h, RoleExpression, p.parseExpression(h, false))
	}
	p.eatStatementTerminator(h)
	return h
}

func (p *Parser) parseThrowStatement() Handle {
	h := p.arena.New(ThrowStatement)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Throw))
	p.arena.AppendNodeWithRole(h, RoleExpression, p.parseExpression(h, true))
	p.eatStatementTerminator(h)
	return h
}

// --- Try/catch/finally ---

func (p *Parser) parseTryStatement() Handle {
	h := p.arena.New(TryStatement)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Try))
	p.arena.AppendNodeWithRole(h, RoleBody, p.parseCompoundStatement())
	for p.check(Catch) {
		p.arena.AppendNodeWithRole(h, RoleCatchClauses, p.parseCatchClause())
	}
	if p.check(Finally) {
		p.arena.AppendNodeWithRole(h, RoleFinallyClause, p.parseFinallyClause())
	}
	return h
}

func (p *Parser) parseCatchClause() Handle {
	h := p.arena.New(CatchClause)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Catch))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleType, p.parseQualifiedName())
	for p.check(Pipe) {
		p.arena.AppendToken(h, RoleDelimiter, p.advance())
		p.arena.AppendNodeWithRole(h, RoleType, p.parseQualifiedName())
	}
	if p.check(VariableName) {
		p.arena.AppendToken(h, RoleName, p.advance())
	}
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))
	p.arena.AppendNodeWithRole(h, RoleBody, p.parseCompoundStatement())
	return h
}

func (p *Parser) parseFinallyClause() Handle {
	h := p.arena.New(FinallyClause)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Finally))
	p.arena.AppendNodeWithRole(h, RoleBody, p.parseCompoundStatement())
	return h
}

// --- declare ---

func (p *Parser) parseDeclareStatement() Handle {
	h := p.arena.New(DeclareStatement)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Declare))
	p.arena.AppendToken(h, RoleOpenParen, p.eat(OpenParen))
	p.arena.AppendNodeWithRole(h, RoleDirectives, p.parseDeclareDirectiveList())
	p.arena.AppendToken(h, RoleCloseParen, p.eat(CloseParen))

	if p.check(Semicolon) {
		p.arena.AppendToken(h, RoleSemicolon, p.advance())
	} else {
		p.parseColonOrSingleBody(h, ContextDeclareColonBody, EndDeclare)
	}
	return h
}

func (p *Parser) parseDeclareDirectiveList() Handle {
	h := p.arena.New(DelimitedList)
	for !p.check(CloseParen) && !p.check(EndOfFile) && !p.check(Semicolon) {
		dir := p.arena.New(DeclareDirective)
		p.arena.AppendToken(dir, RoleName, p.eat(Name))
		p.arena.AppendToken(dir, RoleOperator, p.eat(Equals))
		p.arena.AppendNodeWithRole(dir, RoleExpression, p.parseExpression(dir, true))
		p.arena.AppendNodeWithRole(h, RoleElement, dir)
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(h, RoleDelimiter, comma)
			continue
		}
		break
	}
	return h
}

// --- global / const ---

func (p *Parser) parseGlobalStatement() Handle {
	h := p.arena.New(GlobalStatement)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Global))
	for {
		p.arena.AppendToken(h, RoleElement, p.eat(VariableName))
		if comma, ok := p.eatOptional(Comma); ok {
			p.arena.AppendToken(h, RoleDelimiter, comma)
			continue
		}
		break
	}
	p.eatStatementTerminator(h)
	return h
}

func (p *Parser) parseConstDeclaration() Handle {
	h := p.arena.New(ConstDeclaration)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Const))
	for {
		el := p.arena.New(ConstElement)
		p.arena.AppendToken(el, RoleName, p.eat(Name))
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

func (p *Parser) parseFunctionStaticDeclaration() Handle {
	h := p.arena.New(FunctionStaticDeclaration)
	p.arena.AppendToken(h, RoleKeyword, p.eat(Static))
	for {
		el := p.arena.New(StaticVariableDeclarator)
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

// --- expression statement ---

func (p *Parser) parseExpressionStatement() Handle {
	h := p.arena.New(ExpressionStatement)
	p.arena.AppendNodeWithRole(h, RoleExpression, p.parseExpression(h, true))
	p.eatStatementTerminator(h)
	return h
}

// eatStatementTerminator eats the statement's trailing semicolon — unless
// the current token is a script-close tag, which satisfies the semicolon
// position and is left alone for the next statement iteration to parse as
// an inline-HTML island.
func (p *Parser) eatStatementTerminator(h Handle) {
	if p.check(ScriptCloseTag) {
		return
	}
	p.arena.AppendToken(h, RoleSemicolon, p.eat(Semicolon))
}
