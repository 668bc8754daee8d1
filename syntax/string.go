package syntax

// Interpolated string and heredoc parsing: a terminator-or-literal-or-
// embedded-expression cycle over the lexer's template tokens. A plain
// double-quoted run with interpolation becomes a TemplateExpression; a
// heredoc/nowdoc run (recognized by the HeredocLabel that follows the
// opener) becomes a QuotedStringExpression. The two share every production
// except that label slot.

// parseInterpolatedString consumes a TemplateStart token (optionally
// followed by a HeredocLabel) and loops collecting TemplateMiddle text,
// `$name`-led simple interpolations, and `${...}`/`{$...}` complex
// interpolations until TemplateEnd or end-of-file.
func (p *Parser) parseInterpolatedString() Handle {
	startTag := p.eat(TemplateStart)
	kind := TemplateExpression
	var label Token
	hasLabel := false
	if label, hasLabel = p.eatOptional(HeredocLabel); hasLabel {
		kind = QuotedStringExpression
	}

	h := p.arena.New(kind)
	p.arena.AppendToken(h, RoleLeadingTag, startTag)
	if hasLabel {
		p.arena.AppendToken(h, RoleName, label)
	}

	for {
		switch p.peek().Kind {
		case TemplateEnd:
			p.arena.AppendToken(h, RoleTrailingTag, p.advance())
			return h
		case EndOfFile:
			// Unterminated string: the missing close is a MissingToken,
			// and nothing already consumed is given up.
			p.arena.AppendToken(h, RoleTrailingTag, MissingToken(TemplateEnd, p.current.FullStart))
			return h
		case TemplateMiddle:
			p.arena.AppendToken(h, RoleText, p.advance())
		case VariableName:
			v := p.arena.New(Variable)
			p.arena.AppendToken(v, RoleName, p.advance())
			p.arena.AppendNodeWithRole(h, RoleElement, p.parseSimpleInterpolationTail(v))
			p.rescanTemplate()
		case DollarOpenBrace:
			p.arena.AppendToken(h, RoleOpenBrace, p.advance())
			if p.check(Name) {
				// `${name}`: the brace form of the simple variable syntax —
				// `name` here is a bare identifier, not a full expression.
				v := p.arena.New(Variable)
				p.arena.AppendToken(v, RoleName, p.advance())
				p.arena.AppendNodeWithRole(h, RoleElement, v)
			} else {
				p.arena.AppendNodeWithRole(h, RoleElement, p.parseExpression(h, true))
			}
			p.arena.AppendToken(h, RoleCloseBrace, p.eat(CloseBrace))
			p.rescanTemplate()
		case OpenBraceDollar:
			p.arena.AppendToken(h, RoleOpenBrace, p.advance())
			p.arena.AppendNodeWithRole(h, RoleElement, p.parseExpression(h, true))
			p.arena.AppendToken(h, RoleCloseBrace, p.eat(CloseBrace))
			p.rescanTemplate()
		default:
			// Nothing in the grammar can start here: skip and retry, the
			// same discipline as the list-parse driver.
			p.arena.AppendToken(h, RoleElement, SkippedToken(p.advance()))
		}
	}
}

// parseSimpleInterpolationTail parses the limited postfix PHP allows inside
// "simple syntax" interpolation: at most one `->name` member access or one
// `[index]` subscript (index is an integer literal, a bare unquoted name
// treated as a string key, or another `$variable` — never a general
// expression; that's what the `{$...}` complex form is for).
func (p *Parser) parseSimpleInterpolationTail(v Handle) Handle {
	switch p.peek().Kind {
	case Arrow:
		h := p.arena.New(MemberAccessExpression)
		p.arena.Reparent(v, h, RoleLeft)
		p.arena.AppendToken(h, RoleOperator, p.advance())
		p.arena.AppendToken(h, RoleName, p.eat(Name))
		return h
	case OpenBracket:
		h := p.arena.New(SubscriptExpression)
		p.arena.Reparent(v, h, RoleLeft)
		p.arena.AppendToken(h, RoleOpenBracket, p.advance())
		switch p.peek().Kind {
		case VariableName:
			idxVar := p.arena.New(Variable)
			p.arena.AppendToken(idxVar, RoleName, p.advance())
			p.arena.AppendNodeWithRole(h, RoleExpression, idxVar)
		case IntegerLiteral:
			idx := p.arena.New(Literal)
			p.arena.AppendToken(idx, RoleExpression, p.advance())
			p.arena.AppendNodeWithRole(h, RoleExpression, idx)
		default:
			idx := p.arena.New(Literal)
			p.arena.AppendToken(idx, RoleExpression, p.eat(Name))
			p.arena.AppendNodeWithRole(h, RoleExpression, idx)
		}
		p.arena.AppendToken(h, RoleCloseBracket, p.eat(CloseBracket))
		return h
	default:
		return v
	}
}

// rescanTemplate asks the lexer to re-derive the current token under
// template-text rules: ordinary ScanNext tokenizes as if still inside a
// normal expression, so after closing a `$name`/`${...}`/`{$...}` embedded
// expression the parser must explicitly re-resolve the window against the
// raw template text that follows.
func (p *Parser) rescanTemplate() {
	p.current = p.lexer.RescanTemplate(p.current)
}
