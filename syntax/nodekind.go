package syntax

// NodeKind tags an internal tree vertex — one grammar production (source
// file, statements, expressions, clauses). See tokenkind.go for why this is
// a separate enumeration from TokenKind rather than one unified kind space.
type NodeKind uint8

const (
	_ NodeKind = iota // zero value is reserved, never assigned to a real node

	SourceFile
	InlineHtml // leading/trailing script tags + HTML text, any slot may be empty

	// --- Statements ---
	CompoundStatement // { statement* }
	ExpressionStatement
	EmptyStatement
	LabeledStatement
	MissingStatement // a statement-position slot that stayed empty

	IfStatement
	ElseIfClause
	ElseClause

	SwitchStatement
	CaseClause
	DefaultClause

	WhileStatement
	DoStatement
	ForStatement
	ForeachStatement

	GotoStatement
	ContinueStatement
	BreakStatement
	ReturnStatement
	ThrowStatement

	TryStatement
	CatchClause
	FinallyClause

	DeclareStatement
	DeclareDirective

	GlobalStatement
	ConstDeclaration
	ConstElement

	NamespaceDefinition
	NamespaceUseDeclaration
	NamespaceUseClause
	NamespaceUseGroupClause

	FunctionStaticDeclaration
	StaticVariableDeclarator

	// --- Declarations ---
	ClassDeclaration
	InterfaceDeclaration
	TraitDeclaration
	ClassBaseClause
	ClassInterfaceClause
	InterfaceBaseClause
	ClassMembers

	MethodDeclaration
	PropertyDeclaration
	PropertyElement
	ClassConstDeclaration
	TraitUseClause
	TraitSelectInsteadOfClause
	TraitAsClause
	MissingMemberDeclaration

	FunctionDeclaration
	ParameterList
	Parameter
	AnonymousFunctionUseClause
	AnonymousFunctionCreationExpression

	QualifiedName

	// --- Expressions ---
	BinaryExpression
	UnaryOpExpression
	PrefixUpdateExpression
	PostfixUpdateExpression
	CastExpression
	ObjectCreationExpression
	CloneExpression
	ErrorControlExpression
	TernaryExpression
	AssignmentExpression

	Variable

	ArrayCreationExpression
	ArrayElement

	SubscriptExpression
	MemberAccessExpression
	ScopedPropertyAccessExpression
	CallExpression
	ArgumentList

	ParenthesizedExpression
	ScriptInclusionExpression

	EchoExpression
	ListIntrinsicExpression
	EmptyIntrinsicExpression
	IssetIntrinsicExpression
	ExitIntrinsicExpression
	PrintExpression
	EvalIntrinsicExpression
	UnsetStatement

	TemplateExpression
	QuotedStringExpression

	Literal // a bare numeric/string/boolean/null literal leaf
	MissingExpression // an expression slot that stayed empty

	DelimitedList // generic comma/semicolon-delimited element list
)

var nodeKindNames = map[NodeKind]string{
	SourceFile:                          "source file",
	InlineHtml:                          "inline HTML",
	CompoundStatement:                   "compound statement",
	ExpressionStatement:                 "expression statement",
	EmptyStatement:                      "empty statement",
	LabeledStatement:                    "labeled statement",
	MissingStatement:                    "missing statement",
	IfStatement:                         "if statement",
	ElseIfClause:                        "elseif clause",
	ElseClause:                          "else clause",
	SwitchStatement:                     "switch statement",
	CaseClause:                          "case clause",
	DefaultClause:                       "default clause",
	WhileStatement:                      "while statement",
	DoStatement:                         "do-while statement",
	ForStatement:                        "for statement",
	ForeachStatement:                    "foreach statement",
	GotoStatement:                       "goto statement",
	ContinueStatement:                   "continue statement",
	BreakStatement:                      "break statement",
	ReturnStatement:                     "return statement",
	ThrowStatement:                      "throw statement",
	TryStatement:                        "try statement",
	CatchClause:                         "catch clause",
	FinallyClause:                       "finally clause",
	DeclareStatement:                    "declare statement",
	DeclareDirective:                    "declare directive",
	GlobalStatement:                     "global statement",
	ConstDeclaration:                    "const declaration",
	ConstElement:                        "const element",
	NamespaceDefinition:                 "namespace definition",
	NamespaceUseDeclaration:             "namespace use declaration",
	NamespaceUseClause:                  "namespace use clause",
	NamespaceUseGroupClause:             "namespace use group clause",
	FunctionStaticDeclaration:           "function-static declaration",
	StaticVariableDeclarator:            "static variable declarator",
	ClassDeclaration:                    "class declaration",
	InterfaceDeclaration:                "interface declaration",
	TraitDeclaration:                    "trait declaration",
	ClassBaseClause:                     "extends clause",
	ClassInterfaceClause:                "implements clause",
	InterfaceBaseClause:                 "interface extends clause",
	ClassMembers:                        "class member list",
	MethodDeclaration:                   "method declaration",
	PropertyDeclaration:                 "property declaration",
	PropertyElement:                     "property element",
	ClassConstDeclaration:               "class const declaration",
	TraitUseClause:                      "trait use clause",
	TraitSelectInsteadOfClause:          "insteadof clause",
	TraitAsClause:                       "trait as clause",
	MissingMemberDeclaration:            "missing member declaration",
	FunctionDeclaration:                 "function declaration",
	ParameterList:                       "parameter list",
	Parameter:                           "parameter",
	AnonymousFunctionUseClause:          "anonymous function use clause",
	AnonymousFunctionCreationExpression: "anonymous function",
	QualifiedName:                       "qualified name",
	BinaryExpression:                    "binary expression",
	UnaryOpExpression:                   "unary expression",
	PrefixUpdateExpression:              "prefix increment/decrement",
	PostfixUpdateExpression:             "postfix increment/decrement",
	CastExpression:                      "cast expression",
	ObjectCreationExpression:            "object creation expression",
	CloneExpression:                     "clone expression",
	ErrorControlExpression:              "error control expression",
	TernaryExpression:                   "ternary expression",
	AssignmentExpression:                "assignment expression",
	Variable:                            "variable",
	ArrayCreationExpression:             "array creation expression",
	ArrayElement:                        "array element",
	SubscriptExpression:                 "subscript expression",
	MemberAccessExpression:              "member access expression",
	ScopedPropertyAccessExpression:      "scoped property access expression",
	CallExpression:                      "call expression",
	ArgumentList:                        "argument list",
	ParenthesizedExpression:             "parenthesized expression",
	ScriptInclusionExpression:           "script inclusion expression",
	EchoExpression:                      "echo expression",
	ListIntrinsicExpression:             "list expression",
	EmptyIntrinsicExpression:            "empty expression",
	IssetIntrinsicExpression:            "isset expression",
	ExitIntrinsicExpression:             "exit expression",
	PrintExpression:                     "print expression",
	EvalIntrinsicExpression:             "eval expression",
	UnsetStatement:                      "unset statement",
	TemplateExpression:                  "template string",
	QuotedStringExpression:              "quoted string",
	Literal:                             "literal",
	MissingExpression:                   "missing expression",
	DelimitedList:                       "delimited list",
}

// Name returns a human-readable label, used for debug printing only.
func (k NodeKind) Name() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "unknown node"
}

func (k NodeKind) String() string { return k.Name() }
