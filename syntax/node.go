package syntax

import "strings"

// Handle is a stable reference to a node stored in an Arena. Nodes are kept
// in an arena keyed by integer handles — parent is a handle, child slots
// are handles — which avoids pointer cycles between parents and children
// and keeps node identity stable under tree surgery (the postfix chain
// re-parents an already-built expression under a fresh wrapper).
type Handle int32

// NoHandle represents the absence of a node (a root's parent, or a not-yet
// attached child).
const NoHandle Handle = -1

// Role names a node's slot within its parent (ifKeyword, openParen,
// expression, ...). Rather than one Go struct per node kind to carry these
// as distinct typed fields, each child is tagged with a shared Role value;
// the producer function for a given NodeKind is the single source of truth
// for which roles it uses and in what order.
type Role uint8

const (
	RoleNone Role = iota // delimited-list / generic element with no distinguished role

	RoleKeyword    // e.g. ifKeyword, whileKeyword, functionKeyword
	RoleEndKeyword // e.g. endifKeyword, endwhileKeyword
	RoleOpenParen
	RoleCloseParen
	RoleOpenBrace
	RoleCloseBrace
	RoleOpenBracket
	RoleCloseBracket
	RoleSemicolon
	RoleColon
	RoleComma

	RoleCondition  // the parenthesized test expression
	RoleExpression // a single expression slot
	RoleOperator
	RoleOperand // unary operand, cast operand, etc.
	RoleLeft    // binary-expression left operand
	RoleRight   // binary-expression right operand / ternary else-branch
	RoleMiddle  // ternary then-branch (may be absent: short ternary)
	RoleInit    // for-statement initializer expression list
	RoleStep    // for-statement increment expression list

	RoleName      // identifier / qualified-name slot
	RoleAlias     // `as` target
	RoleModifiers // modifier-keyword list (public, static, ...)
	RoleType      // parameter/return type
	RoleDefault   // parameter default value
	RoleByRef     // `&` marker
	RoleVariadic  // `...` marker

	RoleBase       // extends target
	RoleInterfaces // implements list
	RoleMembers    // class/interface/trait member list
	RoleParameters
	RoleArguments
	RoleUses // anonymous-function `use (...)` list or trait-use list

	RoleStatements // compound-statement / body list
	RoleBody       // single-statement body
	RoleElseIfClauses
	RoleElseClause
	RoleCatchClauses
	RoleFinallyClause
	RoleCases // switch case list
	RoleDirectives

	RoleElement // generic list element (DelimitedList)
	RoleDelimiter

	RoleLeadingTag  // InlineHtml: script-close tag before the HTML run
	RoleTrailingTag // InlineHtml: script-open tag after the HTML run
	RoleText        // InlineHtml text, or a template/quoted-string literal fragment
)

var roleNames = map[Role]string{
	RoleNone: "", RoleKeyword: "keyword", RoleEndKeyword: "endKeyword",
	RoleOpenParen: "openParen", RoleCloseParen: "closeParen",
	RoleOpenBrace: "openBrace", RoleCloseBrace: "closeBrace",
	RoleOpenBracket: "openBracket", RoleCloseBracket: "closeBracket",
	RoleSemicolon: "semicolon", RoleColon: "colon", RoleComma: "comma",
	RoleCondition: "condition", RoleExpression: "expression", RoleOperator: "operator",
	RoleOperand: "operand", RoleLeft: "left", RoleRight: "right", RoleMiddle: "middle",
	RoleInit: "init", RoleStep: "step",
	RoleName: "name", RoleAlias: "alias", RoleModifiers: "modifiers", RoleType: "type",
	RoleDefault: "default", RoleByRef: "byRef", RoleVariadic: "variadic",
	RoleBase: "base", RoleInterfaces: "interfaces", RoleMembers: "members",
	RoleParameters: "parameters", RoleArguments: "arguments", RoleUses: "uses",
	RoleStatements: "statements", RoleBody: "body", RoleElseIfClauses: "elseIfClauses",
	RoleElseClause: "elseClause", RoleCatchClauses: "catchClauses",
	RoleFinallyClause: "finallyClause", RoleCases: "cases", RoleDirectives: "directives",
	RoleElement: "element", RoleDelimiter: "delimiter",
	RoleLeadingTag: "leadingTag", RoleTrailingTag: "trailingTag", RoleText: "text",
}

// String names a Role, used by tree-dump tooling (internal/treedump) and
// debug printing.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown role"
}

// Child is either a Token leaf or a reference to another arena node. Some
// nodes hold ordered mixtures of both (template strings, delimited lists
// interleaving elements and delimiters), so the child list is heterogeneous
// by construction.
type Child struct {
	IsToken bool
	Token   Token
	Node    Handle
}

// TokenChild builds a leaf child.
func TokenChild(t Token) Child { return Child{IsToken: true, Token: t} }

// NodeChild builds a sub-node child.
func NodeChild(h Handle) Child { return Child{IsToken: false, Node: h} }

type roleChild struct {
	role  Role
	child Child
}

type nodeRecord struct {
	kind     NodeKind
	parent   Handle
	children []roleChild
}

// Arena owns every Node constructed during one ParseSourceFile call. No
// node is ever freed mid-parse; the whole tree is released by dropping the
// arena when the caller is done with it.
type Arena struct {
	nodes []nodeRecord
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{nodes: make([]nodeRecord, 0, 256)}
}

// New allocates a fresh, childless node of the given kind with no parent
// and returns its handle. Children are attached afterward with AppendToken,
// AppendNode or AppendNodeWithRole.
func (a *Arena) New(kind NodeKind) Handle {
	a.nodes = append(a.nodes, nodeRecord{kind: kind, parent: NoHandle})
	return Handle(len(a.nodes) - 1)
}

func (a *Arena) rec(h Handle) *nodeRecord {
	return &a.nodes[h]
}

// Kind returns h's node kind.
func (a *Arena) Kind(h Handle) NodeKind { return a.rec(h).kind }

// Parent returns h's parent, or NoHandle at the root.
func (a *Arena) Parent(h Handle) Handle { return a.rec(h).parent }

// Children returns h's children in order.
func (a *Arena) Children(h Handle) []Child {
	rc := a.rec(h).children
	out := make([]Child, len(rc))
	for i, c := range rc {
		out[i] = c.child
	}
	return out
}

// AppendToken appends a token leaf under parent with the given role. Parent
// consistency holds trivially for token children — a Token carries no
// parent pointer of its own; only Nodes do.
func (a *Arena) AppendToken(parent Handle, role Role, t Token) {
	rec := a.rec(parent)
	rec.children = append(rec.children, roleChild{role: role, child: TokenChild(t)})
}

// AppendNode appends an already-allocated, unattached child node under
// parent, setting the child's parent back-pointer at append time. Panics if
// child already has a parent: every append site either allocates a fresh
// node right before appending it, or goes through Reparent for the one case
// (postfix chains) where an already-built node moves under a new wrapper.
func (a *Arena) AppendNode(parent, child Handle) {
	crec := a.rec(child)
	if crec.parent != NoHandle {
		panic("syntax: AppendNode: child already has a parent; use Reparent")
	}
	crec.parent = parent
	a.rec(parent).children = append(a.rec(parent).children, roleChild{role: RoleNone, child: NodeChild(child)})
}

// AppendNodeWithRole is AppendNode with an explicit slot role.
func (a *Arena) AppendNodeWithRole(parent Handle, role Role, child Handle) {
	crec := a.rec(child)
	if crec.parent != NoHandle {
		panic("syntax: AppendNodeWithRole: child already has a parent; use Reparent")
	}
	crec.parent = parent
	a.rec(parent).children = append(a.rec(parent).children, roleChild{role: role, child: NodeChild(child)})
}

// RoleChild pairs a child with the role it was attached under, exposed for
// tooling that needs a node's full structure rather than just its bare
// children (internal/treedump's tree serialization).
type RoleChild struct {
	Role  Role
	Child Child
}

// ChildrenWithRoles returns h's children paired with their roles, in order.
func (a *Arena) ChildrenWithRoles(h Handle) []RoleChild {
	rc := a.rec(h).children
	out := make([]RoleChild, len(rc))
	for i, c := range rc {
		out[i] = RoleChild{Role: c.role, Child: c.child}
	}
	return out
}

// Reparent makes child the first child of wrapper under the given role, and
// sets wrapper as child's parent. Used by the postfix-chain producers
// (call/subscript/member-access) to wrap a previously-built expression: the
// expression becomes the left child of the new wrapper, and the wrapper
// takes the expression's place wherever it was headed. wrapper must not yet
// be attached to anything itself, and child must not have a parent yet
// (Reparent panics otherwise): no caller has appended child to any list at
// the point it asks to wrap it.
func (a *Arena) Reparent(child, wrapper Handle, role Role) {
	crec := a.rec(child)
	if crec.parent != NoHandle {
		panic("syntax: Reparent: child already committed to a parent")
	}
	crec.parent = wrapper
	wrec := a.rec(wrapper)
	wrec.children = append([]roleChild{{role: role, child: NodeChild(child)}}, wrec.children...)
}

// Detach removes h from its parent's child list and clears its parent
// pointer so it can be attached again. Used by the exponent/unary
// unwrap-and-rewrap maneuver (`**` outranks a unary prefix), which pulls an
// already-built UnaryOpExpression's operand back out to rebuild the tree
// the other way round; the abandoned wrapper must not keep a stale entry,
// or the detached node would appear under two parents at once.
func (a *Arena) Detach(h Handle) {
	rec := a.rec(h)
	if rec.parent != NoHandle {
		prec := a.rec(rec.parent)
		for i, rc := range prec.children {
			if !rc.child.IsToken && rc.child.Node == h {
				prec.children = append(prec.children[:i], prec.children[i+1:]...)
				break
			}
		}
	}
	rec.parent = NoHandle
}

// ChildByRole returns the first child tagged with role, if any.
func (a *Arena) ChildByRole(h Handle, role Role) (Child, bool) {
	for _, rc := range a.rec(h).children {
		if rc.role == role {
			return rc.child, true
		}
	}
	return Child{}, false
}

// ChildrenByRole returns every child tagged with role, in order (used for
// list-valued slots like RoleElseIfClauses or RoleStatements).
func (a *Arena) ChildrenByRole(h Handle, role Role) []Child {
	var out []Child
	for _, rc := range a.rec(h).children {
		if rc.role == role {
			out = append(out, rc.child)
		}
	}
	return out
}

// Text returns the node's full source text by concatenating every leaf's
// text in pre-order.
func (a *Arena) Text(h Handle, source string) string {
	var b strings.Builder
	a.writeText(h, source, &b)
	return b.String()
}

func (a *Arena) writeText(h Handle, source string, b *strings.Builder) {
	for _, rc := range a.rec(h).children {
		if rc.child.IsToken {
			b.WriteString(rc.child.Token.FullText(source))
		} else {
			a.writeText(rc.child.Node, source, b)
		}
	}
}

// Span returns the byte range covered by h's subtree (FullStart of its
// first leaf to End of its last).
func (a *Arena) Span(h Handle) Span {
	first, ok := a.firstLeaf(h)
	if !ok {
		return Span{}
	}
	last, _ := a.lastLeaf(h)
	return Span{Start: first.FullStart, end: last.End()}
}

func (a *Arena) firstLeaf(h Handle) (Token, bool) {
	for _, rc := range a.rec(h).children {
		if rc.child.IsToken {
			return rc.child.Token, true
		}
		if t, ok := a.firstLeaf(rc.child.Node); ok {
			return t, true
		}
	}
	return Token{}, false
}

func (a *Arena) lastLeaf(h Handle) (Token, bool) {
	children := a.rec(h).children
	for i := len(children) - 1; i >= 0; i-- {
		rc := children[i]
		if rc.child.IsToken {
			return rc.child.Token, true
		}
		if t, ok := a.lastLeaf(rc.child.Node); ok {
			return t, true
		}
	}
	return Token{}, false
}
