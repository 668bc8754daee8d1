package syntax

// Assoc is an operator's associativity, as used by the precedence climb.
// None forbids chaining at the same level (`$a < $b < $c` stops after the
// first comparison rather than re-associating).
type Assoc uint8

const (
	AssocLeft Assoc = iota
	AssocRight
	AssocNone
)

type operatorInfo struct {
	prec  int
	assoc Assoc
}

// operatorTable implements the precedence table. Ternary (`?`)
// and the assignment-tier operators (including `??`) are listed here too so
// the climb's single dispatch can find them, even though they are handled
// by dedicated branches rather than the generic binary-expression wrap.
var operatorTable = map[TokenKind]operatorInfo{
	LogicalOr:  {6, AssocLeft},
	LogicalXor: {7, AssocLeft},
	LogicalAnd: {8, AssocLeft},

	Equals:           {9, AssocRight},
	PlusEquals:       {9, AssocRight},
	MinusEquals:      {9, AssocRight},
	StarEquals:       {9, AssocRight},
	SlashEquals:      {9, AssocRight},
	PercentEquals:    {9, AssocRight},
	DotEquals:        {9, AssocRight},
	AmpEquals:        {9, AssocRight},
	PipeEquals:       {9, AssocRight},
	CaretEquals:      {9, AssocRight},
	ShiftLeftEquals:  {9, AssocRight},
	ShiftRightEquals: {9, AssocRight},
	StarStarEquals:   {9, AssocRight},
	CoalesceEquals:   {9, AssocRight},
	Coalesce:         {9, AssocRight},

	Question: {10, AssocLeft},

	PipePipe:  {12, AssocLeft},
	AmpAmp:    {13, AssocLeft},
	Pipe:      {14, AssocLeft},
	Caret:     {15, AssocLeft},
	Ampersand: {16, AssocLeft},

	EqualsEquals:       {17, AssocNone},
	BangEquals:         {17, AssocNone},
	AngleBrackets:      {17, AssocNone},
	EqualsEqualsEquals: {17, AssocNone},
	BangEqualsEquals:   {17, AssocNone},

	LessThan:      {18, AssocNone},
	GreaterThan:   {18, AssocNone},
	LessEquals:    {18, AssocNone},
	GreaterEquals: {18, AssocNone},
	Spaceship:     {18, AssocNone},

	ShiftLeft:  {19, AssocLeft},
	ShiftRight: {19, AssocLeft},

	Plus:  {20, AssocLeft},
	Minus: {20, AssocLeft},
	Dot:   {20, AssocLeft},

	Asterisk: {21, AssocLeft},
	Slash:    {21, AssocLeft},
	Percent:  {21, AssocLeft},

	InstanceOf: {22, AssocNone},

	StarStar: {23, AssocRight},
}

// lookupOperator reports whether k is a binary/ternary/assignment operator
// known to the climb, and its (precedence, associativity) if so.
func lookupOperator(k TokenKind) (operatorInfo, bool) {
	info, ok := operatorTable[k]
	return info, ok
}

// isAssignmentTier reports whether k belongs to the precedence-9,
// right-associative assignment tier (plain `=`, compound assignments, or
// `??`) — these share a precedence level with `=` but are parsed as
// AssignmentExpression rather than a generic BinaryExpression.
func isAssignmentTier(k TokenKind) bool {
	return k.IsAssignmentOperator() || k == Coalesce
}
