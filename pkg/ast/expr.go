package ast

// Expression is the contract shared by every expression variant.
type Expression interface {
	// Type returns the variant tag. For operator nodes the tag is the
	// operator itself.
	Type() ExprType

	// ReturnType is the value type the expression evaluates to, when the
	// front end can tell. TypeInvalid means unresolved.
	ReturnType() TypeID
	SetReturnType(TypeID)

	// Alias is the output name given in the query text, if any.
	Alias() string
	SetAlias(string)

	// Children returns the owned child expressions in order. Callers must
	// not mutate the returned slice.
	Children() []Expression

	// Copy returns a deep copy that shares no mutable state with the
	// receiver. Aliases and return types carry over at every depth.
	Copy() Expression

	// CopyWithChildren returns a copy of the node over a replacement child
	// list, which the copy adopts. A count that does not match the
	// variant's arity fails with *ArityError; it never truncates.
	CopyWithChildren(children []Expression) (Expression, error)

	// Hash returns a structural hash consistent with Equals.
	Hash() uint64

	// Equals reports structural equality over tag, return type, salient
	// fields, and children. Aliases do not participate.
	Equals(other Expression) bool

	exprNode()
}

// baseExpr carries the state every variant shares.
type baseExpr struct {
	retType TypeID
	alias   string
}

func (b *baseExpr) ReturnType() TypeID     { return b.retType }
func (b *baseExpr) SetReturnType(t TypeID) { b.retType = t }
func (b *baseExpr) Alias() string          { return b.alias }
func (b *baseExpr) SetAlias(a string)      { b.alias = a }
func (b *baseExpr) exprNode()              {}

func (b *baseExpr) sameBase(o *baseExpr) bool { return b.retType == o.retType }

// Literal is a typed constant.
type Literal struct {
	baseExpr
	Value Value
}

// NewLiteral wraps a constant; the return type follows the value's type.
func NewLiteral(v Value) *Literal {
	return &Literal{baseExpr: baseExpr{retType: v.Type}, Value: v}
}

func (e *Literal) Type() ExprType         { return ExprConstant }
func (e *Literal) Children() []Expression { return nil }

// ColumnRef names a column, optionally qualified by a table name or alias.
type ColumnRef struct {
	baseExpr
	Table  string
	Column string
}

func (e *ColumnRef) Type() ExprType         { return ExprColumn }
func (e *ColumnRef) Children() []Expression { return nil }

// ParamRef is a prepared-statement placeholder. Index is zero based; the
// grammar engine numbers parameters from one.
type ParamRef struct {
	baseExpr
	Index int
}

func (e *ParamRef) Type() ExprType         { return ExprParameter }
func (e *ParamRef) Children() []Expression { return nil }

// StarExpr is the bare * in a projection or inside count(*).
type StarExpr struct {
	baseExpr
}

func (e *StarExpr) Type() ExprType         { return ExprStar }
func (e *StarExpr) Children() []Expression { return nil }

// DefaultExpr stands for the DEFAULT keyword in an INSERT value list.
type DefaultExpr struct {
	baseExpr
}

func (e *DefaultExpr) Type() ExprType         { return ExprDefault }
func (e *DefaultExpr) Children() []Expression { return nil }

// UnaryExpr applies a single-operand operator. Op must be one of the
// ExprType values for which IsUnaryOp holds.
type UnaryExpr struct {
	baseExpr
	Op      ExprType
	Operand Expression
}

func NewUnary(op ExprType, operand Expression) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand}
}

func (e *UnaryExpr) Type() ExprType         { return e.Op }
func (e *UnaryExpr) Children() []Expression { return []Expression{e.Operand} }

// BinaryExpr applies a two-operand operator: arithmetic, comparison, or
// boolean connective. Connectives with more than two inputs fold into a
// left-associative chain of these.
type BinaryExpr struct {
	baseExpr
	Op    ExprType
	Left  Expression
	Right Expression
}

func NewBinary(op ExprType, left, right Expression) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right}
}

func (e *BinaryExpr) Type() ExprType         { return e.Op }
func (e *BinaryExpr) Children() []Expression { return []Expression{e.Left, e.Right} }

// CastExpr converts its child to the target type. The target is the
// node's return type; there is no separate field to drift from it.
type CastExpr struct {
	baseExpr
	Child Expression
}

func NewCast(child Expression, to TypeID) *CastExpr {
	return &CastExpr{baseExpr: baseExpr{retType: to}, Child: child}
}

func (e *CastExpr) Type() ExprType         { return ExprCast }
func (e *CastExpr) Children() []Expression { return []Expression{e.Child} }

// FuncCall invokes a named function over its arguments. Aggregate marks
// the aggregate builtins as classified by the transform; Distinct mirrors
// DISTINCT inside the call.
type FuncCall struct {
	baseExpr
	Name      string
	Distinct  bool
	Aggregate bool
	Args      []Expression
}

func (e *FuncCall) Type() ExprType         { return ExprFunction }
func (e *FuncCall) Children() []Expression { return e.Args }

// WhenClause pairs one WHEN condition with its THEN result.
type WhenClause struct {
	When Expression
	Then Expression
}

// CaseExpr is a searched or simple CASE. The operand, whens, and else
// branch are held aside from Children, so the variant has arity zero and
// CopyWithChildren rejects any replacement list.
type CaseExpr struct {
	baseExpr
	Operand Expression
	Whens   []WhenClause
	Else    Expression
}

func (e *CaseExpr) Type() ExprType         { return ExprCase }
func (e *CaseExpr) Children() []Expression { return nil }

// SubqueryExpr links a nested SELECT into expression position. The
// statement is owned by the expression; predicates inside it still live
// in the enclosing ParseResult.
type SubqueryExpr struct {
	baseExpr
	Select *SelectStatement
}

func (e *SubqueryExpr) Type() ExprType         { return ExprSubquery }
func (e *SubqueryExpr) Children() []Expression { return nil }

var (
	_ Expression = (*Literal)(nil)
	_ Expression = (*ColumnRef)(nil)
	_ Expression = (*ParamRef)(nil)
	_ Expression = (*StarExpr)(nil)
	_ Expression = (*DefaultExpr)(nil)
	_ Expression = (*UnaryExpr)(nil)
	_ Expression = (*BinaryExpr)(nil)
	_ Expression = (*CastExpr)(nil)
	_ Expression = (*FuncCall)(nil)
	_ Expression = (*CaseExpr)(nil)
	_ Expression = (*SubqueryExpr)(nil)
)
