package ast

// ParseResult is the arena for one transform run. It owns every top-level
// statement and every expression that is referenced from more than one
// place; statements hold ExprHandle values into it instead of duplicating
// those expressions.
//
// A ParseResult is not safe for concurrent mutation. Distinct results can
// be built and read in parallel.
type ParseResult struct {
	statements  []Statement
	expressions []Expression
	stmtsTaken  bool
	exprsTaken  bool
}

func NewParseResult() *ParseResult {
	return &ParseResult{}
}

// StmtHandle is a non-owning reference to a statement slot. The zero
// value is invalid.
type StmtHandle struct {
	res   *ParseResult
	index int
}

// Valid reports whether the handle is bound to a slot.
func (h StmtHandle) Valid() bool { return h.res != nil }

// Get resolves the handle. It returns nil for an invalid handle and
// panics if ownership has been taken out of the arena.
func (h StmtHandle) Get() Statement {
	if !h.Valid() {
		return nil
	}
	if h.res.stmtsTaken {
		panic("ast: statement handle resolved after TakeStatements")
	}
	return h.res.statements[h.index]
}

// ExprHandle is a non-owning reference to an expression slot. The zero
// value is invalid and stands for an absent predicate.
type ExprHandle struct {
	res   *ParseResult
	index int
}

// Valid reports whether the handle is bound to a slot.
func (h ExprHandle) Valid() bool { return h.res != nil }

// Get resolves the handle. It returns nil for an invalid handle and
// panics if ownership has been taken out of the arena.
func (h ExprHandle) Get() Expression {
	if !h.Valid() {
		return nil
	}
	if h.res.exprsTaken {
		panic("ast: expression handle resolved after TakeExpressions")
	}
	return h.res.expressions[h.index]
}

// AddStatement takes ownership of s and returns its handle. Registration
// order is insertion order.
func (r *ParseResult) AddStatement(s Statement) StmtHandle {
	if r.stmtsTaken {
		panic("ast: AddStatement after TakeStatements")
	}
	r.statements = append(r.statements, s)
	return StmtHandle{res: r, index: len(r.statements) - 1}
}

// AddExpression takes ownership of e and returns its handle.
func (r *ParseResult) AddExpression(e Expression) ExprHandle {
	if r.exprsTaken {
		panic("ast: AddExpression after TakeExpressions")
	}
	r.expressions = append(r.expressions, e)
	return ExprHandle{res: r, index: len(r.expressions) - 1}
}

// Statement returns the handle for position i, or an invalid handle when
// i is out of range.
func (r *ParseResult) Statement(i int) StmtHandle {
	if i < 0 || i >= len(r.statements) {
		return StmtHandle{}
	}
	return StmtHandle{res: r, index: i}
}

// Expression returns the handle for position i, or an invalid handle when
// i is out of range.
func (r *ParseResult) Expression(i int) ExprHandle {
	if i < 0 || i >= len(r.expressions) {
		return ExprHandle{}
	}
	return ExprHandle{res: r, index: i}
}

// Statements returns handles for every owned statement in insertion
// order.
func (r *ParseResult) Statements() []StmtHandle {
	out := make([]StmtHandle, len(r.statements))
	for i := range r.statements {
		out[i] = StmtHandle{res: r, index: i}
	}
	return out
}

// Expressions returns handles for every owned expression in insertion
// order.
func (r *ParseResult) Expressions() []ExprHandle {
	out := make([]ExprHandle, len(r.expressions))
	for i := range r.expressions {
		out[i] = ExprHandle{res: r, index: i}
	}
	return out
}

func (r *ParseResult) NumStatements() int  { return len(r.statements) }
func (r *ParseResult) NumExpressions() int { return len(r.expressions) }

// TakeStatements moves statement ownership to the caller and drains the
// arena. Outstanding StmtHandle values become invalid; resolving one
// afterwards panics.
func (r *ParseResult) TakeStatements() []Statement {
	out := r.statements
	r.statements = nil
	r.stmtsTaken = true
	return out
}

// TakeExpressions moves expression ownership to the caller and drains the
// arena. Outstanding ExprHandle values become invalid; resolving one
// afterwards panics.
func (r *ParseResult) TakeExpressions() []Expression {
	out := r.expressions
	r.expressions = nil
	r.exprsTaken = true
	return out
}
