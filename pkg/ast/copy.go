package ast

// copyExprs deep-copies an expression list, preserving nil.
func copyExprs(list []Expression) []Expression {
	if list == nil {
		return nil
	}
	out := make([]Expression, len(list))
	for i, e := range list {
		out[i] = e.Copy()
	}
	return out
}

func arityErr(t ExprType, want, got int) error {
	return &ArityError{Type: t, Want: want, Got: got}
}

func (e *Literal) Copy() Expression {
	c := *e
	return &c
}

func (e *Literal) CopyWithChildren(children []Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, arityErr(e.Type(), 0, len(children))
	}
	return e.Copy(), nil
}

func (e *ColumnRef) Copy() Expression {
	c := *e
	return &c
}

func (e *ColumnRef) CopyWithChildren(children []Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, arityErr(e.Type(), 0, len(children))
	}
	return e.Copy(), nil
}

func (e *ParamRef) Copy() Expression {
	c := *e
	return &c
}

func (e *ParamRef) CopyWithChildren(children []Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, arityErr(e.Type(), 0, len(children))
	}
	return e.Copy(), nil
}

func (e *StarExpr) Copy() Expression {
	c := *e
	return &c
}

func (e *StarExpr) CopyWithChildren(children []Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, arityErr(e.Type(), 0, len(children))
	}
	return e.Copy(), nil
}

func (e *DefaultExpr) Copy() Expression {
	c := *e
	return &c
}

func (e *DefaultExpr) CopyWithChildren(children []Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, arityErr(e.Type(), 0, len(children))
	}
	return e.Copy(), nil
}

func (e *UnaryExpr) Copy() Expression {
	c, _ := e.CopyWithChildren([]Expression{e.Operand.Copy()})
	return c
}

func (e *UnaryExpr) CopyWithChildren(children []Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, arityErr(e.Type(), 1, len(children))
	}
	c := *e
	c.Operand = children[0]
	return &c, nil
}

func (e *BinaryExpr) Copy() Expression {
	c, _ := e.CopyWithChildren([]Expression{e.Left.Copy(), e.Right.Copy()})
	return c
}

func (e *BinaryExpr) CopyWithChildren(children []Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, arityErr(e.Type(), 2, len(children))
	}
	c := *e
	c.Left, c.Right = children[0], children[1]
	return &c, nil
}

func (e *CastExpr) Copy() Expression {
	c, _ := e.CopyWithChildren([]Expression{e.Child.Copy()})
	return c
}

func (e *CastExpr) CopyWithChildren(children []Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, arityErr(e.Type(), 1, len(children))
	}
	c := *e
	c.Child = children[0]
	return &c, nil
}

func (e *FuncCall) Copy() Expression {
	c, _ := e.CopyWithChildren(copyExprs(e.Args))
	return c
}

// CopyWithChildren adopts any argument count; calls are variadic.
func (e *FuncCall) CopyWithChildren(children []Expression) (Expression, error) {
	c := *e
	c.Args = children
	return &c, nil
}

func (e *CaseExpr) Copy() Expression {
	c := *e
	if e.Operand != nil {
		c.Operand = e.Operand.Copy()
	}
	if e.Whens != nil {
		c.Whens = make([]WhenClause, len(e.Whens))
		for i, w := range e.Whens {
			c.Whens[i] = WhenClause{When: w.When.Copy(), Then: w.Then.Copy()}
		}
	}
	if e.Else != nil {
		c.Else = e.Else.Copy()
	}
	return &c
}

func (e *CaseExpr) CopyWithChildren(children []Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, arityErr(e.Type(), 0, len(children))
	}
	return e.Copy(), nil
}

func (e *SubqueryExpr) Copy() Expression {
	c := *e
	c.Select = e.Select.Copy()
	return &c
}

func (e *SubqueryExpr) CopyWithChildren(children []Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, arityErr(e.Type(), 0, len(children))
	}
	return e.Copy(), nil
}
