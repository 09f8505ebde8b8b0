package ast

// exprEqual compares two possibly nil expressions.
func exprEqual(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

func exprsEqual(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !exprEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (e *Literal) Equals(other Expression) bool {
	o, ok := other.(*Literal)
	return ok && e.sameBase(&o.baseExpr) && e.Value.Equals(o.Value)
}

func (e *ColumnRef) Equals(other Expression) bool {
	o, ok := other.(*ColumnRef)
	return ok && e.sameBase(&o.baseExpr) && e.Table == o.Table && e.Column == o.Column
}

func (e *ParamRef) Equals(other Expression) bool {
	o, ok := other.(*ParamRef)
	return ok && e.sameBase(&o.baseExpr) && e.Index == o.Index
}

func (e *StarExpr) Equals(other Expression) bool {
	o, ok := other.(*StarExpr)
	return ok && e.sameBase(&o.baseExpr)
}

func (e *DefaultExpr) Equals(other Expression) bool {
	o, ok := other.(*DefaultExpr)
	return ok && e.sameBase(&o.baseExpr)
}

func (e *UnaryExpr) Equals(other Expression) bool {
	o, ok := other.(*UnaryExpr)
	return ok && e.Op == o.Op && e.sameBase(&o.baseExpr) && exprEqual(e.Operand, o.Operand)
}

func (e *BinaryExpr) Equals(other Expression) bool {
	o, ok := other.(*BinaryExpr)
	return ok && e.Op == o.Op && e.sameBase(&o.baseExpr) &&
		exprEqual(e.Left, o.Left) && exprEqual(e.Right, o.Right)
}

// Equals for casts covers the target through the return type.
func (e *CastExpr) Equals(other Expression) bool {
	o, ok := other.(*CastExpr)
	return ok && e.sameBase(&o.baseExpr) && exprEqual(e.Child, o.Child)
}

func (e *FuncCall) Equals(other Expression) bool {
	o, ok := other.(*FuncCall)
	return ok && e.sameBase(&o.baseExpr) &&
		e.Name == o.Name && e.Distinct == o.Distinct && e.Aggregate == o.Aggregate &&
		exprsEqual(e.Args, o.Args)
}

func (e *CaseExpr) Equals(other Expression) bool {
	o, ok := other.(*CaseExpr)
	if !ok || !e.sameBase(&o.baseExpr) {
		return false
	}
	if !exprEqual(e.Operand, o.Operand) || !exprEqual(e.Else, o.Else) {
		return false
	}
	if len(e.Whens) != len(o.Whens) {
		return false
	}
	for i := range e.Whens {
		if !exprEqual(e.Whens[i].When, o.Whens[i].When) ||
			!exprEqual(e.Whens[i].Then, o.Whens[i].Then) {
			return false
		}
	}
	return true
}

func (e *SubqueryExpr) Equals(other Expression) bool {
	o, ok := other.(*SubqueryExpr)
	return ok && e.sameBase(&o.baseExpr) && selectEqual(e.Select, o.Select)
}
