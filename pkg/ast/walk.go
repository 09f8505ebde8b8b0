package ast

// Visitor has one method per expression variant. Walk drives it; passes
// that only care about a few variants embed BaseVisitor and override what
// they need.
type Visitor interface {
	VisitLiteral(*Literal)
	VisitColumnRef(*ColumnRef)
	VisitParamRef(*ParamRef)
	VisitStar(*StarExpr)
	VisitDefault(*DefaultExpr)
	VisitUnary(*UnaryExpr)
	VisitBinary(*BinaryExpr)
	VisitCast(*CastExpr)
	VisitFuncCall(*FuncCall)
	VisitCase(*CaseExpr)
	VisitSubquery(*SubqueryExpr)
}

// BaseVisitor implements Visitor with no-ops.
type BaseVisitor struct{}

func (BaseVisitor) VisitLiteral(*Literal)       {}
func (BaseVisitor) VisitColumnRef(*ColumnRef)   {}
func (BaseVisitor) VisitParamRef(*ParamRef)     {}
func (BaseVisitor) VisitStar(*StarExpr)         {}
func (BaseVisitor) VisitDefault(*DefaultExpr)   {}
func (BaseVisitor) VisitUnary(*UnaryExpr)       {}
func (BaseVisitor) VisitBinary(*BinaryExpr)     {}
func (BaseVisitor) VisitCast(*CastExpr)         {}
func (BaseVisitor) VisitFuncCall(*FuncCall)     {}
func (BaseVisitor) VisitCase(*CaseExpr)         {}
func (BaseVisitor) VisitSubquery(*SubqueryExpr) {}

// Walk visits e in preorder: the node first, then its children, and for
// CASE the operand, the when/then pairs, and the else branch. Walk stops
// at subquery links; the nested statement is a statement boundary.
func Walk(v Visitor, e Expression) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *Literal:
		v.VisitLiteral(n)
	case *ColumnRef:
		v.VisitColumnRef(n)
	case *ParamRef:
		v.VisitParamRef(n)
	case *StarExpr:
		v.VisitStar(n)
	case *DefaultExpr:
		v.VisitDefault(n)
	case *UnaryExpr:
		v.VisitUnary(n)
		Walk(v, n.Operand)
	case *BinaryExpr:
		v.VisitBinary(n)
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *CastExpr:
		v.VisitCast(n)
		Walk(v, n.Child)
	case *FuncCall:
		v.VisitFuncCall(n)
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *CaseExpr:
		v.VisitCase(n)
		Walk(v, n.Operand)
		for _, w := range n.Whens {
			Walk(v, w.When)
			Walk(v, w.Then)
		}
		Walk(v, n.Else)
	case *SubqueryExpr:
		v.VisitSubquery(n)
	}
}
