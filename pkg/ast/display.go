package ast

import (
	"strconv"
	"strings"
)

// DisplayName derives the output name of an expression: the alias when one
// is set, otherwise a rendering of the node with children rendered first,
// so a call becomes name(child1,child2). The function is pure and never
// mutates the tree; callers that want the old cached behavior memoize the
// result themselves.
func DisplayName(e Expression) string {
	if e == nil {
		return ""
	}
	if a := e.Alias(); a != "" {
		return a
	}
	switch n := e.(type) {
	case *Literal:
		return n.Value.String()
	case *ColumnRef:
		if n.Table != "" {
			return n.Table + "." + n.Column
		}
		return n.Column
	case *ParamRef:
		return "$" + strconv.Itoa(n.Index+1)
	case *StarExpr:
		return "*"
	case *DefaultExpr:
		return "DEFAULT"
	case *UnaryExpr:
		operand := DisplayName(n.Operand)
		switch n.Op {
		case OperatorIsNull:
			return operand + " IS NULL"
		case OperatorIsNotNull:
			return operand + " IS NOT NULL"
		case OperatorNot:
			return "NOT " + operand
		case OperatorExists:
			return "EXISTS " + operand
		default:
			return opToken(n.Op) + operand
		}
	case *BinaryExpr:
		return DisplayName(n.Left) + " " + opToken(n.Op) + " " + DisplayName(n.Right)
	case *CastExpr:
		return "CAST(" + DisplayName(n.Child) + " AS " + n.ReturnType().String() + ")"
	case *FuncCall:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = DisplayName(a)
		}
		return n.Name + "(" + strings.Join(args, ",") + ")"
	case *CaseExpr:
		var b strings.Builder
		b.WriteString("CASE")
		if n.Operand != nil {
			b.WriteString(" " + DisplayName(n.Operand))
		}
		for _, w := range n.Whens {
			b.WriteString(" WHEN " + DisplayName(w.When) + " THEN " + DisplayName(w.Then))
		}
		if n.Else != nil {
			b.WriteString(" ELSE " + DisplayName(n.Else))
		}
		b.WriteString(" END")
		return b.String()
	case *SubqueryExpr:
		return "(subquery)"
	}
	return e.Type().String()
}

func opToken(t ExprType) string {
	switch t {
	case OperatorUnaryMinus, OperatorMinus:
		return "-"
	case OperatorPlus:
		return "+"
	case OperatorMultiply:
		return "*"
	case OperatorDivide:
		return "/"
	case OperatorMod:
		return "%"
	case OperatorConcat:
		return "||"
	case CompareEqual:
		return "="
	case CompareNotEqual:
		return "<>"
	case CompareLessThan:
		return "<"
	case CompareGreaterThan:
		return ">"
	case CompareLessThanOrEqualTo:
		return "<="
	case CompareGreaterThanOrEqualTo:
		return ">="
	case CompareLike:
		return "LIKE"
	case CompareNotLike:
		return "NOT LIKE"
	case CompareIn:
		return "IN"
	case ConjunctionAnd:
		return "AND"
	case ConjunctionOr:
		return "OR"
	}
	return t.String()
}
