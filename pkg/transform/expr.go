package transform

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/quarry/pkg/ast"
	"github.com/leapstack-labs/quarry/pkg/pgtree"
)

// aggregateFuncs is the closed set of calls tagged as aggregates at parse
// time. Matching is case insensitive; everything else is a plain function
// for the binder to resolve.
var aggregateFuncs = map[string]struct{}{
	"min":   {},
	"max":   {},
	"count": {},
	"avg":   {},
	"sum":   {},
}

var binaryOps = map[string]ast.ExprType{
	"=":  ast.CompareEqual,
	"<>": ast.CompareNotEqual,
	"!=": ast.CompareNotEqual,
	"<":  ast.CompareLessThan,
	">":  ast.CompareGreaterThan,
	"<=": ast.CompareLessThanOrEqualTo,
	">=": ast.CompareGreaterThanOrEqualTo,
	"+":  ast.OperatorPlus,
	"-":  ast.OperatorMinus,
	"*":  ast.OperatorMultiply,
	"/":  ast.OperatorDivide,
	"%":  ast.OperatorMod,
	"||": ast.OperatorConcat,
}

// typeNames maps grammar-engine type names onto internal type ids. The
// engine emits both the SQL spelling and the catalog spelling.
var typeNames = map[string]ast.TypeID{
	"bool":      ast.TypeBoolean,
	"boolean":   ast.TypeBoolean,
	"tinyint":   ast.TypeTinyInt,
	"int1":      ast.TypeTinyInt,
	"int2":      ast.TypeSmallInt,
	"smallint":  ast.TypeSmallInt,
	"int4":      ast.TypeInteger,
	"int":       ast.TypeInteger,
	"integer":   ast.TypeInteger,
	"int8":      ast.TypeBigInt,
	"bigint":    ast.TypeBigInt,
	"numeric":   ast.TypeDecimal,
	"decimal":   ast.TypeDecimal,
	"float4":    ast.TypeDecimal,
	"float8":    ast.TypeDecimal,
	"real":      ast.TypeDecimal,
	"timestamp": ast.TypeTimestamp,
	"date":      ast.TypeDate,
	"varchar":   ast.TypeVarchar,
	"text":      ast.TypeVarchar,
	"bpchar":    ast.TypeVarchar,
	"char":      ast.TypeVarchar,
}

// ExprTransform maps one expression node. Subqueries inside the
// expression register their handle-position predicates into res.
func ExprTransform(res *ast.ParseResult, node pgtree.Node) (ast.Expression, error) {
	if node == nil {
		return nil, unsupported("empty expression")
	}
	switch n := node.(type) {
	case *pgtree.AExpr:
		return aExprTransform(res, n)
	case *pgtree.BoolExpr:
		return boolExprTransform(res, n)
	case *pgtree.CaseExpr:
		return caseExprTransform(res, n)
	case *pgtree.ColumnRef:
		return columnRefTransform(n)
	case *pgtree.AConst:
		return constTransform(n)
	case *pgtree.FuncCall:
		return funcCallTransform(res, n)
	case *pgtree.NullTest:
		return nullTestTransform(res, n)
	case *pgtree.ParamRef:
		return paramRefTransform(n)
	case *pgtree.SubLink:
		return subLinkTransform(res, n)
	case *pgtree.TypeCast:
		return typeCastTransform(res, n)
	case *pgtree.SetToDefault:
		return &ast.DefaultExpr{}, nil
	default:
		return nil, unsupported("expression node %s", node.Tag())
	}
}

func aExprTransform(res *ast.ParseResult, root *pgtree.AExpr) (ast.Expression, error) {
	if len(root.Name) == 0 {
		return nil, unsupported("operator expression without a name")
	}
	name := root.Name[len(root.Name)-1]

	switch root.Kind {
	case pgtree.AExprOp:
	case pgtree.AExprLike:
		var op ast.ExprType
		switch name {
		case "~~":
			op = ast.CompareLike
		case "!~~":
			op = ast.CompareNotLike
		default:
			return nil, unsupported("like operator %q", name)
		}
		left, err := ExprTransform(res, root.Lexpr)
		if err != nil {
			return nil, err
		}
		right, err := ExprTransform(res, root.Rexpr)
		if err != nil {
			return nil, err
		}
		return ast.NewBinary(op, left, right), nil
	default:
		return nil, unsupported("operator expression kind %q", root.Kind)
	}

	// A nil left operand is a prefix operator.
	if root.Lexpr == nil {
		if name != "-" {
			return nil, unsupported("prefix operator %q", name)
		}
		operand, err := ExprTransform(res, root.Rexpr)
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(ast.OperatorUnaryMinus, operand), nil
	}

	op, ok := binaryOps[name]
	if !ok {
		return nil, unsupported("operator %q", name)
	}
	left, err := ExprTransform(res, root.Lexpr)
	if err != nil {
		return nil, err
	}
	right, err := ExprTransform(res, root.Rexpr)
	if err != nil {
		return nil, err
	}
	return ast.NewBinary(op, left, right), nil
}

// boolExprTransform folds AND and OR chains into left-associative binary
// nodes; NOT becomes a unary node over its single argument.
func boolExprTransform(res *ast.ParseResult, root *pgtree.BoolExpr) (ast.Expression, error) {
	if len(root.Args) == 0 {
		return nil, unsupported("boolean expression without arguments")
	}

	if root.Op == pgtree.BoolNot {
		if len(root.Args) != 1 {
			return nil, unsupported("NOT over %d arguments", len(root.Args))
		}
		operand, err := ExprTransform(res, root.Args[0])
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(ast.OperatorNot, operand), nil
	}

	var op ast.ExprType
	switch root.Op {
	case pgtree.BoolAnd:
		op = ast.ConjunctionAnd
	case pgtree.BoolOr:
		op = ast.ConjunctionOr
	default:
		return nil, unsupported("boolean operator %q", root.Op)
	}

	acc, err := ExprTransform(res, root.Args[0])
	if err != nil {
		return nil, err
	}
	for _, arg := range root.Args[1:] {
		next, err := ExprTransform(res, arg)
		if err != nil {
			return nil, err
		}
		acc = ast.NewBinary(op, acc, next)
	}
	return acc, nil
}

func caseExprTransform(res *ast.ParseResult, root *pgtree.CaseExpr) (ast.Expression, error) {
	out := &ast.CaseExpr{}
	var err error
	if root.Arg != nil {
		if out.Operand, err = ExprTransform(res, root.Arg); err != nil {
			return nil, err
		}
	}
	for _, w := range root.Whens {
		when, err := ExprTransform(res, w.Expr)
		if err != nil {
			return nil, err
		}
		then, err := ExprTransform(res, w.Result)
		if err != nil {
			return nil, err
		}
		out.Whens = append(out.Whens, ast.WhenClause{When: when, Then: then})
	}
	if root.Defresult != nil {
		if out.Else, err = ExprTransform(res, root.Defresult); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func columnRefTransform(root *pgtree.ColumnRef) (ast.Expression, error) {
	switch len(root.Fields) {
	case 1:
		switch f := root.Fields[0].(type) {
		case *pgtree.String:
			return &ast.ColumnRef{Column: f.Val}, nil
		case *pgtree.AStar:
			return &ast.StarExpr{}, nil
		default:
			return nil, unsupported("column reference field %s", f.Tag())
		}
	case 2:
		first, ok := root.Fields[0].(*pgtree.String)
		if !ok {
			return nil, unsupported("column reference field %s", root.Fields[0].Tag())
		}
		switch f := root.Fields[1].(type) {
		case *pgtree.String:
			return &ast.ColumnRef{Table: first.Val, Column: f.Val}, nil
		case *pgtree.AStar:
			return nil, unsupported("qualified star %s.*", first.Val)
		default:
			return nil, unsupported("column reference field %s", f.Tag())
		}
	default:
		return nil, unsupported("column reference with %d fields", len(root.Fields))
	}
}

func constTransform(root *pgtree.AConst) (ast.Expression, error) {
	v, err := valueTransform(root.Val)
	if err != nil {
		return nil, err
	}
	return ast.NewLiteral(v), nil
}

func valueTransform(node pgtree.Node) (ast.Value, error) {
	switch v := node.(type) {
	case *pgtree.String:
		return ast.VarcharValue(v.Val), nil
	case *pgtree.Integer:
		return ast.IntegerValue(v.Val), nil
	case *pgtree.Float:
		f, err := strconv.ParseFloat(v.Val, 64)
		if err != nil {
			return ast.Value{}, unsupported("numeric literal %q", v.Val)
		}
		return ast.DecimalValue(f), nil
	case *pgtree.Null:
		return ast.NullValue(), nil
	case nil:
		return ast.Value{}, unsupported("constant without a value")
	default:
		return ast.Value{}, unsupported("constant value %s", node.Tag())
	}
}

func funcCallTransform(res *ast.ParseResult, root *pgtree.FuncCall) (ast.Expression, error) {
	if len(root.Funcname) == 0 {
		return nil, unsupported("function call without a name")
	}
	name := root.Funcname[len(root.Funcname)-1]
	_, aggregate := aggregateFuncs[strings.ToLower(name)]

	out := &ast.FuncCall{
		Name:      name,
		Distinct:  root.AggDistinct,
		Aggregate: aggregate,
	}
	if root.AggStar {
		out.Args = []ast.Expression{&ast.StarExpr{}}
		return out, nil
	}
	for _, arg := range root.Args {
		child, err := ExprTransform(res, arg)
		if err != nil {
			return nil, err
		}
		out.Args = append(out.Args, child)
	}
	return out, nil
}

func nullTestTransform(res *ast.ParseResult, root *pgtree.NullTest) (ast.Expression, error) {
	operand, err := ExprTransform(res, root.Arg)
	if err != nil {
		return nil, err
	}
	switch root.Kind {
	case pgtree.IsNull:
		return ast.NewUnary(ast.OperatorIsNull, operand), nil
	case pgtree.IsNotNull:
		return ast.NewUnary(ast.OperatorIsNotNull, operand), nil
	default:
		return nil, unsupported("null test kind %q", root.Kind)
	}
}

func paramRefTransform(root *pgtree.ParamRef) (ast.Expression, error) {
	if root.Number < 1 {
		return nil, unsupported("parameter number %d", root.Number)
	}
	return &ast.ParamRef{Index: root.Number - 1}, nil
}

func subLinkTransform(res *ast.ParseResult, root *pgtree.SubLink) (ast.Expression, error) {
	inner, ok := root.Subselect.(*pgtree.SelectStmt)
	if !ok || inner == nil {
		return nil, unsupported("subquery body %s", tagOf(root.Subselect))
	}
	sel, err := selectTransform(res, inner)
	if err != nil {
		return nil, err
	}
	sub := &ast.SubqueryExpr{Select: sel}

	switch root.Kind {
	case pgtree.ExprSublink:
		return sub, nil
	case pgtree.ExistsSublink:
		return ast.NewUnary(ast.OperatorExists, sub), nil
	case pgtree.AnySublink:
		test, err := ExprTransform(res, root.Testexpr)
		if err != nil {
			return nil, err
		}
		return ast.NewBinary(ast.CompareIn, test, sub), nil
	default:
		return nil, unsupported("subquery link kind %q", root.Kind)
	}
}

func typeCastTransform(res *ast.ParseResult, root *pgtree.TypeCast) (ast.Expression, error) {
	target, err := typeNameToID(root.TypeName)
	if err != nil {
		return nil, err
	}
	child, err := ExprTransform(res, root.Arg)
	if err != nil {
		return nil, err
	}

	// The grammar engine spells boolean literals as casts of 't' and 'f'
	// strings; fold those back into constants.
	if target == ast.TypeBoolean {
		if lit, ok := child.(*ast.Literal); ok && lit.Value.Type == ast.TypeVarchar {
			switch strings.ToLower(lit.Value.Str) {
			case "t", "true":
				return ast.NewLiteral(ast.BooleanValue(true)), nil
			case "f", "false":
				return ast.NewLiteral(ast.BooleanValue(false)), nil
			}
		}
	}
	return ast.NewCast(child, target), nil
}

func typeNameToID(tn *pgtree.TypeName) (ast.TypeID, error) {
	if tn == nil || len(tn.Names) == 0 {
		return ast.TypeInvalid, unsupported("type without a name")
	}
	name := tn.Names[len(tn.Names)-1]
	if t, ok := typeNames[strings.ToLower(name)]; ok {
		return t, nil
	}
	return ast.TypeInvalid, unsupported("type name %q", name)
}

func tagOf(node pgtree.Node) string {
	if node == nil {
		return "nothing"
	}
	return node.Tag()
}
