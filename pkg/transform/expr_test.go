package transform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/quarry/pkg/ast"
	"github.com/leapstack-labs/quarry/pkg/pgtree"
)

func col(parts ...string) *pgtree.ColumnRef {
	fields := make([]pgtree.Node, len(parts))
	for i, p := range parts {
		fields[i] = &pgtree.String{Val: p}
	}
	return &pgtree.ColumnRef{Fields: fields}
}

func intConst(v int64) *pgtree.AConst {
	return &pgtree.AConst{Val: &pgtree.Integer{Val: v}}
}

func strConst(s string) *pgtree.AConst {
	return &pgtree.AConst{Val: &pgtree.String{Val: s}}
}

func binOp(name string, l, r pgtree.Node) *pgtree.AExpr {
	return &pgtree.AExpr{Kind: pgtree.AExprOp, Name: []string{name}, Lexpr: l, Rexpr: r}
}

func TestAggregateClassification(t *testing.T) {
	tests := []struct {
		name      string
		aggregate bool
	}{
		{"count", true},
		{"Count", true},
		{"SUM", true},
		{"MIN", true},
		{"max", true},
		{"Avg", true},
		{"substring", false},
		{"upper", false},
		{"counts", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ast.NewParseResult()
			got, err := ExprTransform(res, &pgtree.FuncCall{
				Funcname: []string{tt.name},
				Args:     []pgtree.Node{col("x")},
			})
			require.NoError(t, err)

			fc, ok := got.(*ast.FuncCall)
			require.True(t, ok)
			assert.Equal(t, tt.name, fc.Name)
			assert.Equal(t, tt.aggregate, fc.Aggregate)
		})
	}
}

func TestFuncCallStarAndDistinct(t *testing.T) {
	res := ast.NewParseResult()
	got, err := ExprTransform(res, &pgtree.FuncCall{
		Funcname:    []string{"pg_catalog", "count"},
		AggStar:     true,
		AggDistinct: true,
	})
	require.NoError(t, err)

	fc, ok := got.(*ast.FuncCall)
	require.True(t, ok)
	assert.Equal(t, "count", fc.Name)
	assert.True(t, fc.Aggregate)
	assert.True(t, fc.Distinct)
	require.Len(t, fc.Args, 1)
	assert.Equal(t, ast.ExprStar, fc.Args[0].Type())
}

func TestBinaryOperators(t *testing.T) {
	tests := []struct {
		op   string
		want ast.ExprType
	}{
		{"=", ast.CompareEqual},
		{"<>", ast.CompareNotEqual},
		{"!=", ast.CompareNotEqual},
		{"<", ast.CompareLessThan},
		{">", ast.CompareGreaterThan},
		{"<=", ast.CompareLessThanOrEqualTo},
		{">=", ast.CompareGreaterThanOrEqualTo},
		{"+", ast.OperatorPlus},
		{"-", ast.OperatorMinus},
		{"*", ast.OperatorMultiply},
		{"/", ast.OperatorDivide},
		{"%", ast.OperatorMod},
		{"||", ast.OperatorConcat},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			res := ast.NewParseResult()
			got, err := ExprTransform(res, binOp(tt.op, col("a"), intConst(1)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Type())
			require.Len(t, got.Children(), 2)
		})
	}
}

func TestPrefixMinus(t *testing.T) {
	res := ast.NewParseResult()
	got, err := ExprTransform(res, &pgtree.AExpr{
		Kind:  pgtree.AExprOp,
		Name:  []string{"-"},
		Rexpr: col("a"),
	})
	require.NoError(t, err)
	assert.Equal(t, ast.OperatorUnaryMinus, got.Type())
	require.Len(t, got.Children(), 1)
	assert.Equal(t, ast.ExprColumn, got.Children()[0].Type())
}

func TestLikeOperators(t *testing.T) {
	res := ast.NewParseResult()

	like, err := ExprTransform(res, &pgtree.AExpr{
		Kind:  pgtree.AExprLike,
		Name:  []string{"~~"},
		Lexpr: col("name"),
		Rexpr: strConst("foo%"),
	})
	require.NoError(t, err)
	assert.Equal(t, ast.CompareLike, like.Type())

	notLike, err := ExprTransform(res, &pgtree.AExpr{
		Kind:  pgtree.AExprLike,
		Name:  []string{"!~~"},
		Lexpr: col("name"),
		Rexpr: strConst("foo%"),
	})
	require.NoError(t, err)
	assert.Equal(t, ast.CompareNotLike, notLike.Type())
}

func TestBoolExprFoldsLeftAssociative(t *testing.T) {
	res := ast.NewParseResult()
	got, err := ExprTransform(res, &pgtree.BoolExpr{
		Op:   pgtree.BoolAnd,
		Args: []pgtree.Node{col("a"), col("b"), col("c")},
	})
	require.NoError(t, err)

	// ((a AND b) AND c)
	outer, ok := got.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.ConjunctionAnd, outer.Op)
	inner, ok := outer.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.ConjunctionAnd, inner.Op)
	assert.Equal(t, ast.ExprColumn, inner.Left.Type())
	assert.Equal(t, ast.ExprColumn, outer.Right.Type())
}

func TestBoolNot(t *testing.T) {
	res := ast.NewParseResult()
	got, err := ExprTransform(res, &pgtree.BoolExpr{
		Op:   pgtree.BoolNot,
		Args: []pgtree.Node{col("a")},
	})
	require.NoError(t, err)
	assert.Equal(t, ast.OperatorNot, got.Type())
}

func TestCaseTransform(t *testing.T) {
	res := ast.NewParseResult()
	got, err := ExprTransform(res, &pgtree.CaseExpr{
		Arg: col("status"),
		Whens: []*pgtree.CaseWhen{
			{Expr: strConst("a"), Result: intConst(1)},
			{Expr: strConst("b"), Result: intConst(2)},
		},
		Defresult: intConst(0),
	})
	require.NoError(t, err)

	ce, ok := got.(*ast.CaseExpr)
	require.True(t, ok)
	require.NotNil(t, ce.Operand)
	require.Len(t, ce.Whens, 2)
	require.NotNil(t, ce.Else)
	assert.Equal(t, ast.ExprConstant, ce.Whens[0].When.Type())
}

func TestColumnRefShapes(t *testing.T) {
	res := ast.NewParseResult()

	plain, err := ExprTransform(res, col("a"))
	require.NoError(t, err)
	cr, ok := plain.(*ast.ColumnRef)
	require.True(t, ok)
	assert.Empty(t, cr.Table)
	assert.Equal(t, "a", cr.Column)

	qualified, err := ExprTransform(res, col("t", "a"))
	require.NoError(t, err)
	cr, ok = qualified.(*ast.ColumnRef)
	require.True(t, ok)
	assert.Equal(t, "t", cr.Table)
	assert.Equal(t, "a", cr.Column)

	star, err := ExprTransform(res, &pgtree.ColumnRef{Fields: []pgtree.Node{&pgtree.AStar{}}})
	require.NoError(t, err)
	assert.Equal(t, ast.ExprStar, star.Type())

	_, err = ExprTransform(res, &pgtree.ColumnRef{
		Fields: []pgtree.Node{&pgtree.String{Val: "t"}, &pgtree.AStar{}},
	})
	var uerr *UnsupportedError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Construct, "qualified star")
}

func TestConstantValues(t *testing.T) {
	tests := []struct {
		name string
		node pgtree.Node
		want ast.Value
	}{
		{"integer", &pgtree.Integer{Val: 42}, ast.IntegerValue(42)},
		{"string", &pgtree.String{Val: "hi"}, ast.VarcharValue("hi")},
		{"float", &pgtree.Float{Val: "2.5"}, ast.DecimalValue(2.5)},
		{"null", &pgtree.Null{}, ast.NullValue()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ast.NewParseResult()
			got, err := ExprTransform(res, &pgtree.AConst{Val: tt.node})
			require.NoError(t, err)
			lit, ok := got.(*ast.Literal)
			require.True(t, ok)
			assert.True(t, lit.Value.Equals(tt.want), "got %v want %v", lit.Value, tt.want)
		})
	}
}

func TestNullTest(t *testing.T) {
	res := ast.NewParseResult()

	isNull, err := ExprTransform(res, &pgtree.NullTest{Arg: col("a"), Kind: pgtree.IsNull})
	require.NoError(t, err)
	assert.Equal(t, ast.OperatorIsNull, isNull.Type())

	isNotNull, err := ExprTransform(res, &pgtree.NullTest{Arg: col("a"), Kind: pgtree.IsNotNull})
	require.NoError(t, err)
	assert.Equal(t, ast.OperatorIsNotNull, isNotNull.Type())
}

func TestParamRefIsZeroBased(t *testing.T) {
	res := ast.NewParseResult()
	got, err := ExprTransform(res, &pgtree.ParamRef{Number: 3})
	require.NoError(t, err)

	pr, ok := got.(*ast.ParamRef)
	require.True(t, ok)
	assert.Equal(t, 2, pr.Index)

	_, err = ExprTransform(res, &pgtree.ParamRef{Number: 0})
	assert.Error(t, err)
}

func TestSubLinkKinds(t *testing.T) {
	inner := &pgtree.SelectStmt{
		TargetList: []*pgtree.ResTarget{{Val: col("id")}},
		FromClause: []pgtree.Node{&pgtree.RangeVar{Relname: "u"}},
	}

	t.Run("expr", func(t *testing.T) {
		res := ast.NewParseResult()
		got, err := ExprTransform(res, &pgtree.SubLink{Kind: pgtree.ExprSublink, Subselect: inner})
		require.NoError(t, err)
		sub, ok := got.(*ast.SubqueryExpr)
		require.True(t, ok)
		require.NotNil(t, sub.Select)
	})

	t.Run("exists", func(t *testing.T) {
		res := ast.NewParseResult()
		got, err := ExprTransform(res, &pgtree.SubLink{Kind: pgtree.ExistsSublink, Subselect: inner})
		require.NoError(t, err)
		assert.Equal(t, ast.OperatorExists, got.Type())
		require.Len(t, got.Children(), 1)
		assert.Equal(t, ast.ExprSubquery, got.Children()[0].Type())
	})

	t.Run("any becomes IN", func(t *testing.T) {
		res := ast.NewParseResult()
		got, err := ExprTransform(res, &pgtree.SubLink{
			Kind:      pgtree.AnySublink,
			Testexpr:  col("a"),
			Subselect: inner,
		})
		require.NoError(t, err)
		assert.Equal(t, ast.CompareIn, got.Type())
		require.Len(t, got.Children(), 2)
		assert.Equal(t, ast.ExprColumn, got.Children()[0].Type())
		assert.Equal(t, ast.ExprSubquery, got.Children()[1].Type())
	})

	t.Run("all is unsupported", func(t *testing.T) {
		res := ast.NewParseResult()
		_, err := ExprTransform(res, &pgtree.SubLink{Kind: pgtree.AllSublink, Subselect: inner})
		assert.Error(t, err)
	})
}

func TestTypeCast(t *testing.T) {
	res := ast.NewParseResult()
	got, err := ExprTransform(res, &pgtree.TypeCast{
		Arg:      col("a"),
		TypeName: &pgtree.TypeName{Names: []string{"pg_catalog", "int8"}},
	})
	require.NoError(t, err)

	cast, ok := got.(*ast.CastExpr)
	require.True(t, ok)
	assert.Equal(t, ast.TypeBigInt, cast.ReturnType())
}

func TestBooleanCastFoldsToConstant(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"t", true},
		{"true", true},
		{"f", false},
		{"false", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res := ast.NewParseResult()
			got, err := ExprTransform(res, &pgtree.TypeCast{
				Arg:      strConst(tt.text),
				TypeName: &pgtree.TypeName{Names: []string{"bool"}},
			})
			require.NoError(t, err)

			lit, ok := got.(*ast.Literal)
			require.True(t, ok, "boolean casts of %q should fold", tt.text)
			assert.Equal(t, ast.TypeBoolean, lit.Value.Type)
			assert.Equal(t, tt.want, lit.Value.Bool)
		})
	}
}

func TestDefaultKeyword(t *testing.T) {
	res := ast.NewParseResult()
	got, err := ExprTransform(res, &pgtree.SetToDefault{})
	require.NoError(t, err)
	assert.Equal(t, ast.ExprDefault, got.Type())
}

func TestUnsupportedExpressionNamesKind(t *testing.T) {
	res := ast.NewParseResult()
	_, err := ExprTransform(res, &pgtree.Unknown{TagName: "GroupingFunc"})

	var uerr *UnsupportedError
	require.True(t, errors.As(err, &uerr))
	assert.Contains(t, uerr.Construct, "GroupingFunc")
	assert.Contains(t, err.Error(), "not implemented")
}

func TestUnknownOperatorIsUnsupported(t *testing.T) {
	res := ast.NewParseResult()
	_, err := ExprTransform(res, binOp("@>", col("a"), col("b")))

	var uerr *UnsupportedError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Construct, "@>")
}
