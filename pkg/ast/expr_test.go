package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPredicate returns (a + 4) > avg(t.b), three levels deep.
func buildPredicate() Expression {
	sum := NewBinary(OperatorPlus,
		&ColumnRef{Column: "a"},
		NewLiteral(IntegerValue(4)))
	avg := &FuncCall{
		Name:      "avg",
		Aggregate: true,
		Args:      []Expression{&ColumnRef{Table: "t", Column: "b"}},
	}
	return NewBinary(CompareGreaterThan, sum, avg)
}

func TestExpressionCopyIndependence(t *testing.T) {
	orig := buildPredicate()
	orig.SetAlias("cond")
	orig.(*BinaryExpr).Left.SetAlias("lhs")

	cp := orig.Copy()
	require.True(t, cp.Equals(orig))
	assert.Equal(t, "cond", cp.Alias())
	assert.Equal(t, "lhs", cp.(*BinaryExpr).Left.Alias())

	// Mutating the original at depth must not show through the copy.
	lit := orig.(*BinaryExpr).Left.(*BinaryExpr).Right.(*Literal)
	lit.Value = IntegerValue(99)
	orig.(*BinaryExpr).Right.(*FuncCall).Name = "sum"

	cpLit := cp.(*BinaryExpr).Left.(*BinaryExpr).Right.(*Literal)
	assert.Equal(t, int64(4), cpLit.Value.Int)
	assert.Equal(t, "avg", cp.(*BinaryExpr).Right.(*FuncCall).Name)
	assert.False(t, cp.Equals(orig))
}

func TestCopyWithChildren(t *testing.T) {
	t.Run("binary adopts replacements", func(t *testing.T) {
		orig := NewBinary(OperatorPlus, &ColumnRef{Column: "a"}, NewLiteral(IntegerValue(1)))
		orig.SetAlias("total")

		left := &ColumnRef{Column: "x"}
		right := &ColumnRef{Column: "y"}
		cp, err := orig.CopyWithChildren([]Expression{left, right})
		require.NoError(t, err)

		bin := cp.(*BinaryExpr)
		assert.Same(t, left, bin.Left.(*ColumnRef))
		assert.Same(t, right, bin.Right.(*ColumnRef))
		assert.Equal(t, "total", cp.Alias())
		assert.Equal(t, OperatorPlus, cp.Type())
	})

	t.Run("arity mismatch fails", func(t *testing.T) {
		orig := NewUnary(OperatorNot, &ColumnRef{Column: "ok"})
		_, err := orig.CopyWithChildren(nil)
		var arity *ArityError
		require.ErrorAs(t, err, &arity)
		assert.Equal(t, OperatorNot, arity.Type)
		assert.Equal(t, 1, arity.Want)
		assert.Equal(t, 0, arity.Got)
	})

	t.Run("leaves reject children", func(t *testing.T) {
		for _, leaf := range []Expression{
			NewLiteral(IntegerValue(1)),
			&ColumnRef{Column: "a"},
			&ParamRef{Index: 0},
			&StarExpr{},
			&DefaultExpr{},
		} {
			_, err := leaf.CopyWithChildren([]Expression{&StarExpr{}})
			var arity *ArityError
			require.ErrorAs(t, err, &arity, "leaf %s", leaf.Type())
			assert.Equal(t, 0, arity.Want)
		}
	})

	t.Run("case holds branches aside", func(t *testing.T) {
		ce := &CaseExpr{
			Whens: []WhenClause{{When: &ColumnRef{Column: "a"}, Then: NewLiteral(IntegerValue(1))}},
			Else:  NewLiteral(IntegerValue(0)),
		}
		assert.Empty(t, ce.Children())
		_, err := ce.CopyWithChildren([]Expression{&StarExpr{}})
		var arity *ArityError
		require.ErrorAs(t, err, &arity)

		cp, err := ce.CopyWithChildren(nil)
		require.NoError(t, err)
		assert.True(t, cp.Equals(ce))
	})

	t.Run("function call is variadic", func(t *testing.T) {
		fn := &FuncCall{Name: "coalesce", Args: []Expression{&ColumnRef{Column: "a"}}}
		cp, err := fn.CopyWithChildren([]Expression{
			&ColumnRef{Column: "a"},
			NewLiteral(IntegerValue(0)),
			NewLiteral(IntegerValue(-1)),
		})
		require.NoError(t, err)
		assert.Len(t, cp.Children(), 3)
	})
}

func TestHashAgreesWithEquals(t *testing.T) {
	a := buildPredicate()
	b := buildPredicate()
	require.True(t, a.Equals(b))
	assert.Equal(t, a.Hash(), b.Hash())

	// The alias is presentation only.
	b.SetAlias("renamed")
	assert.True(t, a.Equals(b))
	assert.Equal(t, a.Hash(), b.Hash())

	// The return type participates in both.
	b.SetReturnType(TypeBoolean)
	assert.False(t, a.Equals(b))
	assert.NotEqual(t, a.Hash(), b.Hash())

	c := NewBinary(CompareLessThan,
		a.(*BinaryExpr).Left.Copy(),
		a.(*BinaryExpr).Right.Copy())
	assert.False(t, a.Equals(c))
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestEqualsRejectsDifferentVariants(t *testing.T) {
	star := &StarExpr{}
	col := &ColumnRef{Column: "a"}
	assert.False(t, star.Equals(col))
	assert.False(t, col.Equals(star))
	assert.False(t, col.Equals(nil))
}

func TestDisplayName(t *testing.T) {
	sub := &SubqueryExpr{Select: &SelectStatement{Select: []Expression{&StarExpr{}}}}
	tests := []struct {
		name string
		expr Expression
		want string
	}{
		{"alias wins", func() Expression {
			e := &ColumnRef{Column: "a"}
			e.SetAlias("renamed")
			return e
		}(), "renamed"},
		{"qualified column", &ColumnRef{Table: "t", Column: "a"}, "t.a"},
		{"bare column", &ColumnRef{Column: "a"}, "a"},
		{"integer constant", NewLiteral(IntegerValue(42)), "42"},
		{"null constant", NewLiteral(NullValue()), "NULL"},
		{"parameter is one based", &ParamRef{Index: 0}, "$1"},
		{"star", &StarExpr{}, "*"},
		{"default", &DefaultExpr{}, "DEFAULT"},
		{"unary minus", NewUnary(OperatorUnaryMinus, &ColumnRef{Column: "a"}), "-a"},
		{"is null", NewUnary(OperatorIsNull, &ColumnRef{Column: "a"}), "a IS NULL"},
		{"not", NewUnary(OperatorNot, &ColumnRef{Column: "ok"}), "NOT ok"},
		{"comparison", NewBinary(CompareLessThanOrEqualTo, &ColumnRef{Column: "a"}, NewLiteral(IntegerValue(3))), "a <= 3"},
		{"cast", NewCast(&ColumnRef{Column: "a"}, TypeBigInt), "CAST(a AS bigint)"},
		{"call renders args first", &FuncCall{Name: "count", Args: []Expression{&StarExpr{}}}, "count(*)"},
		{"case", &CaseExpr{
			Whens: []WhenClause{{When: &ColumnRef{Column: "a"}, Then: NewLiteral(IntegerValue(1))}},
			Else:  NewLiteral(IntegerValue(0)),
		}, "CASE WHEN a THEN 1 ELSE 0 END"},
		{"subquery", sub, "(subquery)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.expr))
		})
	}
}

func TestDisplayNameIsPure(t *testing.T) {
	e := NewBinary(OperatorPlus, &ColumnRef{Column: "a"}, NewLiteral(IntegerValue(1)))
	first := DisplayName(e)
	e.Left.(*ColumnRef).Column = "b"
	assert.NotEqual(t, first, DisplayName(e))
}

type countingVisitor struct {
	BaseVisitor
	order []ExprType
}

func (v *countingVisitor) VisitColumnRef(e *ColumnRef) { v.order = append(v.order, e.Type()) }
func (v *countingVisitor) VisitLiteral(e *Literal)     { v.order = append(v.order, e.Type()) }
func (v *countingVisitor) VisitBinary(e *BinaryExpr)   { v.order = append(v.order, e.Op) }
func (v *countingVisitor) VisitFuncCall(e *FuncCall)   { v.order = append(v.order, e.Type()) }

func TestWalkPreorder(t *testing.T) {
	v := &countingVisitor{}
	Walk(v, buildPredicate())
	assert.Equal(t, []ExprType{
		CompareGreaterThan,
		OperatorPlus, ExprColumn, ExprConstant,
		ExprFunction, ExprColumn,
	}, v.order)
}

func TestWalkStopsAtSubquery(t *testing.T) {
	inner := &SelectStatement{Select: []Expression{&ColumnRef{Column: "hidden"}}}
	v := &countingVisitor{}
	Walk(v, &SubqueryExpr{Select: inner})
	assert.Empty(t, v.order)
}
