package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultHandles(t *testing.T) {
	res := NewParseResult()
	assert.Zero(t, res.NumExpressions())

	first := res.AddExpression(&ColumnRef{Column: "a"})
	second := res.AddExpression(NewLiteral(IntegerValue(7)))
	require.Equal(t, 2, res.NumExpressions())

	require.True(t, first.Valid())
	assert.Equal(t, "a", first.Get().(*ColumnRef).Column)
	assert.Equal(t, int64(7), second.Get().(*Literal).Value.Int)

	// Positional lookup hands back the same slots.
	assert.Same(t, first.Get(), res.Expression(0).Get())
	assert.Same(t, second.Get(), res.Expression(1).Get())

	handles := res.Expressions()
	require.Len(t, handles, 2)
	assert.Same(t, first.Get(), handles[0].Get())
}

func TestParseResultOutOfRange(t *testing.T) {
	res := NewParseResult()
	res.AddExpression(&StarExpr{})

	for _, h := range []ExprHandle{res.Expression(-1), res.Expression(1)} {
		assert.False(t, h.Valid())
		assert.Nil(t, h.Get())
	}
	sh := res.Statement(0)
	assert.False(t, sh.Valid())
	assert.Nil(t, sh.Get())
}

func TestZeroHandleIsAbsent(t *testing.T) {
	var h ExprHandle
	assert.False(t, h.Valid())
	assert.Nil(t, h.Get())
}

func TestTakeExpressionsDrainsArena(t *testing.T) {
	res := NewParseResult()
	h := res.AddExpression(&ColumnRef{Column: "a"})

	owned := res.TakeExpressions()
	require.Len(t, owned, 1)
	assert.Equal(t, "a", owned[0].(*ColumnRef).Column)
	assert.Zero(t, res.NumExpressions())

	assert.Panics(t, func() { h.Get() })
	assert.Panics(t, func() { res.AddExpression(&StarExpr{}) })
}

func TestTakeStatementsDrainsArena(t *testing.T) {
	res := NewParseResult()
	h := res.AddStatement(&TransactionStatement{Kind: TransactionCommit})

	owned := res.TakeStatements()
	require.Len(t, owned, 1)
	assert.Equal(t, StmtTransaction, owned[0].Type())

	assert.Panics(t, func() { h.Get() })
	assert.Panics(t, func() { res.AddStatement(&TransactionStatement{}) })

	// The expression side is untouched.
	eh := res.AddExpression(&StarExpr{})
	assert.NotNil(t, eh.Get())
}

func TestStatementRegistrationOrder(t *testing.T) {
	res := NewParseResult()
	res.AddStatement(&TransactionStatement{Kind: TransactionBegin})
	res.AddStatement(&DeleteStatement{Table: &TableInfo{Table: "t"}})
	res.AddStatement(&TransactionStatement{Kind: TransactionCommit})

	handles := res.Statements()
	require.Len(t, handles, 3)
	assert.Equal(t, StmtTransaction, handles[0].Get().Type())
	assert.Equal(t, StmtDelete, handles[1].Get().Type())
	assert.Equal(t, TransactionCommit, handles[2].Get().(*TransactionStatement).Kind)
}
