package ast

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
)

// exprHasher accumulates the structural hash of a node. FNV-1a, with a
// separator byte after strings so adjacent fields cannot collide by
// concatenation.
type exprHasher struct {
	h hash.Hash64
}

func newExprHasher() *exprHasher {
	return &exprHasher{h: fnv.New64a()}
}

func (x *exprHasher) sum() uint64 { return x.h.Sum64() }

func (x *exprHasher) string(s string) {
	x.h.Write([]byte(s))
	x.h.Write([]byte{0xff})
}

func (x *exprHasher) uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	x.h.Write(b[:])
}

func (x *exprHasher) int64(v int64)     { x.uint64(uint64(v)) }
func (x *exprHasher) int(v int)         { x.uint64(uint64(int64(v))) }
func (x *exprHasher) float64(v float64) { x.uint64(math.Float64bits(v)) }

func (x *exprHasher) bool(v bool) {
	if v {
		x.h.Write([]byte{1})
	} else {
		x.h.Write([]byte{0})
	}
}

// base folds in the fields every variant hashes: tag and return type.
func (x *exprHasher) base(e Expression) {
	x.int(int(e.Type()))
	x.int(int(e.ReturnType()))
}

// expr folds in a child hash, distinguishing nil from any real node.
func (x *exprHasher) expr(e Expression) {
	if e == nil {
		x.bool(false)
		return
	}
	x.bool(true)
	x.uint64(e.Hash())
}

func (x *exprHasher) children(list []Expression) {
	x.int(len(list))
	for _, e := range list {
		x.expr(e)
	}
}

func (e *Literal) Hash() uint64 {
	x := newExprHasher()
	x.base(e)
	e.Value.hashInto(x)
	return x.sum()
}

func (e *ColumnRef) Hash() uint64 {
	x := newExprHasher()
	x.base(e)
	x.string(e.Table)
	x.string(e.Column)
	return x.sum()
}

func (e *ParamRef) Hash() uint64 {
	x := newExprHasher()
	x.base(e)
	x.int(e.Index)
	return x.sum()
}

func (e *StarExpr) Hash() uint64 {
	x := newExprHasher()
	x.base(e)
	return x.sum()
}

func (e *DefaultExpr) Hash() uint64 {
	x := newExprHasher()
	x.base(e)
	return x.sum()
}

func (e *UnaryExpr) Hash() uint64 {
	x := newExprHasher()
	x.base(e)
	x.expr(e.Operand)
	return x.sum()
}

func (e *BinaryExpr) Hash() uint64 {
	x := newExprHasher()
	x.base(e)
	x.expr(e.Left)
	x.expr(e.Right)
	return x.sum()
}

func (e *CastExpr) Hash() uint64 {
	x := newExprHasher()
	x.base(e)
	x.expr(e.Child)
	return x.sum()
}

func (e *FuncCall) Hash() uint64 {
	x := newExprHasher()
	x.base(e)
	x.string(e.Name)
	x.bool(e.Distinct)
	x.bool(e.Aggregate)
	x.children(e.Args)
	return x.sum()
}

func (e *CaseExpr) Hash() uint64 {
	x := newExprHasher()
	x.base(e)
	x.expr(e.Operand)
	x.int(len(e.Whens))
	for _, w := range e.Whens {
		x.expr(w.When)
		x.expr(w.Then)
	}
	x.expr(e.Else)
	return x.sum()
}

func (e *SubqueryExpr) Hash() uint64 {
	x := newExprHasher()
	x.base(e)
	selectHashInto(x, e.Select)
	return x.sum()
}

// Fingerprint hashes an encoded document. The stash keys entries by it.
func Fingerprint(doc []byte) uint64 {
	h := fnv.New64a()
	h.Write(doc)
	return h.Sum64()
}
