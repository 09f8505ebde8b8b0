package ast

import (
	"fmt"
	"strconv"
)

// Value is a typed constant as it appears in the parse tree. Exactly one
// payload field is meaningful for a given TypeID; Null overrides all of
// them.
type Value struct {
	Type TypeID
	Null bool
	Int  int64
	Real float64
	Str  string
	Bool bool
}

// IntegerValue returns an integer constant.
func IntegerValue(v int64) Value {
	return Value{Type: TypeInteger, Int: v}
}

// BigIntValue returns a bigint constant.
func BigIntValue(v int64) Value {
	return Value{Type: TypeBigInt, Int: v}
}

// DecimalValue returns a decimal constant.
func DecimalValue(v float64) Value {
	return Value{Type: TypeDecimal, Real: v}
}

// VarcharValue returns a string constant.
func VarcharValue(v string) Value {
	return Value{Type: TypeVarchar, Str: v}
}

// BooleanValue returns a boolean constant.
func BooleanValue(v bool) Value {
	return Value{Type: TypeBoolean, Bool: v}
}

// NullValue returns the untyped NULL constant.
func NullValue() Value {
	return Value{Type: TypeInvalid, Null: true}
}

// IsNull reports whether the value is NULL.
func (v Value) IsNull() bool { return v.Null }

// Equals compares type and payload.
func (v Value) Equals(o Value) bool {
	if v.Type != o.Type || v.Null != o.Null {
		return false
	}
	if v.Null {
		return true
	}
	switch v.Type {
	case TypeBoolean:
		return v.Bool == o.Bool
	case TypeTinyInt, TypeSmallInt, TypeInteger, TypeBigInt:
		return v.Int == o.Int
	case TypeDecimal:
		return v.Real == o.Real
	case TypeVarchar, TypeTimestamp, TypeDate:
		return v.Str == o.Str
	}
	return true
}

// String renders the value the way it would appear in SQL text, without
// quoting.
func (v Value) String() string {
	if v.Null {
		return "NULL"
	}
	switch v.Type {
	case TypeBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case TypeTinyInt, TypeSmallInt, TypeInteger, TypeBigInt:
		return strconv.FormatInt(v.Int, 10)
	case TypeDecimal:
		return strconv.FormatFloat(v.Real, 'g', -1, 64)
	case TypeVarchar, TypeTimestamp, TypeDate:
		return v.Str
	}
	return fmt.Sprintf("<%s>", v.Type)
}

func (v Value) hashInto(h *exprHasher) {
	h.int(int(v.Type))
	h.bool(v.Null)
	if v.Null {
		return
	}
	switch v.Type {
	case TypeBoolean:
		h.bool(v.Bool)
	case TypeTinyInt, TypeSmallInt, TypeInteger, TypeBigInt:
		h.int64(v.Int)
	case TypeDecimal:
		h.float64(v.Real)
	case TypeVarchar, TypeTimestamp, TypeDate:
		h.string(v.Str)
	}
}
