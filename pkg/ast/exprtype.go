package ast

// ExprType discriminates the expression variants. For operator nodes the
// tag carries the operator itself, so a BinaryExpr with ExprType
// CompareEqual and one with OperatorPlus are different kinds of node even
// though they share a Go struct.
type ExprType int

const (
	ExprInvalid ExprType = iota

	// Unary operators.
	OperatorUnaryMinus
	OperatorNot
	OperatorIsNull
	OperatorIsNotNull
	OperatorExists

	// Binary arithmetic and string operators.
	OperatorPlus
	OperatorMinus
	OperatorMultiply
	OperatorDivide
	OperatorMod
	OperatorConcat

	// Comparisons.
	CompareEqual
	CompareNotEqual
	CompareLessThan
	CompareGreaterThan
	CompareLessThanOrEqualTo
	CompareGreaterThanOrEqualTo
	CompareLike
	CompareNotLike
	CompareIn

	// Boolean connectives.
	ConjunctionAnd
	ConjunctionOr

	// Value and structural variants.
	ExprColumn
	ExprConstant
	ExprParameter
	ExprStar
	ExprDefault
	ExprFunction
	ExprCast
	ExprCase
	ExprSubquery
)

var exprTypeNames = map[ExprType]string{
	ExprInvalid:                 "invalid",
	OperatorUnaryMinus:          "operator_unary_minus",
	OperatorNot:                 "operator_not",
	OperatorIsNull:              "operator_is_null",
	OperatorIsNotNull:           "operator_is_not_null",
	OperatorExists:              "operator_exists",
	OperatorPlus:                "operator_plus",
	OperatorMinus:               "operator_minus",
	OperatorMultiply:            "operator_multiply",
	OperatorDivide:              "operator_divide",
	OperatorMod:                 "operator_mod",
	OperatorConcat:              "operator_concat",
	CompareEqual:                "compare_equal",
	CompareNotEqual:             "compare_not_equal",
	CompareLessThan:             "compare_less_than",
	CompareGreaterThan:          "compare_greater_than",
	CompareLessThanOrEqualTo:    "compare_less_than_or_equal_to",
	CompareGreaterThanOrEqualTo: "compare_greater_than_or_equal_to",
	CompareLike:                 "compare_like",
	CompareNotLike:              "compare_not_like",
	CompareIn:                   "compare_in",
	ConjunctionAnd:              "conjunction_and",
	ConjunctionOr:               "conjunction_or",
	ExprColumn:                  "column_value",
	ExprConstant:                "value_constant",
	ExprParameter:               "value_parameter",
	ExprStar:                    "star",
	ExprDefault:                 "value_default",
	ExprFunction:                "function",
	ExprCast:                    "operator_cast",
	ExprCase:                    "operator_case",
	ExprSubquery:                "row_subquery",
}

var exprTypeByName = make(map[string]ExprType, len(exprTypeNames))

func init() {
	for t, n := range exprTypeNames {
		exprTypeByName[n] = t
	}
}

// String returns the wire name of the tag.
func (t ExprType) String() string {
	if n, ok := exprTypeNames[t]; ok {
		return n
	}
	return "invalid"
}

// ParseExprType resolves a wire name back to its tag.
func ParseExprType(name string) (ExprType, bool) {
	t, ok := exprTypeByName[name]
	return t, ok
}

// IsUnaryOp reports whether the tag is one of the single-operand operators.
func (t ExprType) IsUnaryOp() bool {
	switch t {
	case OperatorUnaryMinus, OperatorNot, OperatorIsNull, OperatorIsNotNull, OperatorExists:
		return true
	}
	return false
}

// IsBinaryOp reports whether the tag is a two-operand operator, comparison,
// or boolean connective.
func (t ExprType) IsBinaryOp() bool {
	switch t {
	case OperatorPlus, OperatorMinus, OperatorMultiply, OperatorDivide,
		OperatorMod, OperatorConcat,
		CompareEqual, CompareNotEqual, CompareLessThan, CompareGreaterThan,
		CompareLessThanOrEqualTo, CompareGreaterThanOrEqualTo,
		CompareLike, CompareNotLike, CompareIn,
		ConjunctionAnd, ConjunctionOr:
		return true
	}
	return false
}
