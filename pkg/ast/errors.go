package ast

import "fmt"

// ArityError is returned by CopyWithChildren when the replacement child
// count does not match the expression type.
type ArityError struct {
	Type ExprType
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("ast: %s takes %d children, got %d", e.Type, e.Want, e.Got)
}

// DocumentError is returned by the decoder when a serialized document is
// malformed: an unknown tag, a missing required field, a bad arity, or an
// unresolved expression reference.
type DocumentError struct {
	Field   string
	Message string
}

func (e *DocumentError) Error() string {
	if e.Field == "" {
		return "ast: invalid document: " + e.Message
	}
	return fmt.Sprintf("ast: invalid document: field %q: %s", e.Field, e.Message)
}

func docErrorf(field, format string, args ...any) *DocumentError {
	return &DocumentError{Field: field, Message: fmt.Sprintf(format, args...)}
}
