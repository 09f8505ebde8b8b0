// Package ast defines the typed SQL abstract syntax tree produced by the
// Quarry front end, the ParseResult arena that owns it, and the document
// serialization used to hand trees to the binder and to persist them.
//
// The model is split into two closed families. Expressions (column
// references, constants, operators, function calls, case expressions,
// subquery links) share a uniform contract: deep Copy, arity-checked
// CopyWithChildren, structural Equals and Hash, and a derived display name.
// Statements (SELECT through VARIABLE SET) are deep-copyable through
// CloneStatement and serialize to tagged JSON documents.
//
// Ownership is explicit. A parent owns its child expressions as ordinary
// fields. An expression referenced from more than one place, which in
// practice means predicates (WHERE clauses, join conditions, trigger WHEN
// clauses), is owned by the ParseResult and appears in statements as an
// ExprHandle into it. Handles stay valid until TakeStatements or
// TakeExpressions moves ownership out of the arena.
//
// Golden Rule: pkg/ast imports only the standard library. Everything above
// it (pgtree, transform, the CLI) depends on it and not the reverse.
package ast
