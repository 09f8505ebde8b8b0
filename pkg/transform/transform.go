// Package transform maps grammar-engine parse trees onto the typed AST.
//
// The mapping is a family of pure functions, one per external node kind,
// dispatched on the node's tag. Each call either returns a fully built
// internal node or an error; nothing is dropped silently, and a failed
// call leaves no partial statements behind because Build discards the
// whole ParseResult on the first error.
package transform

import (
	"github.com/leapstack-labs/quarry/pkg/ast"
	"github.com/leapstack-labs/quarry/pkg/pgtree"
)

// Build transforms every statement of a parse tree into a fresh
// ParseResult. On error the result is discarded and only the error
// returns; a caller never sees a half-populated arena.
func Build(tree *pgtree.ParseTree) (*ast.ParseResult, error) {
	res := ast.NewParseResult()
	for _, raw := range tree.Stmts {
		stmt, err := NodeTransform(res, raw.Stmt)
		if err != nil {
			return nil, err
		}
		res.AddStatement(stmt)
	}
	return res, nil
}

// NodeTransform maps one top-level statement node. Expressions produced
// for handle positions are registered in res as a side effect.
func NodeTransform(res *ast.ParseResult, node pgtree.Node) (ast.Statement, error) {
	if node == nil {
		return nil, unsupported("empty statement")
	}
	switch n := node.(type) {
	case *pgtree.SelectStmt:
		return selectTransform(res, n)
	case *pgtree.InsertStmt:
		return insertTransform(res, n)
	case *pgtree.UpdateStmt:
		return updateTransform(res, n)
	case *pgtree.DeleteStmt:
		return deleteTransform(res, n)
	case *pgtree.TruncateStmt:
		return truncateTransform(n)
	case *pgtree.CreateStmt:
		return createTransform(res, n)
	case *pgtree.CreatedbStmt:
		return createDatabaseTransform(n)
	case *pgtree.CreateSchemaStmt:
		return createSchemaTransform(n)
	case *pgtree.IndexStmt:
		return createIndexTransform(n)
	case *pgtree.CreateTrigStmt:
		return createTriggerTransform(res, n)
	case *pgtree.ViewStmt:
		return createViewTransform(res, n)
	case *pgtree.CreateFunctionStmt:
		return createFunctionTransform(n)
	case *pgtree.DropStmt:
		return dropTransform(n)
	case *pgtree.DropdbStmt:
		return dropDatabaseTransform(n)
	case *pgtree.CopyStmt:
		return copyTransform(res, n)
	case *pgtree.ExplainStmt:
		return explainTransform(res, n)
	case *pgtree.PrepareStmt:
		return prepareTransform(res, n)
	case *pgtree.ExecuteStmt:
		return executeTransform(res, n)
	case *pgtree.DeallocateStmt:
		return deallocateTransform(n)
	case *pgtree.TransactionStmt:
		return transactionTransform(n)
	case *pgtree.VacuumStmt:
		return vacuumTransform(n)
	case *pgtree.VariableSetStmt:
		return variableSetTransform(res, n)
	default:
		return nil, unsupported("statement node %s", node.Tag())
	}
}
