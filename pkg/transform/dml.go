package transform

import (
	"github.com/leapstack-labs/quarry/pkg/ast"
	"github.com/leapstack-labs/quarry/pkg/pgtree"
)

func insertTransform(res *ast.ParseResult, root *pgtree.InsertStmt) (*ast.InsertStatement, error) {
	if root.With {
		return nil, unsupported("INSERT WITH clause")
	}
	if root.OnConflict {
		return nil, unsupported("INSERT ON CONFLICT clause")
	}
	if len(root.Returning) > 0 {
		return nil, unsupported("INSERT RETURNING clause")
	}
	if root.Select == nil {
		return nil, unsupported("INSERT without a source")
	}

	out := &ast.InsertStatement{Table: tableInfoFromRangeVar(root.Relation)}
	for _, col := range root.Cols {
		out.Columns = append(out.Columns, col.Name)
	}

	src := root.Select
	if len(src.ValuesLists) > 0 {
		out.InsertType = ast.InsertValues
		out.Values = make([][]ast.Expression, 0, len(src.ValuesLists))
		for _, row := range src.ValuesLists {
			cells := make([]ast.Expression, 0, len(row))
			for _, cell := range row {
				expr, err := ExprTransform(res, cell)
				if err != nil {
					return nil, err
				}
				cells = append(cells, expr)
			}
			out.Values = append(out.Values, cells)
		}
		return out, nil
	}

	sel, err := selectTransform(res, src)
	if err != nil {
		return nil, err
	}
	out.InsertType = ast.InsertSelect
	out.Select = sel
	return out, nil
}

func updateTransform(res *ast.ParseResult, root *pgtree.UpdateStmt) (*ast.UpdateStatement, error) {
	if root.With {
		return nil, unsupported("UPDATE WITH clause")
	}
	if len(root.FromClause) > 0 {
		return nil, unsupported("UPDATE FROM clause")
	}
	if len(root.Returning) > 0 {
		return nil, unsupported("UPDATE RETURNING clause")
	}

	out := &ast.UpdateStatement{Table: tableInfoFromRangeVar(root.Relation)}
	var err error
	if out.Updates, err = updateTargetTransform(res, root.TargetList); err != nil {
		return nil, err
	}
	if out.Where, err = predicateHandle(res, root.WhereClause); err != nil {
		return nil, err
	}
	return out, nil
}

func updateTargetTransform(res *ast.ParseResult, list []*pgtree.ResTarget) ([]ast.UpdateClause, error) {
	out := make([]ast.UpdateClause, 0, len(list))
	for _, rt := range list {
		value, err := ExprTransform(res, rt.Val)
		if err != nil {
			return nil, err
		}
		out = append(out, ast.UpdateClause{Column: rt.Name, Value: value})
	}
	return out, nil
}

func deleteTransform(res *ast.ParseResult, root *pgtree.DeleteStmt) (*ast.DeleteStatement, error) {
	if root.With {
		return nil, unsupported("DELETE WITH clause")
	}
	if len(root.UsingClause) > 0 {
		return nil, unsupported("DELETE USING clause")
	}
	if len(root.Returning) > 0 {
		return nil, unsupported("DELETE RETURNING clause")
	}

	out := &ast.DeleteStatement{Table: tableInfoFromRangeVar(root.Relation)}
	var err error
	if out.Where, err = predicateHandle(res, root.WhereClause); err != nil {
		return nil, err
	}
	return out, nil
}

// truncateTransform rewrites TRUNCATE as an unqualified DELETE; there is
// no internal truncate variant.
func truncateTransform(root *pgtree.TruncateStmt) (*ast.DeleteStatement, error) {
	if len(root.Relations) != 1 {
		return nil, unsupported("TRUNCATE of %d tables", len(root.Relations))
	}
	return &ast.DeleteStatement{Table: tableInfoFromRangeVar(root.Relations[0])}, nil
}
