package transform

import (
	"github.com/leapstack-labs/quarry/pkg/ast"
	"github.com/leapstack-labs/quarry/pkg/pgtree"
)

func selectTransform(res *ast.ParseResult, root *pgtree.SelectStmt) (*ast.SelectStatement, error) {
	if root.With {
		return nil, unsupported("WITH clause")
	}
	if len(root.ValuesLists) > 0 {
		return nil, unsupported("VALUES list outside INSERT")
	}

	switch root.Op {
	case pgtree.SetOpNone:
	case pgtree.SetOpUnion:
		if root.All {
			return nil, unsupported("UNION ALL")
		}
		left, err := selectTransform(res, root.Larg)
		if err != nil {
			return nil, err
		}
		right, err := selectTransform(res, root.Rarg)
		if err != nil {
			return nil, err
		}
		tail := left
		for tail.UnionSelect != nil {
			tail = tail.UnionSelect
		}
		tail.UnionSelect = right
		return left, nil
	default:
		return nil, unsupported("set operation %s", root.Op)
	}

	out := &ast.SelectStatement{}

	distinct, err := distinctTransform(root.DistinctClause)
	if err != nil {
		return nil, err
	}
	out.Distinct = distinct

	if out.Select, err = targetTransform(res, root.TargetList); err != nil {
		return nil, err
	}
	if out.From, err = fromTransform(res, root.FromClause); err != nil {
		return nil, err
	}
	if out.Where, err = predicateHandle(res, root.WhereClause); err != nil {
		return nil, err
	}
	if out.GroupBy, err = groupByTransform(res, root.GroupClause, root.HavingClause); err != nil {
		return nil, err
	}
	if out.OrderBy, err = orderByTransform(res, root.SortClause); err != nil {
		return nil, err
	}
	if root.LimitCount != nil || root.LimitOffset != nil {
		limit := &ast.LimitDescription{}
		if limit.Limit, err = limitValue(root.LimitCount, ast.NoLimit); err != nil {
			return nil, err
		}
		if limit.Offset, err = limitValue(root.LimitOffset, ast.NoOffset); err != nil {
			return nil, err
		}
		out.Limit = limit
	}
	return out, nil
}

// distinctTransform reads the grammar engine's distinct clause: empty
// means none, a list of empty entries means plain DISTINCT, and any
// non-empty entry is DISTINCT ON.
func distinctTransform(clause []pgtree.Node) (bool, error) {
	if len(clause) == 0 {
		return false, nil
	}
	for _, n := range clause {
		if n != nil {
			return false, unsupported("DISTINCT ON")
		}
	}
	return true, nil
}

func targetTransform(res *ast.ParseResult, list []*pgtree.ResTarget) ([]ast.Expression, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]ast.Expression, 0, len(list))
	for _, rt := range list {
		expr, err := ExprTransform(res, rt.Val)
		if err != nil {
			return nil, err
		}
		if rt.Name != "" {
			expr.SetAlias(rt.Name)
		}
		out = append(out, expr)
	}
	return out, nil
}

// predicateHandle registers a predicate expression in the arena and
// returns its handle. A nil node yields the zero, invalid handle.
func predicateHandle(res *ast.ParseResult, node pgtree.Node) (ast.ExprHandle, error) {
	if node == nil {
		return ast.ExprHandle{}, nil
	}
	expr, err := ExprTransform(res, node)
	if err != nil {
		return ast.ExprHandle{}, err
	}
	return res.AddExpression(expr), nil
}

func fromTransform(res *ast.ParseResult, clause []pgtree.Node) (*ast.TableRef, error) {
	switch len(clause) {
	case 0:
		return nil, nil
	case 1:
		return fromItemTransform(res, clause[0])
	default:
		// Comma-separated FROM items form a cross product.
		list := make([]*ast.TableRef, 0, len(clause))
		for _, item := range clause {
			ref, err := fromItemTransform(res, item)
			if err != nil {
				return nil, err
			}
			list = append(list, ref)
		}
		return &ast.TableRef{Type: ast.TableRefCrossProduct, List: list}, nil
	}
}

func fromItemTransform(res *ast.ParseResult, node pgtree.Node) (*ast.TableRef, error) {
	switch n := node.(type) {
	case *pgtree.RangeVar:
		return rangeVarTransform(n), nil
	case *pgtree.RangeSubselect:
		return rangeSubselectTransform(res, n)
	case *pgtree.JoinExpr:
		join, err := joinTransform(res, n)
		if err != nil {
			return nil, err
		}
		return &ast.TableRef{Type: ast.TableRefJoin, Join: join}, nil
	default:
		return nil, unsupported("FROM item %s", tagOf(node))
	}
}

func rangeVarTransform(root *pgtree.RangeVar) *ast.TableRef {
	return ast.NewTableRefName(tableInfoFromRangeVar(root), aliasOf(root.Alias))
}

func rangeSubselectTransform(res *ast.ParseResult, root *pgtree.RangeSubselect) (*ast.TableRef, error) {
	inner, ok := root.Subquery.(*pgtree.SelectStmt)
	if !ok || inner == nil {
		return nil, unsupported("FROM subquery body %s", tagOf(root.Subquery))
	}
	sel, err := selectTransform(res, inner)
	if err != nil {
		return nil, err
	}
	return &ast.TableRef{
		Type:   ast.TableRefSelect,
		Alias:  aliasOf(root.Alias),
		Select: sel,
	}, nil
}

func joinTransform(res *ast.ParseResult, root *pgtree.JoinExpr) (*ast.JoinDefinition, error) {
	join := &ast.JoinDefinition{}
	switch root.Jointype {
	case pgtree.JoinInner:
		join.Type = ast.JoinInner
	case pgtree.JoinLeft:
		join.Type = ast.JoinLeft
	case pgtree.JoinRight:
		join.Type = ast.JoinRight
	case pgtree.JoinFull:
		join.Type = ast.JoinOuter
	case pgtree.JoinSemi:
		join.Type = ast.JoinSemi
	default:
		return nil, unsupported("join kind %q", root.Jointype)
	}

	var err error
	if join.Left, err = fromItemTransform(res, root.Larg); err != nil {
		return nil, err
	}
	if join.Right, err = fromItemTransform(res, root.Rarg); err != nil {
		return nil, err
	}
	if join.Condition, err = predicateHandle(res, root.Quals); err != nil {
		return nil, err
	}
	return join, nil
}

func groupByTransform(res *ast.ParseResult, group []pgtree.Node, having pgtree.Node) (*ast.GroupByDescription, error) {
	if len(group) == 0 && having == nil {
		return nil, nil
	}
	out := &ast.GroupByDescription{}
	for _, g := range group {
		expr, err := ExprTransform(res, g)
		if err != nil {
			return nil, err
		}
		out.Columns = append(out.Columns, expr)
	}
	if having != nil {
		expr, err := ExprTransform(res, having)
		if err != nil {
			return nil, err
		}
		out.Having = expr
	}
	return out, nil
}

func orderByTransform(res *ast.ParseResult, sorts []*pgtree.SortBy) (*ast.OrderByDescription, error) {
	if len(sorts) == 0 {
		return nil, nil
	}
	out := &ast.OrderByDescription{
		Types: make([]ast.OrderType, 0, len(sorts)),
		Exprs: make([]ast.Expression, 0, len(sorts)),
	}
	for _, sb := range sorts {
		var ot ast.OrderType
		switch sb.Dir {
		case pgtree.SortDefault, pgtree.SortAsc:
			ot = ast.OrderAsc
		case pgtree.SortDesc:
			ot = ast.OrderDesc
		default:
			return nil, unsupported("sort direction %q", sb.Dir)
		}
		expr, err := ExprTransform(res, sb.Node)
		if err != nil {
			return nil, err
		}
		out.Types = append(out.Types, ot)
		out.Exprs = append(out.Exprs, expr)
	}
	return out, nil
}

// limitValue reads a LIMIT or OFFSET count, which the grammar engine
// constrains to an integer constant. Absent means unbounded.
func limitValue(node pgtree.Node, absent int64) (int64, error) {
	if node == nil {
		return absent, nil
	}
	c, ok := node.(*pgtree.AConst)
	if !ok {
		return 0, unsupported("limit expression %s", node.Tag())
	}
	iv, ok := c.Val.(*pgtree.Integer)
	if !ok {
		return 0, unsupported("limit value %s", tagOf(c.Val))
	}
	return iv.Val, nil
}

func tableInfoFromRangeVar(rv *pgtree.RangeVar) *ast.TableInfo {
	if rv == nil {
		return nil
	}
	return &ast.TableInfo{
		Database: rv.Catalogname,
		Schema:   rv.Schemaname,
		Table:    rv.Relname,
	}
}

func aliasOf(a *pgtree.Alias) string {
	if a == nil {
		return ""
	}
	return a.Aliasname
}
