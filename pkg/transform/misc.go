package transform

import (
	"unicode/utf8"

	"github.com/leapstack-labs/quarry/pkg/ast"
	"github.com/leapstack-labs/quarry/pkg/pgtree"
)

func copyTransform(res *ast.ParseResult, root *pgtree.CopyStmt) (*ast.CopyStatement, error) {
	out := &ast.CopyStatement{
		FilePath:  root.Filename,
		IsFrom:    root.IsFrom,
		Delimiter: ',',
		Quote:     '"',
		Escape:    '"',
	}

	switch {
	case root.Relation != nil:
		out.Table = rangeVarTransform(root.Relation)
	case root.Query != nil:
		inner, ok := root.Query.(*pgtree.SelectStmt)
		if !ok {
			return nil, unsupported("COPY source %s", root.Query.Tag())
		}
		sel, err := selectTransform(res, inner)
		if err != nil {
			return nil, err
		}
		out.Select = sel
	default:
		return nil, unsupported("COPY without a source")
	}

	for _, opt := range root.Options {
		switch opt.Defname {
		case "format":
			format, err := optionValue(opt)
			if err != nil {
				return nil, err
			}
			switch format {
			case "csv":
				out.Format = ast.CopyCSV
			case "binary":
				out.Format = ast.CopyBinary
			case "text":
				out.Format = ast.CopyText
			default:
				return nil, unsupported("COPY format %q", format)
			}
		case "delimiter":
			r, err := optionRune(opt)
			if err != nil {
				return nil, err
			}
			out.Delimiter = r
		case "quote":
			r, err := optionRune(opt)
			if err != nil {
				return nil, err
			}
			out.Quote = r
		case "escape":
			r, err := optionRune(opt)
			if err != nil {
				return nil, err
			}
			out.Escape = r
		default:
			return nil, unsupported("COPY option %q", opt.Defname)
		}
	}
	return out, nil
}

func optionValue(opt *pgtree.DefElem) (string, error) {
	if len(opt.Args) != 1 {
		return "", unsupported("COPY option %q with %d values", opt.Defname, len(opt.Args))
	}
	return opt.Args[0], nil
}

func optionRune(opt *pgtree.DefElem) (rune, error) {
	s, err := optionValue(opt)
	if err != nil {
		return 0, err
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, unsupported("COPY option %q value %q", opt.Defname, s)
	}
	return r, nil
}

func explainTransform(res *ast.ParseResult, root *pgtree.ExplainStmt) (*ast.ExplainStatement, error) {
	inner, err := NodeTransform(res, root.Query)
	if err != nil {
		return nil, err
	}
	return &ast.ExplainStatement{Inner: inner}, nil
}

func prepareTransform(res *ast.ParseResult, root *pgtree.PrepareStmt) (*ast.PrepareStatement, error) {
	query, err := NodeTransform(res, root.Query)
	if err != nil {
		return nil, err
	}
	return &ast.PrepareStatement{Name: root.Name, Query: query}, nil
}

func executeTransform(res *ast.ParseResult, root *pgtree.ExecuteStmt) (*ast.ExecuteStatement, error) {
	out := &ast.ExecuteStatement{Name: root.Name}
	for _, p := range root.Params {
		expr, err := ExprTransform(res, p)
		if err != nil {
			return nil, err
		}
		out.Parameters = append(out.Parameters, expr)
	}
	return out, nil
}

func deallocateTransform(root *pgtree.DeallocateStmt) (*ast.DropStatement, error) {
	return &ast.DropStatement{
		DropType:     ast.DropPreparedStatement,
		PreparedName: root.Name,
	}, nil
}

func transactionTransform(root *pgtree.TransactionStmt) (*ast.TransactionStatement, error) {
	switch root.Kind {
	case pgtree.TxnBegin, pgtree.TxnStart:
		return &ast.TransactionStatement{Kind: ast.TransactionBegin}, nil
	case pgtree.TxnCommit:
		return &ast.TransactionStatement{Kind: ast.TransactionCommit}, nil
	case pgtree.TxnRollback:
		return &ast.TransactionStatement{Kind: ast.TransactionRollback}, nil
	default:
		return nil, unsupported("transaction kind %q", root.Kind)
	}
}

// vacuumTransform rewrites VACUUM as ANALYZE over the same target; there
// is no internal vacuum variant.
func vacuumTransform(root *pgtree.VacuumStmt) (*ast.AnalyzeStatement, error) {
	return &ast.AnalyzeStatement{
		Table:   tableInfoFromRangeVar(root.Relation),
		Columns: root.Columns,
	}, nil
}

func variableSetTransform(res *ast.ParseResult, root *pgtree.VariableSetStmt) (*ast.VariableSetStatement, error) {
	if root.Name == "" {
		return nil, unsupported("SET without a variable name")
	}
	out := &ast.VariableSetStatement{Name: root.Name}
	for _, arg := range root.Args {
		expr, err := ExprTransform(res, arg)
		if err != nil {
			return nil, err
		}
		out.Values = append(out.Values, expr)
	}
	return out, nil
}
