package transform

import (
	"github.com/leapstack-labs/quarry/pkg/ast"
	"github.com/leapstack-labs/quarry/pkg/pgtree"
)

func createTransform(res *ast.ParseResult, root *pgtree.CreateStmt) (*ast.CreateStatement, error) {
	out := &ast.CreateStatement{
		CreateType:  ast.CreateTable,
		IfNotExists: root.IfNotExists,
		Table:       tableInfoFromRangeVar(root.Relation),
	}

	for _, elt := range root.TableElts {
		switch n := elt.(type) {
		case *pgtree.ColumnDef:
			col, fks, err := columnDefTransform(res, n)
			if err != nil {
				return nil, err
			}
			out.Columns = append(out.Columns, col)
			out.ForeignKeys = append(out.ForeignKeys, fks...)
		case *pgtree.Constraint:
			if err := tableConstraintTransform(out, n); err != nil {
				return nil, err
			}
		default:
			return nil, unsupported("CREATE TABLE element %s", elt.Tag())
		}
	}
	return out, nil
}

// columnDefTransform maps one column definition. An inline REFERENCES
// constraint yields an extra synthesized foreign key descriptor alongside
// the column itself; the caller inserts both.
func columnDefTransform(res *ast.ParseResult, root *pgtree.ColumnDef) (*ast.ColumnDefinition, []*ast.ColumnDefinition, error) {
	colType, err := typeNameToID(root.TypeName)
	if err != nil {
		return nil, nil, err
	}
	col := &ast.ColumnDefinition{Name: root.Colname, Type: colType}

	var fks []*ast.ColumnDefinition
	for _, con := range root.Constraints {
		switch con.Contype {
		case pgtree.ConstrPrimaryKey:
			col.IsPrimary = true
		case pgtree.ConstrNotNull:
			col.IsNotNull = true
		case pgtree.ConstrUnique:
			col.IsUnique = true
		case pgtree.ConstrDefault:
			if col.DefaultValue, err = ExprTransform(res, con.RawExpr); err != nil {
				return nil, nil, err
			}
		case pgtree.ConstrCheck:
			if col.CheckExpression, err = ExprTransform(res, con.RawExpr); err != nil {
				return nil, nil, err
			}
		case pgtree.ConstrForeignKey:
			fk, err := foreignKeyTransform(con, []string{root.Colname})
			if err != nil {
				return nil, nil, err
			}
			fks = append(fks, fk)
		default:
			return nil, nil, unsupported("column constraint %q", con.Contype)
		}
	}
	return col, fks, nil
}

func tableConstraintTransform(out *ast.CreateStatement, con *pgtree.Constraint) error {
	switch con.Contype {
	case pgtree.ConstrPrimaryKey:
		return markColumns(out.Columns, con.Keys, "PRIMARY KEY", func(c *ast.ColumnDefinition) {
			c.IsPrimary = true
		})
	case pgtree.ConstrUnique:
		return markColumns(out.Columns, con.Keys, "UNIQUE", func(c *ast.ColumnDefinition) {
			c.IsUnique = true
		})
	case pgtree.ConstrForeignKey:
		fk, err := foreignKeyTransform(con, con.FkAttrs)
		if err != nil {
			return err
		}
		out.ForeignKeys = append(out.ForeignKeys, fk)
		return nil
	default:
		return unsupported("table constraint %q", con.Contype)
	}
}

func markColumns(cols []*ast.ColumnDefinition, keys []string, what string, mark func(*ast.ColumnDefinition)) error {
	for _, key := range keys {
		found := false
		for _, col := range cols {
			if col.Name == key {
				mark(col)
				found = true
				break
			}
		}
		if !found {
			return unsupported("%s over undefined column %q", what, key)
		}
	}
	return nil
}

func foreignKeyTransform(con *pgtree.Constraint, sources []string) (*ast.ColumnDefinition, error) {
	if con.PkTable == nil {
		return nil, unsupported("foreign key without a referenced table")
	}
	if len(con.FkAttrs) > 0 {
		sources = con.FkAttrs
	}
	return &ast.ColumnDefinition{
		ForeignKeySources: sources,
		ForeignKeySinks:   con.PkAttrs,
		ForeignKeyTable:   con.PkTable.Relname,
		FKDeleteAction:    fkActionFromCode(con.FkDelAction),
		FKUpdateAction:    fkActionFromCode(con.FkUpdAction),
		FKMatch:           fkMatchFromCode(con.FkMatchtype),
	}, nil
}

// fkActionFromCode decodes the grammar engine's single-letter action
// codes. The code a and anything unrecognized mean no action.
func fkActionFromCode(code string) ast.FKAction {
	switch code {
	case "r":
		return ast.FKRestrict
	case "c":
		return ast.FKCascade
	case "n":
		return ast.FKSetNull
	case "d":
		return ast.FKSetDefault
	default:
		return ast.FKNoAction
	}
}

// fkMatchFromCode decodes the match type codes. The code s and anything
// unrecognized mean simple matching.
func fkMatchFromCode(code string) ast.FKMatchType {
	switch code {
	case "f":
		return ast.FKMatchFull
	case "p":
		return ast.FKMatchPartial
	default:
		return ast.FKMatchSimple
	}
}

func createDatabaseTransform(root *pgtree.CreatedbStmt) (*ast.CreateStatement, error) {
	if root.Dbname == "" {
		return nil, unsupported("CREATE DATABASE without a name")
	}
	return &ast.CreateStatement{
		CreateType: ast.CreateDatabase,
		Table:      &ast.TableInfo{Database: root.Dbname},
	}, nil
}

func createSchemaTransform(root *pgtree.CreateSchemaStmt) (*ast.CreateStatement, error) {
	if root.Schemaname == "" {
		return nil, unsupported("CREATE SCHEMA without a name")
	}
	return &ast.CreateStatement{
		CreateType:  ast.CreateSchema,
		IfNotExists: root.IfNotExists,
		Table:       &ast.TableInfo{Schema: root.Schemaname},
	}, nil
}

func createIndexTransform(root *pgtree.IndexStmt) (*ast.CreateStatement, error) {
	out := &ast.CreateStatement{
		CreateType: ast.CreateIndex,
		Table:      tableInfoFromRangeVar(root.Relation),
		Unique:     root.Unique,
		IndexName:  root.Idxname,
	}

	switch root.AccessMethod {
	case "", "btree":
		out.IndexType = ast.IndexBTree
	case "hash":
		out.IndexType = ast.IndexHash
	default:
		return nil, unsupported("index access method %q", root.AccessMethod)
	}

	for _, param := range root.IndexParams {
		if param.Expr != nil {
			return nil, unsupported("expression index element")
		}
		if param.Name == "" {
			return nil, unsupported("index element without a column")
		}
		out.IndexAttrs = append(out.IndexAttrs, param.Name)
	}
	return out, nil
}

func createTriggerTransform(res *ast.ParseResult, root *pgtree.CreateTrigStmt) (*ast.CreateStatement, error) {
	when, err := predicateHandle(res, root.WhenClause)
	if err != nil {
		return nil, err
	}

	// Timing and event flags share the bit layout of the Trigger*
	// constants; only the per row flag arrives separately.
	mask := root.Timing | root.Events
	if root.Row {
		mask |= ast.TriggerRow
	}

	return &ast.CreateStatement{
		CreateType:      ast.CreateTrigger,
		Table:           tableInfoFromRangeVar(root.Relation),
		TriggerName:     root.Trigname,
		TriggerFuncName: root.Funcname,
		TriggerArgs:     root.Args,
		TriggerColumns:  root.Columns,
		TriggerWhen:     when,
		TriggerType:     mask,
	}, nil
}

func createViewTransform(res *ast.ParseResult, root *pgtree.ViewStmt) (*ast.CreateStatement, error) {
	if root.View == nil {
		return nil, unsupported("CREATE VIEW without a name")
	}
	inner, ok := root.Query.(*pgtree.SelectStmt)
	if !ok || inner == nil {
		return nil, unsupported("view body %s", tagOf(root.Query))
	}
	query, err := selectTransform(res, inner)
	if err != nil {
		return nil, err
	}
	return &ast.CreateStatement{
		CreateType: ast.CreateView,
		ViewName:   root.View.Relname,
		ViewQuery:  query,
	}, nil
}

func createFunctionTransform(root *pgtree.CreateFunctionStmt) (*ast.CreateFunctionStatement, error) {
	if len(root.Funcname) == 0 {
		return nil, unsupported("CREATE FUNCTION without a name")
	}
	returns, err := typeNameToID(root.ReturnType)
	if err != nil {
		return nil, err
	}

	out := &ast.CreateFunctionStatement{
		Replace: root.Replace,
		Name:    root.Funcname[len(root.Funcname)-1],
		Returns: returns,
	}

	for _, p := range root.Parameters {
		pt, err := typeNameToID(p.ArgType)
		if err != nil {
			return nil, err
		}
		out.Parameters = append(out.Parameters, &ast.FuncParameter{Name: p.Name, Type: pt})
	}

	for _, opt := range root.Options {
		switch opt.Defname {
		case "as":
			out.Body = opt.Args
		case "language":
			if len(opt.Args) != 1 {
				return nil, unsupported("function language option with %d values", len(opt.Args))
			}
			lang, ok := ast.ParseFuncLanguage(opt.Args[0])
			if !ok {
				return nil, unsupported("function language %q", opt.Args[0])
			}
			out.Language = lang
		default:
			return nil, unsupported("function option %q", opt.Defname)
		}
	}
	return out, nil
}

func dropTransform(root *pgtree.DropStmt) (*ast.DropStatement, error) {
	if len(root.Objects) != 1 {
		return nil, unsupported("DROP of %d objects", len(root.Objects))
	}
	path := root.Objects[0]
	if len(path) == 0 {
		return nil, unsupported("DROP without a target")
	}

	out := &ast.DropStatement{
		IfExists: root.MissingOk,
		Cascade:  root.Behavior == "cascade",
	}

	switch root.RemoveType {
	case pgtree.ObjectTable:
		info, err := tableInfoFromPath(path)
		if err != nil {
			return nil, err
		}
		out.DropType = ast.DropTable
		out.Table = info
	case pgtree.ObjectIndex:
		out.DropType = ast.DropIndex
		out.IndexName = path[len(path)-1]
	case pgtree.ObjectSchema:
		out.DropType = ast.DropSchema
		out.Table = &ast.TableInfo{Schema: path[len(path)-1]}
	case pgtree.ObjectTrigger:
		// The trigger's path ends with its own name; everything before
		// it names the table the trigger is on.
		out.DropType = ast.DropTrigger
		out.TriggerName = path[len(path)-1]
		if len(path) > 1 {
			info, err := tableInfoFromPath(path[:len(path)-1])
			if err != nil {
				return nil, err
			}
			out.Table = info
		}
	default:
		return nil, unsupported("DROP of a %s", root.RemoveType)
	}
	return out, nil
}

func dropDatabaseTransform(root *pgtree.DropdbStmt) (*ast.DropStatement, error) {
	if root.Dbname == "" {
		return nil, unsupported("DROP DATABASE without a name")
	}
	return &ast.DropStatement{
		DropType: ast.DropDatabase,
		IfExists: root.MissingOk,
		Table:    &ast.TableInfo{Database: root.Dbname},
	}, nil
}

func tableInfoFromPath(path []string) (*ast.TableInfo, error) {
	switch len(path) {
	case 1:
		return &ast.TableInfo{Table: path[0]}, nil
	case 2:
		return &ast.TableInfo{Schema: path[0], Table: path[1]}, nil
	case 3:
		return &ast.TableInfo{Database: path[0], Schema: path[1], Table: path[2]}, nil
	default:
		return nil, unsupported("object path with %d parts", len(path))
	}
}
