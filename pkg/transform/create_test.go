package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/quarry/pkg/ast"
	"github.com/leapstack-labs/quarry/pkg/pgtree"
)

func TestForeignKeyActionCodes(t *testing.T) {
	tests := []struct {
		code string
		want ast.FKAction
	}{
		{"a", ast.FKNoAction},
		{"r", ast.FKRestrict},
		{"c", ast.FKCascade},
		{"n", ast.FKSetNull},
		{"d", ast.FKSetDefault},
		{"z", ast.FKNoAction},
		{"", ast.FKNoAction},
	}
	for _, tt := range tests {
		t.Run("code "+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, fkActionFromCode(tt.code))
		})
	}
}

func TestForeignKeyMatchCodes(t *testing.T) {
	tests := []struct {
		code string
		want ast.FKMatchType
	}{
		{"f", ast.FKMatchFull},
		{"p", ast.FKMatchPartial},
		{"s", ast.FKMatchSimple},
		{"q", ast.FKMatchSimple},
		{"", ast.FKMatchSimple},
	}
	for _, tt := range tests {
		t.Run("code "+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, fkMatchFromCode(tt.code))
		})
	}
}

func TestCreateTableWithInlineReference(t *testing.T) {
	root := &pgtree.CreateStmt{
		Relation: &pgtree.RangeVar{Relname: "orders"},
		TableElts: []pgtree.Node{
			&pgtree.ColumnDef{
				Colname:  "id",
				TypeName: &pgtree.TypeName{Names: []string{"int4"}},
				Constraints: []*pgtree.Constraint{
					{Contype: pgtree.ConstrPrimaryKey},
					{Contype: pgtree.ConstrNotNull},
				},
			},
			&pgtree.ColumnDef{
				Colname:  "customer_id",
				TypeName: &pgtree.TypeName{Names: []string{"int4"}},
				Constraints: []*pgtree.Constraint{{
					Contype:     pgtree.ConstrForeignKey,
					PkTable:     &pgtree.RangeVar{Relname: "customers"},
					PkAttrs:     []string{"id"},
					FkDelAction: "c",
					FkUpdAction: "a",
					FkMatchtype: "f",
				}},
			},
		},
		IfNotExists: true,
	}

	res := ast.NewParseResult()
	stmt, err := createTransform(res, root)
	require.NoError(t, err)

	assert.Equal(t, ast.CreateTable, stmt.CreateType)
	assert.True(t, stmt.IfNotExists)
	assert.Equal(t, "orders", stmt.Table.Table)

	require.Len(t, stmt.Columns, 2)
	id := stmt.Columns[0]
	assert.True(t, id.IsPrimary)
	assert.True(t, id.IsNotNull)
	assert.Equal(t, ast.TypeInteger, id.Type)
	assert.False(t, id.IsForeignKey())

	// The inline REFERENCES synthesizes a separate FK descriptor; the
	// column itself stays a plain column.
	require.Len(t, stmt.ForeignKeys, 1)
	fk := stmt.ForeignKeys[0]
	assert.True(t, fk.IsForeignKey())
	assert.Equal(t, []string{"customer_id"}, fk.ForeignKeySources)
	assert.Equal(t, []string{"id"}, fk.ForeignKeySinks)
	assert.Equal(t, "customers", fk.ForeignKeyTable)
	assert.Equal(t, ast.FKCascade, fk.FKDeleteAction)
	assert.Equal(t, ast.FKNoAction, fk.FKUpdateAction)
	assert.Equal(t, ast.FKMatchFull, fk.FKMatch)
}

func TestCreateTableLevelConstraints(t *testing.T) {
	root := &pgtree.CreateStmt{
		Relation: &pgtree.RangeVar{Relname: "t"},
		TableElts: []pgtree.Node{
			&pgtree.ColumnDef{Colname: "a", TypeName: &pgtree.TypeName{Names: []string{"int4"}}},
			&pgtree.ColumnDef{Colname: "b", TypeName: &pgtree.TypeName{Names: []string{"varchar"}}},
			&pgtree.Constraint{Contype: pgtree.ConstrPrimaryKey, Keys: []string{"a"}},
			&pgtree.Constraint{Contype: pgtree.ConstrUnique, Keys: []string{"b"}},
			&pgtree.Constraint{
				Contype: pgtree.ConstrForeignKey,
				FkAttrs: []string{"b"},
				PkTable: &pgtree.RangeVar{Relname: "u"},
				PkAttrs: []string{"name"},
			},
		},
	}

	res := ast.NewParseResult()
	stmt, err := createTransform(res, root)
	require.NoError(t, err)

	require.Len(t, stmt.Columns, 2)
	assert.True(t, stmt.Columns[0].IsPrimary)
	assert.False(t, stmt.Columns[1].IsPrimary)
	assert.True(t, stmt.Columns[1].IsUnique)

	require.Len(t, stmt.ForeignKeys, 1)
	assert.Equal(t, []string{"b"}, stmt.ForeignKeys[0].ForeignKeySources)
	assert.Equal(t, "u", stmt.ForeignKeys[0].ForeignKeyTable)
}

func TestCreateTableDefaultAndCheck(t *testing.T) {
	root := &pgtree.CreateStmt{
		Relation: &pgtree.RangeVar{Relname: "t"},
		TableElts: []pgtree.Node{&pgtree.ColumnDef{
			Colname:  "n",
			TypeName: &pgtree.TypeName{Names: []string{"int4"}},
			Constraints: []*pgtree.Constraint{
				{Contype: pgtree.ConstrDefault, RawExpr: intConst(0)},
				{Contype: pgtree.ConstrCheck, RawExpr: binOp(">=", col("n"), intConst(0))},
			},
		}},
	}

	res := ast.NewParseResult()
	stmt, err := createTransform(res, root)
	require.NoError(t, err)

	n := stmt.Columns[0]
	require.NotNil(t, n.DefaultValue)
	assert.Equal(t, ast.ExprConstant, n.DefaultValue.Type())
	require.NotNil(t, n.CheckExpression)
	assert.Equal(t, ast.CompareGreaterThanOrEqualTo, n.CheckExpression.Type())
}

func TestCreateTableRejectsPrimaryKeyOverUndefinedColumn(t *testing.T) {
	root := &pgtree.CreateStmt{
		Relation: &pgtree.RangeVar{Relname: "t"},
		TableElts: []pgtree.Node{
			&pgtree.ColumnDef{Colname: "a", TypeName: &pgtree.TypeName{Names: []string{"int4"}}},
			&pgtree.Constraint{Contype: pgtree.ConstrPrimaryKey, Keys: []string{"missing"}},
		},
	}

	res := ast.NewParseResult()
	_, err := createTransform(res, root)
	assert.Error(t, err)
}

func TestCreateDatabaseAndSchema(t *testing.T) {
	db, err := createDatabaseTransform(&pgtree.CreatedbStmt{Dbname: "shop"})
	require.NoError(t, err)
	assert.Equal(t, ast.CreateDatabase, db.CreateType)
	assert.Equal(t, "shop", db.Table.Database)

	schema, err := createSchemaTransform(&pgtree.CreateSchemaStmt{Schemaname: "audit", IfNotExists: true})
	require.NoError(t, err)
	assert.Equal(t, ast.CreateSchema, schema.CreateType)
	assert.Equal(t, "audit", schema.Table.Schema)
	assert.True(t, schema.IfNotExists)
}

func TestCreateIndex(t *testing.T) {
	stmt, err := createIndexTransform(&pgtree.IndexStmt{
		Idxname:      "idx_t_a",
		Relation:     &pgtree.RangeVar{Relname: "t"},
		AccessMethod: "hash",
		Unique:       true,
		IndexParams:  []*pgtree.IndexElem{{Name: "a"}, {Name: "b"}},
	})
	require.NoError(t, err)

	assert.Equal(t, ast.CreateIndex, stmt.CreateType)
	assert.Equal(t, ast.IndexHash, stmt.IndexType)
	assert.True(t, stmt.Unique)
	assert.Equal(t, "idx_t_a", stmt.IndexName)
	assert.Equal(t, []string{"a", "b"}, stmt.IndexAttrs)
	assert.Equal(t, "t", stmt.Table.Table)
}

func TestCreateIndexRejectsExpressions(t *testing.T) {
	_, err := createIndexTransform(&pgtree.IndexStmt{
		Idxname:     "idx",
		Relation:    &pgtree.RangeVar{Relname: "t"},
		IndexParams: []*pgtree.IndexElem{{Expr: col("a")}},
	})
	assert.Error(t, err)

	_, err = createIndexTransform(&pgtree.IndexStmt{
		Idxname:      "idx",
		Relation:     &pgtree.RangeVar{Relname: "t"},
		AccessMethod: "gin",
	})
	var uerr *UnsupportedError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Construct, "gin")
}

func TestCreateTrigger(t *testing.T) {
	root := &pgtree.CreateTrigStmt{
		Trigname:   "check_update",
		Relation:   &pgtree.RangeVar{Relname: "accounts"},
		Funcname:   []string{"check_account_update"},
		Args:       []string{"arg1"},
		Row:        true,
		Timing:     2,
		Events:     16,
		Columns:    []string{"balance"},
		WhenClause: binOp("<>", col("old", "balance"), col("new", "balance")),
	}

	res := ast.NewParseResult()
	stmt, err := createTriggerTransform(res, root)
	require.NoError(t, err)

	assert.Equal(t, ast.CreateTrigger, stmt.CreateType)
	assert.Equal(t, "check_update", stmt.TriggerName)
	assert.Equal(t, []string{"check_account_update"}, stmt.TriggerFuncName)
	assert.Equal(t, []string{"arg1"}, stmt.TriggerArgs)
	assert.Equal(t, []string{"balance"}, stmt.TriggerColumns)

	assert.Equal(t, ast.TriggerRow|ast.TriggerBefore|ast.TriggerUpdate, stmt.TriggerType)

	require.True(t, stmt.TriggerWhen.Valid())
	assert.Equal(t, 1, res.NumExpressions())
	when, ok := stmt.TriggerWhen.Get().(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.CompareNotEqual, when.Op)
}

func TestCreateView(t *testing.T) {
	res := ast.NewParseResult()
	stmt, err := createViewTransform(res, &pgtree.ViewStmt{
		View: &pgtree.RangeVar{Relname: "active_users"},
		Query: &pgtree.SelectStmt{
			TargetList:  []*pgtree.ResTarget{{Val: col("id")}},
			FromClause:  []pgtree.Node{&pgtree.RangeVar{Relname: "users"}},
			WhereClause: binOp("=", col("active"), intConst(1)),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, ast.CreateView, stmt.CreateType)
	assert.Equal(t, "active_users", stmt.ViewName)
	require.NotNil(t, stmt.ViewQuery)
	assert.Equal(t, "users", stmt.ViewQuery.From.Table.Table)
	assert.True(t, stmt.ViewQuery.Where.Valid())
}

func TestCreateFunction(t *testing.T) {
	stmt, err := createFunctionTransform(&pgtree.CreateFunctionStmt{
		Replace:  true,
		Funcname: []string{"public", "add_one"},
		Parameters: []*pgtree.FunctionParameter{
			{Name: "x", ArgType: &pgtree.TypeName{Names: []string{"int4"}}},
		},
		ReturnType: &pgtree.TypeName{Names: []string{"int4"}},
		Options: []*pgtree.DefElem{
			{Defname: "as", Args: []string{"BEGIN RETURN x + 1; END;"}},
			{Defname: "language", Args: []string{"plpgsql"}},
		},
	})
	require.NoError(t, err)

	assert.True(t, stmt.Replace)
	assert.Equal(t, "add_one", stmt.Name)
	require.Len(t, stmt.Parameters, 1)
	assert.Equal(t, "x", stmt.Parameters[0].Name)
	assert.Equal(t, ast.TypeInteger, stmt.Parameters[0].Type)
	assert.Equal(t, ast.TypeInteger, stmt.Returns)
	require.Len(t, stmt.Body, 1)
	assert.Equal(t, ast.LangPLpgSQL, stmt.Language)
}

func TestCreateFunctionRejectsUnknownLanguage(t *testing.T) {
	_, err := createFunctionTransform(&pgtree.CreateFunctionStmt{
		Funcname:   []string{"f"},
		ReturnType: &pgtree.TypeName{Names: []string{"int4"}},
		Options:    []*pgtree.DefElem{{Defname: "language", Args: []string{"rust"}}},
	})

	var uerr *UnsupportedError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Construct, "rust")
}

func TestDropVariants(t *testing.T) {
	tests := []struct {
		name  string
		root  *pgtree.DropStmt
		check func(t *testing.T, stmt *ast.DropStatement)
	}{
		{
			name: "table",
			root: &pgtree.DropStmt{
				RemoveType: pgtree.ObjectTable,
				Objects:    [][]string{{"public", "t"}},
				MissingOk:  true,
				Behavior:   "cascade",
			},
			check: func(t *testing.T, stmt *ast.DropStatement) {
				assert.Equal(t, ast.DropTable, stmt.DropType)
				assert.Equal(t, "public", stmt.Table.Schema)
				assert.Equal(t, "t", stmt.Table.Table)
				assert.True(t, stmt.IfExists)
				assert.True(t, stmt.Cascade)
			},
		},
		{
			name: "index",
			root: &pgtree.DropStmt{RemoveType: pgtree.ObjectIndex, Objects: [][]string{{"idx_t_a"}}},
			check: func(t *testing.T, stmt *ast.DropStatement) {
				assert.Equal(t, ast.DropIndex, stmt.DropType)
				assert.Equal(t, "idx_t_a", stmt.IndexName)
			},
		},
		{
			name: "schema",
			root: &pgtree.DropStmt{RemoveType: pgtree.ObjectSchema, Objects: [][]string{{"audit"}}},
			check: func(t *testing.T, stmt *ast.DropStatement) {
				assert.Equal(t, ast.DropSchema, stmt.DropType)
				assert.Equal(t, "audit", stmt.Table.Schema)
			},
		},
		{
			name: "trigger",
			root: &pgtree.DropStmt{RemoveType: pgtree.ObjectTrigger, Objects: [][]string{{"t", "check_update"}}},
			check: func(t *testing.T, stmt *ast.DropStatement) {
				assert.Equal(t, ast.DropTrigger, stmt.DropType)
				assert.Equal(t, "check_update", stmt.TriggerName)
				require.NotNil(t, stmt.Table)
				assert.Equal(t, "t", stmt.Table.Table)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := dropTransform(tt.root)
			require.NoError(t, err)
			tt.check(t, stmt)
		})
	}
}

func TestDropDatabase(t *testing.T) {
	stmt, err := dropDatabaseTransform(&pgtree.DropdbStmt{Dbname: "shop", MissingOk: true})
	require.NoError(t, err)
	assert.Equal(t, ast.DropDatabase, stmt.DropType)
	assert.Equal(t, "shop", stmt.Table.Database)
	assert.True(t, stmt.IfExists)
}

func TestDropRejectsUnknownObjectKind(t *testing.T) {
	_, err := dropTransform(&pgtree.DropStmt{
		RemoveType: pgtree.ObjectSequence,
		Objects:    [][]string{{"seq"}},
	})

	var uerr *UnsupportedError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Construct, "sequence")
}
