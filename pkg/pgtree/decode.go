package pgtree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode parses one grammar-engine document into a ParseTree.
func Decode(data []byte) (*ParseTree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("pgtree: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("pgtree: document is not an object")
	}
	tree := &ParseTree{}
	if n, ok, err := intField(m, "version"); err != nil {
		return nil, fmt.Errorf("pgtree: %w", err)
	} else if ok {
		tree.Version = int(n)
	}
	stmts, _, err := sliceField(m, "stmts")
	if err != nil {
		return nil, fmt.Errorf("pgtree: %w", err)
	}
	for i, sv := range stmts {
		sm, ok := sv.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("pgtree: stmts[%d]: expected object", i)
		}
		node, err := decodeNode(sm["stmt"])
		if err != nil {
			return nil, fmt.Errorf("pgtree: stmts[%d]: %w", i, err)
		}
		tree.Stmts = append(tree.Stmts, RawStmt{Stmt: node})
	}
	return tree, nil
}

func stringField(m map[string]any, key string) (string, bool, error) {
	v, ok := m[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("%s: expected string", key)
	}
	return s, true, nil
}

func boolField(m map[string]any, key string) (bool, error) {
	v, ok := m[key]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s: expected bool", key)
	}
	return b, nil
}

func intField(m map[string]any, key string) (int64, bool, error) {
	v, ok := m[key]
	if !ok {
		return 0, false, nil
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, false, fmt.Errorf("%s: expected number", key)
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false, fmt.Errorf("%s: expected integer", key)
	}
	return i, true, nil
}

func sliceField(m map[string]any, key string) ([]any, bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, false, fmt.Errorf("%s: expected array", key)
	}
	return list, true, nil
}

func stringsField(m map[string]any, key string) ([]string, error) {
	list, ok, err := sliceField(m, key)
	if err != nil || !ok {
		return nil, err
	}
	out := make([]string, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s: expected string array", key)
		}
		out[i] = s
	}
	return out, nil
}

// decodeNode unwraps a one-key {"Kind": {...}} envelope. Kinds without a
// struct here become Unknown rather than failing; the transform is the
// layer that decides what is supported.
func decodeNode(v any) (Node, error) {
	if v == nil {
		return nil, nil
	}
	env, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected node envelope")
	}
	if len(env) != 1 {
		return nil, fmt.Errorf("node envelope must have exactly one key, got %d", len(env))
	}
	var tag string
	var body any
	for k, b := range env {
		tag, body = k, b
	}
	m, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected object body", tag)
	}
	n, err := decodeTagged(tag, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	return n, nil
}

func nodeField(m map[string]any, key string) (Node, error) {
	v, ok := m[key]
	if !ok {
		return nil, nil
	}
	n, err := decodeNode(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func nodeListField(m map[string]any, key string) ([]Node, error) {
	list, ok, err := sliceField(m, key)
	if err != nil || !ok {
		return nil, err
	}
	out := make([]Node, len(list))
	for i, v := range list {
		if out[i], err = decodeNode(v); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
	}
	return out, nil
}

// typedField decodes a node-valued field that must be one specific kind.
func typedField[T Node](m map[string]any, key string) (T, error) {
	var zero T
	n, err := nodeField(m, key)
	if err != nil || n == nil {
		return zero, err
	}
	t, ok := n.(T)
	if !ok {
		return zero, fmt.Errorf("%s: unexpected %s node", key, n.Tag())
	}
	return t, nil
}

// typedListField decodes a homogeneous node list.
func typedListField[T Node](m map[string]any, key string) ([]T, error) {
	list, ok, err := sliceField(m, key)
	if err != nil || !ok {
		return nil, err
	}
	out := make([]T, len(list))
	for i, v := range list {
		n, err := decodeNode(v)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		t, ok := n.(T)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: unexpected %s node", key, i, n.Tag())
		}
		out[i] = t
	}
	return out, nil
}

func decodeTagged(tag string, m map[string]any) (Node, error) {
	switch tag {
	case "String":
		s, _, err := stringField(m, "val")
		return &String{Val: s}, err
	case "Integer":
		n, _, err := intField(m, "val")
		return &Integer{Val: n}, err
	case "Float":
		s, _, err := stringField(m, "val")
		return &Float{Val: s}, err
	case "Null":
		return &Null{}, nil
	case "A_Star":
		return &AStar{}, nil
	case "SetToDefault":
		return &SetToDefault{}, nil
	case "A_Const":
		val, err := nodeField(m, "val")
		return &AConst{Val: val}, err
	case "A_Expr":
		return decodeAExpr(m)
	case "BoolExpr":
		return decodeBoolExpr(m)
	case "CaseExpr":
		return decodeCaseExpr(m)
	case "CaseWhen":
		return decodeCaseWhen(m)
	case "ColumnRef":
		fields, err := nodeListField(m, "fields")
		return &ColumnRef{Fields: fields}, err
	case "FuncCall":
		return decodeFuncCall(m)
	case "NullTest":
		return decodeNullTest(m)
	case "ParamRef":
		n, _, err := intField(m, "number")
		return &ParamRef{Number: int(n)}, err
	case "SubLink":
		return decodeSubLink(m)
	case "TypeCast":
		return decodeTypeCast(m)
	case "TypeName":
		names, err := stringsField(m, "names")
		return &TypeName{Names: names}, err
	case "ResTarget":
		return decodeResTarget(m)
	case "SortBy":
		return decodeSortBy(m)
	case "Alias":
		name, _, err := stringField(m, "aliasname")
		return &Alias{Aliasname: name}, err
	case "RangeVar":
		return decodeRangeVar(m)
	case "RangeSubselect":
		return decodeRangeSubselect(m)
	case "JoinExpr":
		return decodeJoinExpr(m)
	case "SelectStmt":
		return decodeSelectStmt(m)
	case "InsertStmt":
		return decodeInsertStmt(m)
	case "UpdateStmt":
		return decodeUpdateStmt(m)
	case "DeleteStmt":
		return decodeDeleteStmt(m)
	case "CreateStmt":
		return decodeCreateStmt(m)
	case "ColumnDef":
		return decodeColumnDef(m)
	case "Constraint":
		return decodeConstraint(m)
	case "IndexStmt":
		return decodeIndexStmt(m)
	case "IndexElem":
		return decodeIndexElem(m)
	case "CreatedbStmt":
		name, _, err := stringField(m, "dbname")
		return &CreatedbStmt{Dbname: name}, err
	case "CreateSchemaStmt":
		return decodeCreateSchemaStmt(m)
	case "CreateTrigStmt":
		return decodeCreateTrigStmt(m)
	case "ViewStmt":
		return decodeViewStmt(m)
	case "CreateFunctionStmt":
		return decodeCreateFunctionStmt(m)
	case "FunctionParameter":
		return decodeFunctionParameter(m)
	case "DefElem":
		return decodeDefElem(m)
	case "DropStmt":
		return decodeDropStmt(m)
	case "DropdbStmt":
		return decodeDropdbStmt(m)
	case "TruncateStmt":
		rels, err := typedListField[*RangeVar](m, "relations")
		return &TruncateStmt{Relations: rels}, err
	case "CopyStmt":
		return decodeCopyStmt(m)
	case "ExplainStmt":
		q, err := nodeField(m, "query")
		return &ExplainStmt{Query: q}, err
	case "PrepareStmt":
		return decodePrepareStmt(m)
	case "ExecuteStmt":
		return decodeExecuteStmt(m)
	case "DeallocateStmt":
		name, _, err := stringField(m, "name")
		return &DeallocateStmt{Name: name}, err
	case "TransactionStmt":
		kind, _, err := stringField(m, "kind")
		return &TransactionStmt{Kind: TxnKind(kind)}, err
	case "VacuumStmt":
		return decodeVacuumStmt(m)
	case "VariableSetStmt":
		return decodeVariableSetStmt(m)
	default:
		return &Unknown{TagName: tag}, nil
	}
}

func decodeAExpr(m map[string]any) (Node, error) {
	e := &AExpr{Kind: AExprOp}
	if kind, ok, err := stringField(m, "kind"); err != nil {
		return nil, err
	} else if ok {
		e.Kind = AExprKind(kind)
	}
	var err error
	if e.Name, err = stringsField(m, "name"); err != nil {
		return nil, err
	}
	if e.Lexpr, err = nodeField(m, "lexpr"); err != nil {
		return nil, err
	}
	if e.Rexpr, err = nodeField(m, "rexpr"); err != nil {
		return nil, err
	}
	return e, nil
}

func decodeBoolExpr(m map[string]any) (Node, error) {
	op, _, err := stringField(m, "op")
	if err != nil {
		return nil, err
	}
	args, err := nodeListField(m, "args")
	if err != nil {
		return nil, err
	}
	return &BoolExpr{Op: BoolExprKind(op), Args: args}, nil
}

func decodeCaseExpr(m map[string]any) (Node, error) {
	e := &CaseExpr{}
	var err error
	if e.Arg, err = nodeField(m, "arg"); err != nil {
		return nil, err
	}
	if e.Whens, err = typedListField[*CaseWhen](m, "whens"); err != nil {
		return nil, err
	}
	if e.Defresult, err = nodeField(m, "defresult"); err != nil {
		return nil, err
	}
	return e, nil
}

func decodeCaseWhen(m map[string]any) (Node, error) {
	w := &CaseWhen{}
	var err error
	if w.Expr, err = nodeField(m, "expr"); err != nil {
		return nil, err
	}
	if w.Result, err = nodeField(m, "result"); err != nil {
		return nil, err
	}
	return w, nil
}

func decodeFuncCall(m map[string]any) (Node, error) {
	f := &FuncCall{}
	var err error
	if f.Funcname, err = stringsField(m, "funcname"); err != nil {
		return nil, err
	}
	if f.Args, err = nodeListField(m, "args"); err != nil {
		return nil, err
	}
	if f.AggStar, err = boolField(m, "agg_star"); err != nil {
		return nil, err
	}
	if f.AggDistinct, err = boolField(m, "agg_distinct"); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeNullTest(m map[string]any) (Node, error) {
	arg, err := nodeField(m, "arg")
	if err != nil {
		return nil, err
	}
	kind, _, err := stringField(m, "kind")
	if err != nil {
		return nil, err
	}
	return &NullTest{Arg: arg, Kind: NullTestKind(kind)}, nil
}

func decodeSubLink(m map[string]any) (Node, error) {
	s := &SubLink{}
	kind, _, err := stringField(m, "kind")
	if err != nil {
		return nil, err
	}
	s.Kind = SubLinkKind(kind)
	if s.Testexpr, err = nodeField(m, "testexpr"); err != nil {
		return nil, err
	}
	if s.Subselect, err = nodeField(m, "subselect"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeTypeCast(m map[string]any) (Node, error) {
	arg, err := nodeField(m, "arg")
	if err != nil {
		return nil, err
	}
	tn, err := typedField[*TypeName](m, "type_name")
	if err != nil {
		return nil, err
	}
	return &TypeCast{Arg: arg, TypeName: tn}, nil
}

func decodeResTarget(m map[string]any) (Node, error) {
	name, _, err := stringField(m, "name")
	if err != nil {
		return nil, err
	}
	val, err := nodeField(m, "val")
	if err != nil {
		return nil, err
	}
	return &ResTarget{Name: name, Val: val}, nil
}

func decodeSortBy(m map[string]any) (Node, error) {
	s := &SortBy{Dir: SortDefault}
	var err error
	if s.Node, err = nodeField(m, "node"); err != nil {
		return nil, err
	}
	if dir, ok, err := stringField(m, "dir"); err != nil {
		return nil, err
	} else if ok {
		s.Dir = SortDir(dir)
	}
	return s, nil
}

func decodeRangeVar(m map[string]any) (Node, error) {
	r := &RangeVar{}
	var err error
	if r.Catalogname, _, err = stringField(m, "catalogname"); err != nil {
		return nil, err
	}
	if r.Schemaname, _, err = stringField(m, "schemaname"); err != nil {
		return nil, err
	}
	if r.Relname, _, err = stringField(m, "relname"); err != nil {
		return nil, err
	}
	if r.Alias, err = typedField[*Alias](m, "alias"); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeRangeSubselect(m map[string]any) (Node, error) {
	r := &RangeSubselect{}
	var err error
	if r.Subquery, err = nodeField(m, "subquery"); err != nil {
		return nil, err
	}
	if r.Alias, err = typedField[*Alias](m, "alias"); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeJoinExpr(m map[string]any) (Node, error) {
	j := &JoinExpr{}
	jt, _, err := stringField(m, "jointype")
	if err != nil {
		return nil, err
	}
	j.Jointype = JoinKind(jt)
	if j.Larg, err = nodeField(m, "larg"); err != nil {
		return nil, err
	}
	if j.Rarg, err = nodeField(m, "rarg"); err != nil {
		return nil, err
	}
	if j.Quals, err = nodeField(m, "quals"); err != nil {
		return nil, err
	}
	return j, nil
}

func decodeSelectStmt(m map[string]any) (Node, error) {
	s := &SelectStmt{Op: SetOpNone}
	var err error
	if s.DistinctClause, err = nodeListField(m, "distinct_clause"); err != nil {
		return nil, err
	}
	if s.TargetList, err = typedListField[*ResTarget](m, "target_list"); err != nil {
		return nil, err
	}
	if s.FromClause, err = nodeListField(m, "from_clause"); err != nil {
		return nil, err
	}
	if s.WhereClause, err = nodeField(m, "where_clause"); err != nil {
		return nil, err
	}
	if s.GroupClause, err = nodeListField(m, "group_clause"); err != nil {
		return nil, err
	}
	if s.HavingClause, err = nodeField(m, "having_clause"); err != nil {
		return nil, err
	}
	if s.SortClause, err = typedListField[*SortBy](m, "sort_clause"); err != nil {
		return nil, err
	}
	if s.LimitCount, err = nodeField(m, "limit_count"); err != nil {
		return nil, err
	}
	if s.LimitOffset, err = nodeField(m, "limit_offset"); err != nil {
		return nil, err
	}
	if op, ok, err := stringField(m, "op"); err != nil {
		return nil, err
	} else if ok {
		s.Op = SetOp(op)
	}
	if s.All, err = boolField(m, "all"); err != nil {
		return nil, err
	}
	if s.Larg, err = typedField[*SelectStmt](m, "larg"); err != nil {
		return nil, err
	}
	if s.Rarg, err = typedField[*SelectStmt](m, "rarg"); err != nil {
		return nil, err
	}
	if rows, ok, err := sliceField(m, "values_lists"); err != nil {
		return nil, err
	} else if ok {
		s.ValuesLists = make([][]Node, len(rows))
		for i, rv := range rows {
			row, ok := rv.([]any)
			if !ok {
				return nil, fmt.Errorf("values_lists[%d]: expected array", i)
			}
			s.ValuesLists[i] = make([]Node, len(row))
			for j, cv := range row {
				if s.ValuesLists[i][j], err = decodeNode(cv); err != nil {
					return nil, fmt.Errorf("values_lists[%d][%d]: %w", i, j, err)
				}
			}
		}
	}
	if s.With, err = boolField(m, "with"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeInsertStmt(m map[string]any) (Node, error) {
	s := &InsertStmt{}
	var err error
	if s.Relation, err = typedField[*RangeVar](m, "relation"); err != nil {
		return nil, err
	}
	if s.Cols, err = typedListField[*ResTarget](m, "cols"); err != nil {
		return nil, err
	}
	if s.Select, err = typedField[*SelectStmt](m, "select"); err != nil {
		return nil, err
	}
	if s.OnConflict, err = boolField(m, "on_conflict"); err != nil {
		return nil, err
	}
	if s.Returning, err = nodeListField(m, "returning"); err != nil {
		return nil, err
	}
	if s.With, err = boolField(m, "with"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeUpdateStmt(m map[string]any) (Node, error) {
	s := &UpdateStmt{}
	var err error
	if s.Relation, err = typedField[*RangeVar](m, "relation"); err != nil {
		return nil, err
	}
	if s.TargetList, err = typedListField[*ResTarget](m, "target_list"); err != nil {
		return nil, err
	}
	if s.WhereClause, err = nodeField(m, "where_clause"); err != nil {
		return nil, err
	}
	if s.FromClause, err = nodeListField(m, "from_clause"); err != nil {
		return nil, err
	}
	if s.Returning, err = nodeListField(m, "returning"); err != nil {
		return nil, err
	}
	if s.With, err = boolField(m, "with"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeDeleteStmt(m map[string]any) (Node, error) {
	s := &DeleteStmt{}
	var err error
	if s.Relation, err = typedField[*RangeVar](m, "relation"); err != nil {
		return nil, err
	}
	if s.WhereClause, err = nodeField(m, "where_clause"); err != nil {
		return nil, err
	}
	if s.UsingClause, err = nodeListField(m, "using_clause"); err != nil {
		return nil, err
	}
	if s.Returning, err = nodeListField(m, "returning"); err != nil {
		return nil, err
	}
	if s.With, err = boolField(m, "with"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeCreateStmt(m map[string]any) (Node, error) {
	s := &CreateStmt{}
	var err error
	if s.Relation, err = typedField[*RangeVar](m, "relation"); err != nil {
		return nil, err
	}
	if s.TableElts, err = nodeListField(m, "table_elts"); err != nil {
		return nil, err
	}
	if s.IfNotExists, err = boolField(m, "if_not_exists"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeColumnDef(m map[string]any) (Node, error) {
	c := &ColumnDef{}
	var err error
	if c.Colname, _, err = stringField(m, "colname"); err != nil {
		return nil, err
	}
	if c.TypeName, err = typedField[*TypeName](m, "type_name"); err != nil {
		return nil, err
	}
	if c.Constraints, err = typedListField[*Constraint](m, "constraints"); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeConstraint(m map[string]any) (Node, error) {
	c := &Constraint{}
	contype, _, err := stringField(m, "contype")
	if err != nil {
		return nil, err
	}
	c.Contype = ConstraintKind(contype)
	if c.Keys, err = stringsField(m, "keys"); err != nil {
		return nil, err
	}
	if c.RawExpr, err = nodeField(m, "raw_expr"); err != nil {
		return nil, err
	}
	if c.PkTable, err = typedField[*RangeVar](m, "pk_table"); err != nil {
		return nil, err
	}
	if c.FkAttrs, err = stringsField(m, "fk_attrs"); err != nil {
		return nil, err
	}
	if c.PkAttrs, err = stringsField(m, "pk_attrs"); err != nil {
		return nil, err
	}
	if c.FkDelAction, _, err = stringField(m, "fk_del_action"); err != nil {
		return nil, err
	}
	if c.FkUpdAction, _, err = stringField(m, "fk_upd_action"); err != nil {
		return nil, err
	}
	if c.FkMatchtype, _, err = stringField(m, "fk_matchtype"); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeIndexStmt(m map[string]any) (Node, error) {
	s := &IndexStmt{}
	var err error
	if s.Idxname, _, err = stringField(m, "idxname"); err != nil {
		return nil, err
	}
	if s.Relation, err = typedField[*RangeVar](m, "relation"); err != nil {
		return nil, err
	}
	if s.AccessMethod, _, err = stringField(m, "access_method"); err != nil {
		return nil, err
	}
	if s.Unique, err = boolField(m, "unique"); err != nil {
		return nil, err
	}
	if s.IndexParams, err = typedListField[*IndexElem](m, "index_params"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeIndexElem(m map[string]any) (Node, error) {
	e := &IndexElem{}
	var err error
	if e.Name, _, err = stringField(m, "name"); err != nil {
		return nil, err
	}
	if e.Expr, err = nodeField(m, "expr"); err != nil {
		return nil, err
	}
	return e, nil
}

func decodeCreateSchemaStmt(m map[string]any) (Node, error) {
	s := &CreateSchemaStmt{}
	var err error
	if s.Schemaname, _, err = stringField(m, "schemaname"); err != nil {
		return nil, err
	}
	if s.IfNotExists, err = boolField(m, "if_not_exists"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeCreateTrigStmt(m map[string]any) (Node, error) {
	s := &CreateTrigStmt{}
	var err error
	if s.Trigname, _, err = stringField(m, "trigname"); err != nil {
		return nil, err
	}
	if s.Relation, err = typedField[*RangeVar](m, "relation"); err != nil {
		return nil, err
	}
	if s.Funcname, err = stringsField(m, "funcname"); err != nil {
		return nil, err
	}
	if s.Args, err = stringsField(m, "args"); err != nil {
		return nil, err
	}
	if s.Row, err = boolField(m, "row"); err != nil {
		return nil, err
	}
	var n int64
	if n, _, err = intField(m, "timing"); err != nil {
		return nil, err
	}
	s.Timing = int(n)
	if n, _, err = intField(m, "events"); err != nil {
		return nil, err
	}
	s.Events = int(n)
	if s.Columns, err = stringsField(m, "columns"); err != nil {
		return nil, err
	}
	if s.WhenClause, err = nodeField(m, "when_clause"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeViewStmt(m map[string]any) (Node, error) {
	s := &ViewStmt{}
	var err error
	if s.View, err = typedField[*RangeVar](m, "view"); err != nil {
		return nil, err
	}
	if s.Query, err = nodeField(m, "query"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeCreateFunctionStmt(m map[string]any) (Node, error) {
	s := &CreateFunctionStmt{}
	var err error
	if s.Replace, err = boolField(m, "replace"); err != nil {
		return nil, err
	}
	if s.Funcname, err = stringsField(m, "funcname"); err != nil {
		return nil, err
	}
	if s.Parameters, err = typedListField[*FunctionParameter](m, "parameters"); err != nil {
		return nil, err
	}
	if s.ReturnType, err = typedField[*TypeName](m, "return_type"); err != nil {
		return nil, err
	}
	if s.Options, err = typedListField[*DefElem](m, "options"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeFunctionParameter(m map[string]any) (Node, error) {
	p := &FunctionParameter{}
	var err error
	if p.Name, _, err = stringField(m, "name"); err != nil {
		return nil, err
	}
	if p.ArgType, err = typedField[*TypeName](m, "arg_type"); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeDefElem(m map[string]any) (Node, error) {
	e := &DefElem{}
	var err error
	if e.Defname, _, err = stringField(m, "defname"); err != nil {
		return nil, err
	}
	// Scalar options arrive as a single string, list options as an array.
	if v, ok := m["arg"]; ok {
		switch arg := v.(type) {
		case string:
			e.Args = []string{arg}
		case []any:
			e.Args = make([]string, len(arg))
			for i, av := range arg {
				s, ok := av.(string)
				if !ok {
					return nil, fmt.Errorf("arg[%d]: expected string", i)
				}
				e.Args[i] = s
			}
		default:
			return nil, fmt.Errorf("arg: expected string or string array")
		}
	}
	return e, nil
}

func decodeDropStmt(m map[string]any) (Node, error) {
	s := &DropStmt{}
	removeType, _, err := stringField(m, "remove_type")
	if err != nil {
		return nil, err
	}
	s.RemoveType = ObjectKind(removeType)
	if objects, ok, err := sliceField(m, "objects"); err != nil {
		return nil, err
	} else if ok {
		s.Objects = make([][]string, len(objects))
		for i, ov := range objects {
			path, ok := ov.([]any)
			if !ok {
				return nil, fmt.Errorf("objects[%d]: expected array", i)
			}
			s.Objects[i] = make([]string, len(path))
			for j, pv := range path {
				name, ok := pv.(string)
				if !ok {
					return nil, fmt.Errorf("objects[%d][%d]: expected string", i, j)
				}
				s.Objects[i][j] = name
			}
		}
	}
	if s.MissingOk, err = boolField(m, "missing_ok"); err != nil {
		return nil, err
	}
	if s.Behavior, _, err = stringField(m, "behavior"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeDropdbStmt(m map[string]any) (Node, error) {
	s := &DropdbStmt{}
	var err error
	if s.Dbname, _, err = stringField(m, "dbname"); err != nil {
		return nil, err
	}
	if s.MissingOk, err = boolField(m, "missing_ok"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeCopyStmt(m map[string]any) (Node, error) {
	s := &CopyStmt{}
	var err error
	if s.Relation, err = typedField[*RangeVar](m, "relation"); err != nil {
		return nil, err
	}
	if s.Query, err = nodeField(m, "query"); err != nil {
		return nil, err
	}
	if s.Filename, _, err = stringField(m, "filename"); err != nil {
		return nil, err
	}
	if s.IsFrom, err = boolField(m, "is_from"); err != nil {
		return nil, err
	}
	if s.Options, err = typedListField[*DefElem](m, "options"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodePrepareStmt(m map[string]any) (Node, error) {
	s := &PrepareStmt{}
	var err error
	if s.Name, _, err = stringField(m, "name"); err != nil {
		return nil, err
	}
	if s.Query, err = nodeField(m, "query"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeExecuteStmt(m map[string]any) (Node, error) {
	s := &ExecuteStmt{}
	var err error
	if s.Name, _, err = stringField(m, "name"); err != nil {
		return nil, err
	}
	if s.Params, err = nodeListField(m, "params"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeVacuumStmt(m map[string]any) (Node, error) {
	s := &VacuumStmt{}
	var err error
	if s.Relation, err = typedField[*RangeVar](m, "relation"); err != nil {
		return nil, err
	}
	if s.Columns, err = stringsField(m, "columns"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeVariableSetStmt(m map[string]any) (Node, error) {
	s := &VariableSetStmt{}
	var err error
	if s.Name, _, err = stringField(m, "name"); err != nil {
		return nil, err
	}
	if s.Args, err = nodeListField(m, "args"); err != nil {
		return nil, err
	}
	return s, nil
}
