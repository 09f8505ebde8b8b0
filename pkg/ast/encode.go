package ast

import "encoding/json"

// encoder tracks document-scoped ids for arena-owned expressions so the
// sharing pattern survives serialization. Ids start at zero per emitted
// document.
type encoder struct {
	ids  map[ExprHandle]int
	next int
}

// EncodeExpression serializes one expression tree as a JSON document.
// Predicates reachable through subqueries are arena handles; they keep
// their sharing in the document through expr_id/expr_ref pairs.
func EncodeExpression(e Expression) ([]byte, error) {
	if e == nil {
		return nil, &DocumentError{Message: "nil expression"}
	}
	enc := &encoder{ids: make(map[ExprHandle]int)}
	return json.Marshal(enc.exprDoc(e))
}

// EncodeStatement serializes one statement as a JSON document. Key order
// is stable, so identical statements produce identical bytes.
func EncodeStatement(s Statement) ([]byte, error) {
	if s == nil {
		return nil, &DocumentError{Message: "nil statement"}
	}
	enc := &encoder{ids: make(map[ExprHandle]int)}
	return json.Marshal(enc.stmtDoc(s))
}

func (enc *encoder) exprDoc(e Expression) map[string]any {
	doc := map[string]any{"expression_type": e.Type().String()}
	if rt := e.ReturnType(); rt != TypeInvalid {
		doc["return_value_type"] = rt.String()
	}
	if alias := e.Alias(); alias != "" {
		doc["alias"] = alias
	}
	switch x := e.(type) {
	case *Literal:
		doc["value"] = valueDoc(x.Value)
	case *ColumnRef:
		if x.Table != "" {
			doc["table"] = x.Table
		}
		doc["column"] = x.Column
	case *ParamRef:
		doc["index"] = x.Index
	case *StarExpr, *DefaultExpr:
	case *UnaryExpr:
		doc["children"] = enc.exprDocs([]Expression{x.Operand})
	case *BinaryExpr:
		doc["children"] = enc.exprDocs([]Expression{x.Left, x.Right})
	case *CastExpr:
		doc["children"] = enc.exprDocs([]Expression{x.Child})
	case *FuncCall:
		doc["func_name"] = x.Name
		if x.Distinct {
			doc["distinct"] = true
		}
		if x.Aggregate {
			doc["aggregate"] = true
		}
		if len(x.Args) > 0 {
			doc["children"] = enc.exprDocs(x.Args)
		}
	case *CaseExpr:
		if x.Operand != nil {
			doc["operand"] = enc.exprDoc(x.Operand)
		}
		if len(x.Whens) > 0 {
			whens := make([]any, len(x.Whens))
			for i, w := range x.Whens {
				whens[i] = map[string]any{
					"when": enc.exprDoc(w.When),
					"then": enc.exprDoc(w.Then),
				}
			}
			doc["whens"] = whens
		}
		if x.Else != nil {
			doc["else"] = enc.exprDoc(x.Else)
		}
	case *SubqueryExpr:
		doc["subselect"] = enc.selectDoc(x.Select)
	}
	return doc
}

func (enc *encoder) exprDocs(list []Expression) []any {
	out := make([]any, len(list))
	for i, e := range list {
		if e != nil {
			out[i] = enc.exprDoc(e)
		}
	}
	return out
}

func valueDoc(v Value) map[string]any {
	doc := map[string]any{"type": v.Type.String()}
	if v.Null {
		doc["null"] = true
		return doc
	}
	switch v.Type {
	case TypeBoolean:
		doc["value"] = v.Bool
	case TypeTinyInt, TypeSmallInt, TypeInteger, TypeBigInt:
		doc["value"] = v.Int
	case TypeDecimal:
		doc["value"] = v.Real
	case TypeVarchar, TypeTimestamp, TypeDate:
		doc["value"] = v.Str
	}
	return doc
}

// handleDoc emits a shared predicate: the full expression document tagged
// with a fresh expr_id on first encounter, a bare reference afterwards.
func (enc *encoder) handleDoc(h ExprHandle) map[string]any {
	if !h.Valid() {
		return nil
	}
	if id, ok := enc.ids[h]; ok {
		return map[string]any{"expr_ref": id}
	}
	id := enc.next
	enc.next++
	enc.ids[h] = id
	doc := enc.exprDoc(h.Get())
	doc["expr_id"] = id
	return doc
}

func (enc *encoder) putHandle(doc map[string]any, key string, h ExprHandle) {
	if d := enc.handleDoc(h); d != nil {
		doc[key] = d
	}
}

func (enc *encoder) stmtDoc(s Statement) map[string]any {
	switch x := s.(type) {
	case *SelectStatement:
		return enc.selectDoc(x)
	case *InsertStatement:
		return enc.insertDoc(x)
	case *UpdateStatement:
		return enc.updateDoc(x)
	case *DeleteStatement:
		doc := map[string]any{"stmt_type": x.Type().String()}
		putTableInfo(doc, x.Table)
		enc.putHandle(doc, "where", x.Where)
		return doc
	case *CreateStatement:
		return enc.createDoc(x)
	case *CreateFunctionStatement:
		return enc.createFunctionDoc(x)
	case *DropStatement:
		return dropDoc(x)
	case *CopyStatement:
		return enc.copyDoc(x)
	case *ExplainStatement:
		doc := map[string]any{"stmt_type": x.Type().String()}
		if x.Inner != nil {
			doc["statement"] = enc.stmtDoc(x.Inner)
		}
		return doc
	case *PrepareStatement:
		doc := map[string]any{"stmt_type": x.Type().String(), "name": x.Name}
		if x.Query != nil {
			doc["query"] = enc.stmtDoc(x.Query)
		}
		return doc
	case *ExecuteStatement:
		doc := map[string]any{"stmt_type": x.Type().String(), "name": x.Name}
		if len(x.Parameters) > 0 {
			doc["parameters"] = enc.exprDocs(x.Parameters)
		}
		return doc
	case *TransactionStatement:
		return map[string]any{"stmt_type": x.Type().String(), "kind": x.Kind.String()}
	case *AnalyzeStatement:
		doc := map[string]any{"stmt_type": x.Type().String()}
		putTableInfo(doc, x.Table)
		if len(x.Columns) > 0 {
			doc["columns"] = x.Columns
		}
		return doc
	case *VariableSetStatement:
		doc := map[string]any{"stmt_type": x.Type().String(), "name": x.Name}
		if len(x.Values) > 0 {
			doc["values"] = enc.exprDocs(x.Values)
		}
		return doc
	default:
		panic("ast: encode on unknown statement type")
	}
}

func (enc *encoder) selectDoc(s *SelectStatement) map[string]any {
	if s == nil {
		return nil
	}
	doc := map[string]any{"stmt_type": "select"}
	doc["select"] = enc.exprDocs(s.Select)
	if s.Distinct {
		doc["select_distinct"] = true
	}
	if s.From != nil {
		doc["from"] = enc.tableRefDoc(s.From)
	}
	enc.putHandle(doc, "where", s.Where)
	if s.GroupBy != nil {
		g := map[string]any{"columns": enc.exprDocs(s.GroupBy.Columns)}
		if s.GroupBy.Having != nil {
			g["having"] = enc.exprDoc(s.GroupBy.Having)
		}
		doc["group_by"] = g
	}
	if s.OrderBy != nil {
		types := make([]any, len(s.OrderBy.Types))
		for i, t := range s.OrderBy.Types {
			types[i] = t.String()
		}
		doc["order_by"] = map[string]any{
			"types": types,
			"exprs": enc.exprDocs(s.OrderBy.Exprs),
		}
	}
	if s.Limit != nil {
		doc["limit"] = map[string]any{"limit": s.Limit.Limit, "offset": s.Limit.Offset}
	}
	if s.UnionSelect != nil {
		doc["union_select"] = enc.selectDoc(s.UnionSelect)
	}
	return doc
}

func putTableInfo(doc map[string]any, t *TableInfo) {
	if t == nil {
		return
	}
	info := map[string]any{}
	if t.Database != "" {
		info["database"] = t.Database
	}
	if t.Schema != "" {
		info["schema"] = t.Schema
	}
	if t.Table != "" {
		info["table"] = t.Table
	}
	doc["table_info"] = info
}

func (enc *encoder) tableRefDoc(r *TableRef) map[string]any {
	doc := map[string]any{"type": r.Type.String()}
	if r.Alias != "" {
		doc["alias"] = r.Alias
	}
	putTableInfo(doc, r.Table)
	if r.Select != nil {
		doc["select"] = enc.selectDoc(r.Select)
	}
	if len(r.List) > 0 {
		list := make([]any, len(r.List))
		for i, item := range r.List {
			list[i] = enc.tableRefDoc(item)
		}
		doc["list"] = list
	}
	if r.Join != nil {
		j := map[string]any{"type": r.Join.Type.String()}
		if r.Join.Left != nil {
			j["left"] = enc.tableRefDoc(r.Join.Left)
		}
		if r.Join.Right != nil {
			j["right"] = enc.tableRefDoc(r.Join.Right)
		}
		enc.putHandle(j, "condition", r.Join.Condition)
		doc["join"] = j
	}
	return doc
}

func (enc *encoder) insertDoc(x *InsertStatement) map[string]any {
	doc := map[string]any{
		"stmt_type":   x.Type().String(),
		"insert_type": x.InsertType.String(),
	}
	putTableInfo(doc, x.Table)
	if len(x.Columns) > 0 {
		doc["columns"] = x.Columns
	}
	if len(x.Values) > 0 {
		rows := make([]any, len(x.Values))
		for i, row := range x.Values {
			rows[i] = enc.exprDocs(row)
		}
		doc["values"] = rows
	}
	if x.Select != nil {
		doc["select"] = enc.selectDoc(x.Select)
	}
	return doc
}

func (enc *encoder) updateDoc(x *UpdateStatement) map[string]any {
	doc := map[string]any{"stmt_type": x.Type().String()}
	putTableInfo(doc, x.Table)
	updates := make([]any, len(x.Updates))
	for i, u := range x.Updates {
		up := map[string]any{"column": u.Column}
		if u.Value != nil {
			up["value"] = enc.exprDoc(u.Value)
		}
		updates[i] = up
	}
	doc["updates"] = updates
	enc.putHandle(doc, "where", x.Where)
	return doc
}

func (enc *encoder) columnDefDoc(c *ColumnDefinition) map[string]any {
	doc := map[string]any{}
	if c.Name != "" {
		doc["name"] = c.Name
	}
	if c.Type != TypeInvalid {
		doc["type"] = c.Type.String()
	}
	if c.Varlen > 0 {
		doc["varlen"] = c.Varlen
	}
	if c.IsPrimary {
		doc["primary"] = true
	}
	if c.IsNotNull {
		doc["not_null"] = true
	}
	if c.IsUnique {
		doc["unique"] = true
	}
	if c.DefaultValue != nil {
		doc["default"] = enc.exprDoc(c.DefaultValue)
	}
	if c.CheckExpression != nil {
		doc["check"] = enc.exprDoc(c.CheckExpression)
	}
	if len(c.ForeignKeySources) > 0 {
		doc["fk_sources"] = c.ForeignKeySources
	}
	if len(c.ForeignKeySinks) > 0 {
		doc["fk_sinks"] = c.ForeignKeySinks
	}
	if c.ForeignKeyTable != "" {
		doc["fk_sink_table"] = c.ForeignKeyTable
	}
	if c.FKDeleteAction != FKNoAction {
		doc["fk_delete_action"] = c.FKDeleteAction.String()
	}
	if c.FKUpdateAction != FKNoAction {
		doc["fk_update_action"] = c.FKUpdateAction.String()
	}
	if c.FKMatch != FKMatchSimple {
		doc["fk_match"] = c.FKMatch.String()
	}
	return doc
}

func (enc *encoder) columnDefDocs(list []*ColumnDefinition) []any {
	out := make([]any, len(list))
	for i, c := range list {
		out[i] = enc.columnDefDoc(c)
	}
	return out
}

func (enc *encoder) createDoc(x *CreateStatement) map[string]any {
	doc := map[string]any{
		"stmt_type":   x.Type().String(),
		"create_type": x.CreateType.String(),
	}
	if x.IfNotExists {
		doc["if_not_exists"] = true
	}
	putTableInfo(doc, x.Table)
	if len(x.Columns) > 0 {
		doc["columns"] = enc.columnDefDocs(x.Columns)
	}
	if len(x.ForeignKeys) > 0 {
		doc["foreign_keys"] = enc.columnDefDocs(x.ForeignKeys)
	}
	if x.CreateType == CreateIndex {
		doc["index_type"] = x.IndexType.String()
		if x.Unique {
			doc["unique"] = true
		}
		doc["index_name"] = x.IndexName
		if len(x.IndexAttrs) > 0 {
			doc["index_attrs"] = x.IndexAttrs
		}
	}
	if x.TriggerName != "" {
		doc["trigger_name"] = x.TriggerName
	}
	if len(x.TriggerFuncName) > 0 {
		doc["trigger_func_name"] = x.TriggerFuncName
	}
	if len(x.TriggerArgs) > 0 {
		doc["trigger_args"] = x.TriggerArgs
	}
	if len(x.TriggerColumns) > 0 {
		doc["trigger_columns"] = x.TriggerColumns
	}
	enc.putHandle(doc, "trigger_when", x.TriggerWhen)
	if x.TriggerType != 0 {
		doc["trigger_type"] = x.TriggerType
	}
	if x.ViewName != "" {
		doc["view_name"] = x.ViewName
	}
	if x.ViewQuery != nil {
		doc["view_query"] = enc.selectDoc(x.ViewQuery)
	}
	return doc
}

func (enc *encoder) createFunctionDoc(x *CreateFunctionStatement) map[string]any {
	doc := map[string]any{
		"stmt_type": x.Type().String(),
		"func_name": x.Name,
		"returns":   x.Returns.String(),
		"language":  x.Language.String(),
	}
	if x.Replace {
		doc["replace"] = true
	}
	if len(x.Parameters) > 0 {
		params := make([]any, len(x.Parameters))
		for i, p := range x.Parameters {
			params[i] = map[string]any{"name": p.Name, "type": p.Type.String()}
		}
		doc["parameters"] = params
	}
	if len(x.Body) > 0 {
		doc["body"] = x.Body
	}
	return doc
}

func dropDoc(x *DropStatement) map[string]any {
	doc := map[string]any{
		"stmt_type": x.Type().String(),
		"drop_type": x.DropType.String(),
	}
	if x.IfExists {
		doc["if_exists"] = true
	}
	if x.Cascade {
		doc["cascade"] = true
	}
	putTableInfo(doc, x.Table)
	if x.IndexName != "" {
		doc["index_name"] = x.IndexName
	}
	if x.TriggerName != "" {
		doc["trigger_name"] = x.TriggerName
	}
	if x.PreparedName != "" {
		doc["prepared_name"] = x.PreparedName
	}
	return doc
}

func (enc *encoder) copyDoc(x *CopyStatement) map[string]any {
	doc := map[string]any{
		"stmt_type": x.Type().String(),
		"format":    x.Format.String(),
	}
	if x.Table != nil {
		doc["table"] = enc.tableRefDoc(x.Table)
	}
	if x.Select != nil {
		doc["select"] = enc.selectDoc(x.Select)
	}
	if x.FilePath != "" {
		doc["file_path"] = x.FilePath
	}
	if x.IsFrom {
		doc["is_from"] = true
	}
	if x.Delimiter != 0 {
		doc["delimiter"] = string(x.Delimiter)
	}
	if x.Quote != 0 {
		doc["quote"] = string(x.Quote)
	}
	if x.Escape != 0 {
		doc["escape"] = string(x.Escape)
	}
	return doc
}
