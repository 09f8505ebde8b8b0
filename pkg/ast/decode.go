package ast

import (
	"bytes"
	"encoding/json"
)

// decodeState rebuilds a document into expressions and statements,
// re-registering each shared predicate exactly once into the target
// arena.
type decodeState struct {
	res   *ParseResult
	byID  map[int]ExprHandle
	added []ExprHandle
}

// DecodeExpression rebuilds the expression serialized in data. Predicates
// reachable through subqueries are registered into res; their handles are
// returned alongside the expression itself, which the caller owns. A failed
// decode can leave expressions already registered in res: decode into a
// fresh arena and discard it on error.
func DecodeExpression(data []byte, res *ParseResult) (Expression, []ExprHandle, error) {
	m, err := parseDoc(data)
	if err != nil {
		return nil, nil, err
	}
	d := &decodeState{res: res, byID: make(map[int]ExprHandle)}
	e, err := d.decodeExprMap(m)
	if err != nil {
		return nil, nil, err
	}
	return e, d.added, nil
}

// DecodeStatement rebuilds the statement serialized in data. Shared
// predicates are registered into res exactly once each; every reference
// in the document resolves to the same slot, so the handle topology of
// the encoded statement survives. The returned handles list the
// registered expressions in registration order. As with DecodeExpression,
// res is not unwound on error and should be discarded by the caller.
func DecodeStatement(data []byte, res *ParseResult) (Statement, []ExprHandle, error) {
	m, err := parseDoc(data)
	if err != nil {
		return nil, nil, err
	}
	d := &decodeState{res: res, byID: make(map[int]ExprHandle)}
	s, err := d.decodeStmtMap(m)
	if err != nil {
		return nil, nil, err
	}
	return s, d.added, nil
}

func parseDoc(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &DocumentError{Message: err.Error()}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &DocumentError{Message: "document is not an object"}
	}
	return m, nil
}

func docString(m map[string]any, key string) (string, bool, error) {
	v, ok := m[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, docErrorf(key, "expected string")
	}
	return s, true, nil
}

func reqDocString(m map[string]any, key string) (string, error) {
	s, ok, err := docString(m, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", docErrorf(key, "missing")
	}
	return s, nil
}

func docBool(m map[string]any, key string) (bool, error) {
	v, ok := m[key]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, docErrorf(key, "expected bool")
	}
	return b, nil
}

func docInt(m map[string]any, key string) (int64, bool, error) {
	v, ok := m[key]
	if !ok {
		return 0, false, nil
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, false, docErrorf(key, "expected number")
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false, docErrorf(key, "expected integer")
	}
	return i, true, nil
}

func docFloat(m map[string]any, key string) (float64, bool, error) {
	v, ok := m[key]
	if !ok {
		return 0, false, nil
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, false, docErrorf(key, "expected number")
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false, docErrorf(key, "expected number")
	}
	return f, true, nil
}

func docMap(m map[string]any, key string) (map[string]any, bool, error) {
	v, ok := m[key]
	if !ok {
		return nil, false, nil
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil, false, docErrorf(key, "expected object")
	}
	return sub, true, nil
}

func docSlice(m map[string]any, key string) ([]any, bool, error) {
	v, ok := m[key]
	if !ok {
		return nil, false, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, false, docErrorf(key, "expected array")
	}
	return list, true, nil
}

func docStrings(m map[string]any, key string) ([]string, error) {
	list, ok, err := docSlice(m, key)
	if err != nil || !ok {
		return nil, err
	}
	out := make([]string, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, docErrorf(key, "expected string array")
		}
		out[i] = s
	}
	return out, nil
}

func (d *decodeState) decodeExpr(v any) (Expression, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &DocumentError{Message: "expression is not an object"}
	}
	return d.decodeExprMap(m)
}

func (d *decodeState) decodeExprMap(m map[string]any) (Expression, error) {
	tag, err := reqDocString(m, "expression_type")
	if err != nil {
		return nil, err
	}
	t, ok := ParseExprType(tag)
	if !ok || t == ExprInvalid {
		return nil, docErrorf("expression_type", "unknown tag %q", tag)
	}

	// Absent or unrecognized return types fall back to invalid.
	rt := TypeInvalid
	if name, ok, err := docString(m, "return_value_type"); err != nil {
		return nil, err
	} else if ok {
		if parsed, found := ParseTypeID(name); found {
			rt = parsed
		}
	}
	alias, _, err := docString(m, "alias")
	if err != nil {
		return nil, err
	}
	children, err := d.decodeExprList(m, "children")
	if err != nil {
		return nil, err
	}

	var e Expression
	switch {
	case t.IsUnaryOp():
		if len(children) != 1 {
			return nil, docErrorf("children", "%s takes 1 child, got %d", t, len(children))
		}
		e = &UnaryExpr{Op: t, Operand: children[0]}
	case t.IsBinaryOp():
		if len(children) != 2 {
			return nil, docErrorf("children", "%s takes 2 children, got %d", t, len(children))
		}
		e = &BinaryExpr{Op: t, Left: children[0], Right: children[1]}
	case t == ExprCast:
		if len(children) != 1 {
			return nil, docErrorf("children", "%s takes 1 child, got %d", t, len(children))
		}
		e = &CastExpr{Child: children[0]}
	case t == ExprFunction:
		name, err := reqDocString(m, "func_name")
		if err != nil {
			return nil, err
		}
		distinct, err := docBool(m, "distinct")
		if err != nil {
			return nil, err
		}
		aggregate, err := docBool(m, "aggregate")
		if err != nil {
			return nil, err
		}
		e = &FuncCall{Name: name, Distinct: distinct, Aggregate: aggregate, Args: children}
	default:
		if len(children) != 0 {
			return nil, docErrorf("children", "%s takes no children, got %d", t, len(children))
		}
		switch t {
		case ExprColumn:
			table, _, err := docString(m, "table")
			if err != nil {
				return nil, err
			}
			column, _, err := docString(m, "column")
			if err != nil {
				return nil, err
			}
			e = &ColumnRef{Table: table, Column: column}
		case ExprConstant:
			vm, ok, err := docMap(m, "value")
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, docErrorf("value", "missing")
			}
			val, err := decodeValue(vm)
			if err != nil {
				return nil, err
			}
			e = &Literal{Value: val}
		case ExprParameter:
			idx, _, err := docInt(m, "index")
			if err != nil {
				return nil, err
			}
			e = &ParamRef{Index: int(idx)}
		case ExprStar:
			e = &StarExpr{}
		case ExprDefault:
			e = &DefaultExpr{}
		case ExprCase:
			ce := &CaseExpr{}
			if ov, ok := m["operand"]; ok {
				if ce.Operand, err = d.decodeExpr(ov); err != nil {
					return nil, err
				}
			}
			whens, _, err := docSlice(m, "whens")
			if err != nil {
				return nil, err
			}
			for _, wv := range whens {
				wm, ok := wv.(map[string]any)
				if !ok {
					return nil, docErrorf("whens", "expected object")
				}
				var w WhenClause
				if w.When, err = d.decodeExpr(wm["when"]); err != nil {
					return nil, err
				}
				if w.Then, err = d.decodeExpr(wm["then"]); err != nil {
					return nil, err
				}
				ce.Whens = append(ce.Whens, w)
			}
			if ev, ok := m["else"]; ok {
				if ce.Else, err = d.decodeExpr(ev); err != nil {
					return nil, err
				}
			}
			e = ce
		case ExprSubquery:
			sm, ok, err := docMap(m, "subselect")
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, docErrorf("subselect", "missing")
			}
			sel, err := d.decodeSelectMap(sm)
			if err != nil {
				return nil, err
			}
			e = &SubqueryExpr{Select: sel}
		default:
			return nil, docErrorf("expression_type", "unknown tag %q", tag)
		}
	}

	e.SetReturnType(rt)
	if alias != "" {
		e.SetAlias(alias)
	}
	return e, nil
}

func (d *decodeState) decodeExprs(list []any) ([]Expression, error) {
	out := make([]Expression, len(list))
	for i, v := range list {
		e, err := d.decodeExpr(v)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func (d *decodeState) decodeExprList(m map[string]any, key string) ([]Expression, error) {
	list, ok, err := docSlice(m, key)
	if err != nil || !ok {
		return nil, err
	}
	return d.decodeExprs(list)
}

func decodeValue(m map[string]any) (Value, error) {
	typeName, _, err := docString(m, "type")
	if err != nil {
		return Value{}, err
	}
	t, _ := ParseTypeID(typeName)
	null, err := docBool(m, "null")
	if err != nil {
		return Value{}, err
	}
	if null {
		return Value{Type: t, Null: true}, nil
	}
	v := Value{Type: t}
	switch t {
	case TypeBoolean:
		b, ok := m["value"].(bool)
		if !ok {
			return Value{}, docErrorf("value", "expected bool")
		}
		v.Bool = b
	case TypeTinyInt, TypeSmallInt, TypeInteger, TypeBigInt:
		n, _, err := docInt(m, "value")
		if err != nil {
			return Value{}, err
		}
		v.Int = n
	case TypeDecimal:
		f, _, err := docFloat(m, "value")
		if err != nil {
			return Value{}, err
		}
		v.Real = f
	case TypeVarchar, TypeTimestamp, TypeDate:
		s, _, err := docString(m, "value")
		if err != nil {
			return Value{}, err
		}
		v.Str = s
	}
	return v, nil
}

// decodeHandle resolves a handle-valued field. A document with expr_id
// registers the expression into the arena; expr_ref points back at a slot
// registered earlier in the same document.
func (d *decodeState) decodeHandle(m map[string]any, key string) (ExprHandle, error) {
	v, ok := m[key]
	if !ok {
		return ExprHandle{}, nil
	}
	hm, ok := v.(map[string]any)
	if !ok {
		return ExprHandle{}, docErrorf(key, "expected object")
	}
	if ref, ok, err := docInt(hm, "expr_ref"); err != nil {
		return ExprHandle{}, err
	} else if ok {
		h, found := d.byID[int(ref)]
		if !found {
			return ExprHandle{}, docErrorf(key, "unresolved expression reference %d", ref)
		}
		return h, nil
	}
	id, ok, err := docInt(hm, "expr_id")
	if err != nil {
		return ExprHandle{}, err
	}
	if !ok {
		return ExprHandle{}, docErrorf(key, "expected expr_id or expr_ref")
	}
	e, err := d.decodeExprMap(hm)
	if err != nil {
		return ExprHandle{}, err
	}
	h := d.res.AddExpression(e)
	d.byID[int(id)] = h
	d.added = append(d.added, h)
	return h, nil
}

func (d *decodeState) decodeStmtMap(m map[string]any) (Statement, error) {
	tag, err := reqDocString(m, "stmt_type")
	if err != nil {
		return nil, err
	}
	t, ok := ParseStatementType(tag)
	if !ok || t == StmtInvalid {
		return nil, docErrorf("stmt_type", "unknown tag %q", tag)
	}
	switch t {
	case StmtSelect:
		return d.decodeSelectMap(m)
	case StmtInsert:
		return d.decodeInsert(m)
	case StmtUpdate:
		return d.decodeUpdate(m)
	case StmtDelete:
		s := &DeleteStatement{}
		if s.Table, err = d.decodeTableInfoField(m); err != nil {
			return nil, err
		}
		if s.Where, err = d.decodeHandle(m, "where"); err != nil {
			return nil, err
		}
		return s, nil
	case StmtCreate:
		return d.decodeCreate(m)
	case StmtCreateFunction:
		return d.decodeCreateFunction(m)
	case StmtDrop:
		return d.decodeDrop(m)
	case StmtCopy:
		return d.decodeCopy(m)
	case StmtExplain:
		s := &ExplainStatement{}
		if im, ok, err := docMap(m, "statement"); err != nil {
			return nil, err
		} else if ok {
			if s.Inner, err = d.decodeStmtMap(im); err != nil {
				return nil, err
			}
		}
		return s, nil
	case StmtPrepare:
		s := &PrepareStatement{}
		if s.Name, _, err = docString(m, "name"); err != nil {
			return nil, err
		}
		if qm, ok, err := docMap(m, "query"); err != nil {
			return nil, err
		} else if ok {
			if s.Query, err = d.decodeStmtMap(qm); err != nil {
				return nil, err
			}
		}
		return s, nil
	case StmtExecute:
		s := &ExecuteStatement{}
		if s.Name, _, err = docString(m, "name"); err != nil {
			return nil, err
		}
		if s.Parameters, err = d.decodeExprList(m, "parameters"); err != nil {
			return nil, err
		}
		return s, nil
	case StmtTransaction:
		kindName, err := reqDocString(m, "kind")
		if err != nil {
			return nil, err
		}
		kind, ok := ParseTransactionKind(kindName)
		if !ok {
			return nil, docErrorf("kind", "unknown transaction kind %q", kindName)
		}
		return &TransactionStatement{Kind: kind}, nil
	case StmtAnalyze:
		s := &AnalyzeStatement{}
		if s.Table, err = d.decodeTableInfoField(m); err != nil {
			return nil, err
		}
		if s.Columns, err = docStrings(m, "columns"); err != nil {
			return nil, err
		}
		return s, nil
	case StmtVariableSet:
		s := &VariableSetStatement{}
		if s.Name, _, err = docString(m, "name"); err != nil {
			return nil, err
		}
		if s.Values, err = d.decodeExprList(m, "values"); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, docErrorf("stmt_type", "unknown tag %q", tag)
	}
}

func (d *decodeState) decodeSelectMap(m map[string]any) (*SelectStatement, error) {
	s := &SelectStatement{}
	var err error
	if s.Select, err = d.decodeExprList(m, "select"); err != nil {
		return nil, err
	}
	if s.Distinct, err = docBool(m, "select_distinct"); err != nil {
		return nil, err
	}
	if fm, ok, err2 := docMap(m, "from"); err2 != nil {
		return nil, err2
	} else if ok {
		if s.From, err = d.decodeTableRef(fm); err != nil {
			return nil, err
		}
	}
	if s.Where, err = d.decodeHandle(m, "where"); err != nil {
		return nil, err
	}
	if gm, ok, err2 := docMap(m, "group_by"); err2 != nil {
		return nil, err2
	} else if ok {
		g := &GroupByDescription{}
		if g.Columns, err = d.decodeExprList(gm, "columns"); err != nil {
			return nil, err
		}
		if hv, ok := gm["having"]; ok {
			if g.Having, err = d.decodeExpr(hv); err != nil {
				return nil, err
			}
		}
		s.GroupBy = g
	}
	if om, ok, err2 := docMap(m, "order_by"); err2 != nil {
		return nil, err2
	} else if ok {
		o := &OrderByDescription{}
		names, err := docStrings(om, "types")
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			ot, ok := ParseOrderType(name)
			if !ok {
				return nil, docErrorf("order_by", "unknown order type %q", name)
			}
			o.Types = append(o.Types, ot)
		}
		if o.Exprs, err = d.decodeExprList(om, "exprs"); err != nil {
			return nil, err
		}
		s.OrderBy = o
	}
	if lm, ok, err2 := docMap(m, "limit"); err2 != nil {
		return nil, err2
	} else if ok {
		l := &LimitDescription{Limit: NoLimit, Offset: NoOffset}
		if n, ok, err := docInt(lm, "limit"); err != nil {
			return nil, err
		} else if ok {
			l.Limit = n
		}
		if n, ok, err := docInt(lm, "offset"); err != nil {
			return nil, err
		} else if ok {
			l.Offset = n
		}
		s.Limit = l
	}
	if um, ok, err2 := docMap(m, "union_select"); err2 != nil {
		return nil, err2
	} else if ok {
		if s.UnionSelect, err = d.decodeSelectMap(um); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (d *decodeState) decodeTableInfoField(m map[string]any) (*TableInfo, error) {
	im, ok, err := docMap(m, "table_info")
	if err != nil || !ok {
		return nil, err
	}
	return decodeTableInfo(im)
}

func decodeTableInfo(m map[string]any) (*TableInfo, error) {
	t := &TableInfo{}
	var err error
	if t.Database, _, err = docString(m, "database"); err != nil {
		return nil, err
	}
	if t.Schema, _, err = docString(m, "schema"); err != nil {
		return nil, err
	}
	if t.Table, _, err = docString(m, "table"); err != nil {
		return nil, err
	}
	return t, nil
}

func (d *decodeState) decodeTableRef(m map[string]any) (*TableRef, error) {
	typeName, err := reqDocString(m, "type")
	if err != nil {
		return nil, err
	}
	t, ok := ParseTableReferenceType(typeName)
	if !ok || t == TableRefInvalid {
		return nil, docErrorf("type", "unknown table reference type %q", typeName)
	}
	r := &TableRef{Type: t}
	if r.Alias, _, err = docString(m, "alias"); err != nil {
		return nil, err
	}
	if r.Table, err = d.decodeTableInfoField(m); err != nil {
		return nil, err
	}
	if sm, ok, err2 := docMap(m, "select"); err2 != nil {
		return nil, err2
	} else if ok {
		if r.Select, err = d.decodeSelectMap(sm); err != nil {
			return nil, err
		}
	}
	if list, ok, err2 := docSlice(m, "list"); err2 != nil {
		return nil, err2
	} else if ok {
		r.List = make([]*TableRef, len(list))
		for i, v := range list {
			im, ok := v.(map[string]any)
			if !ok {
				return nil, docErrorf("list", "expected object")
			}
			if r.List[i], err = d.decodeTableRef(im); err != nil {
				return nil, err
			}
		}
	}
	if jm, ok, err2 := docMap(m, "join"); err2 != nil {
		return nil, err2
	} else if ok {
		j := &JoinDefinition{}
		jtName, err := reqDocString(jm, "type")
		if err != nil {
			return nil, err
		}
		jt, ok := ParseJoinType(jtName)
		if !ok {
			return nil, docErrorf("join", "unknown join type %q", jtName)
		}
		j.Type = jt
		if lm, ok, err2 := docMap(jm, "left"); err2 != nil {
			return nil, err2
		} else if ok {
			if j.Left, err = d.decodeTableRef(lm); err != nil {
				return nil, err
			}
		}
		if rm, ok, err2 := docMap(jm, "right"); err2 != nil {
			return nil, err2
		} else if ok {
			if j.Right, err = d.decodeTableRef(rm); err != nil {
				return nil, err
			}
		}
		if j.Condition, err = d.decodeHandle(jm, "condition"); err != nil {
			return nil, err
		}
		r.Join = j
	}
	return r, nil
}

func (d *decodeState) decodeInsert(m map[string]any) (*InsertStatement, error) {
	s := &InsertStatement{}
	var err error
	itName, ok, err := docString(m, "insert_type")
	if err != nil {
		return nil, err
	}
	if ok {
		it, found := ParseInsertType(itName)
		if !found {
			return nil, docErrorf("insert_type", "unknown insert type %q", itName)
		}
		s.InsertType = it
	}
	if s.Table, err = d.decodeTableInfoField(m); err != nil {
		return nil, err
	}
	if s.Columns, err = docStrings(m, "columns"); err != nil {
		return nil, err
	}
	if rows, ok, err2 := docSlice(m, "values"); err2 != nil {
		return nil, err2
	} else if ok {
		s.Values = make([][]Expression, len(rows))
		for i, rv := range rows {
			row, ok := rv.([]any)
			if !ok {
				return nil, docErrorf("values", "expected array of arrays")
			}
			if s.Values[i], err = d.decodeExprs(row); err != nil {
				return nil, err
			}
		}
	}
	if sm, ok, err2 := docMap(m, "select"); err2 != nil {
		return nil, err2
	} else if ok {
		if s.Select, err = d.decodeSelectMap(sm); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (d *decodeState) decodeUpdate(m map[string]any) (*UpdateStatement, error) {
	s := &UpdateStatement{}
	var err error
	if s.Table, err = d.decodeTableInfoField(m); err != nil {
		return nil, err
	}
	if list, ok, err2 := docSlice(m, "updates"); err2 != nil {
		return nil, err2
	} else if ok {
		s.Updates = make([]UpdateClause, len(list))
		for i, v := range list {
			um, ok := v.(map[string]any)
			if !ok {
				return nil, docErrorf("updates", "expected object")
			}
			if s.Updates[i].Column, _, err = docString(um, "column"); err != nil {
				return nil, err
			}
			if uv, ok := um["value"]; ok {
				if s.Updates[i].Value, err = d.decodeExpr(uv); err != nil {
					return nil, err
				}
			}
		}
	}
	if s.Where, err = d.decodeHandle(m, "where"); err != nil {
		return nil, err
	}
	return s, nil
}

func (d *decodeState) decodeColumnDefs(m map[string]any, key string) ([]*ColumnDefinition, error) {
	list, ok, err := docSlice(m, key)
	if err != nil || !ok {
		return nil, err
	}
	out := make([]*ColumnDefinition, len(list))
	for i, v := range list {
		cm, ok := v.(map[string]any)
		if !ok {
			return nil, docErrorf(key, "expected object")
		}
		if out[i], err = d.decodeColumnDef(cm); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *decodeState) decodeColumnDef(m map[string]any) (*ColumnDefinition, error) {
	c := &ColumnDefinition{}
	var err error
	if c.Name, _, err = docString(m, "name"); err != nil {
		return nil, err
	}
	if typeName, ok, err := docString(m, "type"); err != nil {
		return nil, err
	} else if ok {
		t, found := ParseTypeID(typeName)
		if !found {
			return nil, docErrorf("type", "unknown type %q", typeName)
		}
		c.Type = t
	}
	if n, _, err := docInt(m, "varlen"); err != nil {
		return nil, err
	} else {
		c.Varlen = int(n)
	}
	if c.IsPrimary, err = docBool(m, "primary"); err != nil {
		return nil, err
	}
	if c.IsNotNull, err = docBool(m, "not_null"); err != nil {
		return nil, err
	}
	if c.IsUnique, err = docBool(m, "unique"); err != nil {
		return nil, err
	}
	if dv, ok := m["default"]; ok {
		if c.DefaultValue, err = d.decodeExpr(dv); err != nil {
			return nil, err
		}
	}
	if cv, ok := m["check"]; ok {
		if c.CheckExpression, err = d.decodeExpr(cv); err != nil {
			return nil, err
		}
	}
	if c.ForeignKeySources, err = docStrings(m, "fk_sources"); err != nil {
		return nil, err
	}
	if c.ForeignKeySinks, err = docStrings(m, "fk_sinks"); err != nil {
		return nil, err
	}
	if c.ForeignKeyTable, _, err = docString(m, "fk_sink_table"); err != nil {
		return nil, err
	}
	if name, ok, err := docString(m, "fk_delete_action"); err != nil {
		return nil, err
	} else if ok {
		a, found := ParseFKAction(name)
		if !found {
			return nil, docErrorf("fk_delete_action", "unknown action %q", name)
		}
		c.FKDeleteAction = a
	}
	if name, ok, err := docString(m, "fk_update_action"); err != nil {
		return nil, err
	} else if ok {
		a, found := ParseFKAction(name)
		if !found {
			return nil, docErrorf("fk_update_action", "unknown action %q", name)
		}
		c.FKUpdateAction = a
	}
	if name, ok, err := docString(m, "fk_match"); err != nil {
		return nil, err
	} else if ok {
		mt, found := ParseFKMatchType(name)
		if !found {
			return nil, docErrorf("fk_match", "unknown match type %q", name)
		}
		c.FKMatch = mt
	}
	return c, nil
}

func (d *decodeState) decodeCreate(m map[string]any) (*CreateStatement, error) {
	s := &CreateStatement{}
	var err error
	ctName, err := reqDocString(m, "create_type")
	if err != nil {
		return nil, err
	}
	ct, ok := ParseCreateType(ctName)
	if !ok {
		return nil, docErrorf("create_type", "unknown create type %q", ctName)
	}
	s.CreateType = ct
	if s.IfNotExists, err = docBool(m, "if_not_exists"); err != nil {
		return nil, err
	}
	if s.Table, err = d.decodeTableInfoField(m); err != nil {
		return nil, err
	}
	if s.Columns, err = d.decodeColumnDefs(m, "columns"); err != nil {
		return nil, err
	}
	if s.ForeignKeys, err = d.decodeColumnDefs(m, "foreign_keys"); err != nil {
		return nil, err
	}
	if name, ok, err := docString(m, "index_type"); err != nil {
		return nil, err
	} else if ok {
		it, found := ParseIndexType(name)
		if !found {
			return nil, docErrorf("index_type", "unknown index type %q", name)
		}
		s.IndexType = it
	}
	if s.Unique, err = docBool(m, "unique"); err != nil {
		return nil, err
	}
	if s.IndexName, _, err = docString(m, "index_name"); err != nil {
		return nil, err
	}
	if s.IndexAttrs, err = docStrings(m, "index_attrs"); err != nil {
		return nil, err
	}
	if s.TriggerName, _, err = docString(m, "trigger_name"); err != nil {
		return nil, err
	}
	if s.TriggerFuncName, err = docStrings(m, "trigger_func_name"); err != nil {
		return nil, err
	}
	if s.TriggerArgs, err = docStrings(m, "trigger_args"); err != nil {
		return nil, err
	}
	if s.TriggerColumns, err = docStrings(m, "trigger_columns"); err != nil {
		return nil, err
	}
	if s.TriggerWhen, err = d.decodeHandle(m, "trigger_when"); err != nil {
		return nil, err
	}
	if n, _, err := docInt(m, "trigger_type"); err != nil {
		return nil, err
	} else {
		s.TriggerType = int(n)
	}
	if s.ViewName, _, err = docString(m, "view_name"); err != nil {
		return nil, err
	}
	if vm, ok, err2 := docMap(m, "view_query"); err2 != nil {
		return nil, err2
	} else if ok {
		if s.ViewQuery, err = d.decodeSelectMap(vm); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (d *decodeState) decodeCreateFunction(m map[string]any) (*CreateFunctionStatement, error) {
	s := &CreateFunctionStatement{}
	var err error
	if s.Name, _, err = docString(m, "func_name"); err != nil {
		return nil, err
	}
	if s.Replace, err = docBool(m, "replace"); err != nil {
		return nil, err
	}
	if list, ok, err2 := docSlice(m, "parameters"); err2 != nil {
		return nil, err2
	} else if ok {
		s.Parameters = make([]*FuncParameter, len(list))
		for i, v := range list {
			pm, ok := v.(map[string]any)
			if !ok {
				return nil, docErrorf("parameters", "expected object")
			}
			p := &FuncParameter{}
			if p.Name, _, err = docString(pm, "name"); err != nil {
				return nil, err
			}
			if typeName, ok, err := docString(pm, "type"); err != nil {
				return nil, err
			} else if ok {
				t, found := ParseTypeID(typeName)
				if !found {
					return nil, docErrorf("parameters", "unknown type %q", typeName)
				}
				p.Type = t
			}
			s.Parameters[i] = p
		}
	}
	if typeName, ok, err := docString(m, "returns"); err != nil {
		return nil, err
	} else if ok {
		t, found := ParseTypeID(typeName)
		if !found {
			return nil, docErrorf("returns", "unknown type %q", typeName)
		}
		s.Returns = t
	}
	if s.Body, err = docStrings(m, "body"); err != nil {
		return nil, err
	}
	if name, ok, err := docString(m, "language"); err != nil {
		return nil, err
	} else if ok {
		l, found := ParseFuncLanguage(name)
		if !found {
			return nil, docErrorf("language", "unknown language %q", name)
		}
		s.Language = l
	}
	return s, nil
}

func (d *decodeState) decodeDrop(m map[string]any) (*DropStatement, error) {
	s := &DropStatement{}
	var err error
	dtName, err := reqDocString(m, "drop_type")
	if err != nil {
		return nil, err
	}
	dt, ok := ParseDropType(dtName)
	if !ok {
		return nil, docErrorf("drop_type", "unknown drop type %q", dtName)
	}
	s.DropType = dt
	if s.IfExists, err = docBool(m, "if_exists"); err != nil {
		return nil, err
	}
	if s.Cascade, err = docBool(m, "cascade"); err != nil {
		return nil, err
	}
	if s.Table, err = d.decodeTableInfoField(m); err != nil {
		return nil, err
	}
	if s.IndexName, _, err = docString(m, "index_name"); err != nil {
		return nil, err
	}
	if s.TriggerName, _, err = docString(m, "trigger_name"); err != nil {
		return nil, err
	}
	if s.PreparedName, _, err = docString(m, "prepared_name"); err != nil {
		return nil, err
	}
	return s, nil
}

func (d *decodeState) decodeCopy(m map[string]any) (*CopyStatement, error) {
	s := &CopyStatement{}
	var err error
	if tm, ok, err2 := docMap(m, "table"); err2 != nil {
		return nil, err2
	} else if ok {
		if s.Table, err = d.decodeTableRef(tm); err != nil {
			return nil, err
		}
	}
	if sm, ok, err2 := docMap(m, "select"); err2 != nil {
		return nil, err2
	} else if ok {
		if s.Select, err = d.decodeSelectMap(sm); err != nil {
			return nil, err
		}
	}
	if s.FilePath, _, err = docString(m, "file_path"); err != nil {
		return nil, err
	}
	if name, ok, err := docString(m, "format"); err != nil {
		return nil, err
	} else if ok {
		f, found := ParseCopyFormat(name)
		if !found {
			return nil, docErrorf("format", "unknown format %q", name)
		}
		s.Format = f
	}
	if s.IsFrom, err = docBool(m, "is_from"); err != nil {
		return nil, err
	}
	if s.Delimiter, err = docRune(m, "delimiter"); err != nil {
		return nil, err
	}
	if s.Quote, err = docRune(m, "quote"); err != nil {
		return nil, err
	}
	if s.Escape, err = docRune(m, "escape"); err != nil {
		return nil, err
	}
	return s, nil
}

func docRune(m map[string]any, key string) (rune, error) {
	s, ok, err := docString(m, key)
	if err != nil {
		return 0, err
	}
	if !ok || s == "" {
		return 0, nil
	}
	return []rune(s)[0], nil
}
