package ast

// Hashing for the SELECT family, which is reachable from expression
// position through SubqueryExpr. Other statements never appear inside an
// expression and carry no hash.

func selectHashInto(x *exprHasher, s *SelectStatement) {
	if s == nil {
		x.bool(false)
		return
	}
	x.bool(true)
	x.children(s.Select)
	x.bool(s.Distinct)
	tableRefHashInto(x, s.From)
	handleHashInto(x, s.Where)
	groupByHashInto(x, s.GroupBy)
	orderByHashInto(x, s.OrderBy)
	limitHashInto(x, s.Limit)
	selectHashInto(x, s.UnionSelect)
}

// handleHashInto resolves the handle and hashes the predicate itself, so
// structurally identical statements in different arenas hash alike.
func handleHashInto(x *exprHasher, h ExprHandle) {
	if !h.Valid() {
		x.bool(false)
		return
	}
	x.bool(true)
	x.expr(h.Get())
}

func tableInfoHashInto(x *exprHasher, t *TableInfo) {
	if t == nil {
		x.bool(false)
		return
	}
	x.bool(true)
	x.string(t.Database)
	x.string(t.Schema)
	x.string(t.Table)
}

func tableRefHashInto(x *exprHasher, r *TableRef) {
	if r == nil {
		x.bool(false)
		return
	}
	x.bool(true)
	x.int(int(r.Type))
	x.string(r.Alias)
	tableInfoHashInto(x, r.Table)
	selectHashInto(x, r.Select)
	x.int(len(r.List))
	for _, item := range r.List {
		tableRefHashInto(x, item)
	}
	joinHashInto(x, r.Join)
}

func joinHashInto(x *exprHasher, j *JoinDefinition) {
	if j == nil {
		x.bool(false)
		return
	}
	x.bool(true)
	x.int(int(j.Type))
	tableRefHashInto(x, j.Left)
	tableRefHashInto(x, j.Right)
	handleHashInto(x, j.Condition)
}

func groupByHashInto(x *exprHasher, g *GroupByDescription) {
	if g == nil {
		x.bool(false)
		return
	}
	x.bool(true)
	x.children(g.Columns)
	x.expr(g.Having)
}

func orderByHashInto(x *exprHasher, o *OrderByDescription) {
	if o == nil {
		x.bool(false)
		return
	}
	x.bool(true)
	x.int(len(o.Types))
	for _, t := range o.Types {
		x.int(int(t))
	}
	x.children(o.Exprs)
}

func limitHashInto(x *exprHasher, l *LimitDescription) {
	if l == nil {
		x.bool(false)
		return
	}
	x.bool(true)
	x.int64(l.Limit)
	x.int64(l.Offset)
}
