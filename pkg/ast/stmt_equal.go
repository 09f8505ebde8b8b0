package ast

// StatementsEqual reports deep structural equality of two statements.
// Predicate handles are compared by the expressions they resolve to, so
// statements built in different arenas compare equal when their shapes
// match.
func StatementsEqual(a, b Statement) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	switch x := a.(type) {
	case *SelectStatement:
		return selectEqual(x, b.(*SelectStatement))
	case *InsertStatement:
		return insertEqual(x, b.(*InsertStatement))
	case *UpdateStatement:
		return updateEqual(x, b.(*UpdateStatement))
	case *DeleteStatement:
		y := b.(*DeleteStatement)
		return tableInfoEqual(x.Table, y.Table) && handleEqual(x.Where, y.Where)
	case *CreateStatement:
		return createEqual(x, b.(*CreateStatement))
	case *CreateFunctionStatement:
		return createFunctionEqual(x, b.(*CreateFunctionStatement))
	case *DropStatement:
		return dropEqual(x, b.(*DropStatement))
	case *CopyStatement:
		return copyStmtEqual(x, b.(*CopyStatement))
	case *ExplainStatement:
		return StatementsEqual(x.Inner, b.(*ExplainStatement).Inner)
	case *PrepareStatement:
		y := b.(*PrepareStatement)
		return x.Name == y.Name && StatementsEqual(x.Query, y.Query)
	case *ExecuteStatement:
		y := b.(*ExecuteStatement)
		return x.Name == y.Name && exprsEqual(x.Parameters, y.Parameters)
	case *TransactionStatement:
		return x.Kind == b.(*TransactionStatement).Kind
	case *AnalyzeStatement:
		y := b.(*AnalyzeStatement)
		return tableInfoEqual(x.Table, y.Table) && stringsEqual(x.Columns, y.Columns)
	case *VariableSetStatement:
		y := b.(*VariableSetStatement)
		return x.Name == y.Name && exprsEqual(x.Values, y.Values)
	default:
		return false
	}
}

// handleEqual compares two predicate handles by resolving them. Invalid
// handles only equal other invalid handles.
func handleEqual(a, b ExprHandle) bool {
	if !a.Valid() || !b.Valid() {
		return a.Valid() == b.Valid()
	}
	return exprEqual(a.Get(), b.Get())
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func tableInfoEqual(a, b *TableInfo) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func selectEqual(a, b *SelectStatement) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return exprsEqual(a.Select, b.Select) &&
		a.Distinct == b.Distinct &&
		tableRefEqual(a.From, b.From) &&
		handleEqual(a.Where, b.Where) &&
		groupByEqual(a.GroupBy, b.GroupBy) &&
		orderByEqual(a.OrderBy, b.OrderBy) &&
		limitEqual(a.Limit, b.Limit) &&
		selectEqual(a.UnionSelect, b.UnionSelect)
}

func tableRefEqual(a, b *TableRef) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type != b.Type || a.Alias != b.Alias {
		return false
	}
	if !tableInfoEqual(a.Table, b.Table) || !selectEqual(a.Select, b.Select) {
		return false
	}
	if len(a.List) != len(b.List) {
		return false
	}
	for i := range a.List {
		if !tableRefEqual(a.List[i], b.List[i]) {
			return false
		}
	}
	return joinEqual(a.Join, b.Join)
}

func joinEqual(a, b *JoinDefinition) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Type == b.Type &&
		tableRefEqual(a.Left, b.Left) &&
		tableRefEqual(a.Right, b.Right) &&
		handleEqual(a.Condition, b.Condition)
}

func groupByEqual(a, b *GroupByDescription) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return exprsEqual(a.Columns, b.Columns) && exprEqual(a.Having, b.Having)
}

func orderByEqual(a, b *OrderByDescription) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a.Types) != len(b.Types) {
		return false
	}
	for i := range a.Types {
		if a.Types[i] != b.Types[i] {
			return false
		}
	}
	return exprsEqual(a.Exprs, b.Exprs)
}

func limitEqual(a, b *LimitDescription) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func insertEqual(a, b *InsertStatement) bool {
	if a.InsertType != b.InsertType ||
		!tableInfoEqual(a.Table, b.Table) ||
		!stringsEqual(a.Columns, b.Columns) ||
		!selectEqual(a.Select, b.Select) {
		return false
	}
	if len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Values {
		if !exprsEqual(a.Values[i], b.Values[i]) {
			return false
		}
	}
	return true
}

func updateEqual(a, b *UpdateStatement) bool {
	if !tableInfoEqual(a.Table, b.Table) || !handleEqual(a.Where, b.Where) {
		return false
	}
	if len(a.Updates) != len(b.Updates) {
		return false
	}
	for i := range a.Updates {
		if a.Updates[i].Column != b.Updates[i].Column ||
			!exprEqual(a.Updates[i].Value, b.Updates[i].Value) {
			return false
		}
	}
	return true
}

func columnDefEqual(a, b *ColumnDefinition) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Name == b.Name &&
		a.Type == b.Type &&
		a.Varlen == b.Varlen &&
		a.IsPrimary == b.IsPrimary &&
		a.IsNotNull == b.IsNotNull &&
		a.IsUnique == b.IsUnique &&
		exprEqual(a.DefaultValue, b.DefaultValue) &&
		exprEqual(a.CheckExpression, b.CheckExpression) &&
		stringsEqual(a.ForeignKeySources, b.ForeignKeySources) &&
		stringsEqual(a.ForeignKeySinks, b.ForeignKeySinks) &&
		a.ForeignKeyTable == b.ForeignKeyTable &&
		a.FKDeleteAction == b.FKDeleteAction &&
		a.FKUpdateAction == b.FKUpdateAction &&
		a.FKMatch == b.FKMatch
}

func columnDefsEqual(a, b []*ColumnDefinition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !columnDefEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func createEqual(a, b *CreateStatement) bool {
	return a.CreateType == b.CreateType &&
		a.IfNotExists == b.IfNotExists &&
		tableInfoEqual(a.Table, b.Table) &&
		columnDefsEqual(a.Columns, b.Columns) &&
		columnDefsEqual(a.ForeignKeys, b.ForeignKeys) &&
		a.IndexType == b.IndexType &&
		a.Unique == b.Unique &&
		a.IndexName == b.IndexName &&
		stringsEqual(a.IndexAttrs, b.IndexAttrs) &&
		a.TriggerName == b.TriggerName &&
		stringsEqual(a.TriggerFuncName, b.TriggerFuncName) &&
		stringsEqual(a.TriggerArgs, b.TriggerArgs) &&
		stringsEqual(a.TriggerColumns, b.TriggerColumns) &&
		handleEqual(a.TriggerWhen, b.TriggerWhen) &&
		a.TriggerType == b.TriggerType &&
		a.ViewName == b.ViewName &&
		selectEqual(a.ViewQuery, b.ViewQuery)
}

func createFunctionEqual(a, b *CreateFunctionStatement) bool {
	if a.Replace != b.Replace || a.Name != b.Name ||
		a.Returns != b.Returns || a.Language != b.Language ||
		!stringsEqual(a.Body, b.Body) {
		return false
	}
	if len(a.Parameters) != len(b.Parameters) {
		return false
	}
	for i := range a.Parameters {
		if *a.Parameters[i] != *b.Parameters[i] {
			return false
		}
	}
	return true
}

func dropEqual(a, b *DropStatement) bool {
	return a.DropType == b.DropType &&
		a.IfExists == b.IfExists &&
		a.Cascade == b.Cascade &&
		tableInfoEqual(a.Table, b.Table) &&
		a.IndexName == b.IndexName &&
		a.TriggerName == b.TriggerName &&
		a.PreparedName == b.PreparedName
}

func copyStmtEqual(a, b *CopyStatement) bool {
	return tableRefEqual(a.Table, b.Table) &&
		selectEqual(a.Select, b.Select) &&
		a.FilePath == b.FilePath &&
		a.Format == b.Format &&
		a.IsFrom == b.IsFrom &&
		a.Delimiter == b.Delimiter &&
		a.Quote == b.Quote &&
		a.Escape == b.Escape
}
