package ast

// InsertType tells whether an INSERT carries literal rows or a query.
type InsertType int

const (
	InsertValues InsertType = iota
	InsertSelect
)

var insertTypeNames = map[InsertType]string{
	InsertValues: "values",
	InsertSelect: "select",
}

func (t InsertType) String() string {
	if name, ok := insertTypeNames[t]; ok {
		return name
	}
	return "values"
}

func ParseInsertType(name string) (InsertType, bool) {
	for t, n := range insertTypeNames {
		if n == name {
			return t, true
		}
	}
	return InsertValues, false
}

// InsertStatement writes rows into one table. Values is populated for
// InsertValues, Select for InsertSelect.
type InsertStatement struct {
	InsertType InsertType
	Table      *TableInfo
	Columns    []string
	Values     [][]Expression
	Select     *SelectStatement
}

func (s *InsertStatement) Type() StatementType { return StmtInsert }
func (s *InsertStatement) stmtNode()           {}

func (s *InsertStatement) Copy() *InsertStatement {
	if s == nil {
		return nil
	}
	c := &InsertStatement{
		InsertType: s.InsertType,
		Table:      s.Table.Copy(),
		Select:     s.Select.Copy(),
	}
	if s.Columns != nil {
		c.Columns = make([]string, len(s.Columns))
		copy(c.Columns, s.Columns)
	}
	if s.Values != nil {
		c.Values = make([][]Expression, len(s.Values))
		for i, row := range s.Values {
			c.Values[i] = copyExprs(row)
		}
	}
	return c
}

// UpdateClause is one SET column = value pair. The value is owned.
type UpdateClause struct {
	Column string
	Value  Expression
}

func (u UpdateClause) Copy() UpdateClause {
	c := UpdateClause{Column: u.Column}
	if u.Value != nil {
		c.Value = u.Value.Copy()
	}
	return c
}

type UpdateStatement struct {
	Table   *TableInfo
	Updates []UpdateClause
	Where   ExprHandle
}

func (s *UpdateStatement) Type() StatementType { return StmtUpdate }
func (s *UpdateStatement) stmtNode()           {}

func (s *UpdateStatement) Copy() *UpdateStatement {
	if s == nil {
		return nil
	}
	c := &UpdateStatement{
		Table: s.Table.Copy(),
		Where: s.Where,
	}
	if s.Updates != nil {
		c.Updates = make([]UpdateClause, len(s.Updates))
		for i, u := range s.Updates {
			c.Updates[i] = u.Copy()
		}
	}
	return c
}

type DeleteStatement struct {
	Table *TableInfo
	Where ExprHandle
}

func (s *DeleteStatement) Type() StatementType { return StmtDelete }
func (s *DeleteStatement) stmtNode()           {}

func (s *DeleteStatement) Copy() *DeleteStatement {
	if s == nil {
		return nil
	}
	return &DeleteStatement{Table: s.Table.Copy(), Where: s.Where}
}
