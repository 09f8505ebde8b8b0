package ast

// OrderType is the sort direction of one ORDER BY column.
type OrderType int

const (
	OrderAsc OrderType = iota
	OrderDesc
)

var orderTypeNames = map[OrderType]string{
	OrderAsc:  "asc",
	OrderDesc: "desc",
}

func (t OrderType) String() string {
	if name, ok := orderTypeNames[t]; ok {
		return name
	}
	return "asc"
}

// ParseOrderType maps a wire name back to its OrderType.
func ParseOrderType(name string) (OrderType, bool) {
	for t, n := range orderTypeNames {
		if n == name {
			return t, true
		}
	}
	return OrderAsc, false
}

// GroupByDescription holds the grouping columns and the HAVING predicate.
// Both are owned by the statement.
type GroupByDescription struct {
	Columns []Expression
	Having  Expression
}

func (g *GroupByDescription) Copy() *GroupByDescription {
	if g == nil {
		return nil
	}
	c := &GroupByDescription{Columns: copyExprs(g.Columns)}
	if g.Having != nil {
		c.Having = g.Having.Copy()
	}
	return c
}

// OrderByDescription pairs each sort expression with its direction.
// Types and Exprs run in lockstep.
type OrderByDescription struct {
	Types []OrderType
	Exprs []Expression
}

func (o *OrderByDescription) Copy() *OrderByDescription {
	if o == nil {
		return nil
	}
	c := &OrderByDescription{
		Types: make([]OrderType, len(o.Types)),
		Exprs: copyExprs(o.Exprs),
	}
	copy(c.Types, o.Types)
	return c
}

// NoLimit and NoOffset mark an absent LIMIT or OFFSET clause.
const (
	NoLimit  int64 = -1
	NoOffset int64 = -1
)

type LimitDescription struct {
	Limit  int64
	Offset int64
}

func (l *LimitDescription) Copy() *LimitDescription {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

// SelectStatement is a full query block. UnionSelect chains the next
// block of a UNION; the chain is walked, never cyclic. The projection,
// descriptors, and FROM tree are owned by the statement; Where is an
// arena handle shared with anything else referencing the predicate.
type SelectStatement struct {
	Select      []Expression
	Distinct    bool
	From        *TableRef
	Where       ExprHandle
	GroupBy     *GroupByDescription
	OrderBy     *OrderByDescription
	Limit       *LimitDescription
	UnionSelect *SelectStatement
}

func (s *SelectStatement) Type() StatementType { return StmtSelect }
func (s *SelectStatement) stmtNode()           {}

// Copy deep-copies the statement. The Where handle is carried over as is,
// so the copy shares the original predicate slot.
func (s *SelectStatement) Copy() *SelectStatement {
	if s == nil {
		return nil
	}
	return &SelectStatement{
		Select:      copyExprs(s.Select),
		Distinct:    s.Distinct,
		From:        s.From.Copy(),
		Where:       s.Where,
		GroupBy:     s.GroupBy.Copy(),
		OrderBy:     s.OrderBy.Copy(),
		Limit:       s.Limit.Copy(),
		UnionSelect: s.UnionSelect.Copy(),
	}
}
