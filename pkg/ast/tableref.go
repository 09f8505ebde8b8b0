package ast

// TableReferenceType discriminates the shape of a FROM item.
type TableReferenceType int

const (
	TableRefInvalid TableReferenceType = iota
	// TableRefName is a plain table name, possibly qualified.
	TableRefName
	// TableRefSelect is a derived table, a subquery in FROM.
	TableRefSelect
	// TableRefJoin is an explicit join of two references.
	TableRefJoin
	// TableRefCrossProduct is a comma list of references.
	TableRefCrossProduct
)

var tableRefTypeNames = map[TableReferenceType]string{
	TableRefInvalid:      "invalid",
	TableRefName:         "name",
	TableRefSelect:       "select",
	TableRefJoin:         "join",
	TableRefCrossProduct: "cross_product",
}

var tableRefTypeByName = map[string]TableReferenceType{}

func init() {
	for t, name := range tableRefTypeNames {
		tableRefTypeByName[name] = t
	}
}

func (t TableReferenceType) String() string {
	if name, ok := tableRefTypeNames[t]; ok {
		return name
	}
	return "invalid"
}

func ParseTableReferenceType(name string) (TableReferenceType, bool) {
	t, ok := tableRefTypeByName[name]
	return t, ok
}

// JoinType is the flavor of an explicit join.
type JoinType int

const (
	JoinInvalid JoinType = iota
	JoinInner
	JoinOuter
	JoinLeft
	JoinRight
	JoinSemi
)

var joinTypeNames = map[JoinType]string{
	JoinInvalid: "invalid",
	JoinInner:   "inner",
	JoinOuter:   "outer",
	JoinLeft:    "left",
	JoinRight:   "right",
	JoinSemi:    "semi",
}

var joinTypeByName = map[string]JoinType{}

func init() {
	for t, name := range joinTypeNames {
		joinTypeByName[name] = t
	}
}

func (t JoinType) String() string {
	if name, ok := joinTypeNames[t]; ok {
		return name
	}
	return "invalid"
}

func ParseJoinType(name string) (JoinType, bool) {
	t, ok := joinTypeByName[name]
	return t, ok
}

// JoinDefinition is one explicit join. Left and Right are owned; the ON
// condition is an arena handle.
type JoinDefinition struct {
	Type      JoinType
	Left      *TableRef
	Right     *TableRef
	Condition ExprHandle
}

func (j *JoinDefinition) Copy() *JoinDefinition {
	if j == nil {
		return nil
	}
	return &JoinDefinition{
		Type:      j.Type,
		Left:      j.Left.Copy(),
		Right:     j.Right.Copy(),
		Condition: j.Condition,
	}
}

// TableRef is one FROM item. Exactly one of Table, Select, List, or Join
// is populated, matching Type.
type TableRef struct {
	Type   TableReferenceType
	Alias  string
	Table  *TableInfo
	Select *SelectStatement
	List   []*TableRef
	Join   *JoinDefinition
}

// NewTableRefName builds a plain name reference.
func NewTableRefName(info *TableInfo, alias string) *TableRef {
	return &TableRef{Type: TableRefName, Alias: alias, Table: info}
}

func (r *TableRef) Copy() *TableRef {
	if r == nil {
		return nil
	}
	c := &TableRef{
		Type:   r.Type,
		Alias:  r.Alias,
		Table:  r.Table.Copy(),
		Select: r.Select.Copy(),
		Join:   r.Join.Copy(),
	}
	if r.List != nil {
		c.List = make([]*TableRef, len(r.List))
		for i, item := range r.List {
			c.List[i] = item.Copy()
		}
	}
	return c
}
