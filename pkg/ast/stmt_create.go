package ast

// CreateType discriminates the object a CREATE statement builds.
type CreateType int

const (
	CreateTable CreateType = iota
	CreateDatabase
	CreateIndex
	CreateTrigger
	CreateSchema
	CreateView
)

var createTypeNames = map[CreateType]string{
	CreateTable:    "table",
	CreateDatabase: "database",
	CreateIndex:    "index",
	CreateTrigger:  "trigger",
	CreateSchema:   "schema",
	CreateView:     "view",
}

var createTypeByName = map[string]CreateType{}

func init() {
	for t, name := range createTypeNames {
		createTypeByName[name] = t
	}
}

func (t CreateType) String() string {
	if name, ok := createTypeNames[t]; ok {
		return name
	}
	return "table"
}

func ParseCreateType(name string) (CreateType, bool) {
	t, ok := createTypeByName[name]
	return t, ok
}

// DropType discriminates the object a DROP statement removes.
type DropType int

const (
	DropTable DropType = iota
	DropDatabase
	DropIndex
	DropTrigger
	DropSchema
	DropPreparedStatement
)

var dropTypeNames = map[DropType]string{
	DropTable:             "table",
	DropDatabase:          "database",
	DropIndex:             "index",
	DropTrigger:           "trigger",
	DropSchema:            "schema",
	DropPreparedStatement: "prepared_statement",
}

var dropTypeByName = map[string]DropType{}

func init() {
	for t, name := range dropTypeNames {
		dropTypeByName[name] = t
	}
}

func (t DropType) String() string {
	if name, ok := dropTypeNames[t]; ok {
		return name
	}
	return "table"
}

func ParseDropType(name string) (DropType, bool) {
	t, ok := dropTypeByName[name]
	return t, ok
}

// FKAction is a referential action on delete or update. The zero value is
// the default when the clause is omitted.
type FKAction int

const (
	FKNoAction FKAction = iota
	FKRestrict
	FKCascade
	FKSetNull
	FKSetDefault
)

var fkActionNames = map[FKAction]string{
	FKNoAction:   "no_action",
	FKRestrict:   "restrict",
	FKCascade:    "cascade",
	FKSetNull:    "set_null",
	FKSetDefault: "set_default",
}

var fkActionByName = map[string]FKAction{}

func init() {
	for a, name := range fkActionNames {
		fkActionByName[name] = a
	}
}

func (a FKAction) String() string {
	if name, ok := fkActionNames[a]; ok {
		return name
	}
	return "no_action"
}

func ParseFKAction(name string) (FKAction, bool) {
	a, ok := fkActionByName[name]
	return a, ok
}

// FKMatchType is the MATCH clause of a foreign key. The zero value is the
// default when the clause is omitted.
type FKMatchType int

const (
	FKMatchSimple FKMatchType = iota
	FKMatchFull
	FKMatchPartial
)

var fkMatchTypeNames = map[FKMatchType]string{
	FKMatchSimple:  "simple",
	FKMatchFull:    "full",
	FKMatchPartial: "partial",
}

var fkMatchTypeByName = map[string]FKMatchType{}

func init() {
	for m, name := range fkMatchTypeNames {
		fkMatchTypeByName[name] = m
	}
}

func (m FKMatchType) String() string {
	if name, ok := fkMatchTypeNames[m]; ok {
		return name
	}
	return "simple"
}

func ParseFKMatchType(name string) (FKMatchType, bool) {
	m, ok := fkMatchTypeByName[name]
	return m, ok
}

// IndexType is the access method of a CREATE INDEX.
type IndexType int

const (
	IndexBTree IndexType = iota
	IndexHash
)

var indexTypeNames = map[IndexType]string{
	IndexBTree: "btree",
	IndexHash:  "hash",
}

func (t IndexType) String() string {
	if name, ok := indexTypeNames[t]; ok {
		return name
	}
	return "btree"
}

func ParseIndexType(name string) (IndexType, bool) {
	for t, n := range indexTypeNames {
		if n == name {
			return t, true
		}
	}
	return IndexBTree, false
}

// FuncLanguage is the implementation language of a CREATE FUNCTION body.
type FuncLanguage int

const (
	LangPLpgSQL FuncLanguage = iota
	LangC
)

var funcLanguageNames = map[FuncLanguage]string{
	LangPLpgSQL: "plpgsql",
	LangC:       "c",
}

func (l FuncLanguage) String() string {
	if name, ok := funcLanguageNames[l]; ok {
		return name
	}
	return "plpgsql"
}

func ParseFuncLanguage(name string) (FuncLanguage, bool) {
	for l, n := range funcLanguageNames {
		if n == name {
			return l, true
		}
	}
	return LangPLpgSQL, false
}

// ColumnDefinition is one column of a CREATE TABLE, or one synthesized
// foreign key constraint. For a constraint only the FK fields and the
// source/sink names are meaningful.
type ColumnDefinition struct {
	Name      string
	Type      TypeID
	Varlen    int
	IsPrimary bool
	IsNotNull bool
	IsUnique  bool

	DefaultValue    Expression
	CheckExpression Expression

	ForeignKeySources []string
	ForeignKeySinks   []string
	ForeignKeyTable   string
	FKDeleteAction    FKAction
	FKUpdateAction    FKAction
	FKMatch           FKMatchType
}

// IsForeignKey reports whether this definition carries a constraint
// rather than a column.
func (c *ColumnDefinition) IsForeignKey() bool {
	return len(c.ForeignKeySources) > 0
}

func (c *ColumnDefinition) Copy() *ColumnDefinition {
	if c == nil {
		return nil
	}
	n := *c
	if c.DefaultValue != nil {
		n.DefaultValue = c.DefaultValue.Copy()
	}
	if c.CheckExpression != nil {
		n.CheckExpression = c.CheckExpression.Copy()
	}
	if c.ForeignKeySources != nil {
		n.ForeignKeySources = make([]string, len(c.ForeignKeySources))
		copy(n.ForeignKeySources, c.ForeignKeySources)
	}
	if c.ForeignKeySinks != nil {
		n.ForeignKeySinks = make([]string, len(c.ForeignKeySinks))
		copy(n.ForeignKeySinks, c.ForeignKeySinks)
	}
	return &n
}

func copyColumnDefs(list []*ColumnDefinition) []*ColumnDefinition {
	if list == nil {
		return nil
	}
	out := make([]*ColumnDefinition, len(list))
	for i, c := range list {
		out[i] = c.Copy()
	}
	return out
}

// FuncParameter is one parameter of a CREATE FUNCTION.
type FuncParameter struct {
	Name string
	Type TypeID
}

// Trigger timing and event bits, combined in CreateStatement.TriggerType.
const (
	TriggerRow      = 1 << 0
	TriggerBefore   = 1 << 1
	TriggerInsert   = 1 << 2
	TriggerDelete   = 1 << 3
	TriggerUpdate   = 1 << 4
	TriggerTruncate = 1 << 5
	TriggerInstead  = 1 << 6
)

// CreateStatement covers CREATE TABLE, DATABASE, INDEX, TRIGGER, SCHEMA,
// and VIEW. The populated field groups follow CreateType; Table names the
// target object's table for every kind that has one.
type CreateStatement struct {
	CreateType  CreateType
	IfNotExists bool
	Table       *TableInfo

	// Table fields.
	Columns     []*ColumnDefinition
	ForeignKeys []*ColumnDefinition

	// Index fields.
	IndexType  IndexType
	Unique     bool
	IndexName  string
	IndexAttrs []string

	// Trigger fields. TriggerType is a bitmask of the Trigger* constants
	// and TriggerWhen is an arena handle.
	TriggerName     string
	TriggerFuncName []string
	TriggerArgs     []string
	TriggerColumns  []string
	TriggerWhen     ExprHandle
	TriggerType     int

	// View fields.
	ViewName  string
	ViewQuery *SelectStatement
}

func (s *CreateStatement) Type() StatementType { return StmtCreate }
func (s *CreateStatement) stmtNode()           {}

func (s *CreateStatement) Copy() *CreateStatement {
	if s == nil {
		return nil
	}
	c := &CreateStatement{
		CreateType:  s.CreateType,
		IfNotExists: s.IfNotExists,
		Table:       s.Table.Copy(),
		Columns:     copyColumnDefs(s.Columns),
		ForeignKeys: copyColumnDefs(s.ForeignKeys),
		IndexType:   s.IndexType,
		Unique:      s.Unique,
		IndexName:   s.IndexName,
		TriggerName: s.TriggerName,
		TriggerWhen: s.TriggerWhen,
		TriggerType: s.TriggerType,
		ViewName:    s.ViewName,
		ViewQuery:   s.ViewQuery.Copy(),
	}
	c.IndexAttrs = copyStrings(s.IndexAttrs)
	c.TriggerFuncName = copyStrings(s.TriggerFuncName)
	c.TriggerArgs = copyStrings(s.TriggerArgs)
	c.TriggerColumns = copyStrings(s.TriggerColumns)
	return c
}

func copyStrings(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// CreateFunctionStatement is CREATE [OR REPLACE] FUNCTION. The body is
// kept verbatim as source lines.
type CreateFunctionStatement struct {
	Replace    bool
	Name       string
	Parameters []*FuncParameter
	Returns    TypeID
	Body       []string
	Language   FuncLanguage
}

func (s *CreateFunctionStatement) Type() StatementType { return StmtCreateFunction }
func (s *CreateFunctionStatement) stmtNode()           {}

func (s *CreateFunctionStatement) Copy() *CreateFunctionStatement {
	if s == nil {
		return nil
	}
	c := &CreateFunctionStatement{
		Replace:  s.Replace,
		Name:     s.Name,
		Returns:  s.Returns,
		Language: s.Language,
	}
	if s.Parameters != nil {
		c.Parameters = make([]*FuncParameter, len(s.Parameters))
		for i, p := range s.Parameters {
			cp := *p
			c.Parameters[i] = &cp
		}
	}
	c.Body = copyStrings(s.Body)
	return c
}

// DropStatement covers DROP TABLE, DATABASE, INDEX, TRIGGER, SCHEMA, and
// DEALLOCATE of a prepared statement.
type DropStatement struct {
	DropType    DropType
	IfExists    bool
	Cascade     bool
	Table       *TableInfo
	IndexName   string
	TriggerName string

	// PreparedName is the DEALLOCATE target.
	PreparedName string
}

func (s *DropStatement) Type() StatementType { return StmtDrop }
func (s *DropStatement) stmtNode()           {}

func (s *DropStatement) Copy() *DropStatement {
	if s == nil {
		return nil
	}
	c := *s
	c.Table = s.Table.Copy()
	return &c
}
