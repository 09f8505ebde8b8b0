package pgtree

// Node is implemented by every parse tree node. Tag returns the wire
// name of the kind, which is also what error messages call it.
type Node interface {
	Tag() string
	node()
}

// ParseTree is one decoded grammar-engine document.
type ParseTree struct {
	Version int
	Stmts   []RawStmt
}

// RawStmt wraps one top-level statement.
type RawStmt struct {
	Stmt Node
}

// Unknown stands in for a node kind this package has no struct for. The
// transform rejects it by name.
type Unknown struct {
	TagName string
}

func (u *Unknown) Tag() string { return u.TagName }
func (u *Unknown) node()       {}

// Value nodes.

type String struct {
	Val string
}

func (*String) Tag() string { return "String" }
func (*String) node()       {}

type Integer struct {
	Val int64
}

func (*Integer) Tag() string { return "Integer" }
func (*Integer) node()       {}

// Float keeps the literal text; the transform parses it.
type Float struct {
	Val string
}

func (*Float) Tag() string { return "Float" }
func (*Float) node()       {}

type Null struct{}

func (*Null) Tag() string { return "Null" }
func (*Null) node()       {}

type AStar struct{}

func (*AStar) Tag() string { return "A_Star" }
func (*AStar) node()       {}

// SetToDefault is the DEFAULT keyword in an INSERT value list.
type SetToDefault struct{}

func (*SetToDefault) Tag() string { return "SetToDefault" }
func (*SetToDefault) node()       {}

// Expression nodes.

type AConst struct {
	Val Node
}

func (*AConst) Tag() string { return "A_Const" }
func (*AConst) node()       {}

type AExprKind string

const (
	AExprOp      AExprKind = "op"
	AExprLike    AExprKind = "like"
	AExprIn      AExprKind = "in"
	AExprBetween AExprKind = "between"
)

// AExpr is a generic operator application. Name carries the operator
// spelling; Lexpr is nil for prefix operators.
type AExpr struct {
	Kind  AExprKind
	Name  []string
	Lexpr Node
	Rexpr Node
}

func (*AExpr) Tag() string { return "A_Expr" }
func (*AExpr) node()       {}

type BoolExprKind string

const (
	BoolAnd BoolExprKind = "and"
	BoolOr  BoolExprKind = "or"
	BoolNot BoolExprKind = "not"
)

type BoolExpr struct {
	Op   BoolExprKind
	Args []Node
}

func (*BoolExpr) Tag() string { return "BoolExpr" }
func (*BoolExpr) node()       {}

type CaseExpr struct {
	Arg       Node
	Whens     []*CaseWhen
	Defresult Node
}

func (*CaseExpr) Tag() string { return "CaseExpr" }
func (*CaseExpr) node()       {}

type CaseWhen struct {
	Expr   Node
	Result Node
}

func (*CaseWhen) Tag() string { return "CaseWhen" }
func (*CaseWhen) node()       {}

// ColumnRef fields are String names, or AStar for t.* and bare *.
type ColumnRef struct {
	Fields []Node
}

func (*ColumnRef) Tag() string { return "ColumnRef" }
func (*ColumnRef) node()       {}

type FuncCall struct {
	Funcname    []string
	Args        []Node
	AggStar     bool
	AggDistinct bool
}

func (*FuncCall) Tag() string { return "FuncCall" }
func (*FuncCall) node()       {}

type NullTestKind string

const (
	IsNull    NullTestKind = "is_null"
	IsNotNull NullTestKind = "is_not_null"
)

type NullTest struct {
	Arg  Node
	Kind NullTestKind
}

func (*NullTest) Tag() string { return "NullTest" }
func (*NullTest) node()       {}

// ParamRef numbers placeholders from one.
type ParamRef struct {
	Number int
}

func (*ParamRef) Tag() string { return "ParamRef" }
func (*ParamRef) node()       {}

type SubLinkKind string

const (
	ExistsSublink SubLinkKind = "exists"
	AnySublink    SubLinkKind = "any"
	AllSublink    SubLinkKind = "all"
	ExprSublink   SubLinkKind = "expr"
)

type SubLink struct {
	Kind      SubLinkKind
	Testexpr  Node
	Subselect Node
}

func (*SubLink) Tag() string { return "SubLink" }
func (*SubLink) node()       {}

type TypeCast struct {
	Arg      Node
	TypeName *TypeName
}

func (*TypeCast) Tag() string { return "TypeCast" }
func (*TypeCast) node()       {}

// TypeName is a possibly qualified type, e.g. ["pg_catalog","int4"].
type TypeName struct {
	Names []string
}

func (*TypeName) Tag() string { return "TypeName" }
func (*TypeName) node()       {}

// Projection and sorting.

// ResTarget is one target-list entry: a projection column, an INSERT
// column name, or an UPDATE set clause.
type ResTarget struct {
	Name string
	Val  Node
}

func (*ResTarget) Tag() string { return "ResTarget" }
func (*ResTarget) node()       {}

type SortDir string

const (
	SortDefault SortDir = "default"
	SortAsc     SortDir = "asc"
	SortDesc    SortDir = "desc"
	SortUsing   SortDir = "using"
)

type SortBy struct {
	Node Node
	Dir  SortDir
}

func (*SortBy) Tag() string { return "SortBy" }
func (*SortBy) node()       {}

// FROM items.

type Alias struct {
	Aliasname string
}

func (*Alias) Tag() string { return "Alias" }
func (*Alias) node()       {}

type RangeVar struct {
	Catalogname string
	Schemaname  string
	Relname     string
	Alias       *Alias
}

func (*RangeVar) Tag() string { return "RangeVar" }
func (*RangeVar) node()       {}

type RangeSubselect struct {
	Subquery Node
	Alias    *Alias
}

func (*RangeSubselect) Tag() string { return "RangeSubselect" }
func (*RangeSubselect) node()       {}

type JoinKind string

const (
	JoinInner JoinKind = "inner"
	JoinLeft  JoinKind = "left"
	JoinRight JoinKind = "right"
	JoinFull  JoinKind = "full"
	JoinSemi  JoinKind = "semi"
	JoinAnti  JoinKind = "anti"
)

type JoinExpr struct {
	Jointype JoinKind
	Larg     Node
	Rarg     Node
	Quals    Node
}

func (*JoinExpr) Tag() string { return "JoinExpr" }
func (*JoinExpr) node()       {}

// Statements.

type SetOp string

const (
	SetOpNone      SetOp = "none"
	SetOpUnion     SetOp = "union"
	SetOpIntersect SetOp = "intersect"
	SetOpExcept    SetOp = "except"
)

type SelectStmt struct {
	DistinctClause []Node
	TargetList     []*ResTarget
	FromClause     []Node
	WhereClause    Node
	GroupClause    []Node
	HavingClause   Node
	SortClause     []*SortBy
	LimitCount     Node
	LimitOffset    Node

	// Set operation fields. Op none means a plain query block.
	Op   SetOp
	All  bool
	Larg *SelectStmt
	Rarg *SelectStmt

	// ValuesLists is set for VALUES (...) blocks, as in INSERT sources.
	ValuesLists [][]Node

	// With records that a WITH clause was present.
	With bool
}

func (*SelectStmt) Tag() string { return "SelectStmt" }
func (*SelectStmt) node()       {}

type InsertStmt struct {
	Relation   *RangeVar
	Cols       []*ResTarget
	Select     *SelectStmt
	OnConflict bool
	Returning  []Node
	With       bool
}

func (*InsertStmt) Tag() string { return "InsertStmt" }
func (*InsertStmt) node()       {}

type UpdateStmt struct {
	Relation    *RangeVar
	TargetList  []*ResTarget
	WhereClause Node
	FromClause  []Node
	Returning   []Node
	With        bool
}

func (*UpdateStmt) Tag() string { return "UpdateStmt" }
func (*UpdateStmt) node()       {}

type DeleteStmt struct {
	Relation    *RangeVar
	WhereClause Node
	UsingClause []Node
	Returning   []Node
	With        bool
}

func (*DeleteStmt) Tag() string { return "DeleteStmt" }
func (*DeleteStmt) node()       {}

type ConstraintKind string

const (
	ConstrPrimaryKey ConstraintKind = "primary_key"
	ConstrNotNull    ConstraintKind = "not_null"
	ConstrUnique     ConstraintKind = "unique"
	ConstrForeignKey ConstraintKind = "foreign_key"
	ConstrCheck      ConstraintKind = "check"
	ConstrDefault    ConstraintKind = "default"
)

// Constraint covers column and table constraints. The FK action and
// match fields carry the grammar engine's single-letter codes.
type Constraint struct {
	Contype     ConstraintKind
	Keys        []string
	RawExpr     Node
	PkTable     *RangeVar
	FkAttrs     []string
	PkAttrs     []string
	FkDelAction string
	FkUpdAction string
	FkMatchtype string
}

func (*Constraint) Tag() string { return "Constraint" }
func (*Constraint) node()       {}

type ColumnDef struct {
	Colname     string
	TypeName    *TypeName
	Constraints []*Constraint
}

func (*ColumnDef) Tag() string { return "ColumnDef" }
func (*ColumnDef) node()       {}

type CreateStmt struct {
	Relation    *RangeVar
	TableElts   []Node
	IfNotExists bool
}

func (*CreateStmt) Tag() string { return "CreateStmt" }
func (*CreateStmt) node()       {}

type IndexElem struct {
	Name string
	Expr Node
}

func (*IndexElem) Tag() string { return "IndexElem" }
func (*IndexElem) node()       {}

type IndexStmt struct {
	Idxname      string
	Relation     *RangeVar
	AccessMethod string
	Unique       bool
	IndexParams  []*IndexElem
}

func (*IndexStmt) Tag() string { return "IndexStmt" }
func (*IndexStmt) node()       {}

type CreatedbStmt struct {
	Dbname string
}

func (*CreatedbStmt) Tag() string { return "CreatedbStmt" }
func (*CreatedbStmt) node()       {}

type CreateSchemaStmt struct {
	Schemaname  string
	IfNotExists bool
}

func (*CreateSchemaStmt) Tag() string { return "CreateSchemaStmt" }
func (*CreateSchemaStmt) node()       {}

// CreateTrigStmt timing and events use the grammar engine's bit values:
// timing 2 is BEFORE and 64 is INSTEAD OF, events are 4 INSERT, 8 DELETE,
// 16 UPDATE, 32 TRUNCATE.
type CreateTrigStmt struct {
	Trigname   string
	Relation   *RangeVar
	Funcname   []string
	Args       []string
	Row        bool
	Timing     int
	Events     int
	Columns    []string
	WhenClause Node
}

func (*CreateTrigStmt) Tag() string { return "CreateTrigStmt" }
func (*CreateTrigStmt) node()       {}

type ViewStmt struct {
	View  *RangeVar
	Query Node
}

func (*ViewStmt) Tag() string { return "ViewStmt" }
func (*ViewStmt) node()       {}

type FunctionParameter struct {
	Name    string
	ArgType *TypeName
}

func (*FunctionParameter) Tag() string { return "FunctionParameter" }
func (*FunctionParameter) node()       {}

// DefElem is a generic name/value option, as in COPY options and CREATE
// FUNCTION clauses. Args holds one entry for scalar options.
type DefElem struct {
	Defname string
	Args    []string
}

func (*DefElem) Tag() string { return "DefElem" }
func (*DefElem) node()       {}

type CreateFunctionStmt struct {
	Replace    bool
	Funcname   []string
	Parameters []*FunctionParameter
	ReturnType *TypeName
	Options    []*DefElem
}

func (*CreateFunctionStmt) Tag() string { return "CreateFunctionStmt" }
func (*CreateFunctionStmt) node()       {}

type ObjectKind string

const (
	ObjectTable    ObjectKind = "table"
	ObjectIndex    ObjectKind = "index"
	ObjectSchema   ObjectKind = "schema"
	ObjectTrigger  ObjectKind = "trigger"
	ObjectView     ObjectKind = "view"
	ObjectSequence ObjectKind = "sequence"
)

// DropStmt objects are qualified name paths, one per dropped object.
type DropStmt struct {
	RemoveType ObjectKind
	Objects    [][]string
	MissingOk  bool
	Behavior   string
}

func (*DropStmt) Tag() string { return "DropStmt" }
func (*DropStmt) node()       {}

type DropdbStmt struct {
	Dbname    string
	MissingOk bool
}

func (*DropdbStmt) Tag() string { return "DropdbStmt" }
func (*DropdbStmt) node()       {}

type TruncateStmt struct {
	Relations []*RangeVar
}

func (*TruncateStmt) Tag() string { return "TruncateStmt" }
func (*TruncateStmt) node()       {}

type CopyStmt struct {
	Relation *RangeVar
	Query    Node
	Filename string
	IsFrom   bool
	Options  []*DefElem
}

func (*CopyStmt) Tag() string { return "CopyStmt" }
func (*CopyStmt) node()       {}

type ExplainStmt struct {
	Query Node
}

func (*ExplainStmt) Tag() string { return "ExplainStmt" }
func (*ExplainStmt) node()       {}

type PrepareStmt struct {
	Name  string
	Query Node
}

func (*PrepareStmt) Tag() string { return "PrepareStmt" }
func (*PrepareStmt) node()       {}

type ExecuteStmt struct {
	Name   string
	Params []Node
}

func (*ExecuteStmt) Tag() string { return "ExecuteStmt" }
func (*ExecuteStmt) node()       {}

// DeallocateStmt discards a prepared statement. An empty name means
// DEALLOCATE ALL.
type DeallocateStmt struct {
	Name string
}

func (*DeallocateStmt) Tag() string { return "DeallocateStmt" }
func (*DeallocateStmt) node()       {}

type TxnKind string

const (
	TxnBegin    TxnKind = "begin"
	TxnStart    TxnKind = "start"
	TxnCommit   TxnKind = "commit"
	TxnRollback TxnKind = "rollback"
)

type TransactionStmt struct {
	Kind TxnKind
}

func (*TransactionStmt) Tag() string { return "TransactionStmt" }
func (*TransactionStmt) node()       {}

type VacuumStmt struct {
	Relation *RangeVar
	Columns  []string
}

func (*VacuumStmt) Tag() string { return "VacuumStmt" }
func (*VacuumStmt) node()       {}

type VariableSetStmt struct {
	Name string
	Args []Node
}

func (*VariableSetStmt) Tag() string { return "VariableSetStmt" }
func (*VariableSetStmt) node()       {}
