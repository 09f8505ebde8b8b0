package ast

import "strings"

// StatementType discriminates the closed statement family.
type StatementType int

const (
	StmtInvalid StatementType = iota
	StmtSelect
	StmtInsert
	StmtUpdate
	StmtDelete
	StmtCreate
	StmtCreateFunction
	StmtDrop
	StmtCopy
	StmtExplain
	StmtPrepare
	StmtExecute
	StmtTransaction
	StmtAnalyze
	StmtVariableSet
)

var stmtTypeNames = map[StatementType]string{
	StmtInvalid:        "invalid",
	StmtSelect:         "select",
	StmtInsert:         "insert",
	StmtUpdate:         "update",
	StmtDelete:         "delete",
	StmtCreate:         "create",
	StmtCreateFunction: "create_function",
	StmtDrop:           "drop",
	StmtCopy:           "copy",
	StmtExplain:        "explain",
	StmtPrepare:        "prepare",
	StmtExecute:        "execute",
	StmtTransaction:    "transaction",
	StmtAnalyze:        "analyze",
	StmtVariableSet:    "variable_set",
}

var stmtTypeByName = map[string]StatementType{}

func init() {
	for t, name := range stmtTypeNames {
		stmtTypeByName[name] = t
	}
}

func (t StatementType) String() string {
	if name, ok := stmtTypeNames[t]; ok {
		return name
	}
	return "invalid"
}

// ParseStatementType maps a wire name back to its StatementType.
func ParseStatementType(name string) (StatementType, bool) {
	t, ok := stmtTypeByName[name]
	return t, ok
}

// Statement is implemented by every statement variant in this package and
// by nothing else.
type Statement interface {
	Type() StatementType
	stmtNode()
}

// CloneStatement deep-copies any statement variant. Predicate handles held
// by the statement keep pointing at the same arena slots; the predicates
// themselves are shared, not duplicated.
func CloneStatement(s Statement) Statement {
	switch st := s.(type) {
	case nil:
		return nil
	case *SelectStatement:
		return st.Copy()
	case *InsertStatement:
		return st.Copy()
	case *UpdateStatement:
		return st.Copy()
	case *DeleteStatement:
		return st.Copy()
	case *CreateStatement:
		return st.Copy()
	case *CreateFunctionStatement:
		return st.Copy()
	case *DropStatement:
		return st.Copy()
	case *CopyStatement:
		return st.Copy()
	case *ExplainStatement:
		return st.Copy()
	case *PrepareStatement:
		return st.Copy()
	case *ExecuteStatement:
		return st.Copy()
	case *TransactionStatement:
		return st.Copy()
	case *AnalyzeStatement:
		return st.Copy()
	case *VariableSetStatement:
		return st.Copy()
	default:
		panic("ast: CloneStatement on unknown statement type")
	}
}

// TableInfo names a table as database.schema.table, any prefix of which
// may be empty.
type TableInfo struct {
	Database string
	Schema   string
	Table    string
}

func (t *TableInfo) Copy() *TableInfo {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (t *TableInfo) String() string {
	if t == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{t.Database, t.Schema, t.Table} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}
