package ast

// CopyFormat is the external data format of a COPY statement.
type CopyFormat int

const (
	CopyCSV CopyFormat = iota
	CopyBinary
	CopyText
)

var copyFormatNames = map[CopyFormat]string{
	CopyCSV:    "csv",
	CopyBinary: "binary",
	CopyText:   "text",
}

func (f CopyFormat) String() string {
	if name, ok := copyFormatNames[f]; ok {
		return name
	}
	return "csv"
}

func ParseCopyFormat(name string) (CopyFormat, bool) {
	for f, n := range copyFormatNames {
		if n == name {
			return f, true
		}
	}
	return CopyCSV, false
}

// CopyStatement moves rows between a table (or query) and a file. Exactly
// one of Table and Select is set.
type CopyStatement struct {
	Table     *TableRef
	Select    *SelectStatement
	FilePath  string
	Format    CopyFormat
	IsFrom    bool
	Delimiter rune
	Quote     rune
	Escape    rune
}

func (s *CopyStatement) Type() StatementType { return StmtCopy }
func (s *CopyStatement) stmtNode()           {}

func (s *CopyStatement) Copy() *CopyStatement {
	if s == nil {
		return nil
	}
	c := *s
	c.Table = s.Table.Copy()
	c.Select = s.Select.Copy()
	return &c
}

// ExplainStatement wraps the statement being explained.
type ExplainStatement struct {
	Inner Statement
}

func (s *ExplainStatement) Type() StatementType { return StmtExplain }
func (s *ExplainStatement) stmtNode()           {}

func (s *ExplainStatement) Copy() *ExplainStatement {
	if s == nil {
		return nil
	}
	return &ExplainStatement{Inner: CloneStatement(s.Inner)}
}

// PrepareStatement names a statement for later execution.
type PrepareStatement struct {
	Name  string
	Query Statement
}

func (s *PrepareStatement) Type() StatementType { return StmtPrepare }
func (s *PrepareStatement) stmtNode()           {}

func (s *PrepareStatement) Copy() *PrepareStatement {
	if s == nil {
		return nil
	}
	return &PrepareStatement{Name: s.Name, Query: CloneStatement(s.Query)}
}

// ExecuteStatement runs a prepared statement with arguments.
type ExecuteStatement struct {
	Name       string
	Parameters []Expression
}

func (s *ExecuteStatement) Type() StatementType { return StmtExecute }
func (s *ExecuteStatement) stmtNode()           {}

func (s *ExecuteStatement) Copy() *ExecuteStatement {
	if s == nil {
		return nil
	}
	return &ExecuteStatement{Name: s.Name, Parameters: copyExprs(s.Parameters)}
}

// TransactionKind is the boundary a transaction statement marks.
type TransactionKind int

const (
	TransactionBegin TransactionKind = iota
	TransactionCommit
	TransactionRollback
)

var transactionKindNames = map[TransactionKind]string{
	TransactionBegin:    "begin",
	TransactionCommit:   "commit",
	TransactionRollback: "rollback",
}

func (k TransactionKind) String() string {
	if name, ok := transactionKindNames[k]; ok {
		return name
	}
	return "begin"
}

func ParseTransactionKind(name string) (TransactionKind, bool) {
	for k, n := range transactionKindNames {
		if n == name {
			return k, true
		}
	}
	return TransactionBegin, false
}

type TransactionStatement struct {
	Kind TransactionKind
}

func (s *TransactionStatement) Type() StatementType { return StmtTransaction }
func (s *TransactionStatement) stmtNode()           {}

func (s *TransactionStatement) Copy() *TransactionStatement {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// AnalyzeStatement collects statistics for a table, optionally restricted
// to named columns. VACUUM arrives here as well.
type AnalyzeStatement struct {
	Table   *TableInfo
	Columns []string
}

func (s *AnalyzeStatement) Type() StatementType { return StmtAnalyze }
func (s *AnalyzeStatement) stmtNode()           {}

func (s *AnalyzeStatement) Copy() *AnalyzeStatement {
	if s == nil {
		return nil
	}
	return &AnalyzeStatement{Table: s.Table.Copy(), Columns: copyStrings(s.Columns)}
}

// VariableSetStatement is SET name = value.
type VariableSetStatement struct {
	Name   string
	Values []Expression
}

func (s *VariableSetStatement) Type() StatementType { return StmtVariableSet }
func (s *VariableSetStatement) stmtNode()           {}

func (s *VariableSetStatement) Copy() *VariableSetStatement {
	if s == nil {
		return nil
	}
	return &VariableSetStatement{Name: s.Name, Values: copyExprs(s.Values)}
}
