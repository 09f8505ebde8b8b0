package ast

// TypeID is the SQL value type carried by expressions and column
// definitions. The front end only tags nodes with types it can see in the
// parse tree; resolving anything further is the binder's job.
type TypeID int

const (
	TypeInvalid TypeID = iota
	TypeBoolean
	TypeTinyInt
	TypeSmallInt
	TypeInteger
	TypeBigInt
	TypeDecimal
	TypeTimestamp
	TypeDate
	TypeVarchar
)

var typeIDNames = map[TypeID]string{
	TypeInvalid:   "invalid",
	TypeBoolean:   "boolean",
	TypeTinyInt:   "tinyint",
	TypeSmallInt:  "smallint",
	TypeInteger:   "integer",
	TypeBigInt:    "bigint",
	TypeDecimal:   "decimal",
	TypeTimestamp: "timestamp",
	TypeDate:      "date",
	TypeVarchar:   "varchar",
}

var typeIDByName = make(map[string]TypeID, len(typeIDNames))

func init() {
	for t, n := range typeIDNames {
		typeIDByName[n] = t
	}
}

// String returns the wire name of the type.
func (t TypeID) String() string {
	if n, ok := typeIDNames[t]; ok {
		return n
	}
	return "invalid"
}

// ParseTypeID resolves a wire name back to a TypeID.
func ParseTypeID(name string) (TypeID, bool) {
	t, ok := typeIDByName[name]
	return t, ok
}
