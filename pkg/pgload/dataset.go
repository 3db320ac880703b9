package pgload

import (
	"fmt"
	"strings"
)

// Column describes one column of a parsed file as the parser found it.
type Column struct {
	// Label is the header text exactly as it appeared in the file
	Label string

	// StorageClass is the parser's name for the detected value kind
	// (for example "int64", "float64", "bool", "datetime", "date", "string").
	// Only substrings of it are interpreted; see the schema package.
	StorageClass string
}

// Dataset is the in-memory result of parsing one input file.
// Every row has exactly len(Columns) cells. A nil cell is a missing value.
type Dataset struct {
	Columns []Column
	Rows    [][]any
}

// RowCount returns the number of data rows.
func (d Dataset) RowCount() int {
	return len(d.Rows)
}

// ColumnType is the database type a column maps to.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInteger64
	TypeFloat64
	TypeBoolean
	TypeTimestamp
	TypeDate
)

// String returns the type's name.
func (t ColumnType) String() string {
	switch t {
	case TypeText:
		return "TEXT"
	case TypeInteger64:
		return "INTEGER64"
	case TypeFloat64:
		return "FLOAT64"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeTimestamp:
		return "TIMESTAMP"
	case TypeDate:
		return "DATE"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// SQL returns the PostgreSQL type used in column definitions.
func (t ColumnType) SQL() string {
	switch t {
	case TypeInteger64:
		return "BIGINT"
	case TypeFloat64:
		return "DOUBLE PRECISION"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeTimestamp:
		return "TIMESTAMP"
	case TypeDate:
		return "DATE"
	default:
		return "TEXT"
	}
}

// ColumnSpec is one column of a table definition.
type ColumnSpec struct {
	Name string
	Type ColumnType
}

// TableSchema is the definition of one destination table.
// The surrogate key column is implicit: it is added at provisioning time and
// never appears in Columns.
type TableSchema struct {
	Table   string
	Columns []ColumnSpec
}

// InsertColumns returns the column names in the order row cells must be supplied.
func (s TableSchema) InsertColumns() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// String renders the schema as "table(col TYPE, ...)" for log output.
func (s TableSchema) String() string {
	parts := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		parts[i] = c.Name + " " + c.Type.SQL()
	}
	return s.Table + "(" + strings.Join(parts, ", ") + ")"
}
