package schema

// ColumnType identifies the PostgreSQL type of a catalog column.
// The value is the literal type name used in generated DDL.
type ColumnType string

const (
	TypeText      ColumnType = "TEXT"
	TypeInteger   ColumnType = "INTEGER"
	TypeNumeric   ColumnType = "NUMERIC"
	TypeBoolean   ColumnType = "BOOLEAN"
	TypeDate      ColumnType = "DATE"
	TypeTimestamp ColumnType = "TIMESTAMP"
)

// Column is one data column of an import table.
type Column struct {
	Name string
	Type ColumnType
}

// Index names a single-column index on an import table.
type Index struct {
	Name   string
	Column string
}

// Table describes the complete shape of one import target.
//
// Callers must treat the returned value as read-only; the Columns and
// Indexes slices are shared across calls to For.
type Table struct {
	// DefaultName is the table name used when no override is configured.
	DefaultName string

	// DefaultFolder is the CSV source folder used when CSV_FOLDER_PATH
	// is not set.
	DefaultFolder string

	// StampColumn is the trailing auto timestamp column
	// (created_at or import_timestamp).
	StampColumn string

	// DropFirst indicates the table is dropped with CASCADE before each
	// import run.
	DropFirst bool

	// ResumeCheck indicates files are probed against existing rows and
	// skipped when their first row is already present.
	ResumeCheck bool

	Columns []Column
	Indexes []Index
}

// ColumnNames returns the data column names in catalog order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
