package schema

import (
	"fmt"
	"strings"
)

// DropSQL returns the statement that drops the target table and its
// dependents before a fresh import.
func (t Table) DropSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)
}

// CreateSQL returns the CREATE TABLE statement for the target table:
// a synthetic serial primary key, the catalog columns in order, and the
// trailing auto timestamp column.
func (t Table) CreateSQL(table string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", table)
	b.WriteString("    id SERIAL PRIMARY KEY,\n")
	for _, c := range t.Columns {
		fmt.Fprintf(&b, "    %s %s,\n", c.Name, c.Type)
	}
	fmt.Fprintf(&b, "    %s TIMESTAMP DEFAULT CURRENT_TIMESTAMP\n)", t.StampColumn)
	return b.String()
}

// InsertSQL returns the parameterized INSERT statement covering every
// catalog column, with positional placeholders in column order.
func (t Table) InsertSQL(table string) string {
	names := make([]string, len(t.Columns))
	params := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(params, ", "))
}

// SQL returns the CREATE INDEX statement for the index on the target table.
func (x Index) SQL(table string) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", x.Name, table, x.Column)
}

// ProbeSQL builds the query that checks whether a converted row already
// exists in the target table. Every catalog column participates: non-nil
// values compare with equality, nil values with IS NULL. The returned args
// hold the non-nil values in placeholder order.
func (t Table) ProbeSQL(table string, row []any) (string, []any, error) {
	if len(row) != len(t.Columns) {
		return "", nil, fmt.Errorf("probe row has %d values, catalog has %d columns", len(row), len(t.Columns))
	}

	conds := make([]string, len(t.Columns))
	args := make([]any, 0, len(row))
	for i, c := range t.Columns {
		if row[i] == nil {
			conds[i] = c.Name + " IS NULL"
			continue
		}
		args = append(args, row[i])
		conds[i] = fmt.Sprintf("%s = $%d", c.Name, len(args))
	}

	sql := fmt.Sprintf("SELECT 1 FROM %s WHERE %s LIMIT 1", table, strings.Join(conds, " AND "))
	return sql, args, nil
}
