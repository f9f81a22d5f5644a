package relload

import (
	"context"
)

// TableStats holds the post-import statistics reported for a table.
type TableStats struct {
	// Rows is SELECT COUNT(*) of the table.
	Rows int64

	// PrettySize is pg_size_pretty(pg_total_relation_size(...)).
	PrettySize string
}

// DatabaseManager defines the interface for database-level operations shared
// by the importer, the preflight check, and the integration test harness.
// Implementations are NOT safe for concurrent use. Create separate instances
// for concurrent operations.
type DatabaseManager interface {
	// TableExists checks if a table exists in the connected database.
	TableExists(ctx context.Context, conn DBConnection, table string) (bool, error)

	// TableStats returns row count and pretty-printed total relation size.
	TableStats(ctx context.Context, conn DBConnection, table string) (TableStats, error)

	// DatabaseExists checks if a database exists on the server.
	// Requires a connection to the management database.
	DatabaseExists(ctx context.Context, conn DBConnection, dbName string) (bool, error)

	// CreateDatabase creates a new database.
	// Requires a connection to the management database.
	CreateDatabase(ctx context.Context, conn DBConnection, dbName string) error
}
