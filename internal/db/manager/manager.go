package manager

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/relload/pkg/relload"
)

const (
	queryTableExists    = "SELECT to_regclass($1) IS NOT NULL"
	queryDatabaseExists = "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"
	queryTableSize      = "SELECT pg_size_pretty(pg_total_relation_size($1))"
)

// Manager implements database-level operations shared by the importer, the
// preflight check, and the integration test harness. Stateless; thread
// safety depends on the injected DBConnection.
type Manager struct{}

// New creates a new DatabaseManager instance.
func New() relload.DatabaseManager {
	return &Manager{}
}

// TableExists checks if a table exists in the connected database.
func (m *Manager) TableExists(ctx context.Context, conn relload.DBConnection, table string) (bool, error) {
	var exists bool
	if err := conn.QueryRow(ctx, queryTableExists, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return exists, nil
}

// TableStats returns the post-import statistics for a table: row count and
// pretty-printed total relation size.
func (m *Manager) TableStats(ctx context.Context, conn relload.DBConnection, table string) (relload.TableStats, error) {
	var stats relload.TableStats

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s", pgx.Identifier{table}.Sanitize())
	if err := conn.QueryRow(ctx, countSQL).Scan(&stats.Rows); err != nil {
		return stats, fmt.Errorf("failed to count rows of %q: %w", table, err)
	}

	if err := conn.QueryRow(ctx, queryTableSize, table).Scan(&stats.PrettySize); err != nil {
		return stats, fmt.Errorf("failed to read size of %q: %w", table, err)
	}

	return stats, nil
}

// DatabaseExists checks if a database exists on the server.
// Requires a connection to the management database.
func (m *Manager) DatabaseExists(ctx context.Context, conn relload.DBConnection, dbName string) (bool, error) {
	var exists bool
	if err := conn.QueryRow(ctx, queryDatabaseExists, dbName).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check database existence: %w", err)
	}
	return exists, nil
}

// CreateDatabase creates a new database. CREATE DATABASE cannot run inside
// a transaction, so it executes on a dedicated pooled connection.
func (m *Manager) CreateDatabase(ctx context.Context, conn relload.DBConnection, dbName string) error {
	pooledConn, err := conn.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer pooledConn.Release()

	query := fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{dbName}.Sanitize())
	if _, err := pooledConn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create database %q: %w", dbName, err)
	}
	return nil
}

// Verify Manager implements the DatabaseManager interface at compile time
var _ relload.DatabaseManager = (*Manager)(nil)
