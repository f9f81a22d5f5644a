// Package manager provides database-level operations for PostgreSQL:
// table existence probes (to_regclass), post-import table statistics
// (row count and pg_size_pretty), database existence checks, and database
// creation for the preflight path.
//
// Identifiers interpolated into SQL are quoted with pgx.Identifier.Sanitize()
// so table and database names with special characters cannot break out of
// the statement.
//
// # Example Usage
//
//	mgr := manager.New()
//
//	exists, err := mgr.TableExists(ctx, conn, "releases_org_export")
//
//	stats, err := mgr.TableStats(ctx, conn, "releases_org_export")
//
//	// Preflight: create the target database when absent.
//	ok, err := mgr.DatabaseExists(ctx, mgmtConn, "venture_db")
//	if !ok {
//		err = mgr.CreateDatabase(ctx, mgmtConn, "venture_db")
//	}
//
// # Thread Safety
//
// Manager is stateless; concurrent use is as safe as the injected
// DBConnection.
package manager
