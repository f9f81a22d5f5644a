// Package schema defines the typed table catalogs for the release export
// imports and generates all SQL derived from them.
//
// # Overview
//
// Each import variant (org, per, raw-feed-per) targets one PostgreSQL table
// whose shape is fixed: a synthetic id SERIAL PRIMARY KEY, the data columns
// in CSV header order, and a trailing auto timestamp column. The catalog is
// the single source of truth for:
//   - Column names, order, and SQL types (drives row conversion)
//   - Index names and indexed columns
//   - Default table name and default CSV folder per variant
//   - Whether the table is dropped before creation
//   - Whether files are probed for prior import before loading
//
// # DDL Generation
//
// All SQL is generated from the catalog, never hand-written at call sites:
//
//	tbl, _ := schema.For(relload.VariantOrg)
//	drop := tbl.DropSQL("releases_org_export")
//	create := tbl.CreateSQL("releases_org_export")
//	insert := tbl.InsertSQL("releases_org_export")
//
// Target table names are passed in by the caller because the org variant
// honors a TABLE_NAME override; the catalog only records defaults.
//
// # Design Principles
//
//  1. Closed catalog: exactly three variants, no registration mechanism
//  2. Column order is insert order is CSV order
//  3. Index creation is best-effort at the call site; the catalog only
//     names the indexes
package schema
