// Package scanner discovers CSV source files for an import run.
//
// A scan returns every *.csv and *.csv.gz file directly inside the source
// folder, sorted by name; sorted name order is the import order. Nested
// directories are not descended into, matching the historical importers'
// flat folder layout.
package scanner
