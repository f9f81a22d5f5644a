// Package loader streams records out of CSV source files.
//
// A loader opens one file at a time, transparently decompressing *.csv.gz,
// and yields raw string records. The header row is consumed on open, with
// any UTF-8 byte order mark stripped from the first column name. Field
// count validation is left to the row converter so that short records can
// be padded the way the historical importers did.
package loader
