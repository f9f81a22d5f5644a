// Package checksum computes SHA-256 checksums of CSV source files for the
// run session report.
//
// Checksums are always of the raw on-disk bytes. For .csv.gz sources that is
// the compressed byte stream, so a report entry identifies the exact file
// that was imported, not its decompressed content.
package checksum
