// Package rowconv converts raw CSV text values into typed insert arguments.
//
// The conversion rules reproduce the behavior of the historical import
// scripts exactly:
//   - `\N`, `\\N` and the empty string are SQL NULL
//   - booleans accept true/t/1/yes and false/f/0/no, case-insensitive
//   - integers accept integer and float text ("12", "12.0"), truncating
//   - numerics accept any float text
//   - date and timestamp columns pass the cleaned text through for
//     PostgreSQL to cast
//
// A malformed value never fails a row: it converts to NULL, as the original
// importers did. Only structural problems (a record with more fields than
// the catalog has columns) are reported as errors.
package rowconv
