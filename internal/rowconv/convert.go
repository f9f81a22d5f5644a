package rowconv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/relload/internal/schema"
)

// utf8BOM is stripped from the first field of the first record of a file.
// Some export tools emit it; encoding/csv passes it through.
const utf8BOM = "\uFEFF"

// Clean maps the export NULL markers to SQL NULL.
// Returns the value and false when the value is NULL.
func Clean(value string) (string, bool) {
	switch value {
	case `\N`, `\\N`, "":
		return "", false
	default:
		return value, true
	}
}

// ParseBool converts boolean text per the export conventions.
// Unrecognized text is NULL, not an error.
func ParseBool(value string) (bool, bool) {
	switch strings.ToLower(value) {
	case "true", "t", "1", "yes":
		return true, true
	case "false", "f", "0", "no":
		return false, true
	default:
		return false, false
	}
}

// ParseInt converts integer text, accepting float spellings ("12.0") by
// truncation. Non-numeric text is NULL.
func ParseInt(value string) (int64, bool) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}

// ParseNumeric converts float text. Non-numeric text is NULL.
func ParseNumeric(value string) (float64, bool) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// TrimBOM removes a leading UTF-8 byte order mark.
func TrimBOM(value string) string {
	return strings.TrimPrefix(value, utf8BOM)
}

// ConvertRow converts one CSV record into insert arguments for the catalog
// columns, in column order. NULL values are nil elements.
//
// A record shorter than the catalog is padded with NULLs (truncated exports
// drop trailing empty fields). A record longer than the catalog is a
// structural error; the caller attributes it to file and row number.
func ConvertRow(tbl schema.Table, record []string) ([]any, error) {
	if len(record) > len(tbl.Columns) {
		return nil, fmt.Errorf("record has %d fields, table has %d columns", len(record), len(tbl.Columns))
	}

	args := make([]any, len(tbl.Columns))
	for i, col := range tbl.Columns {
		if i >= len(record) {
			args[i] = nil
			continue
		}
		args[i] = convertValue(col.Type, record[i])
	}
	return args, nil
}

// convertValue applies the per-type conversion to one cleaned value.
func convertValue(colType schema.ColumnType, raw string) any {
	value, ok := Clean(raw)
	if !ok {
		return nil
	}

	switch colType {
	case schema.TypeBoolean:
		if b, ok := ParseBool(value); ok {
			return b
		}
		return nil
	case schema.TypeInteger:
		if n, ok := ParseInt(value); ok {
			return n
		}
		return nil
	case schema.TypeNumeric:
		if f, ok := ParseNumeric(value); ok {
			return f
		}
		return nil
	default:
		// TEXT, DATE and TIMESTAMP pass through; PostgreSQL casts the
		// temporal values server-side, as the original importers relied on.
		return value
	}
}
