// Package fixtures writes CSV source files for import tests.
package fixtures

import (
	"compress/gzip"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// WriteCSV writes a CSV file with the given header and rows into dir and
// returns its path. Rows may carry fewer fields than the target schema;
// the importer pads the remainder with NULLs.
func WriteCSV(t *testing.T, dir, name string, header []string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create fixture %s: %v", name, err)
	}
	defer f.Close()

	writeRecords(t, f, name, header, rows)
	return path
}

// WriteGzipCSV writes a gzip-compressed CSV file into dir and returns its
// path. The name should end in .csv.gz so the scanner picks it up.
func WriteGzipCSV(t *testing.T, dir, name string, header []string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create fixture %s: %v", name, err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	defer zw.Close()

	writeRecords(t, zw, name, header, rows)
	return path
}

func writeRecords(t *testing.T, w io.Writer, name string, header []string, rows [][]string) {
	t.Helper()

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		t.Fatalf("Failed to write header of %s: %v", name, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			t.Fatalf("Failed to write row of %s: %v", name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		t.Fatalf("Failed to flush %s: %v", name, err)
	}
}
