package loader

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"testing"

	"github.com/vvka-141/relload/internal/files/filesystem"
	"github.com/vvka-141/relload/pkg/relload"
)

func gzipBytes(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(content)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestOpenPlainCSV(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("data/releases_org_001.csv", []byte("RBID,COMPANY_NAME\n1,Acme\n2,Beta\n"))

	l := NewLoaderWithFS(mfs)
	r, err := l.Open(relload.CSVFile{Path: "data/releases_org_001.csv", Name: "releases_org_001.csv"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	header := r.Header()
	if len(header) != 2 || header[0] != "RBID" || header[1] != "COMPANY_NAME" {
		t.Fatalf("unexpected header: %v", header)
	}

	first, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if first[0] != "1" || first[1] != "Acme" {
		t.Fatalf("unexpected first record: %v", first)
	}

	if _, err := r.Read(); err != nil {
		t.Fatalf("Read second: %v", err)
	}
	if _, err := r.Read(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if r.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2", r.Rows())
	}
}

func TestOpenGzipCSV(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("data/releases_org_001.csv.gz", gzipBytes(t, "RBID,COMPANY_NAME\n1,Acme\n"))

	l := NewLoaderWithFS(mfs)
	r, err := l.Open(relload.CSVFile{
		Path:       "data/releases_org_001.csv.gz",
		Name:       "releases_org_001.csv.gz",
		Compressed: true,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if got := r.Header(); len(got) != 2 || got[0] != "RBID" {
		t.Fatalf("unexpected header: %v", got)
	}
	record, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if record[1] != "Acme" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestOpenStripsBOM(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("data/f.csv", []byte("\xef\xbb\xbfRBID,COMPANY_NAME\n"))

	l := NewLoaderWithFS(mfs)
	r, err := l.Open(relload.CSVFile{Path: "data/f.csv", Name: "f.csv"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if got := r.Header()[0]; got != "RBID" {
		t.Fatalf("header[0] = %q, want RBID", got)
	}
}

func TestOpenEmptyFile(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("data/empty.csv", nil)

	l := NewLoaderWithFS(mfs)
	r, err := l.Open(relload.CSVFile{Path: "data/empty.csv", Name: "empty.csv"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if r.Header() != nil {
		t.Fatalf("expected nil header, got %v", r.Header())
	}
	if _, err := r.Read(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestOpenRaggedRows(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("data/ragged.csv", []byte("A,B,C\n1,2\n1,2,3,4\n"))

	l := NewLoaderWithFS(mfs)
	r, err := l.Open(relload.CSVFile{Path: "data/ragged.csv", Name: "ragged.csv"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	short, err := r.Read()
	if err != nil {
		t.Fatalf("Read short row: %v", err)
	}
	if len(short) != 2 {
		t.Fatalf("short row has %d fields, want 2", len(short))
	}
	long, err := r.Read()
	if err != nil {
		t.Fatalf("Read long row: %v", err)
	}
	if len(long) != 4 {
		t.Fatalf("long row has %d fields, want 4", len(long))
	}
}

func TestOpenMissingFile(t *testing.T) {
	l := NewLoaderWithFS(filesystem.NewMemoryFileSystem())
	if _, err := l.Open(relload.CSVFile{Path: "absent.csv", Name: "absent.csv"}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOpenBadGzip(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("data/bad.csv.gz", []byte("not gzip at all"))

	l := NewLoaderWithFS(mfs)
	if _, err := l.Open(relload.CSVFile{Path: "data/bad.csv.gz", Name: "bad.csv.gz", Compressed: true}); err == nil {
		t.Fatal("expected error for corrupt gzip")
	}
}
