package scanner

import (
	"errors"
	"testing"

	"github.com/vvka-141/relload/internal/files/filesystem"
	"github.com/vvka-141/relload/pkg/relload"
)

func newTestFS() *filesystem.MemoryFileSystem {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("20250922/org/csv/releases_org_002.csv", []byte("h\nb\n"))
	mfs.AddFile("20250922/org/csv/releases_org_001.csv", []byte("h\na\n"))
	mfs.AddFile("20250922/org/csv/releases_org_003.csv.gz", []byte{0x1f, 0x8b})
	mfs.AddFile("20250922/org/csv/README.txt", []byte("not csv"))
	mfs.AddFile("20250922/org/csv/archive.gz", []byte("not csv either"))
	mfs.AddFile("20250922/org/csv/nested/releases_org_009.csv", []byte("ignored"))
	return mfs
}

func TestScanFolderSortedAndFiltered(t *testing.T) {
	s := NewScannerWithFS(newTestFS())

	result, err := s.ScanFolder("20250922/org/csv")
	if err != nil {
		t.Fatalf("ScanFolder: %v", err)
	}

	want := []string{"releases_org_001.csv", "releases_org_002.csv", "releases_org_003.csv.gz"}
	if len(result.Files) != len(want) {
		t.Fatalf("got %d files, want %d: %+v", len(result.Files), len(want), result.Files)
	}
	for i, name := range want {
		if result.Files[i].Name != name {
			t.Errorf("file[%d] = %s, want %s", i, result.Files[i].Name, name)
		}
	}
}

func TestScanFolderCompressedFlag(t *testing.T) {
	s := NewScannerWithFS(newTestFS())

	result, err := s.ScanFolder("20250922/org/csv")
	if err != nil {
		t.Fatalf("ScanFolder: %v", err)
	}

	for _, f := range result.Files {
		wantCompressed := f.Name == "releases_org_003.csv.gz"
		if f.Compressed != wantCompressed {
			t.Errorf("%s: Compressed = %v", f.Name, f.Compressed)
		}
	}
}

func TestScanFolderMissing(t *testing.T) {
	s := NewScannerWithFS(newTestFS())

	_, err := s.ScanFolder("20250922/per/csv")
	if !errors.Is(err, relload.ErrDataSourceMissing) {
		t.Fatalf("expected ErrDataSourceMissing, got %v", err)
	}
}

func TestScanFolderEmpty(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddDir("20250922/per/csv")
	s := NewScannerWithFS(mfs)

	result, err := s.ScanFolder("20250922/per/csv")
	if err != nil {
		t.Fatalf("ScanFolder: %v", err)
	}
	if len(result.Files) != 0 {
		t.Fatalf("expected empty result, got %+v", result.Files)
	}
}

func TestScanFile(t *testing.T) {
	s := NewScannerWithFS(newTestFS())

	result, err := s.ScanFile("20250922/org/csv/releases_org_001.csv")
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0].Name != "releases_org_001.csv" {
		t.Fatalf("unexpected result: %+v", result.Files)
	}
}

func TestScanFileMissing(t *testing.T) {
	s := NewScannerWithFS(newTestFS())

	_, err := s.ScanFile("20250922/org/csv/absent.csv")
	if !errors.Is(err, relload.ErrDataSourceMissing) {
		t.Fatalf("expected ErrDataSourceMissing, got %v", err)
	}
}
