package relload

import "time"

// CSVFile describes one discovered CSV source file.
// All paths use Unix-style forward slashes for cross-platform consistency.
type CSVFile struct {
	// Path is the full path as given to the scanner.
	Path string

	// Name is the filename only: "releases_org_001.csv.gz".
	Name string

	// Compressed is true for *.csv.gz files; the loader decompresses
	// transparently.
	Compressed bool

	// SizeBytes is the on-disk (compressed) size.
	SizeBytes int64

	// ModifiedAt is the last modification time.
	ModifiedAt time.Time
}

// SourceScanner defines the interface for discovering CSV source files.
// Implementations must be safe for concurrent use by multiple goroutines.
type SourceScanner interface {
	// ScanFolder returns every *.csv and *.csv.gz file directly inside
	// folder, sorted by name. Import order is exactly this order.
	// A missing folder returns an error wrapping ErrDataSourceMissing;
	// an existing folder with no matches returns an empty result.
	ScanFolder(folder string) (ScanResult, error)

	// ScanFile returns the single named file, for single-file mode.
	// A missing file returns an error wrapping ErrDataSourceMissing.
	ScanFile(path string) (ScanResult, error)
}

// ScanResult contains the results of scanning a CSV source.
type ScanResult struct {
	Files []CSVFile
}
