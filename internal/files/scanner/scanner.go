package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/relload/internal/files/filesystem"
	"github.com/vvka-141/relload/pkg/relload"
)

// csvPatterns are the glob patterns matched against file names inside the
// source folder. Order matters only for readability; results are re-sorted.
var csvPatterns = []string{"*.csv", "*.csv.gz"}

// Scanner discovers CSV files in a source folder.
// Safe for concurrent use as long as the provided fsProvider is thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner backed by the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// ScanFolder returns every CSV file directly inside folder, sorted by name.
// A missing folder wraps relload.ErrDataSourceMissing; an existing folder
// with no matches returns an empty result, which the importer reports as a
// zero-file success.
func (s *Scanner) ScanFolder(folder string) (relload.ScanResult, error) {
	info, err := s.fsProvider.Stat(folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return relload.ScanResult{}, fmt.Errorf("folder %s: %w", folder, relload.ErrDataSourceMissing)
		}
		return relload.ScanResult{}, fmt.Errorf("failed to access folder %s: %w", folder, err)
	}
	if !info.IsDir() {
		return relload.ScanResult{}, fmt.Errorf("%s is not a directory: %w", folder, relload.ErrDataSourceMissing)
	}

	entries, err := s.fsProvider.ReadDir(folder)
	if err != nil {
		return relload.ScanResult{}, fmt.Errorf("failed to read folder %s: %w", folder, err)
	}

	var files []relload.CSVFile
	for _, entry := range entries {
		if entry.IsDir() || !matchesCSV(entry.Name()) {
			continue
		}
		files = append(files, relload.CSVFile{
			Path:       filepath.ToSlash(filepath.Join(folder, entry.Name())),
			Name:       entry.Name(),
			Compressed: isCompressed(entry.Name()),
			SizeBytes:  entry.Size(),
			ModifiedAt: entry.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return relload.ScanResult{Files: files}, nil
}

// ScanFile returns the single named file, for single-file mode.
func (s *Scanner) ScanFile(path string) (relload.ScanResult, error) {
	info, err := s.fsProvider.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return relload.ScanResult{}, fmt.Errorf("file %s: %w", path, relload.ErrDataSourceMissing)
		}
		return relload.ScanResult{}, fmt.Errorf("failed to access file %s: %w", path, err)
	}
	if info.IsDir() {
		return relload.ScanResult{}, fmt.Errorf("%s is a directory, not a file: %w", path, relload.ErrDataSourceMissing)
	}

	return relload.ScanResult{Files: []relload.CSVFile{{
		Path:       filepath.ToSlash(path),
		Name:       info.Name(),
		Compressed: isCompressed(info.Name()),
		SizeBytes:  info.Size(),
		ModifiedAt: info.ModTime(),
	}}}, nil
}

// matchesCSV reports whether name matches one of the CSV source patterns.
func matchesCSV(name string) bool {
	for _, pattern := range csvPatterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// isCompressed reports whether the file needs gzip decompression.
func isCompressed(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".gz")
}

// Verify Scanner implements the interface at compile time
var _ relload.SourceScanner = (*Scanner)(nil)
