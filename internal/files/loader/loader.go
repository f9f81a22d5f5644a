package loader

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/vvka-141/relload/internal/files/filesystem"
	"github.com/vvka-141/relload/internal/rowconv"
	"github.com/vvka-141/relload/pkg/relload"
)

// Loader opens CSV source files for streaming reads.
type Loader struct {
	fsProvider filesystem.FileSystemProvider
}

// NewLoader creates a loader backed by the OS filesystem.
func NewLoader() *Loader {
	return &Loader{fsProvider: filesystem.NewOSFileSystem()}
}

// NewLoaderWithFS creates a loader with a custom filesystem provider.
// Panics if fsProvider is nil.
func NewLoaderWithFS(fsProvider filesystem.FileSystemProvider) *Loader {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Loader{fsProvider: fsProvider}
}

// Open opens file for reading and consumes its header row.
// A file with no rows at all yields a nil header and an immediate io.EOF
// from Read; the caller treats that as a zero-row success.
func (l *Loader) Open(file relload.CSVFile) (*CSVReader, error) {
	rc, err := l.fsProvider.Open(file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Path, err)
	}

	reader := &CSVReader{file: file, raw: rc}

	var src io.Reader = rc
	if file.Compressed {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("failed to decompress %s: %w", file.Path, err)
		}
		reader.gz = gz
		src = gz
	}

	cr := csv.NewReader(src)
	// Ragged rows are handled downstream: short records are padded with
	// NULLs, long records fail the file.
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false
	reader.csv = cr

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return reader, nil
		}
		reader.Close()
		return nil, fmt.Errorf("failed to read header of %s: %w", file.Path, err)
	}
	if len(header) > 0 {
		header[0] = rowconv.TrimBOM(header[0])
	}
	reader.header = header

	return reader, nil
}

// CSVReader streams records from a single opened CSV file.
// Not safe for concurrent use.
type CSVReader struct {
	file   relload.CSVFile
	raw    io.ReadCloser
	gz     *gzip.Reader
	csv    *csv.Reader
	header []string
	rows   int
}

// Header returns the column names from the header row, or nil for an
// entirely empty file.
func (r *CSVReader) Header() []string {
	return r.header
}

// Read returns the next data record. It returns io.EOF when the file is
// exhausted.
func (r *CSVReader) Read() ([]string, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read row %d of %s: %w", r.rows+2, r.file.Name, err)
	}
	r.rows++
	return record, nil
}

// Rows returns the number of data records read so far.
func (r *CSVReader) Rows() int {
	return r.rows
}

// Close releases the underlying file handles.
func (r *CSVReader) Close() error {
	var gzErr error
	if r.gz != nil {
		gzErr = r.gz.Close()
	}
	if err := r.raw.Close(); err != nil {
		return err
	}
	return gzErr
}
