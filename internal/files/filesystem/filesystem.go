package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider is the filesystem surface used by the CSV scanner.
type FileSystemProvider interface {
	// Open opens the named file for streaming reads.
	Open(path string) (io.ReadCloser, error)

	// ReadFile reads the whole file at the given path.
	ReadFile(path string) ([]byte, error)

	// ReadDir returns the entries directly inside path, without recursing.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}
