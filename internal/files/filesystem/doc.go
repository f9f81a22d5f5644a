// Package filesystem abstracts the directory operations the scanner needs,
// so scanner tests can run against an in-memory tree instead of disk.
//
// Available implementations:
//   - OSFileSystem: the real filesystem
//   - MemoryFileSystem: an in-memory tree for tests
package filesystem
