// Package logging provides concrete implementations of the relload.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//
// The package also provides Progress, the stdout writer for importer progress
// lines, which can tee timestamped copies into an append-only log file.
//
// All implementations are safe for concurrent use by multiple goroutines.
package logging
