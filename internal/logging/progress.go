package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Progress writes importer progress lines to an output stream, normally
// stdout. When a log file is attached, every line is also appended to the
// file prefixed with a timestamp, matching the format of the historical
// per-import log files.
//
// Safe for concurrent use by multiple goroutines.
type Progress struct {
	out  io.Writer
	file *os.File
	now  func() time.Time
	mu   sync.Mutex
}

// NewProgress creates a Progress writing to out.
// Pass os.Stdout for normal operation; tests pass a buffer.
func NewProgress(out io.Writer) *Progress {
	return &Progress{
		out: out,
		now: time.Now,
	}
}

// AttachFile opens path for appending and tees all subsequent lines into it.
// The caller owns the lifecycle and must call Close.
func (p *Progress) AttachFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.file = f
	return nil
}

// Printf writes one progress line. A trailing newline is added.
func (p *Progress) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out, msg)
	if p.file != nil {
		fmt.Fprintf(p.file, "%s - %s\n", p.now().Format("2006-01-02 15:04:05"), msg)
	}
}

// Close closes the attached log file, if any. Idempotent.
func (p *Progress) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}
