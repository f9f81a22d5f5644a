package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
)

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) { l.record(format, args...) }
func (l *recordingLogger) Info(format string, args ...interface{})    { l.record(format, args...) }
func (l *recordingLogger) Error(format string, args ...interface{})   { l.record(format, args...) }

func TestForcedApprover_ApprovesAndLogs(t *testing.T) {
	logger := &recordingLogger{}
	approver := NewForcedApprover(logger)

	approved, err := approver.RequestApproval(context.Background(), "releases_org_export")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !approved {
		t.Fatal("Expected forced approval")
	}

	if len(logger.messages) != 1 || !strings.Contains(logger.messages[0], "releases_org_export") {
		t.Errorf("Expected the target to be logged, got: %v", logger.messages)
	}
}

func TestNewForcedApprover_NilLogger(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic for nil logger")
		}
	}()
	NewForcedApprover(nil)
}

func TestInteractiveApprover_Answers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		approved bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"y with whitespace", "  y  \n", true},
		{"n", "n\n", false},
		{"yes spelled out", "yes\n", false},
		{"empty line", "\n", false},
		{"arbitrary text", "sure\n", false},
		{"last line without newline", "y", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			approver := &InteractiveApprover{
				prompt: PromptStartImport,
				input:  strings.NewReader(tt.input),
				output: &output,
			}

			approved, err := approver.RequestApproval(context.Background(), "releases_org_export")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if approved != tt.approved {
				t.Errorf("Input %q: expected approved=%v, got %v", tt.input, tt.approved, approved)
			}
		})
	}
}

func TestInteractiveApprover_PromptWritten(t *testing.T) {
	var output bytes.Buffer
	approver := &InteractiveApprover{
		prompt: PromptStartAll,
		input:  strings.NewReader("y\n"),
		output: &output,
	}

	_, _ = approver.RequestApproval(context.Background(), "")

	if !strings.Contains(output.String(), "Ready to start imports? (y/n)") {
		t.Errorf("Expected prompt in output, got:\n%s", output.String())
	}
}

func TestInteractiveApprover_EOFDeclines(t *testing.T) {
	var output bytes.Buffer
	approver := &InteractiveApprover{
		prompt: PromptStartImport,
		input:  strings.NewReader(""),
		output: &output,
	}

	approved, err := approver.RequestApproval(context.Background(), "releases_org_export")
	if err != nil {
		t.Fatalf("EOF must decline without error, got: %v", err)
	}
	if approved {
		t.Fatal("Expected decline on EOF")
	}
}

func TestInteractiveApprover_ReadError(t *testing.T) {
	var output bytes.Buffer
	approver := &InteractiveApprover{
		prompt: PromptStartImport,
		input:  &errorReader{err: io.ErrUnexpectedEOF},
		output: &output,
	}

	approved, err := approver.RequestApproval(context.Background(), "releases_org_export")
	if err == nil {
		t.Fatal("Expected error for read failure")
	}
	if approved {
		t.Fatal("Expected denial on read error")
	}
	if !strings.Contains(err.Error(), "failed to read input") {
		t.Errorf("Expected read error wrapper, got: %v", err)
	}
}

func TestInteractiveApprover_ContextCancellation(t *testing.T) {
	var output bytes.Buffer
	input := newBlockingReader()
	t.Cleanup(func() { input.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	approver := &InteractiveApprover{
		prompt: PromptStartImport,
		input:  input,
		output: &output,
	}

	approved, err := approver.RequestApproval(ctx, "releases_org_export")
	if err == nil {
		t.Fatal("Expected context cancellation error")
	}
	if approved {
		t.Fatal("Expected denial on context cancellation")
	}
}

type errorReader struct {
	err error
}

func (r *errorReader) Read([]byte) (int, error) {
	return 0, r.err
}

type blockingReader struct {
	done chan struct{}
}

func newBlockingReader() *blockingReader {
	return &blockingReader{done: make(chan struct{})}
}

func (r *blockingReader) Read([]byte) (int, error) {
	<-r.done
	return 0, io.EOF
}

func (r *blockingReader) Close() error {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
	return nil
}
