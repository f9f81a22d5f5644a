package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/relload/pkg/relload"
)

// Prompts for the confirmation points of an import run. The wording is
// load-bearing: operators have scripted around these lines for years.
const (
	PromptStartImport  = "Start the import? [y/N]:"
	PromptStartAll     = "Ready to start imports? (y/n):"
	PromptContinueRuns = "Continue with remaining imports? [y/N]:"
)

// InteractiveApprover implements the Approver interface for console-based
// confirmation. Exactly "y" or "Y" (after trimming) approves; anything
// else, including EOF, declines.
type InteractiveApprover struct {
	prompt string
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates an approver that asks the given question on
// stderr and reads the answer from stdin.
func NewInteractiveApprover(prompt string) *InteractiveApprover {
	return &InteractiveApprover{
		prompt: prompt,
		input:  os.Stdin,
		output: os.Stderr,
	}
}

// RequestApproval asks the configured question and reads one line.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, _ string) (bool, error) {
	fmt.Fprintf(a.output, "%s ", a.prompt)

	// Read in a goroutine so an interrupt is not stuck behind a blocked
	// terminal read.
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			errChan <- err
			return
		}
		inputChan <- line
	}()

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("confirmation aborted: %w", relload.ErrInterrupted)
	case err := <-errChan:
		// EOF means no answer is coming; that is a decline, not a failure.
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read input: %w", err)
	case line := <-inputChan:
		answer := strings.TrimSpace(line)
		return answer == "y" || answer == "Y", nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ relload.Approver = (*InteractiveApprover)(nil)
