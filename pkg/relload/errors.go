package relload

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := importer.Import(ctx, config)
//	if errors.Is(err, relload.ErrCancelled) {
//	    // User declined the confirmation prompt; not a failure.
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrPrereqFailed indicates an interpreter or driver prerequisite
	// could not be satisfied.
	ErrPrereqFailed = errors.New("prerequisite check failed")

	// ErrImportFailed indicates the import run finished with failures.
	ErrImportFailed = errors.New("import failed")

	// ErrDataSourceMissing indicates the CSV folder or file does not exist.
	ErrDataSourceMissing = errors.New("csv source not found")

	// ErrCancelled indicates the user declined a confirmation prompt.
	// This maps to a successful exit: declining is not a failure.
	ErrCancelled = errors.New("cancelled by user")

	// ErrInvalidSelection indicates a menu selection outside the offered set.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrInterrupted indicates the run was cancelled by SIGINT or SIGTERM.
	ErrInterrupted = errors.New("interrupted")
)

// ScriptExitError carries the exit status of an external script so the
// launcher can propagate it verbatim, preserving the wrapper contract.
type ScriptExitError struct {
	Script string
	Code   int
}

func (e *ScriptExitError) Error() string {
	return fmt.Sprintf("script %s exited with status %d", e.Script, e.Code)
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors and for ErrCancelled, semantic
// codes for known errors, and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// A child script's exit status is propagated verbatim.
	var scriptErr *ScriptExitError
	if errors.As(err, &scriptErr) {
		return scriptErr.Code
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrCancelled):
		return ExitSuccess
	case errors.Is(err, ErrInvalidSelection):
		return ExitGeneralError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrPrereqFailed):
		return ExitPrereqError
	case errors.Is(err, ErrImportFailed):
		return ExitImportFailed
	case errors.Is(err, ErrDataSourceMissing):
		return ExitDataSourceMissing
	case errors.Is(err, ErrInterrupted):
		return ExitInterrupted
	}

	errStr := err.Error()

	// Cobra surfaces flag/argument misuse as plain errors; classify them
	// as usage errors so scripts can tell misuse from real failures.
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "invalid argument") ||
		strings.Contains(errStr, "required flag") ||
		(strings.Contains(errStr, "accepts ") && strings.Contains(errStr, "arg(s)")) {
		return ExitUsageError
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
