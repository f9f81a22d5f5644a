package relload

import "context"

// Importer is the main interface for executing one import job.
// Implementations handle the full workflow: connection, schema preparation,
// file discovery, batched inserts, and final statistics.
type Importer interface {
	// Import runs one job using the provided configuration.
	// The returned result is non-nil whenever the run got far enough to
	// produce one, including runs that finish with failed files; the error
	// then wraps ErrImportFailed.
	Import(ctx context.Context, config ImportConfig) (*ImportResult, error)
}

// ScriptRunner is the interface for the preserved legacy path: invoking the
// original import scripts as subprocesses after prerequisite checks.
type ScriptRunner interface {
	// Run checks prerequisites, then executes the script synchronously with
	// the configured environment exported to the child. The child's exit
	// status is propagated via ScriptExitError.
	Run(ctx context.Context, config RunScriptConfig) error
}

// PrereqChecker verifies the interpreter and driver prerequisites for the
// legacy script path.
type PrereqChecker interface {
	// CheckInterpreter verifies the interpreter is resolvable on PATH.
	// Returns the resolved path, or an error wrapping ErrPrereqFailed.
	CheckInterpreter(interpreter string) (string, error)

	// CheckDriver verifies the driver module is importable by running a
	// throwaway subprocess. A non-importable driver is not itself fatal;
	// callers install requirements and re-check.
	CheckDriver(ctx context.Context, interpreter, module string) error

	// InstallRequirements installs the pinned dependency manifest (or the
	// built-in pinned driver spec when no manifest exists).
	InstallRequirements(ctx context.Context, interpreter, requirementsFile string) error
}
