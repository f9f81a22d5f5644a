package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"

	"github.com/vvka-141/relload/pkg/relload"
)

// ScriptService implements the ScriptRunner interface: the preserved
// legacy path invoking an original import script as a subprocess.
type ScriptService struct {
	prereq relload.PrereqChecker
	logger relload.Logger

	// execScript runs the interpreter with the child environment and stdio
	// inherited. Overridable in tests.
	execScript func(ctx context.Context, name string, args []string, env []string) error
}

// NewScriptService creates a ScriptService with the process stdio
// inherited by the child. Panics if prereq or logger is nil.
func NewScriptService(prereq relload.PrereqChecker, logger relload.Logger) *ScriptService {
	if prereq == nil {
		panic("prereq cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &ScriptService{
		prereq: prereq,
		logger: logger,
		execScript: func(ctx context.Context, name string, args []string, env []string) error {
			cmd := exec.CommandContext(ctx, name, args...)
			cmd.Stdin = os.Stdin
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			cmd.Env = env
			return cmd.Run()
		},
	}
}

// Run checks prerequisites, exports the configured environment, and runs
// the script synchronously with stdio inherited. The child's exit status
// is propagated verbatim via ScriptExitError; an interrupt maps to
// ErrInterrupted.
func (s *ScriptService) Run(ctx context.Context, config relload.RunScriptConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	interpreter := config.Interpreter
	if interpreter == "" {
		interpreter = relload.DefaultInterpreter
	}

	interpreterPath, err := s.prereq.CheckInterpreter(interpreter)
	if err != nil {
		return err
	}

	if err := s.ensureDriver(ctx, interpreter, config); err != nil {
		return err
	}

	args := append([]string{config.Script}, config.Args...)

	s.logger.Verbose("Running %s %s", interpreterPath, config.Script)

	if err := s.execScript(ctx, interpreterPath, args, childEnv(config.Env)); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("script cancelled: %w", relload.ErrInterrupted)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &relload.ScriptExitError{Script: config.Script, Code: exitErr.ExitCode()}
		}

		// The script could not be started at all.
		return fmt.Errorf("failed to run %s: %v: %w", config.Script, err, relload.ErrPrereqFailed)
	}

	return nil
}

// ensureDriver runs the driver check, installing requirements and
// re-checking on failure. A failed re-check is fatal.
func (s *ScriptService) ensureDriver(ctx context.Context, interpreter string, config relload.RunScriptConfig) error {
	module := config.DriverModule
	if module == "" {
		module = relload.DefaultDriverModule
	}

	if err := s.prereq.CheckDriver(ctx, interpreter, module); err == nil {
		return nil
	}

	s.logger.Info("Driver %s is not importable; installing requirements first.", module)
	if err := s.prereq.InstallRequirements(ctx, interpreter, config.RequirementsFile); err != nil {
		return err
	}

	if err := s.prereq.CheckDriver(ctx, interpreter, module); err != nil {
		return fmt.Errorf("driver %q still not importable after install: %w", module, relload.ErrPrereqFailed)
	}
	return nil
}

// childEnv builds the child environment: the inherited process environment
// with the configured pairs appended in sorted key order (later entries
// win on duplicates).
func childEnv(extra map[string]string) []string {
	env := os.Environ()

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		env = append(env, fmt.Sprintf("%s=%s", k, extra[k]))
	}
	return env
}

// Verify ScriptService implements the interface at compile time
var _ relload.ScriptRunner = (*ScriptService)(nil)
