package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/vvka-141/relload/pkg/relload"
)

// commandRunner executes a prepared command, returning its combined error.
// Injected so tests never spawn real interpreters.
type commandRunner func(ctx context.Context, name string, args ...string) error

// PrereqService verifies the interpreter and driver prerequisites for the
// legacy script path and the check command.
//
// The checker never prompts; it only reports and installs.
type PrereqService struct {
	logger   relload.Logger
	lookPath func(string) (string, error)
	run      commandRunner
	statFile func(string) error
}

// NewPrereqService creates a checker using the real PATH lookup and
// subprocess execution. Panics if logger is nil.
func NewPrereqService(logger relload.Logger) *PrereqService {
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &PrereqService{
		logger:   logger,
		lookPath: exec.LookPath,
		run: func(ctx context.Context, name string, args ...string) error {
			cmd := exec.CommandContext(ctx, name, args...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			return cmd.Run()
		},
		statFile: func(path string) error {
			_, err := os.Stat(path)
			return err
		},
	}
}

// CheckInterpreter resolves the interpreter on PATH. An unresolvable
// interpreter is fatal; nothing else runs first.
func (p *PrereqService) CheckInterpreter(interpreter string) (string, error) {
	if interpreter == "" {
		interpreter = relload.DefaultInterpreter
	}

	path, err := p.lookPath(interpreter)
	if err != nil {
		return "", fmt.Errorf("interpreter %q not found on PATH: %w", interpreter, relload.ErrPrereqFailed)
	}

	p.logger.Verbose("Using interpreter %s", path)
	return path, nil
}

// CheckDriver verifies the driver module is importable by running
// `<interpreter> -c "import <module>"` in a throwaway subprocess.
// Failure is not wrapped in ErrPrereqFailed: callers install requirements
// and re-check before giving up.
func (p *PrereqService) CheckDriver(ctx context.Context, interpreter, module string) error {
	if interpreter == "" {
		interpreter = relload.DefaultInterpreter
	}
	if module == "" {
		module = relload.DefaultDriverModule
	}

	if err := p.run(ctx, interpreter, "-c", fmt.Sprintf("import %s", module)); err != nil {
		return fmt.Errorf("driver module %q is not importable: %w", module, err)
	}

	p.logger.Verbose("Driver module %s is importable", module)
	return nil
}

// InstallRequirements installs the pinned dependency manifest when it
// exists, otherwise the built-in pinned driver spec. A failed install is
// fatal; there are no retries.
func (p *PrereqService) InstallRequirements(ctx context.Context, interpreter, requirementsFile string) error {
	if interpreter == "" {
		interpreter = relload.DefaultInterpreter
	}
	if requirementsFile == "" {
		requirementsFile = relload.DefaultRequirementsFile
	}

	var args []string
	if err := p.statFile(requirementsFile); err == nil {
		p.logger.Info("Installing requirements from %s...", requirementsFile)
		args = []string{"-m", "pip", "install", "-r", requirementsFile}
	} else {
		p.logger.Info("Installing %s...", relload.DefaultDriverPin)
		args = []string{"-m", "pip", "install", relload.DefaultDriverPin}
	}

	if err := p.run(ctx, interpreter, args...); err != nil {
		return fmt.Errorf("failed to install requirements: %v: %w", err, relload.ErrPrereqFailed)
	}
	return nil
}

// Verify PrereqService implements the interface at compile time
var _ relload.PrereqChecker = (*PrereqService)(nil)
