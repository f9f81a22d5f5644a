package ui

import (
	"context"

	"github.com/vvka-141/relload/pkg/relload"
)

// ForcedApprover implements the Approver interface for non-interactive
// approval. It logs the target and proceeds immediately, used when the
// --yes flag is provided.
type ForcedApprover struct {
	logger relload.Logger
}

// NewForcedApprover creates a new ForcedApprover. Panics if logger is nil.
func NewForcedApprover(logger relload.Logger) relload.Approver {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ForcedApprover{logger: logger}
}

// RequestApproval logs the target and approves without prompting.
func (a *ForcedApprover) RequestApproval(_ context.Context, target string) (bool, error) {
	a.logger.Info("Skipping confirmation for %s (--yes)", target)
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ relload.Approver = (*ForcedApprover)(nil)
