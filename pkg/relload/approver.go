package relload

import "context"

// Approver handles user interaction for confirmation prompts before an
// import touches the database.
//
// Implementations:
//   - ForcedApprover: Logs the target and automatically approves (--yes)
//   - InteractiveApprover: Asks "[y/N]" on the terminal; only y/Y approves
type Approver interface {
	// RequestApproval prompts for confirmation before importing into table.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - table: Destination table shown in the prompt
	//
	// Returns:
	//   - bool: true if approved, false if declined
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, table string) (bool, error)
}
