package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireScript validates that at least a script path argument is provided.
// Returns a helpful error message with usage and examples if missing.
func RequireScript(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <script.py>

Usage: %s <script.py> [args...]

Example:
  %s import_org.py`, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
