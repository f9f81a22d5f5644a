package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relload",
	Short: "CSV release-export importer for PostgreSQL",
	Long: `relload bulk-imports release CSV exports (organizations, persons,
raw feed persons) into PostgreSQL tables. It replaces the historical
shell launchers and their Python import scripts with one binary while
keeping their behavior: same prompts, same progress lines, same exit
codes.

Run without arguments in a terminal to get the numeric menu, or drive
one variant directly with 'relload import org|per|raw-feed-per'.

Exit Codes:
  0   - Success, or user declined a confirmation
  1   - General error, invalid menu selection
  2   - CLI usage error (invalid arguments or flags)
  3   - Panic or unexpected system error
  10  - Invalid configuration or parameters
  11  - Database connection failed
  12  - Interpreter or driver prerequisite failed
  13  - Import or SQL execution failed
  14  - CSV folder or file not found
  130 - Interrupted (SIGINT/SIGTERM)
  n   - 'run': the child script's exit status, verbatim`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare root behaves exactly like the menu command.
		return runMenu(cmd, args)
	},
}

// Execute runs the root command with the given context. The context is
// cancelled by main on SIGINT/SIGTERM.
func Execute(ctx context.Context) error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for relload")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "", "Path to relload.yaml (default: ./relload.yaml)")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
