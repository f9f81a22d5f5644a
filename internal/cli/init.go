package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/relload/internal/logging"
	"github.com/vvka-141/relload/internal/scaffold"
	"github.com/vvka-141/relload/internal/tui"
	"github.com/vvka-141/relload/internal/tui/wizards"
	"github.com/vvka-141/relload/pkg/relload"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold .env and relload.yaml starter files",
	Long: `Init creates the starter files for a new import project directory:

  relload.yaml      project configuration (connection, variants, dataset)
  .env              commented environment variable template
  requirements.txt  pinned driver for the legacy script path

In a terminal a short connection wizard prefills the connection section
of relload.yaml and can test the connection. Existing files are never
overwritten, so init is safe to re-run.

Examples:
  relload init
  relload init ./releases-import --dataset 20260101
  relload init --no-wizard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

type initFlagValues struct {
	dataset  string
	noWizard bool
}

var initFlags initFlagValues

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initFlags.dataset, "dataset", "",
		"Folder date prefix for the default CSV paths (default: "+scaffold.DefaultDataset+")")
	initCmd.Flags().BoolVar(&initFlags.noWizard, "no-wizard", false,
		"Skip the connection wizard and scaffold with defaults")

	initCmd.ValidArgsFunction = completeDirectories
}

func runInit(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	targetDir := "."
	if len(args) == 1 {
		targetDir = args[0]
	}

	opts := scaffold.Options{Dataset: initFlags.dataset}

	if !initFlags.noWizard && tui.IsInteractive() {
		result, err := wizards.NewConnectionWizard(relload.ConnectionConfig{}).Run()
		if err != nil {
			return err
		}
		if !result.Cancelled {
			opts.Connection = result.Config
			if result.Tested {
				offerSavePgpass(&result.Config)
			}
		}
	}

	if err := scaffold.NewScaffolder(logger).Init(targetDir, opts); err != nil {
		return err
	}

	fmt.Printf("Project scaffolded in %s. Review relload.yaml, then try 'relload check'.\n", targetDir)
	return nil
}
