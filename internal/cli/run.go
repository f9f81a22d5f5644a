package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/relload/internal/db"
	"github.com/vvka-141/relload/internal/logging"
	"github.com/vvka-141/relload/internal/params"
	"github.com/vvka-141/relload/internal/services"
	"github.com/vvka-141/relload/pkg/relload"
)

var runCmd = &cobra.Command{
	Use:   "run <script.py> [args...]",
	Short: "Run a legacy import script with the resolved environment",
	Long: `Run preserves the historical wrapper behavior for the original Python
import scripts:

1. Checks that the interpreter is on PATH and the database driver is
   importable; a failed driver check installs the pinned requirements
   first (psycopg2-binary==2.9.9, or requirements.txt when present).
2. Resolves the connection configuration and exports it to the child
   (DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD, TABLE_NAME,
   CSV_FOLDER_PATH) on top of the inherited environment.
3. Invokes the script synchronously with stdio inherited. No timeout,
   no retry.

The child's exit status becomes relload's exit status, verbatim.

Examples:
  relload run import_org.py
  relload run import_per.py --host db.example.com --dbname releases
  relload run scripts/import_org.py --interpreter python3.11`,
	Args: RequireScript,
	RunE: runScript,
}

type runFlagValues struct {
	connFlagValues

	table            string
	csvFolder        string
	interpreter      string
	driverModule     string
	requirementsFile string
	env              []string
	envFiles         []string
}

var runFlags runFlagValues

func init() {
	rootCmd.AddCommand(runCmd)

	registerConnFlags(runCmd, &runFlags.connFlagValues)
	runCmd.Flags().StringVar(&runFlags.table, "table", "",
		"Value exported as $TABLE_NAME to the script")
	runCmd.Flags().StringVar(&runFlags.csvFolder, "csv-folder", "",
		"Value exported as $CSV_FOLDER_PATH to the script")
	runCmd.Flags().StringVar(&runFlags.interpreter, "interpreter", "",
		"Interpreter binary resolved on PATH (default: python3)")
	runCmd.Flags().StringVar(&runFlags.driverModule, "driver-module", "",
		"Driver library verified by import before the script runs (default: psycopg2)")
	runCmd.Flags().StringVar(&runFlags.requirementsFile, "requirements", "",
		"Pinned dependency manifest installed on a failed driver check (default: requirements.txt)")
	runCmd.Flags().StringSliceVar(&runFlags.env, "env", nil,
		"Extra KEY=VALUE pairs exported to the script (can be repeated)\n"+
			"Overrides values from --env-file and the resolved connection")
	runCmd.Flags().StringSliceVar(&runFlags.envFiles, "env-file", nil,
		"Load extra KEY=VALUE pairs from .env files (can be repeated,\n"+
			"later files override earlier ones)")

	_ = runCmd.RegisterFlagCompletionFunc("csv-folder", completeDirectories)
}

func runScript(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	resolver, err := newResolver(cmd)
	if err != nil {
		return err
	}
	env, err := resolver.ResolveScriptEnv(db.ImportFlags{
		ConnFlags: runFlags.toConnFlags(),
		Table:     runFlags.table,
		CSVFolder: runFlags.csvFolder,
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}
	if err := mergeExtraEnv(env, runFlags.envFiles, runFlags.env); err != nil {
		return fmt.Errorf("%v: %w", err, relload.ErrInvalidConfig)
	}

	config := relload.RunScriptConfig{
		Script:           args[0],
		Args:             args[1:],
		Interpreter:      runFlags.interpreter,
		DriverModule:     runFlags.driverModule,
		RequirementsFile: runFlags.requirementsFile,
		Env:              env,
		Verbose:          verbose,
	}

	runner := services.NewScriptService(services.NewPrereqService(logger), logger)
	return runner.Run(cmd.Context(), config)
}

// mergeExtraEnv layers user-supplied variables over the resolved connection
// environment. Files apply in order, then repeated --env pairs win over both.
func mergeExtraEnv(env map[string]string, envFiles, pairs []string) error {
	for _, path := range envFiles {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading env file %s: %w", path, err)
		}
		fileVars, err := params.ParseEnvFile(content)
		if err != nil {
			return fmt.Errorf("parsing env file %s: %w", path, err)
		}
		for key, value := range fileVars {
			env[key] = value
		}
	}

	pairVars, err := params.ParseKeyValuePairs(pairs)
	if err != nil {
		return err
	}
	for key, value := range pairVars {
		env[key] = value
	}
	return nil
}
