package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/relload/internal/checksum"
	"github.com/vvka-141/relload/internal/db"
	"github.com/vvka-141/relload/internal/db/manager"
	"github.com/vvka-141/relload/internal/files/loader"
	"github.com/vvka-141/relload/internal/files/scanner"
	"github.com/vvka-141/relload/internal/logging"
	"github.com/vvka-141/relload/internal/services"
	"github.com/vvka-141/relload/internal/tui"
	"github.com/vvka-141/relload/internal/ui"
	"github.com/vvka-141/relload/pkg/relload"
)

var importCmd = &cobra.Command{
	Use:   "import <variant>",
	Short: "Import release CSV exports into PostgreSQL",
	Long: `Import bulk-loads one release export dataset into its PostgreSQL table.

Variants:
  org           organization exports (drops and recreates the table)
  per           person exports (appends; already-imported files are skipped)
  raw-feed-per  raw feed person exports (drops and recreates the table)
  all           every variant in order: org, per, raw-feed-per

Before anything touches the database the resolved configuration is
printed and a confirmation is asked. --yes skips the prompt for
unattended runs.

Examples:
  # Import organizations with defaults and a confirmation prompt
  relload import org

  # Import persons into a remote database, unattended
  relload import per --host db.example.com --dbname releases --yes

  # Import one specific org CSV file
  relload import org --csv-file 20250922/org/csv/releases_org_001.csv

  # Full sequential run with a YAML report per job
  relload import all --yes`,
}

type importFlagValues struct {
	connFlagValues

	table     string
	csvFolder string
	csvFile   string
	logFile   string
	report    string
	yes       bool
}

var importFlags importFlagValues

func init() {
	rootCmd.AddCommand(importCmd)

	for _, variant := range relload.AllVariants() {
		importCmd.AddCommand(newImportVariantCmd(variant))
	}
	importCmd.AddCommand(importAllCmd)
}

// newImportVariantCmd builds the subcommand for one import variant.
func newImportVariantCmd(variant relload.Variant) *cobra.Command {
	cmd := &cobra.Command{
		Use:   variant.String(),
		Short: fmt.Sprintf("Import the %s dataset", variant),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportVariant(cmd, variant)
		},
	}
	registerImportFlags(cmd, variant)
	return cmd
}

var importAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Import every dataset sequentially (org, per, raw-feed-per)",
	Args:  cobra.NoArgs,
	RunE:  runImportAll,
}

func init() {
	registerImportFlags(importAllCmd, relload.VariantOrg)
}

// registerImportFlags wires the import flag set onto a command. Some
// flags only apply to specific variants and are registered selectively.
func registerImportFlags(cmd *cobra.Command, variant relload.Variant) {
	registerConnFlags(cmd, &importFlags.connFlagValues)

	if variant == relload.VariantOrg {
		cmd.Flags().StringVar(&importFlags.table, "table", "",
			"Destination table (org only; default: $TABLE_NAME or releases_org_export)")
		cmd.Flags().StringVar(&importFlags.csvFile, "csv-file", "",
			"Import exactly this one CSV file instead of scanning a folder (org only)")
	}
	if variant == relload.VariantPer {
		cmd.Flags().StringVar(&importFlags.logFile, "log-file", "",
			"Append per-file progress lines to this file (default: $PER_IMPORT_LOG_FILE)")
	}
	cmd.Flags().StringVar(&importFlags.csvFolder, "csv-folder", "",
		"Folder scanned for *.csv and *.csv.gz files (default: $CSV_FOLDER_PATH or the variant default)")
	cmd.Flags().StringVar(&importFlags.report, "report", "",
		"Write the run session (files, checksums, rows, durations) as YAML to this path")
	cmd.Flags().BoolVarP(&importFlags.yes, "yes", "y", false,
		"Skip the confirmation prompt (for scripts and CI)")

	_ = cmd.RegisterFlagCompletionFunc("csv-folder", completeDirectories)
}

// toImportFlags converts flag values into the resolver's flag struct.
func (f *importFlagValues) toImportFlags(verbose bool) db.ImportFlags {
	return db.ImportFlags{
		ConnFlags: f.toConnFlags(),
		Table:     f.table,
		CSVFolder: f.csvFolder,
		CSVFile:   f.csvFile,
		LogFile:   f.logFile,
		Report:    f.report,
		Force:     f.yes,
		Verbose:   verbose,
	}
}

// importDeps bundles the wired import pipeline for one command invocation.
type importDeps struct {
	logger   relload.Logger
	progress *logging.Progress
	importer *services.ImportService
}

// buildImportDeps wires the import pipeline: scanner, loader, session
// manager, database manager and progress writer around the import service.
// The per-variant log file is attached by the import service itself, from
// the resolved configuration.
func buildImportDeps(verbose bool, approver relload.Approver) *importDeps {
	logger := logging.NewConsoleLogger(verbose)
	progress := logging.NewProgress(os.Stdout)

	connect := func(c *relload.ConnectionConfig) (relload.Connector, error) {
		return db.NewConnector(c, logger)
	}
	sessions := services.NewSessionManager(connect, scanner.NewScanner(), logger)
	importer := services.NewImportService(
		sessions,
		loader.NewLoader(),
		checksum.New(),
		approver,
		manager.New(),
		logger,
		progress,
	)

	return &importDeps{logger: logger, progress: progress, importer: importer}
}

// runImportVariant executes one import job end to end.
func runImportVariant(cmd *cobra.Command, variant relload.Variant) error {
	verbose := getVerboseFlag(cmd)

	resolver, err := newResolver(cmd)
	if err != nil {
		return err
	}
	cfg, err := resolver.ResolveImport(variant, importFlags.toImportFlags(verbose))
	if err != nil {
		return err
	}

	printImportSummary(os.Stdout, cfg)
	fmt.Println()

	var approver relload.Approver
	if importFlags.yes {
		approver = ui.NewForcedApprover(logging.NewConsoleLogger(verbose))
	} else {
		approver = ui.NewInteractiveApprover(ui.PromptStartImport)
	}

	deps := buildImportDeps(verbose, approver)

	startedAt := time.Now()
	result, err := deps.importer.Import(cmd.Context(), cfg)
	if errors.Is(err, relload.ErrCancelled) {
		fmt.Println("Cancelled.")
		return nil
	}

	if result != nil && cfg.ReportPath != "" {
		report := services.NewRunReport(result, startedAt)
		if reportErr := services.WriteReport(cfg.ReportPath, report); reportErr != nil {
			deps.logger.Error("%v", reportErr)
			if err == nil {
				err = reportErr
			}
		} else {
			deps.logger.Info("Run report written to %s", cfg.ReportPath)
		}
	}

	return err
}

// runImportAll executes the master run: one up-front confirmation, then
// every variant sequentially with a summary table at the end.
func runImportAll(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	resolver, err := newResolver(cmd)
	if err != nil {
		return err
	}

	var approver relload.Approver
	if importFlags.yes {
		approver = ui.NewForcedApprover(logging.NewConsoleLogger(verbose))
	} else {
		approver = ui.NewInteractiveApprover(ui.PromptStartAll)
	}

	// Per-job confirmations are covered by the single up-front prompt, so
	// the import service runs behind a silent forced approver.
	deps := buildImportDeps(verbose, ui.NewForcedApprover(logging.NewNullLogger()))

	resolve := func(variant relload.Variant) (relload.ImportConfig, error) {
		return resolver.ResolveImport(variant, importFlags.toImportFlags(verbose))
	}

	// After a failed job the interactive path asks whether to keep going;
	// unattended runs stop at the first failure.
	var continuePrompt func(ctx context.Context) (bool, error)
	if !importFlags.yes && tui.IsInteractive() {
		continueApprover := ui.NewInteractiveApprover(ui.PromptContinueRuns)
		continuePrompt = func(ctx context.Context) (bool, error) {
			return continueApprover.RequestApproval(ctx, "")
		}
	}

	master := services.NewMasterService(
		deps.importer,
		resolve,
		approver,
		continuePrompt,
		deps.logger,
		func(format string, args ...any) { fmt.Printf(format, args...) },
	)

	err = master.RunAll(cmd.Context())
	if errors.Is(err, relload.ErrCancelled) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
