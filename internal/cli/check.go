package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/relload/internal/db"
	"github.com/vvka-141/relload/internal/db/manager"
	"github.com/vvka-141/relload/internal/logging"
	"github.com/vvka-141/relload/internal/services"
	"github.com/vvka-141/relload/pkg/relload"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Preflight the prerequisites and the database connection",
	Long: `Check verifies everything an import run depends on without touching
any data:

- the script interpreter resolves on PATH (for the legacy run path),
- the database driver library is importable,
- the database connection works with the resolved configuration.

With --create-missing the target database is created through the
management database when it does not exist yet.

Examples:
  relload check
  relload check --host db.example.com --dbname releases
  relload check --create-missing`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

type checkFlagValues struct {
	connFlagValues

	interpreter   string
	driverModule  string
	createMissing bool
}

var checkFlags checkFlagValues

func init() {
	rootCmd.AddCommand(checkCmd)

	registerConnFlags(checkCmd, &checkFlags.connFlagValues)
	checkCmd.Flags().StringVar(&checkFlags.interpreter, "interpreter", "",
		"Interpreter binary to check (default: python3)")
	checkCmd.Flags().StringVar(&checkFlags.driverModule, "driver-module", "",
		"Driver library to check (default: psycopg2)")
	checkCmd.Flags().BoolVar(&checkFlags.createMissing, "create-missing", false,
		"Create the target database via the management database when absent")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	var failures []error

	prereq := services.NewPrereqService(logger)
	interpreterPath, err := prereq.CheckInterpreter(checkFlags.interpreter)
	if err != nil {
		fmt.Printf("interpreter: FAILED (%v)\n", err)
		failures = append(failures, err)
	} else {
		fmt.Printf("interpreter: OK (%s)\n", interpreterPath)

		if err := prereq.CheckDriver(ctx, checkFlags.interpreter, checkFlags.driverModule); err != nil {
			fmt.Printf("driver: FAILED (%v)\n", err)
			failures = append(failures, fmt.Errorf("%v: %w", err, relload.ErrPrereqFailed))
		} else {
			fmt.Println("driver: OK")
		}
	}

	resolver, err := newResolver(cmd)
	if err != nil {
		return errors.Join(append(failures, err)...)
	}
	connConfig, err := resolver.ResolveConnection(checkFlags.toConnFlags())
	if err != nil {
		return errors.Join(append(failures, err)...)
	}

	if checkFlags.createMissing {
		if err := ensureDatabase(ctx, connConfig, logger); err != nil {
			fmt.Printf("database: FAILED (%v)\n", err)
			return errors.Join(append(failures, err)...)
		}
	}

	version, err := probeConnection(ctx, connConfig, logger)
	if err != nil {
		fmt.Printf("connection: FAILED (%v)\n", err)
		failures = append(failures, err)
	} else {
		fmt.Printf("connection: OK (%s@%s:%d/%s, %s)\n",
			connConfig.Username, connConfig.Host, connConfig.Port, connConfig.Database, version)
	}

	if len(failures) > 0 {
		fmt.Fprintln(os.Stderr, "Preflight failed.")
		return errors.Join(failures...)
	}
	fmt.Println("All checks passed.")
	return nil
}

// probeConnection opens a pool with the resolved configuration and reads
// the server version.
func probeConnection(ctx context.Context, connConfig relload.ConnectionConfig, logger relload.Logger) (string, error) {
	connector, err := db.NewConnector(&connConfig, logger)
	if err != nil {
		return "", err
	}
	pool, err := connector.Connect(ctx)
	if err != nil {
		return "", err
	}
	defer pool.Close()

	var version string
	if err := db.NewPoolAdapter(pool).QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", fmt.Errorf("failed to query server version: %w", err)
	}
	// "PostgreSQL 16.2 on x86_64..." down to the interesting part.
	if idx := strings.Index(version, " on "); idx > 0 {
		version = version[:idx]
	}
	return version, nil
}

// ensureDatabase creates the target database through the management
// database when it does not exist.
func ensureDatabase(ctx context.Context, connConfig relload.ConnectionConfig, logger relload.Logger) error {
	mgmt := connConfig
	mgmt.Database = relload.DefaultManagementDB

	connector, err := db.NewConnector(&mgmt, logger)
	if err != nil {
		return err
	}
	pool, err := connector.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to management database %q: %w", mgmt.Database, err)
	}
	defer pool.Close()

	conn := db.NewPoolAdapter(pool)
	dbManager := manager.New()

	exists, err := dbManager.DatabaseExists(ctx, conn, connConfig.Database)
	if err != nil {
		return err
	}
	if exists {
		logger.Verbose("Database %s already exists", connConfig.Database)
		return nil
	}

	if err := dbManager.CreateDatabase(ctx, conn, connConfig.Database); err != nil {
		return err
	}
	logger.Info("Created database %s", connConfig.Database)
	return nil
}
