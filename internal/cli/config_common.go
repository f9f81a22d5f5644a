package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vvka-141/relload/internal/config"
	"github.com/vvka-141/relload/internal/db"
	"github.com/vvka-141/relload/pkg/relload"
)

// connFlagValues holds the connection-related flag values shared by the
// import, run and check commands.
type connFlagValues struct {
	host     string
	port     int
	database string
	user     string
	password string
	sslMode  string

	authMethod     string
	azureTenantID  string
	azureClientID  string
	awsRegion      string
	googleInstance string
}

// registerConnFlags wires the shared connection flags onto a command.
func registerConnFlags(cmd *cobra.Command, flags *connFlagValues) {
	cmd.Flags().StringVar(&flags.host, "host", "",
		"PostgreSQL server host\nPrecedence: --host > $DB_HOST > relload.yaml > localhost")
	cmd.Flags().IntVar(&flags.port, "port", 0,
		"PostgreSQL server port\nPrecedence: --port > $DB_PORT > relload.yaml > 5432")
	cmd.Flags().StringVar(&flags.database, "dbname", "",
		"Target database name (default: $DB_NAME or venture_db)")
	cmd.Flags().StringVar(&flags.user, "user", "",
		"PostgreSQL user (default: $DB_USER or postgres)")
	cmd.Flags().StringVar(&flags.password, "password", "",
		"PostgreSQL password. Prefer $DB_PASSWORD or the interactive prompt;\n"+
			"flag values are visible in shell history and the process list")
	cmd.Flags().StringVar(&flags.sslMode, "sslmode", "",
		"SSL mode: disable|allow|prefer|require|verify-ca|verify-full (default: prefer)")
	cmd.Flags().StringVar(&flags.authMethod, "auth-method", "",
		"Authentication method: password|azure-ad|aws-iam|gcp-iam (default: password)")
	cmd.Flags().StringVar(&flags.azureTenantID, "azure-tenant-id", "",
		"Azure AD tenant/directory ID (overrides $AZURE_TENANT_ID)")
	cmd.Flags().StringVar(&flags.azureClientID, "azure-client-id", "",
		"Azure AD application/client ID (overrides $AZURE_CLIENT_ID)")
	cmd.Flags().StringVar(&flags.awsRegion, "aws-region", "",
		"AWS region for RDS IAM token generation (overrides $AWS_REGION)")
	cmd.Flags().StringVar(&flags.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance)")

	_ = cmd.RegisterFlagCompletionFunc("sslmode", completeSSLModes)
	_ = cmd.RegisterFlagCompletionFunc("auth-method", completeAuthMethods)
}

// toConnFlags converts flag values into the resolver's flag struct.
func (f *connFlagValues) toConnFlags() db.ConnFlags {
	return db.ConnFlags{
		Host:           f.host,
		Port:           f.port,
		Database:       f.database,
		Username:       f.user,
		Password:       f.password,
		SSLMode:        f.sslMode,
		AuthMethod:     f.authMethod,
		AzureTenantID:  f.azureTenantID,
		AzureClientID:  f.azureClientID,
		AWSRegion:      f.awsRegion,
		GoogleInstance: f.googleInstance,
	}
}

// newResolver builds the configuration resolver for a command: .env is
// loaded best-effort (existing process env wins), the optional project
// file is read from --config or the working directory, and the password
// prompt is backed by the real terminal.
func newResolver(cmd *cobra.Command) (*db.Resolver, error) {
	_ = godotenv.Load()

	projectCfg, err := loadProjectConfig(cmd)
	if err != nil {
		return nil, err
	}

	return db.NewResolver(nil, &termPrompter{}, projectCfg), nil
}

// loadProjectConfig reads relload.yaml. A missing file is not an error;
// a file explicitly named with --config must exist.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("config file %s not found: %w", path, relload.ErrInvalidConfig)
			}
			return nil, err
		}
		return cfg, nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cfg, nil
}

// termPrompter reads secrets from the real terminal without echo.
type termPrompter struct{}

func (p *termPrompter) ReadSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	entered, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(entered), nil
}

func (p *termPrompter) Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var _ db.SecretPrompter = (*termPrompter)(nil)

// printImportSummary prints the resolved configuration before the
// confirmation prompt. The password is never part of the summary.
func printImportSummary(w io.Writer, cfg relload.ImportConfig) {
	fmt.Fprintf(w, "Import configuration (%s):\n", cfg.Variant)
	fmt.Fprintf(w, "  Host:     %s\n", cfg.Connection.Host)
	fmt.Fprintf(w, "  Port:     %d\n", cfg.Connection.Port)
	fmt.Fprintf(w, "  Database: %s\n", cfg.Connection.Database)
	fmt.Fprintf(w, "  User:     %s\n", cfg.Connection.Username)
	fmt.Fprintf(w, "  Table:    %s\n", cfg.Table)
	if cfg.CSVFile != "" {
		fmt.Fprintf(w, "  CSV file: %s\n", cfg.CSVFile)
	} else {
		fmt.Fprintf(w, "  CSV folder: %s\n", cfg.CSVFolder)
	}
	if cfg.Connection.AuthMethod != relload.AuthMethodStandard {
		fmt.Fprintf(w, "  Auth:     %s\n", cfg.Connection.AuthMethod)
	}
}
