package relload

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// identifierPattern matches table names that can be interpolated into DDL
// without quoting surprises. The resolver rejects anything else up front.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ImportConfig contains all parameters needed for one import job.
type ImportConfig struct {
	// Variant selects the dataset (schema, defaults, behavior flags).
	Variant Variant

	// Connection holds the resolved database connection parameters.
	Connection ConnectionConfig

	// Table is the destination table. Fixed per variant except org, where
	// TABLE_NAME (or --table) may override it.
	Table string

	// CSVFolder is the directory scanned for *.csv and *.csv.gz files.
	CSVFolder string

	// CSVFile, when set, imports exactly this one file instead of scanning
	// CSVFolder. Only honored for the org variant.
	CSVFile string

	// LogFile, when set, appends per-file progress lines to this path in
	// addition to stdout. Used by the per variant.
	LogFile string

	// ReportPath, when set, writes the run session as YAML at the end.
	ReportPath string

	// Force bypasses the interactive confirmation prompt.
	Force bool

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the ImportConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ImportConfig) Validate() error {
	var errs []error

	if !c.Variant.IsValid() {
		errs = append(errs, fmt.Errorf("unknown variant %d: %w", int(c.Variant), ErrInvalidConfig))
	}

	if c.Table == "" {
		errs = append(errs, fmt.Errorf("table name is required: %w", ErrInvalidConfig))
	} else if !identifierPattern.MatchString(c.Table) {
		errs = append(errs, fmt.Errorf("table name %q is not a valid identifier: %w", c.Table, ErrInvalidConfig))
	}

	if c.CSVFolder == "" && c.CSVFile == "" {
		errs = append(errs, fmt.Errorf("a CSV folder or file is required: %w", ErrInvalidConfig))
	}

	if c.CSVFile != "" && c.Variant != VariantOrg {
		errs = append(errs, fmt.Errorf("single-file mode is only supported for the org variant: %w", ErrInvalidConfig))
	}

	if err := c.Connection.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// RunScriptConfig contains all parameters needed to invoke a legacy import
// script as a subprocess.
type RunScriptConfig struct {
	// Script is the path to the script to execute.
	Script string

	// Args are passed to the script verbatim.
	Args []string

	// Interpreter is the interpreter binary resolved on PATH.
	// Empty means DefaultInterpreter.
	Interpreter string

	// DriverModule is the library whose importability is verified before the
	// script runs. Empty means DefaultDriverModule.
	DriverModule string

	// RequirementsFile is the pinned dependency manifest installed when the
	// driver check fails. Empty means DefaultRequirementsFile (if present).
	RequirementsFile string

	// Env holds additional KEY=VALUE pairs exported to the child on top of
	// the inherited environment. Resolved connection parameters go here.
	Env map[string]string

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the RunScriptConfig has all required fields.
func (c *RunScriptConfig) Validate() error {
	var errs []error

	if c.Script == "" {
		errs = append(errs, fmt.Errorf("script path is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents resolved connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName        string
	ConnectTimeout time.Duration

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	// If all three are provided, Service Principal authentication is used.
	// If none are provided, DefaultAzureCredential chain is used (env vars, managed identity, CLI, etc.)
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is the RDS region (used when AuthMethod is AuthMethodAWSIAM).
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name in
	// "project:region:instance" form (used when AuthMethod is AuthMethodGoogleIAM).
	GoogleInstance string

	// AdditionalParams carries connection-string parameters that have no
	// dedicated field; they are passed through to pgx verbatim.
	AdditionalParams map[string]string
}

// Validate checks the connection parameters.
// It returns a multi-error if multiple validation failures occur.
func (c *ConnectionConfig) Validate() error {
	var errs []error

	if c.Host == "" {
		errs = append(errs, fmt.Errorf("host is required: %w", ErrInvalidConfig))
	}

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range 1-65535: %w", c.Port, ErrInvalidConfig))
	}

	if c.Database == "" {
		errs = append(errs, fmt.Errorf("database name is required: %w", ErrInvalidConfig))
	}

	if c.Username == "" {
		errs = append(errs, fmt.Errorf("user is required: %w", ErrInvalidConfig))
	}

	if !c.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("auth method %d is not defined: %w", int(c.AuthMethod), ErrUnsupportedAuthMethod))
	}

	return errors.Join(errs...)
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                     // AWS IAM Database Authentication
	AuthMethodGoogleIAM                  // Google Cloud SQL IAM
	AuthMethodAzureEntraID               // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod converts a configuration string into an AuthMethod.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch s {
	case "", "password", "standard":
		return AuthMethodStandard, nil
	case "aws-iam":
		return AuthMethodAWSIAM, nil
	case "gcp-iam":
		return AuthMethodGoogleIAM, nil
	case "azure-ad":
		return AuthMethodAzureEntraID, nil
	default:
		return 0, fmt.Errorf("auth method %q (expected password, aws-iam, gcp-iam, or azure-ad): %w", s, ErrUnsupportedAuthMethod)
	}
}

// FileResult records the outcome of importing one CSV file.
type FileResult struct {
	// Name is the file name without directory.
	Name string

	// Path is the full path as discovered by the scanner.
	Path string

	// Checksum is the SHA-256 of the raw file bytes.
	Checksum string

	// Rows is the number of rows inserted from this file.
	Rows int64

	// Duration is the wall time spent on this file.
	Duration time.Duration

	// Skipped is true when the resume check matched an already-imported file.
	Skipped bool

	// Err holds the failure, nil for imported and skipped files.
	Err error
}

// ImportResult summarizes one completed import job.
type ImportResult struct {
	Variant Variant
	Table   string

	Files []FileResult

	RowsInserted  int64
	FilesImported int
	FilesSkipped  int
	FilesFailed   int

	// TotalRows and TableSize are the post-import table statistics
	// (SELECT COUNT(*) and pg_size_pretty). TableSize is empty when the
	// statistics query failed; statistics are informational only.
	TotalRows int64
	TableSize string

	Duration time.Duration
}

// Failed returns true when any file in the run failed.
func (r *ImportResult) Failed() bool {
	return r.FilesFailed > 0
}
