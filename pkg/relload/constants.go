package relload

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0   // Import completed, or the user cancelled on purpose
	ExitGeneralError      = 1   // Unknown or unclassified error, invalid menu selection
	ExitUsageError        = 2   // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3   // Internal panic (unexpected crash)
	ExitConfigError       = 10  // Invalid configuration or parameters
	ExitConnectionError   = 11  // Failed to connect to database
	ExitPrereqError       = 12  // Interpreter or driver prerequisite failed
	ExitImportFailed      = 13  // Import or SQL execution failed
	ExitDataSourceMissing = 14  // CSV folder or file not found
	ExitInterrupted       = 130 // SIGINT/SIGTERM received
)

// Environment variable names read by the configuration resolver.
const (
	EnvDBHost        = "DB_HOST"
	EnvDBPort        = "DB_PORT"
	EnvDBName        = "DB_NAME"
	EnvDBUser        = "DB_USER"
	EnvDBPassword    = "DB_PASSWORD"
	EnvTableName     = "TABLE_NAME"
	EnvCSVFolderPath = "CSV_FOLDER_PATH"
	EnvCSVFilePath   = "CSV_FILE_PATH"
	EnvPerImportLog  = "PER_IMPORT_LOG_FILE"
)

// Connection defaults. These mirror the historical launcher defaults so an
// unconfigured run targets the same local database the shell wrappers did.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 5432
	DefaultDatabase = "venture_db"
	DefaultUser     = "postgres"
	DefaultPassword = "postgres"
	DefaultSSLMode  = "prefer"
)

const (
	// DefaultBatchSize is the number of rows queued per batched INSERT round trip.
	// Fixed, not configurable: every historical importer committed in units of 1000.
	DefaultBatchSize = 1000

	// DefaultManagementDB is the database to connect to for server-level
	// operations such as CREATE DATABASE.
	DefaultManagementDB = "postgres"

	// DefaultInterpreter is the interpreter binary resolved on PATH for the
	// legacy script path.
	DefaultInterpreter = "python3"

	// DefaultDriverModule is the driver library the prerequisite checker
	// verifies by importing it in a throwaway subprocess.
	DefaultDriverModule = "psycopg2"

	// DefaultDriverPin is installed when no requirements manifest is present
	// and the driver import check fails.
	DefaultDriverPin = "psycopg2-binary==2.9.9"

	// DefaultRequirementsFile is the pinned dependency manifest consulted
	// before falling back to DefaultDriverPin.
	DefaultRequirementsFile = "requirements.txt"

	// MaxErrorPreviewLength is the maximum number of characters shown when
	// previewing a failed row or statement in error messages.
	MaxErrorPreviewLength = 200
)
