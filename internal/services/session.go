package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/relload/pkg/relload"
)

// SessionManager prepares import sessions: it discovers the CSV source
// files and opens the database connection pool.
//
// SessionManager is safe for concurrent use as long as the injected
// dependencies are also thread-safe.
type SessionManager struct {
	connectorFactory func(*relload.ConnectionConfig) (relload.Connector, error)
	fileScanner      relload.SourceScanner
	logger           relload.Logger
}

// NewSessionManager creates a new SessionManager with all dependencies
// injected. Panics if any dependency is nil.
func NewSessionManager(
	connectorFactory func(*relload.ConnectionConfig) (relload.Connector, error),
	fileScanner relload.SourceScanner,
	logger relload.Logger,
) *SessionManager {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if fileScanner == nil {
		panic("fileScanner cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &SessionManager{
		connectorFactory: connectorFactory,
		fileScanner:      fileScanner,
		logger:           logger,
	}
}

// PrepareSession scans the CSV source and connects to the database.
//
// The source is scanned before anything touches the database so a missing
// folder never costs a dropped table. The caller owns the returned session
// and must Close() it.
func (sm *SessionManager) PrepareSession(ctx context.Context, config relload.ImportConfig) (*relload.Session, error) {
	scanResult, err := sm.scanSource(config)
	if err != nil {
		return nil, err
	}

	pool, err := sm.connect(ctx, config.Connection)
	if err != nil {
		return nil, err
	}

	return relload.NewSession(pool, scanResult), nil
}

// scanSource discovers the CSV files for the run: the single configured
// file when CSVFile is set, the sorted folder contents otherwise.
func (sm *SessionManager) scanSource(config relload.ImportConfig) (relload.ScanResult, error) {
	if config.CSVFile != "" {
		sm.logger.Verbose("Using single CSV file %s", config.CSVFile)
		return sm.fileScanner.ScanFile(config.CSVFile)
	}

	sm.logger.Verbose("Scanning %s for CSV files...", config.CSVFolder)
	scanResult, err := sm.fileScanner.ScanFolder(config.CSVFolder)
	if err != nil {
		return relload.ScanResult{}, err
	}

	sm.logger.Verbose("Found %d CSV files", len(scanResult.Files))
	return scanResult, nil
}

// connect opens the connection pool for the run.
func (sm *SessionManager) connect(ctx context.Context, connConfig relload.ConnectionConfig) (*pgxpool.Pool, error) {
	sm.logger.Verbose("Connecting to database '%s' on %s:%d", connConfig.Database, connConfig.Host, connConfig.Port)

	connector, err := sm.connectorFactory(&connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %q: %w", connConfig.Database, err)
	}

	return pool, nil
}

// Verify SessionManager implements the interface at compile time
var _ relload.SessionPreparer = (*SessionManager)(nil)
