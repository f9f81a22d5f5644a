package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/relload/pkg/relload"
)

type mockSessionPreparer struct {
	session *relload.Session
	err     error
	calls   int
}

func (m *mockSessionPreparer) PrepareSession(_ context.Context, _ relload.ImportConfig) (*relload.Session, error) {
	m.calls++
	return m.session, m.err
}

type mockApprover struct {
	approved bool
	err      error
	targets  []string
}

func (m *mockApprover) RequestApproval(_ context.Context, table string) (bool, error) {
	m.targets = append(m.targets, table)
	return m.approved, m.err
}

type mockDatabaseManager struct {
	tableExists bool
	existsErr   error
	stats       relload.TableStats
	statsErr    error
	dbExists    bool
	dbExistsErr error
	createErr   error
}

func (m *mockDatabaseManager) TableExists(_ context.Context, _ relload.DBConnection, _ string) (bool, error) {
	return m.tableExists, m.existsErr
}

func (m *mockDatabaseManager) TableStats(_ context.Context, _ relload.DBConnection, _ string) (relload.TableStats, error) {
	return m.stats, m.statsErr
}

func (m *mockDatabaseManager) DatabaseExists(_ context.Context, _ relload.DBConnection, _ string) (bool, error) {
	return m.dbExists, m.dbExistsErr
}

func (m *mockDatabaseManager) CreateDatabase(_ context.Context, _ relload.DBConnection, _ string) error {
	return m.createErr
}

type mockChecksum struct {
	sum     string
	fileErr error
}

func (m *mockChecksum) CalculateRaw(_ []byte) string { return m.sum }

func (m *mockChecksum) CalculateFile(_ string) (string, error) {
	return m.sum, m.fileErr
}

type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) record(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, fmt.Sprintf(format, args...))
}

func (m *mockLogger) Verbose(format string, args ...interface{}) { m.record(format, args...) }
func (m *mockLogger) Info(format string, args ...interface{})    { m.record(format, args...) }
func (m *mockLogger) Error(format string, args ...interface{})   { m.record(format, args...) }

type mockRow struct {
	scanFunc func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.scanFunc == nil {
		return nil
	}
	return m.scanFunc(dest...)
}

// mockDBConnection substitutes the pool adapter in importer tests.
// Function fields default to success; execLog records every Exec statement.
type mockDBConnection struct {
	execFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	queryRowFunc func(ctx context.Context, sql string, args ...any) relload.Row
	beginFunc    func(ctx context.Context) (pgx.Tx, error)

	execLog []string
}

func (m *mockDBConnection) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.execLog = append(m.execLog, sql)
	if m.execFunc != nil {
		return m.execFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (m *mockDBConnection) QueryRow(ctx context.Context, sql string, args ...any) relload.Row {
	if m.queryRowFunc != nil {
		return m.queryRowFunc(ctx, sql, args...)
	}
	return &mockRow{scanFunc: func(_ ...any) error { return pgx.ErrNoRows }}
}

func (m *mockDBConnection) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.beginFunc != nil {
		return m.beginFunc(ctx)
	}
	return nil, fmt.Errorf("begin not configured")
}

func (m *mockDBConnection) Acquire(_ context.Context) (relload.PooledConnection, error) {
	return nil, fmt.Errorf("acquire not configured")
}

// mockTx implements pgx.Tx far enough for the batched insert path.
// Queued insert arguments are captured in rows; the remaining pgx.Tx surface
// is stubbed out.
type mockTx struct {
	rows       [][]any
	sendErr    error
	commitErr  error
	committed  bool
	rolledBack bool
}

func (m *mockTx) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	if m.sendErr != nil {
		return &mockBatchResults{execErr: m.sendErr, remaining: len(b.QueuedQueries)}
	}
	for _, q := range b.QueuedQueries {
		m.rows = append(m.rows, q.Arguments)
	}
	return &mockBatchResults{remaining: len(b.QueuedQueries)}
}

func (m *mockTx) Commit(_ context.Context) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.committed = true
	return nil
}

func (m *mockTx) Rollback(_ context.Context) error {
	m.rolledBack = true
	return nil
}

func (m *mockTx) Begin(_ context.Context) (pgx.Tx, error) {
	return nil, fmt.Errorf("nested transactions not supported")
}

func (m *mockTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, fmt.Errorf("not implemented")
}

func (m *mockTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (m *mockTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, fmt.Errorf("not implemented")
}

func (m *mockTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return &mockRow{scanFunc: func(_ ...any) error { return pgx.ErrNoRows }}
}

func (m *mockTx) Conn() *pgx.Conn { return nil }

type mockBatchResults struct {
	execErr   error
	remaining int
}

func (m *mockBatchResults) Exec() (pgconn.CommandTag, error) {
	if m.remaining > 0 {
		m.remaining--
	}
	return pgconn.CommandTag{}, m.execErr
}

func (m *mockBatchResults) Query() (pgx.Rows, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockBatchResults) QueryRow() pgx.Row {
	return &mockRow{scanFunc: func(_ ...any) error { return pgx.ErrNoRows }}
}

func (m *mockBatchResults) Close() error { return nil }

type mockImporter struct {
	results map[relload.Variant]*relload.ImportResult
	errs    map[relload.Variant]error
	calls   []relload.Variant
}

func (m *mockImporter) Import(_ context.Context, config relload.ImportConfig) (*relload.ImportResult, error) {
	m.calls = append(m.calls, config.Variant)
	return m.results[config.Variant], m.errs[config.Variant]
}

type mockPrereqChecker struct {
	interpreterPath string
	interpreterErr  error

	driverErrs []error
	driverCall int

	installErr   error
	installCalls int
}

func (m *mockPrereqChecker) CheckInterpreter(_ string) (string, error) {
	return m.interpreterPath, m.interpreterErr
}

func (m *mockPrereqChecker) CheckDriver(_ context.Context, _, _ string) error {
	var err error
	if m.driverCall < len(m.driverErrs) {
		err = m.driverErrs[m.driverCall]
	}
	m.driverCall++
	return err
}

func (m *mockPrereqChecker) InstallRequirements(_ context.Context, _, _ string) error {
	m.installCalls++
	return m.installErr
}
