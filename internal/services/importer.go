package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/relload/internal/checksum"
	"github.com/vvka-141/relload/internal/db"
	"github.com/vvka-141/relload/internal/files/loader"
	"github.com/vvka-141/relload/internal/logging"
	"github.com/vvka-141/relload/internal/rowconv"
	"github.com/vvka-141/relload/internal/schema"
	"github.com/vvka-141/relload/pkg/relload"
)

// FileOpener opens one discovered CSV file for streaming reads.
// *loader.Loader is the production implementation.
type FileOpener interface {
	Open(file relload.CSVFile) (*loader.CSVReader, error)
}

// ImportService implements the Importer interface: one synchronous,
// single-threaded import job per call.
//
// Thread-Safety: NOT safe for concurrent Import() calls on the same
// instance; the progress writer and its attached log file are per-run state.
type ImportService struct {
	sessions  relload.SessionPreparer
	opener    FileOpener
	checksums checksum.Calculator
	approver  relload.Approver
	dbManager relload.DatabaseManager
	logger    relload.Logger
	progress  *logging.Progress

	// sessionConn wraps the session pool as a DBConnection. Overridable in
	// tests so the importer can run against a mock connection.
	sessionConn func(session *relload.Session) relload.DBConnection
}

// NewImportService creates a new ImportService with all dependencies
// injected. Panics if any dependency is nil; wiring errors should surface
// at startup.
func NewImportService(
	sessions relload.SessionPreparer,
	opener FileOpener,
	checksums checksum.Calculator,
	approver relload.Approver,
	dbManager relload.DatabaseManager,
	logger relload.Logger,
	progress *logging.Progress,
) *ImportService {
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	if opener == nil {
		panic("opener cannot be nil")
	}
	if checksums == nil {
		panic("checksums cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if dbManager == nil {
		panic("dbManager cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if progress == nil {
		panic("progress cannot be nil")
	}

	return &ImportService{
		sessions:  sessions,
		opener:    opener,
		checksums: checksums,
		approver:  approver,
		dbManager: dbManager,
		logger:    logger,
		progress:  progress,
		sessionConn: func(session *relload.Session) relload.DBConnection {
			return db.NewPoolAdapter(session.Pool())
		},
	}
}

// Import runs one import job: confirmation, session preparation, schema
// DDL, then every discovered file in sorted order with one transaction per
// file. Failed files do not stop the run; they make its final error wrap
// ErrImportFailed.
func (s *ImportService) Import(ctx context.Context, config relload.ImportConfig) (*relload.ImportResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	tbl, err := schema.For(config.Variant)
	if err != nil {
		return nil, err
	}

	approved, err := s.approver.RequestApproval(ctx, config.Table)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, relload.ErrCancelled
	}

	if config.LogFile != "" {
		if err := s.progress.AttachFile(config.LogFile); err != nil {
			return nil, err
		}
		defer s.progress.Close()
	}

	session, err := s.sessions.PrepareSession(ctx, config)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	conn := s.sessionConn(session)

	if err := s.prepareSchema(ctx, conn, tbl, config.Table); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &relload.ImportResult{Variant: config.Variant, Table: config.Table}
	prefix := config.Variant.LogPrefix()

	files := session.ScanResult().Files
	if len(files) == 0 {
		s.progress.Printf("%s No CSV files found in %s", prefix, config.CSVFolder)
		result.Duration = time.Since(start)
		return result, nil
	}

	insertSQL := tbl.InsertSQL(config.Table)
	for i, file := range files {
		if ctx.Err() != nil {
			result.Duration = time.Since(start)
			return result, fmt.Errorf("import interrupted: %w", relload.ErrInterrupted)
		}

		fr := relload.FileResult{Name: file.Name, Path: file.Path}
		fileStart := time.Now()

		if sum, err := s.checksums.CalculateFile(file.Path); err != nil {
			s.logger.Verbose("Warning: failed to checksum %s: %v", file.Name, err)
		} else {
			fr.Checksum = sum
		}

		if tbl.ResumeCheck {
			imported, err := s.alreadyImported(ctx, conn, tbl, config.Table, file)
			if err != nil {
				// A failed probe means we import the file; a duplicate
				// import is recoverable, a silently skipped file is not.
				s.logger.Info("Warning: resume check failed for %s: %v", file.Name, err)
			} else if imported {
				fr.Skipped = true
				fr.Duration = time.Since(fileStart)
				result.Files = append(result.Files, fr)
				result.FilesSkipped++
				s.progress.Printf("%s [%d/%d] %s: Already imported, skipping.", prefix, i+1, len(files), file.Name)
				continue
			}
		}

		rows, err := s.importFile(ctx, conn, tbl, insertSQL, file)
		fr.Rows = rows
		fr.Duration = time.Since(fileStart)
		if err != nil {
			if ctx.Err() != nil {
				fr.Err = err
				result.Files = append(result.Files, fr)
				result.FilesFailed++
				result.Duration = time.Since(start)
				return result, fmt.Errorf("import interrupted: %w", relload.ErrInterrupted)
			}
			fr.Err = err
			result.FilesFailed++
			s.progress.Printf("%s [%d/%d] %s: FAILED: %v", prefix, i+1, len(files), file.Name, err)
		} else {
			result.FilesImported++
			result.RowsInserted += rows
			pct := float64(i+1) / float64(len(files)) * 100
			s.progress.Printf("%s [%d/%d] %s: +%s rows | Progress: %.1f%% | Total: %s",
				prefix, i+1, len(files), file.Name, groupDigits(rows), pct, groupDigits(result.RowsInserted))
		}
		result.Files = append(result.Files, fr)
	}

	result.Duration = time.Since(start)

	s.progress.Printf("%s Done: %d imported, %d skipped, %d failed | Rows: %s | Elapsed: %s",
		prefix, result.FilesImported, result.FilesSkipped, result.FilesFailed,
		groupDigits(result.RowsInserted), result.Duration.Round(time.Second))

	if stats, err := s.dbManager.TableStats(ctx, conn, config.Table); err != nil {
		s.logger.Verbose("Warning: failed to read table statistics: %v", err)
	} else {
		result.TotalRows = stats.Rows
		result.TableSize = stats.PrettySize
		s.progress.Printf("%s Table %s: %s rows, %s", prefix, config.Table, groupDigits(stats.Rows), stats.PrettySize)
	}

	if result.Failed() {
		return result, fmt.Errorf("%d of %d files failed: %w", result.FilesFailed, len(files), relload.ErrImportFailed)
	}
	return result, nil
}

// prepareSchema drops (where the variant demands a fresh table), creates,
// and indexes the target table. Index failures are warnings, never fatal.
func (s *ImportService) prepareSchema(ctx context.Context, conn relload.DBConnection, tbl schema.Table, table string) error {
	if tbl.DropFirst {
		s.logger.Verbose("Dropping table %s", table)
		if _, err := conn.Exec(ctx, tbl.DropSQL(table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %v: %w", table, err, relload.ErrImportFailed)
		}
	}

	s.logger.Verbose("Creating table %s", table)
	if _, err := conn.Exec(ctx, tbl.CreateSQL(table)); err != nil {
		return fmt.Errorf("failed to create table %s: %v: %w", table, err, relload.ErrImportFailed)
	}

	for _, idx := range tbl.Indexes {
		if _, err := conn.Exec(ctx, idx.SQL(table)); err != nil {
			s.logger.Info("Warning: failed to create index %s: %v", idx.Name, err)
		}
	}
	return nil
}

// alreadyImported probes the target table for the first data row of the
// file. A hit means the file was imported by an earlier run. Empty files
// count as not imported.
func (s *ImportService) alreadyImported(ctx context.Context, conn relload.DBConnection, tbl schema.Table, table string, file relload.CSVFile) (bool, error) {
	r, err := s.opener.Open(file)
	if err != nil {
		return false, err
	}
	defer r.Close()

	record, err := r.Read()
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	row, err := rowconv.ConvertRow(tbl, record)
	if err != nil {
		return false, err
	}

	sql, args, err := tbl.ProbeSQL(table, row)
	if err != nil {
		return false, err
	}

	var one int
	if err := conn.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// importFile inserts one file inside a single transaction, in batches of
// DefaultBatchSize rows. Any error rolls the whole file back.
func (s *ImportService) importFile(ctx context.Context, conn relload.DBConnection, tbl schema.Table, insertSQL string, file relload.CSVFile) (int64, error) {
	r, err := s.opener.Open(file)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	if r.Header() == nil {
		return 0, nil
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	var rows int64
	pending := make([][]any, 0, relload.DefaultBatchSize)

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		b := &pgx.Batch{}
		for _, args := range pending {
			b.Queue(insertSQL, args...)
		}
		br := tx.SendBatch(ctx, b)
		for range pending {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("batch insert failed: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("batch insert failed: %w", err)
		}
		rows += int64(len(pending))
		pending = pending[:0]
		return nil
	}

	// Header is line 1; data starts at line 2.
	for rowNum := 2; ; rowNum++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			tx.Rollback(ctx)
			return 0, err
		}

		args, err := rowconv.ConvertRow(tbl, record)
		if err != nil {
			tx.Rollback(ctx)
			return 0, fmt.Errorf("row %d (%s): %w", rowNum, preview(strings.Join(record, ",")), err)
		}

		pending = append(pending, args)
		if len(pending) >= relload.DefaultBatchSize {
			if err := flush(); err != nil {
				tx.Rollback(ctx)
				return 0, err
			}
		}
	}

	if err := flush(); err != nil {
		tx.Rollback(ctx)
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit %s: %w", file.Name, err)
	}
	return rows, nil
}

// preview truncates a value for inclusion in an error message.
func preview(value string) string {
	if len(value) > relload.MaxErrorPreviewLength {
		return value[:relload.MaxErrorPreviewLength] + "..."
	}
	return value
}

// groupDigits formats n with thousands separators, matching the historical
// progress lines.
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Verify ImportService implements the interface at compile time
var _ relload.Importer = (*ImportService)(nil)
