package relload

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionPreparer abstracts session preparation for testability.
type SessionPreparer interface {
	PrepareSession(ctx context.Context, config ImportConfig) (*Session, error)
}

// Session encapsulates a prepared import job: an open connection pool and
// the discovered CSV source files.
//
// Session manages the lifecycle of the pool and ensures cleanup through a
// single Close() method.
//
// Thread-Safety: NOT safe for concurrent use. Each goroutine should have
// its own Session instance.
//
// Lifecycle:
//  1. Created by the session manager once config is approved
//  2. Used for one import job
//  3. Cleaned up via Close() (idempotent)
//
// Example usage:
//
//	session, err := sessions.PrepareSession(config)
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
//
//	// Use session.Pool(), session.ScanResult()
type Session struct {
	pool       *pgxpool.Pool
	scanResult ScanResult
}

// NewSession creates a new Session instance.
// This is intended to be called by the session manager, not by external code.
//
// Panics if pool is nil (programmer error - the session manager should never
// create a Session without a live pool).
func NewSession(pool *pgxpool.Pool, scanResult ScanResult) *Session {
	if pool == nil {
		panic("pool cannot be nil")
	}

	return &Session{
		pool:       pool,
		scanResult: scanResult,
	}
}

// Pool returns the connection pool for the session.
// The pool is valid until Close() is called.
func (s *Session) Pool() *pgxpool.Pool {
	return s.pool
}

// ScanResult returns the discovered CSV files for the session, in import order.
func (s *Session) ScanResult() ScanResult {
	return s.scanResult
}

// Close releases all resources associated with the session.
// This method is idempotent and safe to call multiple times.
func (s *Session) Close() error {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}

	return nil
}
