// Package db provides the PostgreSQL connection layer: connection string
// parsing, parameter resolution with flag/env/project-file precedence, and
// connectors for password and cloud IAM authentication.
//
// Connections are never retried. A failed pool creation or ping wraps
// relload.ErrConnectionFailed with actionable guidance and is final.
package db
