// Package services contains the application services behind the CLI
// commands: the native import engine, the master run orchestrating all
// variants, session preparation (scan plus connect), the prerequisite
// checker and the legacy script runner.
//
// Services receive their collaborators through constructor injection and
// panic on nil dependencies; wiring errors should fail at startup, not as
// nil dereferences mid-import.
package services
