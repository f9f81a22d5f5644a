// Package params parses KEY=VALUE configuration for the legacy script path.
//
// Two input shapes are supported:
//   - .env style files (--env-file), parsed by ParseEnvFile
//   - repeated CLI pairs (--env KEY=VALUE), parsed by ParseKeyValuePairs
//
// The resulting maps are merged into the environment exported to the invoked
// import script, on top of the resolved DB_* connection variables.
package params
