// Package files groups the CSV source discovery and reading subsystem:
//
//   - filesystem: a minimal filesystem abstraction (OS and in-memory)
//   - scanner: discovers *.csv and *.csv.gz files in a source folder
//   - loader: opens one CSV file and streams its records, decompressing
//     .csv.gz transparently
package files
