// Package main provides the checkzip command-line interface.
//
// checkzip walks a directory tree and validates every zip archive it finds
// with a pool of parallel workers. Each archive is classified as valid,
// password protected, corrupted or unsupported, and a summary is printed at
// the end of every run.
//
// The main binary supports multiple subcommands:
//   - check: Validate all archives below a directory
//   - count: Count the archives a check would visit
//   - seed: Generate sample archives with known defects
//   - version: Print build information
//
// SIGINT and SIGTERM cancel a running check; the archives finished so far
// are still summarized and the process exits non-zero.
package main
