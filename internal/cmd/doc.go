// Package cmd provides the command-line interface implementation for checkzip.
//
// It uses the Cobra library for command structure; main executes the root
// command through Fang for styled help and error output.
//
// The package is organized into the following commands:
//   - root: Main command, command groups and the diagnostic logger
//   - check: Parallel validation of every archive below a directory
//   - count: Directory walk only, reporting how many archives a check visits
//   - seed: Sample trees of archives with known defects
//   - version: Build information
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. User-facing output goes through the
// report package; diagnostics go through the slog logger that the root
// command stores in the command context.
package cmd
