// Package report renders the results of a scan.
//
// Console prints one colored line per archive as outcomes arrive and the
// summary block at the end. Progress draws a spinner with running counters.
// Both implement scan.Observer and may be combined with scan.Observers.
//
// WriteLog produces the persistent log file: a header identifying the run,
// every entry, every unreadable directory and the summary block, all as
// plain text.
package report
