package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dendrascience/checkzip/scan"
)

// logTimeLayout is YYYYMMDDhhmmss.mmm.
const logTimeLayout = "20060102150405.000"

// LogFileName returns the timestamped log file name for t.
func LogFileName(t time.Time) string {
	return "checkzip_" + t.Format(logTimeLayout) + ".log"
}

// ResolveLogPath turns a --log destination into a file path. An existing
// directory, or a destination ending in a path separator, receives a
// timestamped file name. Missing parent directories are created.
func ResolveLogPath(dest string, now time.Time) (string, error) {
	if dest == "" {
		return LogFileName(now), nil
	}
	isDir := strings.HasSuffix(dest, string(filepath.Separator)) || strings.HasSuffix(dest, "/")
	if info, err := os.Stat(dest); err == nil {
		isDir = info.IsDir()
	}
	if isDir {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return "", fmt.Errorf("create log directory: %w", err)
		}
		return filepath.Join(dest, LogFileName(now)), nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}
	return dest, nil
}

// FormatLog writes the log of s to w. Entries are in completion order unless
// sorted is set.
func FormatLog(w io.Writer, s scan.Snapshot, sorted bool) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "checkzip validation log")
	fmt.Fprintf(bw, "Root:    %s\n", s.Root)
	fmt.Fprintf(bw, "Run:     %s\n", s.RunID)
	fmt.Fprintf(bw, "Workers: %d\n", s.Workers)
	fmt.Fprintf(bw, "Started: %s\n", s.Started.Format(time.RFC3339))
	fmt.Fprintln(bw, rule)

	entries := s.Entries
	if sorted {
		entries = s.SortedEntries()
	}
	for _, e := range entries {
		fmt.Fprintln(bw, Line(e))
	}
	for _, d := range s.DirErrors {
		fmt.Fprintln(bw, DirLine(d))
	}
	for _, we := range s.WorkerErrors {
		fmt.Fprintf(bw, "⚠️ [WORKER FAILED] %v\n", we)
	}

	if err := WriteSummary(bw, s); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteLog writes the log of s to path.
func WriteLog(path string, s scan.Snapshot, sorted bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create log file: %w", err)
	}
	if err := FormatLog(f, s, sorted); err != nil {
		f.Close()
		return fmt.Errorf("write log file: %w", err)
	}
	return f.Close()
}
