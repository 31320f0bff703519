package report

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dendrascience/checkzip/inspect"
	"github.com/dendrascience/checkzip/scan"
)

var logTime = time.Date(2025, 1, 2, 3, 4, 5, 678_000_000, time.Local)

func TestLogFileName(t *testing.T) {
	if got, want := LogFileName(logTime), "checkzip_20250102030405.678.log"; got != want {
		t.Errorf("LogFileName = %q, want %q", got, want)
	}
}

func TestResolveLogPath(t *testing.T) {
	dir := t.TempDir()
	name := LogFileName(logTime)

	tests := []struct {
		name string
		dest string
		want string
	}{
		{"empty uses working directory", "", name},
		{"existing directory", dir, filepath.Join(dir, name)},
		{"trailing separator creates directory", filepath.Join(dir, "logs") + string(filepath.Separator), filepath.Join(dir, "logs", name)},
		{"plain file", filepath.Join(dir, "run.log"), filepath.Join(dir, "run.log")},
		{"file in missing directory", filepath.Join(dir, "nested", "deeper", "run.log"), filepath.Join(dir, "nested", "deeper", "run.log")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveLogPath(tt.dest, logTime)
			if err != nil {
				t.Fatalf("ResolveLogPath failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveLogPath(%q) = %q, want %q", tt.dest, got, tt.want)
			}
			if parent := filepath.Dir(got); parent != "." {
				if info, err := os.Stat(parent); err != nil || !info.IsDir() {
					t.Errorf("parent directory %s was not created", parent)
				}
			}
		})
	}
}

func logSnapshot() scan.Snapshot {
	return scan.Snapshot{
		Root:    "/data",
		RunID:   "0b6f3a52-1111-4a4a-9c9c-123456789abc",
		Workers: 3,
		Started: logTime,
		Entries: []scan.Entry{
			{RelPath: "z.zip", Outcome: inspect.Damaged("cannot read file at index 0 (a.txt): zip: checksum error")},
			{RelPath: "a.zip", Outcome: inspect.OK()},
			{RelPath: "m.zip", Outcome: inspect.Protected()},
		},
		DirErrors: []*scan.DirError{{Path: "private", Op: "readdir", Err: fs.ErrPermission}},
		Counters:  scan.Counters{Total: 3, Valid: 1, Corrupted: 1, Skipped: 1, Protected: 1},
	}
}

func TestFormatLog(t *testing.T) {
	tests := []struct {
		name   string
		sorted bool
		order  []string
	}{
		{"completion order", false, []string{"z.zip", "a.zip", "m.zip"}},
		{"sorted", true, []string{"a.zip", "m.zip", "z.zip"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := FormatLog(&buf, logSnapshot(), tt.sorted); err != nil {
				t.Fatalf("FormatLog failed: %v", err)
			}
			out := buf.String()

			for _, w := range []string{
				"Root:    /data\n",
				"Run:     0b6f3a52-1111-4a4a-9c9c-123456789abc\n",
				"Workers: 3\n",
				"Started: " + logTime.Format(time.RFC3339) + "\n",
				"❌ [CORRUPTED] z.zip - cannot read file at index 0 (a.txt): zip: checksum error\n",
				"⚠️ [UNREADABLE DIR] private - permission denied\n",
				"   Total files checked: 3\n",
			} {
				if !strings.Contains(out, w) {
					t.Errorf("log missing %q:\n%s", w, out)
				}
			}

			last := -1
			for _, rel := range tt.order {
				i := strings.Index(out, "] "+rel)
				if i < last {
					t.Errorf("%s is out of order:\n%s", rel, out)
				}
				last = i
			}

			if strings.Index(out, "[UNREADABLE DIR]") > strings.Index(out, "Summary Statistics") {
				t.Error("directory errors should come before the summary")
			}
		})
	}
}

func TestWriteLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	if err := WriteLog(path, logSnapshot(), true); err != nil {
		t.Fatalf("WriteLog failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if !strings.HasPrefix(string(data), "checkzip validation log\n") {
		t.Errorf("unexpected log header:\n%s", data)
	}

	if err := WriteLog(filepath.Join(t.TempDir(), "missing", "out.log"), logSnapshot(), false); err == nil {
		t.Error("WriteLog into a missing directory should fail")
	}
}
