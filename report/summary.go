package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/dendrascience/checkzip/scan"
)

const rule = "========================================================"

type summaryLine struct {
	text string
	attr color.Attribute // zero means uncolored
}

func summaryLines(s scan.Snapshot) []summaryLine {
	c := s.Counters
	lines := []summaryLine{
		{rule, 0},
		{"📊 Validation Complete - Summary Statistics:", color.FgYellow},
		{fmt.Sprintf("   Total files checked: %d", c.Total), 0},
		{fmt.Sprintf("✅ Intact files: %d", c.Valid), color.FgGreen},
		{fmt.Sprintf("❌ Corrupted files: %d", c.Corrupted), color.FgRed},
		{fmt.Sprintf("⏭️ Skipped files (password protected or unsupported): %d", c.Skipped), color.FgYellow},
		{fmt.Sprintf("   🔐 Password protected: %d", c.Protected), 0},
		{fmt.Sprintf("   📦 Unsupported: %d", c.Unsupported), 0},
	}
	if n := len(s.DirErrors); n > 0 {
		lines = append(lines, summaryLine{fmt.Sprintf("⚠️ Unreadable directories: %d", n), color.FgYellow})
	}
	if n := len(s.WorkerErrors); n > 0 {
		lines = append(lines, summaryLine{fmt.Sprintf("⚠️ Workers terminated abnormally: %d", n), color.FgRed})
	}
	if s.Interrupted {
		lines = append(lines, summaryLine{fmt.Sprintf("⛔ Interrupted: %d archive(s) not checked", s.Pending()), color.FgRed})
	}
	if !s.Started.IsZero() && !s.Finished.IsZero() {
		lines = append(lines, summaryLine{fmt.Sprintf("   ⏱️ Elapsed: %s", s.Finished.Sub(s.Started).Round(time.Millisecond)), 0})
	}
	return lines
}

// WriteSummary writes the uncolored summary block of s to w.
func WriteSummary(w io.Writer, s scan.Snapshot) error {
	for _, l := range summaryLines(s) {
		if _, err := fmt.Fprintln(w, l.text); err != nil {
			return err
		}
	}
	return nil
}
