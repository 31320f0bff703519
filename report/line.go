package report

import (
	"fmt"

	"github.com/dendrascience/checkzip/inspect"
	"github.com/dendrascience/checkzip/scan"
)

func icon(k inspect.Kind) string {
	switch k {
	case inspect.Valid:
		return "✅"
	case inspect.PasswordProtected:
		return "🔐"
	case inspect.Corrupted:
		return "❌"
	case inspect.Unsupported:
		return "⏭️"
	default:
		return "❔"
	}
}

// Line formats one entry, for example "❌ [CORRUPTED] a/b.zip - reason".
func Line(e scan.Entry) string {
	s := fmt.Sprintf("%s [%s] %s", icon(e.Outcome.Kind), e.Outcome.Kind, e.RelPath)
	if e.Outcome.Detail != "" {
		s += " - " + e.Outcome.Detail
	}
	return s
}

// DirLine formats a directory that could not be read.
func DirLine(err *scan.DirError) string {
	return fmt.Sprintf("⚠️ [UNREADABLE DIR] %s - %v", err.Path, err.Err)
}
