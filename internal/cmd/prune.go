package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dendrascience/checkzip/report"
)

// confirm asks the user to approve deleting n archives. Anything other than
// y or yes, including end of input, is a refusal.
func confirm(in io.Reader, console *report.Console, n int) bool {
	console.Prompt(fmt.Sprintf("Delete %d corrupted archive(s)? (y/N): ", n))
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// pruneCorrupted deletes paths after confirmation. A failed removal is
// reported and the remaining paths are still tried.
func pruneCorrupted(cmd *cobra.Command, console *report.Console, paths []string, yes bool, logger *slog.Logger) (deleted int) {
	if len(paths) == 0 {
		return 0
	}
	if !yes && !confirm(cmd.InOrStdin(), console, len(paths)) {
		logger.Info("deletion declined", slog.Int("corrupted", len(paths)))
		return 0
	}

	for _, p := range paths {
		err := os.Remove(p)
		console.Deleted(p, err)
		if err != nil {
			logger.Warn("delete failed", slog.String("path", p), slog.Any("error", err))
			continue
		}
		deleted++
	}
	logger.Info("corrupted archives deleted", slog.Int("deleted", deleted), slog.Int("failed", len(paths)-deleted))
	return deleted
}
