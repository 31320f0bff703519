package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dendrascience/checkzip/inspect"
	"github.com/dendrascience/checkzip/internal/config"
	"github.com/dendrascience/checkzip/report"
	"github.com/dendrascience/checkzip/scan"
)

type checkOptions struct {
	configPath      string
	logDest         string
	workers         int
	extensions      []string
	exclude         []string
	headersOnly     bool
	quiet           bool
	problemsOnly    bool
	showWorker      bool
	progress        bool
	noColor         bool
	sortLog         bool
	deleteCorrupted bool
	yes             bool
}

// NewCheckCmd creates and returns the check subcommand for the checkzip CLI.
// It validates every archive below a directory.
func NewCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check [PATH]",
		Short: "Validate every zip archive below a directory",
		Long: `Validate every zip archive below PATH, or the working directory.

Each archive is opened and every entry is read back so that its checksum is
verified. Results are printed as they arrive and summarized at the end.
Archives that need a password, or that are really another archive format
behind a .zip name, are counted as skipped.

The exit status is zero whenever the scan completes, even if corrupted
archives were found. It is non-zero when PATH cannot be scanned, the
configuration is invalid, or the scan was interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runCheck(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to a TOML configuration file")
	cmd.Flags().StringVarP(&opts.logDest, "log", "l", "", "Write a log file; a directory receives a timestamped file name")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Number of parallel workers (default one per CPU)")
	cmd.Flags().StringArrayVarP(&opts.extensions, "ext", "e", nil, "Archive extension to match, repeatable (default .zip)")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "Directory relative to PATH to skip, repeatable")
	cmd.Flags().BoolVar(&opts.headersOnly, "headers-only", false, "Only read the central directory and entry headers")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print a line per archive")
	cmd.Flags().BoolVar(&opts.problemsOnly, "problems-only", false, "Do not print lines for valid archives")
	cmd.Flags().BoolVar(&opts.showWorker, "show-worker", false, "Prefix each line with the worker that checked it")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "Show a progress spinner on stderr")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&opts.sortLog, "sort-log", false, "Sort log file entries by path instead of completion order")
	cmd.Flags().BoolVar(&opts.deleteCorrupted, "delete-corrupted", false, "Offer to delete corrupted archives after the scan")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Delete without asking when --delete-corrupted is set")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file over the
// defaults.
func resolveConfig(cmd *cobra.Command, opts checkOptions) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("ext") {
		cfg.Extensions = opts.extensions
	}
	if flags.Changed("exclude") {
		cfg.Exclude = opts.exclude
	}
	if flags.Changed("headers-only") {
		cfg.HeadersOnly = opts.headersOnly
	}
	if flags.Changed("log") {
		cfg.Log = opts.logDest
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// checkRoot rejects a root that cannot be scanned before anything is
// printed.
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("cannot scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot scan %s: %w", root, scan.ErrRootNotDirectory)
	}
	return nil
}

func runCheck(cmd *cobra.Command, root string, opts checkOptions) error {
	logger := loggerFrom(cmd.Context())

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	if err := checkRoot(root); err != nil {
		return err
	}
	logger.Debug("configuration resolved", slog.Any("config", cfg))

	console := report.NewConsole(cmd.OutOrStdout(), report.ConsoleOptions{
		Quiet:        opts.quiet,
		ProblemsOnly: opts.problemsOnly,
		ShowWorker:   opts.showWorker,
		NoColor:      opts.noColor,
	})
	observers := scan.Observers{console}
	var progress *report.Progress
	if opts.progress {
		progress = report.NewProgress(cmd.ErrOrStderr())
		observers = append(observers, progress)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = scan.DefaultWorkers()
	}
	console.Start(root, workers)

	snap, runErr := scan.Run(cmd.Context(), scan.Options{
		Root:       root,
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
		Workers:    workers,
		Inspector:  inspect.Zip{HeadersOnly: cfg.HeadersOnly},
		Observer:   observers,
		Logger:     logger,
	})
	if progress != nil {
		progress.Finish()
	}
	if runErr != nil && snap.RunID == "" {
		return runErr
	}

	console.Summary(snap)

	if cfg.Log != "" {
		path, err := report.ResolveLogPath(cfg.Log, snap.Started)
		if err == nil {
			err = report.WriteLog(path, snap, opts.sortLog)
		}
		console.LogSaved(path, err)
		if err != nil {
			logger.Error("log file not written", slog.String("dest", cfg.Log), slog.Any("error", err))
		}
	}

	switch {
	case runErr != nil:
		return runErr
	case snap.Interrupted:
		return ErrInterrupted
	}

	if opts.deleteCorrupted {
		pruneCorrupted(cmd, console, snap.Corrupted(), opts.yes, logger)
	}
	return nil
}

// ExitCode maps an error returned by a command to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInterrupted):
		return 130
	default:
		return 1
	}
}
