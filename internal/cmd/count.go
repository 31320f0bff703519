package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dendrascience/checkzip/report"
	"github.com/dendrascience/checkzip/scan"
)

// NewCountCmd creates and returns the count subcommand for the checkzip CLI.
// It runs only the directory walk of a check.
func NewCountCmd() *cobra.Command {
	var (
		path         string
		extensions   []string
		exclude      []string
		showProgress bool
	)

	cmd := &cobra.Command{
		Use:   "count [PATH]",
		Short: "Count the archives a check would visit",
		Long: `Count the archives below a directory without opening them.

This walks the tree exactly like check does, with the same extension and
exclusion rules, and reports how many archives were found and which
directories could not be read. Useful for sizing a run before starting it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				path = args[0]
			}
			return runCount(cmd, path, extensions, exclude, showProgress)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", ".", "Path to count archives in")
	cmd.Flags().StringArrayVarP(&extensions, "ext", "e", nil, "Archive extension to match, repeatable (default .zip)")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "Directory relative to PATH to skip, repeatable")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show progress every 10,000 archives")

	return cmd
}

func runCount(cmd *cobra.Command, path string, extensions, exclude []string, showProgress bool) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := checkRoot(path); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var dirErrors []*scan.DirError
	walker := &scan.Walker{
		Root:       path,
		Extensions: extensions,
		Exclude:    exclude,
		Logger:     loggerFrom(cmd.Context()),
		OnDirError: func(err *scan.DirError) { dirErrors = append(dirErrors, err) },
	}
	found := 0
	walker.OnDiscovered = func(string) {
		found++
		if showProgress && found%10000 == 0 {
			fmt.Fprintf(out, "Progress: %d archives counted\n", found)
		}
	}

	// nothing consumes the paths, so drain the queue as the walk fills it
	q := scan.NewQueue()
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for {
			if _, ok := q.TryPop(); ok {
				continue
			}
			if q.Drained() {
				return
			}
			q.Wait(context.Background())
		}
	}()

	stats, err := walker.Walk(cmd.Context(), q)
	<-drained
	if err != nil {
		return fmt.Errorf("walk %s: %w", path, err)
	}

	for _, d := range dirErrors {
		fmt.Fprintln(out, report.DirLine(d))
	}
	fmt.Fprintf(out, "Total archives: %d\n", stats.Discovered)
	fmt.Fprintf(out, "Directories scanned: %d\n", stats.Dirs)
	if len(dirErrors) > 0 {
		fmt.Fprintf(out, "Unreadable directories: %d\n", len(dirErrors))
	}
	return nil
}
