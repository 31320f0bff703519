package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dendrascience/checkzip/version"
)

// NewRootCmd creates and returns the root cobra command for the checkzip CLI.
// It sets up all subcommands, command groups and the diagnostic logger.
func NewRootCmd() *cobra.Command {
	var (
		logLevel  string
		logFormat string
	)

	rootCmd := &cobra.Command{
		Use:   "checkzip",
		Short: "checkzip - Find corrupted zip archives in a directory tree",
		Long: `checkzip recursively validates every zip archive below a directory.

Each archive is opened and every entry is decompressed and checksummed in
parallel. Archives are reported as valid, password protected, corrupted or
unsupported, followed by a summary. An optional log file records the run.

Use subcommands to perform different operations:
  - check: Validate all archives below a directory
  - count: Count the archives a check would visit
  - seed: Generate a tree of sample archives with known defects`,
		Version:       version.Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), logLevel, logFormat)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, logger))
			logger.Debug("logger initialized", "level", logLevel, "format", logFormat, "command", cmd.Name())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Diagnostic log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Diagnostic log format: text or json")

	groupValidation := "validation"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupValidation,
		Title: "Validation",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	checkCmd := NewCheckCmd()
	countCmd := NewCountCmd()
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	checkCmd.GroupID = groupValidation
	countCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
