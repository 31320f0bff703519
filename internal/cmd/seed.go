package cmd

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/dendrascience/checkzip/internal/fixture"
)

// NewSeedCmd creates and returns the seed subcommand for the checkzip CLI.
// It generates a tree of sample archives with known defects.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		seed       uint64
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate sample archives with known defects",
		Long: `Generate a directory tree of sample archives for trying out check.

Archives are spread over a nested hierarchy of up to three levels. Most are
valid; the rest are empty, zstd-compressed, encrypted, truncated,
checksum-damaged, not zip at all, or tar, 7z and gzip files carrying a .zip
name. Every entry holds a
random UUID line so that no two archives are identical.

The same --seed produces the same tree layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			return runSeed(cmd, outputPath, fileCount, seed, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 1000, "Number of archives to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for the tree layout (default random)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(cmd *cobra.Command, outputPath string, fileCount int, seed uint64, verbose bool) error {
	if fileCount < 0 {
		return fmt.Errorf("count must not be negative: %d", fileCount)
	}
	out := cmd.OutOrStdout()
	if verbose {
		fmt.Fprintf(out, "Generating %d archives in %s (seed %d)\n", fileCount, outputPath, seed)
	}

	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	files := fixture.Random(fileCount, rand.New(rand.NewPCG(seed, seed>>32|1)))
	perKind := make(map[fixture.Kind]int)
	dirs := make(map[string]bool)

	// sorted so progress output is reproducible
	for i, rel := range slices.Sorted(maps.Keys(files)) {
		kind := files[rel]
		path := filepath.Join(outputPath, filepath.FromSlash(rel))
		if err := fixture.Write(path, kind); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
		perKind[kind]++
		dirs[filepath.Dir(path)] = true

		if verbose && (i+1)%1000 == 0 {
			fmt.Fprintf(out, "Created %d/%d archives...\n", i+1, fileCount)
		}
	}

	if verbose {
		fmt.Fprintf(out, "Successfully created %d archives\n", len(files))
		fmt.Fprintf(out, "Archives distributed across %d directories\n", len(dirs))
		for _, k := range fixture.Kinds {
			if n := perKind[k]; n > 0 {
				fmt.Fprintf(out, "  %-10s %d\n", k, n)
			}
		}
	}
	return nil
}
