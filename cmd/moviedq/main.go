package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/moviedq/internal/cli"
	"github.com/example/moviedq/internal/version"
)

func main() {
	opts := &cli.Options{}

	rootCmd := &cobra.Command{
		Use:     "moviedq",
		Short:   "moviedq - lifecycle and quality engine for a movie catalog",
		Version: version.String(),
		Long: `moviedq ingests raw movie rows into a SQLite catalog, scores the catalog
across seven data-quality dimensions plus governance, and applies
retention: archival, audit pruning, backup and deduplication.`,
		SilenceUsage: true,
	}
	opts.BindFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(cli.Commands(opts)...)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
