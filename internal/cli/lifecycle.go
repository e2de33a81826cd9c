package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/moviedq/internal/adapters/cli"
	"github.com/example/moviedq/internal/adapters/csvsource"
	"github.com/example/moviedq/internal/adapters/filesystem"
	"github.com/example/moviedq/internal/ports/primary"
	"github.com/example/moviedq/internal/wire"
)

// IngestCmd returns the ingest command
func IngestCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <csv>",
		Short: "Normalize a CSV file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := csvsource.ReadFile(args[0])
			if err != nil {
				return err
			}

			return opts.withContainer(func(c *wire.Container) error {
				_, err := c.LifecycleAdapter().Ingest(cmd.Context(), rows)
				return err
			})
		},
	}
}

// RunCmd returns the run command
func RunCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <csv>",
		Short: "Run the whole lifecycle: ingest, report, assess, retain",
		Long: `Run one lifecycle over a CSV file. Ingestion failure aborts the run;
failures of later phases are reported and the run continues.

The quality snapshot is written to output_dir as JSON and as a text report.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := csvsource.ReadFile(args[0])
			if err != nil {
				return err
			}

			return opts.withContainer(func(c *wire.Container) error {
				result, runErr := c.LifecycleAdapter().Run(cmd.Context(), rows)
				if result != nil && result.Quality != nil {
					if err := writeQualityArtifacts(cmd.Context(), c.Artifacts, result.Quality); err != nil {
						c.Logger.Sugar().Warnw("failed to write quality artifacts", "error", err)
					}
				}
				return runErr
			})
		},
	}
}

// writeQualityArtifacts stores the snapshot as JSON and as a rendered text report.
func writeQualityArtifacts(ctx context.Context, artifacts *filesystem.ArtifactWriter, snapshot *primary.QualitySnapshot) error {
	jsonPath, err := artifacts.WriteJSON(ctx, filesystem.TimestampedName("quality_report", "json", snapshot.Timestamp), snapshot)
	if err != nil {
		return err
	}
	textPath, err := artifacts.WriteText(ctx, filesystem.TimestampedName("quality_report", "txt", snapshot.Timestamp), func(w io.Writer) error {
		cliadapter.RenderQualityReport(w, snapshot)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Quality snapshot: %s\n", jsonPath)
	fmt.Printf("✓ Quality report:   %s\n", textPath)
	return nil
}
