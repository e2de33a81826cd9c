package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/moviedq/internal/adapters/filesystem"
	"github.com/example/moviedq/internal/wire"
)

// AssessCmd returns the assess command
func AssessCmd(opts *Options) *cobra.Command {
	var dimension string
	var jsonPath string

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score the store across the quality dimensions",
		Long: `Score completeness, consistency, accuracy, timeliness, integrity,
uniqueness and compliance, plus governance, and print the quality report.

Examples:
  moviedq assess
  moviedq assess --dimension uniqueness
  moviedq assess --json reports/snapshot.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withContainer(func(c *wire.Container) error {
				adapter := c.QualityAdapter()

				if dimension != "" {
					_, err := adapter.AssessDimension(cmd.Context(), dimension)
					return err
				}

				snapshot, err := adapter.Assess(cmd.Context())
				if err != nil {
					return err
				}

				if jsonPath != "" {
					dir := filepath.Dir(jsonPath)
					path, err := filesystem.NewArtifactWriter(dir, dir).WriteJSON(cmd.Context(), filepath.Base(jsonPath), snapshot)
					if err != nil {
						return err
					}
					fmt.Printf("✓ Snapshot written to %s\n", path)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dimension, "dimension", "", "Score a single dimension (e.g. uniqueness, governance)")
	cmd.Flags().StringVar(&jsonPath, "json", "", "Also write the snapshot as JSON to this path")

	return cmd
}
