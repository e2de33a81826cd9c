package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/moviedq/internal/wire"
)

// ReportCmd returns the report command
func ReportCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print catalog usage reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withContainer(func(c *wire.Container) error {
				_, err := c.ReportAdapter().Show(cmd.Context())
				return err
			})
		},
	}
}

// AuditCmd returns the audit command
func AuditCmd(opts *Options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List recent audit entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withContainer(func(c *wire.Container) error {
				_, err := c.AuditAdapter().List(cmd.Context(), limit)
				return err
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")

	return cmd
}
