package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/moviedq/internal/wire"
)

// RetainCmd returns the retain command
func RetainCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "retain",
		Short: "Archive old records, prune the audit trail, back up and deduplicate",
		Long: `Apply the retention policies in one transaction:
archive records released before archive_cutoff, prune audit entries older
than audit_retention_days, write a backup, then remove duplicate records.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withContainer(func(c *wire.Container) error {
				_, err := c.RetentionAdapter().Apply(cmd.Context())
				return err
			})
		},
	}
}

// BackupCmd returns the backup command
func BackupCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write a logical SQL dump into backup_dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withContainer(func(c *wire.Container) error {
				_, err := c.RetentionAdapter().Backup(cmd.Context())
				return err
			})
		},
	}
}
