package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/moviedq/internal/config"
	"github.com/example/moviedq/internal/db"
	"github.com/example/moviedq/internal/logging"
)

// InitCmd returns the init command
func InitCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config and create the store",
		Long: `Write moviedq.yaml with default settings (unless it already exists)
and create the database with the current schema.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.ConfigPath); errors.Is(err, os.ErrNotExist) {
				if err := config.SaveConfig(opts.ConfigPath, config.Default()); err != nil {
					return err
				}
				fmt.Printf("✓ Config written to %s\n", opts.ConfigPath)
			} else {
				fmt.Printf("Config %s already exists, keeping it\n", opts.ConfigPath)
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			database, err := db.Open(cfg.Database, logging.Nop())
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			if err := db.Close(database); err != nil {
				return fmt.Errorf("failed to close database: %w", err)
			}

			fmt.Printf("✓ Database initialized at %s\n", cfg.Database)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  moviedq run movies.csv")
			fmt.Println("  moviedq assess")

			return nil
		},
	}
}
