package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/example/moviedq/internal/config"
	"github.com/example/moviedq/internal/logging"
	"github.com/example/moviedq/internal/wire"
)

// Options carries the persistent flags shared by every subcommand.
type Options struct {
	ConfigPath string
	Database   string
	LogMode    string
}

// BindFlags registers the persistent flags on the root command.
func (o *Options) BindFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", config.DefaultPath, "Path to the YAML config file")
	cmd.PersistentFlags().StringVar(&o.Database, "db", "", "Database path (overrides config)")
	cmd.PersistentFlags().StringVar(&o.LogMode, "log-mode", "", "Log mode: dev or prod (overrides config)")
}

// loadConfig reads the config file and applies flag overrides.
func (o *Options) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if o.Database != "" {
		cfg.Database = o.Database
	}
	if o.LogMode != "" {
		cfg.LogMode = o.LogMode
	}
	return cfg, nil
}

// withContainer builds the service container, runs fn and always closes the store.
func (o *Options) withContainer(fn func(c *wire.Container) error) (err error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		return err
	}

	c, err := wire.New(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return err
	}
	defer func() {
		err = errors.Join(err, c.Close())
	}()

	return fn(c)
}

// Commands returns every moviedq subcommand bound to opts.
func Commands(opts *Options) []*cobra.Command {
	return []*cobra.Command{
		InitCmd(opts),
		IngestCmd(opts),
		AssessCmd(opts),
		RetainCmd(opts),
		BackupCmd(opts),
		ReportCmd(opts),
		RunCmd(opts),
		AuditCmd(opts),
	}
}
