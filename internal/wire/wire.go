// Package wire provides dependency injection for the moviedq application.
// A Container owns one store handle for the lifetime of a command.
package wire

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	cliadapter "github.com/example/moviedq/internal/adapters/cli"
	"github.com/example/moviedq/internal/adapters/filesystem"
	"github.com/example/moviedq/internal/adapters/metrics"
	"github.com/example/moviedq/internal/adapters/sqlite"
	"github.com/example/moviedq/internal/app"
	"github.com/example/moviedq/internal/config"
	"github.com/example/moviedq/internal/db"
	"github.com/example/moviedq/internal/ports/primary"
)

// Container holds the services built from one configuration.
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	Artifacts *filesystem.ArtifactWriter
	Metrics   *metrics.Recorder

	Ingest    primary.IngestService
	Quality   primary.QualityService
	Retention primary.RetentionService
	Report    primary.ReportService
	Audit     primary.AuditService
	Lifecycle primary.LifecycleService

	database *sql.DB
}

// New opens the store named by cfg and builds every service on it.
// Callers must defer Close, even when a later step fails.
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	cutoff, err := cfg.ArchiveCutoffTime()
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Create secondary adapters on the single store handle
	store := sqlite.NewStore(database, logger)
	artifacts := filesystem.NewArtifactWriter(cfg.BackupDir, cfg.OutputDir)
	recorder := metrics.NewRecorder()

	scorers := app.NewScorers(sqlite.NewQualityReader(database), app.ScorerOptions{
		RecentWindowYears:     cfg.RecentWindowYears,
		RetentionHorizonYears: cfg.RetentionHorizonYears,
		MinReliableVotes:      cfg.MinReliableVotes,
	})

	// Create services (primary ports implementation)
	ingest := app.NewIngestService(store, logger, nil)
	report := app.NewReportService(sqlite.NewReportReader(database), logger)
	quality := app.NewQualityService(scorers, recorder, logger, cfg.Database, nil)
	retention := app.NewRetentionService(store, artifacts, recorder, logger, app.RetentionOptions{
		ArchiveCutoff:  cutoff,
		AuditRetention: cfg.AuditRetention(),
	})

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Artifacts: artifacts,
		Metrics:   recorder,
		Ingest:    ingest,
		Quality:   quality,
		Retention: retention,
		Report:    report,
		Audit:     app.NewAuditService(sqlite.NewAuditRepository(database)),
		Lifecycle: app.NewLifecycleService(ingest, report, quality, retention, store, logger),
		database:  database,
	}, nil
}

// Close exports metrics (when configured) and releases the store handle.
// The handle is closed even if the export fails.
func (c *Container) Close() error {
	var errs []error
	if c.Config.MetricsFile != "" {
		if err := c.Metrics.WriteTextfile(c.Config.MetricsFile); err != nil {
			errs = append(errs, err)
		}
	}
	if err := db.Close(c.database); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}
	_ = c.Logger.Sync()
	return errors.Join(errs...)
}

// QualityAdapter returns a new QualityAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func (c *Container) QualityAdapter() *cliadapter.QualityAdapter {
	return c.QualityAdapterWithOutput(os.Stdout)
}

// QualityAdapterWithOutput returns a new QualityAdapter writing to the given output.
func (c *Container) QualityAdapterWithOutput(out io.Writer) *cliadapter.QualityAdapter {
	return cliadapter.NewQualityAdapter(c.Quality, out)
}

// LifecycleAdapter returns a new LifecycleAdapter writing to stdout.
func (c *Container) LifecycleAdapter() *cliadapter.LifecycleAdapter {
	return c.LifecycleAdapterWithOutput(os.Stdout)
}

// LifecycleAdapterWithOutput returns a new LifecycleAdapter writing to the given output.
func (c *Container) LifecycleAdapterWithOutput(out io.Writer) *cliadapter.LifecycleAdapter {
	return cliadapter.NewLifecycleAdapter(c.Ingest, c.Lifecycle, out)
}

// ReportAdapter returns a new ReportAdapter writing to stdout.
func (c *Container) ReportAdapter() *cliadapter.ReportAdapter {
	return cliadapter.NewReportAdapter(c.Report, os.Stdout)
}

// RetentionAdapter returns a new RetentionAdapter writing to stdout.
func (c *Container) RetentionAdapter() *cliadapter.RetentionAdapter {
	return cliadapter.NewRetentionAdapter(c.Retention, os.Stdout)
}

// AuditAdapter returns a new AuditAdapter writing to stdout.
func (c *Container) AuditAdapter() *cliadapter.AuditAdapter {
	return cliadapter.NewAuditAdapter(c.Audit, os.Stdout)
}
