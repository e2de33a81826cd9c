package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/moviedq/internal/ctxutil"
	"github.com/example/moviedq/internal/ports/primary"
	"github.com/example/moviedq/internal/ports/secondary"
)

// LifecycleServiceImpl runs ingest -> report -> quality -> retention.
// Ingestion failure aborts the run; later phases are isolated from each other.
type LifecycleServiceImpl struct {
	ingest    primary.IngestService
	report    primary.ReportService
	quality   primary.QualityService
	retention primary.RetentionService
	store     secondary.Store
	logger    *zap.Logger
	newRunID  func() string
	now       func() time.Time
}

// NewLifecycleService creates a new LifecycleService with injected dependencies.
func NewLifecycleService(
	ingest primary.IngestService,
	report primary.ReportService,
	quality primary.QualityService,
	retention primary.RetentionService,
	store secondary.Store,
	logger *zap.Logger,
) *LifecycleServiceImpl {
	return &LifecycleServiceImpl{
		ingest:    ingest,
		report:    report,
		quality:   quality,
		retention: retention,
		store:     store,
		logger:    logger,
		newRunID:  uuid.NewString,
		now:       time.Now,
	}
}

// Run executes one lifecycle run. The returned error is non-nil only when
// ingestion failed; other phase failures are reported in result.Phases.
func (s *LifecycleServiceImpl) Run(ctx context.Context, rows []primary.RawRow) (*primary.LifecycleResult, error) {
	runID := s.newRunID()
	ctx = ctxutil.WithRunID(ctx, runID)
	logger := s.logger.With(zap.String("run_id", runID))

	result := &primary.LifecycleResult{RunID: runID}
	logger.Info("lifecycle run started", zap.Int("rows", len(rows)))

	ingest, err := s.ingest.Normalize(ctx, rows)
	result.Phases = append(result.Phases, outcome(primary.PhaseIngest, err))
	if err != nil {
		logger.Error("ingestion failed, aborting run", zap.Error(err))

		// Unreadable input never reached the store; nothing to record.
		var ingestionErr *primary.IngestionError
		if !errors.As(err, &ingestionErr) {
			s.complete(ctx, logger, result)
		}
		return result, fmt.Errorf("lifecycle aborted: %w", err)
	}
	result.Ingest = ingest

	s.runPhase(logger, result, primary.PhaseReport, func() error {
		report, err := s.report.Generate(ctx)
		result.Report = report
		return err
	})

	s.runPhase(logger, result, primary.PhaseQuality, func() error {
		snapshot, err := s.quality.Assess(ctx)
		result.Quality = snapshot
		return err
	})

	s.runPhase(logger, result, primary.PhaseRetention, func() error {
		summary, err := s.retention.Apply(ctx)
		result.Retention = summary
		return err
	})

	s.complete(ctx, logger, result)
	logger.Info("lifecycle run finished", zap.Bool("succeeded", result.Succeeded()))

	return result, nil
}

// runPhase records the phase outcome and keeps going on failure.
func (s *LifecycleServiceImpl) runPhase(logger *zap.Logger, result *primary.LifecycleResult, phase string, fn func() error) {
	err := fn()
	result.Phases = append(result.Phases, outcome(phase, err))
	if err != nil {
		logger.Error("phase failed, continuing", zap.String("phase", phase), zap.Error(err))
	}
}

// complete appends the terminal LIFECYCLE_COMPLETED audit entry.
func (s *LifecycleServiceImpl) complete(ctx context.Context, logger *zap.Logger, result *primary.LifecycleResult) {
	_, err := s.store.AppendAudit(ctx, &secondary.AuditRecord{
		EntityName: "lifecycle_run",
		Operation:  secondary.AuditLifecycleCompleted,
		After: map[string]any{
			"run_id":    result.RunID,
			"succeeded": result.Succeeded(),
			"phases":    result.Phases,
		},
		RunID:     result.RunID,
		Timestamp: s.now(),
	})
	if err != nil {
		logger.Warn("failed to record lifecycle outcome", zap.Error(err))
	}
}

func outcome(phase string, err error) primary.PhaseOutcome {
	if err != nil {
		return primary.PhaseOutcome{Phase: phase, Error: err.Error()}
	}
	return primary.PhaseOutcome{Phase: phase, Succeeded: true}
}
