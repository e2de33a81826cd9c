package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/example/moviedq/internal/core/retention"
	"github.com/example/moviedq/internal/ctxutil"
	"github.com/example/moviedq/internal/ports/primary"
	"github.com/example/moviedq/internal/ports/secondary"
)

// Retention policy names used in metrics, logs and PolicyError.
const (
	PolicyArchive = "archive"
	PolicyPrune   = "audit_prune"
	PolicyBackup  = "backup"
	PolicyDedup   = "dedup"
)

// RetentionOptions configures a retention run.
type RetentionOptions struct {
	ArchiveCutoff  time.Time
	AuditRetention time.Duration
	Now            func() time.Time
}

// RetentionServiceImpl implements the RetentionService interface.
type RetentionServiceImpl struct {
	store   secondary.Store
	backups secondary.BackupWriter
	metrics secondary.MetricsRecorder
	logger  *zap.Logger
	opts    RetentionOptions
}

// NewRetentionService creates a new RetentionService. metrics may be nil.
func NewRetentionService(store secondary.Store, backups secondary.BackupWriter, metrics secondary.MetricsRecorder, logger *zap.Logger, opts RetentionOptions) *RetentionServiceImpl {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &RetentionServiceImpl{
		store:   store,
		backups: backups,
		metrics: optionalRecorder(metrics),
		logger:  logger,
		opts:    opts,
	}
}

// Apply runs archival, audit pruning, backup and deduplication, in that order,
// inside one transaction. A backup failure is recorded in the summary and the
// run continues; any other failure rolls everything back.
func (s *RetentionServiceImpl) Apply(ctx context.Context) (*primary.RetentionSummary, error) {
	now := s.opts.Now().UTC()

	guard := retention.CanApply(retention.RunContext{
		ArchiveCutoff:  s.opts.ArchiveCutoff,
		AuditRetention: s.opts.AuditRetention,
		Now:            now,
	})
	if err := guard.Error(); err != nil {
		return nil, fmt.Errorf("retention refused: %w", err)
	}

	summary := &primary.RetentionSummary{
		RunID:         ctxutil.RunIDFromContext(ctx),
		ArchiveCutoff: s.opts.ArchiveCutoff.Format("2006-01-02"),
		ExecutedAt:    now,
	}

	err := s.store.Transaction(ctx, func(tx secondary.Tx) error {
		copied, err := tx.Retention().CopyToArchive(ctx, s.opts.ArchiveCutoff, now)
		if err != nil {
			return &primary.PolicyError{Policy: PolicyArchive, Err: err}
		}
		archived, err := tx.Retention().DeleteReleasedBefore(ctx, s.opts.ArchiveCutoff)
		if err != nil {
			return &primary.PolicyError{Policy: PolicyArchive, Err: err}
		}
		summary.ArchiveRowsCopied = copied
		summary.Archived = archived

		pruned, err := tx.Retention().PruneAuditBefore(ctx, retention.AuditThreshold(now, s.opts.AuditRetention))
		if err != nil {
			return &primary.PolicyError{Policy: PolicyPrune, Err: err}
		}
		summary.AuditPruned = pruned

		summary.Backup = s.backup(ctx, tx, now)

		removed, err := tx.Retention().DeleteDuplicates(ctx)
		if err != nil {
			return &primary.PolicyError{Policy: PolicyDedup, Err: err}
		}
		summary.DuplicatesRemoved = removed

		_, err = tx.Audit().Append(ctx, &secondary.AuditRecord{
			EntityName: "retention_policy",
			Operation:  secondary.AuditRetentionApplied,
			After:      summary,
			Timestamp:  now,
		})
		return err
	})
	if err != nil {
		// The dump was taken inside the rolled back transaction.
		if summary.Backup.Success {
			s.discardBackup(ctx, summary.Backup.Path)
		}
		return nil, &primary.StorageError{Op: "retention", Err: err}
	}

	if s.metrics != nil {
		s.metrics.RecordRetentionAction(PolicyArchive, summary.Archived)
		s.metrics.RecordRetentionAction(PolicyPrune, summary.AuditPruned)
		s.metrics.RecordRetentionAction(PolicyDedup, summary.DuplicatesRemoved)
		if summary.Backup.Success {
			s.metrics.RecordRetentionAction(PolicyBackup, 1)
		}
	}

	s.logger.Info("retention applied",
		zap.String("cutoff", summary.ArchiveCutoff),
		zap.Int64("archived", summary.Archived),
		zap.Int64("archive_rows_copied", summary.ArchiveRowsCopied),
		zap.Int64("audit_pruned", summary.AuditPruned),
		zap.Bool("backup_success", summary.Backup.Success),
		zap.Int64("duplicates_removed", summary.DuplicatesRemoved),
	)

	return summary, nil
}

// Backup writes a standalone logical dump from a consistent read.
func (s *RetentionServiceImpl) Backup(ctx context.Context) (*primary.BackupOutcome, error) {
	now := s.opts.Now().UTC()

	var outcome primary.BackupOutcome
	err := s.store.Transaction(ctx, func(tx secondary.Tx) error {
		outcome = s.backup(ctx, tx, now)
		return nil
	})
	if err != nil {
		return nil, &primary.StorageError{Op: "backup", Err: err}
	}
	if !outcome.Success {
		return &outcome, &primary.PolicyError{Policy: PolicyBackup, Err: fmt.Errorf("%s", outcome.Error)}
	}
	return &outcome, nil
}

func (s *RetentionServiceImpl) discardBackup(ctx context.Context, path string) {
	if err := s.backups.RemoveBackup(ctx, path); err != nil {
		s.logger.Warn("failed to discard backup of rolled back retention run",
			zap.String("path", path), zap.Error(err))
		return
	}
	s.logger.Info("discarded backup of rolled back retention run", zap.String("path", path))
}

type dumper interface {
	Dump(ctx context.Context, w io.Writer) error
}

// backup never fails the caller; failures are reported in the outcome.
func (s *RetentionServiceImpl) backup(ctx context.Context, src dumper, now time.Time) primary.BackupOutcome {
	if s.backups == nil {
		return primary.BackupOutcome{Error: "no backup writer configured"}
	}

	name := fmt.Sprintf("backup_movies_%s.sql", now.Format("20060102_150405"))
	path, err := s.backups.WriteBackup(ctx, name, func(w io.Writer) error {
		return src.Dump(ctx, w)
	})
	if err != nil {
		perr := &primary.PolicyError{Policy: PolicyBackup, Err: err}
		s.logger.Warn("backup policy failed, continuing", zap.Error(perr))
		return primary.BackupOutcome{Error: perr.Error()}
	}

	s.logger.Info("backup written", zap.String("path", path))
	return primary.BackupOutcome{Success: true, Path: path}
}
