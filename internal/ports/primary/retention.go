package primary

import (
	"context"
	"time"
)

// RetentionService defines the primary port for archival and pruning.
type RetentionService interface {
	// Apply runs archival, audit pruning, backup and deduplication in one transaction.
	Apply(ctx context.Context) (*RetentionSummary, error)

	// Backup writes a standalone logical dump of the store.
	Backup(ctx context.Context) (*BackupOutcome, error)
}

// BackupOutcome reports the backup policy result.
type BackupOutcome struct {
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RetentionSummary is recorded as the RETENTION_APPLIED audit payload.
type RetentionSummary struct {
	RunID             string        `json:"run_id,omitempty"`
	ArchiveCutoff     string        `json:"archive_cutoff"`
	Archived          int64         `json:"archived"`
	ArchiveRowsCopied int64         `json:"archive_rows_copied"`
	AuditPruned       int64         `json:"audit_pruned"`
	Backup            BackupOutcome `json:"backup"`
	DuplicatesRemoved int64         `json:"duplicates_removed"`
	ExecutedAt        time.Time     `json:"executed_at"`
}
