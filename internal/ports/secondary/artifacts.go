package secondary

import (
	"context"
	"io"
)

// BackupWriter persists a logical dump produced by write.
type BackupWriter interface {
	// WriteBackup creates the named artifact and returns its path.
	WriteBackup(ctx context.Context, name string, write func(w io.Writer) error) (string, error)
	// RemoveBackup deletes an artifact returned by WriteBackup. A missing file is not an error.
	RemoveBackup(ctx context.Context, path string) error
}

// MetricsRecorder publishes assessment and retention figures.
type MetricsRecorder interface {
	RecordDimensionScore(dimension string, score float64)
	RecordOverallScore(score float64)
	RecordGovernanceScore(score float64)
	RecordRetentionAction(policy string, count int64)
}
