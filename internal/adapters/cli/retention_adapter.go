package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/moviedq/internal/ports/primary"
)

// RetentionAdapter is a thin adapter that translates CLI operations to RetentionService calls.
type RetentionAdapter struct {
	service primary.RetentionService
	out     io.Writer
}

// NewRetentionAdapter creates a new RetentionAdapter with the given service.
func NewRetentionAdapter(service primary.RetentionService, out io.Writer) *RetentionAdapter {
	return &RetentionAdapter{
		service: service,
		out:     out,
	}
}

// Apply runs the retention policies and prints the summary.
func (a *RetentionAdapter) Apply(ctx context.Context) (*primary.RetentionSummary, error) {
	summary, err := a.service.Apply(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Retention applied (cutoff %s)\n", summary.ArchiveCutoff)
	fmt.Fprintf(a.out, "  Archived:           %d\n", summary.Archived)
	fmt.Fprintf(a.out, "  Audit pruned:       %d\n", summary.AuditPruned)
	fmt.Fprintf(a.out, "  Duplicates removed: %d\n", summary.DuplicatesRemoved)
	fmt.Fprintf(a.out, "  Backup:             %s\n", backupStatus(summary.Backup))
	return summary, nil
}

// Backup writes a standalone dump and prints where it went.
func (a *RetentionAdapter) Backup(ctx context.Context) (*primary.BackupOutcome, error) {
	outcome, err := a.service.Backup(ctx)
	if err != nil {
		return outcome, err
	}

	fmt.Fprintf(a.out, "✓ Backup written to %s\n", outcome.Path)
	return outcome, nil
}

func backupStatus(b primary.BackupOutcome) string {
	if b.Success {
		return color.New(color.FgGreen).Sprint(b.Path)
	}
	return color.New(color.FgRed).Sprintf("FAILED (%s)", b.Error)
}
