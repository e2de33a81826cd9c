package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/moviedq/internal/ports/primary"
)

// AuditAdapter is a thin adapter that translates CLI operations to AuditService calls.
type AuditAdapter struct {
	service primary.AuditService
	out     io.Writer
}

// NewAuditAdapter creates a new AuditAdapter with the given service.
func NewAuditAdapter(service primary.AuditService, out io.Writer) *AuditAdapter {
	return &AuditAdapter{
		service: service,
		out:     out,
	}
}

// List prints the most recent audit entries, newest first.
func (a *AuditAdapter) List(ctx context.Context, limit int) ([]*primary.AuditEntry, error) {
	entries, err := a.service.ListAudit(ctx, limit)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No audit entries found.")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tENTITY\tOPERATION\tRECORD\tRUN")
	fmt.Fprintln(w, "--\t----\t------\t---------\t------\t---")

	for _, e := range entries {
		record := "-"
		if e.TargetID != nil {
			record = fmt.Sprintf("%d", *e.TargetID)
		}
		run := e.RunID
		if run == "" {
			run = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.EntityName,
			e.Operation,
			record,
			run,
		)
	}

	w.Flush()
	return entries, nil
}
