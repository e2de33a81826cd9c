package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/moviedq/internal/ports/primary"
)

// LifecycleAdapter translates CLI operations to IngestService and LifecycleService calls.
type LifecycleAdapter struct {
	ingest    primary.IngestService
	lifecycle primary.LifecycleService
	out       io.Writer
}

// NewLifecycleAdapter creates a new LifecycleAdapter. Either service may be nil
// when the command only needs the other.
func NewLifecycleAdapter(ingest primary.IngestService, lifecycle primary.LifecycleService, out io.Writer) *LifecycleAdapter {
	return &LifecycleAdapter{
		ingest:    ingest,
		lifecycle: lifecycle,
		out:       out,
	}
}

// Ingest runs the normalization pipeline alone.
func (a *LifecycleAdapter) Ingest(ctx context.Context, rows []primary.RawRow) (*primary.NormalizationResult, error) {
	result, err := a.ingest.Normalize(ctx, rows)
	if err != nil {
		return nil, err
	}

	RenderNormalization(a.out, result)
	return result, nil
}

// Run executes a whole lifecycle run and prints the phase summary.
// A failed run is still summarized before the error is returned.
func (a *LifecycleAdapter) Run(ctx context.Context, rows []primary.RawRow) (*primary.LifecycleResult, error) {
	result, err := a.lifecycle.Run(ctx, rows)
	if result != nil {
		RenderLifecycle(a.out, result)
	}
	return result, err
}

// RenderNormalization prints the ingestion counters.
func RenderNormalization(w io.Writer, r *primary.NormalizationResult) {
	fmt.Fprintf(w, "✓ Ingested %d rows: %d inserted, %d replaced\n", r.RowsRead, r.RecordsInserted, r.RecordsReplaced)
	fmt.Fprintf(w, "  Genres:   %d discovered, %d new\n", r.GenresDiscovered, r.GenresCreated)
	fmt.Fprintf(w, "  Keywords: %d discovered, %d new\n", r.KeywordsFound, r.KeywordsCreated)
	fmt.Fprintf(w, "  Links:    %d created, %d skipped\n", r.LinksCreated, r.LinksSkipped)
	if r.Coerced > 0 {
		fmt.Fprintf(w, "  Coerced:  %d values defaulted or clamped\n", r.Coerced)
	}
}

// RenderLifecycle prints one line per phase and the headline figures.
func RenderLifecycle(w io.Writer, r *primary.LifecycleResult) {
	fmt.Fprintf(w, "Lifecycle run %s\n", r.RunID)
	for _, p := range r.Phases {
		if p.Succeeded {
			fmt.Fprintf(w, "  %s %s\n", color.New(color.FgGreen).Sprint("✓"), p.Phase)
			continue
		}
		fmt.Fprintf(w, "  %s %s: %s\n", color.New(color.FgRed).Sprint("✗"), p.Phase, p.Error)
	}

	if r.Ingest != nil {
		fmt.Fprintf(w, "Records: %d written (%d inserted, %d replaced)\n",
			r.Ingest.RecordsWritten, r.Ingest.RecordsInserted, r.Ingest.RecordsReplaced)
	}
	if r.Quality != nil {
		fmt.Fprintf(w, "Quality: %.2f/100 (%s), governance %.2f/100\n",
			r.Quality.OverallScore, r.Quality.Classification, r.Quality.GovernanceScore)
	}
	if r.Retention != nil {
		fmt.Fprintf(w, "Retention: %d archived, %d audit entries pruned, %d duplicates removed\n",
			r.Retention.Archived, r.Retention.AuditPruned, r.Retention.DuplicatesRemoved)
	}

	if r.Succeeded() {
		fmt.Fprintln(w, color.New(color.FgGreen).Sprint("Run completed"))
	} else {
		fmt.Fprintln(w, color.New(color.FgYellow).Sprint("Run completed with failures"))
	}
}
