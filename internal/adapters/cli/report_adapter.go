package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/moviedq/internal/ports/primary"
)

// ReportAdapter is a thin adapter that translates CLI operations to ReportService calls.
type ReportAdapter struct {
	service primary.ReportService
	out     io.Writer
}

// NewReportAdapter creates a new ReportAdapter with the given service.
func NewReportAdapter(service primary.ReportService, out io.Writer) *ReportAdapter {
	return &ReportAdapter{
		service: service,
		out:     out,
	}
}

// Show generates and prints the usage reports.
func (a *ReportAdapter) Show(ctx context.Context) (*primary.UsageReport, error) {
	report, err := a.service.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate usage report: %w", err)
	}

	RenderUsageReport(a.out, report)
	return report, nil
}

// RenderUsageReport prints the general, top-revenue, genre and yearly sections.
func RenderUsageReport(w io.Writer, r *primary.UsageReport) {
	g := r.General
	fmt.Fprintln(w, "GENERAL")
	fmt.Fprintf(w, "  Movies:      %d\n", g.TotalMovies)
	fmt.Fprintf(w, "  Avg budget:  %.2f\n", g.AvgBudget)
	fmt.Fprintf(w, "  Avg revenue: %.2f\n", g.AvgRevenue)
	fmt.Fprintf(w, "  Avg vote:    %.2f\n", g.AvgVote)
	fmt.Fprintf(w, "  Avg runtime: %.2f\n", g.AvgRuntime)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TOP REVENUE")
	if len(r.TopRevenue) == 0 {
		fmt.Fprintln(w, "  (none)")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		fmt.Fprintln(tw, "TITLE\tREVENUE\tBUDGET\tPROFIT")
		for _, e := range r.TopRevenue {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", e.Title, e.Revenue, e.Budget, e.Profit)
		}
		tw.Flush()
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "GENRES")
	if len(r.Genres) == 0 {
		fmt.Fprintln(w, "  (none)")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		fmt.Fprintln(tw, "GENRE\tMOVIES\tAVG VOTE\tAVG REVENUE\tAVG BUDGET")
		for _, s := range r.Genres {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\n", s.Name, s.Movies, s.AvgVote, s.AvgRevenue, s.AvgBudget)
		}
		tw.Flush()
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TRENDS")
	if len(r.Trends) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tMOVIES\tAVG BUDGET\tAVG REVENUE\tAVG VOTE")
	for _, t := range r.Trends {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.2f\t%.2f\n", t.Year, t.Movies, t.AvgBudget, t.AvgRevenue, t.AvgVote)
	}
	tw.Flush()
}
