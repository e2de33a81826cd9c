package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/moviedq/internal/core/quality"
	"github.com/example/moviedq/internal/ports/primary"
)

// QualityAdapter is a thin adapter that translates CLI operations to QualityService calls.
type QualityAdapter struct {
	service primary.QualityService
	out     io.Writer
}

// NewQualityAdapter creates a new QualityAdapter with the given service.
func NewQualityAdapter(service primary.QualityService, out io.Writer) *QualityAdapter {
	return &QualityAdapter{
		service: service,
		out:     out,
	}
}

// Assess runs a full assessment and prints the quality report.
func (a *QualityAdapter) Assess(ctx context.Context) (*primary.QualitySnapshot, error) {
	snapshot, err := a.service.Assess(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to assess quality: %w", err)
	}

	RenderQualityReport(a.out, snapshot)
	return snapshot, nil
}

// AssessDimension runs and prints a single dimension.
func (a *QualityAdapter) AssessDimension(ctx context.Context, name string) (*primary.DimensionScore, error) {
	score, err := a.service.AssessDimension(ctx, name)
	if err != nil {
		return nil, err
	}

	renderDimension(a.out, score)
	return score, nil
}

// RenderQualityReport writes the human-readable quality report.
func RenderQualityReport(w io.Writer, s *primary.QualitySnapshot) {
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "DATA QUALITY REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Generated: %s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Database:  %s\n", s.Database)
	fmt.Fprintf(w, "Overall:   %.2f/100 (%s)\n", s.OverallScore, classificationColor(s.Classification).Sprint(s.Classification))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "DIMENSIONS")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, d := range s.Dimensions {
		renderDimension(w, d)
	}

	if s.Governance != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "GOVERNANCE")
		fmt.Fprintln(w, strings.Repeat("-", 60))
		renderDimension(w, s.Governance)
	}

	if len(s.Recommendations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "RECOMMENDATIONS")
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for i, r := range s.Recommendations {
			fmt.Fprintf(w, "%d. %s\n", i+1, r)
		}
	}
	fmt.Fprintln(w, rule)
}

func renderDimension(w io.Writer, d *primary.DimensionScore) {
	fmt.Fprintf(w, "%s %-13s %6.2f/100\n", statusIcon(d.Status), d.Name, d.Score)
	for _, h := range d.Highlights {
		fmt.Fprintf(w, "    %s\n", h)
	}
}

func statusIcon(status string) string {
	switch status {
	case quality.StatusPass:
		return color.New(color.FgGreen).Sprint("✓")
	case quality.StatusWarning:
		return color.New(color.FgYellow).Sprint("!")
	default:
		return color.New(color.FgRed).Sprint("✗")
	}
}

func classificationColor(classification string) *color.Color {
	switch classification {
	case "EXCELLENT", "GOOD":
		return color.New(color.FgGreen)
	case "FAIR":
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
