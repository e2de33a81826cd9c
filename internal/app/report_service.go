package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/moviedq/internal/core/quality"
	"github.com/example/moviedq/internal/ports/primary"
	"github.com/example/moviedq/internal/ports/secondary"
)

// Usage report bounds.
const (
	TopRevenueLimit = 10
	TrendFromYear   = 2000
	TrendToYear     = 2020
)

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	reader secondary.ReportReader
	logger *zap.Logger
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(reader secondary.ReportReader, logger *zap.Logger) *ReportServiceImpl {
	return &ReportServiceImpl{
		reader: reader,
		logger: logger,
	}
}

// Generate builds the general, top-revenue, genre and yearly usage reports.
func (s *ReportServiceImpl) Generate(ctx context.Context) (*primary.UsageReport, error) {
	general, err := s.reader.General(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate general stats: %w", err)
	}

	top, err := s.reader.TopRevenue(ctx, TopRevenueLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to generate top revenue: %w", err)
	}

	genres, err := s.reader.GenreBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate genre analysis: %w", err)
	}

	trends, err := s.reader.YearTrends(ctx, TrendFromYear, TrendToYear)
	if err != nil {
		return nil, fmt.Errorf("failed to generate trends: %w", err)
	}

	report := &primary.UsageReport{
		General: primary.GeneralStats{
			TotalMovies: general.TotalMovies,
			AvgBudget:   quality.Round2(general.AvgBudget),
			AvgRevenue:  quality.Round2(general.AvgRevenue),
			AvgVote:     quality.Round2(general.AvgVote),
			AvgRuntime:  quality.Round2(general.AvgRuntime),
		},
		TopRevenue: make([]primary.RevenueEntry, 0, len(top)),
		Genres:     make([]primary.GenreStats, 0, len(genres)),
		Trends:     make([]primary.YearTrend, 0, len(trends)),
	}

	for _, r := range top {
		report.TopRevenue = append(report.TopRevenue, primary.RevenueEntry{
			Title:   r.Title,
			Revenue: r.Revenue,
			Budget:  r.Budget,
			Profit:  r.Revenue - r.Budget,
		})
	}
	for _, g := range genres {
		report.Genres = append(report.Genres, primary.GenreStats{
			Name:       g.Name,
			Movies:     g.Movies,
			AvgVote:    quality.Round2(g.AvgVote),
			AvgRevenue: quality.Round2(g.AvgRevenue),
			AvgBudget:  quality.Round2(g.AvgBudget),
		})
	}
	for _, t := range trends {
		report.Trends = append(report.Trends, primary.YearTrend{
			Year:       t.Year,
			Movies:     t.Movies,
			AvgBudget:  quality.Round2(t.AvgBudget),
			AvgRevenue: quality.Round2(t.AvgRevenue),
			AvgVote:    quality.Round2(t.AvgVote),
		})
	}

	s.logger.Info("usage report generated",
		zap.Int64("movies", report.General.TotalMovies),
		zap.Int("genres", len(report.Genres)),
		zap.Int("years", len(report.Trends)),
	)

	return report, nil
}
