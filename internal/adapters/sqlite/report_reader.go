package sqlite

import (
	"context"
	"fmt"

	"github.com/example/moviedq/internal/ports/secondary"
)

// ReportReader implements secondary.ReportReader with SQLite.
type ReportReader struct {
	q Querier
}

var _ secondary.ReportReader = (*ReportReader)(nil)

// NewReportReader creates a new SQLite report reader.
func NewReportReader(q Querier) *ReportReader {
	return &ReportReader{q: q}
}

// General returns catalog-wide averages, each ignoring zero values.
func (r *ReportReader) General(ctx context.Context) (*secondary.GeneralStatsRecord, error) {
	stats := &secondary.GeneralStatsRecord{}
	err := r.q.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COALESCE(AVG(CASE WHEN budget > 0 THEN budget END), 0),
			COALESCE(AVG(CASE WHEN revenue > 0 THEN revenue END), 0),
			COALESCE(AVG(CASE WHEN vote_average > 0 THEN vote_average END), 0),
			COALESCE(AVG(CASE WHEN runtime > 0 THEN runtime END), 0)
		FROM movies`,
	).Scan(&stats.TotalMovies, &stats.AvgBudget, &stats.AvgRevenue, &stats.AvgVote, &stats.AvgRuntime)
	if err != nil {
		return nil, fmt.Errorf("failed to compute general stats: %w", err)
	}
	return stats, nil
}

// TopRevenue returns the highest-grossing movies.
func (r *ReportReader) TopRevenue(ctx context.Context, limit int) ([]*secondary.RevenueRecord, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT COALESCE(title, ''), revenue, budget
		FROM movies
		WHERE revenue > 0
		ORDER BY revenue DESC, id ASC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list top revenue: %w", err)
	}
	defer rows.Close()

	var records []*secondary.RevenueRecord
	for rows.Next() {
		record := &secondary.RevenueRecord{}
		if err := rows.Scan(&record.Title, &record.Revenue, &record.Budget); err != nil {
			return nil, fmt.Errorf("failed to scan revenue row: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// GenreBreakdown aggregates rated movies per genre, most populated first.
func (r *ReportReader) GenreBreakdown(ctx context.Context) ([]*secondary.GenreStatsRecord, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT g.name, COUNT(*) AS movies,
			COALESCE(AVG(m.vote_average), 0),
			COALESCE(AVG(m.revenue), 0),
			COALESCE(AVG(m.budget), 0)
		FROM genres g
		JOIN movie_genres mg ON g.id = mg.genre_id
		JOIN movies m ON mg.movie_id = m.id
		WHERE m.vote_average > 0
		GROUP BY g.name
		ORDER BY movies DESC, g.name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate genres: %w", err)
	}
	defer rows.Close()

	var records []*secondary.GenreStatsRecord
	for rows.Next() {
		record := &secondary.GenreStatsRecord{}
		if err := rows.Scan(&record.Name, &record.Movies, &record.AvgVote, &record.AvgRevenue, &record.AvgBudget); err != nil {
			return nil, fmt.Errorf("failed to scan genre row: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// YearTrends aggregates dated movies per release year within [fromYear, toYear].
func (r *ReportReader) YearTrends(ctx context.Context, fromYear, toYear int) ([]*secondary.YearTrendRecord, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT CAST(strftime('%Y', release_date) AS INTEGER) AS year, COUNT(*),
			COALESCE(AVG(budget), 0),
			COALESCE(AVG(revenue), 0),
			COALESCE(AVG(vote_average), 0)
		FROM movies
		WHERE release_date IS NOT NULL
		AND CAST(strftime('%Y', release_date) AS INTEGER) BETWEEN ? AND ?
		GROUP BY year
		ORDER BY year ASC`,
		fromYear, toYear,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate year trends: %w", err)
	}
	defer rows.Close()

	var records []*secondary.YearTrendRecord
	for rows.Next() {
		record := &secondary.YearTrendRecord{}
		if err := rows.Scan(&record.Year, &record.Movies, &record.AvgBudget, &record.AvgRevenue, &record.AvgVote); err != nil {
			return nil, fmt.Errorf("failed to scan year trend row: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
