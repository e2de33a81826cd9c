package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/moviedq/internal/ports/secondary"
)

// completenessFields is the fixed critical field set, in report order.
var completenessFields = []string{
	"title", "release_date", "budget", "revenue", "vote_average", "overview", "original_language",
}

// completenessQueries maps each critical field to its populated-count query.
// Numeric fields count as populated when greater than zero.
var completenessQueries = map[string]string{
	"title":             "SELECT COUNT(*) FROM movies WHERE title IS NOT NULL AND title != ''",
	"release_date":      "SELECT COUNT(*) FROM movies WHERE release_date IS NOT NULL AND release_date != ''",
	"budget":            "SELECT COUNT(*) FROM movies WHERE budget > 0",
	"revenue":           "SELECT COUNT(*) FROM movies WHERE revenue > 0",
	"vote_average":      "SELECT COUNT(*) FROM movies WHERE vote_average > 0",
	"overview":          "SELECT COUNT(*) FROM movies WHERE overview IS NOT NULL AND overview != ''",
	"original_language": "SELECT COUNT(*) FROM movies WHERE original_language IS NOT NULL AND original_language != ''",
}

func init() {
	for _, field := range completenessFields {
		if _, ok := completenessQueries[field]; !ok {
			panic(fmt.Sprintf("sqlite: no completeness query for field %q", field))
		}
	}
}

// privacyTerms are matched case-insensitively against overview text.
var privacyTerms = []string{"personal", "private"}

// QualityReader implements secondary.QualityReader with SQLite.
type QualityReader struct {
	q Querier
}

var _ secondary.QualityReader = (*QualityReader)(nil)

// NewQualityReader creates a new SQLite quality reader.
func NewQualityReader(q Querier) *QualityReader {
	return &QualityReader{q: q}
}

func (r *QualityReader) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Completeness counts populated values of every critical field.
func (r *QualityReader) Completeness(ctx context.Context) (*secondary.CompletenessStats, error) {
	total, err := r.count(ctx, "SELECT COUNT(*) FROM movies")
	if err != nil {
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}

	stats := &secondary.CompletenessStats{Total: total}
	for _, field := range completenessFields {
		filled, err := r.count(ctx, completenessQueries[field])
		if err != nil {
			return nil, fmt.Errorf("failed to measure completeness of %s: %w", field, err)
		}
		stats.Fields = append(stats.Fields, secondary.FieldCount{Field: field, Filled: filled})
	}
	return stats, nil
}

// Consistency counts logical contradictions. today bounds release dates.
func (r *QualityReader) Consistency(ctx context.Context, today time.Time) (*secondary.ConsistencyStats, error) {
	stats := &secondary.ConsistencyStats{}
	err := r.q.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN revenue > 0 AND budget > 0 AND revenue < budget THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN release_date > ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN vote_average < 0 OR vote_average > 10 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN runtime > 0 AND (runtime < 1 OR runtime > 500) THEN 1 ELSE 0 END), 0)
		FROM movies`,
		today.Format(dateLayout),
	).Scan(&stats.Total, &stats.FinancialInconsistencies, &stats.FutureReleaseDates,
		&stats.InvalidRatings, &stats.InvalidDurations)
	if err != nil {
		return nil, fmt.Errorf("failed to measure consistency: %w", err)
	}
	return stats, nil
}

// Accuracy counts values inside realistic ranges, each over its applicable subset.
func (r *QualityReader) Accuracy(ctx context.Context, minReliableVotes int64) (*secondary.AccuracyStats, error) {
	stats := &secondary.AccuracyStats{}
	err := r.q.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN budget > 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN budget BETWEEN 1000 AND 500000000 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN budget > 0 AND revenue > 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN budget > 0 AND revenue > 0
				AND ((revenue - budget) * 100.0 / budget) BETWEEN -100 AND 10000 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN vote_average > 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN vote_average > 0 AND vote_count >= ? THEN 1 ELSE 0 END), 0)
		FROM movies`,
		minReliableVotes,
	).Scan(&stats.WithBudget, &stats.RealisticBudgets, &stats.WithBoth, &stats.RealisticROI,
		&stats.WithRating, &stats.ReliableRatings)
	if err != nil {
		return nil, fmt.Errorf("failed to measure accuracy: %w", err)
	}
	return stats, nil
}

// ReleaseYears returns the count of dated records per release year.
func (r *QualityReader) ReleaseYears(ctx context.Context) (map[int]int64, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT CAST(strftime('%Y', release_date) AS INTEGER) AS year, COUNT(*)
		FROM movies
		WHERE release_date IS NOT NULL AND strftime('%Y', release_date) IS NOT NULL
		GROUP BY year`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read release years: %w", err)
	}
	defer rows.Close()

	years := make(map[int]int64)
	for rows.Next() {
		var (
			year  int
			count int64
		)
		if err := rows.Scan(&year, &count); err != nil {
			return nil, fmt.Errorf("failed to scan release year: %w", err)
		}
		years[year] = count
	}
	return years, rows.Err()
}

// Integrity measures tag-link coverage and external id duplication.
func (r *QualityReader) Integrity(ctx context.Context) (*secondary.IntegrityStats, error) {
	stats := &secondary.IntegrityStats{}
	err := r.q.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM movies),
			(SELECT COUNT(DISTINCT mg.movie_id) FROM movie_genres mg JOIN movies m ON m.id = mg.movie_id),
			(SELECT COUNT(DISTINCT mk.movie_id) FROM movie_keywords mk JOIN movies m ON m.id = mk.movie_id),
			(SELECT COUNT(external_id) - COUNT(DISTINCT external_id) FROM movies WHERE external_id IS NOT NULL)`,
	).Scan(&stats.Total, &stats.WithGenres, &stats.WithKeywords, &stats.DuplicateIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to measure integrity: %w", err)
	}
	return stats, nil
}

// Uniqueness measures exact-title and (title, year) duplication.
func (r *QualityReader) Uniqueness(ctx context.Context) (*secondary.UniquenessStats, error) {
	stats := &secondary.UniquenessStats{}
	err := r.q.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM movies),
			(SELECT COUNT(DISTINCT title) FROM movies WHERE title IS NOT NULL),
			(SELECT COUNT(*) FROM (
				SELECT 1 FROM movies
				WHERE title IS NOT NULL AND release_date IS NOT NULL
				GROUP BY title, strftime('%Y', release_date)
				HAVING COUNT(*) > 1
			))`,
	).Scan(&stats.Total, &stats.UniqueTitles, &stats.TitleYearGroupsDuped)
	if err != nil {
		return nil, fmt.Errorf("failed to measure uniqueness: %w", err)
	}

	rows, err := r.q.QueryContext(ctx,
		"SELECT COUNT(*) FROM movies WHERE title IS NOT NULL GROUP BY title HAVING COUNT(*) > 1",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read duplicate titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var size int64
		if err := rows.Scan(&size); err != nil {
			return nil, fmt.Errorf("failed to scan duplicate title group: %w", err)
		}
		stats.TitleGroupSizes = append(stats.TitleGroupSizes, size)
	}
	return stats, rows.Err()
}

// Compliance measures traceability and records older than horizon.
func (r *QualityReader) Compliance(ctx context.Context, horizon time.Time) (*secondary.ComplianceStats, error) {
	stats := &secondary.ComplianceStats{}
	err := r.q.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COUNT(external_id),
			COUNT(DISTINCT external_id),
			COALESCE(SUM(CASE WHEN release_date < ? THEN 1 ELSE 0 END), 0)
		FROM movies`,
		horizon.Format(dateLayout),
	).Scan(&stats.Total, &stats.Traceable, &stats.UniqueIdentifiers, &stats.OlderThanHorizon)
	if err != nil {
		return nil, fmt.Errorf("failed to measure compliance: %w", err)
	}

	var (
		clauses []string
		args    []any
	)
	for _, term := range privacyTerms {
		clauses = append(clauses, "overview LIKE ?")
		args = append(args, "%"+term+"%")
	}
	query := "SELECT COUNT(*) FROM movies WHERE " + strings.Join(clauses, " OR ")
	if stats.PotentialPersonalData, err = r.count(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to scan for personal data: %w", err)
	}
	return stats, nil
}

// Governance measures catalog metadata, lineage and taxonomy coverage.
func (r *QualityReader) Governance(ctx context.Context) (*secondary.GovernanceStats, error) {
	stats := &secondary.GovernanceStats{}
	err := r.q.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN title IS NOT NULL AND title != '' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN overview IS NOT NULL AND overview != '' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN original_language IS NOT NULL AND original_language != '' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN release_date IS NOT NULL THEN 1 ELSE 0 END), 0),
			COUNT(external_id),
			(SELECT COUNT(DISTINCT mg.movie_id) FROM movie_genres mg JOIN movies m ON m.id = mg.movie_id)
		FROM movies`,
	).Scan(&stats.Total, &stats.HasTitle, &stats.HasDescription, &stats.HasLanguage, &stats.HasDate,
		&stats.Traceable, &stats.Classified)
	if err != nil {
		return nil, fmt.Errorf("failed to measure governance: %w", err)
	}
	return stats, nil
}
