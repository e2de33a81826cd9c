package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/moviedq/internal/ports/secondary"
)

// MovieRepository implements secondary.MovieRepository with SQLite.
type MovieRepository struct {
	q Querier
}

var _ secondary.MovieRepository = (*MovieRepository)(nil)

// NewMovieRepository creates a new SQLite movie repository.
func NewMovieRepository(q Querier) *MovieRepository {
	return &MovieRepository{q: q}
}

const movieSelect = `SELECT id, external_id, title, original_title, overview, release_date,
	budget, revenue, runtime, vote_average, vote_count, popularity,
	original_language, status, tagline, homepage, created_at, updated_at
	FROM movies`

// FindByExternalID returns the lowest-id record carrying externalID, or nil.
func (r *MovieRepository) FindByExternalID(ctx context.Context, externalID int64) (*secondary.MovieRecord, error) {
	row := r.q.QueryRowContext(ctx, movieSelect+" WHERE external_id = ? ORDER BY id LIMIT 1", externalID)
	record, err := scanMovie(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find movie by external id: %w", err)
	}
	return record, nil
}

// GetByID retrieves a record by surrogate id.
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*secondary.MovieRecord, error) {
	row := r.q.QueryRowContext(ctx, movieSelect+" WHERE id = ?", id)
	record, err := scanMovie(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("movie %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return record, nil
}

// Insert stores a new record and returns its surrogate id.
func (r *MovieRepository) Insert(ctx context.Context, movie *secondary.MovieRecord, now time.Time) (int64, error) {
	args := movieArgs(movie)
	stamp := formatTimestamp(now)
	args = append(args, stamp, stamp)

	result, err := r.q.ExecContext(ctx,
		`INSERT INTO movies (external_id, title, original_title, overview, release_date,
			budget, revenue, runtime, vote_average, vote_count, popularity,
			original_language, status, tagline, homepage, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert movie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read movie id: %w", err)
	}
	return id, nil
}

// Replace overwrites record id wholly. Both timestamps are reset to now.
func (r *MovieRepository) Replace(ctx context.Context, id int64, movie *secondary.MovieRecord, now time.Time) error {
	args := movieArgs(movie)
	stamp := formatTimestamp(now)
	args = append(args, stamp, stamp, id)

	result, err := r.q.ExecContext(ctx,
		`UPDATE movies SET external_id = ?, title = ?, original_title = ?, overview = ?, release_date = ?,
			budget = ?, revenue = ?, runtime = ?, vote_average = ?, vote_count = ?, popularity = ?,
			original_language = ?, status = ?, tagline = ?, homepage = ?, created_at = ?, updated_at = ?
		WHERE id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to replace movie: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("movie %d not found", id)
	}
	return nil
}

// Count returns the number of live records.
func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

// movieArgs returns the 15 data columns in insert order, clamped to the stored ranges.
func movieArgs(m *secondary.MovieRecord) []any {
	return []any{
		nullInt64(m.ExternalID),
		nullString(m.Title),
		nullString(m.OriginalTitle),
		nullString(m.Overview),
		nullDate(m.ReleaseDate),
		nonNegativeInt(m.Budget),
		nonNegativeInt(m.Revenue),
		nonNegativeFloat(m.Runtime),
		clampVote(m.VoteAverage),
		nonNegativeInt(m.VoteCount),
		nonNegativeFloat(m.Popularity),
		nullString(m.OriginalLanguage),
		nullString(m.Status),
		nullString(m.Tagline),
		nullString(m.Homepage),
	}
}

func scanMovie(row *sql.Row) (*secondary.MovieRecord, error) {
	var (
		externalID                          sql.NullInt64
		title, originalTitle, overview      sql.NullString
		language, status, tagline, homepage sql.NullString
		releaseDate, createdAt, updatedAt   sql.NullTime
	)

	record := &secondary.MovieRecord{}
	err := row.Scan(
		&record.ID, &externalID, &title, &originalTitle, &overview, &releaseDate,
		&record.Budget, &record.Revenue, &record.Runtime, &record.VoteAverage, &record.VoteCount, &record.Popularity,
		&language, &status, &tagline, &homepage, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.ExternalID = int64Ptr(externalID)
	record.Title = title.String
	record.OriginalTitle = originalTitle.String
	record.Overview = overview.String
	record.ReleaseDate = timePtr(releaseDate)
	record.OriginalLanguage = language.String
	record.Status = status.String
	record.Tagline = tagline.String
	record.Homepage = homepage.String
	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return record, nil
}
