package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/moviedq/internal/ports/secondary"
)

// RetentionRepository implements secondary.RetentionRepository with SQLite.
type RetentionRepository struct {
	q Querier
}

var _ secondary.RetentionRepository = (*RetentionRepository)(nil)

// NewRetentionRepository creates a new SQLite retention repository.
func NewRetentionRepository(q Querier) *RetentionRepository {
	return &RetentionRepository{q: q}
}

// Identity of an archived record: its external id, or (title, release_date)
// when the record has none.
const copyToArchiveSQL = `INSERT OR IGNORE INTO movies_archive (original_id, title, release_date, archived_at)
	SELECT m.external_id, m.title, m.release_date, ?
	FROM movies m
	WHERE m.release_date < ?
	AND NOT EXISTS (
		SELECT 1 FROM movies_archive a
		WHERE (m.external_id IS NOT NULL AND a.original_id = m.external_id)
		OR (m.external_id IS NULL AND a.original_id IS NULL
			AND a.title IS m.title AND a.release_date = m.release_date)
	)`

// duplicateIDs selects every titled row that is not the lowest id of its
// (title, year) group. Untitled rows are never duplicates of each other.
const duplicateIDs = `SELECT id FROM movies
	WHERE title IS NOT NULL AND title <> ''
	AND id NOT IN (
		SELECT MIN(id) FROM movies
		WHERE title IS NOT NULL AND title <> ''
		GROUP BY title, strftime('%Y', release_date)
	)`

// CopyToArchive copies records released before cutoff that are not archived yet.
func (r *RetentionRepository) CopyToArchive(ctx context.Context, cutoff, archivedAt time.Time) (int64, error) {
	result, err := r.q.ExecContext(ctx, copyToArchiveSQL, formatTimestamp(archivedAt), cutoff.Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to copy movies to archive: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// DeleteReleasedBefore deletes records released before cutoff along with their tag links.
func (r *RetentionRepository) DeleteReleasedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.deleteMovies(ctx, "SELECT id FROM movies WHERE release_date < ?", cutoff.Format(dateLayout))
}

// DeleteDuplicates removes every (title, release year) duplicate except the lowest id.
func (r *RetentionRepository) DeleteDuplicates(ctx context.Context) (int64, error) {
	return r.deleteMovies(ctx, duplicateIDs)
}

// deleteMovies deletes the movies selected by idQuery, links first.
func (r *RetentionRepository) deleteMovies(ctx context.Context, idQuery string, args ...any) (int64, error) {
	for _, kind := range secondary.TagKinds {
		t := tagTables[kind]
		query := fmt.Sprintf("DELETE FROM %s WHERE movie_id IN (%s)", t.links, idQuery)
		if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("failed to delete %s links: %w", kind, err)
		}
	}

	result, err := r.q.ExecContext(ctx, "DELETE FROM movies WHERE id IN ("+idQuery+")", args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete movies: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// PruneAuditBefore deletes audit entries written before threshold.
func (r *RetentionRepository) PruneAuditBefore(ctx context.Context, threshold time.Time) (int64, error) {
	result, err := r.q.ExecContext(ctx, "DELETE FROM audit_log WHERE timestamp < ?", formatTimestamp(threshold))
	if err != nil {
		return 0, fmt.Errorf("failed to prune audit log: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// ListArchived retrieves archive rows ordered by id.
func (r *RetentionRepository) ListArchived(ctx context.Context) ([]*secondary.ArchivedRecord, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT id, original_id, title, release_date, archived_at FROM movies_archive ORDER BY id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ArchivedRecord
	for rows.Next() {
		var (
			originalID  sql.NullInt64
			title       sql.NullString
			releaseDate sql.NullTime
			archivedAt  time.Time
		)

		record := &secondary.ArchivedRecord{}
		if err := rows.Scan(&record.ID, &originalID, &title, &releaseDate, &archivedAt); err != nil {
			return nil, fmt.Errorf("failed to scan archive row: %w", err)
		}

		record.OriginalID = int64Ptr(originalID)
		record.Title = title.String
		record.ReleaseDate = timePtr(releaseDate)
		record.ArchivedAt = archivedAt

		records = append(records, record)
	}

	return records, rows.Err()
}
