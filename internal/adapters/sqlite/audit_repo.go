package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/moviedq/internal/ctxutil"
	"github.com/example/moviedq/internal/ports/secondary"
)

// AuditRepository implements secondary.AuditRepository with SQLite.
type AuditRepository struct {
	q Querier
}

var _ secondary.AuditRepository = (*AuditRepository)(nil)

// NewAuditRepository creates a new SQLite audit repository.
func NewAuditRepository(q Querier) *AuditRepository {
	return &AuditRepository{q: q}
}

// Append writes an audit entry and returns its id.
func (r *AuditRepository) Append(ctx context.Context, entry *secondary.AuditRecord) (int64, error) {
	before, err := marshalPayload(entry.Before)
	if err != nil {
		return 0, fmt.Errorf("failed to encode audit before value: %w", err)
	}
	after, err := marshalPayload(entry.After)
	if err != nil {
		return 0, fmt.Errorf("failed to encode audit after value: %w", err)
	}

	runID := entry.RunID
	if runID == "" {
		runID = ctxutil.RunIDFromContext(ctx)
	}
	timestamp := entry.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	result, err := r.q.ExecContext(ctx,
		`INSERT INTO audit_log (table_name, operation, record_id, old_values, new_values, run_id, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.EntityName, string(entry.Operation), nullInt64(entry.TargetID), before, after,
		nullString(runID), formatTimestamp(timestamp),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append audit entry: %w", err)
	}

	return result.LastInsertId()
}

// List retrieves the most recent entries first. A non-positive limit returns all.
func (r *AuditRepository) List(ctx context.Context, limit int) ([]*secondary.AuditRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT id, table_name, operation, record_id, old_values, new_values, run_id, timestamp
		FROM audit_log ORDER BY timestamp DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.AuditRecord
	for rows.Next() {
		var (
			operation     string
			recordID      sql.NullInt64
			before, after sql.NullString
			runID         sql.NullString
		)

		entry := &secondary.AuditRecord{}
		err := rows.Scan(&entry.ID, &entry.EntityName, &operation, &recordID, &before, &after, &runID, &entry.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		entry.Operation = secondary.AuditOperation(operation)
		entry.TargetID = int64Ptr(recordID)
		if before.Valid {
			entry.Before = before.String
		}
		if after.Valid {
			entry.After = after.String
		}
		entry.RunID = runID.String

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Count returns the number of audit entries.
func (r *AuditRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_log").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	return count, nil
}

func marshalPayload(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
