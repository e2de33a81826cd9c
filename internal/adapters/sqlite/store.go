// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/example/moviedq/internal/ports/secondary"
)

// Stored date and timestamp layouts. Both sort lexicographically.
const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements secondary.Store over one SQLite handle.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ secondary.Store = (*Store)(nil)

// NewStore creates a store over an open database handle.
func NewStore(db *sql.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Query runs a read query outside any transaction.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	return rows, nil
}

// Exec runs a statement outside any transaction.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to exec: %w", err)
	}
	return result, nil
}

// Transaction runs fn in one transaction. It commits when fn returns nil and
// rolls back when fn returns an error or panics.
func (s *Store) Transaction(ctx context.Context, fn func(tx secondary.Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&txScope{q: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			s.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AppendAudit writes one audit entry in autocommit mode.
func (s *Store) AppendAudit(ctx context.Context, entry *secondary.AuditRecord) (int64, error) {
	return NewAuditRepository(s.db).Append(ctx, entry)
}

// Dump writes a logical dump of the current store state.
func (s *Store) Dump(ctx context.Context, w io.Writer) error {
	return dump(ctx, s.db, w)
}

// txScope binds repositories to one open transaction.
type txScope struct {
	q Querier
}

var _ secondary.Tx = (*txScope)(nil)

func (t *txScope) Movies() secondary.MovieRepository { return NewMovieRepository(t.q) }
func (t *txScope) Tags() secondary.TagRepository { return NewTagRepository(t.q) }
func (t *txScope) Retention() secondary.RetentionRepository { return NewRetentionRepository(t.q) }
func (t *txScope) Audit() secondary.AuditRepository { return NewAuditRepository(t.q) }

func (t *txScope) Dump(ctx context.Context, w io.Writer) error {
	return dump(ctx, t.q, w)
}

// nullString stores empty strings as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dateLayout), Valid: true}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nonNegativeInt(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func nonNegativeFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func clampVote(v float64) float64 {
	v = nonNegativeFloat(v)
	if v > 10 {
		return 10
	}
	return v
}
