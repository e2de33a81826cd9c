package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/moviedq/internal/core/normalize"
	"github.com/example/moviedq/internal/ports/primary"
	"github.com/example/moviedq/internal/ports/secondary"
)

// IngestServiceImpl implements the IngestService interface.
type IngestServiceImpl struct {
	store  secondary.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewIngestService creates a new IngestService with injected dependencies.
func NewIngestService(store secondary.Store, logger *zap.Logger, now func() time.Time) *IngestServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &IngestServiceImpl{
		store:  store,
		logger: logger,
		now:    now,
	}
}

// Normalize cleans every row, creates the discovered tags, upserts the records
// and links them to their tags, all in one transaction.
func (s *IngestServiceImpl) Normalize(ctx context.Context, rows []primary.RawRow) (*primary.NormalizationResult, error) {
	if len(rows) == 0 {
		return nil, &primary.IngestionError{Reason: "input has no rows"}
	}

	raws := make([]map[string]any, len(rows))
	for i, row := range rows {
		raws[i] = row
	}

	movies, err := normalize.Rows(raws)
	if errors.Is(err, normalize.ErrNoRecognizedColumns) {
		return nil, &primary.IngestionError{Reason: "input has no identifiable schema", Err: err}
	}
	if err != nil {
		return nil, &primary.IngestionError{Reason: "failed to normalize rows", Err: err}
	}

	tags := normalize.CollectTags(movies)
	result := &primary.NormalizationResult{
		RowsRead:         len(rows),
		GenresDiscovered: len(tags.Genres),
		KeywordsFound:    len(tags.Keywords),
	}
	for i := range movies {
		result.Coerced += movies[i].Coerced
	}

	start := s.now()
	now := start.UTC()

	err = s.store.Transaction(ctx, func(tx secondary.Tx) error {
		// Tags are created only here; linking below never fabricates one.
		genresCreated, err := tx.Tags().EnsureTags(ctx, secondary.TagGenre, tags.Genres)
		if err != nil {
			return err
		}
		keywordsCreated, err := tx.Tags().EnsureTags(ctx, secondary.TagKeyword, tags.Keywords)
		if err != nil {
			return err
		}
		result.GenresCreated = genresCreated
		result.KeywordsCreated = keywordsCreated

		genreIDs, err := tx.Tags().ResolveIDs(ctx, secondary.TagGenre, tags.Genres)
		if err != nil {
			return err
		}
		keywordIDs, err := tx.Tags().ResolveIDs(ctx, secondary.TagKeyword, tags.Keywords)
		if err != nil {
			return err
		}

		for i := range movies {
			m := &movies[i]

			movieID, replaced, err := s.upsert(ctx, tx, m, now)
			if err != nil {
				return err
			}
			if replaced {
				result.RecordsReplaced++
			} else {
				result.RecordsInserted++
			}

			if err := s.link(ctx, tx, secondary.TagGenre, movieID, m.Genres, genreIDs, result); err != nil {
				return err
			}
			if err := s.link(ctx, tx, secondary.TagKeyword, movieID, m.Keywords, keywordIDs, result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, &primary.StorageError{Op: "ingest", Err: err}
	}

	result.RecordsWritten = result.RecordsInserted + result.RecordsReplaced

	s.logger.Info("ingestion completed",
		zap.Int("rows", result.RowsRead),
		zap.Int("inserted", result.RecordsInserted),
		zap.Int("replaced", result.RecordsReplaced),
		zap.Int("genres_created", result.GenresCreated),
		zap.Int("keywords_created", result.KeywordsCreated),
		zap.Int("links_created", result.LinksCreated),
		zap.Int("links_skipped", result.LinksSkipped),
		zap.Int("coerced", result.Coerced),
		zap.Duration("elapsed", s.now().Sub(start)),
	)

	return result, nil
}

// upsert matches on external id and replaces in place, otherwise inserts.
// Records without an external id are always inserted.
func (s *IngestServiceImpl) upsert(ctx context.Context, tx secondary.Tx, m *normalize.Movie, now time.Time) (int64, bool, error) {
	record := movieToRecord(m)

	if m.ExternalID != nil {
		existing, err := tx.Movies().FindByExternalID(ctx, *m.ExternalID)
		if err != nil {
			return 0, false, err
		}
		if existing != nil {
			if err := tx.Movies().Replace(ctx, existing.ID, record, now); err != nil {
				return 0, false, err
			}
			if err := tx.Tags().UnlinkAll(ctx, existing.ID); err != nil {
				return 0, false, err
			}

			record.ID = existing.ID
			record.CreatedAt, record.UpdatedAt = now, now
			if err := s.audit(ctx, tx, secondary.AuditUpdate, existing.ID, existing, record, now); err != nil {
				return 0, false, err
			}
			return existing.ID, true, nil
		}
	}

	id, err := tx.Movies().Insert(ctx, record, now)
	if err != nil {
		return 0, false, err
	}

	record.ID = id
	record.CreatedAt, record.UpdatedAt = now, now
	if err := s.audit(ctx, tx, secondary.AuditInsert, id, nil, record, now); err != nil {
		return 0, false, err
	}
	return id, false, nil
}

func (s *IngestServiceImpl) link(ctx context.Context, tx secondary.Tx, kind secondary.TagKind, movieID int64, names []string, ids map[string]int64, result *primary.NormalizationResult) error {
	for _, name := range names {
		tagID, ok := ids[name]
		if !ok {
			result.LinksSkipped++
			continue
		}
		created, err := tx.Tags().Link(ctx, kind, movieID, tagID)
		if err != nil {
			return err
		}
		if created {
			result.LinksCreated++
		}
	}
	return nil
}

func (s *IngestServiceImpl) audit(ctx context.Context, tx secondary.Tx, op secondary.AuditOperation, id int64, before, after *secondary.MovieRecord, now time.Time) error {
	entry := &secondary.AuditRecord{
		EntityName: "movies",
		Operation:  op,
		TargetID:   &id,
		Timestamp:  now,
	}
	if before != nil {
		entry.Before = newMovieSnapshot(before)
	}
	if after != nil {
		entry.After = newMovieSnapshot(after)
	}

	if _, err := tx.Audit().Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to audit %s of movie %d: %w", op, id, err)
	}
	return nil
}

func movieToRecord(m *normalize.Movie) *secondary.MovieRecord {
	return &secondary.MovieRecord{
		ExternalID:       m.ExternalID,
		Title:            m.Title,
		OriginalTitle:    m.OriginalTitle,
		Overview:         m.Overview,
		ReleaseDate:      m.ReleaseDate,
		Budget:           m.Budget,
		Revenue:          m.Revenue,
		Runtime:          m.Runtime,
		VoteAverage:      m.VoteAverage,
		VoteCount:        m.VoteCount,
		Popularity:       m.Popularity,
		OriginalLanguage: m.OriginalLanguage,
		Status:           m.Status,
		Tagline:          m.Tagline,
		Homepage:         m.Homepage,
	}
}

// movieSnapshot is the audit payload shape of a movie.
type movieSnapshot struct {
	ID               int64   `json:"id"`
	ExternalID       *int64  `json:"external_id"`
	Title            string  `json:"title,omitempty"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	Budget           int64   `json:"budget"`
	Revenue          int64   `json:"revenue"`
	Runtime          float64 `json:"runtime"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Status           string  `json:"status,omitempty"`
	UpdatedAt        string  `json:"updated_at,omitempty"`
}

func newMovieSnapshot(r *secondary.MovieRecord) movieSnapshot {
	snap := movieSnapshot{
		ID:               r.ID,
		ExternalID:       r.ExternalID,
		Title:            r.Title,
		OriginalTitle:    r.OriginalTitle,
		Budget:           r.Budget,
		Revenue:          r.Revenue,
		Runtime:          r.Runtime,
		VoteAverage:      r.VoteAverage,
		VoteCount:        r.VoteCount,
		Popularity:       r.Popularity,
		OriginalLanguage: r.OriginalLanguage,
		Status:           r.Status,
	}
	if r.ReleaseDate != nil {
		snap.ReleaseDate = r.ReleaseDate.Format("2006-01-02")
	}
	if !r.UpdatedAt.IsZero() {
		snap.UpdatedAt = r.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return snap
}
