package sqlite

import (
	"context"
	"fmt"

	"github.com/example/moviedq/internal/ports/secondary"
)

// tagTable names the tables backing one tag variant.
type tagTable struct {
	tags   string
	links  string
	column string
}

// tagTables is the only source of table names used in tag queries.
var tagTables = map[secondary.TagKind]tagTable{
	secondary.TagGenre:   {tags: "genres", links: "movie_genres", column: "genre_id"},
	secondary.TagKeyword: {tags: "keywords", links: "movie_keywords", column: "keyword_id"},
}

func tableFor(kind secondary.TagKind) (tagTable, error) {
	t, ok := tagTables[kind]
	if !ok {
		return tagTable{}, fmt.Errorf("unknown tag kind %q", kind)
	}
	return t, nil
}

// TagRepository implements secondary.TagRepository with SQLite.
type TagRepository struct {
	q Querier
}

var _ secondary.TagRepository = (*TagRepository)(nil)

// NewTagRepository creates a new SQLite tag repository.
func NewTagRepository(q Querier) *TagRepository {
	return &TagRepository{q: q}
}

// EnsureTags inserts names that do not exist yet. Existing rows are never touched.
func (r *TagRepository) EnsureTags(ctx context.Context, kind secondary.TagKind, names []string) (int, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("INSERT OR IGNORE INTO %s (name) VALUES (?)", t.tags)
	created := 0
	for _, name := range names {
		if name == "" {
			continue
		}
		result, err := r.q.ExecContext(ctx, query, name)
		if err != nil {
			return created, fmt.Errorf("failed to insert %s %q: %w", kind, name, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			created++
		}
	}
	return created, nil
}

// ResolveIDs returns the ids of the requested names that exist.
func (r *TagRepository) ResolveIDs(ctx context.Context, kind secondary.TagKind, names []string) (map[string]int64, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	rows, err := r.q.QueryContext(ctx, fmt.Sprintf("SELECT id, name FROM %s", t.tags))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s ids: %w", kind, err)
	}
	defer rows.Close()

	ids := make(map[string]int64, len(names))
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
		}
		if wanted[name] {
			ids[name] = id
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to resolve %s ids: %w", kind, err)
	}

	return ids, nil
}

// Link creates a movie-tag link. Returns false if it already existed.
func (r *TagRepository) Link(ctx context.Context, kind secondary.TagKind, movieID, tagID int64) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	result, err := r.q.ExecContext(ctx,
		fmt.Sprintf("INSERT OR IGNORE INTO %s (movie_id, %s) VALUES (?, ?)", t.links, t.column),
		movieID, tagID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to link %s %d to movie %d: %w", kind, tagID, movieID, err)
	}

	n, _ := result.RowsAffected()
	return n > 0, nil
}

// UnlinkAll removes every tag link of a movie.
func (r *TagRepository) UnlinkAll(ctx context.Context, movieID int64) error {
	for _, kind := range secondary.TagKinds {
		t := tagTables[kind]
		_, err := r.q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE movie_id = ?", t.links), movieID)
		if err != nil {
			return fmt.Errorf("failed to unlink %s tags of movie %d: %w", kind, movieID, err)
		}
	}
	return nil
}

// List retrieves all tag names of a kind ordered by name.
func (r *TagRepository) List(ctx context.Context, kind secondary.TagKind) ([]string, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	return r.names(ctx, fmt.Sprintf("SELECT name FROM %s ORDER BY name ASC", t.tags))
}

// LinkedNames retrieves the tag names linked to a movie, ordered by name.
func (r *TagRepository) LinkedNames(ctx context.Context, kind secondary.TagKind, movieID int64) ([]string, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT t.name FROM %s t JOIN %s l ON l.%s = t.id WHERE l.movie_id = ? ORDER BY t.name ASC",
		t.tags, t.links, t.column,
	)
	return r.names(ctx, query, movieID)
}

func (r *TagRepository) names(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
