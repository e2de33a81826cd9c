// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"io"
	"time"
)

// Store is the shared relational substrate. Every multi-step write runs
// inside Transaction; the transaction commits when fn returns nil and
// rolls back otherwise.
type Store interface {
	// Transaction runs fn inside one scoped transaction.
	Transaction(ctx context.Context, fn func(tx Tx) error) error

	// AppendAudit writes one audit entry outside any caller transaction.
	AppendAudit(ctx context.Context, entry *AuditRecord) (int64, error)
}

// Tx exposes the repositories bound to one open transaction.
type Tx interface {
	Movies() MovieRepository
	Tags() TagRepository
	Retention() RetentionRepository
	Audit() AuditRepository

	// Dump writes a logical SQL dump of every table as seen by this transaction.
	Dump(ctx context.Context, w io.Writer) error
}

// MovieRepository persists Records. Implementations clamp numeric fields
// at the write boundary.
type MovieRepository interface {
	// FindByExternalID returns the live record with the given source id, or nil.
	FindByExternalID(ctx context.Context, externalID int64) (*MovieRecord, error)

	// GetByID retrieves a record by surrogate id.
	GetByID(ctx context.Context, id int64) (*MovieRecord, error)

	// Insert stores a new record stamped with now and returns its surrogate id.
	Insert(ctx context.Context, movie *MovieRecord, now time.Time) (int64, error)

	// Replace overwrites every column of record id, including both timestamps.
	Replace(ctx context.Context, id int64, movie *MovieRecord, now time.Time) error

	// Count returns the number of live records.
	Count(ctx context.Context) (int64, error)
}

// MovieRecord represents a movie as stored in persistence.
// Empty strings are stored as NULL.
type MovieRecord struct {
	ID               int64
	ExternalID       *int64
	Title            string
	OriginalTitle    string
	Overview         string
	ReleaseDate      *time.Time
	Budget           int64
	Revenue          int64
	Runtime          float64
	VoteAverage      float64
	VoteCount        int64
	Popularity       float64
	OriginalLanguage string
	Status           string
	Tagline          string
	Homepage         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TagKind selects one of the two tag variants.
type TagKind string

const (
	TagGenre   TagKind = "genre"
	TagKeyword TagKind = "keyword"
)

// TagKinds lists every tag variant.
var TagKinds = []TagKind{TagGenre, TagKeyword}

// TagRepository persists Tags and RecordTag links.
type TagRepository interface {
	// EnsureTags inserts names that are absent and leaves existing ones untouched.
	// It returns the number of newly created tags.
	EnsureTags(ctx context.Context, kind TagKind, names []string) (int, error)

	// ResolveIDs looks up existing tags by name. Missing names are absent from the map.
	ResolveIDs(ctx context.Context, kind TagKind, names []string) (map[string]int64, error)

	// Link records that movieID exhibits tagID. Returns false when the link already existed.
	Link(ctx context.Context, kind TagKind, movieID, tagID int64) (bool, error)

	// UnlinkAll removes every tag link of a record, for all kinds.
	UnlinkAll(ctx context.Context, movieID int64) error

	// List returns tag names of a kind ordered by name.
	List(ctx context.Context, kind TagKind) ([]string, error)

	// LinkedNames returns the tag names linked to a record.
	LinkedNames(ctx context.Context, kind TagKind, movieID int64) ([]string, error)
}

// RetentionRepository holds the destructive retention operations.
type RetentionRepository interface {
	// CopyToArchive copies records released before cutoff into the archive,
	// skipping records whose identity is already archived.
	CopyToArchive(ctx context.Context, cutoff, archivedAt time.Time) (int64, error)

	// DeleteReleasedBefore deletes live records released before cutoff, with their links.
	DeleteReleasedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// PruneAuditBefore deletes audit entries older than threshold.
	PruneAuditBefore(ctx context.Context, threshold time.Time) (int64, error)

	// DeleteDuplicates keeps the lowest id of each (title, release year) group.
	DeleteDuplicates(ctx context.Context) (int64, error)

	// ListArchived returns archive rows ordered by id.
	ListArchived(ctx context.Context) ([]*ArchivedRecord, error)
}

// ArchivedRecord is the reduced, immutable snapshot of an archived Record.
type ArchivedRecord struct {
	ID          int64
	OriginalID  *int64
	Title       string
	ReleaseDate *time.Time
	ArchivedAt  time.Time
}

// AuditOperation enumerates audit entry kinds.
type AuditOperation string

const (
	AuditInsert             AuditOperation = "INSERT"
	AuditUpdate             AuditOperation = "UPDATE"
	AuditDelete             AuditOperation = "DELETE"
	AuditRetentionApplied   AuditOperation = "RETENTION_APPLIED"
	AuditLifecycleCompleted AuditOperation = "LIFECYCLE_COMPLETED"
)

// AuditRepository persists audit entries.
type AuditRepository interface {
	// Append writes an entry. Before/After are serialized as JSON; a nil payload is stored as NULL.
	// RunID defaults to the run id carried on ctx.
	Append(ctx context.Context, entry *AuditRecord) (int64, error)

	// List returns the most recent entries first.
	List(ctx context.Context, limit int) ([]*AuditRecord, error)

	// Count returns the number of entries.
	Count(ctx context.Context) (int64, error)
}

// AuditRecord represents an audit entry as stored in persistence.
// On read, Before and After hold the raw JSON text (or nil).
type AuditRecord struct {
	ID         int64
	EntityName string
	Operation  AuditOperation
	TargetID   *int64
	Before     any
	After      any
	RunID      string
	Timestamp  time.Time
}
