package primary

import "context"

// RawRow is one untyped input row keyed by column name.
type RawRow map[string]any

// IngestService defines the primary port for the normalization pipeline.
type IngestService interface {
	// Normalize cleans, validates and upserts rows, extracting genre and keyword tags.
	Normalize(ctx context.Context, rows []RawRow) (*NormalizationResult, error)
}

// NormalizationResult summarizes one ingestion cycle.
type NormalizationResult struct {
	RowsRead         int `json:"rows_read"`
	RecordsWritten   int `json:"records_written"`
	RecordsInserted  int `json:"records_inserted"`
	RecordsReplaced  int `json:"records_replaced"`
	GenresDiscovered int `json:"genres_discovered"`
	GenresCreated    int `json:"genres_created"`
	KeywordsFound    int `json:"keywords_discovered"`
	KeywordsCreated  int `json:"keywords_created"`
	LinksCreated     int `json:"links_created"`
	LinksSkipped     int `json:"links_skipped"`
	Coerced          int `json:"coerced_values"`
}

// TagsDiscovered returns the number of distinct tag tokens seen across all rows.
func (r *NormalizationResult) TagsDiscovered() int {
	return r.GenresDiscovered + r.KeywordsFound
}
