package secondary

import (
	"context"
	"time"
)

// QualityReader gathers the read-only aggregates that the quality scorers need.
// Every method reflects current store state and never mutates it.
type QualityReader interface {
	Completeness(ctx context.Context) (*CompletenessStats, error)
	Consistency(ctx context.Context, today time.Time) (*ConsistencyStats, error)
	Accuracy(ctx context.Context, minReliableVotes int64) (*AccuracyStats, error)
	ReleaseYears(ctx context.Context) (map[int]int64, error)
	Integrity(ctx context.Context) (*IntegrityStats, error)
	Uniqueness(ctx context.Context) (*UniquenessStats, error)
	Compliance(ctx context.Context, horizon time.Time) (*ComplianceStats, error)
	Governance(ctx context.Context) (*GovernanceStats, error)
}

// FieldCount is the number of populated values of one field.
type FieldCount struct {
	Field  string
	Filled int64
}

// CompletenessStats holds populated counts for the critical fields, in a fixed order.
type CompletenessStats struct {
	Total  int64
	Fields []FieldCount
}

// ConsistencyStats counts logical contradictions.
type ConsistencyStats struct {
	Total                    int64
	FinancialInconsistencies int64
	FutureReleaseDates       int64
	InvalidRatings           int64
	InvalidDurations         int64
}

// AccuracyStats holds the denominators and hits of the accuracy sub-ratios.
type AccuracyStats struct {
	WithBudget       int64
	RealisticBudgets int64
	WithBoth         int64
	RealisticROI     int64
	WithRating       int64
	ReliableRatings  int64
}

// IntegrityStats holds relationship coverage and identifier duplication.
type IntegrityStats struct {
	Total        int64
	WithGenres   int64
	WithKeywords int64
	DuplicateIDs int64
}

// UniquenessStats describes title duplication.
type UniquenessStats struct {
	Total                int64
	UniqueTitles         int64
	TitleGroupSizes      []int64 // sizes of exact-title groups with more than one row
	TitleYearGroupsDuped int64
}

// ComplianceStats holds traceability and retention-horizon counts.
type ComplianceStats struct {
	Total                 int64
	Traceable             int64
	UniqueIdentifiers     int64
	OlderThanHorizon      int64
	PotentialPersonalData int64
}

// GovernanceStats holds catalog metadata, lineage and taxonomy counts.
type GovernanceStats struct {
	Total          int64
	HasTitle       int64
	HasDescription int64
	HasLanguage    int64
	HasDate        int64
	Traceable      int64
	Classified     int64
}

// ReportReader gathers usage-report aggregates.
type ReportReader interface {
	General(ctx context.Context) (*GeneralStatsRecord, error)
	TopRevenue(ctx context.Context, limit int) ([]*RevenueRecord, error)
	GenreBreakdown(ctx context.Context) ([]*GenreStatsRecord, error)
	YearTrends(ctx context.Context, fromYear, toYear int) ([]*YearTrendRecord, error)
}

// GeneralStatsRecord holds catalog-wide averages over non-zero values.
type GeneralStatsRecord struct {
	TotalMovies int64
	AvgBudget   float64
	AvgRevenue  float64
	AvgVote     float64
	AvgRuntime  float64
}

// RevenueRecord is one top-revenue row.
type RevenueRecord struct {
	Title   string
	Revenue int64
	Budget  int64
}

// GenreStatsRecord aggregates rated movies of one genre.
type GenreStatsRecord struct {
	Name       string
	Movies     int64
	AvgVote    float64
	AvgRevenue float64
	AvgBudget  float64
}

// YearTrendRecord aggregates movies of one release year.
type YearTrendRecord struct {
	Year       int
	Movies     int64
	AvgBudget  float64
	AvgRevenue float64
	AvgVote    float64
}
