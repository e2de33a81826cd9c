package primary

import "context"

// ReportService defines the primary port for catalog usage reports.
type ReportService interface {
	Generate(ctx context.Context) (*UsageReport, error)
}

// UsageReport groups the catalog analyses produced after ingestion.
type UsageReport struct {
	General    GeneralStats   `json:"general"`
	TopRevenue []RevenueEntry `json:"top_revenue"`
	Genres     []GenreStats   `json:"genres"`
	Trends     []YearTrend    `json:"trends"`
}

// GeneralStats holds catalog-wide averages; zero values are excluded from averages.
type GeneralStats struct {
	TotalMovies int64   `json:"total_movies"`
	AvgBudget   float64 `json:"avg_budget"`
	AvgRevenue  float64 `json:"avg_revenue"`
	AvgVote     float64 `json:"avg_vote"`
	AvgRuntime  float64 `json:"avg_runtime"`
}

// RevenueEntry is one row of the top-revenue ranking.
type RevenueEntry struct {
	Title   string `json:"title"`
	Revenue int64  `json:"revenue"`
	Budget  int64  `json:"budget"`
	Profit  int64  `json:"profit"`
}

// GenreStats aggregates rated movies per genre.
type GenreStats struct {
	Name       string  `json:"name"`
	Movies     int64   `json:"movies"`
	AvgVote    float64 `json:"avg_vote"`
	AvgRevenue float64 `json:"avg_revenue"`
	AvgBudget  float64 `json:"avg_budget"`
}

// YearTrend aggregates movies per release year.
type YearTrend struct {
	Year       int     `json:"year"`
	Movies     int64   `json:"movies"`
	AvgBudget  float64 `json:"avg_budget"`
	AvgRevenue float64 `json:"avg_revenue"`
	AvgVote    float64 `json:"avg_vote"`
}
