package quality

import (
	"fmt"
	"sort"
	"time"
)

// ---------------------------------------------------------------------------
// Completeness
// ---------------------------------------------------------------------------

// FieldFill is the populated count of one critical field.
type FieldFill struct {
	Field  string
	Filled int64
}

// CompletenessInput holds populated counts for the critical field set.
type CompletenessInput struct {
	Total  int64
	Fields []FieldFill
}

// FieldCompleteness is the per-field completeness detail.
type FieldCompleteness struct {
	Filled     int64   `json:"filled"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
}

// CompletenessDetail reports completeness per field.
type CompletenessDetail struct {
	Fields     map[string]FieldCompleteness `json:"fields"`
	WorstField string                       `json:"worst_field,omitempty"`
}

func (d *CompletenessDetail) Highlights() []string {
	if d.WorstField == "" {
		return nil
	}
	return []string{fmt.Sprintf("Least complete field: %s (%.1f%%)", d.WorstField, d.Fields[d.WorstField].Percentage)}
}

// ScoreCompleteness averages filled/total over the critical fields.
func ScoreCompleteness(in CompletenessInput) Result {
	detail := &CompletenessDetail{Fields: make(map[string]FieldCompleteness, len(in.Fields))}
	percentages := make([]float64, 0, len(in.Fields))
	worst := 101.0

	for _, f := range in.Fields {
		p := Percent(f.Filled, in.Total)
		detail.Fields[f.Field] = FieldCompleteness{Filled: f.Filled, Total: in.Total, Percentage: Round2(p)}
		percentages = append(percentages, p)
		if p < worst {
			worst = p
			detail.WorstField = f.Field
		}
	}

	score := 0.0
	if in.Total > 0 {
		score = Mean(percentages...)
	}
	return Result{Dimension: Completeness, Score: bound(score), Detail: detail}
}

// ---------------------------------------------------------------------------
// Consistency
// ---------------------------------------------------------------------------

// ConsistencyInput counts logical contradictions.
type ConsistencyInput struct {
	Total                    int64
	FinancialInconsistencies int64
	FutureReleaseDates       int64
	InvalidRatings           int64
	InvalidDurations         int64
}

// ConsistencyDetail reports contradiction counts.
type ConsistencyDetail struct {
	FinancialInconsistencies int64 `json:"financial_inconsistencies"`
	FutureReleaseDates       int64 `json:"future_release_dates"`
	InvalidRatings           int64 `json:"invalid_ratings"`
	InvalidDurations         int64 `json:"invalid_durations"`
	TotalIssues              int64 `json:"total_issues"`
}

func (d *ConsistencyDetail) Highlights() []string {
	return []string{fmt.Sprintf("Inconsistencies found: %d", d.TotalIssues)}
}

// ScoreConsistency computes 100 - issues/total*100, floored at 0.
func ScoreConsistency(in ConsistencyInput) Result {
	detail := &ConsistencyDetail{
		FinancialInconsistencies: in.FinancialInconsistencies,
		FutureReleaseDates:       in.FutureReleaseDates,
		InvalidRatings:           in.InvalidRatings,
		InvalidDurations:         in.InvalidDurations,
	}
	detail.TotalIssues = in.FinancialInconsistencies + in.FutureReleaseDates + in.InvalidRatings + in.InvalidDurations

	score := 0.0
	if in.Total > 0 {
		score = 100 - Percent(detail.TotalIssues, in.Total)
	}
	return Result{Dimension: Consistency, Score: bound(score), Detail: detail}
}

// ---------------------------------------------------------------------------
// Accuracy
// ---------------------------------------------------------------------------

// Realistic domain ranges.
const (
	MinRealisticBudget = 1_000
	MaxRealisticBudget = 500_000_000
	MinRealisticROI    = -100
	MaxRealisticROI    = 10_000
)

// AccuracyInput holds each sub-metric's applicable subset and hits.
type AccuracyInput struct {
	WithBudget       int64
	RealisticBudgets int64
	WithBoth         int64
	RealisticROI     int64
	WithRating       int64
	ReliableRatings  int64
}

// AccuracyDetail reports the three sub-ratios.
type AccuracyDetail struct {
	BudgetAccuracy float64 `json:"budget_accuracy"`
	ROIAccuracy    float64 `json:"roi_accuracy"`
	RatingAccuracy float64 `json:"rating_accuracy"`
}

func (d *AccuracyDetail) Highlights() []string {
	return []string{fmt.Sprintf("Budget %s, ROI %s, rating %s",
		pct(d.BudgetAccuracy), pct(d.ROIAccuracy), pct(d.RatingAccuracy))}
}

// ScoreAccuracy averages the three sub-ratios, each over its own denominator.
func ScoreAccuracy(in AccuracyInput) Result {
	budget := Percent(in.RealisticBudgets, in.WithBudget)
	roi := Percent(in.RealisticROI, in.WithBoth)
	rating := Percent(in.ReliableRatings, in.WithRating)

	detail := &AccuracyDetail{
		BudgetAccuracy: Round2(budget),
		ROIAccuracy:    Round2(roi),
		RatingAccuracy: Round2(rating),
	}
	return Result{Dimension: Accuracy, Score: bound(Mean(budget, roi, rating)), Detail: detail}
}

// ---------------------------------------------------------------------------
// Timeliness
// ---------------------------------------------------------------------------

// TimelinessInput holds the dated-record distribution by release year.
type TimelinessInput struct {
	YearCounts  map[int]int64
	Now         time.Time
	WindowYears int
}

// TimelinessDetail reports recency.
type TimelinessDetail struct {
	RecentDataPercentage float64 `json:"recent_data_percentage"`
	AverageAgeYears      float64 `json:"average_age_years"`
	TotalMovies          int64   `json:"total_movies"`
	RecentMovies         int64   `json:"recent_movies"`
}

func (d *TimelinessDetail) Highlights() []string {
	return []string{fmt.Sprintf("Average age: %.1f years", d.AverageAgeYears)}
}

// ScoreTimeliness is the share of dated records released in the trailing window.
func ScoreTimeliness(in TimelinessInput) Result {
	window := in.WindowYears
	if window <= 0 {
		window = 10
	}
	nowYear := in.Now.Year()

	var total, recent, ageSum int64
	for year, count := range in.YearCounts {
		total += count
		if year >= nowYear-window && year <= nowYear {
			recent += count
		}
		ageSum += int64(nowYear-year) * count
	}

	avgAge := 0.0
	if total > 0 {
		avgAge = float64(ageSum) / float64(total)
	}

	score := Percent(recent, total)
	detail := &TimelinessDetail{
		RecentDataPercentage: Round2(score),
		AverageAgeYears:      Round1(avgAge),
		TotalMovies:          total,
		RecentMovies:         recent,
	}
	return Result{Dimension: Timeliness, Score: bound(score), Detail: detail}
}

// ---------------------------------------------------------------------------
// Integrity
// ---------------------------------------------------------------------------

// IntegrityInput holds relationship coverage and identifier duplication.
type IntegrityInput struct {
	Total        int64
	WithGenres   int64
	WithKeywords int64
	DuplicateIDs int64
}

// IntegrityDetail reports relationship integrity.
type IntegrityDetail struct {
	GenreRelationshipIntegrity   float64 `json:"genre_relationship_integrity"`
	KeywordRelationshipIntegrity float64 `json:"keyword_relationship_integrity"`
	DuplicateIDs                 int64   `json:"duplicate_ids"`
	IDUniqueness                 float64 `json:"id_uniqueness"`
}

func (d *IntegrityDetail) Highlights() []string {
	return []string{fmt.Sprintf("Duplicate external ids: %d", d.DuplicateIDs)}
}

// ScoreIntegrity averages genre coverage, keyword coverage and the duplicate-id check.
func ScoreIntegrity(in IntegrityInput) Result {
	genres := Percent(in.WithGenres, in.Total)
	keywords := Percent(in.WithKeywords, in.Total)
	idCheck := 0.0
	if in.DuplicateIDs == 0 {
		idCheck = 100
	}

	detail := &IntegrityDetail{
		GenreRelationshipIntegrity:   Round2(genres),
		KeywordRelationshipIntegrity: Round2(keywords),
		DuplicateIDs:                 in.DuplicateIDs,
		IDUniqueness:                 idCheck,
	}

	score := 0.0
	if in.Total > 0 {
		score = Mean(genres, keywords, idCheck)
	}
	return Result{Dimension: Integrity, Score: bound(score), Detail: detail}
}

// ---------------------------------------------------------------------------
// Uniqueness
// ---------------------------------------------------------------------------

// UniquenessInput describes exact-title duplication.
type UniquenessInput struct {
	Total               int64
	UniqueTitles        int64
	TitleGroupSizes     []int64
	TitleYearDuplicates int64
}

// UniquenessDetail reports duplication counts.
type UniquenessDetail struct {
	TotalRecords        int64 `json:"total_records"`
	UniqueTitles        int64 `json:"unique_titles"`
	TitleYearDuplicates int64 `json:"title_year_duplicates"`
	TitleDuplicates     int64 `json:"title_duplicates"`
	DuplicateRecords    int64 `json:"duplicate_records"`
}

func (d *UniquenessDetail) Highlights() []string {
	return []string{fmt.Sprintf("Duplicate records: %d", d.DuplicateRecords)}
}

// ScoreUniqueness counts each group of N identical titles as N-1 extra rows.
func ScoreUniqueness(in UniquenessInput) Result {
	var extra int64
	for _, n := range in.TitleGroupSizes {
		if n > 1 {
			extra += n - 1
		}
	}

	detail := &UniquenessDetail{
		TotalRecords:        in.Total,
		UniqueTitles:        in.UniqueTitles,
		TitleYearDuplicates: in.TitleYearDuplicates,
		TitleDuplicates:     int64(len(in.TitleGroupSizes)),
		DuplicateRecords:    extra,
	}
	return Result{Dimension: Uniqueness, Score: bound(Percent(in.Total-extra, in.Total)), Detail: detail}
}

// ---------------------------------------------------------------------------
// Compliance
// ---------------------------------------------------------------------------

// ComplianceInput holds traceability and retention-horizon counts.
type ComplianceInput struct {
	Total                 int64
	Traceable             int64
	UniqueIdentifiers     int64
	OlderThanHorizon      int64
	PotentialPersonalData int64
}

// ComplianceDetail reports compliance proxies. PotentialPersonalData is informational.
type ComplianceDetail struct {
	DataTraceability      float64 `json:"data_traceability"`
	RetentionCompliance   float64 `json:"retention_compliance"`
	PotentialPersonalData int64   `json:"potential_personal_data"`
	UniqueIdentifiers     int64   `json:"unique_identifiers"`
	TotalRecords          int64   `json:"total_records"`
}

func (d *ComplianceDetail) Highlights() []string {
	return []string{
		fmt.Sprintf("Traceability: %s", pct(d.DataTraceability)),
		fmt.Sprintf("Retention compliance: %s", pct(d.RetentionCompliance)),
		fmt.Sprintf("Potentially personal data: %d", d.PotentialPersonalData),
	}
}

// ScoreCompliance averages traceability and retention-horizon compliance.
func ScoreCompliance(in ComplianceInput) Result {
	traceability := Percent(in.Traceable, in.Total)
	retention := Percent(in.Total-in.OlderThanHorizon, in.Total)

	detail := &ComplianceDetail{
		DataTraceability:      Round2(traceability),
		RetentionCompliance:   Round2(retention),
		PotentialPersonalData: in.PotentialPersonalData,
		UniqueIdentifiers:     in.UniqueIdentifiers,
		TotalRecords:          in.Total,
	}
	return Result{Dimension: Compliance, Score: bound(Mean(traceability, retention)), Detail: detail}
}

// ---------------------------------------------------------------------------
// Governance
// ---------------------------------------------------------------------------

// GovernanceInput holds catalog metadata, lineage and taxonomy counts.
type GovernanceInput struct {
	Total          int64
	HasTitle       int64
	HasDescription int64
	HasLanguage    int64
	HasDate        int64
	Traceable      int64
	Classified     int64
}

// GovernanceDetail reports governance sub-scores.
type GovernanceDetail struct {
	DataCataloging       float64            `json:"data_cataloging"`
	DataLineage          float64            `json:"data_lineage"`
	TaxonomyQuality      float64            `json:"taxonomy_quality"`
	MetadataCompleteness map[string]float64 `json:"metadata_completeness"`
}

func (d *GovernanceDetail) Highlights() []string {
	return []string{
		fmt.Sprintf("Data cataloging: %s", pct(d.DataCataloging)),
		fmt.Sprintf("Data lineage: %s", pct(d.DataLineage)),
		fmt.Sprintf("Taxonomy quality: %s", pct(d.TaxonomyQuality)),
	}
}

// ScoreGovernance averages catalog completeness, lineage and taxonomy coverage.
func ScoreGovernance(in GovernanceInput) Result {
	catalog := Percent(in.HasTitle+in.HasDescription+in.HasLanguage+in.HasDate, in.Total*4)
	lineage := Percent(in.Traceable, in.Total)
	taxonomy := Percent(in.Classified, in.Total)

	detail := &GovernanceDetail{
		DataCataloging:  Round2(catalog),
		DataLineage:     Round2(lineage),
		TaxonomyQuality: Round2(taxonomy),
		MetadataCompleteness: map[string]float64{
			"title":       Round2(Percent(in.HasTitle, in.Total)),
			"description": Round2(Percent(in.HasDescription, in.Total)),
			"language":    Round2(Percent(in.HasLanguage, in.Total)),
			"date":        Round2(Percent(in.HasDate, in.Total)),
		},
	}
	return Result{Dimension: Governance, Score: bound(Mean(catalog, lineage, taxonomy)), Detail: detail}
}

// SortedFields returns detail field names in alphabetical order.
func (d *CompletenessDetail) SortedFields() []string {
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
