package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/moviedq/internal/core/quality"
	"github.com/example/moviedq/internal/ports/secondary"
)

// Scorer computes one quality dimension from current store state.
// Scorers are read-only and safe to run concurrently with each other.
type Scorer interface {
	Dimension() quality.Dimension
	Score(ctx context.Context) (quality.Result, error)
}

// ScorerOptions tunes the date-relative and threshold-based scorers.
type ScorerOptions struct {
	RecentWindowYears     int
	RetentionHorizonYears int
	MinReliableVotes      int64
	Now                   func() time.Time
}

func (o ScorerOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// NewScorers builds the seven dimension scorers followed by the governance scorer,
// all reading through the same store handle.
func NewScorers(reader secondary.QualityReader, opts ScorerOptions) []Scorer {
	return []Scorer{
		&completenessScorer{reader: reader},
		&consistencyScorer{reader: reader, opts: opts},
		&accuracyScorer{reader: reader, opts: opts},
		&timelinessScorer{reader: reader, opts: opts},
		&integrityScorer{reader: reader},
		&uniquenessScorer{reader: reader},
		&complianceScorer{reader: reader, opts: opts},
		&governanceScorer{reader: reader},
	}
}

type completenessScorer struct {
	reader secondary.QualityReader
}

func (s *completenessScorer) Dimension() quality.Dimension { return quality.Completeness }

func (s *completenessScorer) Score(ctx context.Context) (quality.Result, error) {
	stats, err := s.reader.Completeness(ctx)
	if err != nil {
		return quality.Result{}, fmt.Errorf("failed to read completeness: %w", err)
	}

	fields := make([]quality.FieldFill, len(stats.Fields))
	for i, f := range stats.Fields {
		fields[i] = quality.FieldFill{Field: f.Field, Filled: f.Filled}
	}
	return quality.ScoreCompleteness(quality.CompletenessInput{Total: stats.Total, Fields: fields}), nil
}

type consistencyScorer struct {
	reader secondary.QualityReader
	opts   ScorerOptions
}

func (s *consistencyScorer) Dimension() quality.Dimension { return quality.Consistency }

func (s *consistencyScorer) Score(ctx context.Context) (quality.Result, error) {
	stats, err := s.reader.Consistency(ctx, s.opts.now())
	if err != nil {
		return quality.Result{}, fmt.Errorf("failed to read consistency: %w", err)
	}
	return quality.ScoreConsistency(quality.ConsistencyInput{
		Total:                    stats.Total,
		FinancialInconsistencies: stats.FinancialInconsistencies,
		FutureReleaseDates:       stats.FutureReleaseDates,
		InvalidRatings:           stats.InvalidRatings,
		InvalidDurations:         stats.InvalidDurations,
	}), nil
}

type accuracyScorer struct {
	reader secondary.QualityReader
	opts   ScorerOptions
}

func (s *accuracyScorer) Dimension() quality.Dimension { return quality.Accuracy }

func (s *accuracyScorer) Score(ctx context.Context) (quality.Result, error) {
	minVotes := s.opts.MinReliableVotes
	if minVotes <= 0 {
		minVotes = 10
	}
	stats, err := s.reader.Accuracy(ctx, minVotes)
	if err != nil {
		return quality.Result{}, fmt.Errorf("failed to read accuracy: %w", err)
	}
	return quality.ScoreAccuracy(quality.AccuracyInput{
		WithBudget:       stats.WithBudget,
		RealisticBudgets: stats.RealisticBudgets,
		WithBoth:         stats.WithBoth,
		RealisticROI:     stats.RealisticROI,
		WithRating:       stats.WithRating,
		ReliableRatings:  stats.ReliableRatings,
	}), nil
}

type timelinessScorer struct {
	reader secondary.QualityReader
	opts   ScorerOptions
}

func (s *timelinessScorer) Dimension() quality.Dimension { return quality.Timeliness }

func (s *timelinessScorer) Score(ctx context.Context) (quality.Result, error) {
	years, err := s.reader.ReleaseYears(ctx)
	if err != nil {
		return quality.Result{}, fmt.Errorf("failed to read release years: %w", err)
	}
	return quality.ScoreTimeliness(quality.TimelinessInput{
		YearCounts:  years,
		Now:         s.opts.now(),
		WindowYears: s.opts.RecentWindowYears,
	}), nil
}

type integrityScorer struct {
	reader secondary.QualityReader
}

func (s *integrityScorer) Dimension() quality.Dimension { return quality.Integrity }

func (s *integrityScorer) Score(ctx context.Context) (quality.Result, error) {
	stats, err := s.reader.Integrity(ctx)
	if err != nil {
		return quality.Result{}, fmt.Errorf("failed to read integrity: %w", err)
	}
	return quality.ScoreIntegrity(quality.IntegrityInput{
		Total:        stats.Total,
		WithGenres:   stats.WithGenres,
		WithKeywords: stats.WithKeywords,
		DuplicateIDs: stats.DuplicateIDs,
	}), nil
}

type uniquenessScorer struct {
	reader secondary.QualityReader
}

func (s *uniquenessScorer) Dimension() quality.Dimension { return quality.Uniqueness }

func (s *uniquenessScorer) Score(ctx context.Context) (quality.Result, error) {
	stats, err := s.reader.Uniqueness(ctx)
	if err != nil {
		return quality.Result{}, fmt.Errorf("failed to read uniqueness: %w", err)
	}
	return quality.ScoreUniqueness(quality.UniquenessInput{
		Total:               stats.Total,
		UniqueTitles:        stats.UniqueTitles,
		TitleGroupSizes:     stats.TitleGroupSizes,
		TitleYearDuplicates: stats.TitleYearGroupsDuped,
	}), nil
}

type complianceScorer struct {
	reader secondary.QualityReader
	opts   ScorerOptions
}

func (s *complianceScorer) Dimension() quality.Dimension { return quality.Compliance }

func (s *complianceScorer) Score(ctx context.Context) (quality.Result, error) {
	horizonYears := s.opts.RetentionHorizonYears
	if horizonYears <= 0 {
		horizonYears = 20
	}
	horizon := s.opts.now().AddDate(-horizonYears, 0, 0)

	stats, err := s.reader.Compliance(ctx, horizon)
	if err != nil {
		return quality.Result{}, fmt.Errorf("failed to read compliance: %w", err)
	}
	return quality.ScoreCompliance(quality.ComplianceInput{
		Total:                 stats.Total,
		Traceable:             stats.Traceable,
		UniqueIdentifiers:     stats.UniqueIdentifiers,
		OlderThanHorizon:      stats.OlderThanHorizon,
		PotentialPersonalData: stats.PotentialPersonalData,
	}), nil
}

type governanceScorer struct {
	reader secondary.QualityReader
}

func (s *governanceScorer) Dimension() quality.Dimension { return quality.Governance }

func (s *governanceScorer) Score(ctx context.Context) (quality.Result, error) {
	stats, err := s.reader.Governance(ctx)
	if err != nil {
		return quality.Result{}, fmt.Errorf("failed to read governance: %w", err)
	}
	return quality.ScoreGovernance(quality.GovernanceInput{
		Total:          stats.Total,
		HasTitle:       stats.HasTitle,
		HasDescription: stats.HasDescription,
		HasLanguage:    stats.HasLanguage,
		HasDate:        stats.HasDate,
		Traceable:      stats.Traceable,
		Classified:     stats.Classified,
	}), nil
}
