package app

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/moviedq/internal/core/quality"
	"github.com/example/moviedq/internal/ports/primary"
	"github.com/example/moviedq/internal/ports/secondary"
)

// QualityServiceImpl implements the QualityService interface.
type QualityServiceImpl struct {
	scorers  []Scorer
	metrics  secondary.MetricsRecorder
	logger   *zap.Logger
	database string
	now      func() time.Time
}

// NewQualityService creates a new QualityService. metrics may be nil.
func NewQualityService(scorers []Scorer, metrics secondary.MetricsRecorder, logger *zap.Logger, database string, now func() time.Time) *QualityServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &QualityServiceImpl{
		scorers:  scorers,
		metrics:  optionalRecorder(metrics),
		logger:   logger,
		database: database,
		now:      now,
	}
}

// Dimensions lists the accepted dimension names, governance last.
func (s *QualityServiceImpl) Dimensions() []string {
	names := make([]string, len(s.scorers))
	for i, sc := range s.scorers {
		names[i] = string(sc.Dimension())
	}
	return names
}

// Assess runs every scorer concurrently and builds the quality snapshot.
func (s *QualityServiceImpl) Assess(ctx context.Context) (*primary.QualitySnapshot, error) {
	start := s.now()

	results := make([]quality.Result, len(s.scorers))
	g, gctx := errgroup.WithContext(ctx)
	for i, sc := range s.scorers {
		i, sc := i, sc
		g.Go(func() error {
			r, err := sc.Score(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", sc.Dimension(), err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to assess quality: %w", err)
	}

	snapshot := &primary.QualitySnapshot{
		Timestamp: start,
		Database:  s.database,
	}

	scores := make(map[quality.Dimension]float64, len(results))
	var dimensionResults []quality.Result
	for _, r := range results {
		scores[r.Dimension] = r.Score
		if r.Dimension == quality.Governance {
			snapshot.Governance = toDimensionScore(r)
			snapshot.GovernanceScore = r.Score
			continue
		}
		dimensionResults = append(dimensionResults, r)
		snapshot.Dimensions = append(snapshot.Dimensions, toDimensionScore(r))
	}

	snapshot.OverallScore = quality.Overall(dimensionResults)
	snapshot.Classification = quality.Classification(snapshot.OverallScore)
	snapshot.Recommendations = quality.Recommendations(scores, snapshot.GovernanceScore)

	s.record(snapshot)

	s.logger.Info("quality assessment completed",
		zap.Float64("overall_score", snapshot.OverallScore),
		zap.Float64("governance_score", snapshot.GovernanceScore),
		zap.String("classification", snapshot.Classification),
		zap.Duration("elapsed", s.now().Sub(start)),
	)

	return snapshot, nil
}

// AssessDimension runs one named scorer.
func (s *QualityServiceImpl) AssessDimension(ctx context.Context, name string) (*primary.DimensionScore, error) {
	for _, sc := range s.scorers {
		if string(sc.Dimension()) != name {
			continue
		}

		r, err := sc.Score(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to assess %s: %w", name, err)
		}

		if s.metrics != nil {
			if r.Dimension == quality.Governance {
				s.metrics.RecordGovernanceScore(r.Score)
			} else {
				s.metrics.RecordDimensionScore(name, r.Score)
			}
		}

		s.logger.Info("dimension assessed", zap.String("dimension", name), zap.Float64("score", r.Score))
		return toDimensionScore(r), nil
	}

	return nil, fmt.Errorf("unknown dimension %q (valid: %s)", name, strings.Join(s.Dimensions(), ", "))
}

func (s *QualityServiceImpl) record(snapshot *primary.QualitySnapshot) {
	if s.metrics == nil {
		return
	}
	for _, d := range snapshot.Dimensions {
		s.metrics.RecordDimensionScore(d.Name, d.Score)
	}
	s.metrics.RecordOverallScore(snapshot.OverallScore)
	s.metrics.RecordGovernanceScore(snapshot.GovernanceScore)
}

// optionalRecorder maps a typed nil recorder to a nil interface so the
// "metrics may be nil" checks hold for both.
func optionalRecorder(m secondary.MetricsRecorder) secondary.MetricsRecorder {
	if m == nil {
		return nil
	}
	if v := reflect.ValueOf(m); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return m
}

func toDimensionScore(r quality.Result) *primary.DimensionScore {
	score := &primary.DimensionScore{
		Name:   string(r.Dimension),
		Score:  r.Score,
		Status: r.Status(),
		Detail: r.Detail,
	}
	if r.Detail != nil {
		score.Highlights = r.Detail.Highlights()
	}
	return score
}
