// Package metrics publishes quality and retention figures as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/example/moviedq/internal/ports/secondary"
)

// Recorder implements secondary.MetricsRecorder on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	dimensionScore   *prometheus.GaugeVec
	overallScore     prometheus.Gauge
	governanceScore  prometheus.Gauge
	retentionActions *prometheus.CounterVec
}

var _ secondary.MetricsRecorder = (*Recorder)(nil)

// NewRecorder creates a Recorder with its own registry, so repeated
// construction (tests, several runs in one process) never collides.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		dimensionScore: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "moviedq_quality_score",
				Help: "Latest score of each data-quality dimension (0-100).",
			},
			[]string{"dimension"},
		),
		overallScore: factory.NewGauge(prometheus.GaugeOpts{
			Name: "moviedq_overall_quality_score",
			Help: "Latest overall data-quality score (0-100).",
		}),
		governanceScore: factory.NewGauge(prometheus.GaugeOpts{
			Name: "moviedq_governance_score",
			Help: "Latest governance score (0-100).",
		}),
		retentionActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviedq_retention_actions_total",
				Help: "Records affected by each retention policy.",
			},
			[]string{"policy"},
		),
	}
}

func (r *Recorder) RecordDimensionScore(dimension string, score float64) {
	r.dimensionScore.WithLabelValues(dimension).Set(score)
}

func (r *Recorder) RecordOverallScore(score float64) {
	r.overallScore.Set(score)
}

func (r *Recorder) RecordGovernanceScore(score float64) {
	r.governanceScore.Set(score)
}

// RecordRetentionAction adds count to the policy counter. Negative counts are ignored.
func (r *Recorder) RecordRetentionAction(policy string, count int64) {
	if count < 0 {
		return
	}
	r.retentionActions.WithLabelValues(policy).Add(float64(count))
}

// Registry exposes the underlying registry for scraping or inspection.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile exports every metric in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
