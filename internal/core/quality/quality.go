// Package quality contains the pure scoring formulas of the data-quality engine.
// Scorers receive pre-fetched aggregates; no I/O happens here.
// Every score is bounded to [0, 100] and an empty dataset scores 0.
package quality

import (
	"fmt"
	"math"
)

// Dimension names a quality dimension.
type Dimension string

const (
	Completeness Dimension = "completeness"
	Consistency  Dimension = "consistency"
	Accuracy     Dimension = "accuracy"
	Timeliness   Dimension = "timeliness"
	Integrity    Dimension = "integrity"
	Uniqueness   Dimension = "uniqueness"
	Compliance   Dimension = "compliance"
	Governance   Dimension = "governance"
)

// Dimensions lists the seven dimensions that make up the overall score, in report order.
// Governance is scored separately.
var Dimensions = []Dimension{
	Completeness, Consistency, Accuracy, Timeliness, Integrity, Uniqueness, Compliance,
}

// Status values derived from a score.
const (
	StatusPass    = "pass"
	StatusWarning = "warning"
	StatusFail    = "fail"
)

// Detail is the structured, serializable support for a score.
type Detail interface {
	// Highlights returns short human-readable findings for reports.
	Highlights() []string
}

// Result is the outcome of one scorer.
type Result struct {
	Dimension Dimension
	Score     float64
	Detail    Detail
}

// Status classifies the result score.
func (r Result) Status() string {
	return StatusFor(r.Score)
}

// StatusFor maps a score to pass (>=80), warning (>=60) or fail.
func StatusFor(score float64) string {
	switch {
	case score >= 80:
		return StatusPass
	case score >= 60:
		return StatusWarning
	default:
		return StatusFail
	}
}

// Percent returns part/total*100, or 0 when total is not positive.
func Percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Mean returns the arithmetic mean, or 0 for no values.
func Mean(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Round2 rounds to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// bound clamps a score to [0, 100] and rounds it.
func bound(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return Round2(v)
}

// Overall averages the seven dimension scores with equal weight.
func Overall(results []Result) float64 {
	scores := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Dimension == Governance {
			continue
		}
		scores = append(scores, r.Score)
	}
	return bound(Mean(scores...))
}

// Classification labels an overall score.
func Classification(overall float64) string {
	switch {
	case overall >= 90:
		return "EXCELLENT"
	case overall >= 80:
		return "GOOD"
	case overall >= 70:
		return "FAIR"
	case overall >= 60:
		return "POOR"
	default:
		return "CRITICAL"
	}
}

// Recommendations derives prioritized actions from dimension and governance scores.
func Recommendations(scores map[Dimension]float64, governance float64) []string {
	var recs []string
	if scores[Completeness] < 80 {
		recs = append(recs, "HIGH PRIORITY: add input validation to improve completeness")
	}
	if scores[Consistency] < 80 {
		recs = append(recs, "HIGH PRIORITY: enforce business rules for consistency")
	}
	if scores[Uniqueness] < 90 {
		recs = append(recs, "MEDIUM PRIORITY: run the deduplication policy")
	}
	if scores[Compliance] < 90 {
		recs = append(recs, "HIGH PRIORITY: review privacy and retention compliance")
	}
	if governance < 80 {
		recs = append(recs, "MEDIUM PRIORITY: strengthen data governance practices")
	}
	if len(recs) == 0 {
		recs = append(recs, "All indicators are at acceptable levels")
	}
	return recs
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
