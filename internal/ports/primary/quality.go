package primary

import (
	"context"
	"time"
)

// QualityService defines the primary port for data-quality assessment.
type QualityService interface {
	// Assess runs every dimension plus governance and returns a snapshot.
	Assess(ctx context.Context) (*QualitySnapshot, error)

	// AssessDimension runs a single named dimension (including "governance").
	AssessDimension(ctx context.Context, name string) (*DimensionScore, error)

	// Dimensions lists the dimension names accepted by AssessDimension.
	Dimensions() []string
}

// DimensionScore is the outcome of one scorer.
type DimensionScore struct {
	Name       string   `json:"name"`
	Score      float64  `json:"score"`
	Status     string   `json:"status"`
	Detail     any      `json:"detail"`
	Highlights []string `json:"-"`
}

// QualitySnapshot is the key-to-score/detail mapping of one assessment.
type QualitySnapshot struct {
	Timestamp       time.Time         `json:"timestamp"`
	Database        string            `json:"database"`
	OverallScore    float64           `json:"overall_score"`
	GovernanceScore float64           `json:"governance_score"`
	Classification  string            `json:"classification"`
	Dimensions      []*DimensionScore `json:"dimensions"`
	Governance      *DimensionScore   `json:"governance"`
	Recommendations []string          `json:"recommendations"`
}

// Dimension returns the named dimension score, or nil.
func (s *QualitySnapshot) Dimension(name string) *DimensionScore {
	for _, d := range s.Dimensions {
		if d.Name == name {
			return d
		}
	}
	if s.Governance != nil && s.Governance.Name == name {
		return s.Governance
	}
	return nil
}
