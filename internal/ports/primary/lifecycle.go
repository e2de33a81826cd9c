package primary

import "context"

// Lifecycle phase names.
const (
	PhaseIngest    = "ingest"
	PhaseReport    = "report"
	PhaseQuality   = "quality"
	PhaseRetention = "retention"
)

// LifecycleService defines the primary port for a whole ingest -> score -> retain run.
type LifecycleService interface {
	Run(ctx context.Context, rows []RawRow) (*LifecycleResult, error)
}

// PhaseOutcome records whether a phase succeeded.
type PhaseOutcome struct {
	Phase     string `json:"phase"`
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
}

// LifecycleResult collects the artifacts of one lifecycle run.
// Fields for failed phases are nil.
type LifecycleResult struct {
	RunID     string               `json:"run_id"`
	Ingest    *NormalizationResult `json:"ingest"`
	Report    *UsageReport         `json:"report,omitempty"`
	Quality   *QualitySnapshot     `json:"quality,omitempty"`
	Retention *RetentionSummary    `json:"retention,omitempty"`
	Phases    []PhaseOutcome       `json:"phases"`
}

// Succeeded reports whether every phase completed.
func (r *LifecycleResult) Succeeded() bool {
	for _, p := range r.Phases {
		if !p.Succeeded {
			return false
		}
	}
	return true
}
