// Package retention contains the pure guards for retention runs.
// This is part of the Functional Core - no I/O, only pure functions.
package retention

import (
	"fmt"
	"time"
)

// RunContext provides context for retention run guards.
// Populated by the caller from configuration and the injected clock.
type RunContext struct {
	ArchiveCutoff  time.Time
	AuditRetention time.Duration
	Now            time.Time
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CanApply evaluates whether a retention run may start.
// Rules:
//   - archive cutoff must be set and must not be after now
//   - audit retention window must be positive
func CanApply(ctx RunContext) GuardResult {
	if ctx.ArchiveCutoff.IsZero() {
		return GuardResult{Allowed: false, Reason: "archive cutoff is not set"}
	}
	if ctx.ArchiveCutoff.After(ctx.Now) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("archive cutoff %s is in the future", ctx.ArchiveCutoff.Format("2006-01-02")),
		}
	}
	if ctx.AuditRetention <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("audit retention must be positive, got %s", ctx.AuditRetention),
		}
	}
	return GuardResult{Allowed: true}
}

// AuditThreshold returns the timestamp before which audit entries are pruned.
func AuditThreshold(now time.Time, retention time.Duration) time.Time {
	return now.Add(-retention)
}
