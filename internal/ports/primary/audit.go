package primary

import (
	"context"
	"time"
)

// AuditService defines the primary port for reading the audit trail.
type AuditService interface {
	ListAudit(ctx context.Context, limit int) ([]*AuditEntry, error)
}

// AuditEntry represents an audit row at the port boundary.
type AuditEntry struct {
	ID         int64
	EntityName string
	Operation  string
	TargetID   *int64
	Before     string
	After      string
	RunID      string
	Timestamp  time.Time
}
