package app

import (
	"context"
	"fmt"

	"github.com/example/moviedq/internal/ports/primary"
	"github.com/example/moviedq/internal/ports/secondary"
)

// AuditServiceImpl implements the AuditService interface.
type AuditServiceImpl struct {
	auditRepo secondary.AuditRepository
}

// NewAuditService creates a new AuditService with injected dependencies.
func NewAuditService(auditRepo secondary.AuditRepository) *AuditServiceImpl {
	return &AuditServiceImpl{auditRepo: auditRepo}
}

// ListAudit retrieves the most recent audit entries.
func (s *AuditServiceImpl) ListAudit(ctx context.Context, limit int) ([]*primary.AuditEntry, error) {
	records, err := s.auditRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*primary.AuditEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.AuditEntry{
			ID:         r.ID,
			EntityName: r.EntityName,
			Operation:  string(r.Operation),
			TargetID:   r.TargetID,
			Before:     payloadText(r.Before),
			After:      payloadText(r.After),
			RunID:      r.RunID,
			Timestamp:  r.Timestamp,
		}
	}
	return entries, nil
}

func payloadText(v any) string {
	switch p := v.(type) {
	case nil:
		return ""
	case string:
		return p
	default:
		return fmt.Sprintf("%v", p)
	}
}
