package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/moviedq/internal/ports/secondary"
)

func TestAuditService_ListAudit(t *testing.T) {
	targetID := int64(7)
	repo := &mockAuditRepository{entries: []*secondary.AuditRecord{
		{ID: 2, EntityName: "movies", Operation: secondary.AuditUpdate, TargetID: &targetID, Before: `{"title":"A"}`, After: `{"title":"B"}`, RunID: "run-1", Timestamp: fixedNow},
		{ID: 1, EntityName: "movies", Operation: secondary.AuditInsert, Timestamp: fixedNow.Add(-time.Hour)},
	}}
	service := NewAuditService(repo)

	entries, err := service.ListAudit(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListAudit failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Operation != "UPDATE" || first.Before != `{"title":"A"}` || first.After != `{"title":"B"}` {
		t.Errorf("unexpected entry: %+v", first)
	}
	if first.TargetID == nil || *first.TargetID != 7 || first.RunID != "run-1" {
		t.Errorf("unexpected target or run id: %+v", first)
	}
	if entries[1].Before != "" || entries[1].After != "" {
		t.Errorf("expected empty payloads, got %+v", entries[1])
	}

	limited, err := service.ListAudit(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListAudit failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != 2 {
		t.Errorf("expected newest entry only, got %+v", limited)
	}
}

func TestAuditService_ListAuditError(t *testing.T) {
	service := NewAuditService(&mockAuditRepository{listErr: errors.New("disk I/O error")})

	if _, err := service.ListAudit(context.Background(), 10); err == nil {
		t.Fatal("expected error")
	}
}
