package ctxutil

import (
	"context"
	"testing"
)

func TestRunIDRoundTrip(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")
	if got := RunIDFromContext(ctx); got != "run-123" {
		t.Errorf("expected run-123, got %q", got)
	}
}

func TestRunIDFromContext_Missing(t *testing.T) {
	if got := RunIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty run id, got %q", got)
	}
}
