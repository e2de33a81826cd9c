package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/moviedq/internal/ports/primary"
)

func TestLifecycleAdapter_Run(t *testing.T) {
	tests := []struct {
		name    string
		result  *primary.LifecycleResult
		err     error
		want    []string
		wantErr bool
	}{
		{
			name: "all phases succeed",
			result: &primary.LifecycleResult{
				RunID:   "run-1",
				Ingest:  &primary.NormalizationResult{RecordsWritten: 3, RecordsInserted: 2, RecordsReplaced: 1},
				Quality: &primary.QualitySnapshot{OverallScore: 88, Classification: "GOOD", GovernanceScore: 70},
				Phases: []primary.PhaseOutcome{
					{Phase: "ingest", Succeeded: true},
					{Phase: "quality", Succeeded: true},
				},
			},
			want: []string{"Lifecycle run run-1", "✓ ingest", "Records: 3 written (2 inserted, 1 replaced)", "Quality: 88.00/100 (GOOD)", "Run completed"},
		},
		{
			name: "isolated phase failure",
			result: &primary.LifecycleResult{
				RunID: "run-2",
				Phases: []primary.PhaseOutcome{
					{Phase: "ingest", Succeeded: true},
					{Phase: "report", Error: "no such table"},
				},
			},
			want: []string{"✗ report: no such table", "Run completed with failures"},
		},
		{
			name: "aborted run",
			result: &primary.LifecycleResult{
				RunID:  "run-3",
				Phases: []primary.PhaseOutcome{{Phase: "ingest", Error: "ingestion failed: input has no rows"}},
			},
			err:     errors.New("lifecycle aborted"),
			want:    []string{"✗ ingest: ingestion failed"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			adapter := NewLifecycleAdapter(nil, &mockLifecycleService{
				runFn: func(ctx context.Context, rows []primary.RawRow) (*primary.LifecycleResult, error) {
					return tt.result, tt.err
				},
			}, &out)

			_, err := adapter.Run(context.Background(), nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("expected %q in output:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestLifecycleAdapter_Ingest(t *testing.T) {
	var out bytes.Buffer
	adapter := NewLifecycleAdapter(&mockIngestService{
		normalizeFn: func(ctx context.Context, rows []primary.RawRow) (*primary.NormalizationResult, error) {
			return &primary.NormalizationResult{RowsRead: len(rows), RecordsInserted: len(rows), GenresDiscovered: 2, GenresCreated: 2, Coerced: 4}, nil
		},
	}, nil, &out)

	if _, err := adapter.Ingest(context.Background(), []primary.RawRow{{"title": "Alpha"}}); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	for _, want := range []string{"Ingested 1 rows: 1 inserted, 0 replaced", "Genres:   2 discovered, 2 new", "Coerced:  4"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, out.String())
		}
	}
}
