package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/example/moviedq/internal/adapters/metrics"
)

func TestRecorder_Scores(t *testing.T) {
	r := metrics.NewRecorder()

	r.RecordDimensionScore("uniqueness", 80)
	r.RecordDimensionScore("uniqueness", 85.5)
	r.RecordOverallScore(72.25)
	r.RecordGovernanceScore(60)

	if n := testutil.CollectAndCount(r.Registry(), "moviedq_quality_score"); n != 1 {
		t.Errorf("expected 1 dimension series, got %d", n)
	}

	expected := `
# HELP moviedq_quality_score Latest score of each data-quality dimension (0-100).
# TYPE moviedq_quality_score gauge
moviedq_quality_score{dimension="uniqueness"} 85.5
`
	if err := testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "moviedq_quality_score"); err != nil {
		t.Errorf("unexpected dimension gauge: %v", err)
	}
}

func TestRecorder_RetentionActions(t *testing.T) {
	r := metrics.NewRecorder()

	r.RecordRetentionAction("archive", 3)
	r.RecordRetentionAction("archive", 2)
	r.RecordRetentionAction("dedup", -1)

	expected := `
# HELP moviedq_retention_actions_total Records affected by each retention policy.
# TYPE moviedq_retention_actions_total counter
moviedq_retention_actions_total{policy="archive"} 5
`
	if err := testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "moviedq_retention_actions_total"); err != nil {
		t.Errorf("unexpected retention counter: %v", err)
	}
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := metrics.NewRecorder()
	r.RecordOverallScore(91)

	path := filepath.Join(t.TempDir(), "moviedq.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read textfile: %v", err)
	}
	if !strings.Contains(string(data), "moviedq_overall_quality_score 91") {
		t.Errorf("expected overall gauge in textfile, got:\n%s", data)
	}
}
