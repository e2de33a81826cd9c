package cli

import (
	"context"
	"os"
	"testing"

	"github.com/fatih/color"

	"github.com/example/moviedq/internal/ports/primary"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// mockQualityService implements primary.QualityService for testing
type mockQualityService struct {
	assessFn          func(ctx context.Context) (*primary.QualitySnapshot, error)
	assessDimensionFn func(ctx context.Context, name string) (*primary.DimensionScore, error)
}

func (m *mockQualityService) Assess(ctx context.Context) (*primary.QualitySnapshot, error) {
	return m.assessFn(ctx)
}

func (m *mockQualityService) AssessDimension(ctx context.Context, name string) (*primary.DimensionScore, error) {
	return m.assessDimensionFn(ctx, name)
}

func (m *mockQualityService) Dimensions() []string {
	return []string{"completeness", "governance"}
}

// mockIngestService implements primary.IngestService for testing
type mockIngestService struct {
	normalizeFn func(ctx context.Context, rows []primary.RawRow) (*primary.NormalizationResult, error)
}

func (m *mockIngestService) Normalize(ctx context.Context, rows []primary.RawRow) (*primary.NormalizationResult, error) {
	return m.normalizeFn(ctx, rows)
}

// mockLifecycleService implements primary.LifecycleService for testing
type mockLifecycleService struct {
	runFn func(ctx context.Context, rows []primary.RawRow) (*primary.LifecycleResult, error)
}

func (m *mockLifecycleService) Run(ctx context.Context, rows []primary.RawRow) (*primary.LifecycleResult, error) {
	return m.runFn(ctx, rows)
}

// mockReportService implements primary.ReportService for testing
type mockReportService struct {
	generateFn func(ctx context.Context) (*primary.UsageReport, error)
}

func (m *mockReportService) Generate(ctx context.Context) (*primary.UsageReport, error) {
	return m.generateFn(ctx)
}

// mockRetentionService implements primary.RetentionService for testing
type mockRetentionService struct {
	applyFn  func(ctx context.Context) (*primary.RetentionSummary, error)
	backupFn func(ctx context.Context) (*primary.BackupOutcome, error)
}

func (m *mockRetentionService) Apply(ctx context.Context) (*primary.RetentionSummary, error) {
	return m.applyFn(ctx)
}

func (m *mockRetentionService) Backup(ctx context.Context) (*primary.BackupOutcome, error) {
	return m.backupFn(ctx)
}

// mockAuditService implements primary.AuditService for testing
type mockAuditService struct {
	entries   []*primary.AuditEntry
	lastLimit int
}

func (m *mockAuditService) ListAudit(ctx context.Context, limit int) ([]*primary.AuditEntry, error) {
	m.lastLimit = limit
	return m.entries, nil
}
