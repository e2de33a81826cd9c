package app

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/example/moviedq/internal/adapters/sqlite"
	"github.com/example/moviedq/internal/ctxutil"
	"github.com/example/moviedq/internal/db"
	"github.com/example/moviedq/internal/ports/primary"
	"github.com/example/moviedq/internal/ports/secondary"
)

// setupTestStore creates an in-memory store with the authoritative schema.
func setupTestStore(t *testing.T) (*sql.DB, *sqlite.Store) {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB, sqlite.NewStore(testDB, zap.NewNop())
}

func countRows(t *testing.T, database *sql.DB, query string, args ...any) int64 {
	t.Helper()

	var n int64
	if err := database.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}

// ============================================================================
// Mock Implementations
// ============================================================================

// mockMetricsRecorder implements secondary.MetricsRecorder for testing.
type mockMetricsRecorder struct {
	mu         sync.Mutex
	dimensions map[string]float64
	overall    *float64
	governance *float64
	retention  map[string]int64
}

var _ secondary.MetricsRecorder = (*mockMetricsRecorder)(nil)

func newMockMetricsRecorder() *mockMetricsRecorder {
	return &mockMetricsRecorder{
		dimensions: make(map[string]float64),
		retention:  make(map[string]int64),
	}
}

func (m *mockMetricsRecorder) RecordDimensionScore(dimension string, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimensions[dimension] = score
}

func (m *mockMetricsRecorder) RecordOverallScore(score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overall = &score
}

func (m *mockMetricsRecorder) RecordGovernanceScore(score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.governance = &score
}

func (m *mockMetricsRecorder) RecordRetentionAction(policy string, count int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retention[policy] += count
}

// mockBackupWriter implements secondary.BackupWriter for testing.
type mockBackupWriter struct {
	writeErr error
	name     string
	content  string
	removed  []string
}

var _ secondary.BackupWriter = (*mockBackupWriter)(nil)

func (m *mockBackupWriter) WriteBackup(ctx context.Context, name string, write func(w io.Writer) error) (string, error) {
	if m.writeErr != nil {
		return "", m.writeErr
	}
	var buf strings.Builder
	if err := write(&buf); err != nil {
		return "", err
	}
	m.name = name
	m.content = buf.String()
	return "backups/" + name, nil
}

func (m *mockBackupWriter) RemoveBackup(ctx context.Context, path string) error {
	m.removed = append(m.removed, path)
	return nil
}

// mockStore implements secondary.Store for testing.
type mockStore struct {
	transactionErr error
	appendAuditErr error
	audits         []*secondary.AuditRecord
}

var _ secondary.Store = (*mockStore)(nil)

func (m *mockStore) Transaction(ctx context.Context, fn func(tx secondary.Tx) error) error {
	if m.transactionErr != nil {
		return m.transactionErr
	}
	return errors.New("mockStore has no transaction support")
}

func (m *mockStore) AppendAudit(ctx context.Context, entry *secondary.AuditRecord) (int64, error) {
	if m.appendAuditErr != nil {
		return 0, m.appendAuditErr
	}
	m.audits = append(m.audits, entry)
	return int64(len(m.audits)), nil
}

// mockIngestService implements primary.IngestService for testing.
type mockIngestService struct {
	result *primary.NormalizationResult
	err    error
	calls  int
}

func (m *mockIngestService) Normalize(ctx context.Context, rows []primary.RawRow) (*primary.NormalizationResult, error) {
	m.calls++
	return m.result, m.err
}

// mockReportService implements primary.ReportService for testing.
type mockReportService struct {
	report *primary.UsageReport
	err    error
	calls  int
}

func (m *mockReportService) Generate(ctx context.Context) (*primary.UsageReport, error) {
	m.calls++
	return m.report, m.err
}

// mockQualityService implements primary.QualityService for testing.
type mockQualityService struct {
	snapshot *primary.QualitySnapshot
	err      error
	calls    int
}

func (m *mockQualityService) Assess(ctx context.Context) (*primary.QualitySnapshot, error) {
	m.calls++
	return m.snapshot, m.err
}

func (m *mockQualityService) AssessDimension(ctx context.Context, name string) (*primary.DimensionScore, error) {
	return nil, errors.New("not implemented")
}

func (m *mockQualityService) Dimensions() []string { return nil }

// mockRetentionService implements primary.RetentionService for testing.
type mockRetentionService struct {
	summary *primary.RetentionSummary
	err     error
	calls   int
	runID   string
}

func (m *mockRetentionService) Apply(ctx context.Context) (*primary.RetentionSummary, error) {
	m.calls++
	m.runID = ctxutil.RunIDFromContext(ctx)
	return m.summary, m.err
}

func (m *mockRetentionService) Backup(ctx context.Context) (*primary.BackupOutcome, error) {
	return &primary.BackupOutcome{Success: true}, nil
}

// mockReportReader implements secondary.ReportReader for testing.
type mockReportReader struct {
	general *secondary.GeneralStatsRecord
	top     []*secondary.RevenueRecord
	genres  []*secondary.GenreStatsRecord
	trends  []*secondary.YearTrendRecord
	err     error

	topLimit           int
	trendFrom, trendTo int
}

var _ secondary.ReportReader = (*mockReportReader)(nil)

func (m *mockReportReader) General(ctx context.Context) (*secondary.GeneralStatsRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.general, nil
}

func (m *mockReportReader) TopRevenue(ctx context.Context, limit int) ([]*secondary.RevenueRecord, error) {
	m.topLimit = limit
	return m.top, nil
}

func (m *mockReportReader) GenreBreakdown(ctx context.Context) ([]*secondary.GenreStatsRecord, error) {
	return m.genres, nil
}

func (m *mockReportReader) YearTrends(ctx context.Context, fromYear, toYear int) ([]*secondary.YearTrendRecord, error) {
	m.trendFrom, m.trendTo = fromYear, toYear
	return m.trends, nil
}

// mockAuditRepository implements secondary.AuditRepository for testing.
type mockAuditRepository struct {
	entries []*secondary.AuditRecord
	listErr error
}

var _ secondary.AuditRepository = (*mockAuditRepository)(nil)

func (m *mockAuditRepository) Append(ctx context.Context, entry *secondary.AuditRecord) (int64, error) {
	m.entries = append(m.entries, entry)
	return int64(len(m.entries)), nil
}

func (m *mockAuditRepository) List(ctx context.Context, limit int) ([]*secondary.AuditRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if limit > 0 && limit < len(m.entries) {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

func (m *mockAuditRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.entries)), nil
}
