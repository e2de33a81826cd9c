package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/example/moviedq/internal/adapters/sqlite"
)

var today = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func TestQualityReader_EmptyStore(t *testing.T) {
	db := setupTestDB(t)
	reader := sqlite.NewQualityReader(db)
	ctx := context.Background()

	completeness, err := reader.Completeness(ctx)
	if err != nil {
		t.Fatalf("Completeness failed: %v", err)
	}
	if completeness.Total != 0 || len(completeness.Fields) != 7 {
		t.Errorf("unexpected completeness stats: %+v", completeness)
	}

	consistency, err := reader.Consistency(ctx, today)
	if err != nil {
		t.Fatalf("Consistency failed: %v", err)
	}
	if consistency.Total != 0 || consistency.FinancialInconsistencies != 0 {
		t.Errorf("unexpected consistency stats: %+v", consistency)
	}

	if _, err := reader.Accuracy(ctx, 10); err != nil {
		t.Fatalf("Accuracy failed: %v", err)
	}
	years, err := reader.ReleaseYears(ctx)
	if err != nil {
		t.Fatalf("ReleaseYears failed: %v", err)
	}
	if len(years) != 0 {
		t.Errorf("expected no years, got %v", years)
	}
	if _, err := reader.Integrity(ctx); err != nil {
		t.Fatalf("Integrity failed: %v", err)
	}
	if _, err := reader.Uniqueness(ctx); err != nil {
		t.Fatalf("Uniqueness failed: %v", err)
	}
	if _, err := reader.Compliance(ctx, today.AddDate(-20, 0, 0)); err != nil {
		t.Fatalf("Compliance failed: %v", err)
	}
	if _, err := reader.Governance(ctx); err != nil {
		t.Fatalf("Governance failed: %v", err)
	}
}

func TestQualityReader_ConsistencyVoteFlip(t *testing.T) {
	db := setupTestDB(t)
	reader := sqlite.NewQualityReader(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO movies (external_id, title, release_date, revenue, budget, vote_average, runtime)
		VALUES (1, 'Alpha', '2001-05-01', 150, 100, 5, 90)`)
	if err != nil {
		t.Fatalf("failed to seed movie: %v", err)
	}

	stats, err := reader.Consistency(ctx, today)
	if err != nil {
		t.Fatalf("Consistency failed: %v", err)
	}
	issues := stats.FinancialInconsistencies + stats.FutureReleaseDates + stats.InvalidRatings + stats.InvalidDurations
	if issues != 0 {
		t.Errorf("expected zero issues, got %+v", stats)
	}

	// The write boundary clamps ratings, so flip the stored value directly.
	if _, err := db.Exec("UPDATE movies SET vote_average = 15"); err != nil {
		t.Fatalf("failed to flip vote average: %v", err)
	}

	stats, err = reader.Consistency(ctx, today)
	if err != nil {
		t.Fatalf("Consistency failed: %v", err)
	}
	if stats.InvalidRatings != 1 {
		t.Errorf("expected exactly 1 invalid rating, got %d", stats.InvalidRatings)
	}
	issues = stats.FinancialInconsistencies + stats.FutureReleaseDates + stats.InvalidRatings + stats.InvalidDurations
	if issues != 1 {
		t.Errorf("expected exactly 1 issue, got %+v", stats)
	}
}

func TestQualityReader_ConsistencyRules(t *testing.T) {
	db := setupTestDB(t)
	reader := sqlite.NewQualityReader(db)

	_, err := db.Exec(`INSERT INTO movies (title, release_date, revenue, budget, vote_average, runtime) VALUES
		('Flop', '2001-05-01', 50, 100, 5, 90),
		('Future', '2030-01-01', 0, 0, 5, 90),
		('Epic', '2001-05-01', 0, 0, 5, 600),
		('Short', '2001-05-01', 0, 0, 5, 0.5),
		('Unknown runtime', '2001-05-01', 0, 0, 5, 0)`)
	if err != nil {
		t.Fatalf("failed to seed movies: %v", err)
	}

	stats, err := reader.Consistency(context.Background(), today)
	if err != nil {
		t.Fatalf("Consistency failed: %v", err)
	}
	if stats.Total != 5 {
		t.Errorf("expected 5 total, got %d", stats.Total)
	}
	if stats.FinancialInconsistencies != 1 {
		t.Errorf("expected 1 financial inconsistency, got %d", stats.FinancialInconsistencies)
	}
	if stats.FutureReleaseDates != 1 {
		t.Errorf("expected 1 future date, got %d", stats.FutureReleaseDates)
	}
	if stats.InvalidDurations != 2 {
		t.Errorf("expected 2 invalid durations, got %d", stats.InvalidDurations)
	}
}

func TestQualityReader_Completeness(t *testing.T) {
	db := setupTestDB(t)
	reader := sqlite.NewQualityReader(db)

	_, err := db.Exec(`INSERT INTO movies (title, release_date, budget, overview) VALUES
		('Alpha', '2001-05-01', 100, 'Text'),
		('Beta', NULL, 0, NULL)`)
	if err != nil {
		t.Fatalf("failed to seed movies: %v", err)
	}

	stats, err := reader.Completeness(context.Background())
	if err != nil {
		t.Fatalf("Completeness failed: %v", err)
	}

	want := map[string]int64{
		"title": 2, "release_date": 1, "budget": 1, "revenue": 0,
		"vote_average": 0, "overview": 1, "original_language": 0,
	}
	if stats.Total != 2 {
		t.Errorf("expected total 2, got %d", stats.Total)
	}
	for _, f := range stats.Fields {
		if f.Filled != want[f.Field] {
			t.Errorf("%s: expected %d filled, got %d", f.Field, want[f.Field], f.Filled)
		}
	}
	if stats.Fields[0].Field != "title" {
		t.Errorf("expected fields in fixed order, first = %q", stats.Fields[0].Field)
	}
}

func TestQualityReader_Accuracy(t *testing.T) {
	db := setupTestDB(t)
	reader := sqlite.NewQualityReader(db)

	_, err := db.Exec(`INSERT INTO movies (title, budget, revenue, vote_average, vote_count) VALUES
		('Realistic', 1000000, 3000000, 7, 100),
		('Tiny', 500, 0, 6, 5),
		('Windfall', 1000, 200000000, 0, 0)`)
	if err != nil {
		t.Fatalf("failed to seed movies: %v", err)
	}

	stats, err := reader.Accuracy(context.Background(), 10)
	if err != nil {
		t.Fatalf("Accuracy failed: %v", err)
	}
	if stats.WithBudget != 3 || stats.RealisticBudgets != 2 {
		t.Errorf("unexpected budget counts: %+v", stats)
	}
	if stats.WithBoth != 2 || stats.RealisticROI != 1 {
		t.Errorf("unexpected ROI counts: %+v", stats)
	}
	if stats.WithRating != 2 || stats.ReliableRatings != 1 {
		t.Errorf("unexpected rating counts: %+v", stats)
	}
}

func TestQualityReader_Uniqueness(t *testing.T) {
	db := setupTestDB(t)
	reader := sqlite.NewQualityReader(db)

	for i := 0; i < 3; i++ {
		seedMovie(t, db, i+1, "Same", "2001-01-01")
	}
	for i := 3; i < 10; i++ {
		seedMovie(t, db, i+1, fmt.Sprintf("Title %d", i), "2001-01-01")
	}

	stats, err := reader.Uniqueness(context.Background())
	if err != nil {
		t.Fatalf("Uniqueness failed: %v", err)
	}
	if stats.Total != 10 || stats.UniqueTitles != 8 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if len(stats.TitleGroupSizes) != 1 || stats.TitleGroupSizes[0] != 3 {
		t.Errorf("expected one group of 3, got %v", stats.TitleGroupSizes)
	}
	if stats.TitleYearGroupsDuped != 1 {
		t.Errorf("expected 1 title-year group, got %d", stats.TitleYearGroupsDuped)
	}
}

func TestQualityReader_IntegrityAndGovernance(t *testing.T) {
	db := setupTestDB(t)
	reader := sqlite.NewQualityReader(db)
	ctx := context.Background()

	a := seedMovie(t, db, 1, "Alpha", "2001-01-01")
	seedMovie(t, db, 1, "Alpha copy", "2001-01-01")
	seedMovie(t, db, nil, "Gamma", "")
	seedGenreLink(t, db, a, "Drama")
	if _, err := db.Exec("INSERT INTO keywords (name) VALUES ('space')"); err != nil {
		t.Fatalf("failed to seed keyword: %v", err)
	}
	if _, err := db.Exec("INSERT INTO movie_keywords (movie_id, keyword_id) VALUES (?, 1)", a); err != nil {
		t.Fatalf("failed to seed keyword link: %v", err)
	}

	integrity, err := reader.Integrity(ctx)
	if err != nil {
		t.Fatalf("Integrity failed: %v", err)
	}
	if integrity.Total != 3 || integrity.WithGenres != 1 || integrity.WithKeywords != 1 || integrity.DuplicateIDs != 1 {
		t.Errorf("unexpected integrity stats: %+v", integrity)
	}

	governance, err := reader.Governance(ctx)
	if err != nil {
		t.Fatalf("Governance failed: %v", err)
	}
	if governance.HasTitle != 3 || governance.HasDate != 2 || governance.Traceable != 2 || governance.Classified != 1 {
		t.Errorf("unexpected governance stats: %+v", governance)
	}
}

func TestQualityReader_Compliance(t *testing.T) {
	db := setupTestDB(t)
	reader := sqlite.NewQualityReader(db)

	_, err := db.Exec(`INSERT INTO movies (external_id, title, release_date, overview) VALUES
		(1, 'Old', '1990-01-01', 'A Private eye'),
		(2, 'New', '2020-01-01', 'personal journey'),
		(NULL, 'Anon', '2020-01-01', 'nothing here')`)
	if err != nil {
		t.Fatalf("failed to seed movies: %v", err)
	}

	stats, err := reader.Compliance(context.Background(), today.AddDate(-20, 0, 0))
	if err != nil {
		t.Fatalf("Compliance failed: %v", err)
	}
	if stats.Total != 3 || stats.Traceable != 2 || stats.UniqueIdentifiers != 2 {
		t.Errorf("unexpected traceability stats: %+v", stats)
	}
	if stats.OlderThanHorizon != 1 {
		t.Errorf("expected 1 record older than horizon, got %d", stats.OlderThanHorizon)
	}
	if stats.PotentialPersonalData != 2 {
		t.Errorf("expected 2 potential personal data hits, got %d", stats.PotentialPersonalData)
	}
}

func TestQualityReader_ReleaseYears(t *testing.T) {
	db := setupTestDB(t)
	reader := sqlite.NewQualityReader(db)

	seedMovie(t, db, 1, "A", "2001-01-01")
	seedMovie(t, db, 2, "B", "2001-07-01")
	seedMovie(t, db, 3, "C", "2019-01-01")
	seedMovie(t, db, 4, "D", "")

	years, err := reader.ReleaseYears(context.Background())
	if err != nil {
		t.Fatalf("ReleaseYears failed: %v", err)
	}
	if years[2001] != 2 || years[2019] != 1 || len(years) != 2 {
		t.Errorf("unexpected year distribution: %v", years)
	}
}
