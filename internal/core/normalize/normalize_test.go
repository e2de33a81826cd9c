package normalize

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

func TestRow_ClampsNumericFields(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{
			name: "negative strings",
			raw: map[string]any{
				"budget": "-100", "revenue": "-5", "runtime": "-90",
				"vote_average": "-3", "vote_count": "-7", "popularity": "-1.5",
			},
		},
		{
			name: "oversized rating",
			raw:  map[string]any{"vote_average": 15.0, "budget": 10},
		},
		{
			name: "garbage values",
			raw: map[string]any{
				"budget": "lots", "revenue": []int{1}, "runtime": math.NaN(),
				"vote_average": math.Inf(1), "vote_count": "", "popularity": nil,
			},
		},
		{
			name: "absent fields",
			raw:  map[string]any{"title": "Only a title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Row(tt.raw)
			if m.Budget < 0 || m.Revenue < 0 || m.VoteCount < 0 {
				t.Errorf("negative integer field: %+v", m)
			}
			if m.Runtime < 0 || m.Popularity < 0 {
				t.Errorf("negative real field: %+v", m)
			}
			if m.VoteAverage < 0 || m.VoteAverage > 10 {
				t.Errorf("vote average out of range: %v", m.VoteAverage)
			}
		})
	}
}

func TestRow_VoteAverageUpperBound(t *testing.T) {
	m := Row(map[string]any{"vote_average": "15"})
	if m.VoteAverage != 10 {
		t.Errorf("expected vote average clamped to 10, got %v", m.VoteAverage)
	}
	if m.Coerced == 0 {
		t.Error("expected clamp to be counted as coercion")
	}
}

func TestRow_TextNormalization(t *testing.T) {
	m := Row(map[string]any{
		"title":             "  The   Dark\tKnight  ",
		"original_title":    "The\n\nDark Knight",
		"overview":          " A  story ",
		"tagline":           "   ",
		"original_language": " en ",
	})

	if m.Title != "The Dark Knight" {
		t.Errorf("expected collapsed title, got %q", m.Title)
	}
	if m.OriginalTitle != "The Dark Knight" {
		t.Errorf("expected collapsed original title, got %q", m.OriginalTitle)
	}
	if m.Overview != "A story" {
		t.Errorf("expected collapsed overview, got %q", m.Overview)
	}
	if m.Tagline != "" {
		t.Errorf("expected blank tagline, got %q", m.Tagline)
	}
	if m.OriginalLanguage != "en" {
		t.Errorf("expected trimmed language, got %q", m.OriginalLanguage)
	}
}

func TestRow_ExternalID(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *int64
	}{
		{name: "string", in: "19995", want: ptr(19995)},
		{name: "float with zero fraction", in: 285.0, want: ptr(285)},
		{name: "json number", in: json.Number("42"), want: ptr(42)},
		{name: "fractional", in: "1.5", want: nil},
		{name: "blank", in: "", want: nil},
		{name: "missing", in: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Row(map[string]any{"id": tt.in}).ExternalID
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("expected nil id, got %d", *got)
			case tt.want != nil && got == nil:
				t.Errorf("expected id %d, got nil", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("expected id %d, got %d", *tt.want, *got)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "iso date", in: "2009-12-10", want: "2009-12-10"},
		{name: "rfc3339", in: "2009-12-10T18:00:00Z", want: "2009-12-10"},
		{name: "slashes", in: "2009/12/10", want: "2009-12-10"},
		{name: "us format", in: "12/10/2009", want: "2009-12-10"},
		{name: "time value", in: time.Date(2001, 5, 4, 13, 0, 0, 0, time.UTC), want: "2001-05-04"},
		{name: "garbage", in: "soon", want: ""},
		{name: "impossible day", in: "2009-02-30", want: ""},
		{name: "nil", in: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.in)
			if tt.want == "" {
				if got != nil {
					t.Errorf("expected nil, got %s", got.Format("2006-01-02"))
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %s, got nil", tt.want)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Format("2006-01-02"))
			}
		})
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Action  Adventure Action\tFantasy")
	want := []string{"Action", "Adventure", "Fantasy"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if Tokens("   ") != nil {
		t.Error("expected nil tokens for blank field")
	}
	if len(Tokens("drama Drama")) != 2 {
		t.Error("expected tokens to be case-sensitive")
	}
}

func TestCollectTags_Union(t *testing.T) {
	movies := []Movie{
		Row(map[string]any{"genres": "Action Drama", "keywords": "hero"}),
		Row(map[string]any{"genres": "Drama Comedy", "keywords": "hero villain"}),
	}

	tags := CollectTags(movies)
	if len(tags.Genres) != 3 {
		t.Errorf("expected 3 genres, got %v", tags.Genres)
	}
	if len(tags.Keywords) != 2 {
		t.Errorf("expected 2 keywords, got %v", tags.Keywords)
	}
}

func TestRows_NoRecognizedColumns(t *testing.T) {
	_, err := Rows([]map[string]any{{"foo": 1}, {"bar": 2}})
	if !errors.Is(err, ErrNoRecognizedColumns) {
		t.Errorf("expected ErrNoRecognizedColumns, got %v", err)
	}
}

func TestRows_MalformedRowStillProduced(t *testing.T) {
	movies, err := Rows([]map[string]any{
		{"title": "Good", "budget": "100"},
		{"title": "Bad", "budget": "???", "release_date": "not a date"},
	})
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[1].Budget != 0 || movies[1].ReleaseDate != nil {
		t.Errorf("expected safe defaults for malformed row, got %+v", movies[1])
	}
}

func ptr(v int64) *int64 { return &v }
