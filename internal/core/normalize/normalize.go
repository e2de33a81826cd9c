// Package normalize contains the pure row-cleaning rules of the ingestion pipeline.
// Nothing here touches storage; every function always produces a value.
package normalize

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Recognized input columns.
const (
	ColID               = "id"
	ColTitle            = "title"
	ColOriginalTitle    = "original_title"
	ColOverview         = "overview"
	ColReleaseDate      = "release_date"
	ColBudget           = "budget"
	ColRevenue          = "revenue"
	ColRuntime          = "runtime"
	ColVoteAverage      = "vote_average"
	ColVoteCount        = "vote_count"
	ColPopularity       = "popularity"
	ColOriginalLanguage = "original_language"
	ColStatus           = "status"
	ColTagline          = "tagline"
	ColHomepage         = "homepage"
	ColGenres           = "genres"
	ColKeywords         = "keywords"
)

// Columns lists every recognized column.
var Columns = []string{
	ColID, ColTitle, ColOriginalTitle, ColOverview, ColReleaseDate,
	ColBudget, ColRevenue, ColRuntime, ColVoteAverage, ColVoteCount,
	ColPopularity, ColOriginalLanguage, ColStatus, ColTagline, ColHomepage,
	ColGenres, ColKeywords,
}

// MaxVoteAverage is the upper bound of the rating scale.
const MaxVoteAverage = 10.0

// ErrNoRecognizedColumns is returned when no row carries any recognized column.
var ErrNoRecognizedColumns = errors.New("no recognized columns in input")

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// Movie is one cleaned input row.
type Movie struct {
	ExternalID       *int64
	Title            string
	OriginalTitle    string
	Overview         string
	ReleaseDate      *time.Time
	Budget           int64
	Revenue          int64
	Runtime          float64
	VoteAverage      float64
	VoteCount        int64
	Popularity       float64
	OriginalLanguage string
	Status           string
	Tagline          string
	Homepage         string
	Genres           []string
	Keywords         []string

	// Coerced counts values that were defaulted, clamped or nulled.
	Coerced int
}

// Tags is the union of tag tokens across rows, in first-seen order.
type Tags struct {
	Genres   []string
	Keywords []string
}

// Rows cleans every row. It fails only when the input has no identifiable schema.
func Rows(raws []map[string]any) ([]Movie, error) {
	if !hasRecognizedColumn(raws) {
		return nil, ErrNoRecognizedColumns
	}

	movies := make([]Movie, 0, len(raws))
	for _, raw := range raws {
		movies = append(movies, Row(raw))
	}
	return movies, nil
}

// Row cleans one row: null/default coercion, date coercion, text
// normalization, numeric clamping and tag tokenization, in that order.
func Row(raw map[string]any) Movie {
	var m Movie

	m.ExternalID = m.coerceExternalID(raw[ColID])

	m.Budget = m.coerceInt(raw[ColBudget])
	m.Revenue = m.coerceInt(raw[ColRevenue])
	m.Runtime = m.coerceFloat(raw[ColRuntime])
	m.VoteAverage = m.coerceFloat(raw[ColVoteAverage])
	m.VoteCount = m.coerceInt(raw[ColVoteCount])
	m.Popularity = m.coerceFloat(raw[ColPopularity])

	m.ReleaseDate = m.coerceDate(raw[ColReleaseDate])

	m.Title = CollapseWhitespace(text(raw[ColTitle]))
	m.OriginalTitle = CollapseWhitespace(text(raw[ColOriginalTitle]))
	m.Overview = CollapseWhitespace(text(raw[ColOverview]))
	m.Tagline = CollapseWhitespace(text(raw[ColTagline]))
	m.OriginalLanguage = strings.TrimSpace(text(raw[ColOriginalLanguage]))
	m.Status = strings.TrimSpace(text(raw[ColStatus]))
	m.Homepage = strings.TrimSpace(text(raw[ColHomepage]))

	m.Budget = m.clampInt(m.Budget)
	m.Revenue = m.clampInt(m.Revenue)
	m.VoteCount = m.clampInt(m.VoteCount)
	m.Runtime = m.clampFloat(m.Runtime, math.Inf(1))
	m.Popularity = m.clampFloat(m.Popularity, math.Inf(1))
	m.VoteAverage = m.clampFloat(m.VoteAverage, MaxVoteAverage)

	m.Genres = Tokens(raw[ColGenres])
	m.Keywords = Tokens(raw[ColKeywords])

	return m
}

// CollectTags returns the union of genre and keyword tokens across movies.
func CollectTags(movies []Movie) Tags {
	var tags Tags
	seenGenres := make(map[string]bool)
	seenKeywords := make(map[string]bool)
	for _, m := range movies {
		for _, g := range m.Genres {
			if !seenGenres[g] {
				seenGenres[g] = true
				tags.Genres = append(tags.Genres, g)
			}
		}
		for _, k := range m.Keywords {
			if !seenKeywords[k] {
				seenKeywords[k] = true
				tags.Keywords = append(tags.Keywords, k)
			}
		}
	}
	return tags
}

// CollapseWhitespace replaces internal whitespace runs with one space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Tokens splits a free-text tag field on whitespace, dropping repeats.
// Tokens are case-sensitive.
func Tokens(v any) []string {
	fields := strings.Fields(text(v))
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// ParseDate parses a calendar date, returning nil when v is absent or unparseable.
func ParseDate(v any) *time.Time {
	switch d := v.(type) {
	case time.Time:
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		return &day
	case *time.Time:
		if d == nil {
			return nil
		}
		return ParseDate(*d)
	}

	s := strings.TrimSpace(text(v))
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &day
		}
	}
	return nil
}

func hasRecognizedColumn(raws []map[string]any) bool {
	for _, raw := range raws {
		for _, col := range Columns {
			if _, ok := raw[col]; ok {
				return true
			}
		}
	}
	return false
}

func (m *Movie) coerceExternalID(v any) *int64 {
	if isBlank(v) {
		return nil
	}
	f, ok := number(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64/2 {
		m.Coerced++
		return nil
	}
	id := int64(f)
	return &id
}

func (m *Movie) coerceInt(v any) int64 {
	if isBlank(v) {
		m.Coerced++
		return 0
	}
	f, ok := number(v)
	if !ok || math.Abs(f) > math.MaxInt64/2 {
		m.Coerced++
		return 0
	}
	return int64(f)
}

func (m *Movie) coerceFloat(v any) float64 {
	if isBlank(v) {
		m.Coerced++
		return 0
	}
	f, ok := number(v)
	if !ok {
		m.Coerced++
		return 0
	}
	return f
}

func (m *Movie) coerceDate(v any) *time.Time {
	d := ParseDate(v)
	if d == nil && !isBlank(v) {
		m.Coerced++
	}
	return d
}

func (m *Movie) clampInt(v int64) int64 {
	if v < 0 {
		m.Coerced++
		return 0
	}
	return v
}

func (m *Movie) clampFloat(v, upper float64) float64 {
	switch {
	case v < 0:
		m.Coerced++
		return 0
	case v > upper:
		m.Coerced++
		return upper
	}
	return v
}

// number converts common scalar encodings to a finite float.
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case interface{ Float64() (float64, error) }:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case float64:
		if math.IsNaN(s) {
			return ""
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return true
	}
	return strings.TrimSpace(text(v)) == "" && isTextual(v)
}

func isTextual(v any) bool {
	switch v.(type) {
	case string, []byte:
		return true
	}
	return false
}
