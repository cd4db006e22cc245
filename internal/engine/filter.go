// Package engine derives filtered views and dashboard rollups from a candidate snapshot.
// Every function here is pure: it reads the slice it is given, never mutates it and
// never fails. Unknown filter values degrade to "no filter".
package engine

import (
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

const day = 24 * time.Hour

type DateFilter string

const (
	DateAll    DateFilter = "all"
	DateLast7  DateFilter = "last7"
	DateLast30 DateFilter = "last30"
	DateLast90 DateFilter = "last90"
)

// ParseDateFilter accepts the canonical tokens and the dashboard's "7days" style aliases.
func ParseDateFilter(raw string) DateFilter {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "last7", "7days":
		return DateLast7
	case "last30", "30days":
		return DateLast30
	case "last90", "90days":
		return DateLast90
	}
	return DateAll
}

func (f DateFilter) maxDays() (int64, bool) {
	switch f {
	case DateLast7:
		return 7, true
	case DateLast30:
		return 30, true
	case DateLast90:
		return 90, true
	}
	return 0, false
}

type ScoreFilter string

const (
	ScoreAll     ScoreFilter = "all"
	Score90To100 ScoreFilter = "90-100"
	Score80To89  ScoreFilter = "80-89"
	Score70To79  ScoreFilter = "70-79"
	ScoreBelow70 ScoreFilter = "below-70"
)

func ParseScoreFilter(raw string) ScoreFilter {
	switch f := ScoreFilter(strings.ToLower(strings.TrimSpace(raw))); f {
	case Score90To100, Score80To89, Score70To79, ScoreBelow70:
		return f
	}
	return ScoreAll
}

func (f ScoreFilter) contains(score int) bool {
	switch f {
	case Score90To100:
		return score >= 90 && score <= 100
	case Score80To89:
		return score >= 80 && score < 90
	case Score70To79:
		return score >= 70 && score < 80
	case ScoreBelow70:
		return score < 70
	}
	return true
}

// StatusFilter is either "all" or an exact assessment status.
type StatusFilter string

const StatusAll StatusFilter = "all"

func ParseStatusFilter(raw string) StatusFilter {
	st, err := entity.ParseAssessmentStatus(raw)
	if err != nil {
		return StatusAll
	}
	return StatusFilter(st)
}

// FilterConfig is the user-driven filter state. The zero value filters nothing
// beyond the structural stage check.
type FilterConfig struct {
	Search string
	Date   DateFilter
	Score  ScoreFilter
	Status StatusFilter
}

func ParseFilterConfig(q url.Values) FilterConfig {
	search := q.Get("search")
	if search == "" {
		search = q.Get("q")
	}
	return FilterConfig{
		Search: search,
		Date:   ParseDateFilter(q.Get("date")),
		Score:  ParseScoreFilter(q.Get("score")),
		Status: ParseStatusFilter(q.Get("status")),
	}
}

type Predicate func(c entity.Candidate) bool

// Compose ANDs predicates. An empty list accepts everything.
func Compose(preds ...Predicate) Predicate {
	return func(c entity.Candidate) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

func MatchesSearch(text string) Predicate {
	needle := strings.ToLower(text)
	return func(c entity.Candidate) bool {
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(c.Name), needle)
	}
}

func OnBoard() Predicate {
	return func(c entity.Candidate) bool {
		return c.Stage.IsBoardStage()
	}
}

// AppliedWithin counts whole elapsed days (floor of the duration), not calendar days.
func AppliedWithin(f DateFilter, now time.Time) Predicate {
	limit, ok := f.maxDays()
	return func(c entity.Candidate) bool {
		if !ok {
			return true
		}
		return elapsedDays(c.ApplicationDate, now) <= limit
	}
}

func ScoreIn(f ScoreFilter) Predicate {
	return func(c entity.Candidate) bool {
		return f.contains(c.OverallScore)
	}
}

func HasStatus(f StatusFilter) Predicate {
	want := entity.AssessmentStatus(f)
	return func(c entity.Candidate) bool {
		if !want.Valid() {
			return true
		}
		return c.AssessmentStatus == want
	}
}

// Predicates builds the pipeline for cfg in evaluation order.
func (cfg FilterConfig) Predicates(now time.Time) []Predicate {
	return []Predicate{
		MatchesSearch(cfg.Search),
		OnBoard(),
		AppliedWithin(cfg.Date, now),
		ScoreIn(cfg.Score),
		HasStatus(cfg.Status),
	}
}

// Filter returns the candidates passing every configured predicate, in input order.
func Filter(candidates []entity.Candidate, cfg FilterConfig, now time.Time) []entity.Candidate {
	pass := Compose(cfg.Predicates(now)...)
	out := make([]entity.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if pass(c) {
			out = append(out, c)
		}
	}
	return out
}

// elapsedDays floors toward negative infinity so future dates stay inside every window.
func elapsedDays(from, now time.Time) int64 {
	d := now.Sub(from)
	n := int64(d / day)
	if d < 0 && d%day != 0 {
		n--
	}
	return n
}
