package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

const (
	// PassingScore is the screening threshold used by ScreeningAccuracy.
	PassingScore = 70

	// HoursSavedPerCandidate is a fixed heuristic for automated screening and
	// interview coordination. It is an estimate, not a measurement.
	HoursSavedPerCandidate = 0.5
)

type Funnel struct {
	Scheduled int `json:"scheduled"`
	Completed int `json:"completed"`
	Upcoming  int `json:"upcoming"`
}

type Metrics struct {
	TotalCandidates      int                             `json:"totalCandidates"`
	ActiveInterviews     int                             `json:"activeInterviews"`
	CompletedAssessments int                             `json:"completedAssessments"`
	Referrals            int                             `json:"referrals"`
	Hired                int                             `json:"hired"`
	StageDistribution    map[entity.Stage]int            `json:"stageDistribution"`
	StatusDistribution   map[entity.AssessmentStatus]int `json:"statusDistribution"`

	AverageScore        float64 `json:"averageScore"`
	AverageScoreDisplay string  `json:"averageScoreDisplay"`
	ScreeningAccuracy   int     `json:"screeningAccuracy"`
	Interviews          Funnel  `json:"interviews"`

	AverageTimeToHireDays    int    `json:"averageTimeToHireDays"`
	AverageTimeToHireDisplay string `json:"averageTimeToHire"`

	// TimeSavedHours is HoursSavedPerCandidate per active candidate; no confidence interval.
	TimeSavedHours   float64 `json:"timeSavedHours"`
	TimeSavedDisplay string  `json:"timeSavedPerWeek"`

	GeneratedAt time.Time `json:"generatedAt"`
}

func StageDistribution(candidates []entity.Candidate) map[entity.Stage]int {
	dist := emptyStageDistribution()
	for _, c := range candidates {
		if c.Stage.IsBoardStage() {
			dist[c.Stage]++
		}
	}
	return dist
}

func StatusDistribution(candidates []entity.Candidate) map[entity.AssessmentStatus]int {
	dist := emptyStatusDistribution()
	for _, c := range candidates {
		if c.AssessmentStatus.Valid() {
			dist[c.AssessmentStatus]++
		}
	}
	return dist
}

// AverageScore is the mean overall score rounded to one decimal, 0 for no candidates.
func AverageScore(candidates []entity.Candidate) float64 {
	if len(candidates) == 0 {
		return 0
	}
	sum := 0
	for _, c := range candidates {
		sum += c.OverallScore
	}
	return roundTo(float64(sum)/float64(len(candidates)), 1)
}

// ScreeningAccuracy is the whole-number percentage of candidates scoring at least PassingScore.
func ScreeningAccuracy(candidates []entity.Candidate) int {
	if len(candidates) == 0 {
		return 0
	}
	passed := 0
	for _, c := range candidates {
		if c.OverallScore >= PassingScore {
			passed++
		}
	}
	return percent(passed, len(candidates))
}

func InterviewFunnel(candidates []entity.Candidate) Funnel {
	var f Funnel
	for _, c := range candidates {
		f.add(c)
	}
	return f
}

func (f *Funnel) add(c entity.Candidate) {
	if c.Stage != entity.StageInterview {
		return
	}
	f.Scheduled++
	switch c.AssessmentStatus {
	case entity.StatusCompleted:
		f.Completed++
	case entity.StatusPending:
		f.Upcoming++
	}
}

// AverageTimeToHire averages UpdatedAt-CreatedAt over hired candidates, in whole days.
func AverageTimeToHire(candidates []entity.Candidate) int {
	var total float64
	n := 0
	for _, c := range candidates {
		if c.Stage != entity.StageHired {
			continue
		}
		total += daysBetween(c.CreatedAt, c.UpdatedAt)
		n++
	}
	return meanDays(total, n)
}

func TimeSavedPerWeek(candidates []entity.Candidate) float64 {
	active := 0
	for _, c := range candidates {
		if isAutomated(c.Stage) {
			active++
		}
	}
	return hoursSaved(active)
}

func FormatScore(avg float64) string { return fmt.Sprintf("%.1f", avg) }

func FormatDays(days int) string { return fmt.Sprintf("%d days", days) }

func FormatHours(hours float64) string { return fmt.Sprintf("%.1f hours", hours) }

// Aggregate computes every rollup in one traversal. Results match the standalone functions.
func Aggregate(candidates []entity.Candidate, now time.Time) Metrics {
	m := Metrics{
		TotalCandidates:    len(candidates),
		StageDistribution:  emptyStageDistribution(),
		StatusDistribution: emptyStatusDistribution(),
		GeneratedAt:        now,
	}

	var (
		scoreSum  int
		passed    int
		automated int
		hireDays  float64
	)
	for _, c := range candidates {
		if c.Stage.IsBoardStage() {
			m.StageDistribution[c.Stage]++
		}
		if c.AssessmentStatus.Valid() {
			m.StatusDistribution[c.AssessmentStatus]++
		}
		if c.AssessmentStatus == entity.StatusCompleted {
			m.CompletedAssessments++
		}
		if c.IsReferral {
			m.Referrals++
		}
		if c.Stage == entity.StageHired {
			m.Hired++
			hireDays += daysBetween(c.CreatedAt, c.UpdatedAt)
		}
		if isAutomated(c.Stage) {
			automated++
		}
		scoreSum += c.OverallScore
		if c.OverallScore >= PassingScore {
			passed++
		}
		m.Interviews.add(c)
	}

	if n := len(candidates); n > 0 {
		m.AverageScore = roundTo(float64(scoreSum)/float64(n), 1)
		m.ScreeningAccuracy = percent(passed, n)
	}
	m.ActiveInterviews = m.Interviews.Scheduled
	m.AverageTimeToHireDays = meanDays(hireDays, m.Hired)
	m.TimeSavedHours = hoursSaved(automated)

	m.AverageScoreDisplay = FormatScore(m.AverageScore)
	m.AverageTimeToHireDisplay = FormatDays(m.AverageTimeToHireDays)
	m.TimeSavedDisplay = FormatHours(m.TimeSavedHours)
	return m
}

func emptyStageDistribution() map[entity.Stage]int {
	dist := make(map[entity.Stage]int, 4)
	for _, s := range entity.BoardStages() {
		dist[s] = 0
	}
	return dist
}

func emptyStatusDistribution() map[entity.AssessmentStatus]int {
	dist := make(map[entity.AssessmentStatus]int, 3)
	for _, s := range entity.AssessmentStatuses() {
		dist[s] = 0
	}
	return dist
}

func isAutomated(s entity.Stage) bool {
	return s == entity.StageScreening || s == entity.StageInterview
}

func hoursSaved(n int) float64 {
	return roundTo(float64(n)*HoursSavedPerCandidate, 1)
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

func meanDays(total float64, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(total / float64(n)))
}

func percent(part, whole int) int {
	return int(math.Round(float64(part) * 100 / float64(whole)))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
