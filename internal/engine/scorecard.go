package engine

import (
	"sort"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

const DefaultTopPerformers = 3

type ScoreBand string

const (
	BandHigh     ScoreBand = "high"
	BandMedium   ScoreBand = "medium"
	BandLow      ScoreBand = "low"
	BandUnscored ScoreBand = "unscored"
)

func BandFor(score int) ScoreBand {
	switch {
	case score >= 80:
		return BandHigh
	case score >= 60:
		return BandMedium
	case score > 0:
		return BandLow
	}
	return BandUnscored
}

type ScoredCandidate struct {
	Rank      int              `json:"rank"`
	Candidate entity.Candidate `json:"candidate"`
	Band      ScoreBand        `json:"band"`
}

type Scorecard struct {
	Ranked        []ScoredCandidate `json:"ranked"`
	TopPerformers []ScoredCandidate `json:"topPerformers"`
}

// BuildScorecard ranks by score, highest first; ties keep snapshot order.
// Top performers are the first limit candidates with a non-zero score.
func BuildScorecard(candidates []entity.Candidate, limit int) Scorecard {
	if limit <= 0 {
		limit = DefaultTopPerformers
	}
	sorted := make([]entity.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallScore > sorted[j].OverallScore
	})

	top := min(limit, len(sorted))
	card := Scorecard{
		Ranked:        make([]ScoredCandidate, 0, len(sorted)),
		TopPerformers: make([]ScoredCandidate, 0, top),
	}
	for i, c := range sorted {
		sc := ScoredCandidate{Rank: i + 1, Candidate: c, Band: BandFor(c.OverallScore)}
		card.Ranked = append(card.Ranked, sc)
		if c.OverallScore > 0 && len(card.TopPerformers) < limit {
			card.TopPerformers = append(card.TopPerformers, sc)
		}
	}
	return card
}
