package ranking

import (
	"math"

	"github.com/jonathan/talent-match/internal/types"
)

// Experience blend weights and the years score reached at exactly the requirement
const (
	yearsWeight       = 0.6
	levelWeight       = 0.4
	sufficiencyScore  = 90.0
	surplusScoreRange = 10.0
)

// levelScores indexes level-match credit by distance between levels
var levelScores = []float64{100, 60, 25}

const distantLevelScore = 5.0

// ScoreExperience blends years sufficiency with seniority-level fit. Years
// beyond twice the requirement add nothing further. With no required years the
// level alone decides, with no required level the years alone decide, and with
// neither the candidate scores 100.
func ScoreExperience(candYears float64, candLevel string, reqYears float64, reqLevel string) (float64, types.ExperienceDetails) {
	d := types.ExperienceDetails{
		CandidateYears: candYears,
		RequiredYears:  reqYears,
		CandidateLevel: candLevel,
		RequiredLevel:  reqLevel,
		YearsGap:       math.Max(0, reqYears-candYears),
	}

	hasYears := reqYears > 0
	if hasYears {
		d.YearsScore = YearsScore(candYears, reqYears)
	}
	reqIdx := types.LevelIndex(reqLevel)
	hasLevel := reqIdx >= 0
	if hasLevel {
		candIdx := max(types.LevelIndex(candLevel), 0)
		d.LevelDistance = candIdx - reqIdx
		d.LevelScore = LevelScore(abs(d.LevelDistance))
	}

	switch {
	case hasYears && hasLevel:
		return yearsWeight*d.YearsScore + levelWeight*d.LevelScore, d
	case hasYears:
		return d.YearsScore, d
	case hasLevel:
		return d.LevelScore, d
	default:
		return 100, d
	}
}

// YearsScore rates candidate years against a positive requirement
func YearsScore(candYears, reqYears float64) float64 {
	ratio := math.Max(0, candYears) / reqYears
	if ratio < 1 {
		return sufficiencyScore * ratio
	}
	return sufficiencyScore + surplusScoreRange*math.Min(ratio-1, 1)
}

// LevelScore returns the credit for a level mismatch of distance steps
func LevelScore(distance int) float64 {
	if distance < len(levelScores) {
		return levelScores[distance]
	}
	return distantLevelScore
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
