package quality

import (
	"sort"

	"github.com/jonathan/talent-match/internal/types"
)

// weakShare is the share of a category's points below which it earns feedback
const weakShare = 0.5

var categoryAdvice = map[string]string{
	CategoryContact:        "Add complete contact details: email, phone, location and a profile link",
	CategorySummary:        "Write a focused professional summary of two to four sentences",
	CategoryExperience:     "List each role with dates and at least two concrete achievements",
	CategorySkills:         "Expand the skills section with the tools and technologies you use",
	CategoryEducation:      "Include your degree and institution",
	CategoryFormatting:     "Use clear section headings and bullet points",
	CategoryQuantification: "Quantify achievements with numbers, percentages or amounts",
	CategoryLength:         "Aim for roughly 300 to 1000 words",
}

var penaltyAdvice = map[string]string{
	PenaltyOutdated:     "De-emphasize outdated technologies",
	PenaltyBuzzwords:    "Replace generic buzzwords with specific accomplishments",
	PenaltyUnquantified: "Show measurable impact in at least one achievement",
}

// feedback lists advice for weak categories and applied penalties in a stable order
func feedback(r *types.QualityReport) []string {
	var out []string
	for _, c := range sortedKeys(categoryMax) {
		if r.Breakdown[c] < weakShare*categoryMax[c] {
			out = append(out, categoryAdvice[c])
		}
	}
	for _, p := range sortedKeys(r.Penalties) {
		if r.Penalties[p] > 0 {
			out = append(out, penaltyAdvice[p])
		}
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
