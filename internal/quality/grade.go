// Package quality grades a resume on completeness, formatting and impact,
// independently of any job.
package quality

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// Base categories and their maximum points
const (
	CategoryContact        = "contact"
	CategorySummary        = "summary"
	CategoryExperience     = "experience"
	CategorySkills         = "skills"
	CategoryEducation      = "education"
	CategoryFormatting     = "formatting"
	CategoryQuantification = "quantification"
	CategoryLength         = "length"
)

// Bonus and penalty names
const (
	BonusProgression    = "career_progression"
	BonusCertifications = "certifications"
	BonusModernStack    = "modern_stack"
	BonusLeadership     = "leadership"
	BonusKeywords       = "keyword_density"
	BonusInternational  = "international"

	PenaltyOutdated     = "outdated_skills"
	PenaltyBuzzwords    = "buzzwords"
	PenaltyUnquantified = "no_quantified_impact"
)

// Caps on the bonus and penalty totals
const (
	MaxBonus   = 25.0
	MaxPenalty = 15.0
)

var categoryMax = map[string]float64{
	CategoryContact:        8,
	CategorySummary:        12,
	CategoryExperience:     20,
	CategorySkills:         12,
	CategoryEducation:      8,
	CategoryFormatting:     8,
	CategoryQuantification: 8,
	CategoryLength:         4,
}

var gradeBands = []struct {
	min   float64
	grade string
}{
	{95, "A+"},
	{90, "A"},
	{85, "B+"},
	{80, "B"},
	{75, "C+"},
	{70, "C"},
	{60, "D"},
}

var (
	quantifiedRe = regexp.MustCompile(`\d|%|\$`)
	wordRe       = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}'+#.-]*`)
)

// maxLineLength is the longest line still considered well formatted
const maxLineLength = 200

// Grader scores resumes against the taxonomy's keyword lexicon
type Grader struct {
	tax *taxonomy.Taxonomy
}

// NewGrader creates a grader. A nil taxonomy uses the embedded default.
func NewGrader(tax *taxonomy.Taxonomy) *Grader {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Grader{tax: tax}
}

// Grade scores a profile with the default taxonomy
func Grade(profile *types.CandidateProfile, rawSections map[string]string) *types.QualityReport {
	return NewGrader(nil).Grade(profile, rawSections)
}

// Grade scores a profile. rawSections defaults to the profile's own sections.
// The score is base + bonuses - penalties clamped to [0,100].
func (g *Grader) Grade(profile *types.CandidateProfile, rawSections map[string]string) *types.QualityReport {
	if profile == nil {
		profile = &types.CandidateProfile{}
	}
	if rawSections == nil {
		rawSections = profile.Sections
	}
	text := profile.RawText
	if text == "" {
		text = strings.Join(sectionTexts(rawSections), "\n")
	}
	lower := strings.ToLower(text)
	achievements := allAchievements(profile)

	report := &types.QualityReport{
		Breakdown: map[string]float64{
			CategoryContact:        contactPoints(profile.Contact),
			CategorySummary:        summaryPoints(profile.Summary),
			CategoryExperience:     experiencePoints(profile.Experience),
			CategorySkills:         skillPoints(len(profile.Skills)),
			CategoryEducation:      educationPoints(profile.Education),
			CategoryFormatting:     formattingPoints(text, rawSections, achievements),
			CategoryQuantification: quantificationPoints(achievements),
			CategoryLength:         lengthPoints(len(wordRe.FindAllString(text, -1))),
		},
	}

	lex := g.tax.Lexicon()
	report.Bonuses = capTotal(map[string]float64{
		BonusProgression:    progressionPoints(profile.Timeline),
		BonusCertifications: math.Min(2*float64(len(profile.Certifications)), 5),
		BonusModernStack:    math.Min(float64(countSkills(profile, lex.ModernSkills)), 4),
		BonusLeadership:     math.Min(float64(countTerms(lower, lex.Leadership)), 4),
		BonusKeywords:       math.Min(float64(countTerms(lower, lex.IndustryKeywords)), 4),
		BonusInternational:  math.Min(float64(countTerms(lower, lex.International)), 3),
	}, MaxBonus)
	report.Penalties = capTotal(map[string]float64{
		PenaltyOutdated:     math.Min(2*float64(countSkills(profile, lex.OutdatedSkills)), 5),
		PenaltyBuzzwords:    math.Min(float64(countTerms(lower, lex.Buzzwords)), 5),
		PenaltyUnquantified: unquantifiedPenalty(achievements),
	}, MaxPenalty)

	score := report.BaseTotal() + report.BonusTotal() - report.PenaltyTotal()
	report.Score = math.Round(math.Max(0, math.Min(100, score))*10) / 10
	report.Grade = LetterGrade(report.Score)
	report.Feedback = feedback(report)
	return report
}

// LetterGrade maps a score to a letter grade
func LetterGrade(score float64) string {
	for _, b := range gradeBands {
		if score >= b.min {
			return b.grade
		}
	}
	return "F"
}

// CategoryMax returns the maximum points of a base category
func CategoryMax(category string) float64 {
	return categoryMax[category]
}

func contactPoints(c types.Contact) float64 {
	points := 0.0
	if c.Name != "" {
		points += 2
	}
	if c.Email != "" {
		points += 2
	}
	if c.Phone != "" {
		points += 2
	}
	if c.LinkedIn != "" || c.GitHub != "" || c.Website != "" {
		points++
	}
	if c.Location != "" {
		points++
	}
	return points
}

func summaryPoints(summary string) float64 {
	words := len(strings.Fields(summary))
	switch {
	case words == 0:
		return 0
	case words < 10:
		return 4
	case words < 25:
		return 8
	case words <= 100:
		return 12
	default:
		return 8
	}
}

// experiencePoints gives up to 12 for roles, 5 for described roles and 3 for dated roles
func experiencePoints(roles []types.ExperienceRecord) float64 {
	if len(roles) == 0 {
		return 0
	}
	described, dated := 0, 0
	for _, r := range roles {
		if len(r.Achievements) >= 2 {
			described++
		}
		if r.StartDate != nil {
			dated++
		}
	}
	n := float64(len(roles))
	return math.Min(4*n, 12) + 5*float64(described)/n + 3*float64(dated)/n
}

func skillPoints(n int) float64 {
	switch {
	case n >= 15:
		return 12
	case n >= 10:
		return 10
	case n >= 5:
		return 7
	case n >= 1:
		return 3
	default:
		return 0
	}
}

func educationPoints(records []types.EducationRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	points := 5.0
	for _, r := range records {
		if r.DegreeLevel != "" {
			points += 2
			break
		}
	}
	for _, r := range records {
		if r.Institution != "" {
			points++
			break
		}
	}
	return points
}

// formattingPoints rewards recognised sections, bullet achievements and short lines
func formattingPoints(text string, sections map[string]string, achievements []string) float64 {
	named := 0
	for name := range sections {
		if name != "header" {
			named++
		}
	}
	points := 0.0
	switch {
	case named >= 5:
		points += 4
	case named >= 3:
		points += 3
	case named >= 1:
		points++
	}
	if len(achievements) > 0 {
		points += 2
	}
	if text != "" {
		long := false
		for _, line := range strings.Split(text, "\n") {
			if len([]rune(line)) > maxLineLength {
				long = true
				break
			}
		}
		if !long {
			points += 2
		}
	}
	return points
}

func quantificationPoints(achievements []string) float64 {
	if len(achievements) == 0 {
		return 0
	}
	ratio := float64(countQuantified(achievements)) / float64(len(achievements))
	switch {
	case ratio >= 0.5:
		return 8
	case ratio >= 0.3:
		return 6
	case ratio >= 0.1:
		return 3
	case ratio > 0:
		return 1
	default:
		return 0
	}
}

func lengthPoints(words int) float64 {
	switch {
	case words >= 300 && words <= 1000:
		return 4
	case words >= 150 && words <= 1500:
		return 2
	case words > 0:
		return 1
	default:
		return 0
	}
}

func progressionPoints(tl *types.Timeline) float64 {
	switch {
	case tl == nil:
		return 0
	case tl.Progression == types.ProgressionUpward:
		return 5
	case tl.Promotions > 0:
		return 3
	default:
		return 0
	}
}

func unquantifiedPenalty(achievements []string) float64 {
	if countQuantified(achievements) == 0 {
		return 5
	}
	return 0
}

func countQuantified(achievements []string) int {
	n := 0
	for _, a := range achievements {
		if quantifiedRe.MatchString(a) {
			n++
		}
	}
	return n
}

// countTerms counts distinct lexicon terms present in lower as whole words
func countTerms(lower string, terms []string) int {
	padded := " " + strings.Join(wordRe.FindAllString(lower, -1), " ") + " "
	n := 0
	for _, term := range terms {
		if strings.Contains(padded, " "+term+" ") {
			n++
		}
	}
	return n
}

// countSkills counts lexicon skills present on the profile
func countSkills(profile *types.CandidateProfile, names []string) int {
	have := make(map[string]struct{}, len(profile.Skills))
	for name := range profile.Skills {
		have[strings.ToLower(name)] = struct{}{}
	}
	n := 0
	for _, name := range names {
		if _, ok := have[strings.ToLower(name)]; ok {
			n++
		}
	}
	return n
}

// capTotal scales values down proportionally when their sum exceeds limit
func capTotal(values map[string]float64, limit float64) map[string]float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	if total <= limit {
		return values
	}
	scale := limit / total
	for k, v := range values {
		values[k] = v * scale
	}
	return values
}

func allAchievements(profile *types.CandidateProfile) []string {
	var out []string
	for _, r := range profile.Experience {
		out = append(out, r.Achievements...)
	}
	return out
}

func sectionTexts(sections map[string]string) []string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, sections[name])
	}
	return out
}
