// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCandidateProfile outputs contact, skills and experience highlights of a parsed resume
func (p *Printer) PrintCandidateProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:       %s\n", orDash(profile.Contact.Name))
	fmt.Fprintf(&sb, "Email:      %s\n", orDash(profile.Contact.Email))
	fmt.Fprintf(&sb, "Experience: %.1f years", profile.TotalExperienceYears)
	if profile.Level != "" {
		fmt.Fprintf(&sb, " (%s)", profile.Level)
	}
	sb.WriteString("\n\n")

	if len(profile.Skills) > 0 {
		names := profile.SkillNames()
		sort.Slice(names, func(i, j int) bool {
			a, b := profile.Skills[names[i]], profile.Skills[names[j]]
			if a.Confidence != b.Confidence {
				return a.Confidence > b.Confidence
			}
			return names[i] < names[j]
		})
		fmt.Fprintf(&sb, "Skills (%d):\n", len(names))
		for _, name := range names[:min(len(names), maxItemsToShow)] {
			s := profile.Skills[name]
			fmt.Fprintf(&sb, "  • %s  %s, %.2f\n", name, s.Proficiency, s.Confidence)
		}
		writeMore(&sb, len(names), maxItemsToShow, "skills")
		sb.WriteString("\n")
	}

	if len(profile.Experience) > 0 {
		sb.WriteString("Roles:\n")
		for _, r := range profile.Experience[:min(len(profile.Experience), maxItemsToShow)] {
			fmt.Fprintf(&sb, "  • %s @ %s (%d mo)\n", r.Title, orDash(r.Company), r.DurationMonths)
		}
		writeMore(&sb, len(profile.Experience), maxItemsToShow, "roles")
	}

	p.printBox("PARSED CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobProfile outputs a human-readable summary of the parsed job profile.
func (p *Printer) PrintJobProfile(profile *types.JobProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Company:  %s\n", orDash(profile.Company))
	fmt.Fprintf(&sb, "Role:     %s\n", profile.Title)
	if profile.MinExperienceYears > 0 || profile.RequiredLevel != "" {
		fmt.Fprintf(&sb, "Needs:    %.0f+ years", profile.MinExperienceYears)
		if profile.RequiredLevel != "" {
			fmt.Fprintf(&sb, ", %s", profile.RequiredLevel)
		}
		sb.WriteString("\n")
	}
	if profile.RequiredDegree != "" {
		fmt.Fprintf(&sb, "Degree:   %s", profile.RequiredDegree)
		if profile.RequiredField != "" {
			fmt.Fprintf(&sb, " in %s", profile.RequiredField)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(profile.RequiredSkills) > 0 {
		sb.WriteString("Required:\n")
		for _, s := range profile.RequiredSkills[:min(len(profile.RequiredSkills), maxItemsToShow)] {
			sb.WriteString("  • " + s)
			if profile.IsCritical(s) {
				sb.WriteString(" (critical)")
			}
			sb.WriteString("\n")
		}
		writeMore(&sb, len(profile.RequiredSkills), maxItemsToShow, "")
		sb.WriteString("\n")
	}

	if len(profile.PreferredSkills) > 0 {
		sb.WriteString("Preferred:\n")
		for _, s := range profile.PreferredSkills[:min(len(profile.PreferredSkills), 3)] {
			sb.WriteString("  • " + s + "\n")
		}
		writeMore(&sb, len(profile.PreferredSkills), 3, "")
	}

	p.printBox("PARSED JOB PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTimeline outputs progression, tenure and employment gaps
func (p *Printer) PrintTimeline(tl *types.Timeline) {
	if tl == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total:        %.1f years\n", tl.TotalExperienceYears)
	fmt.Fprintf(&sb, "Progression:  %s (%d up, %d down)\n", tl.Progression, tl.Promotions, tl.Regressions)
	fmt.Fprintf(&sb, "Avg tenure:   %.1f months\n", tl.AvgTenureMonths)
	fmt.Fprintf(&sb, "Job hopping:  %.2f\n", tl.JobHoppingScore)

	if len(tl.Gaps) > 0 {
		sb.WriteString("\nGaps:\n")
		for _, g := range tl.Gaps {
			fmt.Fprintf(&sb, "  • %s → %s  %.1f months\n", g.Start.Format("2006-01"), g.End.Format("2006-01"), g.Months)
		}
	}

	p.printBox("CAREER TIMELINE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs factor scores and, when given, the explanation of one match
func (p *Printer) PrintMatch(result *types.MatchResult, ex *types.Explanation) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Final score: %.1f", result.FinalScore)
	if ex != nil {
		fmt.Fprintf(&sb, " (%s)", ex.Tier)
	}
	sb.WriteString("\n\n")

	for _, f := range types.Factors {
		score := result.Scores.Get(f)
		fmt.Fprintf(&sb, "%-11s %5.1f × %.2f  %s\n", f, score, result.Weights.Get(f), bar(score))
	}
	if result.Details.Semantic.Fallback {
		fmt.Fprintf(&sb, "(semantic: %s unavailable, neutral score used)\n", result.Details.Semantic.Provider)
	}

	if ex != nil {
		if len(ex.KeyGaps) > 0 {
			sb.WriteString("\nGaps:\n")
			for _, g := range ex.KeyGaps[:min(len(ex.KeyGaps), maxItemsToShow)] {
				fmt.Fprintf(&sb, "  [%s] %s\n", g.Severity, g.Item)
			}
			writeMore(&sb, len(ex.KeyGaps), maxItemsToShow, "gaps")
		}
		// one risk per line keeps every bucket inside the box width
		sb.WriteString("\nRisk:\n")
		fmt.Fprintf(&sb, "  retention %s\n", ex.Risk.RetentionRisk)
		fmt.Fprintf(&sb, "  overqualification %s\n", ex.Risk.OverqualificationRisk)
		fmt.Fprintf(&sb, "  skill gap %s\n", ex.Risk.SkillGapRisk)
		fmt.Fprintf(&sb, "Decision: %s\n", ex.Recommendations.Decision)
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs the top ranked candidates for one job
func (p *Printer) PrintRanking(results []types.MatchResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Candidates ranked: %d\n\n", len(results))
	for i, r := range results[:min(len(results), maxItemsToShow)] {
		fmt.Fprintf(&sb, "#%d  %-24s %5.1f\n", i+1, clip(r.CandidateID, 24), r.FinalScore)
	}
	writeMore(&sb, len(results), maxItemsToShow, "candidates")

	p.printBox("CANDIDATE RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuality outputs a resume quality report
func (p *Printer) PrintQuality(report *types.QualityReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %.1f  Grade: %s\n", report.Score, report.Grade)
	fmt.Fprintf(&sb, "Base %.1f + bonus %.1f - penalty %.1f\n\n",
		report.BaseTotal(), report.BonusTotal(), report.PenaltyTotal())

	for _, k := range sortedKeys(report.Breakdown) {
		fmt.Fprintf(&sb, "  %-15s %5.1f\n", k, report.Breakdown[k])
	}

	if len(report.Feedback) > 0 {
		sb.WriteString("\nFeedback:\n")
		for _, f := range report.Feedback {
			sb.WriteString("  • " + f + "\n")
		}
	}

	p.printBox("RESUME QUALITY", strings.TrimSuffix(sb.String(), "\n"))
}

// bar renders a 0-100 score as a ten-cell bar
func bar(score float64) string {
	filled := int(score/10 + 0.5)
	filled = max(0, min(filled, 10))
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

//nolint:errcheck // strings.Builder writes do not fail
func writeMore(sb *strings.Builder, total, shown int, noun string) {
	if total <= shown {
		return
	}
	if noun == "" {
		fmt.Fprintf(sb, "  ... and %d more\n", total-shown)
		return
	}
	fmt.Fprintf(sb, "  ... and %d more %s\n", total-shown, noun)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
