package timeline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// defaultSeniority applies to titles with no recognised keyword
const defaultSeniority = 4

// SeniorityScore rates a job title from 1 (intern, junior) to 10 (C-level).
// Entry-level modifiers win unless a keyword of senior rank or above is present.
func (b *Builder) SeniorityScore(title string) int {
	lower := " " + nonAlnum.ReplaceAllString(strings.ToLower(title), " ") + " "
	lowest, highest := 0, 0
	for score, words := range b.tax.Lexicon().Seniority {
		for _, w := range words {
			if !strings.Contains(lower, " "+nonAlnum.ReplaceAllString(w, " ")+" ") {
				continue
			}
			if lowest == 0 || score < lowest {
				lowest = score
			}
			if score > highest {
				highest = score
			}
		}
	}
	switch {
	case highest == 0:
		return defaultSeniority
	case highest >= 5:
		return highest
	case lowest <= 3:
		return lowest
	default:
		return highest
	}
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// LevelFor maps a seniority score and total years to a job level
func LevelFor(seniority int, years float64) string {
	switch {
	case seniority >= 7:
		return types.LevelLead
	case seniority == 6:
		return types.LevelExpert
	case seniority == 5:
		if years >= 10 {
			return types.LevelExpert
		}
		return types.LevelSenior
	case seniority == 4:
		switch {
		case years >= 6:
			return types.LevelSenior
		case years >= 2:
			return types.LevelMid
		default:
			return types.LevelEntry
		}
	default:
		return types.LevelEntry
	}
}

// MostRecent returns the role with the latest start date, or false when there are none
func MostRecent(tl *types.Timeline) (types.TimelineRole, bool) {
	if tl == nil || len(tl.Roles) == 0 {
		return types.TimelineRole{}, false
	}
	roles := append([]types.TimelineRole(nil), tl.Roles...)
	sort.SliceStable(roles, func(i, j int) bool { return roles[i].Start.After(roles[j].Start) })
	return roles[0], true
}
