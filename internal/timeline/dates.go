package timeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// earliestYear bounds plausible resume dates
const earliestYear = 1950

const monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`

const datePattern = `\b` + monthPattern + `\s*,?\s*(?:19|20)\d{2}\b|\b\d{1,2}\s*/\s*(?:19|20)\d{2}\b|\b(?:19|20)\d{2}\b`

const presentPattern = `present|current|now|today|ongoing|to date`

var (
	monthYearRe = regexp.MustCompile(`(?i)^(` + monthPattern + `)\s*,?\s*(\d{4})$`)
	numericRe   = regexp.MustCompile(`^(\d{1,2})\s*[/.\-]\s*(\d{4})$`)
	yearRe      = regexp.MustCompile(`^(\d{4})$`)
	presentRe   = regexp.MustCompile(`(?i)^(?:` + presentPattern + `)$`)
	anyYearRe   = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	rangeRe     = regexp.MustCompile(`(?i)(` + datePattern + `)\s*(?:-|–|—|to|until|through|thru)\s*(` + datePattern + `|\b(?:` + presentPattern + `)\b)`)
)

var monthIndex = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

// Range is a parsed date range found in text
type Range struct {
	Start     time.Time
	End       time.Time
	IsCurrent bool
	Raw       string
	Loc       [2]int // byte offsets of Raw within the searched text
}

// IsPresent reports whether s denotes an ongoing end date
func IsPresent(s string) bool {
	return presentRe.MatchString(strings.TrimSpace(s))
}

// ParseDate parses one date with a cascade: the dateparse library, then "Month YYYY",
// then "MM/YYYY", then a bare year. Results are truncated to the first of the month in UTC,
// except "Present" which resolves to today.
func ParseDate(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(strings.Trim(s, ".,;()"))
	if s == "" {
		return time.Time{}, false
	}
	if IsPresent(s) {
		return Today(now), true
	}

	numeric := numericRe.FindStringSubmatch(s)
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil && plausible(t, now) {
		// dateparse reads some slashed forms day-first; trust it only when the month agrees
		if numeric == nil || strconv.Itoa(int(t.Month())) == strings.TrimLeft(numeric[1], "0") {
			return monthStart(t), true
		}
	}

	if m := monthYearRe.FindStringSubmatch(s); m != nil {
		month := monthIndex[strings.ToLower(m[1])[:3]]
		year, _ := strconv.Atoi(m[2])
		t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		if plausible(t, now) {
			return t, true
		}
	}
	if numeric != nil {
		month, _ := strconv.Atoi(numeric[1])
		year, _ := strconv.Atoi(numeric[2])
		t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		if month >= 1 && month <= 12 && plausible(t, now) {
			return t, true
		}
	}
	if m := yearRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		if plausible(t, now) {
			return t, true
		}
	}
	return time.Time{}, false
}

// FindRange locates and parses the first date range in text.
// "Present", "Current" and "Now" end dates resolve to today and set IsCurrent.
func FindRange(text string, now time.Time) (Range, bool) {
	for _, loc := range rangeRe.FindAllStringSubmatchIndex(text, -1) {
		startRaw := text[loc[2]:loc[3]]
		endRaw := text[loc[4]:loc[5]]
		start, ok := ParseDate(startRaw, now)
		if !ok {
			continue
		}
		r := Range{Start: start, Raw: text[loc[0]:loc[1]], Loc: [2]int{loc[0], loc[1]}}
		if IsPresent(endRaw) {
			r.End = Today(now)
			r.IsCurrent = true
		} else {
			end, ok := ParseDate(endRaw, now)
			if !ok || end.Before(start) {
				continue
			}
			r.End = end
		}
		return r, true
	}
	return Range{}, false
}

// FindYear returns the last plausible four-digit year in text
func FindYear(text string, now time.Time) (time.Time, bool) {
	matches := anyYearRe.FindAllString(text, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if t, ok := ParseDate(matches[i], now); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthsBetween counts whole months from start to end, never less than one for a valid range
func MonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 1 {
		months = 1
	}
	return months
}

// Today truncates now to midnight UTC; ongoing roles end here
func Today(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func plausible(t time.Time, now time.Time) bool {
	return t.Year() >= earliestYear && t.Year() <= now.Year()+1
}
