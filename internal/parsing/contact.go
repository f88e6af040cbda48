package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`(?:\+?\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\b`)
	linkedInRe = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/in/[\w-]+/?`)
	gitHubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w-]+/?`)
	websiteRe  = regexp.MustCompile(`(?i)\bhttps?://[^\s,|]+|\bwww\.[^\s,|]+`)
	locationRe = regexp.MustCompile(`\b([A-Z][a-zA-Z]+(?:[ .][A-Z][a-zA-Z]+)*,[ \t]*(?:[A-Z]{2}|[A-Z][a-z]+(?:[ \t][A-Z][a-z]+)?))\b`)
	nameLineRe = regexp.MustCompile(`^[A-Z][A-Za-z'.-]*(?:[ \t]+[A-Z][A-Za-z'.-]*){1,3}$`)
)

// contactScanLines bounds the lines searched for a name
const contactScanLines = 5

// ExtractContact pulls contact details from the top of a resume. PERSON and
// GPE entities, when given, take precedence over the line heuristics for the
// name and location.
func ExtractContact(text string, entities []types.Entity) types.Contact {
	var c types.Contact
	c.Email = emailRe.FindString(text)
	if m := linkedInRe.FindString(text); m != "" {
		c.LinkedIn = strings.TrimSuffix(m, "/")
	}
	if m := gitHubRe.FindString(text); m != "" {
		c.GitHub = strings.TrimSuffix(m, "/")
	}
	for _, site := range websiteRe.FindAllString(text, -1) {
		lower := strings.ToLower(site)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") {
			continue
		}
		c.Website = strings.TrimRight(site, ".")
		break
	}
	// phone numbers inside URLs or emails are not phone numbers
	scrubbed := websiteRe.ReplaceAllString(emailRe.ReplaceAllString(text, " "), " ")
	c.Phone = strings.TrimSpace(phoneRe.FindString(scrubbed))

	c.Name = bestEntity(entities, types.EntityPerson)
	if c.Name == "" {
		c.Name = nameFromLines(text)
	}
	if m := locationRe.FindStringSubmatch(scrubbed); m != nil {
		c.Location = m[1]
	} else {
		c.Location = bestEntity(entities, types.EntityGPE)
	}
	return c
}

func bestEntity(entities []types.Entity, label string) string {
	best, bestConf := "", -1.0
	for _, e := range entities {
		if e.Label == label && e.Confidence > bestConf {
			best, bestConf = e.Text, e.Confidence
		}
	}
	return best
}

// nameFromLines returns the first short line of capitalized words near the top
func nameFromLines(text string) string {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if seen++; seen > contactScanLines {
			break
		}
		if strings.ContainsAny(line, "@0123456789/:") {
			continue
		}
		if nameLineRe.MatchString(line) {
			return line
		}
	}
	return ""
}
