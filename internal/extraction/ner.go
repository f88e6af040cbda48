package extraction

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// Tagger finds named-entity spans in text. Implementations must be safe for
// concurrent use once constructed.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]types.Entity, error)
}

// Entity cleaning and scoring constants
const (
	maxEntityWords     = 5
	longEntityWords    = 4
	minCapitalizedFrac = 0.5
	earlyFraction      = 0.2
	contactRadius      = 50
)

var (
	urlRe           = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	emailRe         = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	structuralRe    = regexp.MustCompile(`[|•:;{}\[\]<>=*\\]`)
	entitySpaceRe   = regexp.MustCompile(`\s+`)
	capitalizedSeq  = regexp.MustCompile(`\b[A-Z][\w&.'-]*(?:[ \t]+(?:of|and|&|the|for|de)?[ \t]*[A-Z][\w&.'-]*)*`)
	cityStateRe     = regexp.MustCompile(`\b([A-Z][a-z]+(?:[ \t][A-Z][a-z]+)*),[ \t]?([A-Z]{2})\b`)
	atCompanyRe     = regexp.MustCompile(`\b(?:at|@)[ \t]+([A-Z][\w&.-]*(?:[ \t]+[A-Z][\w&.-]*){0,3})`)
	dateEntityRe    = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?[ \t]+(?:19|20)\d{2}\b|\b\d{1,2}/(?:19|20)\d{2}\b|\b(?:19|20)\d{2}\b`)
	personLineWords = regexp.MustCompile(`^[A-Z][a-z'.-]+(?:[ \t]+[A-Z][a-z'.-]*){1,3}$`)
)

// CleanEntity strips URLs and email addresses from an entity and rejects text
// that cannot be a name: more than five words, fewer than half the words
// capitalized, or structural punctuation.
func CleanEntity(text string) (string, bool) {
	text = urlRe.ReplaceAllString(text, " ")
	text = emailRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(entitySpaceRe.ReplaceAllString(text, " "))
	text = strings.Trim(text, ",.-–()\"' ")
	if text == "" || structuralRe.MatchString(text) {
		return "", false
	}
	words := strings.Fields(text)
	if len(words) > maxEntityWords {
		return "", false
	}
	capitalized := 0
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			capitalized++
		}
	}
	if float64(capitalized)/float64(len(words)) < minCapitalizedFrac {
		return "", false
	}
	return text, true
}

// EntityConfidence scores an entity: a base by label, raised when it appears in
// the first fifth of the document or near a contact keyword, lowered when it
// runs past four words. The result is clamped to [0,1].
func EntityConfidence(ent types.Entity, text string, contactKeywords []string) float64 {
	conf := 0.6
	if ent.Label == types.EntityPerson || ent.Label == types.EntityOrg {
		conf = 0.7
	}
	if len(text) > 0 && float64(ent.Start) < float64(len(text))*earlyFraction {
		conf += 0.2
	}
	if nearContactKeyword(ent, text, contactKeywords) {
		conf += 0.1
	}
	if len(strings.Fields(ent.Text)) > longEntityWords {
		conf -= 0.2
	}
	return max(0, min(1, conf))
}

func nearContactKeyword(ent types.Entity, text string, keywords []string) bool {
	if len(keywords) == 0 || ent.Start < 0 || ent.End > len(text) || ent.Start > ent.End {
		return false
	}
	lo := max(0, ent.Start-contactRadius)
	hi := min(len(text), ent.End+contactRadius)
	around := strings.ToLower(text[lo:ent.Start] + " " + text[ent.End:hi])
	for _, kw := range keywords {
		if strings.Contains(around, kw) {
			return true
		}
	}
	return false
}

// RuleTagger tags entities with a gazetteer and a capitalization model:
// capitalized runs ending in an organization suffix or containing an
// institution word are ORG, known places and "City, ST" are GPE, month-year
// and year forms are DATE, and a short capitalized line near the top is PERSON.
type RuleTagger struct {
	orgSuffixes  map[string]struct{}
	institutions []string
	places       map[string]struct{}
	headers      map[string]struct{}
}

// NewRuleTagger builds a rule tagger from the taxonomy's gazetteers
func NewRuleTagger(tax *taxonomy.Taxonomy) *RuleTagger {
	lex := tax.Lexicon()
	t := &RuleTagger{
		orgSuffixes:  make(map[string]struct{}, len(lex.OrgSuffixes)),
		institutions: tax.InstitutionKeywords(),
		places:       make(map[string]struct{}, len(lex.Places)),
		headers:      make(map[string]struct{}),
	}
	for _, s := range lex.OrgSuffixes {
		t.orgSuffixes[s] = struct{}{}
	}
	for _, p := range lex.Places {
		t.places[p] = struct{}{}
	}
	for _, name := range tax.SectionNames() {
		for _, h := range tax.SectionHeaders(name) {
			t.headers[h] = struct{}{}
		}
	}
	return t
}

// Tag implements Tagger
func (t *RuleTagger) Tag(ctx context.Context, text string) ([]types.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TaggerError{Message: "context done", Cause: err}
	}
	var found []types.Entity
	found = append(found, t.person(text)...)

	for _, loc := range atCompanyRe.FindAllStringSubmatchIndex(text, -1) {
		found = append(found, span(text, loc[2], loc[3], types.EntityOrg))
	}
	for _, loc := range cityStateRe.FindAllStringIndex(text, -1) {
		found = append(found, span(text, loc[0], loc[1], types.EntityGPE))
	}
	for _, loc := range capitalizedSeq.FindAllStringIndex(text, -1) {
		phrase := text[loc[0]:loc[1]]
		switch {
		case t.isOrg(phrase):
			found = append(found, span(text, loc[0], loc[1], types.EntityOrg))
		case t.isPlace(phrase):
			found = append(found, span(text, loc[0], loc[1], types.EntityGPE))
		}
	}
	for _, loc := range dateEntityRe.FindAllStringIndex(text, -1) {
		found = append(found, span(text, loc[0], loc[1], types.EntityDate))
	}
	return resolveOverlaps(found), nil
}

// person returns the first short capitalized line among the first few lines
// that is not a section header
func (t *RuleTagger) person(text string) []types.Entity {
	offset := 0
	for i, line := range strings.SplitAfter(text, "\n") {
		if i >= 5 {
			break
		}
		trimmed := strings.TrimSpace(line)
		start := offset + strings.Index(line, trimmed)
		offset += len(line)
		if trimmed == "" {
			continue
		}
		if _, header := t.headers[strings.ToLower(trimmed)]; header {
			continue
		}
		if personLineWords.MatchString(trimmed) && !t.isOrg(trimmed) && !t.isPlace(trimmed) {
			return []types.Entity{span(text, start, start+len(trimmed), types.EntityPerson)}
		}
	}
	return nil
}

func (t *RuleTagger) isOrg(phrase string) bool {
	words := strings.Fields(strings.ToLower(phrase))
	if len(words) == 0 {
		return false
	}
	if _, ok := t.orgSuffixes[strings.TrimRight(words[len(words)-1], ",")]; ok && len(words) > 1 {
		return true
	}
	for _, w := range words {
		for _, inst := range t.institutions {
			if w == inst {
				return true
			}
		}
	}
	return false
}

func (t *RuleTagger) isPlace(phrase string) bool {
	_, ok := t.places[strings.ToLower(strings.TrimSpace(phrase))]
	return ok
}

func span(text string, start, end int, label string) types.Entity {
	return types.Entity{Text: text[start:end], Label: label, Start: start, End: end}
}

// resolveOverlaps keeps the earliest span, preferring the longer one on ties
func resolveOverlaps(in []types.Entity) []types.Entity {
	sort.SliceStable(in, func(i, j int) bool {
		if in[i].Start != in[j].Start {
			return in[i].Start < in[j].Start
		}
		return in[i].End-in[i].Start > in[j].End-in[j].Start
	})
	out := make([]types.Entity, 0, len(in))
	lastEnd := -1
	for _, e := range in {
		if e.Start < lastEnd {
			continue
		}
		out = append(out, e)
		lastEnd = e.End
	}
	return out
}
