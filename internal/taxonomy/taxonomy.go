package taxonomy

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Confidence assigned to taxonomy hits
const (
	CanonicalConfidence = 1.0
	AliasConfidence     = 0.95
	FuzzyConfidence     = 0.75
)

// minFuzzyLength is the shortest term eligible for edit-distance matching
const minFuzzyLength = 5

// Skill is a canonical skill with its category
type Skill struct {
	Canonical string `json:"canonical"`
	Category  string `json:"category"`
}

// Match is the result of resolving a raw term against the taxonomy
type Match struct {
	Skill
	Confidence float64 `json:"confidence"`
	Fuzzy      bool    `json:"fuzzy,omitempty"`
}

// CategoryPattern is the compiled alias pattern for one skill category
type CategoryPattern struct {
	Category string
	Regex    *regexp.Regexp
}

// Cue is a set of proficiency patterns for one level
type Cue struct {
	Level    string
	Patterns []*regexp.Regexp
}

// DegreeLevel is one rung of the degree hierarchy
type DegreeLevel struct {
	Name     string
	Rank     int
	Keywords []string
}

// Lexicon holds keyword lists used by timeline, parsing and grading
type Lexicon struct {
	Seniority        map[int][]string
	Buzzwords        []string
	Leadership       []string
	ActionVerbs      []string
	OutdatedSkills   []string
	ModernSkills     []string
	IndustryKeywords []string
	International    []string
	ContactKeywords  []string
	Placeholders     []string
	OrgSuffixes      []string
	Places           []string
}

// Taxonomy is immutable after construction and safe for concurrent use
type Taxonomy struct {
	aliases    map[string]Match
	canonical  map[string]Skill
	fuzzyKeys  []string
	exclusions map[string]struct{}
	indicators []string
	ambiguous  map[string]struct{}
	patterns   []CategoryPattern
	caseOnly   []Skill

	sections     map[string][]string
	sectionNames []string
	cues         []Cue

	degrees       []DegreeLevel
	degreeRank    map[string]int
	institutions  []string
	honors        []string
	relatedFields map[string][]string

	lexicon Lexicon
}

var (
	versionSuffix   = regexp.MustCompile(`[\s\-_]*v?\d+(?:\.\d+)*(?:\.x)?\+?$`)
	extensionSuffix = regexp.MustCompile(`\.(?:js|py|rb|go)$`)
	spaceRun        = regexp.MustCompile(`\s+`)
)

// proficiency levels, strongest first
var cueOrder = []string{"expert", "advanced", "intermediate", "beginner"}

func build(doc *document) (*Taxonomy, error) {
	t := &Taxonomy{
		aliases:       make(map[string]Match),
		canonical:     make(map[string]Skill),
		exclusions:    toSet(doc.skills.Exclusions),
		ambiguous:     toSet(doc.skills.Ambiguous),
		sections:      make(map[string][]string),
		degreeRank:    make(map[string]int),
		relatedFields: make(map[string][]string),
	}
	for _, ind := range doc.skills.TechnicalIndicators {
		t.indicators = append(t.indicators, strings.ToLower(ind))
	}

	categories := make([]string, 0, len(doc.skills.Categories))
	for c := range doc.skills.Categories {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, category := range categories {
		var patternAliases []string
		for _, entry := range doc.skills.Categories[category] {
			skill := Skill{Canonical: entry.Canonical, Category: category}
			canonKey := normalizeKey(entry.Canonical)
			if existing, ok := t.canonical[canonKey]; ok {
				return nil, &LoadError{
					File:    "skills.json",
					Message: fmt.Sprintf("canonical %q declared in both %s and %s", entry.Canonical, existing.Category, category),
				}
			}
			t.canonical[canonKey] = skill
			t.aliases[canonKey] = Match{Skill: skill, Confidence: CanonicalConfidence}

			for _, alias := range entry.Aliases {
				key := normalizeKey(alias)
				if prev, ok := t.aliases[key]; ok && prev.Canonical != skill.Canonical {
					return nil, &LoadError{
						File:    "skills.json",
						Message: fmt.Sprintf("alias %q maps to both %s and %s", alias, prev.Canonical, skill.Canonical),
					}
				}
				if key != canonKey {
					t.aliases[key] = Match{Skill: skill, Confidence: AliasConfidence}
				}
				if _, amb := t.ambiguous[key]; !amb {
					patternAliases = append(patternAliases, key)
				}
			}
			if _, amb := t.ambiguous[canonKey]; !amb {
				patternAliases = append(patternAliases, canonKey)
			} else if utf8.RuneCountInString(entry.Canonical) >= 2 {
				t.caseOnly = append(t.caseOnly, skill)
			}
		}
		if len(patternAliases) == 0 {
			continue
		}
		re, err := compileAliasPattern(patternAliases)
		if err != nil {
			return nil, &LoadError{File: "skills.json", Message: "failed to compile pattern for " + category, Cause: err}
		}
		t.patterns = append(t.patterns, CategoryPattern{Category: category, Regex: re})
	}

	for key := range t.aliases {
		if utf8.RuneCountInString(key) >= minFuzzyLength {
			t.fuzzyKeys = append(t.fuzzyKeys, key)
		}
	}
	sort.Strings(t.fuzzyKeys)

	for name, headers := range doc.sections.Sections {
		for _, h := range headers {
			t.sections[name] = append(t.sections[name], strings.ToLower(h))
		}
		t.sectionNames = append(t.sectionNames, name)
	}
	sort.Strings(t.sectionNames)

	for _, level := range cueOrder {
		patterns, ok := doc.proficiency.Cues[level]
		if !ok {
			continue
		}
		cue := Cue{Level: level}
		for _, p := range patterns {
			re, err := regexp.Compile(`(?i)\b` + p + `\b`)
			if err != nil {
				return nil, &LoadError{File: "proficiency.json", Message: "invalid cue " + p, Cause: err}
			}
			cue.Patterns = append(cue.Patterns, re)
		}
		t.cues = append(t.cues, cue)
	}

	for name, lvl := range doc.degrees.Levels {
		t.degrees = append(t.degrees, DegreeLevel{Name: name, Rank: lvl.Rank, Keywords: lowerAll(lvl.Keywords)})
		t.degreeRank[name] = lvl.Rank
	}
	sort.Slice(t.degrees, func(i, j int) bool { return t.degrees[i].Rank > t.degrees[j].Rank })
	t.institutions = lowerAll(doc.degrees.InstitutionKeywords)
	t.honors = lowerAll(doc.degrees.Honors)
	for field, related := range doc.degrees.RelatedFields {
		t.relatedFields[strings.ToLower(field)] = lowerAll(related)
	}

	lex := doc.lexicon
	t.lexicon = Lexicon{
		Seniority:        make(map[int][]string, len(lex.Seniority)),
		Buzzwords:        lowerAll(lex.Buzzwords),
		Leadership:       lowerAll(lex.Leadership),
		ActionVerbs:      lowerAll(lex.ActionVerbs),
		OutdatedSkills:   lex.OutdatedSkills,
		ModernSkills:     lex.ModernSkills,
		IndustryKeywords: lowerAll(lex.IndustryKeywords),
		International:    lowerAll(lex.International),
		ContactKeywords:  lowerAll(lex.ContactKeywords),
		Placeholders:     lowerAll(lex.Placeholders),
		OrgSuffixes:      lowerAll(lex.OrgSuffixes),
		Places:           lowerAll(lex.Places),
	}
	for k, words := range lex.Seniority {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, &LoadError{File: "lexicon.json", Message: "invalid seniority score " + k, Cause: err}
		}
		t.lexicon.Seniority[n] = lowerAll(words)
	}

	return t, nil
}

// compileAliasPattern builds one case-insensitive alternation, longest alias first so
// "javascript" wins over "java". Word boundaries are checked by the caller because
// aliases such as "c++" and ".net" do not start or end on word characters.
func compileAliasPattern(aliases []string) (*regexp.Regexp, error) {
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i]) != len(aliases[j]) {
			return len(aliases[i]) > len(aliases[j])
		}
		return aliases[i] < aliases[j]
	})
	quoted := make([]string, len(aliases))
	for i, a := range aliases {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(a), " ", `\s+`)
	}
	return regexp.Compile(`(?i)(?:` + strings.Join(quoted, "|") + `)(?:\s?v?\d+(?:\.\d+)*)?`)
}

// normalizeKey lowercases, trims and collapses whitespace
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimRight(s, ",;:!?()[]{}\"'")
	s = strings.TrimLeft(s, "([{\"'")
	return spaceRun.ReplaceAllString(s, " ")
}

// Lookup resolves a raw term to a canonical skill by exact alias, then with any version
// suffix stripped, then with a language file extension stripped
func (t *Taxonomy) Lookup(raw string) (Match, bool) {
	key := normalizeKey(raw)
	if key == "" {
		return Match{}, false
	}
	if m, ok := t.aliases[key]; ok {
		return m, true
	}
	stripped := strings.TrimSpace(versionSuffix.ReplaceAllString(key, ""))
	if stripped != "" && stripped != key {
		if m, ok := t.aliases[stripped]; ok {
			return m, true
		}
	}
	if ext := extensionSuffix.ReplaceAllString(stripped, ""); ext != "" && ext != stripped {
		if m, ok := t.aliases[ext]; ok {
			return m, true
		}
	}
	return Match{}, false
}

// Canonicalize returns the canonical skill name for a raw term
func (t *Taxonomy) Canonicalize(raw string) (string, bool) {
	m, ok := t.Lookup(raw)
	if !ok {
		return "", false
	}
	return m.Canonical, true
}

// FuzzyLookup falls back to an edit distance of one for terms of five or more characters
// when exact lookup fails. Fuzzy hits carry FuzzyConfidence.
func (t *Taxonomy) FuzzyLookup(raw string) (Match, bool) {
	if m, ok := t.Lookup(raw); ok {
		return m, true
	}
	key := normalizeKey(raw)
	n := utf8.RuneCountInString(key)
	if n < minFuzzyLength {
		return Match{}, false
	}
	for _, candidate := range t.fuzzyKeys {
		diff := utf8.RuneCountInString(candidate) - n
		if diff < -1 || diff > 1 {
			continue
		}
		if levenshtein.ComputeDistance(key, candidate) <= 1 {
			m := t.aliases[candidate]
			return Match{Skill: m.Skill, Confidence: FuzzyConfidence, Fuzzy: true}, true
		}
	}
	return Match{}, false
}

// Category returns the category of a canonical skill, or "" when unknown
func (t *Taxonomy) Category(canonical string) string {
	if s, ok := t.canonical[normalizeKey(canonical)]; ok {
		return s.Category
	}
	return ""
}

// IsCanonical reports whether name is a canonical skill name
func (t *Taxonomy) IsCanonical(name string) bool {
	_, ok := t.canonical[normalizeKey(name)]
	return ok
}

// IsExcluded reports whether a term is on the generic-word exclusion list
func (t *Taxonomy) IsExcluded(term string) bool {
	_, ok := t.exclusions[normalizeKey(term)]
	return ok
}

// IsAmbiguous reports whether an alias collides with ordinary English and is
// therefore skipped by free-text pattern scans
func (t *Taxonomy) IsAmbiguous(term string) bool {
	_, ok := t.ambiguous[normalizeKey(term)]
	return ok
}

// HasTechnicalIndicator reports whether a term contains a substring such as "api" or ".js"
func (t *Taxonomy) HasTechnicalIndicator(term string) bool {
	lower := strings.ToLower(term)
	for _, ind := range t.indicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// Patterns returns the compiled per-category alias patterns
func (t *Taxonomy) Patterns() []CategoryPattern {
	return t.patterns
}

// CaseSensitiveSkills returns skills whose canonical name doubles as an
// ordinary word. Free text matches them only when written exactly as the
// canonical name, as in "Go" or "REST".
func (t *Taxonomy) CaseSensitiveSkills() []Skill {
	return t.caseOnly
}

// FindSkillSpans returns [start,end) offsets of alias hits for one pattern,
// keeping only hits that sit on token boundaries
func FindSkillSpans(p CategoryPattern, text string) [][2]int {
	var spans [][2]int
	for _, loc := range p.Regex.FindAllStringIndex(text, -1) {
		if !isBoundary(text, loc[0]-1) || !isBoundary(text, loc[1]) {
			continue
		}
		spans = append(spans, [2]int{loc[0], loc[1]})
	}
	return spans
}

func isBoundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	if i > 0 && r == utf8.RuneError {
		r, _ = utf8.DecodeLastRuneInString(text[:i+1])
	}
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '+' || r == '#')
}

// SectionNames returns the known section names in sorted order
func (t *Taxonomy) SectionNames() []string {
	return t.sectionNames
}

// SectionHeaders returns the header phrases of one section family
func (t *Taxonomy) SectionHeaders(name string) []string {
	return t.sections[name]
}

// ProficiencyCues returns cue patterns from strongest to weakest level
func (t *Taxonomy) ProficiencyCues() []Cue {
	return t.cues
}

// DegreeLevels returns the degree hierarchy, highest rank first
func (t *Taxonomy) DegreeLevels() []DegreeLevel {
	return t.degrees
}

// DegreeRank returns the rank of a degree level name, or 0 when unknown
func (t *Taxonomy) DegreeRank(level string) int {
	return t.degreeRank[strings.ToLower(strings.TrimSpace(level))]
}

// InstitutionKeywords returns words that mark an institution name
func (t *Taxonomy) InstitutionKeywords() []string {
	return t.institutions
}

// Honors returns recognised academic honors, lowercased
func (t *Taxonomy) Honors() []string {
	return t.honors
}

// RelatedFields returns fields of study considered related to field
func (t *Taxonomy) RelatedFields(field string) []string {
	return t.relatedFields[strings.ToLower(strings.TrimSpace(field))]
}

// Lexicon returns the keyword lists
func (t *Taxonomy) Lexicon() *Lexicon {
	return &t.lexicon
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[normalizeKey(it)] = struct{}{}
	}
	return set
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = strings.ToLower(it)
	}
	return out
}
