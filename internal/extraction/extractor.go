// Package extraction finds skills and named entities in resume and job text.
//
// Extraction runs pattern matching against the skill taxonomy, entity tagging,
// skills-section splitting and a context scan of experience text. Every
// candidate is validated against the taxonomy before it is kept, and the
// sources are merged so each canonical skill appears once.
package extraction

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/skills"
	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// DefaultWindow is the number of characters scanned on either side of a skill
// mention for proficiency and years cues
const DefaultWindow = 100

// Section names the extractor reads from a segmented document
const (
	SectionSkills     = "skills"
	SectionExperience = "experience"
)

// Extractor is read-only after construction and safe for concurrent use
type Extractor struct {
	tax    *taxonomy.Taxonomy
	tagger Tagger
	window int
	fuzzy  bool
	now    func() time.Time
	logger *zap.Logger
}

// Option configures an Extractor
type Option func(*Extractor)

// WithWindow sets the proficiency cue window in characters
func WithWindow(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.window = n
		}
	}
}

// WithFuzzy enables or disables edit-distance matching of section and context terms
func WithFuzzy(enabled bool) Option {
	return func(e *Extractor) { e.fuzzy = enabled }
}

// WithClock overrides the clock used to resolve "present" in year ranges
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an extractor. A nil tagger disables entity tagging.
func New(tax *taxonomy.Taxonomy, tagger Tagger, opts ...Option) *Extractor {
	e := &Extractor{
		tax:    tax,
		tagger: tagger,
		window: DefaultWindow,
		fuzzy:  true,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract is ExtractContext with a background context
func (e *Extractor) Extract(text string, sections map[string]string) *types.ExtractionResult {
	return e.ExtractContext(context.Background(), text, sections)
}

// ExtractContext extracts skills and entities from text. sections maps section
// names to their content and may be nil. It never fails: a tagger error yields
// a result without entities, and empty input yields an empty result.
func (e *Extractor) ExtractContext(ctx context.Context, text string, sections map[string]string) *types.ExtractionResult {
	result := &types.ExtractionResult{
		Skills:   []types.ExtractedSkill{},
		Entities: []types.Entity{},
	}
	if strings.TrimSpace(text) == "" {
		return result
	}

	var found []types.ExtractedSkill
	found = append(found, e.patternSkills(text)...)
	found = append(found, e.caseSensitiveSkills(text)...)

	entities, nerSkills := e.entities(ctx, text)
	result.Entities = entities
	found = append(found, nerSkills...)

	if section, ok := sections[SectionSkills]; ok {
		found = append(found, e.sectionSkills(section)...)
	}
	contextText := text
	if section, ok := sections[SectionExperience]; ok && strings.TrimSpace(section) != "" {
		contextText = section
	}
	found = append(found, e.contextSkills(contextText)...)

	merged := skills.Merge(found)
	lower := strings.ToLower(text)
	for i := range merged {
		e.annotate(&merged[i], text, lower)
	}
	result.Skills = merged
	return result
}

// entities runs the tagger, cleans and scores its spans, and turns entities
// that name a known technology into skills
func (e *Extractor) entities(ctx context.Context, text string) ([]types.Entity, []types.ExtractedSkill) {
	out := []types.Entity{}
	if e.tagger == nil {
		return out, nil
	}
	raw, err := e.tagger.Tag(ctx, text)
	if err != nil {
		e.logger.Warn("entity tagging failed, continuing without entities", zap.Error(err))
		return out, nil
	}

	var found []types.ExtractedSkill
	contactKeywords := e.tax.Lexicon().ContactKeywords
	for _, ent := range raw {
		cleaned, ok := CleanEntity(ent.Text)
		if !ok {
			continue
		}
		ent = relocate(text, ent, cleaned)
		ent.Confidence = EntityConfidence(ent, text, contactKeywords)

		if ent.Label == types.EntityOrg {
			if m, ok := e.tax.Lookup(ent.Text); ok {
				found = append(found, types.ExtractedSkill{
					Name:       m.Canonical,
					Raw:        ent.Text,
					Category:   m.Category,
					Source:     types.SourceNER,
					Confidence: min(m.Confidence, ent.Confidence),
				})
				continue
			}
		}
		out = append(out, ent)
	}
	return out, found
}

// relocate narrows an entity's offsets to its cleaned text when the cleaned
// text still appears inside the original span
func relocate(text string, ent types.Entity, cleaned string) types.Entity {
	if cleaned == ent.Text {
		return ent
	}
	start, end := ent.Start, ent.End
	if start >= 0 && end <= len(text) && start < end {
		if idx := strings.Index(text[start:end], cleaned); idx >= 0 {
			ent.Start = start + idx
			ent.End = ent.Start + len(cleaned)
		}
	}
	ent.Text = cleaned
	return ent
}
