package ranking

import (
	"strings"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

// Education blend weights
const (
	degreeWeight = 0.7
	fieldWeight  = 0.3
)

// Degree and field credits
const (
	degreeMetScore        = 100.0
	degreeOneBelowScore   = 50.0
	degreeEquivalentScore = 75.0
	degreeShortScore      = 20.0

	fieldExactScore     = 100.0
	fieldRelatedScore   = 70.0
	fieldUnrelatedScore = 20.0
)

// Field match kinds
const (
	FieldExact       = "exact"
	FieldRelated     = "related"
	FieldUnrelated   = "unrelated"
	FieldUnspecified = "unspecified"
)

// ScoreEducation compares the candidate's highest degree with the job's minimum
// and the best-matching field of study with the job's field.
func ScoreEducation(tax *taxonomy.Taxonomy, cand *types.CandidateProfile, job *types.JobProfile) (float64, types.EducationDetails) {
	d := types.EducationDetails{RequiredDegree: job.RequiredDegree, RequiredField: job.RequiredField}

	candRank := 0
	for _, edu := range cand.Education {
		if r := tax.DegreeRank(edu.DegreeLevel); r > candRank {
			candRank, d.CandidateDegree, d.CandidateField = r, edu.DegreeLevel, edu.Field
		}
	}

	reqRank := tax.DegreeRank(job.RequiredDegree)
	switch {
	case reqRank == 0 || candRank >= reqRank:
		d.DegreeMet, d.DegreeScore = true, degreeMetScore
	case candRank == reqRank-1:
		d.DegreeScore = degreeOneBelowScore
		if job.AllowEquivalentExperience && cand.TotalExperienceYears >= job.MinExperienceYears {
			d.DegreeScore = degreeEquivalentScore
		}
	default:
		d.DegreeScore = degreeShortScore
	}

	d.FieldMatch, d.FieldScore = FieldMatchUnspecified()
	if strings.TrimSpace(job.RequiredField) != "" {
		d.FieldMatch, d.FieldScore = FieldUnrelated, fieldUnrelatedScore
		for _, edu := range cand.Education {
			kind, score := MatchField(tax, edu.Field, job.RequiredField)
			if score > d.FieldScore {
				d.FieldMatch, d.FieldScore, d.CandidateField = kind, score, edu.Field
			}
		}
	}

	return degreeWeight*d.DegreeScore + fieldWeight*d.FieldScore, d
}

// FieldMatchUnspecified is the result when the job names no field
func FieldMatchUnspecified() (string, float64) {
	return FieldUnspecified, fieldExactScore
}

// MatchField classifies a candidate field against a required one. Whole-word
// containment in either direction counts as exact.
func MatchField(tax *taxonomy.Taxonomy, field, required string) (string, float64) {
	f := strings.ToLower(strings.TrimSpace(field))
	r := strings.ToLower(strings.TrimSpace(required))
	if r == "" {
		return FieldMatchUnspecified()
	}
	if f == "" {
		return FieldUnrelated, fieldUnrelatedScore
	}
	if f == r || containsPhrase(f, r) || containsPhrase(r, f) {
		return FieldExact, fieldExactScore
	}
	for _, related := range tax.RelatedFields(r) {
		if containsPhrase(f, related) || containsPhrase(related, f) {
			return FieldRelated, fieldRelatedScore
		}
	}
	for _, related := range tax.RelatedFields(f) {
		if containsPhrase(r, related) {
			return FieldRelated, fieldRelatedScore
		}
	}
	return FieldUnrelated, fieldUnrelatedScore
}

func containsPhrase(s, phrase string) bool {
	return strings.Contains(" "+strings.Join(strings.Fields(s), " ")+" ", " "+phrase+" ")
}
