package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/taxonomy"
)

var fixedNow = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func ym(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func loadTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tax, err := taxonomy.Load()
	require.NoError(t, err)
	return tax
}

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567 | San Francisco, CA
linkedin.com/in/janedoe | github.com/janedoe

SUMMARY
Backend engineer focused on distributed systems.

EXPERIENCE
Senior Software Engineer | Acme Corp | San Francisco, CA | Jan 2020 – Present
• Led migration of billing services to Kubernetes, cutting costs by 30%
• Built APIs using Go and PostgreSQL

Software Engineer
Globex Inc, Austin, TX
Jun 2016 – Dec 2019
• Developed Django services in Python

EDUCATION
B.S. in Computer Science, Stanford University, 2016
GPA: 3.8/4.0, magna cum laude

SKILLS
Go, Python, Docker, Kubernetes, PostgreSQL

CERTIFICATIONS
AWS Certified Solutions Architect
`
