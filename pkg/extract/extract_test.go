package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Roe
Senior Backend Engineer
jane.roe@example.com | +1 (415) 555-0100 | San Francisco, CA
linkedin.com/in/janeroe | github.com/janeroe | janeroe.dev

Summary
Backend engineer with 8 years of experience building distributed systems.

Experience
Senior Software Engineer
Acme Corp – San Francisco, CA
Jan 2020 - Present
- Built the billing platform in Go
- Led a team of five

Software Engineer
Beta Inc – Boston, MA
Jun 2016 - Dec 2019
- Shipped the mobile API

Education
University of California, Berkeley
BS in Computer Science, 2012 - 2016

Skills
Languages: Go, Python, SQL
Tools: Docker, Kubernetes, PostgreSQL

Certifications
AWS Certified Solutions Architect – Amazon Web Services, 2021

Projects
ingestd: resume parsing service
Streams uploads through a worker pool.`

func TestExtract_FullResume(t *testing.T) {
	p := Extract(sampleResume)

	assert.Equal(t, sampleResume, p.RawText)
	assert.Equal(t, "Jane Roe", str(p.FullName))
	assert.Equal(t, "jane.roe@example.com", str(p.Email))
	assert.Equal(t, "+14155550100", str(p.Phone))
	assert.Equal(t, "San Francisco, CA", str(p.Location))
	assert.Equal(t, "https://linkedin.com/in/janeroe", str(p.LinkedInURL))
	assert.Equal(t, "https://github.com/janeroe", str(p.GitHubURL))
	assert.Equal(t, "https://janeroe.dev", str(p.PortfolioURL))
	assert.Equal(t, "Backend engineer with 8 years of experience building distributed systems.", str(p.Summary))

	assert.Equal(t, []string{"Go", "Python", "SQL", "Docker", "Kubernetes", "PostgreSQL"}, p.Skills)

	require.Len(t, p.Experiences, 2)
	assert.Equal(t, "Acme Corp", str(p.Experiences[0].CompanyName))
	assert.True(t, p.Experiences[0].IsCurrent)
	assert.Equal(t, "Beta Inc", str(p.Experiences[1].CompanyName))

	require.Len(t, p.Education, 1)
	assert.Equal(t, "University of California", str(p.Education[0].InstitutionName))
	assert.Equal(t, "BS", str(p.Education[0].DegreeType))
	assert.Equal(t, "Computer Science", str(p.Education[0].FieldOfStudy))

	require.Len(t, p.Certifications, 1)
	assert.Equal(t, "Amazon Web Services", str(p.Certifications[0].IssuingOrganization))

	require.Len(t, p.Projects, 1)
	assert.Equal(t, "ingestd", str(p.Projects[0].Name))
}

func TestExtract_Deterministic(t *testing.T) {
	assert.Equal(t, Extract(sampleResume), Extract(sampleResume))
}

func TestExtract_Empty(t *testing.T) {
	for _, in := range []string{"", "   \n\t"} {
		p := Extract(in)
		assert.Nil(t, p.FullName)
		assert.Nil(t, p.Email)
		assert.Nil(t, p.Summary)
		assert.NotNil(t, p.Skills)
		assert.Empty(t, p.Skills)
		assert.Empty(t, p.Experiences)
		assert.Empty(t, p.Education)
		assert.Empty(t, p.Certifications)
		assert.Empty(t, p.Projects)
	}
}

func TestExtract_SummaryTruncated(t *testing.T) {
	p := Extract("Summary\n" + strings.Repeat("é", MaxSummaryRunes+500))

	require.NotNil(t, p.Summary)
	assert.Equal(t, MaxSummaryRunes, utf8.RuneCountInString(*p.Summary))
	assert.Nil(t, p.FullName)
}
