package extract

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestExtractExperience_TwoEntries(t *testing.T) {
	section := `Senior Software Engineer
Acme Corp – San Francisco, CA
Jan 2020 - Present
- Built APIs
- Led team

Software Engineer
Beta Inc – Boston, MA
Jun 2018 - Dec 2019
- Shipped features`

	got := ExtractExperience(section)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "Senior Software Engineer", str(first.JobTitle))
	assert.Equal(t, "Acme Corp", str(first.CompanyName))
	assert.Equal(t, "San Francisco, CA", str(first.Location))
	require.NotNil(t, first.StartDate)
	assert.Equal(t, month(2020, time.January), *first.StartDate)
	assert.True(t, first.IsCurrent)
	assert.Nil(t, first.EndDate)
	assert.Equal(t, "- Built APIs\n- Led team", str(first.Description))

	second := got[1]
	assert.Equal(t, "Software Engineer", str(second.JobTitle))
	assert.Equal(t, "Beta Inc", str(second.CompanyName))
	assert.Equal(t, "Boston, MA", str(second.Location))
	assert.Equal(t, month(2018, time.June), *second.StartDate)
	require.NotNil(t, second.EndDate)
	assert.Equal(t, month(2019, time.December), *second.EndDate)
	assert.False(t, second.IsCurrent)
	assert.Equal(t, "Software Engineer\nBeta Inc – Boston, MA\nJun 2018 - Dec 2019\n- Shipped features", second.RawText)
}

func TestExtractExperience_DatesOnHeadingLine(t *testing.T) {
	got := ExtractExperience("Backend Developer | Acme Corp | Mar 2019 - Present\nBuilt payment services.")
	require.Len(t, got, 1)

	e := got[0]
	assert.Equal(t, "Backend Developer", str(e.JobTitle))
	assert.Equal(t, "Acme Corp", str(e.CompanyName))
	assert.Equal(t, month(2019, time.March), *e.StartDate)
	assert.True(t, e.IsCurrent)
	assert.Equal(t, "Built payment services.", str(e.Description))
}

func TestExtractExperience_TitleAtCompany(t *testing.T) {
	got := ExtractExperience("Data Scientist at Initech, 2016 - 2018\nModels.")
	require.Len(t, got, 1)

	e := got[0]
	assert.Equal(t, "Data Scientist", str(e.JobTitle))
	assert.Equal(t, "Initech", str(e.CompanyName))
	assert.Equal(t, month(2016, time.January), *e.StartDate)
	assert.Equal(t, month(2018, time.January), *e.EndDate)
	assert.False(t, e.IsCurrent)
}

func TestExtractExperience_ParagraphFallback(t *testing.T) {
	section := "Acme Corp\nBuilt many internal tools for teams.\n\nshort\n\nFreelance consulting for small businesses"

	got := ExtractExperience(section)

	require.Len(t, got, 2)
	assert.Equal(t, "Acme Corp", str(got[0].CompanyName))
	assert.Equal(t, "Built many internal tools for teams.", str(got[0].Description))
	assert.Nil(t, got[0].StartDate)
	assert.Equal(t, "Freelance consulting for small businesses", got[1].RawText)
}

func TestExtractExperience_Capped(t *testing.T) {
	var lines []string
	for i := 0; i < 25; i++ {
		lines = append(lines, fmt.Sprintf("Company %d | 2001 - 2002", i))
	}

	got := ExtractExperience(strings.Join(lines, "\n"))

	assert.Len(t, got, MaxExperiences)
}

func TestExtractExperience_Empty(t *testing.T) {
	got := ExtractExperience("  \n ")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
