package extract

import (
	"strings"

	"github.com/artem13815/hr/ingest/pkg/resume"
)

// MaxSummaryRunes caps the professional summary.
const MaxSummaryRunes = 2000

// Extract builds a best-effort profile from linear resume text. It never
// fails; an empty input yields an empty profile.
func Extract(text string) resume.ExtractedProfile {
	p := resume.NewProfile(text)
	if strings.TrimSpace(text) == "" {
		return p
	}

	c := ExtractContact(text)
	p.Email = c.Email
	p.Phone = c.Phone
	p.LinkedInURL = c.LinkedInURL
	p.GitHubURL = c.GitHubURL
	p.PortfolioURL = c.PortfolioURL
	p.Location = c.Location
	p.FullName = ExtractName(text)

	secs := Segment(text)
	if s := secs.Text(SectionSummary); s != "" {
		p.Summary = ptr(truncateRunes(s, MaxSummaryRunes))
	}
	p.Skills = ExtractSkills(secs.Text(SectionSkills))
	p.Experiences = ExtractExperience(secs.Text(SectionExperience))
	p.Education = ExtractEducation(secs.Text(SectionEducation))
	p.Certifications = ExtractCertifications(secs.Text(SectionCertifications))
	p.Projects = ExtractProjects(secs.Text(SectionProjects))
	return p
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
