package extract

import (
	"strings"

	"github.com/artem13815/hr/ingest/pkg/resume"
)

const (
	MaxExperiences         = 20
	minExperienceParagraph = 20
)

// ExtractExperience groups an experience section into entries. A line with a
// date range opens a new entry; without any date range the section is split
// on blank lines instead.
func ExtractExperience(section string) []resume.ExperienceEntry {
	out := []resume.ExperienceEntry{}
	if strings.TrimSpace(section) == "" {
		return out
	}
	groups := groupByTrigger(strings.Split(section, "\n"), func(l string) bool {
		_, _, ok := FindDateRange(l)
		return ok
	})
	if groups == nil {
		for _, p := range paragraphs(section, minExperienceParagraph) {
			groups = append(groups, strings.Split(p, "\n"))
		}
	}
	for _, g := range groups {
		lines := nonEmpty(g)
		if len(lines) == 0 {
			continue
		}
		out = append(out, parseExperience(lines))
		if len(out) == MaxExperiences {
			break
		}
	}
	return out
}

func parseExperience(lines []string) resume.ExperienceEntry {
	e := resume.ExperienceEntry{RawText: strings.Join(lines, "\n")}
	claimed := make([]bool, len(lines))

	dateIdx := -1
	var companion string
	for i, l := range lines {
		if r, loc, ok := FindDateRange(l); ok {
			dateIdx = i
			e.StartDate = r.Start.Ptr()
			e.EndDate = r.End.Ptr()
			e.IsCurrent = r.End.Open
			companion = trimSeparators(l[:loc[0]] + " " + l[loc[1]:])
			claimed[i] = true
			break
		}
	}

	// heading lines: everything above the date line, or the first line of a
	// paragraph-split entry
	heading := func(i int) bool {
		if isBullet(lines[i]) {
			return false
		}
		if dateIdx >= 0 {
			return i < dateIdx
		}
		return i == 0
	}

	var title, company, location string

	// "Title at Company"
	if companion != "" {
		if m := titleAtCompany.FindStringSubmatch(companion); m != nil {
			title, company = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			companion = ""
		}
	}
	for i, l := range lines {
		if title != "" || claimed[i] || !heading(i) {
			continue
		}
		if m := titleAtCompany.FindStringSubmatch(l); m != nil && shortLine(l) {
			title, company = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			claimed[i] = true
		}
	}
	if company != "" {
		if m := companyLinePattern.FindStringSubmatch(company); m != nil {
			company, location = strings.TrimSpace(m[1]), m[2]
		}
	}

	// date companion
	if companion != "" {
		switch m := companyLinePattern.FindStringSubmatch(companion); {
		case m != nil && company == "":
			company, location = strings.TrimSpace(m[1]), m[2]
		default:
			parts := splitFields(companion)
			titled := -1
			if len(parts) > 1 {
				for k, p := range parts {
					if jobTitlePattern.MatchString(p) {
						titled = k
						break
					}
				}
			}
			if titled >= 0 {
				if title == "" {
					title = parts[titled]
				}
				for k, p := range parts {
					if k != titled && company == "" && !locationPattern.MatchString(p) {
						company = p
					}
				}
			} else if title == "" && !locationPattern.MatchString(companion) {
				title = companion
			}
		}
	}

	// "Company – City, ST"
	if company == "" {
		for i, l := range lines {
			if claimed[i] || isBullet(l) {
				continue
			}
			if m := companyLinePattern.FindStringSubmatch(l); m != nil && shortLine(l) {
				company, location = strings.TrimSpace(m[1]), m[2]
				claimed[i] = true
				break
			}
		}
	}

	// title vocabulary
	if title == "" {
		for i, l := range lines {
			if claimed[i] || isBullet(l) || !shortLine(l) {
				continue
			}
			if jobTitlePattern.MatchString(l) {
				title = l
				claimed[i] = true
				break
			}
		}
	}

	// a lone heading line left over names the employer
	if company == "" {
		for i, l := range lines {
			if claimed[i] || !heading(i) || !shortLine(l) {
				continue
			}
			company = l
			claimed[i] = true
			break
		}
	}

	var desc []string
	for i, l := range lines {
		if !claimed[i] {
			desc = append(desc, l)
		}
	}

	e.JobTitle = resume.StrPtr(title)
	e.CompanyName = resume.StrPtr(company)
	e.Location = resume.StrPtr(strings.TrimSpace(location))
	e.Description = resume.StrPtr(strings.Join(desc, "\n"))
	return e
}
