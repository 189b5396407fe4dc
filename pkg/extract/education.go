package extract

import (
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/artem13815/hr/ingest/pkg/resume"
)

const (
	MaxEducation          = 10
	minEducationParagraph = 10
	minFieldRunes         = 2
	maxFieldRunes         = 80
)

var fieldCut = regexp.MustCompile(`[ \t][-–—][ \t]|[ \t;:]+(?:19|20)\d{2}\b|\t`)

// ExtractEducation groups an education section into entries, each opened by
// a degree token. Without any degree token the section is split on blank lines.
func ExtractEducation(section string) []resume.EducationEntry {
	out := []resume.EducationEntry{}
	if strings.TrimSpace(section) == "" {
		return out
	}
	groups := groupByTrigger(strings.Split(section, "\n"), func(l string) bool {
		_, ok := FindDegree(l)
		return ok
	})
	if groups == nil {
		for _, p := range paragraphs(section, minEducationParagraph) {
			groups = append(groups, strings.Split(p, "\n"))
		}
	}
	for _, g := range groups {
		lines := nonEmpty(g)
		if len(lines) == 0 {
			continue
		}
		out = append(out, parseEducation(lines))
		if len(out) == MaxEducation {
			break
		}
	}
	return out
}

func parseEducation(lines []string) resume.EducationEntry {
	raw := strings.Join(lines, "\n")
	e := resume.EducationEntry{RawText: raw}

	for _, l := range lines {
		d, ok := FindDegree(l)
		if !ok {
			continue
		}
		e.DegreeType = resume.StrPtr(strings.TrimRight(d.Text, ", "))
		if m := fieldClause.FindStringSubmatch(l[d.End:]); m != nil {
			e.FieldOfStudy = cleanField(m[1])
		}
		break
	}

	for _, l := range lines {
		if e.InstitutionName != nil {
			break
		}
		for _, seg := range splitFields(trimBullet(l)) {
			if institutionPattern.MatchString(seg) {
				e.InstitutionName = resume.StrPtr(seg)
				break
			}
		}
	}

	e.StartDate, e.EndDate, e.IsCurrent = educationDates(lines)
	if hasOngoingMarker(raw) {
		e.IsCurrent = true
	}
	return e
}

func cleanField(s string) *string {
	if loc := fieldCut.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	s = strings.Trim(strings.TrimSpace(s), ".;:")
	n := utf8.RuneCountInString(s)
	if n < minFieldRunes || n > maxFieldRunes {
		return nil
	}
	return &s
}

// educationDates prefers an explicit range; otherwise two or more distinct
// years give start and end, and a single year is the graduation date.
func educationDates(lines []string) (start, end *time.Time, current bool) {
	for _, l := range lines {
		if r, _, ok := FindDateRange(l); ok {
			return r.Start.Ptr(), r.End.Ptr(), r.End.Open
		}
	}
	years := FindYears(strings.Join(lines, "\n"))
	switch len(years) {
	case 0:
		return nil, nil, false
	case 1:
		return nil, yearPtr(years[0]), false
	default:
		return yearPtr(slices.Min(years)), yearPtr(slices.Max(years)), false
	}
}

func yearPtr(y int) *time.Time {
	t := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &t
}
