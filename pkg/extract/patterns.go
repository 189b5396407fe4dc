// Package extract derives a structured profile from resume text with
// deterministic, rule-based matchers. Nothing here returns an error: a
// heuristic miss leaves a field absent.
package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SectionName identifies a resume section.
type SectionName string

const (
	SectionSummary        SectionName = "summary"
	SectionExperience     SectionName = "experience"
	SectionEducation      SectionName = "education"
	SectionSkills         SectionName = "skills"
	SectionCertifications SectionName = "certifications"
	SectionProjects       SectionName = "projects"
)

// Matcher is one named entry of the pattern library.
type Matcher struct {
	Name string
	re   *regexp.Regexp
}

func (m Matcher) Find(s string) []int { return m.re.FindStringIndex(s) }

func (m Matcher) MatchString(s string) bool { return m.re.MatchString(s) }

func headerMatcher(name SectionName, keywords ...string) Matcher {
	return Matcher{
		Name: string(name),
		re:   regexp.MustCompile(`(?im)^[ \t]*(?:` + strings.Join(keywords, "|") + `)[ \t]*(?::|$)`),
	}
}

// SectionHeaders is ordered; Segment reports sections in this order.
// A header must start a line and be followed by a colon or the end of the line.
var SectionHeaders = []Matcher{
	headerMatcher(SectionSummary,
		`(?:professional[ \t]+)?summary`, `profile`, `objective`, `about(?:[ \t]+me)?`, `overview`),
	headerMatcher(SectionExperience,
		`(?:work[ \t]+)?experience(?:[ \t]+history)?`, `employment(?:[ \t]+history)?`,
		`professional[ \t]+(?:experience|background)`, `career[ \t]+history`),
	headerMatcher(SectionEducation,
		`education(?:al[ \t]+background)?`, `academic(?:[ \t]+background)?`, `qualifications`, `degrees?`),
	headerMatcher(SectionSkills,
		`(?:technical[ \t]+)?skills`, `competenc(?:ies|e)`, `expertise`, `technologies`, `proficiencies`),
	headerMatcher(SectionCertifications,
		`certifications?`, `licenses?`, `credentials?`, `professional[ \t]+development`),
	headerMatcher(SectionProjects,
		`projects?`, `portfolio`, `personal[ \t]+projects?`, `side[ \t]+projects?`),
}

// contact
var (
	EmailPattern    = Matcher{"email", regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)}
	PhonePattern    = Matcher{"phone", regexp.MustCompile(`(?:\+?1[-.\s]?)?(?:\(?\d{3}\)?[-.\s]?)\d{3}[-.\s]?\d{4}|\+\d{1,3}[-.\s]?\d{1,14}`)}
	LinkedInPattern = Matcher{"linkedin", regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w-]+/?`)}
	GitHubPattern   = Matcher{"github", regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w-]+/?`)}
	WebsitePattern  = Matcher{"website", regexp.MustCompile(`(?:[Hh][Tt][Tt][Pp][Ss]?://)?(?:www\.)?[a-z0-9-]+(?:\.[a-z0-9-]+)*\.(?:com|io|dev|me|org|net|co|app|tech|site|page)\b(?:/[\w./-]*)?`)}
)

var (
	locationPattern = regexp.MustCompile(`^[A-Z][\p{L}.' -]*,[ \t]*(?:[A-Z]{2}|[A-Z][\p{L}]+(?:[ \t][A-Z][\p{L}]+)*)$`)
	phoneDigits     = regexp.MustCompile(`[^\d+]`)
)

// degree vocabulary
var (
	degreeWordPattern = regexp.MustCompile(`(?i)\b(?:bachelor|master|doctor(?:ate)?|associate)(?:'s|’s|s)?(?:[ \t]+of[ \t]+(?:science|arts|engineering|business[ \t]+administration|fine[ \t]+arts|applied[ \t]+science|education|laws|philosophy|technology|commerce))?\b`)
	degreeAbbrPattern = regexp.MustCompile(`\b(?:Ph\.D\.?|PhD|MBA|B\.Sc\.?|M\.Sc\.?|BSc|MSc|B\.S\.|M\.S\.|B\.A\.|M\.A\.|BEng|MEng|BBA|BTech|MTech|BS|BA|MS|MA|JD|MD)`)
	fieldClause       = regexp.MustCompile(`(?i)^[ \t]*,?[ \t]*(?:degree[ \t]+)?in[ \t]+([^,|()\n]+)`)
)

// DegreeMatch is a degree token found on a line.
type DegreeMatch struct {
	Text       string
	Start, End int
}

// FindDegree returns the first acceptable degree token in line.
// Full words are matched case-insensitively, abbreviations only in their usual
// casing. A two-letter abbreviation that directly follows a comma is read as a
// state code (", Boston, MA") unless an "in <field>" clause follows it.
func FindDegree(line string) (DegreeMatch, bool) {
	best := DegreeMatch{Start: -1}
	consider := func(start, end int) {
		if best.Start >= 0 && start >= best.Start {
			return
		}
		best = DegreeMatch{Text: line[start:end], Start: start, End: end}
	}
	if loc := degreeWordPattern.FindStringIndex(line); loc != nil {
		consider(loc[0], loc[1])
	}
	for _, loc := range degreeAbbrPattern.FindAllStringIndex(line, -1) {
		if !acceptAbbreviation(line, loc[0], loc[1]) {
			continue
		}
		consider(loc[0], loc[1])
		break
	}
	if best.Start < 0 {
		return DegreeMatch{}, false
	}
	return best, true
}

func acceptAbbreviation(line string, start, end int) bool {
	if r, _ := utf8.DecodeRuneInString(line[end:]); end < len(line) && unicode.IsLetter(r) {
		return false
	}
	if r, _ := utf8.DecodeLastRuneInString(line[:start]); start > 0 && unicode.IsLetter(r) {
		return false
	}
	token := line[start:end]
	if len(token) != 2 {
		return true
	}
	before := strings.TrimRight(line[:start], " \t")
	if !strings.HasSuffix(before, ",") {
		return true
	}
	return fieldClause.MatchString(line[end:])
}

// institution vocabulary
var institutionPattern = regexp.MustCompile(`(?i)\b(?:university|universit[éà]|college|institute|institut|academy|school|polytechnic|conservatory|seminary)\b`)

// job-title vocabulary, anchored at the end of the line
var jobTitlePattern = regexp.MustCompile(`(?i)\b(?:engineer|developer|programmer|manager|director|analyst|designer|consultant|architect|lead|specialist|scientist|administrator|coordinator|intern|officer|president|associate|assistant|technician|head|owner|founder|co-founder|cto|ceo|cfo|vp|devops|sre|researcher|accountant|advisor|representative|supervisor|executive|strategist|writer|editor|teacher|instructor|nurse)s?(?:[ \t]*\([^)]*\))?[ \t]*$`)

// "Title at Company" / "Title @ Company"
var titleAtCompany = regexp.MustCompile(`^(.{2,80}?)[ \t]+(?:at|@)[ \t]+(.{2,80})$`)

// "Company – City, ST" / "Company | Remote"
var companyLinePattern = regexp.MustCompile(`^(.+?)[ \t]*(?:[–—|]|[ \t]-[ \t]|,[ \t]+)[ \t]*((?:[A-Z][\p{L}.' ]+,[ \t]*(?:[A-Z]{2}|[A-Z][\p{L}]+(?:[ \t][A-Z][\p{L}]+)*))|Remote|Hybrid|On-?site)[ \t]*$`)

// bullets
const bulletChars = "-*•·▪◦‣⁃●–—>"

var bulletLine = regexp.MustCompile(`^[ \t]*(?:[-*•·▪◦‣⁃●>–—]|\d{1,2}[.)])[ \t]+`)

func isBullet(line string) bool { return bulletLine.MatchString(line) }

func trimBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), bulletChars+" \t"))
}
