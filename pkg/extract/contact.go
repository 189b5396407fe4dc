package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Contact holds the header-block fields; every field is independently optional.
type Contact struct {
	Email        *string
	Phone        *string
	LinkedInURL  *string
	GitHubURL    *string
	PortfolioURL *string
	Location     *string
}

const (
	headerBlockLines = 10
	locationLines    = 5
)

// ExtractContact resolves each field from its first match in the whole text.
// Portfolio and location are only looked for in the header block.
func ExtractContact(text string) Contact {
	var c Contact
	if m := EmailPattern.re.FindString(text); m != "" {
		c.Email = ptr(strings.ToLower(m))
	}
	if m := PhonePattern.re.FindString(text); m != "" {
		if digits := phoneDigits.ReplaceAllString(m, ""); digits != "" {
			c.Phone = ptr(digits)
		}
	}
	if m := LinkedInPattern.re.FindString(text); m != "" {
		c.LinkedInURL = ptr(withScheme(m))
	}
	if m := GitHubPattern.re.FindString(text); m != "" {
		c.GitHubURL = ptr(withScheme(m))
	}

	header := firstLines(text, headerBlockLines)
	c.PortfolioURL = findPortfolio(strings.Join(header, "\n"))
	c.Location = findLocation(header)
	return c
}

func withScheme(u string) string {
	if strings.HasPrefix(strings.ToLower(u), "http") {
		return u
	}
	return "https://" + u
}

func findPortfolio(block string) *string {
	for _, loc := range WebsitePattern.re.FindAllStringIndex(block, -1) {
		if loc[0] > 0 {
			prev := rune(block[loc[0]-1])
			if prev == '@' || prev == '.' || prev == '/' || unicode.IsLetter(prev) || unicode.IsDigit(prev) {
				continue
			}
		}
		if loc[1] < len(block) && block[loc[1]] == '@' {
			continue
		}
		m := block[loc[0]:loc[1]]
		lower := strings.ToLower(m)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") {
			continue
		}
		return ptr(withScheme(strings.TrimRight(m, "./")))
	}
	return nil
}

var headerSeparators = regexp.MustCompile(`[|•·]|\s[-–—]\s|\t`)

func findLocation(lines []string) *string {
	if len(lines) > locationLines {
		lines = lines[:locationLines]
	}
	for _, line := range lines {
		for _, seg := range headerSeparators.Split(line, -1) {
			seg = strings.TrimSpace(seg)
			if seg == "" || strings.ContainsAny(seg, "@/0123456789") {
				continue
			}
			if locationPattern.MatchString(seg) {
				return ptr(seg)
			}
		}
	}
	return nil
}

// firstLines returns up to n trimmed non-empty lines.
func firstLines(text string, n int) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

func ptr(s string) *string { return &s }
