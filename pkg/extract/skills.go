package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxSkills     = 50
	maxSkillRunes = 50
)

var (
	skillLabel      = regexp.MustCompile(`^[\p{L}\p{N}_][\p{L}\p{N}_ \t&/-]*:[ \t]*(.*)$`)
	skillDelimiters = regexp.MustCompile(`[,;|•·▪◦‣⁃●]`)
)

// ExtractSkills splits a skills section into individual skills. Category
// labels ("Languages:") are dropped, duplicates are removed case-insensitively
// keeping the first spelling, and the list is capped at MaxSkills.
func ExtractSkills(section string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := skillLabel.FindStringSubmatch(line); m != nil {
			line = m[1]
		}
		for _, tok := range skillDelimiters.Split(line, -1) {
			skill := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(tok), bulletChars+" \t"))
			n := utf8.RuneCountInString(skill)
			if n <= 1 || n >= maxSkillRunes {
				continue
			}
			key := strings.ToLower(skill)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, skill)
			if len(out) == MaxSkills {
				return out
			}
		}
	}
	return out
}
