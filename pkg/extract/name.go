package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	nameScanLines = 10
	nameMaxRunes  = 50
)

var (
	nameWord       = regexp.MustCompile(`^[\p{L}.'’-]+$`)
	onlyPhoneChars = regexp.MustCompile(`^[\d\s\-().+/]+$`)
	wordSplit      = regexp.MustCompile(`[^\p{L}]+`)
)

var nameStopWords = []string{"resume", "résumé", "curriculum", "objective", "summary", "experience"}

// ExtractName picks the candidate's name from the header block: the first of
// the leading non-empty lines that reads as 1-4 name-like words. It never guesses.
func ExtractName(text string) *string {
	for _, line := range firstLines(text, nameScanLines) {
		if skipNameLine(line) {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 1 || len(words) > 4 {
			continue
		}
		ok := true
		for _, w := range words {
			if !nameWord.MatchString(w) {
				ok = false
				break
			}
		}
		if ok {
			return ptr(strings.Join(words, " "))
		}
	}
	return nil
}

func skipNameLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(line, "@") || strings.Contains(lower, "http") {
		return true
	}
	if onlyPhoneChars.MatchString(line) {
		return true
	}
	if utf8.RuneCountInString(line) > nameMaxRunes {
		return true
	}
	for _, kw := range nameStopWords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	// "cv" only as a whole word, so surnames like McVey survive.
	for _, w := range wordSplit.Split(lower, -1) {
		if w == "cv" {
			return true
		}
	}
	for _, h := range SectionHeaders {
		if h.MatchString(line) {
			return true
		}
	}
	return false
}
