package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxCarryLines is how many heading lines directly above a trigger line may
// move down into the entry the trigger starts.
const maxCarryLines = 3

// groupByTrigger splits section lines into entries, starting a new entry at
// every line for which trigger holds. Up to maxCarryLines non-bullet lines
// right above a trigger join the new entry when a blank line or a bullet
// separates them from the previous entry. Lines before the first trigger
// belong to the first entry. It returns nil when nothing triggers.
func groupByTrigger(lines []string, trigger func(string) bool) [][]string {
	var triggers []int
	for i, l := range lines {
		if strings.TrimSpace(l) != "" && trigger(l) {
			triggers = append(triggers, i)
		}
	}
	if len(triggers) == 0 {
		return nil
	}

	starts := []int{0}
	for k := 1; k < len(triggers); k++ {
		t, prev := triggers[k], triggers[k-1]
		j := t - 1
		for j > prev && t-j <= maxCarryLines {
			if strings.TrimSpace(lines[j]) == "" || isBullet(lines[j]) {
				break
			}
			j--
		}
		start := t
		if j > prev && j+1 < t && (strings.TrimSpace(lines[j]) == "" || isBullet(lines[j])) {
			start = j + 1
		}
		starts = append(starts, start)
	}

	groups := make([][]string, 0, len(starts))
	for k, s := range starts {
		e := len(lines)
		if k+1 < len(starts) {
			e = starts[k+1]
		}
		groups = append(groups, lines[s:e])
	}
	return groups
}

// paragraphs splits text on blank lines and keeps trimmed blocks longer than minRunes.
func paragraphs(text string, minRunes int) []string {
	var out []string
	var cur []string
	flush := func() {
		if len(cur) == 0 {
			return
		}
		p := strings.TrimSpace(strings.Join(cur, "\n"))
		if utf8.RuneCountInString(p) > minRunes {
			out = append(out, p)
		}
		cur = cur[:0]
	}
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) == "" {
			flush()
			continue
		}
		cur = append(cur, strings.TrimSpace(l))
	}
	flush()
	return out
}

// nonEmpty trims lines and drops blank ones.
func nonEmpty(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

var (
	multiSpace  = regexp.MustCompile(`[ \t]{2,}`)
	emptyParens = regexp.MustCompile(`\([ \t]*\)`)
)

const edgeSeparators = " \t|,;:-–—"

// trimSeparators cleans what is left of a line after a date was cut out of it.
func trimSeparators(s string) string {
	s = emptyParens.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	s = strings.Trim(s, edgeSeparators)
	s = strings.TrimSuffix(strings.TrimPrefix(s, ")"), "(")
	return strings.Trim(s, edgeSeparators)
}

var fieldSeparators = regexp.MustCompile(`[ \t]*(?:\||,|[ \t][-–—][ \t]|\t)[ \t]*`)

// splitFields splits a heading line on the usual visual separators.
func splitFields(line string) []string {
	var out []string
	for _, p := range fieldSeparators.Split(line, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func shortLine(l string) bool {
	return utf8.RuneCountInString(l) <= 80 && !strings.HasSuffix(l, ".")
}
