package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthAlt = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

const (
	datePointExpr = `(?:(?:` + monthAlt + `)\.?,?[ \t]+(?:19|20)\d{2}|(?:0?[1-9]|1[0-2])[/.-](?:19|20)\d{2}|(?:19|20)\d{2})`
	openExpr      = `(?:present|current|now|today|ongoing)`
)

var (
	dateRangePattern = regexp.MustCompile(`(?i)\b(` + datePointExpr + `)[ \t]*(?:-{1,2}|–|—|\bto\b|\buntil\b)[ \t]*(` + datePointExpr + `|` + openExpr + `)\b`)
	datePointPattern = regexp.MustCompile(`(?i)\b` + datePointExpr + `\b`)
	yearPattern      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	ongoingPattern   = regexp.MustCompile(`(?i)\b(?:present|current|currently|expected|ongoing)\b`)

	monthYear   = regexp.MustCompile(`(?i)^(` + monthAlt + `)\.?,?[ \t]+((?:19|20)\d{2})$`)
	numericDate = regexp.MustCompile(`^(0?[1-9]|1[0-2])[/.-]((?:19|20)\d{2})$`)
	bareYear    = regexp.MustCompile(`^((?:19|20)\d{2})$`)
	openMarker  = regexp.MustCompile(`(?i)^` + openExpr + `$`)
)

var monthByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

// DatePoint is either a resolved month (first day, UTC) or an open-ended marker.
type DatePoint struct {
	Time time.Time
	Open bool
}

// Ptr returns nil for an open point.
func (d DatePoint) Ptr() *time.Time {
	if d.Open {
		return nil
	}
	t := d.Time
	return &t
}

type DateRange struct {
	Start DatePoint
	End   DatePoint
}

// ParseDate normalizes "01/2015", "Jan 2015", "January, 2015", "2015" and
// "Present" style strings.
func ParseDate(s string) (DatePoint, bool) {
	s = strings.TrimSpace(s)
	switch {
	case openMarker.MatchString(s):
		return DatePoint{Open: true}, true
	case monthYear.MatchString(s):
		m := monthYear.FindStringSubmatch(s)
		month := monthByPrefix[strings.ToLower(m[1][:3])]
		return point(m[2], month), true
	case numericDate.MatchString(s):
		m := numericDate.FindStringSubmatch(s)
		n, _ := strconv.Atoi(m[1])
		return point(m[2], time.Month(n)), true
	case bareYear.MatchString(s):
		return point(s, time.January), true
	}
	return DatePoint{}, false
}

func point(year string, month time.Month) DatePoint {
	y, _ := strconv.Atoi(year)
	return DatePoint{Time: time.Date(y, month, 1, 0, 0, 0, 0, time.UTC)}
}

// FindDateRange returns the first date range in line and its byte span.
func FindDateRange(line string) (DateRange, []int, bool) {
	for _, m := range dateRangePattern.FindAllStringSubmatchIndex(line, -1) {
		start, ok1 := ParseDate(line[m[2]:m[3]])
		end, ok2 := ParseDate(line[m[4]:m[5]])
		if !ok1 || !ok2 || start.Open {
			continue
		}
		if !end.Open && end.Time.Before(start.Time) {
			continue
		}
		return DateRange{Start: start, End: end}, m[:2], true
	}
	return DateRange{}, nil, false
}

// FindDatePoint returns the first standalone date in s.
func FindDatePoint(s string) (DatePoint, bool) {
	if loc := datePointPattern.FindStringIndex(s); loc != nil {
		return ParseDate(s[loc[0]:loc[1]])
	}
	return DatePoint{}, false
}

// FindYears returns distinct four-digit years in order of appearance.
func FindYears(s string) []int {
	var out []int
	seen := map[int]bool{}
	for _, y := range yearPattern.FindAllString(s, -1) {
		n, _ := strconv.Atoi(y)
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func hasOngoingMarker(s string) bool { return ongoingPattern.MatchString(s) }
