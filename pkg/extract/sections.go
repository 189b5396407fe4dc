package extract

import (
	"sort"
	"strings"
)

// Section is the span of text owned by one header. Start and End are byte
// offsets of the content (the header itself excluded); both are -1 when the
// header was not found.
type Section struct {
	Name  SectionName
	Start int
	End   int
	Text  string
}

func (s Section) Empty() bool { return s.Start < 0 }

// Sections maps every section name to its span; absent headers map to an empty Section.
type Sections map[SectionName]Section

func (s Sections) Text(name SectionName) string { return s[name].Text }

// Segment splits text into named sections. Each section starts right after
// the first match of its header and ends where the nearest header of any other
// section begins.
func Segment(text string) Sections {
	out := make(Sections, len(SectionHeaders))
	for _, m := range SectionHeaders {
		out[SectionName(m.Name)] = Section{Name: SectionName(m.Name), Start: -1, End: -1}
	}

	type header struct {
		name       SectionName
		start, end int
	}
	var found []header
	for _, m := range SectionHeaders {
		if loc := m.Find(text); loc != nil {
			found = append(found, header{name: SectionName(m.Name), start: loc[0], end: loc[1]})
		}
	}

	for _, h := range found {
		contentStart := h.end
		end := len(text)
		for _, other := range SectionHeaders {
			if SectionName(other.Name) == h.name {
				continue
			}
			if loc := other.Find(text[contentStart:]); loc != nil && contentStart+loc[0] < end {
				end = contentStart + loc[0]
			}
		}
		out[h.name] = Section{Name: h.name, Start: contentStart, End: end}
	}

	clampOverlaps(out)
	for name, s := range out {
		if !s.Empty() {
			s.Text = strings.TrimSpace(text[s.Start:s.End])
			out[name] = s
		}
	}
	return out
}

// clampOverlaps trims any span that runs into the next one.
func clampOverlaps(secs Sections) {
	var spans []Section
	for _, s := range secs {
		if !s.Empty() {
			spans = append(spans, s)
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start == spans[j].Start {
			return spans[i].Name < spans[j].Name
		}
		return spans[i].Start < spans[j].Start
	})
	for i := 0; i+1 < len(spans); i++ {
		if spans[i].End > spans[i+1].Start {
			spans[i].End = spans[i+1].Start
			secs[spans[i].Name] = spans[i]
		}
	}
}
