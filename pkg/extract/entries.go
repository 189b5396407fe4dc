package extract

import (
	"regexp"
	"strings"

	"github.com/artem13815/hr/ingest/pkg/resume"
)

var (
	certOrgSplit   = regexp.MustCompile(`[ \t]+[-–—][ \t]+|[ \t]*[|,][ \t]*`)
	projectHeading = regexp.MustCompile(`[ \t]*(?::|[ \t][-–—][ \t])[ \t]*`)
)

// blocks splits a light-weight section into entries: blank-line paragraphs,
// or one entry per line when the section has no blank lines at all.
func blocks(section string, perLine bool) [][]string {
	paras := paragraphs(section, 0)
	if perLine && len(paras) == 1 {
		var out [][]string
		for _, l := range nonEmpty(strings.Split(paras[0], "\n")) {
			out = append(out, []string{l})
		}
		return out
	}
	out := make([][]string, 0, len(paras))
	for _, p := range paras {
		out = append(out, nonEmpty(strings.Split(p, "\n")))
	}
	return out
}

// ExtractCertifications keeps one entry per certification with its raw text.
func ExtractCertifications(section string) []resume.CertificationEntry {
	out := []resume.CertificationEntry{}
	for _, lines := range blocks(section, true) {
		if len(lines) == 0 {
			continue
		}
		c := resume.CertificationEntry{RawText: strings.Join(lines, "\n")}
		head := trimBullet(lines[0])
		if d, ok := FindDatePoint(head); ok {
			c.IssueDate = d.Ptr()
		} else if d, ok := FindDatePoint(c.RawText); ok {
			c.IssueDate = d.Ptr()
		}
		head = trimSeparators(datePointPattern.ReplaceAllString(head, ""))
		parts := certOrgSplit.Split(head, 2)
		c.Name = resume.StrPtr(strings.TrimSpace(parts[0]))
		if len(parts) == 2 {
			c.IssuingOrganization = resume.StrPtr(trimSeparators(parts[1]))
		}
		out = append(out, c)
	}
	return out
}

// ExtractProjects keeps one entry per paragraph: the first line names the
// project, the rest describes it.
func ExtractProjects(section string) []resume.ProjectEntry {
	out := []resume.ProjectEntry{}
	for _, lines := range blocks(section, false) {
		if len(lines) == 0 {
			continue
		}
		p := resume.ProjectEntry{RawText: strings.Join(lines, "\n")}
		head := trimBullet(lines[0])
		desc := lines[1:]
		if parts := projectHeading.Split(head, 2); len(parts) == 2 && !strings.HasPrefix(parts[1], "//") {
			head = parts[0]
			desc = append([]string{parts[1]}, desc...)
		}
		p.Name = resume.StrPtr(strings.TrimSpace(head))
		p.Description = resume.StrPtr(strings.TrimSpace(strings.Join(desc, "\n")))
		out = append(out, p)
	}
	return out
}
