package nlp

import (
	"regexp"
	"strings"
)

var (
	reJoiners = regexp.MustCompile(`[\s/_-]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// NormalizeSkill приводит навык к виду, в котором он хранится для поиска:
// нижний регистр, схлопнутые пробелы. Пунктуация сохраняется ("c++", "node.js").
func NormalizeSkill(skill string) string {
	s := strings.ToLower(skill)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// aliasKey сводит написания одного навыка к общему ключу:
// "CI/CD", "ci cd" и "cicd" дают "cicd". Символы "+", "#" и "." значимы.
func aliasKey(skill string) string {
	return reJoiners.ReplaceAllString(strings.ToLower(skill), "")
}
