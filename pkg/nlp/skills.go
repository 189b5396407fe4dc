package nlp

// aliasGroups lists spellings of the same skill. Matching is by aliasKey, so
// spacing and slash variants do not need their own entries.
var aliasGroups = [][]string{
	{"go", "golang"},
	{"postgres", "postgresql", "psql"},
	{"kubernetes", "k8s"},
	{"javascript", "js", "ecmascript"},
	{"typescript", "ts"},
	{"node.js", "nodejs", "node"},
	{"rest", "rest api", "restful"},
	{"ci/cd", "ci cd", "cicd"},
	{"c#", "csharp"},
	{"c++", "cpp"},
	{".net", "dotnet"},
	{"aws", "amazon web services"},
	{"gcp", "google cloud", "google cloud platform"},
	{"machine learning", "ml"},
	{"react", "react.js", "reactjs"},
	{"vue", "vue.js", "vuejs"},
}

var aliasIndex = func() map[string]int {
	idx := make(map[string]int)
	for i, g := range aliasGroups {
		for _, s := range g {
			idx[aliasKey(s)] = i
		}
	}
	return idx
}()

// SkillVariants returns the normalized skill followed by every known alias,
// without duplicates. An empty skill yields an empty slice.
func SkillVariants(skill string) []string {
	base := NormalizeSkill(skill)
	if base == "" {
		return []string{}
	}
	out := []string{base}
	seen := map[string]struct{}{base: {}}
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	key := aliasKey(base)
	if key == "" {
		return out
	}
	if g, ok := aliasIndex[key]; ok {
		for _, s := range aliasGroups[g] {
			add(s)
		}
	}
	return out
}
