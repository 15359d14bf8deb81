package ingest

import (
	"regexp"
	"sort"
	"strings"
)

// CommonSkills is the vocabulary matched against free-text descriptions.
var CommonSkills = []string{
	"python", "java", "javascript", "go", "rust", "c++", "sql",
	"aws", "gcp", "azure", "kubernetes", "docker", "terraform",
	"spark", "hadoop", "kafka", "flink",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy",
	"react", "vue", "angular", "node.js", "django", "flask",
	"postgresql", "mongodb", "redis", "elasticsearch",
	"git", "ci/cd", "jenkins", "gitlab", "github",
	"agile", "scrum", "jira",
}

var skillPatterns = compileSkillPatterns(CommonSkills)

// Skill names contain symbols (c++, node.js, ci/cd) so \b is not enough.
// A match must not be glued to another identifier character on either side.
func compileSkillPatterns(skills []string) map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(skills))
	for _, s := range skills {
		out[s] = regexp.MustCompile(`(?:^|[^a-z0-9+#./_-])` + regexp.QuoteMeta(s) + `(?:$|[^a-z0-9+#/_])`)
	}
	return out
}

// ExtractSkills returns the vocabulary skills mentioned in text, sorted.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	out := make([]string, 0)
	for skill, re := range skillPatterns {
		if !strings.Contains(lower, skill) {
			continue
		}
		if re.MatchString(lower) {
			out = append(out, skill)
		}
	}
	sort.Strings(out)
	return out
}
