package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-scorer/internal/types"
)

// skillAliases maps lowercased spellings to the canonical skill name
var skillAliases = map[string]string{
	"golang":                      "Go",
	"go lang":                     "Go",
	"javascript":                  "JavaScript",
	"js":                          "JavaScript",
	"ecmascript":                  "JavaScript",
	"typescript":                  "TypeScript",
	"ts":                          "TypeScript",
	"py":                          "Python",
	"python3":                     "Python",
	"k8s":                         "Kubernetes",
	"kubernetes":                  "Kubernetes",
	"react.js":                    "React",
	"reactjs":                     "React",
	"vue.js":                      "Vue",
	"vuejs":                       "Vue",
	"node.js":                     "Node.js",
	"nodejs":                      "Node.js",
	"node":                        "Node.js",
	"postgres":                    "PostgreSQL",
	"postgresql":                  "PostgreSQL",
	"psql":                        "PostgreSQL",
	"mongo":                       "MongoDB",
	"mongodb":                     "MongoDB",
	"mysql":                       "MySQL",
	"aws":                         "AWS",
	"amazon web services":         "AWS",
	"gcp":                         "GCP",
	"google cloud":                "GCP",
	"google cloud platform":       "GCP",
	"azure":                       "Azure",
	"microsoft azure":             "Azure",
	"sql":                         "SQL",
	"nosql":                       "NoSQL",
	"ci/cd":                       "CI/CD",
	"cicd":                        "CI/CD",
	"ml":                          "Machine Learning",
	"machine learning":            "Machine Learning",
	"dl":                          "Deep Learning",
	"deep learning":               "Deep Learning",
	"nlp":                         "NLP",
	"natural language processing": "NLP",
	"ai":                          "AI",
	"tf":                          "TensorFlow",
	"tensorflow":                  "TensorFlow",
	"pytorch":                     "PyTorch",
	"torch":                       "PyTorch",
	"sklearn":                     "scikit-learn",
	"scikit-learn":                "scikit-learn",
	"scikit learn":                "scikit-learn",
	"api":                         "API",
	"apis":                        "APIs",
	"rest":                        "REST",
	"restful":                     "REST",
	"graphql":                     "GraphQL",
	"grpc":                        "gRPC",
	"html":                        "HTML",
	"html5":                       "HTML",
	"css":                         "CSS",
	"css3":                        "CSS",
	"terraform":                   "Terraform",
	"docker":                      "Docker",
}

// NormalizeSkillName returns the canonical spelling of a skill. Known aliases map to
// their canonical name; otherwise a single all-lower or all-upper word is title-cased
// and anything else is kept as written.
func NormalizeSkillName(skillName string) string {
	name := strings.Join(strings.Fields(skillName), " ")
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	if canonical, ok := skillAliases[lower]; ok {
		return canonical
	}
	if strings.Contains(name, " ") {
		return name
	}

	upper := strings.ToUpper(name)
	switch {
	case name == lower:
		return titleWord(lower)
	case name == upper && utf8.RuneCountInString(name) > 1:
		return titleWord(lower)
	default:
		return name
	}
}

func titleWord(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// SkillKey returns the comparison key for a skill: the lowercased canonical name
func SkillKey(skillName string) string {
	return strings.ToLower(NormalizeSkillName(skillName))
}

// NormalizeRequirements canonicalizes skill names and drops duplicates. The first
// occurrence of a skill is kept; a later duplicate only supplies evidence the first lacked.
func NormalizeRequirements(reqs []types.Requirement) []types.Requirement {
	if len(reqs) == 0 {
		return reqs
	}

	out := make([]types.Requirement, 0, len(reqs))
	index := make(map[string]int, len(reqs))
	for _, req := range reqs {
		skill := NormalizeSkillName(req.Skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if i, dup := index[key]; dup {
			if out[i].Evidence == "" {
				out[i].Evidence = req.Evidence
			}
			continue
		}
		index[key] = len(out)
		out = append(out, types.Requirement{Skill: skill, Evidence: req.Evidence})
	}
	return out
}
