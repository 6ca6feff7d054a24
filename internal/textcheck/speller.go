package textcheck

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-scorer/internal/parsing"
)

// commonMisspellings maps frequent résumé misspellings to their correction
var commonMisspellings = map[string]string{
	"accomodate":      "accommodate",
	"acheive":         "achieve",
	"acheived":        "achieved",
	"acheivement":     "achievement",
	"acheivements":    "achievements",
	"adminstration":   "administration",
	"analysys":        "analysis",
	"begining":        "beginning",
	"beleive":         "believe",
	"buisness":        "business",
	"calender":        "calendar",
	"collegue":        "colleague",
	"collegues":       "colleagues",
	"comittee":        "committee",
	"commited":        "committed",
	"communciation":   "communication",
	"concensus":       "consensus",
	"definately":      "definitely",
	"developement":    "development",
	"developped":      "developed",
	"enviroment":      "environment",
	"enviroments":     "environments",
	"excercise":       "exercise",
	"existance":       "existence",
	"experiance":      "experience",
	"experianced":     "experienced",
	"familar":         "familiar",
	"goverment":       "government",
	"guidence":        "guidance",
	"implemention":    "implementation",
	"independant":     "independent",
	"infrastucture":   "infrastructure",
	"intergrated":     "integrated",
	"intergration":    "integration",
	"knowlege":        "knowledge",
	"liason":          "liaison",
	"maintainance":    "maintenance",
	"maintenence":     "maintenance",
	"managment":       "management",
	"millenium":       "millennium",
	"neccessary":      "necessary",
	"occured":         "occurred",
	"occurence":       "occurrence",
	"oppurtunity":     "opportunity",
	"organisaton":     "organization",
	"perfomance":      "performance",
	"persue":          "pursue",
	"prefered":        "preferred",
	"proffesional":    "professional",
	"profesional":     "professional",
	"publically":      "publicly",
	"recieve":         "receive",
	"recieved":        "received",
	"recomend":        "recommend",
	"recomended":      "recommended",
	"refered":         "referred",
	"relevent":        "relevant",
	"reponsible":      "responsible",
	"responsable":     "responsible",
	"responsibilites": "responsibilities",
	"seperate":        "separate",
	"sucess":          "success",
	"succesful":       "successful",
	"successfull":     "successful",
	"succesfully":     "successfully",
	"supercede":       "supersede",
	"techincal":       "technical",
	"tommorow":        "tomorrow",
	"untill":          "until",
	"wich":            "which",
	"writting":        "writing",
}

// Speller flags known misspellings. It needs no network access and never fails.
type Speller struct {
	dictionary map[string]string
}

// NewSpeller returns a speller over the built-in misspelling list, extended with extra
func NewSpeller(extra map[string]string) *Speller {
	dict := make(map[string]string, len(commonMisspellings)+len(extra))
	for k, v := range commonMisspellings {
		dict[k] = v
	}
	for k, v := range extra {
		dict[strings.ToLower(k)] = v
	}
	return &Speller{dictionary: dict}
}

// Name returns "spelling"
func (s *Speller) Name() string { return "spelling" }

// Check reports each misspelled word once, in order of first appearance
func (s *Speller) Check(ctx context.Context, text string) ([]Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var findings []Finding
	seen := make(map[string]bool)
	for _, tok := range parsing.Tokenize(text) {
		correction, ok := s.dictionary[tok.Norm]
		if !ok || seen[tok.Norm] {
			continue
		}
		seen[tok.Norm] = true
		findings = append(findings, Finding{
			Message:    fmt.Sprintf("%q looks misspelled", tok.Text),
			Span:       tok.Text,
			Suggestion: correction,
		})
	}
	return findings, nil
}
