package experience

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/jonathan/resume-scorer/internal/types"
)

// LoadResume loads a résumé from a JSON file and validates it against the résumé schema
func LoadResume(path string) (*types.ResumeData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return ParseResume(content)
}

// ParseResume decodes and schema-validates résumé JSON
func ParseResume(content []byte) (*types.ResumeData, error) {
	if err := schemas.ValidateResume(content); err != nil {
		return nil, &LoadError{
			Message: "schema validation failed",
			Cause:   err,
		}
	}

	var resume types.ResumeData
	if err := json.Unmarshal(content, &resume); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	return &resume, nil
}
