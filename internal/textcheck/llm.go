package textcheck

import (
	"context"
	"encoding/json"

	"github.com/jonathan/resume-scorer/internal/llm"
	"github.com/jonathan/resume-scorer/internal/prompts"
)

const promptFile = "textcheck.json"

// LLMChecker asks a language model to review text. It is the remote backend; wrap it
// with NewBreaker and NewLimited before handing it to the validator.
type LLMChecker struct {
	name      string
	promptKey string
	client    llm.Client
}

type llmResponse struct {
	Findings []Finding `json:"findings"`
}

// NewLLMGrammar returns a grammar checker backed by client
func NewLLMGrammar(client llm.Client) *LLMChecker {
	return &LLMChecker{name: "grammar", promptKey: "check-grammar", client: client}
}

// NewLLMSpelling returns a spelling checker backed by client
func NewLLMSpelling(client llm.Client) *LLMChecker {
	return &LLMChecker{name: "spelling", promptKey: "check-spelling", client: client}
}

// Name returns the check category
func (c *LLMChecker) Name() string { return c.name }

// Check sends text to the model and decodes its findings
func (c *LLMChecker) Check(ctx context.Context, text string) ([]Finding, error) {
	prompt, err := prompts.Render(promptFile, c.promptKey, map[string]string{"Text": text})
	if err != nil {
		return nil, &BackendError{Checker: c.name, Message: "failed to load prompt", Cause: err}
	}

	raw, err := c.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, &BackendError{Checker: c.name, Message: "model call failed", Cause: err}
	}

	var resp llmResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &resp); err != nil {
		return nil, &BackendError{Checker: c.name, Message: "failed to parse model response", Cause: err}
	}

	findings := resp.Findings[:0]
	for _, f := range resp.Findings {
		if f.Message != "" {
			findings = append(findings, f)
		}
	}
	return findings, nil
}
