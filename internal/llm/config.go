// Package llm wraps the Gemini API behind a small client used by the remote text checkers.
package llm

import "fmt"

// Provider names an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider, the only one supported
const ProviderGemini Provider = "gemini"

// Config selects the model used for text review
type Config struct {
	Provider        Provider `koanf:"provider" json:"provider"`
	Model           string   `koanf:"model" json:"model"`
	Temperature     float32  `koanf:"temperature" json:"temperature"`
	MaxOutputTokens int32    `koanf:"max_output_tokens" json:"max_output_tokens"`
}

// DefaultConfig returns a low-temperature lite model; text review needs no deep reasoning
func DefaultConfig() *Config {
	return &Config{
		Provider:        ProviderGemini,
		Model:           "gemini-2.5-flash-lite",
		Temperature:     0.1,
		MaxOutputTokens: 2048,
	}
}

// Validate checks the provider and model
func (c *Config) Validate() error {
	if c.Provider != ProviderGemini {
		return fmt.Errorf("unsupported llm provider %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("llm model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("llm temperature %g out of range [0, 2]", c.Temperature)
	}
	return nil
}
