// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jonathan/resume-scorer/internal/fetch"
	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/llm"
	"github.com/jonathan/resume-scorer/internal/textcheck"
)

// EnvPrefix prefixes every environment override. Nested keys use a double underscore:
// RESUME_SCORER_TEXTCHECK__GRAMMAR sets textcheck.grammar.
const EnvPrefix = "RESUME_SCORER_"

// ConfigPathEnv names a config file when no path is passed to Load
const ConfigPathEnv = EnvPrefix + "CONFIG"

// Text check backends
const (
	BackendBuiltin = "builtin"
	BackendGemini  = "gemini"
	BackendNone    = "none"
)

var structValidator = validator.New()

// Config is the scorer configuration. Every field has a default; a file and the
// environment override it in that order.
type Config struct {
	// Reference data
	TaxonomyPath string `koanf:"taxonomy_path" json:"taxonomy_path,omitempty"` // External taxonomy JSON; empty uses the embedded one
	PolicyPath   string `koanf:"policy_path" json:"policy_path,omitempty"`     // Policy YAML layered over the built-in tables

	// Matching and batching
	FuzzyThreshold float64 `koanf:"fuzzy_threshold" json:"fuzzy_threshold" validate:"gt=0,lte=1"`
	Workers        int     `koanf:"workers" json:"workers" validate:"gte=1,lte=64"`

	Log       LogConfig       `koanf:"log" json:"log"`
	TextCheck TextCheckConfig `koanf:"textcheck" json:"textcheck"`
	Gemini    GeminiConfig    `koanf:"gemini" json:"gemini"`
	Fetch     FetchConfig     `koanf:"fetch" json:"fetch"`

	MetricsPath string `koanf:"metrics_path" json:"metrics_path,omitempty"` // Prometheus textfile written after each command
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level string `koanf:"level" json:"level" validate:"oneof=debug info"`
	JSON  bool   `koanf:"json" json:"json"`
}

// TextCheckConfig selects and guards the spelling and grammar backends
type TextCheckConfig struct {
	Spelling  string        `koanf:"spelling" json:"spelling" validate:"oneof=builtin gemini none"`
	Grammar   string        `koanf:"grammar" json:"grammar" validate:"oneof=builtin gemini none"`
	Timeout   time.Duration `koanf:"timeout" json:"timeout" validate:"gt=0"`
	RateLimit float64       `koanf:"rate_limit" json:"rate_limit" validate:"gt=0"` // Remote calls per second
	Burst     int           `koanf:"burst" json:"burst" validate:"gte=1"`
	Breaker   BreakerConfig `koanf:"breaker" json:"breaker"`
}

// BreakerConfig configures the circuit breaker around remote backends
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests" json:"max_requests" validate:"gte=1"`
	Interval         time.Duration `koanf:"interval" json:"interval" validate:"gte=0"`
	Timeout          time.Duration `koanf:"timeout" json:"timeout" validate:"gt=0"`
	MinRequests      uint32        `koanf:"min_requests" json:"min_requests" validate:"gte=1"`
	FailureThreshold float64       `koanf:"failure_threshold" json:"failure_threshold" validate:"gt=0,lte=1"`
}

// GeminiConfig configures the remote backend
type GeminiConfig struct {
	APIKey      string  `koanf:"api_key" json:"-"`
	Model       string  `koanf:"model" json:"model" validate:"required"`
	Temperature float32 `koanf:"temperature" json:"temperature" validate:"gte=0,lte=2"`
}

// FetchConfig controls downloading job postings given by URL
type FetchConfig struct {
	Timeout   time.Duration `koanf:"timeout" json:"timeout" validate:"gt=0"`
	UserAgent string        `koanf:"user_agent" json:"user_agent" validate:"required"`
}

// Default returns the built-in configuration
func Default() Config {
	breaker := textcheck.DefaultBreakerSettings()
	model := llm.DefaultConfig()
	return Config{
		FuzzyThreshold: keywords.DefaultFuzzyThreshold,
		Workers:        4,
		Log:            LogConfig{Level: "info"},
		TextCheck: TextCheckConfig{
			Spelling:  BackendBuiltin,
			Grammar:   BackendBuiltin,
			Timeout:   5 * time.Second,
			RateLimit: 2,
			Burst:     1,
			Breaker: BreakerConfig{
				MaxRequests:      breaker.MaxRequests,
				Interval:         breaker.Interval,
				Timeout:          breaker.Timeout,
				MinRequests:      breaker.MinRequests,
				FailureThreshold: breaker.FailureThreshold,
			},
		},
		Gemini: GeminiConfig{Model: model.Model, Temperature: model.Temperature},
		Fetch:  FetchConfig{Timeout: fetch.DefaultTimeout, UserAgent: fetch.DefaultUserAgent},
	}
}

// Load builds a Config by layering, from low to high precedence:
//  1. defaults
//  2. the YAML or JSON file at path, or at $RESUME_SCORER_CONFIG when path is empty
//  3. RESUME_SCORER_* environment variables
//
// GEMINI_API_KEY is used when no API key was configured otherwise.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", envKey)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	return &cfg, nil
}

// envKey maps RESUME_SCORER_TEXTCHECK__RATE_LIMIT to textcheck.rate_limit
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	if s == "CONFIG" {
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// Validate checks field ranges and cross-field constraints.
func (c *Config) Validate() error {
	if err := structValidator.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	usesGemini := c.TextCheck.Grammar == BackendGemini || c.TextCheck.Spelling == BackendGemini
	if usesGemini && c.Gemini.APIKey == "" {
		return fmt.Errorf("config error: the gemini text check backend requires an API key (gemini.api_key or GEMINI_API_KEY)")
	}

	// Validate file paths exist (if specified)
	for name, path := range map[string]string{"taxonomy_path": c.TaxonomyPath, "policy_path": c.PolicyPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s not found: %s", name, path)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// The CLI uses it to apply config file values beneath explicitly set flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.TaxonomyPath == "" {
		result.TaxonomyPath = defaults.TaxonomyPath
	}
	if result.PolicyPath == "" {
		result.PolicyPath = defaults.PolicyPath
	}
	if result.MetricsPath == "" {
		result.MetricsPath = defaults.MetricsPath
	}
	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}
	if result.TextCheck.Spelling == "" {
		result.TextCheck.Spelling = defaults.TextCheck.Spelling
	}
	if result.TextCheck.Grammar == "" {
		result.TextCheck.Grammar = defaults.TextCheck.Grammar
	}
	if result.Gemini.APIKey == "" {
		result.Gemini.APIKey = defaults.Gemini.APIKey
	}
	if result.Fetch.UserAgent == "" {
		result.Fetch.UserAgent = defaults.Fetch.UserAgent
	}
	if result.Gemini.Model == "" {
		result.Gemini.Model = defaults.Gemini.Model
	}

	// Numeric fields: use default if zero
	if result.FuzzyThreshold == 0 {
		result.FuzzyThreshold = defaults.FuzzyThreshold
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.TextCheck.Timeout == 0 {
		result.TextCheck.Timeout = defaults.TextCheck.Timeout
	}
	if result.TextCheck.RateLimit == 0 {
		result.TextCheck.RateLimit = defaults.TextCheck.RateLimit
	}
	if result.TextCheck.Burst == 0 {
		result.TextCheck.Burst = defaults.TextCheck.Burst
	}
	if result.TextCheck.Breaker == (BreakerConfig{}) {
		result.TextCheck.Breaker = defaults.TextCheck.Breaker
	}
	if result.Fetch.Timeout == 0 {
		result.Fetch.Timeout = defaults.Fetch.Timeout
	}
	if result.Gemini.Temperature == 0 {
		result.Gemini.Temperature = defaults.Gemini.Temperature
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// BreakerSettings converts the breaker section for textcheck.NewBreaker
func (c *Config) BreakerSettings() textcheck.BreakerSettings {
	b := c.TextCheck.Breaker
	return textcheck.BreakerSettings{
		MaxRequests:      b.MaxRequests,
		Interval:         b.Interval,
		Timeout:          b.Timeout,
		MinRequests:      b.MinRequests,
		FailureThreshold: b.FailureThreshold,
	}
}

// LLMConfig converts the gemini section for llm.NewGeminiClient
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Model = c.Gemini.Model
	cfg.Temperature = c.Gemini.Temperature
	return cfg
}
