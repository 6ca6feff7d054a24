package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/fetch"
	"github.com/jonathan/resume-scorer/internal/keywords"
	"github.com/jonathan/resume-scorer/internal/llm"
	"github.com/jonathan/resume-scorer/internal/logger"
	"github.com/jonathan/resume-scorer/internal/metrics"
	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/taxonomy"
	"github.com/jonathan/resume-scorer/internal/textcheck"
	"github.com/jonathan/resume-scorer/internal/validation"
)

// app holds everything a subcommand needs, built once from configuration
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	taxonomy  *taxonomy.Taxonomy
	validator *validation.Validator
	engine    *scoring.Engine
	metrics   *metrics.Manager
	fetcher   *fetch.Fetcher
	printer   *observability.Printer
	verbose   bool

	llmClient llm.Client
}

// withApp builds the app, runs fn and tears the app down, writing the metrics textfile
// when one is configured
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.close(); err == nil {
			err = cerr
		}
	}()
	return fn(ctx, a)
}

func newApp(ctx context.Context, opts *rootOptions, out io.Writer) (*app, error) {
	loaded, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := loaded.MergeWithDefaults(config.Default())
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	if opts.logJSON {
		cfg.Log.JSON = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Level == "debug")
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	a := &app{
		cfg:     &cfg,
		logger:  log,
		metrics: metrics.NewManager(),
		fetcher: fetch.New(
			fetch.WithHTTPClient(&http.Client{Timeout: cfg.Fetch.Timeout}),
			fetch.WithUserAgent(cfg.Fetch.UserAgent),
			fetch.WithLogger(log),
		),
		printer: observability.NewPrinter(out),
		verbose: opts.verbose,
	}

	if cfg.TaxonomyPath != "" {
		a.taxonomy, err = taxonomy.Load(cfg.TaxonomyPath)
	} else {
		a.taxonomy, err = taxonomy.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}

	policies := scoring.DefaultPolicySet()
	if cfg.PolicyPath != "" {
		if policies, err = scoring.LoadPolicySet(cfg.PolicyPath); err != nil {
			return nil, err
		}
	}

	spelling, err := a.checker(ctx, cfg.TextCheck.Spelling, "spelling")
	if err != nil {
		return nil, err
	}
	grammar, err := a.checker(ctx, cfg.TextCheck.Grammar, "grammar")
	if err != nil {
		return nil, err
	}

	a.validator = validation.New(
		validation.WithSpelling(spelling),
		validation.WithGrammar(grammar),
		validation.WithBackendTimeout(cfg.TextCheck.Timeout),
		validation.WithLogger(log),
	)
	a.engine = scoring.NewEngine(a.taxonomy,
		scoring.WithPolicies(policies),
		scoring.WithValidator(a.validator),
		scoring.WithMatcherOptions(keywords.WithFuzzyThreshold(cfg.FuzzyThreshold)),
		scoring.WithLogger(log),
		scoring.WithObserver(a.metrics),
	)

	log.Debug("scorer ready",
		zap.String("taxonomy_version", a.taxonomy.Version),
		zap.String("policy_version", policies.Version),
		zap.String("spelling", cfg.TextCheck.Spelling),
		zap.String("grammar", cfg.TextCheck.Grammar))
	return a, nil
}

// checker builds the spelling or grammar backend named by backend. Remote backends are
// rate limited and guarded by a circuit breaker.
func (a *app) checker(ctx context.Context, backend, kind string) (textcheck.Checker, error) {
	switch backend {
	case config.BackendNone:
		return nil, nil
	case config.BackendGemini:
		if a.llmClient == nil {
			client, err := llm.NewGeminiClient(ctx, a.cfg.LLMConfig(), a.cfg.Gemini.APIKey)
			if err != nil {
				return nil, fmt.Errorf("failed to create gemini client: %w", err)
			}
			a.llmClient = client
		}
		var remote textcheck.Checker = textcheck.NewLLMGrammar(a.llmClient)
		if kind == "spelling" {
			remote = textcheck.NewLLMSpelling(a.llmClient)
		}
		guarded := textcheck.NewBreaker(remote, a.cfg.BreakerSettings(), a.logger)
		return textcheck.NewLimited(guarded, a.cfg.TextCheck.RateLimit, a.cfg.TextCheck.Burst), nil
	default:
		if kind == "spelling" {
			return textcheck.NewSpeller(nil), nil
		}
		return textcheck.NewRuleGrammar(), nil
	}
}

func (a *app) close() error {
	var errs []error
	if a.cfg.MetricsPath != "" {
		if err := a.metrics.WriteToTextfile(a.cfg.MetricsPath); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if a.llmClient != nil {
		if err := a.llmClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	_ = a.logger.Sync()
	return errors.Join(errs...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
