package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/experience"
	"github.com/jonathan/resume-scorer/internal/skills"
)

type scoreOptions struct {
	target    targetFlags
	jsonOut   bool
	failUnder float64
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score RESUME.json",
		Short: "Score a resume and explain the result",
		Long: `Scores a parsed resume JSON file. The target keyword set comes from --jd or --jd-url when given,
otherwise from --role and --level in the taxonomy. With neither, keyword matching is reported
as unresolved and the remaining categories are still scored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, root, func(ctx context.Context, a *app) error {
				return runScore(ctx, cmd, a, opts, args[0])
			})
		},
	}

	opts.target.bind(cmd)
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the score result as JSON")
	cmd.Flags().Float64Var(&opts.failUnder, "fail-under", 0, "Exit with an error when the overall score is below this value")
	return cmd
}

func runScore(ctx context.Context, cmd *cobra.Command, a *app, opts *scoreOptions, path string) error {
	resume, err := experience.LoadResume(path)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	jdText, err := opts.target.jobDescription(ctx, a)
	if err != nil {
		return err
	}
	req, err := opts.target.request(resume, jdText)
	if err != nil {
		return err
	}

	result, err := a.engine.Score(ctx, req)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		if a.verbose && jdText != "" {
			a.printer.PrintJobProfile(skills.ExtractJobProfile(jdText, a.taxonomy.Vocabulary()))
		}
		a.printer.PrintScoreResult(result)
	}

	if opts.failUnder > 0 && result.Overall < opts.failUnder {
		return fmt.Errorf("overall score %.1f is below %.1f", result.Overall, opts.failUnder)
	}
	return nil
}
