package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/experience"
	"github.com/jonathan/resume-scorer/internal/validation"
)

type checkOptions struct {
	jsonOut bool
	rules   bool
	strict  bool
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [RESUME.json]",
		Short: "Run the red-flags checks on a resume",
		Long: `Runs contact, section, date, bullet, phrasing, formatting, spelling and grammar checks and
lists every issue with its severity and location. --rules lists the rule catalogue instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.rules {
				return printRules(cmd, opts.jsonOut)
			}
			if len(args) == 0 {
				return fmt.Errorf("a resume file is required unless --rules is given")
			}
			return withApp(cmd, root, func(ctx context.Context, a *app) error {
				return runCheck(ctx, cmd, a, opts, args[0])
			})
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&opts.rules, "rules", false, "List the rule catalogue")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit with an error when any critical issue is found")
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, a *app, opts *checkOptions, path string) error {
	resume, err := experience.LoadResume(path)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	report, err := a.validator.Validate(ctx, resume, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOut {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else {
		if len(report.Issues) == 0 {
			_, _ = fmt.Fprintln(out, "✅ No issues found")
		}
		a.printer.PrintIssues(report.Issues)
		if len(report.Degraded) > 0 {
			_, _ = fmt.Fprintf(out, "Checks not run: %s\n", strings.Join(report.Degraded, ", "))
		}
	}

	if opts.strict && report.Critical > 0 {
		return fmt.Errorf("%d critical issue(s) found", report.Critical)
	}
	return nil
}

func printRules(cmd *cobra.Command, jsonOut bool) error {
	rules := validation.Rules()
	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), rules)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KIND\tCATEGORY\tSEVERITY\tDESCRIPTION")
	for _, r := range rules {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Kind, r.Category, r.Severity, r.Description)
	}
	return w.Flush()
}
