package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/experience"
)

func newKeywordsCmd(root *rootOptions) *cobra.Command {
	var (
		target  targetFlags
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "keywords RESUME.json",
		Short: "Match a resume against the target keyword set",
		Long:  "Resolves the keyword set from --jd, --jd-url or --role/--level and shows which keywords matched, how, and which are missing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, root, func(ctx context.Context, a *app) error {
				resume, err := experience.LoadResume(args[0])
				if err != nil {
					return fmt.Errorf("failed to load resume: %w", err)
				}
				jdText, err := target.jobDescription(ctx, a)
				if err != nil {
					return err
				}
				req, err := target.request(resume, jdText)
				if err != nil {
					return err
				}

				res, err := a.engine.MatchKeywords(req)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), res)
				}
				a.printer.PrintKeywordResult(res)
				return nil
			})
		},
	}

	target.bind(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the match result as JSON")
	return cmd
}
