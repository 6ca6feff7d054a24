package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/experience"
)

func newExperienceCmd(root *rootOptions) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "experience RESUME.json",
		Short: "Compute total professional experience",
		Long:  "Parses every entry's dates, merges overlapping periods and reports total years, gaps and unusable dates.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, root, func(_ context.Context, a *app) error {
				resume, err := experience.LoadResume(args[0])
				if err != nil {
					return fmt.Errorf("failed to load resume: %w", err)
				}

				summary := experience.Calculate(resume.Experience, time.Now())
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), summary)
				}
				a.printer.PrintExperience(summary)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the summary as JSON")
	return cmd
}
