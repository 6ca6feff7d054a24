package main

import (
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every subcommand
type rootOptions struct {
	configPath string
	verbose    bool
	logJSON    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "resume_scorer",
		Short: "Explainable resume scoring",
		Long: `Scores a parsed resume against a role and level from the taxonomy, or against a job description,
and explains every category: what helped, what dragged the score down, and which red flags were found.

Configuration is layered: built-in defaults, then the file given by --config (or $RESUME_SCORER_CONFIG),
then RESUME_SCORER_* environment variables.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML or JSON config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print detailed debug information")
	cmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON")

	cmd.AddCommand(
		newScoreCmd(opts),
		newBatchCmd(opts),
		newCheckCmd(opts),
		newExperienceCmd(opts),
		newKeywordsCmd(opts),
		newTaxonomyCmd(opts),
	)
	return cmd
}
