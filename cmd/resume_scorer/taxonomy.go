package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/types"
)

func newTaxonomyCmd(root *rootOptions) *cobra.Command {
	var role, level string

	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "List taxonomy roles and levels, or show a resolved keyword set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, root, func(_ context.Context, a *app) error {
				out := cmd.OutOrStdout()
				if role != "" {
					res, err := a.taxonomy.Resolve(role, level)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(out, "Role: %s (%s)\n", res.Role.Name, res.Role.ID)
					if res.Level != nil {
						_, _ = fmt.Fprintf(out, "Level: %s, expected %g years\n", res.Level.ID, res.ExpectedYears)
					}
					_, _ = fmt.Fprintf(out, "Required:  %s\n", canonicals(res.Set.Required()))
					_, _ = fmt.Fprintf(out, "Preferred: %s\n", canonicals(res.Set.Preferred()))
					return nil
				}

				_, _ = fmt.Fprintf(out, "Taxonomy version %s\n\n", a.taxonomy.Version)
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				_, _ = fmt.Fprintln(w, "LEVEL\tMIN YEARS\tALIASES")
				for _, l := range a.taxonomy.Levels {
					_, _ = fmt.Fprintf(w, "%s\t%g\t%s\n", l.ID, l.MinYears, strings.Join(l.Aliases, ", "))
				}
				_, _ = fmt.Fprintln(w, "\t\t")
				_, _ = fmt.Fprintln(w, "ROLE\tREQUIRED\tNAME")
				for _, r := range a.taxonomy.Roles {
					_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", r.ID, len(r.Required), r.Name)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "", "Resolve this role and show its keyword set")
	cmd.Flags().StringVarP(&level, "level", "l", "", "Level to resolve with --role")
	return cmd
}

func canonicals(kws []types.Keyword) string {
	names := make([]string, len(kws))
	for i, kw := range kws {
		names[i] = kw.Canonical
	}
	return strings.Join(names, ", ")
}
