package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"digital.vasic.checks/pkg/suite"
)

func newListCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered suites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()

			var suites []suite.Suite
			if category != "" {
				suites = a.registry.ListByCategory(category)
			} else {
				suites = a.registry.List()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tNAME\tDESCRIPTION")
			for _, s := range suites {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					s.ID(), s.Category(), s.Name(), s.Description())
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list suites in this category")
	return cmd
}
