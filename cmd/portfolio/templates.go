package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-portfolio/pkg/catalog"
)

func newTemplatesCommand() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the bundled templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := catalog.Default()
			templates := c.Filter(category)
			if len(templates) == 0 {
				return fmt.Errorf("no templates in category %q (categories: %s)",
					category, strings.Join(c.Categories(), ", "))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tVARIANTS\tDESCRIPTION")
			for _, tpl := range templates {
				id := tpl.ID
				if id == c.DefaultID() {
					id += " *"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					id, tpl.Name, tpl.Category, strings.Join(tpl.Variants(), ","), tpl.Description)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", catalog.CategoryAll, "filter by category")
	return cmd
}
