package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List measurement categories",
		Long:  "List every category in declaration order. Categories from config.yaml follow the built-in ones.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := a.converter.Catalog().ListCategories()
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), cats)
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "CATEGORY\tKIND\tUNITS")
			for _, c := range cats {
				name := c.ID
				if c.Icon != "" {
					name = c.Icon + " " + c.ID
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\n", name, c.Kind, len(c.Units))
			}
			return tw.Flush()
		},
	}
}

func newUnitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "units <category>",
		Short: "List the units of a category",
		Example: `  measures units length
  measures units speed --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := a.converter.Catalog().UnitsOf(args[0])
			if err != nil {
				return withCategories(err, a)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), tokens)
			}
			for _, tok := range tokens {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return nil
		},
	}
}

// withCategories appends the valid category IDs to err for the user.
func withCategories(err error, a *app) error {
	cats := a.converter.Catalog().ListCategories()
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	return fmt.Errorf("%w (valid: %s)", err, strings.Join(ids, ", "))
}
