package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newCategoryCommand(a *app) *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Manage spending categories",
	}

	var limit string
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Register a category with a monthly limit",
		Long: `Register a spending category. The limit is the monthly amount the
category is expected to use; zero is allowed.

Example:
  budgetctl category add Groceries --limit 400`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("limit", limit)
			if err != nil {
				return err
			}
			category, err := a.categories.CreateCategory(args[0], amount)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), toCategoryView(*category), func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Created category %s (%s, limit %s)\n", category.Name, category.ID, money(category.Limit))
			})
		},
	}
	addCmd.Flags().StringVarP(&limit, "limit", "l", "", "monthly limit (required)")
	addCmd.MarkFlagRequired("limit")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories := a.categories.ListCategories()
			views := make([]categoryView, len(categories))
			for i, c := range categories {
				views[i] = toCategoryView(c)
			}
			return a.render(cmd.OutOrStdout(), views, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ID\tNAME\tLIMIT")
				for _, v := range views {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", v.ID, v.Name, v.Limit)
				}
			})
		},
	}

	categoryCmd.AddCommand(addCmd, listCmd)
	return categoryCmd
}

// parseAmount reads a decimal flag value
func parseAmount(flag, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return d, nil
}
