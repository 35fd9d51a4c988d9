package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRecurringCommand(a *app) *cobra.Command {
	recurringCmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring monthly expenses",
		Long: `Recurring templates are replayed as automated transactions into every
month opened after they are registered. Months already open are not changed.`,
	}

	var (
		amount     string
		categoryID string
	)
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Register a recurring expense",
		Long: `Example:
  budgetctl recurring add Rent --amount 1200 --category 6f1c...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			template, err := a.templates.CreateTemplate(args[0], value, categoryID)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), toTemplateView(*template), func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Created recurring expense %s (%s, %s)\n", template.Name, template.ID, money(template.Amount))
			})
		},
	}
	addCmd.Flags().StringVarP(&amount, "amount", "a", "", "monthly amount (required)")
	addCmd.Flags().StringVarP(&categoryID, "category", "c", "", "category id (required)")
	addCmd.MarkFlagRequired("amount")
	addCmd.MarkFlagRequired("category")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recurring expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			templates := a.templates.ListTemplates()
			views := make([]templateView, len(templates))
			for i, t := range templates {
				views[i] = toTemplateView(t)
			}
			return a.render(cmd.OutOrStdout(), views, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ID\tNAME\tAMOUNT\tCATEGORY")
				for _, v := range views {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Amount, v.CategoryID)
				}
			})
		},
	}

	recurringCmd.AddCommand(addCmd, listCmd)
	return recurringCmd
}
