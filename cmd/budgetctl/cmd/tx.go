package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/spf13/cobra"
)

func newTxCommand(a *app) *cobra.Command {
	txCmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and list transactions",
	}

	var categoryID, amount, description string
	addCmd := &cobra.Command{
		Use:   "add MONTH",
		Short: "Record a spending transaction in an open month",
		Long: `Example:
  budgetctl tx add 2024-03 --category 6f1c... --amount 42.50 --description "Market"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := domain.ParseMonthKey(args[0])
			if err != nil {
				return err
			}
			value, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}

			txn, err := a.transactions.RecordTransaction(domain.RecordTransactionInput{
				Month:       month,
				CategoryID:  categoryID,
				Amount:      value,
				Description: description,
			})
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), toTransactionView(*txn), func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Recorded %s %q in %s (%s)\n", money(txn.Amount), txn.Description, txn.MonthKey, txn.ID)
			})
		},
	}
	addCmd.Flags().StringVarP(&categoryID, "category", "c", "", "category id (required)")
	addCmd.Flags().StringVarP(&amount, "amount", "a", "", "amount spent (required)")
	addCmd.Flags().StringVarP(&description, "description", "d", "", "description (defaults to the category name)")
	addCmd.MarkFlagRequired("category")
	addCmd.MarkFlagRequired("amount")

	listCmd := &cobra.Command{
		Use:   "list MONTH",
		Short: "List a month's transactions in recording order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := domain.ParseMonthKey(args[0])
			if err != nil {
				return err
			}
			views := toTransactionViews(a.transactions.ListTransactions(month))
			return a.render(cmd.OutOrStdout(), views, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ID\tCATEGORY\tAMOUNT\tDESCRIPTION\tAUTO")
				for _, v := range views {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", v.ID, v.CategoryID, v.Amount, v.Description, v.Automated)
				}
			})
		},
	}

	txCmd.AddCommand(addCmd, listCmd)
	return txCmd
}
