package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/spf13/cobra"
)

type monthStatusView struct {
	Month           string      `json:"month" yaml:"month"`
	HasLedger       bool        `json:"hasLedger" yaml:"hasLedger"`
	Ledger          *ledgerView `json:"ledger,omitempty" yaml:"ledger,omitempty"`
	PreviewRollover string      `json:"previewRollover" yaml:"previewRollover"`
}

type openedView struct {
	Ledger       ledgerView        `json:"ledger" yaml:"ledger"`
	Transactions []transactionView `json:"transactions" yaml:"transactions"`
}

func newMonthCommand(a *app) *cobra.Command {
	monthCmd := &cobra.Command{
		Use:   "month",
		Short: "Open months and inspect their ledgers",
	}

	statusCmd := &cobra.Command{
		Use:   "status [MONTH]",
		Short: "Show whether a month is open (defaults to the current month)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := a.months.CurrentMonth()
			if len(args) == 1 {
				var err error
				if month, err = domain.ParseMonthKey(args[0]); err != nil {
					return err
				}
			}

			view := monthStatusView{
				Month:           month.String(),
				PreviewRollover: money(a.months.PreviewRollover(month)),
			}
			ledger, err := a.months.GetLedger(month)
			switch {
			case err == nil:
				lv := toLedgerView(*ledger)
				view.HasLedger = true
				view.Ledger = &lv
			case !errors.Is(err, domain.ErrLedgerNotFound):
				return err
			}

			return a.render(cmd.OutOrStdout(), view, func(tw *tabwriter.Writer) {
				if view.Ledger == nil {
					fmt.Fprintf(tw, "%s is not open (rollover if opened now: %s)\n", view.Month, view.PreviewRollover)
					return
				}
				fmt.Fprintln(tw, "MONTH\tINCOME\tROLLOVER\tAVAILABLE\tSTATUS")
				l := view.Ledger
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", l.Month, l.Income, l.Rollover, l.Available, l.Status)
			})
		},
	}

	previewCmd := &cobra.Command{
		Use:   "preview MONTH",
		Short: "Preview the rollover a month would receive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := domain.ParseMonthKey(args[0])
			if err != nil {
				return err
			}
			view := struct {
				Month    string `json:"month" yaml:"month"`
				Previous string `json:"previousMonth" yaml:"previousMonth"`
				Rollover string `json:"rollover" yaml:"rollover"`
			}{month.String(), month.Previous().String(), money(a.months.PreviewRollover(month))}

			return a.render(cmd.OutOrStdout(), view, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "%s would carry %s over from %s\n", view.Month, view.Rollover, view.Previous)
			})
		},
	}

	var income, rollover string
	openCmd := &cobra.Command{
		Use:   "open MONTH",
		Short: "Open a month and materialize recurring expenses",
		Long: `Create the ledger for MONTH. Rollover defaults to the surplus left in the
previous month; pass --rollover to override it.

Example:
  budgetctl month open 2024-03 --income 3000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := domain.ParseMonthKey(args[0])
			if err != nil {
				return err
			}
			incomeValue, err := parseAmount("income", income)
			if err != nil {
				return err
			}
			rolloverValue := a.months.PreviewRollover(month)
			if cmd.Flags().Changed("rollover") {
				if rolloverValue, err = parseAmount("rollover", rollover); err != nil {
					return err
				}
			}

			opened, err := a.months.OpenMonth(month, incomeValue, rolloverValue)
			if err != nil {
				return err
			}
			view := openedView{Ledger: toLedgerView(opened.Ledger), Transactions: toTransactionViews(opened.Transactions)}
			return a.render(cmd.OutOrStdout(), view, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Opened %s with %s available (%d recurring transactions)\n",
					view.Ledger.Month, view.Ledger.Available, len(view.Transactions))
			})
		},
	}
	openCmd.Flags().StringVar(&income, "income", "", "income for the month (required)")
	openCmd.Flags().StringVar(&rollover, "rollover", "", "rollover override")
	openCmd.MarkFlagRequired("income")

	summaryCmd := &cobra.Command{
		Use:   "summary MONTH",
		Short: "Show totals and per-category utilization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := domain.ParseMonthKey(args[0])
			if err != nil {
				return err
			}
			view := toSummaryView(a.summaries.GetSummary(month))
			return a.render(cmd.OutOrStdout(), view, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Month:\t%s\n", view.Month)
				fmt.Fprintf(tw, "Available:\t%s\n", view.TotalAvailable)
				fmt.Fprintf(tw, "Spent:\t%s\n", view.TotalSpent)
				fmt.Fprintf(tw, "Remaining:\t%s\n", view.RemainingBalance)
				fmt.Fprintln(tw)
				fmt.Fprintln(tw, "CATEGORY\tSPENT\tLIMIT\tUSED %")
				for _, c := range view.Categories {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Spent, c.Limit, c.Utilization)
				}
			})
		},
	}

	monthCmd.AddCommand(statusCmd, previewCmd, openCmd, summaryCmd)
	return monthCmd
}
