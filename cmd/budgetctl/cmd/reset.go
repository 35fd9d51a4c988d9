package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCommand(a *app) *cobra.Command {
	var confirm bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every category, recurring expense, ledger and transaction",
		Long: `Irreversibly clears the budget. Requires --yes.

Example:
  budgetctl reset --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirm {
				return errors.New("refusing to reset without --yes")
			}
			if err := a.budget.ResetAll(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Budget reset")
			return nil
		},
	}
	resetCmd.Flags().BoolVar(&confirm, "yes", false, "confirm the reset")
	return resetCmd
}
